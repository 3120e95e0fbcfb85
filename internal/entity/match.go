package entity

import "time"

const (
	PhaseAwaitingHuman = "awaiting_human"
	PhaseMachineTurn   = "machine_turn"
	PhaseFinished      = "finished"
)

const (
	StarterHuman   = "human"
	StarterMachine = "machine"
)

// Match is the live state of one game against the arm. The outcome is never
// stored here while the match runs; it is recomputed from Board on demand.
type Match struct {
	ID           string      `json:"id"`
	Board        Board       `json:"board"`
	Phase        string      `json:"phase"`
	Starter      string      `json:"starter"`
	MachineMoves int         `json:"machineMoves"`
	Confirmed    PositionSet `json:"confirmed"`
	Cheats       int         `json:"cheats"`
	StartedAt    time.Time   `json:"startedAt"`
}

// NewMatch creates a fresh match. The starter decides the opening phase.
func NewMatch(id, starter string) *Match {
	phase := PhaseAwaitingHuman
	if starter == StarterMachine {
		phase = PhaseMachineTurn
	}

	return &Match{
		ID:        id,
		Board:     NewBoard(),
		Phase:     phase,
		Starter:   starter,
		StartedAt: time.Now().UTC(),
	}
}

func (that *Match) IsFinished() bool {
	return that.Phase == PhaseFinished
}

func (that *Match) IsMachineTurn() bool {
	return that.Phase == PhaseMachineTurn
}

func (that *Match) IsAwaitingHuman() bool {
	return that.Phase == PhaseAwaitingHuman
}

// Observation is one piece sighting reported by the vision collaborator.
// The same position may be reported again across frames; the controller
// is responsible for telling new pieces from confirmed ones.
type Observation struct {
	Position Position `json:"position"`
	Player   Cell     `json:"player"`
}
