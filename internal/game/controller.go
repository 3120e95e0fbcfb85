// Package game orchestrates one match against the arm: it screens vision
// observations, applies the rules, asks the search engine for the machine's
// reply and emits protocol frames to the actuator transport.
package game

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/armlabs/tictactoe-robot/internal/apperror"
	"github.com/armlabs/tictactoe-robot/internal/entity"
	"github.com/armlabs/tictactoe-robot/internal/monitor"
	"github.com/armlabs/tictactoe-robot/internal/protocol"
	"github.com/armlabs/tictactoe-robot/internal/rules"
	"github.com/armlabs/tictactoe-robot/internal/search"
)

const (
	EventIgnored      Event = "ignored"
	EventDuplicate    Event = "duplicate"
	EventCheatReport  Event = "cheat_reported"
	EventMachineMoved Event = "machine_moved"
	EventFinished     Event = "finished"
)

// Event tells the caller what one controller step amounted to. Cheats and
// transport failures stay distinguishable: a cheat is an event, a transport
// failure an error.
type Event string

// Transport carries framed commands to the physical actuator.
type Transport interface {
	Send(frame []byte) error
}

// Controller drives the match state machine. One observation is processed
// to completion before the next is accepted; the controller holds no match
// state of its own.
type Controller struct {
	logger *slog.Logger

	transport Transport
	metrics   *monitor.Metrics
}

func NewController(logger *slog.Logger, transport Transport, metrics *monitor.Metrics) *Controller {
	return &Controller{
		logger:    logger,
		transport: transport,
		metrics:   metrics,
	}
}

// HandleObservation advances the match by one human observation. A nil
// observation means no new piece was sighted and the match keeps waiting.
// A clean move is committed and answered by the machine in the same step; a
// cheat is reported over the wire and discarded. The match phase and board
// carry the outcome.
func (that *Controller) HandleObservation(match *entity.Match, obs *entity.Observation) (Event, error) {
	log := that.logger.With("method", "handleObservation", "matchID", match.ID)

	if match.IsFinished() {
		return EventIgnored, apperror.ErrMatchFinished
	}

	if !match.IsAwaitingHuman() {
		return EventIgnored, apperror.ErrNotHumanTurn
	}

	if obs == nil {
		return EventIgnored, nil
	}

	if obs.Player != entity.CellHuman {
		log.Debug("ignoring sighting of a machine piece", "position", obs.Position)

		return EventIgnored, nil
	}

	outcome, err := rules.DetectCheat(&match.Board, obs.Position, match.Confirmed)
	if err != nil {
		return EventIgnored, fmt.Errorf("failed to screen observation: %w", err)
	}

	if outcome.IsDuplicate() {
		log.Debug("duplicate sighting", "position", obs.Position)

		return EventDuplicate, nil
	}

	if outcome.IsCheat() {
		return that.reportCheat(log, match, outcome)
	}

	match.Confirmed.Add(obs.Position)
	that.metrics.MovePlayed(entity.StarterHuman)
	log.Info("human move committed", "position", obs.Position)

	if result := rules.Result(&match.Board); result != entity.ResultInProgress {
		match.Phase = entity.PhaseFinished
		log.Info("match finished", "result", result)

		return EventFinished, nil
	}

	match.Phase = entity.PhaseMachineTurn

	return that.PlayMachineTurn(match, nil)
}

// PlayMachineTurn commits the machine's move and emits its frame. The fixed
// position is honored only for the very first machine move of a match; on
// every later turn the search engine picks the move. The move is committed
// before the frame goes out, so a transport failure leaves the board ahead
// of the table and the caller must halt the match.
func (that *Controller) PlayMachineTurn(match *entity.Match, fixed *entity.Position) (Event, error) {
	log := that.logger.With("method", "playMachineTurn", "matchID", match.ID)

	if match.IsFinished() {
		return EventIgnored, apperror.ErrMatchFinished
	}

	if !match.IsMachineTurn() {
		return EventIgnored, apperror.ErrNotMachineTurn
	}

	move, err := that.pickMachineMove(match, fixed)
	if err != nil {
		return EventIgnored, err
	}

	if err = rules.ApplyMove(&match.Board, move, entity.CellMachine); err != nil {
		return EventIgnored, fmt.Errorf("failed to apply machine move: %w", err)
	}

	match.MachineMoves++
	that.metrics.MovePlayed(entity.StarterMachine)
	log.Info("machine move committed", "position", move, "sequence", match.MachineMoves)

	sendErr := that.send(log, protocol.NewMachineMove(match.MachineMoves, move))

	if result := rules.Result(&match.Board); result != entity.ResultInProgress {
		match.Phase = entity.PhaseFinished
		log.Info("match finished", "result", result)

		if sendErr != nil {
			return EventFinished, sendErr
		}

		return EventFinished, nil
	}

	match.Phase = entity.PhaseAwaitingHuman

	if sendErr != nil {
		return EventMachineMoved, sendErr
	}

	return EventMachineMoved, nil
}

// pickMachineMove resolves the machine's move: the fixed opening when one
// is supplied for the first move, the search engine otherwise.
func (that *Controller) pickMachineMove(match *entity.Match, fixed *entity.Position) (entity.Position, error) {
	if fixed != nil && match.MachineMoves == 0 {
		return *fixed, nil
	}

	started := time.Now()

	move, err := search.BestMove(&match.Board)
	if err != nil {
		// The caller checks for a decided or full board first, so an empty
		// search space is an internal consistency fault.
		return 0, fmt.Errorf("search found no machine move: %w", err)
	}

	that.metrics.ObserveSearchDuration(time.Since(started))

	return move, nil
}

// reportCheat raises opcode 3 with the old and new board indexes. The
// attempted move is already discarded; the match keeps waiting for a
// legitimate one.
func (that *Controller) reportCheat(log *slog.Logger, match *entity.Match, outcome rules.CheatOutcome) (Event, error) {
	match.Cheats++
	that.metrics.CheatDetected()
	log.Info("cheat detected", "from", outcome.From, "to", outcome.To)

	if err := that.send(log, protocol.NewCheatReport(outcome.From, outcome.To)); err != nil {
		return EventCheatReport, err
	}

	return EventCheatReport, nil
}

func (that *Controller) send(log *slog.Logger, cmd protocol.Command) error {
	if err := that.transport.Send(cmd.Encode()); err != nil {
		return fmt.Errorf("failed to send frame %q: %w", cmd.Payload(), err)
	}

	that.metrics.FrameSent()
	log.Debug("frame sent", "payload", cmd.Payload())

	return nil
}
