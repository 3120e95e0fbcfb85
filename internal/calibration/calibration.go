// Package calibration scripts the arm command sequences used to verify the
// physical setup before live play: four-step pickup drills on the standard
// and rotated board layouts, and a single carry to the center square.
package calibration

import (
	"github.com/armlabs/tictactoe-robot/internal/entity"
	"github.com/armlabs/tictactoe-robot/internal/protocol"
)

// rotatedIndex maps standard grid positions to their squares on the rotated
// physical layout. Positions 3 and 4 keep their place.
var rotatedIndex = map[entity.Position]entity.Position{
	2: 0,
	5: 1,
	8: 2,
	1: 3,
	7: 5,
	0: 6,
	6: 8,
}

// RotatedIndex translates a standard grid position for the rotated board
// layout. Positions outside the mapping table are returned unchanged.
func RotatedIndex(p entity.Position) entity.Position {
	if mapped, ok := rotatedIndex[p]; ok {
		return mapped
	}

	return p
}

// Carry is one scripted move of a piece between two squares.
type Carry struct {
	Piece entity.Cell     `json:"piece"`
	From  entity.Position `json:"from"`
	To    entity.Position `json:"to"`
}

func HumanCarry(from, to entity.Position) Carry {
	return Carry{Piece: entity.CellHuman, From: from, To: to}
}

func MachineCarry(from, to entity.Position) Carry {
	return Carry{Piece: entity.CellMachine, From: from, To: to}
}

// Plan is an ordered calibration script. A rotated plan maps every position
// through the rotated-board table when its commands are built.
type Plan struct {
	Rotated bool    `json:"rotated"`
	Carries []Carry `json:"carries"`
}

// FourStepPlan scripts the standard pickup drill: two human-piece carries
// followed by two machine-piece carries.
func FourStepPlan(rotated bool, human1, human2, machine1, machine2 Carry) Plan {
	return Plan{
		Rotated: rotated,
		Carries: []Carry{human1, human2, machine1, machine2},
	}
}

// CenterPlan scripts a single machine-piece carry onto the center square.
func CenterPlan(from entity.Position) Plan {
	return Plan{Carries: []Carry{MachineCarry(from, 4)}}
}

// Commands renders the plan as protocol commands in execution order.
func (that Plan) Commands() []protocol.Command {
	commands := make([]protocol.Command, 0, len(that.Carries))

	for _, carry := range that.Carries {
		from, to := carry.From, carry.To
		if that.Rotated {
			from, to = RotatedIndex(from), RotatedIndex(to)
		}

		switch {
		case that.Rotated && carry.Piece == entity.CellHuman:
			commands = append(commands, protocol.NewRotatedHumanMove(from, to))
		case that.Rotated:
			commands = append(commands, protocol.NewRotatedMachineMove(from, to))
		case carry.Piece == entity.CellHuman:
			commands = append(commands, protocol.NewHumanMove(from, to))
		default:
			commands = append(commands, protocol.NewMachineCarry(from, to))
		}
	}

	return commands
}
