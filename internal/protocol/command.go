package protocol

import "github.com/armlabs/tictactoe-robot/internal/entity"

const (
	OpcodeHumanMove          Opcode = 1
	OpcodeMachineMove        Opcode = 2
	OpcodeCheatReport        Opcode = 3
	OpcodeRotatedHumanMove   Opcode = 4
	OpcodeRotatedMachineMove Opcode = 5
)

// Opcode is the first payload digit and selects the command class.
type Opcode byte

// Command is one instruction for the arm: an opcode and two single-digit
// arguments. What the arguments mean depends on the opcode; the encoder
// renders them as requested and validates nothing.
type Command struct {
	Op   Opcode
	Arg1 int
	Arg2 int
}

// Payload renders the command as its three ASCII digits.
func (that Command) Payload() string {
	return string([]byte{digit(int(that.Op)), digit(that.Arg1), digit(that.Arg2)})
}

// Encode frames the command payload for the wire.
func (that Command) Encode() []byte {
	return Frame(that.Payload())
}

func digit(v int) byte {
	return byte('0' + v)
}

// NewHumanMove orders the arm to carry a human piece between two squares.
func NewHumanMove(from, to entity.Position) Command {
	return Command{Op: OpcodeHumanMove, Arg1: int(from), Arg2: int(to)}
}

// NewMachineMove orders the arm to place the machine's piece on target. seq
// is the per-match machine move counter, starting at 1.
func NewMachineMove(seq int, target entity.Position) Command {
	return Command{Op: OpcodeMachineMove, Arg1: seq, Arg2: int(target)}
}

// NewMachineCarry orders the arm to carry a machine piece between two
// squares. Calibration drills reuse the machine move opcode this way, with
// start and target squares instead of a move counter.
func NewMachineCarry(from, to entity.Position) Command {
	return Command{Op: OpcodeMachineMove, Arg1: int(from), Arg2: int(to)}
}

// NewCheatReport announces that an existing human piece moved from one
// square to another instead of a new piece being placed.
func NewCheatReport(from, to entity.Position) Command {
	return Command{Op: OpcodeCheatReport, Arg1: int(from), Arg2: int(to)}
}

// NewRotatedHumanMove is the rotated-layout variant of NewHumanMove. The
// caller maps both positions through the rotated-board table first.
func NewRotatedHumanMove(from, to entity.Position) Command {
	return Command{Op: OpcodeRotatedHumanMove, Arg1: int(from), Arg2: int(to)}
}

// NewRotatedMachineMove is the rotated-layout variant of NewMachineMove,
// carrying start and target squares instead of a move counter.
func NewRotatedMachineMove(from, to entity.Position) Command {
	return Command{Op: OpcodeRotatedMachineMove, Arg1: int(from), Arg2: int(to)}
}
