package rules

import (
	"github.com/armlabs/tictactoe-robot/internal/apperror"
	"github.com/armlabs/tictactoe-robot/internal/entity"
)

const (
	VerdictClean     CheatVerdict = "clean"
	VerdictDuplicate CheatVerdict = "duplicate"
	VerdictCheat     CheatVerdict = "cheat"
)

// CheatVerdict classifies one screened human observation.
type CheatVerdict string

// CheatOutcome is the result of screening an observed human piece. From and
// To carry the old and new board indexes of a moved piece and are set only
// when the verdict is VerdictCheat.
type CheatOutcome struct {
	Verdict CheatVerdict
	From    entity.Position
	To      entity.Position
}

func (that CheatOutcome) IsClean() bool {
	return that.Verdict == VerdictClean
}

func (that CheatOutcome) IsDuplicate() bool {
	return that.Verdict == VerdictDuplicate
}

func (that CheatOutcome) IsCheat() bool {
	return that.Verdict == VerdictCheat
}

// DetectCheat screens a human piece observed at candidate against the pieces
// already confirmed on the board. A sighting of a confirmed piece is a
// duplicate and leaves the board alone. A genuine new placement is committed
// and reported clean. When the piece cannot be new, the observation means an
// existing piece changed squares: the tentative placement is reverted, the
// board stays as it was, and the old and new indexes are reported so the
// controller can raise a cheat report.
func DetectCheat(board *entity.Board, candidate entity.Position, confirmed entity.PositionSet) (CheatOutcome, error) {
	if !candidate.Valid() {
		return CheatOutcome{}, apperror.ErrPositionOutOfRange
	}

	if confirmed.Contains(candidate) || board[candidate] == entity.CellHuman {
		return CheatOutcome{Verdict: VerdictDuplicate}, nil
	}

	if board[candidate] == entity.CellMachine {
		return CheatOutcome{}, apperror.ErrCellOccupied
	}

	// Every confirmed piece sits on the square it was committed at; record
	// those seats before the tentative placement.
	seats := confirmed.Positions()

	board[candidate] = entity.CellHuman

	// The human may hold at most one piece more than the machine. A larger
	// surplus after the placement means no new piece reached the table, so
	// the sighting is the most recent confirmed piece on a new square.
	humanMarks := len(board.Marked(entity.CellHuman))
	machineMarks := len(board.Marked(entity.CellMachine))

	if humanMarks > machineMarks+1 && len(seats) > 0 {
		board[candidate] = entity.CellEmpty

		return CheatOutcome{
			Verdict: VerdictCheat,
			From:    seats[len(seats)-1],
			To:      candidate,
		}, nil
	}

	// A confirmed seat that lost its mark means that piece moved instead of
	// a new one being added.
	for _, seat := range seats {
		if board[seat] != entity.CellHuman {
			board[candidate] = entity.CellEmpty

			return CheatOutcome{Verdict: VerdictCheat, From: seat, To: candidate}, nil
		}
	}

	return CheatOutcome{Verdict: VerdictClean}, nil
}
