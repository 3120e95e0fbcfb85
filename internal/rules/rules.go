// Package rules validates and applies moves on a board and derives the
// match outcome from board state alone. It performs no I/O; surfacing
// cheat reports and results to the outside world is the controller's job.
package rules

import (
	"github.com/armlabs/tictactoe-robot/internal/apperror"
	"github.com/armlabs/tictactoe-robot/internal/entity"
)

// ApplyMove puts mark on the board at position p. It mutates exactly one
// cell and fails without touching the board when p is out of range or the
// cell is taken.
func ApplyMove(board *entity.Board, p entity.Position, mark entity.Cell) error {
	if !p.Valid() {
		return apperror.ErrPositionOutOfRange
	}

	if board[p] != entity.CellEmpty {
		return apperror.ErrCellOccupied
	}

	board[p] = mark

	return nil
}

// ClearCell empties position p, undoing an earlier ApplyMove.
func ClearCell(board *entity.Board, p entity.Position) error {
	if !p.Valid() {
		return apperror.ErrPositionOutOfRange
	}

	board[p] = entity.CellEmpty

	return nil
}

// IsWinner reports whether mark occupies a full line. Lines are checked in
// a fixed order: rows, columns, main diagonal, anti-diagonal.
func IsWinner(board *entity.Board, mark entity.Cell) bool {
	for _, line := range entity.WinLines {
		if board[line[0]] == mark && board[line[1]] == mark && board[line[2]] == mark {
			return true
		}
	}

	return false
}

// IsFull reports whether no empty cell remains.
func IsFull(board *entity.Board) bool {
	for p := entity.Position(0); p < entity.BoardCells; p++ {
		if board[p] == entity.CellEmpty {
			return false
		}
	}

	return true
}

// Result derives the outcome from the board. The human win is checked
// before the machine win, and a full board with no winner is a draw.
func Result(board *entity.Board) entity.GameResult {
	if IsWinner(board, entity.CellHuman) {
		return entity.ResultHumanWin
	}

	if IsWinner(board, entity.CellMachine) {
		return entity.ResultMachineWin
	}

	if IsFull(board) {
		return entity.ResultDraw
	}

	return entity.ResultInProgress
}
