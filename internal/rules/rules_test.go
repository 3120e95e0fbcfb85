package rules

import (
	"testing"

	"github.com/armlabs/tictactoe-robot/internal/apperror"
	"github.com/armlabs/tictactoe-robot/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyMove(t *testing.T) {
	t.Run("Place mark on empty cell", func(t *testing.T) {
		// Given: an empty board
		board := entity.NewBoard()

		// When: the human plays position 4
		err := ApplyMove(&board, 4, entity.CellHuman)
		require.NoError(t, err)

		// Then: exactly that cell is marked
		expected := entity.Board{"", "", "", "", entity.CellHuman, "", "", "", ""}
		require.Equal(t, expected, board)
	})

	t.Run("Error on occupied cell", func(t *testing.T) {
		// Given: a board with the machine on position 4
		board := entity.Board{"", "", "", "", entity.CellMachine, "", "", "", ""}

		// When: the human tries the same position
		err := ApplyMove(&board, 4, entity.CellHuman)

		// Then: an error ErrCellOccupied must be returned and the board kept
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		require.Equal(t, entity.Board{"", "", "", "", entity.CellMachine, "", "", "", ""}, board)
	})

	t.Run("Error on position above range", func(t *testing.T) {
		// Given: an empty board
		board := entity.NewBoard()

		// When: a position beyond the grid is passed
		err := ApplyMove(&board, 9, entity.CellHuman)

		// Then: an error ErrPositionOutOfRange must be returned
		assert.ErrorIs(t, err, apperror.ErrPositionOutOfRange)
	})

	t.Run("Error on negative position", func(t *testing.T) {
		// Given: an empty board
		board := entity.NewBoard()

		// When: a negative position is passed
		err := ApplyMove(&board, -1, entity.CellHuman)

		// Then: an error ErrPositionOutOfRange must be returned
		assert.ErrorIs(t, err, apperror.ErrPositionOutOfRange)
	})

	t.Run("Clear restores the prior board", func(t *testing.T) {
		// Given: a board mid-game
		board := entity.Board{entity.CellHuman, "", "", "", entity.CellMachine, "", "", "", ""}
		prior := board

		// When: a move is applied and then cleared
		require.NoError(t, ApplyMove(&board, 8, entity.CellHuman))
		require.NoError(t, ClearCell(&board, 8))

		// Then: the board is byte for byte the prior one
		require.Equal(t, prior, board)
	})
}

func TestIsWinner(t *testing.T) {
	t.Run("Every canonical line wins", func(t *testing.T) {
		for _, line := range entity.WinLines {
			// Given: a board with the human on one full line
			board := entity.NewBoard()
			for _, p := range line {
				board[p] = entity.CellHuman
			}

			// Then: the human is the winner and the machine is not
			assert.True(t, IsWinner(&board, entity.CellHuman), "line %v", line)
			assert.False(t, IsWinner(&board, entity.CellMachine), "line %v", line)
		}
	})

	t.Run("No winner without a full line", func(t *testing.T) {
		// Given: a board with three scattered human marks
		board := entity.Board{entity.CellHuman, entity.CellMachine, entity.CellHuman, "", entity.CellMachine, "", entity.CellHuman, "", ""}

		// Then: nobody has won
		assert.False(t, IsWinner(&board, entity.CellHuman))
		assert.False(t, IsWinner(&board, entity.CellMachine))
	})
}

func TestIsFull(t *testing.T) {
	t.Run("Full board", func(t *testing.T) {
		// Given: a board with every cell taken
		board := entity.Board{
			entity.CellMachine, entity.CellHuman, entity.CellMachine,
			entity.CellMachine, entity.CellHuman, entity.CellHuman,
			entity.CellHuman, entity.CellMachine, entity.CellMachine,
		}

		// Then: the board reports full
		assert.True(t, IsFull(&board))
	})

	t.Run("One empty cell", func(t *testing.T) {
		// Given: a board with a single free cell
		board := entity.Board{
			entity.CellMachine, entity.CellHuman, entity.CellMachine,
			entity.CellMachine, "", entity.CellHuman,
			entity.CellHuman, entity.CellMachine, entity.CellMachine,
		}

		// Then: the board is not full
		assert.False(t, IsFull(&board))
	})

	t.Run("Empty board", func(t *testing.T) {
		// Given: a fresh board
		board := entity.NewBoard()

		// Then: the board is not full
		assert.False(t, IsFull(&board))
	})
}

func TestResult(t *testing.T) {
	t.Run("Human win", func(t *testing.T) {
		// Given: the human holds the first row
		board := entity.Board{entity.CellHuman, entity.CellHuman, entity.CellHuman, "", entity.CellMachine, "", "", entity.CellMachine, ""}

		// Then: the result is a human win
		require.Equal(t, entity.ResultHumanWin, Result(&board))
	})

	t.Run("Machine win", func(t *testing.T) {
		// Given: the machine holds the main diagonal
		board := entity.Board{entity.CellMachine, entity.CellHuman, entity.CellHuman, "", entity.CellMachine, "", entity.CellHuman, "", entity.CellMachine}

		// Then: the result is a machine win
		require.Equal(t, entity.ResultMachineWin, Result(&board))
	})

	t.Run("Draw", func(t *testing.T) {
		// Given: a full board with no line
		board := entity.Board{
			entity.CellMachine, entity.CellHuman, entity.CellMachine,
			entity.CellMachine, entity.CellHuman, entity.CellHuman,
			entity.CellHuman, entity.CellMachine, entity.CellMachine,
		}

		// Then: the result is a draw
		require.Equal(t, entity.ResultDraw, Result(&board))
	})

	t.Run("In progress", func(t *testing.T) {
		// Given: a board mid-game
		board := entity.Board{entity.CellHuman, "", "", "", entity.CellMachine, "", "", "", ""}

		// Then: no result yet
		require.Equal(t, entity.ResultInProgress, Result(&board))
	})
}
