// Package search picks the machine's move by exhaustive minimax. The game
// tree is small enough to walk without pruning or caching; only terminal
// positions are scored.
package search

import (
	"github.com/armlabs/tictactoe-robot/internal/apperror"
	"github.com/armlabs/tictactoe-robot/internal/entity"
	"github.com/armlabs/tictactoe-robot/internal/rules"
)

const (
	scoreMachineWin = 1
	scoreHumanWin   = -1
	scoreDraw       = 0
)

// BestMove returns the strongest machine move for the given board. Cells are
// scanned in increasing index order and only a strictly greater score
// replaces the current pick, so equal scores keep the lowest position. The
// board is unchanged on return. Fails with ErrNoMovesAvailable when no empty
// cell remains.
func BestMove(board *entity.Board) (entity.Position, error) {
	best := entity.Position(-1)
	bestScore := scoreHumanWin - 1

	for p := entity.Position(0); p < entity.BoardCells; p++ {
		if board[p] != entity.CellEmpty {
			continue
		}

		board[p] = entity.CellMachine
		score := minimax(board, false)
		board[p] = entity.CellEmpty

		if score > bestScore {
			bestScore = score
			best = p
		}
	}

	if best < 0 {
		return 0, apperror.ErrNoMovesAvailable
	}

	return best, nil
}

// minimax scores the board for the side to move by trying every empty cell,
// recursing with the turn flipped and reverting the trial mark. Terminal
// positions score +1 for a machine win, -1 for a human win and 0 for a full
// board; nothing else is ever scored.
func minimax(board *entity.Board, machineToMove bool) int {
	if rules.IsWinner(board, entity.CellMachine) {
		return scoreMachineWin
	}

	if rules.IsWinner(board, entity.CellHuman) {
		return scoreHumanWin
	}

	if rules.IsFull(board) {
		return scoreDraw
	}

	if machineToMove {
		best := scoreHumanWin - 1

		for p := entity.Position(0); p < entity.BoardCells; p++ {
			if board[p] != entity.CellEmpty {
				continue
			}

			board[p] = entity.CellMachine
			if score := minimax(board, false); score > best {
				best = score
			}
			board[p] = entity.CellEmpty
		}

		return best
	}

	best := scoreMachineWin + 1

	for p := entity.Position(0); p < entity.BoardCells; p++ {
		if board[p] != entity.CellEmpty {
			continue
		}

		board[p] = entity.CellHuman
		if score := minimax(board, true); score < best {
			best = score
		}
		board[p] = entity.CellEmpty
	}

	return best
}
