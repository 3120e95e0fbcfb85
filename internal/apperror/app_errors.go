package apperror

import "errors"

var (
	ErrMatchFinished      = errors.New("match is already finished")
	ErrNotHumanTurn       = errors.New("it's not the human's turn")
	ErrNotMachineTurn     = errors.New("it's not the machine's turn")
	ErrPositionOutOfRange = errors.New("position is out of range")
	ErrCellOccupied       = errors.New("cell is already occupied")
	ErrNoMovesAvailable   = errors.New("no moves available")
)
