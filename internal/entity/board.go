package entity

import "strings"

const (
	CellEmpty   Cell = ""
	CellHuman   Cell = "X"
	CellMachine Cell = "O"
)

const (
	ResultInProgress GameResult = ""
	ResultHumanWin   GameResult = "human"
	ResultMachineWin GameResult = "machine"
	ResultDraw       GameResult = "draw"
)

// BoardCells is the number of squares on the board.
const BoardCells = 9

// Cell is the content of a single board square.
type Cell string

// GameResult is the outcome of a match. It is always derived from the
// board by the rules engine, never stored alongside a live match.
type GameResult string

// Position addresses a board square as a flat index, row*3 + col:
//
//	0 1 2
//	3 4 5
//	6 7 8
type Position int

// Valid reports whether the position addresses a square on the board.
func (that Position) Valid() bool {
	return that >= 0 && that < BoardCells
}

func (that Position) Row() int {
	return int(that) / 3
}

func (that Position) Col() int {
	return int(that) % 3
}

// Digit returns the position as its single ASCII digit.
func (that Position) Digit() byte {
	return byte('0' + that)
}

func PositionAt(row, col int) Position {
	return Position(row*3 + col)
}

// WinLines are the eight three-in-a-row combinations: rows, columns,
// main diagonal, anti-diagonal. The rules engine scans them in this order.
var WinLines = [8][3]Position{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board is the 3x3 grid for one match. The zero value is an empty board.
type Board [BoardCells]Cell

func NewBoard() Board {
	return Board{}
}

func (that *Board) Cell(p Position) Cell {
	return that[p]
}

func (that *Board) IsEmptyAt(p Position) bool {
	return that[p] == CellEmpty
}

// Marked returns the positions holding the given mark, in ascending order.
func (that *Board) Marked(mark Cell) []Position {
	var positions []Position
	for p := Position(0); p < BoardCells; p++ {
		if that[p] == mark {
			positions = append(positions, p)
		}
	}
	return positions
}

// String renders the board as three rows with "." for empty squares.
func (that Board) String() string {
	var b strings.Builder
	for row := 0; row < 3; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		for col := 0; col < 3; col++ {
			if col > 0 {
				b.WriteByte(' ')
			}
			cell := that[PositionAt(row, col)]
			if cell == CellEmpty {
				b.WriteByte('.')
			} else {
				b.WriteString(string(cell))
			}
		}
	}
	return b.String()
}
