package entity

import (
	"encoding/json"
	"math/bits"
)

// PositionSet is a set of board positions. The zero value is an empty set,
// and the set marshals to JSON as a sorted array of positions.
type PositionSet struct {
	mask uint16
}

func (that *PositionSet) Add(p Position) {
	that.mask |= 1 << uint(p)
}

func (that *PositionSet) Remove(p Position) {
	that.mask &^= 1 << uint(p)
}

func (that PositionSet) Contains(p Position) bool {
	return that.mask&(1<<uint(p)) != 0
}

func (that PositionSet) Len() int {
	return bits.OnesCount16(that.mask)
}

// Positions returns the members of the set in ascending order.
func (that PositionSet) Positions() []Position {
	positions := make([]Position, 0, that.Len())
	for p := Position(0); p < BoardCells; p++ {
		if that.Contains(p) {
			positions = append(positions, p)
		}
	}
	return positions
}

func (that PositionSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(that.Positions())
}

func (that *PositionSet) UnmarshalJSON(data []byte) error {
	var positions []Position
	if err := json.Unmarshal(data, &positions); err != nil {
		return err
	}

	that.mask = 0
	for _, p := range positions {
		that.Add(p)
	}

	return nil
}
