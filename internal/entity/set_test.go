package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositionSet(t *testing.T) {
	t.Run("Members come back in ascending order", func(t *testing.T) {
		// Given: positions added out of order
		var set PositionSet
		set.Add(8)
		set.Add(0)
		set.Add(4)

		// Then: the set reports them sorted
		assert.Equal(t, []Position{0, 4, 8}, set.Positions())
		assert.Equal(t, 3, set.Len())
		assert.True(t, set.Contains(4))
		assert.False(t, set.Contains(5))
	})

	t.Run("Adding twice keeps one member", func(t *testing.T) {
		var set PositionSet
		set.Add(2)
		set.Add(2)

		assert.Equal(t, 1, set.Len())
	})

	t.Run("Snapshot round-trip through JSON", func(t *testing.T) {
		// Given: a confirmed-positions set as a match snapshot holds it
		var set PositionSet
		set.Add(0)
		set.Add(6)

		// When: the set is marshaled and read back
		data, err := json.Marshal(set)
		require.NoError(t, err)
		assert.JSONEq(t, "[0,6]", string(data))

		var restored PositionSet
		require.NoError(t, json.Unmarshal(data, &restored))

		// Then: the restored set matches the original
		assert.Equal(t, set, restored)
	})
}

func TestBoard_String(t *testing.T) {
	// Given: a board mid-game
	board := Board{
		CellHuman, "", "",
		"", CellMachine, "",
		"", "", CellHuman,
	}

	// Then: empty squares render as dots, row by row
	assert.Equal(t, "X . .\n. O .\n. . X", board.String())
}
