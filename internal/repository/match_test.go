package repository

import (
	"testing"

	"github.com/armlabs/tictactoe-robot/internal/entity"
	"github.com/armlabs/tictactoe-robot/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchRepository_CreateOrUpdate(t *testing.T) {
	ctx, st := suite.New(t)

	matchRepo := NewMatchRepository(st.Storage)

	// Given: a live match with a committed human move
	match := entity.NewMatch("123", entity.StarterHuman)
	match.Board[0] = entity.CellHuman
	match.Confirmed.Add(0)

	// When: CreateOrUpdate is called
	err := matchRepo.CreateOrUpdate(ctx, match)

	// Then: no error should be returned, and the match is stored
	require.NoError(t, err)
}

func TestMatchRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		matchRepo := NewMatchRepository(st.Storage)

		// Given: a stored match with board state and a confirmed position
		match := entity.NewMatch("123", entity.StarterHuman)
		match.Board[0] = entity.CellHuman
		match.Board[4] = entity.CellMachine
		match.Confirmed.Add(0)
		match.MachineMoves = 1
		match.Phase = entity.PhaseAwaitingHuman

		err := matchRepo.CreateOrUpdate(ctx, match)
		require.NoError(t, err)

		// When: GetByID is called with the existing ID
		retrievedMatch, err := matchRepo.GetByID(ctx, match.ID)

		// Then: the retrieved match should round-trip the saved state
		require.NoError(t, err)
		require.Equal(t, match.ID, retrievedMatch.ID)
		assert.Equal(t, match.Board, retrievedMatch.Board)
		assert.Equal(t, match.Phase, retrievedMatch.Phase)
		assert.Equal(t, match.MachineMoves, retrievedMatch.MachineMoves)
		assert.True(t, retrievedMatch.Confirmed.Contains(0))
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		matchRepo := NewMatchRepository(st.Storage)

		nonExistentMatchID := "9999999"

		// When: GetByID is called with a non-existent ID
		retrievedMatch, err := matchRepo.GetByID(ctx, nonExistentMatchID)

		// Then: an ErrMatchNotFound error should be returned
		require.Error(t, err)
		assert.Equal(t, ErrMatchNotFound, err)
		assert.Nil(t, retrievedMatch)
	})
}

func TestMatchRepository_GetActive(t *testing.T) {
	t.Run("GetActive_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		matchRepo := NewMatchRepository(st.Storage)

		// Given: a stored match, making it the active one
		match := entity.NewMatch("123", entity.StarterMachine)
		err := matchRepo.CreateOrUpdate(ctx, match)
		require.NoError(t, err)

		// When: GetActive is called
		activeMatch, err := matchRepo.GetActive(ctx)

		// Then: the stored match comes back
		require.NoError(t, err)
		assert.Equal(t, match.ID, activeMatch.ID)
		assert.Equal(t, entity.StarterMachine, activeMatch.Starter)
		assert.Equal(t, entity.PhaseMachineTurn, activeMatch.Phase)
	})

	t.Run("GetActive_NoActiveMatch", func(t *testing.T) {
		ctx, st := suite.New(t)

		matchRepo := NewMatchRepository(st.Storage)

		// When: GetActive is called on an empty store
		activeMatch, err := matchRepo.GetActive(ctx)

		// Then: an ErrNoActiveMatch error should be returned
		require.Error(t, err)
		assert.Equal(t, ErrNoActiveMatch, err)
		assert.Nil(t, activeMatch)
	})
}

func TestMatchRepository_DeleteByID(t *testing.T) {
	t.Run("DeleteByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		matchRepo := NewMatchRepository(st.Storage)

		// Given: a stored match
		match := entity.NewMatch("123", entity.StarterHuman)
		err := matchRepo.CreateOrUpdate(ctx, match)
		require.NoError(t, err)

		// When: DeleteByID is called
		err = matchRepo.DeleteByID(ctx, match.ID)
		require.NoError(t, err)

		// Then: the match and the active pointer are both gone
		_, err = matchRepo.GetByID(ctx, match.ID)
		assert.Equal(t, ErrMatchNotFound, err)

		_, err = matchRepo.GetActive(ctx)
		assert.Equal(t, ErrNoActiveMatch, err)
	})

	t.Run("DeleteByID_KeepsOtherActivePointer", func(t *testing.T) {
		ctx, st := suite.New(t)

		matchRepo := NewMatchRepository(st.Storage)

		// Given: two stored matches, the second one active
		first := entity.NewMatch("123", entity.StarterHuman)
		require.NoError(t, matchRepo.CreateOrUpdate(ctx, first))

		second := entity.NewMatch("456", entity.StarterHuman)
		require.NoError(t, matchRepo.CreateOrUpdate(ctx, second))

		// When: the first match is deleted
		err := matchRepo.DeleteByID(ctx, first.ID)
		require.NoError(t, err)

		// Then: the second match is still the active one
		activeMatch, err := matchRepo.GetActive(ctx)
		require.NoError(t, err)
		assert.Equal(t, second.ID, activeMatch.ID)
	})
}
