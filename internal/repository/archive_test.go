package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/armlabs/tictactoe-robot/internal/entity"
	"github.com/armlabs/tictactoe-robot/internal/repository/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestArchive(t *testing.T) (context.Context, ArchiveRepository) {
	t.Helper()

	ctx := context.Background()

	st, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "matches.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, st.Close())
	})

	require.NoError(t, st.Init(ctx))

	return ctx, NewArchiveRepository(st.Connection)
}

func finishedMatch(id string) *entity.Match {
	match := entity.NewMatch(id, entity.StarterHuman)
	match.Board = entity.Board{
		entity.CellHuman, entity.CellHuman, entity.CellMachine,
		entity.CellMachine, entity.CellMachine, entity.CellHuman,
		entity.CellHuman, entity.CellMachine, entity.CellHuman,
	}
	match.Phase = entity.PhaseFinished
	match.MachineMoves = 4

	return match
}

func TestArchiveRepository_Archive(t *testing.T) {
	ctx, archiveRepo := newTestArchive(t)

	// Given: a finished match
	match := finishedMatch("123")

	// When: Archive is called
	err := archiveRepo.Archive(ctx, match, entity.ResultDraw, time.Now().UTC())

	// Then: no error should be returned, and the match is listed
	require.NoError(t, err)

	matches, err := archiveRepo.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, match.ID, matches[0].ID)
	assert.Equal(t, entity.ResultDraw, matches[0].Result)
	assert.Equal(t, 4, matches[0].MachineMoves)
	assert.Equal(t, match.Board.String(), matches[0].FinalBoard)
}

func TestArchiveRepository_Recent(t *testing.T) {
	t.Run("Recent_OrdersNewestFirst", func(t *testing.T) {
		ctx, archiveRepo := newTestArchive(t)

		// Given: three archived matches finished a minute apart
		finished := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
		for i, id := range []string{"first", "second", "third"} {
			match := finishedMatch(id)
			err := archiveRepo.Archive(ctx, match, entity.ResultMachineWin, finished.Add(time.Duration(i)*time.Minute))
			require.NoError(t, err)
		}

		// When: Recent is called with a limit of two
		matches, err := archiveRepo.Recent(ctx, 2)

		// Then: the two newest matches come back, newest first
		require.NoError(t, err)
		require.Len(t, matches, 2)
		assert.Equal(t, "third", matches[0].ID)
		assert.Equal(t, "second", matches[1].ID)
	})

	t.Run("Recent_EmptyArchive", func(t *testing.T) {
		ctx, archiveRepo := newTestArchive(t)

		// When: Recent is called on an empty archive
		matches, err := archiveRepo.Recent(ctx, 10)

		// Then: no error and no matches
		require.NoError(t, err)
		assert.Empty(t, matches)
	})
}
