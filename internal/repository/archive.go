package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/armlabs/tictactoe-robot/internal/entity"
)

// ArchivedMatch is one finished match as kept in the archive.
type ArchivedMatch struct {
	ID           string            `json:"id"`
	Starter      string            `json:"starter"`
	Result       entity.GameResult `json:"result"`
	MachineMoves int               `json:"machineMoves"`
	Cheats       int               `json:"cheats"`
	FinalBoard   string            `json:"finalBoard"`
	StartedAt    time.Time         `json:"startedAt"`
	FinishedAt   time.Time         `json:"finishedAt"`
}

type ArchiveRepository interface {
	Archive(ctx context.Context, match *entity.Match, result entity.GameResult, finishedAt time.Time) error
	Recent(ctx context.Context, limit int) ([]ArchivedMatch, error)
}

type dbArchive struct {
	conn *sql.DB
}

func NewArchiveRepository(conn *sql.DB) ArchiveRepository {
	return &dbArchive{
		conn: conn,
	}
}

// Archive stores a finished match. The board is kept in its human-readable
// three-row rendering.
func (that *dbArchive) Archive(ctx context.Context, match *entity.Match, result entity.GameResult, finishedAt time.Time) error {
	query := `INSERT INTO matches
		(id, starter, result, machine_moves, cheats, final_board, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := that.conn.ExecContext(ctx, query,
		match.ID,
		match.Starter,
		string(result),
		match.MachineMoves,
		match.Cheats,
		match.Board.String(),
		match.StartedAt,
		finishedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to archive match: %w", err)
	}

	return nil
}

// Recent lists the newest finished matches, most recent first.
func (that *dbArchive) Recent(ctx context.Context, limit int) ([]ArchivedMatch, error) {
	query := `SELECT id, starter, result, machine_moves, cheats, final_board, started_at, finished_at
		FROM matches ORDER BY finished_at DESC LIMIT ?`

	rows, err := that.conn.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent matches: %w", err)
	}
	defer rows.Close()

	var matches []ArchivedMatch

	for rows.Next() {
		var match ArchivedMatch

		var result string
		if err = rows.Scan(
			&match.ID,
			&match.Starter,
			&result,
			&match.MachineMoves,
			&match.Cheats,
			&match.FinalBoard,
			&match.StartedAt,
			&match.FinishedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", err)
		}

		match.Result = entity.GameResult(result)
		matches = append(matches, match)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read match rows: %w", err)
	}

	return matches, nil
}
