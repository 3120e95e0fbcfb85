// Package repository persists matches: live snapshots in redis so an
// interrupted match survives a controller restart, and a sqlite archive of
// finished matches for the operator surface.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/armlabs/tictactoe-robot/internal/entity"
	"github.com/redis/go-redis/v9"
)

var (
	ErrMatchNotFound = errors.New("match not found")
	ErrNoActiveMatch = errors.New("no active match")
)

const activeMatchKey = "match:active"

type MatchRepository interface {
	CreateOrUpdate(ctx context.Context, match *entity.Match) error
	GetByID(ctx context.Context, id string) (*entity.Match, error)
	GetActive(ctx context.Context) (*entity.Match, error)
	DeleteByID(ctx context.Context, id string) error
}

type dbMatch struct {
	client *redis.Client
}

func NewMatchRepository(client *redis.Client) MatchRepository {
	return &dbMatch{
		client: client,
	}
}

// CreateOrUpdate snapshots the match and marks it as the active one.
func (that *dbMatch) CreateOrUpdate(ctx context.Context, match *entity.Match) error {
	matchJSON, err := json.Marshal(match)
	if err != nil {
		return fmt.Errorf("could not marshal match: %w", err)
	}

	matchKey := "match:" + match.ID
	if err = that.client.Set(ctx, matchKey, matchJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set match: %w", err)
	}

	if err = that.client.Set(ctx, activeMatchKey, match.ID, 0).Err(); err != nil {
		return fmt.Errorf("failed to set active match pointer: %w", err)
	}

	return nil
}

func (that *dbMatch) GetByID(ctx context.Context, id string) (*entity.Match, error) {
	matchKey := "match:" + id

	response, err := that.client.Get(ctx, matchKey).Result()

	if errors.Is(err, redis.Nil) {
		return nil, ErrMatchNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get match by id: %w", err)
	}

	var existingMatch entity.Match
	if err = json.Unmarshal([]byte(response), &existingMatch); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match: %w", err)
	}

	return &existingMatch, nil
}

// GetActive resolves the active-match pointer and loads its snapshot.
func (that *dbMatch) GetActive(ctx context.Context) (*entity.Match, error) {
	id, err := that.client.Get(ctx, activeMatchKey).Result()

	if errors.Is(err, redis.Nil) {
		return nil, ErrNoActiveMatch
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get active match pointer: %w", err)
	}

	return that.GetByID(ctx, id)
}

// DeleteByID removes the snapshot and, when it points at this match, the
// active-match pointer.
func (that *dbMatch) DeleteByID(ctx context.Context, id string) error {
	matchKey := "match:" + id

	if err := that.client.Del(ctx, matchKey).Err(); err != nil {
		return fmt.Errorf("failed to delete match by ID: %w", err)
	}

	active, err := that.client.Get(ctx, activeMatchKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to get active match pointer: %w", err)
	}

	if active == id {
		if err = that.client.Del(ctx, activeMatchKey).Err(); err != nil {
			return fmt.Errorf("failed to delete active match pointer: %w", err)
		}
	}

	return nil
}
