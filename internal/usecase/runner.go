// Package usecase owns the live match loop: polling the vision feed,
// driving the game controller and persisting match state around it.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/armlabs/tictactoe-robot/internal/apperror"
	"github.com/armlabs/tictactoe-robot/internal/config"
	"github.com/armlabs/tictactoe-robot/internal/entity"
	"github.com/armlabs/tictactoe-robot/internal/game"
	"github.com/armlabs/tictactoe-robot/internal/monitor"
	"github.com/armlabs/tictactoe-robot/internal/repository"
	"github.com/armlabs/tictactoe-robot/internal/rules"
	"github.com/google/uuid"
)

// Observer is the vision collaborator boundary: it reports the next piece
// sighting, or nil when nothing new was seen within a poll interval.
type Observer interface {
	Observe(ctx context.Context) (*entity.Observation, error)
}

// MatchRunner plays matches one after another. Every committed move is
// snapshotted to the match repository, so a restart resumes the match in
// progress; finished matches move to the archive.
type MatchRunner struct {
	logger     *slog.Logger
	controller *game.Controller
	observer   Observer
	matches    repository.MatchRepository
	archive    repository.ArchiveRepository
	metrics    *monitor.Metrics
	conf       config.Game
}

func NewMatchRunner(
	logger *slog.Logger,
	controller *game.Controller,
	observer Observer,
	matches repository.MatchRepository,
	archive repository.ArchiveRepository,
	metrics *monitor.Metrics,
	conf config.Game,
) *MatchRunner {
	return &MatchRunner{
		logger:     logger.With("component", "runner"),
		controller: controller,
		observer:   observer,
		matches:    matches,
		archive:    archive,
		metrics:    metrics,
		conf:       conf,
	}
}

// Run plays matches until the context is canceled or, without continuous
// mode, until the first match finishes. Cancellation mid-match leaves the
// snapshot in place so the next run resumes it.
func (that *MatchRunner) Run(ctx context.Context) error {
	for {
		result, err := that.runMatch(ctx)

		if errors.Is(err, context.Canceled) {
			that.logger.Info("match interrupted, snapshot kept for resume")

			return nil
		}

		if err != nil {
			return fmt.Errorf("match halted: %w", err)
		}

		that.logger.Info("match finished", "result", result)

		if !that.conf.Continuous {
			return nil
		}
	}
}

func (that *MatchRunner) runMatch(ctx context.Context) (entity.GameResult, error) {
	match, err := that.loadOrCreateMatch(ctx)
	if err != nil {
		return "", err
	}

	log := that.logger.With("matchID", match.ID)

	that.metrics.MatchStarted()
	defer that.metrics.MatchEnded()

	// In machine-first mode the opening move is scripted, not searched.
	if match.IsMachineTurn() {
		var fixed *entity.Position
		if that.conf.MachineStarts && match.MachineMoves == 0 {
			opening := entity.Position(that.conf.OpeningPosition)
			fixed = &opening
		}

		if _, err = that.controller.PlayMachineTurn(match, fixed); err != nil {
			return "", err
		}

		if err = that.matches.CreateOrUpdate(ctx, match); err != nil {
			return "", fmt.Errorf("failed to snapshot match: %w", err)
		}
	}

	for !match.IsFinished() {
		obs, err := that.observer.Observe(ctx)
		if err != nil {
			return "", fmt.Errorf("vision feed failed: %w", err)
		}

		if obs != nil {
			that.metrics.ObservationReceived()
		}

		event, err := that.controller.HandleObservation(match, obs)

		// A sighting the rules reject outright is a vision misread, not a
		// reason to halt the match.
		if errors.Is(err, apperror.ErrPositionOutOfRange) || errors.Is(err, apperror.ErrCellOccupied) {
			log.Warn("discarding implausible sighting", "error", err)

			continue
		}

		if err != nil {
			return "", err
		}

		if event == game.EventIgnored {
			continue
		}

		if err = that.matches.CreateOrUpdate(ctx, match); err != nil {
			return "", fmt.Errorf("failed to snapshot match: %w", err)
		}
	}

	return that.finishMatch(ctx, match)
}

// loadOrCreateMatch resumes the active match when one survives from an
// earlier run, and starts a fresh one otherwise.
func (that *MatchRunner) loadOrCreateMatch(ctx context.Context) (*entity.Match, error) {
	match, err := that.matches.GetActive(ctx)
	if err == nil {
		that.logger.Info("resuming interrupted match", "matchID", match.ID, "phase", match.Phase)

		return match, nil
	}

	if !errors.Is(err, repository.ErrNoActiveMatch) {
		return nil, fmt.Errorf("failed to look up active match: %w", err)
	}

	starter := entity.StarterHuman
	if that.conf.MachineStarts {
		starter = entity.StarterMachine
	}

	match = entity.NewMatch(uuid.NewString(), starter)

	if err = that.matches.CreateOrUpdate(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to snapshot new match: %w", err)
	}

	that.logger.Info("match started", "matchID", match.ID, "starter", starter)

	return match, nil
}

// finishMatch archives the result and drops the live snapshot.
func (that *MatchRunner) finishMatch(ctx context.Context, match *entity.Match) (entity.GameResult, error) {
	result := rules.Result(&match.Board)
	that.metrics.MatchCompleted(result)

	if err := that.archive.Archive(ctx, match, result, time.Now().UTC()); err != nil {
		return "", fmt.Errorf("failed to archive match: %w", err)
	}

	if err := that.matches.DeleteByID(ctx, match.ID); err != nil {
		return "", fmt.Errorf("failed to drop match snapshot: %w", err)
	}

	return result, nil
}
