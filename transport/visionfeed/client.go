// Package visionfeed subscribes to the vision service's observation
// stream. The camera side decides what counts as a piece sighting; this
// client only turns its JSON messages into observations and reports "no
// new piece" when the stream stays quiet for a poll interval.
package visionfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/armlabs/tictactoe-robot/internal/entity"
	"github.com/gorilla/websocket"
)

type Client struct {
	logger *slog.Logger

	conn        *websocket.Conn
	pollTimeout time.Duration

	observations chan entity.Observation
	readErr      chan error
}

// New dials the vision service's websocket endpoint and starts reading
// its stream.
func New(ctx context.Context, logger *slog.Logger, url string, pollTimeout time.Duration) (*Client, error) {
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to dial vision feed at %s: %w", url, err)
	}

	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	client := &Client{
		logger:       logger.With("component", "visionfeed"),
		conn:         conn,
		pollTimeout:  pollTimeout,
		observations: make(chan entity.Observation),
		readErr:      make(chan error, 1),
	}

	go client.readLoop()

	return client, nil
}

// readLoop drains the stream until the connection dies. The first read
// failure is kept for Observe to surface; gorilla connections do not
// survive a read error, so the loop ends with it.
func (that *Client) readLoop() {
	for {
		_, message, err := that.conn.ReadMessage()
		if err != nil {
			that.readErr <- fmt.Errorf("failed to read observation: %w", err)
			close(that.observations)

			return
		}

		var obs entity.Observation
		if err = json.Unmarshal(message, &obs); err != nil {
			that.logger.Warn("dropping malformed observation", "error", err)

			continue
		}

		if !obs.Position.Valid() {
			that.logger.Warn("dropping observation off the board", "position", obs.Position)

			continue
		}

		that.observations <- obs
	}
}

// Observe waits up to one poll interval for the next sighting. A quiet
// stream returns a nil observation and no error; the same position may be
// reported again across calls, and de-duplication is the caller's job.
func (that *Client) Observe(ctx context.Context) (*entity.Observation, error) {
	select {
	case obs, ok := <-that.observations:
		if !ok {
			return nil, <-that.readErr
		}

		that.logger.Debug("observation received", "position", obs.Position, "player", obs.Player)

		return &obs, nil
	case <-time.After(that.pollTimeout):
		return nil, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("observe canceled: %w", ctx.Err())
	}
}

func (that *Client) Close() error {
	if err := that.conn.Close(); err != nil {
		return fmt.Errorf("failed to close vision feed: %w", err)
	}

	return nil
}
