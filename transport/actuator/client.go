// Package actuator carries framed commands to the arm over a plain TCP
// byte stream. The wire format has no message boundaries of its own, so
// the client writes each frame as-is; the serial bridge on the far end
// owns the physical link.
package actuator

import (
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"
)

type Client struct {
	logger *slog.Logger

	mu           sync.Mutex
	conn         net.Conn
	writeTimeout time.Duration
}

// New dials the actuator bridge. The connection is held for the client's
// lifetime; a broken link surfaces as a Send error rather than a reconnect.
func New(logger *slog.Logger, addr string, dialTimeout, writeTimeout time.Duration) (*Client, error) {
	conn, err := net.DialTimeout("tcp", addr, dialTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to dial actuator at %s: %w", addr, err)
	}

	return &Client{
		logger:       logger.With("component", "actuator"),
		conn:         conn,
		writeTimeout: writeTimeout,
	}, nil
}

// Send writes one frame to the wire. Frames are never interleaved; callers
// from different goroutines are serialized here.
func (that *Client) Send(frame []byte) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.conn.SetWriteDeadline(time.Now().Add(that.writeTimeout)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if _, err := that.conn.Write(frame); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}

	that.logger.Debug("frame written", "bytes", len(frame))

	return nil
}

func (that *Client) Close() error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.conn.Close(); err != nil {
		return fmt.Errorf("failed to close actuator connection: %w", err)
	}

	return nil
}
