// Package monitor exposes Prometheus collectors for the robot's game loop.
package monitor

import (
	"time"

	"github.com/armlabs/tictactoe-robot/internal/entity"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors fed by the controller, the match runner and
// the transports.
type Metrics struct {
	MatchesCompleted *prometheus.CounterVec
	MovesPlayed      *prometheus.CounterVec
	CheatsDetected   prometheus.Counter
	FramesSent       prometheus.Counter
	Observations     prometheus.Counter
	ActiveMatches    prometheus.Gauge
	SearchDuration   prometheus.Histogram
}

// NewMetrics builds the collectors and registers them on reg.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	metrics := &Metrics{
		MatchesCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "matches_completed_total",
			Help:      "Matches finished, labeled by result",
		}, []string{"result"}),
		MovesPlayed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "moves_played_total",
			Help:      "Moves committed to the board, labeled by player",
		}, []string{"player"}),
		CheatsDetected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cheats_detected_total",
			Help:      "Human moves rejected as cheats",
		}),
		FramesSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_sent_total",
			Help:      "Frames handed to the actuator transport",
		}),
		Observations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "observations_total",
			Help:      "Piece sightings received from the vision feed",
		}),
		ActiveMatches: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_matches",
			Help:      "Matches currently in play",
		}),
		SearchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Minimax search latency",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12),
		}),
	}

	reg.MustRegister(
		metrics.MatchesCompleted,
		metrics.MovesPlayed,
		metrics.CheatsDetected,
		metrics.FramesSent,
		metrics.Observations,
		metrics.ActiveMatches,
		metrics.SearchDuration,
	)

	return metrics
}

func (that *Metrics) MatchCompleted(result entity.GameResult) {
	that.MatchesCompleted.WithLabelValues(string(result)).Inc()
}

func (that *Metrics) MovePlayed(player string) {
	that.MovesPlayed.WithLabelValues(player).Inc()
}

func (that *Metrics) CheatDetected() {
	that.CheatsDetected.Inc()
}

func (that *Metrics) FrameSent() {
	that.FramesSent.Inc()
}

func (that *Metrics) ObservationReceived() {
	that.Observations.Inc()
}

func (that *Metrics) MatchStarted() {
	that.ActiveMatches.Inc()
}

func (that *Metrics) MatchEnded() {
	that.ActiveMatches.Dec()
}

func (that *Metrics) ObserveSearchDuration(d time.Duration) {
	that.SearchDuration.Observe(d.Seconds())
}
