package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/armlabs/tictactoe-robot/internal/repository"
)

const defaultRecentLimit = 20

// RecentLister is the slice of the archive the operator surface needs.
type RecentLister interface {
	Recent(ctx context.Context, limit int) ([]repository.ArchivedMatch, error)
}

type MatchesHandler struct {
	logger  *slog.Logger
	archive RecentLister
}

func NewMatchesHandler(logger *slog.Logger, archive RecentLister) *MatchesHandler {
	return &MatchesHandler{
		logger:  logger.With("component", "rest"),
		archive: archive,
	}
}

// Recent lists the newest finished matches as JSON. An optional "limit"
// query parameter caps the listing.
func (that *MatchesHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit := defaultRecentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}

		limit = parsed
	}

	matches, err := that.archive.Recent(r.Context(), limit)
	if err != nil {
		that.logger.Error("failed to list recent matches", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)

		return
	}

	if matches == nil {
		matches = []repository.ArchivedMatch{}
	}

	w.Header().Set("Content-Type", "application/json")

	if err = json.NewEncoder(w).Encode(matches); err != nil {
		that.logger.Error("failed to encode recent matches", "error", err)
	}
}
