package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/davidbz/haku/internal/domain"
	"github.com/davidbz/haku/internal/observability"
	"go.uber.org/zap"
)

// Handler handles HTTP requests.
type Handler struct {
	fetcher   domain.UsageFetcher
	cache     domain.UsageCache // nil disables caching
	accountID string
	cacheTTL  time.Duration
}

// NewHandler creates a new HTTP handler (DI constructor).
func NewHandler(fetcher domain.UsageFetcher, cache domain.UsageCache, accountID string, cacheTTL time.Duration) *Handler {
	return &Handler{
		fetcher:   fetcher,
		cache:     cache,
		accountID: accountID,
		cacheTTL:  cacheTTL,
	}
}

// HandleUsage serves the account usage summary, from cache when fresh enough.
// ?refresh=true bypasses the cache.
func (h *Handler) HandleUsage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.FromContext(ctx)

	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	refresh := r.URL.Query().Get("refresh") == "true"

	if !refresh && h.cache != nil {
		cached, err := h.cache.Get(ctx, h.accountID)
		if err != nil && !errors.Is(err, domain.ErrCacheMiss) {
			logger.Warn("cache get failed, fetching fresh usage", zap.Error(err))
		}
		if cached != nil {
			writeUsage(w, logger, cached, "HIT")
			return
		}
	}

	usage, err := h.fetcher.FetchAllUsage(ctx)
	if err != nil {
		logger.Error("usage aggregation failed", zap.Error(err))
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrMissingCredentials) {
			status = http.StatusServiceUnavailable
		}
		http.Error(w, err.Error(), status)
		return
	}

	logger.Info("usage aggregated",
		zap.Float64("total_estimated_cost", usage.TotalEstimatedCost),
		zap.Int("errors", len(usage.Errors)),
	)

	if h.cache != nil {
		if setErr := h.cache.Set(ctx, h.accountID, usage, h.cacheTTL); setErr != nil {
			logger.Warn("failed to cache usage summary", zap.Error(setErr))
		}
	}

	writeUsage(w, logger, usage, "MISS")
}

func writeUsage(w http.ResponseWriter, logger *zap.Logger, usage *domain.AccountUsage, cacheState string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Haku-Cache", cacheState)

	if err := json.NewEncoder(w).Encode(usage); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}

// HandleHealth handles health check requests.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status": "healthy",
	}); err != nil {
		// Already written status, can't change it, just log.
		return
	}
}
