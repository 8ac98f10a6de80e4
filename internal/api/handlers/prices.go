package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/mizan/screener/internal/external/fmp"
	"github.com/mizan/screener/pkg/logger"
	"github.com/mizan/screener/pkg/redis"
)

// PricesHandler serves historical price data.
type PricesHandler struct {
	fmpClient *fmp.Client
	cache     *redis.Cache
	logger    *logger.Logger
}

// NewPricesHandler creates a new prices handler. cache may be nil.
func NewPricesHandler(fmpClient *fmp.Client, cache *redis.Cache, log *logger.Logger) *PricesHandler {
	return &PricesHandler{fmpClient: fmpClient, cache: cache, logger: log}
}

// History returns daily closes with MA50 for one ticker.
// GET /api/prices/{ticker}/history?period=1y
func (h *PricesHandler) History(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ticker := strings.TrimSpace(mux.Vars(r)["ticker"])

	if ticker == "" {
		respondError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	period := r.URL.Query().Get("period")
	if period == "" {
		period = "1y"
	}

	if h.cache != nil {
		var cached []fmp.PricePoint
		hit, err := h.cache.Get(ctx, redis.PriceHistoryKey(ticker, period), &cached)
		if err != nil {
			h.logger.WithError(err).Warn("Price cache read failed")
		}
		if hit {
			respondJSON(w, http.StatusOK, cached)
			return
		}
	}

	points, err := h.fmpClient.FetchPriceHistory(ctx, ticker, period)
	if err != nil {
		h.logger.WithError(err).WithFields(map[string]interface{}{
			"ticker": ticker,
			"period": period,
		}).Error("Failed to fetch price history")
		respondError(w, http.StatusBadGateway, "Failed to retrieve price history")
		return
	}
	if points == nil {
		points = []fmp.PricePoint{}
	}

	if h.cache != nil && len(points) > 0 {
		if err := h.cache.Set(ctx, redis.PriceHistoryKey(ticker, period), points, redis.TTLDaily); err != nil {
			h.logger.WithError(err).Warn("Price cache write failed")
		}
	}

	respondJSON(w, http.StatusOK, points)
}
