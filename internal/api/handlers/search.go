package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/mizan/screener/internal/external/fmp"
	"github.com/mizan/screener/internal/external/yahoo"
	"github.com/mizan/screener/pkg/logger"
)

// SearchHandler serves ticker search. FMP is the primary source; Yahoo fills
// in when FMP fails or returns nothing.
type SearchHandler struct {
	fmpClient   *fmp.Client
	yahooClient *yahoo.Client
	logger      *logger.Logger
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(fmpClient *fmp.Client, yahooClient *yahoo.Client, log *logger.Logger) *SearchHandler {
	return &SearchHandler{fmpClient: fmpClient, yahooClient: yahooClient, logger: log}
}

// SearchResponse is one search hit, source independent.
type SearchResponse struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
}

// Search looks up tickers by name or symbol fragment.
// GET /api/search?q=apple&limit=10
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		respondError(w, http.StatusBadRequest, "query parameter q is required")
		return
	}

	limit := 10
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if n, err := strconv.Atoi(limitStr); err == nil && n > 0 && n <= 50 {
			limit = n
		}
	}

	results := make([]SearchResponse, 0, limit)

	matches, err := h.fmpClient.SearchSymbols(ctx, query, limit)
	if err != nil {
		h.logger.WithError(err).WithField("query", query).Warn("Primary symbol search failed")
	}
	for _, m := range matches {
		results = append(results, SearchResponse{Symbol: m.Symbol, Name: m.Name, Exchange: m.Exchange})
	}

	if len(results) == 0 && h.yahooClient != nil {
		for _, m := range h.yahooClient.Search(ctx, query, limit) {
			results = append(results, SearchResponse{Symbol: m.Symbol, Name: m.Name, Exchange: m.Exchange})
		}
	}

	respondJSON(w, http.StatusOK, results)
}
