package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/mizan/screener/internal/analysis"
	"github.com/mizan/screener/internal/external/fmp"
	"github.com/mizan/screener/internal/strategy"
	"github.com/mizan/screener/pkg/logger"
)

// DefaultStrategy is used when the analyze request names none.
const DefaultStrategy = "Mizan"

// AnalyzeHandler serves the analysis and strategy listing endpoints.
type AnalyzeHandler struct {
	analyzer *analysis.Analyzer
	logger   *logger.Logger
}

// NewAnalyzeHandler creates a new analyze handler.
func NewAnalyzeHandler(analyzer *analysis.Analyzer, log *logger.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{analyzer: analyzer, logger: log}
}

// StrategyInfo describes one available strategy.
type StrategyInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ListStrategies returns every available strategy.
// GET /api/strategies
func (h *AnalyzeHandler) ListStrategies(w http.ResponseWriter, r *http.Request) {
	strategies := h.analyzer.Strategies().All()

	result := make([]StrategyInfo, len(strategies))
	for i, s := range strategies {
		result[i] = StrategyInfo{Name: s.Name(), Description: s.Description()}
	}

	respondJSON(w, http.StatusOK, result)
}

// Analyze runs the full screen for one ticker.
// GET /api/analyze/{ticker}?strategy=Mizan
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ticker := strings.TrimSpace(mux.Vars(r)["ticker"])

	if ticker == "" {
		respondError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	strategyName := r.URL.Query().Get("strategy")
	if strategyName == "" {
		strategyName = DefaultStrategy
	}

	result, err := h.analyzer.Analyze(ctx, ticker, strategyName)
	if err != nil {
		switch {
		case errors.Is(err, fmp.ErrNotFound):
			respondError(w, http.StatusNotFound, "ticker not found: "+ticker)
		case errors.Is(err, strategy.ErrUnknownStrategy):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.WithError(err).WithField("ticker", ticker).Error("Analysis failed")
			respondError(w, http.StatusBadGateway, "Failed to analyze "+ticker)
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"ticker":     result.Fact.Ticker,
		"name":       result.Fact.Name,
		"status":     result.Compliance.Status(),
		"investable": result.IsInvestable(),
		"score":      result.Strategy.Score(),
		"fact":       result.Fact,
		"compliance": result.Compliance,
		"strategy":   result.Strategy,
	})
}
