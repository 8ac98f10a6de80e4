package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mizan/screener/internal/api/handlers"
	"github.com/mizan/screener/pkg/logger"
)

// Handlers bundles every route handler the router wires up. Quote and
// Watchlist are optional; their routes are skipped when nil.
type Handlers struct {
	Analyze   *handlers.AnalyzeHandler
	Search    *handlers.SearchHandler
	Prices    *handlers.PricesHandler
	Watchlist *handlers.WatchlistHandler
	Quotes    *handlers.QuotesHandler
}

// NewRouter creates and configures the HTTP router.
func NewRouter(h Handlers, log *logger.Logger, metricsEnabled bool) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	if metricsEnabled {
		r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	}

	// API v1
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/strategies", h.Analyze.ListStrategies).Methods("GET")
	api.HandleFunc("/analyze/{ticker}", h.Analyze.Analyze).Methods("GET")
	api.HandleFunc("/search", h.Search.Search).Methods("GET")
	api.HandleFunc("/prices/{ticker}/history", h.Prices.History).Methods("GET")

	if h.Watchlist != nil {
		api.HandleFunc("/watchlists", h.Watchlist.List).Methods("GET")
		api.HandleFunc("/watchlists", h.Watchlist.Create).Methods("POST")
		api.HandleFunc("/watchlists/{id}", h.Watchlist.Delete).Methods("DELETE")
		api.HandleFunc("/watchlists/{id}/tickers", h.Watchlist.Tickers).Methods("GET")
		api.HandleFunc("/watchlists/{id}/tickers", h.Watchlist.AddTicker).Methods("POST")
		api.HandleFunc("/watchlists/{id}/tickers/{ticker}", h.Watchlist.RemoveTicker).Methods("DELETE")
	}

	if h.Quotes != nil {
		r.HandleFunc("/ws/quotes/{ticker}", h.Quotes.Stream).Methods("GET")
	}

	// Apply middleware
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

// healthCheckHandler returns server health status
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "mizan-screener-api",
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
