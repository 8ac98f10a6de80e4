package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/mizan/screener/internal/watchlist"
	"github.com/mizan/screener/pkg/logger"
)

// userIDHeader carries the caller identity. Authentication itself happens
// upstream; this service only scopes data by the forwarded user id.
const userIDHeader = "X-User-ID"

// WatchlistHandler serves watchlist CRUD endpoints.
type WatchlistHandler struct {
	repo   *watchlist.Repository
	logger *logger.Logger
}

// NewWatchlistHandler creates a new watchlist handler.
func NewWatchlistHandler(repo *watchlist.Repository, log *logger.Logger) *WatchlistHandler {
	return &WatchlistHandler{repo: repo, logger: log}
}

func (h *WatchlistHandler) userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := strings.TrimSpace(r.Header.Get(userIDHeader))
	if userID == "" {
		respondError(w, http.StatusUnauthorized, userIDHeader+" header is required")
		return "", false
	}
	return userID, true
}

func listID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

// List returns every watchlist of the calling user.
// GET /api/watchlists
func (h *WatchlistHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	lists, err := h.repo.ListForUser(r.Context(), userID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list watchlists")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve watchlists")
		return
	}
	if lists == nil {
		lists = []watchlist.Watchlist{}
	}

	respondJSON(w, http.StatusOK, lists)
}

// Create adds a new watchlist.
// POST /api/watchlists {"name": "Tech"}
func (h *WatchlistHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.Name) == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	created, err := h.repo.Create(r.Context(), userID, strings.TrimSpace(body.Name))
	if err != nil {
		h.logger.WithError(err).Error("Failed to create watchlist")
		respondError(w, http.StatusInternalServerError, "Failed to create watchlist")
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

// Delete removes a watchlist.
// DELETE /api/watchlists/{id}
func (h *WatchlistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	id, err := listID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid watchlist id")
		return
	}

	if err := h.repo.Delete(r.Context(), userID, id); err != nil {
		if errors.Is(err, watchlist.ErrNotFound) {
			respondError(w, http.StatusNotFound, "watchlist not found")
			return
		}
		h.logger.WithError(err).Error("Failed to delete watchlist")
		respondError(w, http.StatusInternalServerError, "Failed to delete watchlist")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Tickers returns the tickers of one watchlist.
// GET /api/watchlists/{id}/tickers
func (h *WatchlistHandler) Tickers(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	id, err := listID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid watchlist id")
		return
	}

	tickers, err := h.repo.Tickers(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, watchlist.ErrNotFound) {
			respondError(w, http.StatusNotFound, "watchlist not found")
			return
		}
		h.logger.WithError(err).Error("Failed to get watchlist tickers")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve tickers")
		return
	}
	if tickers == nil {
		tickers = []string{}
	}

	respondJSON(w, http.StatusOK, tickers)
}

// AddTicker adds one ticker to a watchlist.
// POST /api/watchlists/{id}/tickers {"ticker": "AAPL"}
func (h *WatchlistHandler) AddTicker(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	id, err := listID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid watchlist id")
		return
	}

	var body struct {
		Ticker string `json:"ticker"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.Ticker) == "" {
		respondError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	if err := h.repo.AddTicker(r.Context(), userID, id, body.Ticker); err != nil {
		if errors.Is(err, watchlist.ErrNotFound) {
			respondError(w, http.StatusNotFound, "watchlist not found")
			return
		}
		h.logger.WithError(err).Error("Failed to add ticker")
		respondError(w, http.StatusInternalServerError, "Failed to add ticker")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RemoveTicker deletes one ticker from a watchlist.
// DELETE /api/watchlists/{id}/tickers/{ticker}
func (h *WatchlistHandler) RemoveTicker(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	id, err := listID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid watchlist id")
		return
	}

	ticker := mux.Vars(r)["ticker"]
	if err := h.repo.RemoveTicker(r.Context(), userID, id, ticker); err != nil {
		if errors.Is(err, watchlist.ErrNotFound) {
			respondError(w, http.StatusNotFound, "watchlist not found")
			return
		}
		h.logger.WithError(err).Error("Failed to remove ticker")
		respondError(w, http.StatusInternalServerError, "Failed to remove ticker")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
