package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/mizan/screener/internal/external/fmp"
	"github.com/mizan/screener/pkg/logger"
)

// QuoteFetcher provides current quotes by ticker.
type QuoteFetcher interface {
	FetchQuote(ctx context.Context, ticker string) (*fmp.Quote, error)
}

// QuotesHandler streams live quotes over a websocket by polling the provider
// at a fixed interval and pushing every update to the client.
type QuotesHandler struct {
	fetcher      QuoteFetcher
	logger       *logger.Logger
	upgrader     websocket.Upgrader
	pollInterval time.Duration
}

// NewQuotesHandler creates a new quote stream handler.
func NewQuotesHandler(fetcher QuoteFetcher, log *logger.Logger) *QuotesHandler {
	return &QuotesHandler{
		fetcher: fetcher,
		logger:  log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		pollInterval: 5 * time.Second,
	}
}

// Stream upgrades the connection and pushes quotes until the client leaves.
// GET /ws/quotes/{ticker}
func (h *QuotesHandler) Stream(w http.ResponseWriter, r *http.Request) {
	ticker := strings.TrimSpace(mux.Vars(r)["ticker"])
	if ticker == "" {
		respondError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Warn("Websocket upgrade failed")
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Drain client frames so pings are answered and closes are noticed.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	h.logger.WithField("ticker", ticker).Info("Quote stream opened")
	defer h.logger.WithField("ticker", ticker).Info("Quote stream closed")

	// First quote goes out immediately, then one per interval.
	if !h.push(ctx, conn, ticker) {
		return
	}

	poll := time.NewTicker(h.pollInterval)
	defer poll.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-poll.C:
			if !h.push(ctx, conn, ticker) {
				return
			}
		}
	}
}

func (h *QuotesHandler) push(ctx context.Context, conn *websocket.Conn, ticker string) bool {
	quote, err := h.fetcher.FetchQuote(ctx, ticker)
	if err != nil {
		h.logger.WithError(err).WithField("ticker", ticker).Warn("Quote fetch failed")
		// Keep the stream alive through transient provider errors.
		return ctx.Err() == nil
	}

	conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	if err := conn.WriteJSON(quote); err != nil {
		return false
	}
	return true
}
