package yahoo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mizan/screener/pkg/config"
	"github.com/mizan/screener/pkg/httputil"
	"github.com/mizan/screener/pkg/logger"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{LogLevel: "error", LogFormat: "json"}
	cfg.Yahoo.SearchURL = server.URL + "/v1/finance/search"
	cfg.Yahoo.QuoteURL = server.URL + "/quote"
	cfg.Yahoo.Timeout = 5 * time.Second

	log := logger.New(cfg)
	return NewClient(cfg, log, httputil.New(cfg, log).DisableRetry())
}

func TestSearchSkipsIncompleteQuotes(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "apple", r.URL.Query().Get("q"))
		w.Write([]byte(`{"quotes": [
			{"symbol": "AAPL", "shortname": "Apple Inc.", "exchange": "NMS", "quoteType": "EQUITY"},
			{"symbol": "APL=X", "exchange": "CCY"},
			{"shortname": "Nameless Fund"},
			{"symbol": "APLE", "shortname": "Apple Hospitality REIT"}
		]}`))
	}))

	results := c.Search(context.Background(), "apple", 10)
	require.Len(t, results, 2)
	assert.Equal(t, "AAPL", results[0].Symbol)
	assert.Equal(t, "Apple Inc.", results[0].Name)
	assert.Equal(t, "EQUITY", results[0].Type)
	assert.Equal(t, "Unknown", results[1].Exchange)
}

func TestSearchLimitsResults(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"quotes": [
			{"symbol": "A", "shortname": "Alpha"},
			{"symbol": "B", "shortname": "Beta"},
			{"symbol": "C", "shortname": "Gamma"}
		]}`))
	}))

	results := c.Search(context.Background(), "greek", 2)
	assert.Len(t, results, 2)
}

func TestSearchErrorsYieldEmpty(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	assert.Empty(t, c.Search(context.Background(), "apple", 10))

	c = testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	assert.Empty(t, c.Search(context.Background(), "apple", 10))

	assert.Empty(t, c.Search(context.Background(), "  ", 10))
}

func TestFetchProfile(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/quote/ACME/profile", r.URL.Path)
		w.Write([]byte(`<html><body>
			<dl>
				<dt>Sector:</dt><dd>Technology</dd>
				<dt>Industry:</dt><dd>Software</dd>
			</dl>
			<section data-testid="description"><h3>Description</h3>
				<p>Acme builds software.</p>
			</section>
		</body></html>`))
	}))

	profile, err := c.FetchProfile(context.Background(), "acme")
	require.NoError(t, err)
	assert.Equal(t, "Technology", profile.Sector)
	assert.Equal(t, "Software", profile.Industry)
	assert.Equal(t, "Acme builds software.", profile.Description)
}

func TestFetchProfileEmptyPage(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body></body></html>`))
	}))

	_, err := c.FetchProfile(context.Background(), "ACME")
	assert.Error(t, err)
}
