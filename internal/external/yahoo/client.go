package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/mizan/screener/pkg/config"
	"github.com/mizan/screener/pkg/httputil"
	"github.com/mizan/screener/pkg/logger"
)

// Client talks to Yahoo Finance for symbol search and company profile
// scraping. Search is best effort: any failure yields an empty result set
// rather than an error.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	searchURL  string
	quoteURL   string
}

// NewClient creates a new Yahoo Finance client.
func NewClient(cfg *config.Config, log *logger.Logger, httpClient *httputil.Client) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		searchURL:  cfg.Yahoo.SearchURL,
		quoteURL:   cfg.Yahoo.QuoteURL,
	}
}

// SearchResult is one symbol search hit.
type SearchResult struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
	Type     string `json:"type"`
}

// Search looks up symbols matching the query. Quotes without a short name or
// symbol are skipped. Returns an empty slice on any error.
func (c *Client) Search(ctx context.Context, query string, maxResults int) []SearchResult {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	if maxResults <= 0 {
		maxResults = 10
	}

	fullURL := c.searchURL + "?q=" + url.QueryEscape(query)
	resp, err := c.httpClient.GetWithHeaders(ctx, fullURL, map[string]string{
		"User-Agent": "Mozilla/5.0",
	})
	if err != nil {
		c.logger.WithError(err).Warn("Symbol search request failed")
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.WithField("status", resp.StatusCode).Warn("Symbol search returned non-200")
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.WithError(err).Warn("Symbol search body read failed")
		return nil
	}

	var payload struct {
		Quotes []struct {
			Symbol    string `json:"symbol"`
			ShortName string `json:"shortname"`
			Exchange  string `json:"exchange"`
			QuoteType string `json:"quoteType"`
		} `json:"quotes"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		c.logger.WithError(err).Warn("Symbol search decode failed")
		return nil
	}

	results := make([]SearchResult, 0, maxResults)
	for _, q := range payload.Quotes {
		if q.Symbol == "" || q.ShortName == "" {
			continue
		}
		exchange := q.Exchange
		if exchange == "" {
			exchange = "Unknown"
		}
		quoteType := q.QuoteType
		if quoteType == "" {
			quoteType = "Unknown"
		}
		results = append(results, SearchResult{
			Symbol:   q.Symbol,
			Name:     q.ShortName,
			Exchange: exchange,
			Type:     quoteType,
		})
		if len(results) >= maxResults {
			break
		}
	}
	return results
}

func (c *Client) profileURL(ticker string) string {
	return fmt.Sprintf("%s/%s/profile", c.quoteURL, url.PathEscape(strings.ToUpper(ticker)))
}
