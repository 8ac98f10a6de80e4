package fmp

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// SymbolMatch is one ticker search hit.
type SymbolMatch struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
	Currency string `json:"currency"`
}

// freeExchanges lists the exchanges available on the free FMP tier.
var freeExchanges = map[string]bool{
	"NASDAQ": true,
	"NYSE":   true,
	"AMEX":   true,
}

// SearchSymbols searches tickers by company name, filtered to US exchanges.
// An empty query returns no results.
func (c *Client) SearchSymbols(ctx context.Context, query string, maxResults int) ([]SymbolMatch, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	if maxResults <= 0 {
		maxResults = 10
	}

	var raw []SymbolMatch
	params := url.Values{"query": {query}, "limit": {"30"}}
	if err := c.get(ctx, "/stable/search-name", params, &raw); err != nil {
		return nil, fmt.Errorf("search symbols %q: %w", query, err)
	}

	results := make([]SymbolMatch, 0, maxResults)
	for _, item := range raw {
		if item.Symbol == "" || !freeExchanges[item.Exchange] {
			continue
		}
		if item.Name == "" {
			item.Name = item.Symbol
		}
		if item.Currency == "" {
			item.Currency = "USD"
		}
		results = append(results, item)
		if len(results) >= maxResults {
			break
		}
	}
	return results, nil
}
