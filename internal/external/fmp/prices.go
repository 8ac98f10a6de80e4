package fmp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"
)

// historicalBar is one raw end-of-day bar from FMP.
type historicalBar struct {
	Date  string  `json:"date"`
	Close float64 `json:"close"`
}

// PricePoint is one daily close with its 50-day moving average. MA50 is nil
// for the first 49 points of a series.
type PricePoint struct {
	Date  string   `json:"date"`
	Close float64  `json:"close"`
	MA50  *float64 `json:"ma50"`
}

// Quote is a lightweight current-price snapshot used by the live quote feed.
type Quote struct {
	Ticker        string  `json:"ticker"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
	Volume        int64   `json:"volume"`
}

var periodDays = map[string]int{
	"3mo": 90,
	"6mo": 180,
	"1y":  365,
	"2y":  730,
	"5y":  1825,
}

// FetchPriceHistory returns daily closes for the given period in ascending
// date order with MA50 attached. Unknown periods fall back to one year.
func (c *Client) FetchPriceHistory(ctx context.Context, ticker, period string) ([]PricePoint, error) {
	days, ok := periodDays[period]
	if !ok {
		days = 365
	}
	symbol := strings.ToUpper(strings.TrimSpace(ticker))

	bars, err := c.fetchHistory(ctx, symbol, days)
	if err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		return nil, nil
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date < bars[j].Date })

	points := make([]PricePoint, len(bars))
	var window float64
	for i, bar := range bars {
		window += bar.Close
		if i >= 50 {
			window -= bars[i-50].Close
		}

		point := PricePoint{Date: bar.Date, Close: bar.Close}
		if i >= 49 {
			ma := window / 50
			point.MA50 = &ma
		}
		points[i] = point
	}
	return points, nil
}

// FetchQuote returns the current quote for one ticker.
func (c *Client) FetchQuote(ctx context.Context, ticker string) (*Quote, error) {
	symbol := strings.ToUpper(strings.TrimSpace(ticker))

	var quotes []struct {
		Symbol           string  `json:"symbol"`
		Price            float64 `json:"price"`
		Change           float64 `json:"change"`
		ChangePercentage float64 `json:"changePercentage"`
		Volume           int64   `json:"volume"`
	}
	if err := c.get(ctx, "/stable/quote", url.Values{"symbol": {symbol}}, &quotes); err != nil {
		return nil, fmt.Errorf("fetch quote for %s: %w", symbol, err)
	}
	if len(quotes) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, symbol)
	}

	q := quotes[0]
	return &Quote{
		Ticker:        symbol,
		Price:         q.Price,
		Change:        q.Change,
		ChangePercent: q.ChangePercentage,
		Volume:        q.Volume,
	}, nil
}

func (c *Client) fetchHistory(ctx context.Context, symbol string, days int) ([]historicalBar, error) {
	to := time.Now()
	from := to.AddDate(0, 0, -days)

	params := url.Values{
		"symbol": {symbol},
		"from":   {from.Format("2006-01-02")},
		"to":     {to.Format("2006-01-02")},
	}

	var raw json.RawMessage
	if err := c.get(ctx, "/stable/historical-price-eod/full", params, &raw); err != nil {
		return nil, fmt.Errorf("fetch price history for %s: %w", symbol, err)
	}

	var bars []historicalBar
	if err := json.Unmarshal(raw, &bars); err == nil {
		return bars, nil
	}

	// Some FMP plans wrap the series in an envelope.
	var envelope struct {
		Historical []historicalBar `json:"historical"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode price history for %s: %w", symbol, err)
	}
	return envelope.Historical, nil
}
