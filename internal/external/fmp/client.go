package fmp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"golang.org/x/time/rate"

	"github.com/mizan/screener/pkg/config"
	"github.com/mizan/screener/pkg/httputil"
	"github.com/mizan/screener/pkg/logger"
)

// ErrNotFound indicates the ticker could not be resolved by the provider.
var ErrNotFound = errors.New("ticker not found")

// Client handles communication with the Financial Modeling Prep stable API.
// All FMP calls in the codebase go through this client so the API key and
// the rate limit are enforced in one place.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	limiter    *rate.Limiter
	apiKey     string
	baseURL    string
}

// NewClient creates a new FMP client.
func NewClient(cfg *config.Config, log *logger.Logger, httpClient *httputil.Client) *Client {
	rps := cfg.FMP.RateLimit
	if rps <= 0 {
		rps = 5
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	return &Client{
		httpClient: httpClient,
		logger:     log,
		limiter:    rate.NewLimiter(rate.Limit(rps), burst),
		apiKey:     cfg.FMP.APIKey,
		baseURL:    cfg.FMP.BaseURL,
	}
}

// get performs a rate-limited GET against an FMP endpoint and decodes the
// JSON body into out.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("apikey", c.apiKey)
	fullURL := c.baseURL + endpoint + "?" + params.Encode()

	resp, err := c.httpClient.Get(ctx, fullURL)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code %d from %s", resp.StatusCode, endpoint)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body failed: %w", err)
	}

	// FMP reports some failures as a 200 with an error object.
	var apiErr struct {
		ErrorMessage string `json:"Error Message"`
	}
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.ErrorMessage != "" {
		return fmt.Errorf("fmp api error: %s", apiErr.ErrorMessage)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response failed: %w", err)
	}
	return nil
}
