package boycott

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/mizan/screener/pkg/config"
	"github.com/mizan/screener/pkg/logger"
)

// Client queries the boycott list by company name. Lookups are advisory: the
// compliance evaluator treats any error here as "not listed".
type Client struct {
	httpClient *http.Client
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a new boycott list client.
func NewClient(cfg *config.Config, log *logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Boycott.Timeout},
		logger:     log,
		baseURL:    cfg.Boycott.BaseURL,
	}
}

// corporate suffixes stripped before lookup, longest variants first so that
// " Corp." wins over " Corp".
var suffixes = []string{
	" Inc.", " Inc",
	" Corporation", " Corp.", " Corp",
	" Ltd.", " Ltd",
	" LLC", " PLC",
	" N.V.", " S.A.",
}

// IsBoycotted reports whether the company appears on the boycott list.
// A non-200 response means "not listed"; transport errors surface to the
// caller so it can decide how to degrade.
func (c *Client) IsBoycotted(ctx context.Context, companyName string) (bool, error) {
	name := CleanCompanyName(companyName)
	if name == "" {
		return false, nil
	}

	lookupURL := c.baseURL + "/" + url.PathEscape(name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		return false, fmt.Errorf("create boycott request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("boycott lookup for %q: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Errorf("read boycott response: %w", err)
	}

	var matches []json.RawMessage
	if err := json.Unmarshal(body, &matches); err != nil {
		return false, fmt.Errorf("decode boycott response: %w", err)
	}

	listed := len(matches) > 0
	if listed {
		c.logger.WithField("company", name).Debug("Company found on boycott list")
	}
	return listed, nil
}

// CleanCompanyName strips corporate suffixes and descriptive tails so the
// lookup matches the list's plain company names.
func CleanCompanyName(name string) string {
	clean := name
	for _, suffix := range suffixes {
		clean = strings.ReplaceAll(clean, suffix, "")
	}
	if idx := strings.Index(clean, " - "); idx >= 0 {
		clean = clean[:idx]
	}
	return strings.TrimSpace(clean)
}
