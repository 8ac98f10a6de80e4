package yahoo

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// CompanyProfile holds descriptive fields scraped from a Yahoo quote page.
// Used only to fill gaps when the primary data provider omits them.
type CompanyProfile struct {
	Sector      string
	Industry    string
	Description string
}

// FetchProfile scrapes sector, industry and business description from the
// Yahoo Finance profile page for one ticker.
func (c *Client) FetchProfile(ctx context.Context, ticker string) (*CompanyProfile, error) {
	resp, err := c.httpClient.GetWithHeaders(ctx, c.profileURL(ticker), map[string]string{
		"User-Agent": "Mozilla/5.0",
	})
	if err != nil {
		return nil, fmt.Errorf("fetch profile page for %s: %w", ticker, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("profile page for %s returned status %d", ticker, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse profile page for %s: %w", ticker, err)
	}

	profile := &CompanyProfile{}

	// The profile card labels sector and industry as dt/dd pairs.
	doc.Find("dt").Each(func(_ int, dt *goquery.Selection) {
		label := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(dt.Text()), ":"))
		value := strings.TrimSpace(dt.Next().Text())
		switch label {
		case "Sector":
			profile.Sector = value
		case "Industry":
			profile.Industry = value
		}
	})

	// Business summary sits in its own titled section.
	doc.Find("section[data-testid=description] p").Each(func(_ int, p *goquery.Selection) {
		if profile.Description == "" {
			profile.Description = strings.TrimSpace(p.Text())
		}
	})

	if profile.Sector == "" && profile.Industry == "" && profile.Description == "" {
		return nil, fmt.Errorf("no profile data found for %s", ticker)
	}

	c.logger.WithFields(map[string]interface{}{
		"ticker": ticker,
		"sector": profile.Sector,
	}).Debug("Scraped company profile")
	return profile, nil
}
