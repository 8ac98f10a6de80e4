package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mizan/screener/internal/domain"
	"github.com/mizan/screener/internal/external/yahoo"
	"github.com/mizan/screener/internal/shariah"
	"github.com/mizan/screener/internal/strategy"
	"github.com/mizan/screener/pkg/config"
	"github.com/mizan/screener/pkg/logger"
)

type stubProvider struct {
	fact    *domain.FinancialFact
	err     error
	fetches int
}

func (p *stubProvider) FetchFact(ctx context.Context, ticker string) (*domain.FinancialFact, error) {
	p.fetches++
	if p.err != nil {
		return nil, p.err
	}
	return p.fact, nil
}

type stubProfiles struct {
	profile *yahoo.CompanyProfile
	err     error
	fetches int
}

func (p *stubProfiles) FetchProfile(ctx context.Context, ticker string) (*yahoo.CompanyProfile, error) {
	p.fetches++
	if p.err != nil {
		return nil, p.err
	}
	return p.profile, nil
}

func testAnalyzer(provider FactProvider) *Analyzer {
	return testAnalyzerWithProfiles(provider, nil)
}

func testAnalyzerWithProfiles(provider FactProvider, profiles ProfileProvider) *Analyzer {
	log := logger.New(&config.Config{LogLevel: "error", LogFormat: "json"})
	evaluator := shariah.NewEvaluator(nil, log)
	registry := strategy.NewRegistry(strategy.DefaultThresholds())
	return New(provider, profiles, evaluator, registry, nil, nil, log)
}

func compliantFact() *domain.FinancialFact {
	return &domain.FinancialFact{
		Ticker:           "ACME",
		Name:             "Acme",
		Industry:         "Software",
		Sector:           "Technology",
		MarketCap:        200,
		TotalAssets:      100,
		TotalDebt:        10,
		TotalRevenue:     1000,
		IlliquidAssets:   30,
		CurrentAssets:    50,
		PERatio:          domain.Float(10.0),
		CurrentRatio:     2.0,
		DebtToEquity:     20.0,
		InterestCoverage: 5.0,
		ROE:              12.0,
	}
}

func TestAnalyzeCompliantStock(t *testing.T) {
	provider := &stubProvider{fact: compliantFact()}
	a := testAnalyzer(provider)

	result, err := a.Analyze(context.Background(), "ACME", "Graham")
	require.NoError(t, err)

	assert.Equal(t, "HALAL", result.Compliance.Status())
	assert.Empty(t, result.Compliance.Failures)
	assert.Equal(t, 100, result.Strategy.Score())
	assert.True(t, result.IsInvestable())
	assert.Equal(t, 1, provider.fetches)
}

func TestAnalyzeNonCompliantStock(t *testing.T) {
	fact := compliantFact()
	fact.TotalDebt = 40
	fact.IlliquidAssets = 10
	provider := &stubProvider{fact: fact}
	a := testAnalyzer(provider)

	result, err := a.Analyze(context.Background(), "ACME", "Graham")
	require.NoError(t, err)

	assert.Equal(t, "HARAM", result.Compliance.Status())
	assert.Equal(t,
		[]string{shariah.ReasonDebt, shariah.ReasonRealAssets},
		result.Compliance.Failures)
	assert.False(t, result.IsInvestable())
}

func TestAnalyzeUnknownStrategy(t *testing.T) {
	provider := &stubProvider{fact: compliantFact()}
	a := testAnalyzer(provider)

	_, err := a.Analyze(context.Background(), "ACME", "Buffett")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown strategy")

	// The provider is never hit when the strategy name is invalid.
	assert.Zero(t, provider.fetches)
}

func TestAnalyzeProviderError(t *testing.T) {
	provider := &stubProvider{err: errors.New("upstream down")}
	a := testAnalyzer(provider)

	_, err := a.Analyze(context.Background(), "ACME", "Mizan")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream down")
}

func TestAnalyzeBackfillsMissingProfile(t *testing.T) {
	fact := compliantFact()
	fact.Industry = domain.UnknownSector
	fact.Sector = domain.UnknownSector
	provider := &stubProvider{fact: fact}
	profiles := &stubProfiles{profile: &yahoo.CompanyProfile{
		Sector:      "Financial Services",
		Industry:    "Banks",
		Description: "A regional retail bank.",
	}}
	a := testAnalyzerWithProfiles(provider, profiles)

	result, err := a.Analyze(context.Background(), "ACME", "Graham")
	require.NoError(t, err)
	assert.Equal(t, 1, profiles.fetches)

	// The scraped fields feed the activity screen, which now catches the
	// prohibited business the primary source would have hidden.
	assert.Equal(t, "Banks", result.Fact.Industry)
	assert.Equal(t, "HARAM", result.Compliance.Status())
	assert.Contains(t, result.Compliance.Failures, shariah.ReasonActivity)
}

func TestAnalyzeSkipsBackfillWhenProfileComplete(t *testing.T) {
	fact := compliantFact()
	fact.Description = "Makes accounting software."
	provider := &stubProvider{fact: fact}
	profiles := &stubProfiles{err: errors.New("should not be called")}
	a := testAnalyzerWithProfiles(provider, profiles)

	_, err := a.Analyze(context.Background(), "ACME", "Graham")
	require.NoError(t, err)
	assert.Zero(t, profiles.fetches)
}

func TestAnalyzeToleratesProfileFailure(t *testing.T) {
	fact := compliantFact()
	fact.Sector = domain.UnknownSector
	provider := &stubProvider{fact: fact}
	profiles := &stubProfiles{err: errors.New("scrape blocked")}
	a := testAnalyzerWithProfiles(provider, profiles)

	result, err := a.Analyze(context.Background(), "ACME", "Graham")
	require.NoError(t, err)
	assert.Equal(t, domain.UnknownSector, result.Fact.Sector)
}

func TestWarmFetchesFact(t *testing.T) {
	provider := &stubProvider{fact: compliantFact()}
	a := testAnalyzer(provider)

	require.NoError(t, a.Warm(context.Background(), "ACME"))
	assert.Equal(t, 1, provider.fetches)
}
