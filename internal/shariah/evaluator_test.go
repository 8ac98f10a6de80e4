package shariah

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mizan/screener/internal/domain"
	"github.com/mizan/screener/pkg/config"
	"github.com/mizan/screener/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(&config.Config{Env: "development", LogLevel: "error", LogFormat: "json"})
}

// cleanFact returns a fact that passes every financial check.
func cleanFact() *domain.FinancialFact {
	return &domain.FinancialFact{
		Ticker:         "TEST",
		Name:           "Test Corp",
		Industry:       "Software",
		Sector:         "Technology",
		Description:    "Develops software products",
		TotalDebt:      10,
		TotalAssets:    100,
		InterestIncome: 0,
		TotalRevenue:   1000,
		IlliquidAssets: 40,
		CurrentAssets:  50,
		MarketCap:      200,
	}
}

func TestEvaluate_Compliant(t *testing.T) {
	evaluator := NewEvaluator(nil, testLogger())

	verdict := evaluator.Evaluate(context.Background(), cleanFact())

	assert.Empty(t, verdict.Failures)
	assert.True(t, verdict.IsCompliant())
	assert.Equal(t, domain.StatusCompliant, verdict.Status())
	assert.True(t, verdict.IsActivityCompliant)
	assert.Equal(t, "OK", verdict.ActivityIssue)
	assert.False(t, verdict.IsBoycotted)
}

func TestEvaluate_BanksAlwaysFailActivity(t *testing.T) {
	evaluator := NewEvaluator(nil, testLogger())

	fact := cleanFact()
	fact.Industry = "Banks"

	verdict := evaluator.Evaluate(context.Background(), fact)

	assert.False(t, verdict.IsActivityCompliant)
	assert.Contains(t, verdict.Failures, ReasonActivity)
	assert.Contains(t, verdict.ActivityIssue, "Banks")
}

func TestEvaluate_MultipleFailures(t *testing.T) {
	evaluator := NewEvaluator(nil, testLogger())

	// debt_ratio=40% (fail) and illiquid_ratio=10% (fail); interest and
	// liquidity pass.
	fact := cleanFact()
	fact.TotalDebt = 40
	fact.IlliquidAssets = 10

	verdict := evaluator.Evaluate(context.Background(), fact)

	assert.Equal(t, domain.StatusNonCompliant, verdict.Status())
	assert.Equal(t, []string{ReasonDebt, ReasonRealAssets}, verdict.Failures)
	assert.InDelta(t, 40.0, verdict.DebtRatio, 1e-9)
	assert.InDelta(t, 10.0, verdict.IlliquidAssetsRatio, 1e-9)
	assert.InDelta(t, 0.0, verdict.InterestIncomeRatio, 1e-9)
	assert.True(t, verdict.IsLiquidOK)
}

func TestEvaluate_AllChecksRun(t *testing.T) {
	evaluator := NewEvaluator(
		func(ctx context.Context, name string) (bool, error) { return true, nil },
		testLogger(),
	)

	// Fail everything at once: the failure list must be complete, not
	// short-circuited at the first failure.
	fact := &domain.FinancialFact{
		Ticker:         "BAD",
		Name:           "Bad Corp",
		Industry:       "Banks",
		Sector:         "Financial Services",
		Description:    "",
		TotalDebt:      50,
		TotalAssets:    100,
		InterestIncome: 100,
		TotalRevenue:   1000,
		IlliquidAssets: 10,
		CurrentAssets:  500,
		MarketCap:      200,
	}

	verdict := evaluator.Evaluate(context.Background(), fact)

	assert.Equal(t, []string{
		ReasonActivity,
		ReasonBoycott,
		ReasonInterest,
		ReasonDebt,
		ReasonRealAssets,
		ReasonLiquidity,
	}, verdict.Failures)
}

func TestEvaluate_InterestBoundary(t *testing.T) {
	evaluator := NewEvaluator(nil, testLogger())

	// Exactly 5% fails (>= threshold)
	fact := cleanFact()
	fact.InterestIncome = 50
	fact.TotalRevenue = 1000

	verdict := evaluator.Evaluate(context.Background(), fact)
	assert.Contains(t, verdict.Failures, ReasonInterest)

	// Just below passes
	fact.InterestIncome = 49.9
	verdict = evaluator.Evaluate(context.Background(), fact)
	assert.NotContains(t, verdict.Failures, ReasonInterest)
}

func TestEvaluate_BoycottScreenFailsOpen(t *testing.T) {
	evaluator := NewEvaluator(
		func(ctx context.Context, name string) (bool, error) {
			return false, errors.New("registry unreachable")
		},
		testLogger(),
	)

	verdict := evaluator.Evaluate(context.Background(), cleanFact())

	// Screen failure means safe default, never a propagated error
	assert.False(t, verdict.IsBoycotted)
	assert.True(t, verdict.IsCompliant())
}

func TestEvaluate_BoycottListed(t *testing.T) {
	evaluator := NewEvaluator(
		func(ctx context.Context, name string) (bool, error) { return true, nil },
		testLogger(),
	)

	verdict := evaluator.Evaluate(context.Background(), cleanFact())

	assert.True(t, verdict.IsBoycotted)
	assert.Equal(t, []string{ReasonBoycott}, verdict.Failures)
}

func TestScreenActivity(t *testing.T) {
	tests := []struct {
		name        string
		industry    string
		sector      string
		description string
		wantOK      bool
		wantReason  string
	}{
		{
			name:       "clean software company",
			industry:   "Software - Application",
			sector:     "Technology",
			wantOK:     true,
			wantReason: "OK",
		},
		{
			name:       "blacklisted industry substring",
			industry:   "Banks - Diversified",
			sector:     "Financial Services",
			wantOK:     false,
			wantReason: "Sector: Banks",
		},
		{
			name:       "blacklisted sector case insensitive",
			industry:   "Brokerage",
			sector:     "CAPITAL MARKETS",
			wantOK:     false,
			wantReason: "Sector: Capital Markets",
		},
		{
			name:        "keyword whole word match",
			industry:    "Restaurants",
			sector:      "Consumer Cyclical",
			description: "Operates restaurants and casino venues worldwide",
			wantOK:      false,
			wantReason:  "Keyword: casino",
		},
		{
			name:        "keyword must be whole word",
			industry:    "Software",
			sector:      "Technology",
			description: "An interesting winery-adjacent analytics startup",
			wantOK:      true,
			wantReason:  "OK",
		},
		{
			name:        "sector match takes priority over keywords",
			industry:    "Tobacco",
			sector:      "Consumer Defensive",
			description: "Sells tobacco products",
			wantOK:      false,
			wantReason:  "Sector: Tobacco",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, reason := ScreenActivity(tt.industry, tt.sector, tt.description)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantReason, reason)
		})
	}
}

func TestEvaluate_Deterministic(t *testing.T) {
	evaluator := NewEvaluator(nil, testLogger())
	fact := cleanFact()
	fact.TotalDebt = 40
	fact.IlliquidAssets = 10

	first := evaluator.Evaluate(context.Background(), fact)
	second := evaluator.Evaluate(context.Background(), fact)

	assert.Equal(t, first, second)
}
