package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mizan/screener/internal/domain"
)

func checkByName(t *testing.T, result domain.StrategyResult, name string) domain.StrategyCheck {
	t.Helper()
	for _, c := range result.Checks {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("check %q not found in %v", name, result.Checks)
	return domain.StrategyCheck{}
}

func TestMizanDynamicFCFTarget(t *testing.T) {
	s := NewMizan(DefaultThresholds().Mizan)

	// FCF yield of 3% clears the growth target (2.5%) but misses the
	// mature target (5%). The revenue growth rate alone flips the verdict.
	growth := &domain.FinancialFact{FCFYield: 3.0, RevenueGrowth: 15.0}
	mature := &domain.FinancialFact{FCFYield: 3.0, RevenueGrowth: 5.0}

	growthCheck := checkByName(t, s.Evaluate(growth), "FCF Yield")
	assert.True(t, growthCheck.Passed)
	assert.Equal(t, "> 2.5% (Growth)", growthCheck.Target)

	matureCheck := checkByName(t, s.Evaluate(mature), "FCF Yield")
	assert.False(t, matureCheck.Passed)
	assert.Equal(t, "> 5% (Mature)", matureCheck.Target)
}

func TestMizanCheckOrderAndCount(t *testing.T) {
	s := NewMizan(DefaultThresholds().Mizan)
	result := s.Evaluate(&domain.FinancialFact{})

	require.Len(t, result.Checks, 4)
	assert.Equal(t, "FCF Yield", result.Checks[0].Name)
	assert.Equal(t, "P/E", result.Checks[1].Name)
	assert.Equal(t, "Op. Margin", result.Checks[2].Name)
	assert.Equal(t, "Net Debt/EBITDA", result.Checks[3].Name)
}

func TestMizanMissingPE(t *testing.T) {
	s := NewMizan(DefaultThresholds().Mizan)
	result := s.Evaluate(&domain.FinancialFact{})

	pe := checkByName(t, result, "P/E")
	assert.Equal(t, "N/A", pe.Value)
	assert.False(t, pe.Passed)
}

func TestGrahamAllPass(t *testing.T) {
	s := NewGraham(DefaultThresholds().Graham)
	fact := &domain.FinancialFact{
		PERatio:          domain.Float(10.0),
		CurrentRatio:     2.0,
		DebtToEquity:     20.0,
		InterestCoverage: 5.0,
		ROE:              12.0,
	}

	result := s.Evaluate(fact)

	require.Len(t, result.Checks, 5)
	for _, c := range result.Checks {
		assert.True(t, c.Passed, "check %s should pass", c.Name)
	}
	assert.Equal(t, 100, result.Score())
}

func TestGrahamUnreportedDebtEquityFails(t *testing.T) {
	s := NewGraham(DefaultThresholds().Graham)

	// Zero means unreported in the source data, so the leverage check
	// fails closed instead of treating the company as debt-free.
	result := s.Evaluate(&domain.FinancialFact{DebtToEquity: 0})

	de := checkByName(t, result, "Debt/Equity")
	assert.Equal(t, "999%", de.Value)
	assert.False(t, de.Passed)
}

func TestGrahamUncappedInterestCoverage(t *testing.T) {
	s := NewGraham(DefaultThresholds().Graham)
	result := s.Evaluate(&domain.FinancialFact{
		InterestCoverage: domain.UncappedInterestCoverage,
	})

	ic := checkByName(t, result, "Interest Coverage")
	assert.Equal(t, "100.0x", ic.Value)
	assert.True(t, ic.Passed)
}

func TestLynchPEG(t *testing.T) {
	s := NewLynch(DefaultThresholds().Lynch)

	tests := []struct {
		name       string
		peg        *float64
		wantValue  string
		wantPassed bool
	}{
		{"absent", nil, "N/A", false},
		{"negative", domain.Float(-0.5), "-0.50", false},
		{"zero", domain.Float(0), "0.00", false},
		{"cheap growth", domain.Float(0.8), "0.80", true},
		{"at ceiling", domain.Float(1.0), "1.00", false},
		{"expensive", domain.Float(2.3), "2.30", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := s.Evaluate(&domain.FinancialFact{PEGRatio: tt.peg})
			peg := checkByName(t, result, "PEG")
			assert.Equal(t, tt.wantValue, peg.Value)
			assert.Equal(t, tt.wantPassed, peg.Passed)
		})
	}
}

func TestLynchAllPass(t *testing.T) {
	s := NewLynch(DefaultThresholds().Lynch)
	fact := &domain.FinancialFact{
		PEGRatio:      domain.Float(0.7),
		RevenueGrowth: 20.0,
		DebtToEquity:  40.0,
		PERatio:       domain.Float(18.0),
	}

	result := s.Evaluate(fact)

	require.Len(t, result.Checks, 4)
	assert.Equal(t, 100, result.Score())
}

func TestEvaluateIsDeterministic(t *testing.T) {
	reg := NewRegistry(DefaultThresholds())
	fact := &domain.FinancialFact{
		PERatio:       domain.Float(12.0),
		PEGRatio:      domain.Float(0.9),
		FCFYield:      4.0,
		RevenueGrowth: 12.0,
		CurrentRatio:  1.8,
		DebtToEquity:  30.0,
		ROE:           10.0,
	}

	for _, s := range reg.All() {
		first := s.Evaluate(fact)
		second := s.Evaluate(fact)
		assert.Equal(t, first, second, "strategy %s", s.Name())
	}
}

func TestRegistryGet(t *testing.T) {
	reg := NewRegistry(DefaultThresholds())

	for _, name := range []string{"Mizan", "Graham", "Lynch"} {
		s, err := reg.Get(name)
		require.NoError(t, err)
		assert.Equal(t, name, s.Name())
	}
}

func TestRegistryGetUnknown(t *testing.T) {
	reg := NewRegistry(DefaultThresholds())

	_, err := reg.Get("Buffett")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown strategy "Buffett"`)
	assert.Contains(t, err.Error(), "Graham, Lynch, Mizan")
}

func TestRegistryNamesSorted(t *testing.T) {
	reg := NewRegistry(DefaultThresholds())
	assert.Equal(t, []string{"Graham", "Lynch", "Mizan"}, reg.Names())
}

func TestScoreRounding(t *testing.T) {
	s := NewGraham(DefaultThresholds().Graham)

	// Two of five checks pass: current ratio and ROE.
	result := s.Evaluate(&domain.FinancialFact{CurrentRatio: 2.0, ROE: 12.0})

	assert.Equal(t, 2, result.PassedCount())
	assert.Equal(t, 40, result.Score())
}
