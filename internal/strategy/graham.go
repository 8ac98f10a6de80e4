package strategy

import (
	"fmt"

	"github.com/mizan/screener/internal/domain"
)

// Graham implements the Modern Value rule set: strict valuation, liquidity,
// low leverage, covered interest and adequate profitability.
type Graham struct {
	cfg GrahamConfig
}

// NewGraham creates the Modern Value strategy.
func NewGraham(cfg GrahamConfig) *Graham {
	return &Graham{cfg: cfg}
}

func (s *Graham) Name() string {
	return "Graham"
}

func (s *Graham) Description() string {
	return "Modern Value - Margin of safety with quality focus"
}

// Evaluate runs the five Modern Value checks in fixed order.
func (s *Graham) Evaluate(fact *domain.FinancialFact) domain.StrategyResult {
	checks := make([]domain.StrategyCheck, 0, 5)

	// 1. Valuation
	checks = append(checks, domain.StrategyCheck{
		Name:   "P/E",
		Value:  formatPE(fact.PERatio),
		Target: fmt.Sprintf("< %g", s.cfg.MaxPE),
		Passed: peOrSentinel(fact.PERatio) < s.cfg.MaxPE,
	})

	// 2. Liquidity
	checks = append(checks, domain.StrategyCheck{
		Name:   "Current Ratio",
		Value:  formatRatio(fact.CurrentRatio),
		Target: fmt.Sprintf("> %g", s.cfg.MinCurrentRatio),
		Passed: fact.CurrentRatio > s.cfg.MinCurrentRatio,
	})

	// 3. Leverage
	deValue := deOrSentinel(fact.DebtToEquity)
	checks = append(checks, domain.StrategyCheck{
		Name:   "Debt/Equity",
		Value:  fmt.Sprintf("%.0f%%", deValue),
		Target: fmt.Sprintf("< %g%%", s.cfg.MaxDebtEquity),
		Passed: deValue < s.cfg.MaxDebtEquity,
	})

	// 4. Interest coverage
	checks = append(checks, domain.StrategyCheck{
		Name:   "Interest Coverage",
		Value:  fmt.Sprintf("%.1fx", fact.InterestCoverage),
		Target: fmt.Sprintf("> %gx", s.cfg.MinInterestCoverage),
		Passed: fact.InterestCoverage > s.cfg.MinInterestCoverage,
	})

	// 5. Profitability
	checks = append(checks, domain.StrategyCheck{
		Name:   "ROE",
		Value:  formatPercent(fact.ROE),
		Target: fmt.Sprintf("> %g%%", s.cfg.MinROE),
		Passed: fact.ROE > s.cfg.MinROE,
	})

	return domain.StrategyResult{StrategyName: s.Name(), Checks: checks}
}
