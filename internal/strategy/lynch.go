package strategy

import (
	"fmt"

	"github.com/mizan/screener/internal/domain"
)

// Lynch implements the GARP (growth at a reasonable price) rule set: cheap
// relative to growth, fast revenue expansion, moderate leverage and a sane
// valuation ceiling.
type Lynch struct {
	cfg LynchConfig
}

// NewLynch creates the GARP strategy.
func NewLynch(cfg LynchConfig) *Lynch {
	return &Lynch{cfg: cfg}
}

func (s *Lynch) Name() string {
	return "Lynch"
}

func (s *Lynch) Description() string {
	return "Growth - GARP (Growth at Reasonable Price)"
}

// Evaluate runs the four GARP checks in fixed order.
func (s *Lynch) Evaluate(fact *domain.FinancialFact) domain.StrategyResult {
	checks := make([]domain.StrategyCheck, 0, 4)

	// 1. PEG: reported and strictly between 0 and the ceiling.
	pegDisplay := "N/A"
	pegPassed := false
	if fact.PEGRatio != nil {
		pegDisplay = fmt.Sprintf("%.2f", *fact.PEGRatio)
		pegPassed = *fact.PEGRatio > 0 && *fact.PEGRatio < s.cfg.MaxPEG
	}

	checks = append(checks, domain.StrategyCheck{
		Name:   "PEG",
		Value:  pegDisplay,
		Target: fmt.Sprintf("< %g", s.cfg.MaxPEG),
		Passed: pegPassed,
	})

	// 2. Growth
	checks = append(checks, domain.StrategyCheck{
		Name:   "Revenue Growth",
		Value:  formatPercent(fact.RevenueGrowth),
		Target: fmt.Sprintf("> %g%%", s.cfg.MinGrowth),
		Passed: fact.RevenueGrowth > s.cfg.MinGrowth,
	})

	// 3. Leverage
	deValue := deOrSentinel(fact.DebtToEquity)
	checks = append(checks, domain.StrategyCheck{
		Name:   "Debt/Equity",
		Value:  fmt.Sprintf("%.0f%%", deValue),
		Target: fmt.Sprintf("< %g%%", s.cfg.MaxDebtEquity),
		Passed: deValue < s.cfg.MaxDebtEquity,
	})

	// 4. Valuation ceiling
	checks = append(checks, domain.StrategyCheck{
		Name:   "P/E",
		Value:  formatPE(fact.PERatio),
		Target: fmt.Sprintf("< %g", s.cfg.MaxPE),
		Passed: peOrSentinel(fact.PERatio) < s.cfg.MaxPE,
	})

	return domain.StrategyResult{StrategyName: s.Name(), Checks: checks}
}
