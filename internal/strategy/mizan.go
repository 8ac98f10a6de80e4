package strategy

import (
	"fmt"

	"github.com/mizan/screener/internal/domain"
)

// Mizan implements the Quality Growth rule set: free-cash-flow yield with a
// growth-adjusted target, reasonable valuation, solid operating margins and
// manageable leverage.
type Mizan struct {
	cfg MizanConfig
}

// NewMizan creates the Quality Growth strategy.
func NewMizan(cfg MizanConfig) *Mizan {
	return &Mizan{cfg: cfg}
}

func (s *Mizan) Name() string {
	return "Mizan"
}

func (s *Mizan) Description() string {
	return "Quality Growth - Focus on sustainable quality at reasonable prices"
}

// Evaluate runs the four Quality Growth checks in fixed order.
func (s *Mizan) Evaluate(fact *domain.FinancialFact) domain.StrategyResult {
	checks := make([]domain.StrategyCheck, 0, 4)

	// 1. FCF yield against a dynamic target: growth companies earn a lower
	// bar than mature ones. The target label documents which branch applied.
	isGrowthStock := fact.RevenueGrowth > s.cfg.GrowthThreshold
	targetFCF := s.cfg.FCFYieldMature
	branch := "Mature"
	if isGrowthStock {
		targetFCF = s.cfg.FCFYieldGrowth
		branch = "Growth"
	}

	checks = append(checks, domain.StrategyCheck{
		Name:   "FCF Yield",
		Value:  formatPercent(fact.FCFYield),
		Target: fmt.Sprintf("> %g%% (%s)", targetFCF, branch),
		Passed: fact.FCFYield > targetFCF,
	})

	// 2. Valuation
	checks = append(checks, domain.StrategyCheck{
		Name:   "P/E",
		Value:  formatPE(fact.PERatio),
		Target: fmt.Sprintf("< %g", s.cfg.MaxPE),
		Passed: peOrSentinel(fact.PERatio) < s.cfg.MaxPE,
	})

	// 3. Operating margin
	checks = append(checks, domain.StrategyCheck{
		Name:   "Op. Margin",
		Value:  formatPercent(fact.OperatingMargin),
		Target: fmt.Sprintf("> %g%%", s.cfg.MinMargin),
		Passed: fact.OperatingMargin > s.cfg.MinMargin,
	})

	// 4. Leverage
	checks = append(checks, domain.StrategyCheck{
		Name:   "Net Debt/EBITDA",
		Value:  formatMultiple(fact.NetDebtEBITDA),
		Target: fmt.Sprintf("< %gx", s.cfg.MaxNetDebtEBITDA),
		Passed: fact.NetDebtEBITDA < s.cfg.MaxNetDebtEBITDA,
	})

	return domain.StrategyResult{StrategyName: s.Name(), Checks: checks}
}
