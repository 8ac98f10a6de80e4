package strategy

import (
	"fmt"

	"github.com/mizan/screener/internal/domain"
)

// sentinelValue substitutes for absent or non-positive valuation ratios so
// that every strict less-than comparison fails without special cases. Display
// uses "N/A" instead; the sentinel never reaches users directly.
const sentinelValue = 999.0

// Strategy evaluates one fundamental-investing rule set against a fact.
// Implementations are stateless and safe for concurrent use.
type Strategy interface {
	Name() string
	Description() string
	Evaluate(fact *domain.FinancialFact) domain.StrategyResult
}

// Formatting helpers. Value and target strings are displayed verbatim
// downstream, so precision here is part of the contract.

func formatPE(pe *float64) string {
	if pe == nil || *pe <= 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", *pe)
}

func formatPercent(value float64) string {
	return fmt.Sprintf("%.1f%%", value)
}

func formatRatio(value float64) string {
	return fmt.Sprintf("%.2f", value)
}

func formatMultiple(value float64) string {
	return fmt.Sprintf("%.2fx", value)
}

// peOrSentinel returns the reported P/E or the sentinel when absent or
// non-positive.
func peOrSentinel(pe *float64) float64 {
	if pe == nil || *pe <= 0 {
		return sentinelValue
	}
	return *pe
}

// deOrSentinel returns debt-to-equity or the sentinel when unreported.
// Zero means "not reported" in the source data, not a debt-free balance
// sheet.
func deOrSentinel(de float64) float64 {
	if de == 0 {
		return sentinelValue
	}
	return de
}
