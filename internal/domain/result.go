package domain

import "math"

// Compliance status values.
const (
	StatusCompliant    = "HALAL"
	StatusNonCompliant = "HARAM"
)

// ComplianceVerdict is the output of the Shariah compliance evaluation.
// Status is derived from Failures alone; the two can never disagree.
type ComplianceVerdict struct {
	// Computed ratios
	InterestIncomeRatio float64 `json:"interest_income_ratio"`
	DebtRatio           float64 `json:"debt_ratio"`
	IlliquidAssetsRatio float64 `json:"illiquid_assets_ratio"`
	IsLiquidOK          bool    `json:"is_liquid_ok"`

	// Screen outcomes
	IsActivityCompliant bool   `json:"is_activity_compliant"`
	ActivityIssue       string `json:"activity_issue"`
	IsBoycotted         bool   `json:"is_boycotted"`

	// Ordered, distinct reason codes
	Failures []string `json:"failures"`
}

// IsCompliant reports whether every check passed.
func (v *ComplianceVerdict) IsCompliant() bool {
	return len(v.Failures) == 0
}

// Status returns the textual compliance status.
func (v *ComplianceVerdict) Status() string {
	if v.IsCompliant() {
		return StatusCompliant
	}
	return StatusNonCompliant
}

// StrategyCheck is one named threshold test. Value and Target are formatted
// for display and consumed verbatim by callers.
type StrategyCheck struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Target string `json:"target"`
	Passed bool   `json:"passed"`
}

// StrategyResult is the complete outcome of one strategy evaluation.
type StrategyResult struct {
	StrategyName string          `json:"strategy_name"`
	Checks       []StrategyCheck `json:"checks"`
}

// PassedCount returns the number of passed checks.
func (r *StrategyResult) PassedCount() int {
	passed := 0
	for _, check := range r.Checks {
		if check.Passed {
			passed++
		}
	}
	return passed
}

// TotalCount returns the total number of checks.
func (r *StrategyResult) TotalCount() int {
	return len(r.Checks)
}

// Score returns a 0-100 score based on the share of passed checks.
func (r *StrategyResult) Score() int {
	if len(r.Checks) == 0 {
		return 0
	}
	return int(math.Round(float64(r.PassedCount()) / float64(len(r.Checks)) * 100))
}

// AnalysisResult aggregates one fact, one compliance verdict and one strategy
// result. Constructed fresh per analysis request and never mutated.
type AnalysisResult struct {
	Fact       *FinancialFact    `json:"fact"`
	Compliance ComplianceVerdict `json:"compliance"`
	Strategy   StrategyResult    `json:"strategy"`
}

// MinInvestableScore is the strategy score floor for an investable verdict.
const MinInvestableScore = 50

// IsInvestable reports whether the stock is Shariah compliant and scores
// at least MinInvestableScore under the selected strategy.
func (a *AnalysisResult) IsInvestable() bool {
	return a.Compliance.IsCompliant() && a.Strategy.Score() >= MinInvestableScore
}
