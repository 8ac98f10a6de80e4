package shariah

import (
	"context"
	"fmt"

	"github.com/mizan/screener/internal/domain"
	"github.com/mizan/screener/pkg/logger"
)

// AAOIFI screening thresholds. Named so they can be tuned without touching
// evaluator logic.
const (
	MaxInterestIncomeRatio = 5.0  // interest income / total revenue (%)
	MaxDebtRatio           = 33.0 // total debt / total assets (%)
	MinRealAssetsRatio     = 20.0 // illiquid assets / total assets (%)
)

// Failure reason codes, in evaluation order.
const (
	ReasonActivity  = "Activity"
	ReasonBoycott   = "Boycott Listed"
	ReasonLiquidity = "Cash > Cap"
)

var (
	ReasonInterest   = fmt.Sprintf("Interest > %g%%", MaxInterestIncomeRatio)
	ReasonDebt       = fmt.Sprintf("Debt > %g%%", MaxDebtRatio)
	ReasonRealAssets = fmt.Sprintf("Real Assets < %g%%", MinRealAssetsRatio)
)

// ActivityScreen decides whether a business activity is compliant.
// Must be deterministic and side-effect free.
type ActivityScreen func(industry, sector, description string) (compliant bool, reason string)

// BoycottScreen reports whether a company is on a boycott list. The lookup
// may perform network I/O; errors are handled by the evaluator, never
// propagated.
type BoycottScreen func(ctx context.Context, companyName string) (bool, error)

// Evaluator applies the Shariah rule set to a financial fact. It holds no
// state beyond its injected screens and performs no I/O of its own.
type Evaluator struct {
	activityScreen ActivityScreen
	boycottScreen  BoycottScreen
	logger         *logger.Logger
}

// NewEvaluator creates an evaluator with the built-in activity screen.
// boycottScreen may be nil, in which case no company is considered boycotted.
func NewEvaluator(boycottScreen BoycottScreen, log *logger.Logger) *Evaluator {
	return &Evaluator{
		activityScreen: ScreenActivity,
		boycottScreen:  boycottScreen,
		logger:         log,
	}
}

// NewEvaluatorWithScreens creates an evaluator with both screens injected.
func NewEvaluatorWithScreens(activityScreen ActivityScreen, boycottScreen BoycottScreen, log *logger.Logger) *Evaluator {
	return &Evaluator{
		activityScreen: activityScreen,
		boycottScreen:  boycottScreen,
		logger:         log,
	}
}

// Evaluate runs all six checks in fixed order. Checks never short-circuit,
// so the failure list is always complete.
func (e *Evaluator) Evaluate(ctx context.Context, fact *domain.FinancialFact) domain.ComplianceVerdict {
	failures := make([]string, 0)

	// 1. Business activity
	isActivityOK, activityIssue := e.activityScreen(fact.Industry, fact.Sector, fact.Description)
	if !isActivityOK {
		failures = append(failures, ReasonActivity)
		e.logger.WithFields(map[string]interface{}{
			"ticker": fact.Ticker,
			"issue":  activityIssue,
		}).Info("Activity screen failed")
	}

	// 2. Boycott list
	isBoycotted := e.checkBoycott(ctx, fact)
	if isBoycotted {
		failures = append(failures, ReasonBoycott)
		e.logger.WithField("ticker", fact.Ticker).Info("Company is boycott listed")
	}

	// 3. Interest income ratio
	interestRatio := fact.InterestIncomeRatio()
	if interestRatio >= MaxInterestIncomeRatio {
		failures = append(failures, ReasonInterest)
		e.logger.WithFields(map[string]interface{}{
			"ticker": fact.Ticker,
			"ratio":  interestRatio,
		}).Info("Interest income ratio exceeds limit")
	}

	// 4. Debt ratio
	debtRatio := fact.DebtRatio()
	if debtRatio >= MaxDebtRatio {
		failures = append(failures, ReasonDebt)
		e.logger.WithFields(map[string]interface{}{
			"ticker": fact.Ticker,
			"ratio":  debtRatio,
		}).Info("Debt ratio exceeds limit")
	}

	// 5. Real (illiquid) assets ratio
	illiquidRatio := fact.IlliquidAssetsRatio()
	if illiquidRatio <= MinRealAssetsRatio {
		failures = append(failures, ReasonRealAssets)
		e.logger.WithFields(map[string]interface{}{
			"ticker": fact.Ticker,
			"ratio":  illiquidRatio,
		}).Info("Real assets ratio below limit")
	}

	// 6. Liquidity
	isLiquidOK := fact.IsLiquidOK()
	if !isLiquidOK {
		failures = append(failures, ReasonLiquidity)
		e.logger.WithField("ticker", fact.Ticker).Info("Current assets exceed market cap")
	}

	return domain.ComplianceVerdict{
		InterestIncomeRatio: interestRatio,
		DebtRatio:           debtRatio,
		IlliquidAssetsRatio: illiquidRatio,
		IsLiquidOK:          isLiquidOK,
		IsActivityCompliant: isActivityOK,
		ActivityIssue:       activityIssue,
		IsBoycotted:         isBoycotted,
		Failures:            failures,
	}
}

// checkBoycott invokes the injected boycott screen. Any failure falls back
// to the safe default (not boycotted): the policy favors not wrongly
// excluding a company over strict enforcement.
func (e *Evaluator) checkBoycott(ctx context.Context, fact *domain.FinancialFact) bool {
	if e.boycottScreen == nil {
		return false
	}

	boycotted, err := e.boycottScreen(ctx, fact.Name)
	if err != nil {
		e.logger.WithError(err).WithField("ticker", fact.Ticker).Warn("Boycott screen unavailable, assuming not listed")
		return false
	}

	return boycotted
}
