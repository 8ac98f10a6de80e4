package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mizan/screener/internal/domain"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [ticker]",
	Short: "Screen one ticker",
	Long: `Fetches fundamentals for a ticker, applies the Shariah compliance
screen and scores it under the selected strategy.

Example:
  go run ./cmd/screener analyze AAPL
  go run ./cmd/screener analyze MSFT --strategy Graham`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

var analyzeStrategy string

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeStrategy, "strategy", "Mizan", "strategy to evaluate (Mizan|Graham|Lynch)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	c, err := bootstrap(false)
	if err != nil {
		return err
	}
	defer c.close()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	result, err := c.analyzer.Analyze(ctx, args[0], analyzeStrategy)
	if err != nil {
		return err
	}

	printAnalysis(result)
	return nil
}

func printAnalysis(result *domain.AnalysisResult) {
	fact := result.Fact

	printDoubleSeparator()
	fmt.Printf("  %s (%s)\n", fact.Name, fact.Ticker)
	fmt.Printf("  %s / %s\n", fact.Sector, fact.Industry)
	printSeparator()

	fmt.Printf("  Price       : %.2f %s\n", fact.CurrentPrice, fact.Currency)
	fmt.Printf("  Market Cap  : %.0f\n", fact.MarketCap)

	printSeparator()
	fmt.Printf("  Shariah Compliance: %s\n", result.Compliance.Status())
	fmt.Printf("    Interest Income : %.2f%%\n", result.Compliance.InterestIncomeRatio)
	fmt.Printf("    Debt Ratio      : %.2f%%\n", result.Compliance.DebtRatio)
	fmt.Printf("    Real Assets     : %.2f%%\n", result.Compliance.IlliquidAssetsRatio)
	if len(result.Compliance.Failures) > 0 {
		fmt.Printf("    Failures        : %s\n", strings.Join(result.Compliance.Failures, ", "))
	}

	printSeparator()
	fmt.Printf("  Strategy: %s (score %d/100)\n", result.Strategy.StrategyName, result.Strategy.Score())
	for _, check := range result.Strategy.Checks {
		mark := "FAIL"
		if check.Passed {
			mark = "PASS"
		}
		fmt.Printf("    [%s] %-16s %8s  (target %s)\n", mark, check.Name, check.Value, check.Target)
	}

	printSeparator()
	if result.IsInvestable() {
		fmt.Println("  Verdict: INVESTABLE")
	} else {
		fmt.Println("  Verdict: NOT INVESTABLE")
	}
	printDoubleSeparator()
}

func printSeparator() {
	fmt.Println("-----------------------------------------------------------")
}

func printDoubleSeparator() {
	fmt.Println("===========================================================")
}
