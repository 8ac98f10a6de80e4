package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search tickers by company name",
	Long: `Searches tickers matching a company name or symbol fragment.

Example:
  go run ./cmd/screener search "coca cola"
  go run ./cmd/screener search tesla --limit 5`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

var searchLimit int

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().IntVar(&searchLimit, "limit", 10, "maximum number of results")
}

func runSearch(cmd *cobra.Command, args []string) error {
	c, err := bootstrap(false)
	if err != nil {
		return err
	}
	defer c.close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	query := args[0]
	matches, err := c.fmpClient.SearchSymbols(ctx, query, searchLimit)
	if err != nil {
		c.log.WithError(err).Warn("Primary symbol search failed")
	}

	if len(matches) == 0 {
		for _, m := range c.yahooClient.Search(ctx, query, searchLimit) {
			fmt.Printf("%-8s  %-40s  %s\n", m.Symbol, m.Name, m.Exchange)
		}
		return nil
	}

	for _, m := range matches {
		fmt.Printf("%-8s  %-40s  %s\n", m.Symbol, m.Name, m.Exchange)
	}
	return nil
}
