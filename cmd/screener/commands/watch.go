package commands

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/mizan/screener/internal/watchlist"
	"github.com/mizan/screener/pkg/database"
)

// watchCmd represents the watch command group
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Manage watchlists",
	Long: `Manages watchlists directly against the database.

Example:
  go run ./cmd/screener watch lists --user alice
  go run ./cmd/screener watch add 3 AAPL --user alice
  go run ./cmd/screener watch remove 3 AAPL --user alice`,
}

var watchUser string

var watchListsCmd = &cobra.Command{
	Use:   "lists",
	Short: "List watchlists and their tickers",
	RunE:  runWatchLists,
}

var watchAddCmd = &cobra.Command{
	Use:   "add [list-id] [ticker]",
	Short: "Add a ticker to a watchlist",
	Args:  cobra.ExactArgs(2),
	RunE:  runWatchAdd,
}

var watchRemoveCmd = &cobra.Command{
	Use:   "remove [list-id] [ticker]",
	Short: "Remove a ticker from a watchlist",
	Args:  cobra.ExactArgs(2),
	RunE:  runWatchRemove,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.AddCommand(watchListsCmd)
	watchCmd.AddCommand(watchAddCmd)
	watchCmd.AddCommand(watchRemoveCmd)

	watchCmd.PersistentFlags().StringVar(&watchUser, "user", "", "user id owning the watchlists")
	watchCmd.MarkPersistentFlagRequired("user")
}

func withRepo(fn func(ctx context.Context, repo *watchlist.Repository) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required for watchlist commands")
	}

	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return fn(ctx, watchlist.NewRepository(db.Pool))
}

func runWatchLists(cmd *cobra.Command, args []string) error {
	return withRepo(func(ctx context.Context, repo *watchlist.Repository) error {
		lists, err := repo.ListForUser(ctx, watchUser)
		if err != nil {
			return err
		}
		if len(lists) == 0 {
			fmt.Println("No watchlists")
			return nil
		}

		for _, list := range lists {
			tickers, err := repo.Tickers(ctx, watchUser, list.ID)
			if err != nil {
				return err
			}
			fmt.Printf("#%d %s (%d tickers)\n", list.ID, list.Name, len(tickers))
			for _, ticker := range tickers {
				fmt.Printf("    %s\n", ticker)
			}
		}
		return nil
	})
}

func runWatchAdd(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid list id %q", args[0])
	}

	return withRepo(func(ctx context.Context, repo *watchlist.Repository) error {
		if err := repo.AddTicker(ctx, watchUser, id, args[1]); err != nil {
			return err
		}
		fmt.Printf("Added %s to watchlist #%d\n", args[1], id)
		return nil
	})
}

func runWatchRemove(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid list id %q", args[0])
	}

	return withRepo(func(ctx context.Context, repo *watchlist.Repository) error {
		if err := repo.RemoveTicker(ctx, watchUser, id, args[1]); err != nil {
			return err
		}
		fmt.Printf("Removed %s from watchlist #%d\n", args[1], id)
		return nil
	})
}
