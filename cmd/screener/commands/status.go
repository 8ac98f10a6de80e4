package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mizan/screener/pkg/database"
	"github.com/mizan/screener/pkg/redis"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check connectivity of configured services",
	Long: `Checks every configured collaborator: database, redis and the
FMP API key presence.

Example:
  go run ./cmd/screener status`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	printStatusLine("FMP API key", cfg.FMP.APIKey != "", "set", "missing (set FMP_API_KEY)")

	if cfg.Database.URL == "" {
		fmt.Println("database      : not configured")
	} else {
		db, err := database.New(cfg)
		if err == nil {
			err = db.Ping(ctx)
			db.Close()
		}
		printStatusLine("database", err == nil, "ok", fmt.Sprintf("unreachable (%v)", err))
	}

	if !cfg.Redis.Enabled {
		fmt.Println("redis         : disabled")
	} else {
		client, err := redis.New(cfg)
		if err == nil {
			client.Close()
		}
		printStatusLine("redis", err == nil, "ok", fmt.Sprintf("unreachable (%v)", err))
	}

	return nil
}

func printStatusLine(name string, ok bool, okMsg, failMsg string) {
	msg := okMsg
	if !ok {
		msg = failMsg
	}
	fmt.Printf("%-13s : %s\n", name, msg)
}
