package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mizan/screener/internal/api"
	"github.com/mizan/screener/internal/api/handlers"
	"github.com/mizan/screener/internal/scheduler"
	"github.com/mizan/screener/internal/scheduler/jobs"
	"github.com/mizan/screener/internal/watchlist"
	"github.com/mizan/screener/pkg/database"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the REST API server",
	Long: `Starts the HTTP API server.

Endpoints:
  GET  /health                           - Health check
  GET  /metrics                          - Prometheus metrics (when enabled)
  GET  /api/strategies                   - List strategies
  GET  /api/analyze/{ticker}             - Full compliance + strategy analysis
  GET  /api/search?q=                    - Ticker search
  GET  /api/prices/{ticker}/history      - Daily closes with MA50
  GET  /api/watchlists                   - Watchlist CRUD (requires database)
  GET  /ws/quotes/{ticker}               - Live quote stream (websocket)

Example:
  go run ./cmd/screener api
  go run ./cmd/screener api --port 8080`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	c, err := bootstrap(true)
	if err != nil {
		return err
	}
	defer c.close()

	if apiPort != "" {
		c.cfg.Port = apiPort
	}

	log := c.log
	log.WithFields(map[string]interface{}{
		"port": c.cfg.Port,
		"env":  c.cfg.Env,
	}).Info("Initializing API server")

	routeHandlers := api.Handlers{
		Analyze: handlers.NewAnalyzeHandler(c.analyzer, log),
		Search:  handlers.NewSearchHandler(c.fmpClient, c.yahooClient, log),
		Prices:  handlers.NewPricesHandler(c.fmpClient, c.cache, log),
		Quotes:  handlers.NewQuotesHandler(c.fmpClient, log),
	}

	// Watchlists and the cache warm job need the database; without one the
	// server still serves analysis and search.
	var sched *scheduler.Scheduler
	if c.cfg.Database.URL != "" {
		db, err := database.New(c.cfg)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer db.Close()
		log.Info("Connected to database")

		repo := watchlist.NewRepository(db.Pool)
		routeHandlers.Watchlist = handlers.NewWatchlistHandler(repo, log)

		sched = scheduler.New(log)
		if err := sched.AddJob(jobs.NewCacheWarmJob(c.analyzer, repo, log)); err != nil {
			return fmt.Errorf("register warm job: %w", err)
		}
		sched.Start()
		defer sched.Stop()
	} else {
		log.Warn("DATABASE_URL not set, watchlists disabled")
	}

	router := api.NewRouter(routeHandlers, log, c.cfg.MetricsEnabled)
	server := api.New(c.cfg, log, router)

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.Info("API server started successfully")
	fmt.Printf("Server running on http://localhost:%s\n", c.cfg.Port)
	fmt.Println("Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
