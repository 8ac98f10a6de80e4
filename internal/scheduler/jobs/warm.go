package jobs

import (
	"context"
	"fmt"

	"github.com/mizan/screener/internal/analysis"
	"github.com/mizan/screener/internal/watchlist"
	"github.com/mizan/screener/pkg/logger"
)

// CacheWarmJob re-fetches every distinct watchlisted ticker so the fact
// cache is hot before users load their lists. A single bad ticker never
// aborts the sweep.
type CacheWarmJob struct {
	analyzer *analysis.Analyzer
	repo     *watchlist.Repository
	logger   *logger.Logger
}

// NewCacheWarmJob creates the daily cache warm job.
func NewCacheWarmJob(analyzer *analysis.Analyzer, repo *watchlist.Repository, log *logger.Logger) *CacheWarmJob {
	return &CacheWarmJob{analyzer: analyzer, repo: repo, logger: log}
}

func (j *CacheWarmJob) Name() string {
	return "watchlist_cache_warm"
}

// Schedule runs before the US market open, 06:30 UTC.
func (j *CacheWarmJob) Schedule() string {
	return "0 30 6 * * *"
}

// Run warms the fact cache for every watchlisted ticker.
func (j *CacheWarmJob) Run(ctx context.Context) error {
	tickers, err := j.repo.DistinctTickers(ctx)
	if err != nil {
		return fmt.Errorf("load watchlisted tickers: %w", err)
	}

	warmed := 0
	for _, ticker := range tickers {
		if err := j.analyzer.Warm(ctx, ticker); err != nil {
			j.logger.WithError(err).WithField("ticker", ticker).Warn("Cache warm failed for ticker")
			continue
		}
		warmed++
	}

	j.logger.WithFields(map[string]interface{}{
		"total":  len(tickers),
		"warmed": warmed,
	}).Info("Watchlist cache warm completed")
	return nil
}
