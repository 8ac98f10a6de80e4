package commands

import (
	"fmt"

	"github.com/mizan/screener/internal/analysis"
	"github.com/mizan/screener/internal/external/boycott"
	"github.com/mizan/screener/internal/external/fmp"
	"github.com/mizan/screener/internal/external/yahoo"
	"github.com/mizan/screener/internal/shariah"
	"github.com/mizan/screener/internal/strategy"
	"github.com/mizan/screener/pkg/config"
	"github.com/mizan/screener/pkg/httputil"
	"github.com/mizan/screener/pkg/logger"
	"github.com/mizan/screener/pkg/metrics"
	"github.com/mizan/screener/pkg/redis"
)

// components holds everything the commands wire up from config. Redis and
// the metrics recorder stay nil when disabled.
type components struct {
	cfg         *config.Config
	log         *logger.Logger
	fmpClient   *fmp.Client
	yahooClient *yahoo.Client
	analyzer    *analysis.Analyzer
	cache       *redis.Cache
	redisClient *redis.Client
	recorder    *metrics.Recorder
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

func loadThresholds() (strategy.Thresholds, error) {
	if thresholdsFile == "" {
		return strategy.DefaultThresholds(), nil
	}
	return strategy.LoadThresholds(thresholdsFile)
}

// bootstrap builds the analysis pipeline shared by every command.
func bootstrap(withMetrics bool) (*components, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log := logger.New(cfg)

	thresholds, err := loadThresholds()
	if err != nil {
		return nil, fmt.Errorf("load thresholds: %w", err)
	}

	httpClient := httputil.New(cfg, log)
	fmpClient := fmp.NewClient(cfg, log, httpClient)
	yahooClient := yahoo.NewClient(cfg, log, httpClient)
	boycottClient := boycott.NewClient(cfg, log)

	evaluator := shariah.NewEvaluator(boycottClient.IsBoycotted, log)
	registry := strategy.NewRegistry(thresholds)

	c := &components{
		cfg:         cfg,
		log:         log,
		fmpClient:   fmpClient,
		yahooClient: yahooClient,
	}

	if cfg.Redis.Enabled {
		redisClient, err := redis.New(cfg)
		if err != nil {
			log.WithError(err).Warn("Redis unavailable, continuing without cache")
		} else {
			c.redisClient = redisClient
			c.cache = redis.NewCache(redisClient, "screener")
		}
	}

	if withMetrics && cfg.MetricsEnabled {
		c.recorder = metrics.New()
	}

	c.analyzer = analysis.New(fmpClient, yahooClient, evaluator, registry, c.cache, c.recorder, log)
	return c, nil
}

func (c *components) close() {
	if c.redisClient != nil {
		c.redisClient.Close()
	}
}
