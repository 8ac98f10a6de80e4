package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/mizan/screener/internal/domain"
	"github.com/mizan/screener/internal/external/yahoo"
	"github.com/mizan/screener/internal/shariah"
	"github.com/mizan/screener/internal/strategy"
	"github.com/mizan/screener/pkg/logger"
	"github.com/mizan/screener/pkg/metrics"
	"github.com/mizan/screener/pkg/redis"
)

// FactProvider fetches normalized financial facts by ticker.
type FactProvider interface {
	FetchFact(ctx context.Context, ticker string) (*domain.FinancialFact, error)
}

// ProfileProvider fills descriptive fields the primary source left blank.
type ProfileProvider interface {
	FetchProfile(ctx context.Context, ticker string) (*yahoo.CompanyProfile, error)
}

// Analyzer runs the full pipeline for one ticker: fetch the fact, apply the
// compliance screen and evaluate the selected strategy. Facts are cached so
// repeated analyses within the TTL reuse one provider round trip.
type Analyzer struct {
	provider   FactProvider
	profiles   ProfileProvider
	compliance *shariah.Evaluator
	strategies *strategy.Registry
	cache      *redis.Cache
	recorder   *metrics.Recorder
	logger     *logger.Logger
}

// New creates an Analyzer. profiles, cache and recorder may be nil; all
// three are optional.
func New(provider FactProvider, profiles ProfileProvider, compliance *shariah.Evaluator,
	strategies *strategy.Registry, cache *redis.Cache, recorder *metrics.Recorder,
	log *logger.Logger) *Analyzer {
	return &Analyzer{
		provider:   provider,
		profiles:   profiles,
		compliance: compliance,
		strategies: strategies,
		cache:      cache,
		recorder:   recorder,
		logger:     log,
	}
}

// Strategies exposes the registry for callers listing available strategies.
func (a *Analyzer) Strategies() *strategy.Registry {
	return a.strategies
}

// Analyze evaluates one ticker under the named strategy.
func (a *Analyzer) Analyze(ctx context.Context, ticker, strategyName string) (*domain.AnalysisResult, error) {
	strat, err := a.strategies.Get(strategyName)
	if err != nil {
		return nil, err
	}

	fact, err := a.fact(ctx, ticker)
	if err != nil {
		return nil, err
	}

	verdict := a.compliance.Evaluate(ctx, fact)
	result := strat.Evaluate(fact)

	if a.recorder != nil {
		a.recorder.RecordAnalysis(strat.Name())
		a.recorder.RecordVerdict(verdict.Status())
		for _, failure := range verdict.Failures {
			a.recorder.RecordScreenFailure(failure)
		}
	}

	a.logger.WithFields(map[string]interface{}{
		"ticker":   fact.Ticker,
		"strategy": strat.Name(),
		"status":   verdict.Status(),
		"score":    result.Score(),
	}).Info("Analysis completed")

	return &domain.AnalysisResult{
		Fact:       fact,
		Compliance: verdict,
		Strategy:   result,
	}, nil
}

// Warm fetches a ticker into the fact cache without evaluating anything.
func (a *Analyzer) Warm(ctx context.Context, ticker string) error {
	_, err := a.fact(ctx, ticker)
	return err
}

func (a *Analyzer) fact(ctx context.Context, ticker string) (*domain.FinancialFact, error) {
	if a.cache == nil {
		return a.fetchFact(ctx, ticker)
	}

	var fact domain.FinancialFact
	hit, err := a.cache.Get(ctx, redis.FactKey(ticker), &fact)
	if err != nil {
		a.logger.WithError(err).Warn("Fact cache read failed")
	}
	if hit {
		return &fact, nil
	}

	fresh, err := a.fetchFact(ctx, ticker)
	if err != nil {
		return nil, err
	}

	if err := a.cache.Set(ctx, redis.FactKey(fresh.Ticker), fresh, redis.TTLMedium); err != nil {
		a.logger.WithError(err).Warn("Fact cache write failed")
	}
	return fresh, nil
}

func (a *Analyzer) fetchFact(ctx context.Context, ticker string) (*domain.FinancialFact, error) {
	start := time.Now()
	fact, err := a.provider.FetchFact(ctx, ticker)
	if a.recorder != nil {
		a.recorder.RecordProviderLatency("fmp", "fetch_fact", time.Since(start).Seconds())
	}
	if err != nil {
		return nil, fmt.Errorf("fetch fact for %s: %w", ticker, err)
	}

	a.backfillProfile(ctx, fact)
	return fact, nil
}

// backfillProfile scrapes sector, industry and description from the
// secondary source when the primary one omitted them. Failures are logged
// and tolerated; the fact stays usable either way.
func (a *Analyzer) backfillProfile(ctx context.Context, fact *domain.FinancialFact) {
	if a.profiles == nil {
		return
	}
	if fact.Sector != domain.UnknownSector && fact.Industry != domain.UnknownSector && fact.Description != "" {
		return
	}

	start := time.Now()
	profile, err := a.profiles.FetchProfile(ctx, fact.Ticker)
	if a.recorder != nil {
		a.recorder.RecordProviderLatency("yahoo", "fetch_profile", time.Since(start).Seconds())
	}
	if err != nil {
		a.logger.WithError(err).WithField("ticker", fact.Ticker).Warn("Profile backfill failed")
		return
	}

	if fact.Sector == domain.UnknownSector && profile.Sector != "" {
		fact.Sector = profile.Sector
	}
	if fact.Industry == domain.UnknownSector && profile.Industry != "" {
		fact.Industry = profile.Industry
	}
	if fact.Description == "" {
		fact.Description = profile.Description
	}
}
