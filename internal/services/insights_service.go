package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"finvault/internal/cache"
	"finvault/internal/core"
	"finvault/internal/insights"
)

// InsightKind names one cached analysis.
type InsightKind string

const (
	InsightPatterns        InsightKind = "patterns"
	InsightPredictions     InsightKind = "predictions"
	InsightRecommendations InsightKind = "recommendations"
)

// Overview bundles the three analyses computed over one ledger snapshot.
type Overview struct {
	Patterns        insights.PatternReport
	Predictions     insights.ForecastReport
	Recommendations insights.RecommendationReport
}

// InsightsService runs the insight engines over a user's ledger and caches
// the results per user and kind until the ledger changes.
//
// Each user has a generation that InvalidateUser bumps. A result is only
// cached if the generation it was loaded under is still current, so a write
// racing with a load never leaves the old snapshot in the cache.
type InsightsService struct {
	reader TransactionReader
	cache  cache.Cache[any]
	now    func() time.Time

	mu          sync.Mutex
	generations map[string]uint64
}

func NewInsightsService(reader TransactionReader, c cache.Cache[any]) *InsightsService {
	return &InsightsService{
		reader:      reader,
		cache:       c,
		now:         time.Now,
		generations: make(map[string]uint64),
	}
}

// WithClock replaces the time source.
func (s *InsightsService) WithClock(now func() time.Time) *InsightsService {
	s.now = now
	return s
}

func cacheKey(userID string, kind InsightKind) string {
	return userID + ":" + string(kind)
}

func (s *InsightsService) InvalidateUser(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generations[userID]++
	if s.cache == nil {
		return
	}
	if n := s.cache.DeletePrefix(userID + ":"); n > 0 {
		slog.Debug("Insights cache invalidated", "component", "insights", "user_id", userID, "entries", n)
	}
}

func (s *InsightsService) Patterns(ctx context.Context, userID string) (insights.PatternReport, error) {
	return compute(ctx, s, userID, InsightPatterns, insights.AnalyzePatterns)
}

func (s *InsightsService) Predictions(ctx context.Context, userID string) (insights.ForecastReport, error) {
	return compute(ctx, s, userID, InsightPredictions, insights.Forecast)
}

func (s *InsightsService) Recommendations(ctx context.Context, userID string) (insights.RecommendationReport, error) {
	return compute(ctx, s, userID, InsightRecommendations, insights.Recommend)
}

// Overview computes all three analyses concurrently from a single load.
func (s *InsightsService) Overview(ctx context.Context, userID string) (Overview, error) {
	p, okP := cached[insights.PatternReport](s, userID, InsightPatterns)
	f, okF := cached[insights.ForecastReport](s, userID, InsightPredictions)
	r, okR := cached[insights.RecommendationReport](s, userID, InsightRecommendations)
	if okP && okF && okR {
		return Overview{Patterns: p, Predictions: f, Recommendations: r}, nil
	}

	gen := s.generation(userID)
	txns, err := s.load(ctx, userID)
	if err != nil {
		return Overview{}, err
	}
	now := s.now()

	var out Overview
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		out.Patterns = insights.AnalyzePatterns(txns, now)
		return nil
	})
	g.Go(func() error {
		out.Predictions = insights.Forecast(txns, now)
		return nil
	})
	g.Go(func() error {
		out.Recommendations = insights.Recommend(txns, now)
		return nil
	})
	if err := g.Wait(); err != nil {
		return Overview{}, err
	}

	s.store(userID, gen, map[InsightKind]any{
		InsightPatterns:        out.Patterns,
		InsightPredictions:     out.Predictions,
		InsightRecommendations: out.Recommendations,
	})
	return out, nil
}

func compute[T any](ctx context.Context, s *InsightsService, userID string, kind InsightKind, run func([]core.Transaction, time.Time) T) (T, error) {
	if v, ok := cached[T](s, userID, kind); ok {
		return v, nil
	}
	gen := s.generation(userID)
	txns, err := s.load(ctx, userID)
	if err != nil {
		var zero T
		return zero, err
	}
	v := run(txns, s.now())
	s.store(userID, gen, map[InsightKind]any{kind: v})
	return v, nil
}

func cached[T any](s *InsightsService, userID string, kind InsightKind) (T, bool) {
	var zero T
	if s.cache == nil {
		return zero, false
	}
	raw, ok := s.cache.Get(cacheKey(userID, kind))
	if !ok {
		return zero, false
	}
	v, ok := raw.(T)
	return v, ok
}

func (s *InsightsService) generation(userID string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generations[userID]
}

// store caches results computed under gen, unless the user was invalidated
// since.
func (s *InsightsService) store(userID string, gen uint64, results map[InsightKind]any) {
	if s.cache == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generations[userID] != gen {
		slog.Debug("Insights computed from a stale ledger, not cached", "component", "insights", "user_id", userID)
		return
	}
	for kind, v := range results {
		s.cache.Set(cacheKey(userID, kind), v)
	}
}

func (s *InsightsService) load(ctx context.Context, userID string) ([]core.Transaction, error) {
	txns, err := s.reader.ListTransactions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	return txns, nil
}
