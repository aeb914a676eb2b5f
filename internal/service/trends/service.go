// internal/service/trends/service.go

package trends

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"trendpulse/internal/cache"
	"trendpulse/internal/domain/trend"
)

// Default cache windows
const (
	DefaultTrendsTTL = 15 * time.Minute
	DefaultKeysTTL   = 10 * time.Minute
)

// ServiceConfig contains configuration for the trends service
type ServiceConfig struct {
	TrendsTTL time.Duration
	KeysTTL   time.Duration
}

// Service serves cached trend snapshots and access keys
type Service struct {
	source    trend.Source
	trends    *cache.Value[trend.Dataset]
	keys      *cache.Value[[]string]
	archivers []trend.Archiver
	logger    zerolog.Logger
	now       cache.Clock
}

// NewService creates a new trends service. A nil clock uses time.Now.
func NewService(
	source trend.Source,
	cfg ServiceConfig,
	logger zerolog.Logger,
	now cache.Clock,
	archivers ...trend.Archiver,
) *Service {
	if cfg.TrendsTTL <= 0 {
		cfg.TrendsTTL = DefaultTrendsTTL
	}
	if cfg.KeysTTL <= 0 {
		cfg.KeysTTL = DefaultKeysTTL
	}
	if now == nil {
		now = time.Now
	}

	return &Service{
		source:    source,
		trends:    cache.New[trend.Dataset](cfg.TrendsTTL, now),
		keys:      cache.New[[]string](cfg.KeysTTL, now),
		archivers: archivers,
		logger:    logger.With().Str("component", "trends").Logger(),
		now:       now,
	}
}

// Trends returns the cached snapshot while fresh, otherwise fetches a new one.
// A fetched snapshot is cached only when it carries no error flag, but it is
// returned either way.
func (s *Service) Trends(ctx context.Context) trend.Dataset {
	stored := false
	d, _ := s.trends.GetOrRefresh(func() (trend.Dataset, error) {
		return s.source.FetchTrends(ctx), nil
	}, func(d trend.Dataset) bool {
		stored = !d.Failed()
		return stored
	})

	if d.Failed() {
		s.logger.Warn().Str("error", d.Error).Msg("Trend fetch failed, cache not updated")
	}
	if stored {
		s.archive(ctx, d)
	}

	return d
}

// Filtered returns the current snapshot narrowed to a window
func (s *Service) Filtered(ctx context.Context, w trend.Window) trend.Dataset {
	return trend.Filter(s.Trends(ctx), w, s.now())
}

// ValidKeys returns the active access keys. A failed fetch returns an empty
// list and leaves the cache untouched, so the next call fetches again.
func (s *Service) ValidKeys(ctx context.Context) []string {
	keys, err := s.keys.GetOrRefresh(func() ([]string, error) {
		return s.source.FetchAPIKeys(ctx)
	}, nil)
	if err != nil {
		if errors.Is(err, trend.ErrNotConfigured) {
			s.logger.Warn().Msg("Access keys unavailable: sheets not configured")
		} else {
			s.logger.Error().Err(err).Msg("Error fetching access keys")
		}
		return []string{}
	}

	return keys
}

// IsValidKey reports whether key is one of the active access keys
func (s *Service) IsValidKey(ctx context.Context, key string) bool {
	if key == "" {
		return false
	}

	for _, k := range s.ValidKeys(ctx) {
		if k == key {
			return true
		}
	}
	return false
}

// archive hands a freshly cached snapshot to every archiver. Failures are
// logged only. Archivers outlive the request that triggered the refresh.
func (s *Service) archive(ctx context.Context, d trend.Dataset) {
	ctx = context.WithoutCancel(ctx)
	for _, a := range s.archivers {
		if err := a.Archive(ctx, d); err != nil {
			s.logger.Error().Err(err).Str("archiver", a.Name()).Msg("Error archiving trends snapshot")
		}
	}
}
