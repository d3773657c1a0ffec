package services

import (
	"context"
	"errors"

	"github.com/comitanigiacomo/kanso-timetable/internal/core/domain"
	"github.com/comitanigiacomo/kanso-timetable/internal/metrics"
	"go.uber.org/zap"
)

type StatsService struct {
	repo   domain.TimetableRepository
	cache  domain.StatsCache
	logger *zap.Logger
}

// NewStatsService builds the service. cache may be nil, in which case stats
// are computed on every call.
func NewStatsService(repo domain.TimetableRepository, cache domain.StatsCache, logger *zap.Logger) *StatsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsService{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// Get serves cached stats when they were computed from the timetable's
// current revision and recomputes them otherwise.
func (s *StatsService) Get(ctx context.Context, id, userID string) (*domain.TimetableStats, error) {
	t, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	prepare(t)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, t.ID)
		switch {
		case err == nil && cached.SourceUpdatedAt.Equal(t.UpdatedAt):
			metrics.ObserveStatsCache("hit")
			return cached, nil
		case err == nil:
			metrics.ObserveStatsCache("stale")
		case errors.Is(err, domain.ErrCacheMiss):
			metrics.ObserveStatsCache("miss")
		default:
			s.logger.Warn("stats cache read failed", zap.String("timetable_id", t.ID), zap.Error(err))
		}
	}

	stats := domain.ComputeStats(t)

	if s.cache != nil {
		if err := s.cache.Set(ctx, stats); err != nil {
			s.logger.Warn("stats cache write failed", zap.String("timetable_id", t.ID), zap.Error(err))
		}
	}

	return stats, nil
}
