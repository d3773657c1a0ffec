package workers

import (
	"context"

	"github.com/comitanigiacomo/kanso-timetable/internal/core/domain"
	"github.com/comitanigiacomo/kanso-timetable/internal/metrics"
	"go.uber.org/zap"
)

const defaultQueueSize = 100

type TimetableReader interface {
	GetByID(ctx context.Context, id, userID string) (*domain.Timetable, error)
}

type StatsWriter interface {
	Set(ctx context.Context, stats *domain.TimetableStats) error
}

type StatsJob struct {
	TimetableID string
	UserID      string
}

// StatsWorker refreshes cached statistics off the request path. It never
// rolls weeks over; it only reads what is stored.
type StatsWorker struct {
	repo   TimetableReader
	cache  StatsWriter
	jobs   chan StatsJob
	logger *zap.Logger
}

func NewStatsWorker(repo TimetableReader, cache StatsWriter, queueSize int, logger *zap.Logger) *StatsWorker {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsWorker{
		repo:   repo,
		cache:  cache,
		jobs:   make(chan StatsJob, queueSize),
		logger: logger.Named("stats_worker"),
	}
}

func (w *StatsWorker) Start(ctx context.Context) {
	go func() {
		w.logger.Info("stats worker started")
		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ctx.Done():
				w.logger.Info("stats worker shutting down")
				return
			}
		}
	}()
}

// Enqueue never blocks the caller; a full queue drops the job.
func (w *StatsWorker) Enqueue(timetableID, userID string) {
	select {
	case w.jobs <- StatsJob{TimetableID: timetableID, UserID: userID}:
	default:
		metrics.ObserveStatsJob("dropped")
		w.logger.Warn("stats queue full, dropping job", zap.String("timetable_id", timetableID))
	}
}

func (w *StatsWorker) processJob(ctx context.Context, job StatsJob) {
	t, err := w.repo.GetByID(ctx, job.TimetableID, job.UserID)
	if err != nil {
		metrics.ObserveStatsJob("failed")
		w.logger.Warn("stats refresh: load timetable",
			zap.String("timetable_id", job.TimetableID),
			zap.Error(err),
		)
		return
	}

	t.Normalize()
	t.RecomputeRates()
	stats := domain.ComputeStats(t)

	if err := w.cache.Set(ctx, stats); err != nil {
		metrics.ObserveStatsJob("failed")
		w.logger.Error("stats refresh: write cache",
			zap.String("timetable_id", job.TimetableID),
			zap.Error(err),
		)
		return
	}

	metrics.ObserveStatsJob("done")
	w.logger.Debug("stats refreshed",
		zap.String("timetable_id", job.TimetableID),
		zap.Int("weeks", stats.Overall.TotalWeeks),
	)
}
