package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/comitanigiacomo/kanso-timetable/internal/core/domain"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var _ domain.TimetableRepository = (*CachedTimetableRepository)(nil)

const defaultListTTL = 30 * time.Minute

// CachedTimetableRepository caches each user's timetable list in Redis and
// drops it on every write. Redis failures only cost a trip to next.
type CachedTimetableRepository struct {
	next   domain.TimetableRepository
	cache  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedTimetableRepository(next domain.TimetableRepository, cache *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedTimetableRepository {
	if ttl <= 0 {
		ttl = defaultListTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedTimetableRepository{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		logger: logger.Named("timetable_cache"),
	}
}

func (r *CachedTimetableRepository) cacheKey(userID string) string {
	return fmt.Sprintf("timetables:%s", userID)
}

func (r *CachedTimetableRepository) invalidate(ctx context.Context, userID string) {
	if err := r.cache.Del(ctx, r.cacheKey(userID)).Err(); err != nil {
		r.logger.Warn("failed to invalidate list", zap.String("user_id", userID), zap.Error(err))
	}
}

func (r *CachedTimetableRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Timetable, error) {
	key := r.cacheKey(userID)

	val, err := r.cache.Get(ctx, key).Bytes()
	if err == nil {
		var list []*domain.Timetable
		if err := json.Unmarshal(val, &list); err == nil {
			for _, t := range list {
				t.Normalize()
			}
			return list, nil
		}

		r.logger.Warn("corrupted list, cleaning up key", zap.String("user_id", userID))
		r.cache.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		r.logger.Warn("redis read error", zap.Error(err))
	}

	list, err := r.next.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(list); err == nil {
		if setErr := r.cache.Set(ctx, key, data, r.ttl).Err(); setErr != nil {
			r.logger.Warn("redis set error", zap.Error(setErr))
		}
	}

	return list, nil
}

func (r *CachedTimetableRepository) GetByID(ctx context.Context, id, userID string) (*domain.Timetable, error) {
	return r.next.GetByID(ctx, id, userID)
}

func (r *CachedTimetableRepository) GetActive(ctx context.Context, userID string) (*domain.Timetable, error) {
	return r.next.GetActive(ctx, userID)
}

func (r *CachedTimetableRepository) CountByUserID(ctx context.Context, userID string) (int, error) {
	return r.next.CountByUserID(ctx, userID)
}

func (r *CachedTimetableRepository) NameExists(ctx context.Context, userID, name, excludeID string) (bool, error) {
	return r.next.NameExists(ctx, userID, name, excludeID)
}

func (r *CachedTimetableRepository) Create(ctx context.Context, t *domain.Timetable) error {
	if err := r.next.Create(ctx, t); err != nil {
		return err
	}
	r.invalidate(ctx, t.UserID)
	return nil
}

func (r *CachedTimetableRepository) Update(ctx context.Context, t *domain.Timetable) error {
	if err := r.next.Update(ctx, t); err != nil {
		return err
	}
	r.invalidate(ctx, t.UserID)
	return nil
}

func (r *CachedTimetableRepository) SetActive(ctx context.Context, id, userID string, active bool) error {
	if err := r.next.SetActive(ctx, id, userID, active); err != nil {
		return err
	}
	r.invalidate(ctx, userID)
	return nil
}

func (r *CachedTimetableRepository) Delete(ctx context.Context, id, userID string) error {
	if err := r.next.Delete(ctx, id, userID); err != nil {
		return err
	}
	r.invalidate(ctx, userID)
	return nil
}
