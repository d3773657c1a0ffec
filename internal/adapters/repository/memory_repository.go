package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/comitanigiacomo/kanso-timetable/internal/core/domain"
)

var (
	_ domain.TimetableRepository = (*InMemoryTimetableRepository)(nil)
	_ domain.UserRepository      = (*InMemoryUserRepository)(nil)
)

// InMemoryTimetableRepository stores deep copies, so callers never share
// state with the store or with each other.
type InMemoryTimetableRepository struct {
	store map[string]*domain.Timetable
	seq   map[string]int
	next  int

	mu sync.RWMutex
}

func NewInMemoryTimetableRepository() *InMemoryTimetableRepository {
	return &InMemoryTimetableRepository{
		store: make(map[string]*domain.Timetable),
		seq:   make(map[string]int),
	}
}

func (r *InMemoryTimetableRepository) Create(ctx context.Context, t *domain.Timetable) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.store {
		if existing.UserID != t.UserID {
			continue
		}
		if existing.Name == t.Name {
			return domain.ErrTimetableNameTaken
		}
		if existing.IsActive && t.IsActive {
			return domain.ErrConflict
		}
	}

	r.store[t.ID] = t.Clone()
	r.seq[t.ID] = r.next
	r.next++
	return nil
}

func (r *InMemoryTimetableRepository) GetByID(ctx context.Context, id, userID string) (*domain.Timetable, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.store[id]
	if !ok || t.UserID != userID {
		return nil, domain.ErrTimetableNotFound
	}
	return t.Clone(), nil
}

func (r *InMemoryTimetableRepository) GetActive(ctx context.Context, userID string) (*domain.Timetable, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.store {
		if t.UserID == userID && t.IsActive {
			return t.Clone(), nil
		}
	}
	return nil, domain.ErrTimetableNotFound
}

func (r *InMemoryTimetableRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Timetable, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]*domain.Timetable, 0)
	for _, t := range r.store {
		if t.UserID == userID {
			list = append(list, t.Clone())
		}
	}

	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		}
		return r.seq[list[i].ID] < r.seq[list[j].ID]
	})

	return list, nil
}

func (r *InMemoryTimetableRepository) CountByUserID(ctx context.Context, userID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, t := range r.store {
		if t.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (r *InMemoryTimetableRepository) NameExists(ctx context.Context, userID, name, excludeID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.store {
		if t.UserID == userID && t.Name == name && t.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *InMemoryTimetableRepository) Update(ctx context.Context, t *domain.Timetable) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.store[t.ID]
	if !ok || stored.UserID != t.UserID {
		return domain.ErrTimetableNotFound
	}

	for _, other := range r.store {
		if other.ID != t.ID && other.UserID == t.UserID && other.Name == t.Name {
			return domain.ErrTimetableNameTaken
		}
	}

	clone := t.Clone()
	clone.IsActive = stored.IsActive
	clone.CreatedAt = stored.CreatedAt
	r.store[t.ID] = clone
	return nil
}

func (r *InMemoryTimetableRepository) SetActive(ctx context.Context, id, userID string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	target, ok := r.store[id]
	if !ok || target.UserID != userID {
		return domain.ErrTimetableNotFound
	}

	if active {
		for _, t := range r.store {
			if t.UserID == userID {
				t.IsActive = false
			}
		}
	}
	target.IsActive = active
	return nil
}

func (r *InMemoryTimetableRepository) Delete(ctx context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.store[id]
	if !ok || t.UserID != userID {
		return domain.ErrTimetableNotFound
	}
	delete(r.store, id)
	delete(r.seq, id)
	return nil
}

type InMemoryUserRepository struct {
	byID map[string]*domain.User

	mu sync.RWMutex
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		byID: make(map[string]*domain.User),
	}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.byID {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}

	clone := *user
	r.byID[user.ID] = &clone
	return nil
}

func (r *InMemoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.byID {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *InMemoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *InMemoryUserRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byID, id)
	return nil
}
