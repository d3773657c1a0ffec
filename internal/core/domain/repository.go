package domain

import (
	"context"
	"errors"
)

var ErrCacheMiss = errors.New("cache miss")

type TimetableRepository interface {
	// Create persists a new timetable. A duplicate (user, name) pair yields ErrTimetableNameTaken.
	Create(ctx context.Context, t *Timetable) error

	// GetByID retrieves a timetable owned by userID. Timetables of other
	// users are reported as ErrTimetableNotFound.
	GetByID(ctx context.Context, id, userID string) (*Timetable, error)

	// GetActive retrieves the user's active timetable, if any.
	GetActive(ctx context.Context, userID string) (*Timetable, error)

	// ListByUserID returns the user's timetables, oldest first.
	ListByUserID(ctx context.Context, userID string) ([]*Timetable, error)

	CountByUserID(ctx context.Context, userID string) (int, error)

	// NameExists checks the per-user name uniqueness, ignoring excludeID.
	NameExists(ctx context.Context, userID, name, excludeID string) (bool, error)

	// Update overwrites the whole document (last write wins). It does not
	// change the active flag; use SetActive for that.
	Update(ctx context.Context, t *Timetable) error

	// SetActive flips the active flag. Activating a timetable deactivates
	// every other timetable of the same user atomically.
	SetActive(ctx context.Context, id, userID string, active bool) error

	Delete(ctx context.Context, id, userID string) error
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Delete(ctx context.Context, id string) error
}

// StatsCache stores precomputed statistics. Get returns ErrCacheMiss when
// nothing is stored for the timetable.
type StatsCache interface {
	Get(ctx context.Context, timetableID string) (*TimetableStats, error)
	Set(ctx context.Context, stats *TimetableStats) error
	Delete(ctx context.Context, timetableID string) error
}
