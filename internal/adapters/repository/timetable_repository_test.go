package repository

import (
	"context"
	"testing"
	"time"

	"github.com/comitanigiacomo/kanso-timetable/internal/core/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var repoTestNow = time.Date(2024, 5, 15, 10, 0, 0, 0, time.UTC)

func newRepoTimetable(t *testing.T, userID, name string, createdAt time.Time) *domain.Timetable {
	t.Helper()
	tt, err := domain.NewTimetable(userID, name, "desc", "Europe/Rome", []domain.Activity{
		{Name: "Read", Time: "07:00-08:00", Category: "Self"},
		{Name: "Run", Time: "18:00-19:00", Category: "Health"},
	}, createdAt)
	require.NoError(t, err)
	return tt
}

// runTimetableRepositoryContract exercises behaviour every TimetableRepository
// implementation must share. newUser returns a fresh owner id.
func runTimetableRepositoryContract(t *testing.T, repo domain.TimetableRepository, newUser func(t *testing.T) string) {
	ctx := context.Background()

	t.Run("Create and read back", func(t *testing.T) {
		user := newUser(t)
		tt := newRepoTimetable(t, user, "Main", repoTestNow)
		tt.IsActive = true
		require.NoError(t, tt.ToggleStatus(tt.CurrentWeek.Activities[1].ID, 3, repoTestNow))
		tt.StartNewWeek(repoTestNow.AddDate(0, 0, 7))
		require.NoError(t, repo.Create(ctx, tt))

		got, err := repo.GetByID(ctx, tt.ID, user)
		require.NoError(t, err)

		assert.Equal(t, tt.Name, got.Name)
		assert.Equal(t, "desc", got.Description)
		assert.Equal(t, "Europe/Rome", got.Timezone)
		assert.True(t, got.IsActive)
		assert.Equal(t, tt.DefaultActivities, got.DefaultActivities)
		require.Len(t, got.History, 1)
		assert.Equal(t, tt.History[0].Activities[1].ID, got.History[0].Activities[1].ID)
		assert.True(t, got.History[0].Activities[1].DailyStatus[3])
		assert.True(t, tt.History[0].WeekStartDate.Equal(got.History[0].WeekStartDate))
		require.NotNil(t, got.CurrentWeek)
		assert.True(t, tt.CurrentWeek.WeekEndDate.Equal(got.CurrentWeek.WeekEndDate))
		assert.True(t, tt.UpdatedAt.Equal(got.UpdatedAt))

		active, err := repo.GetActive(ctx, user)
		require.NoError(t, err)
		assert.Equal(t, tt.ID, active.ID)
	})

	t.Run("Ownership is enforced", func(t *testing.T) {
		user := newUser(t)
		tt := newRepoTimetable(t, user, "Mine", repoTestNow)
		require.NoError(t, repo.Create(ctx, tt))

		_, err := repo.GetByID(ctx, tt.ID, newUser(t))
		assert.ErrorIs(t, err, domain.ErrTimetableNotFound)

		_, err = repo.GetByID(ctx, "not-a-uuid", user)
		assert.ErrorIs(t, err, domain.ErrTimetableNotFound)

		assert.ErrorIs(t, repo.Delete(ctx, tt.ID, newUser(t)), domain.ErrTimetableNotFound)

		_, err = repo.GetActive(ctx, newUser(t))
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Names are unique per user", func(t *testing.T) {
		user := newUser(t)
		require.NoError(t, repo.Create(ctx, newRepoTimetable(t, user, "Work", repoTestNow)))

		err := repo.Create(ctx, newRepoTimetable(t, user, "Work", repoTestNow))
		assert.ErrorIs(t, err, domain.ErrTimetableNameTaken)

		exists, err := repo.NameExists(ctx, user, "Work", "")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.NameExists(ctx, newUser(t), "Work", "")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("List is oldest first", func(t *testing.T) {
		user := newUser(t)
		names := []string{"First", "Second", "Third"}
		for i, name := range names {
			require.NoError(t, repo.Create(ctx, newRepoTimetable(t, user, name, repoTestNow.Add(time.Duration(i)*time.Minute))))
		}

		list, err := repo.ListByUserID(ctx, user)
		require.NoError(t, err)
		require.Len(t, list, 3)
		for i, name := range names {
			assert.Equal(t, name, list[i].Name)
		}

		count, err := repo.CountByUserID(ctx, user)
		require.NoError(t, err)
		assert.Equal(t, 3, count)

		empty, err := repo.ListByUserID(ctx, newUser(t))
		require.NoError(t, err)
		assert.Empty(t, empty)
	})

	t.Run("Update overwrites the document but not the active flag", func(t *testing.T) {
		user := newUser(t)
		tt := newRepoTimetable(t, user, "Doc", repoTestNow)
		require.NoError(t, repo.Create(ctx, tt))

		loaded, err := repo.GetByID(ctx, tt.ID, user)
		require.NoError(t, err)
		require.NoError(t, loaded.ToggleStatus(loaded.CurrentWeek.Activities[0].ID, 6, repoTestNow.Add(time.Hour)))
		require.NoError(t, loaded.Rename("Renamed", repoTestNow.Add(time.Hour)))
		loaded.IsActive = true
		require.NoError(t, repo.Update(ctx, loaded))

		got, err := repo.GetByID(ctx, tt.ID, user)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", got.Name)
		assert.True(t, got.CurrentWeek.Activities[0].DailyStatus[6])
		assert.False(t, got.IsActive)

		missing := newRepoTimetable(t, user, "Ghost", repoTestNow)
		assert.ErrorIs(t, repo.Update(ctx, missing), domain.ErrTimetableNotFound)
	})

	t.Run("Update to a taken name conflicts", func(t *testing.T) {
		user := newUser(t)
		a := newRepoTimetable(t, user, "A", repoTestNow)
		b := newRepoTimetable(t, user, "B", repoTestNow)
		require.NoError(t, repo.Create(ctx, a))
		require.NoError(t, repo.Create(ctx, b))

		b.Name = "A"
		assert.ErrorIs(t, repo.Update(ctx, b), domain.ErrTimetableNameTaken)
	})

	t.Run("SetActive is exclusive", func(t *testing.T) {
		user := newUser(t)
		a := newRepoTimetable(t, user, "A", repoTestNow)
		a.IsActive = true
		b := newRepoTimetable(t, user, "B", repoTestNow.Add(time.Minute))
		require.NoError(t, repo.Create(ctx, a))
		require.NoError(t, repo.Create(ctx, b))

		require.NoError(t, repo.SetActive(ctx, b.ID, user, true))

		list, err := repo.ListByUserID(ctx, user)
		require.NoError(t, err)
		assert.False(t, list[0].IsActive)
		assert.True(t, list[1].IsActive)

		require.NoError(t, repo.SetActive(ctx, b.ID, user, false))
		_, err = repo.GetActive(ctx, user)
		assert.ErrorIs(t, err, domain.ErrTimetableNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		user := newUser(t)
		tt := newRepoTimetable(t, user, "Gone", repoTestNow)
		require.NoError(t, repo.Create(ctx, tt))

		require.NoError(t, repo.Delete(ctx, tt.ID, user))

		_, err := repo.GetByID(ctx, tt.ID, user)
		assert.ErrorIs(t, err, domain.ErrTimetableNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, tt.ID, user), domain.ErrTimetableNotFound)
	})

	// There is no optimistic locking: a toggle saved from a copy loaded before
	// a concurrent rollover overwrites the rollover.
	t.Run("Last write wins", func(t *testing.T) {
		user := newUser(t)
		tt := newRepoTimetable(t, user, "Race", repoTestNow)
		require.NoError(t, repo.Create(ctx, tt))

		reader, err := repo.GetByID(ctx, tt.ID, user)
		require.NoError(t, err)
		toggler, err := repo.GetByID(ctx, tt.ID, user)
		require.NoError(t, err)

		nextWeek := repoTestNow.AddDate(0, 0, 7)
		require.True(t, reader.NeedsRollover(nextWeek))
		reader.StartNewWeek(nextWeek)
		require.NoError(t, repo.Update(ctx, reader))

		require.NoError(t, toggler.ToggleStatus(toggler.CurrentWeek.Activities[0].ID, 0, nextWeek))
		require.NoError(t, repo.Update(ctx, toggler))

		got, err := repo.GetByID(ctx, tt.ID, user)
		require.NoError(t, err)
		assert.Empty(t, got.History, "the rollover was overwritten")
		assert.True(t, got.CurrentWeek.WeekStartDate.Equal(tt.CurrentWeek.WeekStartDate))
		assert.True(t, got.CurrentWeek.Activities[0].DailyStatus[0])
	})
}

func TestInMemoryTimetableRepository(t *testing.T) {
	repo := NewInMemoryTimetableRepository()
	runTimetableRepositoryContract(t, repo, func(t *testing.T) string { return uuid.NewString() })

	t.Run("Stored copies are isolated", func(t *testing.T) {
		ctx := context.Background()
		user := uuid.NewString()
		tt := newRepoTimetable(t, user, "Isolated", repoTestNow)
		require.NoError(t, repo.Create(ctx, tt))

		tt.CurrentWeek.Activities[0].DailyStatus[0] = true
		got, err := repo.GetByID(ctx, tt.ID, user)
		require.NoError(t, err)
		assert.False(t, got.CurrentWeek.Activities[0].DailyStatus[0])

		got.Name = "changed"
		again, err := repo.GetByID(ctx, tt.ID, user)
		require.NoError(t, err)
		assert.Equal(t, "Isolated", again.Name)
	})

	t.Run("Two active timetables are rejected", func(t *testing.T) {
		ctx := context.Background()
		user := uuid.NewString()
		a := newRepoTimetable(t, user, "A", repoTestNow)
		a.IsActive = true
		b := newRepoTimetable(t, user, "B", repoTestNow)
		b.IsActive = true

		require.NoError(t, repo.Create(ctx, a))
		assert.ErrorIs(t, repo.Create(ctx, b), domain.ErrConflict)
	})
}

func TestPostgresTimetableRepository(t *testing.T) {
	db := requireDB(t)
	users := NewPostgresUserRepository(db)
	repo := NewPostgresTimetableRepository(db)

	runTimetableRepositoryContract(t, repo, func(t *testing.T) string {
		return createTestUser(t, users).ID
	})

	t.Run("Corrupted status length is repaired on read", func(t *testing.T) {
		ctx := context.Background()
		user := createTestUser(t, users).ID
		tt := newRepoTimetable(t, user, "Legacy", repoTestNow)
		tt.CurrentWeek.Activities[0].DailyStatus = []bool{true, true}
		require.NoError(t, repo.Create(ctx, tt))

		got, err := repo.GetByID(ctx, tt.ID, user)
		require.NoError(t, err)
		assert.Len(t, got.CurrentWeek.Activities[0].DailyStatus, domain.DaysPerWeek)
		assert.True(t, got.CurrentWeek.Activities[0].DailyStatus[1])
	})
}

func TestInMemoryUserRepository(t *testing.T) {
	repo := NewInMemoryUserRepository()
	ctx := context.Background()

	user := createTestUser(t, repo)

	got, err := repo.GetByEmail(ctx, user.Email)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	dup, err := domain.NewUser(uuid.NewString(), user.Email)
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Create(ctx, dup), domain.ErrEmailAlreadyExists)

	require.NoError(t, repo.Delete(ctx, user.ID))
	_, err = repo.GetByID(ctx, user.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
