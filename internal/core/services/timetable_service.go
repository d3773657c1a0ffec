package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/comitanigiacomo/kanso-timetable/internal/core/domain"
	"github.com/comitanigiacomo/kanso-timetable/internal/metrics"
	"go.uber.org/zap"
)

const (
	DefaultHistoryPageSize = 10
	MaxHistoryPageSize     = 100
)

// StatsEnqueuer schedules a background refresh of a timetable's statistics.
type StatsEnqueuer interface {
	Enqueue(timetableID, userID string)
}

type TimetableServiceOptions struct {
	DefaultTimezone string
	Clock           func() time.Time
	Logger          *zap.Logger
}

type TimetableService struct {
	repo            domain.TimetableRepository
	stats           StatsEnqueuer
	defaultTimezone string
	now             func() time.Time
	logger          *zap.Logger
}

func NewTimetableService(repo domain.TimetableRepository, stats StatsEnqueuer, opts TimetableServiceOptions) *TimetableService {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.DefaultTimezone == "" {
		opts.DefaultTimezone = "UTC"
	}

	return &TimetableService{
		repo:            repo,
		stats:           stats,
		defaultTimezone: opts.DefaultTimezone,
		now:             opts.Clock,
		logger:          opts.Logger,
	}
}

type CreateTimetableInput struct {
	UserID      string
	Name        string
	Description string
	Timezone    string
	Activities  []domain.Activity
}

// UpdateTimetableInput carries partial updates: nil fields are left alone.
type UpdateTimetableInput struct {
	ID          string
	UserID      string
	Name        *string
	Description *string
	Timezone    *string
	IsActive    *bool
}

type ToggleStatusInput struct {
	TimetableID string
	UserID      string
	ActivityID  string
	DayIndex    int
}

type HistoryInput struct {
	TimetableID string
	UserID      string
	Page        int
	PageSize    int
}

type HistoryPage struct {
	Entries    []domain.Week `json:"entries"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalPages int           `json:"total_pages"`
	TotalWeeks int           `json:"total_weeks"`
}

func (s *TimetableService) Create(ctx context.Context, input CreateTimetableInput) (*domain.Timetable, error) {
	timezone := input.Timezone
	if timezone == "" {
		timezone = s.defaultTimezone
	}

	catalog := input.Activities
	if len(catalog) == 0 {
		catalog = domain.DefaultCatalog()
	}

	t, err := domain.NewTimetable(input.UserID, input.Name, input.Description, timezone, catalog, s.now())
	if err != nil {
		return nil, err
	}

	taken, err := s.repo.NameExists(ctx, t.UserID, t.Name, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrTimetableNameTaken
	}

	count, err := s.repo.CountByUserID(ctx, t.UserID)
	if err != nil {
		return nil, err
	}
	t.IsActive = count == 0

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	metrics.ObserveRollover("create", false)
	s.logger.Info("timetable created",
		zap.String("timetable_id", t.ID),
		zap.String("user_id", t.UserID),
		zap.Bool("active", t.IsActive),
	)
	s.refreshStats(t)

	return t, nil
}

func (s *TimetableService) List(ctx context.Context, userID string) ([]domain.TimetableSummary, error) {
	list, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.TimetableSummary, 0, len(list))
	for _, t := range list {
		prepare(t)
		summaries = append(summaries, t.Summary())
	}
	return summaries, nil
}

func (s *TimetableService) Get(ctx context.Context, id, userID string) (*domain.Timetable, error) {
	return s.load(ctx, id, userID)
}

func (s *TimetableService) Update(ctx context.Context, input UpdateTimetableInput) (*domain.Timetable, error) {
	t, err := s.load(ctx, input.ID, input.UserID)
	if err != nil {
		return nil, err
	}

	now := s.now()

	if input.Name != nil {
		name, err := domain.NormalizeName(*input.Name)
		if err != nil {
			return nil, err
		}
		if name != t.Name {
			taken, err := s.repo.NameExists(ctx, t.UserID, name, t.ID)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, domain.ErrTimetableNameTaken
			}
		}
		if err := t.Rename(name, now); err != nil {
			return nil, err
		}
	}

	if input.Description != nil {
		if err := t.SetDescription(*input.Description, now); err != nil {
			return nil, err
		}
	}

	if input.Timezone != nil {
		if err := t.SetTimezone(*input.Timezone, now); err != nil {
			return nil, err
		}
	}

	// Activation goes first; if the field write then fails the previous
	// activation state is put back.
	var restore func()
	if input.IsActive != nil && *input.IsActive != t.IsActive {
		restore, err = s.switchActive(ctx, t, *input.IsActive)
		if err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, t); err != nil {
		if restore != nil {
			restore()
		}
		return nil, err
	}

	s.refreshStats(t)
	return t, nil
}

// switchActive flips t's active flag and returns a func that undoes it.
func (s *TimetableService) switchActive(ctx context.Context, t *domain.Timetable, active bool) (func(), error) {
	previous := ""
	if active {
		current, err := s.repo.GetActive(ctx, t.UserID)
		switch {
		case err == nil:
			previous = current.ID
		case !errors.Is(err, domain.ErrNotFound):
			return nil, err
		}
	}

	if err := s.repo.SetActive(ctx, t.ID, t.UserID, active); err != nil {
		return nil, err
	}
	t.IsActive = active

	restore := func() {
		var err error
		switch {
		case !active:
			err = s.repo.SetActive(ctx, t.ID, t.UserID, true)
		case previous != "":
			err = s.repo.SetActive(ctx, previous, t.UserID, true)
		default:
			err = s.repo.SetActive(ctx, t.ID, t.UserID, false)
		}
		if err != nil {
			s.logger.Error("failed to restore active timetable",
				zap.String("timetable_id", t.ID),
				zap.String("user_id", t.UserID),
				zap.Error(err),
			)
		}
		t.IsActive = !active
	}
	return restore, nil
}

// Delete refuses to remove the owner's last timetable. When the active one
// goes, the oldest remaining timetable is activated first.
func (s *TimetableService) Delete(ctx context.Context, id, userID string) error {
	t, err := s.load(ctx, id, userID)
	if err != nil {
		return err
	}

	list, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if len(list) <= 1 {
		return domain.ErrLastTimetable
	}

	if err := s.repo.Delete(ctx, t.ID, userID); err != nil {
		return err
	}

	s.logger.Info("timetable deleted",
		zap.String("timetable_id", t.ID),
		zap.String("user_id", userID),
	)

	if !t.IsActive {
		return nil
	}

	// A failed promotion leaves the owner without an active timetable;
	// the next current-week lookup activates the oldest one.
	for _, other := range list {
		if other.ID == t.ID {
			continue
		}
		if err := s.repo.SetActive(ctx, other.ID, userID, true); err != nil {
			s.logger.Warn("failed to promote timetable",
				zap.String("timetable_id", other.ID),
				zap.String("user_id", userID),
				zap.Error(err),
			)
			return nil
		}
		s.logger.Info("timetable promoted to active",
			zap.String("timetable_id", other.ID),
			zap.String("user_id", userID),
		)
		break
	}
	return nil
}

// CurrentWeek returns the timetable with an up-to-date current week, rolling
// it over first when it has expired. An empty id selects the active
// timetable; a user with no timetables gets a default one.
func (s *TimetableService) CurrentWeek(ctx context.Context, userID, id string) (*domain.Timetable, error) {
	var (
		t   *domain.Timetable
		err error
	)
	if id == "" {
		t, err = s.resolveDefault(ctx, userID)
	} else {
		t, err = s.load(ctx, id, userID)
	}
	if err != nil {
		return nil, err
	}

	now := s.now()
	if !t.NeedsRollover(now) {
		return t, nil
	}

	archived := t.StartNewWeek(now)
	t.RecomputeRates()
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}

	metrics.ObserveRollover("lazy", archived)
	s.logger.Info("week rolled over",
		zap.String("timetable_id", t.ID),
		zap.String("trigger", "lazy"),
		zap.Bool("archived", archived),
		zap.Time("week_start", t.CurrentWeek.WeekStartDate),
	)
	s.refreshStats(t)

	return t, nil
}

func (s *TimetableService) ToggleStatus(ctx context.Context, input ToggleStatusInput) (*domain.Week, error) {
	if input.DayIndex < 0 || input.DayIndex >= domain.DaysPerWeek {
		return nil, domain.ErrDayIndexOutOfRange
	}

	t, err := s.load(ctx, input.TimetableID, input.UserID)
	if err != nil {
		return nil, err
	}

	if err := t.ToggleStatus(input.ActivityID, input.DayIndex, s.now()); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}

	metrics.ObserveToggle()
	s.refreshStats(t)

	return t.CurrentWeek, nil
}

func (s *TimetableService) UpdateActivities(ctx context.Context, id, userID string, activities []domain.Activity) (*domain.Timetable, error) {
	catalog, err := domain.NormalizeCatalog(activities)
	if err != nil {
		return nil, err
	}

	t, err := s.load(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if err := t.ApplyCatalogEdit(catalog, s.now()); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}

	metrics.ObserveCatalogEdit()
	s.refreshStats(t)

	return t, nil
}

// ForceNewWeek archives the current week and starts a fresh one even when the
// current week has not ended yet.
func (s *TimetableService) ForceNewWeek(ctx context.Context, id, userID string) (*domain.Week, error) {
	t, err := s.load(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	archived := t.StartNewWeek(s.now())
	t.RecomputeRates()
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}

	metrics.ObserveRollover("forced", archived)
	s.logger.Info("week rolled over",
		zap.String("timetable_id", t.ID),
		zap.String("trigger", "forced"),
		zap.Bool("archived", archived),
	)
	s.refreshStats(t)

	return t.CurrentWeek, nil
}

func (s *TimetableService) History(ctx context.Context, input HistoryInput) (*HistoryPage, error) {
	if input.Page == 0 {
		input.Page = 1
	}
	if input.PageSize == 0 {
		input.PageSize = DefaultHistoryPageSize
	}
	if input.Page < 1 {
		return nil, domain.NewValidationError("page", "page must be a positive integer")
	}
	if input.PageSize < 1 || input.PageSize > MaxHistoryPageSize {
		return nil, domain.NewValidationError("limit", fmt.Sprintf("limit must be between 1 and %d", MaxHistoryPageSize))
	}

	t, err := s.load(ctx, input.TimetableID, input.UserID)
	if err != nil {
		return nil, err
	}

	entries, totalPages := t.HistoryPage(input.Page, input.PageSize)
	return &HistoryPage{
		Entries:    entries,
		Page:       input.Page,
		PageSize:   input.PageSize,
		TotalPages: totalPages,
		TotalWeeks: len(t.History),
	}, nil
}

// Categories lists the distinct categories used by the user's catalogs, in
// the order they first appear.
func (s *TimetableService) Categories(ctx context.Context, userID string) ([]string, error) {
	list, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	categories := make([]string, 0)
	for _, t := range list {
		for _, a := range t.DefaultActivities {
			if a.Category == "" || seen[a.Category] {
				continue
			}
			seen[a.Category] = true
			categories = append(categories, a.Category)
		}
	}
	return categories, nil
}

func (s *TimetableService) load(ctx context.Context, id, userID string) (*domain.Timetable, error) {
	t, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	prepare(t)
	return t, nil
}

// resolveDefault picks the active timetable. Without one, the oldest is
// activated; a user with none gets a new default timetable.
func (s *TimetableService) resolveDefault(ctx context.Context, userID string) (*domain.Timetable, error) {
	t, err := s.existingDefault(ctx, userID)
	if err != nil || t != nil {
		return t, err
	}

	t, err = s.Create(ctx, CreateTimetableInput{
		UserID: userID,
		Name:   domain.DefaultTimetableName,
	})
	if errors.Is(err, domain.ErrTimetableNameTaken) {
		// A concurrent request created it first.
		t, err = s.existingDefault(ctx, userID)
		if err == nil && t == nil {
			err = domain.ErrTimetableNotFound
		}
	}
	return t, err
}

// existingDefault returns nil, nil when the user has no timetables.
func (s *TimetableService) existingDefault(ctx context.Context, userID string) (*domain.Timetable, error) {
	t, err := s.repo.GetActive(ctx, userID)
	if err == nil {
		prepare(t)
		return t, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	list, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}

	oldest := list[0]
	if err := s.repo.SetActive(ctx, oldest.ID, userID, true); err != nil {
		return nil, err
	}
	oldest.IsActive = true
	s.logger.Info("timetable promoted to active",
		zap.String("timetable_id", oldest.ID),
		zap.String("user_id", userID),
	)

	prepare(oldest)
	return oldest, nil
}

func (s *TimetableService) refreshStats(t *domain.Timetable) {
	if s.stats != nil {
		s.stats.Enqueue(t.ID, t.UserID)
	}
}

// prepare repairs stored data and rederives every rate.
func prepare(t *domain.Timetable) {
	t.Normalize()
	t.RecomputeRates()
}
