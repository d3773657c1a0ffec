package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	MaxTimetableNameLen  = 100
	MaxTimetableDescLen  = 500
	DefaultTimetableName = "Default Timetable"
)

var (
	ErrTimetableNameEmpty   error = &ValidationError{Field: "name", Message: "timetable name cannot be empty"}
	ErrTimetableNameTooLong error = &ValidationError{Field: "name", Message: "timetable name is too long (max 100 chars)"}
	ErrTimetableDescTooLong error = &ValidationError{Field: "description", Message: "timetable description is too long (max 500 chars)"}
	ErrInvalidUserID        error = &ValidationError{Field: "user_id", Message: "invalid user id"}
	ErrInvalidTimezone      error = &ValidationError{Field: "timezone", Message: "unknown IANA timezone"}
	ErrDayIndexOutOfRange   error = &ValidationError{Field: "day_index", Message: "day index out of range (must be 0-6)"}
)

// Timetable is the aggregate root: a user's activity catalog, the week being
// tracked and the archive of past weeks (oldest first).
type Timetable struct {
	ID                string     `json:"id"`
	UserID            string     `json:"user_id"`
	Name              string     `json:"name"`
	Description       string     `json:"description,omitempty"`
	IsActive          bool       `json:"is_active"`
	Timezone          string     `json:"timezone"`
	DefaultActivities []Activity `json:"default_activities"`
	CurrentWeek       *Week      `json:"current_week"`
	History           []Week     `json:"history"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

type TimetableSummary struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	IsActive        bool      `json:"is_active"`
	ActivitiesCount int       `json:"activities_count"`
	CompletionRate  float64   `json:"completion_rate"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func NormalizeName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", ErrTimetableNameEmpty
	}
	if len(trimmed) > MaxTimetableNameLen {
		return "", ErrTimetableNameTooLong
	}
	return trimmed, nil
}

func LoadTimezone(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, ErrInvalidTimezone
	}
	return loc, nil
}

// NewTimetable validates the input and materializes the first week as of now.
// An empty catalog is kept empty; callers pick DefaultCatalog themselves.
func NewTimetable(userID, name, description, timezone string, catalog []Activity, now time.Time) (*Timetable, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidUserID
	}

	cleanName, err := NormalizeName(name)
	if err != nil {
		return nil, err
	}

	cleanDesc := strings.TrimSpace(description)
	if len(cleanDesc) > MaxTimetableDescLen {
		return nil, ErrTimetableDescTooLong
	}

	if _, err := LoadTimezone(timezone); err != nil {
		return nil, err
	}
	if timezone == "" {
		timezone = "UTC"
	}

	activities, err := NormalizeCatalog(catalog)
	if err != nil {
		return nil, err
	}

	ts := now.UTC()
	t := &Timetable{
		ID:                uuid.NewString(),
		UserID:            userID,
		Name:              cleanName,
		Description:       cleanDesc,
		Timezone:          timezone,
		DefaultActivities: activities,
		History:           []Week{},
		CreatedAt:         ts,
		UpdatedAt:         ts,
	}

	t.StartNewWeek(now)
	return t, nil
}

func (t *Timetable) Location() *time.Location {
	loc, err := LoadTimezone(t.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// NeedsRollover reports whether the current week is missing or has ended.
func (t *Timetable) NeedsRollover(now time.Time) bool {
	return t.CurrentWeek == nil || now.After(t.CurrentWeek.WeekEndDate)
}

// StartNewWeek archives the current week (when it tracks at least one
// activity) and replaces it with a fresh week built from the catalog.
// Returns true when a week was pushed onto History.
func (t *Timetable) StartNewWeek(now time.Time) bool {
	archived := false
	if t.CurrentWeek != nil && len(t.CurrentWeek.Activities) > 0 {
		t.CurrentWeek.RecomputeRates()
		t.History = append(t.History, t.CurrentWeek.clone())
		archived = true
	}

	week := newWeek(now, t.Location(), t.DefaultActivities)
	t.CurrentWeek = &week
	t.touch(now)
	return archived
}

// ApplyCatalogEdit replaces the catalog and rebuilds the current week in the
// new order. Progress is carried over only for entries whose name, time and
// category are all unchanged; anything else starts from zero.
func (t *Timetable) ApplyCatalogEdit(activities []Activity, now time.Time) error {
	catalog, err := NormalizeCatalog(activities)
	if err != nil {
		return err
	}

	t.DefaultActivities = catalog

	if t.CurrentWeek == nil {
		t.StartNewWeek(now)
		return nil
	}

	previous := t.CurrentWeek.Activities
	used := make([]bool, len(previous))
	rebuilt := make([]DailyProgress, 0, len(catalog))
	for _, a := range catalog {
		// A previous entry is carried over at most once, so duplicated
		// catalog entries never share a progress ID.
		match := -1
		for i := range previous {
			if !used[i] && previous[i].Activity == a {
				match = i
				used[i] = true
				break
			}
		}

		if match < 0 {
			rebuilt = append(rebuilt, newDailyProgress(a))
			continue
		}

		carried := previous[match]
		carried.Activity = a
		carried.DailyStatus = append([]bool(nil), carried.DailyStatus...)
		rebuilt = append(rebuilt, carried)
	}

	t.CurrentWeek.Activities = rebuilt
	t.RecomputeRates()
	t.touch(now)
	return nil
}

// ToggleStatus flips one day of one tracked activity in the current week.
func (t *Timetable) ToggleStatus(progressID string, dayIndex int, now time.Time) error {
	if dayIndex < 0 || dayIndex >= DaysPerWeek {
		return ErrDayIndexOutOfRange
	}
	if t.CurrentWeek == nil {
		return ErrActivityNotFound
	}

	idx := t.CurrentWeek.progressIndex(progressID)
	if idx < 0 {
		return ErrActivityNotFound
	}

	p := &t.CurrentWeek.Activities[idx]
	p.normalizeStatus()
	p.DailyStatus[dayIndex] = !p.DailyStatus[dayIndex]

	t.RecomputeRates()
	t.touch(now)
	return nil
}

// RecomputeRates must run before every save.
func (t *Timetable) RecomputeRates() {
	if t.CurrentWeek != nil {
		t.CurrentWeek.RecomputeRates()
	}
	for i := range t.History {
		t.History[i].RecomputeRates()
	}
}

// Normalize repairs data loaded from storage.
func (t *Timetable) Normalize() {
	if t.CurrentWeek != nil {
		t.CurrentWeek.Normalize()
	}
	for i := range t.History {
		t.History[i].Normalize()
	}
	if t.History == nil {
		t.History = []Week{}
	}
	if t.DefaultActivities == nil {
		t.DefaultActivities = []Activity{}
	}
}

func (t *Timetable) Rename(name string, now time.Time) error {
	cleanName, err := NormalizeName(name)
	if err != nil {
		return err
	}
	t.Name = cleanName
	t.touch(now)
	return nil
}

func (t *Timetable) SetDescription(description string, now time.Time) error {
	cleanDesc := strings.TrimSpace(description)
	if len(cleanDesc) > MaxTimetableDescLen {
		return ErrTimetableDescTooLong
	}
	t.Description = cleanDesc
	t.touch(now)
	return nil
}

// SetTimezone only affects weeks created from now on.
func (t *Timetable) SetTimezone(timezone string, now time.Time) error {
	if _, err := LoadTimezone(timezone); err != nil {
		return err
	}
	if timezone == "" {
		timezone = "UTC"
	}
	t.Timezone = timezone
	t.touch(now)
	return nil
}

// HistoryPage returns the archived weeks for a 1-based page, oldest first.
func (t *Timetable) HistoryPage(page, pageSize int) ([]Week, int) {
	total := len(t.History)
	if total == 0 || pageSize <= 0 {
		return []Week{}, 0
	}

	totalPages := (total + pageSize - 1) / pageSize
	if page < 1 {
		page = 1
	}
	// Checked before multiplying so huge pages cannot overflow start.
	if page > totalPages {
		return []Week{}, totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if end > total {
		end = total
	}

	entries := make([]Week, 0, end-start)
	for _, w := range t.History[start:end] {
		entries = append(entries, w.clone())
	}
	return entries, totalPages
}

func (t *Timetable) Summary() TimetableSummary {
	rate := 0.0
	if t.CurrentWeek != nil {
		rate = t.CurrentWeek.OverallCompletionRate
	}
	return TimetableSummary{
		ID:              t.ID,
		Name:            t.Name,
		Description:     t.Description,
		IsActive:        t.IsActive,
		ActivitiesCount: len(t.DefaultActivities),
		CompletionRate:  rate,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

// Clone returns a deep copy, so callers can mutate it without touching the
// stored original.
func (t *Timetable) Clone() *Timetable {
	out := *t
	out.DefaultActivities = append([]Activity(nil), t.DefaultActivities...)
	if t.CurrentWeek != nil {
		w := t.CurrentWeek.clone()
		out.CurrentWeek = &w
	}
	out.History = make([]Week, len(t.History))
	for i, w := range t.History {
		out.History[i] = w.clone()
	}
	return &out
}

func (t *Timetable) touch(now time.Time) {
	t.UpdatedAt = now.UTC()
}
