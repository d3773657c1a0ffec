package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var timeRangeRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):([0-5][0-9])-([01][0-9]|2[0-3]):([0-5][0-9])$`)

const (
	MaxActivityNameLen = 100
	minutesPerDay      = 24 * 60
)

// Activity is one entry of a timetable's catalog. Two activities are the same
// activity only when name, time and category all match.
type Activity struct {
	Name     string `json:"name"`
	Time     string `json:"time"`
	Category string `json:"category"`
}

// DefaultCatalog is the set of activities a timetable starts with when the
// caller does not supply any.
func DefaultCatalog() []Activity {
	return []Activity{
		{Name: "DS & Algo", Time: "18:00-00:00", Category: "Core"},
		{Name: "MERN Stack", Time: "00:00-05:00", Category: "Frontend"},
		{Name: "Go Backend", Time: "10:00-12:00", Category: "Backend"},
		{Name: "Java & Spring", Time: "12:00-14:00", Category: "Backend"},
		{Name: "Mobile Development", Time: "14:00-17:00", Category: "Mobile"},
	}
}

func (a Activity) normalized() Activity {
	return Activity{
		Name:     strings.TrimSpace(a.Name),
		Time:     strings.TrimSpace(a.Time),
		Category: strings.TrimSpace(a.Category),
	}
}

func (a Activity) Validate() error {
	if a.Name == "" {
		return NewValidationError("name", "activity name is required")
	}
	if len(a.Name) > MaxActivityNameLen {
		return NewValidationError("name", fmt.Sprintf("activity name is too long (max %d chars)", MaxActivityNameLen))
	}
	if a.Time == "" {
		return NewValidationError("time", "activity time is required")
	}
	if _, err := ParseTimeRange(a.Time); err != nil {
		return err
	}
	if a.Category == "" {
		return NewValidationError("category", "activity category is required")
	}
	return nil
}

// NormalizeCatalog trims every entry and validates the whole list. Nothing is
// returned unless every entry is valid.
func NormalizeCatalog(activities []Activity) ([]Activity, error) {
	out := make([]Activity, 0, len(activities))
	for i, a := range activities {
		clean := a.normalized()
		if err := clean.Validate(); err != nil {
			var vErr *ValidationError
			if errors.As(err, &vErr) {
				return nil, NewValidationError(fmt.Sprintf("activities[%d].%s", i, vErr.Field), vErr.Message)
			}
			return nil, err
		}
		out = append(out, clean)
	}
	return out, nil
}

// TimeRange is a parsed "HH:MM-HH:MM" value, in minutes after midnight.
type TimeRange struct {
	Start int
	End   int
}

func ParseTimeRange(s string) (TimeRange, error) {
	m := timeRangeRegex.FindStringSubmatch(s)
	if m == nil {
		return TimeRange{}, NewValidationError("time", "time must use the HH:MM-HH:MM 24h format")
	}

	atoi := func(v string) int {
		n, _ := strconv.Atoi(v)
		return n
	}

	return TimeRange{
		Start: atoi(m[1])*60 + atoi(m[2]),
		End:   atoi(m[3])*60 + atoi(m[4]),
	}, nil
}

// Overnight reports whether the range crosses midnight.
func (r TimeRange) Overnight() bool {
	return r.End < r.Start
}

func (r TimeRange) Duration() time.Duration {
	minutes := r.End - r.Start
	if r.Overnight() {
		minutes += minutesPerDay
	}
	return time.Duration(minutes) * time.Minute
}
