package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

const DaysPerWeek = 7

type DailyProgress struct {
	ID             string   `json:"id"`
	Activity       Activity `json:"activity"`
	DailyStatus    []bool   `json:"daily_status"`
	CompletionRate float64  `json:"completion_rate"`
}

type Week struct {
	WeekStartDate         time.Time       `json:"week_start_date"`
	WeekEndDate           time.Time       `json:"week_end_date"`
	Activities            []DailyProgress `json:"activities"`
	OverallCompletionRate float64         `json:"overall_completion_rate"`
	Notes                 string          `json:"notes,omitempty"`
}

func newDailyProgress(a Activity) DailyProgress {
	return DailyProgress{
		ID:          uuid.NewString(),
		Activity:    a,
		DailyStatus: make([]bool, DaysPerWeek),
	}
}

func (p *DailyProgress) CompletedDays() int {
	n := 0
	for _, done := range p.DailyStatus {
		if done {
			n++
		}
	}
	return n
}

func (p *DailyProgress) recompute() {
	p.CompletionRate = round1(100 * float64(p.CompletedDays()) / DaysPerWeek)
}

// normalizeStatus pads or truncates DailyStatus to exactly seven slots.
// Legacy rows are repaired on read instead of failing the request.
func (p *DailyProgress) normalizeStatus() {
	switch {
	case len(p.DailyStatus) == DaysPerWeek:
		return
	case len(p.DailyStatus) > DaysPerWeek:
		p.DailyStatus = p.DailyStatus[:DaysPerWeek]
	default:
		padded := make([]bool, DaysPerWeek)
		copy(padded, p.DailyStatus)
		p.DailyStatus = padded
	}
}

// WeekBounds returns the Monday 00:00:00.000 and the Sunday 23:59:59.999 of
// the week containing now, evaluated in loc.
func WeekBounds(now time.Time, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)

	daysBack := int(local.Weekday()) - 1
	if local.Weekday() == time.Sunday {
		daysBack = 6
	}

	y, m, d := local.Date()
	monday := time.Date(y, m, d-daysBack, 0, 0, 0, 0, loc)

	my, mm, md := monday.Date()
	sunday := time.Date(my, mm, md+6, 23, 59, 59, int(999*time.Millisecond), loc)

	return monday, sunday
}

func newWeek(now time.Time, loc *time.Location, catalog []Activity) Week {
	start, end := WeekBounds(now, loc)

	activities := make([]DailyProgress, 0, len(catalog))
	for _, a := range catalog {
		activities = append(activities, newDailyProgress(a))
	}

	return Week{
		WeekStartDate:         start,
		WeekEndDate:           end,
		Activities:            activities,
		OverallCompletionRate: 0,
	}
}

// RecomputeRates derives every completion rate from the daily statuses.
// Stored rates are never trusted.
func (w *Week) RecomputeRates() {
	totalPossible := len(w.Activities) * DaysPerWeek
	totalCompleted := 0

	for i := range w.Activities {
		w.Activities[i].recompute()
		totalCompleted += w.Activities[i].CompletedDays()
	}

	if totalPossible == 0 {
		w.OverallCompletionRate = 0
		return
	}
	w.OverallCompletionRate = 100 * float64(totalCompleted) / float64(totalPossible)
}

func (w *Week) Normalize() {
	for i := range w.Activities {
		w.Activities[i].normalizeStatus()
	}
}

func (w *Week) Contains(t time.Time) bool {
	return !t.Before(w.WeekStartDate) && !t.After(w.WeekEndDate)
}

func (w *Week) progressIndex(id string) int {
	for i := range w.Activities {
		if w.Activities[i].ID == id {
			return i
		}
	}
	return -1
}

func (w Week) clone() Week {
	out := w
	out.Activities = make([]DailyProgress, len(w.Activities))
	for i, p := range w.Activities {
		p.DailyStatus = append([]bool(nil), p.DailyStatus...)
		out.Activities[i] = p
	}
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
