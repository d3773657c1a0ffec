package domain

import "time"

type TimetableStats struct {
	TimetableID     string           `json:"timetable_id"`
	SourceUpdatedAt time.Time        `json:"source_updated_at"`
	CurrentWeek     CurrentWeekStats `json:"current_week"`
	Overall         OverallStats     `json:"overall"`
}

type CurrentWeekStats struct {
	CompletionRate       float64                  `json:"completion_rate"`
	PlannedMinutesPerDay int                      `json:"planned_minutes_per_day"`
	ByCategory           map[string]CategoryStats `json:"by_category"`
}

type CategoryStats struct {
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	CompletionRate float64 `json:"completion_rate"`
}

type OverallStats struct {
	TotalWeeks            int            `json:"total_weeks"`
	AverageCompletionRate float64        `json:"average_completion_rate"`
	BestWeek              *WeekHighlight `json:"best_week"`
	WorstWeek             *WeekHighlight `json:"worst_week"`
}

type WeekHighlight struct {
	WeekStartDate  time.Time `json:"week_start_date"`
	CompletionRate float64   `json:"completion_rate"`
}

// ComputeStats aggregates the current week by category and every tracked
// week (history plus current) into overall figures. Ties for best and worst
// week go to the earliest week.
func ComputeStats(t *Timetable) *TimetableStats {
	stats := &TimetableStats{
		TimetableID:     t.ID,
		SourceUpdatedAt: t.UpdatedAt,
		CurrentWeek: CurrentWeekStats{
			ByCategory: make(map[string]CategoryStats),
		},
	}

	weeks := make([]Week, 0, len(t.History)+1)
	weeks = append(weeks, t.History...)

	if t.CurrentWeek != nil {
		stats.CurrentWeek.CompletionRate = t.CurrentWeek.OverallCompletionRate

		for i := range t.CurrentWeek.Activities {
			p := &t.CurrentWeek.Activities[i]
			cat := stats.CurrentWeek.ByCategory[p.Activity.Category]
			cat.Total += DaysPerWeek
			cat.Completed += p.CompletedDays()
			stats.CurrentWeek.ByCategory[p.Activity.Category] = cat
		}
		weeks = append(weeks, *t.CurrentWeek)
	}

	for name, cat := range stats.CurrentWeek.ByCategory {
		if cat.Total > 0 {
			cat.CompletionRate = 100 * float64(cat.Completed) / float64(cat.Total)
		}
		stats.CurrentWeek.ByCategory[name] = cat
	}

	for _, a := range t.DefaultActivities {
		if r, err := ParseTimeRange(a.Time); err == nil {
			stats.CurrentWeek.PlannedMinutesPerDay += int(r.Duration() / time.Minute)
		}
	}

	stats.Overall.TotalWeeks = len(weeks)
	if len(weeks) == 0 {
		return stats
	}

	sum := 0.0
	best, worst := 0, 0
	for i, w := range weeks {
		sum += w.OverallCompletionRate
		if w.OverallCompletionRate > weeks[best].OverallCompletionRate {
			best = i
		}
		if w.OverallCompletionRate < weeks[worst].OverallCompletionRate {
			worst = i
		}
	}

	stats.Overall.AverageCompletionRate = sum / float64(len(weeks))
	stats.Overall.BestWeek = &WeekHighlight{
		WeekStartDate:  weeks[best].WeekStartDate,
		CompletionRate: weeks[best].OverallCompletionRate,
	}
	stats.Overall.WorstWeek = &WeekHighlight{
		WeekStartDate:  weeks[worst].WeekStartDate,
		CompletionRate: weeks[worst].OverallCompletionRate,
	}

	return stats
}
