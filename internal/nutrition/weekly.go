package nutrition

import (
	"math"
	"sort"
	"time"

	"github.com/macrolog/backend/internal/models"
)

// DateLayout is the calendar-day format used throughout the tracker.
const DateLayout = "2006-01-02"

// DailyTotals is one day's aggregated nutrition.
type DailyTotals struct {
	Date string `json:"date"`
	Totals
}

// WeekBucket is the average daily calories over the days logged within one
// calendar week, labeled by the week's Sunday.
type WeekBucket struct {
	Week        string `json:"week"`
	AvgCalories int    `json:"avg_calories"`
	Days        int    `json:"days"`
}

// DailySeries groups meal entries by date into per-day totals, sorted by
// date ascending. Entries with an unparseable date are still grouped; the
// string keys sort chronologically for well-formed dates.
func DailySeries(entries []models.MealEntry) []DailyTotals {
	byDate := make(map[string]Totals)
	for _, entry := range entries {
		byDate[entry.Date] = byDate[entry.Date].Add(Scale(entry.Food, entry.Quantity))
	}

	series := make([]DailyTotals, 0, len(byDate))
	for date, totals := range byDate {
		series = append(series, DailyTotals{Date: date, Totals: totals})
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date < series[j].Date })
	return series
}

// WeekStart returns the Sunday on or before the given day.
func WeekStart(day time.Time) time.Time {
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// WeeklyAverages buckets a daily series into calendar weeks and averages
// calories per bucket. Weeks with no logged days are omitted, not
// zero-filled. Bucket order follows first appearance in the input, so
// callers wanting chronological output must pass a date-sorted series.
func WeeklyAverages(days []DailyTotals) []WeekBucket {
	type accum struct {
		total float64
		count int
	}
	sums := make(map[string]*accum)
	var order []string

	for _, day := range days {
		parsed, err := time.Parse(DateLayout, day.Date)
		if err != nil {
			continue
		}
		week := WeekStart(parsed).Format(DateLayout)
		if _, ok := sums[week]; !ok {
			sums[week] = &accum{}
			order = append(order, week)
		}
		sums[week].total += day.Calories
		sums[week].count++
	}

	buckets := make([]WeekBucket, 0, len(order))
	for _, week := range order {
		a := sums[week]
		buckets = append(buckets, WeekBucket{
			Week:        week,
			AvgCalories: int(math.Round(a.total / float64(a.count))),
			Days:        a.count,
		})
	}
	return buckets
}
