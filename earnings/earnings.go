// Package earnings folds a driver's completed-ride statement into
// calendar-bucketed totals. Every bucket is computed independently over the
// full set, so the aggregation is deterministic and keeps no accumulator
// state between calls.
package earnings

import (
	"time"

	"github.com/swiftcab/swiftcab-go/domain"
)

// Summary holds the bucketed earnings totals for one statement.
type Summary struct {
	Today float64
	Week  float64 // calendar week, starting Sunday
	Month float64 // calendar month
	Total float64

	TodayRides int
	WeekRides  int
	MonthRides int
	TotalRides int
}

// Summarize buckets entries relative to now. Calendar boundaries are
// evaluated in now's location; entry timestamps are converted before
// comparison.
func Summarize(entries []domain.Earning, now time.Time) Summary {
	loc := now.Location()
	dayStart := startOfDay(now)
	weekStart := startOfWeek(now)
	monthStart := startOfMonth(now)

	var s Summary
	for _, e := range entries {
		at := e.CompletedAt.In(loc)

		s.Total += e.Fare
		s.TotalRides++

		if !at.Before(dayStart) && at.Before(dayStart.AddDate(0, 0, 1)) {
			s.Today += e.Fare
			s.TodayRides++
		}
		if !at.Before(weekStart) && at.Before(weekStart.AddDate(0, 0, 7)) {
			s.Week += e.Fare
			s.WeekRides++
		}
		if !at.Before(monthStart) && at.Before(monthStart.AddDate(0, 1, 0)) {
			s.Month += e.Fare
			s.MonthRides++
		}
	}
	return s
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func startOfWeek(t time.Time) time.Time {
	// Weekday() is 0 on Sunday, which is the week boundary here.
	return startOfDay(t).AddDate(0, 0, -int(t.Weekday()))
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
