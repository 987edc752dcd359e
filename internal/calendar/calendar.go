// Package calendar provides week numbering and the lifecycle of weekly records.
package calendar

import (
	"fmt"
	"time"

	"github.com/verte-zerg/skilltrack/internal/ledger"
	"github.com/verte-zerg/skilltrack/internal/model"
)

// DateLayout is the ISO date format used for start dates and ranges.
const DateLayout = "2006-01-02"

const day = 24 * time.Hour

// Clock abstracts time to keep week calculations deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns the current local time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// ParseDate parses an ISO date as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate renders t as an ISO date in UTC.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// WeekNumber returns ceil(ceil(|now-start| in days) / 7), never less than 1.
func WeekNumber(startDate string, now time.Time) (int, error) {
	start, err := ParseDate(startDate)
	if err != nil {
		return 0, err
	}
	diff := now.Sub(start)
	if diff < 0 {
		diff = -diff
	}
	days := int(diff / day)
	if diff%day != 0 {
		days++
	}
	week := (days + 6) / 7
	if week < 1 {
		week = 1
	}
	return week, nil
}

// WeekRange returns [start + (week-1)*7 days, +6 days].
func WeekRange(weekNumber int, startDate string) (model.DateRange, error) {
	start, err := ParseDate(startDate)
	if err != nil {
		return model.DateRange{}, err
	}
	first := start.AddDate(0, 0, (weekNumber-1)*7)
	last := first.AddDate(0, 0, 6)
	return model.DateRange{Start: FormatDate(first), End: FormatDate(last)}, nil
}

// Today maps a time onto the Monday-first weekday in its own location.
func Today(now time.Time) model.Day {
	return model.DayOf(now.Weekday())
}

// NewWeek builds the all-zero record for a week.
func NewWeek(weekNumber int, startDate string) (model.WeeklyData, error) {
	rng, err := WeekRange(weekNumber, startDate)
	if err != nil {
		return model.WeeklyData{}, err
	}
	return model.WeeklyData{WeekNumber: weekNumber, DateRange: rng}, nil
}

// State is the lifecycle position of a weekly record.
type State int

// Lifecycle states.
const (
	StatePending State = iota
	StateInitialized
	StateActive
	StateArchived
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateInitialized:
		return "initialized"
	case StateActive:
		return "active"
	case StateArchived:
		return "archived"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// StateOf classifies a week. A nil record means nothing is stored for it.
func StateOf(record *model.WeeklyData, currentWeek int) State {
	if record == nil {
		return StatePending
	}
	if record.WeekNumber < currentWeek {
		return StateArchived
	}
	if ledger.TotalForWeek(record.Practice) == 0 {
		return StateInitialized
	}
	return StateActive
}
