// Package goals validates skill allocations and time budgets and derives weekly goals.
package goals

import (
	"fmt"

	"github.com/verte-zerg/skilltrack/internal/model"
)

// Budget bounds.
const (
	MinDaysPerWeek   = 1
	MaxDaysPerWeek   = 7
	MinMinutesPerDay = 1
	MaxMinutesPerDay = 240
)

// ValidateAllocation reports whether every percentage is within [0,100] and the six sum to exactly 100.
func ValidateAllocation(a model.SkillAllocation) bool {
	for _, v := range a {
		if v < 0 || v > 100 {
			return false
		}
	}
	return a.Sum() == 100
}

// AllocationError returns nil for a valid allocation and otherwise describes why it was rejected.
func AllocationError(a model.SkillAllocation) error {
	if ValidateAllocation(a) {
		return nil
	}
	for _, s := range model.Skills {
		if v := a.Get(s); v < 0 || v > 100 {
			return fmt.Errorf("%s percentage %d must be between 0 and 100", s, v)
		}
	}
	return fmt.Errorf("percentages sum to %d, must be exactly 100", a.Sum())
}

// ValidateBudget checks the documented budget ranges.
func ValidateBudget(b model.TimeBudget) error {
	if b.DaysPerWeek < MinDaysPerWeek || b.DaysPerWeek > MaxDaysPerWeek {
		return fmt.Errorf("days per week must be between %d and %d, got %d", MinDaysPerWeek, MaxDaysPerWeek, b.DaysPerWeek)
	}
	if b.MinutesPerDay < MinMinutesPerDay || b.MinutesPerDay > MaxMinutesPerDay {
		return fmt.Errorf("minutes per day must be between %d and %d, got %d", MinMinutesPerDay, MaxMinutesPerDay, b.MinutesPerDay)
	}
	return nil
}

// ComputeWeeklyGoals derives round(pct/100 × days × minutes) per skill.
// Goals are rounded independently, so their sum may drift from the weekly budget.
func ComputeWeeklyGoals(a model.SkillAllocation, b model.TimeBudget) model.WeeklyGoals {
	var out model.WeeklyGoals
	total := b.WeeklyMinutes()
	if total == 0 {
		return out
	}
	for _, s := range model.Skills {
		out[s] = percentOf(a.Get(s), total)
	}
	return out
}

// percentOf rounds pct% of total half-up in integer arithmetic.
func percentOf(pct, total int) int {
	if pct <= 0 || total <= 0 {
		return 0
	}
	return (2*pct*total + 100) / 200
}

// Projection is the long-range view of a budget.
type Projection struct {
	WeeklyMinutes int
	WeeklyHours   int
	ExtraMinutes  int
	MonthlyHours  int
	YearlyHours   int
}

// Project converts a budget into weekly, monthly and yearly hours.
func Project(b model.TimeBudget) Projection {
	weekly := b.WeeklyMinutes()
	hours := float64(weekly) / 60
	return Projection{
		WeeklyMinutes: weekly,
		WeeklyHours:   weekly / 60,
		ExtraMinutes:  weekly % 60,
		MonthlyHours:  roundHalfUp(hours * 4.33),
		YearlyHours:   roundHalfUp(hours * 52),
	}
}

func roundHalfUp(v float64) int {
	if v <= 0 {
		return 0
	}
	return int(v + 0.5)
}
