// Package model defines shared data structures.
package model

import "time"

// TimeBudget is the weekly study commitment.
type TimeBudget struct {
	DaysPerWeek   int `json:"daysPerWeek" yaml:"daysPerWeek"`
	MinutesPerDay int `json:"minutesPerDay" yaml:"minutesPerDay"`
}

// WeeklyMinutes returns days × minutes, or 0 when either side is not positive.
func (b TimeBudget) WeeklyMinutes() int {
	if b.DaysPerWeek <= 0 || b.MinutesPerDay <= 0 {
		return 0
	}
	return b.DaysPerWeek * b.MinutesPerDay
}

// SkillAllocation holds the priority percentage for each skill.
type SkillAllocation = SkillMinutes

// WeeklyGoals holds the weekly goal minutes for each skill.
type WeeklyGoals = SkillMinutes

// DailyPractice holds minutes practiced per skill on one day.
type DailyPractice = SkillMinutes

// WeeklyPractice holds one DailyPractice per weekday.
type WeeklyPractice = Week

// WeeklySchedulePlan holds planned minutes per weekday and skill.
type WeeklySchedulePlan = Week

// SuccessRates holds a ratio in [0,1] per skill.
type SuccessRates [SkillCount]float64

// Get returns the rate for a skill.
func (r SuccessRates) Get(s Skill) float64 {
	if !s.Valid() {
		return 0
	}
	return r[s]
}

// DateRange is an inclusive range of ISO dates (YYYY-MM-DD).
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Reflection captures the end-of-week self review.
type Reflection struct {
	HardWork string `json:"hardWorkRating"`
	OnTrack  string `json:"onTrackRating"`
	Mood     string `json:"moodRating"`
	Stars    int    `json:"starRating"`
}

// WeeklyData is the record of one tracked week.
type WeeklyData struct {
	WeekNumber   int            `json:"weekNumber"`
	DateRange    DateRange      `json:"dateRange"`
	Practice     WeeklyPractice `json:"dailyPractice"`
	Reflection   Reflection     `json:"weeklyReflection"`
	SuccessRates SuccessRates   `json:"successRates"`
}

// UserProfile is the onboarding output plus derived goals and plan.
type UserProfile struct {
	Allocation SkillAllocation    `json:"skillPercentages"`
	Budget     TimeBudget         `json:"schedule"`
	StartDate  string             `json:"startDate"`
	Goals      WeeklyGoals        `json:"weeklyGoals"`
	Plan       WeeklySchedulePlan `json:"schedulePlan"`
}

// Motivation levels, saddest first.
var MotivationLevels = []string{
	"Super triste",
	"Triste",
	"Neutral",
	"Feliz",
	"Super feliz",
}

// DefaultMotivation is the label used before the user picks one.
const DefaultMotivation = "Neutral"

// ProgressData is the aggregate cache shown on the progress screen.
type ProgressData struct {
	TotalMinutes       int          `json:"totalMinutes"`
	TotalHours         int          `json:"totalHours"`
	AverageSuccessRate float64      `json:"averageSuccessRate"`
	WeeklyHistory      []WeeklyData `json:"weeklyHistory"`
	CurrentMotivation  string       `json:"currentMotivation"`
}

// SessionRecord is one saved practice session.
type SessionRecord struct {
	ID         string
	Skill      Skill
	Day        Day
	WeekNumber int
	Minutes    int
	StartedAt  time.Time
	EndedAt    time.Time
}

// StatsConfig defines options for stats output.
type StatsConfig struct {
	Last        int
	CurveWindow int
}
