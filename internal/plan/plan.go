// Package plan distributes weekly goal minutes across weekdays and validates schedule plans.
package plan

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/verte-zerg/skilltrack/internal/goals"
	"github.com/verte-zerg/skilltrack/internal/model"
)

// MaxCellMinutes caps a single day/skill entry.
const MaxCellMinutes = 120

// DistributeEvenly splits goalMinutes across days; the first goal%len(days) days get one extra minute.
// It returns an empty map when days is empty.
func DistributeEvenly(goalMinutes int, days []model.Day) map[model.Day]int {
	out := make(map[model.Day]int, len(days))
	if len(days) == 0 {
		return out
	}
	if goalMinutes < 0 {
		goalMinutes = 0
	}
	base := goalMinutes / len(days)
	extra := goalMinutes % len(days)
	for i, d := range days {
		m := base
		if i < extra {
			m++
		}
		out[d] = m
	}
	return out
}

// ActiveDays returns the first n weekdays, clamped to [0,7].
func ActiveDays(n int) []model.Day {
	if n < 0 {
		n = 0
	}
	if n > model.DayCount {
		n = model.DayCount
	}
	return append([]model.Day(nil), model.Days[:n]...)
}

// GenerateDefaultPlan spreads each skill's goal evenly over the first DaysPerWeek days.
func GenerateDefaultPlan(a model.SkillAllocation, b model.TimeBudget) model.WeeklySchedulePlan {
	return FromGoals(goals.ComputeWeeklyGoals(a, b), ActiveDays(b.DaysPerWeek))
}

// FromGoals builds a plan with each skill spread evenly over days; other days stay zero.
func FromGoals(g model.WeeklyGoals, days []model.Day) model.WeeklySchedulePlan {
	var p model.WeeklySchedulePlan
	if len(days) == 0 {
		return p
	}
	for _, s := range model.Skills {
		for d, m := range DistributeEvenly(g.Get(s), days) {
			p[d][s] = m
		}
	}
	return p
}

// AutoDistributeSkill clears a skill and spreads its goal over all seven days.
func AutoDistributeSkill(p model.WeeklySchedulePlan, s model.Skill, g model.WeeklyGoals) model.WeeklySchedulePlan {
	if !s.Valid() {
		return p
	}
	for d, m := range DistributeEvenly(g.Get(s), model.Days[:]) {
		p[d][s] = m
	}
	return p
}

// UpdateCell sets one day/skill entry, clamping minutes to [0, MaxCellMinutes].
func UpdateCell(p model.WeeklySchedulePlan, d model.Day, s model.Skill, minutes int) model.WeeklySchedulePlan {
	if !d.Valid() || !s.Valid() {
		return p
	}
	p[d][s] = ClampCell(minutes)
	return p
}

// CellEdit is one day/skill assignment applied by ApplyEdits.
type CellEdit struct {
	Day     model.Day
	Skill   model.Skill
	Minutes int
}

// ParseCellEdit reads "day:skill=minutes", for example "monday:listening=10".
func ParseCellEdit(s string) (CellEdit, error) {
	cell, value, ok := strings.Cut(s, "=")
	if !ok {
		return CellEdit{}, fmt.Errorf("invalid cell %q, want day:skill=minutes", s)
	}
	dayName, skillName, ok := strings.Cut(cell, ":")
	if !ok {
		return CellEdit{}, fmt.Errorf("invalid cell %q, want day:skill=minutes", s)
	}
	day, err := model.ParseDay(dayName)
	if err != nil {
		return CellEdit{}, err
	}
	skill, err := model.ParseSkill(skillName)
	if err != nil {
		return CellEdit{}, err
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return CellEdit{}, fmt.Errorf("invalid minutes in %q: %w", s, err)
	}
	return CellEdit{Day: day, Skill: skill, Minutes: minutes}, nil
}

// ApplyEdits runs UpdateCell for each edit in order; later edits to the same cell win.
func ApplyEdits(p model.WeeklySchedulePlan, edits []CellEdit) model.WeeklySchedulePlan {
	for _, e := range edits {
		p = UpdateCell(p, e.Day, e.Skill, e.Minutes)
	}
	return p
}

// ClampCell bounds a cell value to [0, MaxCellMinutes].
func ClampCell(minutes int) int {
	if minutes < 0 {
		return 0
	}
	if minutes > MaxCellMinutes {
		return MaxCellMinutes
	}
	return minutes
}

// SkillTotal sums a skill over all seven days.
func SkillTotal(p model.WeeklySchedulePlan, s model.Skill) int {
	total := 0
	for _, d := range model.Days {
		total += p.Get(d, s)
	}
	return total
}

// IsComplete reports whether every skill's weekly total equals its goal.
func IsComplete(p model.WeeklySchedulePlan, g model.WeeklyGoals) bool {
	for _, s := range model.Skills {
		if SkillTotal(p, s) != g.Get(s) {
			return false
		}
	}
	return true
}

// Delta is the difference between planned and goal minutes for one skill.
// Positive means over-allocated, negative under-allocated.
type Delta struct {
	Skill        model.Skill `json:"skill" yaml:"skill"`
	DeltaMinutes int         `json:"deltaMinutes" yaml:"deltaMinutes"`
}

// Diagnose lists every skill whose weekly total differs from its goal, in canonical skill order.
func Diagnose(p model.WeeklySchedulePlan, g model.WeeklyGoals) []Delta {
	var out []Delta
	for _, s := range model.Skills {
		if diff := SkillTotal(p, s) - g.Get(s); diff != 0 {
			out = append(out, Delta{Skill: s, DeltaMinutes: diff})
		}
	}
	return out
}

// Remaining returns, per skill, the goal minutes not yet planned (never negative).
func Remaining(p model.WeeklySchedulePlan, g model.WeeklyGoals) model.SkillMinutes {
	var out model.SkillMinutes
	for _, s := range model.Skills {
		if left := g.Get(s) - SkillTotal(p, s); left > 0 {
			out[s] = left
		}
	}
	return out
}

// IncompleteError reports a plan that does not match its goals.
type IncompleteError struct {
	Deltas []Delta
}

func (e *IncompleteError) Error() string {
	parts := make([]string, 0, len(e.Deltas))
	for _, d := range e.Deltas {
		if d.DeltaMinutes < 0 {
			parts = append(parts, fmt.Sprintf("%s short by %d min", d.Skill, -d.DeltaMinutes))
		} else {
			parts = append(parts, fmt.Sprintf("%s over by %d min", d.Skill, d.DeltaMinutes))
		}
	}
	return "plan incomplete: " + strings.Join(parts, ", ")
}

// Check returns an *IncompleteError when the plan does not match the goals.
func Check(p model.WeeklySchedulePlan, g model.WeeklyGoals) error {
	deltas := Diagnose(p, g)
	if len(deltas) == 0 {
		return nil
	}
	return &IncompleteError{Deltas: deltas}
}
