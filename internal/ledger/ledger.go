// Package ledger aggregates recorded practice minutes.
package ledger

import "github.com/verte-zerg/skilltrack/internal/model"

// MinSessionSeconds is the shortest session that may be saved.
const MinSessionSeconds = 60

// TotalForSkill sums one skill across all seven days.
func TotalForSkill(w model.WeeklyPractice, s model.Skill) int {
	total := 0
	for _, d := range model.Days {
		total += w.Get(d, s)
	}
	return total
}

// TotalForWeek sums every skill across every day.
func TotalForWeek(w model.WeeklyPractice) int {
	total := 0
	for _, d := range model.Days {
		total += w.DayTotal(d)
	}
	return total
}

// SkillTotals returns TotalForSkill for each skill.
func SkillTotals(w model.WeeklyPractice) model.SkillMinutes {
	var out model.SkillMinutes
	for _, s := range model.Skills {
		out[s] = TotalForSkill(w, s)
	}
	return out
}

// MergeSession adds minutes to one skill. Negative minutes are ignored.
func MergeSession(dp model.DailyPractice, s model.Skill, minutes int) model.DailyPractice {
	if minutes <= 0 || !s.Valid() {
		return dp
	}
	dp[s] += minutes
	return dp
}

// MergeIntoWeek merges minutes into one day of a week.
func MergeIntoWeek(w model.WeeklyPractice, d model.Day, s model.Skill, minutes int) model.WeeklyPractice {
	if !d.Valid() {
		return w
	}
	w[d] = MergeSession(w[d], s, minutes)
	return w
}

// MinutesFromElapsed converts elapsed seconds to whole minutes, rounding down.
func MinutesFromElapsed(seconds int64) int {
	if seconds <= 0 {
		return 0
	}
	return int(seconds / 60)
}

// Savable reports whether a session of the given length may be saved.
func Savable(seconds int64) bool {
	return seconds >= MinSessionSeconds
}
