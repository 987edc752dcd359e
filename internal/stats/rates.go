package stats

import (
	"math"
	"sort"

	"github.com/verte-zerg/skilltrack/internal/ledger"
	"github.com/verte-zerg/skilltrack/internal/model"
)

// ComputeSuccessRates returns min(practiced/goal, 1) per skill; a zero goal yields 0.
func ComputeSuccessRates(w model.WeeklyPractice, g model.WeeklyGoals) model.SuccessRates {
	var out model.SuccessRates
	for _, s := range model.Skills {
		goal := g.Get(s)
		if goal <= 0 {
			continue
		}
		out[s] = math.Min(float64(ledger.TotalForSkill(w, s))/float64(goal), 1)
	}
	return out
}

// AverageSuccessRate is the mean over all six skills, zero-goal skills included.
func AverageSuccessRate(r model.SuccessRates) float64 {
	var sum float64
	for _, v := range r {
		sum += v
	}
	return sum / model.SkillCount
}

// BuildProgress aggregates the weekly history into the progress cache.
// History is copied and ordered by week number.
func BuildProgress(history []model.WeeklyData, motivation string) model.ProgressData {
	weeks := make([]model.WeeklyData, len(history))
	copy(weeks, history)
	sort.SliceStable(weeks, func(i, j int) bool {
		return weeks[i].WeekNumber < weeks[j].WeekNumber
	})

	if motivation == "" {
		motivation = model.DefaultMotivation
	}
	p := model.ProgressData{
		WeeklyHistory:     weeks,
		CurrentMotivation: motivation,
	}
	var rateSum float64
	for _, w := range weeks {
		p.TotalMinutes += ledger.TotalForWeek(w.Practice)
		rateSum += AverageSuccessRate(w.SuccessRates)
	}
	p.TotalHours = p.TotalMinutes / 60
	if len(weeks) > 0 {
		p.AverageSuccessRate = rateSum / float64(len(weeks))
	}
	return p
}

// ReplaceWeek returns history with w substituted for the record of the same number, or appended.
func ReplaceWeek(history []model.WeeklyData, w model.WeeklyData) []model.WeeklyData {
	out := make([]model.WeeklyData, 0, len(history)+1)
	replaced := false
	for _, h := range history {
		if h.WeekNumber == w.WeekNumber {
			out = append(out, w)
			replaced = true
			continue
		}
		out = append(out, h)
	}
	if !replaced {
		out = append(out, w)
	}
	return out
}
