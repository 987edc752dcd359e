package stats

import (
	"sort"

	"github.com/verte-zerg/skilltrack/internal/model"
)

// SelectWeakSkills returns up to top skills with a positive goal, lowest success rate first.
// Ties keep canonical skill order.
func SelectWeakSkills(rates model.SuccessRates, g model.WeeklyGoals, top int) []model.Skill {
	candidates := make([]model.Skill, 0, model.SkillCount)
	for _, s := range model.Skills {
		if g.Get(s) > 0 {
			candidates = append(candidates, s)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return rates.Get(candidates[i]) < rates.Get(candidates[j])
	})
	if top <= 0 || top > len(candidates) {
		top = len(candidates)
	}
	return candidates[:top]
}
