package stats

import (
	"sort"

	"github.com/verte-zerg/skilltrack/internal/model"
)

// TopSkillsByMinutes returns the n skills with the most minutes, skipping skills with none.
func TopSkillsByMinutes(totals model.SkillMinutes, n int) []model.Skill {
	if n <= 0 {
		return nil
	}
	items := make([]model.Skill, 0, model.SkillCount)
	for _, s := range model.Skills {
		if totals.Get(s) > 0 {
			items = append(items, s)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return totals.Get(items[i]) > totals.Get(items[j])
	})
	if n > len(items) {
		n = len(items)
	}
	return items[:n]
}
