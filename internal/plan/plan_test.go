package plan

import (
	"errors"
	"strings"
	"testing"

	"github.com/verte-zerg/skilltrack/internal/goals"
	"github.com/verte-zerg/skilltrack/internal/model"
)

func TestDistributeEvenlyScenario(t *testing.T) {
	got := DistributeEvenly(10, []model.Day{model.Monday, model.Tuesday, model.Wednesday})
	if got[model.Monday] != 4 || got[model.Tuesday] != 3 || got[model.Wednesday] != 3 {
		t.Fatalf("unexpected distribution: %v", got)
	}
}

func TestDistributeEvenlyProperties(t *testing.T) {
	for n := 1; n <= model.DayCount; n++ {
		days := ActiveDays(n)
		for goal := 0; goal <= 500; goal++ {
			got := DistributeEvenly(goal, days)
			if len(got) != n {
				t.Fatalf("goal %d over %d days: expected %d entries, got %d", goal, n, n, len(got))
			}
			sum, lo, hi := 0, got[days[0]], got[days[0]]
			for _, m := range got {
				sum += m
				lo = min(lo, m)
				hi = max(hi, m)
			}
			if sum != goal {
				t.Fatalf("goal %d over %d days: sum %d", goal, n, sum)
			}
			if hi-lo > 1 {
				t.Fatalf("goal %d over %d days: imbalance %d", goal, n, hi-lo)
			}
		}
	}
}

func TestDistributeEvenlyRemainderGoesFirst(t *testing.T) {
	days := []model.Day{model.Friday, model.Monday}
	got := DistributeEvenly(5, days)
	if got[model.Friday] != 3 || got[model.Monday] != 2 {
		t.Fatalf("expected the first listed day to take the extra minute, got %v", got)
	}
}

func TestDistributeEvenlyEmptyDays(t *testing.T) {
	if got := DistributeEvenly(10, nil); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}

func TestGenerateDefaultPlan(t *testing.T) {
	alloc := model.SkillAllocation{20, 20, 15, 25, 10, 10}
	budget := model.TimeBudget{DaysPerWeek: 4, MinutesPerDay: 20}
	p := GenerateDefaultPlan(alloc, budget)
	if p[model.Monday][model.Speaking] != 5 || p[model.Thursday][model.Speaking] != 5 {
		t.Fatalf("unexpected speaking split: %v", p)
	}
	if p[model.Monday][model.Writing] != 3 {
		t.Fatalf("expected writing 3 on monday, got %d", p[model.Monday][model.Writing])
	}
	for _, d := range model.Days[4:] {
		if p.DayTotal(d) != 0 {
			t.Fatalf("expected inactive %s to be zero, got %v", d, p[d])
		}
	}
}

func TestGenerateDefaultPlanIsComplete(t *testing.T) {
	allocs := []model.SkillAllocation{
		{20, 20, 15, 25, 10, 10},
		{17, 17, 17, 17, 16, 16},
		{0, 0, 0, 100, 0, 0},
		{33, 33, 34, 0, 0, 0},
	}
	for _, a := range allocs {
		for days := goals.MinDaysPerWeek; days <= goals.MaxDaysPerWeek; days++ {
			for _, mins := range []int{1, 11, 20, 45, 90, 240} {
				b := model.TimeBudget{DaysPerWeek: days, MinutesPerDay: mins}
				p := GenerateDefaultPlan(a, b)
				if !IsComplete(p, goals.ComputeWeeklyGoals(a, b)) {
					t.Fatalf("default plan incomplete for %v %+v", a, b)
				}
			}
		}
	}
}

func TestAutoDistributeSkillCompletesSkill(t *testing.T) {
	g := model.WeeklyGoals{16, 16, 12, 20, 8, 8}
	var p model.WeeklySchedulePlan
	p = UpdateCell(p, model.Monday, model.Speaking, 90)
	p = UpdateCell(p, model.Sunday, model.Speaking, 3)
	p = UpdateCell(p, model.Monday, model.Reading, 7)

	p = AutoDistributeSkill(p, model.Speaking, g)
	if got := SkillTotal(p, model.Speaking); got != 20 {
		t.Fatalf("expected speaking total 20, got %d", got)
	}
	// 20 over 7 days: 3,3,3,3,3,3,2.
	if p[model.Monday][model.Speaking] != 3 || p[model.Sunday][model.Speaking] != 2 {
		t.Fatalf("unexpected speaking split: %v", p)
	}
	if p[model.Monday][model.Reading] != 7 {
		t.Fatalf("other skills must be untouched, reading=%d", p[model.Monday][model.Reading])
	}
}

func TestUpdateCellClampsAndIsIdempotent(t *testing.T) {
	var p model.WeeklySchedulePlan
	p = UpdateCell(p, model.Tuesday, model.Fluency, 500)
	if p[model.Tuesday][model.Fluency] != MaxCellMinutes {
		t.Fatalf("expected clamp to %d, got %d", MaxCellMinutes, p[model.Tuesday][model.Fluency])
	}
	p = UpdateCell(p, model.Tuesday, model.Fluency, -4)
	if p[model.Tuesday][model.Fluency] != 0 {
		t.Fatalf("expected clamp to 0, got %d", p[model.Tuesday][model.Fluency])
	}

	once := UpdateCell(p, model.Friday, model.Reading, 25)
	twice := UpdateCell(once, model.Friday, model.Reading, 25)
	if once != twice {
		t.Fatalf("expected idempotent update")
	}
	once[model.Friday][model.Reading] = 0
	if once != p {
		t.Fatalf("expected only one cell to change")
	}
}

func TestIsCompleteAndDiagnose(t *testing.T) {
	g := model.WeeklyGoals{0, 0, 0, 20, 0, 0}
	var p model.WeeklySchedulePlan
	p = UpdateCell(p, model.Monday, model.Speaking, 10)
	p = UpdateCell(p, model.Wednesday, model.Speaking, 8)
	if IsComplete(p, g) {
		t.Fatalf("expected incomplete plan")
	}
	deltas := Diagnose(p, g)
	if len(deltas) != 1 || deltas[0] != (Delta{Skill: model.Speaking, DeltaMinutes: -2}) {
		t.Fatalf("unexpected deltas: %+v", deltas)
	}
	if rem := Remaining(p, g); rem[model.Speaking] != 2 {
		t.Fatalf("expected 2 remaining, got %v", rem)
	}

	p = UpdateCell(p, model.Friday, model.Reading, 5)
	deltas = Diagnose(p, g)
	if len(deltas) != 2 || deltas[0].Skill != model.Reading || deltas[0].DeltaMinutes != 5 {
		t.Fatalf("expected reading over by 5 first, got %+v", deltas)
	}
	if rem := Remaining(p, g); rem[model.Reading] != 0 {
		t.Fatalf("over-allocated skills have nothing remaining, got %d", rem[model.Reading])
	}
}

func TestCheckReturnsIncompleteError(t *testing.T) {
	g := model.WeeklyGoals{0, 0, 0, 20, 0, 0}
	var p model.WeeklySchedulePlan
	p = UpdateCell(p, model.Monday, model.Speaking, 18)
	err := Check(p, g)
	var incomplete *IncompleteError
	if !errors.As(err, &incomplete) {
		t.Fatalf("expected IncompleteError, got %v", err)
	}
	if !strings.Contains(err.Error(), "speaking short by 2 min") {
		t.Fatalf("unexpected message: %v", err)
	}
	p = UpdateCell(p, model.Tuesday, model.Speaking, 2)
	if err := Check(p, g); err != nil {
		t.Fatalf("expected complete plan, got %v", err)
	}
}

func TestParseCellEdit(t *testing.T) {
	e, err := ParseCellEdit("Mon:listening= 10")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if e != (CellEdit{Day: model.Monday, Skill: model.Listening, Minutes: 10}) {
		t.Fatalf("unexpected edit: %+v", e)
	}
	for _, bad := range []string{"monday:listening", "monday=10", "someday:listening=1", "monday:singing=1", "monday:listening=ten"} {
		if _, err := ParseCellEdit(bad); err == nil {
			t.Fatalf("expected %q to fail", bad)
		}
	}
}

func TestApplyEditsMovesMinutesBetweenDays(t *testing.T) {
	g := goals.ComputeWeeklyGoals(model.SkillAllocation{20, 20, 15, 25, 10, 10}, model.TimeBudget{DaysPerWeek: 4, MinutesPerDay: 20})
	p := GenerateDefaultPlan(model.SkillAllocation{20, 20, 15, 25, 10, 10}, model.TimeBudget{DaysPerWeek: 4, MinutesPerDay: 20})

	single := UpdateCell(p, model.Monday, model.Listening, 0)
	if Check(single, g) == nil {
		t.Fatalf("expected a single cell change to break completeness")
	}

	moved := ApplyEdits(p, []CellEdit{
		{Day: model.Monday, Skill: model.Listening, Minutes: 0},
		{Day: model.Friday, Skill: model.Listening, Minutes: p[model.Monday][model.Listening]},
	})
	if err := Check(moved, g); err != nil {
		t.Fatalf("expected moved plan to stay complete: %v", err)
	}
	if moved[model.Monday][model.Listening] != 0 || moved[model.Friday][model.Listening] != 4 {
		t.Fatalf("unexpected cells: %v", moved)
	}
}
