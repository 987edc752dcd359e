package goals

import (
	"testing"

	"github.com/verte-zerg/skilltrack/internal/model"
)

func TestComputeWeeklyGoalsScenario(t *testing.T) {
	alloc := model.SkillAllocation{20, 20, 15, 25, 10, 10}
	got := ComputeWeeklyGoals(alloc, model.TimeBudget{DaysPerWeek: 4, MinutesPerDay: 20})
	want := model.WeeklyGoals{16, 16, 12, 20, 8, 8}
	if got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if got.Sum() != 80 {
		t.Fatalf("expected sum 80, got %d", got.Sum())
	}
}

func TestComputeWeeklyGoalsRoundsHalfUp(t *testing.T) {
	// 10% of 25 = 2.5 → 3; 30% of 25 = 7.5 → 8.
	alloc := model.SkillAllocation{10, 30, 10, 30, 10, 10}
	got := ComputeWeeklyGoals(alloc, model.TimeBudget{DaysPerWeek: 1, MinutesPerDay: 25})
	want := model.WeeklyGoals{3, 8, 3, 8, 3, 3}
	if got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}
	// Drift is kept: 28 goal minutes for a 25 minute budget.
	if got.Sum() != 28 {
		t.Fatalf("expected drifted sum 28, got %d", got.Sum())
	}
}

func TestComputeWeeklyGoalsZeroBudget(t *testing.T) {
	alloc := model.SkillAllocation{20, 20, 15, 25, 10, 10}
	for _, b := range []model.TimeBudget{
		{DaysPerWeek: 0, MinutesPerDay: 30},
		{DaysPerWeek: 3, MinutesPerDay: 0},
		{DaysPerWeek: -2, MinutesPerDay: 30},
	} {
		if got := ComputeWeeklyGoals(alloc, b); got != (model.WeeklyGoals{}) {
			t.Fatalf("budget %+v: expected zero goals, got %v", b, got)
		}
	}
}

func TestComputeWeeklyGoalsDriftBound(t *testing.T) {
	// Exhaustive over allocations in steps of 5 and every valid days value.
	var alloc model.SkillAllocation
	var walk func(i, left int)
	checked := 0
	walk = func(i, left int) {
		if i == model.SkillCount-1 {
			alloc[i] = left
			for days := MinDaysPerWeek; days <= MaxDaysPerWeek; days++ {
				for _, mins := range []int{1, 7, 13, 45, 240} {
					b := model.TimeBudget{DaysPerWeek: days, MinutesPerDay: mins}
					diff := ComputeWeeklyGoals(alloc, b).Sum() - b.WeeklyMinutes()
					if diff < -model.SkillCount || diff > model.SkillCount {
						t.Fatalf("drift %d out of bounds for %v %+v", diff, alloc, b)
					}
					checked++
				}
			}
			return
		}
		for v := 0; v <= left; v += 5 {
			alloc[i] = v
			walk(i+1, left-v)
		}
	}
	walk(0, 100)
	if checked == 0 {
		t.Fatalf("no allocations checked")
	}
}

func TestValidateAllocation(t *testing.T) {
	cases := []struct {
		name  string
		alloc model.SkillAllocation
		want  bool
	}{
		{"exact", model.SkillAllocation{20, 20, 15, 25, 10, 10}, true},
		{"single skill", model.SkillAllocation{0, 0, 0, 100, 0, 0}, true},
		{"short", model.SkillAllocation{20, 20, 15, 25, 10, 9}, false},
		{"over", model.SkillAllocation{20, 20, 15, 25, 10, 11}, false},
		{"negative", model.SkillAllocation{-10, 30, 15, 25, 20, 20}, false},
	}
	for _, tc := range cases {
		if got := ValidateAllocation(tc.alloc); got != tc.want {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
		if err := AllocationError(tc.alloc); (err == nil) != tc.want {
			t.Errorf("%s: AllocationError = %v", tc.name, err)
		}
	}
}

func TestAllocationErrorMessages(t *testing.T) {
	if err := AllocationError(model.SkillAllocation{20, 20, 15, 25, 10, 10}); err != nil {
		t.Fatalf("expected valid allocation, got %v", err)
	}
	err := AllocationError(model.SkillAllocation{20, 20, 15, 25, 10, 9})
	if err == nil || err.Error() != "percentages sum to 99, must be exactly 100" {
		t.Fatalf("unexpected sum error: %v", err)
	}
	err = AllocationError(model.SkillAllocation{0, 0, 0, 120, -20, 0})
	if err == nil || err.Error() != "speaking percentage 120 must be between 0 and 100" {
		t.Fatalf("unexpected range error: %v", err)
	}
}

func TestValidateBudget(t *testing.T) {
	if err := ValidateBudget(model.TimeBudget{DaysPerWeek: 7, MinutesPerDay: 240}); err != nil {
		t.Fatalf("expected max budget to pass: %v", err)
	}
	if err := ValidateBudget(model.TimeBudget{DaysPerWeek: 8, MinutesPerDay: 30}); err == nil {
		t.Fatalf("expected 8 days to fail")
	}
	if err := ValidateBudget(model.TimeBudget{DaysPerWeek: 3, MinutesPerDay: 241}); err == nil {
		t.Fatalf("expected 241 minutes to fail")
	}
}

func TestProject(t *testing.T) {
	p := Project(model.TimeBudget{DaysPerWeek: 5, MinutesPerDay: 30})
	if p.WeeklyMinutes != 150 || p.WeeklyHours != 2 || p.ExtraMinutes != 30 {
		t.Fatalf("unexpected weekly projection: %+v", p)
	}
	// 2.5h × 4.33 = 10.825 → 11; 2.5h × 52 = 130.
	if p.MonthlyHours != 11 || p.YearlyHours != 130 {
		t.Fatalf("unexpected long-range projection: %+v", p)
	}
}
