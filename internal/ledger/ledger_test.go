package ledger

import (
	"testing"

	"github.com/verte-zerg/skilltrack/internal/model"
)

func sampleWeek() model.WeeklyPractice {
	var w model.WeeklyPractice
	w[model.Monday] = model.DailyPractice{5, 0, 0, 10, 0, 0}
	w[model.Thursday] = model.DailyPractice{0, 7, 0, 15, 0, 1}
	return w
}

func TestTotals(t *testing.T) {
	w := sampleWeek()
	if got := TotalForSkill(w, model.Speaking); got != 25 {
		t.Fatalf("expected speaking 25, got %d", got)
	}
	if got := TotalForWeek(w); got != 38 {
		t.Fatalf("expected week total 38, got %d", got)
	}
	if got := SkillTotals(w); got != (model.SkillMinutes{5, 7, 0, 25, 0, 1}) {
		t.Fatalf("unexpected skill totals: %v", got)
	}
}

func TestMergeSessionTouchesOneSkill(t *testing.T) {
	dp := model.DailyPractice{1, 2, 3, 4, 5, 6}
	got := MergeSession(dp, model.Writing, 12)
	if got != (model.DailyPractice{1, 2, 15, 4, 5, 6}) {
		t.Fatalf("unexpected merge: %v", got)
	}
	if MergeSession(dp, model.Writing, 0) != dp {
		t.Fatalf("zero-minute merge must be a no-op")
	}
	if MergeSession(dp, model.Writing, -3) != dp {
		t.Fatalf("negative merge must be ignored")
	}
}

func TestMergeIntoWeek(t *testing.T) {
	w := MergeIntoWeek(sampleWeek(), model.Sunday, model.Fluency, 9)
	if w[model.Sunday][model.Fluency] != 9 || TotalForWeek(w) != 47 {
		t.Fatalf("unexpected week after merge: %v", w)
	}
}

func TestMinutesFromElapsed(t *testing.T) {
	cases := map[int64]int{-5: 0, 0: 0, 59: 0, 60: 1, 119: 1, 3600: 60}
	for secs, want := range cases {
		if got := MinutesFromElapsed(secs); got != want {
			t.Errorf("MinutesFromElapsed(%d) = %d, want %d", secs, got, want)
		}
	}
	if Savable(59) || !Savable(60) {
		t.Fatalf("expected 60 seconds to be the save threshold")
	}
}
