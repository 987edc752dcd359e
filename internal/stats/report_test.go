package stats

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/skilltrack/internal/model"
	"github.com/verte-zerg/skilltrack/internal/store"
)

func TestBuildReport(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "skilltrack.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	for i := 1; i <= 3; i++ {
		w := model.WeeklyData{WeekNumber: i}
		w.Practice[model.Monday][model.Speaking] = 10 * i
		w.SuccessRates[model.Speaking] = 0.6
		start := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC).AddDate(0, 0, 7*(i-1))
		rec := model.SessionRecord{
			ID:         "sess-" + string(rune('0'+i)),
			Skill:      model.Speaking,
			Day:        model.Monday,
			WeekNumber: i,
			Minutes:    10 * i,
			StartedAt:  start,
			EndedAt:    start.Add(time.Duration(10*i) * time.Minute),
		}
		if err := st.SaveSession(ctx, w, rec, nil); err != nil {
			t.Fatalf("save session: %v", err)
		}
	}
	if err := st.SetMotivation(ctx, "Feliz", nil); err != nil {
		t.Fatalf("set motivation: %v", err)
	}

	report, err := BuildReport(ctx, st, model.StatsConfig{Last: 2})
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if report.Progress.TotalMinutes != 60 || report.Progress.TotalHours != 1 {
		t.Fatalf("unexpected totals: %+v", report.Progress)
	}
	if report.Progress.CurrentMotivation != "Feliz" {
		t.Fatalf("expected motivation Feliz, got %q", report.Progress.CurrentMotivation)
	}
	if len(report.Weeks) != 2 || report.Weeks[0].WeekNumber != 2 {
		t.Fatalf("expected last two weeks, got %+v", report.Weeks)
	}
	if len(report.Sessions) != 3 || report.Sessions[0].WeekNumber != 3 {
		t.Fatalf("expected newest session first, got %+v", report.Sessions)
	}
}
