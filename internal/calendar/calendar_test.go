package calendar

import (
	"testing"
	"time"

	"github.com/verte-zerg/skilltrack/internal/model"
)

func at(date string, hour int) time.Time {
	t, err := ParseDate(date)
	if err != nil {
		panic(err)
	}
	return t.Add(time.Duration(hour) * time.Hour)
}

func TestWeekNumber(t *testing.T) {
	cases := []struct {
		now  time.Time
		want int
	}{
		{at("2026-03-02", 0), 1},
		{at("2026-03-02", 9), 1},
		{at("2026-03-08", 23), 1},
		{at("2026-03-09", 0), 1},
		{at("2026-03-09", 1), 2},
		{at("2026-03-16", 12), 3},
	}
	for _, tc := range cases {
		got, err := WeekNumber("2026-03-02", tc.now)
		if err != nil {
			t.Fatalf("week number: %v", err)
		}
		if got != tc.want {
			t.Errorf("WeekNumber(%s) = %d, want %d", tc.now, got, tc.want)
		}
	}
}

func TestWeekNumberInvalidDate(t *testing.T) {
	if _, err := WeekNumber("03/02/2026", time.Now()); err == nil {
		t.Fatalf("expected invalid date error")
	}
}

func TestWeekRange(t *testing.T) {
	rng, err := WeekRange(3, "2026-02-20")
	if err != nil {
		t.Fatalf("week range: %v", err)
	}
	if rng.Start != "2026-03-06" || rng.End != "2026-03-12" {
		t.Fatalf("unexpected range: %+v", rng)
	}
}

func TestToday(t *testing.T) {
	// 2026-03-01 is a Sunday.
	if got := Today(at("2026-03-01", 10)); got != model.Sunday {
		t.Fatalf("expected sunday, got %s", got)
	}
}

func TestStateOf(t *testing.T) {
	if got := StateOf(nil, 2); got != StatePending {
		t.Fatalf("expected pending, got %s", got)
	}
	w, err := NewWeek(2, "2026-03-02")
	if err != nil {
		t.Fatalf("new week: %v", err)
	}
	if got := StateOf(&w, 2); got != StateInitialized {
		t.Fatalf("expected initialized, got %s", got)
	}
	w.Practice[model.Monday][model.Reading] = 4
	if got := StateOf(&w, 2); got != StateActive {
		t.Fatalf("expected active, got %s", got)
	}
	if got := StateOf(&w, 3); got != StateArchived {
		t.Fatalf("expected archived, got %s", got)
	}
}
