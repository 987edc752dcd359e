package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestDayOfStartsOnMonday(t *testing.T) {
	cases := map[time.Weekday]Day{
		time.Monday:   Monday,
		time.Saturday: Saturday,
		time.Sunday:   Sunday,
	}
	for wd, want := range cases {
		if got := DayOf(wd); got != want {
			t.Fatalf("DayOf(%s) = %s, want %s", wd, got, want)
		}
	}
}

func TestParseDayAcceptsPrefix(t *testing.T) {
	d, err := ParseDay("Wed")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d != Wednesday {
		t.Fatalf("expected wednesday, got %s", d)
	}
	if _, err := ParseDay("we"); err == nil {
		t.Fatalf("expected two-letter prefix to be rejected")
	}
}

func TestParseSkillUnknown(t *testing.T) {
	if _, err := ParseSkill("grammar"); err == nil || !strings.Contains(err.Error(), "pronunciation") {
		t.Fatalf("expected error listing skills, got %v", err)
	}
	s, err := ParseSkill(" Speaking ")
	if err != nil || s != Speaking {
		t.Fatalf("expected speaking, got %v %v", s, err)
	}
}

func TestWeekJSONUsesNames(t *testing.T) {
	var w Week
	w[Tuesday] = w[Tuesday].With(Speaking, 12)
	data, err := json.Marshal(w)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"tuesday":{"listening":0,"reading":0,"writing":0,"speaking":12`) {
		t.Fatalf("unexpected encoding: %s", data)
	}
	var back Week
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back != w {
		t.Fatalf("decoded week differs: %+v", back)
	}
}

func TestTimeBudgetWeeklyMinutes(t *testing.T) {
	if got := (TimeBudget{DaysPerWeek: 4, MinutesPerDay: 20}).WeeklyMinutes(); got != 80 {
		t.Fatalf("expected 80, got %d", got)
	}
	if got := (TimeBudget{DaysPerWeek: -1, MinutesPerDay: 20}).WeeklyMinutes(); got != 0 {
		t.Fatalf("expected 0 for negative days, got %d", got)
	}
}
