package planui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/skilltrack/internal/model"
	"github.com/verte-zerg/skilltrack/internal/plan"
)

type fakeSaver struct {
	saved []model.WeeklySchedulePlan
}

func (f *fakeSaver) SavePlan(_ context.Context, p model.WeeklySchedulePlan) error {
	f.saved = append(f.saved, p)
	return nil
}

var (
	testGoals   = model.WeeklyGoals{16, 16, 12, 20, 8, 8}
	testDefault = plan.FromGoals(testGoals, plan.ActiveDays(4))
)

func keyPress(m *Model, keys ...string) {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m.Update(msg)
	}
}

func TestEditCellAndBlockIncompleteSave(t *testing.T) {
	saver := &fakeSaver{}
	m := NewModel(saver, testGoals, testDefault, testDefault)

	// Listening on Monday: 4 → 10.
	keyPress(m, "enter")
	if !m.editing {
		t.Fatalf("expected edit mode")
	}
	m.input.SetValue("10")
	keyPress(m, "enter")
	if m.editing || m.Plan()[model.Monday][model.Listening] != 10 {
		t.Fatalf("expected cell updated, got %d", m.Plan()[model.Monday][model.Listening])
	}

	keyPress(m, "s")
	if len(saver.saved) != 0 {
		t.Fatalf("incomplete plan must not be saved")
	}
	if !strings.Contains(m.errMsg, "listening over by 6 min") {
		t.Fatalf("unexpected error %q", m.errMsg)
	}
	if !strings.Contains(m.View(), "listening 6 over") {
		t.Fatalf("expected delta in view:\n%s", m.View())
	}

	keyPress(m, "a", "s")
	if len(saver.saved) != 1 || !m.Saved() {
		t.Fatalf("expected complete plan to be saved")
	}
	if plan.SkillTotal(saver.saved[0], model.Listening) != 16 || saver.saved[0][model.Sunday][model.Listening] != 2 {
		t.Fatalf("unexpected saved listening row: %v", saver.saved[0])
	}
}

func TestEditCellClamps(t *testing.T) {
	m := NewModel(&fakeSaver{}, testGoals, testDefault, testDefault)
	keyPress(m, "down", "right", "enter")
	m.input.SetValue("500")
	keyPress(m, "enter")
	if got := m.Plan()[model.Tuesday][model.Reading]; got != plan.MaxCellMinutes {
		t.Fatalf("expected clamp to %d, got %d", plan.MaxCellMinutes, got)
	}
	if m.status != "capped at 120 min" {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestEscCancelsEdit(t *testing.T) {
	m := NewModel(&fakeSaver{}, testGoals, testDefault, testDefault)
	keyPress(m, "enter")
	m.input.SetValue("99")
	keyPress(m, "esc")
	if m.editing || m.Plan() != testDefault {
		t.Fatalf("expected cancelled edit to leave the plan unchanged")
	}
}

func TestClearAndRevert(t *testing.T) {
	m := NewModel(&fakeSaver{}, testGoals, testDefault, testDefault)
	keyPress(m, "x")
	if m.Plan()[model.Monday][model.Listening] != 0 {
		t.Fatalf("expected cleared cell")
	}
	keyPress(m, "d")
	if m.Plan() != testDefault {
		t.Fatalf("expected default plan restored")
	}
	if !strings.Contains(m.View(), "Plan complete") {
		t.Fatalf("expected complete marker")
	}
}

func TestRemainingRowShowsLeftAndOver(t *testing.T) {
	m := NewModel(&fakeSaver{}, testGoals, testDefault, testDefault)
	keyPress(m, "x", "right", "enter")
	m.input.SetValue("10")
	keyPress(m, "enter")

	view := m.View()
	for _, want := range []string{"listening 4 left", "reading 6 over"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
	if strings.Contains(view, "Plan complete") {
		t.Fatalf("plan must not be reported complete:\n%s", view)
	}
}
