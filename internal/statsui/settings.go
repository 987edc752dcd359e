package statsui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/skilltrack/internal/model"
)

const (
	fieldLast = iota
	fieldWindow
	fieldCount
)

// settingsForm edits the report window while the dashboard stays loaded.
type settingsForm struct {
	active bool
	inputs [fieldCount]textinput.Model
	focus  int
	err    string
}

func newSettingsForm() settingsForm {
	var f settingsForm
	for i, prompt := range [fieldCount]string{"Last weeks (0 = all): ", "Curve window: "} {
		in := textinput.New()
		in.Prompt = prompt
		in.CharLimit = 4
		in.Validate = digitsOnly
		in.Cursor.SetMode(cursor.CursorBlink)
		f.inputs[i] = in
	}
	return f
}

func digitsOnly(s string) error {
	for _, r := range s {
		if r < '0' || r > '9' {
			return fmt.Errorf("digits only")
		}
	}
	return nil
}

func (f *settingsForm) open(cfg model.StatsConfig) tea.Cmd {
	f.active = true
	f.err = ""
	f.inputs[fieldLast].SetValue(strconv.Itoa(cfg.Last))
	f.inputs[fieldWindow].SetValue(strconv.Itoa(cfg.CurveWindow))
	return f.focusField(fieldLast)
}

func (f *settingsForm) close() {
	f.active = false
	f.err = ""
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
}

func (f *settingsForm) focusField(idx int) tea.Cmd {
	f.focus = (idx + fieldCount) % fieldCount
	var cmd tea.Cmd
	for i := range f.inputs {
		if i == f.focus {
			cmd = f.inputs[i].Focus()
			continue
		}
		f.inputs[i].Blur()
	}
	return cmd
}

func (f *settingsForm) setWidth(width int) {
	for i := range f.inputs {
		f.inputs[i].Width = max(8, width-len(f.inputs[i].Prompt)-2)
	}
}

// config parses the form. Empty fields fall back to 0 weeks and a window of 1.
func (f *settingsForm) config() (model.StatsConfig, error) {
	cfg := model.StatsConfig{CurveWindow: 1}
	if v := strings.TrimSpace(f.inputs[fieldLast].Value()); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return model.StatsConfig{}, fmt.Errorf("last weeks must be 0 or more")
		}
		cfg.Last = n
	}
	if v := strings.TrimSpace(f.inputs[fieldWindow].Value()); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return model.StatsConfig{}, fmt.Errorf("curve window must be at least 1")
		}
		cfg.CurveWindow = n
	}
	return cfg, nil
}

func (f *settingsForm) update(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyTab, tea.KeyDown:
		return f.focusField(f.focus + 1)
	case tea.KeyShiftTab, tea.KeyUp:
		return f.focusField(f.focus - 1)
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *settingsForm) view() string {
	lines := []string{titleStyle.Render("Report settings")}
	for _, in := range f.inputs {
		lines = append(lines, in.View())
	}
	if f.err != "" {
		lines = append(lines, errorStyle.Render(f.err))
	}
	return strings.Join(lines, "\n")
}
