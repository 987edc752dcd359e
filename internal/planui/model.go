// Package planui provides the Bubble Tea weekly plan editor.
package planui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/skilltrack/internal/model"
	"github.com/verte-zerg/skilltrack/internal/plan"
)

// Saver stores a finished plan.
type Saver interface {
	SavePlan(ctx context.Context, p model.WeeklySchedulePlan) error
}

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Edit   key.Binding
	Auto   key.Binding
	Clear  key.Binding
	Revert key.Binding
	Save   key.Binding
	Quit   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Edit, k.Auto, k.Clear, k.Revert, k.Save, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Left, k.Right}, k.ShortHelp()}
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "skill up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "skill down")),
	Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev day")),
	Right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next day")),
	Edit:   key.NewBinding(key.WithKeys("enter", "e"), key.WithHelp("enter", "edit")),
	Auto:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "auto-distribute")),
	Clear:  key.NewBinding(key.WithKeys("x", "backspace", "delete"), key.WithHelp("x", "clear")),
	Revert: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "default plan")),
	Save:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

var (
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	cellStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true).Reverse(true)
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#7FB77E"))
	shortStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	modalStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(0, 1)
)

const (
	labelWidth = 14
	cellWidth  = 5
)

// Model implements the Bubble Tea plan editor.
type Model struct {
	saver       Saver
	goals       model.WeeklyGoals
	plan        model.WeeklySchedulePlan
	defaultPlan model.WeeklySchedulePlan

	skill model.Skill
	day   model.Day

	editing bool
	input   textinput.Model
	help    help.Model

	saved  bool
	status string
	errMsg string

	width  int
	height int
}

// NewModel constructs a plan editor starting from current; defaultPlan is restored by the revert key.
func NewModel(saver Saver, goals model.WeeklyGoals, current, defaultPlan model.WeeklySchedulePlan) *Model {
	input := textinput.New()
	input.Prompt = "Minutes: "
	input.CharLimit = 3
	input.Width = 6
	input.Validate = func(s string) error {
		for _, r := range s {
			if r < '0' || r > '9' {
				return errors.New("digits only")
			}
		}
		return nil
	}
	return &Model{
		saver:       saver,
		goals:       goals,
		plan:        current,
		defaultPlan: defaultPlan,
		input:       input,
		help:        help.New(),
	}
}

// Plan returns the plan as currently edited.
func (m *Model) Plan() model.WeeklySchedulePlan {
	return m.plan
}

// Saved reports whether the plan was stored during the session.
func (m *Model) Saved() bool {
	return m.saved
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if m.editing {
			return m.updateInput(msg)
		}
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Up):
			m.skill = model.Skill((int(m.skill) + model.SkillCount - 1) % model.SkillCount)
		case key.Matches(msg, keys.Down):
			m.skill = model.Skill((int(m.skill) + 1) % model.SkillCount)
		case key.Matches(msg, keys.Left):
			m.day = model.Day((int(m.day) + model.DayCount - 1) % model.DayCount)
		case key.Matches(msg, keys.Right):
			m.day = model.Day((int(m.day) + 1) % model.DayCount)
		case key.Matches(msg, keys.Edit):
			return m.startInput()
		case key.Matches(msg, keys.Auto):
			m.plan = plan.AutoDistributeSkill(m.plan, m.skill, m.goals)
			m.setStatus(fmt.Sprintf("%s spread over the week", m.skill))
		case key.Matches(msg, keys.Clear):
			m.plan = plan.UpdateCell(m.plan, m.day, m.skill, 0)
			m.setStatus("")
		case key.Matches(msg, keys.Revert):
			m.plan = m.defaultPlan
			m.setStatus("default plan restored")
		case key.Matches(msg, keys.Save):
			m.save()
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) setStatus(status string) {
	m.status = status
	m.errMsg = ""
}

func (m *Model) startInput() (tea.Model, tea.Cmd) {
	m.editing = true
	m.errMsg = ""
	m.input.SetValue(strconv.Itoa(m.plan.Get(m.day, m.skill)))
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.editing = false
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		m.applyInput()
		return m, nil
	case tea.KeyCtrlC:
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) applyInput() {
	raw := strings.TrimSpace(m.input.Value())
	minutes := 0
	if raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			m.errMsg = "enter a whole number of minutes"
			return
		}
		minutes = v
	}
	m.editing = false
	m.input.Blur()
	m.plan = plan.UpdateCell(m.plan, m.day, m.skill, minutes)
	if minutes > plan.MaxCellMinutes {
		m.setStatus(fmt.Sprintf("capped at %d min", plan.MaxCellMinutes))
		return
	}
	m.setStatus("")
}

func (m *Model) save() {
	if err := plan.Check(m.plan, m.goals); err != nil {
		m.errMsg = err.Error()
		return
	}
	if err := m.saver.SavePlan(context.Background(), m.plan); err != nil {
		m.errMsg = fmt.Sprintf("failed to save plan: %v", err)
		return
	}
	m.saved = true
	m.setStatus("plan saved")
}

// View implements tea.Model.
func (m *Model) View() string {
	lines := []string{headerStyle.Render("Weekly plan · every skill total must match its goal"), ""}
	lines = append(lines, m.renderGrid()...)
	lines = append(lines, "", m.renderRemaining())
	if m.status != "" {
		lines = append(lines, okStyle.Render(m.status))
	}
	if m.errMsg != "" {
		lines = append(lines, errorStyle.Render(m.errMsg))
	}
	if m.editing {
		title := fmt.Sprintf("%s · %s (0-%d)", m.day, m.skill, plan.MaxCellMinutes)
		lines = append(lines, "", modalStyle.Render(title+"\n"+m.input.View()))
	}
	lines = append(lines, "", m.help.View(keys))
	content := strings.Join(lines, "\n")
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) renderGrid() []string {
	var header strings.Builder
	header.WriteString(pad("", labelWidth))
	for _, d := range model.Days {
		header.WriteString(padLeft(d.Short(), cellWidth))
	}
	header.WriteString(padLeft("Total", cellWidth+2))
	header.WriteString(padLeft("Goal", cellWidth+1))
	lines := []string{headerStyle.Render(header.String())}

	for _, s := range model.Skills {
		var row strings.Builder
		row.WriteString(cellStyle.Render(pad(s.String(), labelWidth)))
		for _, d := range model.Days {
			cell := padLeft(strconv.Itoa(m.plan.Get(d, s)), cellWidth)
			if s == m.skill && d == m.day {
				row.WriteString(selectedStyle.Render(cell))
			} else {
				row.WriteString(cellStyle.Render(cell))
			}
		}
		total := plan.SkillTotal(m.plan, s)
		totalStyle := okStyle
		if total != m.goals.Get(s) {
			totalStyle = shortStyle
		}
		row.WriteString(totalStyle.Render(padLeft(strconv.Itoa(total), cellWidth+2)))
		row.WriteString(cellStyle.Render(padLeft(strconv.Itoa(m.goals.Get(s)), cellWidth+1)))
		lines = append(lines, row.String())
	}
	return lines
}

// renderRemaining lists the goal minutes still unplanned per skill, then any overplanned skills.
func (m *Model) renderRemaining() string {
	if plan.IsComplete(m.plan, m.goals) {
		return okStyle.Render("Plan complete")
	}
	var parts []string
	left := plan.Remaining(m.plan, m.goals)
	for _, s := range model.Skills {
		if left[s] > 0 {
			parts = append(parts, fmt.Sprintf("%s %d left", s, left[s]))
		}
	}
	for _, d := range plan.Diagnose(m.plan, m.goals) {
		if d.DeltaMinutes > 0 {
			parts = append(parts, fmt.Sprintf("%s %d over", d.Skill, d.DeltaMinutes))
		}
	}
	return shortStyle.Render(strings.Join(parts, " · "))
}

func pad(s string, width int) string {
	if n := width - lipgloss.Width(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

func padLeft(s string, width int) string {
	if n := width - lipgloss.Width(s); n > 0 {
		return strings.Repeat(" ", n) + s
	}
	return s
}
