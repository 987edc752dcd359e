// Package tui provides the Bubble Tea practice timer.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/skilltrack/internal/calendar"
	"github.com/verte-zerg/skilltrack/internal/ledger"
	"github.com/verte-zerg/skilltrack/internal/model"
	"github.com/verte-zerg/skilltrack/internal/quotes"
	"github.com/verte-zerg/skilltrack/internal/timer"
)

// Recorder saves finished practice sessions.
type Recorder interface {
	RecordSession(ctx context.Context, skill model.Skill, elapsed time.Duration) (model.SessionRecord, model.WeeklyData, error)
}

// Options configures a practice screen.
type Options struct {
	Skill   model.Skill
	Targets [model.SkillCount]time.Duration
	Goals   model.WeeklyGoals
	Week    model.WeeklyData
	Quote   quotes.Quote
	Now     func() time.Time
}

type keyMap struct {
	Toggle key.Binding
	Save   key.Binding
	Reset  key.Binding
	Next   key.Binding
	Prev   key.Binding
	Quit   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Save, k.Reset, k.Prev, k.Next, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var keys = keyMap{
	Toggle: key.NewBinding(key.WithKeys(" ", "p"), key.WithHelp("space", "start/pause")),
	Save:   key.NewBinding(key.WithKeys("s", "enter"), key.WithHelp("s", "save")),
	Reset:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
	Next:   key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("→", "next skill")),
	Prev:   key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("←", "prev skill")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
}

var (
	activeSkillStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true).Underline(true)
	skillStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	clockStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	mutedStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	statusStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#7FB77E"))
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	quoteStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0")).Italic(true)
)

type tickMsg time.Time

// Model implements the Bubble Tea practice timer.
type Model struct {
	recorder Recorder
	now      func() time.Time

	session timer.Session
	targets [model.SkillCount]time.Duration
	goals   model.WeeklyGoals
	week    model.WeeklyData
	quote   quotes.Quote
	saved   []model.SessionRecord

	bar  progress.Model
	help help.Model

	status string
	errMsg string

	width  int
	height int
}

// NewModel constructs a practice timer model.
func NewModel(rec Recorder, opts Options) *Model {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	skill := opts.Skill
	if !skill.Valid() {
		skill = model.Listening
	}
	m := &Model{
		recorder: rec,
		now:      now,
		targets:  opts.Targets,
		goals:    opts.Goals,
		week:     opts.Week,
		quote:    opts.Quote,
		bar:      progress.New(progress.WithSolidFill("#C89A3A"), progress.WithoutPercentage()),
		help:     help.New(),
	}
	m.session = timer.New(skill, m.targets[skill])
	return m
}

// Saved returns the sessions stored while the screen was open.
func (m *Model) Saved() []model.SessionRecord {
	return m.saved
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = max(10, min(msg.Width-8, 60))
		m.help.Width = msg.Width
		return m, nil
	case tickMsg:
		return m, tick()
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Toggle):
			m.errMsg = ""
			m.session = m.session.Toggle(m.now())
		case key.Matches(msg, keys.Save):
			m.save()
		case key.Matches(msg, keys.Reset):
			m.errMsg = ""
			m.status = ""
			m.session = m.session.Reset()
		case key.Matches(msg, keys.Next):
			m.switchSkill(1)
		case key.Matches(msg, keys.Prev):
			m.switchSkill(-1)
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) switchSkill(delta int) {
	if m.session.Started() {
		m.errMsg = "reset or save the current session before switching skills"
		return
	}
	next := (int(m.session.Skill) + delta + model.SkillCount) % model.SkillCount
	skill := model.Skill(next)
	m.errMsg = ""
	m.session = timer.New(skill, m.targets[skill])
}

func (m *Model) save() {
	now := m.now()
	elapsed := m.session.Elapsed(now)
	if !ledger.Savable(int64(elapsed / time.Second)) {
		m.errMsg = fmt.Sprintf("practice at least %d seconds before saving", ledger.MinSessionSeconds)
		return
	}
	m.session = m.session.Pause(now)
	rec, week, err := m.recorder.RecordSession(context.Background(), m.session.Skill, elapsed)
	if err != nil {
		m.errMsg = fmt.Sprintf("failed to save session: %v", err)
		return
	}
	m.week = week
	m.saved = append(m.saved, rec)
	m.errMsg = ""
	m.status = fmt.Sprintf("Saved %d min of %s", rec.Minutes, rec.Skill)
	m.session = m.session.Reset()
}

// View implements tea.Model.
func (m *Model) View() string {
	now := m.now()
	sections := []string{
		m.renderHeader(),
		m.renderSkills(),
		"",
		m.renderClock(now),
		m.bar.ViewAs(m.session.Fraction(now)),
		"",
		m.renderTotals(),
	}
	if m.status != "" {
		sections = append(sections, statusStyle.Render(m.status))
	}
	if m.errMsg != "" {
		sections = append(sections, errorStyle.Render(m.errMsg))
	}
	sections = append(sections, "", m.help.View(keys))
	if q := m.renderQuote(); q != "" {
		sections = append(sections, "", q)
	}
	content := strings.Join(sections, "\n")
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) renderHeader() string {
	if m.week.WeekNumber == 0 {
		return mutedStyle.Render("Practice")
	}
	return mutedStyle.Render(fmt.Sprintf("Practice · Week %d (%s..%s)", m.week.WeekNumber, m.week.DateRange.Start, m.week.DateRange.End))
}

func (m *Model) renderSkills() string {
	parts := make([]string, 0, model.SkillCount)
	for _, s := range model.Skills {
		if s == m.session.Skill {
			parts = append(parts, activeSkillStyle.Render(s.String()))
		} else {
			parts = append(parts, skillStyle.Render(s.String()))
		}
	}
	return strings.Join(parts, "  ")
}

func (m *Model) renderClock(now time.Time) string {
	state := "ready"
	switch {
	case m.session.Running:
		state = "running"
	case m.session.Paused():
		state = "paused"
	}
	if m.session.Done(now) {
		state = "target reached"
	}
	return fmt.Sprintf("%s / %s  %s",
		clockStyle.Render(formatClock(m.session.Elapsed(now))),
		formatClock(m.session.Target),
		mutedStyle.Render(state),
	)
}

func (m *Model) renderTotals() string {
	skill := m.session.Skill
	today := calendar.Today(m.now())
	practicedToday := m.week.Practice.Get(today, skill)
	practicedWeek := ledger.TotalForSkill(m.week.Practice, skill)
	return mutedStyle.Render(fmt.Sprintf("Today %d min · Week %d/%d min · %.0f%%",
		practicedToday, practicedWeek, m.goals.Get(skill), m.week.SuccessRates.Get(skill)*100))
}

func (m *Model) renderQuote() string {
	if m.quote.Text == "" {
		return ""
	}
	width := 60
	if m.width > 0 {
		width = max(20, min(m.width-4, 80))
	}
	lines := wrapWords(fmt.Sprintf("%q (%s)", m.quote.Translation, m.quote.Author), width)
	return quoteStyle.Render(strings.Join(lines, "\n"))
}

// formatClock renders MM:SS, or HH:MM:SS from one hour on.
func formatClock(d time.Duration) string {
	total := int(d / time.Second)
	if total < 0 {
		total = 0
	}
	hours := total / 3600
	mins := (total % 3600) / 60
	secs := total % 60
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, mins, secs)
	}
	return fmt.Sprintf("%02d:%02d", mins, secs)
}
