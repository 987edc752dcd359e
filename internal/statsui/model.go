// Package statsui provides the Bubble Tea progress dashboard.
package statsui

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/skilltrack/internal/ledger"
	"github.com/verte-zerg/skilltrack/internal/model"
	"github.com/verte-zerg/skilltrack/internal/stats"
)

type tab int

const (
	tabOverview tab = iota
	tabSkills
	tabSessions
	tabCount
)

var tabNames = [tabCount]string{"Overview", "Skills", "Sessions"}

type keyMap struct {
	PrevTab  key.Binding
	NextTab  key.Binding
	PrevWeek key.Binding
	NextWeek key.Binding
	Narrow   key.Binding
	Widen    key.Binding
	Settings key.Binding
	Quit     key.Binding
	Apply    key.Binding
	Cancel   key.Binding
	Field    key.Binding
}

var keys = keyMap{
	PrevTab:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "prev tab")),
	NextTab:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next tab")),
	PrevWeek: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev week")),
	NextWeek: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next week")),
	Narrow:   key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "narrow trend")),
	Widen:    key.NewBinding(key.WithKeys("=", "+"), key.WithHelp("=", "widen trend")),
	Settings: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "settings")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Apply:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
	Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Field:    key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "next field")),
}

// helpFor returns the bindings that apply to the current screen.
type helpFor struct {
	m *Model
}

func (h helpFor) ShortHelp() []key.Binding {
	switch {
	case h.m.settings.active:
		return []key.Binding{keys.Field, keys.Apply, keys.Cancel}
	case h.m.active == tabSkills:
		return []key.Binding{keys.PrevTab, keys.NextTab, keys.PrevWeek, keys.NextWeek, keys.Settings, keys.Quit}
	default:
		return []key.Binding{keys.PrevTab, keys.NextTab, keys.Narrow, keys.Widen, keys.Settings, keys.Quit}
	}
}

func (h helpFor) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}

var (
	tabStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A")).
			Foreground(lipgloss.Color("#8C8C8C"))
	selectedTabStyle = tabStyle.
				BorderForeground(lipgloss.Color("#C89A3A")).
				Foreground(lipgloss.Color("#F0F0F0")).
				Bold(true)
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	metricStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	metricLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	metricValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
)

// Loader builds the report shown by the dashboard.
type Loader func(ctx context.Context, cfg model.StatsConfig) (stats.Report, error)

// Model implements the Bubble Tea progress dashboard.
type Model struct {
	load Loader
	cfg  model.StatsConfig

	report  stats.Report
	loadErr error

	active    tab
	weekIndex int

	overview   viewport.Model
	sessions   viewport.Model
	skillTable table.Model
	settings   settingsForm
	help       help.Model

	width  int
	height int
}

// NewModel constructs a dashboard and loads the first report.
func NewModel(load Loader, cfg model.StatsConfig) *Model {
	m := &Model{
		load:       load,
		cfg:        cfg,
		overview:   viewport.New(0, 0),
		sessions:   viewport.New(0, 0),
		skillTable: newSkillTable(),
		settings:   newSettingsForm(),
		help:       help.New(),
	}
	m.reload()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil
	case tea.KeyMsg:
		if m.settings.active {
			return m, m.updateSettings(msg)
		}
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Quit):
		return tea.Quit
	case key.Matches(msg, keys.PrevTab):
		m.selectTab(m.active - 1)
		return tea.ClearScreen
	case key.Matches(msg, keys.NextTab):
		m.selectTab(m.active + 1)
		return tea.ClearScreen
	case key.Matches(msg, keys.PrevWeek):
		m.selectWeek(m.weekIndex - 1)
		return nil
	case key.Matches(msg, keys.NextWeek):
		m.selectWeek(m.weekIndex + 1)
		return nil
	case key.Matches(msg, keys.Narrow):
		m.cfg.CurveWindow = prevCurveWindow(m.cfg.CurveWindow)
		m.renderContent()
		return nil
	case key.Matches(msg, keys.Widen):
		m.cfg.CurveWindow = nextCurveWindow(m.cfg.CurveWindow)
		m.renderContent()
		return nil
	case key.Matches(msg, keys.Settings):
		return m.settings.open(m.cfg)
	}

	var cmd tea.Cmd
	switch m.active {
	case tabSkills:
		m.skillTable, cmd = m.skillTable.Update(msg)
	case tabOverview:
		m.overview, cmd = m.overview.Update(msg)
	case tabSessions:
		m.sessions, cmd = m.sessions.Update(msg)
	}
	return cmd
}

func (m *Model) updateSettings(msg tea.KeyMsg) tea.Cmd {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return tea.Quit
	case key.Matches(msg, keys.Cancel):
		m.settings.close()
		return nil
	case key.Matches(msg, keys.Apply):
		cfg, err := m.settings.config()
		if err != nil {
			m.settings.err = err.Error()
			return nil
		}
		m.settings.close()
		m.cfg = cfg
		m.reload()
		return nil
	}
	return m.settings.update(msg)
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	header := m.renderHeader()
	footer := m.renderFooter()
	bodyHeight := max(1, m.height-lipgloss.Height(header)-lipgloss.Height(footer))
	body := lipgloss.NewStyle().
		Width(m.width).MaxWidth(m.width).
		Height(bodyHeight).MaxHeight(bodyHeight).
		Render(m.renderBody())
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m *Model) selectTab(t tab) {
	m.active = (t + tabCount) % tabCount
	if m.active == tabSkills {
		m.skillTable.Focus()
		return
	}
	m.skillTable.Blur()
}

func (m *Model) selectWeek(i int) {
	if len(m.report.Weeks) == 0 {
		m.weekIndex = 0
		m.skillTable.SetRows(nil)
		return
	}
	m.weekIndex = max(0, min(i, len(m.report.Weeks)-1))
	m.skillTable.SetRows(skillRows(m.report.Weeks[m.weekIndex], m.report.Profile.Goals))
}

func (m *Model) selectedWeek() (model.WeeklyData, bool) {
	if len(m.report.Weeks) == 0 {
		return model.WeeklyData{}, false
	}
	return m.report.Weeks[m.weekIndex], true
}

func (m *Model) resize() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	bodyHeight := max(1, m.height-lipgloss.Height(m.renderHeader())-lipgloss.Height(m.renderFooter()))
	for _, vp := range []*viewport.Model{&m.overview, &m.sessions} {
		vp.Width = m.width
		vp.Height = bodyHeight
	}
	m.skillTable.SetWidth(m.width)
	m.skillTable.SetHeight(max(1, bodyHeight-2))
	m.settings.setWidth(m.width)
	m.help.Width = m.width
	m.renderContent()
}

func (m *Model) reload() {
	report, err := m.load(context.Background(), m.cfg)
	if err != nil {
		m.loadErr = err
		m.overview.SetContent("Failed to load progress.")
		m.sessions.SetContent("")
		return
	}
	m.loadErr = nil
	m.report = report
	m.selectWeek(len(report.Weeks) - 1)
	m.renderContent()
}

func (m *Model) renderContent() {
	if m.loadErr != nil {
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.overview.SetContent(renderOverview(m.report, m.cfg.CurveWindow, width))
	m.sessions.SetContent(renderSessions(m.report.Sessions))
}

func (m *Model) renderHeader() string {
	tabs := make([]string, 0, tabCount)
	for i, name := range tabNames {
		if tab(i) == m.active {
			tabs = append(tabs, selectedTabStyle.Render(name))
		} else {
			tabs = append(tabs, tabStyle.Render(name))
		}
	}
	last := "all"
	if m.cfg.Last > 0 {
		last = strconv.Itoa(m.cfg.Last)
	}
	line := fmt.Sprintf("weeks: %s  trend window: %d", last, m.cfg.CurveWindow)
	if w, ok := m.selectedWeek(); ok && m.active == tabSkills {
		line += fmt.Sprintf("  showing week %d", w.WeekNumber)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n" +
		mutedStyle.Render(runewidth.Truncate(line, max(m.width, 1), "..."))
}

func (m *Model) renderFooter() string {
	out := m.help.View(helpFor{m})
	if m.loadErr != nil && !m.settings.active {
		out += "\n" + errorStyle.Render(m.loadErr.Error())
	}
	return out
}

func (m *Model) renderBody() string {
	if m.settings.active {
		return m.settings.view()
	}
	switch m.active {
	case tabSkills:
		w, ok := m.selectedWeek()
		if !ok {
			return "No weeks recorded yet."
		}
		title := titleStyle.Render(fmt.Sprintf("Week %d (%s..%s)", w.WeekNumber, w.DateRange.Start, w.DateRange.End)) +
			mutedStyle.Render(fmt.Sprintf("  avg %.0f%%", stats.AverageSuccessRate(w.SuccessRates)*100))
		return title + "\n" + m.skillTable.View()
	case tabSessions:
		return m.sessions.View()
	default:
		return m.overview.View()
	}
}

func renderOverview(r stats.Report, window, width int) string {
	p := r.Progress
	if len(p.WeeklyHistory) == 0 {
		return "No weeks recorded yet."
	}
	cards := []string{
		metric("Weeks", strconv.Itoa(len(p.WeeklyHistory))),
		metric("Practice", stats.FormatMinutes(p.TotalMinutes)),
		metric("Avg success", fmt.Sprintf("%.0f%%", p.AverageSuccessRate*100)),
		metric("Motivation", p.CurrentMotivation),
	}
	summary := lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	if lipgloss.Width(summary) > width {
		summary = lipgloss.JoinVertical(lipgloss.Left, cards...)
	}

	var buf bytes.Buffer
	if err := stats.RenderWeekTable(&buf, r.Weeks, window); err != nil {
		return fmt.Sprintf("Failed to render weeks: %v", err)
	}
	if n := len(r.Weeks); n > 0 {
		latest := r.Weeks[n-1]
		bars := make([]stats.Bar, 0, model.SkillCount)
		for _, s := range model.Skills {
			bars = append(bars, stats.Bar{Label: s.String(), Value: latest.SuccessRates.Get(s)})
		}
		if err := stats.RenderBars(&buf, fmt.Sprintf("Week %d success", latest.WeekNumber), bars, stats.BarWidthFor(width)); err != nil {
			return fmt.Sprintf("Failed to render bars: %v", err)
		}
	}
	return summary + "\n\n" + strings.TrimRight(buf.String(), "\n")
}

func renderSessions(sessions []model.SessionRecord) string {
	var buf bytes.Buffer
	if err := stats.RenderSessions(&buf, sessions); err != nil {
		return fmt.Sprintf("Failed to render sessions: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func metric(label, value string) string {
	return metricStyle.Render(metricLabelStyle.Render(label) + "\n" + metricValueStyle.Render(value))
}

func newSkillTable() table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Skill", Width: 14},
			{Title: "Practiced", Width: 10},
			{Title: "Goal", Width: 6},
			{Title: "Success", Width: 8},
		}),
		table.WithHeight(1),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Bold(true)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	t.SetStyles(styles)
	return t
}

func skillRows(w model.WeeklyData, goals model.WeeklyGoals) []table.Row {
	totals := ledger.SkillTotals(w.Practice)
	rows := make([]table.Row, 0, model.SkillCount)
	for _, s := range model.Skills {
		rows = append(rows, table.Row{
			s.String(),
			strconv.Itoa(totals.Get(s)),
			strconv.Itoa(goals.Get(s)),
			fmt.Sprintf("%.0f%%", w.SuccessRates.Get(s)*100),
		})
	}
	return rows
}

func nextCurveWindow(n int) int {
	return max(n, 1) + 1
}

func prevCurveWindow(n int) int {
	return max(n-1, 1)
}
