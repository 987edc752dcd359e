// Package stats computes success rates and progress aggregates and renders them as text.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/verte-zerg/skilltrack/internal/ledger"
	"github.com/verte-zerg/skilltrack/internal/model"
	"github.com/verte-zerg/skilltrack/internal/plan"
)

const sparkChars = " .:-=+*#%@"

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// FormatMinutes renders minutes as "N min", "N hr" or "N hr M min".
func FormatMinutes(minutes int) string {
	hours := minutes / 60
	mins := minutes % 60
	switch {
	case hours == 0:
		return fmt.Sprintf("%d min", mins)
	case mins == 0:
		return fmt.Sprintf("%d hr", hours)
	default:
		return fmt.Sprintf("%d hr %d min", hours, mins)
	}
}

func percent(rate float64) string {
	return fmt.Sprintf("%.0f%%", rate*100)
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderSummary prints the progress aggregate.
func RenderSummary(w io.Writer, p model.ProgressData) error {
	if len(p.WeeklyHistory) == 0 {
		_, err := fmt.Fprintln(w, "No weeks recorded yet.")
		return err
	}
	lines := []string{
		"Summary",
		fmt.Sprintf("Weeks: %d", len(p.WeeklyHistory)),
		fmt.Sprintf("Total practice: %s (%d h)", FormatMinutes(p.TotalMinutes), p.TotalHours),
		fmt.Sprintf("Avg success: %s", percent(p.AverageSuccessRate)),
		fmt.Sprintf("Motivation: %s", p.CurrentMotivation),
	}
	return writeLines(w, lines)
}

// RenderWeekTable prints one row per week with minutes, average success and a trend sparkline.
func RenderWeekTable(w io.Writer, history []model.WeeklyData, window int) error {
	if len(history) == 0 {
		return nil
	}
	avgs := make([]float64, len(history))
	rows := make([][]string, 0, len(history))
	for i, wk := range history {
		avgs[i] = AverageSuccessRate(wk.SuccessRates)
		rows = append(rows, []string{
			fmt.Sprintf("%d", wk.WeekNumber),
			fmt.Sprintf("%s..%s", wk.DateRange.Start, wk.DateRange.End),
			FormatMinutes(ledger.TotalForWeek(wk.Practice)),
			percent(avgs[i]),
			starLabel(wk.Reflection.Stars),
		})
	}
	headers := []string{"Week", "Dates", "Practiced", "Success", "Stars"}
	lines := append([]string{"Weekly History"}, formatTable(headers, rows, map[int]bool{0: true, 2: true, 3: true})...)
	lines = append(lines, "Trend: "+Sparkline(MovingAverage(avgs, window)))
	return writeLines(w, lines)
}

func starLabel(stars int) string {
	if stars <= 0 {
		return "-"
	}
	return strings.Repeat("*", min(stars, 5))
}

// RenderSkillTable prints practiced vs goal minutes and the success rate for each skill.
func RenderSkillTable(w io.Writer, wk model.WeeklyData, g model.WeeklyGoals) error {
	totals := ledger.SkillTotals(wk.Practice)
	rows := make([][]string, 0, model.SkillCount)
	for _, s := range model.Skills {
		rows = append(rows, []string{
			s.String(),
			fmt.Sprintf("%d", totals.Get(s)),
			fmt.Sprintf("%d", g.Get(s)),
			percent(wk.SuccessRates.Get(s)),
		})
	}
	headers := []string{"Skill", "Practiced", "Goal", "Success"}
	title := fmt.Sprintf("Week %d (%s..%s)", wk.WeekNumber, wk.DateRange.Start, wk.DateRange.End)
	lines := append([]string{title}, formatTable(headers, rows, map[int]bool{1: true, 2: true, 3: true})...)
	lines = append(lines, fmt.Sprintf("Average: %s", percent(AverageSuccessRate(wk.SuccessRates))))
	return writeLines(w, lines)
}

// RenderPlan prints the day-by-skill grid with per-skill totals against goals.
func RenderPlan(w io.Writer, p model.WeeklySchedulePlan, g model.WeeklyGoals) error {
	headers := []string{"Skill"}
	for _, d := range model.Days {
		headers = append(headers, d.Short())
	}
	headers = append(headers, "Total", "Goal", "Status")
	right := map[int]bool{}
	for i := 1; i <= model.DayCount+2; i++ {
		right[i] = true
	}

	rows := make([][]string, 0, model.SkillCount+1)
	for _, s := range model.Skills {
		row := []string{s.String()}
		for _, d := range model.Days {
			row = append(row, fmt.Sprintf("%d", p.Get(d, s)))
		}
		total := plan.SkillTotal(p, s)
		row = append(row, fmt.Sprintf("%d", total), fmt.Sprintf("%d", g.Get(s)), deltaLabel(total-g.Get(s)))
		rows = append(rows, row)
	}
	daily := []string{"daily"}
	grand := 0
	for _, d := range model.Days {
		daily = append(daily, fmt.Sprintf("%d", p.DayTotal(d)))
		grand += p.DayTotal(d)
	}
	daily = append(daily, fmt.Sprintf("%d", grand), fmt.Sprintf("%d", g.Sum()))
	rows = append(rows, daily)
	return writeLines(w, formatTable(headers, rows, right))
}

func deltaLabel(delta int) string {
	switch {
	case delta == 0:
		return "ok"
	case delta < 0:
		return fmt.Sprintf("%d min missing", -delta)
	default:
		return fmt.Sprintf("%d min over", delta)
	}
}

// RenderSessions prints the session log, newest first as given.
func RenderSessions(w io.Writer, sessions []model.SessionRecord) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions recorded yet.")
		return err
	}
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, []string{
			s.EndedAt.Local().Format("2006-01-02 15:04"),
			fmt.Sprintf("%d", s.WeekNumber),
			s.Day.Short(),
			s.Skill.String(),
			FormatMinutes(s.Minutes),
		})
	}
	headers := []string{"Ended", "Week", "Day", "Skill", "Minutes"}
	lines := append([]string{"Recent Sessions"}, formatTable(headers, rows, map[int]bool{1: true, 4: true})...)
	return writeLines(w, lines)
}
