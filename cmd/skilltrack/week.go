package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/skilltrack/internal/calendar"
	"github.com/verte-zerg/skilltrack/internal/ledger"
	"github.com/verte-zerg/skilltrack/internal/model"
	"github.com/verte-zerg/skilltrack/internal/quotes"
	"github.com/verte-zerg/skilltrack/internal/stats"
	"github.com/verte-zerg/skilltrack/internal/statsui"
	"github.com/verte-zerg/skilltrack/internal/tracker"
)

func newWeekCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "week [number]",
		Short: "Show practiced minutes and success rates for a week (default: current)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeFn, err := openService()
			if err != nil {
				return err
			}
			defer closeFn()

			ctx := cmd.Context()
			p, err := svc.Profile(ctx)
			if err != nil {
				return notOnboardedHint(err)
			}
			var n int
			if len(args) == 0 {
				if _, err := svc.CurrentWeek(ctx); err != nil {
					return err
				}
				if n, err = svc.CurrentWeekNumber(ctx); err != nil {
					return err
				}
			} else if n, err = strconv.Atoi(args[0]); err != nil || n < 1 {
				return fmt.Errorf("invalid week number %q", args[0])
			}
			w, state, err := svc.Week(ctx, n)
			if err != nil {
				return err
			}

			if err := printf(cmd, "State: %s\n\n", state); err != nil {
				return err
			}
			if err := stats.RenderSkillTable(cmd.OutOrStdout(), w, p.Goals); err != nil {
				return err
			}
			if top := stats.TopSkillsByMinutes(ledger.SkillTotals(w.Practice), 3); len(top) > 0 {
				names := make([]string, len(top))
				for i, s := range top {
					names[i] = s.String()
				}
				if err := printf(cmd, "Most practiced: %s\n\n", strings.Join(names, ", ")); err != nil {
					return err
				}
			}
			if err := printReflection(cmd, w.Reflection); err != nil {
				return err
			}
			return printQuote(cmd, quotes.ForWeek(w.WeekNumber))
		},
	}
}

func printQuote(cmd *cobra.Command, q quotes.Quote) error {
	return printf(cmd, "\n%q\n%s\n- %s\n", q.Text, q.Translation, q.Author)
}

func printReflection(cmd *cobra.Command, r model.Reflection) error {
	if r.Stars == 0 {
		return printf(cmd, "No reflection yet.\n")
	}
	return printf(cmd, "Reflection\nHard work: %s\nOn track: %s\nMood: %s\nStars: %s\n",
		r.HardWork, r.OnTrack, r.Mood, strings.Repeat("*", r.Stars))
}

func newReflectCmd() *cobra.Command {
	var (
		r    model.Reflection
		week int
	)
	cmd := &cobra.Command{
		Use:   "reflect",
		Short: "Save the end-of-week reflection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := tracker.ValidateReflection(r); err != nil {
				return err
			}
			svc, closeFn, err := openService()
			if err != nil {
				return err
			}
			defer closeFn()
			w, err := svc.SaveReflection(cmd.Context(), week, r)
			if err != nil {
				return notOnboardedHint(err)
			}
			if err := printf(cmd, "Reflection saved for week %d.\n\n", w.WeekNumber); err != nil {
				return err
			}
			return printReflection(cmd, w.Reflection)
		},
	}
	cmd.Flags().StringVar(&r.HardWork, "hard-work", "", "how hard did you work this week")
	cmd.Flags().StringVar(&r.OnTrack, "on-track", "", "did you stay on track")
	cmd.Flags().StringVar(&r.Mood, "mood", "", "how did the week feel")
	cmd.Flags().IntVar(&r.Stars, "stars", 0, "overall rating (1-5)")
	cmd.Flags().IntVar(&week, "week", 0, "week number (default: current)")
	return cmd
}

func newStatsCmd() *cobra.Command {
	var (
		cfg    model.StatsConfig
		useTUI bool
	)
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show weekly history and success trends",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			applyIntConfig(cmd, "last", &cfg.Last, fileCfg.Stats.Last)
			applyIntConfig(cmd, "curve-window", &cfg.CurveWindow, fileCfg.Stats.CurveWindow)
			if cfg.Last < 0 {
				return fmt.Errorf("--last must be >= 0")
			}
			if cfg.CurveWindow < 1 {
				return fmt.Errorf("--curve-window must be >= 1")
			}

			st, closeFn, err := openStore()
			if err != nil {
				return err
			}
			defer closeFn()

			ctx := cmd.Context()
			// Make sure the current week is on record before reading history.
			if _, err := tracker.New(st, calendar.SystemClock{}).CurrentWeek(ctx); err != nil {
				return notOnboardedHint(err)
			}

			if useTUI {
				m := statsui.NewModel(func(ctx context.Context, c model.StatsConfig) (stats.Report, error) {
					return stats.BuildReport(ctx, st, c)
				}, cfg)
				program := tea.NewProgram(m, tea.WithAltScreen())
				if _, err := program.Run(); err != nil {
					return fmt.Errorf("failed to run stats TUI: %w", err)
				}
				return nil
			}

			report, err := stats.BuildReport(ctx, st, cfg)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if err := stats.RenderSummary(out, report.Progress); err != nil {
				return err
			}
			if err := stats.RenderWeekTable(out, report.Weeks, cfg.CurveWindow); err != nil {
				return err
			}
			if len(report.Weeks) > 0 {
				latest := report.Weeks[len(report.Weeks)-1]
				bars := make([]stats.Bar, 0, model.SkillCount)
				for _, s := range model.Skills {
					bars = append(bars, stats.Bar{Label: s.String(), Value: latest.SuccessRates.Get(s)})
				}
				title := fmt.Sprintf("Week %d success", latest.WeekNumber)
				if err := stats.RenderBars(out, title, bars, 0); err != nil {
					return err
				}
			}
			return stats.RenderSessions(out, report.Sessions)
		},
	}
	cmd.Flags().IntVar(&cfg.Last, "last", 0, "only show the last N weeks (0 = all)")
	cmd.Flags().IntVar(&cfg.CurveWindow, "curve-window", defaultCurveWindow, "moving average window for the trend line")
	cmd.Flags().BoolVar(&useTUI, "tui", false, "open the interactive dashboard")
	return cmd
}

func newMotivationCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "motivation [label]",
		Short: "Show or set the current motivation (" + strings.Join(model.MotivationLevels, ", ") + ")",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeFn, err := openService()
			if err != nil {
				return err
			}
			defer closeFn()

			ctx := cmd.Context()
			if len(args) == 1 {
				if err := svc.SetMotivation(ctx, args[0]); err != nil {
					return err
				}
				return printf(cmd, "Motivation set to %s.\n", args[0])
			}
			p, err := svc.Progress(ctx)
			if err != nil {
				return err
			}
			if err := printf(cmd, "Motivation: %s\n", p.CurrentMotivation); err != nil {
				return err
			}
			q, ok := quotes.New().Pick()
			if !ok {
				return nil
			}
			return printQuote(cmd, q)
		},
	}
}
