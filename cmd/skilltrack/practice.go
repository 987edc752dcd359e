package main

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/skilltrack/internal/calendar"
	"github.com/verte-zerg/skilltrack/internal/model"
	"github.com/verte-zerg/skilltrack/internal/quotes"
	"github.com/verte-zerg/skilltrack/internal/stats"
	"github.com/verte-zerg/skilltrack/internal/tui"
)

type practiceOptions struct {
	skill         string
	targetDivisor int
	minutes       int
}

func addPracticeFlags(cmd *cobra.Command, o *practiceOptions) {
	cmd.Flags().StringVar(&o.skill, "skill", "", "skill to practice (default: weakest skill this week)")
	cmd.Flags().IntVar(&o.targetDivisor, "target-divisor", defaultTargetDivisor, "timer target = today's planned minutes / divisor")
	cmd.Flags().IntVar(&o.minutes, "minutes", 0, "fixed timer target in minutes (overrides the plan)")
}

func newPracticeCmd() *cobra.Command {
	var opts practiceOptions
	cmd := &cobra.Command{
		Use:     "practice",
		Aliases: []string{"timer"},
		Short:   "Run the practice timer",
		Args:    cobra.NoArgs,
		RunE:    opts.run,
	}
	addPracticeFlags(cmd, &opts)
	return cmd
}

func (o *practiceOptions) run(cmd *cobra.Command, _ []string) error {
	applyStringConfig(cmd, "skill", &o.skill, fileCfg.Practice.Skill)
	applyIntConfig(cmd, "target-divisor", &o.targetDivisor, fileCfg.Practice.TargetDivisor)
	if o.targetDivisor < 1 {
		return fmt.Errorf("--target-divisor must be >= 1")
	}
	if o.minutes < 0 {
		return fmt.Errorf("--minutes must be >= 0")
	}

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

	var skill model.Skill
	if strings.TrimSpace(o.skill) != "" {
		skill, err = model.ParseSkill(o.skill)
		if err != nil {
			return err
		}
	} else {
		skill, err = svc.SuggestedSkill(ctx)
		if err != nil {
			return err
		}
	}

	var targets [model.SkillCount]time.Duration
	for _, s := range model.Skills {
		if o.minutes > 0 {
			targets[s] = time.Duration(o.minutes) * time.Minute
			continue
		}
		targets[s], err = svc.SessionTarget(ctx, s, o.targetDivisor)
		if err != nil {
			return err
		}
	}

	week, err := svc.CurrentWeek(ctx)
	if err != nil {
		return err
	}
	quote, _ := quotes.New().Pick()
	log.Debug().Str("skill", skill.String()).Dur("target", targets[skill]).Int("week", week.WeekNumber).Msg("starting practice timer")

	m := tui.NewModel(svc, tui.Options{
		Skill:   skill,
		Targets: targets,
		Goals:   p.Goals,
		Week:    week,
		Quote:   quote,
	})
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run timer TUI: %w", err)
	}

	saved := m.Saved()
	if len(saved) == 0 {
		return nil
	}
	if err := stats.RenderSessions(cmd.OutOrStdout(), saved); err != nil {
		return err
	}
	week, err = svc.CurrentWeek(ctx)
	if err != nil {
		return err
	}
	if err := printf(cmd, "\n"); err != nil {
		return err
	}
	return stats.RenderSkillTable(cmd.OutOrStdout(), week, p.Goals)
}

func newLogCmd() *cobra.Command {
	var (
		skillName string
		dayName   string
		minutes   int
	)
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Record practice minutes without the timer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			skill, err := model.ParseSkill(skillName)
			if err != nil {
				return err
			}
			day := calendar.Today(time.Now())
			if strings.TrimSpace(dayName) != "" {
				if day, err = model.ParseDay(dayName); err != nil {
					return err
				}
			}

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
			w, err := svc.LogMinutes(ctx, skill, day, minutes)
			if err != nil {
				return err
			}
			if err := printf(cmd, "Logged %s of %s on %s.\n\n", stats.FormatMinutes(minutes), skill, day); err != nil {
				return err
			}
			return stats.RenderSkillTable(cmd.OutOrStdout(), w, p.Goals)
		},
	}
	cmd.Flags().StringVar(&skillName, "skill", "", "skill name (required)")
	cmd.Flags().StringVar(&dayName, "day", "", "weekday (default: today)")
	cmd.Flags().IntVar(&minutes, "minutes", 0, "minutes practiced")
	_ = cmd.MarkFlagRequired("skill")
	_ = cmd.MarkFlagRequired("minutes")
	return cmd
}

