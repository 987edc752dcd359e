package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/skilltrack/internal/model"
	"github.com/verte-zerg/skilltrack/internal/plan"
	"github.com/verte-zerg/skilltrack/internal/planio"
	"github.com/verte-zerg/skilltrack/internal/planui"
	"github.com/verte-zerg/skilltrack/internal/stats"
	"github.com/verte-zerg/skilltrack/internal/tracker"
)

func newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the weekly schedule plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, closeFn, err := openService()
			if err != nil {
				return err
			}
			defer closeFn()
			p, err := svc.Profile(cmd.Context())
			if err != nil {
				return notOnboardedHint(err)
			}
			return stats.RenderPlan(cmd.OutOrStdout(), p.Plan, p.Goals)
		},
	}
	cmd.AddCommand(newPlanEditCmd())
	cmd.AddCommand(newPlanResetCmd())
	cmd.AddCommand(newPlanAutoCmd())
	cmd.AddCommand(newPlanSetCmd())
	cmd.AddCommand(newPlanCheckCmd())
	cmd.AddCommand(newPlanExportCmd())
	cmd.AddCommand(newPlanImportCmd())
	return cmd
}

func newPlanEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Edit the plan interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, closeFn, err := openService()
			if err != nil {
				return err
			}
			defer closeFn()
			p, err := svc.Profile(cmd.Context())
			if err != nil {
				return notOnboardedHint(err)
			}

			m := planui.NewModel(svc, p.Goals, p.Plan, plan.GenerateDefaultPlan(p.Allocation, p.Budget))
			program := tea.NewProgram(m, tea.WithAltScreen())
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("failed to run plan TUI: %w", err)
			}
			if !m.Saved() {
				return printf(cmd, "Plan not saved.\n")
			}
			if err := printf(cmd, "Plan saved.\n\n"); err != nil {
				return err
			}
			return stats.RenderPlan(cmd.OutOrStdout(), m.Plan(), p.Goals)
		},
	}
}

func newPlanResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Replace the plan with the default one for the current budget",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, closeFn, err := openService()
			if err != nil {
				return err
			}
			defer closeFn()
			ctx := cmd.Context()
			pl, err := svc.ResetPlan(ctx)
			if err != nil {
				return notOnboardedHint(err)
			}
			p, err := svc.Profile(ctx)
			if err != nil {
				return err
			}
			return stats.RenderPlan(cmd.OutOrStdout(), pl, p.Goals)
		},
	}
}

func newPlanAutoCmd() *cobra.Command {
	var skillName string
	cmd := &cobra.Command{
		Use:   "auto",
		Short: "Spread one skill's weekly goal over all seven days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			skill, err := model.ParseSkill(skillName)
			if err != nil {
				return err
			}
			svc, closeFn, err := openService()
			if err != nil {
				return err
			}
			defer closeFn()
			pl, err := svc.AutoDistribute(cmd.Context(), skill)
			return reportPlanEdit(cmd, svc, pl, err)
		},
	}
	cmd.Flags().StringVar(&skillName, "skill", "", "skill name (required)")
	_ = cmd.MarkFlagRequired("skill")
	return cmd
}

func newPlanSetCmd() *cobra.Command {
	var cells []string
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set planned minutes (0-120) for one or more day/skill cells",
		Long: "Set planned minutes for day/skill cells. Every --cell is applied before the plan is\n" +
			"checked, so minutes can be moved between days in one call:\n\n" +
			"  skilltrack plan set --cell monday:listening=0 --cell friday:listening=4",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			edits := make([]plan.CellEdit, 0, len(cells))
			for _, c := range cells {
				e, err := plan.ParseCellEdit(c)
				if err != nil {
					return err
				}
				if e.Minutes > plan.MaxCellMinutes {
					if err := printf(cmd, "%s %s capped at %d min.\n", e.Day, e.Skill, plan.MaxCellMinutes); err != nil {
						return err
					}
				}
				edits = append(edits, e)
			}
			svc, closeFn, err := openService()
			if err != nil {
				return err
			}
			defer closeFn()
			pl, err := svc.SetCells(cmd.Context(), edits)
			return reportPlanEdit(cmd, svc, pl, err)
		},
	}
	cmd.Flags().StringArrayVar(&cells, "cell", nil, "day:skill=minutes, repeatable (required)")
	_ = cmd.MarkFlagRequired("cell")
	return cmd
}

// reportPlanEdit prints an edited plan. An incomplete plan is printed with its deltas and
// the error is returned so the exit status shows nothing was stored.
func reportPlanEdit(cmd *cobra.Command, svc *tracker.Service, pl model.WeeklySchedulePlan, editErr error) error {
	if editErr != nil && !errors.Is(editErr, tracker.ErrIncompletePlan) {
		return notOnboardedHint(editErr)
	}
	p, err := svc.Profile(cmd.Context())
	if err != nil {
		return err
	}
	if err := stats.RenderPlan(cmd.OutOrStdout(), pl, p.Goals); err != nil {
		return err
	}
	if editErr != nil {
		return fmt.Errorf("%w; plan not saved", editErr)
	}
	return printf(cmd, "\nPlan saved.\n")
}

func newPlanCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report skills whose planned total differs from the weekly goal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, closeFn, err := openService()
			if err != nil {
				return err
			}
			defer closeFn()
			p, err := svc.Profile(cmd.Context())
			if err != nil {
				return notOnboardedHint(err)
			}
			if err := plan.Check(p.Plan, p.Goals); err != nil {
				return err
			}
			return printf(cmd, "Plan complete: every skill matches its weekly goal.\n")
		},
	}
}

func newPlanExportCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Write the plan and goals as YAML or JSON (stdout when no file is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeFn, err := openService()
			if err != nil {
				return err
			}
			defer closeFn()
			p, err := svc.Profile(cmd.Context())
			if err != nil {
				return notOnboardedHint(err)
			}

			f := planio.Format(format)
			if len(args) == 0 {
				if f == "" {
					f = planio.FormatYAML
				}
				return planio.Write(cmd.OutOrStdout(), f, p.Plan, p.Goals)
			}
			if f == "" {
				f = planio.FormatForPath(args[0])
			}
			out, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", args[0], err)
			}
			if err := planio.Write(out, f, p.Plan, p.Goals); err != nil {
				_ = out.Close()
				return err
			}
			if err := out.Close(); err != nil {
				return fmt.Errorf("failed to close %s: %w", args[0], err)
			}
			return printf(cmd, "Plan written to %s.\n", args[0])
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "yaml or json (default: from file extension)")
	return cmd
}

func newPlanImportCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Load a plan from a YAML or JSON file; it must match the current goals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := planio.Format(format)
			if f == "" {
				f = planio.FormatForPath(args[0])
			}
			in, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer func() { _ = in.Close() }()
			pl, err := planio.Read(in, f)
			if err != nil {
				return err
			}

			svc, closeFn, err := openService()
			if err != nil {
				return err
			}
			defer closeFn()
			return reportPlanEdit(cmd, svc, pl, svc.SavePlan(cmd.Context(), pl))
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "yaml or json (default: from file extension)")
	return cmd
}
