package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/skilltrack/internal/goals"
	"github.com/verte-zerg/skilltrack/internal/model"
	"github.com/verte-zerg/skilltrack/internal/stats"
)

var (
	initBudget     model.TimeBudget
	initAllocation model.SkillAllocation

	editBudget     model.TimeBudget
	editAllocation model.SkillAllocation
)

func addBudgetFlags(cmd *cobra.Command, target *model.TimeBudget) {
	cmd.Flags().IntVar(&target.DaysPerWeek, "days", defaultDaysPerWeek, "study days per week (1-7)")
	cmd.Flags().IntVar(&target.MinutesPerDay, "minutes", defaultMinutesPerDay, "minutes per study day (1-240)")
}

func addAllocationFlags(cmd *cobra.Command, target *model.SkillAllocation, defaults model.SkillAllocation) {
	for _, s := range model.Skills {
		cmd.Flags().IntVar(&target[s], s.String(), defaults[s], fmt.Sprintf("%s share in percent", s))
	}
}

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "init",
		Aliases: []string{"onboarding"},
		Short:   "Create the study profile: skill priorities and weekly time budget",
		Args:    cobra.NoArgs,
		RunE:    runInitCmd,
	}
	addBudgetFlags(cmd, &initBudget)
	addAllocationFlags(cmd, &initAllocation, defaultAllocation)
	return cmd
}

func runInitCmd(cmd *cobra.Command, _ []string) error {
	ob := fileCfg.Onboarding
	applyIntConfig(cmd, "days", &initBudget.DaysPerWeek, ob.DaysPerWeek)
	applyIntConfig(cmd, "minutes", &initBudget.MinutesPerDay, ob.MinutesPerDay)
	for s, v := range map[model.Skill]*int{
		model.Listening:     ob.Listening,
		model.Reading:       ob.Reading,
		model.Writing:       ob.Writing,
		model.Speaking:      ob.Speaking,
		model.Fluency:       ob.Fluency,
		model.Pronunciation: ob.Pronunciation,
	} {
		applyIntConfig(cmd, s.String(), &initAllocation[s], v)
	}

	svc, closeFn, err := openService()
	if err != nil {
		return err
	}
	defer closeFn()

	ctx := cmd.Context()
	onboarded, err := svc.Onboarded(ctx)
	if err != nil {
		return err
	}
	if onboarded {
		return fmt.Errorf("profile already exists; use 'skilltrack budget' or 'skilltrack allocation' to change it, or 'skilltrack reset --yes'")
	}
	p, err := svc.Onboard(ctx, initAllocation, initBudget)
	if err != nil {
		return err
	}
	if err := printf(cmd, "Profile created. Week 1 starts %s.\n\n", p.StartDate); err != nil {
		return err
	}
	if err := printProfile(cmd, p); err != nil {
		return err
	}
	return stats.RenderPlan(cmd.OutOrStdout(), p.Plan, p.Goals)
}

func printProfile(cmd *cobra.Command, p model.UserProfile) error {
	proj := goals.Project(p.Budget)
	lines := []string{
		fmt.Sprintf("Budget: %d days × %d min", p.Budget.DaysPerWeek, p.Budget.MinutesPerDay),
		fmt.Sprintf("Weekly: %s  Monthly: ~%d hr  Yearly: ~%d hr",
			stats.FormatMinutes(proj.WeeklyMinutes), proj.MonthlyHours, proj.YearlyHours),
	}
	parts := make([]string, 0, model.SkillCount)
	for _, s := range model.Skills {
		parts = append(parts, fmt.Sprintf("%s %d%%", s, p.Allocation.Get(s)))
	}
	lines = append(lines, "Allocation: "+strings.Join(parts, ", "))
	if err := printf(cmd, "%s\n\n", strings.Join(lines, "\n")); err != nil {
		return err
	}

	bars := make([]stats.Bar, 0, model.SkillCount)
	for _, s := range model.Skills {
		bars = append(bars, stats.Bar{Label: fmt.Sprintf("%s %d", s, p.Goals.Get(s)), Value: float64(p.Allocation.Get(s)) / 100})
	}
	return stats.RenderBars(cmd.OutOrStdout(), "Weekly goals (min)", bars, 0)
}

func newGoalsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "goals",
		Short: "Show the time budget, skill allocation and weekly goals",
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
			return printProfile(cmd, p)
		},
	}
}

func newBudgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Change the weekly time budget; goals and the default plan are recomputed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, closeFn, err := openService()
			if err != nil {
				return err
			}
			defer closeFn()
			ctx := cmd.Context()
			current, err := svc.Profile(ctx)
			if err != nil {
				return notOnboardedHint(err)
			}
			b := current.Budget
			if cmd.Flags().Changed("days") {
				b.DaysPerWeek = editBudget.DaysPerWeek
			}
			if cmd.Flags().Changed("minutes") {
				b.MinutesPerDay = editBudget.MinutesPerDay
			}
			p, err := svc.EditBudget(ctx, b)
			if err != nil {
				return err
			}
			if err := printProfile(cmd, p); err != nil {
				return err
			}
			return stats.RenderPlan(cmd.OutOrStdout(), p.Plan, p.Goals)
		},
	}
	addBudgetFlags(cmd, &editBudget)
	return cmd
}

func newAllocationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "allocation",
		Short: "Change skill percentages; goals and the default plan are recomputed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, closeFn, err := openService()
			if err != nil {
				return err
			}
			defer closeFn()
			ctx := cmd.Context()
			current, err := svc.Profile(ctx)
			if err != nil {
				return notOnboardedHint(err)
			}
			a := current.Allocation
			for _, s := range model.Skills {
				if cmd.Flags().Changed(s.String()) {
					a[s] = editAllocation[s]
				}
			}
			p, err := svc.EditAllocation(ctx, a)
			if err != nil {
				return err
			}
			if err := printProfile(cmd, p); err != nil {
				return err
			}
			return stats.RenderPlan(cmd.OutOrStdout(), p.Plan, p.Goals)
		},
	}
	addAllocationFlags(cmd, &editAllocation, model.SkillAllocation{})
	return cmd
}
