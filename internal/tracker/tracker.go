// Package tracker orchestrates onboarding, weekly records, practice sessions and plans on top of the store.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/verte-zerg/skilltrack/internal/calendar"
	"github.com/verte-zerg/skilltrack/internal/goals"
	"github.com/verte-zerg/skilltrack/internal/ledger"
	"github.com/verte-zerg/skilltrack/internal/model"
	"github.com/verte-zerg/skilltrack/internal/plan"
	"github.com/verte-zerg/skilltrack/internal/stats"
	"github.com/verte-zerg/skilltrack/internal/store"
	"github.com/verte-zerg/skilltrack/internal/timer"
)

var (
	// ErrNotOnboarded is returned when an operation needs a profile that does not exist yet.
	ErrNotOnboarded = errors.New("onboarding not completed")
	// ErrInvalidAllocation is returned when percentages are negative or do not sum to 100.
	ErrInvalidAllocation = errors.New("invalid skill allocation")
	// ErrInvalidBudget is returned when days or minutes fall outside the accepted range.
	ErrInvalidBudget = errors.New("invalid time budget")
	// ErrIncompletePlan is returned when a plan's skill totals do not match the goals.
	ErrIncompletePlan = errors.New("incomplete plan")
	// ErrSessionTooShort is returned for sessions under a minute.
	ErrSessionTooShort = errors.New("session too short")
	// ErrInvalidMinutes is returned for negative manual entries.
	ErrInvalidMinutes = errors.New("invalid minutes")
	// ErrInvalidReflection is returned when a reflection is missing answers or has stars outside 1..5.
	ErrInvalidReflection = errors.New("invalid reflection")
	// ErrInvalidMotivation is returned for labels outside model.MotivationLevels.
	ErrInvalidMotivation = errors.New("invalid motivation")
)

// Service runs tracker operations against a store.
type Service struct {
	store *store.Store
	clock calendar.Clock
	newID func() string
}

// New returns a Service. A nil clock uses the system clock.
func New(st *store.Store, clock calendar.Clock) *Service {
	if clock == nil {
		clock = calendar.SystemClock{}
	}
	return &Service{store: st, clock: clock, newID: uuid.NewString}
}

// Onboarded reports whether a profile exists.
func (s *Service) Onboarded(ctx context.Context) (bool, error) {
	return s.store.IsOnboarded(ctx)
}

// Onboard validates the inputs, derives goals and the default plan, and stores the profile.
// The start date is today's date.
func (s *Service) Onboard(ctx context.Context, a model.SkillAllocation, b model.TimeBudget) (model.UserProfile, error) {
	if err := validate(a, b); err != nil {
		return model.UserProfile{}, err
	}
	p := model.UserProfile{
		Allocation: a,
		Budget:     b,
		StartDate:  calendar.FormatDate(s.clock.Now()),
		Goals:      goals.ComputeWeeklyGoals(a, b),
		Plan:       plan.GenerateDefaultPlan(a, b),
	}
	if err := s.store.CompleteOnboarding(ctx, p); err != nil {
		return model.UserProfile{}, fmt.Errorf("failed to save profile: %w", err)
	}
	log.Debug().Str("start", p.StartDate).Int("weekly_minutes", b.WeeklyMinutes()).Msg("onboarding completed")
	return p, nil
}

func validate(a model.SkillAllocation, b model.TimeBudget) error {
	if err := goals.AllocationError(a); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAllocation, err)
	}
	if err := goals.ValidateBudget(b); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBudget, err)
	}
	return nil
}

// Profile loads the stored profile, or ErrNotOnboarded.
func (s *Service) Profile(ctx context.Context) (model.UserProfile, error) {
	p, err := s.store.GetProfile(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return model.UserProfile{}, ErrNotOnboarded
	}
	if err != nil {
		return model.UserProfile{}, fmt.Errorf("failed to load profile: %w", err)
	}
	return p, nil
}

// CurrentWeekNumber returns the week number for the clock's current time.
func (s *Service) CurrentWeekNumber(ctx context.Context) (int, error) {
	p, err := s.Profile(ctx)
	if err != nil {
		return 0, err
	}
	return calendar.WeekNumber(p.StartDate, s.clock.Now())
}

// CurrentWeek returns the record for the current week, creating and storing an empty one
// the first time the week is touched.
func (s *Service) CurrentWeek(ctx context.Context) (model.WeeklyData, error) {
	p, err := s.Profile(ctx)
	if err != nil {
		return model.WeeklyData{}, err
	}
	return s.currentWeek(ctx, p)
}

func (s *Service) currentWeek(ctx context.Context, p model.UserProfile) (model.WeeklyData, error) {
	n, err := calendar.WeekNumber(p.StartDate, s.clock.Now())
	if err != nil {
		return model.WeeklyData{}, err
	}
	w, err := s.store.GetWeek(ctx, n)
	if err == nil {
		return w, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return model.WeeklyData{}, fmt.Errorf("failed to load week %d: %w", n, err)
	}
	w, err = calendar.NewWeek(n, p.StartDate)
	if err != nil {
		return model.WeeklyData{}, err
	}
	progress, err := s.progressWith(ctx, &w)
	if err != nil {
		return model.WeeklyData{}, err
	}
	if err := s.store.SaveWeek(ctx, w, &progress); err != nil {
		return model.WeeklyData{}, fmt.Errorf("failed to initialize week %d: %w", n, err)
	}
	log.Debug().Int("week", n).Str("start", w.DateRange.Start).Msg("week initialized")
	return w, nil
}

// Week returns a stored week together with its lifecycle state relative to the current week.
// Weeks that were never touched come back as an empty record in StatePending.
func (s *Service) Week(ctx context.Context, weekNumber int) (model.WeeklyData, calendar.State, error) {
	p, err := s.Profile(ctx)
	if err != nil {
		return model.WeeklyData{}, calendar.StatePending, err
	}
	current, err := calendar.WeekNumber(p.StartDate, s.clock.Now())
	if err != nil {
		return model.WeeklyData{}, calendar.StatePending, err
	}
	w, err := s.store.GetWeek(ctx, weekNumber)
	if errors.Is(err, store.ErrNotFound) {
		empty, err := calendar.NewWeek(weekNumber, p.StartDate)
		return empty, calendar.StatePending, err
	}
	if err != nil {
		return model.WeeklyData{}, calendar.StatePending, fmt.Errorf("failed to load week %d: %w", weekNumber, err)
	}
	return w, calendar.StateOf(&w, current), nil
}

// RecordSession stores a timed session for today: whole minutes are merged into the current week,
// success rates are recomputed and the session is appended to the session log.
func (s *Service) RecordSession(ctx context.Context, skill model.Skill, elapsed time.Duration) (model.SessionRecord, model.WeeklyData, error) {
	seconds := int64(elapsed / time.Second)
	if !ledger.Savable(seconds) {
		return model.SessionRecord{}, model.WeeklyData{}, fmt.Errorf("%w: %ds < %ds", ErrSessionTooShort, seconds, ledger.MinSessionSeconds)
	}
	now := s.clock.Now()
	return s.addMinutes(ctx, skill, calendar.Today(now), ledger.MinutesFromElapsed(seconds), now.Add(-elapsed), now)
}

// LogMinutes merges manually entered minutes into a day of the current week.
func (s *Service) LogMinutes(ctx context.Context, skill model.Skill, day model.Day, minutes int) (model.WeeklyData, error) {
	if minutes < 0 {
		return model.WeeklyData{}, fmt.Errorf("%w: %d", ErrInvalidMinutes, minutes)
	}
	if !day.Valid() {
		return model.WeeklyData{}, fmt.Errorf("invalid day %d", int(day))
	}
	now := s.clock.Now()
	_, w, err := s.addMinutes(ctx, skill, day, minutes, now.Add(-time.Duration(minutes)*time.Minute), now)
	return w, err
}

func (s *Service) addMinutes(ctx context.Context, skill model.Skill, day model.Day, minutes int, startedAt, endedAt time.Time) (model.SessionRecord, model.WeeklyData, error) {
	if !skill.Valid() {
		return model.SessionRecord{}, model.WeeklyData{}, fmt.Errorf("invalid skill %d", int(skill))
	}
	p, err := s.Profile(ctx)
	if err != nil {
		return model.SessionRecord{}, model.WeeklyData{}, err
	}
	w, err := s.currentWeek(ctx, p)
	if err != nil {
		return model.SessionRecord{}, model.WeeklyData{}, err
	}
	if minutes == 0 {
		return model.SessionRecord{}, w, nil
	}

	w.Practice = ledger.MergeIntoWeek(w.Practice, day, skill, minutes)
	w.SuccessRates = stats.ComputeSuccessRates(w.Practice, p.Goals)
	rec := model.SessionRecord{
		ID:         s.newID(),
		Skill:      skill,
		Day:        day,
		WeekNumber: w.WeekNumber,
		Minutes:    minutes,
		StartedAt:  startedAt,
		EndedAt:    endedAt,
	}
	progress, err := s.progressWith(ctx, &w)
	if err != nil {
		return model.SessionRecord{}, model.WeeklyData{}, err
	}
	if err := s.store.SaveSession(ctx, w, rec, &progress); err != nil {
		return model.SessionRecord{}, model.WeeklyData{}, fmt.Errorf("failed to save session: %w", err)
	}
	log.Debug().
		Int("week", w.WeekNumber).
		Str("day", day.String()).
		Str("skill", skill.String()).
		Int("minutes", minutes).
		Msg("practice recorded")
	return rec, w, nil
}

// SavePlan stores a plan after checking that it matches the weekly goals.
func (s *Service) SavePlan(ctx context.Context, pl model.WeeklySchedulePlan) error {
	p, err := s.Profile(ctx)
	if err != nil {
		return err
	}
	if err := plan.Check(pl, p.Goals); err != nil {
		return fmt.Errorf("%w: %w", ErrIncompletePlan, err)
	}
	p.Plan = pl
	if err := s.store.SaveProfile(ctx, p); err != nil {
		return fmt.Errorf("failed to save plan: %w", err)
	}
	log.Debug().Int("planned_minutes", p.Goals.Sum()).Msg("plan saved")
	return nil
}

// ResetPlan replaces the plan with the default one for the current budget.
func (s *Service) ResetPlan(ctx context.Context) (model.WeeklySchedulePlan, error) {
	p, err := s.Profile(ctx)
	if err != nil {
		return model.WeeklySchedulePlan{}, err
	}
	p.Plan = plan.GenerateDefaultPlan(p.Allocation, p.Budget)
	if err := s.store.SaveProfile(ctx, p); err != nil {
		return model.WeeklySchedulePlan{}, fmt.Errorf("failed to save plan: %w", err)
	}
	return p.Plan, nil
}

// SetCells applies every edit and stores the result when the plan is complete afterwards.
// Completeness is checked once, so minutes can move between cells in a single call.
// The edited plan is returned either way so callers can show the deltas.
func (s *Service) SetCells(ctx context.Context, edits []plan.CellEdit) (model.WeeklySchedulePlan, error) {
	p, err := s.Profile(ctx)
	if err != nil {
		return model.WeeklySchedulePlan{}, err
	}
	next := plan.ApplyEdits(p.Plan, edits)
	return next, s.SavePlan(ctx, next)
}

// AutoDistribute spreads a skill's goal over all seven days and stores the plan when it is complete.
func (s *Service) AutoDistribute(ctx context.Context, skill model.Skill) (model.WeeklySchedulePlan, error) {
	p, err := s.Profile(ctx)
	if err != nil {
		return model.WeeklySchedulePlan{}, err
	}
	next := plan.AutoDistributeSkill(p.Plan, skill, p.Goals)
	return next, s.SavePlan(ctx, next)
}

// EditBudget replaces the time budget. Goals and the default plan are regenerated and
// the current week's success rates are recomputed against the new goals.
func (s *Service) EditBudget(ctx context.Context, b model.TimeBudget) (model.UserProfile, error) {
	p, err := s.Profile(ctx)
	if err != nil {
		return model.UserProfile{}, err
	}
	return s.reconfigure(ctx, p, p.Allocation, b)
}

// EditAllocation replaces the skill percentages, with the same effects as EditBudget.
func (s *Service) EditAllocation(ctx context.Context, a model.SkillAllocation) (model.UserProfile, error) {
	p, err := s.Profile(ctx)
	if err != nil {
		return model.UserProfile{}, err
	}
	return s.reconfigure(ctx, p, a, p.Budget)
}

func (s *Service) reconfigure(ctx context.Context, p model.UserProfile, a model.SkillAllocation, b model.TimeBudget) (model.UserProfile, error) {
	if err := validate(a, b); err != nil {
		return model.UserProfile{}, err
	}
	p.Allocation = a
	p.Budget = b
	p.Goals = goals.ComputeWeeklyGoals(a, b)
	p.Plan = plan.GenerateDefaultPlan(a, b)

	n, err := calendar.WeekNumber(p.StartDate, s.clock.Now())
	if err != nil {
		return model.UserProfile{}, err
	}
	var week *model.WeeklyData
	w, err := s.store.GetWeek(ctx, n)
	switch {
	case err == nil:
		w.SuccessRates = stats.ComputeSuccessRates(w.Practice, p.Goals)
		week = &w
	case !errors.Is(err, store.ErrNotFound):
		return model.UserProfile{}, fmt.Errorf("failed to load week %d: %w", n, err)
	}
	progress, err := s.progressWith(ctx, week)
	if err != nil {
		return model.UserProfile{}, err
	}
	if err := s.store.SaveProfileAndWeek(ctx, p, week, &progress); err != nil {
		return model.UserProfile{}, fmt.Errorf("failed to save profile: %w", err)
	}
	log.Debug().Int("week", n).Int("weekly_minutes", b.WeeklyMinutes()).Msg("goals recomputed")
	return p, nil
}

// ValidateReflection checks that every answer is present and stars are within 1..5.
func ValidateReflection(r model.Reflection) error {
	var missing []string
	if strings.TrimSpace(r.HardWork) == "" {
		missing = append(missing, "hard work")
	}
	if strings.TrimSpace(r.OnTrack) == "" {
		missing = append(missing, "on track")
	}
	if strings.TrimSpace(r.Mood) == "" {
		missing = append(missing, "mood")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidReflection, strings.Join(missing, ", "))
	}
	if r.Stars < 1 || r.Stars > 5 {
		return fmt.Errorf("%w: stars must be between 1 and 5, got %d", ErrInvalidReflection, r.Stars)
	}
	return nil
}

// SaveReflection attaches a reflection to a week. Week 0 means the current week.
func (s *Service) SaveReflection(ctx context.Context, weekNumber int, r model.Reflection) (model.WeeklyData, error) {
	if err := ValidateReflection(r); err != nil {
		return model.WeeklyData{}, err
	}
	p, err := s.Profile(ctx)
	if err != nil {
		return model.WeeklyData{}, err
	}
	var w model.WeeklyData
	if weekNumber <= 0 {
		w, err = s.currentWeek(ctx, p)
	} else {
		w, err = s.store.GetWeek(ctx, weekNumber)
		if errors.Is(err, store.ErrNotFound) {
			return model.WeeklyData{}, fmt.Errorf("week %d has no record: %w", weekNumber, err)
		}
	}
	if err != nil {
		return model.WeeklyData{}, err
	}
	w.Reflection = r
	progress, err := s.progressWith(ctx, &w)
	if err != nil {
		return model.WeeklyData{}, err
	}
	if err := s.store.SaveWeek(ctx, w, &progress); err != nil {
		return model.WeeklyData{}, fmt.Errorf("failed to save reflection: %w", err)
	}
	log.Debug().Int("week", w.WeekNumber).Int("stars", r.Stars).Msg("reflection saved")
	return w, nil
}

// SetMotivation stores one of model.MotivationLevels.
func (s *Service) SetMotivation(ctx context.Context, label string) error {
	if !slices.Contains(model.MotivationLevels, label) {
		return fmt.Errorf("%w: %q (want one of %s)", ErrInvalidMotivation, label, strings.Join(model.MotivationLevels, ", "))
	}
	weeks, err := s.store.ListWeeks(ctx)
	if err != nil {
		return fmt.Errorf("failed to load weeks: %w", err)
	}
	progress := stats.BuildProgress(weeks, label)
	if err := s.store.SetMotivation(ctx, label, &progress); err != nil {
		return fmt.Errorf("failed to save motivation: %w", err)
	}
	return nil
}

// Progress rebuilds the progress aggregate from every stored week.
func (s *Service) Progress(ctx context.Context) (model.ProgressData, error) {
	return s.progressWith(ctx, nil)
}

// progressWith rebuilds progress as it will look once w is stored.
func (s *Service) progressWith(ctx context.Context, w *model.WeeklyData) (model.ProgressData, error) {
	weeks, err := s.store.ListWeeks(ctx)
	if err != nil {
		return model.ProgressData{}, fmt.Errorf("failed to load weeks: %w", err)
	}
	motivation, err := s.store.GetMotivation(ctx)
	if err != nil {
		return model.ProgressData{}, fmt.Errorf("failed to load motivation: %w", err)
	}
	if w != nil {
		weeks = stats.ReplaceWeek(weeks, *w)
	}
	return stats.BuildProgress(weeks, motivation), nil
}

// SuggestedSkill returns the weakest skill of the current week that has a goal.
// Listening is returned when no skill has a goal.
func (s *Service) SuggestedSkill(ctx context.Context) (model.Skill, error) {
	p, err := s.Profile(ctx)
	if err != nil {
		return model.Listening, err
	}
	w, err := s.currentWeek(ctx, p)
	if err != nil {
		return model.Listening, err
	}
	weak := stats.SelectWeakSkills(w.SuccessRates, p.Goals, 1)
	if len(weak) == 0 {
		return model.Listening, nil
	}
	return weak[0], nil
}

// SessionTarget returns the default timer length for a skill today.
func (s *Service) SessionTarget(ctx context.Context, skill model.Skill, divisor int) (time.Duration, error) {
	p, err := s.Profile(ctx)
	if err != nil {
		return 0, err
	}
	today := calendar.Today(s.clock.Now())
	minutes := timer.TargetMinutes(p.Plan.Get(today, skill), p.Goals.Get(skill), divisor)
	return time.Duration(minutes) * time.Minute, nil
}

// Reset deletes every stored record.
func (s *Service) Reset(ctx context.Context) error {
	if err := s.store.Reset(ctx); err != nil {
		return fmt.Errorf("failed to reset data: %w", err)
	}
	log.Debug().Msg("data reset")
	return nil
}
