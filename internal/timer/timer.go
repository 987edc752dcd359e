// Package timer models a practice stopwatch as an immutable value with pure transitions.
package timer

import (
	"math"
	"time"

	"github.com/verte-zerg/skilltrack/internal/model"
)

// Session is the state of one practice timer. The zero value is an idle timer.
type Session struct {
	Skill       model.Skill
	Target      time.Duration
	StartedAt   time.Time
	PausedAt    time.Time
	PausedTotal time.Duration
	Running     bool
}

// New returns an idle timer for a skill with a target length.
func New(skill model.Skill, target time.Duration) Session {
	return Session{Skill: skill, Target: target}
}

// Started reports whether the timer has been started since the last reset.
func (s Session) Started() bool {
	return !s.StartedAt.IsZero()
}

// Paused reports whether the timer was started and is currently paused.
func (s Session) Paused() bool {
	return s.Started() && !s.Running
}

// Start begins timing, or resumes a paused timer.
func (s Session) Start(now time.Time) Session {
	if s.Running {
		return s
	}
	if !s.Started() {
		s.StartedAt = now
		s.PausedAt = time.Time{}
		s.PausedTotal = 0
		s.Running = true
		return s
	}
	return s.Resume(now)
}

// Pause stops the clock without losing elapsed time.
func (s Session) Pause(now time.Time) Session {
	if !s.Running {
		return s
	}
	s.Running = false
	s.PausedAt = now
	return s
}

// Resume continues a paused timer.
func (s Session) Resume(now time.Time) Session {
	if !s.Paused() {
		return s
	}
	if !s.PausedAt.IsZero() && now.After(s.PausedAt) {
		s.PausedTotal += now.Sub(s.PausedAt)
	}
	s.PausedAt = time.Time{}
	s.Running = true
	return s
}

// Toggle starts a stopped timer or pauses a running one.
func (s Session) Toggle(now time.Time) Session {
	if s.Running {
		return s.Pause(now)
	}
	return s.Start(now)
}

// Reset clears timing state and keeps skill and target.
func (s Session) Reset() Session {
	return New(s.Skill, s.Target)
}

// Elapsed returns active time, excluding pauses.
func (s Session) Elapsed(now time.Time) time.Duration {
	if !s.Started() {
		return 0
	}
	d := now.Sub(s.StartedAt) - s.PausedTotal
	if !s.Running && !s.PausedAt.IsZero() {
		d -= now.Sub(s.PausedAt)
	}
	if d < 0 {
		return 0
	}
	return d
}

// Remaining returns the time left before the target, never negative.
func (s Session) Remaining(now time.Time) time.Duration {
	left := s.Target - s.Elapsed(now)
	if left < 0 {
		return 0
	}
	return left
}

// Done reports whether a positive target has been reached.
func (s Session) Done(now time.Time) bool {
	return s.Target > 0 && s.Elapsed(now) >= s.Target
}

// Fraction returns elapsed/target clamped to [0,1].
func (s Session) Fraction(now time.Time) float64 {
	if s.Target <= 0 {
		return 0
	}
	return math.Min(float64(s.Elapsed(now))/float64(s.Target), 1)
}

// TargetMinutes picks a session length: round(planned/divisor), falling back to goal/7
// when nothing is planned today. The result is at least one minute.
func TargetMinutes(plannedToday, weeklyGoal, divisor int) int {
	if divisor <= 0 {
		divisor = 1
	}
	base := plannedToday
	if base <= 0 {
		base = weeklyGoal / model.DayCount
	}
	target := int(math.Round(float64(base) / float64(divisor)))
	if target < 1 {
		return 1
	}
	return target
}
