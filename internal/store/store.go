// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/verte-zerg/skilltrack/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

const (
	keyOnboarded  = "onboarded"
	keyProgress   = "progress"
	keyMotivation = "motivation"
)

// Store wraps SQLite access for profile, weekly and session data.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	log.Debug().Str("path", path).Msg("store opened")
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS profile (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			allocation TEXT NOT NULL,
			days_per_week INTEGER NOT NULL,
			minutes_per_day INTEGER NOT NULL,
			start_date TEXT NOT NULL,
			goals TEXT NOT NULL,
			plan TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS weekly_data (
			week_number INTEGER PRIMARY KEY,
			range_start TEXT NOT NULL,
			range_end TEXT NOT NULL,
			practice TEXT NOT NULL,
			success_rates TEXT NOT NULL,
			reflection TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS practice_sessions (
			id TEXT PRIMARY KEY,
			week_number INTEGER NOT NULL,
			day TEXT NOT NULL,
			skill TEXT NOT NULL,
			minutes INTEGER NOT NULL,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS app_state (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_practice_sessions_week ON practice_sessions(week_number);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// withTx runs fn in a transaction, rolling back when fn fails.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()
	if err = fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// SaveProfile replaces the stored user profile.
func (s *Store) SaveProfile(ctx context.Context, p model.UserProfile) error {
	return saveProfile(ctx, s.db, p)
}

// CompleteOnboarding stores the profile and marks onboarding done in one transaction.
func (s *Store) CompleteOnboarding(ctx context.Context, p model.UserProfile) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := saveProfile(ctx, tx, p); err != nil {
			return err
		}
		return putState(ctx, tx, keyOnboarded, "true")
	})
}

func saveProfile(ctx context.Context, ex execer, p model.UserProfile) error {
	alloc, err := json.Marshal(p.Allocation)
	if err != nil {
		return err
	}
	goals, err := json.Marshal(p.Goals)
	if err != nil {
		return err
	}
	plan, err := json.Marshal(p.Plan)
	if err != nil {
		return err
	}
	_, err = ex.ExecContext(ctx,
		`INSERT INTO profile (id, allocation, days_per_week, minutes_per_day, start_date, goals, plan, updated_at)
		 VALUES (1, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			allocation = excluded.allocation,
			days_per_week = excluded.days_per_week,
			minutes_per_day = excluded.minutes_per_day,
			start_date = excluded.start_date,
			goals = excluded.goals,
			plan = excluded.plan,
			updated_at = excluded.updated_at`,
		string(alloc),
		p.Budget.DaysPerWeek,
		p.Budget.MinutesPerDay,
		p.StartDate,
		string(goals),
		string(plan),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	return err
}

// GetProfile loads the user profile, or ErrNotFound before onboarding.
func (s *Store) GetProfile(ctx context.Context) (model.UserProfile, error) {
	var p model.UserProfile
	var alloc, goals, plan string
	err := s.db.QueryRowContext(ctx,
		`SELECT allocation, days_per_week, minutes_per_day, start_date, goals, plan FROM profile WHERE id = 1`,
	).Scan(&alloc, &p.Budget.DaysPerWeek, &p.Budget.MinutesPerDay, &p.StartDate, &goals, &plan)
	if errors.Is(err, sql.ErrNoRows) {
		return model.UserProfile{}, ErrNotFound
	}
	if err != nil {
		return model.UserProfile{}, err
	}
	if err := json.Unmarshal([]byte(alloc), &p.Allocation); err != nil {
		return model.UserProfile{}, fmt.Errorf("failed to decode allocation: %w", err)
	}
	if err := json.Unmarshal([]byte(goals), &p.Goals); err != nil {
		return model.UserProfile{}, fmt.Errorf("failed to decode goals: %w", err)
	}
	if err := json.Unmarshal([]byte(plan), &p.Plan); err != nil {
		return model.UserProfile{}, fmt.Errorf("failed to decode plan: %w", err)
	}
	return p, nil
}

// SaveWeek upserts a weekly record and, when progress is non-nil, the progress cache, atomically.
func (s *Store) SaveWeek(ctx context.Context, w model.WeeklyData, progress *model.ProgressData) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := saveWeek(ctx, tx, w); err != nil {
			return err
		}
		return saveProgress(ctx, tx, progress)
	})
}

// SaveSession upserts the week, records the session and refreshes the progress cache atomically.
func (s *Store) SaveSession(ctx context.Context, w model.WeeklyData, rec model.SessionRecord, progress *model.ProgressData) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := saveWeek(ctx, tx, w); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO practice_sessions (id, week_number, day, skill, minutes, started_at, ended_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			rec.ID,
			rec.WeekNumber,
			rec.Day.String(),
			rec.Skill.String(),
			rec.Minutes,
			rec.StartedAt.Format(time.RFC3339Nano),
			rec.EndedAt.Format(time.RFC3339Nano),
		); err != nil {
			return err
		}
		return saveProgress(ctx, tx, progress)
	})
}

// SaveProfileAndWeek stores a profile together with the recomputed current week and progress.
func (s *Store) SaveProfileAndWeek(ctx context.Context, p model.UserProfile, w *model.WeeklyData, progress *model.ProgressData) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := saveProfile(ctx, tx, p); err != nil {
			return err
		}
		if w != nil {
			if err := saveWeek(ctx, tx, *w); err != nil {
				return err
			}
		}
		return saveProgress(ctx, tx, progress)
	})
}

func saveWeek(ctx context.Context, ex execer, w model.WeeklyData) error {
	practice, err := json.Marshal(w.Practice)
	if err != nil {
		return err
	}
	rates, err := json.Marshal(w.SuccessRates)
	if err != nil {
		return err
	}
	reflection, err := json.Marshal(w.Reflection)
	if err != nil {
		return err
	}
	_, err = ex.ExecContext(ctx,
		`INSERT INTO weekly_data (week_number, range_start, range_end, practice, success_rates, reflection, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(week_number) DO UPDATE SET
			range_start = excluded.range_start,
			range_end = excluded.range_end,
			practice = excluded.practice,
			success_rates = excluded.success_rates,
			reflection = excluded.reflection,
			updated_at = excluded.updated_at`,
		w.WeekNumber,
		w.DateRange.Start,
		w.DateRange.End,
		string(practice),
		string(rates),
		string(reflection),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	return err
}

const weekColumns = `week_number, range_start, range_end, practice, success_rates, reflection`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWeek(row rowScanner) (model.WeeklyData, error) {
	var w model.WeeklyData
	var practice, rates, reflection string
	if err := row.Scan(&w.WeekNumber, &w.DateRange.Start, &w.DateRange.End, &practice, &rates, &reflection); err != nil {
		return model.WeeklyData{}, err
	}
	if err := json.Unmarshal([]byte(practice), &w.Practice); err != nil {
		return model.WeeklyData{}, fmt.Errorf("failed to decode practice for week %d: %w", w.WeekNumber, err)
	}
	if err := json.Unmarshal([]byte(rates), &w.SuccessRates); err != nil {
		return model.WeeklyData{}, fmt.Errorf("failed to decode success rates for week %d: %w", w.WeekNumber, err)
	}
	if err := json.Unmarshal([]byte(reflection), &w.Reflection); err != nil {
		return model.WeeklyData{}, fmt.Errorf("failed to decode reflection for week %d: %w", w.WeekNumber, err)
	}
	return w, nil
}

// GetWeek loads one weekly record, or ErrNotFound.
func (s *Store) GetWeek(ctx context.Context, weekNumber int) (model.WeeklyData, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+weekColumns+` FROM weekly_data WHERE week_number = ?`, weekNumber)
	w, err := scanWeek(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.WeeklyData{}, ErrNotFound
	}
	return w, err
}

// ListWeeks returns every stored week ordered by week number.
func (s *Store) ListWeeks(ctx context.Context) ([]model.WeeklyData, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+weekColumns+` FROM weekly_data ORDER BY week_number ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var weeks []model.WeeklyData
	for rows.Next() {
		w, err := scanWeek(rows)
		if err != nil {
			return nil, err
		}
		weeks = append(weeks, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return weeks, nil
}

// ListSessions returns the most recent sessions, newest first. A limit <= 0 returns all.
func (s *Store) ListSessions(ctx context.Context, limit int) ([]model.SessionRecord, error) {
	query := `SELECT id, week_number, day, skill, minutes, started_at, ended_at
		FROM practice_sessions
		ORDER BY ended_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var sessions []model.SessionRecord
	for rows.Next() {
		var rec model.SessionRecord
		var day, skill, startedAt, endedAt string
		if err := rows.Scan(&rec.ID, &rec.WeekNumber, &day, &skill, &rec.Minutes, &startedAt, &endedAt); err != nil {
			return nil, err
		}
		if rec.Day, err = model.ParseDay(day); err != nil {
			return nil, err
		}
		if rec.Skill, err = model.ParseSkill(skill); err != nil {
			return nil, err
		}
		if rec.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, err
		}
		if rec.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

func putState(ctx context.Context, ex execer, key, value string) error {
	_, err := ex.ExecContext(ctx,
		`INSERT INTO app_state (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}

func (s *Store) getState(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM app_state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	return value, err
}

func saveProgress(ctx context.Context, ex execer, p *model.ProgressData) error {
	if p == nil {
		return nil
	}
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return putState(ctx, ex, keyProgress, string(data))
}

// IsOnboarded reports whether onboarding completed. A missing flag means false.
func (s *Store) IsOnboarded(ctx context.Context) (bool, error) {
	value, err := s.getState(ctx, keyOnboarded)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return strconv.ParseBool(value)
}

// GetProgress loads the cached progress aggregate, or ErrNotFound.
func (s *Store) GetProgress(ctx context.Context) (model.ProgressData, error) {
	value, err := s.getState(ctx, keyProgress)
	if err != nil {
		return model.ProgressData{}, err
	}
	var p model.ProgressData
	if err := json.Unmarshal([]byte(value), &p); err != nil {
		return model.ProgressData{}, fmt.Errorf("failed to decode progress: %w", err)
	}
	return p, nil
}

// SetMotivation stores the current motivation label and, when non-nil, the progress cache.
func (s *Store) SetMotivation(ctx context.Context, label string, progress *model.ProgressData) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := putState(ctx, tx, keyMotivation, label); err != nil {
			return err
		}
		return saveProgress(ctx, tx, progress)
	})
}

// GetMotivation returns the stored motivation label, or model.DefaultMotivation.
func (s *Store) GetMotivation(ctx context.Context) (string, error) {
	value, err := s.getState(ctx, keyMotivation)
	if errors.Is(err, ErrNotFound) {
		return model.DefaultMotivation, nil
	}
	return value, err
}

// Reset deletes every stored record.
func (s *Store) Reset(ctx context.Context) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		for _, table := range []string{"profile", "weekly_data", "practice_sessions", "app_state"} {
			if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
				return err
			}
		}
		return nil
	})
}
