package stats

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/verte-zerg/skilltrack/internal/model"
	"github.com/verte-zerg/skilltrack/internal/store"
)

const recentSessions = 10

// Report contains precomputed data for stats rendering.
type Report struct {
	Profile  model.UserProfile
	Progress model.ProgressData
	Weeks    []model.WeeklyData
	Sessions []model.SessionRecord
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	var (
		report     Report
		weeks      []model.WeeklyData
		motivation string
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := st.GetProfile(ctx)
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		report.Profile = p
		return err
	})
	g.Go(func() error {
		var err error
		weeks, err = st.ListWeeks(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		motivation, err = st.GetMotivation(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		report.Sessions, err = st.ListSessions(ctx, recentSessions)
		return err
	})
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	report.Progress = BuildProgress(weeks, motivation)
	report.Weeks = report.Progress.WeeklyHistory
	if cfg.Last > 0 && len(report.Weeks) > cfg.Last {
		report.Weeks = report.Weeks[len(report.Weeks)-cfg.Last:]
	}
	return report, nil
}
