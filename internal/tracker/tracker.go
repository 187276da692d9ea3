package tracker

import (
	"context"

	"codeberg.org/mutker/healthtrack/internal/errors"
	"codeberg.org/mutker/healthtrack/internal/history"
	"codeberg.org/mutker/healthtrack/internal/logger"
	"codeberg.org/mutker/healthtrack/internal/metrics"
	"codeberg.org/mutker/healthtrack/internal/probe"
	"codeberg.org/mutker/healthtrack/internal/trend"
)

// Service runs save and review operations. Every call reloads the history
// file; nothing is cached between calls.
type Service struct {
	locator *history.Locator
	prober  probe.Prober
	mirror  metrics.Mirror
}

func NewService(locator *history.Locator, prober probe.Prober, mirror metrics.Mirror) *Service {
	return &Service{
		locator: locator,
		prober:  prober,
		mirror:  mirror,
	}
}

// SaveSnapshot collects a snapshot, appends it to the history and writes
// the history back. A write failure returns a result with Saved false.
func (s *Service) SaveSnapshot(ctx context.Context) (SaveResult, error) {
	errFactory := errors.New()

	store, err := history.Load(s.locator)
	if err != nil {
		return SaveResult{}, err
	}

	run := store.NextRunNumber()
	logger.Info().Uint32("run_number", run).Str("path", store.Location()).Msg("Saving snapshot")

	bundle, err := s.prober.Collect(ctx)
	if err != nil {
		return SaveResult{RunNumber: run, Count: store.Len(), Location: store.Location()},
			errFactory.Wrap(ErrCollectFailed, err)
	}

	snap := history.Collect(bundle, run)
	if err := store.Append(snap); err != nil {
		return SaveResult{RunNumber: run, Count: store.Len(), Location: store.Location()}, err
	}

	result := SaveResult{
		RunNumber: run,
		Count:     store.Len(),
		Location:  store.Location(),
	}

	if err := store.Persist(); err != nil {
		return result, err
	}
	result.Saved = true

	if s.mirror != nil {
		entry := &metrics.Entry{Location: store.Location(), Snapshot: snap}
		if err := s.mirror.Record(ctx, entry); err != nil {
			logger.Warn().Err(err).Uint32("run_number", run).Msg("Failed to mirror snapshot")
		}
	}

	logger.Info().
		Uint32("run_number", run).
		Int("count", result.Count).
		Int32("health_score", snap.HealthScore).
		Msg("Snapshot saved")

	return result, nil
}

// LatestWithTrend returns the newest snapshot and, when one exists, its
// comparison with the previous snapshot.
func (s *Service) LatestWithTrend(_ context.Context) (Review, error) {
	store, err := history.Load(s.locator)
	if err != nil {
		return Review{}, err
	}

	latest, ok := store.Latest()
	if !ok {
		return Review{Location: store.Location()}, errors.New().New(ErrNoHistory).WithData(store.Location())
	}

	review := Review{
		Location: store.Location(),
		Count:    store.Len(),
		Latest:   latest,
	}

	if previous, ok := store.Previous(); ok {
		report := trend.Analyze(previous, latest)
		review.Trend = &report

		for _, a := range report.Alerts {
			logger.Debug().Str("alert", string(a.Kind)).Msg(a.Message)
		}
	}

	return review, nil
}

// Timeline returns the rows of the recent snapshot timeline. It is empty
// unless at least two snapshots are on record.
func (s *Service) Timeline(_ context.Context) ([]trend.Row, error) {
	store, err := history.Load(s.locator)
	if err != nil {
		return nil, err
	}

	return trend.Timeline(store), nil
}
