package pipeline

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"love-vs-grades-go/internal/ingest"
	"love-vs-grades-go/internal/logger"
	"love-vs-grades-go/internal/metrics"
	"love-vs-grades-go/internal/types"
)

// Source returns raw response rows: the live sheet or an exported workbook.
type Source interface {
	Fetch(ctx context.Context) ([]any, error)
}

// Snapshot is an immutable, normalized view of every submission.
type Snapshot struct {
	Submissions []types.Submission
	FetchedAt   time.Time
}

// Refresher keeps the latest snapshot. Each refresh replaces the snapshot
// wholesale; readers never see a partial one.
type Refresher struct {
	Source     Source
	Normalizer *ingest.Normalizer
	Interval   time.Duration
	Timeout    time.Duration // bounds a single fetch
	Metrics    *metrics.Metrics
	Log        *logger.Logger

	current atomic.Pointer[Snapshot]
}

func NewRefresher(src Source, interval time.Duration, m *metrics.Metrics, log *logger.Logger) *Refresher {
	if log == nil {
		log = logger.Discard()
	}
	log = log.Component("pipeline")
	return &Refresher{
		Source:     src,
		Normalizer: ingest.NewNormalizer(log),
		Interval:   interval,
		Timeout:    20 * time.Second,
		Metrics:    m,
		Log:        log,
	}
}

// Snapshot returns the latest snapshot, or an empty one before the first
// successful refresh.
func (r *Refresher) Snapshot() *Snapshot {
	if s := r.current.Load(); s != nil {
		return s
	}
	return &Snapshot{Submissions: []types.Submission{}}
}

// Refresh fetches and normalizes once. A failed fetch replaces the snapshot
// with an empty one, so readers see "no data" rather than stale rows.
func (r *Refresher) Refresh(ctx context.Context) (*Snapshot, error) {
	start := time.Now()
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}
	rows, err := r.Source.Fetch(ctx)
	if err != nil {
		empty := &Snapshot{Submissions: []types.Submission{}, FetchedAt: time.Now().UTC()}
		r.current.Store(empty)
		r.Metrics.ObserveRefresh(time.Since(start), 0, err)
		return empty, fmt.Errorf("refresh: %w", err)
	}
	snap := &Snapshot{Submissions: r.Normalizer.Normalize(rows), FetchedAt: time.Now().UTC()}
	r.current.Store(snap)
	r.Metrics.ObserveRefresh(time.Since(start), len(snap.Submissions), nil)
	r.Log.WithField("submissions", len(snap.Submissions)).
		WithField("duration_ms", time.Since(start).Milliseconds()).
		Debug("snapshot refreshed")
	return snap, nil
}

// Run refreshes immediately and then on every tick until ctx is done.
// Failed refreshes are logged and retried on the next tick.
func (r *Refresher) Run(ctx context.Context) error {
	interval := r.Interval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	r.Log.WithField("interval", interval.String()).Info("refresher started")
	if _, err := r.Refresh(ctx); err != nil {
		r.Log.WithError(err).Warn("initial refresh failed")
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			r.Log.Info("refresher stopped")
			return nil
		case <-t.C:
			if _, err := r.Refresh(ctx); err != nil && ctx.Err() == nil {
				r.Log.WithError(err).Warn("refresh failed")
			}
		}
	}
}
