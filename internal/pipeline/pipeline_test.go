package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"love-vs-grades-go/internal/logger"
	"love-vs-grades-go/internal/metrics"
)

type fakeSource struct {
	mu    sync.Mutex
	rows  []any
	err   error
	calls int
}

func (f *fakeSource) Fetch(ctx context.Context) ([]any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.rows, f.err
}

func (f *fakeSource) set(rows []any, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows, f.err = rows, err
}

func (f *fakeSource) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestSnapshotEmptyBeforeRefresh(t *testing.T) {
	r := NewRefresher(&fakeSource{}, time.Second, nil, logger.Discard())
	snap := r.Snapshot()
	require.NotNil(t, snap)
	assert.Empty(t, snap.Submissions)
}

func TestRefreshReplacesSnapshot(t *testing.T) {
	src := &fakeSource{rows: []any{
		map[string]any{"ID": "a", "Status": "taken"},
		map[string]any{"ID": "a", "Status": "single"},
		map[string]any{"ID": "b"},
	}}
	r := NewRefresher(src, time.Second, metrics.MustNewMetrics(prometheus.NewRegistry()), logger.Discard())

	snap, err := r.Refresh(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Submissions, 2)
	assert.Equal(t, "taken", snap.Submissions[0].Answers.Status)
	assert.Same(t, snap, r.Snapshot())

	src.set([]any{map[string]any{"ID": "c"}}, nil)
	next, err := r.Refresh(context.Background())
	require.NoError(t, err)
	require.Len(t, next.Submissions, 1)
	assert.Len(t, snap.Submissions, 2, "old snapshot is never mutated")
}

func TestRefreshErrorClearsSnapshot(t *testing.T) {
	src := &fakeSource{rows: []any{map[string]any{"ID": "a"}}}
	r := NewRefresher(src, time.Second, nil, logger.Discard())
	first, err := r.Refresh(context.Background())
	require.NoError(t, err)
	require.Len(t, first.Submissions, 1)

	src.set(nil, errors.New("network down"))
	got, err := r.Refresh(context.Background())
	require.Error(t, err)
	require.NotNil(t, got.Submissions)
	assert.Empty(t, got.Submissions)
	assert.False(t, got.FetchedAt.IsZero())
	assert.Same(t, got, r.Snapshot())
	assert.Len(t, first.Submissions, 1, "old snapshot is never mutated")

	src.set([]any{map[string]any{"ID": "b"}}, nil)
	back, err := r.Refresh(context.Background())
	require.NoError(t, err)
	assert.Len(t, back.Submissions, 1)
}

func TestRunRefreshesUntilCancelled(t *testing.T) {
	src := &fakeSource{rows: []any{}}
	r := NewRefresher(src, 10*time.Millisecond, nil, logger.Discard())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	require.Eventually(t, func() bool { return src.count() >= 3 }, time.Second, 5*time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
