package processor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"love-vs-grades-go/internal/archetype"
	"love-vs-grades-go/internal/logger"
	"love-vs-grades-go/internal/progress"
	"love-vs-grades-go/internal/sheets"
	"love-vs-grades-go/internal/survey"
	"love-vs-grades-go/internal/types"
)

type fakeSink struct {
	mu      sync.Mutex
	got     []types.SubmissionPayload
	err     error
	ip      string
	lookups int
	block   chan struct{}
}

func (f *fakeSink) Submit(ctx context.Context, p types.SubmissionPayload) error {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.got = append(f.got, p)
	return f.err
}

func (f *fakeSink) LookupIP(ctx context.Context) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups++
	return f.ip
}

func completedState(t *testing.T, answers map[string]any) *survey.State {
	t.Helper()
	s := survey.NewState("")
	start := time.Date(2025, 2, 14, 9, 0, 0, 0, time.UTC)
	s.Start(start)
	now := start
	for _, q := range survey.Questions() {
		require.NoError(t, s.Answer(answers[q.ID]), q.ID)
		now = now.Add(3 * time.Second)
		_, err := s.Next(now)
		require.NoError(t, err)
	}
	require.True(t, s.IsCompleted)
	return s
}

var lockedIn = map[string]any{
	"grade":                     "11",
	"gender":                    "female",
	"status":                    "taken",
	"focus_level":               "100",
	"romantic_thoughts_freq":    "often",
	"romantic_thought_impact":   "improve",
	"emotional_effect_strength": 4.0,
	"notifications_freq":        "rarely",
	"study_time_change":         "more",
	"sleep_quality":             4.0,
	"mood_impact":               "happy",
	"reflection":                "we quiz each other",
}

func TestCompleteClassifiesAndSubmits(t *testing.T) {
	sink := &fakeSink{ip: "203.0.113.1"}
	store := progress.NewMemoryStore(nil)
	p := New(sink, store, nil, logger.Discard())

	s := completedState(t, lockedIn)
	ctx := context.Background()
	in := survey.NewState(s.ID)
	in.Start(time.Now())
	require.NoError(t, store.Save(ctx, in))

	res, err := p.Complete(ctx, s, "")
	require.NoError(t, err)
	assert.Equal(t, archetype.LockedInLover, res.Classification.Archetype.ID)
	assert.Equal(t, survey.MoodLove, res.Mood)
	assert.Equal(t, s.ID, res.SessionID)

	require.NoError(t, p.Wait(ctx))
	require.Len(t, sink.got, 1)
	sent := sink.got[0]
	assert.Equal(t, res.SubmissionID, sent.ID)
	assert.Equal(t, "203.0.113.1", sent.IP)
	assert.Equal(t, 1, sink.lookups)
	assert.Equal(t, "Anonymous", sent.Name)
	assert.Equal(t, "rarely", sent.ScreenTime)
	assert.Equal(t, "productive", sent.StudyPartner)
	assert.Equal(t, "50", sent.HomeworkMotivation)
	assert.Equal(t, "36", sent.TotalTimeSeconds)

	saved, err := store.Load(ctx, s.ID)
	require.NoError(t, err)
	assert.Nil(t, saved)

	_, hasName := s.Answers["name"]
	assert.False(t, hasName, "session answers are not modified")
}

func TestCompleteUsesClientIP(t *testing.T) {
	sink := &fakeSink{ip: "should-not-be-used"}
	p := New(sink, nil, nil, nil)
	_, err := p.Complete(context.Background(), completedState(t, lockedIn), "198.51.100.20")
	require.NoError(t, err)
	require.NoError(t, p.Wait(context.Background()))
	require.Len(t, sink.got, 1)
	assert.Equal(t, "198.51.100.20", sink.got[0].IP)
	assert.Zero(t, sink.lookups)
}

func TestCompleteDoesNotWaitForSubmission(t *testing.T) {
	sink := &fakeSink{block: make(chan struct{}), err: errors.New("sheet down")}
	p := New(sink, nil, nil, nil)

	res, err := p.Complete(context.Background(), completedState(t, lockedIn), "x")
	require.NoError(t, err, "submission failure never reaches the caller")
	assert.NotEmpty(t, res.Classification.Archetype.ID)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.Error(t, p.Wait(ctx), "submission is still blocked")

	close(sink.block)
	require.NoError(t, p.Wait(context.Background()))
	assert.Len(t, sink.got, 1)
}

func TestCompleteWithoutSink(t *testing.T) {
	p := New(nil, nil, nil, nil)
	res, err := p.Complete(context.Background(), completedState(t, lockedIn), "")
	require.NoError(t, err)
	assert.NotEmpty(t, res.SubmissionID)
	require.NoError(t, p.Wait(context.Background()))
}

func TestCompleteRejectsUnfinishedSession(t *testing.T) {
	p := New(&fakeSink{}, nil, nil, nil)
	s := survey.NewState("")
	s.Start(time.Now())
	_, err := p.Complete(context.Background(), s, "")
	assert.ErrorIs(t, err, ErrNotCompleted)
	_, err = p.Complete(context.Background(), nil, "")
	assert.ErrorIs(t, err, ErrNotCompleted)
}

var _ Sink = (*sheets.Client)(nil)
