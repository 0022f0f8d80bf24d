package survey

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 2, 14, 9, 0, 0, 0, time.UTC)

func TestQuestionsCatalog(t *testing.T) {
	qs := Questions()
	require.Len(t, qs, 12)
	assert.Equal(t, "grade", qs[0].ID)
	assert.Equal(t, "reflection", qs[len(qs)-1].ID)

	seen := map[string]bool{}
	for _, q := range qs {
		assert.False(t, seen[q.ID], q.ID)
		seen[q.ID] = true
		switch q.Type {
		case Choice, Mood:
			assert.NotEmpty(t, q.Options, q.ID)
		case Slider:
			assert.Equal(t, 1, q.Min)
			assert.Equal(t, 5, q.Max)
			assert.Len(t, q.SliderStops, 5)
		}
	}

	qs[0].Title = "changed"
	q, ok := QuestionByID("grade")
	require.True(t, ok)
	assert.NotEqual(t, "changed", q.Title)
}

func TestValidate(t *testing.T) {
	focus, _ := QuestionByID("focus_level")
	sleep, _ := QuestionByID("sleep_quality")
	mood, _ := QuestionByID("mood_impact")
	text, _ := QuestionByID("reflection")

	v, err := focus.Validate(75.0)
	require.NoError(t, err)
	assert.Equal(t, "75", v)
	_, err = focus.Validate("80")
	assert.ErrorIs(t, err, ErrInvalidAnswer)

	v, err = sleep.Validate("4")
	require.NoError(t, err)
	assert.Equal(t, 4.0, v)
	_, err = sleep.Validate(6.0)
	assert.ErrorIs(t, err, ErrInvalidAnswer)
	_, err = sleep.Validate("lots")
	assert.ErrorIs(t, err, ErrInvalidAnswer)

	v, err = mood.Validate("relaxed")
	require.NoError(t, err)
	assert.Equal(t, "relaxed", v)

	v, err = text.Validate("  it helped  ")
	require.NoError(t, err)
	assert.Equal(t, "it helped", v)
	_, err = text.Validate("   ")
	assert.ErrorIs(t, err, ErrInvalidAnswer)
	_, err = text.Validate(strings.Repeat("a", MaxTextLength+1))
	assert.ErrorIs(t, err, ErrInvalidAnswer)
	_, err = text.Validate(12.0)
	assert.ErrorIs(t, err, ErrInvalidAnswer)
}

// answerFor picks a valid answer for any question.
func answerFor(q Question) any {
	switch q.Type {
	case Choice, Mood:
		return q.Options[0].Value
	case Slider:
		return float64(q.Max)
	}
	return "a short story"
}

func TestStateRequiresStart(t *testing.T) {
	s := NewState("")
	assert.NotEmpty(t, s.ID)
	assert.ErrorIs(t, s.Answer("9"), ErrNotStarted)
	_, err := s.Next(t0)
	assert.ErrorIs(t, err, ErrNotStarted)
}

func TestStateWalkthrough(t *testing.T) {
	s := NewState("sess-1")
	s.Start(t0)
	s.Start(t0.Add(time.Hour))
	assert.Equal(t, t0, s.Metrics.StartTime)

	_, err := s.Next(t0)
	assert.True(t, errors.Is(err, ErrUnanswered))

	now := t0
	for i, q := range Questions() {
		cur, ok := s.Current()
		require.True(t, ok)
		require.Equal(t, q.ID, cur.ID)
		require.NoError(t, s.Answer(answerFor(q)))
		now = now.Add(5 * time.Second)
		step, err := s.Next(now)
		require.NoError(t, err)
		assert.False(t, step.Rushing)
		if i < 11 {
			require.NotNil(t, step.Next)
			assert.False(t, step.Completed)
		} else {
			assert.True(t, step.Completed)
			assert.Nil(t, step.Next)
		}
	}

	assert.True(t, s.IsCompleted)
	assert.Equal(t, 60.0, s.Metrics.TotalTimeSeconds)
	assert.Equal(t, 5.0, s.Metrics.AverageTimePerQuestion)
	assert.Equal(t, 12, s.Progress())
	assert.ErrorIs(t, s.Answer("x"), ErrCompleted)
	_, err = s.Next(now)
	assert.ErrorIs(t, err, ErrCompleted)
}

func TestStateRushing(t *testing.T) {
	s := NewState("r")
	s.Start(t0)
	now := t0
	// choice questions never count as rushing
	for s.CurrentQuestionIndex < 6 {
		q, _ := s.Current()
		require.NoError(t, s.Answer(answerFor(q)))
		now = now.Add(100 * time.Millisecond)
		step, err := s.Next(now)
		require.NoError(t, err)
		assert.False(t, step.Rushing, q.ID)
	}

	q, _ := s.Current()
	require.Equal(t, Slider, q.Type)
	require.NoError(t, s.Answer(3.0))
	step, err := s.Next(now.Add(time.Second))
	require.NoError(t, err)
	assert.True(t, step.Rushing)
	assert.True(t, s.IsRushing)
	assert.Equal(t, MoodStressed, Companion(s))
	assert.Equal(t, 7, s.CurrentQuestionIndex, "rushing still advances")

	q, _ = s.Current()
	require.NoError(t, s.Answer(answerFor(q)))
	step, err = s.Next(now.Add(10 * time.Second))
	require.NoError(t, err)
	assert.False(t, step.Rushing)
	assert.False(t, s.IsRushing)
}

func TestCanProceed(t *testing.T) {
	s := NewState("p")
	assert.False(t, s.CanProceed())
	s.Start(t0)
	assert.False(t, s.CanProceed())
	s.Answers["grade"] = ""
	assert.False(t, s.CanProceed())
	require.NoError(t, s.Answer("college"))
	assert.True(t, s.CanProceed())
}

func TestCompanion(t *testing.T) {
	assert.Equal(t, MoodNeutral, Companion(nil))

	s := NewState("m")
	assert.Equal(t, MoodNeutral, Companion(s))
	s.Start(t0)
	assert.Equal(t, MoodNeutral, Companion(s))

	s.Answers["focus_level"] = "25"
	assert.Equal(t, MoodSleepy, Companion(s))
	s.Answers["focus_level"] = "100"
	assert.Equal(t, MoodExcited, Companion(s))
	s.Answers["focus_level"] = "75"
	assert.Equal(t, MoodNeutral, Companion(s))

	s.Answers["status"] = "talking"
	s.Answers["focus_level"] = "0"
	assert.Equal(t, MoodLove, Companion(s))

	s.IsCompleted = true
	assert.Equal(t, MoodLove, Companion(s))
}
