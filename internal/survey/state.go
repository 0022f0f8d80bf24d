package survey

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"love-vs-grades-go/internal/types"
)

// RushThreshold is the minimum time on a non-choice question before moving
// on counts as reading it.
const RushThreshold = 1500 * time.Millisecond

var (
	ErrNotStarted = errors.New("survey not started")
	ErrCompleted  = errors.New("survey already completed")
	ErrUnanswered = errors.New("current question has no answer")
)

type Metrics struct {
	StartTime              time.Time            `json:"startTime"`
	QuestionStartTimes     map[string]time.Time `json:"questionStartTimes"`
	TotalTimeSeconds       float64              `json:"totalTimeSeconds"`
	AverageTimePerQuestion float64              `json:"averageTimePerQuestion"`
}

// State is one respondent's progress through the survey. It is what the
// progress store persists between requests.
type State struct {
	ID                   string          `json:"id"`
	Answers              types.AnswerSet `json:"answers"`
	Metrics              Metrics         `json:"metrics"`
	CurrentQuestionIndex int             `json:"currentQuestionIndex"`
	IsCompleted          bool            `json:"isCompleted"`
	HasStarted           bool            `json:"hasStarted"`
	IsRushing            bool            `json:"isRushing"`
}

// Step reports what happened on Next.
type Step struct {
	Rushing   bool      `json:"rushing"`
	Completed bool      `json:"completed"`
	Next      *Question `json:"next,omitempty"`
}

// NewState returns a fresh, unstarted session. An empty id gets a random one.
func NewState(id string) *State {
	if id == "" {
		id = uuid.NewString()
	}
	return &State{
		ID:      id,
		Answers: types.AnswerSet{},
		Metrics: Metrics{QuestionStartTimes: map[string]time.Time{}},
	}
}

// Start begins the clock on the first question. Starting twice is a no-op.
func (s *State) Start(now time.Time) {
	if s.HasStarted {
		return
	}
	s.HasStarted = true
	s.Metrics.StartTime = now
	s.Metrics.QuestionStartTimes = map[string]time.Time{questions[0].ID: now}
}

// Current returns the question being answered; false once completed.
func (s *State) Current() (Question, bool) {
	if s.IsCompleted || s.CurrentQuestionIndex < 0 || s.CurrentQuestionIndex >= len(questions) {
		return Question{}, false
	}
	return questions[s.CurrentQuestionIndex], true
}

// Answer records a validated answer for the current question, replacing any
// earlier one.
func (s *State) Answer(v any) error {
	q, err := s.active()
	if err != nil {
		return err
	}
	val, err := q.Validate(v)
	if err != nil {
		return err
	}
	if s.Answers == nil {
		s.Answers = types.AnswerSet{}
	}
	s.Answers[q.ID] = val
	return nil
}

// CanProceed reports whether the current question has a non-empty answer.
func (s *State) CanProceed() bool {
	q, err := s.active()
	if err != nil {
		return false
	}
	v, ok := s.Answers[q.ID]
	if !ok || v == nil {
		return false
	}
	if str, isStr := v.(string); isStr && str == "" {
		return false
	}
	return true
}

// Next moves past the current question. Leaving a slider, mood or text
// question faster than RushThreshold flags the step as rushing, but the
// move still happens. After the last question the survey completes and the
// total time is recorded.
func (s *State) Next(now time.Time) (Step, error) {
	q, err := s.active()
	if err != nil {
		return Step{}, err
	}
	if !s.CanProceed() {
		return Step{}, fmt.Errorf("%w: %s", ErrUnanswered, q.ID)
	}

	started, ok := s.Metrics.QuestionStartTimes[q.ID]
	if !ok {
		started = now
	}
	step := Step{Rushing: q.Type != Choice && now.Sub(started) < RushThreshold}
	s.IsRushing = step.Rushing

	if s.CurrentQuestionIndex < len(questions)-1 {
		s.CurrentQuestionIndex++
		next := questions[s.CurrentQuestionIndex]
		if s.Metrics.QuestionStartTimes == nil {
			s.Metrics.QuestionStartTimes = map[string]time.Time{}
		}
		s.Metrics.QuestionStartTimes[next.ID] = now
		step.Next = &next
		return step, nil
	}

	total := now.Sub(s.Metrics.StartTime).Seconds()
	s.Metrics.TotalTimeSeconds = total
	s.Metrics.AverageTimePerQuestion = total / float64(len(questions))
	s.IsCompleted = true
	step.Completed = true
	return step, nil
}

// Progress is the number of questions behind the respondent, counting the
// final one once completed.
func (s *State) Progress() int {
	if s.IsCompleted {
		return s.CurrentQuestionIndex + 1
	}
	return s.CurrentQuestionIndex
}

func (s *State) active() (Question, error) {
	if !s.HasStarted {
		return Question{}, ErrNotStarted
	}
	if s.IsCompleted {
		return Question{}, ErrCompleted
	}
	q, ok := s.Current()
	if !ok {
		return Question{}, fmt.Errorf("question index %d out of range", s.CurrentQuestionIndex)
	}
	return q, nil
}
