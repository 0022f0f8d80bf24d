package processor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"love-vs-grades-go/internal/archetype"
	"love-vs-grades-go/internal/logger"
	"love-vs-grades-go/internal/metrics"
	"love-vs-grades-go/internal/progress"
	"love-vs-grades-go/internal/sheets"
	"love-vs-grades-go/internal/survey"
	"love-vs-grades-go/internal/types"
)

// Sink stores completed submissions. *sheets.Client satisfies it.
type Sink interface {
	Submit(ctx context.Context, p types.SubmissionPayload) error
	LookupIP(ctx context.Context) string
}

var ErrNotCompleted = errors.New("survey not completed")

// Result is returned to the respondent on completion.
type Result struct {
	SessionID      string                     `json:"session_id"`
	SubmissionID   string                     `json:"submission_id"`
	Classification types.ClassificationResult `json:"classification"`
	Mood           survey.CompanionMood       `json:"mood"`
	DurationMs     int64                      `json:"duration_ms"`
}

// Processor finishes surveys: classification happens inline, the sheet
// write happens in the background and never fails the request.
type Processor struct {
	Sink          Sink // nil disables submission
	Progress      progress.Store
	Metrics       *metrics.Metrics
	Log           *logger.Logger
	SubmitTimeout time.Duration
	Now           func() time.Time

	wg sync.WaitGroup
}

func New(sink Sink, store progress.Store, m *metrics.Metrics, log *logger.Logger) *Processor {
	if log == nil {
		log = logger.Discard()
	}
	return &Processor{
		Sink:          sink,
		Progress:      store,
		Metrics:       m,
		Log:           log.Component("processor"),
		SubmitTimeout: 15 * time.Second,
		Now:           time.Now,
	}
}

// Complete classifies a finished session, queues its submission and clears
// the saved progress. clientIP is used when known; otherwise the sink looks
// up the public IP in the background.
func (p *Processor) Complete(ctx context.Context, s *survey.State, clientIP string) (Result, error) {
	start := time.Now()
	if s == nil || !s.IsCompleted {
		return Result{}, ErrNotCompleted
	}

	answers := make(types.AnswerSet, len(s.Answers)+1)
	for k, v := range s.Answers {
		answers[k] = v
	}
	answers["name"] = "Anonymous"

	cls := archetype.Classify(answers)
	p.Metrics.IncClassification(cls.Archetype.ID)

	payload := sheets.BuildPayload(answers, types.Metrics{TotalTimeSeconds: s.Metrics.TotalTimeSeconds}, clientIP, p.now())
	p.submitAsync(payload, clientIP == "")

	if p.Progress != nil {
		if err := p.Progress.Clear(ctx, s.ID); err != nil {
			p.Log.WithError(err).WithField("session", s.ID).Warn("failed to clear progress")
		}
	}

	p.Log.WithField("session", s.ID).
		WithField("archetype", cls.Archetype.ID).
		Info("survey completed")

	return Result{
		SessionID:      s.ID,
		SubmissionID:   payload.ID,
		Classification: cls,
		Mood:           survey.Companion(s),
		DurationMs:     time.Since(start).Milliseconds(),
	}, nil
}

func (p *Processor) submitAsync(payload types.SubmissionPayload, lookupIP bool) {
	if p.Sink == nil {
		p.Log.WithField("submission", payload.ID).Debug("no sink configured, submission dropped")
		return
	}
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), p.SubmitTimeout)
		defer cancel()
		if lookupIP {
			payload.IP = p.Sink.LookupIP(ctx)
		}
		err := p.Sink.Submit(ctx, payload)
		p.Metrics.IncSubmission(err)
		if err != nil {
			p.Log.WithError(err).WithField("submission", payload.ID).Error("cloud save failed")
			return
		}
		p.Log.WithField("submission", payload.ID).Debug("submission saved")
	}()
}

// Wait blocks until queued submissions finish or ctx is done.
func (p *Processor) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for submissions: %w", ctx.Err())
	}
}

func (p *Processor) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}
