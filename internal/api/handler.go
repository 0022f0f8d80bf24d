package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"love-vs-grades-go/internal/logger"
	"love-vs-grades-go/internal/metrics"
	"love-vs-grades-go/internal/pipeline"
	"love-vs-grades-go/internal/processor"
	"love-vs-grades-go/internal/progress"
)

// Snapshots is the read side of the refresher.
type Snapshots interface {
	Snapshot() *pipeline.Snapshot
	Refresh(ctx context.Context) (*pipeline.Snapshot, error)
}

type Handler struct {
	Snapshots        Snapshots
	Progress         progress.Store
	Processor        *processor.Processor
	Metrics          *metrics.Metrics
	Log              *logger.Logger
	InsightsPassword string
	Now              func() time.Time

	// serializes load-modify-save of sessions
	sessionMu sync.Mutex
}

func NewHandler(snaps Snapshots, store progress.Store, proc *processor.Processor, m *metrics.Metrics, log *logger.Logger, insightsPassword string) *Handler {
	if log == nil {
		log = logger.Discard()
	}
	return &Handler{
		Snapshots:        snaps,
		Progress:         store,
		Processor:        proc,
		Metrics:          m,
		Log:              log.Component("api"),
		InsightsPassword: insightsPassword,
		Now:              time.Now,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/questions", h.ListQuestions)
		r.Get("/archetypes", h.ListArchetypes)
		r.Post("/classify", h.Classify)

		r.Post("/sessions", h.CreateSession)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", h.GetSession)
			r.Delete("/", h.DeleteSession)
			r.Post("/start", h.StartSession)
			r.Put("/answer", h.AnswerSession)
			r.Post("/next", h.NextSession)
		})

		r.Group(func(r chi.Router) {
			r.Use(h.requireInsights)
			r.Get("/insights", h.Insights)
			r.Get("/insights/export.xlsx", h.ExportInsights)
			r.Post("/insights/refresh", h.RefreshInsights)
		})
	})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
