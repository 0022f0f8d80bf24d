package api

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/netip"

	"github.com/go-chi/chi/v5"

	"love-vs-grades-go/internal/archetype"
	"love-vs-grades-go/internal/processor"
	"love-vs-grades-go/internal/progress"
	"love-vs-grades-go/internal/survey"
	"love-vs-grades-go/internal/types"
)

// maxBody caps request bodies; the longest legitimate one is a reflection.
const maxBody = 64 << 10

type sessionView struct {
	Session  *survey.State        `json:"session"`
	Question *survey.Question     `json:"question,omitempty"`
	Mood     survey.CompanionMood `json:"mood"`
	Progress int                  `json:"progress"`
	Total    int                  `json:"total"`
	Step     *survey.Step         `json:"step,omitempty"`
	Result   *processor.Result    `json:"result,omitempty"`
}

func view(s *survey.State) sessionView {
	v := sessionView{
		Session:  s,
		Mood:     survey.Companion(s),
		Progress: s.Progress(),
		Total:    len(survey.Questions()),
	}
	if q, ok := s.Current(); ok {
		v.Question = &q
	}
	return v
}

func (h *Handler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, survey.Questions())
}

func (h *Handler) ListArchetypes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, archetype.Catalog())
}

// Classify scores an arbitrary answer set without touching any session.
func (h *Handler) Classify(w http.ResponseWriter, r *http.Request) {
	var answers types.AnswerSet
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(&answers); err != nil {
		writeError(w, http.StatusBadRequest, "body must be a JSON object of answers")
		return
	}
	writeJSON(w, http.StatusOK, archetype.Classify(answers))
}

func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	s := survey.NewState("")
	if err := h.Progress.Save(r.Context(), s); err != nil {
		h.Log.WithRequest(r).WithError(err).Error("save session failed")
		writeError(w, http.StatusInternalServerError, "could not create session")
		return
	}
	writeJSON(w, http.StatusCreated, view(s))
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.loadSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, view(s))
}

func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.Progress.Clear(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.storeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	h.sessionMu.Lock()
	defer h.sessionMu.Unlock()
	s, ok := h.loadSession(w, r)
	if !ok {
		return
	}
	s.Start(h.now())
	if !h.saveSession(w, r, s) {
		return
	}
	writeJSON(w, http.StatusOK, view(s))
}

func (h *Handler) AnswerSession(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Value any `json:"value"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, `body must be {"value": ...}`)
		return
	}
	h.sessionMu.Lock()
	defer h.sessionMu.Unlock()
	s, ok := h.loadSession(w, r)
	if !ok {
		return
	}
	if err := s.Answer(body.Value); err != nil {
		h.surveyError(w, err)
		return
	}
	if !h.saveSession(w, r, s) {
		return
	}
	writeJSON(w, http.StatusOK, view(s))
}

// NextSession advances the session. Finishing the last question classifies
// the respondent and queues the submission.
func (h *Handler) NextSession(w http.ResponseWriter, r *http.Request) {
	h.sessionMu.Lock()
	defer h.sessionMu.Unlock()
	s, ok := h.loadSession(w, r)
	if !ok {
		return
	}
	step, err := s.Next(h.now())
	if err != nil {
		h.surveyError(w, err)
		return
	}
	v := view(s)
	v.Step = &step
	if !step.Completed {
		if !h.saveSession(w, r, s) {
			return
		}
		writeJSON(w, http.StatusOK, v)
		return
	}

	res, err := h.Processor.Complete(r.Context(), s, clientIP(r))
	if err != nil {
		h.Log.WithRequest(r).WithError(err).Error("complete survey failed")
		writeError(w, http.StatusInternalServerError, "could not complete survey")
		return
	}
	v.Result = &res
	writeJSON(w, http.StatusOK, v)
}

func (h *Handler) loadSession(w http.ResponseWriter, r *http.Request) (*survey.State, bool) {
	s, err := h.Progress.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.storeError(w, r, err)
		return nil, false
	}
	if s == nil {
		writeError(w, http.StatusNotFound, "session not found")
		return nil, false
	}
	return s, true
}

func (h *Handler) saveSession(w http.ResponseWriter, r *http.Request, s *survey.State) bool {
	if err := h.Progress.Save(r.Context(), s); err != nil {
		h.storeError(w, r, err)
		return false
	}
	return true
}

func (h *Handler) storeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, progress.ErrInvalidID) {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return
	}
	h.Log.WithRequest(r).WithError(err).Error("progress store failed")
	writeError(w, http.StatusInternalServerError, "progress store unavailable")
}

func (h *Handler) surveyError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, survey.ErrInvalidAnswer), errors.Is(err, survey.ErrUnanswered):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, survey.ErrNotStarted), errors.Is(err, survey.ErrCompleted):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// clientIP returns the caller's public address, or "" when only a private
// or loopback address is known and the sink should look it up instead.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return ""
	}
	if addr.IsLoopback() || addr.IsPrivate() || addr.IsUnspecified() || addr.IsLinkLocalUnicast() {
		return ""
	}
	return addr.String()
}
