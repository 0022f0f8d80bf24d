package api

import (
	"bytes"
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"
	"time"

	"love-vs-grades-go/internal/aggregator"
	"love-vs-grades-go/internal/dataset"
)

type insightsView struct {
	aggregator.Dashboard
	Grades    []string  `json:"grades"`
	FetchedAt time.Time `json:"fetched_at"`
}

func (h *Handler) Insights(w http.ResponseWriter, r *http.Request) {
	snap := h.Snapshots.Snapshot()
	writeJSON(w, http.StatusOK, insightsView{
		Dashboard: aggregator.BuildDashboard(snap.Submissions, r.URL.Query().Get("grade")),
		Grades:    aggregator.Grades(snap.Submissions),
		FetchedAt: snap.FetchedAt,
	})
}

func (h *Handler) ExportInsights(w http.ResponseWriter, r *http.Request) {
	snap := h.Snapshots.Snapshot()
	d := aggregator.BuildDashboard(snap.Submissions, r.URL.Query().Get("grade"))
	var buf bytes.Buffer
	if err := dataset.WriteReport(&buf, d); err != nil {
		h.Log.WithRequest(r).WithError(err).Error("report export failed")
		writeError(w, http.StatusInternalServerError, "could not build report")
		return
	}
	name := fmt.Sprintf("love-vs-grades-%s-%s.xlsx", strings.ToLower(d.Grade), h.now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) RefreshInsights(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Snapshots.Refresh(r.Context())
	if err != nil {
		h.Log.WithRequest(r).WithError(err).Warn("manual refresh failed")
		writeError(w, http.StatusBadGateway, "refresh failed, no data available")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"submissions": len(snap.Submissions),
		"fetched_at":  snap.FetchedAt,
	})
}

// requireInsights gates the dashboard behind the configured password, sent
// as a bearer token or as the basic-auth password. No password means open.
func (h *Handler) requireInsights(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.InsightsPassword == "" || h.authorized(r) {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set("WWW-Authenticate", `Basic realm="insights"`)
		writeError(w, http.StatusUnauthorized, "insights are password protected")
	})
}

func (h *Handler) authorized(r *http.Request) bool {
	var given string
	if _, pw, ok := r.BasicAuth(); ok {
		given = pw
	} else if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		given = strings.TrimPrefix(auth, "Bearer ")
	}
	if given == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(given), []byte(h.InsightsPassword)) == 1
}
