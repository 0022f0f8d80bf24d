package ingest

import (
	"encoding/json"
	"fmt"
	"time"

	"love-vs-grades-go/internal/logger"
	"love-vs-grades-go/internal/types"
)

// TimestampLayout matches the ISO-8601 form the survey client writes.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Normalizer turns loosely shaped sheet rows into Submissions. The zero value
// is usable; Now and Log are overridable for tests.
type Normalizer struct {
	Now func() time.Time
	Log *logger.Logger
}

func NewNormalizer(log *logger.Logger) *Normalizer {
	return &Normalizer{Now: time.Now, Log: log}
}

// std backs the package-level helpers. It logs nowhere; callers that want
// warnings build their own with NewNormalizer.
var std = &Normalizer{Now: time.Now, Log: logger.Discard()}

// Normalize normalizes raw rows with the package defaults.
func Normalize(raw []any) []types.Submission {
	return std.Normalize(raw)
}

// NormalizePayload decodes a fetch response body and normalizes it. A body
// that is not a JSON array yields no submissions.
func NormalizePayload(body []byte) []types.Submission {
	return std.NormalizePayload(body)
}

func (n *Normalizer) log() *logger.Logger {
	if n.Log == nil {
		return std.Log
	}
	return n.Log
}

func (n *Normalizer) now() time.Time {
	if n.Now == nil {
		return time.Now()
	}
	return n.Now()
}

func (n *Normalizer) NormalizePayload(body []byte) []types.Submission {
	var parsed any
	if err := json.Unmarshal(body, &parsed); err != nil {
		n.log().WithError(err).Warn("response is not valid JSON")
		return []types.Submission{}
	}
	rows, ok := parsed.([]any)
	if !ok {
		n.log().WithField("type", fmt.Sprintf("%T", parsed)).Warn("response is not an array")
		return []types.Submission{}
	}
	return n.Normalize(rows)
}

// Normalize converts every row and drops later rows that repeat an id.
func (n *Normalizer) Normalize(raw []any) []types.Submission {
	out := make([]types.Submission, 0, len(raw))
	for i, row := range raw {
		out = append(out, n.Record(i, row))
	}
	return Dedupe(out)
}

// Record normalizes a single row. index only feeds the fallback id.
func (n *Normalizer) Record(index int, row any) types.Submission {
	rec, ok := row.(map[string]any)
	if !ok {
		rec = map[string]any{}
	}
	f := layers{rec}
	if blob, found := DetectBlob(rec); found {
		fields, err := unpackBlob(blob)
		if err != nil {
			n.log().WithError(err).WithField("row", index).Warn("failed to parse row JSON")
		} else if fields != nil {
			f = layers{fields, rec}
		}
	}

	screenRaw, _ := f.resolve("Screen Time", "screen_time", "notifications_freq")

	return types.Submission{
		ID:        f.str(fmt.Sprintf("row_%d", index), "ID", "id"),
		Timestamp: f.str(n.now().UTC().Format(TimestampLayout), "Timestamp", "timestamp"),
		IP:        f.str("unknown", "IP", "ip"),
		Answers: types.Answers{
			Name:                    f.str("Anonymous", "Name", "name"),
			Grade:                   f.str("9", "Grade", "grade"),
			Gender:                  f.str("unknown", "Gender", "gender"),
			Status:                  f.str("single", "Status", "status"),
			FocusLevel:              f.num(50, "Focus Level", "focus_level"),
			HomeworkMotivation:      f.num(50, "Homework Motivation", "homework_motivation"),
			SleepQuality:            f.num(3, "Sleep Quality", "sleep_quality"),
			EmotionalEffectStrength: f.num(1, "Emotional Strength", "emotional_effect_strength"),
			ScreenTime:              ScreenTimeHours(screenRaw),
			NotificationsFreq:       f.notificationsFreq(),
			StudyPartner:            f.str("na", "Study Partner", "study_partner"),
			MoodImpact:              f.str("neutral", "Mood Impact", "mood_impact"),
			Reflection:              f.str("", "Reflection", "reflection"),
			RomanticThoughtsFreq:    f.str("unknown", "Romantic Thoughts", "romantic_thoughts_freq"),
			RomanticThoughtImpact:   f.str("none", "Romantic Impact", "romantic_thought_impact"),
			StudyTimeChange:         f.str("same", "Study Change", "study_time_change"),
		},
		Metrics: types.Metrics{
			TotalTimeSeconds: f.num(0, "Total Time (s)", "totalTimeSeconds"),
		},
	}
}

// layers are resolved in order: fields unpacked from a blob shadow the
// row's own columns under every spelling.
type layers []map[string]any

func (l layers) resolve(keys ...string) (any, bool) {
	for _, m := range l {
		if v, ok := Resolve(m, keys...); ok {
			return v, true
		}
	}
	return nil, false
}

func (l layers) str(def string, keys ...string) string {
	if v, ok := l.resolve(keys...); ok {
		return Stringify(v)
	}
	return def
}

func (l layers) num(def float64, keys ...string) float64 {
	if v, ok := l.resolve(keys...); ok {
		return ParseNumber(v)
	}
	return def
}

// The submission sink stores the phone-checking token in the screen time
// column, so fall back to it when no explicit column exists.
func (l layers) notificationsFreq() string {
	if v, ok := l.resolve("Notifications", "notifications_freq"); ok {
		return Stringify(v)
	}
	if v, ok := l.resolve("Screen Time", "screen_time"); ok {
		if tok, known := FrequencyToken(v); known {
			return tok
		}
	}
	return "sometimes"
}

// Dedupe keeps the first submission for each id.
func Dedupe(subs []types.Submission) []types.Submission {
	seen := make(map[string]struct{}, len(subs))
	out := make([]types.Submission, 0, len(subs))
	for _, s := range subs {
		if _, dup := seen[s.ID]; dup {
			continue
		}
		seen[s.ID] = struct{}{}
		out = append(out, s)
	}
	return out
}
