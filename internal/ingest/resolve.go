package ingest

import (
	"encoding/json"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Resolve returns the first usable value for the candidate keys. Each key is
// tried as an exact match, then case-insensitively, before moving to the next
// key. Nil values and blank strings count as absent.
func Resolve(rec map[string]any, keys ...string) (any, bool) {
	if len(rec) == 0 {
		return nil, false
	}
	var sorted []string
	for _, key := range keys {
		if v, ok := rec[key]; ok && !absent(v) {
			return v, true
		}
		if sorted == nil {
			sorted = sortedKeys(rec)
		}
		for _, k := range sorted {
			if k != key && strings.EqualFold(k, key) && !absent(rec[k]) {
				return rec[k], true
			}
		}
	}
	return nil, false
}

func absent(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	}
	return false
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Stringify renders a decoded JSON value the way the sheet shows it.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

var numberPrefix = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// ParseNumber coerces a value to a finite float. Strings are parsed
// locale-invariantly from their leading numeric prefix ("75%" -> 75).
// Anything else, including NaN and infinities, is 0.
func ParseNumber(v any) float64 {
	f, _ := Number(v)
	return f
}

// Number is ParseNumber that also reports whether v held a usable number.
func Number(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		m := numberPrefix.FindString(strings.TrimSpace(t))
		if m == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(m, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

var frequencyHours = map[string]float64{
	"never":      0,
	"rarely":     1,
	"sometimes":  3,
	"often":      5,
	"very_often": 8,
}

// substring fallback, checked in this order
var frequencyMarkers = []struct {
	marker string
	hours  float64
}{
	{"never", 0},
	{"rarely", 1},
	{"sometimes", 3},
	{"often", 5},
	{"very", 8},
}

// FrequencyToken normalizes a phone-checking answer to its token
// ("Very Often" -> "very_often"). ok is false for unknown answers.
func FrequencyToken(v any) (string, bool) {
	s := strings.ToLower(strings.TrimSpace(Stringify(v)))
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	_, ok := frequencyHours[s]
	return s, ok
}

// ScreenTimeHours maps a screen-time answer to representative daily hours.
// Numbers pass through; frequency tokens map to fixed hours; other strings
// are matched by substring, then parsed as numbers; the rest is 0.
func ScreenTimeHours(v any) float64 {
	switch v.(type) {
	case float64, int, int64, json.Number:
		return ParseNumber(v)
	}
	if absent(v) {
		return 0
	}
	if tok, ok := FrequencyToken(v); ok {
		return frequencyHours[tok]
	}
	s := strings.ToLower(Stringify(v))
	for _, m := range frequencyMarkers {
		if strings.Contains(s, m.marker) {
			return m.hours
		}
	}
	return ParseNumber(s)
}
