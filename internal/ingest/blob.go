package ingest

import (
	"encoding/json"
	"strings"
)

var blobMarkers = []string{"grade", "status", "answers", "focus_level"}

// DetectBlob looks for a cell holding a JSON-encoded answer set: a string that
// starts with '{' and mentions one of the known field names. Cells are
// scanned in key order.
//
// This is a substring sniff. A free-text answer that happens to look like
// JSON and mention "status" will also be picked up.
func DetectBlob(rec map[string]any) (string, bool) {
	for _, k := range sortedKeys(rec) {
		s, ok := rec[k].(string)
		if !ok {
			continue
		}
		trimmed := strings.TrimSpace(s)
		if !strings.HasPrefix(trimmed, "{") {
			continue
		}
		for _, m := range blobMarkers {
			if strings.Contains(trimmed, m) {
				return trimmed, true
			}
		}
	}
	return "", false
}

// unpackBlob parses the blob into the fields it contributes. Nested
// {answers, metrics} blobs contribute those two objects; flat blobs
// contribute themselves.
func unpackBlob(blob string) (map[string]any, error) {
	var parsed any
	if err := json.Unmarshal([]byte(blob), &parsed); err != nil {
		return nil, err
	}
	obj, ok := parsed.(map[string]any)
	if !ok {
		return nil, nil
	}
	answers, ok := obj["answers"].(map[string]any)
	if !ok {
		answers = obj
	}
	if metrics, ok := obj["metrics"].(map[string]any); ok {
		return merge(answers, metrics), nil
	}
	return answers, nil
}

// merge copies dst and lays src over it. A key from src replaces every dst
// key with the same case-insensitive name.
func merge(dst, src map[string]any) map[string]any {
	out := make(map[string]any, len(dst)+len(src))
	for k, v := range dst {
		out[k] = v
	}
	for k, v := range src {
		for existing := range out {
			if strings.EqualFold(existing, k) {
				delete(out, existing)
			}
		}
		out[k] = v
	}
	return out
}
