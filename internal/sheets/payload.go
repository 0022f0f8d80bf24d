package sheets

import (
	"time"

	"github.com/google/uuid"

	"love-vs-grades-go/internal/ingest"
	"love-vs-grades-go/internal/types"
)

// BuildPayload flattens a completed survey into the record the sheet stores.
// Blank answers are written as empty strings. Some columns are derived
// rather than asked: homework motivation is fixed at 50, the screen time
// column carries the phone-checking token, and the study partner column is
// inferred from whether study time went up.
func BuildPayload(answers types.AnswerSet, metrics types.Metrics, ip string, now time.Time) types.SubmissionPayload {
	partner := "distracted"
	if field(answers, "study_time_change") == "more" {
		partner = "productive"
	}
	name := field(answers, "name")
	if name == "" {
		name = "Anonymous"
	}
	if ip == "" {
		ip = UnknownIP
	}
	return types.SubmissionPayload{
		ID:                      uuid.NewString(),
		Timestamp:               now.UTC().Format(ingest.TimestampLayout),
		IP:                      ip,
		Name:                    name,
		Grade:                   field(answers, "grade"),
		Gender:                  field(answers, "gender"),
		Status:                  field(answers, "status"),
		FocusLevel:              field(answers, "focus_level"),
		ScreenTime:              field(answers, "notifications_freq"),
		SleepQuality:            field(answers, "sleep_quality"),
		MoodImpact:              field(answers, "mood_impact"),
		Reflection:              field(answers, "reflection"),
		RomanticThoughtsFreq:    field(answers, "romantic_thoughts_freq"),
		RomanticThoughtImpact:   field(answers, "romantic_thought_impact"),
		EmotionalEffectStrength: field(answers, "emotional_effect_strength"),
		StudyTimeChange:         field(answers, "study_time_change"),
		HomeworkMotivation:      "50",
		StudyPartner:            partner,
		TotalTimeSeconds:        ingest.Stringify(metrics.TotalTimeSeconds),
	}
}

// field renders an answer, treating zero numbers and false as blank the
// way the survey client always has.
func field(answers types.AnswerSet, key string) string {
	switch v := answers[key].(type) {
	case float64:
		if v == 0 {
			return ""
		}
	case int:
		if v == 0 {
			return ""
		}
	case bool:
		if !v {
			return ""
		}
	}
	return ingest.Stringify(answers[key])
}
