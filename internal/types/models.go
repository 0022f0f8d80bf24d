package types

// AnswerSet maps a question id to the value the respondent gave: a number
// (float64) or a categorical string token.
type AnswerSet map[string]any

// Answers is the normalized, type-correct form of an AnswerSet. Every field is
// always populated (see ingest for the defaults).
type Answers struct {
	Name                    string  `json:"name"`
	Grade                   string  `json:"grade"`
	Gender                  string  `json:"gender"`
	Status                  string  `json:"status"`
	FocusLevel              float64 `json:"focus_level"`
	HomeworkMotivation      float64 `json:"homework_motivation"`
	SleepQuality            float64 `json:"sleep_quality"`
	EmotionalEffectStrength float64 `json:"emotional_effect_strength"`
	ScreenTime              float64 `json:"screen_time"`
	NotificationsFreq       string  `json:"notifications_freq"`
	StudyPartner            string  `json:"study_partner"`
	MoodImpact              string  `json:"mood_impact"`
	Reflection              string  `json:"reflection"`
	RomanticThoughtsFreq    string  `json:"romantic_thoughts_freq"`
	RomanticThoughtImpact   string  `json:"romantic_thought_impact"`
	StudyTimeChange         string  `json:"study_time_change"`
}

// AnswerSet returns the mapping form used by the classifier.
func (a Answers) AnswerSet() AnswerSet {
	return AnswerSet{
		"name":                      a.Name,
		"grade":                     a.Grade,
		"gender":                    a.Gender,
		"status":                    a.Status,
		"focus_level":               a.FocusLevel,
		"homework_motivation":       a.HomeworkMotivation,
		"sleep_quality":             a.SleepQuality,
		"emotional_effect_strength": a.EmotionalEffectStrength,
		"screen_time":               a.ScreenTime,
		"notifications_freq":        a.NotificationsFreq,
		"study_partner":             a.StudyPartner,
		"mood_impact":               a.MoodImpact,
		"reflection":                a.Reflection,
		"romantic_thoughts_freq":    a.RomanticThoughtsFreq,
		"romantic_thought_impact":   a.RomanticThoughtImpact,
		"study_time_change":         a.StudyTimeChange,
	}
}

type Metrics struct {
	TotalTimeSeconds float64 `json:"totalTimeSeconds"`
}

// Submission is one normalized survey response as read back from the store.
type Submission struct {
	ID        string  `json:"id"`
	Timestamp string  `json:"timestamp"`
	IP        string  `json:"ip,omitempty"`
	Answers   Answers `json:"answers"`
	Metrics   Metrics `json:"metrics"`
}

// SubmissionPayload is the flat record posted to the sheet endpoint. All
// values are strings; the sheet stores them as-is.
type SubmissionPayload struct {
	ID                      string `json:"id"`
	Timestamp               string `json:"timestamp"`
	IP                      string `json:"ip"`
	Name                    string `json:"name"`
	Grade                   string `json:"grade"`
	Gender                  string `json:"gender"`
	Status                  string `json:"status"`
	FocusLevel              string `json:"focus_level"`
	ScreenTime              string `json:"screen_time"`
	SleepQuality            string `json:"sleep_quality"`
	MoodImpact              string `json:"mood_impact"`
	Reflection              string `json:"reflection"`
	RomanticThoughtsFreq    string `json:"romantic_thoughts_freq"`
	RomanticThoughtImpact   string `json:"romantic_thought_impact"`
	EmotionalEffectStrength string `json:"emotional_effect_strength"`
	StudyTimeChange         string `json:"study_time_change"`
	HomeworkMotivation      string `json:"homework_motivation"`
	StudyPartner            string `json:"study_partner"`
	TotalTimeSeconds        string `json:"totalTimeSeconds"`
}
