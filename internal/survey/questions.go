package survey

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"love-vs-grades-go/internal/ingest"
)

type QuestionType string

const (
	Choice QuestionType = "choice"
	Slider QuestionType = "slider"
	Mood   QuestionType = "mood"
	Text   QuestionType = "text"
)

// Context drives which visual theme the client shows for a question.
type Context string

const (
	Love    Context = "love"
	Study   Context = "study"
	General Context = "general"
)

type Option struct {
	Label string `json:"label"`
	Emoji string `json:"emoji"`
	Value string `json:"value"`
}

type SliderStop struct {
	Value int    `json:"value"`
	Label string `json:"label"`
	Emoji string `json:"emoji,omitempty"`
}

type Question struct {
	ID          string       `json:"id"`
	Section     string       `json:"section"`
	Context     Context      `json:"context"`
	Title       string       `json:"title"`
	Subtitle    string       `json:"subtitle,omitempty"`
	Type        QuestionType `json:"type"`
	Options     []Option     `json:"options,omitempty"`
	Min         int          `json:"min,omitempty"`
	Max         int          `json:"max,omitempty"`
	MinLabel    string       `json:"minLabel,omitempty"`
	MaxLabel    string       `json:"maxLabel,omitempty"`
	Placeholder string       `json:"placeholder,omitempty"`
	SliderStops []SliderStop `json:"sliderStops,omitempty"`
}

// MaxTextLength caps free-text answers, in runes.
const MaxTextLength = 2000

var ErrInvalidAnswer = errors.New("invalid answer")

// Validate checks v against the question and returns the value to store:
// option values as strings, slider positions as numbers, trimmed text.
func (q Question) Validate(v any) (any, error) {
	switch q.Type {
	case Choice, Mood:
		s := strings.TrimSpace(ingest.Stringify(v))
		for _, o := range q.Options {
			if o.Value == s {
				return s, nil
			}
		}
		return nil, fmt.Errorf("%w: %q is not an option of %s", ErrInvalidAnswer, s, q.ID)
	case Slider:
		n, ok := ingest.Number(v)
		if !ok || n < float64(q.Min) || n > float64(q.Max) {
			return nil, fmt.Errorf("%w: %s expects a number between %d and %d", ErrInvalidAnswer, q.ID, q.Min, q.Max)
		}
		return n, nil
	case Text:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s expects text", ErrInvalidAnswer, q.ID)
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, fmt.Errorf("%w: %s is empty", ErrInvalidAnswer, q.ID)
		}
		if utf8.RuneCountInString(s) > MaxTextLength {
			return nil, fmt.Errorf("%w: %s is longer than %d characters", ErrInvalidAnswer, q.ID, MaxTextLength)
		}
		return s, nil
	}
	return nil, fmt.Errorf("%w: unknown question type %q", ErrInvalidAnswer, q.Type)
}

var questions = []Question{
	{
		ID:       "grade",
		Section:  "The Basics",
		Context:  General,
		Title:    "What grade are you in?",
		Subtitle: "Just for stats, we promise.",
		Type:     Choice,
		Options: []Option{
			{"Freshman (9th)", "🐣", "9"},
			{"Sophomore (10th)", "🦎", "10"},
			{"Junior (11th)", "😰", "11"},
			{"Senior (12th)", "🎓", "12"},
			{"College/Uni", "🏛️", "college"},
		},
	},
	{
		ID:      "gender",
		Section: "The Basics",
		Context: General,
		Title:   "How do you identify?",
		Type:    Choice,
		Options: []Option{
			{"Girl", "👧", "female"},
			{"Boy", "👦", "male"},
		},
	},
	{
		ID:       "status",
		Section:  "Section A",
		Context:  Love,
		Title:    "Which of the following best describes your current emotional situation?",
		Subtitle: "Be honest. 🤐",
		Type:     Choice,
		Options: []Option{
			{"I am not emotionally interested in anyone", "🧘", "single"},
			{"I have a crush on someone", "👀", "talking"},
			{"I am in a romantic relationship", "🥰", "taken"},
			{"I recently experienced a breakup", "💔", "heartbroken"},
		},
	},
	{
		ID:      "focus_level",
		Section: "Section B",
		Context: Study,
		Title:   "How would you rate your general ability to focus while studying?",
		Type:    Choice,
		Options: []Option{
			{"Very Good", "🧠", "100"},
			{"Good", "👍", "75"},
			{"Average", "😐", "50"},
			{"Poor", "🫠", "25"},
			{"Very Poor", "💀", "0"},
		},
	},
	{
		ID:      "romantic_thoughts_freq",
		Section: "Section B",
		Context: Love,
		Title:   "During studying, how often do emotional or romantic thoughts come to your mind?",
		Type:    Choice,
		Options: []Option{
			{"Never", "🛡️", "never"},
			{"Rarely", "🌥️", "rarely"},
			{"Sometimes", "🤔", "sometimes"},
			{"Often", "💭", "often"},
			{"Always", "😍", "always"},
		},
	},
	{
		ID:      "romantic_thought_impact",
		Section: "Section B",
		Context: Love,
		Title:   "When emotional or romantic thoughts occur, how do they usually affect your focus?",
		Type:    Choice,
		Options: []Option{
			{"They improve my focus", "🚀", "improve"},
			{"They slightly improve my focus", "✨", "slightly_improve"},
			{"No effect", "🤷", "none"},
			{"They slightly reduce my focus", "📉", "slightly_reduce"},
			{"They greatly reduce my focus", "💥", "greatly_reduce"},
		},
	},
	{
		ID:       "emotional_effect_strength",
		Section:  "Section B",
		Context:  Love,
		Title:    "How strong is the effect of emotional or romantic feelings on your concentration?",
		Subtitle: "Drag the slider to rate from 1 to 5.",
		Type:     Slider,
		Min:      1,
		Max:      5,
		MinLabel: "Weak",
		MaxLabel: "Strong",
		SliderStops: []SliderStop{
			{1, "Barely Noticeable", "🛡️"},
			{2, "Slight Distraction", "☁️"},
			{3, "Moderate Impact", "🌊"},
			{4, "Strong Impact", "🌪️"},
			{5, "All Consuming", "💥"},
		},
	},
	{
		ID:      "notifications_freq",
		Section: "Digital Life",
		Context: General,
		Title:   "While studying, how often do you check your phone for notifications or replies?",
		Type:    Choice,
		Options: []Option{
			{"Never", "🔒", "never"},
			{"Rarely", "👀", "rarely"},
			{"Sometimes", "🤔", "sometimes"},
			{"Often", "😬", "often"},
			{"Very Often", "💀", "very_often"},
		},
	},
	{
		ID:       "study_time_change",
		Section:  "Study Habits",
		Context:  Study,
		Title:    "How does your study time change when you are emotionally involved?",
		Subtitle: "Crush, relationship, or breakup context.",
		Type:     Choice,
		Options: []Option{
			{"I study MORE than usual", "😤", "more"},
			{"No change", "🧘", "same"},
			{"I study LESS than usual", "📉", "less"},
		},
	},
	{
		ID:       "sleep_quality",
		Section:  "Health Check",
		Context:  General,
		Title:    "How's your sleep schedule?",
		Subtitle: "Are those late night talks worth the eye bags?",
		Type:     Slider,
		Min:      1,
		Max:      5,
		MinLabel: "Zombie",
		MaxLabel: "Fresh",
		SliderStops: []SliderStop{
			{1, "Zombie Mode", "🧟"},
			{2, "Surviving on Caffeine", "☕"},
			{3, "Average Human", "😐"},
			{4, "Well Rested", "😌"},
			{5, "Glowing & Fresh", "✨"},
		},
	},
	{
		ID:      "mood_impact",
		Section: "The Feels",
		Context: Love,
		Title:   "How does your love life affect your mood at school?",
		Type:    Mood,
		Options: []Option{
			{"Super Happy", "🤩", "happy"},
			{"Relaxed", "😌", "relaxed"},
			{"Distracted", "😵‍💫", "distracted"},
			{"Stressed", "😫", "stressed"},
			{"Sad / Down", "😢", "sad"},
			{"Unbothered", "💅", "neutral"},
		},
	},
	{
		ID:          "reflection",
		Section:     "Final Thoughts",
		Context:     General,
		Title:       "Briefly describe one specific instance where a romantic situation directly helped or harmed you.",
		Subtitle:    "e.g., A crush motivating you to study, or a breakup causing you to miss an assignment.",
		Type:        Text,
		Placeholder: "Share your story...",
	},
}

// Questions returns the survey in presentation order.
func Questions() []Question {
	out := make([]Question, len(questions))
	copy(out, questions)
	return out
}

func QuestionByID(id string) (Question, bool) {
	for _, q := range questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}
