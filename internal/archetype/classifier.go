package archetype

import (
	"strings"

	"love-vs-grades-go/internal/ingest"
	"love-vs-grades-go/internal/types"
)

// Inputs are the answers the decision tree looks at, with defaults applied.
type Inputs struct {
	Focus         float64
	Status        string
	Impact        string // romantic_thought_impact
	Notifications string
	StudyChange   string
	Mood          string
	Partner       string
}

// ReadInputs extracts the decision inputs. Absent keys, blank strings and
// non-numeric focus values take the defaults.
func ReadInputs(answers types.AnswerSet) Inputs {
	return Inputs{
		Focus:         number(answers, "focus_level", 50),
		Status:        text(answers, "status", "single"),
		Impact:        text(answers, "romantic_thought_impact", "none"),
		Notifications: text(answers, "notifications_freq", "sometimes"),
		StudyChange:   text(answers, "study_time_change", "same"),
		Mood:          text(answers, "mood_impact", "neutral"),
		Partner:       text(answers, "study_partner", "na"),
	}
}

// Classify assigns exactly one archetype and computes both stat bars.
func Classify(answers types.AnswerSet) types.ClassificationResult {
	a := mustLookup(Decide(ReadInputs(answers)))
	return types.ClassificationResult{
		Archetype:      a,
		LeftStatValue:  LeftStat(a.ID, answers),
		RightStatValue: RightStat(a.ID, answers),
	}
}

// Decide walks the rules in priority order; the first match wins.
func Decide(in Inputs) string {
	distracted := strings.Contains(in.Impact, "reduce") || in.Notifications == "often" || in.Notifications == "very_often"

	if in.Status == "heartbroken" {
		return Heartbroken
	}

	if in.Focus >= 80 {
		switch in.Status {
		case "taken":
			if in.StudyChange == "more" || strings.Contains(in.Impact, "improve") {
				return LockedInLover
			}
			return PowerCouple
		case "single":
			if in.Notifications == "never" || in.Notifications == "rarely" {
				return UnbotheredIcon
			}
			if in.Partner == "separate" || in.Partner == "na" {
				return LoneWolf
			}
			return AcademicWeapon
		}
		return ChaosCoordinator
	}

	if in.Focus <= 40 {
		if (in.Status == "taken" || in.Status == "talking") && distracted {
			return LoverBrain
		}
		return AcademicVictim
	}

	if in.Status == "talking" && distracted {
		return HopelessRomantic
	}

	if (strings.Contains(in.Mood, "stressed") || in.Notifications == "often") && in.Focus >= 50 {
		return ChaosCoordinator
	}

	if in.Focus > 40 && in.Focus < 80 {
		for _, m := range []string{"happy", "neutral", "relaxed"} {
			if strings.Contains(in.Mood, m) {
				return BalancedZen
			}
		}
	}

	return MysteryLead
}

// LeftStat is the first stat bar (0–100).
func LeftStat(id string, answers types.AnswerSet) float64 {
	switch id {
	case AcademicWeapon:
		return 99
	case LoneWolf:
		return 95
	case AcademicVictim:
		return 15
	case PowerCouple:
		return clamp(number(answers, "focus_level", 80))
	case LoverBrain:
		return 20
	case Heartbroken:
		return 90
	}
	return clamp(number(answers, "focus_level", 50))
}

// RightStat is the second stat bar (0–100).
func RightStat(id string, answers types.AnswerSet) float64 {
	switch id {
	case UnbotheredIcon, AcademicWeapon:
		return 100
	case LoverBrain:
		return 95
	}
	return clamp(number(answers, "emotional_effect_strength", 1) * 100 / 5)
}

func number(answers types.AnswerSet, key string, def float64) float64 {
	if f, ok := ingest.Number(answers[key]); ok {
		return f
	}
	return def
}

func text(answers types.AnswerSet, key, def string) string {
	s := strings.TrimSpace(ingest.Stringify(answers[key]))
	if s == "" {
		return def
	}
	return s
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}
