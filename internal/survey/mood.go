package survey

import "love-vs-grades-go/internal/ingest"

// CompanionMood is the expression of the on-screen companion.
type CompanionMood string

const (
	MoodNeutral  CompanionMood = "neutral"
	MoodLove     CompanionMood = "love"
	MoodSleepy   CompanionMood = "sleepy"
	MoodExcited  CompanionMood = "excited"
	MoodStressed CompanionMood = "stressed"
)

// Companion derives the companion's mood from the session.
func Companion(s *State) CompanionMood {
	switch {
	case s == nil:
		return MoodNeutral
	case s.IsCompleted:
		return MoodLove
	case !s.HasStarted:
		return MoodNeutral
	case s.IsRushing:
		return MoodStressed
	}
	if status, _ := s.Answers["status"].(string); status == "taken" || status == "talking" {
		return MoodLove
	}
	if focus, ok := ingest.Number(s.Answers["focus_level"]); ok {
		switch {
		case focus < 30:
			return MoodSleepy
		case focus > 80:
			return MoodExcited
		}
	}
	return MoodNeutral
}
