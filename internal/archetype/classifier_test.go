package archetype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"love-vs-grades-go/internal/types"
)

func TestCatalogHasTwelveUniqueEntries(t *testing.T) {
	all := Catalog()
	require.Len(t, all, 12)
	seen := map[string]bool{}
	for _, a := range all {
		assert.False(t, seen[a.ID], "duplicate id %s", a.ID)
		seen[a.ID] = true
		assert.NotEmpty(t, a.Title)
		assert.NotEmpty(t, a.StatLeft)
		assert.NotEmpty(t, a.StatRight)
	}

	all[0].Title = "mutated"
	again, ok := Lookup(all[0].ID)
	require.True(t, ok)
	assert.NotEqual(t, "mutated", again.Title)
}

func TestClassifyRules(t *testing.T) {
	tests := []struct {
		name    string
		answers types.AnswerSet
		want    string
	}{
		{"empty answers", types.AnswerSet{}, BalancedZen},
		{"heartbroken beats high focus", types.AnswerSet{"status": "heartbroken", "focus_level": 95.0}, Heartbroken},
		{"taken studies more", types.AnswerSet{"status": "taken", "focus_level": 90.0, "study_time_change": "more"}, LockedInLover},
		{"taken improves focus", types.AnswerSet{"status": "taken", "focus_level": "100", "romantic_thought_impact": "slightly_improve"}, LockedInLover},
		{"taken otherwise", types.AnswerSet{"status": "taken", "focus_level": 80.0}, PowerCouple},
		{"single never checks phone", types.AnswerSet{"status": "single", "focus_level": 80.0, "notifications_freq": "never"}, UnbotheredIcon},
		{"single rarely checks phone", types.AnswerSet{"focus_level": 85.0, "notifications_freq": "rarely"}, UnbotheredIcon},
		{"single no partner", types.AnswerSet{"status": "single", "focus_level": 90.0}, LoneWolf},
		{"single separate partner", types.AnswerSet{"focus_level": 90.0, "study_partner": "separate"}, LoneWolf},
		{"single productive partner", types.AnswerSet{"focus_level": 90.0, "study_partner": "productive"}, AcademicWeapon},
		{"talking high focus", types.AnswerSet{"status": "talking", "focus_level": 80.0}, ChaosCoordinator},
		{"low focus taken distracted", types.AnswerSet{"status": "taken", "focus_level": 40.0, "romantic_thought_impact": "greatly_reduce"}, LoverBrain},
		{"low focus talking checks phone", types.AnswerSet{"status": "talking", "focus_level": 10.0, "notifications_freq": "very_often"}, LoverBrain},
		{"low focus taken calm", types.AnswerSet{"status": "taken", "focus_level": 25.0}, AcademicVictim},
		{"low focus single", types.AnswerSet{"status": "single", "focus_level": 0.0, "notifications_freq": "often"}, AcademicVictim},
		{"talking distracted mid focus", types.AnswerSet{"status": "talking", "focus_level": 60.0, "notifications_freq": "often"}, HopelessRomantic},
		{"stressed mid focus", types.AnswerSet{"status": "single", "focus_level": 50.0, "mood_impact": "stressed"}, ChaosCoordinator},
		{"often checks phone", types.AnswerSet{"status": "taken", "focus_level": 75.0, "notifications_freq": "often"}, ChaosCoordinator},
		{"stressed below fifty", types.AnswerSet{"focus_level": 45.0, "mood_impact": "stressed"}, MysteryLead},
		{"relaxed mid focus", types.AnswerSet{"focus_level": 75.0, "mood_impact": "relaxed"}, BalancedZen},
		{"sad mid focus", types.AnswerSet{"focus_level": 75.0, "mood_impact": "sad"}, MysteryLead},
		{"distracted mood", types.AnswerSet{"focus_level": 50.0, "mood_impact": "distracted"}, MysteryLead},
		{"padded status is trimmed", types.AnswerSet{"status": " taken ", "focus_level": 90.0}, PowerCouple},
		{"blank status takes default", types.AnswerSet{"status": "   ", "focus_level": 90.0}, LoneWolf},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.answers)
			assert.Equal(t, tt.want, got.Archetype.ID)
		})
	}
}

func TestClassifyFocusBoundaries(t *testing.T) {
	base := func(focus float64) types.AnswerSet {
		return types.AnswerSet{"status": "single", "focus_level": focus, "mood_impact": "sad"}
	}
	assert.Equal(t, LoneWolf, Classify(base(80)).Archetype.ID)
	assert.Equal(t, AcademicVictim, Classify(base(40)).Archetype.ID)
	assert.Equal(t, MysteryLead, Classify(base(79)).Archetype.ID)
	assert.Equal(t, MysteryLead, Classify(base(41)).Archetype.ID)
}

func TestClassifyIsTotalAndDeterministic(t *testing.T) {
	statuses := []string{"", "single", "talking", "taken", "heartbroken", "other"}
	focuses := []any{nil, 0.0, 40.0, 41.0, 50.0, 79.0, 80.0, 100.0, "oops"}
	impacts := []string{"", "improve", "none", "greatly_reduce"}
	notifs := []string{"", "never", "sometimes", "often", "very_often"}
	changes := []string{"", "more", "less"}
	moods := []string{"", "happy", "stressed", "sad"}

	for _, s := range statuses {
		for _, f := range focuses {
			for _, i := range impacts {
				for _, n := range notifs {
					for _, c := range changes {
						for _, m := range moods {
							answers := types.AnswerSet{
								"status": s, "focus_level": f, "romantic_thought_impact": i,
								"notifications_freq": n, "study_time_change": c, "mood_impact": m,
							}
							first := Classify(answers)
							_, ok := Lookup(first.Archetype.ID)
							require.True(t, ok)
							require.Equal(t, first, Classify(answers))
							require.GreaterOrEqual(t, first.LeftStatValue, 0.0)
							require.LessOrEqual(t, first.LeftStatValue, 100.0)
							require.GreaterOrEqual(t, first.RightStatValue, 0.0)
							require.LessOrEqual(t, first.RightStatValue, 100.0)
						}
					}
				}
			}
		}
	}
}

func TestStats(t *testing.T) {
	answers := types.AnswerSet{"focus_level": 70.0, "emotional_effect_strength": 3.0}

	assert.Equal(t, 99.0, LeftStat(AcademicWeapon, answers))
	assert.Equal(t, 95.0, LeftStat(LoneWolf, answers))
	assert.Equal(t, 15.0, LeftStat(AcademicVictim, answers))
	assert.Equal(t, 20.0, LeftStat(LoverBrain, answers))
	assert.Equal(t, 90.0, LeftStat(Heartbroken, answers))
	assert.Equal(t, 70.0, LeftStat(PowerCouple, answers))
	assert.Equal(t, 80.0, LeftStat(PowerCouple, types.AnswerSet{}))
	assert.Equal(t, 70.0, LeftStat(MysteryLead, answers))
	assert.Equal(t, 50.0, LeftStat(MysteryLead, types.AnswerSet{}))

	assert.Equal(t, 100.0, RightStat(UnbotheredIcon, answers))
	assert.Equal(t, 100.0, RightStat(AcademicWeapon, answers))
	assert.Equal(t, 95.0, RightStat(LoverBrain, answers))
	assert.Equal(t, 60.0, RightStat(BalancedZen, answers))
	assert.Equal(t, 20.0, RightStat(BalancedZen, types.AnswerSet{}))
	assert.Equal(t, 100.0, RightStat(BalancedZen, types.AnswerSet{"emotional_effect_strength": 9.0}))
}
