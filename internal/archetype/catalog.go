package archetype

import "love-vs-grades-go/internal/types"

const (
	PowerCouple      = "power_couple"
	AcademicWeapon   = "academic_weapon"
	LoverBrain       = "lover_brain"
	Heartbroken      = "heartbroken_poet"
	LoneWolf         = "lone_wolf"
	ChaosCoordinator = "chaos_coordinator"
	HopelessRomantic = "hopeless_romantic"
	UnbotheredIcon   = "unbothered_icon"
	LockedInLover    = "locked_in_lover"
	AcademicVictim   = "academic_victim"
	BalancedZen      = "npc_energy"
	MysteryLead      = "mystery_main"
)

var catalog = []types.Archetype{
	{
		ID:          PowerCouple,
		Title:       "The Power Couple",
		Emoji:       "👑",
		Description: "You have it all. High grades, healthy relationship. You are literally God's favorite. How does it feel to win at life?",
		Colors:      types.ColorTokens{Gradient: "from-amber-300 via-yellow-400 to-orange-500", Primary: "#f59e0b", Rarity: "text-amber-400 border-amber-500/50 bg-amber-500/10"},
		Rarity:      "MYTHIC",
		StatLeft:    "Ambition",
		StatRight:   "Romance",
	},
	{
		ID:          AcademicWeapon,
		Title:       "The Academic Weapon",
		Emoji:       "📚",
		Description: "Love is temporary. GPA is forever. You're locked in, you don't check your phone, and you're carrying the curve.",
		Colors:      types.ColorTokens{Gradient: "from-cyan-400 via-blue-500 to-indigo-600", Primary: "#06b6d4", Rarity: "text-cyan-400 border-cyan-500/50 bg-cyan-500/10"},
		Rarity:      "LEGENDARY",
		StatLeft:    "Grades",
		StatRight:   "Discipline",
	},
	{
		ID:          LoverBrain,
		Title:       "The Lover Brain",
		Emoji:       "😍",
		Description: "Head in the clouds, heart on your sleeve. You might fail math, but you're getting an A+ in texting back immediately.",
		Colors:      types.ColorTokens{Gradient: "from-rose-400 via-pink-500 to-fuchsia-600", Primary: "#f43f5e", Rarity: "text-rose-400 border-rose-500/50 bg-rose-500/10"},
		Rarity:      "COMMON",
		StatLeft:    "Focus",
		StatRight:   "Obsession",
	},
	{
		ID:          Heartbroken,
		Title:       "The Heartbroken Poet",
		Emoji:       "🥀",
		Description: "Turning pain into power (or at least into a really sad playlist). We believe in your comeback arc.",
		Colors:      types.ColorTokens{Gradient: "from-gray-400 via-slate-500 to-zinc-600", Primary: "#9ca3af", Rarity: "text-gray-400 border-gray-500/50 bg-gray-500/10"},
		Rarity:      "RARE",
		StatLeft:    "Tears",
		StatRight:   "Resilience",
	},
	{
		ID:          LoneWolf,
		Title:       "The Lone Wolf",
		Emoji:       "🐺",
		Description: "No drama, just results. You study alone, you succeed alone. You protect your peace at all costs.",
		Colors:      types.ColorTokens{Gradient: "from-emerald-400 via-teal-500 to-cyan-600", Primary: "#10b981", Rarity: "text-emerald-400 border-emerald-500/50 bg-emerald-500/10"},
		Rarity:      "EPIC",
		StatLeft:    "Independence",
		StatRight:   "Focus",
	},
	{
		ID:          ChaosCoordinator,
		Title:       "Chaos Coordinator",
		Emoji:       "🌀",
		Description: "Stressed, blessed, and coffee obsessed. You're barely holding it together, but your grades are somehow fine?",
		Colors:      types.ColorTokens{Gradient: "from-violet-400 via-purple-500 to-fuchsia-600", Primary: "#8b5cf6", Rarity: "text-violet-400 border-violet-500/50 bg-violet-500/10"},
		Rarity:      "UNCOMMON",
		StatLeft:    "Stress",
		StatRight:   "Performance",
	},
	{
		ID:          HopelessRomantic,
		Title:       "Hopeless Romantic",
		Emoji:       "💌",
		Description: "You're not dating, but you're definitely not studying. That situationship is a full-time job right now.",
		Colors:      types.ColorTokens{Gradient: "from-pink-300 via-rose-400 to-red-500", Primary: "#fb7185", Rarity: "text-pink-400 border-pink-500/50 bg-pink-500/10"},
		Rarity:      "COMMON",
		StatLeft:    "Delusion",
		StatRight:   "Hope",
	},
	{
		ID:          UnbotheredIcon,
		Title:       "The Unbothered Icon",
		Emoji:       "💅",
		Description: "Notifications off. Grades up. You simply do not perceive drama. Teach us your ways.",
		Colors:      types.ColorTokens{Gradient: "from-fuchsia-300 via-purple-400 to-indigo-500", Primary: "#c084fc", Rarity: "text-fuchsia-400 border-fuchsia-500/50 bg-fuchsia-500/10"},
		Rarity:      "MYTHIC",
		StatLeft:    "Chill",
		StatRight:   "Success",
	},
	{
		ID:          LockedInLover,
		Title:       "The Locked-In Lover",
		Emoji:       "🚀",
		Description: "You found someone who actually helps you study? That's the ultimate flex. Keep them forever.",
		Colors:      types.ColorTokens{Gradient: "from-lime-400 via-green-500 to-emerald-600", Primary: "#84cc16", Rarity: "text-lime-400 border-lime-500/50 bg-lime-500/10"},
		Rarity:      "LEGENDARY",
		StatLeft:    "Synergy",
		StatRight:   "Love",
	},
	{
		ID:          AcademicVictim,
		Title:       "The Academic Victim",
		Emoji:       "💀",
		Description: "School is cooking you right now. Focus is at 0%. It's rough out here. Maybe take a nap?",
		Colors:      types.ColorTokens{Gradient: "from-red-500 via-orange-500 to-amber-500", Primary: "#ef4444", Rarity: "text-red-400 border-red-500/50 bg-red-500/10"},
		Rarity:      "COMMON",
		StatLeft:    "Pain",
		StatRight:   "Suffering",
	},
	{
		ID:          BalancedZen,
		Title:       "The Balanced Zen",
		Emoji:       "🧘",
		Description: "Perfectly average. No major drama, decent grades. You are the glue holding society together.",
		Colors:      types.ColorTokens{Gradient: "from-sky-300 via-blue-400 to-cyan-500", Primary: "#38bdf8", Rarity: "text-sky-400 border-sky-500/50 bg-sky-500/10"},
		Rarity:      "RARE",
		StatLeft:    "Balance",
		StatRight:   "Peace",
	},
	{
		ID:          MysteryLead,
		Title:       "The Mystery Lead",
		Emoji:       "🎭",
		Description: "Your answers are all over the place. Are you okay? Are you in love? Who knows. It's a mystery.",
		Colors:      types.ColorTokens{Gradient: "from-indigo-400 via-violet-500 to-purple-600", Primary: "#818cf8", Rarity: "text-indigo-400 border-indigo-500/50 bg-indigo-500/10"},
		Rarity:      "EPIC",
		StatLeft:    "Mystery",
		StatRight:   "Intrigue",
	},
}

var byID = func() map[string]types.Archetype {
	m := make(map[string]types.Archetype, len(catalog))
	for _, a := range catalog {
		m[a.ID] = a
	}
	return m
}()

// Catalog returns a copy of the 12 archetypes in display order.
func Catalog() []types.Archetype {
	out := make([]types.Archetype, len(catalog))
	copy(out, catalog)
	return out
}

func Lookup(id string) (types.Archetype, bool) {
	a, ok := byID[id]
	return a, ok
}

func mustLookup(id string) types.Archetype {
	a, ok := byID[id]
	if !ok {
		panic("archetype: unknown id " + id)
	}
	return a
}
