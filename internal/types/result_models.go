// internal/types/result_models.go
package types

// --------------------------------------------
// Archetype catalog entry
// --------------------------------------------
type Archetype struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Emoji       string      `json:"emoji"`
	Description string      `json:"description"`
	Colors      ColorTokens `json:"colors"`
	Rarity      string      `json:"rarity"`
	StatLeft    string      `json:"stat_left"`
	StatRight   string      `json:"stat_right"`
}

type ColorTokens struct {
	Gradient string `json:"gradient"`
	Primary  string `json:"primary"`
	Rarity   string `json:"rarity"`
}

// --------------------------------------------
// Classifier output
// --------------------------------------------
type ClassificationResult struct {
	Archetype      Archetype `json:"archetype"`
	LeftStatValue  float64   `json:"left_stat_value"`  // 0–100
	RightStatValue float64   `json:"right_stat_value"` // 0–100
}

// --------------------------------------------
// Chart rows
// --------------------------------------------
type AggregateRow struct {
	Name       string  `json:"name"`
	Value      float64 `json:"value"`
	Count      int     `json:"count"`
	Unit       string  `json:"unit,omitempty"`
	Percentage string  `json:"percentage,omitempty"`
	Color      string  `json:"color,omitempty"`
}

// StatusSummary is one row of the comprehensive per-status table.
type StatusSummary struct {
	Status    string  `json:"status"`
	Count     int     `json:"count"`
	AvgFocus  float64 `json:"avg_focus"`
	AvgSleep  float64 `json:"avg_sleep"`
	AvgScreen float64 `json:"avg_screen"`
}
