package aggregator

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"love-vs-grades-go/internal/archetype"
	"love-vs-grades-go/internal/types"
)

// Palette is cycled over status breakdown slices.
var Palette = []string{"#F43F5E", "#A855F7", "#3B82F6", "#10B981", "#F59E0B", "#EC4899"}

// AllGrades disables the grade filter.
const AllGrades = "All"

// Filter keeps submissions of one grade. "" and "All" keep everything.
func Filter(subs []types.Submission, grade string) []types.Submission {
	if grade == "" || grade == AllGrades {
		return subs
	}
	out := make([]types.Submission, 0, len(subs))
	for _, s := range subs {
		if s.Answers.Grade == grade {
			out = append(out, s)
		}
	}
	return out
}

// group accumulates a running sum per label, remembering first-seen order.
type group struct {
	order []string
	sum   map[string]float64
	count map[string]int
}

func newGroup(labels ...string) *group {
	g := &group{sum: map[string]float64{}, count: map[string]int{}}
	for _, l := range labels {
		g.touch(l)
	}
	return g
}

func (g *group) touch(label string) {
	if _, ok := g.count[label]; !ok {
		g.order = append(g.order, label)
		g.count[label] = 0
	}
}

func (g *group) add(label string, v float64) {
	g.touch(label)
	g.sum[label] += v
	g.count[label]++
}

func (g *group) averages(unit string) []types.AggregateRow {
	rows := make([]types.AggregateRow, 0, len(g.order))
	for _, l := range g.order {
		n := g.count[l]
		avg := 0.0
		if n > 0 {
			avg = round(g.sum[l] / float64(n))
		}
		rows = append(rows, types.AggregateRow{Name: l, Value: avg, Count: n, Unit: unit})
	}
	return rows
}

// StatusBreakdown counts submissions per status with their share of the total.
func StatusBreakdown(subs []types.Submission) []types.AggregateRow {
	g := newGroup()
	for _, s := range subs {
		g.add(StatusLabel(s.Answers.Status), 1)
	}
	denom := float64(len(subs))
	if denom == 0 {
		denom = 1
	}
	rows := make([]types.AggregateRow, 0, len(g.order))
	for i, l := range g.order {
		n := g.count[l]
		rows = append(rows, types.AggregateRow{
			Name:       l,
			Value:      float64(n),
			Count:      n,
			Percentage: fmt.Sprintf("%.1f%%", float64(n)/denom*100),
			Color:      Palette[i%len(Palette)],
		})
	}
	return rows
}

// FocusByStatus averages focus per status, highest first.
func FocusByStatus(subs []types.Submission) []types.AggregateRow {
	g := newGroup()
	for _, s := range subs {
		g.add(StatusLabel(s.Answers.Status), s.Answers.FocusLevel)
	}
	return sortDesc(g.averages("Avg Focus"))
}

const (
	SleepLow  = "Zombie (<40)"
	SleepMid  = "Okay (40-80)"
	SleepHigh = "Rested (>80)"
)

// SleepBuckets averages focus per normalized sleep score bucket. All three
// buckets are always present.
func SleepBuckets(subs []types.Submission) []types.AggregateRow {
	g := newGroup(SleepLow, SleepMid, SleepHigh)
	for _, s := range subs {
		sleep := NormalizedSleep(s.Answers.SleepQuality)
		switch {
		case sleep < 40:
			g.add(SleepLow, s.Answers.FocusLevel)
		case sleep < 80:
			g.add(SleepMid, s.Answers.FocusLevel)
		default:
			g.add(SleepHigh, s.Answers.FocusLevel)
		}
	}
	return g.averages("Avg Focus")
}

// NormalizedSleep rescales 1–5 slider answers to 0–100.
func NormalizedSleep(v float64) float64 {
	if v <= 5 {
		return v * 20
	}
	return v
}

// PartnerLabel maps a study_partner token to its chart label.
func PartnerLabel(p string) string {
	switch p {
	case "productive":
		return "Productive"
	case "distracted":
		return "Distracting"
	case "separate":
		return "Solo"
	}
	return "No Partner"
}

// PartnerEffect averages focus per study partner kind, highest first.
func PartnerEffect(subs []types.Submission) []types.AggregateRow {
	g := newGroup()
	for _, s := range subs {
		g.add(PartnerLabel(s.Answers.StudyPartner), s.Answers.FocusLevel)
	}
	return sortDesc(g.averages("Avg Focus"))
}

const (
	ScreenLow  = "Low (0-2h)"
	ScreenMid  = "Mid (3-6h)"
	ScreenHigh = "High (7h+)"
)

// ScreenTimeMotivation averages homework motivation per screen time bucket.
func ScreenTimeMotivation(subs []types.Submission) []types.AggregateRow {
	g := newGroup(ScreenLow, ScreenMid, ScreenHigh)
	for _, s := range subs {
		hours := s.Answers.ScreenTime
		switch {
		case hours <= 2:
			g.add(ScreenLow, s.Answers.HomeworkMotivation)
		case hours <= 6:
			g.add(ScreenMid, s.Answers.HomeworkMotivation)
		default:
			g.add(ScreenHigh, s.Answers.HomeworkMotivation)
		}
	}
	return g.averages("Avg Motivation")
}

// ComprehensiveMatrix summarizes every raw status value.
func ComprehensiveMatrix(subs []types.Submission) []types.StatusSummary {
	focus, sleep, screen := newGroup(), newGroup(), newGroup()
	for _, s := range subs {
		status := s.Answers.Status
		if status == "" {
			status = "unknown"
		}
		focus.add(status, s.Answers.FocusLevel)
		sleep.add(status, NormalizedSleep(s.Answers.SleepQuality))
		screen.add(status, s.Answers.ScreenTime)
	}
	out := make([]types.StatusSummary, 0, len(focus.order))
	for _, status := range focus.order {
		n := float64(focus.count[status])
		out = append(out, types.StatusSummary{
			Status:    StatusLabel(status),
			Count:     focus.count[status],
			AvgFocus:  round(focus.sum[status] / n),
			AvgSleep:  round(sleep.sum[status] / n),
			AvgScreen: math.Floor(screen.sum[status]/n*10+0.5) / 10,
		})
	}
	return out
}

// ArchetypeDistribution classifies every submission and counts the results.
func ArchetypeDistribution(subs []types.Submission) []types.AggregateRow {
	counts := map[string]int{}
	for _, s := range subs {
		counts[archetype.Classify(s.Answers.AnswerSet()).Archetype.ID]++
	}
	var rows []types.AggregateRow
	for _, a := range archetype.Catalog() {
		if n := counts[a.ID]; n > 0 {
			rows = append(rows, types.AggregateRow{Name: a.Title, Value: float64(n), Count: n, Color: a.Colors.Primary})
		}
	}
	return sortDesc(rows)
}

// StatusLabel capitalizes a status token and swaps its first underscore for a
// space: "its_complicated" -> "Its complicated".
func StatusLabel(s string) string {
	if s == "" {
		return "Unknown"
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.Replace(s[size:], "_", " ", 1)
}

func sortDesc(rows []types.AggregateRow) []types.AggregateRow {
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Value > rows[j].Value })
	return rows
}

// round is half-up, matching how the dashboard has always rounded.
func round(v float64) float64 {
	return math.Floor(v + 0.5)
}

// Dashboard bundles every chart for one grade filter.
type Dashboard struct {
	Grade          string                `json:"grade"`
	Total          int                   `json:"total"`
	Status         []types.AggregateRow  `json:"status"`
	FocusByStatus  []types.AggregateRow  `json:"focus_by_status"`
	Sleep          []types.AggregateRow  `json:"sleep"`
	Partner        []types.AggregateRow  `json:"partner"`
	ScreenTime     []types.AggregateRow  `json:"screen_time"`
	Archetypes     []types.AggregateRow  `json:"archetypes"`
	Matrix         []types.StatusSummary `json:"matrix"`
	AvgFocus       float64               `json:"avg_focus"`
	AvgTimeSeconds float64               `json:"avg_time_seconds"`
}

// BuildDashboard filters by grade and runs every reduction.
func BuildDashboard(subs []types.Submission, grade string) Dashboard {
	if grade == "" {
		grade = AllGrades
	}
	filtered := Filter(subs, grade)
	d := Dashboard{
		Grade:         grade,
		Total:         len(filtered),
		Status:        StatusBreakdown(filtered),
		FocusByStatus: FocusByStatus(filtered),
		Sleep:         SleepBuckets(filtered),
		Partner:       PartnerEffect(filtered),
		ScreenTime:    ScreenTimeMotivation(filtered),
		Archetypes:    ArchetypeDistribution(filtered),
		Matrix:        ComprehensiveMatrix(filtered),
	}
	if n := float64(len(filtered)); n > 0 {
		var focus, secs float64
		for _, s := range filtered {
			focus += s.Answers.FocusLevel
			secs += s.Metrics.TotalTimeSeconds
		}
		d.AvgFocus = round(focus / n)
		d.AvgTimeSeconds = round(secs / n)
	}
	return d
}

// Grades lists the distinct grades present, in first-seen order.
func Grades(subs []types.Submission) []string {
	seen := map[string]bool{}
	var out []string
	for _, s := range subs {
		if !seen[s.Answers.Grade] {
			seen[s.Answers.Grade] = true
			out = append(out, s.Answers.Grade)
		}
	}
	return out
}
