package model

// ScoreBreakdown records how one event's final score was assembled.
// Dimension scores are on the 0-100 scale; fractions are score/100.
// Produced fresh per ranking call and ephemeral unless persisted.
type ScoreBreakdown struct {
	TypeScore     float64
	DistanceScore float64
	TimeScore     float64
	PriceScore    float64

	WeightedType     float64
	WeightedDistance float64
	WeightedTime     float64
	WeightedPrice    float64

	HoursUntil float64

	// Substituted lists field names replaced by fallback statistics.
	Substituted []string

	// Raw is the weighted total before penalties, rounded to 2 decimals.
	Raw float64
	// Penalty is the composed multiplier in (0, 1].
	Penalty float64
	// Final is Raw * Penalty.
	Final float64
}

// RankedEvent pairs an event with its final score and 1-based rank.
type RankedEvent struct {
	Rank  int
	Event Event
	Score float64
}

// Result is the outcome of one ranking call.
type Result struct {
	// Ranked holds surviving events in descending score order.
	Ranked []RankedEvent

	// Breakdowns is keyed by content id; populated when diagnostics are on.
	Breakdowns map[int]ScoreBreakdown

	// Removed counts events dropped by validity filtering.
	Removed int

	// Excluded counts sentinel-scored entries set aside by the sorter.
	Excluded int

	// Substitutions counts fallback-statistic substitutions performed.
	Substitutions int

	// Comparisons counts elements examined during sort partitioning.
	Comparisons int64
}
