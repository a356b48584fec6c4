// Package scoring computes per-dimension event scores and combines them
// into a single penalized 0-100 score for one user.
package scoring

// Weights assigns the fixed importance of each scoring dimension.
// The four weights must sum to 100.
type Weights struct {
	Type     float64 `koanf:"type"`
	Distance float64 `koanf:"distance"`
	Time     float64 `koanf:"time"`
	Price    float64 `koanf:"price"`
}

// Sum returns the total of all dimension weights.
func (w Weights) Sum() float64 {
	return w.Type + w.Distance + w.Time + w.Price
}

// PriceRange is the numeric [Min, Max] band a price tier maps to.
// A negative Max marks the band as unbounded.
type PriceRange struct {
	Min float64 `koanf:"min"`
	Max float64 `koanf:"max"`
}

// Unbounded reports whether the range has no upper limit.
func (r PriceRange) Unbounded() bool {
	return r.Max < 0
}

// PriceScoring holds the tiered price-score constants (0-100 scale).
type PriceScoring struct {
	FreeEventScore        float64 `koanf:"free_event_score"`
	InRangeScore          float64 `koanf:"in_range_score"`
	UnderBudgetCloseScore float64 `koanf:"under_budget_close_score"`
	UnderBudgetFarScore   float64 `koanf:"under_budget_far_score"`
	OverBudgetCloseScore  float64 `koanf:"over_budget_close_score"`
	OverBudgetFarScore    float64 `koanf:"over_budget_far_score"`
	IrrelevantScore       float64 `koanf:"irrelevant_score"`
	TolerancePct          float64 `koanf:"tolerance_pct"`
}

// TimeScoring holds the multi-peak time-score constants, all in hours.
type TimeScoring struct {
	ImmediatePeakHours  float64 `koanf:"immediate_peak_hours"`
	SweetSpotHours      float64 `koanf:"sweet_spot_hours"`
	ToleranceHours      float64 `koanf:"tolerance_hours"`
	LongDecayStartHours float64 `koanf:"long_decay_start_hours"`
	LongDecayFactor     float64 `koanf:"long_decay_factor"`
}

// Penalties holds the post-aggregation multiplicative corrections.
type Penalties struct {
	PriceToleranceMultiplier    float64 `koanf:"price_tolerance_multiplier"`
	PriceSeverePenalty          float64 `koanf:"price_severe_penalty"`
	DistanceToleranceMultiplier float64 `koanf:"distance_tolerance_multiplier"`
	DistanceSeverePenalty       float64 `koanf:"distance_severe_penalty"`
	DislikedPenalty             float64 `koanf:"disliked_penalty"`
	FarFutureThresholdHours     float64 `koanf:"far_future_threshold_hours"`
	FarFutureBasePenalty        float64 `koanf:"far_future_base_penalty"`
	FarFutureDailyDecay         float64 `koanf:"far_future_daily_decay"`
	FarFutureMinPenalty         float64 `koanf:"far_future_min_penalty"`
}

// Config is the complete scoring configuration passed to the engine at
// construction. Nothing in the scorers reads package-level state.
type Config struct {
	Weights       Weights               `koanf:"weights"`
	PriceTiers    map[string]PriceRange `koanf:"price_tiers"`
	DistanceTiers map[string]float64    `koanf:"distance_tiers"`
	Price         PriceScoring          `koanf:"price"`
	Time          TimeScoring           `koanf:"time"`
	Penalties     Penalties             `koanf:"penalties"`
}

// DefaultConfig returns the production scoring configuration.
func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			Type:     45,
			Distance: 25,
			Time:     15,
			Price:    15,
		},
		PriceTiers: map[string]PriceRange{
			"$":          {Min: 0, Max: 30},
			"$$":         {Min: 31, Max: 100},
			"$$$":        {Min: 101, Max: 300},
			"irrelevant": {Min: 0, Max: -1},
		},
		DistanceTiers: map[string]float64{
			"Very Local":   5,
			"Local":        15,
			"City-wide":    30,
			"Regional":     100,
			"Any Distance": 500,
		},
		Price: PriceScoring{
			FreeEventScore:        75,
			InRangeScore:          100,
			UnderBudgetCloseScore: 75,
			UnderBudgetFarScore:   50,
			OverBudgetCloseScore:  50,
			OverBudgetFarScore:    0,
			IrrelevantScore:       50,
			TolerancePct:          0.3,
		},
		Time: TimeScoring{
			ImmediatePeakHours:  6,
			SweetSpotHours:      36,
			ToleranceHours:      24,
			LongDecayStartHours: 72,
			LongDecayFactor:     0.05,
		},
		Penalties: Penalties{
			PriceToleranceMultiplier:    1.5,
			PriceSeverePenalty:          0.7,
			DistanceToleranceMultiplier: 1.2,
			DistanceSeverePenalty:       0.8,
			DislikedPenalty:             0.5,
			FarFutureThresholdHours:     168,
			FarFutureBasePenalty:        0.9,
			FarFutureDailyDecay:         0.05,
			FarFutureMinPenalty:         0.5,
		},
	}
}
