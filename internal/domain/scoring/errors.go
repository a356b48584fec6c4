package scoring

import "errors"

// Sentinel kinds for scoring errors. Unknown tiers are fatal for the whole
// request; silently defaulting would silently bias results.
var (
	ErrUnknownPriceTier    = errors.New("unknown price tier")
	ErrUnknownDistanceTier = errors.New("unknown distance tier")
	ErrInvalidWeights      = errors.New("dimension weights must sum to 100")
)
