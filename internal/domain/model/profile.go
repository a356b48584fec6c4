package model

import (
	"errors"
	"sort"
	"strings"
)

// ErrEmptyProfile marks a profile with no usable preference data.
var ErrEmptyProfile = errors.New("user profile has no preference data")

// UserProfile carries one user's ranking preferences. Category sets hold
// normalized strings (see NormalizeCategory). Preferred and disliked are
// disjoint by convention but not enforced.
type UserProfile struct {
	Preferred map[string]bool
	Disliked  map[string]bool

	// PriceTier names an entry in the configured price tier table,
	// e.g. "$$" or "irrelevant".
	PriceTier string

	// DistanceTier names an entry in the distance tier table. Ignored
	// when MaxDistanceKm is set.
	DistanceTier string

	// MaxDistanceKm, when positive, overrides the tier lookup with a raw
	// numeric maximum.
	MaxDistanceKm float64
}

// NewUserProfile builds a profile from comma-separated preference lists,
// normalizing every category. Tier names are kept verbatim; the engine
// validates them against its configured tables.
func NewUserProfile(preferred, disliked, priceTier, distanceTier string) (UserProfile, error) {
	p := UserProfile{
		Preferred:    SplitCategories(preferred),
		Disliked:     SplitCategories(disliked),
		PriceTier:    priceTier,
		DistanceTier: distanceTier,
	}
	if len(p.Preferred) == 0 && len(p.Disliked) == 0 && priceTier == "" && distanceTier == "" {
		return UserProfile{}, ErrEmptyProfile
	}
	return p, nil
}

// Fingerprint returns a stable key for the preference sets, used to
// memoize per-(preferred, disliked, category) lookups.
func (p UserProfile) Fingerprint() string {
	preferred := make([]string, 0, len(p.Preferred))
	for c := range p.Preferred {
		preferred = append(preferred, c)
	}
	disliked := make([]string, 0, len(p.Disliked))
	for c := range p.Disliked {
		disliked = append(disliked, c)
	}
	sort.Strings(preferred)
	sort.Strings(disliked)
	return strings.Join(preferred, ",") + "|" + strings.Join(disliked, ",")
}

// Prefers reports whether the normalized category is preferred.
func (p UserProfile) Prefers(category string) bool {
	return p.Preferred[category]
}

// Dislikes reports whether the normalized category is disliked.
func (p UserProfile) Dislikes(category string) bool {
	return p.Disliked[category]
}
