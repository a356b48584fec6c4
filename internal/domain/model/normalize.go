package model

import "strings"

// NormalizeCategory canonicalizes a free-text event category: trims
// whitespace, lowercases, and strips one trailing pluralizing "s" so that
// "Festivals" and "festival" compare equal. Empty input stays empty.
func NormalizeCategory(category string) string {
	c := strings.ToLower(strings.TrimSpace(category))
	if len(c) > 1 && strings.HasSuffix(c, "s") {
		c = c[:len(c)-1]
	}
	return c
}

// SplitCategories parses a comma-separated category list into normalized,
// de-duplicated set form. Blank entries are dropped.
func SplitCategories(list string) map[string]bool {
	out := make(map[string]bool)
	for _, part := range strings.Split(list, ",") {
		if c := NormalizeCategory(part); c != "" {
			out[c] = true
		}
	}
	return out
}
