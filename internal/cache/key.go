// Package cache defines the canonical key construction for the game-id cache.
// Keys must be built through these functions only; ad-hoc formatting produced
// silent cache misses in earlier revisions of this tracker.
package cache

import (
	"fmt"
	"strings"
)

// fold lower-cases a team name and strips all whitespace, so spelling
// variants that differ only in case or spacing share a key component.
func fold(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), ""))
}

// PairKey builds the cache key for an ordered pair of team names. Both
// orderings of the same pair produce distinct keys; callers that want
// order-independent storage write both via Keys.
func PairKey(a, b string) string {
	return fold(a) + "_" + fold(b)
}

// Keys returns both ordered-pair keys for a team pair. The provider's
// home/away assignment is not guaranteed to match the bet's own labeling, so
// an event id is always stored under both orderings.
func Keys(a, b string) [2]string {
	return [2]string{PairKey(a, b), PairKey(b, a)}
}

// BetKey builds the cache key tied to a bet's own identifier, used when team
// names were too ambiguous to produce a stable pair key.
func BetKey(betID int64) string {
	return fmt.Sprintf("bet_%d", betID)
}
