// Package match implements the league and team matching predicates used to
// pair a bet with a provider fixture.
package match

import "strings"

// ncaaLike is the set of bet-record league labels that refer to men's
// collegiate competitions and require relaxed provider-league matching.
var ncaaLike = map[string]bool{
	"NCAAB":           true,
	"NCAA BASKETBALL": true,
	"NCAA":            true,
	"NCAA FOOTBALL":   true,
	"NCAAF":           true,
}

// IsNCAALike reports whether the league label refers to a men's collegiate
// competition.
func IsNCAALike(league string) bool {
	return ncaaLike[strings.ToUpper(strings.TrimSpace(league))]
}

// LeagueMatches decides whether a provider league should be considered for a
// bet tagged with betLeague. Ordinary leagues require exact case-insensitive
// name equality. NCAA-like labels accept any provider league containing
// "NCAA" or "COLLEGE BASKETBALL", but reject women's leagues outright: a name
// containing "WNCAA" or "WOMEN" never matches even though it also contains
// "NCAA".
func LeagueMatches(betLeague, providerLeague string) bool {
	bet := strings.ToUpper(strings.TrimSpace(betLeague))
	provider := strings.ToUpper(strings.TrimSpace(providerLeague))

	if !IsNCAALike(betLeague) {
		return bet == provider
	}

	if strings.Contains(provider, "WNCAA") || strings.Contains(provider, "WOMEN") {
		return false
	}
	if strings.Contains(provider, "NCAA") {
		return true
	}
	return strings.Contains(provider, "COLLEGE") && strings.Contains(provider, "BASKETBALL")
}
