package match

import "strings"

// TeamMatcher is one tier of the team-matching pipeline. Candidate and
// provider names are compared lower-cased; a matcher reports whether the
// candidate should be considered the same team as the provider name.
type TeamMatcher interface {
	Name() string
	Match(candidate, providerTeam string) bool
}

// Pipeline tries its matchers in registration order and short-circuits at the
// first hit.
type Pipeline struct {
	matchers []TeamMatcher
}

// NewPipeline builds a pipeline over the given matchers, tried in order.
func NewPipeline(matchers ...TeamMatcher) *Pipeline {
	return &Pipeline{matchers: matchers}
}

// ForLeague returns the standard matching pipeline for a league: exact
// equality first, then the NCAA token matcher for collegiate leagues or the
// substring matcher for everything else.
func ForLeague(league string) *Pipeline {
	if IsNCAALike(league) {
		return NewPipeline(Exact{}, NCAAToken{})
	}
	return NewPipeline(Exact{}, Substring{})
}

// Match reports the first matcher (by name) that pairs candidate with
// providerTeam, or ("", false) when none does.
func (p *Pipeline) Match(candidate, providerTeam string) (string, bool) {
	candidate = strings.ToLower(strings.TrimSpace(candidate))
	providerTeam = strings.ToLower(strings.TrimSpace(providerTeam))
	if candidate == "" || providerTeam == "" {
		return "", false
	}
	for _, m := range p.matchers {
		if m.Match(candidate, providerTeam) {
			return m.Name(), true
		}
	}
	return "", false
}

// Exact matches only on full string equality.
type Exact struct{}

func (Exact) Name() string { return "exact" }

func (Exact) Match(candidate, providerTeam string) bool {
	return candidate == providerTeam
}

// NCAAToken is the relaxed collegiate matcher: a candidate matches when the
// provider name starts with it, contains it as a whole word, or — for
// multi-word candidates — shares an ordered word prefix with it. College teams
// are listed under many spellings ("North Carolina", "North Carolina Tar
// Heels", "UNC Tar Heels"), so plain substring matching is both too loose and
// too strict here.
type NCAAToken struct{}

func (NCAAToken) Name() string { return "ncaa-token" }

func (NCAAToken) Match(candidate, providerTeam string) bool {
	if strings.HasPrefix(providerTeam, candidate) {
		return true
	}

	providerWords := strings.Fields(providerTeam)
	for _, w := range providerWords {
		if w == candidate {
			return true
		}
	}

	candidateWords := strings.Fields(candidate)
	if len(candidateWords) > 1 && len(providerWords) >= len(candidateWords) {
		for i, w := range candidateWords {
			if providerWords[i] != w {
				return false
			}
		}
		return true
	}
	return false
}

// Substring matches when either name contains the other. Used for
// professional leagues where provider names are full city+nickname strings
// and bet records carry fragments of them.
type Substring struct{}

func (Substring) Name() string { return "substring" }

func (Substring) Match(candidate, providerTeam string) bool {
	return strings.Contains(providerTeam, candidate) || strings.Contains(candidate, providerTeam)
}
