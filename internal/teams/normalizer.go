// Package teams maps raw team strings from bet records to canonical names and
// builds the candidate-name sets used for cache keys and fixture matching.
package teams

import (
	"regexp"
	"strings"

	"github.com/abrahamrubi0/bettrack/internal/domain"
	"github.com/abrahamrubi0/bettrack/internal/match"
)

// Sport selects which alias table applies to a bet. The zero value is
// SportUnknown, which resolves no aliases: normalization degrades to the
// identity function and matching falls back to raw strings.
type Sport int

const (
	SportUnknown Sport = iota
	SportNFL
	SportNBA
	SportCFL
	SportNCAAF
	SportNCAAB
	SportMLB
	SportWNBA
	SportNHL
)

// ParseSport maps a sport or league label from a bet record onto a Sport.
// Labels are compared case-insensitively after trimming.
func ParseSport(label string) Sport {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "nfl":
		return SportNFL
	case "nba":
		return SportNBA
	case "cfl":
		return SportCFL
	case "ncaaf", "ncaa football":
		return SportNCAAF
	case "ncaab", "ncaam", "ncaa", "ncaa basketball":
		return SportNCAAB
	case "mlb":
		return SportMLB
	case "wnba":
		return SportWNBA
	case "nhl":
		return SportNHL
	default:
		return SportUnknown
	}
}

// tableFor returns the alias table for a sport. SportUnknown gets an empty
// table so unsupported sports are a visible, testable branch.
func tableFor(s Sport) map[string]string {
	switch s {
	case SportNFL:
		return nflTeams
	case SportNBA:
		return nbaTeams
	case SportCFL:
		return cflTeams
	case SportNCAAF:
		return ncaaFootballTeams
	case SportNCAAB:
		return ncaaBasketballTeams
	case SportMLB:
		return mlbTeams
	case SportWNBA:
		return wnbaTeams
	case SportNHL:
		return nhlTeams
	default:
		return nil
	}
}

// leagueAliases maps bet-record league labels to the name used when comparing
// against provider league names.
var leagueAliases = map[string]string{
	"NCAAB": "NCAA",
}

// NormalizeLeague applies the league alias table, returning the input
// unchanged when no alias exists.
func NormalizeLeague(league string) string {
	if mapped, ok := leagueAliases[strings.ToUpper(strings.TrimSpace(league))]; ok {
		return mapped
	}
	return league
}

// Normalize returns the canonical name for rawName in the given sport or
// league. Lookup is case-insensitive and whitespace-trimmed. Names absent from
// the table are returned lower-cased and trimmed but otherwise unchanged;
// Normalize never fails.
func Normalize(rawName, sportOrLeague string) string {
	name := strings.ToLower(strings.TrimSpace(rawName))
	if name == "" {
		return ""
	}
	table := tableFor(ParseSport(sportOrLeague))
	if canonical, ok := table[name]; ok {
		return canonical
	}
	return name
}

// betLeadWord captures the leading alphabetic token of a free-text bet
// description, e.g. "lakers" out of "lakers -4.5".
var betLeadWord = regexp.MustCompile(`^([a-z]+)`)

// ExtractFromBet pulls candidate team names out of a free-text bet description
// when the structured visitor/home fields are empty. The leading word is taken
// as the best-effort team hint and normalized against the league's table.
func ExtractFromBet(theBet, league string) []string {
	text := strings.ToLower(strings.TrimSpace(theBet))
	if text == "" {
		return nil
	}
	m := betLeadWord.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	return []string{Normalize(m[1], league)}
}

// NormalizeBet converts a raw BetRecord into a ResolvedBet: canonical team and
// league names plus the candidate search-name superset. Candidates include the
// canonical names, the original spellings when they differ, names extracted
// from the bet text when both structured fields are empty, and — for NCAA-like
// leagues — leading-word prefixes of multi-word names (college teams are often
// listed under a shortened school name).
func NormalizeBet(rec domain.BetRecord) domain.ResolvedBet {
	league := strings.TrimSpace(rec.League)
	rawVisitor := strings.ToLower(strings.TrimSpace(rec.Visitor))
	rawHome := strings.ToLower(strings.TrimSpace(rec.Home))

	b := domain.ResolvedBet{
		Record:         rec,
		Visitor:        Normalize(rawVisitor, league),
		Home:           Normalize(rawHome, league),
		League:         NormalizeLeague(league),
		OriginalLeague: league,
	}

	seen := make(map[string]bool)
	add := func(name string) {
		name = strings.TrimSpace(name)
		if name != "" && !seen[name] {
			seen[name] = true
			b.SearchNames = append(b.SearchNames, name)
		}
	}

	add(b.Visitor)
	add(b.Home)
	if rawVisitor != b.Visitor {
		add(rawVisitor)
	}
	if rawHome != b.Home {
		add(rawHome)
	}

	if len(b.SearchNames) == 0 {
		for _, name := range ExtractFromBet(rec.TheBet, league) {
			add(name)
		}
	}

	if match.IsNCAALike(league) {
		for _, name := range append([]string(nil), b.SearchNames...) {
			words := strings.Fields(name)
			if len(words) > 1 {
				add(words[0])
			}
			if len(words) > 2 {
				add(words[0] + " " + words[1])
			}
		}
	}

	return b
}
