// Package domain defines the core types shared across the bet settlement
// tracker: bet records, settled events, cache ports, and sentinel errors.
package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// BetRecord is a single open bet as produced by the bet source. Team names may
// be abbreviated, misspelled, or missing entirely (in which case TheBet holds
// the only hint about which teams are involved). A BetRecord is immutable once
// read; it is normalized into a ResolvedBet before any provider lookup.
type BetRecord struct {
	ID      int64           `json:"id"`
	Sport   string          `json:"sport"`
	League  string          `json:"league"`
	Visitor string          `json:"visitor"`
	Home    string          `json:"home"`
	BetType string          `json:"bet_type"`
	TheBet  string          `json:"the_bet"`
	Line    decimal.Decimal `json:"line"`
	Period  string          `json:"period"`
}

// ResolvedBet is a BetRecord with canonical team and league names applied. The
// original spellings are retained for display so notifications show what the
// bettor actually wrote.
type ResolvedBet struct {
	Record BetRecord

	// Canonical (lower-cased, alias-resolved) team names. Empty when the
	// corresponding raw field was empty.
	Visitor string
	Home    string

	// League after alias mapping (e.g. NCAAB -> NCAA). OriginalLeague keeps the
	// label as it appeared on the record.
	League         string
	OriginalLeague string

	// SearchNames is the superset of candidate team names used for cache keys
	// and fixture matching: canonical names, original spellings, and any names
	// extracted heuristically from the free-text bet description.
	SearchNames []string
}

// GuardKey returns the composite de-duplication key for this bet: once a bet
// with this key has been notified it is never notified again within the
// process lifetime.
func (b ResolvedBet) GuardKey() string {
	return fmt.Sprintf("%d_%s_%s", b.Record.ID, b.Visitor, b.Home)
}

// HasTeamHint reports whether the bet carries any usable team information,
// either structured or inside the free-text description.
func (b ResolvedBet) HasTeamHint() bool {
	return b.Visitor != "" || b.Home != "" || strings.TrimSpace(b.Record.TheBet) != ""
}
