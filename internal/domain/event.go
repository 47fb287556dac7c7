package domain

// Period holds the scores for one scoring period of a settled event. The
// provider reports scores as team1 (away) and team2 (home); period number zero
// is the official final score.
type Period struct {
	Number    int     `json:"number"`
	AwayScore float64 `json:"away_score"`
	HomeScore float64 `json:"home_score"`
	SettledAt string  `json:"settled_at"`
}

// SettledEvent is a concluded provider event with its per-period scores. An
// event with an empty Periods slice has been listed by the provider but not
// fully graded yet; it must be treated as not-yet-settled, never as resolved.
type SettledEvent struct {
	ID      int64    `json:"id"`
	Periods []Period `json:"periods"`
}

// Final returns the period-zero (official final) scores, if present.
func (e SettledEvent) Final() (Period, bool) {
	for _, p := range e.Periods {
		if p.Number == 0 {
			return p, true
		}
	}
	return Period{}, false
}

// TeamScore is one side of a settled scoreline as rendered in notifications.
type TeamScore struct {
	Name  string   `json:"name"`
	Score *float64 `json:"score"`
}

// PeriodScore is a per-period scoreline keyed by the display team names.
type PeriodScore struct {
	Number    int      `json:"number"`
	SettledAt string   `json:"settled_at"`
	Away      *float64 `json:"away"`
	Home      *float64 `json:"home"`
}

// Settlement is the outward notification payload for a resolved bet: the
// provider event identity, final and per-period scores, and the original bet
// fields for display.
type Settlement struct {
	GameID         int64         `json:"game_id"`
	RotationNumber int64         `json:"rotation_number,omitempty"`
	Teams          struct {
		Home TeamScore `json:"home"`
		Away TeamScore `json:"away"`
	} `json:"teams"`
	Periods []PeriodScore  `json:"periods"`
	Bet     SettlementBet  `json:"bet_info"`
}

// SettlementBet echoes the bet fields the way the bettor wrote them, with the
// provider's team names substituted when they were discovered during matching.
type SettlementBet struct {
	ID      int64  `json:"id"`
	Sport   string `json:"sport"`
	League  string `json:"league"`
	BetType string `json:"bet_type"`
	TheBet  string `json:"the_bet"`
	Line    string `json:"line"`
	Period  string `json:"period"`
	Visitor string `json:"visitor"`
	Home    string `json:"home"`
}

// NewSettlement builds a Settlement from a settled event and the display team
// names. Away maps to the provider's team1 scores, home to team2.
func NewSettlement(ev SettledEvent, homeName, awayName string, rotNum int64) Settlement {
	s := Settlement{
		GameID:         ev.ID,
		RotationNumber: rotNum,
	}
	s.Teams.Home = TeamScore{Name: homeName}
	s.Teams.Away = TeamScore{Name: awayName}

	for _, p := range ev.Periods {
		away, home := p.AwayScore, p.HomeScore
		s.Periods = append(s.Periods, PeriodScore{
			Number:    p.Number,
			SettledAt: p.SettledAt,
			Away:      &away,
			Home:      &home,
		})
	}

	if final, ok := ev.Final(); ok {
		away, home := final.AwayScore, final.HomeScore
		s.Teams.Away.Score = &away
		s.Teams.Home.Score = &home
	}
	return s
}
