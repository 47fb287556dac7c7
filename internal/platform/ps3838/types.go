package ps3838

// Fixture is one scheduled or in-progress event from the fixtures endpoint.
type Fixture struct {
	ID     int64  `json:"id"`
	RotNum int64  `json:"rotNum"`
	Home   string `json:"home"`
	Away   string `json:"away"`
	Starts string `json:"starts"`
}

// FixtureLeague groups fixtures under a provider league.
type FixtureLeague struct {
	ID     int64     `json:"id"`
	Name   string    `json:"name"`
	Events []Fixture `json:"events"`
}

// FixturesResponse is the body of GET /v3/fixtures. The provider uses the
// singular "league" field name here, unlike the settled endpoint.
type FixturesResponse struct {
	SportID int             `json:"sportId"`
	Last    int64           `json:"last"`
	League  []FixtureLeague `json:"league"`
}

// SettledPeriod holds one period's scores for a settled event. Team1 is the
// away side, team2 the home side.
type SettledPeriod struct {
	Number     int     `json:"number"`
	Status     int     `json:"status"`
	Team1Score float64 `json:"team1Score"`
	Team2Score float64 `json:"team2Score"`
	SettledAt  string  `json:"settledAt"`
}

// SettledEvent is one concluded event from the settled endpoint. An event may
// appear here before its periods are graded, in which case Periods is empty.
type SettledEvent struct {
	ID      int64           `json:"id"`
	Periods []SettledPeriod `json:"periods"`
}

// SettledLeague groups settled events under a provider league.
type SettledLeague struct {
	ID     int64          `json:"id"`
	Events []SettledEvent `json:"events"`
}

// SettledResponse is the body of GET /v3/fixtures/settled. Last is the opaque
// pagination cursor to persist for the next incremental poll.
type SettledResponse struct {
	Last    int64           `json:"last"`
	Leagues []SettledLeague `json:"leagues"`
}
