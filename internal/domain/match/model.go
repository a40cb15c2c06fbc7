package match

import "time"

// Side marks which end of the fixture an innings or club occupied.
type Side string

const (
	SideHome    Side = "home"
	SideAway    Side = "away"
	SideUnknown Side = ""
)

type Match struct {
	ID         string
	ClubID     string
	SeasonID   string
	TeamID     string
	ExternalID int64
	// HomeTeam/AwayTeam carry the raw names from the scorecard; the club side
	// is inferred from them during aggregation.
	HomeTeam  string
	AwayTeam  string
	ClubSide  Side
	PlayedAt  time.Time
	Published bool
	Innings   []Innings
}

type Innings struct {
	ID      string
	MatchID string
	Seq     int
	// BattingTeam is the raw team-name text the innings was imported with.
	BattingTeam string
	Batting     []BattingCard
	Bowling     []BowlingCard
}

// BattingCard is one batter's row on an innings scorecard. PlayerID is empty
// until the name has been reconciled against the club roster.
type BattingCard struct {
	PlayerID    string
	PlayerName  string
	Runs        int
	Balls       int
	Fours       int
	Sixes       int
	HowOut      string
	FielderID   string
	FielderName string
	IsOut       bool
}

type BowlingCard struct {
	PlayerID     string
	PlayerName   string
	Overs        float64
	Maidens      int
	RunsConceded int
	Wickets      int
	Wides        int
	NoBalls      int
}

// FieldingCard is one player's fielding row for a match. Derived rows were
// synthesized from dismissal text and may be overwritten while they stay
// all-zero; a row with any nonzero catches/stumpings/run-outs is treated as a
// manual record and is never replaced by inference.
type FieldingCard struct {
	MatchID   string
	PlayerID  string
	Catches   int
	Stumpings int
	RunOuts   int
	Drops     int
	Misfields int
	Derived   bool
}

// HasManualWicketCredit reports whether the row carries dismissal credits that
// inference must not touch.
func (c FieldingCard) HasManualWicketCredit() bool {
	return c.Catches > 0 || c.Stumpings > 0 || c.RunOuts > 0
}
