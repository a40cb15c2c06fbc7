package stats

import (
	"time"

	"github.com/robharvey123/cricket-platform/internal/domain/scoring"
)

// PlayerSeasonStats is one row per (player, season). Rows are replaced
// wholesale on every aggregation pass; derived rates are recomputed each time
// and nil means undefined, never a divide-by-zero artifact.
type PlayerSeasonStats struct {
	PlayerID string
	ClubID   string
	SeasonID string

	MatchesBatted int
	MatchesBowled int
	Innings       int
	NotOuts       int
	Runs          int
	BallsFaced    int
	Fours         int
	Sixes         int
	Ducks         int
	Fifties       int
	Hundreds      int

	OversBowled  float64
	BallsBowled  int
	Maidens      int
	RunsConceded int
	Wickets      int

	Catches   int
	Stumpings int
	RunOuts   int
	Drops     int
	Misfields int

	BattingPoints  float64
	BowlingPoints  float64
	FieldingPoints float64
	TotalPoints    float64

	BattingAverage    *float64
	StrikeRate        *float64
	BowlingAverage    *float64
	Economy           *float64
	BowlingStrikeRate *float64

	CalculatedAt time.Time
}

// PlayerMatchPerformance is one row per (player, match), feeding trend charts
// and recency displays. Upserted per aggregation pass.
type PlayerMatchPerformance struct {
	PlayerID string
	MatchID  string
	ClubID   string
	SeasonID string

	Runs         int
	BallsFaced   int
	Fours        int
	Sixes        int
	IsOut        bool
	OversBowled  float64
	Maidens      int
	RunsConceded int
	Wickets      int
	Catches      int
	Stumpings    int
	RunOuts      int

	Breakdown scoring.PointsBreakdown

	CalculatedAt time.Time
}
