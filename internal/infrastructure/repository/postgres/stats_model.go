package postgres

import "database/sql"

type seasonStatsTableModel struct {
	ID       int64  `db:"id"`
	PlayerID string `db:"player_public_id"`
	ClubID   string `db:"club_public_id"`
	SeasonID string `db:"season"`

	MatchesBatted int `db:"matches_batted"`
	MatchesBowled int `db:"matches_bowled"`
	Innings       int `db:"innings"`
	NotOuts       int `db:"not_outs"`
	Runs          int `db:"runs"`
	BallsFaced    int `db:"balls_faced"`
	Fours         int `db:"fours"`
	Sixes         int `db:"sixes"`
	Ducks         int `db:"ducks"`
	Fifties       int `db:"fifties"`
	Hundreds      int `db:"hundreds"`

	OversBowled  float64 `db:"overs_bowled"`
	BallsBowled  int     `db:"balls_bowled"`
	Maidens      int     `db:"maidens"`
	RunsConceded int     `db:"runs_conceded"`
	Wickets      int     `db:"wickets"`

	Catches   int `db:"catches"`
	Stumpings int `db:"stumpings"`
	RunOuts   int `db:"run_outs"`
	Drops     int `db:"drops"`
	Misfields int `db:"misfields"`

	BattingPoints  float64 `db:"batting_points"`
	BowlingPoints  float64 `db:"bowling_points"`
	FieldingPoints float64 `db:"fielding_points"`
	TotalPoints    float64 `db:"total_points"`

	BattingAverage    sql.NullFloat64 `db:"batting_average"`
	StrikeRate        sql.NullFloat64 `db:"strike_rate"`
	BowlingAverage    sql.NullFloat64 `db:"bowling_average"`
	Economy           sql.NullFloat64 `db:"economy"`
	BowlingStrikeRate sql.NullFloat64 `db:"bowling_strike_rate"`

	CalculatedAt int64  `db:"calculated_at"`
	DeletedAt    *int64 `db:"deleted_at"`
}

type seasonStatsInsertModel struct {
	PlayerID string `db:"player_public_id"`
	ClubID   string `db:"club_public_id"`
	SeasonID string `db:"season"`

	MatchesBatted int `db:"matches_batted"`
	MatchesBowled int `db:"matches_bowled"`
	Innings       int `db:"innings"`
	NotOuts       int `db:"not_outs"`
	Runs          int `db:"runs"`
	BallsFaced    int `db:"balls_faced"`
	Fours         int `db:"fours"`
	Sixes         int `db:"sixes"`
	Ducks         int `db:"ducks"`
	Fifties       int `db:"fifties"`
	Hundreds      int `db:"hundreds"`

	OversBowled  float64 `db:"overs_bowled"`
	BallsBowled  int     `db:"balls_bowled"`
	Maidens      int     `db:"maidens"`
	RunsConceded int     `db:"runs_conceded"`
	Wickets      int     `db:"wickets"`

	Catches   int `db:"catches"`
	Stumpings int `db:"stumpings"`
	RunOuts   int `db:"run_outs"`
	Drops     int `db:"drops"`
	Misfields int `db:"misfields"`

	BattingPoints  float64 `db:"batting_points"`
	BowlingPoints  float64 `db:"bowling_points"`
	FieldingPoints float64 `db:"fielding_points"`
	TotalPoints    float64 `db:"total_points"`

	BattingAverage    sql.NullFloat64 `db:"batting_average"`
	StrikeRate        sql.NullFloat64 `db:"strike_rate"`
	BowlingAverage    sql.NullFloat64 `db:"bowling_average"`
	Economy           sql.NullFloat64 `db:"economy"`
	BowlingStrikeRate sql.NullFloat64 `db:"bowling_strike_rate"`

	CalculatedAt int64 `db:"calculated_at"`
}

type matchPerformanceTableModel struct {
	ID       int64  `db:"id"`
	PlayerID string `db:"player_public_id"`
	MatchID  string `db:"match_public_id"`
	ClubID   string `db:"club_public_id"`
	SeasonID string `db:"season"`

	Runs         int     `db:"runs"`
	BallsFaced   int     `db:"balls_faced"`
	Fours        int     `db:"fours"`
	Sixes        int     `db:"sixes"`
	IsOut        bool    `db:"is_out"`
	OversBowled  float64 `db:"overs_bowled"`
	Maidens      int     `db:"maidens"`
	RunsConceded int     `db:"runs_conceded"`
	Wickets      int     `db:"wickets"`
	Catches      int     `db:"catches"`
	Stumpings    int     `db:"stumpings"`
	RunOuts      int     `db:"run_outs"`

	Breakdown string `db:"breakdown"`

	CalculatedAt int64  `db:"calculated_at"`
	DeletedAt    *int64 `db:"deleted_at"`
}

type matchPerformanceInsertModel struct {
	PlayerID string `db:"player_public_id"`
	MatchID  string `db:"match_public_id"`
	ClubID   string `db:"club_public_id"`
	SeasonID string `db:"season"`

	Runs         int     `db:"runs"`
	BallsFaced   int     `db:"balls_faced"`
	Fours        int     `db:"fours"`
	Sixes        int     `db:"sixes"`
	IsOut        bool    `db:"is_out"`
	OversBowled  float64 `db:"overs_bowled"`
	Maidens      int     `db:"maidens"`
	RunsConceded int     `db:"runs_conceded"`
	Wickets      int     `db:"wickets"`
	Catches      int     `db:"catches"`
	Stumpings    int     `db:"stumpings"`
	RunOuts      int     `db:"run_outs"`

	Breakdown string `db:"breakdown"`

	CalculatedAt int64 `db:"calculated_at"`
}
