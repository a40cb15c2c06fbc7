package postgres

import "github.com/robharvey123/cricket-platform/internal/domain/match"

type matchTableModel struct {
	ID          int64  `db:"id"`
	PublicID    string `db:"public_id"`
	ClubID      string `db:"club_public_id"`
	SeasonID    string `db:"season"`
	TeamID      string `db:"team_public_id"`
	ExternalID  int64  `db:"external_id"`
	HomeTeam    string `db:"home_team"`
	AwayTeam    string `db:"away_team"`
	ClubSide    string `db:"club_side"`
	PlayedAt    int64  `db:"played_at"`
	IsPublished bool   `db:"is_published"`
	CreatedAt   int64  `db:"created_at"`
	UpdatedAt   int64  `db:"updated_at"`
	DeletedAt   *int64 `db:"deleted_at"`
}

type matchInsertModel struct {
	PublicID    string `db:"public_id"`
	ClubID      string `db:"club_public_id"`
	SeasonID    string `db:"season"`
	TeamID      string `db:"team_public_id"`
	ExternalID  int64  `db:"external_id"`
	HomeTeam    string `db:"home_team"`
	AwayTeam    string `db:"away_team"`
	ClubSide    string `db:"club_side"`
	PlayedAt    int64  `db:"played_at"`
	IsPublished bool   `db:"is_published"`
	CreatedAt   int64  `db:"created_at"`
	UpdatedAt   int64  `db:"updated_at"`
}

type inningsTableModel struct {
	ID          int64  `db:"id"`
	PublicID    string `db:"public_id"`
	MatchID     string `db:"match_public_id"`
	Seq         int    `db:"seq"`
	BattingTeam string `db:"batting_team"`
	CreatedAt   int64  `db:"created_at"`
	DeletedAt   *int64 `db:"deleted_at"`
}

type inningsInsertModel struct {
	PublicID    string `db:"public_id"`
	MatchID     string `db:"match_public_id"`
	Seq         int    `db:"seq"`
	BattingTeam string `db:"batting_team"`
	CreatedAt   int64  `db:"created_at"`
}

type battingCardTableModel struct {
	ID          int64  `db:"id"`
	InningsID   int64  `db:"innings_id"`
	Seq         int    `db:"seq"`
	PlayerID    string `db:"player_public_id"`
	PlayerName  string `db:"player_name"`
	Runs        int    `db:"runs"`
	Balls       int    `db:"balls"`
	Fours       int    `db:"fours"`
	Sixes       int    `db:"sixes"`
	HowOut      string `db:"how_out"`
	FielderID   string `db:"fielder_public_id"`
	FielderName string `db:"fielder_name"`
	IsOut       bool   `db:"is_out"`
	DeletedAt   *int64 `db:"deleted_at"`
}

type battingCardInsertModel struct {
	InningsID   int64  `db:"innings_id"`
	Seq         int    `db:"seq"`
	PlayerID    string `db:"player_public_id"`
	PlayerName  string `db:"player_name"`
	Runs        int    `db:"runs"`
	Balls       int    `db:"balls"`
	Fours       int    `db:"fours"`
	Sixes       int    `db:"sixes"`
	HowOut      string `db:"how_out"`
	FielderID   string `db:"fielder_public_id"`
	FielderName string `db:"fielder_name"`
	IsOut       bool   `db:"is_out"`
}

type bowlingCardTableModel struct {
	ID           int64   `db:"id"`
	InningsID    int64   `db:"innings_id"`
	Seq          int     `db:"seq"`
	PlayerID     string  `db:"player_public_id"`
	PlayerName   string  `db:"player_name"`
	Overs        float64 `db:"overs"`
	Maidens      int     `db:"maidens"`
	RunsConceded int     `db:"runs_conceded"`
	Wickets      int     `db:"wickets"`
	Wides        int     `db:"wides"`
	NoBalls      int     `db:"no_balls"`
	DeletedAt    *int64  `db:"deleted_at"`
}

type bowlingCardInsertModel struct {
	InningsID    int64   `db:"innings_id"`
	Seq          int     `db:"seq"`
	PlayerID     string  `db:"player_public_id"`
	PlayerName   string  `db:"player_name"`
	Overs        float64 `db:"overs"`
	Maidens      int     `db:"maidens"`
	RunsConceded int     `db:"runs_conceded"`
	Wickets      int     `db:"wickets"`
	Wides        int     `db:"wides"`
	NoBalls      int     `db:"no_balls"`
}

type fieldingCardTableModel struct {
	ID        int64  `db:"id"`
	MatchID   string `db:"match_public_id"`
	PlayerID  string `db:"player_public_id"`
	Catches   int    `db:"catches"`
	Stumpings int    `db:"stumpings"`
	RunOuts   int    `db:"run_outs"`
	Drops     int    `db:"drops"`
	Misfields int    `db:"misfields"`
	IsDerived bool   `db:"is_derived"`
	UpdatedAt int64  `db:"updated_at"`
	DeletedAt *int64 `db:"deleted_at"`
}

type fieldingCardInsertModel struct {
	MatchID   string `db:"match_public_id"`
	PlayerID  string `db:"player_public_id"`
	Catches   int    `db:"catches"`
	Stumpings int    `db:"stumpings"`
	RunOuts   int    `db:"run_outs"`
	Drops     int    `db:"drops"`
	Misfields int    `db:"misfields"`
	IsDerived bool   `db:"is_derived"`
	UpdatedAt int64  `db:"updated_at"`
}

func fieldingCardToDomain(row fieldingCardTableModel) match.FieldingCard {
	return match.FieldingCard{
		MatchID:   row.MatchID,
		PlayerID:  row.PlayerID,
		Catches:   row.Catches,
		Stumpings: row.Stumpings,
		RunOuts:   row.RunOuts,
		Drops:     row.Drops,
		Misfields: row.Misfields,
		Derived:   row.IsDerived,
	}
}
