package httpapi

import (
	"net/http"
	"time"

	"github.com/robharvey123/cricket-platform/internal/domain/scoring"
	"github.com/robharvey123/cricket-platform/internal/domain/stats"
)

type seasonStatsDTO struct {
	PlayerID string `json:"player_id"`
	ClubID   string `json:"club_id"`
	SeasonID string `json:"season_id"`

	MatchesBatted int `json:"matches_batted"`
	MatchesBowled int `json:"matches_bowled"`
	Innings       int `json:"innings"`
	NotOuts       int `json:"not_outs"`
	Runs          int `json:"runs"`
	BallsFaced    int `json:"balls_faced"`
	Fours         int `json:"fours"`
	Sixes         int `json:"sixes"`
	Ducks         int `json:"ducks"`
	Fifties       int `json:"fifties"`
	Hundreds      int `json:"hundreds"`

	OversBowled  float64 `json:"overs_bowled"`
	BallsBowled  int     `json:"balls_bowled"`
	Maidens      int     `json:"maidens"`
	RunsConceded int     `json:"runs_conceded"`
	Wickets      int     `json:"wickets"`

	Catches   int `json:"catches"`
	Stumpings int `json:"stumpings"`
	RunOuts   int `json:"run_outs"`
	Drops     int `json:"drops"`
	Misfields int `json:"misfields"`

	BattingPoints  float64 `json:"batting_points"`
	BowlingPoints  float64 `json:"bowling_points"`
	FieldingPoints float64 `json:"fielding_points"`
	TotalPoints    float64 `json:"total_points"`

	BattingAverage    *float64 `json:"batting_average"`
	StrikeRate        *float64 `json:"strike_rate"`
	BowlingAverage    *float64 `json:"bowling_average"`
	Economy           *float64 `json:"economy"`
	BowlingStrikeRate *float64 `json:"bowling_strike_rate"`

	CalculatedAt time.Time `json:"calculated_at,omitzero"`
}

func seasonStatsToDTO(s stats.PlayerSeasonStats) seasonStatsDTO {
	return seasonStatsDTO{
		PlayerID:          s.PlayerID,
		ClubID:            s.ClubID,
		SeasonID:          s.SeasonID,
		MatchesBatted:     s.MatchesBatted,
		MatchesBowled:     s.MatchesBowled,
		Innings:           s.Innings,
		NotOuts:           s.NotOuts,
		Runs:              s.Runs,
		BallsFaced:        s.BallsFaced,
		Fours:             s.Fours,
		Sixes:             s.Sixes,
		Ducks:             s.Ducks,
		Fifties:           s.Fifties,
		Hundreds:          s.Hundreds,
		OversBowled:       s.OversBowled,
		BallsBowled:       s.BallsBowled,
		Maidens:           s.Maidens,
		RunsConceded:      s.RunsConceded,
		Wickets:           s.Wickets,
		Catches:           s.Catches,
		Stumpings:         s.Stumpings,
		RunOuts:           s.RunOuts,
		Drops:             s.Drops,
		Misfields:         s.Misfields,
		BattingPoints:     s.BattingPoints,
		BowlingPoints:     s.BowlingPoints,
		FieldingPoints:    s.FieldingPoints,
		TotalPoints:       s.TotalPoints,
		BattingAverage:    s.BattingAverage,
		StrikeRate:        s.StrikeRate,
		BowlingAverage:    s.BowlingAverage,
		Economy:           s.Economy,
		BowlingStrikeRate: s.BowlingStrikeRate,
		CalculatedAt:      s.CalculatedAt,
	}
}

type performanceDTO struct {
	PlayerID string `json:"player_id"`
	MatchID  string `json:"match_id"`
	ClubID   string `json:"club_id"`
	SeasonID string `json:"season_id"`

	Runs         int     `json:"runs"`
	BallsFaced   int     `json:"balls_faced"`
	Fours        int     `json:"fours"`
	Sixes        int     `json:"sixes"`
	IsOut        bool    `json:"is_out"`
	OversBowled  float64 `json:"overs_bowled"`
	Maidens      int     `json:"maidens"`
	RunsConceded int     `json:"runs_conceded"`
	Wickets      int     `json:"wickets"`
	Catches      int     `json:"catches"`
	Stumpings    int     `json:"stumpings"`
	RunOuts      int     `json:"run_outs"`

	Breakdown scoring.PointsBreakdown `json:"breakdown"`

	CalculatedAt time.Time `json:"calculated_at,omitzero"`
}

func performanceToDTO(p stats.PlayerMatchPerformance) performanceDTO {
	return performanceDTO{
		PlayerID:     p.PlayerID,
		MatchID:      p.MatchID,
		ClubID:       p.ClubID,
		SeasonID:     p.SeasonID,
		Runs:         p.Runs,
		BallsFaced:   p.BallsFaced,
		Fours:        p.Fours,
		Sixes:        p.Sixes,
		IsOut:        p.IsOut,
		OversBowled:  p.OversBowled,
		Maidens:      p.Maidens,
		RunsConceded: p.RunsConceded,
		Wickets:      p.Wickets,
		Catches:      p.Catches,
		Stumpings:    p.Stumpings,
		RunOuts:      p.RunOuts,
		Breakdown:    p.Breakdown,
		CalculatedAt: p.CalculatedAt,
	}
}

func (h *Handler) ListSeasonStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasonStats")
	defer span.End()

	clubID := r.PathValue("clubID")
	season := r.PathValue("season")

	rows, err := h.aggregationService.ListSeasonStats(ctx, clubID, season)
	if err != nil {
		h.logger.WarnContext(ctx, "list season stats failed", "club_id", clubID, "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]seasonStatsDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, seasonStatsToDTO(row))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListMatchPerformances(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchPerformances")
	defer span.End()

	playerID := r.PathValue("playerID")
	season := r.URL.Query().Get("season")

	rows, err := h.aggregationService.ListMatchPerformances(ctx, playerID, season)
	if err != nil {
		h.logger.WarnContext(ctx, "list performances failed", "player_id", playerID, "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]performanceDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, performanceToDTO(row))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
