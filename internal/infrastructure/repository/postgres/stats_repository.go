package postgres

import (
	"context"
	"fmt"

	sonic "github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/robharvey123/cricket-platform/internal/domain/stats"
	qb "github.com/robharvey123/cricket-platform/internal/platform/querybuilder"
)

type StatsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) UpsertSeasonStats(ctx context.Context, row stats.PlayerSeasonStats) error {
	insertModel := seasonStatsInsertModel{
		PlayerID: row.PlayerID,
		ClubID:   row.ClubID,
		SeasonID: row.SeasonID,

		MatchesBatted: row.MatchesBatted,
		MatchesBowled: row.MatchesBowled,
		Innings:       row.Innings,
		NotOuts:       row.NotOuts,
		Runs:          row.Runs,
		BallsFaced:    row.BallsFaced,
		Fours:         row.Fours,
		Sixes:         row.Sixes,
		Ducks:         row.Ducks,
		Fifties:       row.Fifties,
		Hundreds:      row.Hundreds,

		OversBowled:  row.OversBowled,
		BallsBowled:  row.BallsBowled,
		Maidens:      row.Maidens,
		RunsConceded: row.RunsConceded,
		Wickets:      row.Wickets,

		Catches:   row.Catches,
		Stumpings: row.Stumpings,
		RunOuts:   row.RunOuts,
		Drops:     row.Drops,
		Misfields: row.Misfields,

		BattingPoints:  row.BattingPoints,
		BowlingPoints:  row.BowlingPoints,
		FieldingPoints: row.FieldingPoints,
		TotalPoints:    row.TotalPoints,

		BattingAverage:    nullFloat(row.BattingAverage),
		StrikeRate:        nullFloat(row.StrikeRate),
		BowlingAverage:    nullFloat(row.BowlingAverage),
		Economy:           nullFloat(row.Economy),
		BowlingStrikeRate: nullFloat(row.BowlingStrikeRate),

		CalculatedAt: timeToUnix(row.CalculatedAt),
	}
	query, args, err := qb.InsertModel("player_season_stats", insertModel, `ON CONFLICT (player_public_id, season) WHERE deleted_at IS NULL
DO UPDATE SET
    club_public_id = EXCLUDED.club_public_id,
    matches_batted = EXCLUDED.matches_batted,
    matches_bowled = EXCLUDED.matches_bowled,
    innings = EXCLUDED.innings,
    not_outs = EXCLUDED.not_outs,
    runs = EXCLUDED.runs,
    balls_faced = EXCLUDED.balls_faced,
    fours = EXCLUDED.fours,
    sixes = EXCLUDED.sixes,
    ducks = EXCLUDED.ducks,
    fifties = EXCLUDED.fifties,
    hundreds = EXCLUDED.hundreds,
    overs_bowled = EXCLUDED.overs_bowled,
    balls_bowled = EXCLUDED.balls_bowled,
    maidens = EXCLUDED.maidens,
    runs_conceded = EXCLUDED.runs_conceded,
    wickets = EXCLUDED.wickets,
    catches = EXCLUDED.catches,
    stumpings = EXCLUDED.stumpings,
    run_outs = EXCLUDED.run_outs,
    drops = EXCLUDED.drops,
    misfields = EXCLUDED.misfields,
    batting_points = EXCLUDED.batting_points,
    bowling_points = EXCLUDED.bowling_points,
    fielding_points = EXCLUDED.fielding_points,
    total_points = EXCLUDED.total_points,
    batting_average = EXCLUDED.batting_average,
    strike_rate = EXCLUDED.strike_rate,
    bowling_average = EXCLUDED.bowling_average,
    economy = EXCLUDED.economy,
    bowling_strike_rate = EXCLUDED.bowling_strike_rate,
    calculated_at = EXCLUDED.calculated_at,
    deleted_at = NULL`)
	if err != nil {
		return fmt.Errorf("build upsert season stats query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert season stats: %w", err)
	}
	return nil
}

func (r *StatsRepository) UpsertMatchPerformance(ctx context.Context, row stats.PlayerMatchPerformance) error {
	breakdownRaw, err := sonic.Marshal(row.Breakdown)
	if err != nil {
		return fmt.Errorf("marshal points breakdown: %w", err)
	}

	insertModel := matchPerformanceInsertModel{
		PlayerID: row.PlayerID,
		MatchID:  row.MatchID,
		ClubID:   row.ClubID,
		SeasonID: row.SeasonID,

		Runs:         row.Runs,
		BallsFaced:   row.BallsFaced,
		Fours:        row.Fours,
		Sixes:        row.Sixes,
		IsOut:        row.IsOut,
		OversBowled:  row.OversBowled,
		Maidens:      row.Maidens,
		RunsConceded: row.RunsConceded,
		Wickets:      row.Wickets,
		Catches:      row.Catches,
		Stumpings:    row.Stumpings,
		RunOuts:      row.RunOuts,

		Breakdown: string(breakdownRaw),

		CalculatedAt: timeToUnix(row.CalculatedAt),
	}
	query, args, err := qb.InsertModel("player_match_performances", insertModel, `ON CONFLICT (player_public_id, match_public_id) WHERE deleted_at IS NULL
DO UPDATE SET
    club_public_id = EXCLUDED.club_public_id,
    season = EXCLUDED.season,
    runs = EXCLUDED.runs,
    balls_faced = EXCLUDED.balls_faced,
    fours = EXCLUDED.fours,
    sixes = EXCLUDED.sixes,
    is_out = EXCLUDED.is_out,
    overs_bowled = EXCLUDED.overs_bowled,
    maidens = EXCLUDED.maidens,
    runs_conceded = EXCLUDED.runs_conceded,
    wickets = EXCLUDED.wickets,
    catches = EXCLUDED.catches,
    stumpings = EXCLUDED.stumpings,
    run_outs = EXCLUDED.run_outs,
    breakdown = EXCLUDED.breakdown,
    calculated_at = EXCLUDED.calculated_at,
    deleted_at = NULL`)
	if err != nil {
		return fmt.Errorf("build upsert match performance query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert match performance: %w", err)
	}
	return nil
}

func (r *StatsRepository) ListSeasonStats(ctx context.Context, clubID, seasonID string) ([]stats.PlayerSeasonStats, error) {
	conditions := []qb.Condition{
		qb.Eq("club_public_id", clubID),
		qb.IsNull("deleted_at"),
	}
	if seasonID != "" {
		conditions = append(conditions, qb.Eq("season", seasonID))
	}
	query, args, err := qb.Select("*").
		From("player_season_stats").
		Where(conditions...).
		OrderBy("total_points DESC", "player_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list season stats query: %w", err)
	}

	var rows []seasonStatsTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list season stats: %w", err)
	}

	out := make([]stats.PlayerSeasonStats, 0, len(rows))
	for _, row := range rows {
		out = append(out, seasonStatsToDomain(row))
	}
	return out, nil
}

func (r *StatsRepository) ListMatchPerformances(ctx context.Context, playerID, seasonID string) ([]stats.PlayerMatchPerformance, error) {
	conditions := []qb.Condition{
		qb.Eq("player_public_id", playerID),
		qb.IsNull("deleted_at"),
	}
	if seasonID != "" {
		conditions = append(conditions, qb.Eq("season", seasonID))
	}
	query, args, err := qb.Select("*").
		From("player_match_performances").
		Where(conditions...).
		OrderBy("calculated_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list match performances query: %w", err)
	}

	var rows []matchPerformanceTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list match performances: %w", err)
	}

	out := make([]stats.PlayerMatchPerformance, 0, len(rows))
	for _, row := range rows {
		perf, err := matchPerformanceToDomain(row)
		if err != nil {
			return nil, err
		}
		out = append(out, perf)
	}
	return out, nil
}

func seasonStatsToDomain(row seasonStatsTableModel) stats.PlayerSeasonStats {
	return stats.PlayerSeasonStats{
		PlayerID: row.PlayerID,
		ClubID:   row.ClubID,
		SeasonID: row.SeasonID,

		MatchesBatted: row.MatchesBatted,
		MatchesBowled: row.MatchesBowled,
		Innings:       row.Innings,
		NotOuts:       row.NotOuts,
		Runs:          row.Runs,
		BallsFaced:    row.BallsFaced,
		Fours:         row.Fours,
		Sixes:         row.Sixes,
		Ducks:         row.Ducks,
		Fifties:       row.Fifties,
		Hundreds:      row.Hundreds,

		OversBowled:  row.OversBowled,
		BallsBowled:  row.BallsBowled,
		Maidens:      row.Maidens,
		RunsConceded: row.RunsConceded,
		Wickets:      row.Wickets,

		Catches:   row.Catches,
		Stumpings: row.Stumpings,
		RunOuts:   row.RunOuts,
		Drops:     row.Drops,
		Misfields: row.Misfields,

		BattingPoints:  row.BattingPoints,
		BowlingPoints:  row.BowlingPoints,
		FieldingPoints: row.FieldingPoints,
		TotalPoints:    row.TotalPoints,

		BattingAverage:    nullFloatPtr(row.BattingAverage),
		StrikeRate:        nullFloatPtr(row.StrikeRate),
		BowlingAverage:    nullFloatPtr(row.BowlingAverage),
		Economy:           nullFloatPtr(row.Economy),
		BowlingStrikeRate: nullFloatPtr(row.BowlingStrikeRate),

		CalculatedAt: unixToTime(row.CalculatedAt),
	}
}

func matchPerformanceToDomain(row matchPerformanceTableModel) (stats.PlayerMatchPerformance, error) {
	perf := stats.PlayerMatchPerformance{
		PlayerID: row.PlayerID,
		MatchID:  row.MatchID,
		ClubID:   row.ClubID,
		SeasonID: row.SeasonID,

		Runs:         row.Runs,
		BallsFaced:   row.BallsFaced,
		Fours:        row.Fours,
		Sixes:        row.Sixes,
		IsOut:        row.IsOut,
		OversBowled:  row.OversBowled,
		Maidens:      row.Maidens,
		RunsConceded: row.RunsConceded,
		Wickets:      row.Wickets,
		Catches:      row.Catches,
		Stumpings:    row.Stumpings,
		RunOuts:      row.RunOuts,

		CalculatedAt: unixToTime(row.CalculatedAt),
	}
	if row.Breakdown != "" {
		if err := sonic.Unmarshal([]byte(row.Breakdown), &perf.Breakdown); err != nil {
			return stats.PlayerMatchPerformance{}, fmt.Errorf("unmarshal points breakdown for player %s match %s: %w", row.PlayerID, row.MatchID, err)
		}
	}
	return perf, nil
}
