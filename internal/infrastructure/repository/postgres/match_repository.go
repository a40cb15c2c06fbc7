package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/robharvey123/cricket-platform/internal/domain/match"
	"github.com/robharvey123/cricket-platform/internal/platform/id"
	qb "github.com/robharvey123/cricket-platform/internal/platform/querybuilder"
)

type MatchRepository struct {
	db  *sqlx.DB
	ids id.Generator
}

func NewMatchRepository(db *sqlx.DB, ids id.Generator) *MatchRepository {
	return &MatchRepository{db: db, ids: ids}
}

func (r *MatchRepository) ListBySeason(ctx context.Context, clubID, seasonID string) ([]match.Match, error) {
	conditions := []qb.Condition{
		qb.Eq("club_public_id", clubID),
		qb.IsNull("deleted_at"),
	}
	if seasonID != "" {
		conditions = append(conditions, qb.Eq("season", seasonID))
	}
	query, args, err := qb.Select("*").
		From("matches").
		Where(conditions...).
		OrderBy("played_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	matchIDs := make([]any, 0, len(rows))
	out := make([]match.Match, 0, len(rows))
	byID := make(map[string]*match.Match, len(rows))
	for _, row := range rows {
		matchIDs = append(matchIDs, row.PublicID)
		out = append(out, matchToDomain(row))
		byID[row.PublicID] = &out[len(out)-1]
	}

	if err := r.loadInnings(ctx, matchIDs, byID); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MatchRepository) GetMatch(ctx context.Context, matchID string) (match.Match, bool, error) {
	query, args, err := qb.Select("*").
		From("matches").
		Where(
			qb.Eq("public_id", matchID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match: %w", err)
	}

	m := matchToDomain(row)
	byID := map[string]*match.Match{m.ID: &m}
	if err := r.loadInnings(ctx, []any{m.ID}, byID); err != nil {
		return match.Match{}, false, err
	}
	return m, true, nil
}

// UpsertMatch replaces the match and everything nested under it. Imported
// matches are keyed by club + external id so a re-import lands on the same
// row; the old innings and cards are soft-deleted and written fresh.
func (r *MatchRepository) UpsertMatch(ctx context.Context, m match.Match) (match.Match, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return match.Match{}, fmt.Errorf("begin tx upsert match: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	existingID, err := r.findExistingMatchID(ctx, tx, m)
	if err != nil {
		return match.Match{}, err
	}

	now := timeToUnix(time.Now())
	if existingID != "" {
		m.ID = existingID
		query, args, err := qb.Update("matches").
			Set("season", m.SeasonID).
			Set("team_public_id", m.TeamID).
			Set("external_id", m.ExternalID).
			Set("home_team", m.HomeTeam).
			Set("away_team", m.AwayTeam).
			Set("club_side", string(m.ClubSide)).
			Set("played_at", timeToUnix(m.PlayedAt)).
			Set("is_published", m.Published).
			Set("updated_at", now).
			Where(
				qb.Eq("public_id", m.ID),
				qb.IsNull("deleted_at"),
			).
			ToSQL()
		if err != nil {
			return match.Match{}, fmt.Errorf("build update match query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return match.Match{}, fmt.Errorf("update match: %w", err)
		}
	} else {
		if m.ID == "" {
			publicID, err := r.ids.NewID()
			if err != nil {
				return match.Match{}, fmt.Errorf("generate match id: %w", err)
			}
			m.ID = publicID
		}
		insertModel := matchInsertModel{
			PublicID:    m.ID,
			ClubID:      m.ClubID,
			SeasonID:    m.SeasonID,
			TeamID:      m.TeamID,
			ExternalID:  m.ExternalID,
			HomeTeam:    m.HomeTeam,
			AwayTeam:    m.AwayTeam,
			ClubSide:    string(m.ClubSide),
			PlayedAt:    timeToUnix(m.PlayedAt),
			IsPublished: m.Published,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		query, args, err := qb.InsertModel("matches", insertModel, "")
		if err != nil {
			return match.Match{}, fmt.Errorf("build insert match query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return match.Match{}, fmt.Errorf("insert match: %w", err)
		}
	}

	if err := r.clearInningsTx(ctx, tx, m.ID); err != nil {
		return match.Match{}, err
	}
	if err := r.insertInningsTx(ctx, tx, &m); err != nil {
		return match.Match{}, err
	}

	if err := tx.Commit(); err != nil {
		return match.Match{}, fmt.Errorf("commit upsert match tx: %w", err)
	}
	return m, nil
}

func (r *MatchRepository) SetPublished(ctx context.Context, matchID string, published bool) error {
	query, args, err := qb.Update("matches").
		Set("is_published", published).
		SetExpr("updated_at", "EXTRACT(EPOCH FROM NOW())::bigint").
		Where(
			qb.Eq("public_id", matchID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build set published query: %w", err)
	}
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set published: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set published rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("set published: match %s not found", matchID)
	}
	return nil
}

func (r *MatchRepository) ListFieldingCards(ctx context.Context, matchID string) ([]match.FieldingCard, error) {
	query, args, err := qb.Select("*").
		From("fielding_cards").
		Where(
			qb.Eq("match_public_id", matchID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list fielding cards query: %w", err)
	}

	var rows []fieldingCardTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list fielding cards: %w", err)
	}

	out := make([]match.FieldingCard, 0, len(rows))
	for _, row := range rows {
		out = append(out, fieldingCardToDomain(row))
	}
	return out, nil
}

func (r *MatchRepository) InsertFieldingCards(ctx context.Context, rows []match.FieldingCard) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx insert fielding cards: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	now := timeToUnix(time.Now())
	for _, row := range rows {
		insertModel := fieldingCardInsertModel{
			MatchID:   row.MatchID,
			PlayerID:  row.PlayerID,
			Catches:   row.Catches,
			Stumpings: row.Stumpings,
			RunOuts:   row.RunOuts,
			Drops:     row.Drops,
			Misfields: row.Misfields,
			IsDerived: row.Derived,
			UpdatedAt: now,
		}
		query, args, err := qb.InsertModel("fielding_cards", insertModel, `ON CONFLICT (match_public_id, player_public_id) WHERE deleted_at IS NULL
DO UPDATE SET
    catches = EXCLUDED.catches,
    stumpings = EXCLUDED.stumpings,
    run_outs = EXCLUDED.run_outs,
    drops = EXCLUDED.drops,
    misfields = EXCLUDED.misfields,
    is_derived = EXCLUDED.is_derived,
    updated_at = EXCLUDED.updated_at,
    deleted_at = NULL`)
		if err != nil {
			return fmt.Errorf("build upsert fielding card query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert fielding card: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit insert fielding cards tx: %w", err)
	}
	return nil
}

func (r *MatchRepository) findExistingMatchID(ctx context.Context, tx *sqlx.Tx, m match.Match) (string, error) {
	var conditions []qb.Condition
	switch {
	case m.ExternalID > 0:
		conditions = []qb.Condition{
			qb.Eq("club_public_id", m.ClubID),
			qb.Eq("external_id", m.ExternalID),
			qb.IsNull("deleted_at"),
		}
	case m.ID != "":
		conditions = []qb.Condition{
			qb.Eq("public_id", m.ID),
			qb.IsNull("deleted_at"),
		}
	default:
		return "", nil
	}

	query, args, err := qb.Select("public_id").
		From("matches").
		Where(conditions...).
		ToSQL()
	if err != nil {
		return "", fmt.Errorf("build find match query: %w", err)
	}

	var publicID string
	if err := tx.GetContext(ctx, &publicID, query, args...); err != nil {
		if isNotFound(err) {
			return "", nil
		}
		return "", fmt.Errorf("find match: %w", err)
	}
	return publicID, nil
}

func (r *MatchRepository) clearInningsTx(ctx context.Context, tx *sqlx.Tx, matchID string) error {
	listQuery, listArgs, err := qb.Select("id").
		From("match_innings").
		Where(
			qb.Eq("match_public_id", matchID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build list innings ids query: %w", err)
	}
	var inningsIDs []int64
	if err := tx.SelectContext(ctx, &inningsIDs, listQuery, listArgs...); err != nil {
		return fmt.Errorf("list innings ids: %w", err)
	}

	clearInnings, clearArgs, err := qb.Update("match_innings").
		SetExpr("deleted_at", "EXTRACT(EPOCH FROM NOW())::bigint").
		Where(
			qb.Eq("match_public_id", matchID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear innings query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearInnings, clearArgs...); err != nil {
		return fmt.Errorf("clear innings: %w", err)
	}

	if len(inningsIDs) == 0 {
		return nil
	}
	idArgs := make([]any, 0, len(inningsIDs))
	for _, id := range inningsIDs {
		idArgs = append(idArgs, id)
	}
	for _, table := range []string{"batting_cards", "bowling_cards"} {
		clearCards, cardArgs, err := qb.Update(table).
			SetExpr("deleted_at", "EXTRACT(EPOCH FROM NOW())::bigint").
			Where(
				qb.In("innings_id", idArgs),
				qb.IsNull("deleted_at"),
			).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build clear %s query: %w", table, err)
		}
		if _, err := tx.ExecContext(ctx, clearCards, cardArgs...); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

func (r *MatchRepository) insertInningsTx(ctx context.Context, tx *sqlx.Tx, m *match.Match) error {
	now := timeToUnix(time.Now())
	for i := range m.Innings {
		innings := &m.Innings[i]
		innings.MatchID = m.ID
		if innings.ID == "" {
			publicID, err := r.ids.NewID()
			if err != nil {
				return fmt.Errorf("generate innings id: %w", err)
			}
			innings.ID = publicID
		}

		insertModel := inningsInsertModel{
			PublicID:    innings.ID,
			MatchID:     m.ID,
			Seq:         innings.Seq,
			BattingTeam: innings.BattingTeam,
			CreatedAt:   now,
		}
		query, args, err := qb.InsertModel("match_innings", insertModel, "RETURNING id")
		if err != nil {
			return fmt.Errorf("build insert innings query: %w", err)
		}
		var inningsRowID int64
		if err := tx.QueryRowxContext(ctx, query, args...).Scan(&inningsRowID); err != nil {
			return fmt.Errorf("insert innings: %w", err)
		}

		for seq, card := range innings.Batting {
			batInsert := battingCardInsertModel{
				InningsID:   inningsRowID,
				Seq:         seq + 1,
				PlayerID:    card.PlayerID,
				PlayerName:  card.PlayerName,
				Runs:        card.Runs,
				Balls:       card.Balls,
				Fours:       card.Fours,
				Sixes:       card.Sixes,
				HowOut:      card.HowOut,
				FielderID:   card.FielderID,
				FielderName: card.FielderName,
				IsOut:       card.IsOut,
			}
			batQuery, batArgs, err := qb.InsertModel("batting_cards", batInsert, "")
			if err != nil {
				return fmt.Errorf("build insert batting card query: %w", err)
			}
			if _, err := tx.ExecContext(ctx, batQuery, batArgs...); err != nil {
				return fmt.Errorf("insert batting card: %w", err)
			}
		}

		for seq, card := range innings.Bowling {
			bowlInsert := bowlingCardInsertModel{
				InningsID:    inningsRowID,
				Seq:          seq + 1,
				PlayerID:     card.PlayerID,
				PlayerName:   card.PlayerName,
				Overs:        card.Overs,
				Maidens:      card.Maidens,
				RunsConceded: card.RunsConceded,
				Wickets:      card.Wickets,
				Wides:        card.Wides,
				NoBalls:      card.NoBalls,
			}
			bowlQuery, bowlArgs, err := qb.InsertModel("bowling_cards", bowlInsert, "")
			if err != nil {
				return fmt.Errorf("build insert bowling card query: %w", err)
			}
			if _, err := tx.ExecContext(ctx, bowlQuery, bowlArgs...); err != nil {
				return fmt.Errorf("insert bowling card: %w", err)
			}
		}
	}
	return nil
}

// loadInnings attaches innings and their cards to the matches in byID.
func (r *MatchRepository) loadInnings(ctx context.Context, matchIDs []any, byID map[string]*match.Match) error {
	query, args, err := qb.Select("*").
		From("match_innings").
		Where(
			qb.In("match_public_id", matchIDs),
			qb.IsNull("deleted_at"),
		).
		OrderBy("match_public_id", "seq").
		ToSQL()
	if err != nil {
		return fmt.Errorf("build load innings query: %w", err)
	}

	var inningsRows []inningsTableModel
	if err := r.db.SelectContext(ctx, &inningsRows, query, args...); err != nil {
		return fmt.Errorf("load innings: %w", err)
	}
	if len(inningsRows) == 0 {
		return nil
	}

	// Preallocate per match so appends never reallocate out from under the
	// row-id pointers collected below.
	counts := make(map[string]int, len(byID))
	for _, row := range inningsRows {
		counts[row.MatchID]++
	}
	for matchID, count := range counts {
		if m, ok := byID[matchID]; ok {
			m.Innings = make([]match.Innings, 0, count)
		}
	}

	inningsIDs := make([]any, 0, len(inningsRows))
	inningsByRowID := make(map[int64]*match.Innings, len(inningsRows))
	for _, row := range inningsRows {
		m, ok := byID[row.MatchID]
		if !ok {
			continue
		}
		m.Innings = append(m.Innings, match.Innings{
			ID:          row.PublicID,
			MatchID:     row.MatchID,
			Seq:         row.Seq,
			BattingTeam: row.BattingTeam,
		})
		inningsIDs = append(inningsIDs, row.ID)
		inningsByRowID[row.ID] = &m.Innings[len(m.Innings)-1]
	}

	batQuery, batArgs, err := qb.Select("*").
		From("batting_cards").
		Where(
			qb.In("innings_id", inningsIDs),
			qb.IsNull("deleted_at"),
		).
		OrderBy("innings_id", "seq").
		ToSQL()
	if err != nil {
		return fmt.Errorf("build load batting cards query: %w", err)
	}
	var batRows []battingCardTableModel
	if err := r.db.SelectContext(ctx, &batRows, batQuery, batArgs...); err != nil {
		return fmt.Errorf("load batting cards: %w", err)
	}
	for _, row := range batRows {
		innings, ok := inningsByRowID[row.InningsID]
		if !ok {
			continue
		}
		innings.Batting = append(innings.Batting, match.BattingCard{
			PlayerID:    row.PlayerID,
			PlayerName:  row.PlayerName,
			Runs:        row.Runs,
			Balls:       row.Balls,
			Fours:       row.Fours,
			Sixes:       row.Sixes,
			HowOut:      row.HowOut,
			FielderID:   row.FielderID,
			FielderName: row.FielderName,
			IsOut:       row.IsOut,
		})
	}

	bowlQuery, bowlArgs, err := qb.Select("*").
		From("bowling_cards").
		Where(
			qb.In("innings_id", inningsIDs),
			qb.IsNull("deleted_at"),
		).
		OrderBy("innings_id", "seq").
		ToSQL()
	if err != nil {
		return fmt.Errorf("build load bowling cards query: %w", err)
	}
	var bowlRows []bowlingCardTableModel
	if err := r.db.SelectContext(ctx, &bowlRows, bowlQuery, bowlArgs...); err != nil {
		return fmt.Errorf("load bowling cards: %w", err)
	}
	for _, row := range bowlRows {
		innings, ok := inningsByRowID[row.InningsID]
		if !ok {
			continue
		}
		innings.Bowling = append(innings.Bowling, match.BowlingCard{
			PlayerID:     row.PlayerID,
			PlayerName:   row.PlayerName,
			Overs:        row.Overs,
			Maidens:      row.Maidens,
			RunsConceded: row.RunsConceded,
			Wickets:      row.Wickets,
			Wides:        row.Wides,
			NoBalls:      row.NoBalls,
		})
	}
	return nil
}

func matchToDomain(row matchTableModel) match.Match {
	return match.Match{
		ID:         row.PublicID,
		ClubID:     row.ClubID,
		SeasonID:   row.SeasonID,
		TeamID:     row.TeamID,
		ExternalID: row.ExternalID,
		HomeTeam:   row.HomeTeam,
		AwayTeam:   row.AwayTeam,
		ClubSide:   match.Side(row.ClubSide),
		PlayedAt:   unixToTime(row.PlayedAt),
		Published:  row.IsPublished,
	}
}
