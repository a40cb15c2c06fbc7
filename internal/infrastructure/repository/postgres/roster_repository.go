package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/robharvey123/cricket-platform/internal/domain/roster"
	"github.com/robharvey123/cricket-platform/internal/platform/id"
	qb "github.com/robharvey123/cricket-platform/internal/platform/querybuilder"
)

type RosterRepository struct {
	db  *sqlx.DB
	ids id.Generator
}

func NewRosterRepository(db *sqlx.DB, ids id.Generator) *RosterRepository {
	return &RosterRepository{db: db, ids: ids}
}

func (r *RosterRepository) ListByClub(ctx context.Context, clubID string) ([]roster.Player, error) {
	query, args, err := qb.Select("*").
		From("players").
		Where(
			qb.Eq("club_public_id", clubID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("last_name", "first_name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	out := make([]roster.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, roster.Player{
			ID:         row.PublicID,
			ClubID:     row.ClubID,
			FirstName:  row.FirstName,
			LastName:   row.LastName,
			ExternalID: row.ExternalID,
		})
	}
	return out, nil
}

func (r *RosterRepository) CreatePlayer(ctx context.Context, clubID, firstName, lastName string) (roster.Player, error) {
	publicID, err := r.ids.NewID()
	if err != nil {
		return roster.Player{}, fmt.Errorf("generate player id: %w", err)
	}

	now := timeToUnix(time.Now())
	insertModel := playerInsertModel{
		PublicID:  publicID,
		ClubID:    clubID,
		FirstName: firstName,
		LastName:  lastName,
		CreatedAt: now,
		UpdatedAt: now,
	}
	query, args, err := qb.InsertModel("players", insertModel, "")
	if err != nil {
		return roster.Player{}, fmt.Errorf("build create player query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return roster.Player{}, fmt.Errorf("create player: %w", err)
	}

	return roster.Player{
		ID:        publicID,
		ClubID:    clubID,
		FirstName: firstName,
		LastName:  lastName,
	}, nil
}

func (r *RosterRepository) ListTeamRoster(ctx context.Context, teamID string) ([]string, error) {
	query, args, err := qb.Select("player_public_id").
		From("team_rosters").
		Where(
			qb.Eq("team_public_id", teamID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list team roster query: %w", err)
	}

	var playerIDs []string
	if err := r.db.SelectContext(ctx, &playerIDs, query, args...); err != nil {
		return nil, fmt.Errorf("list team roster: %w", err)
	}
	return playerIDs, nil
}

func (r *RosterRepository) AddTeamRosterMembers(ctx context.Context, teamID string, playerIDs []string) error {
	if len(playerIDs) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx add team roster members: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	now := timeToUnix(time.Now())
	for _, playerID := range playerIDs {
		insertModel := teamRosterInsertModel{
			TeamID:    teamID,
			PlayerID:  playerID,
			CreatedAt: now,
		}
		query, args, err := qb.InsertModel("team_rosters", insertModel, `ON CONFLICT (team_public_id, player_public_id) WHERE deleted_at IS NULL
DO NOTHING`)
		if err != nil {
			return fmt.Errorf("build add team roster member query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("add team roster member: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit add team roster members tx: %w", err)
	}
	return nil
}
