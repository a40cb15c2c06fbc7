package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/robharvey123/cricket-platform/internal/domain/club"
	qb "github.com/robharvey123/cricket-platform/internal/platform/querybuilder"
)

type ClubRepository struct {
	db *sqlx.DB
}

func NewClubRepository(db *sqlx.DB) *ClubRepository {
	return &ClubRepository{db: db}
}

func (r *ClubRepository) GetClub(ctx context.Context, clubID string) (club.Club, bool, error) {
	query, args, err := qb.Select("*").
		From("clubs").
		Where(
			qb.Eq("public_id", clubID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return club.Club{}, false, fmt.Errorf("build get club query: %w", err)
	}

	var row clubTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return club.Club{}, false, nil
		}
		return club.Club{}, false, fmt.Errorf("get club: %w", err)
	}
	return clubToDomain(row), true, nil
}

func (r *ClubRepository) ListClubs(ctx context.Context) ([]club.Club, error) {
	query, args, err := qb.Select("*").
		From("clubs").
		Where(qb.IsNull("deleted_at")).
		OrderBy("name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list clubs query: %w", err)
	}

	var rows []clubTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list clubs: %w", err)
	}

	out := make([]club.Club, 0, len(rows))
	for _, row := range rows {
		out = append(out, clubToDomain(row))
	}
	return out, nil
}

func clubToDomain(row clubTableModel) club.Club {
	return club.Club{
		ID:             row.PublicID,
		Name:           row.Name,
		AltNames:       []string(row.AltNames),
		ActiveSeasonID: row.ActiveSeasonID,
		ProviderSiteID: row.ProviderSiteID,
		ProviderToken:  row.ProviderToken,
	}
}
