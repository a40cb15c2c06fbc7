package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/robharvey123/cricket-platform/internal/infrastructure/repository/memory"
)

// BootstrapSeed inserts the development club and roster into an empty
// database. It is a no-op once any club exists.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM clubs WHERE deleted_at IS NULL`); err != nil {
		return fmt.Errorf("count clubs for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, c := range memory.SeedClubs() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO clubs (public_id, name, alt_names, active_season, provider_site_id, provider_api_token, created_at, updated_at)
VALUES (:public_id, :name, :alt_names, :active_season, :provider_site_id, :provider_api_token, EXTRACT(EPOCH FROM NOW())::bigint, EXTRACT(EPOCH FROM NOW())::bigint)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":          c.ID,
			"name":               c.Name,
			"alt_names":          pq.StringArray(c.AltNames),
			"active_season":      c.ActiveSeasonID,
			"provider_site_id":   c.ProviderSiteID,
			"provider_api_token": c.ProviderToken,
		})
		if err != nil {
			return fmt.Errorf("bind seed club %s query: %w", c.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed club %s: %w", c.ID, err)
		}
	}

	for _, p := range memory.SeedPlayers() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO players (public_id, club_public_id, first_name, last_name, external_id, created_at, updated_at)
VALUES (:public_id, :club_public_id, :first_name, :last_name, :external_id, EXTRACT(EPOCH FROM NOW())::bigint, EXTRACT(EPOCH FROM NOW())::bigint)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":      p.ID,
			"club_public_id": p.ClubID,
			"first_name":     p.FirstName,
			"last_name":      p.LastName,
			"external_id":    p.ExternalID,
		})
		if err != nil {
			return fmt.Errorf("bind seed player %s query: %w", p.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed player %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}
