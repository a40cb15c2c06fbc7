package postgres

import "github.com/lib/pq"

type clubTableModel struct {
	ID             int64          `db:"id"`
	PublicID       string         `db:"public_id"`
	Name           string         `db:"name"`
	AltNames       pq.StringArray `db:"alt_names"`
	ActiveSeasonID string         `db:"active_season"`
	ProviderSiteID int64          `db:"provider_site_id"`
	ProviderToken  string         `db:"provider_api_token"`
	CreatedAt      int64          `db:"created_at"`
	UpdatedAt      int64          `db:"updated_at"`
	DeletedAt      *int64         `db:"deleted_at"`
}
