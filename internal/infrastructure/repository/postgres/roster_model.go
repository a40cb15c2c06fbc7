package postgres

type playerTableModel struct {
	ID         int64  `db:"id"`
	PublicID   string `db:"public_id"`
	ClubID     string `db:"club_public_id"`
	FirstName  string `db:"first_name"`
	LastName   string `db:"last_name"`
	ExternalID int64  `db:"external_id"`
	CreatedAt  int64  `db:"created_at"`
	UpdatedAt  int64  `db:"updated_at"`
	DeletedAt  *int64 `db:"deleted_at"`
}

type playerInsertModel struct {
	PublicID  string `db:"public_id"`
	ClubID    string `db:"club_public_id"`
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
	CreatedAt int64  `db:"created_at"`
	UpdatedAt int64  `db:"updated_at"`
}

type teamRosterInsertModel struct {
	TeamID    string `db:"team_public_id"`
	PlayerID  string `db:"player_public_id"`
	CreatedAt int64  `db:"created_at"`
}
