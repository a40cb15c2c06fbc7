package postgres

type formulaTableModel struct {
	ID             int64  `db:"id"`
	PublicID       string `db:"public_id"`
	ClubID         string `db:"club_public_id"`
	Name           string `db:"name"`
	Version        int    `db:"version"`
	IsActive       bool   `db:"is_active"`
	BattingConfig  string `db:"batting_config"`
	BowlingConfig  string `db:"bowling_config"`
	FieldingConfig string `db:"fielding_config"`
	CreatedAt      int64  `db:"created_at"`
	UpdatedAt      int64  `db:"updated_at"`
	DeletedAt      *int64 `db:"deleted_at"`
}

type formulaInsertModel struct {
	PublicID       string `db:"public_id"`
	ClubID         string `db:"club_public_id"`
	Name           string `db:"name"`
	Version        int    `db:"version"`
	IsActive       bool   `db:"is_active"`
	BattingConfig  string `db:"batting_config"`
	BowlingConfig  string `db:"bowling_config"`
	FieldingConfig string `db:"fielding_config"`
	CreatedAt      int64  `db:"created_at"`
	UpdatedAt      int64  `db:"updated_at"`
}
