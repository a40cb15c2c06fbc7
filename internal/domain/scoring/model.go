package scoring

import "time"

// Formula is a club-owned, versioned scoring configuration. Published versions
// are immutable; exactly one version per club is active at a time.
type Formula struct {
	ID        string
	ClubID    string
	Name      string
	Version   int
	Active    bool
	Batting   BattingConfig
	Bowling   BowlingConfig
	Fielding  FieldingConfig
	CreatedAt time.Time
}

type BattingConfig struct {
	PerRun      float64     `json:"per_run" validate:"gte=0"`
	Boundary4   float64     `json:"boundary_4" validate:"gte=0"`
	Boundary6   float64     `json:"boundary_6" validate:"gte=0"`
	Milestones  []Milestone `json:"milestones" validate:"dive"`
	DuckPenalty float64     `json:"duck_penalty" validate:"lte=0"`
}

// Milestone grants a fixed bonus once a runs threshold is reached. Milestones
// are cumulative: every configured threshold at or below the scored runs is
// independently summed.
type Milestone struct {
	RunsThreshold int     `json:"runs_threshold" validate:"gt=0"`
	Bonus         float64 `json:"bonus" validate:"gte=0"`
}

type BowlingConfig struct {
	PerWicket     float64       `json:"per_wicket" validate:"gte=0"`
	PerMaiden     float64       `json:"per_maiden" validate:"gte=0"`
	ThreeForBonus float64       `json:"three_for_bonus" validate:"gte=0"`
	FiveForBonus  float64       `json:"five_for_bonus" validate:"gte=0"`
	EconomyBands  []EconomyBand `json:"economy_bands" validate:"dive"`
}

// EconomyBand awards a bonus when the economy rate is at or under Max, and a
// penalty when it is at or over Min. Bands are evaluated independently and
// summed; overlapping ranges are allowed and both effects apply.
type EconomyBand struct {
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
	Bonus   float64  `json:"bonus,omitempty" validate:"gte=0"`
	Penalty float64  `json:"penalty,omitempty" validate:"lte=0"`
}

type FieldingConfig struct {
	Catch           float64 `json:"catch" validate:"gte=0"`
	Stumping        float64 `json:"stumping" validate:"gte=0"`
	RunOut          float64 `json:"run_out" validate:"gte=0"`
	DropPenalty     float64 `json:"drop_penalty" validate:"lte=0"`
	MisfieldPenalty float64 `json:"misfield_penalty" validate:"lte=0"`
}

// PointsBreakdown is the output of applying a Formula to one player's lines
// for a single match. Totals are independent per discipline.
type PointsBreakdown struct {
	Batting  ComponentPoints `json:"batting"`
	Bowling  ComponentPoints `json:"bowling"`
	Fielding ComponentPoints `json:"fielding"`
	Total    float64         `json:"total"`
}

// ComponentPoints carries a discipline subtotal plus its detail split.
type ComponentPoints struct {
	Points  float64      `json:"points"`
	Details PointsDetail `json:"details"`
}

type PointsDetail struct {
	Base      float64 `json:"base"`
	Bonuses   float64 `json:"bonuses"`
	Penalties float64 `json:"penalties"`
}
