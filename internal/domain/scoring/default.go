package scoring

func floatPtr(v float64) *float64 { return &v }

// DefaultFormula is the system formula assigned to clubs that have not
// configured their own yet.
func DefaultFormula() Formula {
	return Formula{
		Name:    "Club default",
		Version: 1,
		Active:  true,
		Batting: BattingConfig{
			PerRun:    1,
			Boundary4: 1,
			Boundary6: 2,
			Milestones: []Milestone{
				{RunsThreshold: 50, Bonus: 10},
				{RunsThreshold: 100, Bonus: 25},
			},
			DuckPenalty: -10,
		},
		Bowling: BowlingConfig{
			PerWicket:     15,
			PerMaiden:     5,
			ThreeForBonus: 10,
			FiveForBonus:  25,
			EconomyBands: []EconomyBand{
				{Max: floatPtr(3), Bonus: 10},
				{Min: floatPtr(8), Penalty: -10},
			},
		},
		Fielding: FieldingConfig{
			Catch:           5,
			Stumping:        8,
			RunOut:          6,
			DropPenalty:     -5,
			MisfieldPenalty: -2,
		},
	}
}
