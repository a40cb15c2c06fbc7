package scoring

import "strings"

// CalcBattingPoints applies the batting weights to a single line. Milestones
// are cumulative and a duck penalty applies only to a dismissed batter who
// faced at least one ball.
func CalcBattingPoints(cfg BattingConfig, line BattingLine) ComponentPoints {
	detail := PointsDetail{
		Base: float64(line.Runs)*cfg.PerRun +
			float64(line.Fours)*cfg.Boundary4 +
			float64(line.Sixes)*cfg.Boundary6,
	}

	for _, milestone := range cfg.Milestones {
		if line.Runs >= milestone.RunsThreshold {
			detail.Bonuses += milestone.Bonus
		}
	}

	if isDuck(line) {
		detail.Penalties += cfg.DuckPenalty
	}

	return ComponentPoints{
		Points:  detail.Base + detail.Bonuses + detail.Penalties,
		Details: detail,
	}
}

func isDuck(line BattingLine) bool {
	if line.Runs != 0 || line.Balls <= 0 || !line.IsOut {
		return false
	}
	dismissal := strings.ToLower(strings.TrimSpace(line.Dismissal))
	return dismissal != "not out" && dismissal != "did not bat"
}

// CalcBowlingPoints applies the bowling weights to a single line. Economy
// bands only apply when at least one ball was bowled, and every band is
// evaluated independently: overlapping bonus and penalty ranges both count.
func CalcBowlingPoints(cfg BowlingConfig, line BowlingLine) ComponentPoints {
	detail := PointsDetail{
		Base: float64(line.Wickets)*cfg.PerWicket + float64(line.Maidens)*cfg.PerMaiden,
	}

	if line.Wickets >= 3 {
		detail.Bonuses += cfg.ThreeForBonus
	}
	if line.Wickets >= 5 {
		detail.Bonuses += cfg.FiveForBonus
	}

	if overs := TrueOvers(line.Overs); overs > 0 {
		economy := float64(line.RunsConceded) / overs
		for _, band := range cfg.EconomyBands {
			if band.Max != nil && economy <= *band.Max {
				detail.Bonuses += band.Bonus
			}
			if band.Min != nil && economy >= *band.Min {
				detail.Penalties += band.Penalty
			}
		}
	}

	return ComponentPoints{
		Points:  detail.Base + detail.Bonuses + detail.Penalties,
		Details: detail,
	}
}

// CalcFieldingPoints applies the fielding weights to a single line. Drop and
// misfield penalties are negative weights and are added, not subtracted.
func CalcFieldingPoints(cfg FieldingConfig, line FieldingLine) ComponentPoints {
	detail := PointsDetail{
		Base: float64(line.Catches)*cfg.Catch +
			float64(line.Stumpings)*cfg.Stumping +
			float64(line.RunOuts)*cfg.RunOut,
		Penalties: float64(line.Drops)*cfg.DropPenalty +
			float64(line.Misfields)*cfg.MisfieldPenalty,
	}

	return ComponentPoints{
		Points:  detail.Base + detail.Bonuses + detail.Penalties,
		Details: detail,
	}
}

// CalcTotalPoints combines the three discipline calculators for one
// player-match. It is a pure function of the formula and the lines; callers
// substitute zero-valued lines for disciplines the player did not take part in.
func CalcTotalPoints(formula Formula, batting BattingLine, bowling BowlingLine, fielding FieldingLine) PointsBreakdown {
	breakdown := PointsBreakdown{
		Batting:  CalcBattingPoints(formula.Batting, batting),
		Bowling:  CalcBowlingPoints(formula.Bowling, bowling),
		Fielding: CalcFieldingPoints(formula.Fielding, fielding),
	}
	breakdown.Total = breakdown.Batting.Points + breakdown.Bowling.Points + breakdown.Fielding.Points
	return breakdown
}
