package scoring

// BattingLine is one player's raw batting figures within a single match.
type BattingLine struct {
	Runs      int
	Balls     int
	Fours     int
	Sixes     int
	IsOut     bool
	Dismissal string
}

// BowlingLine is one player's raw bowling figures within a single match.
// Overs uses cricket notation: the integer part is completed overs and the
// fractional digit is balls 0-5 into the current over (4.3 = 4 overs 3 balls),
// not a decimal fraction.
type BowlingLine struct {
	Overs        float64
	Maidens      int
	RunsConceded int
	Wickets      int
}

// FieldingLine is one player's raw fielding figures within a single match.
type FieldingLine struct {
	Catches   int
	Stumpings int
	RunOuts   int
	Drops     int
	Misfields int
}

// OversToBalls converts cricket-notation overs to a total ball count.
func OversToBalls(overs float64) int {
	full := int(overs)
	balls := int((overs-float64(full))*10 + 0.5)
	if balls > 5 {
		balls = 5
	}
	return full*6 + balls
}

// TrueOvers converts cricket-notation overs to fractional overs (4.3 -> 4.5).
func TrueOvers(overs float64) float64 {
	return float64(OversToBalls(overs)) / 6
}
