package scoring

import "testing"

func TestCalcTotalPoints_ZeroLinesProduceZeroBreakdown(t *testing.T) {
	t.Parallel()

	got := CalcTotalPoints(DefaultFormula(), BattingLine{}, BowlingLine{}, FieldingLine{})

	if got.Batting.Points != 0 || got.Bowling.Points != 0 || got.Fielding.Points != 0 || got.Total != 0 {
		t.Fatalf("unexpected breakdown for zero lines: %+v", got)
	}
}

func TestCalcBattingPoints_DefaultFormulaScenario(t *testing.T) {
	t.Parallel()

	// 72 runs + 10 fours + 2 sixes with the default weights:
	// 72*1 + 10*1 + 2*2 + 10 (50 milestone) = 96.
	line := BattingLine{Runs: 72, Balls: 55, Fours: 10, Sixes: 2, IsOut: true, Dismissal: "caught"}

	got := CalcBattingPoints(DefaultFormula().Batting, line)
	if got.Points != 96 {
		t.Fatalf("unexpected batting points: got=%v want=96", got.Points)
	}
	if got.Details.Bonuses != 10 {
		t.Fatalf("unexpected milestone bonuses: got=%v want=10", got.Details.Bonuses)
	}
}

func TestCalcBattingPoints_MilestonesAreCumulative(t *testing.T) {
	t.Parallel()

	cfg := DefaultFormula().Batting
	line := BattingLine{Runs: 104, Balls: 80, IsOut: true, Dismissal: "bowled"}

	got := CalcBattingPoints(cfg, line)
	// Both the 50 and the 100 milestone count.
	if got.Details.Bonuses != 35 {
		t.Fatalf("unexpected cumulative milestone bonuses: got=%v want=35", got.Details.Bonuses)
	}
}

func TestCalcBattingPoints_DuckPenalty(t *testing.T) {
	t.Parallel()

	cfg := DefaultFormula().Batting

	tests := []struct {
		name string
		line BattingLine
		want float64
	}{
		{
			name: "bowled for a duck",
			line: BattingLine{Runs: 0, Balls: 10, IsOut: true, Dismissal: "bowled"},
			want: -10,
		},
		{
			name: "not out zero is no duck",
			line: BattingLine{Runs: 0, Balls: 4, IsOut: false, Dismissal: "not out"},
			want: 0,
		},
		{
			name: "out without facing a ball is no duck",
			line: BattingLine{Runs: 0, Balls: 0, IsOut: true, Dismissal: "run out"},
			want: 0,
		},
		{
			name: "did not bat is no duck",
			line: BattingLine{Runs: 0, Balls: 1, IsOut: true, Dismissal: "did not bat"},
			want: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := CalcBattingPoints(cfg, tc.line)
			if got.Points != tc.want {
				t.Fatalf("unexpected points: got=%v want=%v", got.Points, tc.want)
			}
		})
	}
}

func TestCalcBowlingPoints_DefaultFormulaScenario(t *testing.T) {
	t.Parallel()

	// 3 wickets, 2 maidens, economy 24/8 = 3.0:
	// 3*15 + 2*5 + 10 (three-for) + 10 (economy<=3) = 75.
	line := BowlingLine{Overs: 8, Maidens: 2, RunsConceded: 24, Wickets: 3}

	got := CalcBowlingPoints(DefaultFormula().Bowling, line)
	if got.Points != 75 {
		t.Fatalf("unexpected bowling points: got=%v want=75", got.Points)
	}
}

func TestCalcBowlingPoints_ZeroOversIgnoresEconomyBands(t *testing.T) {
	t.Parallel()

	line := BowlingLine{Overs: 0, RunsConceded: 0, Wickets: 0}

	got := CalcBowlingPoints(DefaultFormula().Bowling, line)
	if got.Points != 0 {
		t.Fatalf("economy bands applied with zero overs: got=%v", got.Points)
	}
}

func TestCalcBowlingPoints_OverlappingBandsBothApply(t *testing.T) {
	t.Parallel()

	// Overlap is deliberately supported: a single line may trigger a bonus and
	// a penalty at the same time when configured ranges intersect.
	cfg := BowlingConfig{
		EconomyBands: []EconomyBand{
			{Max: floatPtr(6), Bonus: 10},
			{Min: floatPtr(4), Penalty: -3},
		},
	}
	line := BowlingLine{Overs: 4, RunsConceded: 20}

	got := CalcBowlingPoints(cfg, line)
	if got.Details.Bonuses != 10 || got.Details.Penalties != -3 {
		t.Fatalf("unexpected band evaluation: %+v", got.Details)
	}
	if got.Points != 7 {
		t.Fatalf("unexpected bowling points: got=%v want=7", got.Points)
	}
}

func TestCalcBowlingPoints_PartialOversUseBallCount(t *testing.T) {
	t.Parallel()

	// 4.3 overs is 27 balls = 4.5 true overs, economy 36/4.5 = 8.0 which
	// triggers the default >=8 penalty.
	line := BowlingLine{Overs: 4.3, RunsConceded: 36, Wickets: 1}

	got := CalcBowlingPoints(DefaultFormula().Bowling, line)
	if got.Details.Penalties != -10 {
		t.Fatalf("expected economy penalty at 8.0: %+v", got.Details)
	}
}

func TestCalcFieldingPoints_DefaultFormulaScenario(t *testing.T) {
	t.Parallel()

	// 2 catches and a drop: 2*5 - 5 = 5.
	line := FieldingLine{Catches: 2, Drops: 1}

	got := CalcFieldingPoints(DefaultFormula().Fielding, line)
	if got.Points != 5 {
		t.Fatalf("unexpected fielding points: got=%v want=5", got.Points)
	}
}

func TestCalcTotalPoints_DefaultFormulaEndToEnd(t *testing.T) {
	t.Parallel()

	got := CalcTotalPoints(
		DefaultFormula(),
		BattingLine{Runs: 72, Balls: 55, Fours: 10, Sixes: 2, IsOut: true, Dismissal: "caught"},
		BowlingLine{Overs: 8, Maidens: 2, RunsConceded: 24, Wickets: 3},
		FieldingLine{Catches: 2, Drops: 1},
	)

	if got.Batting.Points != 96 {
		t.Fatalf("unexpected batting points: got=%v want=96", got.Batting.Points)
	}
	if got.Bowling.Points != 75 {
		t.Fatalf("unexpected bowling points: got=%v want=75", got.Bowling.Points)
	}
	if got.Fielding.Points != 5 {
		t.Fatalf("unexpected fielding points: got=%v want=5", got.Fielding.Points)
	}
	if got.Total != 176 {
		t.Fatalf("unexpected total points: got=%v want=176", got.Total)
	}
}

func TestCalcTotalPoints_IncreasingWeightsNeverDecreaseTotal(t *testing.T) {
	t.Parallel()

	batting := BattingLine{Runs: 40, Balls: 30, Fours: 5, Sixes: 1, IsOut: true, Dismissal: "lbw"}
	bowling := BowlingLine{Overs: 6, Maidens: 1, RunsConceded: 30, Wickets: 2}
	fielding := FieldingLine{Catches: 1, RunOuts: 1}

	base := DefaultFormula()
	before := CalcTotalPoints(base, batting, bowling, fielding).Total

	raised := DefaultFormula()
	raised.Batting.PerRun += 0.5
	raised.Bowling.PerWicket += 5
	raised.Fielding.Catch += 2

	after := CalcTotalPoints(raised, batting, bowling, fielding).Total
	if after < before {
		t.Fatalf("raising positive weights decreased total: before=%v after=%v", before, after)
	}
}

func TestOversToBalls(t *testing.T) {
	t.Parallel()

	tests := []struct {
		overs float64
		want  int
	}{
		{0, 0},
		{1, 6},
		{4.3, 27},
		{10.5, 65},
	}
	for _, tc := range tests {
		if got := OversToBalls(tc.overs); got != tc.want {
			t.Fatalf("OversToBalls(%v): got=%d want=%d", tc.overs, got, tc.want)
		}
	}
}
