package scoring

import (
	"errors"
	"testing"
)

func TestValidate_DefaultFormulaIsValid(t *testing.T) {
	t.Parallel()

	if err := Validate(DefaultFormula()); err != nil {
		t.Fatalf("default formula failed validation: %v", err)
	}
}

func TestValidate_Rejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Formula)
		wantErr error
	}{
		{
			name:    "negative per-run weight",
			mutate:  func(f *Formula) { f.Batting.PerRun = -1 },
			wantErr: ErrNegativeWeight,
		},
		{
			name:    "positive duck penalty",
			mutate:  func(f *Formula) { f.Batting.DuckPenalty = 5 },
			wantErr: ErrPositivePenalty,
		},
		{
			name: "milestones out of order",
			mutate: func(f *Formula) {
				f.Batting.Milestones = []Milestone{{RunsThreshold: 100, Bonus: 25}, {RunsThreshold: 50, Bonus: 10}}
			},
			wantErr: ErrMilestoneOrder,
		},
		{
			name: "economy band with no bounds",
			mutate: func(f *Formula) {
				f.Bowling.EconomyBands = []EconomyBand{{Bonus: 10}}
			},
			wantErr: ErrEconomyBandUnbound,
		},
		{
			name: "economy band min above max",
			mutate: func(f *Formula) {
				f.Bowling.EconomyBands = []EconomyBand{{Min: floatPtr(9), Max: floatPtr(3), Bonus: 1}}
			},
			wantErr: ErrEconomyBandBackward,
		},
		{
			name:    "positive misfield penalty",
			mutate:  func(f *Formula) { f.Fielding.MisfieldPenalty = 2 },
			wantErr: ErrPositivePenalty,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			formula := DefaultFormula()
			tc.mutate(&formula)

			err := Validate(formula)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("unexpected error: got=%v want=%v", err, tc.wantErr)
			}
		})
	}
}
