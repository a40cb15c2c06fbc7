package scoring

import (
	"errors"
	"fmt"
)

var (
	ErrNegativeWeight      = errors.New("weight cannot be negative")
	ErrPositivePenalty     = errors.New("penalty cannot be positive")
	ErrMilestoneOrder      = errors.New("milestone thresholds must be strictly ascending")
	ErrMilestoneThreshold  = errors.New("milestone threshold must be greater than zero")
	ErrEconomyBandUnbound  = errors.New("economy band requires a min or a max")
	ErrEconomyBandBackward = errors.New("economy band min cannot exceed max")
)

// Validate checks a formula configuration before it is published. Published
// versions are immutable, so all structural checks happen here.
func Validate(formula Formula) error {
	if err := validateBatting(formula.Batting); err != nil {
		return fmt.Errorf("batting: %w", err)
	}
	if err := validateBowling(formula.Bowling); err != nil {
		return fmt.Errorf("bowling: %w", err)
	}
	if err := validateFielding(formula.Fielding); err != nil {
		return fmt.Errorf("fielding: %w", err)
	}
	return nil
}

func validateBatting(cfg BattingConfig) error {
	for name, weight := range map[string]float64{
		"per_run":    cfg.PerRun,
		"boundary_4": cfg.Boundary4,
		"boundary_6": cfg.Boundary6,
	} {
		if weight < 0 {
			return fmt.Errorf("%w: %s", ErrNegativeWeight, name)
		}
	}
	if cfg.DuckPenalty > 0 {
		return fmt.Errorf("%w: duck_penalty", ErrPositivePenalty)
	}

	lastThreshold := 0
	for _, milestone := range cfg.Milestones {
		if milestone.RunsThreshold <= 0 {
			return fmt.Errorf("%w: got %d", ErrMilestoneThreshold, milestone.RunsThreshold)
		}
		if milestone.RunsThreshold <= lastThreshold {
			return fmt.Errorf("%w: %d after %d", ErrMilestoneOrder, milestone.RunsThreshold, lastThreshold)
		}
		if milestone.Bonus < 0 {
			return fmt.Errorf("%w: milestone bonus at %d", ErrNegativeWeight, milestone.RunsThreshold)
		}
		lastThreshold = milestone.RunsThreshold
	}
	return nil
}

func validateBowling(cfg BowlingConfig) error {
	for name, weight := range map[string]float64{
		"per_wicket":      cfg.PerWicket,
		"per_maiden":      cfg.PerMaiden,
		"three_for_bonus": cfg.ThreeForBonus,
		"five_for_bonus":  cfg.FiveForBonus,
	} {
		if weight < 0 {
			return fmt.Errorf("%w: %s", ErrNegativeWeight, name)
		}
	}

	for idx, band := range cfg.EconomyBands {
		if band.Min == nil && band.Max == nil {
			return fmt.Errorf("%w: band %d", ErrEconomyBandUnbound, idx)
		}
		if band.Min != nil && band.Max != nil && *band.Min > *band.Max {
			return fmt.Errorf("%w: band %d", ErrEconomyBandBackward, idx)
		}
		if band.Bonus < 0 {
			return fmt.Errorf("%w: band %d bonus", ErrNegativeWeight, idx)
		}
		if band.Penalty > 0 {
			return fmt.Errorf("%w: band %d penalty", ErrPositivePenalty, idx)
		}
	}
	return nil
}

func validateFielding(cfg FieldingConfig) error {
	for name, weight := range map[string]float64{
		"catch":    cfg.Catch,
		"stumping": cfg.Stumping,
		"run_out":  cfg.RunOut,
	} {
		if weight < 0 {
			return fmt.Errorf("%w: %s", ErrNegativeWeight, name)
		}
	}
	if cfg.DropPenalty > 0 {
		return fmt.Errorf("%w: drop_penalty", ErrPositivePenalty)
	}
	if cfg.MisfieldPenalty > 0 {
		return fmt.Errorf("%w: misfield_penalty", ErrPositivePenalty)
	}
	return nil
}
