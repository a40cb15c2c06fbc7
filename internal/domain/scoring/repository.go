package scoring

import "context"

type Repository interface {
	// GetActiveFormula returns the single active formula for a club, with
	// found=false when the club has never configured one.
	GetActiveFormula(ctx context.Context, clubID string) (Formula, bool, error)
	GetFormula(ctx context.Context, formulaID string) (Formula, bool, error)
	ListFormulas(ctx context.Context, clubID string) ([]Formula, error)

	// CreateFormula persists a new version for the club: the implementation
	// assigns the next monotonically increasing version number and, when the
	// new formula is active, deactivates every prior version atomically.
	CreateFormula(ctx context.Context, formula Formula) (Formula, error)

	// ActivateFormula flips the active flag to the given version and clears it
	// on all others for the same club.
	ActivateFormula(ctx context.Context, clubID, formulaID string) error
}
