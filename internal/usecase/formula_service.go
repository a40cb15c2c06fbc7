package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/robharvey123/cricket-platform/internal/domain/scoring"
)

type FormulaService struct {
	formulaRepo scoring.Repository
}

func NewFormulaService(formulaRepo scoring.Repository) *FormulaService {
	return &FormulaService{formulaRepo: formulaRepo}
}

// GetActive returns the club's active formula, provisioning the system
// default for clubs that have never configured one.
func (s *FormulaService) GetActive(ctx context.Context, clubID string) (scoring.Formula, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FormulaService.GetActive")
	defer span.End()

	clubID = strings.TrimSpace(clubID)
	if clubID == "" {
		return scoring.Formula{}, fmt.Errorf("%w: club id is required", ErrInvalidInput)
	}

	formula, found, err := s.formulaRepo.GetActiveFormula(ctx, clubID)
	if err != nil {
		return scoring.Formula{}, fmt.Errorf("get active formula: %w", err)
	}
	if found {
		return formula, nil
	}

	fallback := scoring.DefaultFormula()
	fallback.ClubID = clubID
	created, err := s.formulaRepo.CreateFormula(ctx, fallback)
	if err != nil {
		return scoring.Formula{}, fmt.Errorf("%w: provision default formula club=%s: %v", ErrNoActiveFormula, clubID, err)
	}
	return created, nil
}

func (s *FormulaService) List(ctx context.Context, clubID string) ([]scoring.Formula, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FormulaService.List")
	defer span.End()

	clubID = strings.TrimSpace(clubID)
	if clubID == "" {
		return nil, fmt.Errorf("%w: club id is required", ErrInvalidInput)
	}

	items, err := s.formulaRepo.ListFormulas(ctx, clubID)
	if err != nil {
		return nil, fmt.Errorf("list formulas: %w", err)
	}
	return items, nil
}

// Create validates and publishes a new formula version. The repository
// assigns the next version number and deactivates prior versions so exactly
// one stays active per club.
func (s *FormulaService) Create(ctx context.Context, formula scoring.Formula) (scoring.Formula, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FormulaService.Create")
	defer span.End()

	formula.ClubID = strings.TrimSpace(formula.ClubID)
	formula.Name = strings.TrimSpace(formula.Name)
	if formula.ClubID == "" {
		return scoring.Formula{}, fmt.Errorf("%w: club id is required", ErrInvalidInput)
	}
	if formula.Name == "" {
		return scoring.Formula{}, fmt.Errorf("%w: formula name is required", ErrInvalidInput)
	}
	if err := scoring.Validate(formula); err != nil {
		return scoring.Formula{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	formula.Active = true
	created, err := s.formulaRepo.CreateFormula(ctx, formula)
	if err != nil {
		return scoring.Formula{}, fmt.Errorf("create formula: %w", err)
	}
	return created, nil
}

func (s *FormulaService) Activate(ctx context.Context, clubID, formulaID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.FormulaService.Activate")
	defer span.End()

	clubID = strings.TrimSpace(clubID)
	formulaID = strings.TrimSpace(formulaID)
	if clubID == "" || formulaID == "" {
		return fmt.Errorf("%w: club id and formula id are required", ErrInvalidInput)
	}

	formula, found, err := s.formulaRepo.GetFormula(ctx, formulaID)
	if err != nil {
		return fmt.Errorf("get formula: %w", err)
	}
	if !found || formula.ClubID != clubID {
		return fmt.Errorf("%w: formula %s", ErrNotFound, formulaID)
	}

	if err := s.formulaRepo.ActivateFormula(ctx, clubID, formulaID); err != nil {
		return fmt.Errorf("activate formula: %w", err)
	}
	return nil
}
