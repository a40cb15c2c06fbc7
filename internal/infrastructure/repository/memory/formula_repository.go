package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/robharvey123/cricket-platform/internal/domain/scoring"
	"github.com/robharvey123/cricket-platform/internal/platform/id"
)

type FormulaRepository struct {
	mu    sync.RWMutex
	items map[string]scoring.Formula
	ids   id.Generator
}

func NewFormulaRepository(ids id.Generator) *FormulaRepository {
	return &FormulaRepository{
		items: make(map[string]scoring.Formula),
		ids:   ids,
	}
}

func (r *FormulaRepository) GetActiveFormula(_ context.Context, clubID string) (scoring.Formula, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, f := range r.items {
		if f.ClubID == clubID && f.Active {
			return f, true, nil
		}
	}
	return scoring.Formula{}, false, nil
}

func (r *FormulaRepository) GetFormula(_ context.Context, formulaID string) (scoring.Formula, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.items[formulaID]
	if !ok {
		return scoring.Formula{}, false, nil
	}
	return f, true, nil
}

func (r *FormulaRepository) ListFormulas(_ context.Context, clubID string) ([]scoring.Formula, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]scoring.Formula, 0)
	for _, f := range r.items {
		if f.ClubID == clubID {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}

func (r *FormulaRepository) CreateFormula(_ context.Context, formula scoring.Formula) (scoring.Formula, error) {
	publicID, err := r.ids.NewID()
	if err != nil {
		return scoring.Formula{}, fmt.Errorf("generate formula id: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	maxVersion := 0
	for key, existing := range r.items {
		if existing.ClubID != formula.ClubID {
			continue
		}
		if existing.Version > maxVersion {
			maxVersion = existing.Version
		}
		if formula.Active && existing.Active {
			existing.Active = false
			r.items[key] = existing
		}
	}

	formula.ID = publicID
	formula.Version = maxVersion + 1
	formula.CreatedAt = time.Now().UTC()
	r.items[formula.ID] = formula
	return formula, nil
}

func (r *FormulaRepository) ActivateFormula(_ context.Context, clubID, formulaID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	target, ok := r.items[formulaID]
	if !ok || target.ClubID != clubID {
		return fmt.Errorf("formula %s not found for club %s", formulaID, clubID)
	}

	for key, f := range r.items {
		if f.ClubID != clubID {
			continue
		}
		f.Active = key == formulaID
		r.items[key] = f
	}
	return nil
}
