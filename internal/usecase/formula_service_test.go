package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robharvey123/cricket-platform/internal/domain/scoring"
)

func TestFormulaServiceGetActiveProvisionsDefault(t *testing.T) {
	repo := newStubFormulaRepo()
	svc := NewFormulaService(repo)

	formula, err := svc.GetActive(context.Background(), "club-1")
	require.NoError(t, err)
	assert.Equal(t, "club-1", formula.ClubID)
	assert.True(t, formula.Active)
	assert.Equal(t, 1, formula.Version)
	assert.Equal(t, scoring.DefaultFormula().Batting, formula.Batting)

	// A second call returns the provisioned row instead of creating another.
	again, err := svc.GetActive(context.Background(), "club-1")
	require.NoError(t, err)
	assert.Equal(t, formula.ID, again.ID)
	assert.Len(t, repo.formulas, 1)
}

func TestFormulaServiceCreateVersionsAndActivates(t *testing.T) {
	repo := newStubFormulaRepo()
	svc := NewFormulaService(repo)

	first, err := svc.GetActive(context.Background(), "club-1")
	require.NoError(t, err)

	next := scoring.DefaultFormula()
	next.ClubID = "club-1"
	next.Name = "2026 trial"
	next.Batting.PerRun = 2

	created, err := svc.Create(context.Background(), next)
	require.NoError(t, err)
	assert.Equal(t, 2, created.Version)
	assert.True(t, created.Active)

	active, err := svc.GetActive(context.Background(), "club-1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, active.ID)

	// Reactivating the old version flips exactly one formula back.
	require.NoError(t, svc.Activate(context.Background(), "club-1", first.ID))
	active, err = svc.GetActive(context.Background(), "club-1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, active.ID)
}

func TestFormulaServiceCreateRejectsInvalid(t *testing.T) {
	svc := NewFormulaService(newStubFormulaRepo())

	bad := scoring.DefaultFormula()
	bad.ClubID = "club-1"
	bad.Name = "broken"
	bad.Batting.PerRun = -1

	_, err := svc.Create(context.Background(), bad)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFormulaServiceActivateForeignFormula(t *testing.T) {
	repo := newStubFormulaRepo()
	svc := NewFormulaService(repo)

	theirs, err := svc.GetActive(context.Background(), "club-2")
	require.NoError(t, err)

	err = svc.Activate(context.Background(), "club-1", theirs.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
