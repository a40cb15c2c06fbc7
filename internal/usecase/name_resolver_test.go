package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robharvey123/cricket-platform/internal/domain/roster"
)

func testRoster() []roster.Player {
	return []roster.Player{
		{ID: "p-smith-j", ClubID: "club-1", FirstName: "John", LastName: "Smith"},
		{ID: "p-smith-a", ClubID: "club-1", FirstName: "Alan", LastName: "Smith"},
		{ID: "p-patel", ClubID: "club-1", FirstName: "Ravi", LastName: "Patel"},
		{ID: "p-obrien", ClubID: "club-1", FirstName: "Sean", LastName: "O'Brien"},
	}
}

func TestNameResolverTiers(t *testing.T) {
	resolver, err := NewNameResolver(context.Background(), "club-1", newStubRosterRepo(testRoster()...))
	require.NoError(t, err)

	cases := []struct {
		name    string
		input   string
		wantID  string
		matched bool
	}{
		{name: "exact full name", input: "John Smith", wantID: "p-smith-j", matched: true},
		{name: "case and spacing insensitive", input: "  john   SMITH ", wantID: "p-smith-j", matched: true},
		{name: "punctuation stripped", input: "Sean OBrien", wantID: "p-obrien", matched: true},
		{name: "middle name tolerated", input: "Ravi Kumar Patel", wantID: "p-patel", matched: true},
		{name: "unique surname", input: "Patel", wantID: "p-patel", matched: true},
		{name: "ambiguous surname is no match", input: "Smith", matched: false},
		{name: "unknown name", input: "Chris Taylor", matched: false},
		{name: "empty", input: "   ", matched: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id, ok := resolver.Resolve(tc.input)
			assert.Equal(t, tc.matched, ok)
			assert.Equal(t, tc.wantID, id)
		})
	}
}

func TestNameResolverCreateOnceForRepeatedUnknown(t *testing.T) {
	repo := newStubRosterRepo(testRoster()...)
	resolver, err := NewNameResolver(context.Background(), "club-1", repo)
	require.NoError(t, err)

	ctx := context.Background()
	first, err := resolver.ResolveOrCreate(ctx, "Chris Taylor")
	require.NoError(t, err)
	require.NotEmpty(t, first)

	// Second sighting in the same pass must hit the freshly registered entry.
	second, err := resolver.ResolveOrCreate(ctx, "C Taylor")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	third, err := resolver.ResolveOrCreate(ctx, "Taylor")
	require.NoError(t, err)
	assert.Equal(t, first, third)

	assert.Len(t, repo.players, len(testRoster())+1)
}

func TestNameResolverNeverCreatesOnAmbiguity(t *testing.T) {
	repo := newStubRosterRepo(testRoster()...)
	resolver, err := NewNameResolver(context.Background(), "club-1", repo)
	require.NoError(t, err)

	// Bare "Smith" is ambiguous; ResolveOrCreate falls through to creation
	// rather than guessing between the two Smiths.
	id, err := resolver.ResolveOrCreate(context.Background(), "Smith")
	require.NoError(t, err)
	assert.NotEqual(t, "p-smith-j", id)
	assert.NotEqual(t, "p-smith-a", id)
}

func TestNameResolverResolveAll(t *testing.T) {
	resolver, err := NewNameResolver(context.Background(), "club-1", newStubRosterRepo(testRoster()...))
	require.NoError(t, err)

	resolved, unmatched := resolver.ResolveAll([]string{
		"John Smith", "Smith", "Patel", "New Guy", "New Guy", "",
	})

	assert.Equal(t, map[string]string{
		"John Smith": "p-smith-j",
		"Patel":      "p-patel",
	}, resolved)
	assert.Equal(t, []string{"Smith", "New Guy"}, unmatched)
}
