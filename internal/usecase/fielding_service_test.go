package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robharvey123/cricket-platform/internal/domain/club"
	"github.com/robharvey123/cricket-platform/internal/domain/match"
	"github.com/robharvey123/cricket-platform/internal/domain/roster"
)

func TestClassifyDismissal(t *testing.T) {
	cases := []struct {
		howOut string
		want   dismissalKind
	}{
		{"c Smith b Jones", dismissalCaught},
		{"ct Smith b Jones", dismissalCaught},
		{"Caught Smith", dismissalCaught},
		{"caught & bowled", dismissalCaught},
		{"st Smith b Jones", dismissalStumped},
		{"Stumped Smith", dismissalStumped},
		{"run out (Smith)", dismissalRunOut},
		{"Run Out", dismissalRunOut},
		{"bowled Jones", dismissalNone},
		{"lbw b Jones", dismissalNone},
		{"hit wicket", dismissalNone},
		{"not out", dismissalNone},
		{"did not bat", dismissalNone},
		{"", dismissalNone},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, classifyDismissal(tc.howOut), "howOut=%q", tc.howOut)
	}
}

func TestParseFielderName(t *testing.T) {
	cases := []struct {
		howOut string
		kind   dismissalKind
		want   string
	}{
		{"c John Smith b R Patel", dismissalCaught, "John Smith"},
		{"ct. J Smith b. Patel", dismissalCaught, "J Smith"},
		{"caught Smith b Patel", dismissalCaught, "Smith"},
		{"st Smith b Patel", dismissalStumped, "Smith"},
		{"stumped J Smith b Patel", dismissalStumped, "J Smith"},
		{"run out (Smith)", dismissalRunOut, "Smith"},
		{"run out (Smith/Patel)", dismissalRunOut, "Smith"},
		{"Run Out (J Smith, sub)", dismissalRunOut, "J Smith"},
		{"run out", dismissalRunOut, ""},
		{"bowled", dismissalNone, ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, parseFielderName(tc.howOut, tc.kind), "howOut=%q", tc.howOut)
	}
}

func fieldingFixture() (club.Club, match.Match, *stubRosterRepo) {
	c := club.Club{ID: "club-1", Name: "Brookweald CC", ActiveSeasonID: "2026"}
	m := match.Match{
		ID:       "m-1",
		ClubID:   "club-1",
		SeasonID: "2026",
		TeamID:   "team-1",
		HomeTeam: "Brookweald CC",
		AwayTeam: "Herongate CC",
		Innings: []match.Innings{
			{
				Seq:         1,
				BattingTeam: "Herongate CC",
				Batting: []match.BattingCard{
					{PlayerName: "Opp One", Runs: 12, HowOut: "c John Smith b Ravi Patel", IsOut: true},
					{PlayerName: "Opp Two", Runs: 3, HowOut: "st Alan Smith b Ravi Patel", IsOut: true},
					{PlayerName: "Opp Three", Runs: 40, HowOut: "run out (Patel)", IsOut: true},
					{PlayerName: "Opp Four", Runs: 7, HowOut: "bowled Patel", IsOut: true},
					{PlayerName: "Opp Five", Runs: 20, HowOut: "not out"},
				},
			},
			{
				Seq:         2,
				BattingTeam: "Brookweald CC",
				Batting: []match.BattingCard{
					// Club batting: this caught credit belongs to the opposition.
					{PlayerID: "p-smith-j", PlayerName: "John Smith", Runs: 30, HowOut: "c Keeper b Other", IsOut: true},
				},
			},
		},
	}
	repo := newStubRosterRepo(
		roster.Player{ID: "p-smith-j", ClubID: "club-1", FirstName: "John", LastName: "Smith"},
		roster.Player{ID: "p-smith-a", ClubID: "club-1", FirstName: "Alan", LastName: "Smith"},
		roster.Player{ID: "p-patel", ClubID: "club-1", FirstName: "Ravi", LastName: "Patel"},
		roster.Player{ID: "p-quiet", ClubID: "club-1", FirstName: "Quiet", LastName: "Fielder"},
	)
	repo.teamRosters["team-1"] = []string{"p-smith-j", "p-smith-a", "p-patel", "p-quiet"}
	return c, m, repo
}

func TestDeriveMatchFieldingCountsAndZeroRows(t *testing.T) {
	c, m, rosterRepo := fieldingFixture()
	matchRepo := newStubMatchRepo(m)

	resolver, err := NewNameResolver(context.Background(), c.ID, rosterRepo)
	require.NoError(t, err)

	svc := NewFieldingService(matchRepo, rosterRepo, nil, nil)
	require.NoError(t, svc.DeriveMatchFielding(context.Background(), c, m, resolver))

	rows, err := matchRepo.ListFieldingCards(context.Background(), "m-1")
	require.NoError(t, err)

	byPlayer := make(map[string]match.FieldingCard, len(rows))
	for _, row := range rows {
		byPlayer[row.PlayerID] = row
	}

	// Every roster member has a row, including the one with no credits.
	require.Len(t, rows, 4)
	assert.Equal(t, 1, byPlayer["p-smith-j"].Catches)
	assert.Equal(t, 1, byPlayer["p-smith-a"].Stumpings)
	assert.Equal(t, 1, byPlayer["p-patel"].RunOuts)
	assert.Equal(t, match.FieldingCard{MatchID: "m-1", PlayerID: "p-quiet", Derived: true}, byPlayer["p-quiet"])
	for _, row := range rows {
		assert.True(t, row.Derived)
	}
}

func TestDeriveMatchFieldingIdempotent(t *testing.T) {
	c, m, rosterRepo := fieldingFixture()
	matchRepo := newStubMatchRepo(m)

	resolver, err := NewNameResolver(context.Background(), c.ID, rosterRepo)
	require.NoError(t, err)

	svc := NewFieldingService(matchRepo, rosterRepo, nil, nil)
	require.NoError(t, svc.DeriveMatchFielding(context.Background(), c, m, resolver))
	firstInserts := len(matchRepo.inserted)

	require.NoError(t, svc.DeriveMatchFielding(context.Background(), c, m, resolver))
	assert.Equal(t, firstInserts, len(matchRepo.inserted), "unchanged rows must not be rewritten")
}

func TestDeriveMatchFieldingNeverOverwritesManualCredits(t *testing.T) {
	c, m, rosterRepo := fieldingFixture()
	matchRepo := newStubMatchRepo(m)

	// A manual correction: the catch actually belonged to Patel.
	manual := match.FieldingCard{MatchID: "m-1", PlayerID: "p-smith-j", Catches: 0, Drops: 2, Derived: false}
	manualPatel := match.FieldingCard{MatchID: "m-1", PlayerID: "p-patel", Catches: 1, RunOuts: 1, Derived: false}
	matchRepo.fieldingCards["m-1"] = []match.FieldingCard{manual, manualPatel}

	resolver, err := NewNameResolver(context.Background(), c.ID, rosterRepo)
	require.NoError(t, err)

	svc := NewFieldingService(matchRepo, rosterRepo, nil, nil)
	require.NoError(t, svc.DeriveMatchFielding(context.Background(), c, m, resolver))

	rows, err := matchRepo.ListFieldingCards(context.Background(), "m-1")
	require.NoError(t, err)
	byPlayer := make(map[string]match.FieldingCard, len(rows))
	for _, row := range rows {
		byPlayer[row.PlayerID] = row
	}

	// Manual rows survive untouched; the rest are still derived.
	assert.Equal(t, manual, byPlayer["p-smith-j"])
	assert.Equal(t, manualPatel, byPlayer["p-patel"])
	assert.Equal(t, 1, byPlayer["p-smith-a"].Stumpings)
	assert.True(t, byPlayer["p-quiet"].Derived)
}

func TestDeriveMatchFieldingProviderRosterFallback(t *testing.T) {
	c, m, rosterRepo := fieldingFixture()
	c.ProviderSiteID = 99
	m.ExternalID = 1234
	m.Innings = []match.Innings{
		{
			Seq:         1,
			BattingTeam: "Herongate CC",
			Batting: []match.BattingCard{
				{PlayerName: "Opp One", Runs: 12, HowOut: "c John Smith b Ravi Patel", IsOut: true},
			},
		},
	}
	rosterRepo.teamRosters = map[string][]string{}
	matchRepo := newStubMatchRepo(m)

	provider := &stubProvider{details: map[int64]ExternalMatchDetail{
		1234: {
			ExternalID: 1234,
			Innings: []ExternalInnings{
				{BattingTeam: "Brookweald CC", Batting: []ExternalBattingEntry{
					{PlayerName: "John Smith"},
					{PlayerName: "Ravi Patel"},
					{PlayerName: "Quiet Fielder"},
				}},
				{BattingTeam: "Herongate CC", Batting: []ExternalBattingEntry{{PlayerName: "Opp One"}}},
			},
		},
	}}

	resolver, err := NewNameResolver(context.Background(), c.ID, rosterRepo)
	require.NoError(t, err)

	svc := NewFieldingService(matchRepo, rosterRepo, provider, nil)
	require.NoError(t, svc.DeriveMatchFielding(context.Background(), c, m, resolver))

	assert.Equal(t, 1, provider.calls)
	// The discovered roster is persisted for the next pass.
	assert.ElementsMatch(t, []string{"p-smith-j", "p-patel", "p-quiet"}, rosterRepo.teamRosters["team-1"])

	rows, err := matchRepo.ListFieldingCards(context.Background(), "m-1")
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}
