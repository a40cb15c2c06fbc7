package roster

import "context"

type Repository interface {
	ListByClub(ctx context.Context, clubID string) ([]Player, error)
	CreatePlayer(ctx context.Context, clubID, firstName, lastName string) (Player, error)

	ListTeamRoster(ctx context.Context, teamID string) ([]string, error)
	// AddTeamRosterMembers persists roster membership discovered during
	// fielding derivation so later lookups skip the fallback tiers.
	AddTeamRosterMembers(ctx context.Context, teamID string, playerIDs []string) error
}
