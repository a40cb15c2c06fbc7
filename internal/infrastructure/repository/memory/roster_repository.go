package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/robharvey123/cricket-platform/internal/domain/roster"
	"github.com/robharvey123/cricket-platform/internal/platform/id"
)

type RosterRepository struct {
	mu          sync.RWMutex
	players     map[string]roster.Player
	teamRosters map[string][]string
	ids         id.Generator
}

func NewRosterRepository(players []roster.Player, ids id.Generator) *RosterRepository {
	items := make(map[string]roster.Player, len(players))
	for _, p := range players {
		items[p.ID] = p
	}

	return &RosterRepository{
		players:     items,
		teamRosters: make(map[string][]string),
		ids:         ids,
	}
}

func (r *RosterRepository) ListByClub(_ context.Context, clubID string) ([]roster.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]roster.Player, 0)
	for _, p := range r.players {
		if p.ClubID == clubID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		return out[i].FirstName < out[j].FirstName
	})
	return out, nil
}

func (r *RosterRepository) CreatePlayer(_ context.Context, clubID, firstName, lastName string) (roster.Player, error) {
	publicID, err := r.ids.NewID()
	if err != nil {
		return roster.Player{}, fmt.Errorf("generate player id: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p := roster.Player{
		ID:        publicID,
		ClubID:    clubID,
		FirstName: firstName,
		LastName:  lastName,
	}
	r.players[p.ID] = p
	return p, nil
}

func (r *RosterRepository) ListTeamRoster(_ context.Context, teamID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string(nil), r.teamRosters[teamID]...), nil
}

func (r *RosterRepository) AddTeamRosterMembers(_ context.Context, teamID string, playerIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing := make(map[string]struct{}, len(r.teamRosters[teamID]))
	for _, playerID := range r.teamRosters[teamID] {
		existing[playerID] = struct{}{}
	}
	for _, playerID := range playerIDs {
		if _, ok := existing[playerID]; ok {
			continue
		}
		r.teamRosters[teamID] = append(r.teamRosters[teamID], playerID)
		existing[playerID] = struct{}{}
	}
	return nil
}
