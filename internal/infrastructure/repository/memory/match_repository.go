package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/robharvey123/cricket-platform/internal/domain/match"
	"github.com/robharvey123/cricket-platform/internal/platform/id"
)

type MatchRepository struct {
	mu       sync.RWMutex
	items    map[string]match.Match
	fielding map[string][]match.FieldingCard
	ids      id.Generator
}

func NewMatchRepository(ids id.Generator) *MatchRepository {
	return &MatchRepository{
		items:    make(map[string]match.Match),
		fielding: make(map[string][]match.FieldingCard),
		ids:      ids,
	}
}

func (r *MatchRepository) ListBySeason(_ context.Context, clubID, seasonID string) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0)
	for _, m := range r.items {
		if m.ClubID != clubID {
			continue
		}
		if seasonID != "" && m.SeasonID != seasonID {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PlayedAt.Equal(out[j].PlayedAt) {
			return out[i].PlayedAt.Before(out[j].PlayedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *MatchRepository) GetMatch(_ context.Context, matchID string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.items[matchID]
	if !ok {
		return match.Match{}, false, nil
	}
	return m, true, nil
}

func (r *MatchRepository) UpsertMatch(_ context.Context, m match.Match) (match.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Imported matches land on the same row when re-fetched.
	if m.ExternalID > 0 {
		for key, existing := range r.items {
			if existing.ClubID == m.ClubID && existing.ExternalID == m.ExternalID {
				m.ID = key
				break
			}
		}
	}
	if m.ID == "" {
		publicID, err := r.ids.NewID()
		if err != nil {
			return match.Match{}, fmt.Errorf("generate match id: %w", err)
		}
		m.ID = publicID
	}
	for i := range m.Innings {
		m.Innings[i].MatchID = m.ID
	}

	r.items[m.ID] = m
	return m, nil
}

func (r *MatchRepository) SetPublished(_ context.Context, matchID string, published bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.items[matchID]
	if !ok {
		return fmt.Errorf("match %s not found", matchID)
	}
	m.Published = published
	r.items[matchID] = m
	return nil
}

func (r *MatchRepository) ListFieldingCards(_ context.Context, matchID string) ([]match.FieldingCard, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]match.FieldingCard(nil), r.fielding[matchID]...), nil
}

func (r *MatchRepository) InsertFieldingCards(_ context.Context, rows []match.FieldingCard) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, row := range rows {
		cards := r.fielding[row.MatchID]
		replaced := false
		for i, existing := range cards {
			if existing.PlayerID == row.PlayerID {
				cards[i] = row
				replaced = true
				break
			}
		}
		if !replaced {
			cards = append(cards, row)
		}
		r.fielding[row.MatchID] = cards
	}
	return nil
}
