package memory

import (
	"context"
	"sync"

	"github.com/robharvey123/cricket-platform/internal/domain/club"
)

type ClubRepository struct {
	mu     sync.RWMutex
	items  map[string]club.Club
	orders []string
}

func NewClubRepository(clubs []club.Club) *ClubRepository {
	items := make(map[string]club.Club, len(clubs))
	orders := make([]string, 0, len(clubs))

	for _, c := range clubs {
		items[c.ID] = c
		orders = append(orders, c.ID)
	}

	return &ClubRepository{
		items:  items,
		orders: orders,
	}
}

func (r *ClubRepository) GetClub(_ context.Context, clubID string) (club.Club, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.items[clubID]
	if !ok {
		return club.Club{}, false, nil
	}

	return c, true, nil
}

func (r *ClubRepository) ListClubs(_ context.Context) ([]club.Club, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]club.Club, 0, len(r.orders))
	for _, id := range r.orders {
		out = append(out, r.items[id])
	}

	return out, nil
}
