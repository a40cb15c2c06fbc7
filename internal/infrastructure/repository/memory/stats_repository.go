package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/robharvey123/cricket-platform/internal/domain/stats"
)

type StatsRepository struct {
	mu         sync.RWMutex
	seasonRows map[string]stats.PlayerSeasonStats
	perfRows   map[string]stats.PlayerMatchPerformance
}

func NewStatsRepository() *StatsRepository {
	return &StatsRepository{
		seasonRows: make(map[string]stats.PlayerSeasonStats),
		perfRows:   make(map[string]stats.PlayerMatchPerformance),
	}
}

func (r *StatsRepository) UpsertSeasonStats(_ context.Context, row stats.PlayerSeasonStats) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seasonRows[row.PlayerID+"|"+row.SeasonID] = row
	return nil
}

func (r *StatsRepository) UpsertMatchPerformance(_ context.Context, row stats.PlayerMatchPerformance) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.perfRows[row.PlayerID+"|"+row.MatchID] = row
	return nil
}

func (r *StatsRepository) ListSeasonStats(_ context.Context, clubID, seasonID string) ([]stats.PlayerSeasonStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]stats.PlayerSeasonStats, 0)
	for _, row := range r.seasonRows {
		if row.ClubID != clubID {
			continue
		}
		if seasonID != "" && row.SeasonID != seasonID {
			continue
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalPoints != out[j].TotalPoints {
			return out[i].TotalPoints > out[j].TotalPoints
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out, nil
}

func (r *StatsRepository) ListMatchPerformances(_ context.Context, playerID, seasonID string) ([]stats.PlayerMatchPerformance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]stats.PlayerMatchPerformance, 0)
	for _, row := range r.perfRows {
		if row.PlayerID != playerID {
			continue
		}
		if seasonID != "" && row.SeasonID != seasonID {
			continue
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CalculatedAt.Equal(out[j].CalculatedAt) {
			return out[i].CalculatedAt.Before(out[j].CalculatedAt)
		}
		return out[i].MatchID < out[j].MatchID
	})
	return out, nil
}
