package cache

import (
	"context"

	"github.com/robharvey123/cricket-platform/internal/domain/club"
	"github.com/robharvey123/cricket-platform/internal/domain/roster"
	"github.com/robharvey123/cricket-platform/internal/domain/stats"
	basecache "github.com/robharvey123/cricket-platform/internal/platform/cache"
)

// The decorators here sit in front of the postgres repositories for the
// read-heavy paths: club lookups happen on every request, rosters on every
// reconciliation pass, and stats reads back the public leaderboards. Writes
// pass through and invalidate.

type ClubRepository struct {
	next  club.Repository
	cache *basecache.Store
}

func NewClubRepository(next club.Repository, cache *basecache.Store) *ClubRepository {
	return &ClubRepository{next: next, cache: cache}
}

func (r *ClubRepository) GetClub(ctx context.Context, clubID string) (club.Club, bool, error) {
	key := "club:id:" + clubID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetClub(ctx, clubID)
		if err != nil {
			return nil, err
		}
		return cachedClubByID{value: cloneClub(item), exists: exists}, nil
	})
	if err != nil {
		return club.Club{}, false, err
	}

	cached, _ := v.(cachedClubByID)
	return cloneClub(cached.value), cached.exists, nil
}

func (r *ClubRepository) ListClubs(ctx context.Context) ([]club.Club, error) {
	v, err := r.cache.GetOrLoad(ctx, "club:list", func(ctx context.Context) (any, error) {
		items, err := r.next.ListClubs(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]club.Club, 0, len(items))
		for _, item := range items {
			out = append(out, cloneClub(item))
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]club.Club)
	out := make([]club.Club, 0, len(items))
	for _, item := range items {
		out = append(out, cloneClub(item))
	}
	return out, nil
}

type cachedClubByID struct {
	value  club.Club
	exists bool
}

func cloneClub(item club.Club) club.Club {
	out := item
	out.AltNames = append([]string(nil), item.AltNames...)
	return out
}

type RosterRepository struct {
	next  roster.Repository
	cache *basecache.Store
}

func NewRosterRepository(next roster.Repository, cache *basecache.Store) *RosterRepository {
	return &RosterRepository{next: next, cache: cache}
}

func (r *RosterRepository) ListByClub(ctx context.Context, clubID string) ([]roster.Player, error) {
	key := "roster:club:" + clubID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByClub(ctx, clubID)
		if err != nil {
			return nil, err
		}
		return append([]roster.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]roster.Player)
	return append([]roster.Player(nil), items...), nil
}

func (r *RosterRepository) CreatePlayer(ctx context.Context, clubID, firstName, lastName string) (roster.Player, error) {
	p, err := r.next.CreatePlayer(ctx, clubID, firstName, lastName)
	if err != nil {
		return roster.Player{}, err
	}
	r.cache.Delete(ctx, "roster:club:"+clubID)
	return p, nil
}

func (r *RosterRepository) ListTeamRoster(ctx context.Context, teamID string) ([]string, error) {
	key := "roster:team:" + teamID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListTeamRoster(ctx, teamID)
		if err != nil {
			return nil, err
		}
		return append([]string(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]string)
	return append([]string(nil), items...), nil
}

func (r *RosterRepository) AddTeamRosterMembers(ctx context.Context, teamID string, playerIDs []string) error {
	if err := r.next.AddTeamRosterMembers(ctx, teamID, playerIDs); err != nil {
		return err
	}
	r.cache.Delete(ctx, "roster:team:"+teamID)
	return nil
}

type StatsRepository struct {
	next  stats.Repository
	cache *basecache.Store
}

func NewStatsRepository(next stats.Repository, cache *basecache.Store) *StatsRepository {
	return &StatsRepository{next: next, cache: cache}
}

func (r *StatsRepository) UpsertSeasonStats(ctx context.Context, row stats.PlayerSeasonStats) error {
	if err := r.next.UpsertSeasonStats(ctx, row); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "stats:season:")
	return nil
}

func (r *StatsRepository) UpsertMatchPerformance(ctx context.Context, row stats.PlayerMatchPerformance) error {
	if err := r.next.UpsertMatchPerformance(ctx, row); err != nil {
		return err
	}
	r.cache.Delete(ctx, "stats:performances:"+row.PlayerID+":"+row.SeasonID)
	r.cache.Delete(ctx, "stats:performances:"+row.PlayerID+":")
	return nil
}

func (r *StatsRepository) ListSeasonStats(ctx context.Context, clubID, seasonID string) ([]stats.PlayerSeasonStats, error) {
	key := "stats:season:" + clubID + ":" + seasonID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListSeasonStats(ctx, clubID, seasonID)
		if err != nil {
			return nil, err
		}
		return append([]stats.PlayerSeasonStats(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]stats.PlayerSeasonStats)
	return append([]stats.PlayerSeasonStats(nil), items...), nil
}

func (r *StatsRepository) ListMatchPerformances(ctx context.Context, playerID, seasonID string) ([]stats.PlayerMatchPerformance, error) {
	key := "stats:performances:" + playerID + ":" + seasonID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListMatchPerformances(ctx, playerID, seasonID)
		if err != nil {
			return nil, err
		}
		return append([]stats.PlayerMatchPerformance(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]stats.PlayerMatchPerformance)
	return append([]stats.PlayerMatchPerformance(nil), items...), nil
}
