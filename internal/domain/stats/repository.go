package stats

import "context"

type Repository interface {
	// UpsertSeasonStats replaces the row keyed by player + season wholesale.
	UpsertSeasonStats(ctx context.Context, row PlayerSeasonStats) error
	// UpsertMatchPerformance replaces the row keyed by player + match.
	UpsertMatchPerformance(ctx context.Context, row PlayerMatchPerformance) error

	ListSeasonStats(ctx context.Context, clubID, seasonID string) ([]PlayerSeasonStats, error)
	ListMatchPerformances(ctx context.Context, playerID, seasonID string) ([]PlayerMatchPerformance, error)
}
