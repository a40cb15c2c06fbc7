package match

import "context"

type Repository interface {
	// ListBySeason returns the club's matches with nested innings and cards.
	// An empty seasonID returns every match for the club.
	ListBySeason(ctx context.Context, clubID, seasonID string) ([]Match, error)
	GetMatch(ctx context.Context, matchID string) (Match, bool, error)

	// UpsertMatch replaces the match and its nested innings/cards wholesale,
	// keyed by club + external id for imported matches.
	UpsertMatch(ctx context.Context, m Match) (Match, error)
	SetPublished(ctx context.Context, matchID string, published bool) error

	ListFieldingCards(ctx context.Context, matchID string) ([]FieldingCard, error)
	// InsertFieldingCards upserts the given rows keyed by match + player.
	InsertFieldingCards(ctx context.Context, rows []FieldingCard) error
}
