package club

import "context"

type Repository interface {
	GetClub(ctx context.Context, clubID string) (Club, bool, error)
	ListClubs(ctx context.Context) ([]Club, error)
}
