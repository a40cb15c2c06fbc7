package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/robharvey123/cricket-platform/internal/domain/roster"
)

// NameResolver maps free-text scorecard names to stable roster identities for
// one club. It is built per batch and mutated synchronously as players are
// created, so the same unknown name seen twice in a pass resolves to a single
// new identity. Ambiguous candidates are never guessed: a tie is a no-match.
//
// The resolver is not safe for concurrent use; an aggregation pass owns it for
// the duration of the batch.
type NameResolver struct {
	clubID     string
	rosterRepo roster.Repository

	byFullName  map[string]string
	byFirstLast map[string][]string
	bySurname   map[string][]string
}

func NewNameResolver(ctx context.Context, clubID string, rosterRepo roster.Repository) (*NameResolver, error) {
	clubID = strings.TrimSpace(clubID)
	if clubID == "" {
		return nil, fmt.Errorf("%w: club id is required", ErrInvalidInput)
	}

	players, err := rosterRepo.ListByClub(ctx, clubID)
	if err != nil {
		return nil, fmt.Errorf("list club roster: %w", err)
	}

	r := &NameResolver{
		clubID:      clubID,
		rosterRepo:  rosterRepo,
		byFullName:  make(map[string]string, len(players)),
		byFirstLast: make(map[string][]string, len(players)),
		bySurname:   make(map[string][]string, len(players)),
	}
	for _, p := range players {
		r.register(p)
	}
	return r, nil
}

func (r *NameResolver) register(p roster.Player) {
	full := roster.NormalizeName(p.FullName())
	if full == "" {
		return
	}
	r.byFullName[full] = p.ID

	tokens := strings.Fields(full)
	surname := tokens[len(tokens)-1]
	r.bySurname[surname] = appendUnique(r.bySurname[surname], p.ID)
	if len(tokens) > 1 {
		key := tokens[0] + " " + surname
		r.byFirstLast[key] = appendUnique(r.byFirstLast[key], p.ID)
	}
}

// Resolve looks a name up without mutating the roster. Match tiers, each only
// consulted when the previous one fails:
//  1. exact normalized full name
//  2. first token + last token (tolerates middle names/initials), only when
//     the key maps to exactly one player
//  3. surname alone, only when exactly one club player shares it
func (r *NameResolver) Resolve(name string) (string, bool) {
	normalized := roster.NormalizeName(roster.CleanName(name))
	if normalized == "" {
		return "", false
	}

	if id, ok := r.byFullName[normalized]; ok {
		return id, true
	}

	tokens := strings.Fields(normalized)
	surname := tokens[len(tokens)-1]
	if len(tokens) > 1 {
		if ids := r.byFirstLast[tokens[0]+" "+surname]; len(ids) == 1 {
			return ids[0], true
		}
	}
	if ids := r.bySurname[surname]; len(ids) == 1 {
		return ids[0], true
	}
	return "", false
}

// ResolveOrCreate resolves a name, creating a new roster player when no
// confident match exists. The new identity is registered into the lookup maps
// before returning so later lookups in the same batch hit it.
func (r *NameResolver) ResolveOrCreate(ctx context.Context, name string) (string, error) {
	if id, ok := r.Resolve(name); ok {
		return id, nil
	}

	cleaned := roster.CleanName(name)
	first, last := roster.SplitName(cleaned)
	if first == "" {
		return "", fmt.Errorf("%w: empty player name", ErrInvalidInput)
	}

	created, err := r.rosterRepo.CreatePlayer(ctx, r.clubID, first, last)
	if err != nil {
		return "", fmt.Errorf("create player %q: %w", cleaned, err)
	}
	r.register(created)
	return created.ID, nil
}

// ResolveAll resolves a set of names without creation and returns the ones
// left unmatched, in input order and deduplicated. Used by the publish gate.
func (r *NameResolver) ResolveAll(names []string) (map[string]string, []string) {
	resolved := make(map[string]string, len(names))
	unmatched := make([]string, 0)
	seen := make(map[string]struct{}, len(names))

	for _, name := range names {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}
		if _, dup := seen[trimmed]; dup {
			continue
		}
		seen[trimmed] = struct{}{}

		if id, ok := r.Resolve(trimmed); ok {
			resolved[trimmed] = id
		} else {
			unmatched = append(unmatched, trimmed)
		}
	}
	return resolved, unmatched
}

func appendUnique(ids []string, id string) []string {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}
