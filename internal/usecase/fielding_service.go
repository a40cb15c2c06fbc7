package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/robharvey123/cricket-platform/internal/domain/club"
	"github.com/robharvey123/cricket-platform/internal/domain/match"
	"github.com/robharvey123/cricket-platform/internal/domain/roster"
)

// Dismissal text patterns for the credited fielder: "c Smith b Jones",
// "st Smith b Jones", "run out (Smith)" / "run out (Smith/Jones)".
var (
	caughtFielderRegex  = regexp.MustCompile(`(?i)^c(?:t\.?|aught)?[.\s]+(.+?)\s+b[.\s]`)
	stumpedFielderRegex = regexp.MustCompile(`(?i)^st(?:\.|umped)?[.\s]+(.+?)\s+b[.\s]`)
	runOutFielderRegex  = regexp.MustCompile(`(?i)run\s*out\s*\(([^)/,]+)`)
)

type dismissalKind int

const (
	dismissalNone dismissalKind = iota
	dismissalCaught
	dismissalStumped
	dismissalRunOut
)

// FieldingService infers fielding credits for the club's fielding side from
// the opposing batting cards, and force-seeds the full fielding roster with
// explicit zero rows so season averages run over a known set of players.
type FieldingService struct {
	matchRepo  match.Repository
	rosterRepo roster.Repository
	provider   MatchDetailProvider
	logger     *slog.Logger
}

func NewFieldingService(
	matchRepo match.Repository,
	rosterRepo roster.Repository,
	provider MatchDetailProvider,
	logger *slog.Logger,
) *FieldingService {
	if logger == nil {
		logger = slog.Default()
	}
	return &FieldingService{
		matchRepo:  matchRepo,
		rosterRepo: rosterRepo,
		provider:   provider,
		logger:     logger,
	}
}

// DeriveMatchFielding materializes FieldingCard rows for every player on the
// club's fielding roster for the given match. Existing rows carrying a
// nonzero catch/stumping/run-out are never touched: manual edits always win.
func (s *FieldingService) DeriveMatchFielding(ctx context.Context, c club.Club, m match.Match, resolver *NameResolver) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.FieldingService.DeriveMatchFielding")
	defer span.End()

	clubSide := resolveClubSide(m, c.Names())
	sides := inferInningsSides(m)

	rosterIDs, err := s.fieldingRoster(ctx, c, m, resolver)
	if err != nil {
		return err
	}
	rosterSet := make(map[string]struct{}, len(rosterIDs))
	for _, id := range rosterIDs {
		rosterSet[id] = struct{}{}
	}

	counts := make(map[string]*match.FieldingCard)
	for idx, inn := range m.Innings {
		if clubSide != match.SideUnknown && sides[idx] == clubSide {
			// The club is batting; these dismissals credit the opposition.
			continue
		}
		for _, card := range inn.Batting {
			if !card.IsOut {
				continue
			}
			kind := classifyDismissal(card.HowOut)
			if kind == dismissalNone {
				continue
			}

			fielderID, err := s.resolveFielder(ctx, card, kind, rosterSet, resolver)
			if err != nil {
				return fmt.Errorf("resolve fielder for dismissal %q: %w", card.HowOut, err)
			}
			if fielderID == "" {
				continue
			}

			row := counts[fielderID]
			if row == nil {
				row = &match.FieldingCard{MatchID: m.ID, PlayerID: fielderID, Derived: true}
				counts[fielderID] = row
			}
			switch kind {
			case dismissalCaught:
				row.Catches++
			case dismissalStumped:
				row.Stumpings++
			case dismissalRunOut:
				row.RunOuts++
			}
		}
	}

	existing, err := s.matchRepo.ListFieldingCards(ctx, m.ID)
	if err != nil {
		return fmt.Errorf("list fielding cards match=%s: %w", m.ID, err)
	}
	existingByPlayer := make(map[string]match.FieldingCard, len(existing))
	for _, row := range existing {
		existingByPlayer[row.PlayerID] = row
	}

	// Zero-rows rule: every roster member gets a row, inferred or zero.
	members := make(map[string]struct{}, len(rosterSet)+len(counts))
	for id := range rosterSet {
		members[id] = struct{}{}
	}
	for id := range counts {
		members[id] = struct{}{}
	}

	upserts := make([]match.FieldingCard, 0, len(members))
	for playerID := range members {
		current, exists := existingByPlayer[playerID]
		if exists && current.HasManualWicketCredit() {
			continue
		}
		if exists && !current.Derived {
			// Manually entered zero row; leave it alone.
			continue
		}

		next := match.FieldingCard{MatchID: m.ID, PlayerID: playerID, Derived: true}
		if inferred := counts[playerID]; inferred != nil {
			next = *inferred
		}
		if exists && next == current {
			continue
		}
		upserts = append(upserts, next)
	}

	if len(upserts) == 0 {
		return nil
	}
	sort.Slice(upserts, func(i, j int) bool { return upserts[i].PlayerID < upserts[j].PlayerID })
	if err := s.matchRepo.InsertFieldingCards(ctx, upserts); err != nil {
		return fmt.Errorf("insert fielding cards match=%s: %w", m.ID, err)
	}
	return nil
}

// fieldingRoster resolves the club's fielding-side roster through a tiered
// fallback chain: explicit team roster, then match participants, then a
// provider match-detail fetch whose result is persisted for future lookups.
func (s *FieldingService) fieldingRoster(ctx context.Context, c club.Club, m match.Match, resolver *NameResolver) ([]string, error) {
	if m.TeamID != "" {
		ids, err := s.rosterRepo.ListTeamRoster(ctx, m.TeamID)
		if err != nil {
			return nil, fmt.Errorf("list team roster team=%s: %w", m.TeamID, err)
		}
		if len(ids) > 0 {
			return ids, nil
		}
	}

	if ids := matchParticipants(m, c.Names()); len(ids) > 0 {
		return ids, nil
	}

	if s.provider == nil || m.ExternalID == 0 || c.ProviderSiteID == 0 {
		return nil, nil
	}
	detail, err := s.provider.FetchMatchDetail(ctx, ProviderCredentials{SiteID: c.ProviderSiteID, Token: c.ProviderToken}, m.ExternalID)
	if err != nil {
		return nil, fmt.Errorf("fetch match detail for roster fallback: %w", err)
	}

	ids := make([]string, 0, 11)
	for _, inn := range detail.Innings {
		if !matchesAnyName(inn.BattingTeam, c.Names()) {
			continue
		}
		for _, entry := range inn.Batting {
			id, err := resolver.ResolveOrCreate(ctx, entry.PlayerName)
			if err != nil {
				return nil, err
			}
			ids = append(ids, id)
		}
	}
	if len(ids) > 0 && m.TeamID != "" {
		if err := s.rosterRepo.AddTeamRosterMembers(ctx, m.TeamID, ids); err != nil {
			s.logger.WarnContext(ctx, "persist derived team roster failed", "team_id", m.TeamID, "error", err)
		}
	}
	return ids, nil
}

// matchParticipants collects players already attributed on the club's own
// cards of this match (tier-2 roster fallback).
func matchParticipants(m match.Match, clubNames []string) []string {
	clubSide := resolveClubSide(m, clubNames)
	sides := inferInningsSides(m)

	seen := make(map[string]struct{})
	ids := make([]string, 0, 11)
	add := func(id string) {
		if id == "" {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	for idx, inn := range m.Innings {
		clubBatting := clubSide == match.SideUnknown || sides[idx] == clubSide
		for _, card := range inn.Batting {
			if clubBatting {
				add(card.PlayerID)
			}
		}
		for _, card := range inn.Bowling {
			if !clubBatting || clubSide == match.SideUnknown {
				add(card.PlayerID)
			}
		}
	}
	return ids
}

func classifyDismissal(howOut string) dismissalKind {
	text := strings.ToLower(strings.TrimSpace(howOut))
	switch {
	case text == "" || text == "not out" || text == "did not bat":
		return dismissalNone
	case strings.Contains(text, "run out"):
		return dismissalRunOut
	case strings.Contains(text, "stumped") || strings.HasPrefix(text, "st ") || strings.HasPrefix(text, "st."):
		return dismissalStumped
	case strings.Contains(text, "caught") || strings.HasPrefix(text, "ct ") || strings.HasPrefix(text, "c "):
		return dismissalCaught
	default:
		// bowled, lbw, hit wicket etc. carry no fielding credit.
		return dismissalNone
	}
}

// resolveFielder prefers an explicit fielder id when it belongs to the
// fielding roster, then the explicit fielder-name field, then a name parsed
// out of the dismissal text.
func (s *FieldingService) resolveFielder(
	ctx context.Context,
	card match.BattingCard,
	kind dismissalKind,
	rosterSet map[string]struct{},
	resolver *NameResolver,
) (string, error) {
	if card.FielderID != "" {
		if _, ok := rosterSet[card.FielderID]; ok {
			return card.FielderID, nil
		}
	}

	name := strings.TrimSpace(card.FielderName)
	if name == "" {
		name = parseFielderName(card.HowOut, kind)
	}
	if name == "" {
		return "", nil
	}
	return resolver.ResolveOrCreate(ctx, name)
}

func parseFielderName(howOut string, kind dismissalKind) string {
	var re *regexp.Regexp
	switch kind {
	case dismissalCaught:
		re = caughtFielderRegex
	case dismissalStumped:
		re = stumpedFielderRegex
	case dismissalRunOut:
		re = runOutFielderRegex
	default:
		return ""
	}
	groups := re.FindStringSubmatch(strings.TrimSpace(howOut))
	if len(groups) < 2 {
		return ""
	}
	return strings.TrimSpace(groups[1])
}
