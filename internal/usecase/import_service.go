package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/robharvey123/cricket-platform/internal/domain/club"
	"github.com/robharvey123/cricket-platform/internal/domain/match"
)

// ProviderCredentials carry the per-club identity for the scorecard provider.
type ProviderCredentials struct {
	SiteID int64
	Token  string
}

// ExternalMatchDetail is a provider-shaped scorecard before roster
// reconciliation. Player references are free-text names only.
type ExternalMatchDetail struct {
	ExternalID int64
	HomeTeam   string
	AwayTeam   string
	PlayedAt   time.Time
	Innings    []ExternalInnings
}

type ExternalInnings struct {
	BattingTeam string
	Batting     []ExternalBattingEntry
	Bowling     []ExternalBowlingEntry
}

type ExternalBattingEntry struct {
	PlayerName  string
	Runs        int
	Balls       int
	Fours       int
	Sixes       int
	HowOut      string
	FielderName string
}

type ExternalBowlingEntry struct {
	PlayerName   string
	Overs        float64
	Maidens      int
	RunsConceded int
	Wickets      int
	Wides        int
	NoBalls      int
}

// MatchDetailProvider fetches one full scorecard from the upstream result
// service.
type MatchDetailProvider interface {
	FetchMatchDetail(ctx context.Context, creds ProviderCredentials, externalMatchID int64) (ExternalMatchDetail, error)
	ListMatchIDs(ctx context.Context, creds ProviderCredentials, season string) ([]int64, error)
}

// RecalcEnqueuer hands a season recalculation off to a background job channel.
type RecalcEnqueuer interface {
	EnqueueRecalc(ctx context.Context, clubID, seasonID string) error
}

// ImportService pulls scorecards from the provider into local match records
// and gates publication on the roster being fully reconciled.
type ImportService struct {
	clubRepo   club.Repository
	matchRepo  match.Repository
	provider   MatchDetailProvider
	aggregator *AggregationService
	enqueuer   RecalcEnqueuer
	logger     *slog.Logger
}

func NewImportService(
	clubRepo club.Repository,
	matchRepo match.Repository,
	provider MatchDetailProvider,
	aggregator *AggregationService,
	enqueuer RecalcEnqueuer,
	logger *slog.Logger,
) *ImportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ImportService{
		clubRepo:   clubRepo,
		matchRepo:  matchRepo,
		provider:   provider,
		aggregator: aggregator,
		enqueuer:   enqueuer,
		logger:     logger,
	}
}

// ImportMatch fetches one scorecard and upserts it unpublished. Batting and
// bowling names are kept as imported; roster reconciliation happens at
// publish and aggregation time so re-imports never fork player identities.
func (s *ImportService) ImportMatch(ctx context.Context, clubID string, externalMatchID int64) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ImportService.ImportMatch")
	defer span.End()

	clubID = strings.TrimSpace(clubID)
	if clubID == "" {
		return match.Match{}, fmt.Errorf("%w: club id is required", ErrInvalidInput)
	}
	if externalMatchID <= 0 {
		return match.Match{}, fmt.Errorf("%w: external match id is required", ErrInvalidInput)
	}

	c, found, err := s.clubRepo.GetClub(ctx, clubID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get club: %w", err)
	}
	if !found {
		return match.Match{}, fmt.Errorf("%w: club %s", ErrNotFound, clubID)
	}
	if c.ProviderSiteID == 0 {
		return match.Match{}, fmt.Errorf("%w: club %s has no provider site configured", ErrInvalidInput, clubID)
	}

	detail, err := s.provider.FetchMatchDetail(ctx, ProviderCredentials{SiteID: c.ProviderSiteID, Token: c.ProviderToken}, externalMatchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("%w: fetch match %d: %v", ErrDependencyUnavailable, externalMatchID, err)
	}

	m := mapExternalMatch(c, detail)
	saved, err := s.matchRepo.UpsertMatch(ctx, m)
	if err != nil {
		return match.Match{}, fmt.Errorf("upsert match: %w", err)
	}

	s.logger.InfoContext(ctx, "match imported",
		"club_id", clubID,
		"match_id", saved.ID,
		"external_id", externalMatchID,
		"innings", len(saved.Innings),
	)
	return saved, nil
}

// ImportSeason imports every fixture the provider lists for the season.
// Per-match failures are collected; the loop keeps going.
func (s *ImportService) ImportSeason(ctx context.Context, clubID, season string) (Summary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ImportService.ImportSeason")
	defer span.End()

	clubID = strings.TrimSpace(clubID)
	if clubID == "" {
		return Summary{}, fmt.Errorf("%w: club id is required", ErrInvalidInput)
	}

	c, found, err := s.clubRepo.GetClub(ctx, clubID)
	if err != nil {
		return Summary{}, fmt.Errorf("get club: %w", err)
	}
	if !found {
		return Summary{}, fmt.Errorf("%w: club %s", ErrNotFound, clubID)
	}

	creds := ProviderCredentials{SiteID: c.ProviderSiteID, Token: c.ProviderToken}
	ids, err := s.provider.ListMatchIDs(ctx, creds, season)
	if err != nil {
		return Summary{}, fmt.Errorf("%w: list season matches: %v", ErrDependencyUnavailable, err)
	}

	summary := Summary{ClubID: clubID, SeasonID: season, Total: len(ids)}
	for _, id := range ids {
		if _, err := s.ImportMatch(ctx, clubID, id); err != nil {
			summary.Errors = append(summary.Errors, ItemError{Message: fmt.Sprintf("import match %d: %v", id, err)})
			continue
		}
		summary.Processed++
	}
	return summary, nil
}

// PublishMatch marks a match visible and queues a stats recalculation. It
// refuses to publish while any scorecard name cannot be confidently matched
// to the roster: ambiguity is surfaced, never guessed away.
func (s *ImportService) PublishMatch(ctx context.Context, clubID, matchID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ImportService.PublishMatch")
	defer span.End()

	clubID = strings.TrimSpace(clubID)
	matchID = strings.TrimSpace(matchID)
	if clubID == "" || matchID == "" {
		return fmt.Errorf("%w: club id and match id are required", ErrInvalidInput)
	}

	m, found, err := s.matchRepo.GetMatch(ctx, matchID)
	if err != nil {
		return fmt.Errorf("get match: %w", err)
	}
	if !found || m.ClubID != clubID {
		return fmt.Errorf("%w: match %s", ErrNotFound, matchID)
	}

	resolver, err := NewNameResolver(ctx, clubID, s.aggregator.rosterRepo)
	if err != nil {
		return err
	}
	_, unmatched := resolver.ResolveAll(scorecardNames(m))
	if len(unmatched) > 0 {
		return fmt.Errorf("%w: %s", ErrUnmatchedNames, strings.Join(unmatched, ", "))
	}

	if err := s.matchRepo.SetPublished(ctx, matchID, true); err != nil {
		return fmt.Errorf("publish match: %w", err)
	}

	if s.enqueuer != nil {
		if err := s.enqueuer.EnqueueRecalc(ctx, clubID, m.SeasonID); err == nil {
			return nil
		} else {
			s.logger.WarnContext(ctx, "recalc enqueue failed, running inline", "club_id", clubID, "error", err)
		}
	}
	if _, err := s.aggregator.RecalculateSeason(ctx, clubID, m.SeasonID); err != nil {
		return fmt.Errorf("recalculate after publish: %w", err)
	}
	return nil
}

// UnpublishMatch hides a match again without touching its cards.
func (s *ImportService) UnpublishMatch(ctx context.Context, clubID, matchID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ImportService.UnpublishMatch")
	defer span.End()

	m, found, err := s.matchRepo.GetMatch(ctx, strings.TrimSpace(matchID))
	if err != nil {
		return fmt.Errorf("get match: %w", err)
	}
	if !found || m.ClubID != strings.TrimSpace(clubID) {
		return fmt.Errorf("%w: match %s", ErrNotFound, matchID)
	}
	if err := s.matchRepo.SetPublished(ctx, m.ID, false); err != nil {
		return fmt.Errorf("unpublish match: %w", err)
	}
	return nil
}

// scorecardNames collects every free-text player name a match references,
// including fielders credited in dismissal text fields.
func scorecardNames(m match.Match) []string {
	names := make([]string, 0, 32)
	for _, inn := range m.Innings {
		for _, card := range inn.Batting {
			if card.PlayerID == "" {
				names = append(names, card.PlayerName)
			}
			if card.FielderID == "" && card.FielderName != "" {
				names = append(names, card.FielderName)
			}
		}
		for _, card := range inn.Bowling {
			if card.PlayerID == "" {
				names = append(names, card.PlayerName)
			}
		}
	}
	return names
}

func mapExternalMatch(c club.Club, detail ExternalMatchDetail) match.Match {
	m := match.Match{
		ClubID:     c.ID,
		SeasonID:   c.ActiveSeasonID,
		ExternalID: detail.ExternalID,
		HomeTeam:   detail.HomeTeam,
		AwayTeam:   detail.AwayTeam,
		PlayedAt:   detail.PlayedAt,
		Published:  false,
	}
	m.ClubSide = resolveClubSide(m, c.Names())

	for seq, inn := range detail.Innings {
		innings := match.Innings{Seq: seq + 1, BattingTeam: inn.BattingTeam}
		for _, entry := range inn.Batting {
			howOut := strings.TrimSpace(entry.HowOut)
			innings.Batting = append(innings.Batting, match.BattingCard{
				PlayerName:  strings.TrimSpace(entry.PlayerName),
				Runs:        entry.Runs,
				Balls:       entry.Balls,
				Fours:       entry.Fours,
				Sixes:       entry.Sixes,
				HowOut:      howOut,
				FielderName: strings.TrimSpace(entry.FielderName),
				IsOut:       isOutDismissal(howOut),
			})
		}
		for _, entry := range inn.Bowling {
			innings.Bowling = append(innings.Bowling, match.BowlingCard{
				PlayerName:   strings.TrimSpace(entry.PlayerName),
				Overs:        entry.Overs,
				Maidens:      entry.Maidens,
				RunsConceded: entry.RunsConceded,
				Wickets:      entry.Wickets,
				Wides:        entry.Wides,
				NoBalls:      entry.NoBalls,
			})
		}
		m.Innings = append(m.Innings, innings)
	}
	return m
}

func isOutDismissal(howOut string) bool {
	text := strings.ToLower(howOut)
	switch text {
	case "", "not out", "did not bat", "retired not out", "retired hurt":
		return false
	default:
		return true
	}
}
