package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/robharvey123/cricket-platform/internal/domain/club"
	"github.com/robharvey123/cricket-platform/internal/domain/match"
	"github.com/robharvey123/cricket-platform/internal/domain/roster"
	"github.com/robharvey123/cricket-platform/internal/domain/stats"
	"github.com/robharvey123/cricket-platform/internal/platform/resilience"
)

const defaultRecalcWorkers = 4

// Summary reports a batch recalculation outcome. Per-item failures are
// collected rather than aborting the pass; configuration failures surface as
// a returned error instead.
type Summary struct {
	ClubID    string      `json:"club_id"`
	SeasonID  string      `json:"season_id,omitempty"`
	Processed int         `json:"processed"`
	Total     int         `json:"total"`
	Errors    []ItemError `json:"errors"`
}

type ItemError struct {
	MatchID  string `json:"match_id,omitempty"`
	PlayerID string `json:"player_id,omitempty"`
	Message  string `json:"message"`
}

// AggregationService folds a season of scorecards into per-player season
// stats and per-match performances under the club's active formula.
type AggregationService struct {
	clubRepo    club.Repository
	formulaSvc  *FormulaService
	matchRepo   match.Repository
	rosterRepo  roster.Repository
	statsRepo   stats.Repository
	fieldingSvc *FieldingService
	logger      *slog.Logger
	now         func() time.Time

	// Concurrent recalculations of one club are advisory-deduplicated; the
	// upsert semantics keep interleaved runs safe but wasteful.
	recalcFlight resilience.SingleFlight
}

func NewAggregationService(
	clubRepo club.Repository,
	formulaSvc *FormulaService,
	matchRepo match.Repository,
	rosterRepo roster.Repository,
	statsRepo stats.Repository,
	fieldingSvc *FieldingService,
	logger *slog.Logger,
) *AggregationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AggregationService{
		clubRepo:    clubRepo,
		formulaSvc:  formulaSvc,
		matchRepo:   matchRepo,
		rosterRepo:  rosterRepo,
		statsRepo:   statsRepo,
		fieldingSvc: fieldingSvc,
		logger:      logger,
		now:         time.Now,
	}
}

// RecalculateSeason runs one full aggregation pass for the club. An empty
// seasonID falls back to the club's active season, and to every match on
// record when no season can be determined.
func (s *AggregationService) RecalculateSeason(ctx context.Context, clubID, seasonID string) (Summary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AggregationService.RecalculateSeason")
	defer span.End()

	clubID = strings.TrimSpace(clubID)
	if clubID == "" {
		return Summary{}, fmt.Errorf("%w: club id is required", ErrInvalidInput)
	}

	out, err, _ := s.recalcFlight.Do("recalc:"+clubID, func() (any, error) {
		return s.recalculateSeasonOnce(ctx, clubID, strings.TrimSpace(seasonID))
	})
	if err != nil {
		return Summary{}, err
	}
	return out.(Summary), nil
}

func (s *AggregationService) recalculateSeasonOnce(ctx context.Context, clubID, seasonID string) (Summary, error) {
	c, found, err := s.clubRepo.GetClub(ctx, clubID)
	if err != nil {
		return Summary{}, fmt.Errorf("get club: %w", err)
	}
	if !found {
		return Summary{}, fmt.Errorf("%w: club %s", ErrNotFound, clubID)
	}
	if seasonID == "" {
		seasonID = c.ActiveSeasonID
	}

	formula, err := s.formulaSvc.GetActive(ctx, clubID)
	if err != nil {
		return Summary{}, err
	}

	resolver, err := NewNameResolver(ctx, clubID, s.rosterRepo)
	if err != nil {
		return Summary{}, err
	}

	matches, err := s.matchRepo.ListBySeason(ctx, clubID, seasonID)
	if err != nil {
		return Summary{}, fmt.Errorf("list matches: %w", err)
	}

	summary := Summary{ClubID: clubID, SeasonID: seasonID, Total: len(matches)}
	acc := newSeasonAccumulator(clubID, seasonID, formula)

	for _, m := range matches {
		if err := s.processMatch(ctx, c, m, resolver, acc); err != nil {
			s.logger.WarnContext(ctx, "match aggregation failed", "club_id", clubID, "match_id", m.ID, "error", err)
			summary.Errors = append(summary.Errors, ItemError{MatchID: m.ID, Message: err.Error()})
			continue
		}
		summary.Processed++
	}

	s.persist(ctx, acc, &summary)

	s.logger.InfoContext(ctx, "season recalculated",
		"club_id", clubID,
		"season_id", seasonID,
		"processed", summary.Processed,
		"total", summary.Total,
		"errors", len(summary.Errors),
	)
	return summary, nil
}

// RecalculateAllClubs fans per-club passes out to a worker pool. Each club's
// pass stays single-goroutine; only distinct clubs run in parallel.
func (s *AggregationService) RecalculateAllClubs(ctx context.Context, maxWorkers int) ([]Summary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AggregationService.RecalculateAllClubs")
	defer span.End()

	clubs, err := s.clubRepo.ListClubs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clubs: %w", err)
	}
	if len(clubs) == 0 {
		return []Summary{}, nil
	}

	if maxWorkers < 1 {
		maxWorkers = defaultRecalcWorkers
	}
	if maxWorkers > len(clubs) {
		maxWorkers = len(clubs)
	}

	pool, err := ants.NewPool(maxWorkers)
	if err != nil {
		return nil, fmt.Errorf("create recalc worker pool: %w", err)
	}
	defer pool.Release()

	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		summaries = make([]Summary, 0, len(clubs))
	)
	for _, target := range clubs {
		clubID := target.ID
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			summary, runErr := s.RecalculateSeason(ctx, clubID, "")
			if runErr != nil {
				summary = Summary{ClubID: clubID, Errors: []ItemError{{Message: runErr.Error()}}}
			}
			mu.Lock()
			summaries = append(summaries, summary)
			mu.Unlock()
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			summaries = append(summaries, Summary{ClubID: clubID, Errors: []ItemError{{Message: submitErr.Error()}}})
			mu.Unlock()
		}
	}
	wg.Wait()

	sort.Slice(summaries, func(i, j int) bool { return summaries[i].ClubID < summaries[j].ClubID })
	return summaries, nil
}

func (s *AggregationService) processMatch(ctx context.Context, c club.Club, m match.Match, resolver *NameResolver, acc *seasonAccumulator) error {
	clubSide := resolveClubSide(m, c.Names())
	if clubSide == match.SideUnknown {
		return fmt.Errorf("cannot determine club side for %q vs %q", m.HomeTeam, m.AwayTeam)
	}

	if s.fieldingSvc != nil {
		needsDerivation, err := s.fieldingNeedsDerivation(ctx, m.ID)
		if err != nil {
			return err
		}
		if needsDerivation {
			if err := s.fieldingSvc.DeriveMatchFielding(ctx, c, m, resolver); err != nil {
				return fmt.Errorf("derive fielding: %w", err)
			}
		}
	}

	sides := inferInningsSides(m)
	for idx, inn := range m.Innings {
		if sides[idx] == clubSide {
			for _, card := range inn.Batting {
				playerID, err := s.cardPlayer(ctx, card.PlayerID, card.PlayerName, resolver)
				if err != nil {
					return err
				}
				acc.addBatting(playerID, m.ID, card)
			}
		} else {
			for _, card := range inn.Bowling {
				playerID, err := s.cardPlayer(ctx, card.PlayerID, card.PlayerName, resolver)
				if err != nil {
					return err
				}
				acc.addBowling(playerID, m.ID, card)
			}
		}
	}

	// Fielding cards are match-level, not innings-level.
	fieldingCards, err := s.matchRepo.ListFieldingCards(ctx, m.ID)
	if err != nil {
		return fmt.Errorf("list fielding cards: %w", err)
	}
	for _, card := range fieldingCards {
		acc.addFielding(card.PlayerID, m.ID, card)
	}
	return nil
}

func (s *AggregationService) fieldingNeedsDerivation(ctx context.Context, matchID string) (bool, error) {
	rows, err := s.matchRepo.ListFieldingCards(ctx, matchID)
	if err != nil {
		return false, fmt.Errorf("list fielding cards: %w", err)
	}
	for _, row := range rows {
		if !row.Derived {
			return false, nil
		}
	}
	return true, nil
}

func (s *AggregationService) cardPlayer(ctx context.Context, playerID, playerName string, resolver *NameResolver) (string, error) {
	if playerID != "" {
		return playerID, nil
	}
	return resolver.ResolveOrCreate(ctx, playerName)
}

// persist writes one season row per player and one performance row per
// player-match, wholesale. Write failures are per-item, not fatal.
func (s *AggregationService) persist(ctx context.Context, acc *seasonAccumulator, summary *Summary) {
	calculatedAt := s.now().UTC()

	for _, row := range acc.seasonRows(calculatedAt) {
		if err := s.statsRepo.UpsertSeasonStats(ctx, row); err != nil {
			summary.Errors = append(summary.Errors, ItemError{PlayerID: row.PlayerID, Message: fmt.Sprintf("upsert season stats: %v", err)})
		}
	}
	for _, row := range acc.performanceRows(calculatedAt) {
		if err := s.statsRepo.UpsertMatchPerformance(ctx, row); err != nil {
			summary.Errors = append(summary.Errors, ItemError{
				MatchID:  row.MatchID,
				PlayerID: row.PlayerID,
				Message:  fmt.Sprintf("upsert match performance: %v", err),
			})
		}
	}
}

func (s *AggregationService) ListSeasonStats(ctx context.Context, clubID, seasonID string) ([]stats.PlayerSeasonStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AggregationService.ListSeasonStats")
	defer span.End()

	clubID = strings.TrimSpace(clubID)
	if clubID == "" {
		return nil, fmt.Errorf("%w: club id is required", ErrInvalidInput)
	}

	rows, err := s.statsRepo.ListSeasonStats(ctx, clubID, strings.TrimSpace(seasonID))
	if err != nil {
		return nil, fmt.Errorf("list season stats: %w", err)
	}
	return rows, nil
}

func (s *AggregationService) ListMatchPerformances(ctx context.Context, playerID, seasonID string) ([]stats.PlayerMatchPerformance, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AggregationService.ListMatchPerformances")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return nil, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	rows, err := s.statsRepo.ListMatchPerformances(ctx, playerID, strings.TrimSpace(seasonID))
	if err != nil {
		return nil, fmt.Errorf("list match performances: %w", err)
	}
	return rows, nil
}
