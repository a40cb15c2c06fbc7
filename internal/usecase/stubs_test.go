package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/robharvey123/cricket-platform/internal/domain/club"
	"github.com/robharvey123/cricket-platform/internal/domain/match"
	"github.com/robharvey123/cricket-platform/internal/domain/roster"
	"github.com/robharvey123/cricket-platform/internal/domain/scoring"
	"github.com/robharvey123/cricket-platform/internal/domain/stats"
)

type stubClubRepo struct {
	clubs map[string]club.Club
}

func newStubClubRepo(clubs ...club.Club) *stubClubRepo {
	repo := &stubClubRepo{clubs: make(map[string]club.Club, len(clubs))}
	for _, c := range clubs {
		repo.clubs[c.ID] = c
	}
	return repo
}

func (r *stubClubRepo) GetClub(_ context.Context, clubID string) (club.Club, bool, error) {
	c, ok := r.clubs[clubID]
	return c, ok, nil
}

func (r *stubClubRepo) ListClubs(_ context.Context) ([]club.Club, error) {
	out := make([]club.Club, 0, len(r.clubs))
	for _, c := range r.clubs {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type stubFormulaRepo struct {
	formulas map[string]scoring.Formula
	nextID   int
}

func newStubFormulaRepo() *stubFormulaRepo {
	return &stubFormulaRepo{formulas: make(map[string]scoring.Formula)}
}

func (r *stubFormulaRepo) GetActiveFormula(_ context.Context, clubID string) (scoring.Formula, bool, error) {
	for _, f := range r.formulas {
		if f.ClubID == clubID && f.Active {
			return f, true, nil
		}
	}
	return scoring.Formula{}, false, nil
}

func (r *stubFormulaRepo) GetFormula(_ context.Context, formulaID string) (scoring.Formula, bool, error) {
	f, ok := r.formulas[formulaID]
	return f, ok, nil
}

func (r *stubFormulaRepo) ListFormulas(_ context.Context, clubID string) ([]scoring.Formula, error) {
	out := make([]scoring.Formula, 0)
	for _, f := range r.formulas {
		if f.ClubID == clubID {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}

func (r *stubFormulaRepo) CreateFormula(_ context.Context, f scoring.Formula) (scoring.Formula, error) {
	r.nextID++
	f.ID = fmt.Sprintf("formula-%d", r.nextID)
	version := 0
	for id, existing := range r.formulas {
		if existing.ClubID != f.ClubID {
			continue
		}
		if existing.Version > version {
			version = existing.Version
		}
		if f.Active && existing.Active {
			existing.Active = false
			r.formulas[id] = existing
		}
	}
	f.Version = version + 1
	r.formulas[f.ID] = f
	return f, nil
}

func (r *stubFormulaRepo) ActivateFormula(_ context.Context, clubID, formulaID string) error {
	target, ok := r.formulas[formulaID]
	if !ok || target.ClubID != clubID {
		return fmt.Errorf("formula %s not found", formulaID)
	}
	for id, f := range r.formulas {
		if f.ClubID != clubID {
			continue
		}
		f.Active = id == formulaID
		r.formulas[id] = f
	}
	return nil
}

type stubRosterRepo struct {
	players     map[string]roster.Player
	teamRosters map[string][]string
	nextID      int
	createErr   error
}

func newStubRosterRepo(players ...roster.Player) *stubRosterRepo {
	repo := &stubRosterRepo{
		players:     make(map[string]roster.Player, len(players)),
		teamRosters: make(map[string][]string),
	}
	for _, p := range players {
		repo.players[p.ID] = p
	}
	return repo
}

func (r *stubRosterRepo) ListByClub(_ context.Context, clubID string) ([]roster.Player, error) {
	out := make([]roster.Player, 0, len(r.players))
	for _, p := range r.players {
		if p.ClubID == clubID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubRosterRepo) CreatePlayer(_ context.Context, clubID, firstName, lastName string) (roster.Player, error) {
	if r.createErr != nil {
		return roster.Player{}, r.createErr
	}
	r.nextID++
	p := roster.Player{
		ID:        fmt.Sprintf("player-%d", r.nextID),
		ClubID:    clubID,
		FirstName: firstName,
		LastName:  lastName,
	}
	r.players[p.ID] = p
	return p, nil
}

func (r *stubRosterRepo) ListTeamRoster(_ context.Context, teamID string) ([]string, error) {
	return append([]string(nil), r.teamRosters[teamID]...), nil
}

func (r *stubRosterRepo) AddTeamRosterMembers(_ context.Context, teamID string, playerIDs []string) error {
	existing := make(map[string]struct{}, len(r.teamRosters[teamID]))
	for _, id := range r.teamRosters[teamID] {
		existing[id] = struct{}{}
	}
	for _, id := range playerIDs {
		if _, ok := existing[id]; !ok {
			r.teamRosters[teamID] = append(r.teamRosters[teamID], id)
		}
	}
	return nil
}

type stubMatchRepo struct {
	matches       map[string]match.Match
	fieldingCards map[string][]match.FieldingCard
	inserted      [][]match.FieldingCard
}

func newStubMatchRepo(matches ...match.Match) *stubMatchRepo {
	repo := &stubMatchRepo{
		matches:       make(map[string]match.Match, len(matches)),
		fieldingCards: make(map[string][]match.FieldingCard),
	}
	for _, m := range matches {
		repo.matches[m.ID] = m
	}
	return repo
}

func (r *stubMatchRepo) ListBySeason(_ context.Context, clubID, seasonID string) ([]match.Match, error) {
	out := make([]match.Match, 0, len(r.matches))
	for _, m := range r.matches {
		if m.ClubID != clubID {
			continue
		}
		if seasonID != "" && m.SeasonID != seasonID {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubMatchRepo) GetMatch(_ context.Context, matchID string) (match.Match, bool, error) {
	m, ok := r.matches[matchID]
	return m, ok, nil
}

func (r *stubMatchRepo) UpsertMatch(_ context.Context, m match.Match) (match.Match, error) {
	if m.ID == "" {
		m.ID = fmt.Sprintf("match-ext-%d", m.ExternalID)
	}
	r.matches[m.ID] = m
	return m, nil
}

func (r *stubMatchRepo) SetPublished(_ context.Context, matchID string, published bool) error {
	m, ok := r.matches[matchID]
	if !ok {
		return fmt.Errorf("match %s not found", matchID)
	}
	m.Published = published
	r.matches[matchID] = m
	return nil
}

func (r *stubMatchRepo) ListFieldingCards(_ context.Context, matchID string) ([]match.FieldingCard, error) {
	return append([]match.FieldingCard(nil), r.fieldingCards[matchID]...), nil
}

func (r *stubMatchRepo) InsertFieldingCards(_ context.Context, rows []match.FieldingCard) error {
	r.inserted = append(r.inserted, append([]match.FieldingCard(nil), rows...))
	for _, row := range rows {
		replaced := false
		cards := r.fieldingCards[row.MatchID]
		for i, existing := range cards {
			if existing.PlayerID == row.PlayerID {
				cards[i] = row
				replaced = true
				break
			}
		}
		if !replaced {
			cards = append(cards, row)
		}
		r.fieldingCards[row.MatchID] = cards
	}
	return nil
}

type stubStatsRepo struct {
	seasonRows map[string]stats.PlayerSeasonStats
	perfRows   map[string]stats.PlayerMatchPerformance
	upsertErr  error
}

func newStubStatsRepo() *stubStatsRepo {
	return &stubStatsRepo{
		seasonRows: make(map[string]stats.PlayerSeasonStats),
		perfRows:   make(map[string]stats.PlayerMatchPerformance),
	}
}

func (r *stubStatsRepo) UpsertSeasonStats(_ context.Context, row stats.PlayerSeasonStats) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}
	r.seasonRows[row.PlayerID+"|"+row.SeasonID] = row
	return nil
}

func (r *stubStatsRepo) UpsertMatchPerformance(_ context.Context, row stats.PlayerMatchPerformance) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}
	r.perfRows[row.PlayerID+"|"+row.MatchID] = row
	return nil
}

func (r *stubStatsRepo) ListSeasonStats(_ context.Context, clubID, seasonID string) ([]stats.PlayerSeasonStats, error) {
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
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })
	return out, nil
}

func (r *stubStatsRepo) ListMatchPerformances(_ context.Context, playerID, seasonID string) ([]stats.PlayerMatchPerformance, error) {
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
	sort.Slice(out, func(i, j int) bool { return out[i].MatchID < out[j].MatchID })
	return out, nil
}

type stubProvider struct {
	details map[int64]ExternalMatchDetail
	ids     []int64
	calls   int
	err     error
}

func (p *stubProvider) FetchMatchDetail(_ context.Context, _ ProviderCredentials, externalMatchID int64) (ExternalMatchDetail, error) {
	p.calls++
	if p.err != nil {
		return ExternalMatchDetail{}, p.err
	}
	detail, ok := p.details[externalMatchID]
	if !ok {
		return ExternalMatchDetail{}, fmt.Errorf("no detail for match %d", externalMatchID)
	}
	return detail, nil
}

func (p *stubProvider) ListMatchIDs(_ context.Context, _ ProviderCredentials, _ string) ([]int64, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.ids, nil
}

type stubEnqueuer struct {
	enqueued []string
	err      error
}

func (e *stubEnqueuer) EnqueueRecalc(_ context.Context, clubID, seasonID string) error {
	if e.err != nil {
		return e.err
	}
	e.enqueued = append(e.enqueued, strings.TrimSpace(clubID)+"|"+strings.TrimSpace(seasonID))
	return nil
}
