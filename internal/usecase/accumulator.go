package usecase

import (
	"sort"
	"strings"
	"time"

	"github.com/robharvey123/cricket-platform/internal/domain/match"
	"github.com/robharvey123/cricket-platform/internal/domain/scoring"
	"github.com/robharvey123/cricket-platform/internal/domain/stats"
)

// seasonAccumulator is the explicit per-pass aggregation state: one entry per
// touched player plus one per player-match. It is owned by a single goroutine
// for the duration of a pass and returned, never kept in package state.
type seasonAccumulator struct {
	clubID   string
	seasonID string
	formula  scoring.Formula

	players map[string]*playerTotals
	perfs   map[perfKey]*matchPerf
	order   []perfKey
}

type perfKey struct {
	playerID string
	matchID  string
}

// matchPerf collects one player's lines within one match. Presence flags keep
// "did not bat" distinct from a zero-valued line.
type matchPerf struct {
	batting  scoring.BattingLine
	batted   bool
	bowling  scoring.BowlingLine
	bowled   bool
	fielding scoring.FieldingLine
	fielded  bool
}

type playerTotals struct {
	matchesBatted map[string]struct{}
	matchesBowled map[string]struct{}

	innings  int
	notOuts  int
	runs     int
	balls    int
	fours    int
	sixes    int
	ducks    int
	fifties  int
	hundreds int

	ballsBowled  int
	maidens      int
	runsConceded int
	wickets      int

	catches   int
	stumpings int
	runOuts   int
	drops     int
	misfields int
}

func newSeasonAccumulator(clubID, seasonID string, formula scoring.Formula) *seasonAccumulator {
	return &seasonAccumulator{
		clubID:   clubID,
		seasonID: seasonID,
		formula:  formula,
		players:  make(map[string]*playerTotals),
		perfs:    make(map[perfKey]*matchPerf),
	}
}

func (a *seasonAccumulator) player(playerID string) *playerTotals {
	totals := a.players[playerID]
	if totals == nil {
		totals = &playerTotals{
			matchesBatted: make(map[string]struct{}),
			matchesBowled: make(map[string]struct{}),
		}
		a.players[playerID] = totals
	}
	return totals
}

func (a *seasonAccumulator) perf(playerID, matchID string) *matchPerf {
	key := perfKey{playerID: playerID, matchID: matchID}
	perf := a.perfs[key]
	if perf == nil {
		perf = &matchPerf{}
		a.perfs[key] = perf
		a.order = append(a.order, key)
	}
	return perf
}

func (a *seasonAccumulator) addBatting(playerID, matchID string, card match.BattingCard) {
	totals := a.player(playerID)
	perf := a.perf(playerID, matchID)

	perf.batted = true
	perf.batting.Runs += card.Runs
	perf.batting.Balls += card.Balls
	perf.batting.Fours += card.Fours
	perf.batting.Sixes += card.Sixes
	if card.IsOut {
		perf.batting.IsOut = true
		perf.batting.Dismissal = card.HowOut
	} else if perf.batting.Dismissal == "" {
		perf.batting.Dismissal = card.HowOut
	}

	// Only rows where the player actually faced up count toward the innings
	// and matches-batted denominators. That excludes zero-stat placeholder
	// rows and 0(0) dismissals such as a non-striker run out.
	if card.Runs > 0 || card.Balls > 0 {
		totals.matchesBatted[matchID] = struct{}{}
		totals.innings++
		if !card.IsOut {
			totals.notOuts++
		}
	}
	totals.runs += card.Runs
	totals.balls += card.Balls
	totals.fours += card.Fours
	totals.sixes += card.Sixes
	if isDuckDismissal(card) {
		totals.ducks++
	}
	switch {
	case card.Runs >= 100:
		totals.hundreds++
	case card.Runs >= 50:
		totals.fifties++
	}
}

func isDuckDismissal(card match.BattingCard) bool {
	if card.Runs != 0 || card.Balls <= 0 || !card.IsOut {
		return false
	}
	howOut := strings.ToLower(strings.TrimSpace(card.HowOut))
	return howOut != "not out" && howOut != "did not bat"
}

func (a *seasonAccumulator) addBowling(playerID, matchID string, card match.BowlingCard) {
	totals := a.player(playerID)
	perf := a.perf(playerID, matchID)

	balls := scoring.OversToBalls(card.Overs)

	perf.bowled = true
	perf.bowling.Overs = addOvers(perf.bowling.Overs, balls)
	perf.bowling.Maidens += card.Maidens
	perf.bowling.RunsConceded += card.RunsConceded
	perf.bowling.Wickets += card.Wickets

	if balls > 0 || card.Wickets > 0 {
		totals.matchesBowled[matchID] = struct{}{}
	}
	totals.ballsBowled += balls
	totals.maidens += card.Maidens
	totals.runsConceded += card.RunsConceded
	totals.wickets += card.Wickets
}

func (a *seasonAccumulator) addFielding(playerID, matchID string, card match.FieldingCard) {
	if playerID == "" {
		return
	}
	totals := a.player(playerID)
	perf := a.perf(playerID, matchID)

	perf.fielded = true
	perf.fielding.Catches += card.Catches
	perf.fielding.Stumpings += card.Stumpings
	perf.fielding.RunOuts += card.RunOuts
	perf.fielding.Drops += card.Drops
	perf.fielding.Misfields += card.Misfields

	totals.catches += card.Catches
	totals.stumpings += card.Stumpings
	totals.runOuts += card.RunOuts
	totals.drops += card.Drops
	totals.misfields += card.Misfields
}

// addOvers recombines cricket-notation overs after adding a ball count.
func addOvers(overs float64, balls int) float64 {
	total := scoring.OversToBalls(overs) + balls
	return float64(total/6) + float64(total%6)/10
}

// performanceRows computes one breakdown per player-match from the
// accumulated lines, in first-touched order.
func (a *seasonAccumulator) performanceRows(calculatedAt time.Time) []stats.PlayerMatchPerformance {
	out := make([]stats.PlayerMatchPerformance, 0, len(a.order))
	for _, key := range a.order {
		perf := a.perfs[key]
		breakdown := scoring.CalcTotalPoints(a.formula, perf.batting, perf.bowling, perf.fielding)

		out = append(out, stats.PlayerMatchPerformance{
			PlayerID:     key.playerID,
			MatchID:      key.matchID,
			ClubID:       a.clubID,
			SeasonID:     a.seasonID,
			Runs:         perf.batting.Runs,
			BallsFaced:   perf.batting.Balls,
			Fours:        perf.batting.Fours,
			Sixes:        perf.batting.Sixes,
			IsOut:        perf.batting.IsOut,
			OversBowled:  perf.bowling.Overs,
			Maidens:      perf.bowling.Maidens,
			RunsConceded: perf.bowling.RunsConceded,
			Wickets:      perf.bowling.Wickets,
			Catches:      perf.fielding.Catches,
			Stumpings:    perf.fielding.Stumpings,
			RunOuts:      perf.fielding.RunOuts,
			Breakdown:    breakdown,
			CalculatedAt: calculatedAt,
		})
	}
	return out
}

// seasonRows produces the wholesale replacement rows, rates recomputed from
// scratch with nil for undefined denominators.
func (a *seasonAccumulator) seasonRows(calculatedAt time.Time) []stats.PlayerSeasonStats {
	playerIDs := make([]string, 0, len(a.players))
	for playerID := range a.players {
		playerIDs = append(playerIDs, playerID)
	}
	sort.Strings(playerIDs)

	pointsByPlayer := make(map[string]*scoring.PointsBreakdown, len(a.players))
	for _, key := range a.order {
		perf := a.perfs[key]
		breakdown := scoring.CalcTotalPoints(a.formula, perf.batting, perf.bowling, perf.fielding)
		sum := pointsByPlayer[key.playerID]
		if sum == nil {
			sum = &scoring.PointsBreakdown{}
			pointsByPlayer[key.playerID] = sum
		}
		sum.Batting.Points += breakdown.Batting.Points
		sum.Bowling.Points += breakdown.Bowling.Points
		sum.Fielding.Points += breakdown.Fielding.Points
		sum.Total += breakdown.Total
	}

	out := make([]stats.PlayerSeasonStats, 0, len(playerIDs))
	for _, playerID := range playerIDs {
		totals := a.players[playerID]
		points := pointsByPlayer[playerID]
		if points == nil {
			points = &scoring.PointsBreakdown{}
		}

		row := stats.PlayerSeasonStats{
			PlayerID:       playerID,
			ClubID:         a.clubID,
			SeasonID:       a.seasonID,
			MatchesBatted:  len(totals.matchesBatted),
			MatchesBowled:  len(totals.matchesBowled),
			Innings:        totals.innings,
			NotOuts:        totals.notOuts,
			Runs:           totals.runs,
			BallsFaced:     totals.balls,
			Fours:          totals.fours,
			Sixes:          totals.sixes,
			Ducks:          totals.ducks,
			Fifties:        totals.fifties,
			Hundreds:       totals.hundreds,
			OversBowled:    float64(totals.ballsBowled/6) + float64(totals.ballsBowled%6)/10,
			BallsBowled:    totals.ballsBowled,
			Maidens:        totals.maidens,
			RunsConceded:   totals.runsConceded,
			Wickets:        totals.wickets,
			Catches:        totals.catches,
			Stumpings:      totals.stumpings,
			RunOuts:        totals.runOuts,
			Drops:          totals.drops,
			Misfields:      totals.misfields,
			BattingPoints:  points.Batting.Points,
			BowlingPoints:  points.Bowling.Points,
			FieldingPoints: points.Fielding.Points,
			TotalPoints:    points.Total,
			CalculatedAt:   calculatedAt,
		}

		if outs := totals.innings - totals.notOuts; outs > 0 {
			row.BattingAverage = ratio(float64(totals.runs), float64(outs))
		}
		if totals.balls > 0 {
			row.StrikeRate = ratio(float64(totals.runs)*100, float64(totals.balls))
		}
		if totals.wickets > 0 {
			row.BowlingAverage = ratio(float64(totals.runsConceded), float64(totals.wickets))
			row.BowlingStrikeRate = ratio(float64(totals.ballsBowled), float64(totals.wickets))
		}
		if totals.ballsBowled > 0 {
			row.Economy = ratio(float64(totals.runsConceded)*6, float64(totals.ballsBowled))
		}

		out = append(out, row)
	}
	return out
}

func ratio(numerator, denominator float64) *float64 {
	value := numerator / denominator
	return &value
}
