package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robharvey123/cricket-platform/internal/domain/match"
	"github.com/robharvey123/cricket-platform/internal/domain/scoring"
)

func TestAccumulatorZeroBallDismissalIsNotAnInnings(t *testing.T) {
	acc := newSeasonAccumulator("club-1", "2026", scoring.DefaultFormula())

	// Run out without facing a ball, as happens to a backing-up non-striker.
	// The card row exists but the player never batted for average purposes.
	acc.addBatting("p-nonstriker", "m-1", match.BattingCard{Runs: 0, Balls: 0, IsOut: true, HowOut: "run out"})
	acc.addBatting("p-opener", "m-1", match.BattingCard{Runs: 0, Balls: 3, IsOut: true, HowOut: "bowled"})

	rows := acc.seasonRows(time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC))
	require.Len(t, rows, 2)

	nonStriker := rows[0]
	assert.Equal(t, "p-nonstriker", nonStriker.PlayerID)
	assert.Zero(t, nonStriker.MatchesBatted)
	assert.Zero(t, nonStriker.Innings)
	assert.Zero(t, nonStriker.NotOuts)
	assert.Zero(t, nonStriker.Ducks)
	assert.Nil(t, nonStriker.BattingAverage)

	opener := rows[1]
	assert.Equal(t, "p-opener", opener.PlayerID)
	assert.Equal(t, 1, opener.MatchesBatted)
	assert.Equal(t, 1, opener.Innings)
	assert.Equal(t, 1, opener.Ducks)
	require.NotNil(t, opener.BattingAverage)
	assert.Zero(t, *opener.BattingAverage)
}
