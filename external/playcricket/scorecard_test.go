package playcricket

import (
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeInningsItem(t *testing.T, payload string) map[string]any {
	t.Helper()
	var item map[string]any
	require.NoError(t, sonic.Unmarshal([]byte(payload), &item))
	return item
}

func TestParseInningsAlternateListKeys(t *testing.T) {
	item := decodeInningsItem(t, `{
	  "batting_team": "Herongate CC - 1st XI",
	  "batting": [
	    {"batsman_name": "Opp One", "runs": "10", "balls": "12", "how_out": "b"}
	  ],
	  "bowlers": [
	    {"bowler_name": "Ravi Patel", "overs": "8", "maidens": "2", "runs_conceded": "30", "wickets": "1"}
	  ]
	}`)

	innings := parseInnings(item)

	assert.Equal(t, "Herongate CC - 1st XI", innings.BattingTeam)
	require.Len(t, innings.Batting, 1)
	assert.Equal(t, "Opp One", innings.Batting[0].PlayerName)
	assert.Equal(t, 10, innings.Batting[0].Runs)
	assert.Equal(t, 12, innings.Batting[0].Balls)
	assert.Equal(t, "bowled", innings.Batting[0].HowOut)

	require.Len(t, innings.Bowling, 1)
	assert.Equal(t, "Ravi Patel", innings.Bowling[0].PlayerName)
	assert.InDelta(t, 8.0, innings.Bowling[0].Overs, 1e-9)
	assert.Equal(t, 30, innings.Bowling[0].RunsConceded)
	assert.Equal(t, 1, innings.Bowling[0].Wickets)
}

func TestParseInningsBatsmenAndBowlingKeys(t *testing.T) {
	item := decodeInningsItem(t, `{
	  "team_batting": "Brookweald CC - 2nd XI",
	  "batsmen": [
	    {"player_name": "Tail Ender", "runs": 4, "balls": 9}
	  ],
	  "bowling": [
	    {"name": "Spinner", "overs": 6.2, "runs": 18, "wickets": 3}
	  ]
	}`)

	innings := parseInnings(item)

	require.Len(t, innings.Batting, 1)
	assert.Equal(t, "Tail Ender", innings.Batting[0].PlayerName)
	require.Len(t, innings.Bowling, 1)
	assert.Equal(t, "Spinner", innings.Bowling[0].PlayerName)
	assert.Equal(t, 18, innings.Bowling[0].RunsConceded)
}

func TestParseInningsMaidenSpellKeepsZeroRuns(t *testing.T) {
	// A zero under the primary key must win over a later synonym.
	item := decodeInningsItem(t, `{
	  "team_batting_name": "Herongate CC - 1st XI",
	  "bat": [],
	  "bowl": [
	    {"bowler_name": "Miser", "overs": "4", "maidens": "4", "runs": "0", "runs_conceded": "7", "wickets": "0"}
	  ]
	}`)

	innings := parseInnings(item)

	require.Len(t, innings.Bowling, 1)
	assert.Equal(t, 0, innings.Bowling[0].RunsConceded)
}

func TestGetIntAnyFirstPresentKeyWins(t *testing.T) {
	assert.Equal(t, 0, getIntAny(map[string]any{"runs": "0", "runs_conceded": "30"}, "runs", "runs_conceded"))
	assert.Equal(t, 30, getIntAny(map[string]any{"runs_conceded": float64(30)}, "runs", "runs_conceded"))
	assert.Equal(t, 0, getIntAny(map[string]any{}, "runs", "runs_conceded"))
}

func TestGetFloatAnyFirstPresentKeyWins(t *testing.T) {
	assert.InDelta(t, 0.0, getFloatAny(map[string]any{"overs": "0", "overs_bowled": "9.3"}, "overs", "overs_bowled"), 1e-9)
	assert.InDelta(t, 9.3, getFloatAny(map[string]any{"overs_bowled": "9.3"}, "overs", "overs_bowled"), 1e-9)
}
