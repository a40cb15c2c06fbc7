package playcricket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robharvey123/cricket-platform/internal/platform/resilience"
	"github.com/robharvey123/cricket-platform/internal/usecase"
)

const matchDetailFixture = `{
  "match_details": [
    {
      "id": "5001",
      "match_date": "13/06/2026",
      "match_time": "13:00",
      "home_club_name": "Brookweald CC",
      "home_team_name": "1st XI",
      "away_club_name": "Herongate CC",
      "away_team_name": "1st XI",
      "innings": [
        {
          "team_batting_name": "Brookweald CC - 1st XI",
          "bat": [
            {"batsman_name": "John Smith", "how_out": "no", "runs": "50", "balls": "40", "fours": "4", "sixes": "1"},
            {"batsman_name": "Alan Smith", "how_out": "ct", "fielder_name": "T Keeper", "runs": "0", "balls": "3"}
          ],
          "bowl": [
            {"bowler_name": "Opp Bowler", "overs": "9.3", "maidens": "1", "runs": "28", "wickets": "2", "wides": "3", "no_balls": "1"}
          ]
        },
        {
          "team_batting_name": "Herongate CC - 1st XI",
          "bat": [
            {"batsman_name": "Opp One", "how_out": "ro", "fielder_name": "Ravi Patel", "runs": "12", "balls": "20"}
          ],
          "bowl": []
        }
      ]
    }
  ]
}`

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		BaseURL:        server.URL,
		MaxRetries:     2,
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: false},
	})
	return client, server
}

func testCreds() usecase.ProviderCredentials {
	return usecase.ProviderCredentials{SiteID: 42, Token: "secret-token"}
}

func TestFetchMatchDetail(t *testing.T) {
	var gotQuery atomic.Value
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery.Store(r.URL.Query())
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(matchDetailFixture))
	}))

	detail, err := client.FetchMatchDetail(context.Background(), testCreds(), 5001)
	require.NoError(t, err)

	query := gotQuery.Load().(url.Values)
	assert.Equal(t, "5001", query.Get("match_id"))
	assert.Equal(t, "secret-token", query.Get("api_token"))

	assert.Equal(t, int64(5001), detail.ExternalID)
	assert.Equal(t, "Brookweald CC 1st XI", detail.HomeTeam)
	assert.Equal(t, "Herongate CC 1st XI", detail.AwayTeam)
	assert.Equal(t, time.Date(2026, 6, 13, 13, 0, 0, 0, time.UTC), detail.PlayedAt)

	require.Len(t, detail.Innings, 2)
	first := detail.Innings[0]
	assert.Equal(t, "Brookweald CC - 1st XI", first.BattingTeam)
	require.Len(t, first.Batting, 2)
	assert.Equal(t, usecase.ExternalBattingEntry{
		PlayerName: "John Smith", Runs: 50, Balls: 40, Fours: 4, Sixes: 1, HowOut: "not out",
	}, first.Batting[0])
	assert.Equal(t, "caught", first.Batting[1].HowOut)
	assert.Equal(t, "T Keeper", first.Batting[1].FielderName)

	require.Len(t, first.Bowling, 1)
	assert.InDelta(t, 9.3, first.Bowling[0].Overs, 1e-9)
	assert.Equal(t, 28, first.Bowling[0].RunsConceded)
	assert.Equal(t, 3, first.Bowling[0].Wides)

	assert.Equal(t, "run out", detail.Innings[1].Batting[0].HowOut)
}

func TestFetchMatchDetailRetriesTransientStatus(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(matchDetailFixture))
	}))

	_, err := client.FetchMatchDetail(context.Background(), testCreds(), 5001)
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestFetchMatchDetailDoesNotRetryClientError(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid token"}`))
	}))

	_, err := client.FetchMatchDetail(context.Background(), testCreds(), 5001)
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
	assert.NotContains(t, err.Error(), "secret-token")
}

func TestFetchMatchDetailCircuitOpen(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		MaxRetries: 0,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})

	_, err := client.FetchMatchDetail(context.Background(), testCreds(), 5001)
	require.Error(t, err)

	// Breaker is open now: the next call fails fast with a dependency error.
	_, err = client.FetchMatchDetail(context.Background(), testCreds(), 5002)
	assert.ErrorIs(t, err, usecase.ErrDependencyUnavailable)
}

func TestListMatchIDs(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/matches.json", r.URL.Path)
		assert.Equal(t, "42", r.URL.Query().Get("site_id"))
		assert.Equal(t, "2026", r.URL.Query().Get("season"))
		_, _ = w.Write([]byte(`{"matches":[{"id":"5001"},{"id":5002},{"id":0}]}`))
	}))

	ids, err := client.ListMatchIDs(context.Background(), testCreds(), "2026")
	require.NoError(t, err)
	assert.Equal(t, []int64{5001, 5002}, ids)
}

func TestNormalizeHowOut(t *testing.T) {
	cases := map[string]string{
		"ct":            "caught",
		"b":             "bowled",
		"RO":            "run out",
		"st":            "stumped",
		"no":            "not out",
		"dnb":           "did not bat",
		"caught behind": "caught behind",
		"":              "",
	}
	for input, want := range cases {
		assert.Equal(t, want, normalizeHowOut(input), "input=%q", input)
	}
}
