package playcricket

import (
	"strconv"
	"strings"
	"time"

	"github.com/robharvey123/cricket-platform/internal/usecase"
)

type matchListEnvelope struct {
	Matches []map[string]any `json:"matches"`
}

type matchDetailEnvelope struct {
	MatchDetails []map[string]any `json:"match_details"`
}

// parseMatchDetail flattens one match_details payload. Play-Cricket serves
// most numbers as strings and key names drift between feed versions, so
// every field is probed through the synonym helpers.
func parseMatchDetail(item map[string]any) usecase.ExternalMatchDetail {
	detail := usecase.ExternalMatchDetail{
		HomeTeam: joinClubTeam(getStringAny(item, "home_club_name", "home_club"), getStringAny(item, "home_team_name", "home_team")),
		AwayTeam: joinClubTeam(getStringAny(item, "away_club_name", "away_club"), getStringAny(item, "away_team_name", "away_team")),
		PlayedAt: parseMatchDateTime(getStringAny(item, "match_date", "date"), getStringAny(item, "match_time", "time")),
	}

	for _, raw := range asSlice(item["innings"]) {
		inningsItem, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		detail.Innings = append(detail.Innings, parseInnings(inningsItem))
	}
	return detail
}

func parseInnings(item map[string]any) usecase.ExternalInnings {
	innings := usecase.ExternalInnings{
		BattingTeam: getStringAny(item, "team_batting_name", "batting_team", "team_batting"),
	}

	for _, raw := range getSliceAny(item, "bat", "batting", "batsmen") {
		row, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		name := getStringAny(row, "batsman_name", "batter_name", "player_name", "name")
		if name == "" {
			continue
		}
		innings.Batting = append(innings.Batting, usecase.ExternalBattingEntry{
			PlayerName:  name,
			Runs:        getIntAny(row, "runs", "runs_scored"),
			Balls:       getIntAny(row, "balls", "balls_faced"),
			Fours:       getIntAny(row, "fours", "4s"),
			Sixes:       getIntAny(row, "sixes", "6s"),
			HowOut:      normalizeHowOut(getStringAny(row, "how_out", "howout", "dismissal")),
			FielderName: getStringAny(row, "fielder_name", "fielder"),
		})
	}

	for _, raw := range getSliceAny(item, "bowl", "bowling", "bowlers") {
		row, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		name := getStringAny(row, "bowler_name", "player_name", "name")
		if name == "" {
			continue
		}
		innings.Bowling = append(innings.Bowling, usecase.ExternalBowlingEntry{
			PlayerName:   name,
			Overs:        getFloatAny(row, "overs", "overs_bowled"),
			Maidens:      getIntAny(row, "maidens", "maiden_overs"),
			RunsConceded: getIntAny(row, "runs", "runs_conceded"),
			Wickets:      getIntAny(row, "wickets", "wickets_taken"),
			Wides:        getIntAny(row, "wides", "wide_balls"),
			NoBalls:      getIntAny(row, "no_balls", "noballs"),
		})
	}
	return innings
}

// howOutByCode expands Play-Cricket dismissal codes into the text the rest of
// the pipeline classifies on. Unknown values pass through as-is.
var howOutByCode = map[string]string{
	"b":   "bowled",
	"ct":  "caught",
	"c":   "caught",
	"lbw": "lbw",
	"ro":  "run out",
	"st":  "stumped",
	"hw":  "hit wicket",
	"no":  "not out",
	"dnb": "did not bat",
	"rh":  "retired hurt",
	"rno": "retired not out",
	"ret": "retired",
}

func normalizeHowOut(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if expanded, ok := howOutByCode[strings.ToLower(trimmed)]; ok {
		return expanded
	}
	return trimmed
}

func joinClubTeam(clubName, teamName string) string {
	clubName = strings.TrimSpace(clubName)
	teamName = strings.TrimSpace(teamName)
	switch {
	case clubName == "":
		return teamName
	case teamName == "" || strings.EqualFold(clubName, teamName):
		return clubName
	case strings.Contains(strings.ToLower(teamName), strings.ToLower(clubName)):
		return teamName
	default:
		return clubName + " " + teamName
	}
}

// parseMatchDateTime combines the feed's dd/mm/yyyy date and hh:mm time.
func parseMatchDateTime(date, clock string) time.Time {
	date = strings.TrimSpace(date)
	if date == "" {
		return time.Time{}
	}

	layouts := []string{"02/01/2006", "2006-01-02"}
	var parsed time.Time
	var err error
	for _, layout := range layouts {
		parsed, err = time.Parse(layout, date)
		if err == nil {
			break
		}
	}
	if err != nil {
		return time.Time{}
	}

	clock = strings.TrimSpace(clock)
	if clock != "" {
		if t, clockErr := time.Parse("15:04", clock); clockErr == nil {
			parsed = parsed.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute)
		}
	}
	return parsed.UTC()
}

func asSlice(raw any) []any {
	switch typed := raw.(type) {
	case []any:
		return typed
	case map[string]any:
		if nested, ok := typed["data"]; ok {
			return asSlice(nested)
		}
		return nil
	default:
		return nil
	}
}

// getSliceAny returns the list under the first key present in src. Feed
// versions disagree on the entry-list names, so callers pass every synonym
// in priority order.
func getSliceAny(src map[string]any, keys ...string) []any {
	for _, key := range keys {
		raw, ok := src[key]
		if !ok {
			continue
		}
		return asSlice(raw)
	}
	return nil
}

func getStringAny(src map[string]any, keys ...string) string {
	for _, key := range keys {
		if value := getString(src, key); value != "" {
			return value
		}
	}
	return ""
}

func getString(src map[string]any, key string) string {
	if src == nil {
		return ""
	}
	raw, ok := src[key]
	if !ok || raw == nil {
		return ""
	}
	value, ok := raw.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}

// getIntAny reads the first key present in src, so a legitimate zero does
// not fall through to a later synonym.
func getIntAny(src map[string]any, keys ...string) int {
	for _, key := range keys {
		if _, ok := src[key]; ok {
			return int(getInt64(src, key))
		}
	}
	return 0
}

func getInt64(src map[string]any, key string) int64 {
	if src == nil {
		return 0
	}
	switch typed := src[key].(type) {
	case float64:
		return int64(typed)
	case float32:
		return int64(typed)
	case int:
		return int64(typed)
	case int64:
		return typed
	case string:
		v, err := strconv.ParseInt(strings.TrimSpace(typed), 10, 64)
		if err != nil {
			return 0
		}
		return v
	default:
		return 0
	}
}

func getFloatAny(src map[string]any, keys ...string) float64 {
	for _, key := range keys {
		if raw, ok := src[key]; ok {
			return asFloat64(raw)
		}
	}
	return 0
}

func asFloat64(value any) float64 {
	switch typed := value.(type) {
	case float64:
		return typed
	case float32:
		return float64(typed)
	case int:
		return float64(typed)
	case int64:
		return float64(typed)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}
