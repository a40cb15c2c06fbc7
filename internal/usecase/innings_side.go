package usecase

import (
	"strings"

	"github.com/robharvey123/cricket-platform/internal/domain/match"
	"github.com/robharvey123/cricket-platform/internal/domain/roster"
)

// teamSuffixTokens are noise tokens scorecards append to club names; they are
// stripped before team names are compared.
var teamSuffixTokens = map[string]struct{}{
	"cc": {}, "cricket": {}, "club": {},
	"1st": {}, "2nd": {}, "3rd": {}, "4th": {},
	"first": {}, "second": {}, "third": {}, "fourth": {},
	"xi": {}, "x1": {}, "i": {}, "ii": {}, "iii": {}, "iv": {},
	"a": {}, "b": {}, "sunday": {}, "saturday": {}, "midweek": {},
}

func normalizeTeamName(name string) string {
	normalized := roster.NormalizeName(name)
	if normalized == "" {
		return ""
	}
	tokens := strings.Fields(normalized)
	kept := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if _, noise := teamSuffixTokens[token]; noise {
			continue
		}
		kept = append(kept, token)
	}
	if len(kept) == 0 {
		// Every token was a suffix ("1st XI"); keep the raw form rather than
		// matching everything.
		return normalized
	}
	return strings.Join(kept, " ")
}

// teamNamesMatch compares two raw team names, tolerating suffix noise and
// partial spellings via substring containment in both directions.
func teamNamesMatch(a, b string) bool {
	na, nb := normalizeTeamName(a), normalizeTeamName(b)
	if na == "" || nb == "" {
		return false
	}
	if na == nb {
		return true
	}
	return strings.Contains(na, nb) || strings.Contains(nb, na)
}

// matchesAnyName reports whether the raw team name refers to one of the
// club's known spellings.
func matchesAnyName(teamName string, names []string) bool {
	for _, candidate := range names {
		if teamNamesMatch(teamName, candidate) {
			return true
		}
	}
	return false
}

// inferInningsSides assigns a batting side to every innings of a match. The
// raw batting-team text is matched against the fixture's home/away names
// first; innings that stay unresolved alternate by index, anchored on the
// first innings whose side is known (home bats first when nothing is known).
func inferInningsSides(m match.Match) []match.Side {
	sides := make([]match.Side, len(m.Innings))
	firstKnown := -1
	for idx, inn := range m.Innings {
		switch {
		case teamNamesMatch(inn.BattingTeam, m.HomeTeam) && !teamNamesMatch(inn.BattingTeam, m.AwayTeam):
			sides[idx] = match.SideHome
		case teamNamesMatch(inn.BattingTeam, m.AwayTeam) && !teamNamesMatch(inn.BattingTeam, m.HomeTeam):
			sides[idx] = match.SideAway
		default:
			sides[idx] = match.SideUnknown
		}
		if firstKnown < 0 && sides[idx] != match.SideUnknown {
			firstKnown = idx
		}
	}

	anchorSide := match.SideHome
	anchorIdx := 0
	if firstKnown >= 0 {
		anchorSide = sides[firstKnown]
		anchorIdx = firstKnown
	}
	for idx := range sides {
		if sides[idx] != match.SideUnknown {
			continue
		}
		if (idx-anchorIdx)%2 == 0 {
			sides[idx] = anchorSide
		} else {
			sides[idx] = opposite(anchorSide)
		}
	}
	return sides
}

func opposite(side match.Side) match.Side {
	if side == match.SideHome {
		return match.SideAway
	}
	return match.SideHome
}

// resolveClubSide works out which end of the fixture the club occupied, using
// the persisted side when the import recorded one and falling back to
// name matching against the club's known spellings.
func resolveClubSide(m match.Match, clubNames []string) match.Side {
	if m.ClubSide != match.SideUnknown {
		return m.ClubSide
	}
	homeIsClub := matchesAnyName(m.HomeTeam, clubNames)
	awayIsClub := matchesAnyName(m.AwayTeam, clubNames)
	switch {
	case homeIsClub && !awayIsClub:
		return match.SideHome
	case awayIsClub && !homeIsClub:
		return match.SideAway
	default:
		return match.SideUnknown
	}
}
