package roster

import (
	"strings"
	"unicode"
)

// Player is the club's stable internal identity for a person appearing on
// scorecards. Reconciliation either finds one or creates one; creation is the
// only mutation the reconciliation path performs.
type Player struct {
	ID         string
	ClubID     string
	FirstName  string
	LastName   string
	ExternalID int64
}

func (p Player) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// CleanName strips quoted nicknames and parenthetical annotations from a
// scorecard name, e.g. `Rob "Bob" Harvey (wk)` -> `Rob Harvey`.
func CleanName(name string) string {
	var b strings.Builder
	depth := 0
	inQuote := false
	for _, r := range name {
		switch {
		case r == '(':
			depth++
		case r == ')':
			if depth > 0 {
				depth--
			}
		case r == '"' || r == '\'':
			inQuote = !inQuote
		case depth == 0 && !inQuote:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// NormalizeName lowercases, strips punctuation and collapses whitespace so
// lookups tolerate the formatting drift of imported scorecards.
func NormalizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// SplitName breaks a cleaned free-text name into first/last parts using the
// first token as the first name and the remainder as the last name. A single
// token is used for both.
func SplitName(name string) (first, last string) {
	tokens := strings.Fields(strings.TrimSpace(name))
	switch len(tokens) {
	case 0:
		return "", ""
	case 1:
		return tokens[0], tokens[0]
	default:
		return tokens[0], strings.Join(tokens[1:], " ")
	}
}
