package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// ErrNoActiveFormula is a configuration failure: the club has no active
	// formula and a default could not be provisioned. Fatal for the whole
	// aggregation request, unlike per-item errors.
	ErrNoActiveFormula = errors.New("no active scoring formula")

	// ErrUnmatchedNames blocks publishing until every scorecard name resolves
	// to a roster player. Ambiguous matches are never guessed.
	ErrUnmatchedNames = errors.New("unmatched scorecard names")
)
