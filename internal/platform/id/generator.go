package id

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"strings"
)

// Generator mints public ids for rows created at runtime (formulas, imported
// matches, auto-provisioned players). Seed data uses readable slugs instead,
// so ids are opaque strings everywhere else.
type Generator interface {
	NewID() (string, error)
}

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

type RandomGenerator struct{}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

func (g *RandomGenerator) NewID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	return strings.ToLower(encoding.EncodeToString(buf)), nil
}
