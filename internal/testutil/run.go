package testutil

import "github.com/google/uuid"

// DefaultRunToken is used when a scenario does not name its own token.
const DefaultRunToken = "test-run-default"

// RunTokenGenerator hands out the token that correlates a scenario run
// with its log lines and trace.
type RunTokenGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 run tokens, so runs sort
// by start time in logs.
type UUIDv7Generator struct{}

// Generate returns a new hyphenated UUIDv7.
//
// Panics if the system random source fails.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedRunGenerator returns the same token on every call. Golden traces
// embed the token, so deterministic runs need a fixed one.
type FixedRunGenerator struct {
	token string
}

// NewFixedRunGenerator creates a fixed generator. An empty token falls back
// to DefaultRunToken.
func NewFixedRunGenerator(token string) *FixedRunGenerator {
	if token == "" {
		token = DefaultRunToken
	}
	return &FixedRunGenerator{token: token}
}

// Generate returns the fixed token.
func (g *FixedRunGenerator) Generate() string {
	return g.token
}
