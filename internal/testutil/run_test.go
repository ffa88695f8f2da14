package testutil

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedRunGenerator_ReturnsSameToken(t *testing.T) {
	gen := NewFixedRunGenerator("run-123")

	assert.Equal(t, "run-123", gen.Generate())
	assert.Equal(t, "run-123", gen.Generate())
}

func TestFixedRunGenerator_EmptyTokenDefault(t *testing.T) {
	gen := NewFixedRunGenerator("")
	assert.Equal(t, DefaultRunToken, gen.Generate())
}

func TestUUIDv7Generator(t *testing.T) {
	var gen RunTokenGenerator = UUIDv7Generator{}

	first := gen.Generate()
	second := gen.Generate()
	assert.NotEqual(t, first, second)
	assert.Len(t, first, 36)

	id, err := uuid.Parse(first)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())
}

