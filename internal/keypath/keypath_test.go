package keypath

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		path string
		want Path
	}{
		{"single key", "user", Path{Key("user")}},
		{"nested keys", "user.address.city", Path{Key("user"), Key("address"), Key("city")}},
		{"index", "items.[2].name", Path{Key("items"), Index(2), Key("name")}},
		{"root index", "[0].id", Path{Index(0), Key("id")}},
		{"wildcard", "items.[].name", Path{Key("items"), Wildcard(), Key("name")}},
		{"root wildcard", "[]", Path{Wildcard()}},
		{"numeric key", "2024", Path{Key("2024")}},
		{"key with spaces", "first name", Path{Key("first name")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.path, got.String(), "rendering must round-trip")
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		message string
	}{
		{"empty segment", "user..name", "empty segment"},
		{"trailing dot", "user.", "empty segment"},
		{"negative index", "items.[-1]", "not a non-negative integer"},
		{"alpha index", "items.[x]", "not a non-negative integer"},
		{"unterminated", "items.[0", "unterminated"},
		{"glued bracket", "items[0]", "reserved bracket"},
		{"nested brackets", "[[0]]", "nested brackets"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.path)
			require.Error(t, err)

			var syn *SyntaxError
			require.True(t, errors.As(err, &syn))
			assert.Contains(t, syn.Message, tt.message)
		})
	}

	_, err := Parse("")
	assert.ErrorIs(t, err, ErrEmptyPath)
}

func TestPathHelpers(t *testing.T) {
	p := MustParse("a.[].b.[]")

	assert.Equal(t, []int{1, 3}, p.Wildcards())
	assert.True(t, p.HasWildcard())
	assert.Equal(t, "a.[]", p[:2].String())
	assert.Equal(t, "a.[].b", p.Parent().String())
	assert.Equal(t, Wildcard(), p.Last())

	sub := p.Substitute(1, 4)
	assert.Equal(t, "a.[4].b.[]", sub.String())
	assert.Equal(t, "a.[].b.[]", p.String(), "Substitute must not alias the receiver")

	assert.Nil(t, MustParse("solo").Parent())
}

func TestChild(t *testing.T) {
	assert.Equal(t, "name", Child("", Key("name")))
	assert.Equal(t, "[3]", Child("", Index(3)))
	assert.Equal(t, "user.name", Child("user", Key("name")))
	assert.Equal(t, "user.[0]", Child("user", Index(0)))
}

func TestIsBracketed(t *testing.T) {
	assert.True(t, Index(0).IsBracketed())
	assert.True(t, Wildcard().IsBracketed())
	assert.False(t, Key("x").IsBracketed())
}
