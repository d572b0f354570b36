package teams

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupCoversAllClubs(t *testing.T) {
	lookup := NewLookup()
	assert.Equal(t, 30, lookup.Size())

	// Every club resolves under all three schemes to the same id.
	for _, club := range clubs {
		fullID, ok := lookup.Resolve(SchemeFull, club.full)
		require.True(t, ok, "full name %q", club.full)
		abbrevID, ok := lookup.Resolve(SchemeAbbrev, club.abbrev)
		require.True(t, ok, "abbrev %q", club.abbrev)
		mascotID, ok := lookup.Resolve(SchemeMascot, club.mascot)
		require.True(t, ok, "mascot %q", club.mascot)

		assert.Equal(t, club.id, fullID)
		assert.Equal(t, fullID, abbrevID)
		assert.Equal(t, fullID, mascotID)
	}
}

func TestResolveSchemesAreDisjoint(t *testing.T) {
	lookup := NewLookup()

	_, ok := lookup.Resolve(SchemeFull, "NYY")
	assert.False(t, ok, "abbreviation should not resolve as a full name")

	_, ok = lookup.Resolve(SchemeAbbrev, "New York Yankees")
	assert.False(t, ok)
}

func TestIDForNameFallsThroughSchemes(t *testing.T) {
	lookup := NewLookup()

	tests := []struct {
		name string
		want int
	}{
		{"Kansas City Royals", 12},
		{"KCR", 12},
		{"Royals", 12},
		{"St. Louis Cardinals", 26},
		{"Blue Jays", 29},
	}
	for _, tt := range tests {
		id, ok := lookup.IDForName(tt.name)
		require.True(t, ok, tt.name)
		assert.Equal(t, tt.want, id)
	}

	_, ok := lookup.IDForName("Montreal Expos")
	assert.False(t, ok)
}

func TestFullName(t *testing.T) {
	lookup := NewLookup()

	name, ok := lookup.FullName(19)
	require.True(t, ok)
	assert.Equal(t, "New York Yankees", name)

	_, ok = lookup.FullName(31)
	assert.False(t, ok)
}
