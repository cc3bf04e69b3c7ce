package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTeamName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// Canonical names pass through
		{input: "Buffalo Bills", expected: "Buffalo Bills"},
		{input: "San Francisco 49ers", expected: "San Francisco 49ers"},

		// City-abbreviation forms
		{input: "LA Rams", expected: "Los Angeles Rams"},
		{input: "NE Patriots", expected: "New England Patriots"},
		{input: "KC Chiefs", expected: "Kansas City Chiefs"},
		{input: "TB Buccaneers", expected: "Tampa Bay Buccaneers"},
		{input: "NY Giants", expected: "New York Giants"},
		{input: "NY Jets", expected: "New York Jets"},

		// Shortened franchise names
		{input: "Bills", expected: "Buffalo Bills"},
		{input: "Niners", expected: "San Francisco 49ers"},
		{input: "Bucs", expected: "Tampa Bay Buccaneers"},
		{input: "Washington", expected: "Washington Commanders"},

		// Case and whitespace are forgiven
		{input: "  la   rams ", expected: "Los Angeles Rams"},
		{input: "BUFFALO BILLS", expected: "Buffalo Bills"},

		// Unmapped names are returned unchanged
		{input: "Hamilton Tiger-Cats", expected: "Hamilton Tiger-Cats"},
		{input: "", expected: ""},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, NormalizeTeamName(tc.input), "input %q", tc.input)
	}
}

func TestNormalizeTeamNameIdempotent(t *testing.T) {
	inputs := []string{"LA Rams", "Bills", "Dallas Cowboys", "not a team", "KC Chiefs"}
	for _, input := range inputs {
		once := NormalizeTeamName(input)
		assert.Equal(t, once, NormalizeTeamName(once), "input %q", input)
	}
}

func TestIsCanonicalTeam(t *testing.T) {
	assert.True(t, IsCanonicalTeam("Buffalo Bills"))
	assert.True(t, IsCanonicalTeam("washington commanders"))
	assert.False(t, IsCanonicalTeam("Bills"))
	assert.False(t, IsCanonicalTeam("LA Rams"))
	assert.False(t, IsCanonicalTeam(""))
}

func TestEveryCanonicalTeamNormalizesToItself(t *testing.T) {
	for _, name := range CanonicalTeamNames {
		assert.Equal(t, name, NormalizeTeamName(name))
		assert.True(t, IsCanonicalTeam(name))
	}
}
