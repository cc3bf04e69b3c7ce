package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPickHistoryNormalizesAndSorts(t *testing.T) {
	history := NewPickHistory([]SurvivorPick{
		{Week: 3, Team: "KC Chiefs"},
		{Week: 1, Team: "Bills"},
		{Week: 2, Team: "Miami Dolphins"},
	})

	require.Equal(t, 3, history.Len())
	picks := history.Picks()
	assert.Equal(t, "Buffalo Bills", picks[0].Team)
	assert.Equal(t, "Miami Dolphins", picks[1].Team)
	assert.Equal(t, "Kansas City Chiefs", picks[2].Team)
	assert.Equal(t, []int{1, 2, 3}, []int{picks[0].Week, picks[1].Week, picks[2].Week})
}

func TestNewPickHistoryLaterSubmissionWins(t *testing.T) {
	earlier := time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC)
	later := earlier.Add(2 * time.Hour)

	history := NewPickHistory([]SurvivorPick{
		{Week: 1, Team: "Buffalo Bills", SubmittedAt: earlier},
		{Week: 1, Team: "Miami Dolphins", SubmittedAt: later},
	})

	require.Equal(t, 1, history.Len())
	pick, ok := history.PickForWeek(1)
	require.True(t, ok)
	assert.Equal(t, "Miami Dolphins", pick.Team)
}

func TestParsePickSummary(t *testing.T) {
	history := ParsePickSummary("Buffalo Bills,Arizona Cardinals,KC Chiefs")

	require.Equal(t, 3, history.Len())
	pick, ok := history.PickForWeek(3)
	require.True(t, ok)
	assert.Equal(t, "Kansas City Chiefs", pick.Team)

	assert.Equal(t, 0, ParsePickSummary("").Len())
	assert.Equal(t, 0, ParsePickSummary("   ").Len())
}

func TestParsePickSummaryWithGap(t *testing.T) {
	// An empty slot keeps the positional encoding: week 2 has no pick.
	history := ParsePickSummary("Buffalo Bills,,Kansas City Chiefs")

	require.Equal(t, 2, history.Len())
	_, ok := history.PickForWeek(2)
	assert.False(t, ok)
	pick, ok := history.PickForWeek(3)
	require.True(t, ok)
	assert.Equal(t, "Kansas City Chiefs", pick.Team)
}

func TestSummaryRoundTrip(t *testing.T) {
	history := NewPickHistory([]SurvivorPick{
		{Week: 1, Team: "Buffalo Bills"},
		{Week: 3, Team: "Kansas City Chiefs"},
	})

	summary := history.Summary()
	assert.Equal(t, "Buffalo Bills,,Kansas City Chiefs", summary)

	parsed := ParsePickSummary(summary)
	require.Equal(t, 2, parsed.Len())
	_, ok := parsed.PickForWeek(2)
	assert.False(t, ok)
}

func TestPicksThrough(t *testing.T) {
	history := NewPickHistory([]SurvivorPick{
		{Week: 1, Team: "Buffalo Bills"},
		{Week: 2, Team: "Miami Dolphins"},
		{Week: 5, Team: "Kansas City Chiefs"},
	})

	truncated := history.PicksThrough(2)
	assert.Equal(t, 2, truncated.Len())
	_, ok := truncated.PickForWeek(5)
	assert.False(t, ok)

	// Original is untouched
	assert.Equal(t, 3, history.Len())
}

func TestHasDuplicateTeam(t *testing.T) {
	clean := NewPickHistory([]SurvivorPick{
		{Week: 1, Team: "Buffalo Bills"},
		{Week: 2, Team: "Miami Dolphins"},
	})
	assert.False(t, clean.HasDuplicateTeam())

	// Different spellings of the same team still count as a duplicate.
	dup := NewPickHistory([]SurvivorPick{
		{Week: 1, Team: "Buffalo Bills"},
		{Week: 2, Team: "Bills"},
	})
	assert.True(t, dup.HasDuplicateTeam())
}

func TestHasTeam(t *testing.T) {
	history := NewPickHistory([]SurvivorPick{
		{Week: 1, Team: "Buffalo Bills"},
	})

	assert.True(t, history.HasTeam("Bills"))
	assert.True(t, history.HasTeam("Buffalo Bills"))
	assert.False(t, history.HasTeam("Miami Dolphins"))
}
