package services

import (
	"context"
	"errors"
	"testing"

	"nerdfootball-go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixtureResolver serves canned outcomes keyed by week and canonical team.
// Anything not listed is undetermined, matching the real resolver's
// treatment of absent data.
type fixtureResolver struct {
	outcomes map[int]map[string]models.TeamOutcome
	err      error
}

func (r *fixtureResolver) ResolveTeamOutcome(_ context.Context, team string, week int) (models.TeamOutcome, error) {
	if r.err != nil {
		return models.OutcomeUndetermined, r.err
	}
	if weekOutcomes, ok := r.outcomes[week]; ok {
		if outcome, ok := weekOutcomes[models.NormalizeTeamName(team)]; ok {
			return outcome, nil
		}
	}
	return models.OutcomeUndetermined, nil
}

func historyOf(teams ...string) *models.PickHistory {
	picks := make([]models.SurvivorPick, 0, len(teams))
	for i, team := range teams {
		if team == "" {
			continue
		}
		picks = append(picks, models.SurvivorPick{Week: i + 1, Team: team})
	}
	return models.NewPickHistory(picks)
}

func TestComputeStatusAllWins(t *testing.T) {
	engine := NewSurvivorEngine()
	resolver := &fixtureResolver{outcomes: map[int]map[string]models.TeamOutcome{
		1: {"Buffalo Bills": models.OutcomeWin},
		2: {"Arizona Cardinals": models.OutcomeWin},
	}}

	status, err := engine.ComputeStatus(context.Background(), historyOf("Buffalo Bills", "Arizona Cardinals"), resolver, 2)
	require.NoError(t, err)
	assert.True(t, status.Alive)
	assert.Nil(t, status.EliminationWeek)
	assert.Equal(t, 2, status.ResolvedThrough)
}

func TestComputeStatusLossEliminates(t *testing.T) {
	engine := NewSurvivorEngine()
	resolver := &fixtureResolver{outcomes: map[int]map[string]models.TeamOutcome{
		1: {"Miami Dolphins": models.OutcomeLoss},
	}}

	status, err := engine.ComputeStatus(context.Background(), historyOf("Miami Dolphins"), resolver, 1)
	require.NoError(t, err)
	assert.False(t, status.Alive)
	require.NotNil(t, status.EliminationWeek)
	assert.Equal(t, 1, *status.EliminationWeek)
	assert.Equal(t, models.ReasonTeamLost, status.EliminationReason)
}

func TestComputeStatusReuseEliminatesAtSecondOccurrence(t *testing.T) {
	engine := NewSurvivorEngine()
	resolver := &fixtureResolver{outcomes: map[int]map[string]models.TeamOutcome{
		1: {"Buffalo Bills": models.OutcomeWin},
		2: {"Buffalo Bills": models.OutcomeWin},
	}}

	status, err := engine.ComputeStatus(context.Background(), historyOf("Buffalo Bills", "Buffalo Bills"), resolver, 2)
	require.NoError(t, err)
	assert.False(t, status.Alive)
	require.NotNil(t, status.EliminationWeek)
	assert.Equal(t, 2, *status.EliminationWeek)
	assert.Equal(t, models.ReasonTeamReused, status.EliminationReason)
}

func TestComputeStatusReuseDetectedAcrossSpellings(t *testing.T) {
	engine := NewSurvivorEngine()
	resolver := &fixtureResolver{outcomes: map[int]map[string]models.TeamOutcome{}}

	// "Bills" normalizes to "Buffalo Bills": same team, different spelling.
	status, err := engine.ComputeStatus(context.Background(), historyOf("Buffalo Bills", "Bills"), resolver, 2)
	require.NoError(t, err)
	assert.False(t, status.Alive)
	assert.Equal(t, models.ReasonTeamReused, status.EliminationReason)
}

func TestComputeStatusReuseBeatsLossInSameWeek(t *testing.T) {
	engine := NewSurvivorEngine()
	resolver := &fixtureResolver{outcomes: map[int]map[string]models.TeamOutcome{
		1: {"Buffalo Bills": models.OutcomeWin},
		2: {"Buffalo Bills": models.OutcomeLoss},
	}}

	// Week 2 pick both reuses a team and loses; reuse is detected first.
	status, err := engine.ComputeStatus(context.Background(), historyOf("Buffalo Bills", "Buffalo Bills"), resolver, 2)
	require.NoError(t, err)
	assert.Equal(t, models.ReasonTeamReused, status.EliminationReason)
	assert.Equal(t, 2, *status.EliminationWeek)
}

func TestComputeStatusMissedPickEliminates(t *testing.T) {
	engine := NewSurvivorEngine()
	resolver := &fixtureResolver{outcomes: map[int]map[string]models.TeamOutcome{}}

	// No picks at all, week 1 has started.
	status, err := engine.ComputeStatus(context.Background(), historyOf(), resolver, 1)
	require.NoError(t, err)
	assert.False(t, status.Alive)
	require.NotNil(t, status.EliminationWeek)
	assert.Equal(t, 1, *status.EliminationWeek)
	assert.Equal(t, models.ReasonMissedPick, status.EliminationReason)
}

func TestComputeStatusGapInHistoryEliminates(t *testing.T) {
	engine := NewSurvivorEngine()
	resolver := &fixtureResolver{outcomes: map[int]map[string]models.TeamOutcome{
		1: {"Buffalo Bills": models.OutcomeWin},
		3: {"Kansas City Chiefs": models.OutcomeWin},
	}}

	history := models.NewPickHistory([]models.SurvivorPick{
		{Week: 1, Team: "Buffalo Bills"},
		{Week: 3, Team: "Kansas City Chiefs"},
	})

	status, err := engine.ComputeStatus(context.Background(), history, resolver, 3)
	require.NoError(t, err)
	assert.False(t, status.Alive)
	assert.Equal(t, 2, *status.EliminationWeek)
	assert.Equal(t, models.ReasonMissedPick, status.EliminationReason)
}

func TestComputeStatusUndeterminedDoesNotEliminate(t *testing.T) {
	engine := NewSurvivorEngine()
	// Week 1 game still in progress: no outcome recorded.
	resolver := &fixtureResolver{outcomes: map[int]map[string]models.TeamOutcome{}}

	status, err := engine.ComputeStatus(context.Background(), historyOf("Dallas Cowboys"), resolver, 1)
	require.NoError(t, err)
	assert.True(t, status.Alive)
	assert.Equal(t, 0, status.ResolvedThrough)

	// The game finalizes as a Cowboys loss; the recompute eliminates.
	resolver.outcomes = map[int]map[string]models.TeamOutcome{
		1: {"Dallas Cowboys": models.OutcomeLoss},
	}
	status, err = engine.ComputeStatus(context.Background(), historyOf("Dallas Cowboys"), resolver, 1)
	require.NoError(t, err)
	assert.False(t, status.Alive)
	assert.Equal(t, 1, *status.EliminationWeek)
}

func TestComputeStatusTieSurvives(t *testing.T) {
	engine := NewSurvivorEngine()
	resolver := &fixtureResolver{outcomes: map[int]map[string]models.TeamOutcome{
		1: {"Buffalo Bills": models.OutcomeTie},
	}}

	status, err := engine.ComputeStatus(context.Background(), historyOf("Buffalo Bills"), resolver, 1)
	require.NoError(t, err)
	assert.True(t, status.Alive)
	assert.Equal(t, 1, status.ResolvedThrough)
}

func TestComputeStatusUnknownTeamIsUndeterminedButReuseStillFires(t *testing.T) {
	engine := NewSurvivorEngine()
	resolver := &fixtureResolver{outcomes: map[int]map[string]models.TeamOutcome{}}

	// A typo never resolves to a win, but picking the same typo twice is
	// still a reuse.
	status, err := engine.ComputeStatus(context.Background(), historyOf("Buffalo Billz", "Buffalo Billz"), resolver, 2)
	require.NoError(t, err)
	assert.False(t, status.Alive)
	assert.Equal(t, 2, *status.EliminationWeek)
	assert.Equal(t, models.ReasonTeamReused, status.EliminationReason)
}

func TestComputeStatusLaterCertainEliminationAfterUndeterminedWeek(t *testing.T) {
	engine := NewSurvivorEngine()
	resolver := &fixtureResolver{outcomes: map[int]map[string]models.TeamOutcome{
		2: {"Miami Dolphins": models.OutcomeLoss},
	}}

	// Week 1 undetermined, week 2 a loss: the loss is certain regardless.
	status, err := engine.ComputeStatus(context.Background(), historyOf("Buffalo Bills", "Miami Dolphins"), resolver, 2)
	require.NoError(t, err)
	assert.False(t, status.Alive)
	assert.Equal(t, 2, *status.EliminationWeek)
	assert.Equal(t, models.ReasonTeamLost, status.EliminationReason)
}

func TestComputeStatusFuturePicksDoNotLeak(t *testing.T) {
	engine := NewSurvivorEngine()
	resolver := &fixtureResolver{outcomes: map[int]map[string]models.TeamOutcome{
		1: {"Buffalo Bills": models.OutcomeWin},
		// Week 2's pick would lose, but week 2 has not started.
		2: {"Miami Dolphins": models.OutcomeLoss},
	}}

	status, err := engine.ComputeStatus(context.Background(), historyOf("Buffalo Bills", "Miami Dolphins"), resolver, 1)
	require.NoError(t, err)
	assert.True(t, status.Alive)
}

func TestComputeStatusMonotonicElimination(t *testing.T) {
	engine := NewSurvivorEngine()
	resolver := &fixtureResolver{outcomes: map[int]map[string]models.TeamOutcome{
		1: {"Buffalo Bills": models.OutcomeWin},
		2: {"Miami Dolphins": models.OutcomeLoss},
		3: {"Kansas City Chiefs": models.OutcomeWin},
	}}
	history := historyOf("Buffalo Bills", "Miami Dolphins", "Kansas City Chiefs")

	at2, err := engine.ComputeStatus(context.Background(), history, resolver, 2)
	require.NoError(t, err)
	require.False(t, at2.Alive)

	for asOf := 3; asOf <= models.MaxSeasonWeeks; asOf++ {
		later, err := engine.ComputeStatus(context.Background(), history, resolver, asOf)
		require.NoError(t, err)
		assert.Equal(t, *at2.EliminationWeek, *later.EliminationWeek, "asOfWeek=%d", asOf)
		assert.Equal(t, at2.EliminationReason, later.EliminationReason, "asOfWeek=%d", asOf)
	}
}

func TestComputeStatusIdempotent(t *testing.T) {
	engine := NewSurvivorEngine()
	resolver := &fixtureResolver{outcomes: map[int]map[string]models.TeamOutcome{
		1: {"Buffalo Bills": models.OutcomeWin},
		2: {"Miami Dolphins": models.OutcomeLoss},
	}}
	history := historyOf("Buffalo Bills", "Miami Dolphins")

	first, err := engine.ComputeStatus(context.Background(), history, resolver, 2)
	require.NoError(t, err)
	second, err := engine.ComputeStatus(context.Background(), history, resolver, 2)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestComputeStatusResolverFailurePropagates(t *testing.T) {
	engine := NewSurvivorEngine()
	resolver := &fixtureResolver{err: errors.New("results store unreachable")}

	_, err := engine.ComputeStatus(context.Background(), historyOf("Buffalo Bills"), resolver, 1)
	require.Error(t, err)
}

func TestComputeStatusBeforeSeasonStart(t *testing.T) {
	engine := NewSurvivorEngine()
	resolver := &fixtureResolver{outcomes: map[int]map[string]models.TeamOutcome{}}

	status, err := engine.ComputeStatus(context.Background(), historyOf(), resolver, 0)
	require.NoError(t, err)
	assert.True(t, status.Alive)
}
