package services

import (
	"context"
	"errors"
	"testing"

	"nerdfootball-go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixtureGamesProvider struct {
	games map[int][]models.Game
	calls int
	err   error
}

func (p *fixtureGamesProvider) GetGamesByWeek(_ context.Context, _, week int) ([]models.Game, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return p.games[week], nil
}

func finalGame(week int, home, away string, homeScore, awayScore int) models.Game {
	g := models.Game{
		Season:    2026,
		Week:      week,
		Home:      home,
		Away:      away,
		HomeScore: homeScore,
		AwayScore: awayScore,
		State:     models.GameStateFinal,
	}
	g.SettleWinner()
	return g
}

func TestResolveTeamOutcomeFinalGame(t *testing.T) {
	provider := &fixtureGamesProvider{games: map[int][]models.Game{
		1: {finalGame(1, "Buffalo Bills", "Miami Dolphins", 27, 10)},
	}}
	resolver := NewGameResultResolver(provider, 2026)

	outcome, err := resolver.ResolveTeamOutcome(context.Background(), "Buffalo Bills", 1)
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeWin, outcome)

	outcome, err = resolver.ResolveTeamOutcome(context.Background(), "Miami Dolphins", 1)
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeLoss, outcome)
}

func TestResolveTeamOutcomeNormalizesInput(t *testing.T) {
	provider := &fixtureGamesProvider{games: map[int][]models.Game{
		1: {finalGame(1, "Buffalo Bills", "Miami Dolphins", 27, 10)},
	}}
	resolver := NewGameResultResolver(provider, 2026)

	outcome, err := resolver.ResolveTeamOutcome(context.Background(), "  bills ", 1)
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeWin, outcome)
}

func TestResolveTeamOutcomeTiedFinal(t *testing.T) {
	provider := &fixtureGamesProvider{games: map[int][]models.Game{
		1: {finalGame(1, "Buffalo Bills", "Miami Dolphins", 20, 20)},
	}}
	resolver := NewGameResultResolver(provider, 2026)

	outcome, err := resolver.ResolveTeamOutcome(context.Background(), "Buffalo Bills", 1)
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeTie, outcome)
}

func TestResolveTeamOutcomeNoGameIsUndetermined(t *testing.T) {
	provider := &fixtureGamesProvider{games: map[int][]models.Game{}}
	resolver := NewGameResultResolver(provider, 2026)

	outcome, err := resolver.ResolveTeamOutcome(context.Background(), "Buffalo Bills", 1)
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeUndetermined, outcome)
}

func TestResolveTeamOutcomeUnfinishedGameIsUndetermined(t *testing.T) {
	provider := &fixtureGamesProvider{games: map[int][]models.Game{
		1: {{Season: 2026, Week: 1, Home: "Buffalo Bills", Away: "Miami Dolphins", State: models.GameStateInProgress}},
	}}
	resolver := NewGameResultResolver(provider, 2026)

	outcome, err := resolver.ResolveTeamOutcome(context.Background(), "Buffalo Bills", 1)
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeUndetermined, outcome)
}

func TestResolveTeamOutcomeUnknownTeamIsUndetermined(t *testing.T) {
	provider := &fixtureGamesProvider{games: map[int][]models.Game{
		1: {finalGame(1, "Buffalo Bills", "Miami Dolphins", 27, 10)},
	}}
	resolver := NewGameResultResolver(provider, 2026)

	outcome, err := resolver.ResolveTeamOutcome(context.Background(), "Buffalo Billz", 1)
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeUndetermined, outcome)
	// The store is never consulted for a name that cannot be a team.
	assert.Equal(t, 0, provider.calls)
}

func TestResolveTeamOutcomeDuplicateGamesIsUndetermined(t *testing.T) {
	provider := &fixtureGamesProvider{games: map[int][]models.Game{
		1: {
			finalGame(1, "Buffalo Bills", "Miami Dolphins", 27, 10),
			finalGame(1, "New York Jets", "Buffalo Bills", 10, 17),
		},
	}}
	resolver := NewGameResultResolver(provider, 2026)

	outcome, err := resolver.ResolveTeamOutcome(context.Background(), "Buffalo Bills", 1)
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeUndetermined, outcome)

	// The unambiguous participant still resolves normally.
	outcome, err = resolver.ResolveTeamOutcome(context.Background(), "Miami Dolphins", 1)
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeLoss, outcome)
}

func TestResolveTeamOutcomeStoreErrorPropagates(t *testing.T) {
	provider := &fixtureGamesProvider{err: errors.New("connection reset")}
	resolver := NewGameResultResolver(provider, 2026)

	_, err := resolver.ResolveTeamOutcome(context.Background(), "Buffalo Bills", 1)
	require.Error(t, err)
}

func TestResolverCachesWeeks(t *testing.T) {
	provider := &fixtureGamesProvider{games: map[int][]models.Game{
		1: {finalGame(1, "Buffalo Bills", "Miami Dolphins", 27, 10)},
	}}
	resolver := NewGameResultResolver(provider, 2026)

	for i := 0; i < 5; i++ {
		_, err := resolver.ResolveTeamOutcome(context.Background(), "Buffalo Bills", 1)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, provider.calls)
}

func TestInvalidateWeekRefreshesResults(t *testing.T) {
	provider := &fixtureGamesProvider{games: map[int][]models.Game{
		1: {{Season: 2026, Week: 1, Home: "Buffalo Bills", Away: "Miami Dolphins", State: models.GameStateInProgress}},
	}}
	resolver := NewGameResultResolver(provider, 2026)

	outcome, err := resolver.ResolveTeamOutcome(context.Background(), "Buffalo Bills", 1)
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeUndetermined, outcome)

	provider.games[1] = []models.Game{finalGame(1, "Buffalo Bills", "Miami Dolphins", 27, 10)}

	// Without invalidation the cached in-progress snapshot sticks.
	outcome, err = resolver.ResolveTeamOutcome(context.Background(), "Buffalo Bills", 1)
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeUndetermined, outcome)

	resolver.InvalidateWeek(1)
	outcome, err = resolver.ResolveTeamOutcome(context.Background(), "Buffalo Bills", 1)
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeWin, outcome)
}
