package services

import (
	"context"
	"testing"

	"nerdfootball-go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecomputeFixture(resolver OutcomeResolver, members ...*models.PoolMember) (*RecomputeService, *memoryPickStore, *memoryMemberStore) {
	pickStore := newMemoryPickStore()
	memberStore := newMemoryMemberStore(members...)
	picks := NewPickService(pickStore, memberStore, 2026)
	engine := NewSurvivorEngine()
	reconciler := NewReconcileService(memberStore)
	svc := NewRecomputeService(memberStore, picks, engine, resolver, reconciler, 2026, 4)
	return svc, pickStore, memberStore
}

func TestRecomputeMemberAppliesElimination(t *testing.T) {
	resolver := &fixtureResolver{outcomes: map[int]map[string]models.TeamOutcome{
		1: {"Miami Dolphins": models.OutcomeLoss},
	}}
	member := testMember("u1", models.NewSurvivorRecord())
	svc, pickStore, store := newRecomputeFixture(resolver, member)
	pickStore.seed("u1", models.SurvivorPick{Season: 2026, Week: 1, Team: "Miami Dolphins"})

	computed, outcome, err := svc.RecomputeMember(context.Background(), member, 1)
	require.NoError(t, err)
	assert.Equal(t, ReconcileApplied, outcome)
	assert.False(t, computed.Alive)

	got := store.record("u1")
	assert.Equal(t, 1, got.Alive)
	assert.Equal(t, models.ReasonTeamLost, got.EliminationReason)
	assert.Equal(t, "Miami Dolphins", got.PickHistory)
}

func TestRecomputeAllCounts(t *testing.T) {
	resolver := &fixtureResolver{outcomes: map[int]map[string]models.TeamOutcome{
		1: {
			"Buffalo Bills":  models.OutcomeWin,
			"Miami Dolphins": models.OutcomeLoss,
		},
	}}

	winner := testMember("winner", models.NewSurvivorRecord())
	winner.Survivor.PickHistory = "Buffalo Bills"
	winner.Survivor.TotalPicks = 1

	loser := testMember("loser", models.NewSurvivorRecord())

	overridden := testMember("overridden", models.SurvivorRecord{
		Alive:          models.AliveSentinel,
		ManualOverride: true,
		PickHistory:    "Miami Dolphins",
		TotalPicks:     1,
	})

	svc, pickStore, store := newRecomputeFixture(resolver, winner, loser, overridden)
	pickStore.seed("winner", models.SurvivorPick{Season: 2026, Week: 1, Team: "Buffalo Bills"})
	pickStore.seed("loser", models.SurvivorPick{Season: 2026, Week: 1, Team: "Miami Dolphins"})
	pickStore.seed("overridden", models.SurvivorPick{Season: 2026, Week: 1, Team: "Miami Dolphins"})

	report, err := svc.RecomputeAll(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 3, report.Processed)
	assert.Equal(t, 1, report.Changed)
	assert.Equal(t, 1, report.Unchanged)
	assert.Equal(t, 1, report.Protected)
	assert.Empty(t, report.Errors)
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, 2026, report.Season)
	assert.Equal(t, 1, report.ThroughWeek)

	assert.Equal(t, 1, store.record("loser").Alive)
	assert.Equal(t, models.AliveSentinel, store.record("winner").Alive)
	assert.Equal(t, models.AliveSentinel, store.record("overridden").Alive)
}

func TestRecomputeAllContinuesPastMemberFailures(t *testing.T) {
	resolver := &fixtureResolver{outcomes: map[int]map[string]models.TeamOutcome{
		1: {"Miami Dolphins": models.OutcomeLoss},
	}}

	broken := testMember("broken", models.NewSurvivorRecord())
	healthy := testMember("healthy", models.NewSurvivorRecord())

	svc, pickStore, store := newRecomputeFixture(resolver, broken, healthy)
	pickStore.failOn = "broken"
	pickStore.seed("healthy", models.SurvivorPick{Season: 2026, Week: 1, Team: "Miami Dolphins"})

	report, err := svc.RecomputeAll(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Processed)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, "broken", report.Errors[0].MemberID)

	// The healthy member was still reconciled.
	assert.Equal(t, 1, store.record("healthy").Alive)
}

func TestRecomputeAllIdempotent(t *testing.T) {
	resolver := &fixtureResolver{outcomes: map[int]map[string]models.TeamOutcome{
		1: {"Miami Dolphins": models.OutcomeLoss},
	}}
	member := testMember("u1", models.NewSurvivorRecord())
	svc, pickStore, _ := newRecomputeFixture(resolver, member)
	pickStore.seed("u1", models.SurvivorPick{Season: 2026, Week: 1, Team: "Miami Dolphins"})

	first, err := svc.RecomputeAll(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Changed)

	second, err := svc.RecomputeAll(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Changed)
	assert.Equal(t, 1, second.Unchanged)
}

func TestRecomputeAllEmptySeason(t *testing.T) {
	resolver := &fixtureResolver{}
	svc, _, _ := newRecomputeFixture(resolver)

	report, err := svc.RecomputeAll(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Processed)
}
