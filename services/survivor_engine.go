package services

import (
	"context"
	"fmt"

	"nerdfootball-go/models"
)

// OutcomeResolver is the engine's view of the weekly results. Satisfied by
// GameResultResolver in production and by fixtures in tests.
type OutcomeResolver interface {
	ResolveTeamOutcome(ctx context.Context, team string, week int) (models.TeamOutcome, error)
}

// SurvivorEngine walks a member's pick history against resolved game
// results and derives alive/eliminated status. Pure with respect to state:
// all I/O happens behind the resolver, so the engine is deterministic for a
// given history and result set.
type SurvivorEngine struct{}

// NewSurvivorEngine creates a survivor status engine.
func NewSurvivorEngine() *SurvivorEngine {
	return &SurvivorEngine{}
}

// ComputeStatus derives a member's survivor status as of a week.
//
// asOfWeek is the latest week that has already started; every week from 1
// through asOfWeek is treated as playable. Weeks are processed strictly in
// ascending order and the earliest eliminating event wins:
//
//   - a pick whose canonical team was already used eliminates with
//     "team reused" (checked before the game outcome, so a reused team
//     that also lost reports the reuse),
//   - a missing pick for a playable week eliminates with "missed pick",
//   - a LOSS outcome eliminates with "team lost",
//   - WIN and TIE survive; ties are non-eliminating by policy,
//   - UNDETERMINED draws no conclusion for that week but stops the
//     resolved-through marker, so the caller reports "alive as of the last
//     fully resolved week" instead of inventing certainty for a game still
//     in progress.
//
// Reuse is checked on the normalized string whether or not it maps to a
// real team, so a typo never creates a false survival. Elimination is
// terminal: recomputing with a larger asOfWeek over the same data reports
// the same week and reason.
func (e *SurvivorEngine) ComputeStatus(ctx context.Context, history *models.PickHistory, resolver OutcomeResolver, asOfWeek int) (models.SurvivorStatus, error) {
	if asOfWeek < 1 {
		return models.AliveStatus(0), nil
	}
	if asOfWeek > models.MaxSeasonWeeks {
		asOfWeek = models.MaxSeasonWeeks
	}

	// Future-week picks must not influence the current computation.
	picks := history.PicksThrough(asOfWeek)

	usedTeams := make(map[string]bool, asOfWeek)
	resolvedThrough := 0
	allResolved := true

	for week := 1; week <= asOfWeek; week++ {
		pick, ok := picks.PickForWeek(week)
		if !ok {
			return models.EliminatedStatus(week, models.ReasonMissedPick, week), nil
		}

		if usedTeams[pick.Team] {
			return models.EliminatedStatus(week, models.ReasonTeamReused, week), nil
		}
		usedTeams[pick.Team] = true

		outcome, err := resolver.ResolveTeamOutcome(ctx, pick.Team, week)
		if err != nil {
			return models.SurvivorStatus{}, fmt.Errorf("failed to resolve week %d outcome for %s: %w", week, pick.Team, err)
		}

		switch outcome {
		case models.OutcomeLoss:
			return models.EliminatedStatus(week, models.ReasonTeamLost, week), nil
		case models.OutcomeWin, models.OutcomeTie:
			if allResolved {
				resolvedThrough = week
			}
		case models.OutcomeUndetermined:
			// No conclusion for this week; keep scanning in case a later
			// week carries a certain elimination (a reused team or a
			// missed pick does not depend on game outcomes).
			allResolved = false
		}
	}

	return models.AliveStatus(resolvedThrough), nil
}
