package services

import (
	"context"
	"fmt"
	"sync"

	"nerdfootball-go/logging"
	"nerdfootball-go/models"
)

// GamesProvider supplies the weekly game results the resolver projects over.
// The results store is read-only from this side; implementations may be
// backed by the database or by fixtures in tests.
type GamesProvider interface {
	GetGamesByWeek(ctx context.Context, season, week int) ([]models.Game, error)
}

// GameResultResolver derives a single team's WIN/LOSS/TIE/UNDETERMINED
// outcome for a week. Weeks are cached after first read: the store is
// read-only here, so a batch recompute across hundreds of members reads
// each week's games once.
type GameResultResolver struct {
	games  GamesProvider
	season int
	logger *logging.Logger

	mu    sync.RWMutex
	cache map[int][]models.Game
}

// NewGameResultResolver creates a resolver for one season.
func NewGameResultResolver(games GamesProvider, season int) *GameResultResolver {
	return &GameResultResolver{
		games:  games,
		season: season,
		logger: logging.WithPrefix("ResultResolver"),
		cache:  make(map[int][]models.Game),
	}
}

// ResolveTeamOutcome looks up the game in the given week whose participants
// include the normalized team name and derives the team's outcome.
//
// Absence of data is a legitimate state, never an error: no game for the
// team, a game that is not final, or an unnormalizable team name all yield
// UNDETERMINED. A team appearing in more than one game in a week is a
// data-ambiguity; it is logged and resolved conservatively to UNDETERMINED
// so bad data never counts as a life-preserving win. Only an unreachable
// results store returns an error.
func (r *GameResultResolver) ResolveTeamOutcome(ctx context.Context, team string, week int) (models.TeamOutcome, error) {
	canonical := models.NormalizeTeamName(team)
	if !models.IsCanonicalTeam(canonical) {
		r.logger.Warnf("Unknown team name %q (week %d), treating as undetermined", team, week)
		return models.OutcomeUndetermined, nil
	}

	games, err := r.gamesForWeek(ctx, week)
	if err != nil {
		return models.OutcomeUndetermined, fmt.Errorf("failed to load games for week %d: %w", week, err)
	}

	var match *models.Game
	for i := range games {
		if !games[i].HasTeam(canonical) {
			continue
		}
		if match != nil {
			r.logger.Warnf("Team %s appears in multiple games in week %d, treating as undetermined", canonical, week)
			return models.OutcomeUndetermined, nil
		}
		match = &games[i]
	}

	if match == nil {
		return models.OutcomeUndetermined, nil
	}
	return match.OutcomeFor(canonical), nil
}

// InvalidateWeek drops a cached week so freshly finalized results are seen
// by the next resolution. Called when game results are written.
func (r *GameResultResolver) InvalidateWeek(week int) {
	r.mu.Lock()
	delete(r.cache, week)
	r.mu.Unlock()
}

func (r *GameResultResolver) gamesForWeek(ctx context.Context, week int) ([]models.Game, error) {
	r.mu.RLock()
	games, ok := r.cache[week]
	r.mu.RUnlock()
	if ok {
		return games, nil
	}

	games, err := r.games.GetGamesByWeek(ctx, r.season, week)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.cache[week] = games
	r.mu.Unlock()
	return games, nil
}
