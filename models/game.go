package models

import (
	"fmt"
	"time"
)

// GameState represents the current state of a game
type GameState string

const (
	GameStateScheduled  GameState = "scheduled"
	GameStateInProgress GameState = "in_progress"
	GameStateFinal      GameState = "final"
)

// TeamOutcome is a single team's derived result for a week.
type TeamOutcome string

const (
	OutcomeWin          TeamOutcome = "WIN"
	OutcomeLoss         TeamOutcome = "LOSS"
	OutcomeTie          TeamOutcome = "TIE"
	OutcomeUndetermined TeamOutcome = "UNDETERMINED"
)

// Game represents one NFL game in the season-wide results store.
// Home/Away/Winner hold canonical full team names.
type Game struct {
	ID        int       `json:"id" bson:"id"`
	Season    int       `json:"season" bson:"season"`
	Week      int       `json:"week" bson:"week"`
	Date      time.Time `json:"date" bson:"date"`
	Home      string    `json:"home" bson:"home"`
	Away      string    `json:"away" bson:"away"`
	HomeScore int       `json:"homeScore" bson:"homeScore"`
	AwayScore int       `json:"awayScore" bson:"awayScore"`
	Winner    *string   `json:"winner,omitempty" bson:"winner,omitempty"`
	State     GameState `json:"state" bson:"state"`
}

// IsFinal returns true if the game is finished
func (g *Game) IsFinal() bool {
	return g.State == GameStateFinal
}

// IsInProgress returns true if the game is currently being played
func (g *Game) IsInProgress() bool {
	return g.State == GameStateInProgress
}

// IsTie returns true if the game finished with equal scores
func (g *Game) IsTie() bool {
	return g.IsFinal() && g.HomeScore == g.AwayScore
}

// HasTeam reports whether the canonical team name participates in this game.
func (g *Game) HasTeam(team string) bool {
	return NormalizeTeamName(g.Home) == team || NormalizeTeamName(g.Away) == team
}

// OutcomeFor derives the per-team outcome of this game.
// WIN if the team is the recorded winner, LOSS if it is the other
// participant and a winner exists, TIE on a tied final, UNDETERMINED in
// every other state (not final, no winner recorded yet).
func (g *Game) OutcomeFor(team string) TeamOutcome {
	if !g.HasTeam(team) {
		return OutcomeUndetermined
	}
	if !g.IsFinal() {
		return OutcomeUndetermined
	}
	if g.IsTie() {
		return OutcomeTie
	}
	if g.Winner == nil {
		return OutcomeUndetermined
	}
	if NormalizeTeamName(*g.Winner) == team {
		return OutcomeWin
	}
	return OutcomeLoss
}

// Description returns an "Away @ Home" label for logs and reports.
func (g *Game) Description() string {
	return fmt.Sprintf("%s @ %s", g.Away, g.Home)
}

// SettleWinner records the winner from the final scores. A tied final leaves
// Winner nil; OutcomeFor reports TIE from the scores.
func (g *Game) SettleWinner() {
	if !g.IsFinal() || g.IsTie() {
		g.Winner = nil
		return
	}
	winner := g.Home
	if g.AwayScore > g.HomeScore {
		winner = g.Away
	}
	g.Winner = &winner
}
