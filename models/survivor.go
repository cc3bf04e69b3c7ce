package models

// Elimination reasons reported by the status engine.
const (
	ReasonTeamLost   = "team lost"
	ReasonTeamReused = "team reused"
	ReasonMissedPick = "missed pick"
)

// SurvivorStatus is the engine's computed view of a member: alive or
// eliminated, and if eliminated, where and why. ResolvedThrough is the last
// week whose outcome was fully resolved, so callers can report "alive as of
// week N" instead of fabricating certainty for in-progress games.
type SurvivorStatus struct {
	Alive             bool   `json:"alive"`
	EliminationWeek   *int   `json:"eliminationWeek,omitempty"`
	EliminationReason string `json:"eliminationReason,omitempty"`
	ResolvedThrough   int    `json:"resolvedThrough"`
}

// AliveStatus returns an alive status resolved through the given week.
func AliveStatus(resolvedThrough int) SurvivorStatus {
	return SurvivorStatus{Alive: true, ResolvedThrough: resolvedThrough}
}

// EliminatedStatus returns a terminal eliminated status.
func EliminatedStatus(week int, reason string, resolvedThrough int) SurvivorStatus {
	return SurvivorStatus{
		Alive:             false,
		EliminationWeek:   &week,
		EliminationReason: reason,
		ResolvedThrough:   resolvedThrough,
	}
}

// AliveValue maps the status to the stored Alive convention: the sentinel
// when alive, the elimination week otherwise.
func (s SurvivorStatus) AliveValue() int {
	if s.Alive || s.EliminationWeek == nil {
		return AliveSentinel
	}
	return *s.EliminationWeek
}

// StatusFromRecord projects a stored record into the engine's status shape,
// used when comparing stored against computed state.
func StatusFromRecord(r *SurvivorRecord) SurvivorStatus {
	if r.IsAlive() {
		return AliveStatus(0)
	}
	week := r.Alive
	if r.EliminationWeek != nil {
		week = *r.EliminationWeek
	}
	return EliminatedStatus(week, r.EliminationReason, 0)
}

// Same reports whether two statuses agree on alive/week/reason. Resolution
// depth is informational and ignored.
func (s SurvivorStatus) Same(o SurvivorStatus) bool {
	if s.Alive != o.Alive {
		return false
	}
	if s.Alive {
		return true
	}
	if (s.EliminationWeek == nil) != (o.EliminationWeek == nil) {
		return false
	}
	if s.EliminationWeek != nil && *s.EliminationWeek != *o.EliminationWeek {
		return false
	}
	return s.EliminationReason == o.EliminationReason
}
