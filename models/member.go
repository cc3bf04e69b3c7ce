package models

import (
	"time"
)

const (
	// AliveSentinel is the stored Alive value meaning "not eliminated".
	// Chosen to exceed the maximum week count.
	AliveSentinel = 18

	// MaxSeasonWeeks is the last playable week of the regular season.
	MaxSeasonWeeks = 17
)

// SurvivorRecord is the survivor sub-record embedded in a pool member
// document, one per member per pool-season. Alive holds either
// AliveSentinel or the 1..17 week of elimination; PickHistory is the
// comma-joined positional summary (index 0 = week 1) rebuilt from the
// per-week pick documents.
type SurvivorRecord struct {
	Alive           int       `bson:"alive" json:"alive"`
	PickHistory     string    `bson:"pickHistory" json:"pickHistory"`
	TotalPicks      int       `bson:"totalPicks" json:"totalPicks"`
	EliminationWeek *int      `bson:"eliminationWeek,omitempty" json:"eliminationWeek,omitempty"`
	EliminationReason string  `bson:"eliminationReason,omitempty" json:"eliminationReason,omitempty"`
	ManualOverride  bool      `bson:"manualOverride" json:"manualOverride"`
	LastUpdated     time.Time `bson:"lastUpdated" json:"lastUpdated"`
}

// NewSurvivorRecord returns the record a member is provisioned with the
// first time they join a pool: alive, no picks, no override.
func NewSurvivorRecord() SurvivorRecord {
	return SurvivorRecord{
		Alive:       AliveSentinel,
		LastUpdated: time.Now(),
	}
}

// IsAlive reports whether the record carries the alive sentinel.
func (r *SurvivorRecord) IsAlive() bool {
	return r.Alive >= AliveSentinel
}

// History parses the embedded summary into an ordered pick history.
func (r *SurvivorRecord) History() *PickHistory {
	return ParsePickSummary(r.PickHistory)
}

// Normalize repairs data drift in a loaded record and reports whether
// anything changed. The pick list is authoritative for TotalPicks; the
// elimination fields must agree with Alive. Drift is self-healed, never
// fatal.
func (r *SurvivorRecord) Normalize() bool {
	changed := false

	if n := r.History().Len(); r.TotalPicks != n {
		r.TotalPicks = n
		changed = true
	}

	if r.IsAlive() {
		if r.Alive != AliveSentinel {
			r.Alive = AliveSentinel
			changed = true
		}
		if r.EliminationWeek != nil || r.EliminationReason != "" {
			r.EliminationWeek = nil
			r.EliminationReason = ""
			changed = true
		}
	} else if r.EliminationWeek == nil {
		week := r.Alive
		r.EliminationWeek = &week
		changed = true
	}

	return changed
}

// Equal compares two records ignoring LastUpdated, which is an audit stamp
// rather than state. Used for no-op write detection.
func (r *SurvivorRecord) Equal(o *SurvivorRecord) bool {
	if r.Alive != o.Alive ||
		r.PickHistory != o.PickHistory ||
		r.TotalPicks != o.TotalPicks ||
		r.EliminationReason != o.EliminationReason ||
		r.ManualOverride != o.ManualOverride {
		return false
	}
	if (r.EliminationWeek == nil) != (o.EliminationWeek == nil) {
		return false
	}
	if r.EliminationWeek != nil && *r.EliminationWeek != *o.EliminationWeek {
		return false
	}
	return true
}

// PoolMember is one participant in the pool. The member owns its embedded
// survivor sub-record; game results are owned elsewhere.
type PoolMember struct {
	ID        string         `bson:"_id" json:"id"`
	Name      string         `bson:"name" json:"name"`
	Email     string         `bson:"email" json:"email"`
	Season    int            `bson:"season" json:"season"`
	Survivor  SurvivorRecord `bson:"survivor" json:"survivor"`
	CreatedAt time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time      `bson:"updatedAt" json:"updatedAt"`
}
