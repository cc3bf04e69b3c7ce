package services

import (
	"context"
	"fmt"
	"time"

	"nerdfootball-go/logging"
	"nerdfootball-go/models"
)

// MemberStore is the reconciler's view of the pool members store.
type MemberStore interface {
	GetMemberByID(ctx context.Context, id string) (*models.PoolMember, error)
	GetMembersBySeason(ctx context.Context, season int) ([]models.PoolMember, error)
	UpdateSurvivorRecord(ctx context.Context, memberID string, record models.SurvivorRecord) error
}

// ReconcileOutcome classifies what a reconcile pass did for one member.
type ReconcileOutcome string

const (
	// ReconcileApplied means the computed status was persisted.
	ReconcileApplied ReconcileOutcome = "applied"
	// ReconcileUnchanged means the stored record already matched; no write.
	ReconcileUnchanged ReconcileOutcome = "unchanged"
	// ReconcileProtected means a manual override kept the stored status.
	ReconcileProtected ReconcileOutcome = "protected"
)

// ReconcileService merges computed survivor status with the stored record,
// honoring manual admin overrides, and persists the result as one atomic
// sub-record update. Exists because automated recompute passes have a
// history of clobbering manual corrections; the override always wins here.
type ReconcileService struct {
	members MemberStore
	logger  *logging.Logger
}

// NewReconcileService creates a new reconcile service.
func NewReconcileService(members MemberStore) *ReconcileService {
	return &ReconcileService{
		members: members,
		logger:  logging.WithPrefix("Reconcile"),
	}
}

// Reconcile merges a computed status into the stored record and returns the
// record that should be persisted. Pure; no I/O.
//
// When the stored record carries manualOverride, the stored alive/
// elimination fields are returned verbatim and the computed status is only
// logged for audit. Otherwise the computed status is applied, clearing any
// stale elimination fields when the computation says ALIVE. In both cases
// the pick summary and totalPicks are refreshed from the canonical history,
// so drifted counters self-heal on the next write.
func (s *ReconcileService) Reconcile(memberID string, computed models.SurvivorStatus, stored models.SurvivorRecord, history *models.PickHistory) models.SurvivorRecord {
	next := stored
	next.PickHistory = history.Summary()
	next.TotalPicks = history.Len()

	if stored.ManualOverride {
		s.logger.Infof("Member %s: manual override in force (stored alive=%d), discarding computed status alive=%t week=%v",
			memberID, stored.Alive, computed.Alive, formatWeek(computed.EliminationWeek))
		return next
	}

	next.Alive = computed.AliveValue()
	if computed.Alive {
		next.EliminationWeek = nil
		next.EliminationReason = ""
	} else {
		next.EliminationWeek = computed.EliminationWeek
		next.EliminationReason = computed.EliminationReason
	}
	return next
}

// ReconcileAndWrite reconciles and persists the member's survivor record.
// Identical state produces no second write, so the pass is idempotent.
func (s *ReconcileService) ReconcileAndWrite(ctx context.Context, member *models.PoolMember, computed models.SurvivorStatus, history *models.PickHistory) (ReconcileOutcome, error) {
	stored := member.Survivor
	next := s.Reconcile(member.ID, computed, stored, history)

	outcome := ReconcileApplied
	if stored.ManualOverride {
		outcome = ReconcileProtected
	}

	if next.Equal(&stored) {
		if outcome == ReconcileProtected {
			return ReconcileProtected, nil
		}
		return ReconcileUnchanged, nil
	}

	next.LastUpdated = time.Now()
	if err := s.members.UpdateSurvivorRecord(ctx, member.ID, next); err != nil {
		return outcome, fmt.Errorf("failed to persist survivor record for %s: %w", member.ID, err)
	}

	member.Survivor = next
	s.logger.Debugf("Member %s: survivor record written (alive=%d, picks=%d, outcome=%s)",
		member.ID, next.Alive, next.TotalPicks, outcome)
	return outcome, nil
}

// SetManualOverride forces a status and flags it so recomputes leave it
// alone. eliminationWeek is ignored when alive is true.
func (s *ReconcileService) SetManualOverride(ctx context.Context, memberID string, alive bool, eliminationWeek int, reason string) error {
	member, err := s.members.GetMemberByID(ctx, memberID)
	if err != nil {
		return err
	}
	if member == nil {
		return fmt.Errorf("member %s not found", memberID)
	}

	record := member.Survivor
	record.ManualOverride = true
	if alive {
		record.Alive = models.AliveSentinel
		record.EliminationWeek = nil
		record.EliminationReason = ""
	} else {
		if eliminationWeek < 1 || eliminationWeek > models.MaxSeasonWeeks {
			return fmt.Errorf("elimination week %d out of range", eliminationWeek)
		}
		record.Alive = eliminationWeek
		record.EliminationWeek = &eliminationWeek
		record.EliminationReason = reason
	}
	record.LastUpdated = time.Now()

	s.logger.Infof("Member %s: manual override set (alive=%t, week=%d)", memberID, alive, eliminationWeek)
	return s.members.UpdateSurvivorRecord(ctx, memberID, record)
}

// ClearManualOverride removes the override flag. The stored status stands
// until the next recompute pass replaces it.
func (s *ReconcileService) ClearManualOverride(ctx context.Context, memberID string) error {
	member, err := s.members.GetMemberByID(ctx, memberID)
	if err != nil {
		return err
	}
	if member == nil {
		return fmt.Errorf("member %s not found", memberID)
	}

	record := member.Survivor
	record.ManualOverride = false
	record.LastUpdated = time.Now()

	s.logger.Infof("Member %s: manual override cleared", memberID)
	return s.members.UpdateSurvivorRecord(ctx, memberID, record)
}

func formatWeek(week *int) interface{} {
	if week == nil {
		return "none"
	}
	return *week
}
