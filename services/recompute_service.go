package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"nerdfootball-go/logging"
	"nerdfootball-go/models"

	"github.com/google/uuid"
)

// MemberError records one member's failure during a batch run. A failed
// member never aborts the batch; the error is surfaced to the caller for
// manual follow-up.
type MemberError struct {
	MemberID string `json:"member_id"`
	Error    string `json:"error"`
}

// RecomputeReport summarizes a batch recompute run.
type RecomputeReport struct {
	RunID       string        `json:"run_id"`
	Season      int           `json:"season"`
	ThroughWeek int           `json:"through_week"`
	Processed   int           `json:"processed"`
	Changed     int           `json:"changed"`
	Unchanged   int           `json:"unchanged"`
	Protected   int           `json:"protected"`
	Errors      []MemberError `json:"errors,omitempty"`
	StartedAt   time.Time     `json:"started_at"`
	Duration    time.Duration `json:"duration"`
}

// RecomputeService runs the compute-reconcile-write pipeline across every
// pool member. Each member's computation reads only that member's picks and
// the shared read-only results store, so members are processed by a pool of
// concurrent workers with no coordination beyond the job queue.
type RecomputeService struct {
	members    MemberStore
	picks      *PickService
	engine     *SurvivorEngine
	resolver   OutcomeResolver
	reconciler *ReconcileService
	season     int
	workers    int
	logger     *logging.Logger
}

// NewRecomputeService creates a new batch recompute service.
func NewRecomputeService(members MemberStore, picks *PickService, engine *SurvivorEngine, resolver OutcomeResolver, reconciler *ReconcileService, season, workers int) *RecomputeService {
	if workers < 1 {
		workers = 1
	}
	return &RecomputeService{
		members:    members,
		picks:      picks,
		engine:     engine,
		resolver:   resolver,
		reconciler: reconciler,
		season:     season,
		workers:    workers,
		logger:     logging.WithPrefix("Recompute"),
	}
}

// RecomputeMember runs the pipeline for a single member and returns the
// computed status and what the reconcile pass did with it.
func (s *RecomputeService) RecomputeMember(ctx context.Context, member *models.PoolMember, throughWeek int) (models.SurvivorStatus, ReconcileOutcome, error) {
	history, err := s.picks.GetPickHistory(ctx, member)
	if err != nil {
		return models.SurvivorStatus{}, "", err
	}

	computed, err := s.engine.ComputeStatus(ctx, history, s.resolver, throughWeek)
	if err != nil {
		return models.SurvivorStatus{}, "", err
	}

	outcome, err := s.reconciler.ReconcileAndWrite(ctx, member, computed, history)
	if err != nil {
		return computed, outcome, err
	}
	return computed, outcome, nil
}

// RecomputeAll recomputes elimination status for weeks 1..throughWeek
// across all pool members. Per-member failures are collected and the batch
// continues; an error return means the member list itself could not be
// loaded.
func (s *RecomputeService) RecomputeAll(ctx context.Context, throughWeek int) (*RecomputeReport, error) {
	report := &RecomputeReport{
		RunID:       uuid.NewString(),
		Season:      s.season,
		ThroughWeek: throughWeek,
		StartedAt:   time.Now(),
	}

	members, err := s.members.GetMembersBySeason(ctx, s.season)
	if err != nil {
		return nil, fmt.Errorf("failed to load members for season %d: %w", s.season, err)
	}

	s.logger.Infof("Run %s: recomputing %d members through week %d with %d workers",
		report.RunID, len(members), throughWeek, s.workers)

	type memberResult struct {
		memberID string
		outcome  ReconcileOutcome
		err      error
	}

	jobs := make(chan *models.PoolMember)
	results := make(chan memberResult)

	var wg sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for member := range jobs {
				_, outcome, err := s.RecomputeMember(ctx, member, throughWeek)
				results <- memberResult{memberID: member.ID, outcome: outcome, err: err}
			}
		}()
	}

	go func() {
		for i := range members {
			jobs <- &members[i]
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	for result := range results {
		report.Processed++
		if result.err != nil {
			s.logger.Errorf("Run %s: member %s failed: %v", report.RunID, result.memberID, result.err)
			report.Errors = append(report.Errors, MemberError{
				MemberID: result.memberID,
				Error:    result.err.Error(),
			})
			continue
		}

		switch result.outcome {
		case ReconcileApplied:
			report.Changed++
		case ReconcileUnchanged:
			report.Unchanged++
		case ReconcileProtected:
			report.Protected++
		}
	}

	report.Duration = time.Since(report.StartedAt)
	s.logger.Infof("Run %s: done in %s (processed=%d changed=%d unchanged=%d protected=%d errors=%d)",
		report.RunID, report.Duration, report.Processed, report.Changed,
		report.Unchanged, report.Protected, len(report.Errors))

	return report, nil
}
