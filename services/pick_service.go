package services

import (
	"context"
	"fmt"
	"time"

	"nerdfootball-go/logging"
	"nerdfootball-go/models"
)

// PickStore is the pick service's view of per-week pick documents.
type PickStore interface {
	GetPicksByMember(ctx context.Context, memberID string, season int) ([]models.SurvivorPick, error)
	UpsertPick(ctx context.Context, pick *models.SurvivorPick) error
	DeletePick(ctx context.Context, memberID string, season, week int) error
}

// PickService owns survivor pick history. The per-week pick documents are
// the single source of truth; the comma-joined summary embedded on the
// member record is a write-through cache rebuilt here after every mutation,
// never the reverse. Legacy members that predate the per-week documents are
// still readable through their embedded summary.
type PickService struct {
	picks   PickStore
	members MemberStore
	season  int
	logger  *logging.Logger
}

// NewPickService creates a new pick service for one season.
func NewPickService(picks PickStore, members MemberStore, season int) *PickService {
	return &PickService{
		picks:   picks,
		members: members,
		season:  season,
		logger:  logging.WithPrefix("PickService"),
	}
}

// GetPickHistory assembles a member's ordered pick history.
//
// The per-week documents win. A member with no documents but a non-empty
// embedded summary is a legacy record; the summary is parsed and used, and
// the condition is logged so a migration can find it. A totalPicks counter
// that disagrees with the assembled list is a data-integrity warning, not a
// failure; the list length is authoritative and the counter self-heals on
// the next write.
func (s *PickService) GetPickHistory(ctx context.Context, member *models.PoolMember) (*models.PickHistory, error) {
	picks, err := s.picks.GetPicksByMember(ctx, member.ID, s.season)
	if err != nil {
		return nil, fmt.Errorf("failed to load picks for member %s: %w", member.ID, err)
	}

	var history *models.PickHistory
	if len(picks) > 0 {
		history = models.NewPickHistory(picks)
	} else if member.Survivor.PickHistory != "" {
		s.logger.Infof("Member %s has no pick documents, falling back to embedded summary (legacy record)", member.ID)
		history = models.ParsePickSummary(member.Survivor.PickHistory)
	} else {
		history = models.NewPickHistory(nil)
	}

	if member.Survivor.TotalPicks != history.Len() {
		s.logger.Warnf("Member %s: totalPicks=%d disagrees with pick list length %d, trusting the list",
			member.ID, member.Survivor.TotalPicks, history.Len())
	}

	return history, nil
}

// SubmitPick records a member's pick for a week and rebuilds the summary.
// The team must normalize to a real NFL team, and reusing a team already
// picked in another week is rejected up front; the status engine enforces
// the same rule on whatever data reaches it.
func (s *PickService) SubmitPick(ctx context.Context, member *models.PoolMember, week int, team string) error {
	if week < 1 || week > models.MaxSeasonWeeks {
		return fmt.Errorf("week %d out of range", week)
	}

	canonical := models.NormalizeTeamName(team)
	if !models.IsCanonicalTeam(canonical) {
		return fmt.Errorf("unknown team %q", team)
	}

	history, err := s.GetPickHistory(ctx, member)
	if err != nil {
		return err
	}
	for _, p := range history.Picks() {
		if p.Week != week && p.Team == canonical {
			return fmt.Errorf("team %s already used in week %d", canonical, p.Week)
		}
	}

	pick := &models.SurvivorPick{
		MemberID:    member.ID,
		Season:      s.season,
		Week:        week,
		Team:        canonical,
		SubmittedAt: time.Now(),
	}
	if err := s.picks.UpsertPick(ctx, pick); err != nil {
		return err
	}

	s.logger.Infof("Member %s: week %d pick set to %s", member.ID, week, canonical)
	return s.RebuildSummary(ctx, member)
}

// ClearPick removes a member's pick for a week and rebuilds the summary.
func (s *PickService) ClearPick(ctx context.Context, member *models.PoolMember, week int) error {
	if err := s.picks.DeletePick(ctx, member.ID, s.season, week); err != nil {
		return err
	}

	s.logger.Infof("Member %s: week %d pick cleared", member.ID, week)
	return s.RebuildSummary(ctx, member)
}

// RebuildSummary rewrites the member's embedded summary and totalPicks from
// the canonical pick documents, as one atomic sub-record update. Status
// fields are carried through untouched.
func (s *PickService) RebuildSummary(ctx context.Context, member *models.PoolMember) error {
	picks, err := s.picks.GetPicksByMember(ctx, member.ID, s.season)
	if err != nil {
		return fmt.Errorf("failed to load picks for member %s: %w", member.ID, err)
	}
	history := models.NewPickHistory(picks)

	record := member.Survivor
	record.PickHistory = history.Summary()
	record.TotalPicks = history.Len()

	if record.Equal(&member.Survivor) {
		return nil
	}

	record.LastUpdated = time.Now()
	if err := s.members.UpdateSurvivorRecord(ctx, member.ID, record); err != nil {
		return err
	}
	member.Survivor = record
	return nil
}
