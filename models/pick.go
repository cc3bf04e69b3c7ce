package models

import (
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SurvivorPick is one user's team selection for a single week.
// These per-week documents are the canonical source of truth for pick
// history; the comma-joined summary on the member record is a write-through
// cache rebuilt from them.
type SurvivorPick struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MemberID    string             `bson:"member_id" json:"member_id"`
	Season      int                `bson:"season" json:"season"`
	Week        int                `bson:"week" json:"week"`
	Team        string             `bson:"team" json:"team"`
	SubmittedAt time.Time          `bson:"submitted_at" json:"submitted_at"`
}

// PickHistory is the ordered sequence of a user's weekly survivor picks,
// sorted by ascending week with team names normalized on construction.
type PickHistory struct {
	picks []SurvivorPick
}

// NewPickHistory builds an ordered history from raw picks. Teams are
// normalized and the list is sorted by week; later submissions for the same
// week replace earlier ones (a resubmitted pick supersedes the original).
func NewPickHistory(raw []SurvivorPick) *PickHistory {
	byWeek := make(map[int]SurvivorPick, len(raw))
	for _, p := range raw {
		p.Team = NormalizeTeamName(p.Team)
		if existing, ok := byWeek[p.Week]; ok && existing.SubmittedAt.After(p.SubmittedAt) {
			continue
		}
		byWeek[p.Week] = p
	}

	picks := make([]SurvivorPick, 0, len(byWeek))
	for _, p := range byWeek {
		picks = append(picks, p)
	}
	sort.Slice(picks, func(i, j int) bool { return picks[i].Week < picks[j].Week })

	return &PickHistory{picks: picks}
}

// ParsePickSummary builds a history from the comma-joined summary string
// stored on the member record, where index 0 is week 1.
func ParsePickSummary(summary string) *PickHistory {
	if strings.TrimSpace(summary) == "" {
		return &PickHistory{}
	}

	parts := strings.Split(summary, ",")
	picks := make([]SurvivorPick, 0, len(parts))
	for i, part := range parts {
		team := strings.TrimSpace(part)
		if team == "" {
			continue
		}
		picks = append(picks, SurvivorPick{Week: i + 1, Team: NormalizeTeamName(team)})
	}
	return &PickHistory{picks: picks}
}

// Len returns the number of picks in the history.
func (h *PickHistory) Len() int {
	return len(h.picks)
}

// Picks returns the ordered picks. The returned slice is shared; callers
// must not mutate it.
func (h *PickHistory) Picks() []SurvivorPick {
	return h.picks
}

// PickForWeek returns the pick for the given week, if one exists.
func (h *PickHistory) PickForWeek(week int) (SurvivorPick, bool) {
	for _, p := range h.picks {
		if p.Week == week {
			return p, true
		}
	}
	return SurvivorPick{}, false
}

// PicksThrough returns a history truncated to weeks <= maxWeek. Used to keep
// future-week picks from leaking into current-week processing.
func (h *PickHistory) PicksThrough(maxWeek int) *PickHistory {
	picks := make([]SurvivorPick, 0, len(h.picks))
	for _, p := range h.picks {
		if p.Week <= maxWeek {
			picks = append(picks, p)
		}
	}
	return &PickHistory{picks: picks}
}

// HasDuplicateTeam reports whether any canonical team name appears more than
// once across the full history. A rule violation independent of game
// outcomes.
func (h *PickHistory) HasDuplicateTeam() bool {
	seen := make(map[string]bool, len(h.picks))
	for _, p := range h.picks {
		if seen[p.Team] {
			return true
		}
		seen[p.Team] = true
	}
	return false
}

// HasTeam reports whether the history already contains the canonical team.
func (h *PickHistory) HasTeam(team string) bool {
	canonical := NormalizeTeamName(team)
	for _, p := range h.picks {
		if p.Team == canonical {
			return true
		}
	}
	return false
}

// Summary renders the history in its persisted comma-joined form,
// index 0 = week 1. Weeks without a pick render as empty slots so the
// positional encoding stays intact.
func (h *PickHistory) Summary() string {
	if len(h.picks) == 0 {
		return ""
	}

	lastWeek := h.picks[len(h.picks)-1].Week
	slots := make([]string, lastWeek)
	for _, p := range h.picks {
		slots[p.Week-1] = p.Team
	}
	return strings.Join(slots, ",")
}
