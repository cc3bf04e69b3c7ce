package handlers

import (
	"io"
	"net/http"
	"strconv"

	"nerdfootball-go/logging"
	"nerdfootball-go/middleware"
	"nerdfootball-go/models"
	"nerdfootball-go/services"

	"github.com/gorilla/mux"
)

// SurvivorHandler serves the administrative survivor-pool surface:
// computed-vs-stored status, manual overrides, pick corrections, and batch
// recomputes. Thin wrappers over the engine and reconcile layer.
type SurvivorHandler struct {
	members    services.MemberStore
	picks      *services.PickService
	engine     *services.SurvivorEngine
	resolver   services.OutcomeResolver
	reconciler *services.ReconcileService
	recompute  *services.RecomputeService
	scheduler  *services.RecomputeScheduler
	logger     *logging.Logger
}

// NewSurvivorHandler creates a new survivor admin handler
func NewSurvivorHandler(
	members services.MemberStore,
	picks *services.PickService,
	engine *services.SurvivorEngine,
	resolver services.OutcomeResolver,
	reconciler *services.ReconcileService,
	recompute *services.RecomputeService,
	scheduler *services.RecomputeScheduler,
) *SurvivorHandler {
	return &SurvivorHandler{
		members:    members,
		picks:      picks,
		engine:     engine,
		resolver:   resolver,
		reconciler: reconciler,
		recompute:  recompute,
		scheduler:  scheduler,
		logger:     logging.WithPrefix("SurvivorHandler"),
	}
}

// memberStatusResponse pairs the stored record with a fresh computation so
// an admin can see drift before deciding to intervene.
type memberStatusResponse struct {
	MemberID string                `json:"member_id"`
	Stored   models.SurvivorRecord `json:"stored"`
	Computed models.SurvivorStatus `json:"computed"`
	InSync   bool                  `json:"in_sync"`
	AsOfWeek int                   `json:"as_of_week"`
}

// GetMemberStatus returns a member's stored vs computed survivor status.
// GET /api/survivor/members/{id}/status[?asOfWeek=N]
func (h *SurvivorHandler) GetMemberStatus(w http.ResponseWriter, r *http.Request) {
	memberID := mux.Vars(r)["id"]

	member, err := h.members.GetMemberByID(r.Context(), memberID)
	if err != nil {
		h.logger.Errorf("Failed to load member %s: %v", memberID, err)
		writeError(w, http.StatusInternalServerError, "failed to load member")
		return
	}
	if member == nil {
		writeError(w, http.StatusNotFound, "member not found")
		return
	}

	asOfWeek, err := h.asOfWeek(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	record := member.Survivor
	record.Normalize()

	history, err := h.picks.GetPickHistory(r.Context(), member)
	if err != nil {
		h.logger.Errorf("Failed to load picks for %s: %v", memberID, err)
		writeError(w, http.StatusInternalServerError, "failed to load pick history")
		return
	}

	computed, err := h.engine.ComputeStatus(r.Context(), history, h.resolver, asOfWeek)
	if err != nil {
		h.logger.Errorf("Failed to compute status for %s: %v", memberID, err)
		writeError(w, http.StatusInternalServerError, "failed to compute status")
		return
	}

	writeJSON(w, http.StatusOK, memberStatusResponse{
		MemberID: memberID,
		Stored:   record,
		Computed: computed,
		InSync:   computed.Same(models.StatusFromRecord(&record)),
		AsOfWeek: asOfWeek,
	})
}

type overrideRequest struct {
	Alive           bool   `json:"alive"`
	EliminationWeek int    `json:"elimination_week"`
	Reason          string `json:"reason"`
}

// SetOverride forces a member's status and protects it from recomputes.
// POST /api/survivor/members/{id}/override
func (h *SurvivorHandler) SetOverride(w http.ResponseWriter, r *http.Request) {
	memberID := mux.Vars(r)["id"]

	var req overrideRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	admin := middleware.GetUserFromContext(r)
	h.logger.Infof("Admin %s setting override for member %s (alive=%t, week=%d)",
		admin.Email, memberID, req.Alive, req.EliminationWeek)

	if err := h.reconciler.SetManualOverride(r.Context(), memberID, req.Alive, req.EliminationWeek, req.Reason); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "override set"})
}

// ClearOverride removes a member's manual override.
// DELETE /api/survivor/members/{id}/override
func (h *SurvivorHandler) ClearOverride(w http.ResponseWriter, r *http.Request) {
	memberID := mux.Vars(r)["id"]

	admin := middleware.GetUserFromContext(r)
	h.logger.Infof("Admin %s clearing override for member %s", admin.Email, memberID)

	if err := h.reconciler.ClearManualOverride(r.Context(), memberID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "override cleared"})
}

type pickRequest struct {
	Week int    `json:"week"`
	Team string `json:"team"`
}

// SubmitPick records a pick on a member's behalf.
// POST /api/survivor/members/{id}/picks
func (h *SurvivorHandler) SubmitPick(w http.ResponseWriter, r *http.Request) {
	memberID := mux.Vars(r)["id"]

	var req pickRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	member, err := h.members.GetMemberByID(r.Context(), memberID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load member")
		return
	}
	if member == nil {
		writeError(w, http.StatusNotFound, "member not found")
		return
	}

	if err := h.picks.SubmitPick(r.Context(), member, req.Week, req.Team); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, member.Survivor)
}

// ClearPick removes a member's pick for a week.
// DELETE /api/survivor/members/{id}/picks/{week}
func (h *SurvivorHandler) ClearPick(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	memberID := vars["id"]
	week, err := strconv.Atoi(vars["week"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid week")
		return
	}

	member, err := h.members.GetMemberByID(r.Context(), memberID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load member")
		return
	}
	if member == nil {
		writeError(w, http.StatusNotFound, "member not found")
		return
	}

	if err := h.picks.ClearPick(r.Context(), member, week); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, member.Survivor)
}

type recomputeRequest struct {
	ThroughWeek int `json:"through_week"`
}

// Recompute runs the batch recompute across all members and returns the
// run report. POST /api/survivor/recompute
func (h *SurvivorHandler) Recompute(w http.ResponseWriter, r *http.Request) {
	// An empty body means "through the latest started week".
	var req recomputeRequest
	if err := decodeJSON(r, &req); err != nil && err != io.EOF {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	throughWeek := req.ThroughWeek
	if throughWeek == 0 {
		week, err := h.scheduler.LatestStartedWeek(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "could not determine current week")
			return
		}
		throughWeek = week
	}
	if throughWeek < 1 || throughWeek > models.MaxSeasonWeeks {
		writeError(w, http.StatusBadRequest, "through_week out of range")
		return
	}

	admin := middleware.GetUserFromContext(r)
	h.logger.Infof("Admin %s triggered recompute through week %d", admin.Email, throughWeek)

	report, err := h.recompute.RecomputeAll(r.Context(), throughWeek)
	if err != nil {
		h.logger.Errorf("Recompute failed: %v", err)
		writeError(w, http.StatusInternalServerError, "recompute failed")
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func (h *SurvivorHandler) asOfWeek(r *http.Request) (int, error) {
	if raw := r.URL.Query().Get("asOfWeek"); raw != "" {
		week, err := strconv.Atoi(raw)
		if err != nil || week < 1 || week > models.MaxSeasonWeeks {
			return 0, errInvalidWeek
		}
		return week, nil
	}
	return h.scheduler.LatestStartedWeek(r.Context())
}
