package handlers

import (
	"net/http"
	"strings"

	"nerdfootball-go/database"
	"nerdfootball-go/logging"
	"nerdfootball-go/middleware"
	"nerdfootball-go/models"

	"github.com/gorilla/mux"
)

// MemberHandler serves pool member provisioning, lookup, and removal.
type MemberHandler struct {
	members *database.MongoMemberRepository
	season  int
	logger  *logging.Logger
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(members *database.MongoMemberRepository, season int) *MemberHandler {
	return &MemberHandler{
		members: members,
		season:  season,
		logger:  logging.WithPrefix("MemberHandler"),
	}
}

// ListMembers returns every member for the configured season.
// GET /api/survivor/members
func (h *MemberHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.members.GetMembersBySeason(r.Context(), h.season)
	if err != nil {
		h.logger.Errorf("Failed to list members: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list members")
		return
	}

	writeJSON(w, http.StatusOK, members)
}

// GetMember returns one member with their survivor record.
// GET /api/survivor/members/{id}
func (h *MemberHandler) GetMember(w http.ResponseWriter, r *http.Request) {
	memberID := mux.Vars(r)["id"]

	member, err := h.members.GetMemberByID(r.Context(), memberID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load member")
		return
	}
	if member == nil {
		writeError(w, http.StatusNotFound, "member not found")
		return
	}

	member.Survivor.Normalize()
	writeJSON(w, http.StatusOK, member)
}

type provisionRequest struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ProvisionMember creates a member with survivor defaults. Provisioning an
// existing member is a no-op, so the endpoint is safe to retry.
// POST /api/survivor/members
func (h *MemberHandler) ProvisionMember(w http.ResponseWriter, r *http.Request) {
	var req provisionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.ID = strings.TrimSpace(req.ID)
	req.Email = strings.TrimSpace(req.Email)
	if req.ID == "" || req.Email == "" {
		writeError(w, http.StatusBadRequest, "id and email are required")
		return
	}

	member := &models.PoolMember{
		ID:     req.ID,
		Name:   req.Name,
		Email:  req.Email,
		Season: h.season,
	}

	admin := middleware.GetUserFromContext(r)
	h.logger.Infof("Admin %s provisioning member %s (%s)", admin.Email, req.ID, req.Email)

	if err := h.members.ProvisionMember(r.Context(), member); err != nil {
		h.logger.Errorf("Failed to provision member %s: %v", req.ID, err)
		writeError(w, http.StatusInternalServerError, "failed to provision member")
		return
	}

	created, err := h.members.GetMemberByID(r.Context(), member.ID)
	if err != nil || created == nil {
		writeError(w, http.StatusInternalServerError, "failed to load member after provisioning")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// RemoveMember hard-deletes a member from survivor participation.
// DELETE /api/survivor/members/{id}
func (h *MemberHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	memberID := mux.Vars(r)["id"]

	admin := middleware.GetUserFromContext(r)
	h.logger.Infof("Admin %s removing member %s", admin.Email, memberID)

	if err := h.members.RemoveMember(r.Context(), memberID); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "member removed"})
}
