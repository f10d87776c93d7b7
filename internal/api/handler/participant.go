package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/fantasta/internal/api/apierr"
	"github.com/mcoot/fantasta/internal/api/response"
	"github.com/mcoot/fantasta/internal/model"
	"github.com/mcoot/fantasta/internal/services/auction"
)

// ParticipantHandler handles participant queries
type ParticipantHandler struct {
	auction *auction.Service
}

// NewParticipantHandler creates a new participant handler
func NewParticipantHandler(auctionService *auction.Service) *ParticipantHandler {
	return &ParticipantHandler{
		auction: auctionService,
	}
}

// List handles GET /api/v1/participants
func (h *ParticipantHandler) List(w http.ResponseWriter, r *http.Request) {
	participants := h.auction.Participants(r.Context())
	summaries := make(map[string]model.ParticipantSummary)
	for _, s := range h.auction.Summaries(r.Context()) {
		summaries[s.Name] = s
	}

	out := make([]response.ParticipantDetail, len(participants))
	for i, p := range participants {
		out[i] = response.ParticipantDetailFromModel(p, summaries[p.Name])
	}
	response.JSON(w, http.StatusOK, out)
}

// Get handles GET /api/v1/participants/{name}
func (h *ParticipantHandler) Get(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	participant, err := h.auction.Participant(r.Context(), name)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	summary, err := h.auction.Summary(r.Context(), name)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.ParticipantDetailFromModel(participant, summary))
}

// Roster handles GET /api/v1/participants/{name}/roster
func (h *ParticipantHandler) Roster(w http.ResponseWriter, r *http.Request) {
	players, err := h.auction.Roster(r.Context(), mux.Vars(r)["name"])
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.PlayersFromModel(players))
}

// CanAcquire handles GET /api/v1/participants/{name}/can-acquire?role=
func (h *ParticipantHandler) CanAcquire(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	raw := r.URL.Query().Get("role")
	role, ok := model.ParseRole(raw)
	if !ok {
		apierr.WriteError(w, apierr.NewInvalidRequestError("unknown role "+strconv.Quote(raw)))
		return
	}
	if _, err := h.auction.Participant(r.Context(), name); err != nil {
		apierr.WriteError(w, err)
		return
	}

	e := h.auction.CanAcquire(r.Context(), name, role)
	response.JSON(w, http.StatusOK, response.Eligibility{
		Participant: name,
		Role:        string(role),
		Allowed:     e.Allowed,
		Reason:      e.Reason,
	})
}
