package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/fantasta/internal/api/apierr"
	"github.com/mcoot/fantasta/internal/api/request"
	"github.com/mcoot/fantasta/internal/api/response"
	"github.com/mcoot/fantasta/internal/model"
	"github.com/mcoot/fantasta/internal/services/auction"
)

// PlayerHandler handles catalog queries and the three bid operations
type PlayerHandler struct {
	auction *auction.Service
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(auctionService *auction.Service) *PlayerHandler {
	return &PlayerHandler{
		auction: auctionService,
	}
}

// List handles GET /api/v1/players
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.PlayersFromModel(h.auction.Players(r.Context(), filter)))
}

// Get handles GET /api/v1/players/{id}
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := playerID(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	player, err := h.auction.Player(r.Context(), id)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}

// Teams handles GET /api/v1/teams
func (h *PlayerHandler) Teams(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.Teams{Teams: h.auction.Teams(r.Context())})
}

// Stats handles GET /api/v1/stats
func (h *PlayerHandler) Stats(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.StatsFromModel(h.auction.Statistics(r.Context())))
}

// History handles GET /api/v1/history
func (h *PlayerHandler) History(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.PlayersFromModel(h.auction.History(r.Context())))
}

// Acquire handles POST /api/v1/players/{id}/acquire
func (h *PlayerHandler) Acquire(w http.ResponseWriter, r *http.Request) {
	id, err := playerID(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	var req request.AcquireRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Participant == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("participant is required"))
		return
	}

	if err := h.auction.Acquire(r.Context(), id, req.Participant, req.Price); err != nil {
		apierr.WriteError(w, err)
		return
	}
	h.writePlayer(w, r, id)
}

// RevisePrice handles PATCH /api/v1/players/{id}/price
func (h *PlayerHandler) RevisePrice(w http.ResponseWriter, r *http.Request) {
	id, err := playerID(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	var req request.RevisePriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Participant == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("participant is required"))
		return
	}

	if err := h.auction.RevisePrice(r.Context(), id, req.Participant, req.Price); err != nil {
		apierr.WriteError(w, err)
		return
	}
	h.writePlayer(w, r, id)
}

// Release handles POST /api/v1/players/{id}/release
func (h *PlayerHandler) Release(w http.ResponseWriter, r *http.Request) {
	id, err := playerID(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	var req request.ReleaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Participant == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("participant is required"))
		return
	}

	if err := h.auction.Release(r.Context(), id, req.Participant); err != nil {
		apierr.WriteError(w, err)
		return
	}
	h.writePlayer(w, r, id)
}

func (h *PlayerHandler) writePlayer(w http.ResponseWriter, r *http.Request, id model.PlayerID) {
	player, err := h.auction.Player(r.Context(), id)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}

func playerID(r *http.Request) (model.PlayerID, error) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		return 0, apierr.NewInvalidRequestError("player id must be a number")
	}
	return model.PlayerID(id), nil
}

func parseFilter(r *http.Request) (model.PlayerFilter, error) {
	q := r.URL.Query()
	filter := model.PlayerFilter{
		Team:  q.Get("team"),
		Query: q.Get("q"),
	}

	if v := q.Get("role"); v != "" {
		role, ok := model.ParseRole(v)
		if !ok {
			return filter, apierr.NewInvalidRequestError("unknown role " + strconv.Quote(v))
		}
		filter.Role = role
	}

	switch status := model.PlayerStatus(q.Get("status")); status {
	case "":
	case model.StatusFree, model.StatusOwned:
		filter.Status = status
	default:
		return filter, apierr.NewInvalidRequestError("status must be free or owned")
	}
	return filter, nil
}
