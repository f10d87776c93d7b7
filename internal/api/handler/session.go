package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mcoot/fantasta/internal/api/apierr"
	"github.com/mcoot/fantasta/internal/api/request"
	"github.com/mcoot/fantasta/internal/api/response"
	"github.com/mcoot/fantasta/internal/services/auction"
)

// SessionHandler handles session-wide endpoints: setup, reset, undo and
// the workbook round trip
type SessionHandler struct {
	auction       *auction.Service
	defaultBudget int
}

// NewSessionHandler creates a new session handler. defaultBudget applies
// when a setup request omits the budget.
func NewSessionHandler(auctionService *auction.Service, defaultBudget int) *SessionHandler {
	return &SessionHandler{
		auction:       auctionService,
		defaultBudget: defaultBudget,
	}
}

// Get handles GET /api/v1/session
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.SessionFromModel(h.auction.Session(r.Context())))
}

// Setup handles POST /api/v1/session/setup
func (h *SessionHandler) Setup(w http.ResponseWriter, r *http.Request) {
	var req request.SetupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	budget := req.InitialBudget
	if budget == 0 {
		budget = h.defaultBudget
	}

	session, created, err := h.auction.Setup(r.Context(), req.Participants, budget)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	response.JSON(w, status, response.SetupResponse{
		Created: created,
		Session: response.SessionFromModel(session),
	})
}

// Reset handles DELETE /api/v1/session
func (h *SessionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.auction.Reset(r.Context())
	response.NoContent(w)
}

// Undo handles POST /api/v1/session/undo
func (h *SessionHandler) Undo(w http.ResponseWriter, r *http.Request) {
	if err := h.auction.Undo(r.Context()); err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.SessionFromModel(h.auction.Session(r.Context())))
}

// LoadCatalog handles POST /api/v1/catalog
func (h *SessionHandler) LoadCatalog(w http.ResponseWriter, r *http.Request) {
	data, name, err := readUpload(w, r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	summary, err := h.auction.LoadCatalog(r.Context(), data, name)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.CatalogLoadedFromSummary(summary))
}

// Import handles POST /api/v1/import
func (h *SessionHandler) Import(w http.ResponseWriter, r *http.Request) {
	data, _, err := readUpload(w, r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	summary, err := h.auction.Import(r.Context(), data)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.ImportedFromSummary(summary))
}

// ExportXLSX handles GET /api/v1/export.xlsx
func (h *SessionHandler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	data, filename, err := h.auction.ExportWorkbook(r.Context())
	if err != nil {
		apierr.WriteError(w, apierr.NewInternalError())
		return
	}
	response.Attachment(w, response.XLSXContentType, filename, data)
}

// ExportJSON handles GET /api/v1/export.json
func (h *SessionHandler) ExportJSON(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.auction.ExportJSON(r.Context()))
}

// Results handles GET /api/v1/results
func (h *SessionHandler) Results(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.auction.Results(r.Context()))
}
