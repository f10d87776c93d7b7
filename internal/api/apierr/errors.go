package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/fantasta/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodePlayerNotFound      = "PLAYER_NOT_FOUND"
	CodeParticipantNotFound = "PARTICIPANT_NOT_FOUND"
	CodePlayerOwned         = "PLAYER_OWNED"
	CodePlayerNotOwned      = "PLAYER_NOT_OWNED"
	CodeNotOwner            = "NOT_OWNER"
	CodeInvalidPrice        = "INVALID_PRICE"
	CodeInsufficientBudget  = "INSUFFICIENT_BUDGET"
	CodeRoleCeiling         = "ROLE_CEILING"
	CodeUnknownRole         = "UNKNOWN_ROLE"
	CodeInvalidSetup        = "INVALID_SETUP"
	CodeNoBackup            = "NO_BACKUP"
	CodeParseError          = "PARSE_ERROR"
	CodeImportInvalid       = "IMPORT_INVALID"
	CodeNotFound            = "NOT_FOUND"
	CodePayloadTooLarge     = "PAYLOAD_TOO_LARGE"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// Status returns the HTTP status an error maps to
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}
	var pe *model.ParseError
	if errors.As(err, &pe) {
		return &httpError{http.StatusBadRequest, APIError{CodeParseError, pe.Error()}}
	}
	var ve *model.ImportValidationError
	if errors.As(err, &ve) {
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeImportInvalid, ve.Error()}}
	}

	// Rejections carry an advisory message for the operator
	message := err.Error()
	var re *model.RejectedError
	if errors.As(err, &re) {
		message = re.Message
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, message}}
	case errors.Is(err, model.ErrParticipantNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeParticipantNotFound, message}}
	case errors.Is(err, model.ErrPlayerOwned):
		return &httpError{http.StatusConflict, APIError{CodePlayerOwned, message}}
	case errors.Is(err, model.ErrPlayerNotOwned):
		return &httpError{http.StatusConflict, APIError{CodePlayerNotOwned, message}}
	case errors.Is(err, model.ErrNotOwner):
		return &httpError{http.StatusConflict, APIError{CodeNotOwner, message}}
	case errors.Is(err, model.ErrInvalidPrice):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeInvalidPrice, message}}
	case errors.Is(err, model.ErrInsufficientBudget):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeInsufficientBudget, message}}
	case errors.Is(err, model.ErrRoleCeiling):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeRoleCeiling, message}}
	case errors.Is(err, model.ErrUnknownRole):
		return &httpError{http.StatusBadRequest, APIError{CodeUnknownRole, message}}
	case errors.Is(err, model.ErrNoBackup):
		return &httpError{http.StatusConflict, APIError{CodeNoBackup, "Nothing to undo"}}
	case errors.Is(err, model.ErrTooFewParticipants),
		errors.Is(err, model.ErrDuplicateParticipant),
		errors.Is(err, model.ErrEmptyParticipantName),
		errors.Is(err, model.ErrBudgetTooLow):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidSetup, message}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewNotFoundError creates a route not found error
func NewNotFoundError() error {
	return &httpError{http.StatusNotFound, APIError{CodeNotFound, "Not found"}}
}

// NewPayloadTooLargeError creates an upload size error
func NewPayloadTooLargeError() error {
	return &httpError{http.StatusRequestEntityTooLarge, APIError{CodePayloadTooLarge, "Upload too large"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
