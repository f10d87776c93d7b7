package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/fantasta/internal/api/apierr"
	"github.com/mcoot/fantasta/internal/api/response"
	"github.com/mcoot/fantasta/internal/middleware"
)

// Recovery turns handler panics into the JSON internal error envelope. The
// message carries the request id so a report can be matched to the log line.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, apiPanicHandler)
}

func apiPanicHandler(w http.ResponseWriter, r *http.Request, _ any) {
	msg := "Internal server error"
	if id := middleware.GetRequestID(r.Context()); id != "" {
		msg += " (request " + id + ")"
	}
	response.JSON(w, http.StatusInternalServerError, apierr.ErrorResponse{
		Error: apierr.APIError{Code: apierr.CodeInternalError, Message: msg},
	})
}
