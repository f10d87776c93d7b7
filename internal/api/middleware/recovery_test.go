package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/fantasta/internal/api/apierr"
	"github.com/mcoot/fantasta/internal/middleware"
	"github.com/mcoot/fantasta/internal/testutil"
)

func TestRecoveryWritesJSONEnvelope(t *testing.T) {
	h := middleware.RequestID()(Recovery(testutil.NopLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("ledger corrupted")
	})))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/players/1/acquire", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-42")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var body apierr.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, apierr.CodeInternalError, body.Error.Code)
	assert.Equal(t, "Internal server error (request req-42)", body.Error.Message)
}
