package errors

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHTTPErrorAdapter_StatusCodeFor(t *testing.T) {
	a := NewHTTPErrorAdapter(nil)
	require.Equal(t, http.StatusOK, a.StatusCodeFor(nil))
	require.Equal(t, http.StatusBadRequest, a.StatusCodeFor(ValidationError("bad").Build()))
	require.Equal(t, http.StatusNotFound, a.StatusCodeFor(NotFoundError("missing").Build()))
	require.Equal(t, http.StatusServiceUnavailable, a.StatusCodeFor(RuntimeError("not built").Build()))
	require.Equal(t, http.StatusInternalServerError, a.StatusCodeFor(errors.New("x")))
}

func TestHTTPErrorAdapter_WriteErrorResponse(t *testing.T) {
	a := NewHTTPErrorAdapter(slog.New(slog.NewTextHandler(io.Discard, nil)))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/nav/lookup?route=/nope", nil)

	a.WriteErrorResponse(rec, req, NotFoundError("route not found").WithContext("route", "/nope").Build())

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var payload HTTPErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Equal(t, "route not found", payload.Error)
	require.Equal(t, "not_found", payload.Code)
	require.Equal(t, "/nope", payload.Details["route"])
	require.False(t, payload.Retryable)
	require.Empty(t, rec.Header().Get("Retry-After"))
}

func TestHTTPErrorAdapter_RetryAfter(t *testing.T) {
	a := NewHTTPErrorAdapter(slog.New(slog.NewTextHandler(io.Discard, nil)))
	rec := httptest.NewRecorder()
	a.WriteErrorResponse(rec, httptest.NewRequest(http.MethodGet, "/api/nav", nil),
		RuntimeError("navigation not built yet").Retryable().Build())

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Equal(t, "2", rec.Header().Get("Retry-After"))
	require.Contains(t, rec.Body.String(), `"retryable":true`)
}

func TestHTTPErrorAdapter_HidesUnclassifiedCause(t *testing.T) {
	a := NewHTTPErrorAdapter(slog.New(slog.NewTextHandler(io.Discard, nil)))
	resp := a.FormatErrorResponse(errors.New("open /secret/path: permission denied"))
	require.Equal(t, HTTPErrorResponse{Error: "internal error", Code: "internal"}, resp)

	resp = a.FormatErrorResponse(RuntimeError("navigation not built yet").Retryable().Build())
	require.True(t, resp.Retryable)
	require.Nil(t, resp.Details)
}
