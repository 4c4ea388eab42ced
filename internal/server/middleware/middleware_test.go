package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/require"

	foundationerrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
)

func TestChain_LogsRequest(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	h := chimw.RequestID(Chain(logger, foundationerrors.NewHTTPErrorAdapter(logger))(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nav", nil))

	require.Equal(t, http.StatusTeapot, rec.Code)
	out := buf.String()
	require.Contains(t, out, "HTTP request")
	require.Contains(t, out, "path=/api/nav")
	require.Contains(t, out, "status=418")
	require.Contains(t, out, "request_id=")
}

func TestChain_RecoversPanic(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	h := Chain(logger, foundationerrors.NewHTTPErrorAdapter(logger))(
		http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic("boom")
		}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nav", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), `"internal server error"`)
	require.Contains(t, buf.String(), "HTTP handler panic")
	require.Contains(t, buf.String(), "status=500")
}
