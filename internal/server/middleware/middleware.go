// Package middleware provides request logging and panic recovery for the preview server.
package middleware

import (
	"log/slog"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	foundationerrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
)

// Chain wraps next in request logging, then panic recovery. Run chi's
// RequestID middleware before it so log lines carry the request id.
func Chain(logger *slog.Logger, adapter *foundationerrors.HTTPErrorAdapter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return logRequests(logger, recoverPanics(logger, adapter, next))
	}
}

func logRequests(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			// Nothing written or an implicit 200 from Write.
			status = http.StatusOK
		}
		logger.Info("HTTP request",
			logfields.Method(r.Method),
			logfields.Path(r.URL.Path),
			logfields.Status(status),
			logfields.RequestID(chimw.GetReqID(r.Context())),
			logfields.Since(start))
	})
}

func recoverPanics(logger *slog.Logger, adapter *foundationerrors.HTTPErrorAdapter, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			logger.Error("HTTP handler panic", slog.Any("panic", rec), logfields.Method(r.Method), logfields.Path(r.URL.Path))
			adapter.WriteErrorResponse(w, r, foundationerrors.InternalError("internal server error").
				WithContext("method", r.Method).
				WithContext("path", r.URL.Path).
				Build())
		}()
		next.ServeHTTP(w, r)
	})
}
