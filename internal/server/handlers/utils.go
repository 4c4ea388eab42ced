// Package handlers implements the preview server's navigation endpoints.
package handlers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"

	"git.home.luguber.info/inful/docnav/internal/logfields"
)

// writeJSON encodes v fully before writing, so an encode failure leaves the
// response untouched for the caller's error adapter. ?pretty=1 (or true)
// indents the output.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	if p := r.URL.Query().Get("pretty"); p == "1" || p == "true" {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Warn("Client went away mid-response", logfields.Path(r.URL.Path), logfields.Error(err))
		return nil
	}
	return nil
}
