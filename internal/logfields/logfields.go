package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyConfigPath = "config_path"
	KeyRoute      = "route"
	KeyDepth      = "depth"
	KeyNodes      = "nodes"
	KeyPages      = "pages"
	KeyLocation   = "location"
	KeyFile       = "file"
	KeyDurationMS = "duration_ms"
	KeyMethod     = "method"
	KeyPath       = "path"
	KeyStatus     = "status"
	KeyRequestID  = "request_id"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr      { return slog.String(KeyBuildID, id) }
func ConfigPath(p string) slog.Attr    { return slog.String(KeyConfigPath, p) }
func Route(r string) slog.Attr         { return slog.String(KeyRoute, r) }
func Depth(d int) slog.Attr            { return slog.Int(KeyDepth, d) }
func Nodes(n int) slog.Attr            { return slog.Int(KeyNodes, n) }
func Pages(n int) slog.Attr            { return slog.Int(KeyPages, n) }
func Location(l string) slog.Attr      { return slog.String(KeyLocation, l) }
func File(f string) slog.Attr          { return slog.String(KeyFile, f) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func Method(m string) slog.Attr        { return slog.String(KeyMethod, m) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func Status(code int) slog.Attr        { return slog.Int(KeyStatus, code) }
func RequestID(id string) slog.Attr    { return slog.String(KeyRequestID, id) }
func Since(start time.Time) slog.Attr  { return DurationMS(float64(time.Since(start).Microseconds()) / 1000) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
