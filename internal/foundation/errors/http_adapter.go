package errors

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"git.home.luguber.info/inful/docnav/internal/logfields"
)

// retryAfterSeconds is sent with every retryable response.
const retryAfterSeconds = "2"

// HTTPErrorAdapter renders errors as JSON bodies for the preview server.
type HTTPErrorAdapter struct {
	logger *slog.Logger
}

// NewHTTPErrorAdapter creates an adapter. A nil logger uses slog.Default().
func NewHTTPErrorAdapter(logger *slog.Logger) *HTTPErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPErrorAdapter{logger: logger}
}

type HTTPErrorResponse struct {
	Error     string         `json:"error"`
	Code      string         `json:"code,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
	Retryable bool           `json:"retryable,omitempty"`
}

// StatusCodeFor is 200 for nil, the category's status for classified errors
// and 500 for anything else.
func (a *HTTPErrorAdapter) StatusCodeFor(err error) int {
	status, _ := render(err)
	return status
}

// FormatErrorResponse builds the body. Unclassified errors are reported as a
// bare internal error so causes such as file paths never leak.
func (a *HTTPErrorAdapter) FormatErrorResponse(err error) HTTPErrorResponse {
	_, body := render(err)
	return body
}

// WriteErrorResponse writes the JSON body and logs at the error's severity.
func (a *HTTPErrorAdapter) WriteErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	status, body := render(err)
	if err == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if body.Retryable {
		w.Header().Set("Retry-After", retryAfterSeconds)
	}
	w.WriteHeader(status)
	// The body holds strings and the JSON-safe context map only.
	_ = json.NewEncoder(w).Encode(body)

	level := slog.LevelError
	if c, ok := AsClassified(err); ok {
		level = slogLevel(c.Severity())
	}
	a.logger.Log(r.Context(), level, err.Error(), logfields.Path(r.URL.Path), logfields.Status(status))
}

func render(err error) (int, HTTPErrorResponse) {
	if err == nil {
		return http.StatusOK, HTTPErrorResponse{}
	}
	c, ok := AsClassified(err)
	if !ok {
		return http.StatusInternalServerError, HTTPErrorResponse{Error: "internal error", Code: string(CategoryInternal)}
	}
	body := HTTPErrorResponse{
		Error:     c.Message(),
		Code:      string(c.Category()),
		Retryable: c.CanRetry(),
	}
	if ctx := c.Context(); len(ctx) > 0 {
		body.Details = ctx
	}
	return c.Category().HTTPStatus(), body
}
