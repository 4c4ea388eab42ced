package errors

import (
	"maps"
	"net/http"
)

// ErrorCategory is the broad class of an error.
type ErrorCategory string

const (
	CategoryConfig     ErrorCategory = "config"     // unreadable or invalid docnav.yaml
	CategoryValidation ErrorCategory = "validation" // authored sidebar rejected by Build
	CategoryNotFound   ErrorCategory = "not_found"  // lookup miss
	CategoryContent    ErrorCategory = "content"    // sidebar and content directory disagree
	CategoryFileSystem ErrorCategory = "filesystem" // reading config or pages
	CategoryRuntime    ErrorCategory = "runtime"    // watcher, listener, server lifecycle
	CategoryInternal   ErrorCategory = "internal"   // bugs
)

// ErrorSeverity indicates the impact of an error.
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"
	SeverityError   ErrorSeverity = "error"
	SeverityWarning ErrorSeverity = "warning"
)

// RetryStrategy says whether repeating the operation can succeed.
type RetryStrategy string

const (
	RetryNever      RetryStrategy = "never"
	RetryBackoff    RetryStrategy = "backoff"
	RetryUserAction RetryStrategy = "user" // fix the input, then retry
)

type categoryInfo struct {
	severity ErrorSeverity
	retry    RetryStrategy
	exitCode int
	status   int
}

var categoryTable = map[ErrorCategory]categoryInfo{
	CategoryValidation: {SeverityFatal, RetryUserAction, 2, http.StatusBadRequest},
	CategoryNotFound:   {SeverityWarning, RetryNever, 3, http.StatusNotFound},
	CategoryContent:    {SeverityError, RetryUserAction, 4, http.StatusUnprocessableEntity},
	CategoryConfig:     {SeverityFatal, RetryUserAction, 7, http.StatusBadRequest},
	CategoryInternal:   {SeverityFatal, RetryNever, 10, http.StatusInternalServerError},
	CategoryFileSystem: {SeverityError, RetryBackoff, 11, http.StatusInternalServerError},
	CategoryRuntime:    {SeverityFatal, RetryNever, 12, http.StatusServiceUnavailable},
}

func (c ErrorCategory) info() categoryInfo {
	if i, ok := categoryTable[c]; ok {
		return i
	}
	return categoryInfo{SeverityError, RetryNever, 1, http.StatusInternalServerError}
}

// ExitCode is the process exit status for errors of this category.
// Unknown categories exit with 1.
func (c ErrorCategory) ExitCode() int { return c.info().exitCode }

// HTTPStatus is the response status for errors of this category.
func (c ErrorCategory) HTTPStatus() int { return c.info().status }

// ErrorContext is structured detail attached to an error.
type ErrorContext map[string]any

// Get retrieves a context value.
func (c ErrorContext) Get(key string) (any, bool) {
	v, ok := c[key]
	return v, ok
}

// GetString retrieves a string context value.
func (c ErrorContext) GetString(key string) (string, bool) {
	s, ok := c[key].(string)
	return s, ok
}

// Merge returns a new context holding both, other taking precedence.
func (c ErrorContext) Merge(other ErrorContext) ErrorContext {
	result := make(ErrorContext, len(c)+len(other))
	maps.Copy(result, c)
	maps.Copy(result, other)
	return result
}
