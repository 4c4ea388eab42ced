package errors

// ErrorBuilder assembles a ClassifiedError.
type ErrorBuilder struct {
	err ClassifiedError
}

// NewError starts an error with the category's default severity and retry strategy.
func NewError(category ErrorCategory, message string) *ErrorBuilder {
	info := category.info()
	return &ErrorBuilder{err: ClassifiedError{
		category: category,
		severity: info.severity,
		retry:    info.retry,
		message:  message,
		context:  ErrorContext{},
	}}
}

// WrapError starts an error caused by err.
func WrapError(err error, category ErrorCategory, message string) *ErrorBuilder {
	b := NewError(category, message)
	b.err.cause = err
	return b
}

// WithSeverity overrides the category's default severity.
func (b *ErrorBuilder) WithSeverity(severity ErrorSeverity) *ErrorBuilder {
	b.err.severity = severity
	return b
}

// WithContext attaches a context value.
func (b *ErrorBuilder) WithContext(key string, value any) *ErrorBuilder {
	b.err.context[key] = value
	return b
}

// Fatal sets SeverityFatal.
func (b *ErrorBuilder) Fatal() *ErrorBuilder { return b.WithSeverity(SeverityFatal) }

// Retryable marks a transient failure, e.g. a tree that has not been built yet.
func (b *ErrorBuilder) Retryable() *ErrorBuilder {
	b.err.retry = RetryBackoff
	return b
}

// Build returns the error. The builder may be reused; built errors do not share context.
func (b *ErrorBuilder) Build() *ClassifiedError {
	e := b.err
	e.context = b.err.context.Merge(nil)
	return &e
}

// ConfigError starts a config error.
func ConfigError(message string) *ErrorBuilder { return NewError(CategoryConfig, message) }

// ValidationError starts a validation error.
func ValidationError(message string) *ErrorBuilder { return NewError(CategoryValidation, message) }

// NotFoundError starts a not_found error.
func NotFoundError(message string) *ErrorBuilder { return NewError(CategoryNotFound, message) }

// ContentError starts a content error.
func ContentError(message string) *ErrorBuilder { return NewError(CategoryContent, message) }

// FileSystemError starts a filesystem error.
func FileSystemError(message string) *ErrorBuilder { return NewError(CategoryFileSystem, message) }

// RuntimeError starts a runtime error.
func RuntimeError(message string) *ErrorBuilder { return NewError(CategoryRuntime, message) }

// InternalError starts an internal error.
func InternalError(message string) *ErrorBuilder { return NewError(CategoryInternal, message) }
