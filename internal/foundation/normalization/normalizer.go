// Package normalization folds free-form configuration strings onto typed enums.
package normalization

import (
	"fmt"
	"sort"
	"strings"
)

// EnumNormalizer maps case-insensitive, whitespace-tolerant strings onto a typed enum.
type EnumNormalizer[T comparable] struct {
	name         string
	values       map[string]T
	defaultValue T
	validKeys    []string
}

// NewEnumNormalizer creates a normalizer. name is used in error messages.
func NewEnumNormalizer[T comparable](name string, values map[string]T, defaultValue T) *EnumNormalizer[T] {
	normalized := make(map[string]T, len(values))
	keys := make([]string, 0, len(values))
	for k, v := range values {
		nk := clean(k)
		normalized[nk] = v
		keys = append(keys, nk)
	}
	sort.Strings(keys)
	return &EnumNormalizer[T]{name: name, values: normalized, defaultValue: defaultValue, validKeys: keys}
}

// Normalize converts raw to an enum value, returning the default on unknown input.
func (e *EnumNormalizer[T]) Normalize(raw string) T {
	if v, ok := e.values[clean(raw)]; ok {
		return v
	}
	return e.defaultValue
}

// NormalizeWithValidation converts raw to an enum value. Empty input yields the
// default; unknown input is an error.
func (e *EnumNormalizer[T]) NormalizeWithValidation(raw string) (T, error) {
	c := clean(raw)
	if c == "" {
		return e.defaultValue, nil
	}
	if v, ok := e.values[c]; ok {
		return v, nil
	}
	var zero T
	return zero, fmt.Errorf("invalid %s %q, valid options: %v", e.name, raw, e.validKeys)
}

// Result is the outcome of NormalizeWithWarning.
type Result[T comparable] struct {
	Value   T
	Changed bool
	Warning string
}

// NormalizeWithWarning normalizes raw and reports whether the canonical form
// differs from what was authored, so loaders can surface a warning.
func (e *EnumNormalizer[T]) NormalizeWithWarning(field, raw string) (Result[T], error) {
	v, err := e.NormalizeWithValidation(raw)
	if err != nil {
		return Result[T]{}, err
	}
	c := clean(raw)
	res := Result[T]{Value: v}
	if c != "" && c != raw {
		res.Changed = true
		res.Warning = fmt.Sprintf("normalized %s from '%s' to '%s'", field, raw, c)
	}
	return res, nil
}

// ValidValues returns all valid keys, sorted.
func (e *EnumNormalizer[T]) ValidValues() []string {
	out := make([]string, len(e.validKeys))
	copy(out, e.validKeys)
	return out
}

func clean(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
