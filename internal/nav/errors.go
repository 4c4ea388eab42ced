package nav

import (
	foundationerrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
)

// Sentinels are matched with errors.Is; returned errors add route and
// location context to copies of them.
var (
	// ErrDuplicateRoute is returned when two nodes carry the same path.
	ErrDuplicateRoute = foundationerrors.ValidationError("duplicate route").Build()
	// ErrEmptyGroup is returned for a header with an empty children list and no path.
	ErrEmptyGroup = foundationerrors.ValidationError("group has no children").Build()
	// ErrMalformedNode is returned for entries that cannot describe a node.
	ErrMalformedNode = foundationerrors.ValidationError("malformed node").Build()
	// ErrInvalidRoute is returned for routes that are empty or not rooted at "/".
	ErrInvalidRoute = foundationerrors.ValidationError("invalid route").Build()
	// ErrNotFound is returned by lookups that match no node. It is recoverable:
	// renderers fall back to "no active section".
	ErrNotFound = foundationerrors.NotFoundError("route not found").Build()
)

func notFound(route string) error {
	return ErrNotFound.WithContext("route", route)
}
