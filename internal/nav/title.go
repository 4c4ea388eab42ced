package nav

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// HomeTitle is the derived title of the root route "/".
const HomeTitle = "Home"

// TitleResolver supplies titles for routes that were authored without one.
// ok is false when the resolver has nothing for route.
type TitleResolver interface {
	ResolveTitle(route string) (title string, ok bool)
}

// TitleResolverFunc adapts a function to TitleResolver.
type TitleResolverFunc func(route string) (string, bool)

// ResolveTitle implements TitleResolver.
func (f TitleResolverFunc) ResolveTitle(route string) (string, bool) { return f(route) }

// DeriveTitle turns the last non-empty segment of route into a display title:
// "/smart-pointer/deref-trait" becomes "Deref Trait", "/collections/" becomes
// "Collections" and "/" becomes HomeTitle.
func DeriveTitle(route string, tag language.Tag) string {
	segments := strings.FieldsFunc(route, func(r rune) bool { return r == '/' })
	if len(segments) == 0 {
		return HomeTitle
	}
	last := segments[len(segments)-1]
	last = strings.TrimSuffix(last, ".html")
	last = strings.TrimSuffix(last, ".md")
	words := strings.FieldsFunc(last, func(r rune) bool { return r == '-' || r == '_' })
	if len(words) == 0 {
		return last
	}
	return cases.Title(tag).String(strings.Join(words, " "))
}
