// Package nav builds and queries the navigation tree behind a documentation
// sidebar.
//
// Authored input is a list of RawNode values: bare LeafRef routes or GroupSpec
// mappings carrying a title, an optional page route and ordered children.
// Build validates that input in one depth-first pass and returns an immutable
// Tree. The tree answers the queries a renderer needs: Lookup for the active
// page, Ancestors and Breadcrumbs for highlighting, Flatten and Neighbors for
// linear previous/next navigation.
//
// A Tree is never mutated after Build. Rebuild it wholesale when the authored
// sidebar changes and share the pointer freely between goroutines.
package nav
