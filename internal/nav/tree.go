package nav

import (
	"encoding/json"
	"iter"
	"slices"
)

// Entry is one page of the linear reading order produced by Flatten.
type Entry struct {
	Path  string `json:"path"`
	Depth int    `json:"depth"`
}

// Tree is a validated, immutable navigation tree.
type Tree struct {
	roots   []*Node
	index   map[string]*Node
	parents map[*Node]*Node
	policy  GroupPagePolicy
}

func newTree(roots []*Node, index map[string]*Node, policy GroupPagePolicy) *Tree {
	t := &Tree{roots: roots, index: index, parents: make(map[*Node]*Node), policy: policy}
	for _, r := range roots {
		t.linkParents(r)
	}
	return t
}

func (t *Tree) linkParents(n *Node) {
	for _, c := range n.children {
		t.parents[c] = n
		t.linkParents(c)
	}
}

// Roots returns the top-level entries in authored order. The slice is a copy.
func (t *Tree) Roots() []*Node {
	out := make([]*Node, len(t.roots))
	copy(out, t.roots)
	return out
}

// Policy returns the group page policy the tree was built with.
func (t *Tree) Policy() GroupPagePolicy { return t.policy }

// Len returns the number of routed nodes.
func (t *Tree) Len() int { return len(t.index) }

// Lookup returns the node whose path equals route exactly. A miss returns an
// error matching ErrNotFound.
func (t *Tree) Lookup(route string) (*Node, error) {
	if n, ok := t.index[route]; ok {
		return n, nil
	}
	return nil, notFound(route)
}

// Has reports whether a node carries route.
func (t *Tree) Has(route string) bool {
	_, ok := t.index[route]
	return ok
}

// Ancestors returns the chain of nodes above route, outermost first.
func (t *Tree) Ancestors(route string) ([]*Node, error) {
	n, err := t.Lookup(route)
	if err != nil {
		return nil, err
	}
	var chain []*Node
	for p := t.parents[n]; p != nil; p = t.parents[p] {
		chain = append(chain, p)
	}
	slices.Reverse(chain)
	return chain, nil
}

// Breadcrumbs returns the titles from the outermost ancestor down to route itself.
func (t *Tree) Breadcrumbs(route string) ([]string, error) {
	chain, err := t.Ancestors(route)
	if err != nil {
		return nil, err
	}
	crumbs := make([]string, 0, len(chain)+1)
	for _, n := range chain {
		crumbs = append(crumbs, n.title)
	}
	return append(crumbs, t.index[route].title), nil
}

// ActiveSection returns the top-level entry containing route, or nil when
// route is not in the tree.
func (t *Tree) ActiveSection(route string) *Node {
	n, ok := t.index[route]
	if !ok {
		return nil
	}
	for p := t.parents[n]; p != nil; p = t.parents[p] {
		n = p
	}
	return n
}

// Walk visits every node in document order, parents before children. Returning
// false from fn stops the walk.
func (t *Tree) Walk(fn func(*Node) bool) {
	for n := range t.All() {
		if !fn(n) {
			return
		}
	}
}

// All yields every node in document order, parents before children.
func (t *Tree) All() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		var visit func(n *Node) bool
		visit = func(n *Node) bool {
			if !yield(n) {
				return false
			}
			for _, c := range n.children {
				if !visit(c) {
					return false
				}
			}
			return true
		}
		for _, r := range t.roots {
			if !visit(r) {
				return
			}
		}
	}
}

// Flatten yields every page in reading order with its depth. Leaves are
// always included; page groups follow the tree's GroupPagePolicy. The
// sequence is lazy and can be ranged over any number of times.
func (t *Tree) Flatten() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for n := range t.All() {
			if n.path == "" {
				continue
			}
			if len(n.children) > 0 && t.policy == GroupPagesExclude {
				continue
			}
			if !yield(Entry{Path: n.path, Depth: n.depth}) {
				return
			}
		}
	}
}

// Entries collects Flatten into a slice.
func (t *Tree) Entries() []Entry {
	return slices.Collect(t.Flatten())
}

// Neighbors returns the pages before and after route in reading order. prev
// or next is nil at either end. Routes absent from Flatten return ErrNotFound.
func (t *Tree) Neighbors(route string) (prev, next *Entry, err error) {
	entries := t.Entries()
	i := slices.IndexFunc(entries, func(e Entry) bool { return e.Path == route })
	if i < 0 {
		return nil, nil, notFound(route)
	}
	if i > 0 {
		p := entries[i-1]
		prev = &p
	}
	if i < len(entries)-1 {
		n := entries[i+1]
		next = &n
	}
	return prev, next, nil
}

// Stats summarizes the shape of a tree.
type Stats struct {
	Nodes      int `json:"nodes"`
	Leaves     int `json:"leaves"`
	Groups     int `json:"groups"`
	PageGroups int `json:"page_groups"`
	Pages      int `json:"pages"`
	MaxDepth   int `json:"max_depth"`
}

// Stats counts nodes by kind.
func (t *Tree) Stats() Stats {
	var s Stats
	for n := range t.All() {
		s.Nodes++
		switch n.Kind() {
		case KindLeaf:
			s.Leaves++
		case KindGroup:
			s.Groups++
		case KindPageGroup:
			s.PageGroups++
		}
		if n.depth > s.MaxDepth {
			s.MaxDepth = n.depth
		}
	}
	s.Pages = len(t.index)
	return s
}

// MarshalJSON renders the top-level entries.
func (t *Tree) MarshalJSON() ([]byte, error) {
	roots := t.roots
	if roots == nil {
		roots = []*Node{}
	}
	return json.Marshal(roots)
}

// Equal reports whether a and b have the same shape, titles, paths and policy.
func Equal(a, b *Tree) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.policy != b.policy {
		return false
	}
	return slices.EqualFunc(a.roots, b.roots, nodesEqual)
}

func nodesEqual(a, b *Node) bool {
	return a.title == b.title &&
		a.path == b.path &&
		a.depth == b.depth &&
		slices.EqualFunc(a.children, b.children, nodesEqual)
}
