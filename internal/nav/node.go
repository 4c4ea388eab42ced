package nav

import "encoding/json"

// Kind classifies a built node.
type Kind string

const (
	// KindLeaf is a page without children.
	KindLeaf Kind = "leaf"
	// KindGroup is a grouping header that is not itself a page.
	KindGroup Kind = "group"
	// KindPageGroup is a page that also groups child pages.
	KindPageGroup Kind = "page_group"
)

// Node is one entry of a built Tree. Nodes are read-only.
type Node struct {
	title    string
	path     string
	depth    int
	children []*Node
}

// Title is the display title, authored or derived.
func (n *Node) Title() string { return n.title }

// Path is the page route, empty for pure grouping headers.
func (n *Node) Path() string { return n.path }

// Depth is the nesting level; top-level sidebar entries are at 0.
func (n *Node) Depth() int { return n.depth }

// HasPage reports whether the node corresponds to a page.
func (n *Node) HasPage() bool { return n.path != "" }

// Children returns the ordered children. The slice is a copy.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Len returns the number of direct children.
func (n *Node) Len() int { return len(n.children) }

// Kind classifies the node.
func (n *Node) Kind() Kind {
	switch {
	case len(n.children) == 0:
		return KindLeaf
	case n.path == "":
		return KindGroup
	default:
		return KindPageGroup
	}
}

type nodeJSON struct {
	Title    string  `json:"title"`
	Path     string  `json:"path,omitempty"`
	Depth    int     `json:"depth"`
	Kind     Kind    `json:"kind"`
	Children []*Node `json:"children"`
}

// MarshalJSON renders the node and its subtree.
func (n *Node) MarshalJSON() ([]byte, error) {
	children := n.children
	if children == nil {
		children = []*Node{}
	}
	return json.Marshal(nodeJSON{
		Title:    n.title,
		Path:     n.path,
		Depth:    n.depth,
		Kind:     n.Kind(),
		Children: children,
	})
}
