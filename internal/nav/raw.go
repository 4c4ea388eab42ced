package nav

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// RawNode is one authored sidebar entry: a LeafRef, a GroupSpec, or a
// Malformed placeholder recorded while decoding so Build can report it.
type RawNode interface {
	isRawNode()
}

// LeafRef is a bare route string naming a single page.
type LeafRef string

// GroupSpec is a mapping entry. Children is nil when the key was not authored
// and non-nil (possibly empty) when it was.
type GroupSpec struct {
	Title    string
	Path     string
	Children []RawNode

	// Problems lists decode issues (unknown keys, wrongly typed values).
	Problems []string
	// Line is the 1-based source line, 0 when built in code.
	Line int
}

// Malformed stands in for an entry that is neither a string nor a mapping.
type Malformed struct {
	Kind string
	Line int
}

func (LeafRef) isRawNode()   {}
func (GroupSpec) isRawNode() {}
func (Malformed) isRawNode() {}

// Leaf returns a LeafRef for route.
func Leaf(route string) RawNode { return LeafRef(route) }

// Group returns a pure grouping header.
func Group(title string, children ...RawNode) RawNode {
	return GroupSpec{Title: title, Children: append([]RawNode{}, children...)}
}

// Page returns a mapping entry that is itself a page, optionally with children.
func Page(title, route string, children ...RawNode) RawNode {
	g := GroupSpec{Title: title, Path: route}
	if len(children) > 0 {
		g.Children = append([]RawNode{}, children...)
	}
	return g
}

// RawList is the authored sidebar. It decodes from a YAML sequence whose items
// are route strings or title/path/children mappings.
type RawList []RawNode

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *RawList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.AliasNode {
		value = value.Alias
	}
	if value.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: sidebar must be a sequence", value.Line)
	}
	*l = decodeSequence(value)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (g GroupSpec) MarshalYAML() (any, error) {
	type out struct {
		Title    string    `yaml:"title,omitempty"`
		Path     string    `yaml:"path,omitempty"`
		Children []RawNode `yaml:"children,omitempty"`
	}
	return out{Title: g.Title, Path: g.Path, Children: g.Children}, nil
}

func decodeSequence(seq *yaml.Node) []RawNode {
	out := make([]RawNode, 0, len(seq.Content))
	for _, item := range seq.Content {
		out = append(out, decodeNode(item))
	}
	return out
}

func decodeNode(n *yaml.Node) RawNode {
	if n.Kind == yaml.AliasNode && n.Alias != nil {
		return decodeNode(n.Alias)
	}
	switch n.Kind {
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!str":
			return LeafRef(n.Value)
		case "!!null":
			return Malformed{Kind: "null", Line: n.Line}
		default:
			return Malformed{Kind: "non-string scalar " + n.ShortTag(), Line: n.Line}
		}
	case yaml.MappingNode:
		return decodeMapping(n)
	case yaml.SequenceNode:
		return Malformed{Kind: "sequence", Line: n.Line}
	default:
		return Malformed{Kind: "unsupported node", Line: n.Line}
	}
}

func decodeMapping(n *yaml.Node) GroupSpec {
	g := GroupSpec{Line: n.Line}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		switch key.Value {
		case "title", "path":
			if val.Kind != yaml.ScalarNode || val.ShortTag() == "!!null" {
				g.Problems = append(g.Problems, fmt.Sprintf("%s must be a string", key.Value))
				continue
			}
			if key.Value == "title" {
				g.Title = val.Value
			} else {
				g.Path = val.Value
			}
		case "children":
			switch {
			case val.Kind == yaml.SequenceNode:
				g.Children = decodeSequence(val)
			case val.Kind == yaml.ScalarNode && val.ShortTag() == "!!null":
				// children: with no value is the same as omitting the key
			default:
				g.Problems = append(g.Problems, "children must be a sequence")
			}
		default:
			g.Problems = append(g.Problems, fmt.Sprintf("unknown key %q", key.Value))
		}
	}
	return g
}
