package nav

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	foundationerrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/foundation/normalization"
	"git.home.luguber.info/inful/docnav/internal/util/sets"
)

// GroupPagePolicy decides whether a page group's own route is part of Flatten.
type GroupPagePolicy string

const (
	// GroupPagesInclude emits a page group's route ahead of its children.
	GroupPagesInclude GroupPagePolicy = "include"
	// GroupPagesExclude emits only the children of a page group.
	GroupPagesExclude GroupPagePolicy = "exclude"
)

var groupPagePolicyNormalizer = normalization.NewEnumNormalizer("group page policy", map[string]GroupPagePolicy{
	"include": GroupPagesInclude,
	"exclude": GroupPagesExclude,
}, GroupPagesInclude)

// ParseGroupPagePolicy folds raw onto a policy. Empty input yields GroupPagesInclude.
func ParseGroupPagePolicy(raw string) (GroupPagePolicy, error) {
	return groupPagePolicyNormalizer.NormalizeWithValidation(raw)
}

// GroupPagePolicies lists the accepted policy names.
func GroupPagePolicies() []string { return groupPagePolicyNormalizer.ValidValues() }

type buildOptions struct {
	policy   GroupPagePolicy
	resolver TitleResolver
	language language.Tag
	rootName string
}

// Option configures Build.
type Option func(*buildOptions)

// WithGroupPagePolicy sets how page groups appear in Flatten.
func WithGroupPagePolicy(p GroupPagePolicy) Option {
	return func(o *buildOptions) { o.policy = p }
}

// WithTitleResolver consults r for nodes authored without a title before
// deriving one from the route.
func WithTitleResolver(r TitleResolver) Option {
	return func(o *buildOptions) { o.resolver = r }
}

// WithLanguage sets the language used to title-case derived titles.
func WithLanguage(tag language.Tag) Option {
	return func(o *buildOptions) { o.language = tag }
}

// WithRootName sets the prefix used in error locations (default "sidebar").
func WithRootName(name string) Option {
	return func(o *buildOptions) { o.rootName = name }
}

// Build validates raw and returns the normalized tree. It fails on the first
// problem found and never returns a partial tree.
func Build(raw []RawNode, opts ...Option) (*Tree, error) {
	o := buildOptions{policy: GroupPagesInclude, language: language.Und, rootName: "sidebar"}
	for _, opt := range opts {
		opt(&o)
	}
	if o.policy != GroupPagesInclude && o.policy != GroupPagesExclude {
		return nil, foundationerrors.ValidationError("unknown group page policy").
			WithContext("policy", string(o.policy)).
			Build()
	}

	b := &builder{opts: o, seen: sets.New[string](), index: make(map[string]*Node)}
	roots := make([]*Node, 0, len(raw))
	for i, r := range raw {
		n, err := b.node(r, fmt.Sprintf("%s[%d]", o.rootName, i), 0)
		if err != nil {
			return nil, err
		}
		roots = append(roots, n)
	}
	return newTree(roots, b.index, o.policy), nil
}

// MustBuild is like Build but panics on error. It is meant for sidebars that
// are compiled into a program.
func MustBuild(raw []RawNode, opts ...Option) *Tree {
	t, err := Build(raw, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

type builder struct {
	opts  buildOptions
	seen  sets.Set[string]
	index map[string]*Node
}

func (b *builder) node(r RawNode, loc string, depth int) (*Node, error) {
	switch v := r.(type) {
	case LeafRef:
		return b.leaf(string(v), loc, depth)
	case GroupSpec:
		return b.group(v, loc, depth)
	case *GroupSpec:
		if v == nil {
			return nil, malformed(loc, "nil group")
		}
		return b.group(*v, loc, depth)
	case Malformed:
		return nil, malformed(loc, v.Kind).WithContext("line", v.Line)
	case nil:
		return nil, malformed(loc, "nil entry")
	default:
		return nil, malformed(loc, fmt.Sprintf("%T", r))
	}
}

func (b *builder) leaf(route, loc string, depth int) (*Node, error) {
	if err := b.claim(route, loc); err != nil {
		return nil, err
	}
	n := &Node{title: b.title("", route), path: route, depth: depth}
	b.index[route] = n
	return n, nil
}

func (b *builder) group(g GroupSpec, loc string, depth int) (*Node, error) {
	if len(g.Problems) > 0 {
		return nil, malformed(loc, strings.Join(g.Problems, "; ")).WithContext("line", g.Line)
	}
	if g.Title == "" && g.Path == "" && g.Children == nil {
		return nil, malformed(loc, "mapping needs title, path or children").WithContext("line", g.Line)
	}
	if g.Path == "" && len(g.Children) == 0 {
		err := ErrEmptyGroup.WithContext("location", loc)
		if g.Title != "" {
			err = err.WithContext("title", g.Title)
		}
		return nil, err
	}

	n := &Node{path: g.Path, depth: depth}
	if g.Path != "" {
		if err := b.claim(g.Path, loc); err != nil {
			return nil, err
		}
		b.index[g.Path] = n
	}
	n.title = b.title(g.Title, g.Path)

	if len(g.Children) > 0 {
		n.children = make([]*Node, 0, len(g.Children))
		for i, c := range g.Children {
			child, err := b.node(c, fmt.Sprintf("%s.children[%d]", loc, i), depth+1)
			if err != nil {
				return nil, err
			}
			n.children = append(n.children, child)
		}
	}
	return n, nil
}

// claim registers route as seen, failing on invalid or duplicate routes.
func (b *builder) claim(route, loc string) error {
	if route == "" || !strings.HasPrefix(route, "/") {
		return ErrInvalidRoute.WithContext("route", route).WithContext("location", loc)
	}
	if b.seen.Has(route) {
		return ErrDuplicateRoute.WithContext("route", route).WithContext("location", loc)
	}
	b.seen.Add(route)
	return nil
}

func (b *builder) title(authored, route string) string {
	if t := strings.TrimSpace(authored); t != "" {
		return t
	}
	if route == "" {
		return ""
	}
	if b.opts.resolver != nil {
		if t, ok := b.opts.resolver.ResolveTitle(route); ok && strings.TrimSpace(t) != "" {
			return strings.TrimSpace(t)
		}
	}
	return DeriveTitle(route, b.opts.language)
}

func malformed(loc, reason string) *foundationerrors.ClassifiedError {
	return ErrMalformedNode.WithContext("location", loc).WithContext("reason", reason)
}
