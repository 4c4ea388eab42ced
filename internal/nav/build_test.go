package nav

import (
	"errors"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	foundationerrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
)

func TestBuild_PreservesEveryAuthoredRoute(t *testing.T) {
	raw := rustNoteSidebar()
	tree, err := Build(raw)
	require.NoError(t, err)

	var built []string
	for e := range tree.Flatten() {
		built = append(built, e.Path)
	}
	if diff := cmp.Diff(authoredRoutes(raw), built); diff != "" {
		t.Fatalf("flatten order differs from authored order (-want +got):\n%s", diff)
	}
	require.Equal(t, len(built), tree.Len())
}

func TestBuild_HeaderChildrenAreAtDepthOne(t *testing.T) {
	tree, err := Build([]RawNode{
		Group("项目管理", Leaf("/cargo"), Leaf("/package-and-crate"), Leaf("/module")),
	})
	require.NoError(t, err)

	want := []Entry{
		{Path: "/cargo", Depth: 1},
		{Path: "/package-and-crate", Depth: 1},
		{Path: "/module", Depth: 1},
	}
	require.Equal(t, want, tree.Entries())
}

func TestBuild_DerivesMissingTitles(t *testing.T) {
	tree, err := Build(rustNoteSidebar())
	require.NoError(t, err)

	tests := map[string]string{
		"/":                          "Rust Note",
		"/cargo":                     "Cargo",
		"/package-and-crate":         "Package And Crate",
		"/smart-pointer/deref-trait": "Deref Trait",
		"/collections/":              "集合",
	}
	for route, want := range tests {
		n, err := tree.Lookup(route)
		require.NoError(t, err, route)
		require.Equal(t, want, n.Title(), route)
	}
}

func TestBuild_TitleResolverWinsOverDerivation(t *testing.T) {
	resolver := TitleResolverFunc(func(route string) (string, bool) {
		if route == "/cargo" {
			return "Cargo 包管理", true
		}
		return "", false
	})
	tree, err := Build([]RawNode{Leaf("/cargo"), Leaf("/module"), Page("Authored", "/trait")}, WithTitleResolver(resolver))
	require.NoError(t, err)

	cargo, _ := tree.Lookup("/cargo")
	module, _ := tree.Lookup("/module")
	trait, _ := tree.Lookup("/trait")
	require.Equal(t, "Cargo 包管理", cargo.Title())
	require.Equal(t, "Module", module.Title())
	require.Equal(t, "Authored", trait.Title(), "authored titles are never replaced")
}

func TestBuild_DuplicateRouteFails(t *testing.T) {
	_, err := Build([]RawNode{
		Group("模式匹配", Leaf("/pattern-matching/intro")),
		Group("again", Leaf("/pattern-matching/intro")),
	})
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrDuplicateRoute))
	require.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryValidation))

	c, ok := foundationerrors.AsClassified(err)
	require.True(t, ok)
	route, _ := c.Context().GetString("route")
	loc, _ := c.Context().GetString("location")
	require.Equal(t, "/pattern-matching/intro", route)
	require.Equal(t, "sidebar[1].children[0]", loc)
	require.Contains(t, err.Error(), "/pattern-matching/intro")
}

func TestBuild_DuplicateTopLevelLeafNamesRoute(t *testing.T) {
	_, err := Build([]RawNode{Leaf("/pattern-matching/intro"), Leaf("/pattern-matching/intro")})
	require.ErrorIs(t, err, ErrDuplicateRoute)
	require.Contains(t, err.Error(), "route=/pattern-matching/intro")
	require.Contains(t, err.Error(), "location=sidebar[1]")
}

func TestBuild_SameSegmentDifferentRoutesSucceeds(t *testing.T) {
	_, err := Build([]RawNode{
		Group("并发编程", Leaf("/concurrent/intro")),
		Group("模式匹配", Leaf("/pattern-matching/intro")),
	})
	require.NoError(t, err)
}

func TestBuild_DuplicateBetweenPageGroupAndLeaf(t *testing.T) {
	_, err := Build([]RawNode{
		Page("集合", "/collections/", Leaf("/collections/vector")),
		Leaf("/collections/"),
	})
	require.ErrorIs(t, err, ErrDuplicateRoute)
}

func TestBuild_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  []RawNode
		want error
	}{
		{"empty children without path", []RawNode{GroupSpec{Title: "空", Children: []RawNode{}}}, ErrEmptyGroup},
		{"title only", []RawNode{GroupSpec{Title: "header"}}, ErrEmptyGroup},
		{"empty mapping", []RawNode{GroupSpec{}}, ErrMalformedNode},
		{"malformed entry", []RawNode{Malformed{Kind: "sequence", Line: 4}}, ErrMalformedNode},
		{"nil entry", []RawNode{nil}, ErrMalformedNode},
		{"decode problems", []RawNode{GroupSpec{Title: "x", Path: "/x", Problems: []string{`unknown key "chidren"`}}}, ErrMalformedNode},
		{"empty leaf", []RawNode{Leaf("")}, ErrInvalidRoute},
		{"relative leaf", []RawNode{Group("g", Leaf("cargo"))}, ErrInvalidRoute},
		{"nested failure", []RawNode{Group("g", Group("inner", GroupSpec{}))}, ErrMalformedNode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := Build(tt.raw)
			require.Nil(t, tree)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestBuild_PathWithEmptyChildrenIsLeaf(t *testing.T) {
	tree, err := Build([]RawNode{GroupSpec{Title: "Ownership", Path: "/ownership", Children: []RawNode{}}})
	require.NoError(t, err)
	n, err := tree.Lookup("/ownership")
	require.NoError(t, err)
	require.Equal(t, KindLeaf, n.Kind())
}

func TestBuild_IsIdempotent(t *testing.T) {
	raw := rustNoteSidebar()
	a, err := Build(raw)
	require.NoError(t, err)
	b, err := Build(raw)
	require.NoError(t, err)

	require.True(t, Equal(a, b))
	if diff := cmp.Diff(a.Entries(), b.Entries()); diff != "" {
		t.Fatalf("entries differ (-a +b):\n%s", diff)
	}
	require.NotSame(t, a.Roots()[0], b.Roots()[0], "builds must not share nodes")
}

func TestBuild_DoesNotRetainInput(t *testing.T) {
	children := []RawNode{Leaf("/a"), Leaf("/b")}
	tree, err := Build([]RawNode{Group("g", children...)})
	require.NoError(t, err)

	children[0] = Leaf("/changed")
	require.True(t, tree.Has("/a"))
	require.False(t, tree.Has("/changed"))
}

func TestBuild_UnknownPolicy(t *testing.T) {
	_, err := Build(rustNoteSidebar(), WithGroupPagePolicy("sometimes"))
	require.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryValidation))
}

func TestParseGroupPagePolicy(t *testing.T) {
	p, err := ParseGroupPagePolicy(" EXCLUDE ")
	require.NoError(t, err)
	require.Equal(t, GroupPagesExclude, p)

	p, err = ParseGroupPagePolicy("")
	require.NoError(t, err)
	require.Equal(t, GroupPagesInclude, p)

	_, err = ParseGroupPagePolicy("first")
	require.Error(t, err)
	require.True(t, slices.Equal([]string{"exclude", "include"}, GroupPagePolicies()))
}

func TestMustBuild_Panics(t *testing.T) {
	require.Panics(t, func() { MustBuild([]RawNode{Leaf("/a"), Leaf("/a")}) })
}
