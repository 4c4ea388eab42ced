package content

import (
	"io/fs"
	"net/url"
	"path"
	"slices"
	"strings"

	foundationerrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/markdown"
	"git.home.luguber.info/inful/docnav/internal/nav"
	"git.home.luguber.info/inful/docnav/internal/util/sets"
)

// BrokenLink is an internal link whose target is not a sidebar route.
type BrokenLink struct {
	File        string `json:"file"`
	Destination string `json:"destination"`
	Route       string `json:"route"`
}

// Report is the outcome of Check.
type Report struct {
	// Missing lists routes with no backing file, in reading order.
	Missing []string `json:"missing"`
	// Orphans lists Markdown files no route points at, sorted.
	Orphans []string `json:"orphans"`
	// BrokenLinks lists internal links to routes outside the tree.
	BrokenLinks []BrokenLink `json:"broken_links"`
	// Checked is the number of routed pages inspected.
	Checked int `json:"checked"`
}

// OK reports whether no missing pages or broken links were found. Orphans are
// informational.
func (r *Report) OK() bool {
	return len(r.Missing) == 0 && len(r.BrokenLinks) == 0
}

// Err returns a content error describing the report, or nil when OK.
func (r *Report) Err() error {
	if r.OK() {
		return nil
	}
	b := foundationerrors.ContentError("sidebar and content are out of sync").
		WithContext("missing", len(r.Missing)).
		WithContext("broken_links", len(r.BrokenLinks))
	if len(r.Missing) > 0 {
		b = b.WithContext("first_missing", r.Missing[0])
	}
	return b.Build()
}

// skipDir reports directories that never hold pages: dot directories such as
// the generator's own config dir, and dependency trees.
func skipDir(name string) bool {
	return name != "." && (strings.HasPrefix(name, ".") || name == "node_modules")
}

// Check compares tree against the content root.
func (s *Store) Check(tree *nav.Tree) (*Report, error) {
	r := &Report{Missing: []string{}, Orphans: []string{}, BrokenLinks: []BrokenLink{}}
	referenced := sets.New[string]()

	for n := range tree.All() {
		if !n.HasPage() {
			continue
		}
		r.Checked++
		file, ok := s.FileFor(n.Path())
		if !ok {
			r.Missing = append(r.Missing, n.Path())
			continue
		}
		referenced.Add(file)

		page, err := s.readFile(file)
		if err != nil {
			return nil, err
		}
		r.BrokenLinks = append(r.BrokenLinks, brokenLinks(tree, file, page.Body)...)
	}

	all := sets.New[string]()
	err := fs.WalkDir(s.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if isNotExist(err) && p == "." {
				return fs.SkipAll
			}
			return err
		}
		if d.IsDir() {
			if skipDir(d.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(p, ".md") {
			all.Add(p)
		}
		return nil
	})
	if err != nil {
		return nil, foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "walk content root").Build()
	}
	for _, f := range sets.Sorted(all) {
		if !referenced.Has(f) {
			r.Orphans = append(r.Orphans, f)
		}
	}
	return r, nil
}

func brokenLinks(tree *nav.Tree, file string, body []byte) []BrokenLink {
	var out []BrokenLink
	for _, l := range markdown.ExtractLinks(body) {
		if l.Kind == markdown.LinkKindImage {
			continue
		}
		route, ok := linkRoute(file, l.Destination)
		if !ok || tree.Has(route) {
			continue
		}
		// "/page" and "/page.html" address the same page.
		if alt := strings.TrimSuffix(route, ".html"); alt != route && tree.Has(alt) {
			continue
		}
		out = append(out, BrokenLink{File: file, Destination: l.Destination, Route: route})
	}
	return out
}

// pageExts are link target extensions that address pages rather than assets.
var pageExts = []string{"", ".md", ".html"}

// linkRoute turns a link destination found in file into a route. ok is false
// for external links, fragments and assets.
func linkRoute(file, dest string) (string, bool) {
	u, err := url.Parse(dest)
	if err != nil || u.Scheme != "" || u.Host != "" || u.Path == "" {
		return "", false
	}
	p := u.Path
	if !slices.Contains(pageExts, path.Ext(p)) {
		return "", false
	}
	trailing := strings.HasSuffix(p, "/")
	if !strings.HasPrefix(p, "/") {
		p = path.Join("/", path.Dir(file), p)
	}
	p = path.Clean(p)
	if trailing && p != "/" {
		p += "/"
	}
	if strings.HasSuffix(p, ".md") {
		return RouteForFile(p), true
	}
	return p, true
}
