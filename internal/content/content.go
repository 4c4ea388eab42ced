// Package content maps sidebar routes onto the Markdown files that back them.
package content

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"strings"

	foundationerrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/frontmatter"
	"git.home.luguber.info/inful/docnav/internal/markdown"
)

// Store reads page sources below a content root.
type Store struct {
	fsys fs.FS
}

// NewStore returns a Store rooted at dir on the local filesystem.
func NewStore(dir string) *Store {
	return &Store{fsys: os.DirFS(dir)}
}

// NewStoreFS returns a Store over fsys.
func NewStoreFS(fsys fs.FS) *Store {
	return &Store{fsys: fsys}
}

// CandidateFiles lists the files, relative to the content root and in lookup
// order, that can back route. "/" and "/dir/" resolve to README.md or
// index.md inside the directory; "/page" and "/page.html" to page.md.
func CandidateFiles(route string) []string {
	if !strings.HasPrefix(route, "/") {
		return nil
	}
	rel := strings.TrimPrefix(route, "/")
	if rel == "" || strings.HasSuffix(rel, "/") {
		return []string{rel + "README.md", rel + "index.md"}
	}
	rel = strings.TrimSuffix(rel, ".html")
	rel = strings.TrimSuffix(rel, ".md")
	return []string{rel + ".md"}
}

// RouteForFile is the inverse of CandidateFiles for a slash-separated path.
func RouteForFile(file string) string {
	file = strings.TrimPrefix(path.Clean("/"+file), "/")
	dir, base := path.Split(file)
	if base == "README.md" || base == "index.md" {
		return "/" + dir
	}
	return "/" + strings.TrimSuffix(file, ".md")
}

// FileFor returns the first existing candidate file for route.
func (s *Store) FileFor(route string) (string, bool) {
	for _, c := range CandidateFiles(route) {
		if info, err := fs.Stat(s.fsys, c); err == nil && !info.IsDir() {
			return c, true
		}
	}
	return "", false
}

// Page is a parsed page source.
type Page struct {
	File   string
	Fields map[string]any
	Body   []byte
}

// Read loads and splits the page backing route.
func (s *Store) Read(route string) (*Page, error) {
	file, ok := s.FileFor(route)
	if !ok {
		return nil, foundationerrors.ContentError("no content file for route").
			WithContext("route", route).
			WithContext("candidates", strings.Join(CandidateFiles(route), ", ")).
			Build()
	}
	return s.readFile(file)
}

func (s *Store) readFile(file string) (*Page, error) {
	data, err := fs.ReadFile(s.fsys, file)
	if err != nil {
		return nil, foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "read page").
			WithContext("file", file).
			Build()
	}
	fm, body, _, err := frontmatter.Split(data)
	if err != nil {
		return nil, foundationerrors.WrapError(err, foundationerrors.CategoryContent, "invalid frontmatter").
			WithContext("file", file).
			Build()
	}
	fields, err := frontmatter.ParseYAML(fm)
	if err != nil {
		return nil, foundationerrors.WrapError(err, foundationerrors.CategoryContent, "invalid frontmatter").
			WithContext("file", file).
			Build()
	}
	return &Page{File: file, Fields: fields, Body: body}, nil
}

// Title returns the frontmatter title, else the first level-1 heading.
func (p *Page) Title() (string, bool) {
	if t, ok := frontmatter.Title(p.Fields); ok {
		return t, true
	}
	return markdown.FirstHeading(p.Body)
}

// ResolveTitle implements nav.TitleResolver. Unreadable or missing pages
// yield no title so the builder falls back to deriving one.
func (s *Store) ResolveTitle(route string) (string, bool) {
	p, err := s.Read(route)
	if err != nil {
		return "", false
	}
	return p.Title()
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
