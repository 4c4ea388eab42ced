// Package markdown extracts the few facts docnav needs from page bodies:
// headings for titles and link destinations for route checks.
package markdown

import (
	"bytes"
	"slices"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Heading is an ATX or setext heading.
type Heading struct {
	Level int
	Text  string
	Line  int
}

type LinkKind string

const (
	LinkKindInline              LinkKind = "inline"
	LinkKindImage               LinkKind = "image"
	LinkKindAuto                LinkKind = "auto"
	LinkKindReferenceDefinition LinkKind = "reference_definition"
)

type Link struct {
	Kind        LinkKind
	Destination string
}

// scan is the result of one parse: headings and links in document order,
// reference definitions last, sorted by label.
type scan struct {
	headings []Heading
	links    []Link
}

func parse(body []byte) scan {
	ctx := parser.NewContext()
	root := goldmark.New().Parser().Parse(text.NewReader(body), parser.WithContext(ctx))

	s := scan{links: []Link{}}
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *gmast.Heading:
			s.headings = append(s.headings, Heading{Level: node.Level, Text: plainText(node, body), Line: startLine(node, body)})
		case *gmast.AutoLink:
			s.links = append(s.links, Link{Kind: LinkKindAuto, Destination: string(node.URL(body))})
		case *gmast.Image:
			s.links = append(s.links, Link{Kind: LinkKindImage, Destination: string(node.Destination)})
		case *gmast.Link:
			s.links = append(s.links, Link{Kind: LinkKindInline, Destination: string(node.Destination)})
		}
		return gmast.WalkContinue, nil
	})

	refs := ctx.References()
	slices.SortFunc(refs, func(a, b parser.Reference) int { return bytes.Compare(a.Label(), b.Label()) })
	for _, ref := range refs {
		s.links = append(s.links, Link{Kind: LinkKindReferenceDefinition, Destination: string(ref.Destination())})
	}
	return s
}

// Headings returns headings in document order.
func Headings(body []byte) []Heading { return parse(body).headings }

// FirstHeading returns the text of the first non-empty level-1 heading.
func FirstHeading(body []byte) (string, bool) {
	hs := Headings(body)
	i := slices.IndexFunc(hs, func(h Heading) bool { return h.Level == 1 && h.Text != "" })
	if i < 0 {
		return "", false
	}
	return hs[i].Text, true
}

// ExtractLinks returns inline links, images, autolinks and reference definitions.
func ExtractLinks(body []byte) []Link { return parse(body).links }

// plainText joins the text segments under n, dropping inline markup.
func plainText(n gmast.Node, src []byte) string {
	var b strings.Builder
	writeText(&b, n, src)
	return strings.TrimSpace(b.String())
}

func writeText(b *strings.Builder, n gmast.Node, src []byte) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *gmast.Text:
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *gmast.String:
			b.Write(t.Value)
		default:
			writeText(b, c, src)
		}
	}
}

func startLine(n gmast.Node, src []byte) int {
	lines := n.Lines()
	if lines == nil || lines.Len() == 0 {
		return 0
	}
	return bytes.Count(src[:lines.At(0).Start], []byte("\n")) + 1
}
