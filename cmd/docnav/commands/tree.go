package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/list"

	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/nav"
)

// TreeCmd implements the 'tree' command.
type TreeCmd struct{}

func (t *TreeCmd) Run(g *Global, root *CLI) error {
	_, s, err := loadSite(g, root, metrics.NoopRecorder{})
	if err != nil {
		return err
	}
	fmt.Fprintln(g.Out, renderTree(s.Tree))
	return nil
}

func renderTree(tree *nav.Tree) string {
	l := list.NewWriter()
	l.SetStyle(list.StyleConnectedRounded)
	var add func(nodes []*nav.Node)
	add = func(nodes []*nav.Node) {
		for _, n := range nodes {
			l.AppendItem(nodeLabel(n))
			if n.Len() > 0 {
				l.Indent()
				add(n.Children())
				l.UnIndent()
			}
		}
	}
	add(tree.Roots())
	return l.Render()
}

func nodeLabel(n *nav.Node) string {
	title := n.Title()
	if title == "" {
		title = "(untitled)"
	}
	if n.HasPage() {
		return fmt.Sprintf("%s  %s", title, n.Path())
	}
	return title
}
