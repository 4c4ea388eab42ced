package commands

import (
	"fmt"
	"io"
	"strings"

	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/nav"
)

// LookupCmd implements the 'lookup' command.
type LookupCmd struct {
	Route string `arg:"" help:"Route to look up, e.g. /smart-pointer/box"`
}

func (l *LookupCmd) Run(g *Global, root *CLI) error {
	_, s, err := loadSite(g, root, metrics.NoopRecorder{})
	if err != nil {
		return err
	}
	return writeLookup(g.Out, s.Tree, l.Route)
}

func writeLookup(w io.Writer, tree *nav.Tree, route string) error {
	n, err := tree.Lookup(route)
	if err != nil {
		return err
	}
	crumbs, err := tree.Breadcrumbs(route)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "title:   %s\n", n.Title())
	fmt.Fprintf(w, "kind:    %s\n", n.Kind())
	fmt.Fprintf(w, "depth:   %d\n", n.Depth())
	fmt.Fprintf(w, "trail:   %s\n", strings.Join(crumbs, " > "))
	if sec := tree.ActiveSection(route); sec != nil {
		fmt.Fprintf(w, "section: %s\n", sec.Title())
	}
	if prev, next, err := tree.Neighbors(route); err == nil {
		if prev != nil {
			fmt.Fprintf(w, "prev:    %s\n", prev.Path)
		}
		if next != nil {
			fmt.Fprintf(w, "next:    %s\n", next.Path)
		}
	}
	return nil
}
