package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/nav"
)

// FlattenCmd implements the 'flatten' command.
type FlattenCmd struct {
	Format string `short:"f" help:"Output format" enum:"text,json,table" default:"text"`
}

func (f *FlattenCmd) Run(g *Global, root *CLI) error {
	_, s, err := loadSite(g, root, metrics.NoopRecorder{})
	if err != nil {
		return err
	}
	return writeFlatten(g.Out, s.Tree, f.Format)
}

func writeFlatten(w io.Writer, tree *nav.Tree, format string) error {
	switch format {
	case "json":
		entries := tree.Entries()
		if entries == nil {
			entries = []nav.Entry{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case "table":
		t := table.NewWriter()
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"#", "Depth", "Path", "Title"})
		i := 0
		for e := range tree.Flatten() {
			i++
			n, _ := tree.Lookup(e.Path)
			t.AppendRow(table.Row{i, e.Depth, e.Path, n.Title()})
		}
		_, err := fmt.Fprintln(w, t.Render())
		return err
	default:
		for e := range tree.Flatten() {
			if _, err := fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", e.Depth), e.Path); err != nil {
				return err
			}
		}
		return nil
	}
}
