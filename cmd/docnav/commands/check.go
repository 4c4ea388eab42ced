package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"

	"git.home.luguber.info/inful/docnav/internal/content"
	"git.home.luguber.info/inful/docnav/internal/metrics"
)

// CheckCmd implements the 'check' command.
type CheckCmd struct {
	Content bool `help:"Also verify the content directory: missing pages, orphans, broken links"`
}

func (c *CheckCmd) Run(g *Global, root *CLI) error {
	_, s, err := loadSite(g, root, metrics.NoopRecorder{})
	if err != nil {
		return err
	}
	for _, w := range s.Warnings {
		fmt.Fprintf(g.Out, "warning: %s\n", w)
	}
	stats := s.Tree.Stats()
	fmt.Fprintf(g.Out, "sidebar OK: %d pages, %d nodes, max depth %d\n", stats.Pages, stats.Nodes, stats.MaxDepth)
	if !c.Content {
		return nil
	}

	report, err := s.Check()
	if err != nil {
		return err
	}
	fmt.Fprint(g.Out, renderReport(report))
	return report.Err()
}

func renderReport(r *content.Report) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Problem", "Route", "File"})
	for _, route := range r.Missing {
		t.AppendRow(table.Row{"missing page", route, ""})
	}
	for _, b := range r.BrokenLinks {
		t.AppendRow(table.Row{"broken link", b.Route, b.File})
	}
	for _, f := range r.Orphans {
		t.AppendRow(table.Row{"orphan", "", f})
	}
	t.AppendFooter(table.Row{"checked", r.Checked, ""})
	return t.Render() + "\n"
}
