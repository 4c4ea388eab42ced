// Package commands implements the docnav CLI.
package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docnav/internal/config"
	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/site"
)

// Global carries state shared by all subcommands.
type Global struct {
	Logger *slog.Logger
	Out    io.Writer
}

// NewGlobal returns a Global writing command output to stdout.
func NewGlobal() *Global {
	return &Global{Logger: slog.Default(), Out: os.Stdout}
}

// CLI definition & global flags.
type CLI struct {
	Config    string           `short:"c" help:"Configuration file path" default:"docnav.yaml" type:"path"`
	Verbose   bool             `short:"v" help:"Enable verbose logging"`
	LogFormat string           `name:"log-format" help:"Log output format (text, json); overrides logging.format"`
	Version   kong.VersionFlag `name:"version" help:"Show version and exit"`

	Init    InitCmd    `cmd:"" help:"Write an example configuration file"`
	Check   CheckCmd   `cmd:"" help:"Validate the sidebar (and optionally the content directory)"`
	Tree    TreeCmd    `cmd:"" help:"Print the navigation tree"`
	Flatten FlattenCmd `cmd:"" help:"Print pages in reading order"`
	Lookup  LookupCmd  `cmd:"" help:"Show a route's breadcrumbs and neighbors"`
	Serve   ServeCmd   `cmd:"" help:"Serve the navigation API with optional live rebuilds"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := config.LogLevelInfo
	if c.Verbose {
		level = config.LogLevelDebug
	}
	slog.SetDefault(config.NewLogger(os.Stderr, level, config.NormalizeLogFormat(c.LogFormat)))
	return nil
}

// loggerFor applies the configuration's logging section. Flags win over the file.
func (c *CLI) loggerFor(cfg *config.Config) *slog.Logger {
	level := cfg.Logging.Level
	if c.Verbose {
		level = config.LogLevelDebug
	}
	format := cfg.Logging.Format
	if c.LogFormat != "" {
		format = config.NormalizeLogFormat(c.LogFormat)
	}
	return config.NewLogger(os.Stderr, level, format)
}

// loadSite builds the configured site once. The logger is reconfigured from
// the file before any further output.
func loadSite(g *Global, root *CLI, recorder metrics.Recorder) (*site.Loader, *site.Site, error) {
	loader := site.NewLoader(root.Config, site.WithLogger(g.Logger), site.WithRecorder(recorder))
	s, err := loader.Load()
	if err != nil {
		return nil, nil, err
	}
	g.Logger = root.loggerFor(s.Config)
	slog.SetDefault(g.Logger)
	loader = site.NewLoader(root.Config, site.WithLogger(g.Logger), site.WithRecorder(recorder))
	return loader, s, nil
}
