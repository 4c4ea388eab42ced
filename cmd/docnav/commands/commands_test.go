package commands

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docnav/internal/config"
	foundationerrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/nav"
)

const testConfig = `
version: "1.0"
site:
  title: Rust Note
  source: ./src
sidebar:
  - title: Rust Note
    path: /
  - title: 项目管理
    children: [/cargo, /module]
  - title: 集合
    path: /collections/
    children: [/collections/vector]
`

func setup(t *testing.T) (*Global, *CLI, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	p := filepath.Join(dir, config.DefaultConfigFile)
	require.NoError(t, os.WriteFile(p, []byte(testConfig), 0o644))
	var out bytes.Buffer
	g := &Global{Logger: slog.New(slog.NewTextHandler(io.Discard, nil)), Out: &out}
	return g, &CLI{Config: p, LogFormat: "text"}, &out
}

func writeContent(t *testing.T, root *CLI, files map[string]string) {
	t.Helper()
	src := filepath.Join(filepath.Dir(root.Config), "src")
	for name, body := range files {
		p := filepath.Join(src, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	}
}

func TestInit(t *testing.T) {
	g, root, out := setup(t)
	root.Config = filepath.Join(t.TempDir(), "new.yaml")

	require.NoError(t, (&InitCmd{}).Run(g, root))
	require.Contains(t, out.String(), "Wrote "+root.Config)

	cfg, err := config.Load(root.Config)
	require.NoError(t, err)
	require.NotEmpty(t, cfg.Sidebar)

	err = (&InitCmd{}).Run(g, root)
	require.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryConfig))
	require.NoError(t, (&InitCmd{Force: true}).Run(g, root))
}

func TestCheck_SidebarOnly(t *testing.T) {
	g, root, out := setup(t)
	require.NoError(t, (&CheckCmd{}).Run(g, root))
	require.Contains(t, out.String(), "sidebar OK: 5 pages, 6 nodes, max depth 1")
}

func TestCheck_Content(t *testing.T) {
	g, root, out := setup(t)
	writeContent(t, root, map[string]string{
		"README.md":             "# Rust Note\n",
		"cargo.md":              "# Cargo\n",
		"collections/README.md": "# 集合\n",
		"collections/vector.md": "# Vector\n",
		"unused.md":             "# Unused\n",
	})

	err := (&CheckCmd{Content: true}).Run(g, root)
	require.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryContent))
	s := out.String()
	require.Contains(t, s, "missing page")
	require.Contains(t, s, "/module")
	require.Contains(t, s, "orphan")
	require.Contains(t, s, "unused.md")
}

func TestCheck_InvalidSidebar(t *testing.T) {
	g, root, _ := setup(t)
	require.NoError(t, os.WriteFile(root.Config, []byte("site:\n  title: x\nsidebar: [/a, /a]\n"), 0o644))
	err := (&CheckCmd{}).Run(g, root)
	require.ErrorIs(t, err, nav.ErrDuplicateRoute)
	require.Equal(t, 2, foundationerrors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
}

func TestTree(t *testing.T) {
	g, root, out := setup(t)
	require.NoError(t, (&TreeCmd{}).Run(g, root))
	s := out.String()
	require.Contains(t, s, "Rust Note  /")
	require.Contains(t, s, "项目管理")
	require.Contains(t, s, "Cargo  /cargo")
	require.Less(t, strings.Index(s, "项目管理"), strings.Index(s, "Cargo  /cargo"))
}

func TestFlatten_Text(t *testing.T) {
	g, root, out := setup(t)
	require.NoError(t, (&FlattenCmd{Format: "text"}).Run(g, root))
	require.Equal(t, "/\n  /cargo\n  /module\n/collections/\n  /collections/vector\n", out.String())
}

func TestFlatten_JSON(t *testing.T) {
	g, root, out := setup(t)
	require.NoError(t, (&FlattenCmd{Format: "json"}).Run(g, root))
	var entries []nav.Entry
	require.NoError(t, json.Unmarshal(out.Bytes(), &entries))
	require.Len(t, entries, 5)
	require.Equal(t, nav.Entry{Path: "/collections/vector", Depth: 1}, entries[4])
}

func TestFlatten_Table(t *testing.T) {
	g, root, out := setup(t)
	require.NoError(t, (&FlattenCmd{Format: "table"}).Run(g, root))
	s := out.String()
	require.Contains(t, s, "PATH")
	require.Contains(t, s, "/collections/vector")
	require.Contains(t, s, "Vector")
}

func TestLookup(t *testing.T) {
	g, root, out := setup(t)
	require.NoError(t, (&LookupCmd{Route: "/module"}).Run(g, root))
	s := out.String()
	require.Contains(t, s, "title:   Module")
	require.Contains(t, s, "trail:   项目管理 > Module")
	require.Contains(t, s, "prev:    /cargo")
	require.Contains(t, s, "next:    /collections/")

	err := (&LookupCmd{Route: "/nope"}).Run(g, root)
	require.ErrorIs(t, err, nav.ErrNotFound)
	require.Equal(t, 3, foundationerrors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
}

func TestLoggerFor_FlagsOverrideConfig(t *testing.T) {
	cfg := &config.Config{Logging: config.LoggingConfig{Level: config.LogLevelError, Format: config.LogFormatJSON}}
	cli := &CLI{Verbose: true}
	logger := cli.loggerFor(cfg)
	require.True(t, logger.Enabled(t.Context(), slog.LevelDebug))

	cli = &CLI{}
	require.False(t, cli.loggerFor(cfg).Enabled(t.Context(), slog.LevelWarn))
}
