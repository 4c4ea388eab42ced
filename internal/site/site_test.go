package site

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docnav/internal/config"
	foundationerrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/nav"
)

type fakeRecorder struct {
	mu       sync.Mutex
	outcomes []string
	nodes    int
	pages    int
	builds   int
}

func (f *fakeRecorder) ObserveBuildDuration(time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.builds++
}

func (f *fakeRecorder) IncBuildOutcome(o string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.outcomes = append(f.outcomes, o)
}

func (f *fakeRecorder) SetTreeSize(nodes, pages int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nodes, f.pages = nodes, pages
}

func (f *fakeRecorder) IncLookup(string) {}

const siteConfig = `
version: "1.0"
site:
  title: Rust Note
  source: ./src
nav:
  titles_from_content: %s
sidebar:
  - title: Rust Note
    path: /
  - title: 项目管理
    children: [/cargo, /module]
`

func writeSite(t *testing.T, titlesFromContent string) string {
	t.Helper()
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	require.NoError(t, os.MkdirAll(src, 0o755))
	files := map[string]string{
		"README.md": "# Rust Note\n",
		"cargo.md":  "---\ntitle: Cargo 入门\n---\nbody\n",
		"module.md": "# 模块系统\n",
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(src, name), []byte(body), 0o644))
	}
	p := filepath.Join(dir, config.DefaultConfigFile)
	body := fmt.Sprintf(siteConfig, titlesFromContent)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoad_BuildsTreeAndRecordsMetrics(t *testing.T) {
	rec := &fakeRecorder{}
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	s, err := NewLoader(writeSite(t, "false"), WithRecorder(rec), WithLogger(logger)).Load()
	require.NoError(t, err)

	require.NotEmpty(t, s.BuildID)
	require.Equal(t, filepath.Join(filepath.Dir(s.ConfigPath), "src"), s.ContentRoot)
	require.Equal(t, 3, s.Tree.Len())

	n, err := s.Tree.Lookup("/cargo")
	require.NoError(t, err)
	require.Equal(t, "Cargo", n.Title())

	require.Equal(t, []string{metrics.OutcomeSuccess}, rec.outcomes)
	require.Equal(t, 4, rec.nodes)
	require.Equal(t, 3, rec.pages)
	require.Contains(t, logs.String(), "build_id="+s.BuildID)
	require.Contains(t, logs.String(), "Navigation built")
}

func TestLoad_TitlesFromContent(t *testing.T) {
	s, err := NewLoader(writeSite(t, "true")).Load()
	require.NoError(t, err)

	cargo, err := s.Tree.Lookup("/cargo")
	require.NoError(t, err)
	require.Equal(t, "Cargo 入门", cargo.Title())

	module, err := s.Tree.Lookup("/module")
	require.NoError(t, err)
	require.Equal(t, "模块系统", module.Title())

	// Authored titles win over content.
	home, err := s.Tree.Lookup("/")
	require.NoError(t, err)
	require.Equal(t, "Rust Note", home.Title())
}

func TestLoad_InvalidSidebar(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, config.DefaultConfigFile)
	body := "site:\n  title: x\nsidebar: [/a, /a]\n"
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))

	rec := &fakeRecorder{}
	s, err := NewLoader(p, WithRecorder(rec)).Load()
	require.Nil(t, s)
	require.ErrorIs(t, err, nav.ErrDuplicateRoute)
	require.Equal(t, []string{metrics.OutcomeInvalid}, rec.outcomes)
}

func TestLoad_MissingConfig(t *testing.T) {
	rec := &fakeRecorder{}
	_, err := NewLoader(filepath.Join(t.TempDir(), "nope.yaml"), WithRecorder(rec)).Load()
	require.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryConfig))
	require.Equal(t, []string{metrics.OutcomeInvalid}, rec.outcomes)
}

func TestOutcome(t *testing.T) {
	require.Equal(t, metrics.OutcomeSuccess, Outcome(nil))
	require.Equal(t, metrics.OutcomeInvalid, Outcome(nav.ErrEmptyGroup))
	require.Equal(t, metrics.OutcomeError, Outcome(errors.New("boom")))
	require.Equal(t, metrics.OutcomeError, Outcome(foundationerrors.FileSystemError("disk").Build()))
}

func TestContentRoot(t *testing.T) {
	cfg := &config.Config{}
	require.Equal(t, "conf", ContentRoot("conf/docnav.yaml", cfg))

	cfg.Site.Source = "/abs/src/"
	require.Equal(t, "/abs/src", ContentRoot("conf/docnav.yaml", cfg))
}

func TestSiteCheck(t *testing.T) {
	s, err := NewLoader(writeSite(t, "false")).Load()
	require.NoError(t, err)

	report, err := s.Check()
	require.NoError(t, err)
	require.True(t, report.OK())
	require.Equal(t, 3, report.Checked)
	require.Empty(t, report.Orphans)
}
