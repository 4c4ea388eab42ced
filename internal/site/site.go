// Package site loads a site configuration and builds its navigation tree.
//
// A Site is a snapshot: configuration plus the tree built from it. Rebuilds
// produce a new Site; an existing one is never mutated.
package site

import (
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/docnav/internal/config"
	"git.home.luguber.info/inful/docnav/internal/content"
	foundationerrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/nav"
)

// Site is one successful build of a configuration.
type Site struct {
	Config      *config.Config
	Tree        *nav.Tree
	ConfigPath  string
	ContentRoot string
	BuildID     string
	BuiltAt     time.Time
	Warnings    []string
}

// Loader builds Sites from a configuration file.
type Loader struct {
	configPath string
	recorder   metrics.Recorder
	logger     *slog.Logger
	now        func() time.Time
}

// Option configures a Loader.
type Option func(*Loader)

// WithRecorder sets the metrics recorder. Defaults to metrics.NoopRecorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(l *Loader) {
		if r != nil {
			l.recorder = r
		}
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoader returns a Loader for the configuration at configPath.
func NewLoader(configPath string, opts ...Option) *Loader {
	l := &Loader{
		configPath: configPath,
		recorder:   metrics.NoopRecorder{},
		logger:     slog.Default(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// ConfigPath returns the configuration file path the loader reads.
func (l *Loader) ConfigPath() string { return l.configPath }

// Load reads the configuration and builds its tree.
func (l *Loader) Load() (*Site, error) {
	buildID := uuid.NewString()
	logger := l.logger.With(logfields.BuildID(buildID), logfields.ConfigPath(l.configPath))
	start := l.now()

	cfg, warnings, err := config.LoadWithWarnings(l.configPath)
	if err != nil {
		l.fail(logger, start, err)
		return nil, err
	}
	for _, w := range warnings {
		logger.Warn("Configuration normalized", slog.String("warning", w))
	}

	root := ContentRoot(l.configPath, cfg)
	opts := []nav.Option{
		nav.WithGroupPagePolicy(cfg.Nav.GroupPages),
		nav.WithLanguage(cfg.LanguageTag()),
	}
	if cfg.Nav.TitlesFromContent {
		opts = append(opts, nav.WithTitleResolver(content.NewStore(root)))
	}

	tree, err := nav.Build(cfg.Sidebar, opts...)
	if err != nil {
		l.fail(logger, start, err)
		return nil, err
	}

	stats := tree.Stats()
	l.recorder.ObserveBuildDuration(time.Since(start))
	l.recorder.IncBuildOutcome(metrics.OutcomeSuccess)
	l.recorder.SetTreeSize(stats.Nodes, stats.Pages)
	logger.Info("Navigation built",
		logfields.Nodes(stats.Nodes),
		logfields.Pages(stats.Pages),
		logfields.Depth(stats.MaxDepth),
		logfields.Since(start))

	return &Site{
		Config:      cfg,
		Tree:        tree,
		ConfigPath:  l.configPath,
		ContentRoot: root,
		BuildID:     buildID,
		BuiltAt:     start,
		Warnings:    warnings,
	}, nil
}

func (l *Loader) fail(logger *slog.Logger, start time.Time, err error) {
	l.recorder.ObserveBuildDuration(time.Since(start))
	l.recorder.IncBuildOutcome(Outcome(err))
	logger.Error("Navigation build failed", logfields.Error(err), logfields.Since(start))
}

// Outcome maps a build error to its metrics outcome label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case foundationerrors.HasCategory(err, foundationerrors.CategoryValidation),
		foundationerrors.HasCategory(err, foundationerrors.CategoryConfig):
		return metrics.OutcomeInvalid
	default:
		return metrics.OutcomeError
	}
}

// ContentRoot resolves site.source against the configuration file's directory.
func ContentRoot(configPath string, cfg *config.Config) string {
	src := cfg.Site.Source
	if src == "" {
		src = config.DefaultSource
	}
	if filepath.IsAbs(src) {
		return filepath.Clean(src)
	}
	return filepath.Join(filepath.Dir(configPath), src)
}

// Store returns a content store rooted at the site's content directory.
func (s *Site) Store() *content.Store {
	return content.NewStore(s.ContentRoot)
}

// Check verifies the tree against the content directory.
func (s *Site) Check() (*content.Report, error) {
	report, err := s.Store().Check(s.Tree)
	if err != nil {
		if foundationerrors.IsClassified(err) {
			return nil, err
		}
		return nil, foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "content check failed").
			WithContext("root", s.ContentRoot).
			Build()
	}
	return report, nil
}
