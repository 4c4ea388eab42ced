// Package watch rebuilds a site's navigation when its configuration changes.
package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/docnav/internal/config"
	foundationerrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/site"
)

// Watcher holds the current Site and swaps in a freshly built one whenever
// the configuration (or, with titles_from_content, a content page) changes.
// A failed rebuild keeps the previous Site.
type Watcher struct {
	loader   *site.Loader
	current  atomic.Pointer[site.Site]
	debounce time.Duration
	logger   *slog.Logger
	onReload func(*site.Site)
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides the debounce window from the configuration.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// OnReload registers a callback invoked after every successful swap.
func OnReload(fn func(*site.Site)) Option {
	return func(w *Watcher) { w.onReload = fn }
}

// New returns a Watcher serving initial until the first rebuild.
func New(loader *site.Loader, initial *site.Site, opts ...Option) *Watcher {
	w := &Watcher{
		loader:   loader,
		debounce: config.DefaultWatchDebounce,
		logger:   slog.Default(),
	}
	if initial != nil && initial.Config != nil {
		w.debounce = initial.Config.Server.Debounce()
	}
	for _, opt := range opts {
		opt(w)
	}
	w.current.Store(initial)
	return w
}

// Current returns the most recent successful build.
func (w *Watcher) Current() *site.Site { return w.current.Load() }

// Reload rebuilds synchronously. On failure the current Site is kept and the
// error returned.
func (w *Watcher) Reload() error {
	next, err := w.loader.Load()
	if err != nil {
		w.logger.Warn("Rebuild failed, keeping previous navigation", logfields.Error(err))
		return err
	}
	prev := w.current.Swap(next)
	attrs := []any{logfields.BuildID(next.BuildID)}
	if prev != nil {
		attrs = append(attrs, slog.String("previous_build_id", prev.BuildID))
	}
	w.logger.Info("Navigation reloaded", attrs...)
	if w.onReload != nil {
		w.onReload(next)
	}
	return nil
}

// Run watches until ctx is done. It watches the configuration directory
// rather than the file itself so editors that replace files on save are
// still observed.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return foundationerrors.WrapError(err, foundationerrors.CategoryRuntime, "failed to create file watcher").Build()
	}
	defer func() {
		if cerr := fw.Close(); cerr != nil {
			w.logger.Error("Error closing file watcher", logfields.Error(cerr))
		}
	}()

	configPath, err := filepath.Abs(w.loader.ConfigPath())
	if err != nil {
		return foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "failed to resolve config path").Build()
	}
	configDir := filepath.Dir(configPath)
	if err := fw.Add(configDir); err != nil {
		return foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "failed to watch config directory").
			WithContext("dir", configDir).
			Build()
	}

	contentDir := w.contentDir()
	if contentDir != "" && contentDir != configDir {
		if err := fw.Add(contentDir); err != nil {
			w.logger.Warn("Content directory not watched", slog.String("dir", contentDir), logfields.Error(err))
			contentDir = ""
		}
	}

	w.logger.Info("Starting configuration watcher",
		logfields.ConfigPath(configPath),
		slog.Duration("debounce", w.debounce))

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Stopping configuration watcher")
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !relevant(event, configPath, contentDir) {
				continue
			}
			if event.Has(fsnotify.Remove) && event.Name == configPath {
				w.logger.Warn("Config file removed", logfields.File(event.Name))
				continue
			}
			w.logger.Debug("Change detected", logfields.File(event.Name), slog.String("op", event.Op.String()))
			timer.Reset(w.debounce)
		case <-timer.C:
			_ = w.Reload()
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("Config watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) contentDir() string {
	s := w.Current()
	if s == nil || s.Config == nil || !s.Config.Nav.TitlesFromContent {
		return ""
	}
	abs, err := filepath.Abs(s.ContentRoot)
	if err != nil {
		return ""
	}
	if info, err := os.Stat(abs); err != nil || !info.IsDir() {
		return ""
	}
	return abs
}

// relevant reports whether an event should trigger a rebuild: the config
// file, its .env files, or a markdown page directly in the content root.
func relevant(event fsnotify.Event, configPath, contentDir string) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return false
	}
	name := filepath.Clean(event.Name)
	dir, base := filepath.Dir(name), filepath.Base(name)
	if dir == filepath.Dir(configPath) {
		if base == filepath.Base(configPath) || base == ".env" || base == ".env.local" {
			return true
		}
	}
	return contentDir != "" && dir == contentDir && strings.HasSuffix(base, ".md")
}
