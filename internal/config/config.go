package config

import (
	"time"

	"git.home.luguber.info/inful/docnav/internal/nav"
)

// CurrentVersion is the only configuration version understood by Load.
const CurrentVersion = "1.0"

// Config is the site configuration: site metadata, pass-through flags for the
// external generator, navigation options and the authored sidebar.
type Config struct {
	Version  string         `yaml:"version"`
	Site     SiteConfig     `yaml:"site"`
	Markdown MarkdownConfig `yaml:"markdown,omitempty"`
	Theme    ThemeConfig    `yaml:"theme,omitempty"`
	Nav      NavConfig      `yaml:"nav,omitempty"`
	Sidebar  nav.RawList    `yaml:"sidebar"`
	Logging  LoggingConfig  `yaml:"logging,omitempty"`
	Server   ServerConfig   `yaml:"server,omitempty"`
}

// SiteConfig describes the documentation site.
type SiteConfig struct {
	Title    string `yaml:"title"`
	Dest     string `yaml:"dest,omitempty"`     // Output directory of the external generator
	Source   string `yaml:"source,omitempty"`   // Content root, relative to the config file
	Language string `yaml:"language,omitempty"` // BCP 47 tag used to title-case derived titles
}

// MarkdownConfig is passed through to the external renderer.
type MarkdownConfig struct {
	LineNumbers bool `yaml:"line_numbers"`
}

// ThemeConfig is passed through to the external renderer.
type ThemeConfig struct {
	Navbar bool `yaml:"navbar"`
	Search bool `yaml:"search"`
}

// NavConfig controls how the sidebar is turned into a tree.
type NavConfig struct {
	GroupPages        nav.GroupPagePolicy `yaml:"group_pages,omitempty"`
	TitlesFromContent bool                `yaml:"titles_from_content,omitempty"`
}

// LoggingConfig selects the slog handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level,omitempty"`
	Format LogFormat `yaml:"format,omitempty"`
}

// ServerConfig configures the preview server and watcher.
type ServerConfig struct {
	Addr          string `yaml:"addr,omitempty"`
	MetricsPath   string `yaml:"metrics_path,omitempty"`
	WatchDebounce string `yaml:"watch_debounce,omitempty"`
}

// Debounce returns the parsed watch debounce. Validation guarantees it parses.
func (s ServerConfig) Debounce() time.Duration {
	d, err := time.ParseDuration(s.WatchDebounce)
	if err != nil {
		return DefaultWatchDebounce
	}
	return d
}
