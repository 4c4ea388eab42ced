package config

import (
	"time"

	"git.home.luguber.info/inful/docnav/internal/nav"
)

// Defaults applied to unset fields after normalization.
const (
	DefaultConfigFile    = "docnav.yaml"
	DefaultSource        = "."
	DefaultServerAddr    = ":8080"
	DefaultMetricsPath   = "/metrics"
	DefaultWatchDebounce = 500 * time.Millisecond
)

// applyDefaults fills unset fields. It never overrides authored values.
func applyDefaults(c *Config) {
	if c.Version == "" {
		c.Version = CurrentVersion
	}
	if c.Site.Source == "" {
		c.Site.Source = DefaultSource
	}
	if c.Nav.GroupPages == "" {
		c.Nav.GroupPages = nav.GroupPagesInclude
	}
	if c.Logging.Level == "" {
		c.Logging.Level = LogLevelInfo
	}
	if c.Logging.Format == "" {
		c.Logging.Format = LogFormatText
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultServerAddr
	}
	if c.Server.MetricsPath == "" {
		c.Server.MetricsPath = DefaultMetricsPath
	}
	if c.Server.WatchDebounce == "" {
		c.Server.WatchDebounce = DefaultWatchDebounce.String()
	}
}
