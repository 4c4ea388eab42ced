package config

import (
	"strings"
	"time"

	"golang.org/x/text/language"

	foundationerrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
)

// ValidateConfig checks the fields Load does not coerce. The sidebar's
// structure is validated when the tree is built, not here.
func ValidateConfig(c *Config) error {
	if c.Version != CurrentVersion {
		return foundationerrors.ConfigError("unsupported configuration version").
			WithContext("version", c.Version).
			WithContext("expected", CurrentVersion).
			Build()
	}
	if len(c.Sidebar) == 0 {
		return foundationerrors.ConfigError("sidebar must list at least one entry").Build()
	}
	if c.Site.Language != "" {
		if _, err := language.Parse(c.Site.Language); err != nil {
			return foundationerrors.WrapError(err, foundationerrors.CategoryConfig, "invalid site.language").
				Fatal().
				WithContext("language", c.Site.Language).
				Build()
		}
	}
	if !strings.HasPrefix(c.Server.MetricsPath, "/") {
		return foundationerrors.ConfigError("server.metrics_path must start with /").
			WithContext("metrics_path", c.Server.MetricsPath).
			Build()
	}
	d, err := time.ParseDuration(c.Server.WatchDebounce)
	if err != nil || d <= 0 {
		return foundationerrors.ConfigError("server.watch_debounce must be a positive duration").
			WithContext("watch_debounce", c.Server.WatchDebounce).
			Build()
	}
	return nil
}

// LanguageTag returns the parsed site language, or language.Und when unset.
func (c *Config) LanguageTag() language.Tag {
	if c.Site.Language == "" {
		return language.Und
	}
	tag, err := language.Parse(c.Site.Language)
	if err != nil {
		return language.Und
	}
	return tag
}
