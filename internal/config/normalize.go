package config

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/docnav/internal/nav"
)

// NormalizationResult captures adjustments & warnings from normalization pass.
type NormalizationResult struct{ Warnings []string }

// NormalizeConfig canonicalizes enumerated fields prior to default application.
// Unknown values fall back to their default with a warning.
func NormalizeConfig(c *Config) (*NormalizationResult, error) {
	if c == nil {
		return nil, fmt.Errorf("config nil")
	}
	res := &NormalizationResult{}
	c.Version = strings.TrimSpace(c.Version)
	c.Site.Language = strings.TrimSpace(c.Site.Language)

	if raw := string(c.Nav.GroupPages); strings.TrimSpace(raw) != "" {
		if p, err := nav.ParseGroupPagePolicy(raw); err == nil {
			if p != c.Nav.GroupPages {
				res.Warnings = append(res.Warnings, warnChanged("nav.group_pages", raw, p))
				c.Nav.GroupPages = p
			}
		} else {
			res.Warnings = append(res.Warnings, warnUnknown("nav.group_pages", raw, string(nav.GroupPagesInclude)))
			c.Nav.GroupPages = nav.GroupPagesInclude
		}
	}

	if raw := string(c.Logging.Level); raw != "" {
		lvl := NormalizeLogLevel(raw)
		if _, err := logLevelNormalizer.NormalizeWithValidation(raw); err != nil {
			res.Warnings = append(res.Warnings, warnUnknown("logging.level", raw, string(lvl)))
		} else if lvl != c.Logging.Level {
			res.Warnings = append(res.Warnings, warnChanged("logging.level", raw, lvl))
		}
		c.Logging.Level = lvl
	}

	if raw := string(c.Logging.Format); raw != "" {
		f := NormalizeLogFormat(raw)
		if _, err := logFormatNormalizer.NormalizeWithValidation(raw); err != nil {
			res.Warnings = append(res.Warnings, warnUnknown("logging.format", raw, string(f)))
		} else if f != c.Logging.Format {
			res.Warnings = append(res.Warnings, warnChanged("logging.format", raw, f))
		}
		c.Logging.Format = f
	}
	return res, nil
}

func warnChanged(field string, from, to any) string {
	return fmt.Sprintf("normalized %s from '%v' to '%v'", field, from, to)
}

func warnUnknown(field, value, def string) string {
	return fmt.Sprintf("unknown %s '%s', defaulting to %s", field, value, def)
}
