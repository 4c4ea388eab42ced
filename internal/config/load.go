package config

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	foundationerrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
)

// envFiles are read, in order, from the config file's directory; later files
// override earlier ones. Variables present in the process environment are never
// overridden.
var envFiles = []string{".env", ".env.local"}

// dotenv remembers which variables this process set from env files, with the
// value it set, so a reload can update or remove them.
var dotenv = struct {
	sync.Mutex
	owned map[string]string
}{owned: map[string]string{}}

// Load reads, expands, normalizes, defaults and validates a configuration file.
func Load(configPath string) (*Config, error) {
	cfg, _, err := LoadWithWarnings(configPath)
	return cfg, err
}

// LoadWithWarnings is Load that also returns normalization warnings.
func LoadWithWarnings(configPath string) (*Config, []string, error) {
	loadEnvFiles(filepath.Dir(configPath))

	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, foundationerrors.ConfigError("configuration file not found").
				WithContext("path", configPath).
				Build()
		}
		return nil, nil, foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "failed to read config file").
			WithContext("path", configPath).
			Build()
	}

	cfg, warnings, err := Parse(data)
	if err != nil {
		if c, ok := foundationerrors.AsClassified(err); ok {
			return nil, nil, c.WithContext("path", configPath)
		}
		return nil, nil, err
	}
	return cfg, warnings, nil
}

// Parse decodes configuration bytes after expanding environment variables.
func Parse(data []byte) (*Config, []string, error) {
	expanded := os.ExpandEnv(string(data))

	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, foundationerrors.ConfigError("configuration file is empty").Build()
		}
		return nil, nil, foundationerrors.WrapError(err, foundationerrors.CategoryConfig, "failed to decode config").
			Fatal().
			Build()
	}

	res, err := NormalizeConfig(&cfg)
	if err != nil {
		return nil, nil, foundationerrors.WrapError(err, foundationerrors.CategoryInternal, "normalize").Build()
	}
	applyDefaults(&cfg)

	if err := ValidateConfig(&cfg); err != nil {
		return nil, nil, err
	}
	return &cfg, res.Warnings, nil
}

// loadEnvFiles applies the env files in dir. It runs on every load so edits
// reach a watcher rebuild: variables set from an earlier load are updated or
// unset, while variables from the real environment stay untouched.
func loadEnvFiles(dir string) {
	merged := map[string]string{}
	for _, name := range envFiles {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err != nil {
			continue
		}
		vars, err := godotenv.Read(p)
		if err != nil {
			slog.Warn("Failed to load environment file", "file", p, "error", err)
			continue
		}
		maps.Copy(merged, vars)
		slog.Debug("Loaded environment variables", "file", p, "count", len(vars))
	}

	dotenv.Lock()
	defer dotenv.Unlock()
	for key, set := range dotenv.owned {
		if cur, ok := os.LookupEnv(key); !ok || cur != set {
			// Changed or removed by someone else.
			delete(dotenv.owned, key)
			continue
		}
		if _, keep := merged[key]; !keep {
			_ = os.Unsetenv(key)
			delete(dotenv.owned, key)
		}
	}
	for key, val := range merged {
		if _, ours := dotenv.owned[key]; !ours {
			if _, inEnv := os.LookupEnv(key); inEnv {
				continue
			}
		}
		if err := os.Setenv(key, val); err != nil {
			slog.Warn("Failed to set environment variable", "key", key, "error", err)
			continue
		}
		dotenv.owned[key] = val
	}
}
