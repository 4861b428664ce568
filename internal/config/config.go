// Package config loads jsonscope settings.
//
// Sources are applied in order, later ones winning: built-in defaults, an
// optional TOML or YAML file, and JSONSCOPE_* environment variables. The
// first underscore after the prefix separates section and key, so
// JSONSCOPE_GRAPH_COLLAPSE_THRESHOLD sets graph.collapse_threshold.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/matzehuels/jsonscope/pkg/graph"
	"github.com/matzehuels/jsonscope/pkg/layout"
	"github.com/matzehuels/jsonscope/pkg/render/nodelink"
	"github.com/matzehuels/jsonscope/pkg/viewer"
)

const (
	appName   = "jsonscope"
	envPrefix = "JSONSCOPE_"
)

// DefaultPath returns ~/.config/jsonscope/config.toml, honouring
// XDG_CONFIG_HOME.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// DefaultCacheDir returns ~/.cache/jsonscope, honouring XDG_CACHE_HOME.
func DefaultCacheDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// Load builds the configuration. An empty path means [DefaultPath], which
// may be absent; an explicit path must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		if p, err := DefaultPath(); err == nil {
			path = p
		}
	}

	k := koanf.New(".")
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			parser, err := parserFor(path)
			if err != nil {
				return nil, err
			}
			if err := k.Load(file.Provider(path), parser); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config format %q (want .toml, .yaml or .yml)", filepath.Ext(path))
	}
}

// envKey maps JSONSCOPE_SECTION_SOME_KEY to section.some_key.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	return strings.Replace(s, "_", ".", 1)
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log.level %q", c.Log.Level)
	}
	if c.Limits.MaxDocumentBytes < 0 {
		return fmt.Errorf("limits.max_document_bytes must be non-negative")
	}
	if c.View.RowHeight <= 0 {
		return fmt.Errorf("view.row_height must be positive")
	}
	if c.View.Overscan < 0 {
		return fmt.Errorf("view.overscan must be non-negative")
	}
	if c.View.SkeletonItems < 1 {
		return fmt.Errorf("view.skeleton_items must be at least 1")
	}
	if c.Graph.NodeWidth <= 0 || c.Graph.LevelGap <= 0 {
		return fmt.Errorf("graph.node_width and graph.level_gap must be positive")
	}
	if c.Graph.MaxValueLength <= 0 {
		return fmt.Errorf("graph.max_value_length must be positive")
	}
	if c.Graph.Scale <= 0 {
		return fmt.Errorf("graph.scale must be positive")
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must be non-negative")
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Server.MaxDocuments <= 0 {
		return fmt.Errorf("server.max_documents must be positive")
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("server.rate_limit must be non-negative")
	}
	if c.Server.RateLimit > 0 && c.Server.RateBurst < 1 {
		return fmt.Errorf("server.rate_burst must be at least 1 when rate limiting")
	}
	return nil
}

// LogLevel returns the parsed log level.
func (c *Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// CacheDir returns the configured cache directory or the default one.
func (c *Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	return DefaultCacheDir()
}

// ViewerOptions converts the configuration into session options.
func (c *Config) ViewerOptions(logger *log.Logger) viewer.Options {
	return viewer.Options{
		MaxDocumentBytes: c.Limits.MaxDocumentBytes,
		RowHeight:        c.View.RowHeight,
		Overscan:         c.View.Overscan,
		Graph:            graph.Options{MaxValueLength: c.Graph.MaxValueLength},
		Layout: layout.Options{
			CollapseThreshold: c.Graph.CollapseThreshold,
			NodeWidth:         c.Graph.NodeWidth,
			LevelGap:          c.Graph.LevelGap,
		},
		Render: nodelink.Options{
			Detailed: c.Graph.Detailed,
			Scale:    c.Graph.Scale,
		},
		Logger: logger,
	}
}
