package config

import "time"

// Config is the top-level jsonscope configuration.
type Config struct {
	Log    LogConfig    `koanf:"log" toml:"log" yaml:"log"`
	Limits LimitsConfig `koanf:"limits" toml:"limits" yaml:"limits"`
	View   ViewConfig   `koanf:"view" toml:"view" yaml:"view"`
	Graph  GraphConfig  `koanf:"graph" toml:"graph" yaml:"graph"`
	Cache  CacheConfig  `koanf:"cache" toml:"cache" yaml:"cache"`
	Server ServerConfig `koanf:"server" toml:"server" yaml:"server"`
}

// LogConfig controls the CLI logger.
type LogConfig struct {
	Level string `koanf:"level" toml:"level" yaml:"level"`
}

// LimitsConfig bounds the documents jsonscope accepts.
type LimitsConfig struct {
	MaxDocumentBytes int64 `koanf:"max_document_bytes" toml:"max_document_bytes" yaml:"max_document_bytes"`
}

// ViewConfig holds tree view metrics.
type ViewConfig struct {
	RowHeight     int `koanf:"row_height" toml:"row_height" yaml:"row_height"`
	Overscan      int `koanf:"overscan" toml:"overscan" yaml:"overscan"`
	SkeletonItems int `koanf:"skeleton_items" toml:"skeleton_items" yaml:"skeleton_items"`
}

// GraphConfig holds graph model, layout and rendering settings.
type GraphConfig struct {
	CollapseThreshold int     `koanf:"collapse_threshold" toml:"collapse_threshold" yaml:"collapse_threshold"`
	NodeWidth         float64 `koanf:"node_width" toml:"node_width" yaml:"node_width"`
	LevelGap          float64 `koanf:"level_gap" toml:"level_gap" yaml:"level_gap"`
	MaxValueLength    int     `koanf:"max_value_length" toml:"max_value_length" yaml:"max_value_length"`
	Detailed          bool    `koanf:"detailed" toml:"detailed" yaml:"detailed"`
	Scale             float64 `koanf:"scale" toml:"scale" yaml:"scale"`
}

// CacheConfig controls the render artifact cache.
type CacheConfig struct {
	Enabled bool          `koanf:"enabled" toml:"enabled" yaml:"enabled"`
	Dir     string        `koanf:"dir" toml:"dir" yaml:"dir"`
	TTL     time.Duration `koanf:"ttl" toml:"ttl" yaml:"ttl"`
}

// ServerConfig holds HTTP API settings. An empty AllowedOrigins list allows
// local origins only.
type ServerConfig struct {
	Addr           string        `koanf:"addr" toml:"addr" yaml:"addr"`
	AllowedOrigins []string      `koanf:"allowed_origins" toml:"allowed_origins" yaml:"allowed_origins"`
	MaxDocuments   int           `koanf:"max_documents" toml:"max_documents" yaml:"max_documents"`
	ReadTimeout    time.Duration `koanf:"read_timeout" toml:"read_timeout" yaml:"read_timeout"`
	WriteTimeout   time.Duration `koanf:"write_timeout" toml:"write_timeout" yaml:"write_timeout"`
	RateLimit      float64       `koanf:"rate_limit" toml:"rate_limit" yaml:"rate_limit"`
	RateBurst      int           `koanf:"rate_burst" toml:"rate_burst" yaml:"rate_burst"`
}
