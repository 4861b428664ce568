package config

import (
	"time"

	"github.com/matzehuels/jsonscope/pkg/graph"
	pkgio "github.com/matzehuels/jsonscope/pkg/io"
	"github.com/matzehuels/jsonscope/pkg/layout"
	"github.com/matzehuels/jsonscope/pkg/render/nodelink"
	"github.com/matzehuels/jsonscope/pkg/skeleton"
	"github.com/matzehuels/jsonscope/pkg/window"
)

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info"},
		Limits: LimitsConfig{
			MaxDocumentBytes: pkgio.DefaultMaxBytes,
		},
		View: ViewConfig{
			RowHeight:     window.DefaultRowHeight,
			Overscan:      window.DefaultOverscan,
			SkeletonItems: skeleton.DefaultMaxArrayItems,
		},
		Graph: GraphConfig{
			CollapseThreshold: layout.DefaultCollapseThreshold,
			NodeWidth:         layout.DefaultNodeWidth,
			LevelGap:          layout.DefaultLevelGap,
			MaxValueLength:    graph.DefaultMaxValueLength,
			Scale:             nodelink.DefaultScale,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     7 * 24 * time.Hour,
		},
		Server: ServerConfig{
			Addr:         "127.0.0.1:8080",
			MaxDocuments: 64,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 2 * time.Minute,
			RateBurst:    20,
		},
	}
}
