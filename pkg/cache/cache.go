// Package cache stores rendered graph artifacts between runs.
//
// Rendering a large document as SVG or PDF goes through Graphviz and an
// external converter, so the CLI keeps the output keyed by the document
// content and every option that influences the picture. Two backends exist:
// [FileCache] for the CLI and [NullCache] when caching is disabled.
//
// Keys are built by a [Keyer]:
//
//	k := cache.NewDefaultKeyer()
//	key := k.ArtifactKey(cache.Hash(raw), cache.ArtifactKeyOpts{Format: "svg"})
//	data, hit, err := c.Get(ctx, key)
package cache

import (
	"context"
	"sort"
	"time"
)

// Default TTLs per entry kind.
const (
	LayoutTTL   = 7 * 24 * time.Hour
	ArtifactTTL = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry expiry.
// A zero ttl stores the entry without expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// LayoutKeyOpts holds everything that changes a positioned graph.
type LayoutKeyOpts struct {
	Threshold      int     `json:"threshold"`
	NodeWidth      float64 `json:"node_width"`
	LevelGap       float64 `json:"level_gap"`
	MaxValueLength int     `json:"max_value_length"`
	Collapsed      []int   `json:"collapsed,omitempty"`
	Detailed       bool    `json:"detailed,omitempty"`
}

// ArtifactKeyOpts holds everything that changes a rendered file.
type ArtifactKeyOpts struct {
	Format         string  `json:"format"`
	Scale          float64 `json:"scale,omitempty"`
	Threshold      int     `json:"threshold"`
	NodeWidth      float64 `json:"node_width"`
	LevelGap       float64 `json:"level_gap"`
	MaxValueLength int     `json:"max_value_length"`
	Collapsed      []int   `json:"collapsed,omitempty"`
	Detailed       bool    `json:"detailed,omitempty"`
}

// Keyer derives cache keys. docHash is the [Hash] of the raw document bytes.
type Keyer interface {
	LayoutKey(docHash string, opts LayoutKeyOpts) string
	ArtifactKey(docHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes the option set so keys stay short and fixed length.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey returns "layout:<sha256>".
func (DefaultKeyer) LayoutKey(docHash string, opts LayoutKeyOpts) string {
	opts.Collapsed = sortedIDs(opts.Collapsed)
	return hashKey("layout", docHash, opts)
}

// ArtifactKey returns "artifact:<format>:<sha256>".
func (DefaultKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	opts.Collapsed = sortedIDs(opts.Collapsed)
	return hashKey("artifact:"+opts.Format, docHash, opts)
}

// sortedIDs makes collapsed-id sets order independent without touching the
// caller's slice.
func sortedIDs(ids []int) []int {
	if len(ids) == 0 {
		return nil
	}
	out := append([]int(nil), ids...)
	sort.Ints(out)
	return out
}
