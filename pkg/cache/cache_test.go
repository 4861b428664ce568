package cache

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit || data != nil {
		t.Error("NullCache should never hit")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if _, hit, _ := c.Get(ctx, "missing"); hit {
		t.Error("empty cache should miss")
	}
	if err := c.Set(ctx, "k", []byte("<svg/>"), 0); err != nil {
		t.Fatal(err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit {
		t.Fatalf("Get = hit %v, err %v", hit, err)
	}
	if string(data) != "<svg/>" {
		t.Errorf("data = %q", data)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("deleted entry should miss")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("second Delete should be a no-op: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return start }

	if err := c.Set(ctx, "k", []byte("x"), time.Minute); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "k"); !hit {
		t.Fatal("fresh entry should hit")
	}

	c.now = func() time.Time { return start.Add(2 * time.Minute) }
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("expired entry should be removed from disk")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	p := c.path("k")
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || hit || data != nil {
		t.Errorf("corrupt entry: data=%q hit=%v err=%v", data, hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}
	if err := c.Clear(); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("Clear left %d entries", len(entries))
	}
}

func TestFileCacheCanceledContext(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := c.Set(ctx, "k", nil, 0); err != context.Canceled {
		t.Errorf("Set err = %v", err)
	}
	if _, _, err := c.Get(ctx, "k"); err != context.Canceled {
		t.Errorf("Get err = %v", err)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()
	doc := Hash([]byte(`{"a":1}`))

	l1 := k.LayoutKey(doc, LayoutKeyOpts{Threshold: 200})
	l2 := k.LayoutKey(doc, LayoutKeyOpts{Threshold: 100})
	if l1 == l2 {
		t.Error("different thresholds should produce different layout keys")
	}
	if !strings.HasPrefix(l1, "layout:") {
		t.Errorf("layout key prefix: %s", l1)
	}

	svg := k.ArtifactKey(doc, ArtifactKeyOpts{Format: "svg"})
	png := k.ArtifactKey(doc, ArtifactKeyOpts{Format: "png"})
	if svg == png {
		t.Error("different formats should produce different artifact keys")
	}
	if !strings.HasPrefix(svg, "artifact:svg:") {
		t.Errorf("artifact key prefix: %s", svg)
	}

	other := k.ArtifactKey(Hash([]byte(`{"a":2}`)), ArtifactKeyOpts{Format: "svg"})
	if svg == other {
		t.Error("different documents should produce different keys")
	}
}

func TestKeyerCollapsedOrderIndependent(t *testing.T) {
	k := NewDefaultKeyer()
	ids := []int{7, 3, 5}
	a := k.ArtifactKey("doc", ArtifactKeyOpts{Format: "svg", Collapsed: ids})
	b := k.ArtifactKey("doc", ArtifactKeyOpts{Format: "svg", Collapsed: []int{3, 5, 7}})
	if a != b {
		t.Error("collapsed id order should not change the key")
	}
	if ids[0] != 7 {
		t.Error("keyer must not reorder the caller's slice")
	}
	c := k.ArtifactKey("doc", ArtifactKeyOpts{Format: "svg", Collapsed: []int{3, 5}})
	if a == c {
		t.Error("different collapsed sets should produce different keys")
	}
}

func TestKeyerGeometryOptions(t *testing.T) {
	k := NewDefaultKeyer()
	base := LayoutKeyOpts{Threshold: 200, NodeWidth: 160, LevelGap: 340, MaxValueLength: 18}
	tests := []struct {
		name   string
		mutate func(*LayoutKeyOpts)
	}{
		{"node width", func(o *LayoutKeyOpts) { o.NodeWidth = 999 }},
		{"level gap", func(o *LayoutKeyOpts) { o.LevelGap = 100 }},
		{"value length", func(o *LayoutKeyOpts) { o.MaxValueLength = 40 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changed := base
			tt.mutate(&changed)
			if k.LayoutKey("doc", base) == k.LayoutKey("doc", changed) {
				t.Error("layout key ignores the option")
			}
			art := ArtifactKeyOpts{Format: "svg", NodeWidth: base.NodeWidth, LevelGap: base.LevelGap, MaxValueLength: base.MaxValueLength}
			artChanged := ArtifactKeyOpts{Format: "svg", NodeWidth: changed.NodeWidth, LevelGap: changed.LevelGap, MaxValueLength: changed.MaxValueLength}
			if k.ArtifactKey("doc", art) == k.ArtifactKey("doc", artChanged) {
				t.Error("artifact key ignores the option")
			}
		})
	}
}
