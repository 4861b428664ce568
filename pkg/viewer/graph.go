package viewer

import (
	"context"
	"strconv"
	"time"

	"github.com/matzehuels/jsonscope/pkg/cache"
	"github.com/matzehuels/jsonscope/pkg/errors"
	"github.com/matzehuels/jsonscope/pkg/graph"
	"github.com/matzehuels/jsonscope/pkg/layout"
	"github.com/matzehuels/jsonscope/pkg/observability"
	"github.com/matzehuels/jsonscope/pkg/render"
	"github.com/matzehuels/jsonscope/pkg/render/nodelink"
)

// Graph output formats. The image formats come from [render].
const (
	FormatJSON  = "json"  // positioned layout of the current snapshot
	FormatModel = "model" // full node-link graph, ignoring collapse state
	FormatDOT   = "dot"
)

// GraphFormats lists every format RenderGraph accepts.
var GraphFormats = []string{FormatJSON, FormatModel, FormatDOT, render.FormatSVG, render.FormatPDF, render.FormatPNG}

// Graph returns the current graph snapshot, building it on first use.
func (s *Session) Graph() *layout.Snapshot {
	if s.snap == nil {
		root, _ := s.opts.Graph.BuildNamed(s.doc, graph.RootName, 0)
		s.graphRoot = root
		s.relayout(func() *layout.Snapshot { return layout.New(root, s.opts.Layout) })
		if s.snap.AutoCollapsed() {
			s.log.Info("large document: graph starts collapsed",
				"nodes", root.Count(), "threshold", s.opts.Layout.CollapseThreshold)
		}
	}
	return s.snap
}

// RestoreGraph replaces the graph state with the given collapsed node ids.
func (s *Session) RestoreGraph(collapsed []int) *layout.Snapshot {
	s.Graph()
	s.relayout(func() *layout.Snapshot {
		return layout.WithCollapsed(s.graphRoot, s.opts.Layout, collapsed)
	})
	return s.snap
}

func (s *Session) relayout(fn func() *layout.Snapshot) {
	start := time.Now()
	next := fn()
	took := time.Since(start)
	if next == s.snap {
		return
	}
	s.snap = next
	observability.Viewer().OnLayout(next.Source().Count(), len(next.Visible()), took)
	s.log.Debug("graph laid out", "visible", len(next.Visible()), "duration", took)
}

// ToggleGraph collapses or expands graph node id. It reports false for an
// unknown id, a hidden node, or a leaf.
func (s *Session) ToggleGraph(id int, recursive bool) bool {
	cur := s.Graph()
	s.relayout(func() *layout.Snapshot { return cur.Toggle(id, recursive) })
	changed := s.snap != cur
	observability.Viewer().OnToggle(graphTarget(id), recursive, changed)
	return changed
}

// ExpandGraph opens every graph node.
func (s *Session) ExpandGraph() { s.relayout(s.Graph().ExpandAll) }

// CollapseGraph closes every graph node below the root.
func (s *Session) CollapseGraph() { s.relayout(s.Graph().CollapseAll) }

// RenderGraph renders the current graph snapshot in format (see
// GraphFormats). JSON layouts and image formats are cached when c is non-nil.
func (s *Session) RenderGraph(ctx context.Context, format string, c cache.Cache, keyer cache.Keyer) ([]byte, error) {
	if err := errors.ValidateFormat(format, GraphFormats...); err != nil {
		return nil, err
	}
	snap := s.Graph()
	start := time.Now()

	switch format {
	case FormatModel:
		data, err := graph.MarshalGraph(snap.Source())
		observability.Viewer().OnRender(ctx, format, len(data), time.Since(start), err)
		return data, err
	case FormatDOT:
		data := []byte(nodelink.ToDOT(snap, s.opts.Render))
		observability.Viewer().OnRender(ctx, format, len(data), time.Since(start), nil)
		return data, nil
	}

	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	hash := s.Hash()
	if hash == "" {
		c = nil
	}

	if format == FormatJSON {
		key := keyer.LayoutKey(hash, cache.LayoutKeyOpts{
			Threshold:      s.opts.Layout.CollapseThreshold,
			NodeWidth:      s.opts.Layout.NodeWidth,
			LevelGap:       s.opts.Layout.LevelGap,
			MaxValueLength: s.opts.Graph.MaxValueLength,
			Collapsed:      snap.CollapsedIDs(),
			Detailed:       s.opts.Render.Detailed,
		})
		return s.cached(ctx, c, key, "layout", cache.LayoutTTL, func() ([]byte, error) {
			data, err := graph.MarshalLayout(snap.Export())
			observability.Viewer().OnRender(ctx, format, len(data), time.Since(start), err)
			return data, err
		})
	}

	key := keyer.ArtifactKey(hash, cache.ArtifactKeyOpts{
		Format:         format,
		Scale:          s.opts.Render.Scale,
		Threshold:      s.opts.Layout.CollapseThreshold,
		NodeWidth:      s.opts.Layout.NodeWidth,
		LevelGap:       s.opts.Layout.LevelGap,
		MaxValueLength: s.opts.Graph.MaxValueLength,
		Collapsed:      snap.CollapsedIDs(),
		Detailed:       s.opts.Render.Detailed,
	})
	return s.cached(ctx, c, key, "artifact", cache.ArtifactTTL, func() ([]byte, error) {
		data, err := nodelink.Render(ctx, nodelink.ToDOT(snap, s.opts.Render), format, s.opts.Render.Scale)
		observability.Viewer().OnRender(ctx, format, len(data), time.Since(start), err)
		if err != nil {
			return nil, err
		}
		s.log.Debug("rendered graph", "format", format, "bytes", len(data), "duration", time.Since(start))
		return data, nil
	})
}

// cached returns the entry under key, or produces and stores it. A nil c
// always produces. Cache failures are logged and never fail the render.
func (s *Session) cached(ctx context.Context, c cache.Cache, key, kind string, ttl time.Duration, produce func() ([]byte, error)) ([]byte, error) {
	if c == nil {
		return produce()
	}
	if data, hit, err := c.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, kind)
		s.log.Debug("cache hit", "kind", kind)
		return data, nil
	} else if err != nil {
		s.log.Warn("cache read failed", "error", err)
	}
	observability.Cache().OnCacheMiss(ctx, kind)

	data, err := produce()
	if err != nil {
		return nil, err
	}
	if err := c.Set(ctx, key, data, ttl); err != nil {
		s.log.Warn("cache write failed", "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, kind, len(data))
	}
	return data, nil
}

func graphTarget(id int) string {
	return "node:" + strconv.Itoa(id)
}
