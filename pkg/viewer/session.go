package viewer

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/jsonscope/pkg/cache"
	"github.com/matzehuels/jsonscope/pkg/docpath"
	"github.com/matzehuels/jsonscope/pkg/errors"
	"github.com/matzehuels/jsonscope/pkg/graph"
	pkgio "github.com/matzehuels/jsonscope/pkg/io"
	"github.com/matzehuels/jsonscope/pkg/jsonval"
	"github.com/matzehuels/jsonscope/pkg/layout"
	"github.com/matzehuels/jsonscope/pkg/observability"
	"github.com/matzehuels/jsonscope/pkg/query"
	"github.com/matzehuels/jsonscope/pkg/render/nodelink"
	"github.com/matzehuels/jsonscope/pkg/skeleton"
	"github.com/matzehuels/jsonscope/pkg/tree"
	"github.com/matzehuels/jsonscope/pkg/window"
)

// Options configures a session. Zero fields take the package defaults.
type Options struct {
	MaxDocumentBytes int64
	RowHeight        int
	Overscan         int
	Graph            graph.Options
	Layout           layout.Options
	Render           nodelink.Options
	Logger           *log.Logger
}

func (o Options) withDefaults() Options {
	if o.MaxDocumentBytes == 0 {
		o.MaxDocumentBytes = pkgio.DefaultMaxBytes
	}
	if o.RowHeight <= 0 {
		o.RowHeight = window.DefaultRowHeight
	}
	if o.Overscan < 0 {
		o.Overscan = 0
	} else if o.Overscan == 0 {
		o.Overscan = window.DefaultOverscan
	}
	o.Layout = o.Layout.WithDefaults()
	if o.Graph.MaxValueLength <= 0 {
		o.Graph.MaxValueLength = graph.DefaultMaxValueLength
	}
	if o.Render.Scale <= 0 {
		o.Render.Scale = nodelink.DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	return o
}

// Session is one open document.
type Session struct {
	opts Options
	log  *log.Logger

	doc  jsonval.Value
	hash string

	forest  *tree.Forest
	exp     *tree.Expansion
	visible []tree.Visible // nil when stale

	graphRoot *graph.Node
	snap      *layout.Snapshot
}

// Open reads and parses the file at path ("-" for standard input).
func Open(ctx context.Context, path string, opts Options) (*Session, error) {
	opts = opts.withDefaults()
	start := time.Now()
	data, err := pkgio.ReadFile(path, opts.MaxDocumentBytes)
	if err != nil {
		observability.Viewer().OnLoad(ctx, 0, time.Since(start), err)
		return nil, err
	}
	s, err := Load(ctx, data, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Load parses data as a JSON document.
func Load(ctx context.Context, data []byte, opts Options) (*Session, error) {
	opts = opts.withDefaults()
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := errors.ValidateDocumentSize(int64(len(data)), opts.MaxDocumentBytes); err != nil {
		observability.Viewer().OnLoad(ctx, len(data), time.Since(start), err)
		return nil, err
	}
	doc, err := jsonval.ParseBytes(data)
	observability.Viewer().OnLoad(ctx, len(data), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	s := New(doc, opts)
	s.hash = cache.Hash(data)
	s.log.Debug("document loaded", "bytes", len(data), "duration", time.Since(start))
	return s, nil
}

// New starts a session over an already parsed document.
func New(doc jsonval.Value, opts Options) *Session {
	opts = opts.withDefaults()
	s := &Session{opts: opts, log: opts.Logger, doc: doc}
	s.forest = s.project("")
	s.exp = tree.NewExpansion(s.forest)
	return s
}

// Document returns the parsed document.
func (s *Session) Document() jsonval.Value { return s.doc }

// encodeDocument produces the bytes hashed for sessions created with [New].
var encodeDocument = jsonval.Value.MarshalJSON

// Hash returns the SHA-256 of the loaded bytes, or of the compact encoding
// for sessions created with [New]. It keys the render cache. Hash is empty
// when the document cannot be encoded; rendering then bypasses the cache.
func (s *Session) Hash() string {
	if s.hash == "" {
		data, err := encodeDocument(s.doc)
		if err != nil {
			s.log.Warn("cannot hash document, render cache disabled", "error", err)
			return ""
		}
		s.hash = cache.Hash(data)
	}
	return s.hash
}

// Options returns the effective options.
func (s *Session) Options() Options { return s.opts }

// Value resolves p against the document.
func (s *Session) Value(p docpath.Path) (jsonval.Value, bool) {
	return p.Lookup(s.doc)
}

// Query evaluates a JSONPath expression against the document.
func (s *Session) Query(expr string) ([]query.Match, error) {
	matches, err := query.Run(s.doc, expr)
	if err != nil {
		return nil, err
	}
	s.log.Debug("query", "expr", expr, "matches", len(matches))
	return matches, nil
}

// Skeleton returns the document's shape; see [skeleton.Of].
func (s *Session) Skeleton(maxArrayItems int) jsonval.Value {
	return skeleton.Of(s.doc, maxArrayItems)
}
