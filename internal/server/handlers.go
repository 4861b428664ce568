package server

import (
	"bytes"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/jsonscope/pkg/buildinfo"
	"github.com/matzehuels/jsonscope/pkg/docpath"
	"github.com/matzehuels/jsonscope/pkg/errors"
	"github.com/matzehuels/jsonscope/pkg/graph"
	pkgio "github.com/matzehuels/jsonscope/pkg/io"
	"github.com/matzehuels/jsonscope/pkg/skeleton"
	"github.com/matzehuels/jsonscope/pkg/tree"
	"github.com/matzehuels/jsonscope/pkg/viewer"
	"github.com/matzehuels/jsonscope/pkg/window"
)

// =============================================================================
// Wire types
// =============================================================================

type summary struct {
	ID      string `json:"id"`
	Hash    string `json:"hash"`
	Term    string `json:"term"`
	Rows    int    `json:"rows"`
	Visible int    `json:"visible"`
	Matches int    `json:"matches"`
}

type rowView struct {
	Index     int    `json:"index"`
	Path      string `json:"path"`
	Key       string `json:"key"`
	Depth     int    `json:"depth"`
	Kind      string `json:"kind"`
	Container bool   `json:"container"`
	Expanded  bool   `json:"expanded"`
	Match     bool   `json:"match"`
	Value     string `json:"value,omitempty"`
	Count     int    `json:"count,omitempty"` // direct children
}

type rowsResponse struct {
	Range window.Range `json:"range"`
	Rows  []rowView    `json:"rows"`
}

type toggleRequest struct {
	Path      string `json:"path"`
	Recursive bool   `json:"recursive"`
}

type graphToggleRequest struct {
	ID        int  `json:"id"`
	Recursive bool `json:"recursive"`
}

type changeResponse struct {
	Changed bool `json:"changed"`
	Visible int  `json:"visible"`
}

type graphChangeResponse struct {
	Changed bool         `json:"changed"`
	Layout  graph.Layout `json:"layout"`
}

type matchView struct {
	Path  string `json:"path"`
	Value any    `json:"value"`
}

func summarize(id string, s *viewer.Session) summary {
	return summary{
		ID:      id,
		Hash:    s.Hash(),
		Term:    s.Term(),
		Rows:    s.Forest().Len(),
		Visible: len(s.Visible()),
		Matches: len(s.Forest().Matches()),
	}
}

func toRowView(v tree.Visible) rowView {
	r := v.Row
	rv := rowView{
		Index:     v.Index,
		Path:      r.Path.QueryExpression(),
		Key:       r.Label(),
		Depth:     r.Depth,
		Kind:      r.Value.Kind().String(),
		Container: r.Container,
		Expanded:  v.Expanded,
		Match:     r.Match,
	}
	if r.Container {
		rv.Count = r.Value.Len()
	} else {
		rv.Value = r.Value.Text()
	}
	return rv
}

// =============================================================================
// Document lifecycle
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"build":     buildinfo.Get(),
		"documents": s.store.len(),
	})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	limit := s.opts.Viewer.MaxDocumentBytes
	if limit == 0 {
		limit = pkgio.DefaultMaxBytes
	}
	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(r.Body, limit+1))
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "reading body: %v", err))
		return
	}
	if err := errors.ValidateDocumentSize(n, limit); err != nil {
		s.writeError(w, r, err)
		return
	}

	sess, err := viewer.Load(r.Context(), buf.Bytes(), s.opts.Viewer)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	doc, evicted := s.store.add(sess)
	for _, id := range evicted {
		s.log.Info("document evicted", "id", id)
	}
	s.log.Debug("document created", "id", doc.id, "bytes", n)
	writeJSON(w, http.StatusCreated, summarize(doc.id, sess))
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.store.remove(id) {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "document %s not found", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// withSession resolves the {id} parameter and runs h with the document lock
// held.
func (s *Server) withSession(h func(w http.ResponseWriter, r *http.Request, id string, sess *viewer.Session)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		doc, ok := s.store.get(id)
		if !ok {
			s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "document %s not found", id))
			return
		}
		doc.mu.Lock()
		defer doc.mu.Unlock()
		h(w, r, id, doc.session)
	}
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request, id string, sess *viewer.Session) {
	writeJSON(w, http.StatusOK, summarize(id, sess))
}

// =============================================================================
// Tree view
// =============================================================================

func (s *Server) handleRows(w http.ResponseWriter, r *http.Request, _ string, sess *viewer.Session) {
	q := r.URL.Query()
	offset, err := intParam(q.Get("offset"), 0)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	height, err := intParam(q.Get("height"), 600)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	rng, rows := sess.Rows(offset, height)
	out := rowsResponse{Range: rng, Rows: make([]rowView, len(rows))}
	for i, v := range rows {
		out.Rows[i] = toRowView(v)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request, id string, sess *viewer.Session) {
	var req struct {
		Term string `json:"term"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := sess.Search(req.Term); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summarize(id, sess))
}

// handleToggle answers 200 with changed=false for malformed or unknown
// paths; toggling is never an error.
func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request, _ string, sess *viewer.Session) {
	var req toggleRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	changed := sess.ToggleExpr(req.Path, req.Recursive)
	writeJSON(w, http.StatusOK, changeResponse{Changed: changed, Visible: len(sess.Visible())})
}

func (s *Server) handleReveal(w http.ResponseWriter, r *http.Request, _ string, sess *viewer.Session) {
	var req struct {
		Path string `json:"path"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	// A malformed path reveals nothing, like a toggle on an unknown path.
	p, err := docpath.Parse(req.Path)
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"changed":  false,
			"visible":  len(sess.Visible()),
			"position": -1,
		})
		return
	}
	found := sess.Reveal(p)
	writeJSON(w, http.StatusOK, map[string]any{
		"changed":  found,
		"visible":  len(sess.Visible()),
		"position": sess.Position(p),
	})
}

func (s *Server) handleExpandAll(w http.ResponseWriter, r *http.Request, _ string, sess *viewer.Session) {
	sess.ExpandAll()
	writeJSON(w, http.StatusOK, changeResponse{Changed: true, Visible: len(sess.Visible())})
}

func (s *Server) handleCollapseAll(w http.ResponseWriter, r *http.Request, _ string, sess *viewer.Session) {
	sess.CollapseAll()
	writeJSON(w, http.StatusOK, changeResponse{Changed: true, Visible: len(sess.Visible())})
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request, _ string, sess *viewer.Session) {
	matches, err := sess.Query(r.URL.Query().Get("expr"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := make([]matchView, len(matches))
	for i, m := range matches {
		out[i] = matchView{Path: m.Path.QueryExpression(), Value: m.Value}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSkeleton(w http.ResponseWriter, r *http.Request, _ string, sess *viewer.Session) {
	q := r.URL.Query()
	items, err := intParam(q.Get("items"), skeleton.DefaultMaxArrayItems)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sk := sess.Skeleton(items)

	switch format := q.Get("format"); format {
	case "", "json":
		writeJSON(w, http.StatusOK, sk)
	case "yaml":
		w.Header().Set("Content-Type", "application/yaml")
		if err := skeleton.WriteYAML(w, sk); err != nil {
			s.log.Error("skeleton yaml", "error", err)
		}
	default:
		s.writeError(w, r, errors.ValidateFormat(format, "json", "yaml"))
	}
}

// =============================================================================
// Graph view
// =============================================================================

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request, _ string, sess *viewer.Session) {
	writeJSON(w, http.StatusOK, sess.Graph().Export())
}

var contentTypes = map[string]string{
	viewer.FormatJSON:  "application/json",
	viewer.FormatModel: "application/json",
	viewer.FormatDOT:   "text/vnd.graphviz",
	"svg":              "image/svg+xml",
	"pdf":              "application/pdf",
	"png":              "image/png",
}

func (s *Server) handleGraphRender(w http.ResponseWriter, r *http.Request, _ string, sess *viewer.Session) {
	format := chi.URLParam(r, "format")
	data, err := sess.RenderGraph(r.Context(), format, s.opts.Cache, s.keyer)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleGraphToggle(w http.ResponseWriter, r *http.Request, _ string, sess *viewer.Session) {
	var req graphToggleRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	changed := sess.ToggleGraph(req.ID, req.Recursive)
	writeJSON(w, http.StatusOK, graphChangeResponse{Changed: changed, Layout: sess.Graph().Export()})
}

func (s *Server) handleGraphExpandAll(w http.ResponseWriter, r *http.Request, _ string, sess *viewer.Session) {
	sess.ExpandGraph()
	writeJSON(w, http.StatusOK, graphChangeResponse{Changed: true, Layout: sess.Graph().Export()})
}

func (s *Server) handleGraphCollapseAll(w http.ResponseWriter, r *http.Request, _ string, sess *viewer.Session) {
	sess.CollapseGraph()
	writeJSON(w, http.StatusOK, graphChangeResponse{Changed: true, Layout: sess.Graph().Export()})
}

func intParam(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid integer parameter %q", s)
	}
	return n, nil
}
