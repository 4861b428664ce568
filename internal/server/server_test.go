package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/jsonscope/pkg/graph"
	"github.com/matzehuels/jsonscope/pkg/layout"
	"github.com/matzehuels/jsonscope/pkg/viewer"
)

const sample = `{"a":[1,2,{"b":"x"}],"c":{"d":null,"e":{"f":true}},"g":"Hello"}`

func newTestServer(t *testing.T, opts Options) *httptest.Server {
	t.Helper()
	opts.Logger = log.New(io.Discard)
	ts := httptest.NewServer(New(opts).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, r)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func create(t *testing.T, ts *httptest.Server, doc string) summary {
	t.Helper()
	resp := do(t, http.MethodPost, ts.URL+"/documents", doc)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[summary](t, resp)
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, Options{})
	resp := do(t, http.MethodGet, ts.URL+"/healthz", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[map[string]any](t, resp)
	assert.Equal(t, "ok", body["status"])
}

func TestRateLimit(t *testing.T) {
	ts := newTestServer(t, Options{RateLimit: 0.001, RateBurst: 2})

	assert.Equal(t, http.StatusOK, do(t, http.MethodGet, ts.URL+"/healthz", "").StatusCode)
	assert.Equal(t, http.StatusOK, do(t, http.MethodGet, ts.URL+"/healthz", "").StatusCode)

	resp := do(t, http.MethodGet, ts.URL+"/healthz", "")
	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "1", resp.Header.Get("Retry-After"))
	body := decode[errorBody](t, resp)
	assert.Equal(t, "RATE_LIMITED", string(body.Code))
}

func TestCreateAndSummary(t *testing.T) {
	ts := newTestServer(t, Options{})
	sum := create(t, ts, sample)
	assert.NotEmpty(t, sum.ID)
	assert.Equal(t, 10, sum.Rows)
	assert.Equal(t, 3, sum.Visible)

	resp := do(t, http.MethodGet, ts.URL+"/documents/"+sum.ID, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[summary](t, resp)
	assert.Equal(t, sum, got)
}

func TestCreateErrors(t *testing.T) {
	ts := newTestServer(t, Options{Viewer: viewer.Options{MaxDocumentBytes: 16}})

	resp := do(t, http.MethodPost, ts.URL+"/documents", `{"a":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[errorBody](t, resp)
	assert.Equal(t, "PARSE_ERROR", string(body.Code))

	resp = do(t, http.MethodPost, ts.URL+"/documents", `[1,2,3,4,5,6,7,8,9,10]`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
}

func TestUnknownDocument(t *testing.T) {
	ts := newTestServer(t, Options{})
	resp := do(t, http.MethodGet, ts.URL+"/documents/nope/rows", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, http.MethodDelete, ts.URL+"/documents/nope", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDelete(t *testing.T) {
	ts := newTestServer(t, Options{})
	sum := create(t, ts, sample)

	resp := do(t, http.MethodDelete, ts.URL+"/documents/"+sum.ID, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = do(t, http.MethodGet, ts.URL+"/documents/"+sum.ID, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestEviction(t *testing.T) {
	ts := newTestServer(t, Options{MaxDocuments: 2})
	first := create(t, ts, `1`)
	second := create(t, ts, `2`)

	// touch the first so the second becomes least recently used
	do(t, http.MethodGet, ts.URL+"/documents/"+first.ID, "")
	create(t, ts, `3`)

	assert.Equal(t, http.StatusOK, do(t, http.MethodGet, ts.URL+"/documents/"+first.ID, "").StatusCode)
	assert.Equal(t, http.StatusNotFound, do(t, http.MethodGet, ts.URL+"/documents/"+second.ID, "").StatusCode)
}

func TestRowsAndToggle(t *testing.T) {
	ts := newTestServer(t, Options{})
	id := create(t, ts, sample).ID
	base := ts.URL + "/documents/" + id

	rows := decode[rowsResponse](t, do(t, http.MethodGet, base+"/rows?offset=0&height=240", ""))
	require.Len(t, rows.Rows, 3)
	assert.Equal(t, `$["a"]`, rows.Rows[0].Path)
	assert.Equal(t, "array", rows.Rows[0].Kind)
	assert.Equal(t, 3, rows.Rows[0].Count)
	assert.Equal(t, "Hello", rows.Rows[2].Value)
	assert.Equal(t, 72, rows.Range.TotalSize)

	resp := do(t, http.MethodPost, base+"/toggle", `{"path":"$[\"a\"]"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	ch := decode[changeResponse](t, resp)
	assert.True(t, ch.Changed)
	assert.Equal(t, 6, ch.Visible)

	// malformed and unknown paths are no-ops, not errors
	for _, body := range []string{`{"path":"$["}`, `{"path":"$[\"zzz\"]"}`, `{"path":"$[\"g\"]"}`} {
		resp := do(t, http.MethodPost, base+"/toggle", body)
		require.Equal(t, http.StatusOK, resp.StatusCode, body)
		ch := decode[changeResponse](t, resp)
		assert.False(t, ch.Changed, body)
		assert.Equal(t, 6, ch.Visible, body)
	}

	resp = do(t, http.MethodPost, base+"/toggle", `{"path":1}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	ch = decode[changeResponse](t, do(t, http.MethodPost, base+"/expand-all", ""))
	assert.Equal(t, 10, ch.Visible)
	ch = decode[changeResponse](t, do(t, http.MethodPost, base+"/collapse-all", ""))
	assert.Equal(t, 3, ch.Visible)

	resp = do(t, http.MethodGet, base+"/rows?offset=-1", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp = do(t, http.MethodGet, base+"/rows?height=abc", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSearchAndReveal(t *testing.T) {
	ts := newTestServer(t, Options{})
	id := create(t, ts, sample).ID
	base := ts.URL + "/documents/" + id

	resp := do(t, http.MethodPut, base+"/search", `{"term":"hello"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	sum := decode[summary](t, resp)
	assert.Equal(t, "hello", sum.Term)
	assert.Equal(t, 1, sum.Matches)
	assert.Equal(t, 1, sum.Visible)

	resp = do(t, http.MethodPut, base+"/search", `{"term":"a\u0000b"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	do(t, http.MethodPut, base+"/search", `{"term":""}`)
	resp = do(t, http.MethodPost, base+"/reveal", `{"path":"$[\"c\"][\"e\"][\"f\"]"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[map[string]any](t, resp)
	assert.Equal(t, true, body["changed"])
	assert.EqualValues(t, 4, body["position"])

	visible := body["visible"]
	resp = do(t, http.MethodPost, base+"/reveal", `{"path":"nope"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decode[map[string]any](t, resp)
	assert.Equal(t, false, body["changed"])
	assert.EqualValues(t, -1, body["position"])
	assert.Equal(t, visible, body["visible"])
}

func TestQuery(t *testing.T) {
	ts := newTestServer(t, Options{})
	base := ts.URL + "/documents/" + create(t, ts, sample).ID

	resp := do(t, http.MethodGet, base+"/query?expr="+urlEncode(`$..f`), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	matches := decode[[]matchView](t, resp)
	require.Len(t, matches, 1)
	assert.Equal(t, `$["c"]["e"]["f"]`, matches[0].Path)
	assert.Equal(t, true, matches[0].Value)

	resp = do(t, http.MethodGet, base+"/query?expr="+urlEncode(`$[`), "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "QUERY_ERROR", string(decode[errorBody](t, resp).Code))
}

func TestSkeleton(t *testing.T) {
	ts := newTestServer(t, Options{})
	base := ts.URL + "/documents/" + create(t, ts, `{"n":[1,2,3]}`).ID

	resp := do(t, http.MethodGet, base+"/skeleton", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"n":["<number>","[... 2 more items]"]}`, string(data))

	resp = do(t, http.MethodGet, base+"/skeleton?format=yaml&items=3", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<number>")
	assert.NotContains(t, string(data), "more items")

	resp = do(t, http.MethodGet, base+"/skeleton?format=xml", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGraphEndpoints(t *testing.T) {
	ts := newTestServer(t, Options{Viewer: viewer.Options{Layout: layout.Options{CollapseThreshold: 3}}})
	base := ts.URL + "/documents/" + create(t, ts, sample).ID

	resp := do(t, http.MethodGet, base+"/graph", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	l := decode[graph.Layout](t, resp)
	assert.Equal(t, graph.VizTypeHierarchy, l.VizType)
	require.Len(t, l.Nodes, 3, "auto-collapsed graph shows root and its children")

	var a graph.LayoutNode
	for _, n := range l.Nodes {
		if n.Name == "a" {
			a = n
		}
	}
	assert.Equal(t, 1, a.Collapsed)

	resp = do(t, http.MethodPost, base+"/graph/toggle", `{"id":`+itoa(a.ID)+`}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	ch := decode[graphChangeResponse](t, resp)
	assert.True(t, ch.Changed)
	assert.Len(t, ch.Layout.Nodes, 4)

	ch = decode[graphChangeResponse](t, do(t, http.MethodPost, base+"/graph/toggle", `{"id":999}`))
	assert.False(t, ch.Changed)

	ch = decode[graphChangeResponse](t, do(t, http.MethodPost, base+"/graph/expand-all", ""))
	assert.Len(t, ch.Layout.Nodes, 5)
	ch = decode[graphChangeResponse](t, do(t, http.MethodPost, base+"/graph/collapse-all", ""))
	assert.Len(t, ch.Layout.Nodes, 3)

	resp = do(t, http.MethodGet, base+"/graph.dot", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/vnd.graphviz", resp.Header.Get("Content-Type"))
	dot, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(dot, []byte("digraph")))

	resp = do(t, http.MethodGet, base+"/graph.gif", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCORS(t *testing.T) {
	ts := newTestServer(t, Options{AllowAllOrigins: true})
	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/documents", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
