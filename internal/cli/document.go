package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/matzehuels/jsonscope/pkg/jsonval"
	"github.com/matzehuels/jsonscope/pkg/tree"
	"github.com/matzehuels/jsonscope/pkg/viewer"
)

// openDocument loads path ("-" for stdin) into a session and logs the
// elapsed time. Each tweak adjusts the configured viewer options first.
func (c *CLI) openDocument(ctx context.Context, path string, tweaks ...func(*viewer.Options)) (*viewer.Session, error) {
	opts := c.viewerOptions()
	for _, tweak := range tweaks {
		tweak(&opts)
	}
	prog := newProgress(c.Logger)
	s, err := viewer.Open(ctx, path, opts)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("document ready", "rows", s.Forest().Len(), "hash", shortHash(s.Hash()))
	prog.done(fmt.Sprintf("Loaded %s", displayName(path)))
	return s, nil
}

func displayName(path string) string {
	if path == "-" {
		return "stdin"
	}
	return filepath.Base(path)
}

// =============================================================================
// Row formatting
// =============================================================================

const (
	markerExpanded  = "▾"
	markerCollapsed = "▸"
	markerLeaf      = " "
)

// rowMarker returns the disclosure marker of a visible row.
func rowMarker(v tree.Visible) string {
	switch {
	case !v.Row.Container:
		return markerLeaf
	case v.Expanded:
		return markerExpanded
	default:
		return markerCollapsed
	}
}

// rowSummary renders a row's value: the literal for scalars and a
// bracketed child count for containers.
func rowSummary(v jsonval.Value) string {
	switch v.Kind() {
	case jsonval.KindArray:
		return "[" + strconv.Itoa(v.Len()) + "]"
	case jsonval.KindObject:
		return "{" + strconv.Itoa(v.Len()) + "}"
	case jsonval.KindString:
		return strconv.Quote(v.StringValue())
	default:
		return v.Text()
	}
}

// plainRow is the uncoloured one-line form of a row.
func plainRow(v tree.Visible) string {
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", v.Row.Depth))
	b.WriteString(rowMarker(v))
	b.WriteString(" ")
	b.WriteString(v.Row.Label())
	b.WriteString(": ")
	b.WriteString(rowSummary(v.Row.Value))
	return b.String()
}

// styledRow is plainRow with the palette applied; own search matches are
// highlighted.
func styledRow(v tree.Visible, term string) string {
	key := v.Row.Label()
	if term != "" && v.Row.Match {
		key = StyleHighlight.Bold(true).Render(key)
	}
	val := rowSummary(v.Row.Value)
	switch {
	case v.Row.Container:
		val = StyleDim.Render(val)
	case v.Row.Value.Kind() == jsonval.KindString:
		val = StyleValue.Render(val)
	default:
		val = StyleNumber.Render(val)
	}
	return strings.Repeat("  ", v.Row.Depth) + StyleDim.Render(rowMarker(v)) + " " + key + StyleDim.Render(": ") + val
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
