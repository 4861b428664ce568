package cli

import (
	"context"
	"errors"
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/jsonscope/pkg/viewer"
)

func newTestModel(t *testing.T) (treeModel, *[]string) {
	t.Helper()
	s, err := viewer.Load(context.Background(), []byte(sampleDoc), viewer.Options{Logger: log.New(io.Discard)})
	require.NoError(t, err)

	m := newTreeModel(s, "doc.json")
	var copied []string
	m.copy = func(text string) error {
		copied = append(copied, text)
		return nil
	}
	return m, &copied
}

func press(m treeModel, keys ...tea.KeyMsg) treeModel {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(treeModel)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var enter = tea.KeyMsg{Type: tea.KeyEnter}

func cursorPath(m treeModel) string {
	v, ok := m.current()
	if !ok {
		return ""
	}
	return v.Row.Path.String()
}

func TestTreeModelNavigation(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(m, runes("j"), runes("j"), runes("j"))
	assert.Equal(t, 2, m.cursor, "cursor stops at the last row")
	assert.Equal(t, `$["g"]`, cursorPath(m))

	m = press(m, runes("g"))
	assert.Equal(t, 0, m.cursor)

	m = press(m, enter)
	assert.Len(t, m.s.Visible(), 6)
	assert.Equal(t, `$["a"]`, cursorPath(m))

	m = press(m, runes("G"))
	assert.Equal(t, `$["g"]`, cursorPath(m))
}

func TestTreeModelCollapseKeepsCursor(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(m, runes("e"), runes("j"), runes("j"), runes("j"), runes("j"))
	require.Equal(t, `$["a"][2]["b"]`, cursorPath(m))

	m = press(m, runes("c"))
	assert.Len(t, m.s.Visible(), 3)
	assert.Equal(t, `$["a"]`, cursorPath(m), "cursor moves to the closest visible ancestor")
}

func TestTreeModelSearch(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(m, runes("/"))
	require.True(t, m.searching)
	m = press(m, runes("x"), enter)

	assert.False(t, m.searching)
	assert.Equal(t, "x", m.s.Term())
	assert.Equal(t, `$["a"][2]["b"]`, cursorPath(m))
	assert.Equal(t, "1 matches", m.status)

	m = press(m, runes("g"), runes("n"))
	assert.Equal(t, `$["a"][2]["b"]`, cursorPath(m), "n wraps to the only match")

	m = press(m, runes("/"), tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.searching)
	assert.Equal(t, "x", m.s.Term(), "escape keeps the current search")
}

func TestTreeModelNextWithoutSearch(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(m, runes("n"))
	assert.Equal(t, "no search term", m.status)
}

func TestTreeModelCopy(t *testing.T) {
	m, copied := newTestModel(t)

	m = press(m, runes("j"), runes("y"), runes("Y"))
	assert.Equal(t, []string{`$["c"]`, `{"d":null,"e":{"f":true}}`}, *copied)
	assert.Contains(t, m.status, "copied value")

	m.copy = func(string) error { return errors.New("no clipboard") }
	m = press(m, runes("y"))
	assert.Contains(t, m.status, "no clipboard")
}

func TestTreeModelView(t *testing.T) {
	m, _ := newTestModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 10})
	m = next.(treeModel)

	view := m.View()
	assert.Contains(t, view, "doc.json")
	assert.Contains(t, view, "1/3 rows")
	assert.Contains(t, view, `▸ c: {2}`)
	assert.Contains(t, view, `$["a"]`)
}

func TestTreeModelScrolls(t *testing.T) {
	m, _ := newTestModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: viewChrome + 3})
	m = next.(treeModel)

	m = press(m, runes("e"), runes("G"))
	assert.Equal(t, 9, m.cursor)
	assert.Equal(t, 7, m.offset)

	m = press(m, runes("g"))
	assert.Equal(t, 0, m.offset)
}

func TestTreeModelQuit(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
