package cli

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/jsonscope/pkg/docpath"
	"github.com/matzehuels/jsonscope/pkg/tree"
	"github.com/matzehuels/jsonscope/pkg/viewer"
	"github.com/matzehuels/jsonscope/pkg/window"
)

// header, search or status line, and help
const viewChrome = 4

var (
	cursorStyle = lipgloss.NewStyle().Background(lipgloss.Color("237"))
	statusStyle = lipgloss.NewStyle().Foreground(colorGray)
)

// =============================================================================
// Key Bindings
// =============================================================================

type keyMap struct {
	Up, Down, PageUp, PageDown, Top, Bottom   key.Binding
	Toggle, ToggleAll, ExpandAll, CollapseAll key.Binding
	Search, NextMatch, PrevMatch              key.Binding
	CopyPath, CopyValue                       key.Binding
	Help, Quit                                key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:      key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
		PageDown:    key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page down")),
		Top:         key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
		Bottom:      key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
		Toggle:      key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("⏎", "toggle")),
		ToggleAll:   key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "toggle subtree")),
		ExpandAll:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "expand all")),
		CollapseAll: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "collapse all")),
		Search:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		NextMatch:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next match")),
		PrevMatch:   key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "prev match")),
		CopyPath:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy path")),
		CopyValue:   key.NewBinding(key.WithKeys("Y"), key.WithHelp("Y", "copy value")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Search, k.NextMatch, k.CopyPath, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom},
		{k.Toggle, k.ToggleAll, k.ExpandAll, k.CollapseAll},
		{k.Search, k.NextMatch, k.PrevMatch},
		{k.CopyPath, k.CopyValue, k.Help, k.Quit},
	}
}

// =============================================================================
// TreeModel - Interactive tree viewer
// =============================================================================

// treeModel is the bubbletea model behind the view command. cursor is a
// position in the visible rows; offset is the first row on screen.
type treeModel struct {
	s     *viewer.Session
	title string
	keys  keyMap
	help  help.Model
	input textinput.Model

	searching bool
	cursor    int
	offset    int
	width     int
	height    int
	status    string

	copy func(string) error
}

func newTreeModel(s *viewer.Session, title string) treeModel {
	in := textinput.New()
	in.Prompt = "/"
	in.Placeholder = "search keys and values"
	in.CharLimit = 256

	return treeModel{
		s:      s,
		title:  title,
		keys:   defaultKeyMap(),
		help:   help.New(),
		input:  in,
		width:  80,
		height: 24,
		copy:   clipboard.WriteAll,
	}
}

func (m treeModel) Init() tea.Cmd {
	return nil
}

func (m treeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.scroll()
		return m, nil
	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m treeModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searching = false
		m.input.Blur()
		m.input.SetValue(m.s.Term())
		return m, nil
	case tea.KeyEnter:
		m.searching = false
		m.input.Blur()
		m.applySearch(m.input.Value())
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m treeModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	rows := len(m.s.Visible())
	page := m.viewportHeight()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.move(-1)
	case key.Matches(msg, m.keys.Down):
		m.move(1)
	case key.Matches(msg, m.keys.PageUp):
		m.move(-page)
	case key.Matches(msg, m.keys.PageDown):
		m.move(page)
	case key.Matches(msg, m.keys.Top):
		m.move(-rows)
	case key.Matches(msg, m.keys.Bottom):
		m.move(rows)
	case key.Matches(msg, m.keys.Toggle):
		m.toggle(false)
	case key.Matches(msg, m.keys.ToggleAll):
		m.toggle(true)
	case key.Matches(msg, m.keys.ExpandAll):
		m.keepCursor(m.s.ExpandAll)
	case key.Matches(msg, m.keys.CollapseAll):
		m.keepCursor(m.s.CollapseAll)
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.input.SetValue(m.s.Term())
		m.input.CursorEnd()
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.NextMatch):
		m.jump(false)
	case key.Matches(msg, m.keys.PrevMatch):
		m.jump(true)
	case key.Matches(msg, m.keys.CopyPath):
		m.copyPath()
	case key.Matches(msg, m.keys.CopyValue):
		m.copyValue()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.scroll()
	}
	return m, nil
}

// viewportHeight is the number of tree rows that fit on screen.
func (m treeModel) viewportHeight() int {
	h := m.height - viewChrome
	if m.help.ShowAll {
		h -= len(m.keys.FullHelp()[0]) - 1
	}
	return max(1, h)
}

func (m treeModel) window() window.Window {
	return window.Window{
		Count:          len(m.s.Visible()),
		RowHeight:      1,
		ViewportHeight: m.viewportHeight(),
	}
}

func (m *treeModel) move(delta int) {
	rows := len(m.s.Visible())
	if rows == 0 {
		m.cursor = 0
		return
	}
	m.cursor = max(0, min(rows-1, m.cursor+delta))
	m.scroll()
}

// scroll keeps the cursor on screen.
func (m *treeModel) scroll() {
	m.offset = m.window().ScrollTo(m.cursor, m.offset)
}

// current returns the row under the cursor.
func (m treeModel) current() (tree.Visible, bool) {
	vis := m.s.Visible()
	if m.cursor < 0 || m.cursor >= len(vis) {
		return tree.Visible{}, false
	}
	return vis[m.cursor], true
}

func (m *treeModel) toggle(recursive bool) {
	v, ok := m.current()
	if !ok || !v.Row.Container {
		return
	}
	m.s.ToggleRow(v.Index, recursive)
	m.follow(v.Index)
}

// keepCursor runs fn and moves the cursor to the same row, or to its
// closest visible ancestor.
func (m *treeModel) keepCursor(fn func()) {
	v, ok := m.current()
	fn()
	if ok {
		m.follow(v.Index)
	}
}

func (m *treeModel) follow(index int) {
	f := m.s.Forest()
	vis := m.s.Visible()
	for i := index; i >= 0; i = f.Row(i).Parent {
		if pos := tree.Position(vis, i); pos >= 0 {
			m.cursor = pos
			m.scroll()
			return
		}
	}
	m.cursor = 0
	m.scroll()
}

func (m *treeModel) applySearch(term string) {
	var at docpath.Path
	if v, ok := m.current(); ok {
		at = v.Row.Path
	}
	if err := m.s.Search(term); err != nil {
		m.status = StyleWarning.Render(err.Error())
		return
	}
	if i, ok := m.s.Forest().Lookup(at); at != nil && ok {
		m.follow(i)
	} else {
		m.cursor = 0
		m.offset = 0
	}
	if term != "" {
		m.jump(false)
		m.status = fmt.Sprintf("%d matches", len(m.s.Matches()))
	}
}

// jump moves to the next (or previous) row matching the search term,
// revealing it when it sits in a collapsed subtree.
func (m *treeModel) jump(backward bool) {
	if m.s.Term() == "" {
		m.status = "no search term"
		return
	}
	from := -1
	if v, ok := m.current(); ok {
		from = v.Index
	}
	p, ok := m.s.NextMatch(from, backward)
	if !ok {
		m.status = "no matches"
		return
	}
	if pos := m.s.Position(p); pos >= 0 {
		m.cursor = pos
		m.scroll()
	}
}

func (m *treeModel) copyPath() {
	v, ok := m.current()
	if !ok {
		return
	}
	m.copyText(v.Row.Path.QueryExpression(), "path")
}

func (m *treeModel) copyValue() {
	v, ok := m.current()
	if !ok {
		return
	}
	data, err := v.Row.Value.MarshalJSON()
	if err != nil {
		m.status = StyleWarning.Render(err.Error())
		return
	}
	m.copyText(string(data), "value")
}

func (m *treeModel) copyText(text, what string) {
	if err := m.copy(text); err != nil {
		m.status = StyleWarning.Render("copy failed: " + err.Error())
		return
	}
	m.status = StyleSuccess.Render(iconSuccess) + " copied " + what
}

func (m treeModel) View() string {
	var b strings.Builder

	rows := len(m.s.Visible())
	b.WriteString(StyleTitle.Render(m.title))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %d/%d rows", min(m.cursor+1, rows), rows)))
	if term := m.s.Term(); term != "" {
		b.WriteString(StyleDim.Render("  search: ") + StyleHighlight.Render(term))
	}
	b.WriteString("\n\n")

	rng := m.window().Range(m.offset)
	vis := m.s.Visible()
	term := m.s.Term()
	for i := rng.Start; i < rng.End && i < rng.Start+m.viewportHeight(); i++ {
		line := styledRow(vis[i], term)
		if w := lipgloss.Width(line); m.width > 0 && w > m.width {
			line = truncateCell(plainRow(vis[i]), m.width)
		}
		if i == m.cursor {
			line = cursorStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if rows == 0 {
		b.WriteString(StyleDim.Render("  (no rows)"))
		b.WriteString("\n")
	}

	switch {
	case m.searching:
		b.WriteString(m.input.View())
	case m.status != "":
		b.WriteString(statusStyle.Render(m.status))
	case rows > 0:
		if v, ok := m.current(); ok {
			b.WriteString(StyleDim.Render(v.Row.Path.QueryExpression()))
		}
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}
