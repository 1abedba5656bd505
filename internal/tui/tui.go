// Package tui is the interactive list view. Every edit is applied to the
// underlying *model.List as it happens; callers persist it afterwards.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/idilsaglam/todolist/internal/model"
)

// listItem adapts a positioned Todo to bubbles/list.Item.
type listItem struct {
	pos  int
	todo model.Todo
}

func (i listItem) Title() string       { return i.todo.Title }
func (i listItem) Description() string { return i.todo.Description }
func (i listItem) FilterValue() string { return i.todo.Title }

// Custom delegate to control how items render (single line)
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	box := mutedStyle.Render(boxUnchecked)
	text := it.todo.Title
	if it.todo.Done {
		box = successStyle.Render(boxChecked)
		text = doneStyle.Render(text)
	}
	if it.todo.Description != "" {
		text += " " + mutedStyle.Render("— "+it.todo.Description)
	}

	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintln(w, prefix+box+" "+text)
}

type modelTUI struct {
	list    list.Model
	todos   *model.List
	changed bool
	width   int
	height  int

	// Inline add / edit share one text input
	adding   bool
	editing  bool
	editPos  int
	ti       textinput.Model
	inputErr string

	// Undo support (single-level, removals only)
	canUndo  bool
	undoPos  int
	undoTodo model.Todo
}

var (
	addBind     = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	editBind    = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))
	toggleBind  = key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle"))
	removeBind  = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	undoBind    = key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo"))
	allDoneBind = key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "all done"))
	allOpenBind = key.NewBinding(key.WithKeys("U"), key.WithHelp("U", "all undone"))
)

func newModel(todos *model.List) modelTUI {
	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("item", "items")
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{toggleBind, addBind, editBind, removeBind, undoBind}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{toggleBind, addBind, editBind, removeBind, undoBind, allDoneBind, allOpenBind}
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	m := modelTUI{list: l, todos: todos, ti: ti, width: 80, height: 24}
	m.sync()
	m.resize()
	return m
}

// Run starts the Bubble Tea program over todos and reports whether
// anything was changed.
func Run(todos *model.List) (bool, error) {
	p := tea.NewProgram(newModel(todos), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	fm, ok := final.(modelTUI)
	if !ok {
		return false, nil
	}
	return fm.changed, nil
}

// sync rebuilds the visible items and header from the list.
func (m *modelTUI) sync() tea.Cmd {
	items := make([]list.Item, 0, m.todos.Len())
	for i, td := range m.todos.All() {
		items = append(items, listItem{pos: i, todo: td})
	}
	cmd := m.list.SetItems(items)
	if n := len(m.list.VisibleItems()); n > 0 && m.list.Index() >= n {
		m.list.Select(n - 1)
	}

	d, p := m.todos.Stats()
	m.list.Title = fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		titleStyle.Render(m.todos.Title()),
		successStyle.Render("✔"), d,
		pendingStyle.Render("•"), p,
		accentStyle.Render("Total"), m.todos.Len(),
	)
	return cmd
}

func (m *modelTUI) resize() {
	h := m.height - 4
	if m.adding || m.editing {
		h -= 4
	}
	if h < 1 {
		h = 1
	}
	m.list.SetSize(m.width-4, h)
}

// selected returns the list position of the highlighted item.
func (m modelTUI) selected() (int, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return 0, false
	}
	return it.pos, true
}

func (m *modelTUI) openInput(editing bool, value, placeholder string) tea.Cmd {
	m.adding, m.editing = !editing, editing
	m.inputErr = ""
	m.ti.SetValue(value)
	m.ti.CursorEnd()
	m.ti.Placeholder = placeholder
	m.resize()
	return m.ti.Focus()
}

func (m *modelTUI) closeInput() {
	m.adding, m.editing = false, false
	m.inputErr = ""
	m.ti.SetValue("")
	m.ti.Blur()
	m.resize()
}

// Update and View implement Bubble Tea's Model on modelTUI
func (m modelTUI) Init() tea.Cmd { return nil }

func (m modelTUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		m.resize()
		return m, nil
	}

	if m.adding || m.editing {
		return m.updateInput(msg)
	}

	// Keys belong to the filter prompt while the user is typing in it.
	if km, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch km.String() {
		case "q", "esc":
			if m.list.FilterState() == list.FilterApplied {
				m.list.ResetFilter()
				return m, nil
			}
			return m, tea.Quit
		case " ":
			if pos, ok := m.selected(); ok {
				td, _ := m.todos.ItemAt(pos)
				if td.Done {
					_ = m.todos.MarkUndoneAt(pos)
				} else {
					_ = m.todos.MarkDoneAt(pos)
				}
				m.changed = true
				return m, m.sync()
			}
			return m, nil
		case "d":
			if pos, ok := m.selected(); ok {
				td, err := m.todos.RemoveAt(pos)
				if err == nil {
					m.undoTodo, m.undoPos, m.canUndo = td, pos, true
					m.changed = true
					return m, m.sync()
				}
			}
			return m, nil
		case "u":
			if m.canUndo {
				pos := min(m.undoPos, m.todos.Len())
				if err := m.todos.InsertAt(pos, m.undoTodo); err == nil {
					m.canUndo = false
					m.changed = true
					return m, m.sync()
				}
			}
			return m, nil
		case "D":
			m.todos.MarkAllDone()
			m.changed = true
			return m, m.sync()
		case "U":
			m.todos.MarkAllUndone()
			m.changed = true
			return m, m.sync()
		case "a":
			return m, m.openInput(false, "", "New item title...")
		case "e":
			if pos, ok := m.selected(); ok {
				td, _ := m.todos.ItemAt(pos)
				m.editPos = pos
				return m, m.openInput(true, td.Title, "Edit item title...")
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m modelTUI) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "enter":
			title := strings.TrimSpace(m.ti.Value())
			if title == "" {
				m.inputErr = "Title cannot be empty"
				return m, nil
			}
			if m.adding {
				m.todos.Add(model.New(title))
			} else {
				_ = m.todos.Update(m.editPos, func(td *model.Todo) { td.Title = title })
			}
			m.changed = true
			m.closeInput()
			return m, m.sync()
		case "esc":
			m.closeInput()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m modelTUI) View() string {
	content := m.list.View()
	if m.adding || m.editing {
		title := "Add new item"
		if m.editing {
			title = "Edit item"
		}
		if m.inputErr != "" {
			title += " — " + errorStyle.Render(m.inputErr)
		}
		content += "\n" + frameStyle.Render(title+"\n"+m.ti.View())
	}
	return frameStyle.Render(content)
}
