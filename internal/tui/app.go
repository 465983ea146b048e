package tui

import (
	"fmt"
	"strings"

	"todomvc-cli/internal/format"
	"todomvc-cli/internal/log"
	"todomvc-cli/internal/model"
	"todomvc-cli/internal/todo"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
)

const newTodoPlaceholder = "What needs to be done?"

// Lines outside the list: heading, blank, input, blank, tabs, footer, help.
const chromeHeight = 7

type appModel struct {
	st *todo.Store

	width  int
	height int

	mode  mode
	list  list.Model
	input textinput.Model

	// flash is the last persistence error, shown until the next successful action.
	flash string
}

func newAppModel(st *todo.Store) appModel {
	in := textinput.New()
	in.Placeholder = newTodoPlaceholder
	in.Prompt = ""
	in.CharLimit = 0

	m := appModel{
		st:    st,
		mode:  modeList,
		list:  newList(nil),
		input: in,
	}
	m.refresh()
	return m
}

func (m appModel) Init() tea.Cmd { return nil }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeAdd:
			return m.updateAdd(msg)
		case modeEdit:
			return m.updateEdit(msg)
		default:
			return m.updateList(msg)
		}
	}
	return m, nil
}

func (m appModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "n", "enter":
		m.mode = modeAdd
		m.input.SetValue("")
		m.input.Placeholder = newTodoPlaceholder
		cmd := m.input.Focus()
		return m, cmd
	case " ", "space", "x":
		if t, ok := selectedTodo(m.list); ok {
			_, _, err := m.st.Toggle(t.ID)
			m.afterMutation(err)
		}
		return m, nil
	case "e":
		t, ok := selectedTodo(m.list)
		if !ok || !m.st.BeginEdit(t.ID) {
			return m, nil
		}
		m.mode = modeEdit
		m.input.SetValue(t.Title)
		m.input.CursorEnd()
		cmd := m.input.Focus()
		return m, cmd
	case "d", "delete":
		if t, ok := selectedTodo(m.list); ok {
			_, err := m.st.Remove(t.ID)
			m.afterMutation(err)
		}
		return m, nil
	case "a":
		if len(m.st.Todos()) == 0 {
			return m, nil
		}
		m.afterMutation(m.st.SetAllCompleted(!m.st.IsAllDone()))
		return m, nil
	case "C":
		_, err := m.st.ClearCompleted()
		m.afterMutation(err)
		return m, nil
	case "tab":
		m.setVisibility(m.st.Visibility().Next())
		return m, nil
	case "1":
		m.setVisibility(model.VisibilityAll)
		return m, nil
	case "2":
		m.setVisibility(model.VisibilityActive)
		return m, nil
	case "3":
		m.setVisibility(model.VisibilityCompleted)
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m appModel) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.leaveInput()
		return m, nil
	case "enter":
		// The input stays focused so several todos can be entered in a row.
		t, ok, err := m.st.Add(m.input.Value())
		if ok {
			m.input.SetValue("")
			m.afterMutation(err)
			m.selectID(t.ID)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m appModel) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.st.CancelEdit()
		m.leaveInput()
		return m, nil
	case "enter":
		id := ""
		if buf, ok := m.st.Editing(); ok {
			id = buf.ID
		}
		_, err := m.st.CommitEdit()
		m.leaveInput()
		m.afterMutation(err)
		m.selectID(id)
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.st.SetEditTitle(m.input.Value())
	return m, cmd
}

func (m *appModel) leaveInput() {
	m.mode = modeList
	m.input.SetValue("")
	m.input.Blur()
}

func (m *appModel) setVisibility(v model.Visibility) {
	if m.st.SetVisibility(v) {
		m.refresh()
	}
}

// afterMutation rebuilds the list from the store and records a failed save.
func (m *appModel) afterMutation(err error) {
	if err != nil {
		log.Error().Err(err).Msg("tui: persist")
		m.flash = err.Error()
	} else {
		m.flash = ""
	}
	m.refresh()
}

func (m *appModel) refresh() {
	idx := m.list.Index()
	m.list.SetItems(todoItems(m.st.VisibleTodos()))
	if n := len(m.list.Items()); n > 0 {
		if idx >= n {
			idx = n - 1
		}
		m.list.Select(idx)
	}
}

func (m *appModel) selectID(id string) {
	for i, it := range m.list.Items() {
		if ti, ok := it.(todoItem); ok && ti.todo.ID == id {
			m.list.Select(i)
			return
		}
	}
}

func (m *appModel) resize() {
	w := m.width
	if w < 20 {
		w = 20
	}
	h := m.height - chromeHeight
	if h < 1 {
		h = 1
	}
	m.list.SetSize(w, h)
	m.input.Width = w - 6
}

func (m appModel) View() string {
	if m.width == 0 {
		return ""
	}
	snap := m.st.Snapshot()

	var b strings.Builder
	b.WriteString(styleHeading().Render(strings.ToUpper("todos")))
	b.WriteString("\n\n")
	b.WriteString(m.viewInput(len(snap.Todos) > 0, snap.AllDone))
	b.WriteString("\n\n")

	if len(snap.Todos) > 0 {
		b.WriteString(m.list.View())
		b.WriteString("\n")
		b.WriteString(m.viewFooter(snap))
		b.WriteString("\n")
	}
	if m.flash != "" {
		b.WriteString(styleError().Render("save failed: " + m.flash))
		b.WriteString("\n")
	}
	b.WriteString(styleMuted().Render(m.helpLine()))
	return b.String()
}

func (m appModel) viewInput(hasTodos, allDone bool) string {
	prefix := " "
	if hasTodos {
		st := styleMuted()
		if allDone {
			st = lipgloss.NewStyle().Foreground(colorDoneMark)
		}
		prefix = st.Render(glyphToggleAll())
	}
	view := m.input.View()
	if m.mode == modeList {
		view = styleMuted().Render(newTodoPlaceholder)
	}
	return renderInputLine(m.width, prefix, view)
}

func (m appModel) viewFooter(snap todo.Snapshot) string {
	parts := []string{format.ItemsLeft(snap.ActiveCount)}

	var tabs []string
	for i, v := range model.Visibilities() {
		label := fmt.Sprintf("%d %s", i+1, strings.ToUpper(string(v[:1]))+string(v[1:]))
		tabs = append(tabs, styleFilterTab(v == snap.Visibility).Render(label))
	}
	parts = append(parts, strings.Join(tabs, "  "))

	if snap.CompletedCount > 0 {
		parts = append(parts, styleMuted().Render("C clear completed"))
	}
	return strings.Join(parts, "   "+styleMuted().Render(glyphSeparator())+"   ")
}

func (m appModel) helpLine() string {
	switch m.mode {
	case modeAdd:
		return "enter add  esc done"
	case modeEdit:
		return "enter save (empty deletes)  esc cancel"
	default:
		return "n new  space toggle  e edit  d delete  a toggle all  tab filter  q quit"
	}
}
