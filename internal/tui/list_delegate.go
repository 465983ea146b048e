package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// todoDelegate renders one line per todo: check glyph, then title.
type todoDelegate struct {
	normal   lipgloss.Style
	done     lipgloss.Style
	mark     lipgloss.Style
	selected lipgloss.Style
}

func newTodoDelegate() todoDelegate {
	return todoDelegate{
		normal: lipgloss.NewStyle(),
		done:   lipgloss.NewStyle().Foreground(colorDone).Strikethrough(true),
		mark:   lipgloss.NewStyle().Foreground(colorDoneMark),
		selected: lipgloss.NewStyle().
			Foreground(colorSelectedFg).
			Background(colorSelectedBg).
			Bold(true),
	}
}

func (d todoDelegate) Height() int  { return 1 }
func (d todoDelegate) Spacing() int { return 0 }
func (d todoDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d todoDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	contentW := m.Width()
	if contentW < 4 {
		fmt.Fprint(w, "")
		return
	}
	it, ok := item.(todoItem)
	if !ok {
		fmt.Fprint(w, xansi.Cut(fmt.Sprint(item), 0, contentW))
		return
	}

	box := glyphCheckbox(it.todo.Completed)
	title := it.todo.Title
	if it.todo.Completed {
		box = d.mark.Render(box)
		title = d.done.Render(title)
	}
	line := " " + box + " " + title

	lineW := xansi.StringWidth(line)
	if lineW < contentW {
		line += strings.Repeat(" ", contentW-lineW)
	} else if lineW > contentW {
		line = xansi.Cut(line, 0, contentW)
	}

	if index == m.Index() {
		line = d.selected.Render(line)
	}
	fmt.Fprint(w, line)
}
