package format

import (
	"fmt"
	"strings"

	"todomvc-cli/internal/model"

	"github.com/charmbracelet/lipgloss"
)

var (
	doneStyle  = lipgloss.NewStyle().Strikethrough(true).Faint(true)
	idStyle    = lipgloss.NewStyle().Faint(true)
	checkDone  = "[x]"
	checkEmpty = "[ ]"
)

// TodoLines renders one aligned line per todo: checkbox, id, title.
func TodoLines(todos []model.Todo) string {
	if len(todos) == 0 {
		return ""
	}
	idW := 0
	for _, t := range todos {
		if n := len(t.ID); n > idW {
			idW = n
		}
	}
	var b strings.Builder
	for _, t := range todos {
		box := checkEmpty
		title := t.Title
		if t.Completed {
			box = checkDone
			title = doneStyle.Render(title)
		}
		id := idStyle.Render(fmt.Sprintf("%-*s", idW, t.ID))
		b.WriteString(box + " " + id + "  " + title + "\n")
	}
	return b.String()
}

// ItemsLeft is the footer text, e.g. "1 item left".
func ItemsLeft(active int) string {
	return fmt.Sprintf("%d %s left", active, model.Pluralize(active))
}
