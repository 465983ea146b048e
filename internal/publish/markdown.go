package publish

import (
	"bytes"
	"strings"

	"todomvc-cli/internal/format"
	"todomvc-cli/internal/model"
)

type RenderOptions struct {
	// Title is the document heading. It is always rendered in upper case.
	Title string
	// Visibility picks which todos are listed. Empty means all.
	Visibility model.Visibility
	// Footer appends the "N items left" line.
	Footer bool
}

const defaultTitle = "todos"

// RenderMarkdown renders todos as a GitHub-style task list.
func RenderMarkdown(todos []model.Todo, opt RenderOptions) string {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	title := strings.TrimSpace(opt.Title)
	if title == "" {
		title = defaultTitle
	}
	writeLn("# " + strings.ToUpper(title))
	writeLn("")

	v := opt.Visibility
	if !v.Valid() {
		v = model.VisibilityAll
	}
	visible := model.Filter(todos, v)
	if len(visible) == 0 {
		writeLn("_Nothing here._")
	}
	for _, t := range visible {
		box := "[ ]"
		if t.Completed {
			box = "[x]"
		}
		writeLn("- " + box + " " + escapeInline(t.Title))
	}

	if opt.Footer {
		writeLn("")
		writeLn("_" + format.ItemsLeft(model.CountActive(todos)) + "_")
	}
	return buf.String()
}

// escapeInline keeps titles on one line and stops them from opening markdown spans.
func escapeInline(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	r := strings.NewReplacer(
		`\`, `\\`,
		"`", "\\`",
		"*", `\*`,
		"_", `\_`,
		"[", `\[`,
		"]", `\]`,
		"<", `\<`,
	)
	return r.Replace(s)
}
