package cli

import (
	"encoding/json"

	"todomvc-cli/internal/format"
	"todomvc-cli/internal/model"
	"todomvc-cli/internal/publish"
	"todomvc-cli/internal/todo"
)

// envelope is the output shape of every command: {"data": ..., "meta": ..., "_hints": ...}.
// text and md are the renderings used by --format text|markdown.
type envelope struct {
	Data  any      `json:"data"`
	Meta  any      `json:"meta,omitempty"`
	Hints []string `json:"_hints,omitempty"`

	text string
	md   string
}

func (e envelope) Text() string {
	if e.text != "" {
		return e.text
	}
	b, _ := json.MarshalIndent(e.Data, "", "  ")
	return string(b)
}

func (e envelope) Markdown() string {
	if e.md != "" {
		return e.md
	}
	return e.Text()
}

type listMeta struct {
	Visibility     model.Visibility `json:"visibility"`
	Count          int              `json:"count"`
	ActiveCount    int              `json:"activeCount"`
	CompletedCount int              `json:"completedCount"`
	AllDone        bool             `json:"allDone"`
	ItemsLeft      string           `json:"itemsLeft"`
}

func metaFor(st *todo.Store) listMeta {
	snap := st.Snapshot()
	return listMeta{
		Visibility:     snap.Visibility,
		Count:          len(snap.Visible),
		ActiveCount:    snap.ActiveCount,
		CompletedCount: snap.CompletedCount,
		AllDone:        snap.AllDone,
		ItemsLeft:      format.ItemsLeft(snap.ActiveCount),
	}
}

// listEnvelope renders the store's visible todos with the footer line.
func listEnvelope(st *todo.Store, hints ...string) envelope {
	meta := metaFor(st)
	text := format.TodoLines(st.VisibleTodos())
	text += meta.ItemsLeft + "\n"
	return envelope{
		Data:  st.VisibleTodos(),
		Meta:  meta,
		Hints: hints,
		text:  text,
		md: publish.RenderMarkdown(st.Todos(), publish.RenderOptions{
			Visibility: st.Visibility(),
			Footer:     true,
		}),
	}
}

func todoLine(t model.Todo) string {
	return format.TodoLines([]model.Todo{t})
}
