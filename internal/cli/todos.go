package cli

import (
	"errors"
	"fmt"
	"strings"

	"todomvc-cli/internal/format"
	"todomvc-cli/internal/model"
	"todomvc-cli/internal/todo"

	"github.com/spf13/cobra"
)

func newAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a todo (empty text is ignored)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, app, func(st *todo.Store) error {
				t, ok, err := st.Add(strings.Join(args, " "))
				if err != nil {
					return writeErr(cmd, err)
				}
				if !ok {
					return writeOut(cmd, app, envelope{
						Data: nil,
						Meta: metaFor(st),
						text: "nothing to add\n",
					})
				}
				return writeOut(cmd, app, envelope{
					Data:  t,
					Meta:  metaFor(st),
					Hints: []string{"todomvc toggle " + t.ID, "todomvc edit " + t.ID + " --title <title>"},
					text:  todoLine(t),
				})
			})
		},
	}
}

func newListCmd(app *App) *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List todos",
		RunE: func(cmd *cobra.Command, args []string) error {
			v, ok := model.ParseVisibility(filter)
			if !ok {
				return writeErr(cmd, invalidFlagError{flag: "filter", value: filter, want: visibilityChoices()})
			}
			return withStore(cmd, app, func(st *todo.Store) error {
				st.SetVisibility(v)
				return writeOut(cmd, app, listEnvelope(st))
			})
		},
	}

	cmd.Flags().StringVar(&filter, "filter", string(model.VisibilityAll), "Which todos to show ("+visibilityChoices()+")")
	return cmd
}

func newToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip a todo between active and completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, app, func(st *todo.Store) error {
				t, ok, err := st.Toggle(args[0])
				if err != nil {
					return writeErr(cmd, err)
				}
				if !ok {
					return writeErr(cmd, errNotFound("todo", args[0]))
				}
				return writeOut(cmd, app, envelope{Data: t, Meta: metaFor(st), text: todoLine(t)})
			})
		},
	}
}

func newRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove"},
		Short:   "Delete a todo",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, app, func(st *todo.Store) error {
				id := strings.TrimSpace(args[0])
				ok, err := st.Remove(id)
				if err != nil {
					return writeErr(cmd, err)
				}
				if !ok {
					return writeErr(cmd, errNotFound("todo", id))
				}
				return writeOut(cmd, app, envelope{
					Data: map[string]any{"id": id, "removed": true},
					Meta: metaFor(st),
					text: "removed " + id + "\n",
				})
			})
		},
	}
}

func newEditCmd(app *App) *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Retitle a todo (an empty title deletes it)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("title") {
				return writeErr(cmd, errors.New("missing --title"))
			}
			return withStore(cmd, app, func(st *todo.Store) error {
				id := strings.TrimSpace(args[0])
				if !st.BeginEdit(id) {
					return writeErr(cmd, errNotFound("todo", id))
				}
				st.SetEditTitle(title)
				if _, err := st.CommitEdit(); err != nil {
					return writeErr(cmd, err)
				}

				t, ok := st.Find(id)
				if !ok {
					return writeOut(cmd, app, envelope{
						Data: nil,
						Meta: map[string]any{"id": id, "deleted": true},
						text: "deleted " + id + " (empty title)\n",
					})
				}
				return writeOut(cmd, app, envelope{
					Data: t,
					Meta: map[string]any{"id": id, "deleted": false},
					text: todoLine(t),
				})
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	return cmd
}

func newCompleteAllCmd(app *App) *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:   "complete-all",
		Short: "Mark every todo completed (or active with --undo)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, app, func(st *todo.Store) error {
				if err := st.SetAllCompleted(!undo); err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, listEnvelope(st))
			})
		},
	}

	cmd.Flags().BoolVar(&undo, "undo", false, "Mark every todo active instead")
	return cmd
}

func newClearCompletedCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-completed",
		Short: "Delete every completed todo",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, app, func(st *todo.Store) error {
				n, err := st.ClearCompleted()
				if err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, envelope{
					Data: map[string]any{"removed": n},
					Meta: metaFor(st),
					text: fmt.Sprintf("cleared %d completed %s\n", n, model.Pluralize(n)),
				})
			})
		},
	}
}

type statusData struct {
	Total          int    `json:"total"`
	ActiveCount    int    `json:"activeCount"`
	CompletedCount int    `json:"completedCount"`
	AllDone        bool   `json:"allDone"`
	ItemsLeft      string `json:"itemsLeft"`
}

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show counts and the items-left footer",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, app, func(st *todo.Store) error {
				snap := st.Snapshot()
				data := statusData{
					Total:          len(snap.Todos),
					ActiveCount:    snap.ActiveCount,
					CompletedCount: snap.CompletedCount,
					AllDone:        snap.AllDone,
					ItemsLeft:      format.ItemsLeft(snap.ActiveCount),
				}
				text := data.ItemsLeft
				if data.CompletedCount > 0 {
					text += fmt.Sprintf(" (%d completed)", data.CompletedCount)
				}
				if data.Total > 0 && data.AllDone {
					text += ", all done"
				}
				return writeOut(cmd, app, envelope{Data: data, text: text + "\n"})
			})
		},
	}
}

func visibilityChoices() string {
	var parts []string
	for _, v := range model.Visibilities() {
		parts = append(parts, string(v))
	}
	return strings.Join(parts, "|")
}
