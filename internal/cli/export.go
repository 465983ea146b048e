package cli

import (
	"strings"

	"todomvc-cli/internal/model"
	"todomvc-cli/internal/publish"
	"todomvc-cli/internal/todo"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var filter string
	var title string
	var to string
	var overwrite bool
	var render bool
	var style string
	var width int

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the list as a Markdown checklist (derived, not canonical)",
		RunE: func(cmd *cobra.Command, args []string) error {
			v, ok := model.ParseVisibility(filter)
			if !ok {
				return writeErr(cmd, invalidFlagError{flag: "filter", value: filter, want: visibilityChoices()})
			}
			opt := publish.RenderOptions{Title: title, Visibility: v, Footer: true}

			return withStore(cmd, app, func(st *todo.Store) error {
				if strings.TrimSpace(to) != "" {
					res, err := publish.WriteList(st.Todos(), to, publish.WriteOptions{RenderOptions: opt, Overwrite: overwrite})
					if err != nil {
						return writeErr(cmd, err)
					}
					return writeOut(cmd, app, envelope{
						Data: res,
						text: "wrote " + strings.Join(res.Written, ", ") + "\n",
					})
				}

				md := publish.RenderMarkdown(st.Todos(), opt)
				if render {
					out, err := publish.RenderTerminal(md, style, width)
					if err != nil {
						return writeErr(cmd, err)
					}
					md = out
				}
				_, err := cmd.OutOrStdout().Write([]byte(md))
				return err
			})
		},
	}

	cmd.Flags().StringVar(&filter, "filter", string(model.VisibilityAll), "Which todos to export ("+visibilityChoices()+")")
	cmd.Flags().StringVar(&title, "title", "", "Document heading (default: TODOS)")
	cmd.Flags().StringVar(&to, "to", "", "Write to this file instead of stdout")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite --to if it exists")
	cmd.Flags().BoolVar(&render, "render", false, "Render the markdown for a terminal (glamour)")
	cmd.Flags().StringVar(&style, "style", "", "Render style ("+strings.Join(publish.Styles, "|")+")")
	cmd.Flags().IntVar(&width, "width", 80, "Render word-wrap width")
	return cmd
}
