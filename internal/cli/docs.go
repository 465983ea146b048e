package cli

import (
	"fmt"

	"todomvc-cli/internal/docs"
	"todomvc-cli/internal/publish"

	"github.com/spf13/cobra"
)

func newDocsCmd(app *App) *cobra.Command {
	var raw bool
	var render bool
	var style string

	cmd := &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show documentation topics (keys, storage, config)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				topics := docs.Topics()
				text := ""
				for _, t := range topics {
					text += t + "\n"
				}
				return writeOut(cmd, app, envelope{Data: map[string]any{"topics": topics}, text: text})
			}

			topic := args[0]
			body, ok := docs.Get(topic)
			if !ok {
				return writeErr(cmd, fmt.Errorf("unknown docs topic: %q (run `todomvc docs` to list topics)", topic))
			}

			if render {
				out, err := publish.RenderTerminal(body, style, 80)
				if err != nil {
					return writeErr(cmd, err)
				}
				body = out
				raw = true
			}
			if raw {
				_, err := fmt.Fprint(cmd.OutOrStdout(), body)
				return err
			}

			return writeOut(cmd, app, envelope{
				Data: map[string]any{"topic": topic, "markdown": body},
				text: body,
				md:   body,
			})
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print raw markdown (no JSON envelope)")
	cmd.Flags().BoolVar(&render, "render", false, "Render the markdown for a terminal (glamour)")
	cmd.Flags().StringVar(&style, "style", "", "Render style (see `export --style`)")
	return cmd
}
