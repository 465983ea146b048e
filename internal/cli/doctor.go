package cli

import (
	"fmt"
	"strings"

	"todomvc-cli/internal/store"

	"github.com/spf13/cobra"
)

func newDoctorCmd(app *App) *cobra.Command {
	var fail bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Validate the stored todo list",
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, err := openSlot(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer slot.KV.Close()

			report := slot.Check(cmd.Context())

			meta := map[string]any{
				"backend":   app.cfg.Backend,
				"issues":    len(report.Issues),
				"hasErrors": report.HasErrors(),
			}
			var hints []string
			if report.HasErrors() {
				hints = append(hints, "todomvc --on-corrupt reset list")
			}

			if err := writeOut(cmd, app, envelope{
				Data:  report,
				Meta:  meta,
				Hints: hints,
				text:  doctorText(report),
			}); err != nil {
				return err
			}

			if fail && report.HasErrors() {
				return store.ErrDoctorIssuesFound
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fail, "fail", false, "Exit with non-zero status if errors are found")
	return cmd
}

func doctorText(r store.DoctorReport) string {
	var b strings.Builder
	switch {
	case !r.Present:
		fmt.Fprintf(&b, "%s: no data stored\n", r.Key)
	default:
		fmt.Fprintf(&b, "%s: %d todos\n", r.Key, r.Count)
	}
	for _, it := range r.Issues {
		fmt.Fprintf(&b, "%s %s: %s\n", it.Level, it.Code, it.Message)
	}
	if len(r.Issues) == 0 {
		b.WriteString("ok\n")
	}
	return b.String()
}
