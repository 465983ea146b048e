package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"todomvc-cli/internal/format"
	"todomvc-cli/internal/log"
	"todomvc-cli/internal/store"
	"todomvc-cli/internal/todo"
	"todomvc-cli/internal/tui"

	"github.com/spf13/cobra"
)

const tuiLogFileName = "todomvc.log"

type App struct {
	ConfigPath string
	Dir        string
	Backend    string
	Key        string
	Format     string
	LogLevel   string
	OnCorrupt  string
	PrettyJSON bool

	cfg store.Config
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "todomvc",
		Short:        "TodoMVC (local-first) CLI + TUI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  todomvc

  # Scriptable commands
  todomvc add buy milk
  todomvc list --filter active
  todomvc toggle <id>

  # Share the list
  todomvc export --render
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := app.resolveConfig(cmd); err != nil {
			return writeErr(cmd, err)
		}
		log.Setup(cmd.ErrOrStderr(), app.cfg.LogLevel, true)
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", envOr("TODOMVC_CONFIG", ""), "Path to config.toml (default: <config dir>/config.toml)")
	cmd.PersistentFlags().StringVar(&app.Dir, "dir", "", "Directory backends keep their files in (default: config dir)")
	cmd.PersistentFlags().StringVar(&app.Backend, "backend", "", "Storage backend (file|sqlite|memory)")
	cmd.PersistentFlags().StringVar(&app.Key, "key", "", "Storage key the list is kept under")
	cmd.PersistentFlags().StringVar(&app.Format, "format", "", "Output format (json|text|markdown)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", "", "Log level (debug|info|warn|error|off)")
	cmd.PersistentFlags().StringVar(&app.OnCorrupt, "on-corrupt", "", "What to do with unreadable stored data (fail|reset)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newToggleCmd(app))
	cmd.AddCommand(newRemoveCmd(app))
	cmd.AddCommand(newEditCmd(app))
	cmd.AddCommand(newCompleteAllCmd(app))
	cmd.AddCommand(newClearCompletedCmd(app))
	cmd.AddCommand(newStatusCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newDoctorCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

// resolveConfig layers flags that were set explicitly over the file/env config.
func (app *App) resolveConfig(cmd *cobra.Command) error {
	cfg, err := store.LoadConfig(app.ConfigPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	override := func(name string, dst *string, v string) {
		if flags.Changed(name) {
			*dst = v
		}
	}
	override("dir", &cfg.Dir, app.Dir)
	override("backend", &cfg.Backend, app.Backend)
	override("key", &cfg.Key, app.Key)
	override("format", &cfg.Format, app.Format)
	override("log-level", &cfg.LogLevel, app.LogLevel)
	override("on-corrupt", &cfg.OnCorrupt, app.OnCorrupt)
	if err := cfg.Validate(); err != nil {
		return err
	}
	app.cfg = cfg
	app.Format = cfg.Format
	return nil
}

func runTUI(cmd *cobra.Command, app *App) error {
	dir, err := app.cfg.ResolveDir()
	if err != nil {
		return writeErr(cmd, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return writeErr(cmd, err)
	}
	// The alternate screen owns stderr while the TUI runs.
	f, err := os.OpenFile(filepath.Join(dir, tuiLogFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer f.Close()
	log.Setup(f, app.cfg.LogLevel, false)

	st, closeFn, err := openStore(cmd.Context(), app)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer closeFn()
	return tui.Run(st)
}

func openSlot(ctx context.Context, app *App) (store.Slot, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	dir, err := app.cfg.ResolveDir()
	if err != nil {
		return store.Slot{}, err
	}
	return app.cfg.Open(ctx, dir)
}

// openStore hydrates a todo store from the configured slot. The returned func closes the
// backend.
func openStore(ctx context.Context, app *App) (*todo.Store, func(), error) {
	slot, err := openSlot(ctx, app)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := slot.KV.Close(); err != nil {
			log.Warn().Err(err).Msg("close backend")
		}
	}
	st, err := todo.Open(slot)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return st, closeFn, nil
}

// withStore opens the store for one command and closes it afterwards.
func withStore(cmd *cobra.Command, app *App, fn func(st *todo.Store) error) error {
	st, closeFn, err := openStore(cmd.Context(), app)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer closeFn()
	return fn(st)
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}

// ExitCode maps a command error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, store.ErrCorrupt):
		return 3
	case errors.Is(err, store.ErrDoctorIssuesFound):
		return 2
	default:
		return 1
	}
}
