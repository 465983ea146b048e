package cli

import (
	"errors"
	"os"
	"strings"

	"todomvc-cli/internal/store"

	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the config file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the resolved config (file, env and flags)",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := app.cfg.ResolveDir()
			if err != nil {
				return writeErr(cmd, err)
			}
			path, err := configPath(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			var b strings.Builder
			b.WriteString("config:     " + path + "\n")
			b.WriteString("dir:        " + dir + "\n")
			b.WriteString("backend:    " + app.cfg.Backend + "\n")
			b.WriteString("key:        " + app.cfg.Key + "\n")
			b.WriteString("format:     " + app.cfg.Format + "\n")
			b.WriteString("log_level:  " + app.cfg.LogLevel + "\n")
			b.WriteString("on_corrupt: " + app.cfg.OnCorrupt + "\n")
			return writeOut(cmd, app, envelope{
				Data: app.cfg,
				Meta: map[string]any{"path": path, "resolvedDir": dir},
				text: b.String(),
			})
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the resolved config to config.toml",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, err := os.Stat(path); err == nil && !force {
				return writeErr(cmd, errors.New("config exists (use --force): "+path))
			}
			if err := store.SaveConfig(path, app.cfg); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, envelope{
				Data: map[string]any{"path": path},
				text: "wrote " + path + "\n",
			})
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	cmd.AddCommand(initCmd)

	return cmd
}

func configPath(app *App) (string, error) {
	if p := strings.TrimSpace(app.ConfigPath); p != "" {
		return p, nil
	}
	return store.ConfigPath()
}
