package tui

import (
	"todomvc-cli/internal/todo"

	tea "github.com/charmbracelet/bubbletea"
)

func Run(st *todo.Store) error {
	applyColorProfilePreference()
	applyThemePreference()
	applyGlyphPreference()

	m := newAppModel(st)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
