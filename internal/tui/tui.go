package tui

import (
	"momentum-cli/internal/prep"
	"momentum-cli/internal/source"
	"momentum-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type Options struct {
	Store  store.Store
	Config store.Config
	Client source.Client
	Logger *zap.Logger

	// Scheduler drives checklist animations and the session clock. Nil uses real ticks.
	Scheduler prep.Scheduler
}

func Run(opts Options) error {
	applyThemePreference(opts.Config.TUI.Theme)
	applyColorProfilePreference()
	applyGlyphPreference()

	m := newAppModel(opts)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
