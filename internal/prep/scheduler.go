package prep

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Scheduler turns a delay into a tea.Cmd. The TUI uses real ticks; tests swap in
// ImmediateScheduler so a full rotation runs without sleeping.
type Scheduler interface {
	After(d time.Duration, msg tea.Msg) tea.Cmd
	Now() time.Time
}

type TickScheduler struct{}

func (TickScheduler) After(d time.Duration, msg tea.Msg) tea.Cmd {
	if d <= 0 {
		return func() tea.Msg { return msg }
	}
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}

func (TickScheduler) Now() time.Time { return time.Now() }

// ImmediateScheduler delivers every scheduled message at once and reports a fixed clock.
type ImmediateScheduler struct {
	Clock time.Time
}

func (ImmediateScheduler) After(_ time.Duration, msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func (s ImmediateScheduler) Now() time.Time { return s.Clock }
