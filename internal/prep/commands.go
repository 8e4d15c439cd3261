package prep

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) requestContext() (context.Context, context.CancelFunc) {
	if d := m.deps.Timing.RequestTimeout; d > 0 {
		return context.WithTimeout(context.Background(), d)
	}
	return context.WithCancel(context.Background())
}

func (m Model) loadChecklistCmd() tea.Cmd {
	src := m.deps.Checklist
	ctx, cancel := m.requestContext()
	return func() tea.Msg {
		defer cancel()
		st, err := src.List(ctx)
		return ChecklistLoadedMsg{State: st, Err: err}
	}
}

func (m Model) toggleCmd(slot int, id string, seq int) tea.Cmd {
	src := m.deps.Checklist
	ctx, cancel := m.requestContext()
	return func() tea.Msg {
		defer cancel()
		st, err := src.Toggle(ctx, id)
		return ToggleResponseMsg{Slot: slot, ID: id, Seq: seq, State: st, Err: err}
	}
}

func (m Model) startCmd(goal string, minutes uint64) tea.Cmd {
	src := m.deps.Sessions
	ctx, cancel := m.requestContext()
	return func() tea.Msg {
		defer cancel()
		sd, err := src.Start(ctx, goal, minutes)
		return StartResponseMsg{Session: sd, Err: err}
	}
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
