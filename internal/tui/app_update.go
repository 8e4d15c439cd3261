package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"momentum-cli/internal/prep"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.loadSessionCmd(), m.spinner.Tick)
}

func (m appModel) requestContext() (context.Context, context.CancelFunc) {
	if d := m.cfg.Timing.RequestTimeout; d > 0 {
		return context.WithTimeout(context.Background(), d)
	}
	return context.WithCancel(context.Background())
}

func (m appModel) loadSessionCmd() tea.Cmd {
	c := m.client
	ctx, cancel := m.requestContext()
	return func() tea.Msg {
		defer cancel()
		sd, err := c.GetSession(ctx)
		return sessionLoadedMsg{session: sd, err: err}
	}
}

func (m appModel) stopCmd() tea.Cmd {
	c := m.client
	ctx, cancel := m.requestContext()
	return func() tea.Msg {
		defer cancel()
		path, err := c.Stop(ctx)
		return stopResponseMsg{path: path, err: err}
	}
}

func loadReflectionCmd(path string) tea.Cmd {
	return func() tea.Msg {
		b, err := os.ReadFile(path)
		return reflectionLoadedMsg{path: path, body: string(b), err: err}
	}
}

func (m appModel) analyzeCmd(path string) tea.Cmd {
	c := m.client
	// Analysis may call out to a slow model; it gets no request timeout.
	return func() tea.Msg {
		res, err := c.Analyze(context.Background(), path)
		return analysisResponseMsg{result: res, err: err}
	}
}

func (m appModel) tickClock() tea.Cmd {
	return m.sched.After(time.Second, clockTickMsg{})
}

// enterPrep rebuilds the preparation screen from a fresh checklist fetch.
func (m appModel) enterPrep() (appModel, tea.Cmd) {
	m.screen = screenPrep
	m.session = nil
	m.confirmStop = false
	m.reflectionPath = ""
	m.reflectionBody = ""
	m.analysis = nil

	if m.prepReady {
		m.prep = m.prep.Reset(m.prepDeps())
	} else {
		m.prep = prep.New(m.prepDeps())
	}
	m.prep.Goal = m.goalInput.Value()
	m.prep.TimeInput = m.timeInput.Value()
	m.prepReady = true
	m.setFocus(focusGoal)
	return m, m.prep.Init()
}

func (m appModel) enterActive() (appModel, tea.Cmd) {
	m.screen = screenActive
	m.confirmStop = false
	m.now = m.sched.Now()
	return m, m.tickClock()
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case sessionLoadedMsg:
		if msg.err != nil {
			m.log.Warn("get session", zap.Error(msg.err))
			m.alert = newAlert("Could not read the current session", msg.err)
		}
		if msg.session != nil {
			m.session = msg.session
			return m.enterActive()
		}
		return m.enterPrep()

	case clockTickMsg:
		if m.screen != screenActive {
			return m, nil
		}
		m.now = m.sched.Now()
		return m, m.tickClock()

	case prep.SessionStartedMsg:
		m.rememberInputs()
		sd := msg.Session
		m.session = &sd
		m.log.Info("session started", zap.String("goal", sd.Goal))
		return m.enterActive()

	case prep.SessionFailedMsg:
		m.alert = newAlert("Could not start the session", msg.Err)
		return m, nil

	case stopResponseMsg:
		m.stopping = false
		if msg.err != nil {
			m.alert = newAlert("Could not stop the session", msg.err)
			return m, nil
		}
		m.session = nil
		m.screen = screenReflection
		m.reflectionPath = msg.path
		return m, loadReflectionCmd(msg.path)

	case reflectionLoadedMsg:
		if msg.path != m.reflectionPath {
			return m, nil
		}
		if msg.err != nil {
			m.reflectionBody = ""
			m.log.Warn("read reflection", zap.String("path", msg.path), zap.Error(msg.err))
			return m, nil
		}
		m.reflectionBody = msg.body
		return m, nil

	case editorDoneMsg:
		if msg.err != nil {
			m.alert = newAlert("Editor failed", msg.err)
			return m, nil
		}
		return m, loadReflectionCmd(msg.path)

	case clipboardDoneMsg:
		if msg.err != nil {
			m.log.Warn("copy to clipboard", zap.Error(msg.err))
			m.notice = "Copy failed: " + msg.err.Error()
			return m, nil
		}
		m.notice = "Copied " + msg.what
		return m, nil

	case analysisResponseMsg:
		m.analyzing = false
		if msg.err != nil {
			m.alert = newAlert("Analysis failed", msg.err)
			return m, nil
		}
		res := msg.result
		m.analysis = &res
		m.screen = screenAnalysis
		return m, nil

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		m.notice = ""
		if m.alert != nil {
			if key.Matches(msg, m.keys.Dismiss) {
				m.alert = nil
			}
			return m, nil
		}
		switch m.screen {
		case screenPrep:
			return m.updatePrepKeys(msg)
		case screenActive:
			return m.updateActiveKeys(msg)
		case screenReflection:
			return m.updateReflectionKeys(msg)
		case screenAnalysis:
			if key.Matches(msg, m.keys.Back) {
				return m.enterPrep()
			}
			if key.Matches(msg, m.keys.Copy) && m.analysis != nil {
				return m, m.copyCmd("suggestion", m.analysis.Suggestion)
			}
			if msg.String() == "q" {
				return m, tea.Quit
			}
		}
		return m, nil
	}

	// Everything else belongs to the preparation model (toggle responses, transition
	// timers, error dismissal). It keeps running briefly after a session starts.
	if m.prepReady {
		var cmd tea.Cmd
		m.prep, cmd = m.prep.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m appModel) updatePrepKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.NextField):
		m.setFocus((m.focus + 1) % 3)
		return m, nil
	case key.Matches(msg, m.keys.PrevField):
		m.setFocus((m.focus + 2) % 3)
		return m, nil
	case key.Matches(msg, m.keys.Start):
		var cmd tea.Cmd
		m.prep, cmd = m.prep.Update(prep.StartTappedMsg{})
		return m, cmd
	}

	if m.focus == focusChecklist {
		s := msg.String()
		switch {
		case key.Matches(msg, m.keys.ToggleSlot):
			var cmd tea.Cmd
			m.prep, cmd = m.prep.Update(prep.SlotToggledMsg{Slot: int(s[0] - '1')})
			return m, cmd
		case s == "q":
			return m, tea.Quit
		}
		return m, nil
	}

	var cmd tea.Cmd
	var pcmd tea.Cmd
	switch m.focus {
	case focusGoal:
		before := m.goalInput.Value()
		m.goalInput, cmd = m.goalInput.Update(msg)
		if v := m.goalInput.Value(); v != before {
			m.prep, pcmd = m.prep.Update(prep.GoalChangedMsg{Goal: v})
		}
	case focusTime:
		before := m.timeInput.Value()
		m.timeInput, cmd = m.timeInput.Update(msg)
		if v := m.timeInput.Value(); v != before {
			m.prep, pcmd = m.prep.Update(prep.TimeInputChangedMsg{Value: v})
		}
	}
	return m, tea.Batch(cmd, pcmd)
}

func (m appModel) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.screen != screenPrep || m.alert != nil {
		return m, nil
	}
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	for i := 0; i < prep.SlotCount; i++ {
		if m.inZone(slotZoneID(i), msg) {
			m.setFocus(focusChecklist)
			var cmd tea.Cmd
			m.prep, cmd = m.prep.Update(prep.SlotToggledMsg{Slot: i})
			return m, cmd
		}
	}
	if m.inZone(startZoneID, msg) {
		var cmd tea.Cmd
		m.prep, cmd = m.prep.Update(prep.StartTappedMsg{})
		return m, cmd
	}
	return m, nil
}

func (m appModel) updateActiveKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirmStop {
		switch {
		case key.Matches(msg, m.keys.Confirm):
			m.confirmStop = false
			m.stopping = true
			return m, m.stopCmd()
		case key.Matches(msg, m.keys.Cancel):
			m.confirmStop = false
		}
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Stop):
		if !m.stopping {
			m.confirmStop = true
		}
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	}
	return m, nil
}

func (m appModel) updateReflectionKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Analyze):
		if m.analyzing || m.reflectionPath == "" {
			return m, nil
		}
		m.analyzing = true
		return m, m.analyzeCmd(m.reflectionPath)
	case key.Matches(msg, m.keys.Edit):
		if m.analyzing || m.reflectionPath == "" {
			return m, nil
		}
		return m, editReflectionCmd(m.reflectionPath)
	case key.Matches(msg, m.keys.Copy):
		if m.reflectionPath == "" {
			return m, nil
		}
		return m, m.copyCmd("reflection path", m.reflectionPath)
	case msg.String() == "esc":
		return m.enterPrep()
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	}
	return m, nil
}

func (m appModel) inZone(id string, msg tea.MouseMsg) bool {
	z := m.zones.Get(id)
	return z != nil && z.InBounds(msg)
}

func slotZoneID(i int) string { return fmt.Sprintf("slot-%d", i) }

const startZoneID = "start"

func elapsedLabel(start uint64, now time.Time) string {
	d := now.Sub(time.Unix(int64(start), 0))
	if d < 0 {
		d = 0
	}
	d = d.Truncate(time.Second)
	h := int(d.Hours())
	mm := int(d.Minutes()) % 60
	ss := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, mm, ss)
	}
	return fmt.Sprintf("%02d:%02d", mm, ss)
}

func shortPath(p string) string {
	home, err := os.UserHomeDir()
	if err == nil && home != "" && strings.HasPrefix(p, home) {
		return "~" + strings.TrimPrefix(p, home)
	}
	return p
}
