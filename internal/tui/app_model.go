package tui

import (
	"time"

	"momentum-cli/internal/model"
	"momentum-cli/internal/prep"
	"momentum-cli/internal/source"
	"momentum-cli/internal/store"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	zone "github.com/lrstanley/bubblezone"
	"go.uber.org/zap"
)

type appModel struct {
	store  store.Store
	cfg    store.Config
	client source.Client
	log    *zap.Logger
	sched  prep.Scheduler

	width  int
	height int

	screen screen
	alert  *alert

	prep      prep.Model
	goalInput textinput.Model
	timeInput textinput.Model
	focus     prepFocus
	// prepReady is set once the preparation model has been built at least once.
	prepReady bool

	session     *model.SessionData
	now         time.Time
	confirmStop bool
	stopping    bool

	reflectionPath string
	reflectionBody string
	analyzing      bool
	analysis       *model.AnalysisResult

	// notice is a one-line status under the body, cleared on the next key press.
	notice   string
	copyText func(string) error

	spinner spinner.Model
	keys    keyMap
	help    help.Model
	zones   *zone.Manager
}

func newAppModel(opts Options) appModel {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	sched := opts.Scheduler
	if sched == nil {
		sched = prep.TickScheduler{}
	}

	m := appModel{
		store:  opts.Store,
		cfg:    opts.Config,
		client: opts.Client,
		log:    log,
		sched:  sched,
		screen: screenLoading,
		keys:   defaultKeyMap(),
		help:   help.New(),
		zones:  zone.New(),
		now:    sched.Now(),

		copyText: systemClipboard,
	}

	m.goalInput = newInput("What will you focus on?", 120)
	m.timeInput = newInput("30", 4)
	m.timeInput.Prompt = "Minutes: "
	m.goalInput.Prompt = "Goal: "

	if st, err := m.store.LoadTUIState(); err == nil && st != nil {
		m.goalInput.SetValue(st.LastGoal)
		m.timeInput.SetValue(st.LastTimeMinutes)
	} else if err != nil {
		log.Warn("load tui state", zap.Error(err))
	}

	m.spinner = spinner.New()
	m.spinner.Spinner = spinner.Dot
	return m
}

func newInput(placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	// A blinking cursor schedules timers on every keystroke; keep it steady.
	in.Cursor.SetMode(cursor.CursorStatic)
	return in
}

func (m appModel) prepDeps() prep.Deps {
	t := m.cfg.Timing
	return prep.Deps{
		Checklist: m.client,
		Sessions:  m.client,
		Scheduler: m.sched,
		Logger:    m.log.Named("prep"),
		Timing: prep.Timing{
			Settle:         t.Settle,
			FadeIn:         t.FadeIn,
			ErrorDismiss:   t.ErrorDismiss,
			RequestTimeout: t.RequestTimeout,
		},
	}
}

// rememberInputs persists the last goal and duration so the next preparation is pre-filled.
func (m appModel) rememberInputs() {
	st := &store.TUIState{
		Version:         1,
		LastGoal:        m.goalInput.Value(),
		LastTimeMinutes: m.timeInput.Value(),
	}
	if err := m.store.SaveTUIState(st); err != nil {
		m.log.Warn("save tui state", zap.Error(err))
	}
}

func (m *appModel) setFocus(f prepFocus) {
	m.focus = f
	m.goalInput.Blur()
	m.timeInput.Blur()
	switch f {
	case focusGoal:
		m.goalInput.Focus()
	case focusTime:
		m.timeInput.Focus()
	}
}
