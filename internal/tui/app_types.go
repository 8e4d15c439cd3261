package tui

import (
	"time"

	"momentum-cli/internal/model"
	"momentum-cli/internal/source"
)

type screen int

const (
	screenLoading screen = iota
	screenPrep
	screenActive
	screenReflection
	screenAnalysis
)

func (s screen) String() string {
	switch s {
	case screenPrep:
		return "prep"
	case screenActive:
		return "active"
	case screenReflection:
		return "reflection"
	case screenAnalysis:
		return "analysis"
	default:
		return "loading"
	}
}

type prepFocus int

const (
	focusGoal prepFocus = iota
	focusTime
	focusChecklist
)

type sessionLoadedMsg struct {
	session *model.SessionData
	err     error
}

type clockTickMsg struct{ at time.Time }

type stopResponseMsg struct {
	path string
	err  error
}

type reflectionLoadedMsg struct {
	path string
	body string
	err  error
}

type analysisResponseMsg struct {
	result model.AnalysisResult
	err    error
}

// alert is a dismissible error box shown over any screen.
type alert struct {
	title    string
	message  string
	category source.Category
}

func newAlert(title string, err error) *alert {
	return &alert{title: title, message: err.Error(), category: source.Categorize(err)}
}
