package prep

import (
	"strings"

	"momentum-cli/internal/source"
)

// GoalValidationError is empty when the goal can be used as a file name.
func (m Model) GoalValidationError() string {
	return source.GoalError(m.Goal)
}

// AllItemsChecked looks at the full list, not just the visible slots.
func (m Model) AllItemsChecked() bool {
	for _, it := range m.ChecklistItems {
		if !it.On {
			return false
		}
	}
	return true
}

func (m Model) IsStartButtonEnabled() bool {
	if m.Goal == "" || m.GoalValidationError() != "" {
		return false
	}
	if _, ok := source.ParseMinutes(m.TimeInput); !ok {
		return false
	}
	return m.AllItemsChecked()
}

// startRequest validates the inputs for StartTappedMsg.
func (m Model) startRequest() (string, uint64, error) {
	minutes, ok := source.ParseMinutes(m.TimeInput)
	if !ok {
		return "", 0, &source.ValidationError{Field: "time", Msg: "Please enter a valid time in minutes"}
	}
	goal := strings.TrimSpace(m.Goal)
	if err := source.ValidateStart(goal, minutes); err != nil {
		return "", 0, err
	}
	if !m.AllItemsChecked() {
		return "", 0, &source.ValidationError{Field: "checklist", Msg: "Please complete every checklist item"}
	}
	return goal, minutes, nil
}
