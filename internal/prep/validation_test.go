package prep

import (
	"errors"
	"testing"

	"momentum-cli/internal/model"
	"momentum-cli/internal/source"
)

func checkedModel(t *testing.T, n int) Model {
	t.Helper()
	src := newFakeSource(n)
	for i := range src.items {
		src.items[i].On = true
	}
	return loaded(t, src)
}

func TestGoalValidationError(t *testing.T) {
	t.Parallel()

	m := New(Deps{})
	for _, g := range []string{"a/b", "c:d", "e*", "f?", `g"`, "h<", "i>", "j|"} {
		m.Goal = g
		if m.GoalValidationError() == "" {
			t.Fatalf("goal %q should be rejected", g)
		}
	}
	m.Goal = "Plan the week"
	if msg := m.GoalValidationError(); msg != "" {
		t.Fatalf("unexpected error %q", msg)
	}
}

func TestIsStartButtonEnabled(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		goal     string
		time     string
		allItems bool
		want     bool
	}{
		{"ok", "Write", "30", true, true},
		{"empty goal", "", "30", true, false},
		{"whitespace goal", "   ", "30", true, true},
		{"invalid chars", "a/b", "30", true, false},
		{"zero time", "Write", "0", true, false},
		{"negative time", "Write", "-5", true, false},
		{"non-numeric time", "Write", "abc", true, false},
		{"empty time", "Write", "", true, false},
		{"unchecked items", "Write", "30", false, false},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var m Model
			if tc.allItems {
				m = checkedModel(t, 3)
			} else {
				m = loaded(t, newFakeSource(3))
			}
			m.Goal = tc.goal
			m.TimeInput = tc.time
			if got := m.IsStartButtonEnabled(); got != tc.want {
				t.Fatalf("IsStartButtonEnabled()=%v want %v", got, tc.want)
			}
		})
	}
}

// Items that never reached a slot still gate the start button.
func TestIsStartButtonEnabled_HiddenItemsCount(t *testing.T) {
	t.Parallel()

	src := newFakeSource(6)
	for i := 0; i < 5; i++ {
		src.items[i].On = true
	}
	m := loaded(t, src)
	m.Goal = "Write"
	m.TimeInput = "25"
	if m.IsStartButtonEnabled() {
		t.Fatalf("one unchecked item remains")
	}
	m.ChecklistItems = append([]model.ChecklistItem(nil), m.ChecklistItems...)
	m.ChecklistItems[5].On = true
	if !m.IsStartButtonEnabled() {
		t.Fatalf("expected enabled once every item is checked")
	}
}

func TestStartTapped_Success(t *testing.T) {
	t.Parallel()

	m := checkedModel(t, 2)
	m, _ = m.Update(GoalChangedMsg{Goal: "Deep work"})
	m, _ = m.Update(TimeInputChangedMsg{Value: "45"})

	m, cmd := m.Update(StartTappedMsg{})
	if !m.IsStarting {
		t.Fatalf("expected IsStarting")
	}
	if _, again := m.Update(StartTappedMsg{}); again != nil {
		t.Fatalf("double start must be ignored")
	}

	m, seen := drain(t, m, cmd)
	if m.IsStarting {
		t.Fatalf("expected IsStarting cleared")
	}
	var started *SessionStartedMsg
	for _, msg := range seen {
		if s, ok := msg.(SessionStartedMsg); ok {
			started = &s
		}
	}
	if started == nil || started.Session.Goal != "Deep work" || started.Session.TimeExpected != 45 {
		t.Fatalf("expected SessionStartedMsg, got %#v", seen)
	}
}

func TestStartTapped_ValidationFailures(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		goal  string
		time  string
		field string
	}{
		{"bad time", "Write", "0", "time"},
		{"text time", "Write", "abc", "time"},
		{"empty goal", "", "30", "goal"},
		{"whitespace goal", "   ", "30", "goal"},
		{"invalid goal", "a|b", "30", "goal"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			src := newFakeSource(1)
			src.items[0].On = true
			m := loaded(t, src)
			m.Goal = tc.goal
			m.TimeInput = tc.time

			m, cmd := m.Update(StartTappedMsg{})
			if m.IsStarting {
				t.Fatalf("must not start")
			}
			failed, ok := cmd().(SessionFailedMsg)
			if !ok {
				t.Fatalf("expected SessionFailedMsg")
			}
			var ve *source.ValidationError
			if !errors.As(failed.Err, &ve) || ve.Field != tc.field {
				t.Fatalf("expected %s validation error, got %v", tc.field, failed.Err)
			}
			if source.Categorize(failed.Err) != source.CategoryInvalidInput {
				t.Fatalf("expected invalidInput category")
			}
			if src.starts != 0 {
				t.Fatalf("source must not be called")
			}
		})
	}
}

func TestStartTapped_IncompleteChecklist(t *testing.T) {
	t.Parallel()

	m := loaded(t, newFakeSource(2))
	m.Goal = "Write"
	m.TimeInput = "30"
	_, cmd := m.Update(StartTappedMsg{})
	failed, ok := cmd().(SessionFailedMsg)
	var ve *source.ValidationError
	if !ok || !errors.As(failed.Err, &ve) || ve.Field != "checklist" {
		t.Fatalf("expected checklist validation error, got %#v", failed)
	}
}

func TestStartTapped_SourceFailure(t *testing.T) {
	t.Parallel()

	src := newFakeSource(1)
	src.items[0].On = true
	src.startErr = &source.CommandFailedError{Command: "momentum start", ExitCode: 1, Stderr: "vault missing"}
	m := loaded(t, src)
	m.Goal = "Write"
	m.TimeInput = "30"

	m, cmd := m.Update(StartTappedMsg{})
	m, seen := drain(t, m, cmd)
	if m.IsStarting {
		t.Fatalf("expected IsStarting cleared")
	}
	var failed *SessionFailedMsg
	for _, msg := range seen {
		if f, ok := msg.(SessionFailedMsg); ok {
			failed = &f
		}
	}
	if failed == nil || source.Categorize(failed.Err) != source.CategorySourceError {
		t.Fatalf("expected sourceError failure, got %#v", seen)
	}
}

func TestInputChangesClearOperationError(t *testing.T) {
	t.Parallel()

	m := loaded(t, newFakeSource(1))
	m.OperationError = "Failed to toggle checklist item: x"
	m, _ = m.Update(GoalChangedMsg{Goal: "a"})
	if m.OperationError != "" {
		t.Fatalf("expected cleared error")
	}
}
