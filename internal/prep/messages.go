package prep

import (
	"momentum-cli/internal/model"
)

// LoadChecklistMsg asks the screen to (re)fetch the checklist, e.g. when it appears again.
type LoadChecklistMsg struct{}

type ChecklistLoadedMsg struct {
	State model.ChecklistState
	Err   error
}

// SlotToggledMsg is a tap on slot Slot.
type SlotToggledMsg struct{ Slot int }

// ItemToggledMsg requests the source toggle. Slot is -1 when the request is not tied to a slot.
type ItemToggledMsg struct {
	Slot int
	ID   string
}

// ToggleResponseMsg carries the authoritative checklist returned for a toggle of ID.
// Slot is -1 for untagged responses, which only refresh the flat item list. Seq orders
// responses by request; 0 means unknown and is always treated as the newest.
type ToggleResponseMsg struct {
	Slot  int
	ID    string
	Seq   int
	State model.ChecklistState
	Err   error
}

type BeginTransitionMsg struct {
	Slot          int
	ReplacementID string
}

type CompleteTransitionMsg struct{ Slot int }

type FadeInItemMsg struct {
	Slot   int
	ItemID string
}

type ResetFadeInMsg struct{ Slot int }

type GoalChangedMsg struct{ Goal string }

type TimeInputChangedMsg struct{ Value string }

type StartTappedMsg struct{}

type StartResponseMsg struct {
	Session model.SessionData
	Err     error
}

type clearErrorMsg struct{ seq int }

// SessionStartedMsg and SessionFailedMsg are delegate messages for the screen's parent.
type SessionStartedMsg struct{ Session model.SessionData }

type SessionFailedMsg struct{ Err error }
