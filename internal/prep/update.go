package prep

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Init loads the checklist.
func (m Model) Init() tea.Cmd {
	return emit(LoadChecklistMsg{})
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadChecklistMsg:
		m.IsLoadingChecklist = true
		return m, m.loadChecklistCmd()

	case ChecklistLoadedMsg:
		m.IsLoadingChecklist = false
		if msg.Err != nil {
			return m.fail("Failed to load checklist", msg.Err)
		}
		m.ChecklistItems = m.mergeAuthoritative(msg.State.Items)
		// Mid-rotation reloads only refresh the flat list; slots are rebuilt once settled.
		if m.Settled() {
			m.fillSlots()
		}
		return m, nil

	case SlotToggledMsg:
		return m.toggleSlot(msg.Slot)

	case ItemToggledMsg:
		m.toggleSeq++
		m.deps.Logger.Debug("toggle checklist item", zap.Int("slot", msg.Slot), zap.String("id", msg.ID), zap.Int("seq", m.toggleSeq))
		return m, m.toggleCmd(msg.Slot, msg.ID, m.toggleSeq)

	case ToggleResponseMsg:
		return m.reconcile(msg)

	case BeginTransitionMsg:
		return m.beginTransition(msg)

	case CompleteTransitionMsg:
		return m.completeTransition(msg.Slot)

	case FadeInItemMsg:
		return m.fadeIn(msg)

	case ResetFadeInMsg:
		if validSlot(msg.Slot) {
			m.Slots[msg.Slot].IsFadingIn = false
		}
		return m, nil

	case GoalChangedMsg:
		m.Goal = msg.Goal
		m.OperationError = ""
		return m, nil

	case TimeInputChangedMsg:
		m.TimeInput = msg.Value
		m.OperationError = ""
		return m, nil

	case StartTappedMsg:
		if m.IsStarting {
			return m, nil
		}
		goal, minutes, err := m.startRequest()
		if err != nil {
			return m, emit(SessionFailedMsg{Err: err})
		}
		m.IsStarting = true
		return m, m.startCmd(goal, minutes)

	case StartResponseMsg:
		m.IsStarting = false
		if msg.Err != nil {
			m.deps.Logger.Warn("start session failed", zap.Error(msg.Err))
			return m, emit(SessionFailedMsg{Err: msg.Err})
		}
		return m, emit(SessionStartedMsg{Session: msg.Session})

	case clearErrorMsg:
		if msg.seq == m.errorSeq {
			m.OperationError = ""
		}
		return m, nil
	}
	return m, nil
}

func validSlot(i int) bool { return i >= 0 && i < SlotCount }

// fail shows a transient error. Only the newest error's timer may clear it.
func (m Model) fail(prefix string, err error) (Model, tea.Cmd) {
	m.deps.Logger.Warn(prefix, zap.Error(err))
	m.errorSeq++
	m.OperationError = fmt.Sprintf("%s: %v", prefix, err)
	return m, m.deps.Scheduler.After(m.deps.Timing.ErrorDismiss, clearErrorMsg{seq: m.errorSeq})
}

// toggleSlot checks the slot's item optimistically. Taps on empty, checked or rotating
// slots are dropped.
func (m Model) toggleSlot(slot int) (Model, tea.Cmd) {
	if !validSlot(slot) {
		return m, nil
	}
	s := m.Slots[slot]
	if s.Item == nil || s.Item.On || s.busy() {
		return m, nil
	}

	checked := *s.Item
	checked.On = true
	m.Slots[slot].Item = itemPtr(checked)

	m.pending = withID(m.pending, checked.ID)
	m.ChecklistItems = cloneItems(m.ChecklistItems)
	for i := range m.ChecklistItems {
		if m.ChecklistItems[i].ID == checked.ID {
			m.ChecklistItems[i].On = true
		}
	}
	return m, emit(ItemToggledMsg{Slot: slot, ID: checked.ID})
}

// reconcile applies an authoritative toggle response and, for a tagged slot whose item is
// now checked, reserves the replacement before anything else can claim it.
func (m Model) reconcile(msg ToggleResponseMsg) (Model, tea.Cmd) {
	m.pending = withoutID(m.pending, msg.ID)
	if msg.Err != nil {
		// The optimistic check stays; there is no rollback or retry.
		return m.fail("Failed to toggle checklist item", msg.Err)
	}
	switch {
	case msg.Seq == 0 || msg.Seq > m.appliedSeq:
		if msg.Seq > 0 {
			m.appliedSeq = msg.Seq
		}
		m.ChecklistItems = m.mergeAuthoritative(msg.State.Items)
	default:
		// A newer response already landed; only this response's own item is fresher.
		if auth, ok := msg.State.Find(msg.ID); ok {
			m.ChecklistItems = m.withItem(auth)
		}
	}

	s := msg.Slot
	if !validSlot(s) || m.Slots[s].Item == nil || m.Slots[s].Item.ID != msg.ID {
		return m, nil
	}
	auth, ok := msg.State.Find(msg.ID)
	if !ok {
		return m, nil
	}
	m.Slots[s].Item = itemPtr(auth)
	if !auth.On || m.Slots[s].busy() {
		return m, nil
	}

	repl, ok := m.nextCandidate(m.ChecklistItems)
	if !ok {
		m.deps.Logger.Debug("checklist exhausted", zap.Int("slot", s))
		return m, nil
	}
	m.reserve(repl.ID)
	return m, emit(BeginTransitionMsg{Slot: s, ReplacementID: repl.ID})
}

func (m Model) beginTransition(msg BeginTransitionMsg) (Model, tea.Cmd) {
	if !validSlot(msg.Slot) {
		return m, nil
	}
	m.Slots[msg.Slot].IsTransitioning = true
	m.setTransition(msg.Slot, ItemTransition{
		SlotID:            msg.Slot,
		ReplacementItemID: msg.ReplacementID,
		StartTime:         m.deps.Scheduler.Now(),
	})
	return m, m.deps.Scheduler.After(m.deps.Timing.Settle, CompleteTransitionMsg{Slot: msg.Slot})
}

func (m Model) completeTransition(slot int) (Model, tea.Cmd) {
	tr, ok := m.ActiveTransitions[slot]
	if !ok {
		return m, nil
	}
	m.Slots[slot].Item = nil
	m.Slots[slot].IsTransitioning = false
	m.dropTransition(slot)
	return m, emit(FadeInItemMsg{Slot: slot, ItemID: tr.ReplacementItemID})
}

// fadeIn commits the reserved replacement into the slot. If the item was checked or removed
// meanwhile, the next free candidate is used instead; with none left the slot stays empty.
func (m Model) fadeIn(msg FadeInItemMsg) (Model, tea.Cmd) {
	if !validSlot(msg.Slot) {
		return m, nil
	}
	m.release(msg.ItemID)
	if m.Slots[msg.Slot].Item != nil {
		return m, nil
	}

	it, ok := m.findItem(msg.ItemID)
	if !ok || it.On || m.displayedIDs()[it.ID] {
		it, ok = m.nextCandidate(m.ChecklistItems)
		if !ok {
			return m, nil
		}
	}
	it.On = false
	m.Slots[msg.Slot].Item = itemPtr(it)
	m.Slots[msg.Slot].IsFadingIn = true
	return m, m.deps.Scheduler.After(m.deps.Timing.FadeIn, ResetFadeInMsg{Slot: msg.Slot})
}
