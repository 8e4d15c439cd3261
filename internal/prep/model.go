// Package prep is the preparation screen: goal and duration inputs, start gating, and the
// four-slot checklist whose checked items rotate out for fresh ones.
package prep

import (
	"time"

	"momentum-cli/internal/model"
	"momentum-cli/internal/source"

	"go.uber.org/zap"
)

const SlotCount = 4

type Slot struct {
	Index int
	// Item is never mutated through the pointer; updates install a fresh copy.
	Item            *model.ChecklistItem
	IsTransitioning bool
	IsFadingIn      bool
}

func (s Slot) busy() bool { return s.IsTransitioning || s.IsFadingIn }

type ItemTransition struct {
	SlotID            int
	ReplacementItemID string
	StartTime         time.Time
}

type Timing struct {
	Settle         time.Duration
	FadeIn         time.Duration
	ErrorDismiss   time.Duration
	RequestTimeout time.Duration
}

func DefaultTiming() Timing {
	return Timing{
		Settle:         600 * time.Millisecond,
		FadeIn:         300 * time.Millisecond,
		ErrorDismiss:   5 * time.Second,
		RequestTimeout: 15 * time.Second,
	}
}

type Deps struct {
	Checklist source.ChecklistSource
	Sessions  source.SessionSource
	Scheduler Scheduler
	Logger    *zap.Logger
	Timing    Timing
}

// Model is owned by a single bubbletea program; every change goes through Update.
type Model struct {
	Goal      string
	TimeInput string

	// ChecklistItems is the full flat list (including items never shown in a slot).
	ChecklistItems     []model.ChecklistItem
	IsLoadingChecklist bool
	IsStarting         bool
	OperationError     string

	Slots             [SlotCount]Slot
	ReservedItemIDs   map[string]struct{}
	ActiveTransitions map[int]ItemTransition

	// pending holds ids with a toggle request in flight.
	pending map[string]struct{}
	// toggleSeq numbers outgoing toggles; appliedSeq is the newest response applied in full.
	toggleSeq  int
	appliedSeq int
	errorSeq   int
	deps       Deps
}

func New(deps Deps) Model {
	if deps.Scheduler == nil {
		deps.Scheduler = TickScheduler{}
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	m := Model{
		ReservedItemIDs:   map[string]struct{}{},
		ActiveTransitions: map[int]ItemTransition{},
		pending:           map[string]struct{}{},
		deps:              deps,
	}
	for i := range m.Slots {
		m.Slots[i].Index = i
	}
	return m
}

// Reset returns a fresh model that keeps m's sequence counters, so timers and responses
// still addressed to m cannot act on the new one.
func (m Model) Reset(deps Deps) Model {
	n := New(deps)
	n.toggleSeq = m.toggleSeq
	n.appliedSeq = m.toggleSeq
	n.errorSeq = m.errorSeq
	return n
}

// IsReserved reports whether id is promised to an in-flight transition.
func (m Model) IsReserved(id string) bool {
	_, ok := m.ReservedItemIDs[id]
	return ok
}

// displayedIDs is the set of item ids currently shown in a slot.
func (m Model) displayedIDs() map[string]bool {
	out := make(map[string]bool, SlotCount)
	for _, s := range m.Slots {
		if s.Item != nil {
			out[s.Item.ID] = true
		}
	}
	return out
}

// Settled reports whether the slots are at rest with no request or rotation outstanding.
func (m Model) Settled() bool {
	if len(m.pending) > 0 || len(m.ReservedItemIDs) > 0 || len(m.ActiveTransitions) > 0 {
		return false
	}
	for _, s := range m.Slots {
		if s.busy() {
			return false
		}
	}
	return true
}

// nextCandidate picks the earliest unchecked item that is neither displayed nor reserved.
func (m Model) nextCandidate(items []model.ChecklistItem) (model.ChecklistItem, bool) {
	shown := m.displayedIDs()
	for _, it := range items {
		if it.On || shown[it.ID] || m.IsReserved(it.ID) {
			continue
		}
		return it, true
	}
	return model.ChecklistItem{}, false
}

func (m Model) findItem(id string) (model.ChecklistItem, bool) {
	for _, it := range m.ChecklistItems {
		if it.ID == id {
			return it, true
		}
	}
	return model.ChecklistItem{}, false
}

// The maps are replaced rather than mutated so earlier Model values stay intact.

func withID(set map[string]struct{}, id string) map[string]struct{} {
	next := make(map[string]struct{}, len(set)+1)
	for k := range set {
		next[k] = struct{}{}
	}
	next[id] = struct{}{}
	return next
}

func withoutID(set map[string]struct{}, id string) map[string]struct{} {
	next := make(map[string]struct{}, len(set))
	for k := range set {
		if k != id {
			next[k] = struct{}{}
		}
	}
	return next
}

func (m *Model) reserve(id string) {
	m.ReservedItemIDs = withID(m.ReservedItemIDs, id)
}

func (m *Model) release(id string) bool {
	if !m.IsReserved(id) {
		return false
	}
	m.ReservedItemIDs = withoutID(m.ReservedItemIDs, id)
	return true
}

func (m *Model) setTransition(slot int, tr ItemTransition) {
	next := make(map[int]ItemTransition, len(m.ActiveTransitions)+1)
	for k, v := range m.ActiveTransitions {
		next[k] = v
	}
	next[slot] = tr
	m.ActiveTransitions = next
}

func (m *Model) dropTransition(slot int) {
	next := make(map[int]ItemTransition, len(m.ActiveTransitions))
	for k, v := range m.ActiveTransitions {
		if k != slot {
			next[k] = v
		}
	}
	m.ActiveTransitions = next
}

// withItem returns the flat list with it replacing the entry of the same id.
func (m Model) withItem(it model.ChecklistItem) []model.ChecklistItem {
	out := cloneItems(m.ChecklistItems)
	for i := range out {
		if out[i].ID == it.ID {
			out[i] = it
		}
	}
	return out
}

func itemPtr(it model.ChecklistItem) *model.ChecklistItem { return &it }

func cloneItems(items []model.ChecklistItem) []model.ChecklistItem {
	return append([]model.ChecklistItem(nil), items...)
}

// mergeAuthoritative copies items, keeping the optimistic check on ids whose own toggle
// has not answered yet. An older response never unchecks a newer tap.
func (m Model) mergeAuthoritative(items []model.ChecklistItem) []model.ChecklistItem {
	out := cloneItems(items)
	for i := range out {
		if _, ok := m.pending[out[i].ID]; ok {
			out[i].On = true
		}
	}
	return out
}

// fillSlots shows the first SlotCount unchecked items in list order.
func (m *Model) fillSlots() {
	n := 0
	for i := range m.Slots {
		m.Slots[i] = Slot{Index: i}
	}
	for _, it := range m.ChecklistItems {
		if n == SlotCount {
			break
		}
		if it.On {
			continue
		}
		m.Slots[n].Item = itemPtr(it)
		n++
	}
}
