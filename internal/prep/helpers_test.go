package prep

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"momentum-cli/internal/model"

	tea "github.com/charmbracelet/bubbletea"
)

// fakeSource is an in-memory checklist + session source.
type fakeSource struct {
	mu        sync.Mutex
	items     []model.ChecklistItem
	toggles   []string
	toggleErr error
	listErr   error

	starts   int
	startErr error
}

func newFakeSource(n int) *fakeSource {
	f := &fakeSource{}
	for i := 0; i < n; i++ {
		id := strconv.Itoa(i)
		f.items = append(f.items, model.ChecklistItem{ID: id, Text: "Item " + id})
	}
	return f
}

func (f *fakeSource) snapshot() model.ChecklistState {
	return model.ChecklistState{Items: append([]model.ChecklistItem(nil), f.items...)}
}

func (f *fakeSource) List(ctx context.Context) (model.ChecklistState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return model.ChecklistState{}, f.listErr
	}
	return f.snapshot(), nil
}

func (f *fakeSource) Toggle(ctx context.Context, id string) (model.ChecklistState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.toggles = append(f.toggles, id)
	if f.toggleErr != nil {
		return model.ChecklistState{}, f.toggleErr
	}
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].On = !f.items[i].On
			return f.snapshot(), nil
		}
	}
	return model.ChecklistState{}, errors.New("checklist item not found")
}

func (f *fakeSource) toggleCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.toggles)
}

func (f *fakeSource) Start(ctx context.Context, goal string, minutes uint64) (model.SessionData, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.starts++
	if f.startErr != nil {
		return model.SessionData{}, f.startErr
	}
	return model.SessionData{Goal: goal, StartTime: 1_700_000_000, TimeExpected: minutes}, nil
}

func (f *fakeSource) Stop(ctx context.Context) (string, error) { return "", nil }

func (f *fakeSource) GetSession(ctx context.Context) (*model.SessionData, error) { return nil, nil }

func newTestModel(src *fakeSource) Model {
	return New(Deps{
		Checklist: src,
		Sessions:  src,
		Scheduler: ImmediateScheduler{Clock: time.Unix(1_700_000_000, 0)},
		Timing:    DefaultTiming(),
	})
}

// drain runs cmd and every follow-up command to completion, feeding each message back into
// Update. It returns the final model and every message that was delivered.
func drain(t *testing.T, m Model, cmd tea.Cmd) (Model, []tea.Msg) {
	t.Helper()
	var seen []tea.Msg
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 1000 {
			t.Fatalf("command queue did not settle")
		}
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg := c()
		if msg == nil {
			continue
		}
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		seen = append(seen, msg)
		var next tea.Cmd
		m, next = m.Update(msg)
		queue = append(queue, next)
	}
	return m, seen
}

// step runs a single command and applies its message.
func step(t *testing.T, m Model, cmd tea.Cmd) (Model, tea.Msg, tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatalf("expected a command")
	}
	msg := cmd()
	next, out := m.Update(msg)
	return next, msg, out
}

// loaded returns a model whose checklist has been fetched and slots filled.
func loaded(t *testing.T, src *fakeSource) Model {
	t.Helper()
	m := newTestModel(src)
	m, _ = drain(t, m, m.Init())
	return m
}

func slotID(m Model, i int) string {
	if m.Slots[i].Item == nil {
		return ""
	}
	return m.Slots[i].Item.ID
}

func assertDisjointSlots(t *testing.T, m Model) {
	t.Helper()
	seen := map[string]int{}
	for i, s := range m.Slots {
		if s.Item == nil {
			continue
		}
		if prev, ok := seen[s.Item.ID]; ok {
			t.Fatalf("item %q shown in slots %d and %d", s.Item.ID, prev, i)
		}
		seen[s.Item.ID] = i
		if m.IsReserved(s.Item.ID) {
			t.Fatalf("reserved item %q visible in slot %d", s.Item.ID, i)
		}
	}
	for k := range m.ActiveTransitions {
		if !m.Slots[k].IsTransitioning {
			t.Fatalf("transition registered for idle slot %d", k)
		}
	}
}
