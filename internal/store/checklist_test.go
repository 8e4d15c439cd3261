package store

import (
	"sync"
	"testing"
)

func TestChecklist_ToggleAndReset(t *testing.T) {
	t.Parallel()

	s := Store{Dir: t.TempDir()}
	texts := []string{"Rested", "Water", "Phone off"}

	st, err := s.LoadChecklist(texts)
	if err != nil {
		t.Fatalf("LoadChecklist: %v", err)
	}
	if len(st.Items) != 3 || st.Items[0].ID != "item-0" || st.Items[2].Text != "Phone off" {
		t.Fatalf("unexpected checklist: %#v", st.Items)
	}
	for _, it := range st.Items {
		if it.On {
			t.Fatalf("expected everything unchecked initially: %#v", it)
		}
	}

	st, found, err := s.ToggleChecklistItem(texts, "item-1")
	if err != nil || !found {
		t.Fatalf("toggle: found=%v err=%v", found, err)
	}
	if it, _ := st.Find("item-1"); !it.On {
		t.Fatalf("expected item-1 on")
	}

	// Persisted across loads.
	st, err = s.LoadChecklist(texts)
	if err != nil {
		t.Fatalf("LoadChecklist: %v", err)
	}
	if it, _ := st.Find("item-1"); !it.On {
		t.Fatalf("expected item-1 on after reload")
	}

	// Toggling again flips it back.
	st, _, err = s.ToggleChecklistItem(texts, "item-1")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if it, _ := st.Find("item-1"); it.On {
		t.Fatalf("expected item-1 off")
	}

	if _, _, err := s.ToggleChecklistItem(texts, "item-0"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if err := s.ResetChecklist(); err != nil {
		t.Fatalf("ResetChecklist: %v", err)
	}
	st, _ = s.LoadChecklist(texts)
	if st.AllOn() || st.Items[0].On {
		t.Fatalf("expected reset checklist: %#v", st.Items)
	}
	// Reset with nothing on disk is fine.
	if err := s.ResetChecklist(); err != nil {
		t.Fatalf("second ResetChecklist: %v", err)
	}
}

func TestChecklist_ToggleUnknownID(t *testing.T) {
	t.Parallel()

	s := Store{Dir: t.TempDir()}
	texts := []string{"A"}
	st, found, err := s.ToggleChecklistItem(texts, "item-9")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if found {
		t.Fatalf("expected not found")
	}
	if len(st.Items) != 1 || st.Items[0].On {
		t.Fatalf("unexpected state: %#v", st.Items)
	}
}

func TestDefaultChecklistItems(t *testing.T) {
	t.Parallel()

	items := DefaultChecklistItems()
	if len(items) < 5 {
		t.Fatalf("expected at least 5 built-in items, got %d", len(items))
	}
	for i, it := range items {
		if it == "" {
			t.Fatalf("item %d is empty", i)
		}
	}
}

// Separate Store values share nothing in memory, like two momentum processes.
func TestChecklist_ToggleAcrossStoreValuesKeepsEveryCheck(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	texts := []string{"a", "b", "c", "d", "e", "f", "g", "h"}

	for round := 0; round < 20; round++ {
		if err := (Store{Dir: dir}).ResetChecklist(); err != nil {
			t.Fatalf("reset: %v", err)
		}
		var wg sync.WaitGroup
		for i := range texts {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				s := Store{Dir: dir}
				if _, found, err := s.ToggleChecklistItem(texts, ChecklistItemID(i)); err != nil || !found {
					t.Errorf("toggle %d: found=%v err=%v", i, found, err)
				}
			}(i)
		}
		wg.Wait()

		st, err := Store{Dir: dir}.LoadChecklist(texts)
		if err != nil {
			t.Fatalf("LoadChecklist: %v", err)
		}
		if !st.AllOn() {
			t.Fatalf("round %d: lost a toggle: %#v", round, st.Items)
		}
	}
}
