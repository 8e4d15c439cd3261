package store

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"

	"momentum-cli/internal/model"

	"github.com/gofrs/flock"
)

const checklistLockFileName = "checklist-state.lock"

//go:embed checklist.json
var defaultChecklistJSON []byte

// DefaultChecklistItems returns the built-in pre-session checklist.
func DefaultChecklistItems() []string {
	var items []string
	if err := json.Unmarshal(defaultChecklistJSON, &items); err != nil {
		panic(fmt.Sprintf("embedded checklist.json: %v", err))
	}
	return items
}

// ChecklistItemID is the stable id for the i-th template entry.
func ChecklistItemID(i int) string {
	return "item-" + strconv.Itoa(i)
}

func (s Store) loadChecked() (map[string]bool, error) {
	var ids []string
	if _, err := readJSONFile(s.checklistStatePath(), &ids); err != nil {
		return nil, fmt.Errorf("load checklist state: %w", err)
	}
	checked := make(map[string]bool, len(ids))
	for _, id := range ids {
		checked[id] = true
	}
	return checked, nil
}

func (s Store) saveChecked(checked map[string]bool) error {
	ids := make([]string, 0, len(checked))
	for id, on := range checked {
		if on {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return writeJSONFile(s.checklistStatePath(), ids)
}

func buildChecklist(texts []string, checked map[string]bool) model.ChecklistState {
	items := make([]model.ChecklistItem, 0, len(texts))
	for i, text := range texts {
		id := ChecklistItemID(i)
		items = append(items, model.ChecklistItem{ID: id, Text: text, On: checked[id]})
	}
	return model.ChecklistState{Items: items}
}

// LoadChecklist returns the full checklist for the given template.
func (s Store) LoadChecklist(texts []string) (model.ChecklistState, error) {
	checked, err := s.loadChecked()
	if err != nil {
		return model.ChecklistState{}, err
	}
	return buildChecklist(texts, checked), nil
}

// withChecklistLock serializes read-modify-write of the state file across goroutines and
// processes (exec mode spawns one process per toggle).
func (s Store) withChecklistLock(fn func() error) error {
	if err := s.Ensure(); err != nil {
		return err
	}
	lk := flock.New(filepath.Join(s.Dir, checklistLockFileName))
	if err := lk.Lock(); err != nil {
		return fmt.Errorf("lock checklist state: %w", err)
	}
	defer func() { _ = lk.Unlock() }()
	return fn()
}

// ToggleChecklistItem flips one item and returns the full updated checklist. found is false
// (and nothing is written) when id is not part of the template.
func (s Store) ToggleChecklistItem(texts []string, id string) (st model.ChecklistState, found bool, err error) {
	err = s.withChecklistLock(func() error {
		st, found, err = s.toggleChecked(texts, id)
		return err
	})
	return st, found, err
}

func (s Store) toggleChecked(texts []string, id string) (model.ChecklistState, bool, error) {
	found := false
	checked, err := s.loadChecked()
	if err != nil {
		return model.ChecklistState{}, false, err
	}
	for i := range texts {
		if ChecklistItemID(i) == id {
			found = true
			break
		}
	}
	if found {
		checked[id] = !checked[id]
		if err := s.saveChecked(checked); err != nil {
			return model.ChecklistState{}, false, err
		}
	}
	return buildChecklist(texts, checked), found, nil
}

// ResetChecklist unchecks every item.
func (s Store) ResetChecklist() error {
	return s.withChecklistLock(func() error {
		return removeIfExists(s.checklistStatePath())
	})
}
