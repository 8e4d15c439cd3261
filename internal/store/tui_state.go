package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const (
	tuiStateFileName       = "tui_state.json"
	defaultLastTimeMinutes = "30"
)

// TUIState remembers the last preparation inputs so the next session starts pre-filled.
//
// Best effort: callers should tolerate missing/invalid data.
type TUIState struct {
	Version         int    `json:"version"`
	LastGoal        string `json:"lastGoal,omitempty"`
	LastTimeMinutes string `json:"lastTimeMinutes,omitempty"`
}

func (s Store) tuiStatePath() string {
	return filepath.Join(s.Dir, tuiStateFileName)
}

func (s Store) LoadTUIState() (*TUIState, error) {
	def := &TUIState{Version: 1, LastTimeMinutes: defaultLastTimeMinutes}
	if strings.TrimSpace(s.Dir) == "" {
		return def, nil
	}
	b, err := os.ReadFile(s.tuiStatePath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return def, nil
		}
		return nil, err
	}
	var st TUIState
	if err := json.Unmarshal(b, &st); err != nil {
		// Corrupted: treat as missing.
		return def, nil
	}
	if st.Version == 0 {
		st.Version = 1
	}
	if strings.TrimSpace(st.LastTimeMinutes) == "" {
		st.LastTimeMinutes = defaultLastTimeMinutes
	}
	return &st, nil
}

func (s Store) SaveTUIState(st *TUIState) error {
	if st == nil || strings.TrimSpace(s.Dir) == "" {
		return nil
	}
	if err := s.Ensure(); err != nil {
		return err
	}
	if st.Version == 0 {
		st.Version = 1
	}
	return writeJSONFile(s.tuiStatePath(), st)
}
