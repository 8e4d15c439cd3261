package store

import (
	"os"
	"path/filepath"
	"time"
)

const (
	sessionFileName        = "session.json"
	checklistStateFileName = "checklist-state.json"
	historyFileName        = "history.sqlite"
	logsDirName            = "logs"
)

// Store is the momentum home directory: config, the active session file, checklist state,
// UI state, the history database and logs.
type Store struct {
	Dir string

	// Now overrides the wall clock (tests). Nil means time.Now.
	Now func() time.Time
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s Store) SessionPath() string {
	return filepath.Join(s.Dir, sessionFileName)
}

func (s Store) checklistStatePath() string {
	return filepath.Join(s.Dir, checklistStateFileName)
}

func (s Store) HistoryPath() string {
	return filepath.Join(s.Dir, historyFileName)
}

func (s Store) LogsDir() string {
	return filepath.Join(s.Dir, logsDirName)
}
