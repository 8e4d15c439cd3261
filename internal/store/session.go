package store

import (
	"errors"
	"fmt"

	"momentum-cli/internal/model"
)

var ErrNoActiveSession = errors.New("no active session found")

// LoadSession returns the active session, or nil when none is running.
func (s Store) LoadSession() (*model.SessionData, error) {
	var sd model.SessionData
	ok, err := readJSONFile(s.SessionPath(), &sd)
	if err != nil {
		return nil, fmt.Errorf("load session from %s: %w", s.SessionPath(), err)
	}
	if !ok {
		return nil, nil
	}
	return &sd, nil
}

func (s Store) SaveSession(sd model.SessionData) error {
	if err := s.Ensure(); err != nil {
		return err
	}
	return writeJSONFile(s.SessionPath(), sd)
}

func (s Store) ClearSession() error {
	return removeIfExists(s.SessionPath())
}
