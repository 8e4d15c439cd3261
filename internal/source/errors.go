package source

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSourceUnavailable means the backing binary or command could not be found.
	ErrSourceUnavailable = errors.New("momentum source not available")
	ErrItemNotFound      = errors.New("checklist item not found")
	ErrSessionActive     = errors.New("a session is already active")
)

type CommandFailedError struct {
	Command  string
	ExitCode int
	Stderr   string
}

func (e *CommandFailedError) Error() string {
	stderr := strings.TrimSpace(e.Stderr)
	if stderr == "" {
		stderr = "unknown error"
	}
	return fmt.Sprintf("command '%s' failed with exit code %d: %s", e.Command, e.ExitCode, stderr)
}

type InvalidResponseError struct {
	Msg string
	Err error
}

func (e *InvalidResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid output: %s: %v", e.Msg, e.Err)
	}
	return "invalid output: " + e.Msg
}

func (e *InvalidResponseError) Unwrap() error { return e.Err }

// ValidationError is a locally detected input problem. It is never sent to a source.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string { return e.Msg }

type Category string

const (
	CategorySourceError  Category = "sourceError"
	CategoryInvalidInput Category = "invalidInput"
	CategoryOther        Category = "other"
)

// Categorize buckets an error for user-facing alerts.
func Categorize(err error) Category {
	if err == nil {
		return CategoryOther
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return CategoryInvalidInput
	}
	var cf *CommandFailedError
	var ir *InvalidResponseError
	if errors.Is(err, ErrSourceUnavailable) || errors.As(err, &cf) || errors.As(err, &ir) {
		return CategorySourceError
	}
	return CategoryOther
}
