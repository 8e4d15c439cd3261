// Package source defines the collaborators the preparation screen and app shell consume:
// the checklist, the session lifecycle, and reflection analysis. Every call may be slow or
// fail, and checklist calls always return the complete authoritative state.
package source

import (
	"context"

	"momentum-cli/internal/model"
)

type ChecklistSource interface {
	List(ctx context.Context) (model.ChecklistState, error)
	// Toggle flips one item and returns the full checklist afterwards.
	Toggle(ctx context.Context, id string) (model.ChecklistState, error)
}

type SessionSource interface {
	Start(ctx context.Context, goal string, minutes uint64) (model.SessionData, error)
	// Stop ends the active session and returns the reflection file path.
	Stop(ctx context.Context) (string, error)
	// GetSession returns nil when no session is active.
	GetSession(ctx context.Context) (*model.SessionData, error)
}

type Analyzer interface {
	Analyze(ctx context.Context, reflectionPath string) (model.AnalysisResult, error)
}

type Client interface {
	ChecklistSource
	SessionSource
	Analyzer
}
