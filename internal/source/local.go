package source

import (
	"context"
	"fmt"
	"sync"
	"time"

	"momentum-cli/internal/model"
	"momentum-cli/internal/store"

	"go.uber.org/zap"
)

// Local serves every call in-process from the momentum home directory and vault.
type Local struct {
	Store    store.Store
	Vault    store.Vault
	Items    []string
	Analyzer Analyzer
	Logger   *zap.Logger

	// mu orders checklist writes and session start within this process; the store's file
	// lock covers other processes.
	mu sync.Mutex
}

var _ Client = (*Local)(nil)

func (l *Local) log() *zap.Logger {
	if l.Logger == nil {
		return zap.NewNop()
	}
	return l.Logger
}

func (l *Local) now() time.Time {
	if l.Store.Now != nil {
		return l.Store.Now()
	}
	return time.Now()
}

func (l *Local) List(ctx context.Context) (model.ChecklistState, error) {
	return l.Store.LoadChecklist(l.Items)
}

func (l *Local) Toggle(ctx context.Context, id string) (model.ChecklistState, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	st, found, err := l.Store.ToggleChecklistItem(l.Items, id)
	if err != nil {
		return model.ChecklistState{}, err
	}
	if !found {
		return st, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	return st, nil
}

// Start records a new session in the session file, the daily note and the history db,
// then clears the checklist for the next preparation.
func (l *Local) Start(ctx context.Context, goal string, minutes uint64) (model.SessionData, error) {
	if err := ValidateStart(goal, minutes); err != nil {
		return model.SessionData{}, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	existing, err := l.Store.LoadSession()
	if err != nil {
		return model.SessionData{}, err
	}
	if existing != nil {
		return model.SessionData{}, fmt.Errorf("%w: %s", ErrSessionActive, existing.Goal)
	}

	now := l.now()
	sd := model.SessionData{
		Goal:         goal,
		StartTime:    uint64(now.Unix()),
		TimeExpected: minutes,
	}

	if err := l.Vault.Ensure(); err != nil {
		return model.SessionData{}, fmt.Errorf("prepare vault: %w", err)
	}
	content := fmt.Sprintf("**Goal:** %s\n**Duration:** %d minutes\n**Started:** %s",
		goal, minutes, now.Format("Jan 2, 2006 at 3:04 PM"))
	if _, err := l.Vault.AppendSessionBlock(now, "session-start-"+now.Format("1504"), content); err != nil {
		return model.SessionData{}, fmt.Errorf("append daily note: %w", err)
	}
	if err := l.Store.SaveSession(sd); err != nil {
		return model.SessionData{}, fmt.Errorf("save session: %w", err)
	}

	if _, err := l.Store.RecordSessionStart(ctx, sd); err != nil {
		l.log().Warn("record session start", zap.Error(err))
	}
	if err := l.Store.ResetChecklist(); err != nil {
		l.log().Warn("reset checklist", zap.Error(err))
	}
	l.log().Info("session started", zap.String("goal", goal), zap.Uint64("minutes", minutes))
	return sd, nil
}

func (l *Local) Stop(ctx context.Context) (string, error) {
	sd, err := l.Store.LoadSession()
	if err != nil {
		return "", err
	}
	if sd == nil {
		return "", store.ErrNoActiveSession
	}

	now := l.now()
	path, err := l.Vault.WriteReflection(now, *sd)
	if err != nil {
		return "", fmt.Errorf("write reflection: %w", err)
	}
	content := fmt.Sprintf("**Session Completed:** %s\n**Duration:** %d minutes\n**Reflection:** [View](%s)",
		sd.Goal, store.ElapsedMinutes(*sd, now), path)
	if _, err := l.Vault.AppendSessionBlock(now, "session-end-"+now.Format("1504"), content); err != nil {
		return "", fmt.Errorf("append daily note: %w", err)
	}
	if err := l.Store.RecordSessionStop(ctx, now, path); err != nil {
		l.log().Warn("record session stop", zap.Error(err))
	}
	if err := l.Store.ClearSession(); err != nil {
		return "", fmt.Errorf("clear session: %w", err)
	}
	l.log().Info("session stopped", zap.String("goal", sd.Goal), zap.String("reflection", path))
	return path, nil
}

func (l *Local) GetSession(ctx context.Context) (*model.SessionData, error) {
	return l.Store.LoadSession()
}

func (l *Local) Analyze(ctx context.Context, reflectionPath string) (model.AnalysisResult, error) {
	if l.Analyzer == nil {
		return model.AnalysisResult{}, fmt.Errorf("%w: no analysis command configured", ErrSourceUnavailable)
	}
	res, err := l.Analyzer.Analyze(ctx, reflectionPath)
	if err != nil {
		return model.AnalysisResult{}, err
	}
	if _, err := l.Store.RecordAnalysis(ctx, reflectionPath, res); err != nil {
		l.log().Warn("record analysis", zap.Error(err))
	}
	return res, nil
}
