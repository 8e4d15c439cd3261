package source

import (
	"bytes"
	"context"
	"encoding/json"
	"os/exec"
	"strconv"
	"strings"

	"momentum-cli/internal/model"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Exec talks to a separate momentum binary through its JSON CLI, the way the desktop
// front end drove the core tool.
type Exec struct {
	Binary string
	// ConfigDir is forwarded as --config-dir when set.
	ConfigDir string
	// Limiter bounds process spawns (rapid slot taps fan out into toggles). Nil = unlimited.
	Limiter *rate.Limiter
	Logger  *zap.Logger
}

var _ Client = (*Exec)(nil)

// NewExec returns an Exec limited to spawnsPerSecond process starts (burst of 4).
func NewExec(binary, configDir string, spawnsPerSecond float64, logger *zap.Logger) *Exec {
	var lim *rate.Limiter
	if spawnsPerSecond > 0 {
		lim = rate.NewLimiter(rate.Limit(spawnsPerSecond), 4)
	}
	return &Exec{Binary: binary, ConfigDir: configDir, Limiter: lim, Logger: logger}
}

type envelope struct {
	Data json.RawMessage `json:"data"`
}

func (e *Exec) run(ctx context.Context, args ...string) (json.RawMessage, error) {
	if e.Limiter != nil {
		if err := e.Limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}
	// Force the child onto the in-process store so it never re-enters exec mode.
	full := []string{"--format", "json", "--source", "local"}
	if e.ConfigDir != "" {
		full = append(full, "--config-dir", e.ConfigDir)
	}
	full = append(full, args...)

	cmd := exec.CommandContext(ctx, e.Binary, full...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		cerr := commandError(e.Binary+" "+strings.Join(args, " "), err, stderr.String())
		if e.Logger != nil {
			e.Logger.Error("source command failed", zap.Strings("args", args), zap.Error(cerr))
		}
		return nil, cerr
	}

	var env envelope
	if err := json.Unmarshal(bytes.TrimSpace(stdout.Bytes()), &env); err != nil {
		return nil, &InvalidResponseError{Msg: "decode " + strings.Join(args, " "), Err: err}
	}
	return env.Data, nil
}

func decodeData[T any](raw json.RawMessage, what string) (T, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, &InvalidResponseError{Msg: "decode " + what, Err: err}
	}
	return v, nil
}

func (e *Exec) List(ctx context.Context) (model.ChecklistState, error) {
	raw, err := e.run(ctx, "check", "list")
	if err != nil {
		return model.ChecklistState{}, err
	}
	return decodeData[model.ChecklistState](raw, "checklist")
}

func (e *Exec) Toggle(ctx context.Context, id string) (model.ChecklistState, error) {
	raw, err := e.run(ctx, "check", "toggle", id)
	if err != nil {
		return model.ChecklistState{}, err
	}
	return decodeData[model.ChecklistState](raw, "checklist")
}

func (e *Exec) Start(ctx context.Context, goal string, minutes uint64) (model.SessionData, error) {
	if err := ValidateStart(goal, minutes); err != nil {
		return model.SessionData{}, err
	}
	raw, err := e.run(ctx, "start", "--goal", goal, "--time", strconv.FormatUint(minutes, 10))
	if err != nil {
		return model.SessionData{}, err
	}
	return decodeData[model.SessionData](raw, "session")
}

func (e *Exec) Stop(ctx context.Context) (string, error) {
	raw, err := e.run(ctx, "stop")
	if err != nil {
		return "", err
	}
	out, err := decodeData[struct {
		ReflectionPath string `json:"reflectionPath"`
	}](raw, "stop result")
	if err != nil {
		return "", err
	}
	if out.ReflectionPath == "" {
		return "", &InvalidResponseError{Msg: "stop returned no reflection path"}
	}
	return out.ReflectionPath, nil
}

func (e *Exec) GetSession(ctx context.Context) (*model.SessionData, error) {
	raw, err := e.run(ctx, "get-session")
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(raw)) == 0 || string(bytes.TrimSpace(raw)) == "null" {
		return nil, nil
	}
	sd, err := decodeData[model.SessionData](raw, "session")
	if err != nil {
		return nil, err
	}
	return &sd, nil
}

func (e *Exec) Analyze(ctx context.Context, reflectionPath string) (model.AnalysisResult, error) {
	raw, err := e.run(ctx, "analyze", "--file", reflectionPath)
	if err != nil {
		return model.AnalysisResult{}, err
	}
	return decodeData[model.AnalysisResult](raw, "analysis")
}
