package source

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"momentum-cli/internal/model"
)

const analysisPrompt = `Read the focus-session reflection below. Reply with only a JSON object
with the string fields "summary", "suggestion" and "reasoning".

`

// CommandAnalyzer pipes a reflection into an external command (for example an LLM CLI) and
// decodes the JSON object it prints.
type CommandAnalyzer struct {
	Command []string
}

func (a CommandAnalyzer) Analyze(ctx context.Context, reflectionPath string) (model.AnalysisResult, error) {
	if len(a.Command) == 0 {
		return model.AnalysisResult{}, fmt.Errorf("%w: no analysis command configured", ErrSourceUnavailable)
	}
	body, err := os.ReadFile(reflectionPath)
	if err != nil {
		return model.AnalysisResult{}, fmt.Errorf("read reflection: %w", err)
	}

	cmd := exec.CommandContext(ctx, a.Command[0], a.Command[1:]...)
	cmd.Stdin = strings.NewReader(analysisPrompt + string(body))
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return model.AnalysisResult{}, commandError(strings.Join(a.Command, " "), err, stderr.String())
	}
	return decodeAnalysis(stdout.Bytes())
}

// decodeAnalysis accepts the first {...} object in out, so chatty tools that wrap their
// answer in prose or code fences still work.
func decodeAnalysis(out []byte) (model.AnalysisResult, error) {
	s := string(out)
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < start {
		return model.AnalysisResult{}, &InvalidResponseError{Msg: "analysis output contains no JSON object"}
	}
	var res model.AnalysisResult
	if err := json.Unmarshal([]byte(s[start:end+1]), &res); err != nil {
		return model.AnalysisResult{}, &InvalidResponseError{Msg: "decode analysis", Err: err}
	}
	if strings.TrimSpace(res.Summary) == "" {
		return model.AnalysisResult{}, &InvalidResponseError{Msg: "analysis is missing a summary"}
	}
	return res, nil
}

func commandError(command string, err error, stderr string) error {
	if errors.Is(err, exec.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrSourceUnavailable, command)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &CommandFailedError{Command: command, ExitCode: exitErr.ExitCode(), Stderr: stderr}
	}
	return &CommandFailedError{Command: command, ExitCode: -1, Stderr: err.Error()}
}
