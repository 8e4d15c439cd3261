package source

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

func TestDecodeAnalysis(t *testing.T) {
	t.Parallel()

	out := "Sure! Here you go:\n```json\n{\"summary\":\"s\",\"suggestion\":\"g\",\"reasoning\":\"r\"}\n```\n"
	res, err := decodeAnalysis([]byte(out))
	if err != nil {
		t.Fatalf("decodeAnalysis: %v", err)
	}
	if res.Summary != "s" || res.Suggestion != "g" || res.Reasoning != "r" {
		t.Fatalf("unexpected result %#v", res)
	}

	var ir *InvalidResponseError
	if _, err := decodeAnalysis([]byte("no json here")); !errors.As(err, &ir) {
		t.Fatalf("expected InvalidResponseError, got %v", err)
	}
	if _, err := decodeAnalysis([]byte(`{"summary":""}`)); !errors.As(err, &ir) {
		t.Fatalf("expected InvalidResponseError for empty summary, got %v", err)
	}
}

func TestCommandAnalyzer_RunsCommand(t *testing.T) {
	t.Parallel()

	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	path := filepath.Join(t.TempDir(), "r.md")
	if err := os.WriteFile(path, []byte("# Reflection\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	a := CommandAnalyzer{Command: []string{"sh", "-c", `cat >/dev/null; echo '{"summary":"done","suggestion":"x","reasoning":"y"}'`}}
	res, err := a.Analyze(context.Background(), path)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.Summary != "done" {
		t.Fatalf("unexpected result %#v", res)
	}

	fail := CommandAnalyzer{Command: []string{"sh", "-c", "echo nope >&2; exit 3"}}
	var cf *CommandFailedError
	if _, err := fail.Analyze(context.Background(), path); !errors.As(err, &cf) || cf.ExitCode != 3 || cf.Stderr != "nope\n" {
		t.Fatalf("expected CommandFailedError exit 3, got %v", err)
	}
}

func TestCommandAnalyzer_MissingBinary(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "r.md")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	a := CommandAnalyzer{Command: []string{"momentum-no-such-analyzer"}}
	if _, err := a.Analyze(context.Background(), path); !errors.Is(err, ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}
	if _, err := (CommandAnalyzer{}).Analyze(context.Background(), path); !errors.Is(err, ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable for empty command, got %v", err)
	}
}
