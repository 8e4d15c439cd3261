package store

import (
	"context"
	"os"
	"testing"
)

func hasIssue(rep DoctorReport, code string) bool {
	for _, it := range rep.Issues {
		if it.Code == code {
			return true
		}
	}
	return false
}

func TestDoctor_FreshDirReportsMissingVault(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := Store{Dir: dir}
	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	rep := Doctor(context.Background(), s, cfg)
	if !hasIssue(rep, "config_missing") {
		t.Fatalf("expected config_missing, got %#v", rep.Issues)
	}
	if !hasIssue(rep, "vault_missing") || !rep.HasErrors() {
		t.Fatalf("expected vault_missing error, got %#v", rep.Issues)
	}
}

func TestDoctor_HealthyAfterInit(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := Store{Dir: dir}
	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if _, err := WriteDefaultConfig(dir, cfg); err != nil {
		t.Fatalf("WriteDefaultConfig: %v", err)
	}
	if err := (Vault{Root: cfg.Vault.Root}).Ensure(); err != nil {
		t.Fatalf("vault ensure: %v", err)
	}

	rep := Doctor(context.Background(), s, cfg)
	if len(rep.Issues) != 0 {
		t.Fatalf("expected no issues, got %#v", rep.Issues)
	}
}

func TestDoctor_FlagsCorruptSessionAndMissingBinary(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := Store{Dir: dir}
	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	cfg.Source.Mode = "exec"
	cfg.Source.Binary = "momentum-definitely-not-installed"
	if err := os.WriteFile(s.SessionPath(), []byte("{"), 0o644); err != nil {
		t.Fatalf("write session: %v", err)
	}

	rep := Doctor(context.Background(), s, cfg)
	if !hasIssue(rep, "session_invalid") {
		t.Fatalf("expected session_invalid, got %#v", rep.Issues)
	}
	if !hasIssue(rep, "source_binary_missing") {
		t.Fatalf("expected source_binary_missing, got %#v", rep.Issues)
	}
}
