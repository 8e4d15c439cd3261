package store

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

type DoctorIssueLevel string

const (
	DoctorIssueLevelError DoctorIssueLevel = "error"
	DoctorIssueLevelWarn  DoctorIssueLevel = "warn"
)

type DoctorIssue struct {
	Level   DoctorIssueLevel `json:"level"`
	Code    string           `json:"code"`
	Message string           `json:"message"`
	Path    string           `json:"path,omitempty"`
}

type DoctorReport struct {
	Issues []DoctorIssue `json:"issues"`
}

func (r DoctorReport) HasErrors() bool {
	for _, it := range r.Issues {
		if it.Level == DoctorIssueLevelError {
			return true
		}
	}
	return false
}

func (r *DoctorReport) add(level DoctorIssueLevel, code, path, format string, args ...any) {
	r.Issues = append(r.Issues, DoctorIssue{Level: level, Code: code, Path: path, Message: fmt.Sprintf(format, args...)})
}

// Doctor checks that every file momentum reads is present and decodable.
func Doctor(ctx context.Context, s Store, cfg Config) DoctorReport {
	rep := DoctorReport{Issues: []DoctorIssue{}}

	if _, err := os.Stat(ConfigPath(s.Dir)); os.IsNotExist(err) {
		rep.add(DoctorIssueLevelWarn, "config_missing", ConfigPath(s.Dir), "no config file; defaults in use (run `momentum init`)")
	}

	if st, err := os.Stat(cfg.Vault.Root); err != nil || !st.IsDir() {
		rep.add(DoctorIssueLevelError, "vault_missing", cfg.Vault.Root, "vault root is not a directory")
	} else {
		for _, sub := range []string{"capture", "reflections"} {
			p := filepath.Join(cfg.Vault.Root, sub)
			if _, err := os.Stat(p); err != nil {
				rep.add(DoctorIssueLevelWarn, "vault_dir_missing", p, "vault subdirectory missing")
			}
		}
	}

	if _, err := s.LoadSession(); err != nil {
		rep.add(DoctorIssueLevelError, "session_invalid", s.SessionPath(), "%v", err)
	}
	if _, err := s.LoadChecklist(cfg.Checklist.Items); err != nil {
		rep.add(DoctorIssueLevelError, "checklist_state_invalid", s.checklistStatePath(), "%v", err)
	}
	if _, err := s.ListSessions(ctx, 1); err != nil {
		rep.add(DoctorIssueLevelError, "history_unavailable", s.HistoryPath(), "%v", err)
	}

	if cfg.Source.Mode == "exec" {
		if _, err := exec.LookPath(cfg.Source.Binary); err != nil {
			rep.add(DoctorIssueLevelError, "source_binary_missing", cfg.Source.Binary, "checklist source binary not found on PATH")
		}
	}
	if len(cfg.Analyze.Command) > 0 {
		if _, err := exec.LookPath(cfg.Analyze.Command[0]); err != nil {
			rep.add(DoctorIssueLevelWarn, "analyze_command_missing", cfg.Analyze.Command[0], "analysis command not found on PATH")
		}
	}
	return rep
}
