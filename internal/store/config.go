package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

const (
	configFileName    = "config.yaml"
	maxConfigFileSize = 1024 * 1024
	envPrefix         = "MOMENTUM_"
)

type Config struct {
	Vault     VaultConfig     `koanf:"vault"`
	Checklist ChecklistConfig `koanf:"checklist"`
	Timing    TimingConfig    `koanf:"timing"`
	Source    SourceConfig    `koanf:"source"`
	Analyze   AnalyzeConfig   `koanf:"analyze"`
	Log       LogConfig       `koanf:"log"`
	TUI       TUIConfig       `koanf:"tui"`
}

type VaultConfig struct {
	// Root is the notes vault. Empty means <config dir>/vault.
	Root string `koanf:"root"`
}

type ChecklistConfig struct {
	// Items overrides the built-in pre-session checklist. Order is display order.
	Items []string `koanf:"items"`
}

type TimingConfig struct {
	// Settle is how long a checked item stays visible before its slot rotates.
	Settle time.Duration `koanf:"settle"`
	// FadeIn is how long a freshly assigned item is marked as fading in.
	FadeIn         time.Duration `koanf:"fade_in"`
	ErrorDismiss   time.Duration `koanf:"error_dismiss"`
	RequestTimeout time.Duration `koanf:"request_timeout"`
}

type SourceConfig struct {
	// Mode is "local" (in-process store) or "exec" (shell out to Binary).
	Mode            string  `koanf:"mode"`
	Binary          string  `koanf:"binary"`
	SpawnsPerSecond float64 `koanf:"spawns_per_second"`
}

type AnalyzeConfig struct {
	// Command receives the reflection markdown on stdin and must print
	// {"summary","suggestion","reasoning"} JSON. Empty disables analysis.
	Command []string `koanf:"command"`
}

type LogConfig struct {
	Level string `koanf:"level"`
}

type TUIConfig struct {
	// Theme is light|dark|auto.
	Theme string `koanf:"theme"`
	// MarkdownStyle is a glamour standard style name (dark, light, notty, ...).
	MarkdownStyle string `koanf:"markdown_style"`
}

func DefaultConfig() Config {
	return Config{
		Timing: TimingConfig{
			Settle:         600 * time.Millisecond,
			FadeIn:         300 * time.Millisecond,
			ErrorDismiss:   5 * time.Second,
			RequestTimeout: 15 * time.Second,
		},
		Source: SourceConfig{
			Mode:            "local",
			Binary:          "momentum",
			SpawnsPerSecond: 8,
		},
		Log: LogConfig{Level: "info"},
		TUI: TUIConfig{Theme: "auto"},
	}
}

// ConfigDir resolves the momentum home directory. MOMENTUM_CONFIG_DIR wins over ~/.momentum
// (keeps unit tests away from the real home dir).
func ConfigDir() (string, error) {
	if v := strings.TrimSpace(os.Getenv("MOMENTUM_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".momentum"), nil
}

func ConfigPath(dir string) string {
	return filepath.Join(dir, configFileName)
}

// LoadConfig reads <dir>/config.yaml (if present) over the defaults, then applies
// MOMENTUM_* environment overrides (MOMENTUM_TIMING_SETTLE -> timing.settle).
func LoadConfig(dir string) (Config, error) {
	k := koanf.New(".")

	path := ConfigPath(dir)
	if f, err := os.Open(path); err == nil {
		defer f.Close()
		info, err := f.Stat()
		if err != nil {
			return Config{}, fmt.Errorf("stat config: %w", err)
		}
		if info.Size() > maxConfigFileSize {
			return Config{}, fmt.Errorf("config file %s exceeds %d bytes", path, maxConfigFileSize)
		}
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := k.Load(rawbytes.Provider(b), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return Config{}, err
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}

	cfg := DefaultConfig()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if strings.TrimSpace(cfg.Vault.Root) == "" {
		cfg.Vault.Root = filepath.Join(dir, "vault")
	}
	if len(cfg.Checklist.Items) == 0 {
		cfg.Checklist.Items = DefaultChecklistItems()
	}
	return cfg, nil
}

// envKey maps MOMENTUM_SECTION_FIELD_NAME to section.field_name.
func envKey(s string) string {
	lower := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	parts := strings.SplitN(lower, "_", 2)
	if len(parts) == 1 {
		return lower
	}
	return parts[0] + "." + parts[1]
}

// configFile is the on-disk shape written by WriteDefaultConfig (durations as strings).
type configFile struct {
	Vault struct {
		Root string `yaml:"root"`
	} `yaml:"vault"`
	Checklist struct {
		Items []string `yaml:"items"`
	} `yaml:"checklist"`
	Timing struct {
		Settle         string `yaml:"settle"`
		FadeIn         string `yaml:"fade_in"`
		ErrorDismiss   string `yaml:"error_dismiss"`
		RequestTimeout string `yaml:"request_timeout"`
	} `yaml:"timing"`
	Source struct {
		Mode            string  `yaml:"mode"`
		Binary          string  `yaml:"binary"`
		SpawnsPerSecond float64 `yaml:"spawns_per_second"`
	} `yaml:"source"`
	Analyze struct {
		Command []string `yaml:"command"`
	} `yaml:"analyze"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
	TUI struct {
		Theme         string `yaml:"theme"`
		MarkdownStyle string `yaml:"markdown_style,omitempty"`
	} `yaml:"tui"`
}

// WriteDefaultConfig writes cfg to <dir>/config.yaml unless a config already exists.
// It reports whether a file was written.
func WriteDefaultConfig(dir string, cfg Config) (bool, error) {
	path := ConfigPath(dir)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, err
	}

	var f configFile
	f.Vault.Root = cfg.Vault.Root
	f.Checklist.Items = cfg.Checklist.Items
	f.Timing.Settle = cfg.Timing.Settle.String()
	f.Timing.FadeIn = cfg.Timing.FadeIn.String()
	f.Timing.ErrorDismiss = cfg.Timing.ErrorDismiss.String()
	f.Timing.RequestTimeout = cfg.Timing.RequestTimeout.String()
	f.Source.Mode = cfg.Source.Mode
	f.Source.Binary = cfg.Source.Binary
	f.Source.SpawnsPerSecond = cfg.Source.SpawnsPerSecond
	f.Analyze.Command = cfg.Analyze.Command
	f.Log.Level = cfg.Log.Level
	f.TUI.Theme = cfg.TUI.Theme
	f.TUI.MarkdownStyle = cfg.TUI.MarkdownStyle

	b, err := yamlv3.Marshal(&f)
	if err != nil {
		return false, err
	}
	return true, atomicWriteFile(dir, "config.yaml.*.tmp", path, b, 0o600)
}
