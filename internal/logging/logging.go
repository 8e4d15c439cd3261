// Package logging builds the zap logger shared by the CLI and the TUI.
//
// The TUI owns the terminal, so logs always go to a JSON file under the
// momentum home directory rather than stderr.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const FileName = "momentum.log"

// Config selects where and how verbosely to log.
type Config struct {
	// Dir is created if missing. Empty disables file output.
	Dir   string
	Level string
	// Fields are attached to every entry.
	Fields map[string]string
}

// ParseLevel accepts zap level names. Empty means info.
func ParseLevel(s string) (zapcore.Level, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return zapcore.InfoLevel, nil
	}
	lvl, err := zapcore.ParseLevel(strings.ToLower(s))
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level %q", s)
	}
	return lvl, nil
}

func newEncoder() zapcore.Encoder {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapcore.NewJSONEncoder(encoderCfg)
}

// New opens <Dir>/momentum.log for appending and returns a logger writing to it
// along with a close func that syncs and closes the file.
func New(cfg Config) (*zap.Logger, func() error, error) {
	lvl, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}
	if strings.TrimSpace(cfg.Dir) == "" {
		return zap.NewNop(), func() error { return nil }, nil
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(cfg.Dir, FileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	core := zapcore.NewCore(newEncoder(), zapcore.Lock(f), zap.NewAtomicLevelAt(lvl))
	logger := zap.New(core, zap.AddCaller())
	if len(cfg.Fields) > 0 {
		fields := make([]zap.Field, 0, len(cfg.Fields))
		for k, v := range cfg.Fields {
			fields = append(fields, zap.String(k, v))
		}
		logger = logger.With(fields...)
	}

	closeFn := func() error {
		_ = logger.Sync()
		return f.Close()
	}
	return logger, closeFn, nil
}
