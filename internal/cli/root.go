package cli

import (
	"fmt"
	"os"
	"strings"

	"momentum-cli/internal/format"
	"momentum-cli/internal/logging"
	"momentum-cli/internal/source"
	"momentum-cli/internal/store"
	"momentum-cli/internal/tui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type App struct {
	ConfigDir  string
	PrettyJSON bool
	Format     string
	// Source overrides config source.mode (local|exec) for this invocation.
	Source string
}

// env is everything a command needs once flags are parsed.
type env struct {
	Store  store.Store
	Config store.Config
	Logger *zap.Logger
	Client source.Client
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "momentum",
		Short:        "Focus sessions with a pre-session checklist (CLI + TUI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  momentum

  # Scriptable commands
  momentum check list
  momentum start --goal "Write the report" --time 45
  momentum stop

  # Direct checklist lookup (shortcut for: momentum check show item-2)
  momentum item-2
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.ConfigDir, "config-dir", envOr("MOMENTUM_CONFIG_DIR", ""), "Path to the momentum home dir (default ~/.momentum)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("MOMENTUM_FORMAT", "json"), "Output format (json|edn)")
	cmd.PersistentFlags().StringVar(&app.Source, "source", "", "Backend for checklist and sessions (local|exec; default from config)")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newStartCmd(app))
	cmd.AddCommand(newStopCmd(app))
	cmd.AddCommand(newGetSessionCmd(app))
	cmd.AddCommand(newCheckCmd(app))
	cmd.AddCommand(newAnalyzeCmd(app))
	cmd.AddCommand(newHistoryCmd(app))
	cmd.AddCommand(newDoctorCmd(app))

	return cmd
}

func runTUI(cmd *cobra.Command, app *App) error {
	return withEnv(cmd, app, func(e *env) error {
		return tui.Run(tui.Options{
			Store:  e.Store,
			Config: e.Config,
			Client: e.Client,
			Logger: e.Logger,
		})
	})
}

func resolveDir(app *App) (string, error) {
	if strings.TrimSpace(app.ConfigDir) != "" {
		return app.ConfigDir, nil
	}
	d, err := store.ConfigDir()
	if err != nil {
		return "", err
	}
	app.ConfigDir = d
	return d, nil
}

// withEnv loads config, opens the log file and builds the client, runs fn, then closes the log.
func withEnv(cmd *cobra.Command, app *App, fn func(e *env) error) error {
	if _, err := format.ParseFormat(app.Format); err != nil {
		return writeErr(cmd, err)
	}
	dir, err := resolveDir(app)
	if err != nil {
		return writeErr(cmd, err)
	}
	cfg, err := store.LoadConfig(dir)
	if err != nil {
		return writeErr(cmd, err)
	}
	s := store.Store{Dir: dir}

	logger, closeLog, err := logging.New(logging.Config{
		Dir:    s.LogsDir(),
		Level:  cfg.Log.Level,
		Fields: map[string]string{"cmd": cmd.Name()},
	})
	if err != nil {
		return writeErr(cmd, err)
	}
	defer func() { _ = closeLog() }()

	client, err := newClient(app, s, cfg, logger)
	if err != nil {
		return writeErr(cmd, err)
	}
	return fn(&env{Store: s, Config: cfg, Logger: logger, Client: client})
}

func newClient(app *App, s store.Store, cfg store.Config, logger *zap.Logger) (source.Client, error) {
	mode := strings.ToLower(strings.TrimSpace(app.Source))
	if mode == "" {
		mode = strings.ToLower(strings.TrimSpace(cfg.Source.Mode))
	}
	switch mode {
	case "", "local":
		return &source.Local{
			Store:    s,
			Vault:    store.Vault{Root: cfg.Vault.Root},
			Items:    cfg.Checklist.Items,
			Analyzer: source.CommandAnalyzer{Command: cfg.Analyze.Command},
			Logger:   logger.Named("local"),
		}, nil
	case "exec":
		return source.NewExec(cfg.Source.Binary, s.Dir, cfg.Source.SpawnsPerSecond, logger.Named("exec")), nil
	default:
		return nil, fmt.Errorf("unknown source: %s (want local or exec)", mode)
	}
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
