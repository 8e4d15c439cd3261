package cli

import (
	"errors"
	"path/filepath"
	"strings"

	"momentum-cli/internal/format"
	"momentum-cli/internal/source"

	"github.com/spf13/cobra"
)

func newAnalyzeCmd(app *App) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the configured analysis command over a reflection note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file = strings.TrimSpace(file)
			if file == "" {
				return writeErr(cmd, &source.ValidationError{Field: "file", Msg: "--file is required"})
			}
			abs, err := filepath.Abs(file)
			if err != nil {
				return writeErr(cmd, err)
			}
			return withEnv(cmd, app, func(e *env) error {
				res, err := e.Client.Analyze(cmd.Context(), abs)
				if err != nil {
					if errors.Is(err, source.ErrSourceUnavailable) && len(e.Config.Analyze.Command) == 0 {
						err = errors.Join(err, errors.New("set analyze.command in config.yaml"))
					}
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, format.Envelope{
					Data: res,
					Meta: map[string]any{"reflectionPath": abs},
				})
			})
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Reflection markdown file")
	return cmd
}
