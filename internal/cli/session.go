package cli

import (
	"strings"

	"momentum-cli/internal/format"
	"momentum-cli/internal/source"

	"github.com/spf13/cobra"
)

func newStartCmd(app *App) *cobra.Command {
	var goal, minutes string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a focus session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, ok := source.ParseMinutes(strings.TrimSpace(minutes))
			if !ok {
				return writeErr(cmd, &source.ValidationError{Field: "time", Msg: "Please enter a valid time in minutes"})
			}
			goal = strings.TrimSpace(goal)
			if err := source.ValidateStart(goal, n); err != nil {
				return writeErr(cmd, err)
			}
			return withEnv(cmd, app, func(e *env) error {
				sd, err := e.Client.Start(cmd.Context(), goal, n)
				if err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, format.Wrap(sd))
			})
		},
	}

	cmd.Flags().StringVar(&goal, "goal", "", "What the session is for")
	cmd.Flags().StringVar(&minutes, "time", "", "Expected duration in minutes")
	_ = cmd.MarkFlagRequired("goal")
	_ = cmd.MarkFlagRequired("time")
	return cmd
}

func newStopCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the active session and write its reflection note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, app, func(e *env) error {
				path, err := e.Client.Stop(cmd.Context())
				if err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, format.Wrap(map[string]any{
					"reflectionPath": path,
				}).WithHint("momentum analyze --file "+path))
			})
		},
	}
}

func newGetSessionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get-session",
		Short: "Show the active session (data is null when none)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, app, func(e *env) error {
				sd, err := e.Client.GetSession(cmd.Context())
				if err != nil {
					return writeErr(cmd, err)
				}
				if sd == nil {
					return writeOut(cmd, app, format.Wrap(nil))
				}
				return writeOut(cmd, app, format.Wrap(sd))
			})
		},
	}
}
