package cli

import (
	"momentum-cli/internal/format"

	"github.com/spf13/cobra"
)

func newHistoryCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past sessions and analyses (newest first)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, app, func(e *env) error {
				sessions, err := e.Store.ListSessions(cmd.Context(), limit)
				if err != nil {
					return writeErr(cmd, err)
				}
				analyses, err := e.Store.ListAnalyses(cmd.Context(), limit)
				if err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, format.Envelope{
					Data: map[string]any{
						"sessions": sessions,
						"analyses": analyses,
					},
					Meta: map[string]any{"limit": limit},
				})
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Max rows per list (0 = all)")
	return cmd
}
