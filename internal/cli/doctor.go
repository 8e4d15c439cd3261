package cli

import (
	"momentum-cli/internal/format"
	"momentum-cli/internal/store"

	"github.com/spf13/cobra"
)

func newDoctorCmd(app *App) *cobra.Command {
	var fail bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check config, vault, session and history files",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, app, func(e *env) error {
				report := store.Doctor(cmd.Context(), e.Store, e.Config)

				out := format.Envelope{
					Data: report,
					Meta: map[string]any{
						"issues":    len(report.Issues),
						"hasErrors": report.HasErrors(),
					},
				}
				if report.HasErrors() {
					out = out.WithHint("momentum init")
				}
				if err := writeOut(cmd, app, out); err != nil {
					return err
				}

				if fail && report.HasErrors() {
					return errDoctorIssuesFound
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&fail, "fail", false, "Exit with non-zero status if errors are found")
	return cmd
}
