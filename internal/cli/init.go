package cli

import (
	"momentum-cli/internal/format"
	"momentum-cli/internal/store"

	"github.com/spf13/cobra"
)

func newInitCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the momentum home dir, a default config and the vault layout",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, app, func(e *env) error {
				if err := e.Store.Ensure(); err != nil {
					return writeErr(cmd, err)
				}
				written, err := store.WriteDefaultConfig(e.Store.Dir, e.Config)
				if err != nil {
					return writeErr(cmd, err)
				}
				vault := store.Vault{Root: e.Config.Vault.Root}
				if err := vault.Ensure(); err != nil {
					return writeErr(cmd, err)
				}
				e.Logger.Info("initialized")

				return writeOut(cmd, app, format.Envelope{
					Data: map[string]any{
						"dir":           e.Store.Dir,
						"configPath":    store.ConfigPath(e.Store.Dir),
						"configWritten": written,
						"vaultRoot":     vault.Root,
					},
					Hints: []string{"momentum check list", "momentum doctor"},
				})
			})
		},
	}
	return cmd
}
