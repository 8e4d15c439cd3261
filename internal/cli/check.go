package cli

import (
	"momentum-cli/internal/format"

	"github.com/spf13/cobra"
)

func newCheckCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "check",
		Aliases: []string{"checklist"},
		Short:   "Pre-session checklist",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every checklist item with its state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, app, func(e *env) error {
				st, err := e.Client.List(cmd.Context())
				if err != nil {
					return writeErr(cmd, err)
				}
				done := 0
				for _, it := range st.Items {
					if it.On {
						done++
					}
				}
				return writeOut(cmd, app, format.Envelope{
					Data: st,
					Meta: map[string]any{"total": len(st.Items), "checked": done},
				})
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "toggle <item-id>",
		Short: "Flip one item and print the full checklist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, app, func(e *env) error {
				st, err := e.Client.Toggle(cmd.Context(), args[0])
				if err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, format.Wrap(st))
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <item-id>",
		Short: "Show one checklist item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, app, func(e *env) error {
				st, err := e.Client.List(cmd.Context())
				if err != nil {
					return writeErr(cmd, err)
				}
				it, ok := st.Find(args[0])
				if !ok {
					return writeErr(cmd, errNotFound("checklist item", args[0]))
				}
				return writeOut(cmd, app, format.Wrap(it))
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Uncheck every item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, app, func(e *env) error {
				if err := e.Store.ResetChecklist(); err != nil {
					return writeErr(cmd, err)
				}
				st, err := e.Store.LoadChecklist(e.Config.Checklist.Items)
				if err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, format.Wrap(st))
			})
		},
	})

	return cmd
}
