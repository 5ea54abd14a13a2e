package cli

import (
	"broadcast-mode/internal/catalog"

	"github.com/spf13/cobra"
)

func newOpenCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "open <route>",
		Short: "Start the TUI at a route (e.g. /projects?p=broadcast-mode)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := catalog.ParseLocation(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return runTUI(app, loc.String())
		},
	}
}
