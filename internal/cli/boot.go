package cli

import (
	"github.com/spf13/cobra"
)

func newBootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "boot",
		Short: "Inspect or toggle the boot sequence",
	}
	cmd.AddCommand(
		newBootStatusCmd(app),
		newBootToggleCmd(app, "enable", true),
		newBootToggleCmd(app, "disable", false),
	)
	return cmd
}

func newBootStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether new sessions play the boot sequence",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, prefs, closeFn, err := openPrefs(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeFn()

			on, err := prefs.BootEnabled()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"enabled": on}})
		},
	}
}

func newBootToggleCmd(app *App, name string, enabled bool) *cobra.Command {
	short := "Play the boot sequence in new sessions"
	if !enabled {
		short = "Skip the boot sequence in new sessions"
	}
	return &cobra.Command{
		Use:   name,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, prefs, closeFn, err := openPrefs(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeFn()

			if err := prefs.SetBootEnabled(enabled); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"enabled": enabled}})
		},
	}
}
