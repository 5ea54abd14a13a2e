package cli

import (
	"fmt"
	"strings"

	"broadcast-mode/internal/model"
	"broadcast-mode/internal/settings"

	"github.com/spf13/cobra"
)

func newSettingsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Read or change visual settings",
	}
	cmd.AddCommand(newSettingsGetCmd(app))
	cmd.AddCommand(newSettingsSetCmd(app))
	return cmd
}

func newSettingsGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, prefs, closeFn, err := openPrefs(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeFn()

			st := settings.New(prefs, app.cfg.ReducedMotion())
			return writeOut(cmd, app, map[string]any{"data": st.Hydrate()})
		},
	}
}

func newSettingsSetCmd(app *App) *cobra.Command {
	var (
		vhs       string
		intensity string
		reduced   string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change one or more settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var p settings.Patch
			if cmd.Flags().Changed("vhs") {
				v, err := parseOnOff("vhs", vhs)
				if err != nil {
					return writeErr(cmd, err)
				}
				p.VhsEnabled = settings.Bool(v)
			}
			if cmd.Flags().Changed("intensity") {
				i, err := parseIntensity(intensity)
				if err != nil {
					return writeErr(cmd, err)
				}
				p.VhsIntensity = settings.Intensity(i)
			}
			if cmd.Flags().Changed("reduced-motion") {
				v, err := parseOnOff("reduced-motion", reduced)
				if err != nil {
					return writeErr(cmd, err)
				}
				p.ReducedMotion = settings.Bool(v)
			}
			if p == (settings.Patch{}) {
				return writeErr(cmd, fmt.Errorf("nothing to set (use --vhs, --intensity or --reduced-motion)"))
			}

			_, prefs, closeFn, err := openPrefs(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeFn()

			st := settings.New(prefs, app.cfg.ReducedMotion())
			st.Hydrate()
			return writeOut(cmd, app, map[string]any{"data": st.Update(p)})
		},
	}

	cmd.Flags().StringVar(&vhs, "vhs", "", "VHS overlay (on|off)")
	cmd.Flags().StringVar(&intensity, "intensity", "", "Overlay intensity (low|medium|high)")
	cmd.Flags().StringVar(&reduced, "reduced-motion", "", "Reduced motion (on|off)")
	return cmd
}

func parseOnOff(flag, v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("--%s: expected on|off, got %q", flag, v)
}

func parseIntensity(v string) (model.VhsIntensity, error) {
	switch i := model.VhsIntensity(strings.ToLower(strings.TrimSpace(v))); i {
	case model.IntensityLow, model.IntensityMedium, model.IntensityHigh:
		return i, nil
	}
	return "", fmt.Errorf("--intensity: expected low|medium|high, got %q", v)
}
