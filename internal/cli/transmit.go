package cli

import (
	"errors"
	"fmt"
	"strings"

	"broadcast-mode/internal/transmit"

	"github.com/spf13/cobra"
)

func newTransmitCmd(app *App) *cobra.Command {
	var form transmit.Form

	cmd := &cobra.Command{
		Use:   "transmit",
		Short: "Send a message through the contact form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var ok bool
			if form.ProjectType, ok = choice(form.ProjectType, transmit.ProjectTypes); !ok {
				return writeErr(cmd, fmt.Errorf("--project-type: expected one of %s", strings.Join(transmit.ProjectTypes, ", ")))
			}
			if form.Timeline, ok = choice(form.Timeline, transmit.Timelines); !ok {
				return writeErr(cmd, fmt.Errorf("--timeline: expected one of %s", strings.Join(transmit.Timelines, ", ")))
			}

			m := transmit.NewMachine()
			m.Form = form
			err := transmit.Transmit(cmd.Context(), newClient(app), m, app.cfg.FormSource)
			if errors.Is(err, transmit.ErrInvalid) {
				msgs := make([]string, 0, 3)
				for _, fe := range form.Validate() {
					msgs = append(msgs, fe.Message)
				}
				return writeErr(cmd, fmt.Errorf("%s %s", transmit.InvalidMessage, strings.Join(msgs, " ")))
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"status": m.Status,
				"label":  m.Status.Label(),
			}})
		},
	}

	cmd.Flags().StringVar(&form.Name, "name", "", "Your name")
	cmd.Flags().StringVar(&form.Email, "email", "", "Reply-to email")
	cmd.Flags().StringVar(&form.Message, "message", "", "Message (at least 10 characters)")
	cmd.Flags().StringVar(&form.ProjectType, "project-type", "", "Project type ("+strings.Join(transmit.ProjectTypes, "|")+")")
	cmd.Flags().StringVar(&form.Timeline, "timeline", "", "Timeline ("+strings.Join(transmit.Timelines, "|")+")")
	return cmd
}

// choice maps v onto its canonical spelling in choices. Empty is allowed.
func choice(v string, choices []string) (string, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", true
	}
	for _, c := range choices {
		if strings.EqualFold(v, c) {
			return c, true
		}
	}
	return v, false
}
