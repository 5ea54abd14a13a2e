package cli

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"broadcast-mode/internal/relay"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRelayCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "relay",
		Short: "Serve the TUI to a browser (PTY + WebSocket)",
		Long: strings.TrimSpace(`
Run the TUI over the web via a server-side PTY and a browser terminal.

Notes:
- No auth; bind to localhost unless you know what you are doing.
- Each browser tab starts its own TUI subprocess on the server.
`),
		Example: strings.TrimSpace(`
# Serve on localhost
broadcast relay --addr 127.0.0.1:8787

# Then deep link a tab into a project window
open "http://127.0.0.1:8787/tv?route=/projects?p=broadcast-mode"
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadCatalog(app); err != nil {
				return writeErr(cmd, err)
			}

			srv, err := relay.NewServer(relay.Config{
				Addr:        strings.TrimSpace(addr),
				Dir:         strings.TrimSpace(app.Dir),
				CatalogPath: strings.TrimSpace(app.CatalogPath),
			}, app.logger())
			if err != nil {
				return writeErr(cmd, err)
			}

			listenAddr := srv.Addr()
			if listenAddr == "" {
				return writeErr(cmd, errors.New("relay: missing --addr"))
			}

			_ = writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"addr":      listenAddr,
					"dir":       strings.TrimSpace(app.Dir),
					"catalog":   strings.TrimSpace(app.CatalogPath),
					"startedAt": time.Now().UTC().Format(time.RFC3339Nano),
				},
				"_hints": []string{
					"open http://" + listenAddr + "/tv",
				},
			})

			fmt.Fprintf(cmd.ErrOrStderr(), "Broadcast relay on air at http://%s/tv\n", listenAddr)
			app.logger().Info("relay listening", zap.String("addr", listenAddr))
			return http.ListenAndServe(listenAddr, srv.Handler())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8787", "Bind address (host:port or :port)")
	return cmd
}
