package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"broadcast-mode/internal/catalog"
	"broadcast-mode/internal/config"
	"broadcast-mode/internal/format"
	"broadcast-mode/internal/logging"
	"broadcast-mode/internal/settings"
	"broadcast-mode/internal/store"
	"broadcast-mode/internal/transmit"
	"broadcast-mode/internal/tui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type App struct {
	Dir         string
	Format      string
	PrettyJSON  bool
	CatalogPath string
	Debug       bool

	cfg config.Config
	log *zap.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "broadcast",
		Short:        "Broadcast Mode studio portfolio (TUI + CLI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  broadcast

  # Deep link straight into a project window
  broadcast /projects?p=broadcast-mode

  # Scriptable commands
  broadcast projects list --status live
  broadcast settings set --vhs off
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app, "")
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return writeErr(cmd, err)
		}
		app.cfg = cfg

		level, path := cfg.LogLevel, cfg.LogFile
		if app.Debug && level == "" {
			level = "debug"
		}
		if level != "" && path == "" {
			s, err := store.Open(app.Dir)
			if err != nil {
				return writeErr(cmd, err)
			}
			path = s.LogPath()
		}
		log, err := logging.New(level, path)
		if err != nil {
			return writeErr(cmd, err)
		}
		app.log = log.With(zap.String("cmd", cmd.CommandPath()))
		return nil
	}

	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if app.log != nil {
			_ = app.log.Sync()
		}
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("BROADCAST_DIR", ""), "State directory (default ~/.broadcast)")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("BROADCAST_FORMAT", "json"), "Output format (json|edn|yaml)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON/EDN output")
	cmd.PersistentFlags().StringVar(&app.CatalogPath, "catalog", envOr("BROADCAST_CATALOG", ""), "Project catalog YAML (default: built-in catalog)")
	cmd.PersistentFlags().BoolVar(&app.Debug, "debug", false, "Write a debug log to the state directory")

	cmd.AddCommand(newProjectsCmd(app))
	cmd.AddCommand(newOpenCmd(app))
	cmd.AddCommand(newSettingsCmd(app))
	cmd.AddCommand(newBootCmd(app))
	cmd.AddCommand(newTransmitCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newPublishCmd(app))
	cmd.AddCommand(newRelayCmd(app))

	return cmd
}

func (app *App) logger() *zap.Logger {
	if app.log == nil {
		return zap.NewNop()
	}
	return app.log
}

func loadCatalog(app *App) (*catalog.Catalog, error) {
	return catalog.Load(app.CatalogPath)
}

// openPrefs opens local storage in the state dir. Session storage lives for
// this process only. The returned func closes the database.
func openPrefs(ctx context.Context, app *App) (store.Store, store.Prefs, func(), error) {
	s, err := store.Open(app.Dir)
	if err != nil {
		return store.Store{}, store.Prefs{}, nil, err
	}
	local, err := s.OpenLocal(ctx)
	if err != nil {
		return s, store.Prefs{}, nil, fmt.Errorf("open local storage: %w", err)
	}
	prefs := store.Prefs{Local: local, Session: store.NewMemory(), Log: app.logger()}
	return s, prefs, func() { _ = local.Close() }, nil
}

func runTUI(app *App, location string) error {
	log := app.logger()
	cat, err := loadCatalog(app)
	if err != nil {
		return err
	}

	s, prefs, closeFn, err := openPrefs(context.Background(), app)
	if err != nil {
		// Storage is optional; the session still runs on memory.
		log.Warn("local storage unavailable", zap.Error(err))
		prefs = store.Prefs{Local: store.NewMemory(), Session: store.NewMemory(), Log: log}
		closeFn = func() {}
	}
	defer closeFn()

	st := settings.New(prefs, app.cfg.ReducedMotion())
	st.Hydrate()

	return tui.Run(tui.Options{
		Catalog:       cat,
		CatalogPath:   app.CatalogPath,
		Store:         s,
		Prefs:         prefs,
		Settings:      st,
		Client:        newClient(app),
		FormSource:    app.cfg.FormSource,
		SubmitTimeout: app.cfg.SubmitTimeout,
		Brand:         app.cfg.Brand,
		Location:      location,
		Log:           log,
	})
}

func newClient(app *App) *transmit.Client {
	return &transmit.Client{
		Endpoint: app.cfg.FormEndpoint,
		Timeout:  app.cfg.SubmitTimeout,
		Log:      app.logger(),
	}
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
