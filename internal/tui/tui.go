package tui

import (
	"time"

	"broadcast-mode/internal/catalog"
	"broadcast-mode/internal/effects"
	"broadcast-mode/internal/settings"
	"broadcast-mode/internal/store"
	"broadcast-mode/internal/transmit"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"go.uber.org/zap"
)

// Options wires the TUI to its collaborators. Zero values fall back to
// in-memory/no-op implementations.
type Options struct {
	Catalog *catalog.Catalog
	// CatalogPath, when set, is watched and reloaded on change.
	CatalogPath string

	Store    store.Store
	Prefs    store.Prefs
	Settings *settings.Store
	Effects  *effects.Coordinator

	Client        *transmit.Client
	FormSource    string
	SubmitTimeout time.Duration

	Brand string
	// Location is the initial route ("/projects?p=x"); empty restores the last one.
	Location string

	Log *zap.Logger
}

func Run(opts Options) error {
	applyThemePreference()
	applyColorProfilePreference()

	m := newAppModel(opts)
	m.zones = zone.New()
	defer m.zones.Close()

	if opts.CatalogPath != "" {
		w, err := catalog.Watch(opts.CatalogPath, m.log)
		if err != nil {
			m.log.Warn("catalog watch disabled", zap.String("path", opts.CatalogPath), zap.Error(err))
		} else {
			m.watcher = w
		}
	}
	defer m.shutdown()

	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	if fm, ok := final.(appModel); ok {
		fm.saveState()
	}
	return err
}
