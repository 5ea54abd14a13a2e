package tui

import (
	"math/rand/v2"
	"strings"
	"time"

	"broadcast-mode/internal/boot"
	"broadcast-mode/internal/catalog"
	"broadcast-mode/internal/config"
	"broadcast-mode/internal/effects"
	"broadcast-mode/internal/konami"
	"broadcast-mode/internal/modal"
	"broadcast-mode/internal/model"
	"broadcast-mode/internal/overlay"
	"broadcast-mode/internal/settings"
	"broadcast-mode/internal/store"
	"broadcast-mode/internal/ticker"
	"broadcast-mode/internal/transmit"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"go.uber.org/zap"
)

// LongPress is how long a card must be held for a signal burst.
const LongPress = 600 * time.Millisecond

const flashDuration = 2400 * time.Millisecond

type appModel struct {
	log   *zap.Logger
	brand string

	store         store.Store
	prefs         store.Prefs
	settings      *settings.Store
	effects       *effects.Coordinator
	client        *transmit.Client
	formSource    string
	submitTimeout time.Duration

	width  int
	height int
	screen screen
	keys   keyMap
	help   help.Model
	zones  *zone.Manager
	now    func() time.Time

	boot     *boot.Gate
	bootSeq  *boot.Sequence
	bootTick int
	bootBar  progress.Model
	bootOn   bool

	konami     konami.Gate
	ticker     *ticker.Ticker
	overlay    *overlay.Overlay
	noiseSeq   int
	flickerSeq int

	bursts      <-chan effects.Burst
	unsubBursts func()
	watcher     *catalog.Watcher

	cat           *catalog.Catalog
	projects      *catalog.Browser
	archive       *catalog.Browser
	focus         int
	launcherFocus int
	searching     bool
	search        textinput.Model

	modal      modalKind
	win        *modal.Session
	winSeq     int
	winBody    viewport.Model
	winBrowser *catalog.Browser

	studio       *modal.FocusRing
	studioScroll int

	contact contactModel

	state *store.TUIState

	flash    string
	flashErr bool
	flashSeq int

	pressID string
	pressAt time.Time
}

func newAppModel(opts Options) appModel {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	cat := opts.Catalog
	if cat == nil {
		cat = catalog.Default()
	}
	prefs := opts.Prefs
	if prefs.Local == nil {
		prefs.Local = store.NewMemory()
	}
	if prefs.Session == nil {
		prefs.Session = store.NewMemory()
	}
	if prefs.Log == nil {
		prefs.Log = log
	}
	st := opts.Settings
	if st == nil {
		st = settings.New(prefs, false)
	}
	if !st.Hydrated() {
		st.Hydrate()
	}
	client := opts.Client
	if client == nil {
		client = &transmit.Client{Endpoint: config.DefaultFormEndpoint, Log: log}
	}
	source := opts.FormSource
	if source == "" {
		source = config.DefaultFormSource
	}
	timeout := opts.SubmitTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	brand := strings.TrimSpace(opts.Brand)
	if brand == "" {
		brand = "Be Awesome Productions"
	}
	coord := opts.Effects
	if coord == nil {
		coord = effects.NewCoordinator()
	}

	m := appModel{
		log:           log,
		brand:         brand,
		store:         opts.Store,
		prefs:         prefs,
		settings:      st,
		effects:       coord,
		client:        client,
		formSource:    source,
		submitTimeout: timeout,
		keys:          defaultKeyMap(),
		help:          help.New(),
		now:           time.Now,
		cat:           cat,
		overlay:       &overlay.Overlay{},
		state:         &store.TUIState{},
	}
	m.overlay.Sync(st.Get())
	m.bursts, m.unsubBursts = coord.Channel(8)

	rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x62726f6164))
	m.ticker = ticker.New(ticker.SessionMessages(prefs, rng.IntN(100) < 60, rng))

	m.bootBar = progress.New(progress.WithGradient("#3ef2ff", "#ff4fd8"), progress.WithoutPercentage())
	on, err := prefs.BootEnabled()
	m.bootOn = on || err != nil
	m.boot = boot.NewGate(prefs)
	if m.boot.Resolve() == boot.Visible {
		m.bootSeq = boot.NewSequence(st.Get().ReducedMotion)
		m.bootTick = 1
	}

	m.search = textinput.New()
	m.search.Placeholder = "search title, client, summary…"
	m.search.Prompt = "/ "
	m.search.CharLimit = 80

	m.contact = newContactModel()
	m.studio = modal.NewFocusRing(m.studioControls(), ctlVHS)

	if m.store.Dir != "" {
		if saved, err := m.store.LoadTUIState(); err != nil {
			log.Debug("tui state unavailable", zap.Error(err))
		} else if saved != nil {
			m.state = saved
		}
	}

	route := strings.TrimSpace(opts.Location)
	if route == "" {
		route = m.state.Route
	}
	loc, err := catalog.ParseLocation(route)
	if err != nil {
		log.Debug("ignoring unparsable route", zap.String("route", route), zap.Error(err))
		loc = catalog.Location{Path: "/"}
	}
	m.screen = screenForPath(loc.Path)

	projLoc := catalog.Location{Path: screenProjects.route()}
	archLoc := catalog.Location{Path: screenArchive.route()}
	switch m.screen {
	case screenProjects:
		projLoc = loc
	case screenArchive:
		archLoc = loc
	}
	archLoc = archLoc.With(catalog.ParamStatus, string(model.StatusArchived))
	m.projects = catalog.NewBrowser(cat, projLoc, catalog.Wide)
	m.archive = catalog.NewBrowser(cat, archLoc, catalog.Wide)
	for _, b := range []*catalog.Browser{m.projects, m.archive} {
		b.OnReplace = func(l catalog.Location) {
			log.Debug("location replaced", zap.String("location", l.String()))
		}
	}

	// A deep-linked project opens immediately (the boot screen covers it).
	if b := m.activeBrowser(); b != nil && b.OpenID() != "" {
		_ = m.openProject(b, b.OpenID(), "")
	}
	return m
}

func (m appModel) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tickerTick(),
		clockTick(),
		m.scheduleNoise(),
		waitForBurst(m.bursts),
	}
	if m.bootVisible() {
		cmds = append(cmds, m.scheduleBootTick())
	}
	if m.win != nil && m.win.Phase() == modal.Opening {
		cmds = append(cmds, windowOpenTick(m.winSeq))
	}
	if m.watcher != nil {
		cmds = append(cmds, waitForCatalog(m.watcher.Updates()))
	}
	return tea.Batch(cmds...)
}

type clockTickMsg struct{}

func clockTick() tea.Cmd {
	return tea.Every(time.Minute, func(time.Time) tea.Msg { return clockTickMsg{} })
}

func tickerTick() tea.Cmd {
	return tea.Tick(ticker.CycleInterval, func(time.Time) tea.Msg { return tickerTickMsg{} })
}

func windowOpenTick(seq int) tea.Cmd {
	return tea.Tick(modal.OpenDelay, func(time.Time) tea.Msg { return windowOpenedMsg{seq: seq} })
}

func waitForBurst(ch <-chan effects.Burst) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		b, ok := <-ch
		if !ok {
			return nil
		}
		return burstMsg{burst: b}
	}
}

func waitForCatalog(ch <-chan *catalog.Catalog) tea.Cmd {
	return func() tea.Msg {
		cat, ok := <-ch
		if !ok {
			return nil
		}
		return catalogReloadedMsg{cat: cat}
	}
}

func (m appModel) bootVisible() bool {
	return m.boot != nil && m.boot.Visibility() == boot.Visible && m.bootSeq != nil
}

func (m appModel) scheduleBootTick() tea.Cmd {
	if !m.bootVisible() {
		return nil
	}
	seq := m.bootTick
	return tea.Tick(m.bootSeq.Delay(), func(time.Time) tea.Msg { return bootTickMsg{seq: seq} })
}

// scheduleNoise keeps the overlay noise moving. Nothing is scheduled while the
// overlay is off or motion is reduced.
func (m appModel) scheduleNoise() tea.Cmd {
	if !m.overlay.Enabled || m.overlay.ReducedMotion {
		return nil
	}
	seq := m.noiseSeq
	d := overlay.ConfigFor(m.overlay.Intensity).NoiseTick
	return tea.Tick(d, func(time.Time) tea.Msg { return noiseTickMsg{seq: seq} })
}

func (m appModel) narrow() bool {
	return m.width > 0 && catalog.ViewportFor(m.width) == catalog.Narrow
}

func (m appModel) typing() bool {
	if m.modal != modalNone {
		return false
	}
	switch m.screen {
	case screenProjects, screenArchive:
		return m.searching
	case screenContact:
		return m.contact.typing()
	}
	return false
}

// activeBrowser is the browser behind the current screen, if any.
func (m appModel) activeBrowser() *catalog.Browser {
	switch m.screen {
	case screenProjects:
		return m.projects
	case screenArchive:
		return m.archive
	}
	return nil
}

// currentLocation is what the status line shows as the address.
func (m appModel) currentLocation() string {
	if b := m.activeBrowser(); b != nil {
		return b.Location().String()
	}
	return m.screen.route()
}

func (m *appModel) publish(s effects.Strength, source string) {
	m.log.Debug("burst", zap.String("strength", string(s)), zap.String("source", source))
	m.effects.Publish(effects.Burst{Strength: s, Source: source})
}

func (m *appModel) showFlash(s string, isErr bool) tea.Cmd {
	m.flash = s
	m.flashErr = isErr
	m.flashSeq++
	seq := m.flashSeq
	return tea.Tick(flashDuration, func(time.Time) tea.Msg { return flashDoneMsg{seq: seq} })
}

// updateSettings applies p and resyncs everything that mirrors settings.
func (m *appModel) updateSettings(p settings.Patch) tea.Cmd {
	st := m.settings.Update(p)
	m.overlay.Sync(st)
	if m.win != nil {
		m.win.SetReducedMotion(st.ReducedMotion)
	}
	m.studio.SetControls(m.studioControls())
	m.noiseSeq++
	return m.scheduleNoise()
}

func (m *appModel) setScreen(s screen) {
	if s == m.screen {
		return
	}
	m.screen = s
	m.searching = false
	m.search.Blur()
	m.focus = 0
	m.contact.blurAll()
	if s == screenContact {
		m.contact.focusCurrent()
	}
	m.saveState()
}

func (m appModel) saveState() {
	if m.store.Dir == "" || m.state == nil {
		return
	}
	m.state.Route = m.currentLocation()
	if err := m.store.SaveTUIState(m.state); err != nil {
		m.log.Warn("save tui state", zap.Error(err))
	}
}

func (m appModel) shutdown() {
	if m.unsubBursts != nil {
		m.unsubBursts()
	}
	if m.watcher != nil {
		_ = m.watcher.Close()
	}
}

func (m appModel) mark(id, s string) string {
	if m.zones == nil {
		return s
	}
	return m.zones.Mark(id, s)
}

func (m appModel) inZone(id string, msg tea.MouseMsg) bool {
	if m.zones == nil {
		return false
	}
	z := m.zones.Get(id)
	if z == nil {
		return false
	}
	return z.InBounds(msg)
}
