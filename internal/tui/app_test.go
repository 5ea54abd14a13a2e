package tui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"broadcast-mode/internal/catalog"
	"broadcast-mode/internal/effects"
	"broadcast-mode/internal/modal"
	"broadcast-mode/internal/model"
	"broadcast-mode/internal/settings"
	"broadcast-mode/internal/store"
	"broadcast-mode/internal/transmit"

	tea "github.com/charmbracelet/bubbletea"
)

var testNow = time.Date(2026, 3, 14, 21, 0, 0, 0, time.UTC)

func quietPrefs(t *testing.T) store.Prefs {
	t.Helper()
	p := store.Prefs{Local: store.NewMemory(), Session: store.NewMemory()}
	if err := p.SetBootEnabled(false); err != nil {
		t.Fatalf("disable boot: %v", err)
	}
	return p
}

func newTestModel(t *testing.T, opts Options) appModel {
	t.Helper()
	if opts.Prefs.Local == nil {
		opts.Prefs = quietPrefs(t)
	}
	m := newAppModel(opts)
	m.now = func() time.Time { return testNow }
	t.Cleanup(m.shutdown)
	return update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
}

func update(t *testing.T, m appModel, msg tea.Msg) appModel {
	t.Helper()
	mm, _ := m.Update(msg)
	am, ok := mm.(appModel)
	if !ok {
		t.Fatalf("expected appModel, got %T", mm)
	}
	return am
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(t *testing.T, m appModel, keys ...string) appModel {
	t.Helper()
	for _, k := range keys {
		m = update(t, m, keyMsg(k))
	}
	return m
}

func pressCmd(t *testing.T, m appModel, k string) (appModel, tea.Cmd) {
	t.Helper()
	mm, cmd := m.Update(keyMsg(k))
	am, ok := mm.(appModel)
	if !ok {
		t.Fatalf("expected appModel, got %T", mm)
	}
	return am, cmd
}

func recordBursts(t *testing.T) (*effects.Coordinator, *effects.Recorder) {
	t.Helper()
	coord := effects.NewCoordinator()
	rec := &effects.Recorder{}
	t.Cleanup(coord.Subscribe(rec.Publish))
	return coord, rec
}

func TestBoot_ShowsOnFirstRunAndSkips(t *testing.T) {
	prefs := store.Prefs{Local: store.NewMemory(), Session: store.NewMemory()}
	m := newTestModel(t, Options{Prefs: prefs})
	if !m.bootVisible() {
		t.Fatalf("expected boot screen on first run")
	}
	if !strings.Contains(m.View(), "BROADCAST MODE") {
		t.Fatalf("expected boot view, got:\n%s", m.View())
	}

	// Keys other than skip keys do nothing while booting.
	m = press(t, m, "2")
	if m.screen != screenHome || !m.bootVisible() {
		t.Fatalf("expected boot to swallow navigation keys")
	}

	stale := m.bootTick
	m = press(t, m, "enter")
	if m.bootVisible() {
		t.Fatalf("expected enter to skip boot")
	}
	if booted, _ := prefs.BootedThisSession(); !booted {
		t.Fatalf("expected session to be marked booted")
	}
	// A tick scheduled before the skip must not revive anything.
	m = update(t, m, bootTickMsg{seq: stale})
	if m.bootVisible() {
		t.Fatalf("expected stale boot tick to be ignored")
	}
}

func TestBoot_DisablePersists(t *testing.T) {
	prefs := store.Prefs{Local: store.NewMemory(), Session: store.NewMemory()}
	m := newTestModel(t, Options{Prefs: prefs})
	m = press(t, m, "d")
	if m.bootVisible() {
		t.Fatalf("expected d to dismiss boot")
	}
	if on, _ := prefs.BootEnabled(); on {
		t.Fatalf("expected boot to be disabled")
	}

	// A fresh session with the same local storage skips boot entirely.
	next := newTestModel(t, Options{Prefs: store.Prefs{Local: prefs.Local, Session: store.NewMemory()}})
	if next.bootVisible() {
		t.Fatalf("expected disabled boot to stay hidden")
	}
}

func TestBoot_TicksAdvanceToFinish(t *testing.T) {
	prefs := store.Prefs{Local: store.NewMemory(), Session: store.NewMemory()}
	m := newTestModel(t, Options{Prefs: prefs})
	for i := 0; i < 20 && m.bootVisible(); i++ {
		m = update(t, m, bootTickMsg{seq: m.bootTick})
	}
	if m.bootVisible() {
		t.Fatalf("expected boot sequence to finish")
	}
}

func TestDockKeysSwitchScreens(t *testing.T) {
	m := newTestModel(t, Options{})
	cases := []struct {
		key  string
		want screen
		path string
	}{
		{"2", screenProjects, "/projects"},
		{"3", screenStudio, "/studio"},
		{"4", screenArchive, "/archive"},
		{"5", screenContact, "/contact"},
		{"1", screenHome, "/"},
	}
	for _, tc := range cases {
		m = press(t, m, tc.key)
		if m.screen != tc.want {
			t.Fatalf("key %q: expected screen %v, got %v", tc.key, tc.want, m.screen)
		}
		if !strings.HasPrefix(m.currentLocation(), tc.path) {
			t.Fatalf("key %q: expected location %q, got %q", tc.key, tc.path, m.currentLocation())
		}
	}
}

func TestHomeLauncherOpensFocusedApp(t *testing.T) {
	m := newTestModel(t, Options{})
	m = press(t, m, "right", "enter")
	want := screenForPath(launcherApps()[1].Route)
	if m.screen != want {
		t.Fatalf("expected launcher to open %v, got %v", want, m.screen)
	}
}

func TestKonamiOpensDiagnosticsAndPublishesHigh(t *testing.T) {
	coord, rec := recordBursts(t)
	m := newTestModel(t, Options{Effects: coord})
	m = press(t, m, "up", "up", "down", "down", "left", "right", "left", "right", "b", "a")
	if m.modal != modalDiagnostics {
		t.Fatalf("expected diagnostics panel, got modal %v", m.modal)
	}
	b, ok := rec.Last()
	if !ok || b.Strength != effects.High {
		t.Fatalf("expected a high burst, got %+v (ok=%v)", b, ok)
	}
	if v := m.View(); !strings.Contains(v, "DIAGNOSTICS") || !strings.Contains(v, "target audience") {
		t.Fatalf("expected diagnostics view, got:\n%s", v)
	}

	m = press(t, m, "esc")
	if m.modal != modalNone {
		t.Fatalf("expected esc to close diagnostics")
	}
}

func TestKonamiIgnoredWhileSearching(t *testing.T) {
	m := newTestModel(t, Options{})
	m = press(t, m, "2", "/")
	if !m.searching {
		t.Fatalf("expected search mode")
	}
	m = press(t, m, "up", "up", "down", "down", "left", "right", "left", "right", "b", "a")
	if m.modal != modalNone {
		t.Fatalf("expected konami to be ignored while typing")
	}
}

func TestShiftBPublishesMediumOnlyWithVHS(t *testing.T) {
	coord, rec := recordBursts(t)
	m := newTestModel(t, Options{Effects: coord})
	m = press(t, m, "B")
	if b, ok := rec.Last(); !ok || b.Strength != effects.Medium {
		t.Fatalf("expected medium burst, got %+v (ok=%v)", b, ok)
	}
	n := len(rec.Bursts)

	m = press(t, m, "3", "v")
	if m.settings.Get().VhsEnabled {
		t.Fatalf("expected v to disable VHS")
	}
	_ = press(t, m, "B")
	if len(rec.Bursts) != n {
		t.Fatalf("expected no burst with VHS off, got %d bursts", len(rec.Bursts))
	}
}

func TestStudioTogglesPersistSettings(t *testing.T) {
	prefs := quietPrefs(t)
	m := newTestModel(t, Options{Prefs: prefs})
	m = press(t, m, "3", "m")
	if !m.settings.Get().ReducedMotion || !m.overlay.ReducedMotion {
		t.Fatalf("expected reduced motion on in settings and overlay")
	}

	m = press(t, m, "i")
	if got := m.settings.Get().VhsIntensity; got != model.IntensityHigh {
		t.Fatalf("expected intensity to cycle to high, got %q", got)
	}

	m = press(t, m, "v")
	for _, c := range m.studio.Controls() {
		if strings.HasPrefix(c.ID, ctlIntensity) && !c.Disabled {
			t.Fatalf("expected intensity controls disabled with VHS off: %+v", c)
		}
	}
	before := m.settings.Get().VhsIntensity
	m = press(t, m, "i")
	if m.settings.Get().VhsIntensity != before {
		t.Fatalf("expected intensity to stay put with VHS off")
	}

	saved, state, err := prefs.ReadSettings()
	if err != nil || state != store.RecordOK {
		t.Fatalf("expected persisted settings, got state %v (err=%v)", state, err)
	}
	if saved.VhsEnabled || !saved.ReducedMotion {
		t.Fatalf("unexpected persisted settings: %+v", saved)
	}
}

func TestBrowser_OpenCardAndCloseRestoresFocus(t *testing.T) {
	m := newTestModel(t, Options{})
	m = press(t, m, "2", "right")
	if m.focus != 1 {
		t.Fatalf("expected focus 1, got %d", m.focus)
	}
	want := m.projects.View().Page.Items[1].ID

	var cmd tea.Cmd
	m, cmd = pressCmd(t, m, "enter")
	if m.modal != modalProject || m.win == nil {
		t.Fatalf("expected project window")
	}
	if m.win.Project().ID != want {
		t.Fatalf("expected %q, got %q", want, m.win.Project().ID)
	}
	if cmd == nil {
		t.Fatalf("expected an open tick")
	}
	if !strings.Contains(m.currentLocation(), "p="+want) {
		t.Fatalf("expected open param in location, got %q", m.currentLocation())
	}

	m = update(t, m, windowOpenedMsg{seq: m.winSeq})
	if m.win.Phase() != modal.Open {
		t.Fatalf("expected open phase, got %v", m.win.Phase())
	}

	m.focus = 3
	m, cmd = pressCmd(t, m, "esc")
	if cmd == nil || m.win == nil || m.win.Phase() != modal.Closing {
		t.Fatalf("expected a close animation")
	}

	// A stale close tick is ignored.
	m = update(t, m, windowClosedMsg{seq: m.winSeq - 1})
	if m.win == nil {
		t.Fatalf("expected stale close tick to be ignored")
	}

	m = update(t, m, windowClosedMsg{seq: m.winSeq})
	if m.win != nil || m.modal != modalNone {
		t.Fatalf("expected window to be unmounted")
	}
	if strings.Contains(m.currentLocation(), "p=") {
		t.Fatalf("expected open param cleared, got %q", m.currentLocation())
	}
	if m.focus != 1 {
		t.Fatalf("expected focus restored to 1, got %d", m.focus)
	}
}

func TestBrowser_ReducedMotionClosesImmediately(t *testing.T) {
	prefs := quietPrefs(t)
	m := newTestModel(t, Options{Prefs: prefs, Settings: settings.New(prefs, true)})
	m, cmd := pressCmd(t, m, "2")
	m, cmd = pressCmd(t, m, "enter")
	if cmd != nil {
		t.Fatalf("expected no open tick under reduced motion")
	}
	if m.win == nil || m.win.Phase() != modal.Open {
		t.Fatalf("expected window open at once")
	}
	m = press(t, m, "esc")
	if m.win != nil {
		t.Fatalf("expected window closed at once")
	}
}

func TestBrowser_FilterKeys(t *testing.T) {
	m := newTestModel(t, Options{})
	m = press(t, m, "2", "s")
	if got := m.projects.Filter().Status; got != model.StatusLive {
		t.Fatalf("expected status live, got %q", got)
	}
	for _, p := range m.projects.View().Page.Items {
		if p.Status != model.StatusLive {
			t.Fatalf("expected only live projects, got %+v", p)
		}
	}

	m = press(t, m, "/", "z", "z", "z", "z", "enter")
	if m.searching {
		t.Fatalf("expected enter to leave search mode")
	}
	if len(m.projects.View().Page.Items) != 0 {
		t.Fatalf("expected no matches")
	}
	if !strings.Contains(m.View(), "NO SIGNAL") {
		t.Fatalf("expected empty state in view")
	}

	m = press(t, m, "c")
	if f := m.projects.Filter(); f.Query != "" || f.Status != "" || f.Tag != "" {
		t.Fatalf("expected cleared filter, got %+v", f)
	}
}

func TestArchiveKeepsArchivedStatus(t *testing.T) {
	m := newTestModel(t, Options{})
	m = press(t, m, "4", "s", "c")
	if got := m.archive.Filter().Status; got != model.StatusArchived {
		t.Fatalf("expected archive to stay on archived, got %q", got)
	}
	for _, p := range m.archive.View().Page.Items {
		if p.Status != model.StatusArchived {
			t.Fatalf("expected only archived projects, got %+v", p)
		}
	}
}

func TestWindow_TriplePressMaximizeUnlocks(t *testing.T) {
	coord, rec := recordBursts(t)
	m := newTestModel(t, Options{Effects: coord, Location: "/projects?p=broadcast-mode"})
	if m.win == nil || m.win.Project().ID != "broadcast-mode" {
		t.Fatalf("expected deep-linked window")
	}
	if !m.win.Focus().Focus(modal.CtlDotMax) {
		t.Fatalf("expected maximize control to be focusable")
	}

	m = press(t, m, "enter", "enter")
	if m.win.Unlocked() {
		t.Fatalf("expected no unlock after two presses")
	}
	if b, _ := rec.Last(); b.Strength != effects.Low {
		t.Fatalf("expected low burst per press, got %+v", b)
	}
	m = press(t, m, "enter")
	if !m.win.Unlocked() {
		t.Fatalf("expected third press to unlock")
	}
	if b, _ := rec.Last(); b.Strength != effects.High {
		t.Fatalf("expected high burst on unlock, got %+v", b)
	}
	if m.flash != "Behind the build unlocked" {
		t.Fatalf("unexpected flash %q", m.flash)
	}

	// Only the latest press settles the toggle.
	m = update(t, m, maximizeSettleMsg{win: m.winSeq, tap: 1})
	if m.win.Maximized() {
		t.Fatalf("expected stale settle to be ignored")
	}
	m = update(t, m, maximizeSettleMsg{win: m.winSeq, tap: 3})
	if !m.win.Maximized() {
		t.Fatalf("expected latest settle to maximize")
	}
}

func TestWindow_CopyLink(t *testing.T) {
	var copied string
	orig := copyToClipboard
	copyToClipboard = func(s string) error {
		copied = s
		return nil
	}
	t.Cleanup(func() { copyToClipboard = orig })

	m := newTestModel(t, Options{Location: "/projects?p=signal-deck"})
	if m.win.PrimaryURL() != "https://example.com/signal-deck" {
		t.Fatalf("unexpected primary url %q", m.win.PrimaryURL())
	}
	if !m.win.Focus().Focus(modal.CtlCopyLink) {
		t.Fatalf("expected copy link control to be focusable")
	}
	m, cmd := pressCmd(t, m, "enter")
	if cmd == nil {
		t.Fatalf("expected copy command")
	}
	m = update(t, m, cmd())
	if copied != m.win.PrimaryURL() {
		t.Fatalf("expected %q copied, got %q", m.win.PrimaryURL(), copied)
	}
	if m.flash != "Link copied" {
		t.Fatalf("unexpected flash %q", m.flash)
	}
}

func TestDeepLink_UnknownProjectIgnored(t *testing.T) {
	m := newTestModel(t, Options{Location: "/projects?p=nope"})
	if m.win != nil || m.modal != modalNone {
		t.Fatalf("expected unknown project to be ignored")
	}
	if m.screen != screenProjects {
		t.Fatalf("expected projects screen, got %v", m.screen)
	}
}

func TestCatalogReloadClosesRemovedProject(t *testing.T) {
	m := newTestModel(t, Options{Location: "/projects?p=broadcast-mode"})
	cat, err := catalog.New([]model.Project{{
		ID:     "only-one",
		Title:  "Only One",
		Status: model.StatusLive,
		Images: []model.Image{{Src: "/images/one.png"}},
	}})
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	m = update(t, m, catalogReloadedMsg{cat: cat})
	if m.win != nil {
		t.Fatalf("expected window for removed project to close")
	}
	if got := len(m.projects.View().Page.Items); got != 1 {
		t.Fatalf("expected reloaded catalog, got %d items", got)
	}
	if m.flash != "Catalog reloaded" {
		t.Fatalf("unexpected flash %q", m.flash)
	}
}

func TestNarrowViewportUsesSmallerPages(t *testing.T) {
	m := newTestModel(t, Options{})
	m = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 30})
	if got := m.projects.Viewport(); got != catalog.Narrow {
		t.Fatalf("expected narrow viewport, got %v", got)
	}
	if m.projects.PageSize() >= catalog.Wide.PageSize() {
		t.Fatalf("expected narrow page size below wide")
	}
}

func TestTUIStateRestoresRoute(t *testing.T) {
	dir := t.TempDir()
	s := store.Store{Dir: dir}
	m := newTestModel(t, Options{Store: s})
	m = press(t, m, "2", "s")
	_ = press(t, m, "enter")

	next := newTestModel(t, Options{Store: s})
	if next.screen != screenProjects {
		t.Fatalf("expected restored projects screen, got %v", next.screen)
	}
	if next.projects.Filter().Status != model.StatusLive {
		t.Fatalf("expected restored status filter, got %+v", next.projects.Filter())
	}
	if next.state == nil || len(next.state.RecentProjectIDs) == 0 {
		t.Fatalf("expected recent projects to persist")
	}
}

func TestContact_SubmitFlow(t *testing.T) {
	var hits atomic.Int32
	var got transmit.Payload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	t.Cleanup(srv.Close)

	m := newTestModel(t, Options{Client: &transmit.Client{Endpoint: srv.URL, HTTP: srv.Client()}})
	m = press(t, m, "5")
	if m.contact.ring.Current() != ctlName {
		t.Fatalf("expected name focused, got %q", m.contact.ring.Current())
	}

	m = press(t, m, "Ada", "tab", "ada@example.com", "tab", "short")
	for _, c := range m.contact.ring.Focusable() {
		if c.ID == ctlSubmit {
			t.Fatalf("expected submit disabled with a short message")
		}
	}

	m = press(t, m, " is not enough")
	m = press(t, m, "tab", "right", "tab", "tab")
	if m.contact.ring.Current() != ctlSubmit {
		t.Fatalf("expected submit focused, got %q", m.contact.ring.Current())
	}

	m, cmd := pressCmd(t, m, "enter")
	if !m.contact.machine.Sending() || cmd == nil {
		t.Fatalf("expected a submission in flight")
	}

	var done tea.Msg
	for _, c := range cmd().(tea.BatchMsg) {
		if c == nil {
			continue
		}
		if msg, ok := c().(transmitDoneMsg); ok {
			done = msg
		}
	}
	if done == nil {
		t.Fatalf("expected transmitDoneMsg from the batch")
	}
	m = update(t, m, done)

	if hits.Load() != 1 {
		t.Fatalf("expected exactly one request, got %d", hits.Load())
	}
	if got.Name != "Ada" || got.ProjectType != transmit.ProjectTypes[0] || got.Source == "" {
		t.Fatalf("unexpected payload %+v", got)
	}
	if m.contact.machine.Status != transmit.StatusSuccess {
		t.Fatalf("expected success, got %q", m.contact.machine.Status)
	}
	if m.contact.name.Value() != "" || m.contact.message.Value() != "" {
		t.Fatalf("expected form cleared after success")
	}
}

func TestContact_HoneypotSkipsRequest(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	t.Cleanup(srv.Close)

	m := newTestModel(t, Options{Client: &transmit.Client{Endpoint: srv.URL, HTTP: srv.Client()}})
	m = press(t, m, "5")
	m.contact.company = "Acme Bots"
	cmd := m.activateContactControl(ctlSubmit)
	if cmd != nil {
		t.Fatalf("expected no request command for a bot")
	}
	if m.contact.machine.Status != transmit.StatusSuccess {
		t.Fatalf("expected silent success, got %q", m.contact.machine.Status)
	}
	if hits.Load() != 0 {
		t.Fatalf("expected no request, got %d", hits.Load())
	}
}

func TestView_StatusLineShowsLocation(t *testing.T) {
	m := newTestModel(t, Options{})
	m = press(t, m, "2", "s")
	if v := m.View(); !strings.Contains(v, "/projects?status=live") {
		t.Fatalf("expected location in status line, got:\n%s", v)
	}
}
