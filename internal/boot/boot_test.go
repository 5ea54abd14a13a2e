package boot

import (
	"errors"
	"testing"

	"broadcast-mode/internal/store"

	"github.com/stretchr/testify/require"
)

type failingKV struct{}

func (failingKV) Get(string) (string, bool, error) { return "", false, errors.New("denied") }
func (failingKV) Set(string, string) error         { return errors.New("denied") }
func (failingKV) Remove(string) error              { return errors.New("denied") }

func newPrefs() store.Prefs {
	return store.Prefs{Local: store.NewMemory(), Session: store.NewMemory()}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		setup  func(p store.Prefs)
		expect Visibility
	}{
		{name: "fresh", setup: func(store.Prefs) {}, expect: Visible},
		{name: "booted this session", setup: func(p store.Prefs) { _ = p.MarkBooted() }, expect: Hidden},
		{name: "disabled", setup: func(p store.Prefs) { _ = p.SetBootEnabled(false) }, expect: Hidden},
		{name: "re-enabled", setup: func(p store.Prefs) {
			_ = p.SetBootEnabled(false)
			_ = p.SetBootEnabled(true)
		}, expect: Visible},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := newPrefs()
			tc.setup(p)
			require.Equal(t, tc.expect, NewGate(p).Resolve())
		})
	}
}

func TestResolve_FailsOpenOnStorageError(t *testing.T) {
	t.Parallel()

	p := store.Prefs{Local: failingKV{}, Session: failingKV{}}
	g := NewGate(p)
	require.Equal(t, Visible, g.Resolve())

	// Finishing still hides it even though the write fails.
	g.Finish()
	require.Equal(t, Hidden, g.Visibility())
}

func TestFinishMarksSession(t *testing.T) {
	t.Parallel()

	p := newPrefs()
	g := NewGate(p)
	require.Equal(t, Visible, g.Resolve())
	g.Finish()

	booted, err := p.BootedThisSession()
	require.NoError(t, err)
	require.True(t, booted)
	enabled, _ := p.BootEnabled()
	require.True(t, enabled)
	require.Equal(t, Hidden, NewGate(p).Resolve())
}

func TestDisablePersistsAcrossSessions(t *testing.T) {
	t.Parallel()

	p := newPrefs()
	NewGate(p).Disable()

	// New session: same local storage, fresh session storage.
	next := store.Prefs{Local: p.Local, Session: store.NewMemory()}
	require.Equal(t, Hidden, NewGate(next).Resolve())
	v, ok, _ := p.Local.Get(store.KeyBootEnabled)
	require.True(t, ok)
	require.Equal(t, "0", v)
}

func TestSequence_RunsAllLinesThenDismisses(t *testing.T) {
	t.Parallel()

	s := NewSequence(false)
	require.Equal(t, Lines[0], s.Line())
	require.Equal(t, 17, s.Progress())
	require.Equal(t, StepInterval, s.Delay())

	steps := 0
	for !s.Tick() {
		steps++
		require.LessOrEqual(t, steps, len(Lines))
	}
	require.Equal(t, len(Lines)-1, steps)
	require.Equal(t, "BROADCAST INITIALIZED", s.Line())
	require.Equal(t, 100, s.Progress())
	require.Equal(t, DismissDelay, s.Delay())
}

func TestSequence_ReducedMotionJumpsToEnd(t *testing.T) {
	t.Parallel()

	s := NewSequence(true)
	require.Equal(t, 100, s.Progress())
	require.Equal(t, ReducedDismissDelay, s.Delay())
	require.True(t, s.Tick())
}

func TestSkipKey(t *testing.T) {
	t.Parallel()

	for _, k := range []string{"enter", "esc", " "} {
		require.True(t, SkipKey(k), k)
	}
	require.False(t, SkipKey("d"))
}
