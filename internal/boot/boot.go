// Package boot decides whether the intro sequence runs and drives its timing.
package boot

import (
	"math"
	"time"
)

// Visibility is the gate's resolved state.
type Visibility int

const (
	Unresolved Visibility = iota
	Visible
	Hidden
)

func (v Visibility) String() string {
	switch v {
	case Visible:
		return "visible"
	case Hidden:
		return "hidden"
	default:
		return "unresolved"
	}
}

// Repository is the persisted side of the gate (store.Prefs satisfies it).
type Repository interface {
	BootEnabled() (bool, error)
	BootedThisSession() (bool, error)
	MarkBooted() error
	SetBootEnabled(bool) error
}

// Gate owns the two boot flags for one process.
type Gate struct {
	repo Repository
	vis  Visibility
}

func NewGate(repo Repository) *Gate {
	return &Gate{repo: repo}
}

// Resolve reads both flags once. A storage failure shows the sequence (once).
func (g *Gate) Resolve() Visibility {
	if g.vis != Unresolved {
		return g.vis
	}
	g.vis = resolve(g.repo)
	return g.vis
}

func resolve(repo Repository) Visibility {
	if repo == nil {
		return Visible
	}
	enabled, err := repo.BootEnabled()
	if err != nil {
		return Visible
	}
	booted, err := repo.BootedThisSession()
	if err != nil {
		return Visible
	}
	if enabled && !booted {
		return Visible
	}
	return Hidden
}

func (g *Gate) Visibility() Visibility { return g.vis }

// Finish marks the session as booted. Used for both auto-dismiss and skip.
func (g *Gate) Finish() {
	if g.repo != nil {
		// Write failures are logged by the repository and otherwise ignored.
		_ = g.repo.MarkBooted()
	}
	g.vis = Hidden
}

// Disable turns the sequence off for future runs and finishes this one.
func (g *Gate) Disable() {
	if g.repo != nil {
		_ = g.repo.SetBootEnabled(false)
		_ = g.repo.MarkBooted()
	}
	g.vis = Hidden
}

var Lines = []string{
	"TUNING SIGNAL...",
	"LOCKING FREQUENCY...",
	"SYNCING COLOR BURST...",
	"CALIBRATING SCANLINES...",
	"LOADING MODULES...",
	"BROADCAST INITIALIZED",
}

const (
	StepInterval        = 360 * time.Millisecond
	DismissDelay        = 520 * time.Millisecond
	ReducedDismissDelay = 220 * time.Millisecond
)

// Sequence is the line-by-line status animation. The caller schedules a tick
// after Delay() and calls Tick until it reports done.
type Sequence struct {
	reduced bool
	idx     int
}

// NewSequence starts at the first line, or at the last one under reduced motion.
func NewSequence(reducedMotion bool) *Sequence {
	s := &Sequence{reduced: reducedMotion}
	if reducedMotion {
		s.idx = len(Lines) - 1
	}
	return s
}

func (s *Sequence) Index() int { return s.idx }

func (s *Sequence) Line() string { return Lines[s.idx] }

// Progress is the percentage shown next to the signal bar.
func (s *Sequence) Progress() int {
	return int(math.Round(float64(s.idx+1) / float64(len(Lines)) * 100))
}

func (s *Sequence) AtEnd() bool { return s.idx >= len(Lines)-1 }

// Delay is how long to wait before the next Tick.
func (s *Sequence) Delay() time.Duration {
	switch {
	case s.reduced:
		return ReducedDismissDelay
	case s.AtEnd():
		return DismissDelay
	default:
		return StepInterval
	}
}

// Tick advances one line. It reports true when the sequence should dismiss.
func (s *Sequence) Tick() bool {
	if s.AtEnd() {
		return true
	}
	s.idx++
	return false
}

// SkipKey reports whether key (a bubbletea key string) skips the sequence.
func SkipKey(key string) bool {
	switch key {
	case "enter", "esc", " ", "space":
		return true
	default:
		return false
	}
}
