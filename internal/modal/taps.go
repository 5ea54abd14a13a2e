package modal

import (
	"time"

	"broadcast-mode/internal/effects"
)

const (
	// TapWindow is how long a run of maximize presses counts as one burst.
	TapWindow = 1200 * time.Millisecond
	// TapDebounce delays the maximize toggle so a double/triple press toggles once.
	TapDebounce = 260 * time.Millisecond
	// UnlockTaps presses within TapWindow reveal the behind-the-build block.
	UnlockTaps = 3
)

// TapResult describes one maximize press.
type TapResult struct {
	// Seq tags the debounced toggle; only the latest Seq may settle.
	Seq      int
	Count    int
	Unlock   bool
	Strength effects.Strength
}

// TapTracker counts rapid presses of the maximize control.
type TapTracker struct {
	count    int
	first    time.Time
	seq      int
	unlocked bool
}

// Press records a press at now. The third press inside the window unlocks once
// per tracker (one tracker lives for one modal open).
func (t *TapTracker) Press(now time.Time) TapResult {
	if t.count == 0 || now.Sub(t.first) > TapWindow {
		t.count = 0
		t.first = now
	}
	t.count++
	t.seq++

	res := TapResult{Seq: t.seq, Count: t.count, Strength: effects.Low}
	if t.count >= UnlockTaps && !t.unlocked {
		t.unlocked = true
		res.Unlock = true
		res.Strength = effects.High
	}
	return res
}

// Settle reports whether seq is still the latest press, i.e. the debounce
// elapsed without another press.
func (t *TapTracker) Settle(seq int) bool {
	return seq == t.seq
}

func (t *TapTracker) Unlocked() bool { return t.unlocked }
