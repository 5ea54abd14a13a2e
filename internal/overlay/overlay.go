// Package overlay renders the VHS effect layer (scanlines, noise, flicker) on top
// of a finished frame. It is presentational: all inputs come from settings and
// bursts.
package overlay

import (
	"math/rand/v2"
	"strings"
	"time"

	"broadcast-mode/internal/effects"
	"broadcast-mode/internal/model"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// Config is the per-intensity tuning.
type Config struct {
	// NoisePerMille is how many cells per 1000 on an empty row get a noise glyph.
	NoisePerMille int
	// ScanEvery draws a scanline on every Nth empty row.
	ScanEvery int
	// Jitter is the period of the horizontal tracking jitter.
	Jitter time.Duration
	// NoiseTick is how often the noise pattern is reseeded.
	NoiseTick time.Duration
}

func ConfigFor(i model.VhsIntensity) Config {
	switch i {
	case model.IntensityLow:
		return Config{NoisePerMille: 20, ScanEvery: 4, Jitter: 1200 * time.Millisecond, NoiseTick: 260 * time.Millisecond}
	case model.IntensityHigh:
		return Config{NoisePerMille: 70, ScanEvery: 2, Jitter: 700 * time.Millisecond, NoiseTick: 140 * time.Millisecond}
	default:
		return Config{NoisePerMille: 40, ScanEvery: 3, Jitter: 900 * time.Millisecond, NoiseTick: 180 * time.Millisecond}
	}
}

// FlickerDuration is how long one burst keeps the screen flickering.
func FlickerDuration(s effects.Strength) time.Duration {
	switch s {
	case effects.High:
		return 380 * time.Millisecond
	case effects.Low:
		return 180 * time.Millisecond
	default:
		return 260 * time.Millisecond
	}
}

var noiseGlyphs = []rune{'·', '░', '˙', '▪'}

type Overlay struct {
	Enabled       bool
	Intensity     model.VhsIntensity
	ReducedMotion bool

	frame        uint64
	flickerUntil time.Time
}

// Sync copies the relevant settings fields.
func (o *Overlay) Sync(st model.Settings) {
	o.Enabled = st.VhsEnabled
	o.Intensity = st.VhsIntensity
	o.ReducedMotion = st.ReducedMotion
	if !o.Enabled {
		o.flickerUntil = time.Time{}
	}
}

// Trigger starts (or extends) a flicker. Bursts are ignored while disabled.
func (o *Overlay) Trigger(b effects.Burst, now time.Time) time.Duration {
	if !o.Enabled {
		return 0
	}
	d := FlickerDuration(b.Strength)
	if until := now.Add(d); until.After(o.flickerUntil) {
		o.flickerUntil = until
	}
	return d
}

func (o Overlay) Flickering(now time.Time) bool {
	return o.Enabled && now.Before(o.flickerUntil)
}

// Advance moves the noise pattern forward one frame. Reduced motion freezes it.
func (o *Overlay) Advance() {
	if o.ReducedMotion {
		return
	}
	o.frame++
}

func (o Overlay) Frame() uint64 { return o.frame }

// Apply decorates view (already laid out to width columns).
func (o Overlay) Apply(view string, width int, now time.Time) string {
	if !o.Enabled || width <= 0 {
		return view
	}
	cfg := ConfigFor(o.Intensity)
	rng := rand.New(rand.NewPCG(o.frame, uint64(width)))
	flicker := o.Flickering(now)

	scan := lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "252", Dark: "236"})
	noise := lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "250", Dark: "239"})

	lines := strings.Split(view, "\n")
	empty := 0
	for i, ln := range lines {
		if strings.TrimSpace(xansi.Strip(ln)) == "" {
			empty++
			if cfg.ScanEvery > 0 && empty%cfg.ScanEvery == 0 {
				lines[i] = scan.Render(strings.Repeat("┈", width))
			} else {
				lines[i] = noise.Render(noiseRow(rng, width, cfg.NoisePerMille*boost(flicker)))
			}
			continue
		}
		if flicker && i%2 == 1 && !o.ReducedMotion {
			// Tracking jitter: nudge odd rows one cell right, keeping the width.
			lines[i] = " " + xansi.Truncate(ln, width-1, "")
		}
	}
	return strings.Join(lines, "\n")
}

func boost(flicker bool) int {
	if flicker {
		return 3
	}
	return 1
}

func noiseRow(rng *rand.Rand, width, perMille int) string {
	var b strings.Builder
	b.Grow(width)
	for i := 0; i < width; i++ {
		if rng.IntN(1000) < perMille {
			b.WriteRune(noiseGlyphs[rng.IntN(len(noiseGlyphs))])
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}
