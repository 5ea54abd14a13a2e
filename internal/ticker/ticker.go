// Package ticker is the broadcast ticker on the home screen: a small per-session
// selection of status lines, hints and easter-egg teasers that cycles slowly.
package ticker

import (
	"math/rand/v2"
	"time"

	"broadcast-mode/internal/model"
)

// CycleInterval is how long each message stays up.
const CycleInterval = 9 * time.Second

// Fallback is shown when there are no messages at all.
var Fallback = model.TickerMessage{ID: "fallback", Text: "SYSTEM: READY • MODE: BROADCAST", Tone: model.ToneInfo}

var Defaults = []model.TickerMessage{
	{ID: "sys-ready", Text: "SYSTEM: READY • SIGNAL: STABLE • MODE: BROADCAST", Tone: model.ToneInfo},
	{ID: "nav-projects", Text: "TIP: OPEN PROJECTS TO BROWSE CURRENT + PAST WORK", Tone: model.ToneHint},
	{ID: "nav-contact", Text: "TIP: USE CONTACT TO START A BUILD OR REQUEST A QUOTE", Tone: model.ToneHint},
	{ID: "dock", Text: "SHORTCUT: DOCK KEYS 1-5 = FAST NAVIGATION BETWEEN MODULES", Tone: model.ToneHint},
	{ID: "egg-press", Text: "EASTER EGG: LONG PRESS A CASSETTE/CD FOR A SIGNAL BURST", Tone: model.ToneEgg},
	{ID: "egg-konami", Text: "ANOMALY DETECTED… TRY ↑ ↑ ↓ ↓ ← → ← → B A", Tone: model.ToneEgg},
	{ID: "egg-max", Text: "HIDDEN PANEL: TRIPLE-PRESS MAXIMIZE INSIDE A PROJECT WINDOW", Tone: model.ToneEgg},
}

// Pick curates one info line, two hints and (optionally) one egg from all.
func Pick(all []model.TickerMessage, includeEggs bool, rng *rand.Rand) []model.TickerMessage {
	pool := make([]model.TickerMessage, 0, len(all))
	for _, m := range all {
		if m.Tone == model.ToneEgg && !includeEggs {
			continue
		}
		pool = append(pool, m)
	}
	if len(pool) == 0 {
		return nil
	}
	shuffled := append([]model.TickerMessage(nil), pool...)
	if rng != nil {
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	}

	info := pool[0]
	for _, m := range shuffled {
		if m.Tone == model.ToneInfo {
			info = m
			break
		}
	}
	out := []model.TickerMessage{info}
	out = append(out, firstN(shuffled, model.ToneHint, 2)...)
	if includeEggs {
		out = append(out, firstN(shuffled, model.ToneEgg, 1)...)
	}
	return out
}

func firstN(ms []model.TickerMessage, tone model.TickerTone, n int) []model.TickerMessage {
	var out []model.TickerMessage
	for _, m := range ms {
		if len(out) == n {
			break
		}
		if m.Tone == tone {
			out = append(out, m)
		}
	}
	return out
}

// Cache is the session-scoped store for the selection (store.Prefs satisfies it).
type Cache interface {
	TickerMessages() ([]model.TickerMessage, bool)
	SetTickerMessages([]model.TickerMessage) error
}

// SessionMessages returns the cached selection, picking and caching a new one
// when there is none. Cache failures only cost stability across screens.
func SessionMessages(c Cache, includeEggs bool, rng *rand.Rand) []model.TickerMessage {
	if c != nil {
		if msgs, ok := c.TickerMessages(); ok {
			return msgs
		}
	}
	msgs := Pick(Defaults, includeEggs, rng)
	if c != nil {
		_ = c.SetTickerMessages(msgs)
	}
	return msgs
}

// Ticker cycles through a fixed selection.
type Ticker struct {
	msgs   []model.TickerMessage
	idx    int
	paused bool
}

func New(msgs []model.TickerMessage) *Ticker {
	return &Ticker{msgs: msgs}
}

func (t *Ticker) Current() model.TickerMessage {
	if len(t.msgs) == 0 {
		return Fallback
	}
	return t.msgs[t.idx%len(t.msgs)]
}

// Advance moves to the next message unless paused.
func (t *Ticker) Advance() {
	if t.paused || len(t.msgs) == 0 {
		return
	}
	t.idx = (t.idx + 1) % len(t.msgs)
}

func (t *Ticker) TogglePause() bool {
	t.paused = !t.paused
	return t.paused
}

func (t *Ticker) Paused() bool { return t.paused }

func (t *Ticker) Len() int { return len(t.msgs) }
