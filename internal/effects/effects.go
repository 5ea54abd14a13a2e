// Package effects is the in-process signal bus for visual feedback ("bursts").
package effects

import (
	"sync"
)

type Strength string

const (
	Low    Strength = "low"
	Medium Strength = "medium"
	High   Strength = "high"
)

type Burst struct {
	Strength Strength
	// Source names the trigger (konami, maximize, hotkey, ...); informational only.
	Source string
}

// Publisher is what components depend on to emit bursts.
type Publisher interface {
	Publish(Burst)
}

// Coordinator fans bursts out to every subscriber. Delivery is synchronous and
// fire-and-forget.
type Coordinator struct {
	mu   sync.RWMutex
	next int
	subs map[int]func(Burst)
}

func NewCoordinator() *Coordinator {
	return &Coordinator{subs: map[int]func(Burst){}}
}

// Subscribe registers fn and returns its unsubscribe func.
func (c *Coordinator) Subscribe(fn func(Burst)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.next
	c.next++
	c.subs[id] = fn
	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			delete(c.subs, id)
		})
	}
}

// Channel subscribes a buffered channel. Bursts that arrive while the buffer is
// full are dropped; a flicker that is already pending covers them.
func (c *Coordinator) Channel(buf int) (<-chan Burst, func()) {
	if buf < 1 {
		buf = 1
	}
	ch := make(chan Burst, buf)
	unsub := c.Subscribe(func(b Burst) {
		select {
		case ch <- b:
		default:
		}
	})
	return ch, unsub
}

func (c *Coordinator) Publish(b Burst) {
	if b.Strength == "" {
		b.Strength = Medium
	}
	c.mu.RLock()
	fns := make([]func(Burst), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.mu.RUnlock()
	for _, fn := range fns {
		fn(b)
	}
}

// Recorder is a Publisher that keeps every burst; handy in tests.
type Recorder struct {
	mu     sync.Mutex
	Bursts []Burst
}

func (r *Recorder) Publish(b Burst) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Bursts = append(r.Bursts, b)
}

func (r *Recorder) Last() (Burst, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Bursts) == 0 {
		return Burst{}, false
	}
	return r.Bursts[len(r.Bursts)-1], true
}
