// Package settings holds the display preferences (VHS overlay, intensity,
// reduced motion) and persists them through the prefs repository.
package settings

import (
	"sync"

	"broadcast-mode/internal/model"
	"broadcast-mode/internal/store"
)

// Repository is the persisted side of the store.
type Repository interface {
	ReadSettings() (model.Settings, store.RecordState, error)
	WriteSettings(model.Settings) error
}

// Patch is a partial update; nil fields are left untouched.
type Patch struct {
	VhsEnabled    *bool
	VhsIntensity  *model.VhsIntensity
	ReducedMotion *bool
}

func Bool(v bool) *bool { return &v }

func Intensity(v model.VhsIntensity) *model.VhsIntensity { return &v }

// Apply shallow-merges p over s.
func (p Patch) Apply(s model.Settings) model.Settings {
	if p.VhsEnabled != nil {
		s.VhsEnabled = *p.VhsEnabled
	}
	if p.VhsIntensity != nil && p.VhsIntensity.Valid() {
		s.VhsIntensity = *p.VhsIntensity
	}
	if p.ReducedMotion != nil {
		s.ReducedMotion = *p.ReducedMotion
	}
	return s
}

// Store is the process-wide settings holder. Construct one per app (or test);
// nothing here is global.
type Store struct {
	mu              sync.Mutex
	repo            Repository
	osReducedMotion bool

	cur      model.Settings
	hydrated bool

	nextSub int
	subs    map[int]func(model.Settings)
}

// New returns a store holding defaults. Call Hydrate before relying on persisted values.
func New(repo Repository, osReducedMotion bool) *Store {
	return &Store{
		repo:            repo,
		osReducedMotion: osReducedMotion,
		cur:             model.DefaultSettings(),
		subs:            map[int]func(model.Settings){},
	}
}

// Hydrate reads the persisted record once. Absent (or unreadable) records take the
// defaults with reducedMotion following the OS signal; malformed records take the
// defaults as-is. Writes are enabled afterwards.
func (s *Store) Hydrate() model.Settings {
	s.mu.Lock()
	if s.hydrated {
		cur := s.cur
		s.mu.Unlock()
		return cur
	}
	base := model.DefaultSettings()
	if s.repo != nil {
		stored, state, err := s.repo.ReadSettings()
		switch {
		case err != nil || state == store.RecordAbsent:
			base.ReducedMotion = s.osReducedMotion
		case state == store.RecordOK:
			base = stored
		}
	} else {
		base.ReducedMotion = s.osReducedMotion
	}
	s.cur = base
	s.hydrated = true
	subs := s.snapshotSubs()
	s.mu.Unlock()

	s.notify(subs, base)
	return base
}

func (s *Store) Hydrated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hydrated
}

func (s *Store) Get() model.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur
}

// Update merges p into the current settings and writes through once hydrated.
func (s *Store) Update(p Patch) model.Settings {
	s.mu.Lock()
	next := p.Apply(s.cur)
	s.cur = next
	persist := s.hydrated
	subs := s.snapshotSubs()
	s.mu.Unlock()

	if persist && s.repo != nil {
		// Failures are logged by the repository; the in-memory value stays authoritative.
		_ = s.repo.WriteSettings(next)
	}
	s.notify(subs, next)
	return next
}

// OnChange registers fn for every hydrate/update. The returned func unsubscribes.
func (s *Store) OnChange(fn func(model.Settings)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) snapshotSubs() []func(model.Settings) {
	out := make([]func(model.Settings), 0, len(s.subs))
	for _, fn := range s.subs {
		out = append(out, fn)
	}
	return out
}

func (s *Store) notify(subs []func(model.Settings), st model.Settings) {
	for _, fn := range subs {
		fn(st)
	}
}
