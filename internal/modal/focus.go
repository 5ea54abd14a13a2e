package modal

// Control is one focusable element of a window.
type Control struct {
	ID       string
	Label    string
	Disabled bool
	// Hidden controls are not rendered and never receive focus.
	Hidden bool
}

func (c Control) focusable() bool { return !c.Disabled && !c.Hidden }

// FocusRing traps Tab/Shift+Tab within the focusable controls, wrapping at
// both ends.
type FocusRing struct {
	controls []Control
	current  string
}

// NewFocusRing focuses initial when it is focusable, else the first focusable control.
func NewFocusRing(controls []Control, initial string) *FocusRing {
	r := &FocusRing{}
	r.SetControls(controls)
	if !r.Focus(initial) {
		r.current = r.first()
	}
	return r
}

// SetControls replaces the control set, keeping focus when the focused control
// is still focusable.
func (r *FocusRing) SetControls(controls []Control) {
	r.controls = append([]Control(nil), controls...)
	if r.indexOf(r.current) < 0 {
		r.current = r.first()
	}
}

func (r *FocusRing) Controls() []Control { return r.controls }

// Focusable lists the controls that can currently take focus, in order.
func (r *FocusRing) Focusable() []Control {
	out := make([]Control, 0, len(r.controls))
	for _, c := range r.controls {
		if c.focusable() {
			out = append(out, c)
		}
	}
	return out
}

func (r *FocusRing) Current() string { return r.current }

// Focus moves focus to id if it is focusable.
func (r *FocusRing) Focus(id string) bool {
	for _, c := range r.controls {
		if c.ID == id && c.focusable() {
			r.current = id
			return true
		}
	}
	return false
}

func (r *FocusRing) Next() string { return r.step(1) }

func (r *FocusRing) Prev() string { return r.step(-1) }

func (r *FocusRing) step(dir int) string {
	f := r.Focusable()
	if len(f) == 0 {
		r.current = ""
		return ""
	}
	i := r.indexOf(r.current)
	if i < 0 {
		if dir > 0 {
			r.current = f[0].ID
		} else {
			r.current = f[len(f)-1].ID
		}
		return r.current
	}
	i = (i + dir + len(f)) % len(f)
	r.current = f[i].ID
	return r.current
}

func (r *FocusRing) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, c := range r.Focusable() {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (r *FocusRing) first() string {
	if f := r.Focusable(); len(f) > 0 {
		return f[0].ID
	}
	return ""
}
