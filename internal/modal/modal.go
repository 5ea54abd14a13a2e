// Package modal is the project detail window: open/close phases, the focus
// trap, drag, maximize taps and the image gallery.
package modal

import (
	"fmt"
	"strings"
	"time"

	"broadcast-mode/internal/model"
)

type Phase int

const (
	Opening Phase = iota
	Open
	Closing
	Closed
)

func (p Phase) String() string {
	switch p {
	case Opening:
		return "opening"
	case Open:
		return "open"
	case Closing:
		return "closing"
	default:
		return "closed"
	}
}

const (
	// CloseDelay matches the exit animation; skipped under reduced motion.
	CloseDelay = 180 * time.Millisecond
	// OpenDelay is the enter animation.
	OpenDelay = 120 * time.Millisecond

	// Drag bounds, in terminal cells.
	DragMaxX = 22
	DragMaxY = 8
)

// Control ids.
const (
	CtlDotClose  = "dot-close"
	CtlDotMin    = "dot-min"
	CtlDotMax    = "dot-max"
	CtlOpenLink  = "open-link"
	CtlSecondary = "secondary-link"
	CtlCopyLink  = "copy-link"
	CtlClose     = "close"
	thumbPrefix  = "thumb-"
)

type Offset struct {
	X, Y int
}

type dragState struct {
	active           bool
	startX, startY   int
	originX, originY int
}

// Session is one open instance of the window. A new Session is created per
// open, so per-open state (unlock, taps, gallery index) starts fresh.
type Session struct {
	project model.Project
	phase   Phase
	reduced bool
	narrow  bool

	maximized bool
	offset    Offset
	drag      dragState

	gallery []model.Image
	index   int

	taps     TapTracker
	unlocked bool

	focus *FocusRing
	// ReturnFocus identifies what had focus before the window opened.
	ReturnFocus string
}

// New opens a window for p. Focus starts on the close button.
func New(p model.Project, reducedMotion bool, returnFocus string) *Session {
	s := &Session{
		project:     p,
		phase:       Opening,
		reduced:     reducedMotion,
		gallery:     p.Gallery(),
		ReturnFocus: returnFocus,
	}
	if reducedMotion {
		s.phase = Open
	}
	s.focus = NewFocusRing(s.controls(), CtlClose)
	return s
}

func (s *Session) Project() model.Project { return s.project }
func (s *Session) Phase() Phase { return s.phase }
func (s *Session) Maximized() bool { return s.maximized }
func (s *Session) Unlocked() bool { return s.unlocked }
func (s *Session) Focus() *FocusRing { return s.focus }

// Mounted finishes the enter animation.
func (s *Session) Mounted() {
	if s.phase == Opening {
		s.phase = Open
	}
}

// SetNarrow disables dragging on narrow terminals.
func (s *Session) SetNarrow(narrow bool) {
	s.narrow = narrow
	if narrow {
		s.drag = dragState{}
	}
}

func (s *Session) SetReducedMotion(v bool) { s.reduced = v }

// RequestClose starts closing. It returns the delay before FinishClose should be
// called; zero means the window is already closed. Repeated requests while
// closing are no-ops and return ok=false.
func (s *Session) RequestClose() (delay time.Duration, ok bool) {
	if s.phase == Closing || s.phase == Closed {
		return 0, false
	}
	if s.reduced {
		s.phase = Closed
		return 0, true
	}
	s.phase = Closing
	return CloseDelay, true
}

func (s *Session) FinishClose() {
	s.phase = Closed
	s.drag = dragState{}
}

// Offset is the current window offset; maximized windows are centered.
func (s *Session) Offset() Offset {
	if s.maximized {
		return Offset{}
	}
	return s.offset
}

// BeginDrag starts a drag from a header cell. Ignored while maximized or narrow.
func (s *Session) BeginDrag(x, y int) bool {
	if s.maximized || s.narrow || s.phase != Open {
		return false
	}
	s.drag = dragState{active: true, startX: x, startY: y, originX: s.offset.X, originY: s.offset.Y}
	return true
}

func (s *Session) Dragging() bool { return s.drag.active }

// DragTo moves the window relative to the drag origin, clamped to the bounds.
func (s *Session) DragTo(x, y int) {
	if !s.drag.active {
		return
	}
	s.offset = Offset{
		X: clamp(s.drag.originX+x-s.drag.startX, -DragMaxX, DragMaxX),
		Y: clamp(s.drag.originY+y-s.drag.startY, -DragMaxY, DragMaxY),
	}
}

func (s *Session) EndDrag() { s.drag = dragState{} }

// Minimize restores from maximized and recenters.
func (s *Session) Minimize() {
	s.maximized = false
	s.offset = Offset{}
}

// PressMaximize records a press of the maximize control. The caller schedules
// SettleMaximize(res.Seq) after TapDebounce.
func (s *Session) PressMaximize(now time.Time) TapResult {
	res := s.taps.Press(now)
	if res.Unlock && s.project.BehindTheBuild != nil {
		s.unlocked = true
		s.focus.SetControls(s.controls())
	}
	return res
}

// SettleMaximize toggles maximize if seq is the latest press.
func (s *Session) SettleMaximize(seq int) bool {
	if !s.taps.Settle(seq) || s.phase == Closed {
		return false
	}
	s.maximized = !s.maximized
	s.offset = Offset{}
	s.drag = dragState{}
	return true
}

func (s *Session) Gallery() []model.Image { return s.gallery }

func (s *Session) Index() int { return s.index }

// Active is the current gallery image; false means show the placeholder.
func (s *Session) Active() (model.Image, bool) {
	if len(s.gallery) == 0 {
		return model.Image{}, false
	}
	return s.gallery[s.index], true
}

func (s *Session) NextImage() {
	if n := len(s.gallery); n > 1 {
		s.index = (s.index + 1) % n
	}
}

func (s *Session) PrevImage() {
	if n := len(s.gallery); n > 1 {
		s.index = (s.index - 1 + n) % n
	}
}

// SelectImage jumps to i, clamped to the gallery.
func (s *Session) SelectImage(i int) {
	if len(s.gallery) == 0 {
		s.index = 0
		return
	}
	s.index = clamp(i, 0, len(s.gallery)-1)
}

// PrimaryURL is the live link, falling back to the preview link.
func (s *Session) PrimaryURL() string {
	if u := strings.TrimSpace(s.project.Href); u != "" {
		return u
	}
	return strings.TrimSpace(s.project.PreviewHref)
}

func (s *Session) PrimaryLabel() string {
	if l := strings.TrimSpace(s.project.CTALabel); l != "" {
		return l
	}
	if strings.TrimSpace(s.project.Href) != "" {
		return "Open Live Project"
	}
	if strings.TrimSpace(s.project.PreviewHref) != "" {
		return "Open Preview"
	}
	return "No public link"
}

func (s *Session) SecondaryURL() string { return strings.TrimSpace(s.project.SecondaryHref) }

func (s *Session) SecondaryLabel() string {
	if l := strings.TrimSpace(s.project.SecondaryLabel); l != "" {
		return l
	}
	return "View more"
}

// ThumbID is the control id of gallery thumbnail i.
func ThumbID(i int) string { return fmt.Sprintf("%s%d", thumbPrefix, i) }

// ThumbIndex parses a thumbnail control id.
func ThumbIndex(id string) (int, bool) {
	if !strings.HasPrefix(id, thumbPrefix) {
		return 0, false
	}
	var i int
	if _, err := fmt.Sscanf(strings.TrimPrefix(id, thumbPrefix), "%d", &i); err != nil {
		return 0, false
	}
	return i, true
}

func (s *Session) controls() []Control {
	noLink := s.PrimaryURL() == ""
	out := []Control{
		{ID: CtlDotClose, Label: "Close window"},
		{ID: CtlDotMin, Label: "Minimize / center window"},
		{ID: CtlDotMax, Label: "Maximize window"},
		{ID: CtlOpenLink, Label: s.PrimaryLabel(), Disabled: noLink},
		{ID: CtlSecondary, Label: s.SecondaryLabel(), Hidden: s.SecondaryURL() == ""},
		{ID: CtlCopyLink, Label: "Copy link", Disabled: noLink},
	}
	for i := range s.gallery {
		out = append(out, Control{ID: ThumbID(i), Label: fmt.Sprintf("Image %d", i+1), Hidden: len(s.gallery) < 2})
	}
	out = append(out, Control{ID: CtlClose, Label: "Close"})
	return out
}

// Action is what a key press asks the caller to do.
type Action int

const (
	ActionNone Action = iota
	ActionClose
	ActionActivate
)

// Key handles keys that the window owns: Esc closes, arrows page the gallery,
// Tab/Shift+Tab move focus, Enter/Space activate the focused control.
func (s *Session) Key(k string) Action {
	if s.phase == Closing || s.phase == Closed {
		return ActionNone
	}
	switch k {
	case "esc":
		return ActionClose
	case "left":
		s.PrevImage()
	case "right":
		s.NextImage()
	case "tab":
		s.focus.Next()
	case "shift+tab":
		s.focus.Prev()
	case "enter", " ", "space":
		if s.focus.Current() != "" {
			return ActionActivate
		}
	}
	return ActionNone
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
