package tui

import (
	"context"
	"strings"
	"time"

	"broadcast-mode/internal/modal"
	"broadcast-mode/internal/transmit"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

const (
	ctlName     = "name"
	ctlEmail    = "email"
	ctlMessage  = "message"
	ctlType     = "project-type"
	ctlTimeline = "timeline"
	ctlSubmit   = "submit"
	ctlReset    = "reset"
	ctlCompany  = "company"
)

// contactModel is the Transmit form: bubbles inputs in front of a
// transmit.Machine.
type contactModel struct {
	name    textinput.Model
	email   textinput.Model
	message textarea.Model
	// Picker indexes are 1-based; 0 means "not specified".
	typeIdx     int
	timelineIdx int
	// company is the honeypot. No control ever focuses it.
	company string

	machine   *transmit.Machine
	ring      *modal.FocusRing
	spinner   spinner.Model
	seq       int
	attempted bool
}

func newContactModel() contactModel {
	name := textinput.New()
	name.Placeholder = "Your name"
	name.CharLimit = 120
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 200
	msg := textarea.New()
	msg.Placeholder = "What are we building?"
	msg.ShowLineNumbers = false
	msg.CharLimit = 4000
	msg.SetHeight(5)
	msg.SetWidth(60)

	c := contactModel{
		name:    name,
		email:   email,
		message: msg,
		machine: transmit.NewMachine(),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	c.ring = modal.NewFocusRing(c.controls(), ctlName)
	return c
}

func (c contactModel) form() transmit.Form {
	f := transmit.Form{
		Name:    c.name.Value(),
		Email:   c.email.Value(),
		Message: c.message.Value(),
		Company: c.company,
	}
	if c.typeIdx > 0 {
		f.ProjectType = transmit.ProjectTypes[c.typeIdx-1]
	}
	if c.timelineIdx > 0 {
		f.Timeline = transmit.Timelines[c.timelineIdx-1]
	}
	return f
}

func (c contactModel) controls() []modal.Control {
	return []modal.Control{
		{ID: ctlName, Label: "Name"},
		{ID: ctlEmail, Label: "Email"},
		{ID: ctlMessage, Label: "Message"},
		{ID: ctlType, Label: "Project type"},
		{ID: ctlTimeline, Label: "Timeline"},
		{ID: ctlSubmit, Label: "Transmit", Disabled: c.machine.Sending() || !c.form().CanSubmit()},
		{ID: ctlReset, Label: "Reset"},
		{ID: ctlCompany, Label: "Company", Hidden: true},
	}
}

// sync recomputes which controls are enabled.
func (c *contactModel) sync() {
	c.ring.SetControls(c.controls())
}

func (c contactModel) typing() bool {
	switch c.ring.Current() {
	case ctlName, ctlEmail, ctlMessage:
		return true
	}
	return false
}

func (c *contactModel) blurAll() {
	c.name.Blur()
	c.email.Blur()
	c.message.Blur()
}

func (c *contactModel) focusCurrent() tea.Cmd {
	c.blurAll()
	switch c.ring.Current() {
	case ctlName:
		return c.name.Focus()
	case ctlEmail:
		return c.email.Focus()
	case ctlMessage:
		return c.message.Focus()
	}
	return nil
}

func (c *contactModel) focus(id string) tea.Cmd {
	c.ring.Focus(id)
	return c.focusCurrent()
}

func (c *contactModel) resize(width int) {
	w := clampInt(width-22, 20, 64)
	c.name.Width = w
	c.email.Width = w
	c.message.SetWidth(w)
}

func (c *contactModel) clearInputs() {
	c.name.SetValue("")
	c.email.SetValue("")
	c.message.SetValue("")
	c.typeIdx, c.timelineIdx = 0, 0
	c.company = ""
	c.attempted = false
}

func (c *contactModel) reset() {
	c.clearInputs()
	c.machine.Reset()
	c.sync()
}

// forward passes non-key messages (cursor blink) to the focused input.
func (c *contactModel) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch c.ring.Current() {
	case ctlName:
		c.name, cmd = c.name.Update(msg)
	case ctlEmail:
		c.email, cmd = c.email.Update(msg)
	case ctlMessage:
		c.message, cmd = c.message.Update(msg)
	}
	return cmd
}

func (c *contactModel) resolve(msg transmitDoneMsg, log *zap.Logger) tea.Cmd {
	if msg.seq != c.seq || !c.machine.Sending() {
		return nil
	}
	c.machine.Resolve(msg.err)
	if msg.err != nil {
		log.Warn("transmit failed", zap.Error(msg.err))
	} else {
		log.Info("transmit delivered")
		c.clearInputs()
	}
	c.sync()
	return nil
}

func cycle(idx, n, dir int) int {
	return (idx + dir + n + 1) % (n + 1)
}

func (m appModel) updateContactKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	c := &m.contact
	k := msg.String()
	switch k {
	case "tab":
		c.ring.Next()
		return m, c.focusCurrent()
	case "shift+tab":
		c.ring.Prev()
		return m, c.focusCurrent()
	case "esc":
		m.setScreen(screenHome)
		return m, nil
	}

	switch cur := c.ring.Current(); cur {
	case ctlName, ctlEmail:
		if k == "enter" || k == "down" {
			c.ring.Next()
			return m, c.focusCurrent()
		}
		cmd := c.forward(msg)
		c.sync()
		return m, cmd
	case ctlMessage:
		cmd := c.forward(msg)
		c.sync()
		return m, cmd
	case ctlType, ctlTimeline:
		dir := 0
		switch k {
		case "right", "enter", " ":
			dir = 1
		case "left":
			dir = -1
		case "down":
			c.ring.Next()
			return m, c.focusCurrent()
		case "up":
			c.ring.Prev()
			return m, c.focusCurrent()
		}
		if cur == ctlType {
			c.typeIdx = cycle(c.typeIdx, len(transmit.ProjectTypes), dir)
		} else {
			c.timelineIdx = cycle(c.timelineIdx, len(transmit.Timelines), dir)
		}
		return m, nil
	case ctlSubmit, ctlReset:
		switch k {
		case "enter", " ":
			return m, m.activateContactControl(cur)
		case "up", "left":
			c.ring.Prev()
			return m, c.focusCurrent()
		case "down", "right":
			c.ring.Next()
			return m, c.focusCurrent()
		}
	}
	return m, nil
}

func (m *appModel) activateContactControl(id string) tea.Cmd {
	c := &m.contact
	switch id {
	case ctlReset:
		c.reset()
		return c.focus(ctlName)
	case ctlSubmit:
		c.attempted = true
		c.machine.Form = c.form()
		switch c.machine.Begin() {
		case transmit.Honeypot:
			m.log.Info("transmit honeypot tripped")
			c.clearInputs()
			c.sync()
			return nil
		case transmit.Invalid, transmit.Busy:
			c.sync()
			return nil
		}
		c.seq++
		c.sync()
		return tea.Batch(c.spinner.Tick, submitCmd(m.client, c.machine.Form.Payload(m.formSource), m.submitTimeout, c.seq))
	}
	return nil
}

func submitCmd(client *transmit.Client, p transmit.Payload, timeout time.Duration, seq int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return transmitDoneMsg{seq: seq, err: client.Submit(ctx, p)}
	}
}

func (m appModel) viewContact(width, height int) string {
	c := m.contact
	cur := c.ring.Current()
	errs := map[transmit.Field]string{}
	if c.attempted {
		for _, fe := range c.form().Validate() {
			errs[fe.Field] = fe.Message
		}
	}

	label := func(id, text string) string {
		st := styleLabel()
		if id == cur {
			st = st.Foreground(colorPink)
		}
		return m.mark("contact:"+id, st.Render(padRight(text, 10)))
	}
	fieldErr := func(f transmit.Field) []string {
		if msg := errs[f]; msg != "" {
			return []string{strings.Repeat(" ", 10) + styleError().Render(msg)}
		}
		return nil
	}
	picker := func(id string, opts []string, idx int) string {
		v := "not specified"
		if idx > 0 {
			v = opts[idx-1]
		}
		text := "‹ " + v + " ›"
		if id == cur {
			return label(id, pickerLabel(id)) + styleFocused(true).Render(text)
		}
		return label(id, pickerLabel(id)) + styleMuted().Render(text)
	}

	lines := []string{
		styleTitle().Render("TRANSMIT") + "  " + styleMuted().Render("status: "+strings.ToUpper(c.machine.Status.Label())),
		styleMuted().Render("Start a build, request a quote, or just say hi."),
		"",
		label(ctlName, "Name") + c.name.View(),
	}
	lines = append(lines, fieldErr(transmit.FieldName)...)
	lines = append(lines, label(ctlEmail, "Email")+c.email.View())
	lines = append(lines, fieldErr(transmit.FieldEmail)...)
	msgLabel := label(ctlMessage, "Message")
	lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, msgLabel, c.message.View()))
	lines = append(lines, fieldErr(transmit.FieldMessage)...)
	lines = append(lines,
		picker(ctlType, transmit.ProjectTypes, c.typeIdx),
		picker(ctlTimeline, transmit.Timelines, c.timelineIdx),
		"",
	)

	disabled := c.machine.Sending() || !c.form().CanSubmit()
	submit := stylePill(cur == ctlSubmit, disabled).Render("TRANSMIT")
	reset := stylePill(cur == ctlReset, false).Render("RESET")
	row := strings.Repeat(" ", 10) + m.mark("contact:"+ctlSubmit, submit) + " " + m.mark("contact:"+ctlReset, reset) + "  "
	switch c.machine.Status {
	case transmit.StatusSending:
		row += c.spinner.View() + " Transmitting…"
	case transmit.StatusSuccess:
		row += styleSuccess().Render("✓ Signal received. We'll be in touch.")
	case transmit.StatusError:
		row += styleError().Render("✗ " + c.machine.Err)
	default:
		if c.machine.Err != "" {
			row += styleError().Render(c.machine.Err)
		}
	}
	lines = append(lines, row)
	return normalizePane(strings.Join(lines, "\n"), width, height)
}

func pickerLabel(id string) string {
	if id == ctlType {
		return "Type"
	}
	return "Timeline"
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}
