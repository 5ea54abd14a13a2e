package transmit

type Status string

const (
	StatusIdle    Status = "idle"
	StatusSending Status = "sending"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Label is the short status shown next to the form.
func (s Status) Label() string {
	switch s {
	case StatusSending:
		return "transmitting"
	case StatusSuccess:
		return "received"
	case StatusError:
		return "error"
	default:
		return "ready"
	}
}

// Decision is the outcome of Begin.
type Decision int

const (
	// Send means the caller should perform the request and call Resolve.
	Send Decision = iota
	// Honeypot short-circuits to success without a request.
	Honeypot
	Invalid
	// Busy means a submission is already in flight.
	Busy
)

// Machine is the idle → sending → success|error state machine.
type Machine struct {
	Form   Form
	Status Status
	// Err is the user-facing message for StatusError or a rejected Begin.
	Err string
}

func NewMachine() *Machine {
	return &Machine{Status: StatusIdle}
}

// Begin starts a submission.
func (m *Machine) Begin() Decision {
	if m.Status == StatusSending {
		return Busy
	}
	m.Err = ""
	if m.Form.IsBot() {
		m.Status = StatusSuccess
		return Honeypot
	}
	if !m.Form.CanSubmit() {
		m.Err = InvalidMessage
		return Invalid
	}
	m.Status = StatusSending
	return Send
}

// Resolve finishes a submission. Success clears the form; an error keeps it so
// the user can retry.
func (m *Machine) Resolve(err error) {
	if err != nil {
		m.Status = StatusError
		m.Err = err.Error()
		if m.Err == "" {
			m.Err = FallbackMessage
		}
		return
	}
	m.Status = StatusSuccess
	m.Err = ""
	m.Form = Form{}
}

// Reset returns to an empty idle form.
func (m *Machine) Reset() {
	*m = Machine{Status: StatusIdle}
}

// Sending reports whether the submit control must be disabled.
func (m *Machine) Sending() bool { return m.Status == StatusSending }
