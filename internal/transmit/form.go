// Package transmit is the contact form: validation, the submit state machine
// and the HTTP client for the form endpoint.
package transmit

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

// MinMessageLen is the minimum trimmed message length, in characters.
const MinMessageLen = 10

// ErrInvalid is returned when a submission fails client-side validation.
var ErrInvalid = errors.New("invalid submission")

// InvalidMessage is shown when submit is attempted with invalid fields.
const InvalidMessage = "Check your inputs and try again."

var emailRE = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Project type and timeline choices offered by the form. Empty means unset.
var (
	ProjectTypes = []string{"Website", "Web App", "Brand + Identity", "Something Else"}
	Timelines    = []string{"ASAP", "1-2 months", "3+ months", "Flexible"}
)

// Form holds the raw field values. Company is the honeypot.
type Form struct {
	Name        string
	Email       string
	Message     string
	ProjectType string
	Timeline    string
	Company     string
}

type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldMessage Field = "message"
)

type FieldError struct {
	Field   Field
	Message string
}

func ValidEmail(v string) bool {
	return emailRE.MatchString(strings.TrimSpace(v))
}

// Validate returns one error per invalid field, in form order.
func (f Form) Validate() []FieldError {
	var out []FieldError
	if strings.TrimSpace(f.Name) == "" {
		out = append(out, FieldError{FieldName, "Name is required."})
	}
	if !ValidEmail(f.Email) {
		out = append(out, FieldError{FieldEmail, "Enter a valid email address."})
	}
	if utf8.RuneCountInString(strings.TrimSpace(f.Message)) < MinMessageLen {
		out = append(out, FieldError{FieldMessage, "Message must be at least 10 characters."})
	}
	return out
}

// CanSubmit gates the submit control.
func (f Form) CanSubmit() bool {
	return len(f.Validate()) == 0
}

// IsBot reports whether the honeypot was filled.
func (f Form) IsBot() bool {
	return f.Company != ""
}

// Payload is the JSON body sent to the endpoint.
type Payload struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Message     string `json:"message"`
	ProjectType string `json:"projectType,omitempty"`
	Timeline    string `json:"timeline,omitempty"`
	Source      string `json:"source"`
}

func (f Form) Payload(source string) Payload {
	return Payload{
		Name:        f.Name,
		Email:       f.Email,
		Message:     f.Message,
		ProjectType: f.ProjectType,
		Timeline:    f.Timeline,
		Source:      source,
	}
}
