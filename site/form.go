package site

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
)

var (
	ErrRequired     = errors.New("site: field is required")
	ErrInvalidEmail = errors.New("site: invalid email address")
)

// FieldError ties a validation error to a form field.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string { return fmt.Sprintf("%s: %v", e.Field, e.Err) }
func (e *FieldError) Unwrap() error { return e.Err }

// FormStatus is where the contact form is in its submit cycle.
type FormStatus uint8

const (
	FormIdle FormStatus = iota
	FormSubmitting
	FormSubmitted
)

func (s FormStatus) String() string {
	switch s {
	case FormIdle:
		return "idle"
	case FormSubmitting:
		return "submitting"
	case FormSubmitted:
		return "submitted"
	default:
		return "unknown"
	}
}

// Submission timing, in seconds.
const (
	SubmitDelay     = 1.5
	ConfirmDuration = 3.0
)

// Form field names, in tab order.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldCompany = "company"
	FieldService = "service"
	FieldMessage = "message"
)

var fieldOrder = []string{FieldName, FieldEmail, FieldCompany, FieldService, FieldMessage}

// FormData is the content of the contact form.
type FormData struct {
	Name    string
	Email   string
	Company string
	Service string
	Message string
}

// ContactForm is the contact form's state machine. Sending is simulated:
// the form stays Submitting for SubmitDelay, shows Submitted for
// ConfirmDuration and then clears itself. It never fails once valid.
type ContactForm struct {
	Data FormData

	status FormStatus
	timer  float64

	// OnStatus is called after every status change.
	OnStatus func(FormStatus)
	// OnSent receives the data when the simulated send completes.
	OnSent func(FormData)
}

// Status returns the current status.
func (f *ContactForm) Status() FormStatus { return f.status }

// Field returns a pointer to the named field, or nil.
func (f *ContactForm) Field(name string) *string {
	switch name {
	case FieldName:
		return &f.Data.Name
	case FieldEmail:
		return &f.Data.Email
	case FieldCompany:
		return &f.Data.Company
	case FieldService:
		return &f.Data.Service
	case FieldMessage:
		return &f.Data.Message
	}
	return nil
}

// Validate checks required fields and the email address. All problems are
// joined; match them with errors.Is or errors.As(*FieldError).
func (f *ContactForm) Validate() error {
	var errs []error
	for _, r := range []struct {
		field, value string
	}{
		{FieldName, f.Data.Name},
		{FieldEmail, f.Data.Email},
		{FieldMessage, f.Data.Message},
	} {
		if strings.TrimSpace(r.value) == "" {
			errs = append(errs, &FieldError{Field: r.field, Err: ErrRequired})
		}
	}
	if email := strings.TrimSpace(f.Data.Email); email != "" {
		addr, err := mail.ParseAddress(email)
		if err != nil || addr.Address != email {
			errs = append(errs, &FieldError{Field: FieldEmail, Err: ErrInvalidEmail})
		}
	}
	return errors.Join(errs...)
}

// Submit validates the form and starts sending. A submit while a previous
// one is still pending is ignored and returns nil.
func (f *ContactForm) Submit() error {
	if f.status != FormIdle {
		return nil
	}
	if err := f.Validate(); err != nil {
		return err
	}
	f.setStatus(FormSubmitting, SubmitDelay)
	return nil
}

// Update advances the submit timers by dt seconds.
func (f *ContactForm) Update(dt float64) {
	if f.status == FormIdle {
		return
	}
	f.timer -= dt
	if f.timer > 0 {
		return
	}
	switch f.status {
	case FormSubmitting:
		if f.OnSent != nil {
			f.OnSent(f.Data)
		}
		f.setStatus(FormSubmitted, ConfirmDuration+f.timer)
	case FormSubmitted:
		f.Data = FormData{}
		f.setStatus(FormIdle, 0)
	}
}

// Reset clears the data and returns to idle immediately.
func (f *ContactForm) Reset() {
	f.Data = FormData{}
	if f.status != FormIdle {
		f.setStatus(FormIdle, 0)
	}
}

func (f *ContactForm) setStatus(s FormStatus, timer float64) {
	f.status = s
	f.timer = timer
	if f.OnStatus != nil {
		f.OnStatus(s)
	}
}
