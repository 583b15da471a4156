// internal/funnel/orchestrator.go
//
// Submission orchestrator.
//
// Context
//   The orchestrator owns the client-side shape of one form submission:
//   field storage, the fixed validation order, and the state machine that
//   runs validate → submit → redirect-or-error.  It is transport-agnostic;
//   the caller supplies a Submitter (normally the HTTP layer posting to
//   /submit-form) and a redirect sink.
//
// Workflow
//   •  Fields are set individually; SetZip additionally persists through
//      the ZipStore so a returning visitor finds their ZIP pre-filled.
//   •  Submit(ctx) walks the fields in order and stops at the first
//      failure, reporting it as a FieldError so the caller can focus the
//      offending input.
//   •  On success the orchestrator reports the redirect target; on buyer
//      rejection it surfaces the failure message in the email slot, which
//      is where the form renders submission-level errors.
//
//------------------------------------------------------------------------------

package funnel

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/BrightPathCover/leadfunnel/internal/inputmask"
	"github.com/BrightPathCover/leadfunnel/internal/validate"
)

// State tracks the submission lifecycle.  Failures do not park the
// machine: a failed validation or submission reports through FieldError
// and rests back at Idle so the user can correct and resubmit.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateSubmitting
	StateSucceeded
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	}
	return "unknown"
}

// Field names the inputs in their on-screen order.
type Field string

const (
	FieldFirstName Field = "firstName"
	FieldLastName  Field = "lastName"
	FieldGender    Field = "gender"
	FieldZipCode   Field = "zipCode"
	FieldDOB       Field = "dateOfBirth"
	FieldPhone     Field = "phoneNumber"
	FieldEmail     Field = "email"
)

// FieldError is a validation failure attributed to one input.
type FieldError struct {
	Field      Field
	Message    string
	Suggestion string
}

func (e *FieldError) Error() string { return string(e.Field) + ": " + e.Message }

// Payload is the validated, normalized submission the Submitter receives.
// Phone is digits only; DOB is ISO (yyyy-mm-dd).
type Payload struct {
	FirstName          string `json:"firstName"`
	LastName           string `json:"lastName"`
	Gender             string `json:"gender"`
	DateOfBirth        string `json:"dateOfBirth"`
	ZipCode            string `json:"zipCode"`
	PhoneNumber        string `json:"phoneNumber"`
	Email              string `json:"email"`
	TrustedFormCertURL string `json:"trustedformCertUrl"`
}

// Result is the Submitter's verdict.
type Result struct {
	Success  bool
	Message  string
	Redirect string
}

// Submitter delivers a validated payload.  A transport failure returns an
// error; a buyer rejection returns Success=false with a message.
type Submitter interface {
	Submit(ctx context.Context, p Payload) (Result, error)
}

// ZipStore persists the visitor's ZIP between sessions.
type ZipStore interface {
	Load() string
	Save(zip string)
}

// Certifier resolves the TrustedForm certificate URL, waiting briefly if
// the certificate has not landed yet.  May return "".
type Certifier interface {
	Collect(ctx context.Context) string
}

// partialZip gates what SetZip will even hold: up to five digits.
var partialZip = regexp.MustCompile(`^\d{0,5}$`)

const failureMessage = "Submission failed. Please try again."

// Orchestrator drives one submission attempt.  Not safe for concurrent
// use; each form session owns its own instance.
type Orchestrator struct {
	fields map[Field]string
	errors map[Field]FieldError
	state  State

	submitter Submitter
	zips      ZipStore
	certs     Certifier
	now       func() time.Time

	redirect string
}

// New builds an orchestrator, pre-filling the ZIP from the store.  certs
// may be nil when TrustedForm is not wired.
func New(s Submitter, zips ZipStore, certs Certifier) *Orchestrator {
	o := &Orchestrator{
		fields:    make(map[Field]string),
		errors:    make(map[Field]FieldError),
		state:     StateIdle,
		submitter: s,
		zips:      zips,
		certs:     certs,
		now:       time.Now,
	}
	if zips != nil {
		if z := zips.Load(); partialZip.MatchString(z) {
			o.fields[FieldZipCode] = z
		}
	}
	return o
}

// State returns the current lifecycle phase.
func (o *Orchestrator) State() State { return o.state }

// RedirectTarget is set once the state reaches StateSucceeded.
func (o *Orchestrator) RedirectTarget() string { return o.redirect }

// Get returns the current raw value of a field.
func (o *Orchestrator) Get(f Field) string { return o.fields[f] }

// Set records a raw field value and clears any stale error on it.
func (o *Orchestrator) Set(f Field, value string) {
	o.fields[f] = value
	delete(o.errors, f)
}

// SetZip accepts only partial ZIPs (0–5 digits) and mirrors accepted
// values into the store.
func (o *Orchestrator) SetZip(value string) {
	if !partialZip.MatchString(value) {
		return
	}
	o.Set(FieldZipCode, value)
	if o.zips != nil {
		o.zips.Save(value)
	}
}

// ErrorFor returns the recorded error for a field, if any.
func (o *Orchestrator) ErrorFor(f Field) (FieldError, bool) {
	e, ok := o.errors[f]
	return e, ok
}

// fieldOrder fixes both validation order and which error the user sees
// first: top of the form wins.
var fieldOrder = []Field{
	FieldFirstName, FieldLastName, FieldGender,
	FieldZipCode, FieldDOB, FieldPhone, FieldEmail,
}

func (o *Orchestrator) validateField(f Field) validate.Result {
	v := o.fields[f]
	switch f {
	case FieldFirstName:
		return validate.Name(v, "First name")
	case FieldLastName:
		return validate.Name(v, "Last name")
	case FieldGender:
		return validate.Required(v)
	case FieldZipCode:
		return validate.ZipCode(v)
	case FieldDOB:
		return validate.DateOfBirth(v, o.now)
	case FieldPhone:
		return validate.PhoneNumber(v)
	case FieldEmail:
		return validate.Email(v)
	}
	return validate.Result{Valid: true}
}

// Validate walks all fields in order and records the first failure.
func (o *Orchestrator) Validate() (FieldError, bool) {
	o.state = StateValidating
	for _, f := range fieldOrder {
		res := o.validateField(f)
		if !res.Valid {
			fe := FieldError{Field: f, Message: res.Error, Suggestion: res.Suggestion}
			o.errors[f] = fe
			// Back to Idle for correction.
			o.state = StateIdle
			return fe, false
		}
	}
	return FieldError{}, true
}

// Submit runs the full pipeline: validate, collect the certificate,
// normalize, deliver.  On rejection the failure lands in the email slot,
// matching where the form shows submission-level errors.
func (o *Orchestrator) Submit(ctx context.Context) error {
	if fe, ok := o.Validate(); !ok {
		return &fe
	}

	o.state = StateSubmitting

	cert := ""
	if o.certs != nil {
		cert = o.certs.Collect(ctx)
	}

	p := Payload{
		FirstName:          strings.TrimSpace(o.fields[FieldFirstName]),
		LastName:           strings.TrimSpace(o.fields[FieldLastName]),
		Gender:             o.fields[FieldGender],
		DateOfBirth:        o.fields[FieldDOB],
		ZipCode:            strings.TrimSpace(o.fields[FieldZipCode]),
		PhoneNumber:        inputmask.Digits(o.fields[FieldPhone]),
		Email:              strings.TrimSpace(o.fields[FieldEmail]),
		TrustedFormCertURL: cert,
	}

	res, err := o.submitter.Submit(ctx, p)
	if err != nil {
		o.state = StateIdle
		o.errors[FieldEmail] = FieldError{Field: FieldEmail, Message: failureMessage}
		return err
	}
	if !res.Success {
		o.state = StateIdle
		msg := res.Message
		if msg == "" {
			msg = failureMessage
		}
		fe := FieldError{Field: FieldEmail, Message: msg}
		o.errors[FieldEmail] = fe
		return &fe
	}

	o.state = StateSucceeded
	o.redirect = res.Redirect
	if o.redirect == "" {
		o.redirect = "/thankyou"
	}
	return nil
}
