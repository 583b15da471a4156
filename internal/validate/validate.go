// internal/validate/validate.go
//
// Field-level validators for the lead intake form.
//
// Context
//   Every applicant field runs through one of these before a submission is
//   attempted, and the intake endpoint re-checks presence server side.  A
//   validator takes the raw value (plus a label for the name fields) and
//   returns a Result synchronously.  Invalid input is a return value, never
//   an error; the helpers have no side effects and keep no state, so they
//   are safe to call from handlers, the orchestrator, and tests alike.
//
// Workflow
//   •  Name      – length window, character class, repeated or edge-placed
//      special characters.
//   •  ZipCode   – strips spaces and dashes, exactly five digits, rejects
//      the all-zero code and the reserved 666 prefix.
//   •  Phone     – strips to digits, NANP area and exchange rules, rejects
//      ten identical digits.
//   •  DateOfBirth – ISO date, not in the future, age between 18 and 120.
//   •  Required  – generic presence check.
//   •  Email lives in email.go with its typo table.
//
// Style
//   Oxford commas, two spaces after periods.
//
//------------------------------------------------------------------------------

package validate

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Result is the verdict for a single field check.  Error carries the
// user-facing message when Valid is false; Suggestion is only populated by
// the email typo detector.
type Result struct {
	Valid      bool
	Error      string
	Suggestion string
}

func ok() Result             { return Result{Valid: true} }
func fail(msg string) Result { return Result{Error: msg} }
func failf(f string, a ...any) Result {
	return Result{Error: fmt.Sprintf(f, a...)}
}

// -----------------------------------------------------------------------------
// Name
// -----------------------------------------------------------------------------

var (
	nameChars       = regexp.MustCompile(`^[a-zA-Z\s'-]+$`)
	nameRepeatSpec  = regexp.MustCompile(`['-]{2,}`)
	nameRepeatSpace = regexp.MustCompile(`\s{2,}`)
	nameEdgeSpec    = regexp.MustCompile(`^['\-\s]|['\-\s]$`)
)

// Name validates a first or last name.  label is used in messages, e.g.
// "First name".
func Name(name, label string) Result {
	if label == "" {
		label = "Name"
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return failf("%s is required", label)
	}
	if n := len([]rune(trimmed)); n < 2 {
		return failf("%s must be at least 2 characters", label)
	} else if n > 50 {
		return failf("%s must be less than 50 characters", label)
	}
	if !nameChars.MatchString(trimmed) {
		return failf("%s can only contain letters, spaces, hyphens, and apostrophes", label)
	}
	if nameRepeatSpec.MatchString(trimmed) || nameRepeatSpace.MatchString(trimmed) {
		return failf("%s contains invalid characters", label)
	}
	if nameEdgeSpec.MatchString(trimmed) {
		return failf("%s cannot start or end with special characters", label)
	}
	return ok()
}

// -----------------------------------------------------------------------------
// ZIP code
// -----------------------------------------------------------------------------

var zipDigits = regexp.MustCompile(`^\d{5}$`)

// ZipCode validates a five-digit USA ZIP code.  Spaces and dashes are
// stripped before checking, so "111 02" and "11102" are equivalent.
func ZipCode(zip string) Result {
	if zip == "" {
		return fail("ZIP code is required")
	}

	cleaned := strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, zip)

	if len(cleaned) != 5 {
		return fail("ZIP code must be exactly 5 digits")
	}
	if !zipDigits.MatchString(cleaned) {
		return fail("ZIP code must contain only numbers")
	}
	// The all-zero code is unassigned, as is the entire 666xx prefix.
	if cleaned == "00000" || strings.HasPrefix(cleaned, "666") {
		return fail("Please enter a valid USA ZIP code")
	}
	return ok()
}

// -----------------------------------------------------------------------------
// Phone number
// -----------------------------------------------------------------------------

// Digits strips every non-digit rune from s.  Unlike inputmask.Digits it
// never truncates: validation and presence checks must see every digit
// the user typed, even an over-long paste.
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// PhoneNumber validates a ten-digit NANP number.  Formatting characters are
// ignored; only the digits count.
func PhoneNumber(phone string) Result {
	if phone == "" {
		return fail("Phone number is required")
	}

	digits := Digits(phone)
	if len(digits) < 10 {
		return fail("Phone number must be 10 digits")
	}
	if len(digits) > 10 {
		return fail("Phone number must be exactly 10 digits")
	}

	// Neither the area code nor the exchange may begin with 0 or 1.
	if digits[0] == '0' || digits[0] == '1' {
		return fail("Please enter a valid phone number")
	}
	if digits[3] == '0' || digits[3] == '1' {
		return fail("Please enter a valid phone number")
	}

	same := true
	for i := 1; i < len(digits); i++ {
		if digits[i] != digits[0] {
			same = false
			break
		}
	}
	if same {
		return fail("Please enter a valid phone number")
	}
	return ok()
}

// -----------------------------------------------------------------------------
// Date of birth
// -----------------------------------------------------------------------------

// DateOfBirth validates an ISO (YYYY-MM-DD) birth date against the clock
// returned by now.  Callers outside tests pass time.Now.
func DateOfBirth(dob string, now func() time.Time) Result {
	if dob == "" {
		return fail("Date of birth is required")
	}

	d, err := time.Parse("2006-01-02", dob)
	if err != nil {
		return fail("Please enter a valid date")
	}

	today := now()
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	if d.After(today) {
		return fail("Date of birth cannot be in the future")
	}

	age := today.Year() - d.Year()
	if today.Month() < d.Month() ||
		(today.Month() == d.Month() && today.Day() < d.Day()) {
		age--
	}

	if age > 120 {
		return fail("Please enter a valid date of birth")
	}
	if age < 18 {
		return fail("You must be at least 18 years old")
	}
	return ok()
}

// -----------------------------------------------------------------------------
// Required
// -----------------------------------------------------------------------------

// Required fails on empty or whitespace-only values.
func Required(value string) Result {
	if strings.TrimSpace(value) == "" {
		return fail("This field is required")
	}
	return ok()
}
