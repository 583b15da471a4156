// internal/validate/email.go
//
// Email validation with typo-correction suggestions.
//
// Context
//   Mis-typed provider domains ("ggmail.com", "yahoo.con") are far more
//   common on this form than structurally invalid addresses, and a generic
//   "invalid email" message makes users retype the same typo.  The typo
//   table therefore runs BEFORE the shape checks: the first matching
//   pattern short-circuits with a corrected suggestion.  Order matters for
//   input that is both a typo match and shape-invalid.
//
//------------------------------------------------------------------------------

package validate

import (
	"regexp"
	"strings"
)

type typoPattern struct {
	re         *regexp.Regexp
	suggestion string
}

// Ordered: provider-specific patterns first, bare-TLD slips last.
var emailTypos = []typoPattern{
	{regexp.MustCompile(`(?i)@ggmail\.com$`), "@gmail.com"},
	{regexp.MustCompile(`(?i)@gmial\.com$`), "@gmail.com"},
	{regexp.MustCompile(`(?i)@gmail\.con$`), "@gmail.com"},
	{regexp.MustCompile(`(?i)@gmail\.coms$`), "@gmail.com"},
	{regexp.MustCompile(`(?i)@gmai\.com$`), "@gmail.com"},
	{regexp.MustCompile(`(?i)@gmai\.`), "@gmail."},
	{regexp.MustCompile(`(?i)@gmaail\.com$`), "@gmail.com"},
	{regexp.MustCompile(`(?i)@yahoo\.con$`), "@yahoo.com"},
	{regexp.MustCompile(`(?i)@yahoo\.coms$`), "@yahoo.com"},
	{regexp.MustCompile(`(?i)@yaho\.com$`), "@yahoo.com"},
	{regexp.MustCompile(`(?i)@yahooo\.com$`), "@yahoo.com"},
	{regexp.MustCompile(`(?i)@outlok\.com$`), "@outlook.com"},
	{regexp.MustCompile(`(?i)@outlook\.con$`), "@outlook.com"},
	{regexp.MustCompile(`(?i)@outlook\.coms$`), "@outlook.com"},
	{regexp.MustCompile(`(?i)@hotmai\.com$`), "@hotmail.com"},
	{regexp.MustCompile(`(?i)@hotmail\.con$`), "@hotmail.com"},
	{regexp.MustCompile(`(?i)@hotmail\.coms$`), "@hotmail.com"},
	{regexp.MustCompile(`(?i)\.coms$`), ".com"},
	{regexp.MustCompile(`(?i)\.con$`), ".com"},
	{regexp.MustCompile(`(?i)\.coom$`), ".com"},
	{regexp.MustCompile(`(?i)\.comm$`), ".com"},
	{regexp.MustCompile(`(?i)\.cm$`), ".com"},
	{regexp.MustCompile(`(?i)\.om$`), ".com"},
}

var emailShape = regexp.MustCompile(
	`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)

// Email validates an address, preferring a typo suggestion over a generic
// shape failure.
func Email(email string) Result {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return fail("Email address is required")
	}

	for _, tp := range emailTypos {
		if tp.re.MatchString(trimmed) {
			corrected := tp.re.ReplaceAllString(trimmed, tp.suggestion)
			return Result{
				Error:      `Did you mean "` + corrected + `"?`,
				Suggestion: corrected,
			}
		}
	}

	if !emailShape.MatchString(trimmed) {
		return fail("Please enter a valid email address")
	}
	if strings.Contains(trimmed, "..") {
		return fail("Email cannot contain consecutive dots")
	}
	if strings.HasPrefix(trimmed, ".") || strings.HasSuffix(trimmed, ".") {
		return fail("Email cannot start or end with a dot")
	}
	if strings.Contains(trimmed, "@.") || strings.Contains(trimmed, ".@") {
		return fail("Invalid email format")
	}

	parts := strings.Split(trimmed, "@")
	if len(parts) != 2 {
		return fail("Email must contain exactly one @ symbol")
	}
	domain := parts[1]
	if !strings.Contains(domain, ".") {
		return fail("Email domain must contain a dot (e.g., .com)")
	}
	if strings.HasSuffix(domain, ".") {
		return fail("Email domain cannot end with a dot")
	}
	segs := strings.Split(domain, ".")
	if tld := segs[len(segs)-1]; len(tld) < 2 {
		return fail("Email must have a valid domain extension")
	}
	return ok()
}
