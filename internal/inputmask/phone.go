// internal/inputmask/phone.go
//
// Phone-number display mask with caret preservation.
//
// Context
//   The intake form renders a running buffer of typed digits as
//   "(DDD) DDD - DDDD".  Re-formatting on every keystroke moves characters
//   around, so the caret has to be restored at the same LOGICAL digit
//   position, not the same byte offset.  The one tricky case is a backspace
//   that lands on a mask character (parenthesis, space, or dash): the user
//   meant to delete the digit immediately before it, not nothing.
//
// Workflow
//   •  Format        – digits → display mask at the 0 / ≤3 / ≤6 / >6
//      breakpoints.
//   •  DigitsBefore  – logical caret position inside a display string.
//   •  CaretAfter    – inverse: display index just past the nth digit.
//   •  Apply         – one edit event in, new display string and caret out.
//
//------------------------------------------------------------------------------

package inputmask

import "strings"

// maxPhoneDigits caps the buffer at a full NANP number.
const maxPhoneDigits = 10

// Digits strips non-digits from s and caps the result at ten digits.
// The cap is a display rule; validate.Digits is the uncapped variant for
// checks that must see the full input.
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			if b.Len() == maxPhoneDigits {
				break
			}
		}
	}
	return b.String()
}

// Format renders the canonical display mask for a digit buffer.
//
//	""           →  ""
//	"212"        →  "(212"
//	"212555"     →  "(212) 555"
//	"2125550100" →  "(212) 555 - 0100"
func Format(digits string) string {
	d := Digits(digits)
	switch {
	case len(d) == 0:
		return ""
	case len(d) <= 3:
		return "(" + d
	case len(d) <= 6:
		return "(" + d[:3] + ") " + d[3:]
	default:
		return "(" + d[:3] + ") " + d[3:6] + " - " + d[6:]
	}
}

// DigitsBefore counts the digits strictly before byte position pos in value.
func DigitsBefore(value string, pos int) int {
	if pos > len(value) {
		pos = len(value)
	}
	n := 0
	for i := 0; i < pos; i++ {
		if value[i] >= '0' && value[i] <= '9' {
			n++
		}
	}
	return n
}

// CaretAfter returns the index just past the nth digit of formatted, or the
// end of the string when fewer digits exist.  n == 0 points at the start.
func CaretAfter(formatted string, n int) int {
	if n <= 0 {
		return 0
	}
	count := 0
	for i := 0; i < len(formatted); i++ {
		if formatted[i] >= '0' && formatted[i] <= '9' {
			count++
			if count == n {
				return i + 1
			}
		}
	}
	return len(formatted)
}

// isMaskChar reports whether c is formatting rather than data.
func isMaskChar(c byte) bool {
	return c == '(' || c == ')' || c == ' ' || c == '-'
}

// Change is one edit event against the phone input: the display string
// before the edit, the raw value after it, the caret position reported by
// the input (bytes, relative to Old), and whether the edit was a backspace.
type Change struct {
	Old       string
	New       string
	Caret     int
	Backspace bool
}

// Apply re-formats after an edit and computes where the caret belongs.
func Apply(c Change) (display string, caret int) {
	oldDigits := Digits(c.Old)
	newDigits := Digits(c.New)
	before := DigitsBefore(c.Old, c.Caret)

	if c.Backspace {
		// Backspace onto a mask character removes the digit in front of it;
		// digits after the caret stay put.
		if c.Caret > 0 && c.Caret <= len(c.Old) && isMaskChar(c.Old[c.Caret-1]) {
			keep := before - 1
			if keep < 0 {
				keep = 0
			}
			remaining := oldDigits[:keep]
			if before <= len(oldDigits) {
				remaining += oldDigits[before:]
			}
			display = Format(remaining)
			return display, CaretAfter(display, keep)
		}
		display = Format(newDigits)
		target := before
		if target > len(newDigits) {
			target = len(newDigits)
		}
		return display, CaretAfter(display, target)
	}

	display = Format(newDigits)
	var target int
	switch {
	case len(newDigits) > len(oldDigits):
		target = before + 1
	default:
		// Forward delete, paste, or no-op keeps the logical position.
		target = before
		if target > len(newDigits) {
			target = len(newDigits)
		}
	}
	return display, CaretAfter(display, target)
}
