// internal/inputmask/phone_prop_test.go
//
// Property-based tests for the phone mask.
//
// Context
//   The caret math only works if formatting is a fixed point: extracting
//   the digits of an already-formatted string and formatting them again
//   must reproduce the identical mask for every digit count 0–10.

package inputmask

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestFormatProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	digitStrings := gen.SliceOf(gen.RuneRange('0', '9')).Map(func(rs []rune) string {
		if len(rs) > 10 {
			rs = rs[:10]
		}
		return string(rs)
	})

	properties.Property("formatting is idempotent for any digit count 0-10", prop.ForAll(
		func(digits string) bool {
			once := Format(digits)
			return Format(Digits(once)) == once
		},
		digitStrings,
	))

	properties.Property("formatting never changes the digit sequence", prop.ForAll(
		func(digits string) bool {
			return Digits(Format(digits)) == Digits(digits)
		},
		digitStrings,
	))

	properties.Property("caret round-trips through CaretAfter/DigitsBefore", prop.ForAll(
		func(digits string) bool {
			f := Format(digits)
			for n := 0; n <= len(Digits(digits)); n++ {
				if DigitsBefore(f, CaretAfter(f, n)) != n {
					return false
				}
			}
			return true
		},
		digitStrings,
	))

	properties.TestingRun(t)
}
