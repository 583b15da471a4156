// internal/inputmask/date_test.go
//
// Unit-tests for the date compositor: clamping, leap years, completion
// signalling.

package inputmask

import "testing"

func TestDaysInMonth(t *testing.T) {
	cases := []struct {
		month, year string
		want        int
	}{
		{"01", "2024", 31},
		{"02", "2023", 28},
		{"02", "2024", 29}, // leap
		{"02", "2000", 29}, // century leap
		{"02", "1900", 28}, // century non-leap
		{"04", "2024", 30},
		{"", "2024", 31},   // missing part → widest range
		{"02", "", 31},
		{"xx", "2024", 31},
	}
	for _, c := range cases {
		if got := DaysInMonth(c.month, c.year); got != c.want {
			t.Errorf("DaysInMonth(%q, %q) = %d, want %d", c.month, c.year, got, c.want)
		}
	}
}

func TestDateParts_ClampOnMonthChange(t *testing.T) {
	var d DateParts
	d.SetYear("2023")
	d.SetDay("31")
	d.SetMonth("02")

	if d.Day() != "28" {
		t.Fatalf("day = %q, want 28", d.Day())
	}
	if d.Date() != "2023-02-28" {
		t.Fatalf("date = %q, want 2023-02-28", d.Date())
	}
}

func TestDateParts_ClampOnYearChange(t *testing.T) {
	var d DateParts
	d.SetYear("2024")
	d.SetMonth("02")
	d.SetDay("29")

	// Leaving the leap year invalidates Feb 29.
	d.SetYear("2023")
	if d.Day() != "28" {
		t.Fatalf("day = %q, want 28", d.Day())
	}
	if d.Date() != "2023-02-28" {
		t.Fatalf("date = %q", d.Date())
	}
}

func TestDateParts_ClampOnDayEntry(t *testing.T) {
	// Month and year already pin the range; an oversized day entered last
	// must clamp the same way a month change would.
	var fired []string
	d := DateParts{OnComplete: func(date string) { fired = append(fired, date) }}
	d.SetYear("2023")
	d.SetMonth("02")
	d.SetDay("31")

	if d.Day() != "28" {
		t.Fatalf("day = %q, want 28", d.Day())
	}
	if d.Date() != "2023-02-28" {
		t.Fatalf("date = %q, want 2023-02-28", d.Date())
	}
	if len(fired) != 1 || fired[0] != "2023-02-28" {
		t.Fatalf("OnComplete = %v, want [2023-02-28]", fired)
	}
}

func TestDateParts_IncompleteEmitsNothing(t *testing.T) {
	var fired []string
	d := DateParts{OnComplete: func(date string) { fired = append(fired, date) }}

	d.SetDay("15")
	d.SetMonth("06")
	if len(fired) != 0 {
		t.Fatalf("OnComplete fired before year set: %v", fired)
	}
	if d.Date() != "" {
		t.Fatalf("partial date = %q, want empty", d.Date())
	}

	d.SetYear("1990")
	if len(fired) != 1 || fired[0] != "1990-06-15" {
		t.Fatalf("OnComplete = %v, want [1990-06-15]", fired)
	}
}

func TestDateParts_PartFullSignals(t *testing.T) {
	var full []Part
	d := DateParts{OnPartFull: func(p Part) { full = append(full, p) }}

	d.SetDay("1") // one digit, not full
	d.SetDay("15")
	d.SetMonth("06")
	d.SetYear("199") // three digits, not full
	d.SetYear("1990")

	want := []Part{PartDay, PartMonth, PartYear}
	if len(full) != len(want) {
		t.Fatalf("signals = %v, want %v", full, want)
	}
	for i := range want {
		if full[i] != want[i] {
			t.Fatalf("signals = %v, want %v", full, want)
		}
	}
}

func TestDateParts_ZeroPadding(t *testing.T) {
	var d DateParts
	d.SetDay("5")
	d.SetMonth("6")
	d.SetYear("1990")
	if d.Date() != "1990-06-05" {
		t.Fatalf("date = %q, want 1990-06-05", d.Date())
	}
}
