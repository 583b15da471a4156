// internal/inputmask/date.go
//
// Date-of-birth compositor: three independent parts, one canonical date.
//
// Context
//   The form collects day, month, and year in separate inputs.  The valid
//   day range depends on the other two parts (including leap years), so a
//   month or year change can strand an already-entered day; when that
//   happens the day is clamped DOWN to the month's last valid day rather
//   than erroring.  The combined YYYY-MM-DD string exists only while all
//   three parts are populated.
//
//   OnComplete fires with the combined date after any change that leaves
//   all parts populated.  OnPartFull fires when a part reaches its maximum
//   digit length, so the UI can auto-advance focus to the next input.
//
//------------------------------------------------------------------------------

package inputmask

import (
	"fmt"
	"strconv"
	"time"
)

// Part identifies one of the three date inputs.
type Part int

const (
	PartDay Part = iota
	PartMonth
	PartYear
)

func (p Part) String() string {
	switch p {
	case PartDay:
		return "day"
	case PartMonth:
		return "month"
	default:
		return "year"
	}
}

// maxLen is the digit capacity of each part.
func (p Part) maxLen() int {
	if p == PartYear {
		return 4
	}
	return 2
}

// DateParts holds the in-progress day/month/year triple.  The zero value is
// ready to use; callbacks are optional.
type DateParts struct {
	day, month, year string

	// OnComplete receives the combined canonical date whenever a change
	// leaves all three parts populated.
	OnComplete func(date string)
	// OnPartFull receives the part that just reached its maximum length.
	OnPartFull func(p Part)
}

// DaysInMonth returns the number of days in month/year, or 31 when either
// part is missing or unparseable (the widest range, matching an unrestricted
// day dropdown).
func DaysInMonth(month, year string) int {
	m, errM := strconv.Atoi(month)
	y, errY := strconv.Atoi(year)
	if month == "" || year == "" || errM != nil || errY != nil || m < 1 || m > 12 {
		return 31
	}
	// Day 0 of the following month is the last day of this one.
	return time.Date(y, time.Month(m)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// SetDay stores a new day value, clamps it to the current month's range,
// and recombines.
func (d *DateParts) SetDay(day string) {
	d.day = day
	d.clampDay()
	d.signalFull(PartDay, day)
	d.emit()
}

// SetMonth stores a new month value, clamps the held day to the month's
// last valid day when needed, and recombines.
func (d *DateParts) SetMonth(month string) {
	d.month = month
	d.clampDay()
	d.signalFull(PartMonth, month)
	d.emit()
}

// SetYear stores a new year value, re-clamps the day (leap years), and
// recombines.
func (d *DateParts) SetYear(year string) {
	d.year = year
	d.clampDay()
	d.signalFull(PartYear, year)
	d.emit()
}

// Day, Month, and Year expose the current raw parts.
func (d *DateParts) Day() string   { return d.day }
func (d *DateParts) Month() string { return d.month }
func (d *DateParts) Year() string  { return d.year }

// Date returns the canonical YYYY-MM-DD string, or "" until every part is
// populated and numeric.
func (d *DateParts) Date() string {
	if d.day == "" || d.month == "" || d.year == "" {
		return ""
	}
	day, err1 := strconv.Atoi(d.day)
	mon, err2 := strconv.Atoi(d.month)
	yr, err3 := strconv.Atoi(d.year)
	if err1 != nil || err2 != nil || err3 != nil {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", yr, mon, day)
}

// clampDay pulls the day back inside the current month's range.
func (d *DateParts) clampDay() {
	if d.day == "" {
		return
	}
	day, err := strconv.Atoi(d.day)
	if err != nil {
		return
	}
	if max := DaysInMonth(d.month, d.year); day > max {
		d.day = fmt.Sprintf("%02d", max)
	}
}

func (d *DateParts) signalFull(p Part, v string) {
	if d.OnPartFull != nil && len(v) == p.maxLen() {
		d.OnPartFull(p)
	}
}

func (d *DateParts) emit() {
	if d.OnComplete == nil {
		return
	}
	if date := d.Date(); date != "" {
		d.OnComplete(date)
	}
}
