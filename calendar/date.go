package calendar

import (
	"fmt"
	"strings"

	"github.com/MarcoKoban/lineage/errors"
)

// Date is a possibly partial date tagged with its calendar.
//
// Invariants:
//   - Absent components are tracked explicitly; a present zero year is
//     recorded and makes the date invalid rather than incomplete.
//   - Completeness (all three components present) and validity (every
//     present component in range) are independent.
//   - Date is immutable; the With* methods return copies.
type Date struct {
	year, month, day          int
	hasYear, hasMonth, hasDay bool
	cal                       Calendar
}

// NewDate returns a complete date. Range checking happens on conversion,
// so out-of-range components are kept as given.
func NewDate(cal Calendar, year, month, day int) Date {
	return Date{
		year: year, month: month, day: day,
		hasYear: true, hasMonth: true, hasDay: true,
		cal: cal,
	}
}

// NewYear returns a date carrying only a year.
func NewYear(cal Calendar, year int) Date {
	return Date{year: year, hasYear: true, cal: cal}
}

// NewYearMonth returns a date carrying a year and a month.
func NewYearMonth(cal Calendar, year, month int) Date {
	return Date{year: year, month: month, hasYear: true, hasMonth: true, cal: cal}
}

// Partial builds a date from optional components; nil means absent.
func Partial(cal Calendar, year, month, day *int) Date {
	d := Date{cal: cal}
	if year != nil {
		d.year, d.hasYear = *year, true
	}
	if month != nil {
		d.month, d.hasMonth = *month, true
	}
	if day != nil {
		d.day, d.hasDay = *day, true
	}
	return d
}

func (d Date) Calendar() Calendar { return d.cal }

// Year returns the year component and whether it is present.
func (d Date) Year() (int, bool) { return d.year, d.hasYear }

// Month returns the month component and whether it is present.
func (d Date) Month() (int, bool) { return d.month, d.hasMonth }

// Day returns the day component and whether it is present.
func (d Date) Day() (int, bool) { return d.day, d.hasDay }

// WithCalendar re-tags the date without converting its components.
func (d Date) WithCalendar(cal Calendar) Date {
	d.cal = cal
	return d
}

// IsComplete reports whether year, month and day are all present.
func (d Date) IsComplete() bool {
	return d.hasYear && d.hasMonth && d.hasDay
}

// IsValid reports whether every present component is in range:
// year > 0, month in 1-12, day in 1-31. Absent components are not checked.
func (d Date) IsValid() bool {
	if d.hasYear && d.year <= 0 {
		return false
	}
	if d.hasMonth && (d.month < 1 || d.month > 12) {
		return false
	}
	if d.hasDay && (d.day < 1 || d.day > 31) {
		return false
	}
	return true
}

// IsZero reports whether no component is present.
func (d Date) IsZero() bool {
	return !d.hasYear && !d.hasMonth && !d.hasDay
}

// Equal compares components, presence and calendar.
func (d Date) Equal(o Date) bool {
	return d == o
}

// String renders YYYY-MM-DD up to the last present component, with "??"
// standing in for absent ones, and a calendar suffix for non-Gregorian dates.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}

	var b strings.Builder
	if d.hasYear {
		fmt.Fprintf(&b, "%04d", d.year)
	} else {
		b.WriteString("????")
	}
	if d.hasMonth || d.hasDay {
		if d.hasMonth {
			fmt.Fprintf(&b, "-%02d", d.month)
		} else {
			b.WriteString("-??")
		}
	}
	if d.hasDay {
		fmt.Fprintf(&b, "-%02d", d.day)
	}
	if d.cal != Gregorian {
		fmt.Fprintf(&b, " (%s)", d.cal)
	}
	return b.String()
}

// Compare orders two complete dates by their serial day number, regardless
// of calendar. It returns -1, 0 or +1.
func Compare(a, b Date) (int, error) {
	if !a.cal.IsKnown() || !b.cal.IsKnown() {
		return 0, errors.NewInvalidRequestError("cannot compare dates in unknown calendars")
	}
	sa, err := a.cal.System().ToSDN(a)
	if err != nil {
		return 0, errors.Wrapf(err, "cannot compare %s", a)
	}
	sb, err := b.cal.System().ToSDN(b)
	if err != nil {
		return 0, errors.Wrapf(err, "cannot compare %s", b)
	}
	switch {
	case sa < sb:
		return -1, nil
	case sa > sb:
		return 1, nil
	default:
		return 0, nil
	}
}
