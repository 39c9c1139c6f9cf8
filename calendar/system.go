package calendar

import (
	"github.com/MarcoKoban/lineage/errors"
	"github.com/MarcoKoban/lineage/internal/util"
)

// System converts dates of one calendar to and from serial day numbers.
//
// The interface is sealed: the four implementations live in this package and
// are reached through Calendar.System.
type System interface {
	Calendar() Calendar

	// ToSDN interprets the date's components in this calendar. It fails with
	// errors.ErrIncompleteDate when a component is absent and with
	// errors.ErrInvalidDate when a component is out of range, including a day
	// beyond the month's length.
	ToSDN(d Date) (int, error)

	// FromSDN never fails. SDNs before the calendar's epoch produce a date
	// with a non-positive year, which IsValid rejects.
	FromSDN(sdn int) Date

	sealed()
}

// System returns the conversion arithmetic for c.
func (c Calendar) System() System {
	switch c {
	case Gregorian:
		return gregorian
	case Julian:
		return julian
	case French:
		return french
	case Hebrew:
		return hebrew
	default:
		panic(errors.AssertionFailedf("unknown calendar %d", int(c)))
	}
}

// Epochs: SDN of day 1 month 1 year 1 in each calendar.
const (
	GregorianEpoch = 1721426
	JulianEpoch    = 1721424
	// FrenchEpoch is 1 Vendémiaire I, i.e. 22 September 1792 Gregorian.
	FrenchEpoch = 2375840
	// HebrewYearOffset is subtracted from a Hebrew year to reach the
	// Gregorian year used for its arithmetic.
	HebrewYearOffset = 3761
	// FrenchYearOffset is added to a French year to get the Gregorian year
	// in which it began.
	FrenchYearOffset = 1791
)

const frenchMonthDays = 30

var (
	gregorian = solarSystem{cal: Gregorian, epoch: GregorianEpoch, leap: gregorianLeap, daysBefore: gregorianDaysBefore}
	julian    = solarSystem{cal: Julian, epoch: JulianEpoch, leap: julianLeap, daysBefore: julianDaysBefore}
	french    = frenchSystem{}
	hebrew    = hebrewSystem{}
)

var cumulativeDays = [13]int{0, 0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}
var monthDays = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func gregorianLeap(y int) bool { return y%4 == 0 && (y%100 != 0 || y%400 == 0) }
func julianLeap(y int) bool    { return util.FloorMod(y, 4) == 0 }

func gregorianDaysBefore(y int) int {
	p := y - 1
	return p*365 + util.FloorDiv(p, 4) - util.FloorDiv(p, 100) + util.FloorDiv(p, 400)
}

func julianDaysBefore(y int) int {
	p := y - 1
	return p*365 + util.FloorDiv(p, 4)
}

// checkDate applies the shared completeness and range rules.
func checkDate(d Date) error {
	if !d.IsComplete() {
		return errors.Wrapf(errors.ErrIncompleteDate, "%s date %q", d.cal, d)
	}
	if !d.IsValid() {
		return errors.Wrapf(errors.ErrInvalidDate, "%s date %q", d.cal, d)
	}
	return nil
}

// solarSystem covers Gregorian and Julian, which differ only in leap rule
// and epoch.
type solarSystem struct {
	cal        Calendar
	epoch      int
	leap       func(int) bool
	daysBefore func(int) int
}

func (s solarSystem) sealed() {}

func (s solarSystem) Calendar() Calendar { return s.cal }

func (s solarSystem) monthLength(y, m int) int {
	if m == 2 && s.leap(y) {
		return 29
	}
	return monthDays[m]
}

func (s solarSystem) daysBeforeMonth(y, m int) int {
	n := cumulativeDays[m]
	if m > 2 && s.leap(y) {
		n++
	}
	return n
}

func (s solarSystem) ToSDN(d Date) (int, error) {
	if err := checkDate(d); err != nil {
		return 0, err
	}
	if d.day > s.monthLength(d.year, d.month) {
		return 0, errors.Wrapf(errors.ErrInvalidDate, "%s month %d of %d has %d days",
			s.cal, d.month, d.year, s.monthLength(d.year, d.month))
	}
	return s.epoch + s.daysBefore(d.year) + s.daysBeforeMonth(d.year, d.month) + d.day - 1, nil
}

func (s solarSystem) FromSDN(sdn int) Date {
	y := int(float64(sdn-s.epoch)/365.25) + 1
	for s.epoch+s.daysBefore(y) > sdn {
		y--
	}
	for s.epoch+s.daysBefore(y+1) <= sdn {
		y++
	}

	doy := sdn - s.epoch - s.daysBefore(y)
	m := 12
	for m > 1 && s.daysBeforeMonth(y, m) > doy {
		m--
	}
	return NewDate(s.cal, y, m, doy-s.daysBeforeMonth(y, m)+1)
}

// frenchSystem: SDN = FrenchEpoch + (year-1)*360 + (month-1)*30 + (day-1).
type frenchSystem struct{}

func (frenchSystem) sealed() {}

func (frenchSystem) Calendar() Calendar { return French }

func (frenchSystem) ToSDN(d Date) (int, error) {
	if err := checkDate(d); err != nil {
		return 0, err
	}
	if d.day > frenchMonthDays {
		return 0, errors.Wrapf(errors.ErrInvalidDate, "french months have %d days, got day %d", frenchMonthDays, d.day)
	}
	return FrenchEpoch + (d.year-1)*360 + (d.month-1)*frenchMonthDays + d.day - 1, nil
}

func (frenchSystem) FromSDN(sdn int) Date {
	off := sdn - FrenchEpoch
	y := util.FloorDiv(off, 360) + 1
	rem := util.FloorMod(off, 360)
	return NewDate(French, y, rem/frenchMonthDays+1, rem%frenchMonthDays+1)
}

// hebrewSystem runs Gregorian arithmetic on year-3761.
type hebrewSystem struct{}

func (hebrewSystem) sealed() {}

func (hebrewSystem) Calendar() Calendar { return Hebrew }

func (hebrewSystem) ToSDN(d Date) (int, error) {
	if err := checkDate(d); err != nil {
		return 0, err
	}
	if d.year <= HebrewYearOffset {
		return 0, errors.Wrapf(errors.ErrInvalidDate, "hebrew year %d precedes the supported range", d.year)
	}
	return gregorian.ToSDN(NewDate(Gregorian, d.year-HebrewYearOffset, d.month, d.day))
}

func (hebrewSystem) FromSDN(sdn int) Date {
	g := gregorian.FromSDN(sdn)
	return NewDate(Hebrew, g.year+HebrewYearOffset, g.month, g.day)
}
