package calendar

import (
	"go.uber.org/zap"

	"github.com/MarcoKoban/lineage/errors"
)

// DetectRules holds the year thresholds used to guess the calendar of a
// date recorded without an explicit calendar tag.
type DetectRules struct {
	HebrewMinYear    int // years above this are Hebrew
	FrenchFirstYear  int // first year of the French Republican window
	FrenchLastYear   int // last year of the French Republican window
	JulianBeforeYear int // years below this are Julian
}

// DefaultDetectRules returns the usual thresholds: >5000 Hebrew,
// 1792-1805 French, <1582 Julian.
func DefaultDetectRules() DetectRules {
	return DetectRules{
		HebrewMinYear:    5000,
		FrenchFirstYear:  1792,
		FrenchLastYear:   1805,
		JulianBeforeYear: 1582,
	}
}

// Converter moves dates between calendars through serial day numbers.
type Converter struct {
	rules  DetectRules
	logger *zap.SugaredLogger
}

// ConverterOption configures a Converter.
type ConverterOption func(*Converter)

// WithDetectRules overrides the calendar detection thresholds.
func WithDetectRules(r DetectRules) ConverterOption {
	return func(c *Converter) { c.rules = r }
}

// WithLogger attaches a logger for conversion tracing.
func WithLogger(l *zap.SugaredLogger) ConverterOption {
	return func(c *Converter) { c.logger = l }
}

// NewConverter creates a converter with default detection rules.
func NewConverter(opts ...ConverterOption) *Converter {
	c := &Converter{
		rules:  DefaultDetectRules(),
		logger: zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Rules returns the detection thresholds in use.
func (c *Converter) Rules() DetectRules { return c.rules }

// Convert re-expresses d in the target calendar. A date already in the
// target calendar is returned unchanged, even when incomplete.
func (c *Converter) Convert(d Date, target Calendar) (Date, error) {
	if d.cal == target {
		return d, nil
	}
	if !d.cal.IsKnown() || !target.IsKnown() {
		return Date{}, errors.NewInvalidRequestError("cannot convert between calendars %d and %d", int(d.cal), int(target))
	}

	sdn, err := d.cal.System().ToSDN(d)
	if err != nil {
		return Date{}, errors.Wrapf(err, "convert %s to %s", d, target)
	}
	out := target.System().FromSDN(sdn)
	c.logger.Debugw("converted date", "from", d.String(), "to", out.String(), "sdn", sdn)
	return out, nil
}

// DetectCalendar guesses the calendar a date was written in. An explicit
// non-Gregorian tag always wins; otherwise the year decides. A date without
// a year keeps its own tag.
func (c *Converter) DetectCalendar(d Date) Calendar {
	if d.cal != Gregorian {
		return d.cal
	}
	y, ok := d.Year()
	if !ok {
		return d.cal
	}
	switch {
	case y > c.rules.HebrewMinYear:
		return Hebrew
	case y >= c.rules.FrenchFirstYear && y <= c.rules.FrenchLastYear:
		return French
	case y < c.rules.JulianBeforeYear:
		return Julian
	default:
		return Gregorian
	}
}

// Interpret resolves a date that was read as Gregorian because its record
// carried no calendar tag. Hebrew and Julian years are components of a date
// in that calendar, so the date is re-tagged. Years in the French Republican
// window are Gregorian years of that period: a complete date is converted to
// its French equivalent and any other date stays Gregorian. A date that
// already carries another tag is returned as is.
func (c *Converter) Interpret(d Date) Date {
	detected := c.DetectCalendar(d)
	switch {
	case detected == d.cal:
		return d
	case detected == French:
		if !d.IsComplete() {
			return d
		}
		out, err := c.Convert(d, French)
		if err != nil {
			c.logger.Debugw("kept gregorian date", "date", d.String(), "error", err)
			return d
		}
		return out
	default:
		return d.WithCalendar(detected)
	}
}

// GregorianYear normalises the year of d to the Gregorian scale so years
// from different calendars can be compared. Complete dates go through SDN
// conversion; year-only Hebrew and French dates use the fixed offsets.
// Julian years are taken as-is when the date cannot be converted.
func GregorianYear(d Date) (int, bool) {
	y, ok := d.Year()
	if !ok {
		return 0, false
	}
	if d.cal == Gregorian || !d.cal.IsKnown() {
		return y, true
	}

	if sdn, err := d.cal.System().ToSDN(d); err == nil {
		return gregorian.FromSDN(sdn).year, true
	}

	switch d.cal {
	case Hebrew:
		return y - HebrewYearOffset, true
	case French:
		return y + FrenchYearOffset, true
	default:
		return y, true
	}
}
