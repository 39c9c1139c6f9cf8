// Package calendar models partial dates in the four calendars found in
// genealogical sources and converts between them through Serial Day Numbers
// (SDN, the Julian Day count at noon).
//
// Dates are values. A component that was never recorded is absent, which is
// different from a component that was recorded with an out-of-range value:
//
//	d := calendar.NewDate(calendar.Gregorian, 1850, 3, 12)
//	d.IsComplete() // true
//	sdn, err := calendar.Gregorian.System().ToSDN(d)
//
// Conversions use simplified linear arithmetic. The French Republican and
// Hebrew systems are approximations, see French and Hebrew.
package calendar

import (
	"strings"

	"github.com/MarcoKoban/lineage/errors"
)

// Calendar identifies the calendar a date was recorded in.
type Calendar int

const (
	Gregorian Calendar = iota
	Julian
	// French is the French Republican calendar (1792-1805), modelled as
	// twelve months of thirty days without complementary days.
	French
	// Hebrew is approximated as the Gregorian calendar shifted by 3761 years.
	Hebrew
)

// Calendars lists every supported calendar in declaration order.
var Calendars = []Calendar{Gregorian, Julian, French, Hebrew}

var calendarNames = map[Calendar]string{
	Gregorian: "gregorian",
	Julian:    "julian",
	French:    "french",
	Hebrew:    "hebrew",
}

var calendarAliases = map[string]Calendar{
	"gregorian":         Gregorian,
	"g":                 Gregorian,
	"julian":            Julian,
	"j":                 Julian,
	"french":            French,
	"french_republican": French,
	"republican":        French,
	"f":                 French,
	"hebrew":            Hebrew,
	"jewish":            Hebrew,
	"h":                 Hebrew,
}

func (c Calendar) String() string {
	if name, ok := calendarNames[c]; ok {
		return name
	}
	return "unknown"
}

// IsKnown reports whether c is one of the four supported calendars.
func (c Calendar) IsKnown() bool {
	_, ok := calendarNames[c]
	return ok
}

// ParseCalendar resolves a calendar name (case-insensitive, short aliases allowed).
func ParseCalendar(name string) (Calendar, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if c, ok := calendarAliases[key]; ok {
		return c, nil
	}
	return Gregorian, errors.WithHint(
		errors.NewInvalidRequestError("unknown calendar %q", name),
		"supported calendars: gregorian, julian, french, hebrew",
	)
}

// MarshalText implements encoding.TextMarshaler so calendars render by name
// in JSON, YAML and TOML output.
func (c Calendar) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Calendar) UnmarshalText(text []byte) error {
	parsed, err := ParseCalendar(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
