// Package event holds dated, placed facts about a person or a family.
package event

import (
	"strings"

	"github.com/MarcoKoban/lineage/calendar"
	"github.com/MarcoKoban/lineage/place"
)

// Kind names what happened.
type Kind string

// Person events.
const (
	Birth   Kind = "birth"
	Baptism Kind = "baptism"
	Death   Kind = "death"
	Burial  Kind = "burial"
)

// Family events.
const (
	Marriage         Kind = "marriage"
	Engagement       Kind = "engagement"
	MarriageBann     Kind = "marriage_bann"
	MarriageContract Kind = "marriage_contract"
	MarriageLicense  Kind = "marriage_license"
	Pacs             Kind = "pacs"
	Residence        Kind = "residence"
	Divorce          Kind = "divorce"
	Separation       Kind = "separation"
)

// IsFamily reports whether k is an event of a union rather than of a person.
func (k Kind) IsFamily() bool {
	switch k {
	case Marriage, Engagement, MarriageBann, MarriageContract, MarriageLicense,
		Pacs, Residence, Divorce, Separation:
		return true
	default:
		return false
	}
}

// Event is an immutable value. The With* methods return modified copies.
//
// Invariants:
//   - An event carries at most one date, kept together with the raw text
//     it was read from.
//   - IsEmpty uses exact emptiness; whitespace-only text is data.
type Event struct {
	kind     Kind
	date     calendar.Date
	hasDate  bool
	dateText string
	place    place.Place
	note     string
	source   string
}

// New returns an empty event of the given kind.
func New(kind Kind) Event {
	return Event{kind: kind}
}

func (e Event) Kind() Kind { return e.kind }

// Date returns the parsed date, if any component could be read.
func (e Event) Date() (calendar.Date, bool) { return e.date, e.hasDate }

// DateText returns the raw date text as supplied.
func (e Event) DateText() string { return e.dateText }

func (e Event) Place() place.Place { return e.place }
func (e Event) Note() string       { return e.note }
func (e Event) Source() string     { return e.source }

// WithDate sets an already-built date. A zero date clears it.
func (e Event) WithDate(d calendar.Date) Event {
	e.date = d
	e.hasDate = !d.IsZero()
	e.dateText = d.String()
	return e
}

// WithDateFromString parses s leniently in the given calendar. Components
// that are not numbers are dropped and listed in the report; the raw text
// is kept either way.
func (e Event) WithDateFromString(s string, cal calendar.Calendar) (Event, calendar.ParseReport) {
	d, report := calendar.ParseDate(s, cal)
	e.date = d
	e.hasDate = !d.IsZero()
	e.dateText = s
	return e, report
}

// WithDateFromComponents is WithDateFromString for separately supplied
// year, month and day. Blank components are absent.
func (e Event) WithDateFromComponents(cal calendar.Calendar, year, month, day string) (Event, calendar.ParseReport) {
	d, report := calendar.ParseComponents(cal, year, month, day)
	e.date = d
	e.hasDate = !d.IsZero()

	var parts []string
	for _, p := range []string{year, month, day} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	e.dateText = strings.Join(parts, "-")
	return e, report
}

// WithResolvedDate replaces the parsed date and keeps the raw text, for a
// date that was re-read in another calendar after parsing.
func (e Event) WithResolvedDate(d calendar.Date) Event {
	e.date = d
	e.hasDate = !d.IsZero()
	return e
}

// WithoutDate clears both the parsed date and its raw text.
func (e Event) WithoutDate() Event {
	e.date = calendar.Date{}
	e.hasDate = false
	e.dateText = ""
	return e
}

func (e Event) WithPlace(p place.Place) Event {
	e.place = p
	return e
}

func (e Event) WithNote(note string) Event {
	e.note = note
	return e
}

func (e Event) WithSource(source string) Event {
	e.source = source
	return e
}

// Year returns the year component of the date as recorded.
func (e Event) Year() (int, bool) {
	if !e.hasDate {
		return 0, false
	}
	return e.date.Year()
}

// GregorianYear returns the year on the Gregorian scale. When no date
// component could be parsed it falls back to the first plausible year in
// the raw text ("abt. 1850").
func (e Event) GregorianYear() (int, bool) {
	if e.hasDate {
		if y, ok := calendar.GregorianYear(e.date); ok {
			return y, true
		}
	}
	return calendar.ExtractYear(e.dateText)
}

// IsEmpty reports whether the event records nothing: no date (parsed or
// raw), no place, no note and no source.
func (e Event) IsEmpty() bool {
	return !e.hasDate && e.dateText == "" && e.place.IsZero() && e.note == "" && e.source == ""
}
