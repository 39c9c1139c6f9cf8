package calendar

import (
	"regexp"
	"strconv"
	"strings"
)

// Field names one component of a date.
type Field int

const (
	FieldYear Field = iota
	FieldMonth
	FieldDay
)

func (f Field) String() string {
	switch f {
	case FieldYear:
		return "year"
	case FieldMonth:
		return "month"
	case FieldDay:
		return "day"
	default:
		return "unknown"
	}
}

// MarshalText renders the field by name.
func (f Field) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// ParseReport lists what a lenient parse could not use.
type ParseReport struct {
	// Failed holds components that were present but not numeric.
	Failed []Field `json:"failed,omitempty"`
	// Extra holds trailing components beyond the day, which are ignored.
	Extra []string `json:"extra,omitempty"`
}

// OK reports whether every component of the input was used.
func (r ParseReport) OK() bool {
	return len(r.Failed) == 0 && len(r.Extra) == 0
}

func (r ParseReport) String() string {
	if r.OK() {
		return "ok"
	}
	var parts []string
	for _, f := range r.Failed {
		parts = append(parts, f.String())
	}
	s := ""
	if len(parts) > 0 {
		s = "unparsed " + strings.Join(parts, ", ")
	}
	if len(r.Extra) > 0 {
		if s != "" {
			s += "; "
		}
		s += "ignored " + strings.Join(r.Extra, ", ")
	}
	return s
}

var dateSeparators = regexp.MustCompile(`[-/.]`)

// ParseDate reads YYYY, YYYY-MM or YYYY-MM-DD ("/" and "." also separate).
// It never fails: non-numeric components become absent and are listed in
// the report. Empty input yields a zero date and an empty report.
func ParseDate(s string, cal Calendar) (Date, ParseReport) {
	var report ParseReport
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{cal: cal}, report
	}

	parts := dateSeparators.Split(s, -1)
	if len(parts) > 3 {
		report.Extra = append(report.Extra, parts[3:]...)
		parts = parts[:3]
	}

	var comps [3]*int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			report.Failed = append(report.Failed, Field(i))
			continue
		}
		comps[i] = &n
	}

	return Partial(cal, comps[FieldYear], comps[FieldMonth], comps[FieldDay]), report
}

// ParseComponents is ParseDate for year, month and day supplied separately.
// Blank components are absent without being reported.
func ParseComponents(cal Calendar, year, month, day string) (Date, ParseReport) {
	var report ParseReport
	var comps [3]*int
	for i, p := range []string{year, month, day} {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			report.Failed = append(report.Failed, Field(i))
			continue
		}
		comps[i] = &n
	}
	return Partial(cal, comps[FieldYear], comps[FieldMonth], comps[FieldDay]), report
}

var yearPattern = regexp.MustCompile(`(?:^|\D)(1\d{3}|20\d{2})(?:\D|$)`)

// ExtractYear finds the first standalone four-digit year between 1000 and
// 2099 in free text ("abt. 1850", "before 1792-09"). Longer digit runs are
// not years.
func ExtractYear(text string) (int, bool) {
	m := yearPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	y, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return y, true
}
