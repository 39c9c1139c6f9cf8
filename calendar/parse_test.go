package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MarcoKoban/lineage/internal/util"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   Date
		failed []Field
		extra  []string
	}{
		{name: "year", input: "1850", want: NewYear(Gregorian, 1850)},
		{name: "year month", input: "1850-03", want: NewYearMonth(Gregorian, 1850, 3)},
		{name: "full dash", input: "1850-03-12", want: NewDate(Gregorian, 1850, 3, 12)},
		{name: "full slash", input: "1850/03/12", want: NewDate(Gregorian, 1850, 3, 12)},
		{name: "full dot", input: "1850.3.12", want: NewDate(Gregorian, 1850, 3, 12)},
		{name: "surrounding space", input: "  1850-03-12 ", want: NewDate(Gregorian, 1850, 3, 12)},
		{name: "out of range is kept", input: "1850-13-40", want: NewDate(Gregorian, 1850, 13, 40)},
		{
			name:   "bad month",
			input:  "1850-ab-12",
			want:   Partial(Gregorian, util.Ptr(1850), nil, util.Ptr(12)),
			failed: []Field{FieldMonth},
		},
		{
			name:   "bad year and day",
			input:  "abt/03/x",
			want:   Partial(Gregorian, nil, util.Ptr(3), nil),
			failed: []Field{FieldYear, FieldDay},
		},
		{name: "no numbers", input: "unknown", want: Date{}, failed: []Field{FieldYear}},
		{name: "empty", input: "", want: Date{}},
		{name: "blank", input: "   ", want: Date{}},
		{
			name:  "trailing components",
			input: "1850-03-12-99",
			want:  NewDate(Gregorian, 1850, 3, 12),
			extra: []string{"99"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, report := ParseDate(tt.input, Gregorian)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.failed, report.Failed)
			assert.Equal(t, tt.extra, report.Extra)
			assert.Equal(t, len(tt.failed) == 0 && len(tt.extra) == 0, report.OK())
		})
	}
}

func TestParseDateKeepsCalendar(t *testing.T) {
	d, report := ParseDate("5610-07", Hebrew)
	assert.True(t, report.OK())
	assert.Equal(t, NewYearMonth(Hebrew, 5610, 7), d)

	empty, _ := ParseDate("", French)
	assert.True(t, empty.IsZero())
	assert.Equal(t, French, empty.Calendar())
}

func TestParseComponents(t *testing.T) {
	d, report := ParseComponents(Julian, "1500", "", "3")
	assert.True(t, report.OK())
	assert.Equal(t, Partial(Julian, util.Ptr(1500), nil, util.Ptr(3)), d)

	d, report = ParseComponents(Gregorian, "1850", "mar", "12")
	assert.Equal(t, []Field{FieldMonth}, report.Failed)
	assert.Equal(t, Partial(Gregorian, util.Ptr(1850), nil, util.Ptr(12)), d)
}

func TestParseReportString(t *testing.T) {
	assert.Equal(t, "ok", ParseReport{}.String())
	assert.Equal(t, "unparsed year, day", ParseReport{Failed: []Field{FieldYear, FieldDay}}.String())
	assert.Equal(t, "unparsed month; ignored 7", ParseReport{Failed: []Field{FieldMonth}, Extra: []string{"7"}}.String())
}

func TestExtractYear(t *testing.T) {
	tests := []struct {
		text string
		want int
		ok   bool
	}{
		{"1850", 1850, true},
		{"abt. 1850", 1850, true},
		{"born 1792-09-22", 1792, true},
		{"between 1850 and 1860", 1850, true},
		{"c1066", 1066, true},
		{"2099", 2099, true},
		{"2100", 0, false},
		{"0999", 0, false},
		{"12345", 0, false},
		{"ref 12345, married 1901", 1901, true},
		{"", 0, false},
		{"unknown", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := ExtractYear(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
