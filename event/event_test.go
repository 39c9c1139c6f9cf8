package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarcoKoban/lineage/calendar"
	"github.com/MarcoKoban/lineage/place"
)

func TestIsEmpty(t *testing.T) {
	tests := []struct {
		name  string
		event Event
		empty bool
	}{
		{"new", New(Birth), true},
		{"with place", New(Birth).WithPlace(place.New("Paris", "")), false},
		{"whitespace note is data", New(Birth).WithNote(" "), false},
		{"whitespace source is data", New(Death).WithSource("\t"), false},
		{"with date", New(Birth).WithDate(calendar.NewYear(calendar.Gregorian, 1850)), false},
		{"zero date", New(Birth).WithDate(calendar.Date{}), true},
		{"unparsed date text", mustDate(New(Birth), "abt"), false},
		{"cleared date", New(Birth).WithDate(calendar.NewYear(calendar.Gregorian, 1850)).WithoutDate(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.empty, tt.event.IsEmpty())
		})
	}
}

func mustDate(e Event, s string) Event {
	out, _ := e.WithDateFromString(s, calendar.Gregorian)
	return out
}

func TestWithDateFromString(t *testing.T) {
	e, report := New(Birth).WithDateFromString("1850-xx-12", calendar.Julian)

	assert.Equal(t, []calendar.Field{calendar.FieldMonth}, report.Failed)
	d, ok := e.Date()
	require.True(t, ok)
	assert.Equal(t, calendar.Julian, d.Calendar())
	y, _ := d.Year()
	assert.Equal(t, 1850, y)
	_, hasMonth := d.Month()
	assert.False(t, hasMonth)
	assert.Equal(t, "1850-xx-12", e.DateText())
}

func TestWithResolvedDateKeepsText(t *testing.T) {
	e, _ := New(Birth).WithDateFromString("1800-03-01", calendar.Gregorian)
	d, _ := e.Date()
	french, err := calendar.NewConverter().Convert(d, calendar.French)
	require.NoError(t, err)

	resolved := e.WithResolvedDate(french)
	got, ok := resolved.Date()
	require.True(t, ok)
	assert.Equal(t, calendar.French, got.Calendar())
	assert.Equal(t, "1800-03-01", resolved.DateText())

	y, ok := resolved.GregorianYear()
	require.True(t, ok)
	assert.Equal(t, 1800, y)

	// The original is untouched.
	orig, _ := e.Date()
	assert.Equal(t, calendar.Gregorian, orig.Calendar())
}

func TestWithDateFromStringEmpty(t *testing.T) {
	e, report := New(Birth).WithDateFromString("", calendar.Gregorian)
	assert.True(t, report.OK())
	_, ok := e.Date()
	assert.False(t, ok)
	assert.True(t, e.IsEmpty())
}

func TestWithDateFromComponents(t *testing.T) {
	e, report := New(Death).WithDateFromComponents(calendar.Gregorian, "1901", "", "7")
	assert.True(t, report.OK())
	assert.Equal(t, "1901-7", e.DateText())

	d, ok := e.Date()
	require.True(t, ok)
	assert.False(t, d.IsComplete())
	day, _ := d.Day()
	assert.Equal(t, 7, day)

	_, report = New(Death).WithDateFromComponents(calendar.Gregorian, "19o1", "3", "7")
	assert.Equal(t, []calendar.Field{calendar.FieldYear}, report.Failed)
}

func TestImmutability(t *testing.T) {
	base := New(Birth)
	placed := base.WithPlace(place.New("Lyon", ""))
	noted := placed.WithNote("twin")

	assert.True(t, base.IsEmpty())
	assert.Equal(t, "", placed.Note())
	assert.Equal(t, "twin", noted.Note())
	assert.Equal(t, "Lyon", noted.Place().Main())
	assert.Equal(t, Birth, noted.Kind())
}

func TestYears(t *testing.T) {
	tests := []struct {
		name      string
		event     Event
		year      int
		hasYear   bool
		gregorian int
		hasGreg   bool
	}{
		{
			name:  "gregorian",
			event: New(Birth).WithDate(calendar.NewYear(calendar.Gregorian, 1850)),
			year:  1850, hasYear: true, gregorian: 1850, hasGreg: true,
		},
		{
			name:  "hebrew normalised",
			event: New(Birth).WithDate(calendar.NewYear(calendar.Hebrew, 5610)),
			year:  5610, hasYear: true, gregorian: 1849, hasGreg: true,
		},
		{
			name:  "free text fallback",
			event: mustDate(New(Birth), "abt 1850"),
			year:  0, hasYear: false, gregorian: 1850, hasGreg: true,
		},
		{
			name:  "nothing",
			event: New(Birth).WithSource("parish register"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			y, ok := tt.event.Year()
			assert.Equal(t, tt.hasYear, ok)
			assert.Equal(t, tt.year, y)

			g, ok := tt.event.GregorianYear()
			assert.Equal(t, tt.hasGreg, ok)
			assert.Equal(t, tt.gregorian, g)
		})
	}
}

func TestKindIsFamily(t *testing.T) {
	for _, k := range []Kind{Marriage, Engagement, Pacs, Divorce, Separation, Residence} {
		assert.True(t, k.IsFamily(), string(k))
	}
	for _, k := range []Kind{Birth, Baptism, Death, Burial, Kind("coronation")} {
		assert.False(t, k.IsFamily(), string(k))
	}
}
