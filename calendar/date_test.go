package calendar

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarcoKoban/lineage/errors"
	"github.com/MarcoKoban/lineage/internal/util"
)

func TestDateCompletenessAndValidityAreIndependent(t *testing.T) {
	tests := []struct {
		name     string
		date     Date
		complete bool
		valid    bool
	}{
		{"complete and valid", NewDate(Gregorian, 1850, 3, 12), true, true},
		{"complete but invalid", NewDate(Gregorian, 1850, 13, 12), true, false},
		{"incomplete but valid", NewYear(Gregorian, 1850), false, true},
		{"incomplete and invalid", NewYear(Gregorian, 0), false, false},
		{"empty", Date{}, false, true},
		{"day only out of range", Partial(Julian, nil, nil, util.Ptr(32)), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.complete, tt.date.IsComplete())
			assert.Equal(t, tt.valid, tt.date.IsValid())
		})
	}
}

func TestDatePresenceIsNotZeroValue(t *testing.T) {
	absent := Date{}
	_, ok := absent.Year()
	assert.False(t, ok)

	zero := NewYear(Gregorian, 0)
	y, ok := zero.Year()
	assert.True(t, ok)
	assert.Equal(t, 0, y)
	assert.False(t, zero.Equal(absent))
}

func TestDateString(t *testing.T) {
	tests := []struct {
		date Date
		want string
	}{
		{NewDate(Gregorian, 1850, 3, 12), "1850-03-12"},
		{NewYearMonth(Gregorian, 1850, 3), "1850-03"},
		{NewYear(Julian, 1500), "1500 (julian)"},
		{NewDate(French, 2, 1, 30), "0002-01-30 (french)"},
		{Partial(Gregorian, nil, util.Ptr(3), nil), "????-03"},
		{Partial(Hebrew, nil, nil, util.Ptr(12)), "????-??-12 (hebrew)"},
		{Date{}, ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.date.String())
	}
}

func TestWithCalendarDoesNotConvert(t *testing.T) {
	d := NewDate(Gregorian, 1850, 3, 12)
	j := d.WithCalendar(Julian)

	assert.Equal(t, Gregorian, d.Calendar())
	assert.Equal(t, Julian, j.Calendar())
	m, _ := j.Month()
	assert.Equal(t, 3, m)
}

func TestCompare(t *testing.T) {
	got, err := Compare(NewDate(Julian, 1582, 10, 5), NewDate(Gregorian, 1582, 10, 15))
	require.NoError(t, err)
	assert.Equal(t, 0, got)

	got, err = Compare(NewDate(Gregorian, 1850, 1, 1), NewDate(Hebrew, 5761, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, -1, got)

	got, err = Compare(NewDate(French, 3, 1, 1), NewDate(Gregorian, 1793, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, 1, got)

	_, err = Compare(NewYear(Gregorian, 1850), NewDate(Gregorian, 1850, 1, 1))
	assert.True(t, errors.Is(err, errors.ErrIncompleteDate))
}

func TestParseCalendar(t *testing.T) {
	for _, name := range []string{"Julian", " julian ", "J"} {
		c, err := ParseCalendar(name)
		require.NoError(t, err)
		assert.Equal(t, Julian, c)
	}

	c, err := ParseCalendar("french_republican")
	require.NoError(t, err)
	assert.Equal(t, French, c)

	_, err = ParseCalendar("mayan")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidRequest))
	assert.NotEmpty(t, errors.GetAllHints(err))
}

func TestCalendarText(t *testing.T) {
	data, err := json.Marshal(struct {
		Cal Calendar `json:"cal"`
	}{Hebrew})
	require.NoError(t, err)
	assert.JSONEq(t, `{"cal":"hebrew"}`, string(data))

	var c Calendar
	require.NoError(t, c.UnmarshalText([]byte("julian")))
	assert.Equal(t, Julian, c)
	assert.Error(t, c.UnmarshalText([]byte("lunar")))
	assert.Equal(t, "unknown", Calendar(7).String())
	assert.False(t, Calendar(7).IsKnown())
}
