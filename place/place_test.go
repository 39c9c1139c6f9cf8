package place

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in     string
		main   string
		suburb string
	}{
		{"Paris", "Paris", ""},
		{"  Paris ", "Paris", ""},
		{"[Montmartre] - Paris", "Paris", "Montmartre"},
		{"[ Montmartre ]-Paris", "Paris", "Montmartre"},
		{"[La Croix]", "", "La Croix"},
		{"[unclosed - Paris", "[unclosed - Paris", ""},
		{"", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			p := Parse(tt.in)
			assert.Equal(t, tt.main, p.Main())
			assert.Equal(t, tt.suburb, p.Suburb())
		})
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, p := range []Place{
		New("Paris", ""),
		New("Paris", "Montmartre"),
		New("", "La Croix"),
	} {
		assert.Equal(t, p, Parse(p.String()))
	}
	assert.Equal(t, "[Montmartre] - Paris", New("Paris", "Montmartre").String())
}

func TestIsZero(t *testing.T) {
	assert.True(t, Place{}.IsZero())
	assert.True(t, Parse("   ").IsZero())
	assert.False(t, New(" ", "").IsZero())
	assert.False(t, New("", "x").IsZero())
}

func TestCompare(t *testing.T) {
	assert.Equal(t, 0, Compare(New("Paris", "A"), New("Paris", "A")))
	assert.Equal(t, -1, Compare(New("Lyon", "Z"), New("Paris", "A")))
	assert.Equal(t, 1, Compare(New("Paris", "B"), New("Paris", "A")))
	assert.True(t, New("Paris", "").Less(New("Paris", "A")))
	// byte order puts uppercase first
	assert.True(t, New("Zurich", "").Less(New("abbeville", "")))
}

func TestSortForIndex(t *testing.T) {
	places := []Place{
		New("Paris", "Montmartre"),
		New("Évreux", ""),
		New("abbeville", ""),
		New("Eu", ""),
		New("Paris", "Belleville"),
	}

	SortForIndex(places, language.French)

	var got []string
	for _, p := range places {
		got = append(got, p.String())
	}
	assert.Equal(t, []string{
		"abbeville",
		"Eu",
		"Évreux",
		"[Belleville] - Paris",
		"[Montmartre] - Paris",
	}, got)
}
