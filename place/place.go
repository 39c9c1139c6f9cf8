// Package place holds place names as written in genealogical records: a main
// place (town, parish) with an optional suburb, hamlet or street written in
// brackets, "[Montmartre] - Paris".
package place

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Place is an immutable place name.
type Place struct {
	main   string
	suburb string
}

// New builds a place from its parts, kept exactly as given.
func New(main, suburb string) Place {
	return Place{main: main, suburb: suburb}
}

// Parse reads "[suburb] - main" or a bare main place. Surrounding
// whitespace is trimmed from each part.
func Parse(s string) Place {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "[") {
		if end := strings.Index(s, "]"); end > 0 {
			suburb := strings.TrimSpace(s[1:end])
			rest := strings.TrimSpace(s[end+1:])
			rest = strings.TrimSpace(strings.TrimPrefix(rest, "-"))
			return Place{main: rest, suburb: suburb}
		}
	}
	return Place{main: s}
}

func (p Place) Main() string { return p.main }

func (p Place) Suburb() string { return p.suburb }

// IsZero reports whether both parts are empty. Whitespace counts as content.
func (p Place) IsZero() bool {
	return p.main == "" && p.suburb == ""
}

// String renders the place in the form Parse reads.
func (p Place) String() string {
	switch {
	case p.suburb == "":
		return p.main
	case p.main == "":
		return "[" + p.suburb + "]"
	default:
		return "[" + p.suburb + "] - " + p.main
	}
}

// Compare orders by main place, then suburb, byte by byte.
func Compare(a, b Place) int {
	if c := strings.Compare(a.main, b.main); c != 0 {
		return c
	}
	return strings.Compare(a.suburb, b.suburb)
}

// Less reports whether p sorts before o under Compare.
func (p Place) Less(o Place) bool {
	return Compare(p, o) < 0
}

// SortForIndex sorts places for a printed place index using the collation
// rules of the given language, so "Évreux" files next to "Eu" in French.
// Ties on the main place are broken by suburb.
func SortForIndex(places []Place, tag language.Tag) {
	c := collate.New(tag)
	sort.SliceStable(places, func(i, j int) bool {
		if r := c.CompareString(places[i].main, places[j].main); r != 0 {
			return r < 0
		}
		return c.CompareString(places[i].suburb, places[j].suburb) < 0
	})
}
