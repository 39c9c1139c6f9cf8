package genealogy

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/MarcoKoban/lineage/errors"
)

// Key identifies a person: first name, surname and an occurrence number
// that tells apart namesakes. Two persons are the same person iff their
// keys are equal.
type Key struct {
	FirstName string
	Surname   string
	Occ       int
}

// String renders "First.occ Surname". The occurrence is omitted when it is
// zero and the first name is a single word.
func (k Key) String() string {
	if k.Occ == 0 && !strings.Contains(k.FirstName, " ") {
		return k.FirstName + " " + k.Surname
	}
	return k.FirstName + "." + strconv.Itoa(k.Occ) + " " + k.Surname
}

var keyWithOcc = regexp.MustCompile(`^(.+)\.(\d+) (.+)$`)

// ParseKey reads the form produced by String. Without an occurrence marker
// the first word is the first name and the rest the surname, so compound
// first names need the marker: "Jean Pierre.0 Dupont".
func ParseKey(s string) (Key, error) {
	s = strings.TrimSpace(s)
	if m := keyWithOcc.FindStringSubmatch(s); m != nil {
		occ, err := strconv.Atoi(m[2])
		if err != nil {
			return Key{}, errors.Wrapf(errors.ErrMalformedValue, "occurrence in key %q", s)
		}
		return Key{FirstName: m[1], Surname: strings.TrimSpace(m[3]), Occ: occ}, nil
	}

	first, surname, ok := strings.Cut(s, " ")
	if !ok || first == "" || strings.TrimSpace(surname) == "" {
		return Key{}, errors.WithHint(
			errors.Wrapf(errors.ErrMalformedValue, "person key %q", s),
			`write keys as "First Surname" or "First.occ Surname"`,
		)
	}
	return Key{FirstName: first, Surname: strings.TrimSpace(surname)}, nil
}
