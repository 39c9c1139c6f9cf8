// Package sosa implements Sosa-Stradonitz (Ahnentafel) ancestor numbers.
//
// The reference person is 1; the father of n is 2n and the mother 2n+1, so
// every ancestor has exactly one number and the binary digits after the
// leading 1 spell the path from the reference person (0 father, 1 mother).
package sosa

import (
	"math"
	"math/bits"
	"strconv"
	"strings"

	"github.com/MarcoKoban/lineage/errors"
	"github.com/MarcoKoban/lineage/internal/util"
)

// Sosa is an ancestor number. The zero value means "not an ancestor".
type Sosa struct {
	value uint64
}

var (
	// Zero marks a person with no ancestor number.
	Zero = Sosa{}
	// Root is the reference person.
	Root = Sosa{value: 1}
)

// MaxGeneration is the deepest generation a uint64 number can address.
const MaxGeneration = 64

// New wraps a raw number.
func New(n uint64) Sosa { return Sosa{value: n} }

// FromInt converts a signed integer, rejecting negatives.
func FromInt(n int64) (Sosa, error) {
	if n < 0 {
		return Zero, errors.Wrapf(errors.ErrNegativeSosa, "got %d", n)
	}
	return Sosa{value: uint64(n)}, nil
}

// Parse reads a decimal number. Digit-group separators (space, comma, dot,
// underscore) are accepted between groups of three digits so
// FormatWithSeparator output parses back; "3.5" is not read as 35.
func Parse(s string) (Sosa, error) {
	raw := strings.TrimSpace(s)
	if strings.HasPrefix(raw, "-") {
		return Zero, errors.Wrapf(errors.ErrNegativeSosa, "got %q", s)
	}

	digits, ok := util.UngroupDigits(strings.TrimPrefix(raw, "+"))
	if !ok {
		digits = ""
	}

	if digits == "" {
		return Zero, errors.WithHint(
			errors.Wrapf(errors.ErrUnparseableSosa, "got %q", s),
			"sosa numbers are positive integers, e.g. 38 or 1 024",
		)
	}

	n, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return Zero, errors.Wrapf(errors.ErrSosaOverflow, "got %q", s)
		}
		return Zero, errors.WithHint(
			errors.Wrapf(errors.ErrUnparseableSosa, "got %q", s),
			"sosa numbers are positive integers, e.g. 38 or 1 024",
		)
	}
	return Sosa{value: n}, nil
}

// Value returns the raw number.
func (s Sosa) Value() uint64 { return s.value }

func (s Sosa) IsZero() bool { return s.value == 0 }

func (s Sosa) IsRoot() bool { return s.value == 1 }

// Father returns 2n.
func (s Sosa) Father() (Sosa, error) {
	if s.value > math.MaxUint64/2 {
		return Zero, errors.Wrapf(errors.ErrSosaOverflow, "father of %d", s.value)
	}
	return Sosa{value: s.value * 2}, nil
}

// Mother returns 2n+1.
func (s Sosa) Mother() (Sosa, error) {
	if s.value > math.MaxUint64/2 {
		return Zero, errors.Wrapf(errors.ErrSosaOverflow, "mother of %d", s.value)
	}
	return Sosa{value: s.value*2 + 1}, nil
}

// Child returns n/2, the descendant one generation closer to the reference
// person. Neither 0 nor 1 has a child number.
func (s Sosa) Child() (Sosa, error) {
	if s.value < 2 {
		return Zero, errors.Wrapf(errors.ErrNoChildSosa, "sosa %d", s.value)
	}
	return Sosa{value: s.value / 2}, nil
}

// Generation returns floor(log2 n)+1, counting the reference person as
// generation 1. Zero has generation 0.
func (s Sosa) Generation() int {
	return bits.Len64(s.value)
}

// IsFatherLine reports whether n is a father (even and at least 2).
func (s Sosa) IsFatherLine() bool {
	return s.value >= 2 && s.value%2 == 0
}

// IsMotherLine reports whether n is a mother (odd and at least 3).
func (s Sosa) IsMotherLine() bool {
	return s.value >= 3 && s.value%2 == 1
}

// Add returns s+o.
func (s Sosa) Add(o Sosa) (Sosa, error) {
	sum, carry := bits.Add64(s.value, o.value, 0)
	if carry != 0 {
		return Zero, errors.Wrapf(errors.ErrSosaOverflow, "%d + %d", s.value, o.value)
	}
	return Sosa{value: sum}, nil
}

// Div returns s/d, truncated.
func (s Sosa) Div(d uint64) (Sosa, error) {
	if d == 0 {
		return Zero, errors.Wrapf(errors.ErrZeroDivisor, "sosa %d", s.value)
	}
	return Sosa{value: s.value / d}, nil
}

// Compare returns -1, 0 or +1.
func (s Sosa) Compare(o Sosa) int {
	switch {
	case s.value < o.value:
		return -1
	case s.value > o.value:
		return 1
	default:
		return 0
	}
}

// Less orders numbers ascending; handy for sort.Slice.
func (s Sosa) Less(o Sosa) bool { return s.value < o.value }

// FirstOfGeneration returns 2^(g-1), the lowest number in generation g.
func FirstOfGeneration(g int) (Sosa, error) {
	if g < 1 || g > MaxGeneration {
		return Zero, errors.Wrapf(errors.ErrMalformedValue, "generation %d outside 1-%d", g, MaxGeneration)
	}
	return Sosa{value: 1 << uint(g-1)}, nil
}

func (s Sosa) String() string {
	return strconv.FormatUint(s.value, 10)
}

// FormatWithSeparator groups digits by three from the right:
// 1234567 with " " gives "1 234 567".
func (s Sosa) FormatWithSeparator(sep string) string {
	return util.GroupDigits(s.String(), sep)
}

// MarshalText implements encoding.TextMarshaler.
func (s Sosa) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using Parse.
func (s *Sosa) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
