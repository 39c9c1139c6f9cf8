package sosa

import (
	"math/bits"
	"strings"

	"github.com/MarcoKoban/lineage/errors"
)

// Branch is one step from a person to a parent.
type Branch uint8

const (
	FatherBranch Branch = 0
	MotherBranch Branch = 1
)

func (b Branch) String() string {
	if b == MotherBranch {
		return "M"
	}
	return "F"
}

// BranchPath returns the steps from the reference person to n, read from
// the bits after the leading one. 38 (100110) gives F F M M F.
// Numbers 0 and 1 have an empty path.
func (s Sosa) BranchPath() []Branch {
	if s.value <= 1 {
		return nil
	}
	n := bits.Len64(s.value) - 1
	path := make([]Branch, n)
	for i := 0; i < n; i++ {
		path[i] = Branch((s.value >> uint(n-1-i)) & 1)
	}
	return path
}

// FromBranchPath walks a path up from the reference person.
func FromBranchPath(path []Branch) (Sosa, error) {
	s := Root
	var err error
	for i, b := range path {
		switch b {
		case FatherBranch:
			s, err = s.Father()
		case MotherBranch:
			s, err = s.Mother()
		default:
			return Zero, errors.Wrapf(errors.ErrMalformedValue, "step %d is not a branch: %d", i, b)
		}
		if err != nil {
			return Zero, err
		}
	}
	return s, nil
}

// ParseBranchPath reads a path written with F/M (or P for père) letters or
// 0/1 digits. Spaces, dashes and slashes between steps are ignored.
func ParseBranchPath(s string) ([]Branch, error) {
	var path []Branch
	for i, r := range strings.ToUpper(s) {
		switch r {
		case 'F', 'P', '0':
			path = append(path, FatherBranch)
		case 'M', '1':
			path = append(path, MotherBranch)
		case ' ', '-', '/', '.':
		default:
			return nil, errors.WithHint(
				errors.Wrapf(errors.ErrMalformedValue, "unexpected %q at position %d in path %q", r, i, s),
				"write the path as a sequence of F and M, e.g. FFMMF",
			)
		}
	}
	return path, nil
}

// FormatBranchPath renders a path as F/M letters.
func FormatBranchPath(path []Branch) string {
	var b strings.Builder
	for _, step := range path {
		b.WriteString(step.String())
	}
	return b.String()
}
