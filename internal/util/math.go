package util

// FloorDiv returns a/b rounded toward negative infinity.
// b must be positive.
func FloorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

// FloorMod returns the remainder matching FloorDiv, always in [0, b).
func FloorMod(a, b int) int {
	return a - FloorDiv(a, b)*b
}
