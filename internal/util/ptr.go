package util

// Ptr returns a pointer to a copy of v. Optional fields such as the
// components of a partial date take pointers, and literals have no address.
func Ptr[T any](v T) *T {
	return &v
}
