package util

// GroupDigits inserts sep between every group of three digits, counting
// from the right. Input is expected to be a plain run of digits.
func GroupDigits(digits, sep string) string {
	if sep == "" || len(digits) <= 3 {
		return digits
	}

	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}

	out := make([]byte, 0, len(digits)+(len(digits)/3)*len(sep))
	out = append(out, digits[:lead]...)
	for i := lead; i < len(digits); i += 3 {
		out = append(out, sep...)
		out = append(out, digits[i:i+3]...)
	}
	return string(out)
}

// UngroupDigits strips the separators GroupDigits inserts. A separator is one
// of space, comma, dot or underscore; it must be used consistently and only
// between groups of three digits, so "1,024" gives "1024" while "3.5" and
// "1,02" are rejected. Input without separators is returned unchanged.
func UngroupDigits(s string) (string, bool) {
	var sep rune
	groups, group := 0, 0
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch r {
		case ' ', ',', '.', '_':
			if sep != 0 && r != sep {
				return "", false
			}
			sep = r
			if group == 0 || group > 3 || (groups > 0 && group != 3) {
				return "", false
			}
			groups++
			group = 0
		default:
			out = append(out, r)
			group++
		}
	}
	if sep != 0 && group != 3 {
		return "", false
	}
	return string(out), true
}
