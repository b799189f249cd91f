package numbers

// digit returns the value of c in the given radix, or -1 when c is not a digit of it.
func digit(c byte, radix int) int {
	var v int
	switch {
	case '0' <= c && c <= '9':
		v = int(c - '0')
	case 'a' <= c && c <= 'z':
		v = int(c-'a') + 10
	case 'A' <= c && c <= 'Z':
		v = int(c-'A') + 10
	default:
		return -1
	}
	if v >= radix {
		return -1
	}
	return v
}

func isDecimalDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
