package types

// CompactLenSize returns the number of bytes scale uses for the compact length
// prefix of a list with n elements.
func CompactLenSize(n int) int {
	switch {
	case n < 1<<6:
		return 1
	case n < 1<<14:
		return 2
	case n < 1<<30:
		return 4
	default:
		return 5
	}
}
