package extract

// Align pads or truncates list to exactly n elements, filling with
// neutral. Scraped sibling lists drift in length when optional cells
// are missing; aligning them on a canonical count keeps positional
// assembly from pairing values across records.
func Align[T any](list []T, n int, neutral T) []T {
	if len(list) >= n {
		return list[:n]
	}
	out := make([]T, n)
	copy(out, list)
	for i := len(list); i < n; i++ {
		out[i] = neutral
	}
	return out
}
