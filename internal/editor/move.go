package editor

// Move returns a copy of s with the element at from moved to position to.
// Elements between the two positions shift by one. Out-of-range indices
// return an unmodified copy.
func Move[T any](s []T, from, to int) []T {
	out := make([]T, len(s))
	copy(out, s)
	if from < 0 || from >= len(s) || to < 0 || to >= len(s) || from == to {
		return out
	}

	moved := out[from]
	if from < to {
		copy(out[from:to], out[from+1:to+1])
	} else {
		copy(out[to+1:from+1], out[to:from])
	}
	out[to] = moved
	return out
}
