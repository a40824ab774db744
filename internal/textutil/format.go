package textutil

// Ternary is a generic conditional helper that returns a if cond is true, b otherwise.
func Ternary[T any](cond bool, a, b T) T {
	if cond {
		return a
	}
	return b
}

// Plural returns word with an "s" appended unless n is exactly one.
func Plural(n int, word string) string {
	return Ternary(n == 1, word, word+"s")
}
