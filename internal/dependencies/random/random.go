package random

import "math/rand/v2"

// Random supplies the randomness used when a catalog row has no player id
type Random interface {
	// Intn returns a random int in [0, n)
	Intn(n int) int
}

// Source implements Random with math/rand/v2
type Source struct{}

// New creates a new Source
func New() Source {
	return Source{}
}

// Intn returns a pseudo-random int in [0, n), or 0 when n <= 0
func (Source) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return rand.IntN(n)
}
