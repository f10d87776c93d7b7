package mocks

import (
	"github.com/mcoot/fantasta/internal/dependencies/random"
)

// MockRandom replays queued values. When the queue runs dry it counts
// upwards from Fallback so generated ids stay distinct.
type MockRandom struct {
	IntnResults []int
	intnIndex   int

	Fallback int
}

var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a MockRandom whose fallback sequence starts at 90000
func NewMockRandom() *MockRandom {
	return &MockRandom{Fallback: 90000}
}

// Intn returns the next queued result, or the next fallback value
func (r *MockRandom) Intn(n int) int {
	if r.intnIndex < len(r.IntnResults) {
		result := r.IntnResults[r.intnIndex]
		r.intnIndex++
		return result
	}
	result := r.Fallback
	r.Fallback++
	if n > 0 {
		result %= n
	}
	return result
}

// QueueIntn adds values to the Intn result queue
func (r *MockRandom) QueueIntn(values ...int) {
	r.IntnResults = append(r.IntnResults, values...)
}
