package mocks

import (
	"strings"

	"github.com/mcoot/forceteam/internal/dependencies/random"
)

// MockRandom hands out queued strings. Once the queue is empty it fills the
// requested length with the alphabet's first character.
type MockRandom struct {
	queued []string
	// Lengths records the length asked for on every String call
	Lengths []int
}

var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a MockRandom returning values in order
func NewMockRandom(values ...string) *MockRandom {
	return &MockRandom{queued: values}
}

func (r *MockRandom) String(length int, alphabet string) string {
	r.Lengths = append(r.Lengths, length)
	if len(r.queued) > 0 {
		next := r.queued[0]
		r.queued = r.queued[1:]
		return next
	}
	if alphabet == "" {
		return ""
	}
	return strings.Repeat(alphabet[:1], length)
}

// QueueString adds values to the String result queue
func (r *MockRandom) QueueString(values ...string) {
	r.queued = append(r.queued, values...)
}
