package mocks

import (
	"sync"

	"github.com/mcoot/scrabble-go2/internal/dependencies/random"
)

// MockRandom is a mock implementation of Random for testing.
// With nothing queued, Intn returns 0 (a bag shuffle then leaves a fixed,
// known order) and String returns "".
type MockRandom struct {
	mu sync.Mutex

	intnResults []int
	intnCalls   int

	stringResults []string
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Intn returns the next queued result, or 0 if none remaining.
// Queued values are clamped into [0, n).
func (r *MockRandom) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.intnCalls++
	if len(r.intnResults) == 0 || n <= 0 {
		return 0
	}
	result := r.intnResults[0]
	r.intnResults = r.intnResults[1:]
	if result < 0 {
		return 0
	}
	return result % n
}

// String returns the next queued result, or empty string if none remaining
func (r *MockRandom) String(length int, alphabet string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.stringResults) == 0 {
		return ""
	}
	result := r.stringResults[0]
	r.stringResults = r.stringResults[1:]
	return result
}

// QueueIntn adds values to the Intn result queue
func (r *MockRandom) QueueIntn(values ...int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.intnResults = append(r.intnResults, values...)
}

// QueueString adds values to the String result queue
func (r *MockRandom) QueueString(values ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stringResults = append(r.stringResults, values...)
}

// IntnCalls reports how many times Intn has been called
func (r *MockRandom) IntnCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.intnCalls
}

// Reset clears all queued results
func (r *MockRandom) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.intnResults = nil
	r.intnCalls = 0
	r.stringResults = nil
}
