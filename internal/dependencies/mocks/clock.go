package mocks

import (
	"sync"
	"time"

	"github.com/mcoot/scrabble-go2/internal/dependencies/clock"
)

// MockClock is a mock implementation of Clock for testing.
// It is safe to use from a test while a server goroutine reads it.
type MockClock struct {
	mu          sync.Mutex
	currentTime time.Time
	step        time.Duration
}

// Ensure MockClock implements Clock
var _ clock.Clock = (*MockClock)(nil)

// NewMockClock creates a MockClock set to the given time
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{currentTime: t}
}

// Now returns the mocked current time, then moves it on by the step (if any)
func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.currentTime
	c.currentTime = c.currentTime.Add(c.step)
	return now
}

// Peek returns the mocked current time without stepping
func (c *MockClock) Peek() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentTime
}

// Advance moves the clock forward by the given duration
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentTime = c.currentTime.Add(d)
}

// Set sets the clock to the given time
func (c *MockClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentTime = t
}

// SetStep makes every call to Now advance the clock by d, so successive moves get distinct timestamps
func (c *MockClock) SetStep(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.step = d
}
