// Package engine drives scenes from a single frame loop
package engine

import (
	"sync"
	"time"
)

// Clock is the time source of the frame loop and everything it drives
type Clock interface {
	Now() time.Time
}

// TimeProvider reads the wall clock
type TimeProvider struct{}

func NewTimeProvider() *TimeProvider {
	return &TimeProvider{}
}

func (*TimeProvider) Now() time.Time {
	return time.Now()
}

// MockClock only moves when told to; tests step frames with it
type MockClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewMockClock(start time.Time) *MockClock {
	return &MockClock{now: start}
}

func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	t := m.now
	m.mu.Unlock()
	return t
}

// SetTime jumps to t, which may lie in the past
func (m *MockClock) SetTime(t time.Time) {
	m.mu.Lock()
	m.now = t
	m.mu.Unlock()
}

// Advance moves the clock forward by d
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
}
