package stoplight

import (
	"sync"
	"testing"
	"time"
)

// TestObserver is a mock observer for testing that captures all observer
// events
type TestObserver struct {
	mutex        sync.RWMutex
	PhaseChanges []Transition
	Started      []string
	Stopped      []string
	Errors       []error
}

// NewTestObserver creates a new test observer
func NewTestObserver() *TestObserver {
	return &TestObserver{
		PhaseChanges: make([]Transition, 0),
		Started:      make([]string, 0),
		Stopped:      make([]string, 0),
		Errors:       make([]error, 0),
	}
}

// Observer interface implementations
func (o *TestObserver) OnPhaseChange(t Transition) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.PhaseChanges = append(o.PhaseChanges, t)
}

// ExtendedObserver interface implementations
func (o *TestObserver) OnSignalStarted(id string) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Started = append(o.Started, id)
}

func (o *TestObserver) OnSignalStopped(id string) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Stopped = append(o.Stopped, id)
}

func (o *TestObserver) OnError(err error) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Errors = append(o.Errors, err)
}

// Helper methods for test assertions
func (o *TestObserver) Reset() {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.PhaseChanges = nil
	o.Started = nil
	o.Stopped = nil
	o.Errors = nil
}

func (o *TestObserver) PhaseChangeCount() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return len(o.PhaseChanges)
}

func (o *TestObserver) StartedCount() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return len(o.Started)
}

func (o *TestObserver) StoppedCount() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return len(o.Stopped)
}

func (o *TestObserver) ErrorCount() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return len(o.Errors)
}

// Snapshot returns a copy of the captured phase changes
func (o *TestObserver) Snapshot() []Transition {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	transitions := make([]Transition, len(o.PhaseChanges))
	copy(transitions, o.PhaseChanges)
	return transitions
}

func (o *TestObserver) LastPhaseChange() *Transition {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	if len(o.PhaseChanges) == 0 {
		return nil
	}
	return &o.PhaseChanges[len(o.PhaseChanges)-1]
}

// Test signal builders - common configurations for testing

// NewTestSignal creates a signal with the given cycle bounds, a millisecond
// poll quantum and a fixed seed, suited to unit tests
func NewTestSignal(t *testing.T, min, max time.Duration) *TrafficSignal {
	t.Helper()
	signal, err := NewSignal(Config{
		MinCycle:     min,
		MaxCycle:     max,
		PollInterval: time.Millisecond,
		Seed:         1,
	})
	if err != nil {
		t.Fatalf("Expected no error creating test signal, got: %v", err)
	}
	return signal
}

// NewFastTestSignal creates a signal that flips every few tens of
// milliseconds
func NewFastTestSignal(t *testing.T) *TrafficSignal {
	t.Helper()
	return NewTestSignal(t, 20*time.Millisecond, 40*time.Millisecond)
}

// Test assertions and utilities

// AssertPhase checks if the signal currently shows the expected phase
func AssertPhase(t *testing.T, signal *TrafficSignal, expected Phase) {
	t.Helper()
	if got := signal.CurrentPhase(); got != expected {
		t.Errorf("Expected phase %s, got %s", expected, got)
	}
}

// AssertErrorCode checks if an error carries the expected code
func AssertErrorCode(t *testing.T, err error, expected ErrorCode) {
	t.Helper()
	if err == nil {
		t.Fatal("Expected an error, got nil")
	}
	if got := GetErrorCode(err); got != expected {
		t.Errorf("Expected error code %d, got %d (%v)", expected, got, err)
	}
}

// WaitForFlips blocks until the observer has captured at least n phase
// changes or the deadline passes
func WaitForFlips(t *testing.T, observer *TestObserver, n int, deadline time.Duration) {
	t.Helper()
	timeout := time.After(deadline)
	for observer.PhaseChangeCount() < n {
		select {
		case <-timeout:
			t.Fatalf("Expected %d phase changes within %v, got %d",
				n, deadline, observer.PhaseChangeCount())
		case <-time.After(time.Millisecond):
		}
	}
}
