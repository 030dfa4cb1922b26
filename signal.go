// Package stoplight models a simulated traffic signal whose phase (Red or
// Green) is toggled by a background cycling goroutine on a randomized
// interval. Phase transitions are delivered to blocking consumers through a
// condition-variable queue, either competitively (WaitForGreen) or as a
// broadcast (Subscribe).
package stoplight

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SignalState tracks the lifecycle of a TrafficSignal
type SignalState int

const (
	// SignalNotStarted means the cycling task has never been launched
	SignalNotStarted SignalState = iota
	// SignalRunning means the cycling task is active
	SignalRunning
	// SignalStopped means the cycling task has exited
	SignalStopped
)

// TrafficSignal is a two-state machine alternating between Red and Green.
// It owns one phase queue, a subscriber registry, and the cycling goroutine
// that flips the phase and publishes each transition.
type TrafficSignal struct {
	id  string
	cfg Config

	mutex       sync.RWMutex
	phase       Phase
	lifecycle   SignalState
	seq         uint64
	subscribers map[uint64]*Subscription
	nextSubID   uint64

	queue     *Queue[Phase]
	observers *ObserverManager

	rng    *rand.Rand // used only by the cycling goroutine
	cancel context.CancelFunc
	done   chan struct{}
}

// NewSignal creates a signal with the given configuration. The initial phase
// is Red and the cycling task is not yet running.
func NewSignal(cfg Config) (*TrafficSignal, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &TrafficSignal{
		id:          uuid.New().String(),
		cfg:         cfg,
		phase:       Red,
		lifecycle:   SignalNotStarted,
		subscribers: make(map[uint64]*Subscription),
		queue:       NewThrottledQueue[Phase](cfg.PushDelay),
		observers:   NewObserverManager(),
		rng:         rand.New(rand.NewSource(seed)),
		done:        make(chan struct{}),
	}, nil
}

// NewDefaultSignal creates a signal with DefaultConfig
func NewDefaultSignal() *TrafficSignal {
	s, _ := NewSignal(DefaultConfig()) // DefaultConfig always validates
	return s
}

// ID returns the unique identifier of this signal instance
func (s *TrafficSignal) ID() string {
	return s.id
}

// Config returns a copy of the signal's configuration
func (s *TrafficSignal) Config() Config {
	return s.cfg
}

// CurrentPhase returns the last committed phase. It never blocks on producer
// activity; the read is synchronized with the cycling task's write.
func (s *TrafficSignal) CurrentPhase() Phase {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.phase
}

// State returns the lifecycle state of the cycling task
func (s *TrafficSignal) State() SignalState {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.lifecycle
}

// AddObserver adds an observer to the signal
func (s *TrafficSignal) AddObserver(observer Observer) {
	s.observers.AddObserver(observer)
}

// RemoveObserver removes an observer from the signal
func (s *TrafficSignal) RemoveObserver(observer Observer) {
	s.observers.RemoveObserver(observer)
}

// Start launches the cycling task and returns immediately. The task runs
// until ctx ends or Stop is called. A signal cycles at most once per
// instance: starting a running or stopped signal returns an AlreadyStarted
// error.
func (s *TrafficSignal) Start(ctx context.Context) error {
	s.mutex.Lock()
	if s.lifecycle != SignalNotStarted {
		s.mutex.Unlock()
		return NewAlreadyStartedError("Start")
	}
	s.lifecycle = SignalRunning
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mutex.Unlock()

	s.observers.NotifySignalStarted(s.id)
	go s.cycle(runCtx)
	return nil
}

// Stop cancels the cycling task and waits for it to exit. Stopping a signal
// that was never started returns a NotStarted error; stopping twice is a
// no-op.
func (s *TrafficSignal) Stop() error {
	s.mutex.Lock()
	if s.lifecycle == SignalNotStarted {
		s.mutex.Unlock()
		return NewNotStartedError("Stop")
	}
	cancel := s.cancel
	s.mutex.Unlock()

	cancel()
	<-s.done
	return nil
}

// WaitForGreen blocks until a Green phase is received from the signal's
// queue, discarding any Red values seen along the way. It returns a
// Cancelled error when ctx ends first.
//
// Concurrent waiters compete for queued elements: each flip is delivered to
// exactly one waiter and a waiter may be starved by others. A caller that
// must see every flip should use Subscribe instead.
func (s *TrafficSignal) WaitForGreen(ctx context.Context) error {
	for {
		phase, err := s.queue.PopContext(ctx)
		if err != nil {
			return NewCancelledError("WaitForGreen", ctx.Err())
		}
		if phase == Green {
			return nil
		}
	}
}

// cycle is the background task toggling the phase. It sleeps a poll quantum,
// measures the time since the last flip, and flips once the cycle duration
// has elapsed. The duration is drawn once at launch and, unless
// RedrawEachCycle is set, kept for the signal's lifetime.
func (s *TrafficSignal) cycle(ctx context.Context) {
	defer func() {
		s.mutex.Lock()
		s.lifecycle = SignalStopped
		s.mutex.Unlock()
		s.observers.NotifySignalStopped(s.id)
		close(s.done)
	}()

	cycleDuration := s.drawCycleDuration()
	lastFlip := time.Now()

	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if time.Since(lastFlip) < cycleDuration {
			continue
		}

		s.publish(s.toggle())
		lastFlip = time.Now()

		if s.cfg.RedrawEachCycle {
			cycleDuration = s.drawCycleDuration()
		}
	}
}

// toggle flips the committed phase under the lock and returns the transition
// record
func (s *TrafficSignal) toggle() Transition {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	from := s.phase
	s.phase = from.Next()
	s.seq++
	return Transition{From: from, To: s.phase, Seq: s.seq, At: time.Now()}
}

// publish delivers a committed flip to the shared queue, to every
// subscription, and to the observers
func (s *TrafficSignal) publish(t Transition) {
	s.queue.Push(t.To)
	for _, sub := range s.snapshotSubscribers() {
		sub.deliver(t)
	}
	s.observers.NotifyPhaseChange(t)
}

// drawCycleDuration draws uniformly from the closed interval
// [MinCycle, MaxCycle]
func (s *TrafficSignal) drawCycleDuration() time.Duration {
	span := int64(s.cfg.MaxCycle - s.cfg.MinCycle)
	if span <= 0 {
		return s.cfg.MinCycle
	}
	return s.cfg.MinCycle + time.Duration(s.rng.Int63n(span+1))
}
