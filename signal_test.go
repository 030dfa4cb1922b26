package stoplight

import (
	"context"
	"testing"
	"time"
)

func TestSignal_InitialPhaseIsRed(t *testing.T) {
	signal := NewDefaultSignal()

	AssertPhase(t, signal, Red)
	if signal.State() != SignalNotStarted {
		t.Errorf("Expected lifecycle NotStarted, got %d", signal.State())
	}
	if signal.ID() == "" {
		t.Error("Expected a non-empty signal ID")
	}
}

func TestSignal_StartAlreadyStarted(t *testing.T) {
	signal := NewFastTestSignal(t)

	if err := signal.Start(context.Background()); err != nil {
		t.Fatalf("Expected no error starting signal, got: %v", err)
	}
	defer signal.Stop()

	err := signal.Start(context.Background())
	if err == nil {
		t.Fatal("Expected error when starting already started signal")
	}
	if !IsSignalError(err) {
		t.Errorf("Expected a SignalError, got %T", err)
	}
	AssertErrorCode(t, err, ErrCodeAlreadyStarted)
}

func TestSignal_StopNotStarted(t *testing.T) {
	signal := NewFastTestSignal(t)

	err := signal.Stop()
	if err == nil {
		t.Fatal("Expected error when stopping non-started signal")
	}
	AssertErrorCode(t, err, ErrCodeNotStarted)
}

func TestSignal_RestartAfterStopRejected(t *testing.T) {
	signal := NewFastTestSignal(t)

	_ = signal.Start(context.Background())
	if err := signal.Stop(); err != nil {
		t.Fatalf("Expected no error stopping signal, got: %v", err)
	}

	err := signal.Start(context.Background())
	if err == nil {
		t.Fatal("Expected error when restarting a stopped signal")
	}
	AssertErrorCode(t, err, ErrCodeAlreadyStarted)
}

func TestSignal_StopTwice(t *testing.T) {
	signal := NewFastTestSignal(t)

	_ = signal.Start(context.Background())
	if err := signal.Stop(); err != nil {
		t.Fatalf("Expected no error on first stop, got: %v", err)
	}
	if err := signal.Stop(); err != nil {
		t.Errorf("Expected second stop to be a no-op, got: %v", err)
	}
	if signal.State() != SignalStopped {
		t.Errorf("Expected lifecycle Stopped, got %d", signal.State())
	}
}

func TestSignal_ContextCancelStopsCycling(t *testing.T) {
	signal := NewFastTestSignal(t)

	ctx, cancel := context.WithCancel(context.Background())
	_ = signal.Start(ctx)
	cancel()

	deadline := time.After(2 * time.Second)
	for signal.State() != SignalStopped {
		select {
		case <-deadline:
			t.Fatal("Expected cycling task to exit after context cancellation")
		case <-time.After(time.Millisecond):
		}
	}
}

func TestSignal_WaitForGreenReturnsAfterFlip(t *testing.T) {
	signal := NewFastTestSignal(t)

	_ = signal.Start(context.Background())
	defer signal.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := signal.WaitForGreen(ctx); err != nil {
		t.Fatalf("Expected WaitForGreen to return after a flip to green, got: %v", err)
	}
}

func TestSignal_WaitForGreenPreSeededQueue(t *testing.T) {
	signal := NewFastTestSignal(t)
	signal.queue.Push(Green)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := signal.WaitForGreen(ctx); err != nil {
		t.Fatalf("Expected immediate return on pre-seeded green, got: %v", err)
	}
}

func TestSignal_WaitForGreenDiscardsRed(t *testing.T) {
	signal := NewFastTestSignal(t)
	signal.queue.Push(Red)
	signal.queue.Push(Red)
	signal.queue.Push(Green)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := signal.WaitForGreen(ctx); err != nil {
		t.Fatalf("Expected green after discarded reds, got: %v", err)
	}
	if signal.queue.Len() != 0 {
		t.Errorf("Expected the reds to be consumed, %d elements left", signal.queue.Len())
	}
}

func TestSignal_WaitForGreenCancelled(t *testing.T) {
	signal := NewFastTestSignal(t)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := signal.WaitForGreen(ctx)
	if err == nil {
		t.Fatal("Expected cancelled error from WaitForGreen on idle signal")
	}
	if !IsCancelled(err) {
		t.Errorf("Expected a CancelledError, got %T", err)
	}
}

func TestSignal_StrictAlternation(t *testing.T) {
	signal := NewFastTestSignal(t)
	observer := NewTestObserver()
	signal.AddObserver(observer)

	_ = signal.Start(context.Background())
	WaitForFlips(t, observer, 5, 3*time.Second)
	_ = signal.Stop()

	transitions := observer.Snapshot()
	prev := Red
	for i, tr := range transitions {
		if tr.From != prev {
			t.Errorf("Flip %d: expected to leave %s, left %s", i, prev, tr.From)
		}
		if tr.To != tr.From.Next() {
			t.Errorf("Flip %d: expected strict alternation, got %s -> %s", i, tr.From, tr.To)
		}
		if tr.Seq != uint64(i+1) {
			t.Errorf("Flip %d: expected sequence %d, got %d", i, i+1, tr.Seq)
		}
		prev = tr.To
	}
}

func TestSignal_CycleDurationWithinBounds(t *testing.T) {
	min, max := 80*time.Millisecond, 120*time.Millisecond
	signal := NewTestSignal(t, min, max)
	observer := NewTestObserver()
	signal.AddObserver(observer)

	_ = signal.Start(context.Background())
	WaitForFlips(t, observer, 4, 3*time.Second)
	_ = signal.Stop()

	// Scheduling jitter tolerance: the poll quantum plus slack on slow
	// machines
	const slack = 100 * time.Millisecond
	transitions := observer.Snapshot()
	for i := 1; i < len(transitions); i++ {
		gap := transitions[i].At.Sub(transitions[i-1].At)
		if gap < min-5*time.Millisecond {
			t.Errorf("Gap %d: expected at least %v between flips, got %v", i, min, gap)
		}
		if gap > max+slack {
			t.Errorf("Gap %d: expected at most %v between flips, got %v", i, max+slack, gap)
		}
	}
}

func TestSignal_FixedCycleDurationByDefault(t *testing.T) {
	signal := NewTestSignal(t, 20*time.Millisecond, 60*time.Millisecond)
	observer := NewTestObserver()
	signal.AddObserver(observer)

	_ = signal.Start(context.Background())
	WaitForFlips(t, observer, 5, 3*time.Second)
	_ = signal.Stop()

	// The duration is drawn once, so consecutive gaps cluster around one
	// value
	transitions := observer.Snapshot()
	var gaps []time.Duration
	for i := 1; i < len(transitions); i++ {
		gaps = append(gaps, transitions[i].At.Sub(transitions[i-1].At))
	}
	for i := 1; i < len(gaps); i++ {
		diff := gaps[i] - gaps[0]
		if diff < 0 {
			diff = -diff
		}
		if diff > 50*time.Millisecond {
			t.Errorf("Gap %d: expected stable cycle duration, gaps %v and %v differ by %v",
				i, gaps[0], gaps[i], diff)
		}
	}
}

func TestSignal_CurrentPhaseDoesNotBlock(t *testing.T) {
	signal := NewFastTestSignal(t)

	_ = signal.Start(context.Background())
	defer signal.Stop()

	start := time.Now()
	for i := 0; i < 1000; i++ {
		_ = signal.CurrentPhase()
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("Expected 1000 phase reads to complete promptly, took %v", elapsed)
	}
}

func TestSignal_PhaseFollowsPublishedTransitions(t *testing.T) {
	signal := NewFastTestSignal(t)
	observer := NewTestObserver()
	signal.AddObserver(observer)

	_ = signal.Start(context.Background())
	WaitForFlips(t, observer, 1, 2*time.Second)
	_ = signal.Stop()

	last := observer.LastPhaseChange()
	if last == nil {
		t.Fatal("Expected at least one recorded flip")
	}
	AssertPhase(t, signal, last.To)
}

func TestSignal_InvalidConfiguration(t *testing.T) {
	_, err := NewSignal(Config{
		MinCycle:     2 * time.Second,
		MaxCycle:     time.Second,
		PollInterval: time.Millisecond,
	})
	if err == nil {
		t.Fatal("Expected error for MaxCycle below MinCycle")
	}
	if !IsConfigurationError(err) {
		t.Errorf("Expected a ConfigurationError, got %T", err)
	}
	AssertErrorCode(t, err, ErrCodeInvalidConfiguration)
}
