package stoplight

import "time"

// SignalBuilder provides a fluent interface for configuring a TrafficSignal
type SignalBuilder struct {
	cfg       Config
	observers []Observer
}

// NewSignalBuilder creates a builder preloaded with DefaultConfig
func NewSignalBuilder() *SignalBuilder {
	return &SignalBuilder{
		cfg: DefaultConfig(),
	}
}

// WithCycleBounds sets the closed interval the cycle duration is drawn from
func (b *SignalBuilder) WithCycleBounds(min, max time.Duration) *SignalBuilder {
	b.cfg.MinCycle = min
	b.cfg.MaxCycle = max
	return b
}

// WithPollInterval sets the cycling task's sleep quantum
func (b *SignalBuilder) WithPollInterval(interval time.Duration) *SignalBuilder {
	b.cfg.PollInterval = interval
	return b
}

// WithPushDelay throttles the producer after each publish
func (b *SignalBuilder) WithPushDelay(delay time.Duration) *SignalBuilder {
	b.cfg.PushDelay = delay
	return b
}

// WithRedrawEachCycle re-rolls the cycle duration on every flip instead of
// drawing it once at start
func (b *SignalBuilder) WithRedrawEachCycle() *SignalBuilder {
	b.cfg.RedrawEachCycle = true
	return b
}

// WithSeed seeds the duration generator for reproducible runs
func (b *SignalBuilder) WithSeed(seed int64) *SignalBuilder {
	b.cfg.Seed = seed
	return b
}

// WithObserver registers an observer on the built signal
func (b *SignalBuilder) WithObserver(observer Observer) *SignalBuilder {
	b.observers = append(b.observers, observer)
	return b
}

// Build validates the configuration and creates the signal
func (b *SignalBuilder) Build() (*TrafficSignal, error) {
	signal, err := NewSignal(b.cfg)
	if err != nil {
		return nil, err
	}
	for _, observer := range b.observers {
		signal.AddObserver(observer)
	}
	return signal, nil
}
