package stoplight

import "time"

// Default timing for a simulated signal
const (
	// DefaultMinCycle is the lower bound of the random cycle duration
	DefaultMinCycle = 4 * time.Second
	// DefaultMaxCycle is the upper bound of the random cycle duration
	DefaultMaxCycle = 6 * time.Second
	// DefaultPollInterval is the cycling loop's sleep quantum
	DefaultPollInterval = time.Millisecond
)

// Config holds the tunable parameters of a TrafficSignal
type Config struct {
	// MinCycle and MaxCycle bound the cycle duration, drawn uniformly from
	// the closed interval [MinCycle, MaxCycle]
	MinCycle time.Duration
	MaxCycle time.Duration

	// PollInterval is how long the cycling task sleeps between elapsed-time
	// checks. Smaller values track the cycle bound more closely at the cost
	// of CPU.
	PollInterval time.Duration

	// PushDelay throttles the producer after each publish. Zero disables it.
	PushDelay time.Duration

	// RedrawEachCycle re-rolls the cycle duration on every flip. When false
	// the duration is drawn once at start and fixed for the signal's
	// lifetime.
	RedrawEachCycle bool

	// Seed seeds the duration generator. Zero selects a time-based seed.
	Seed int64
}

// DefaultConfig returns the standard simulation timing: a 4-6 second cycle
// checked every millisecond, fixed duration, no producer throttling
func DefaultConfig() Config {
	return Config{
		MinCycle:     DefaultMinCycle,
		MaxCycle:     DefaultMaxCycle,
		PollInterval: DefaultPollInterval,
	}
}

// validate reports the first invalid field as a ConfigurationError
func (c Config) validate() error {
	if c.MinCycle <= 0 {
		return NewConfigurationError("Config", "MinCycle must be positive")
	}
	if c.MaxCycle < c.MinCycle {
		return NewConfigurationError("Config", "MaxCycle must not be below MinCycle")
	}
	if c.PollInterval <= 0 {
		return NewConfigurationError("Config", "PollInterval must be positive")
	}
	if c.PushDelay < 0 {
		return NewConfigurationError("Config", "PushDelay must not be negative")
	}
	return nil
}
