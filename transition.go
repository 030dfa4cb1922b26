package stoplight

import "time"

// Transition records a single phase flip of a signal
type Transition struct {
	// From is the phase shown before the flip
	From Phase
	// To is the phase shown after the flip
	To Phase
	// Seq is the 1-based flip counter over the signal's lifetime
	Seq uint64
	// At is the commit time of the flip
	At time.Time
}
