package stoplight

// Phase is the colour a traffic signal currently shows.
type Phase int

const (
	// Red denies right of way
	Red Phase = iota
	// Green grants right of way
	Green
)

// String returns the lowercase colour name
func (p Phase) String() string {
	switch p {
	case Red:
		return "red"
	case Green:
		return "green"
	default:
		return "unknown"
	}
}

// Next returns the phase shown after a toggle. Phases strictly alternate:
// a signal never stays in the same phase across a toggle event.
func (p Phase) Next() Phase {
	if p == Red {
		return Green
	}
	return Red
}
