package types

// Span is a unit range [Lo, Hi) - half-open interval.
// Invariant: 0 <= Lo <= Hi.
type Span struct {
	Lo int64
	Hi int64
}

// Len returns the number of units in the span.
func (s Span) Len() int64 {
	return s.Hi - s.Lo
}

// IsEmpty reports whether the span selects nothing.
func (s Span) IsEmpty() bool {
	return s.Hi <= s.Lo
}
