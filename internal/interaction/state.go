package interaction

// SelectionState is the discrete state of the strip. Only Collapsed and
// Expanded are stable; the others always have a transition in flight.
type SelectionState int

const (
	Collapsed SelectionState = iota
	Expanding
	Expanded
	Collapsing
	Snapping
)

func (s SelectionState) String() string {
	switch s {
	case Collapsed:
		return "collapsed"
	case Expanding:
		return "expanding"
	case Expanded:
		return "expanded"
	case Collapsing:
		return "collapsing"
	case Snapping:
		return "snapping"
	}
	return "unknown"
}

// Stable reports whether no transition is pending.
func (s SelectionState) Stable() bool {
	return s == Collapsed || s == Expanded
}

// usesExpandedRow reports whether bounds are measured against the expanded row.
func (s SelectionState) usesExpandedRow() bool {
	return s == Expanding || s == Expanded || s == Snapping
}

// Driver names the single evaluator allowed to write the position this frame.
type Driver int

const (
	DriverNone Driver = iota
	DriverDrag
	DriverDecay
	DriverSpring
	DriverTransition
	DriverSnap
)

func (d Driver) String() string {
	switch d {
	case DriverNone:
		return "none"
	case DriverDrag:
		return "drag"
	case DriverDecay:
		return "decay"
	case DriverSpring:
		return "spring"
	case DriverTransition:
		return "transition"
	case DriverSnap:
		return "snap"
	}
	return "unknown"
}
