package interaction

// Phase is the state of a pan gesture as reported by the platform layer.
type Phase int

const (
	PhaseUndetermined Phase = iota
	PhaseBegan
	PhaseActive
	PhaseEnd
	PhaseCancelled
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseUndetermined:
		return "undetermined"
	case PhaseBegan:
		return "began"
	case PhaseActive:
		return "active"
	case PhaseEnd:
		return "end"
	case PhaseCancelled:
		return "cancelled"
	case PhaseFailed:
		return "failed"
	}
	return "unknown"
}

// Sample is one frame of pan input. TranslationX is measured from where the
// gesture began; VelocityX is in px/s.
type Sample struct {
	TranslationX float64
	VelocityX    float64
	Phase        Phase
}
