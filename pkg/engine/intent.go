package engine

// Intent is a discrete player command delivered between ticks
type Intent int

// Player intents
const (
	ThrustUp Intent = iota
	ThrustDown
	RotateLeft
	RotateRight
	Fire
)

func (i Intent) String() string {
	switch i {
	case ThrustUp:
		return "thrust_up"
	case ThrustDown:
		return "thrust_down"
	case RotateLeft:
		return "rotate_left"
	case RotateRight:
		return "rotate_right"
	case Fire:
		return "fire"
	default:
		return "unknown"
	}
}

// burnsFuel reports whether the intent is refused outright on an empty tank
func (i Intent) burnsFuel() bool {
	return i != Fire
}
