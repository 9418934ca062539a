// Package input holds the geometry, pointer and keyboard types shared by the
// host platform layer and the engine.
package input

import "math"

// Geometry describes the drawable area of a view.
type Geometry struct {
	X           int     `json:"x"`
	Y           int     `json:"y"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	HiDPIFactor float64 `json:"hidpi_factor"`
}

// ScrollUnit says how a wheel delta is measured.
type ScrollUnit int

const (
	LineDelta ScrollUnit = iota
	PixelDelta
)

// ScrollDelta is a raw wheel movement.
type ScrollDelta struct {
	Unit ScrollUnit
	X, Y float64
}

// LineHeight is the number of pixels one wheel line scrolls.
const LineHeight = 38.0

// Pixels converts the delta to pixels and locks it to its dominant axis.
// Only the vertical component of a line delta is scaled.
func (d ScrollDelta) Pixels() (x, y float64) {
	x, y = d.X, d.Y
	if d.Unit == LineDelta {
		y *= LineHeight
	}
	if math.Abs(y) >= math.Abs(x) {
		x = 0
	} else {
		y = 0
	}
	return x, y
}

// TouchPhase is the phase of a scroll gesture.
type TouchPhase int

const (
	PhaseStarted TouchPhase = iota
	PhaseMoved
	PhaseEnded
	PhaseCancelled
)

func (p TouchPhase) String() string {
	switch p {
	case PhaseStarted:
		return "started"
	case PhaseMoved:
		return "moved"
	case PhaseEnded:
		return "ended"
	default:
		return "cancelled"
	}
}

// ElementState is a button or key transition.
type ElementState int

const (
	Pressed ElementState = iota
	Released
)

func (s ElementState) String() string {
	if s == Pressed {
		return "pressed"
	}
	return "released"
}

// MouseButton identifies a pointer button.
type MouseButton int

const (
	ButtonLeft MouseButton = iota
	ButtonRight
	ButtonMiddle
)

func (b MouseButton) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	default:
		return "middle"
	}
}

// Modifiers is a set of held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModSuper
)

// Has reports whether all bits of m2 are set.
func (m Modifiers) Has(m2 Modifiers) bool {
	return m&m2 == m2
}

// Key is a named key, such as "Enter" or "ArrowUp". Printable keys carry
// their character separately.
type Key string
