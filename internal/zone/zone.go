// Package zone holds the per-separator animation state and the math that moves it.
package zone

import "fmt"

// Role is the logical part a separator plays in the bar, ordered left to right
type Role int

const (
	Tail Role = iota
	Body
	Head
)

// Roles lists every role in left-to-right order
var Roles = [3]Role{Tail, Body, Head}

// String returns the string representation of Role
func (r Role) String() string {
	switch r {
	case Tail:
		return "tail"
	case Body:
		return "body"
	case Head:
		return "head"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// Slot is the index of a physical separator widget
type Slot int

// memo remembers what the previous tick saw for a zone
type memo struct {
	originX   float64
	collapses bool
}

// Zone is the mutable animation state of one separator
type Zone struct {
	Role Role

	Length       float64
	TargetLength float64
	Alpha        float64
	TargetAlpha  float64

	// WasUnstable is set while the width is re-derived from an observed
	// position instead of trusted from the previous target.
	WasUnstable bool

	last *memo
}

// New creates a zone with zero length and alpha
func New(role Role) *Zone {
	return &Zone{Role: role}
}

// LastOrigin returns the origin x recorded on the previous tick, if any
func (z *Zone) LastOrigin() (float64, bool) {
	if z.last == nil {
		return 0, false
	}
	return z.last.originX, true
}

// LastCollapses returns the collapse decision recorded on the previous tick, if any
func (z *Zone) LastCollapses() (bool, bool) {
	if z.last == nil {
		return false, false
	}
	return z.last.collapses, true
}

// SetTargetAlpha stores a clamped opacity target
func (z *Zone) SetTargetAlpha(alpha float64) {
	z.TargetAlpha = clamp(alpha, 0, 1)
}

// SetTargetLength stores a non-negative width target
func (z *Zone) SetTargetLength(length float64) {
	if length < 0 {
		length = 0
	}
	z.TargetLength = length
}

// Reset forgets the memo and instability flag, keeping the current values
func (z *Zone) Reset() {
	z.last = nil
	z.WasUnstable = false
}

// Snapshot is a read-only copy of a zone
type Snapshot struct {
	Role         Role    `json:"role"`
	Length       float64 `json:"length"`
	TargetLength float64 `json:"target_length"`
	Alpha        float64 `json:"alpha"`
	TargetAlpha  float64 `json:"target_alpha"`
	Unstable     bool    `json:"unstable"`
}

// Snapshot copies the current state
func (z *Zone) Snapshot() Snapshot {
	return Snapshot{
		Role:         z.Role,
		Length:       z.Length,
		TargetLength: z.TargetLength,
		Alpha:        z.Alpha,
		TargetAlpha:  z.TargetAlpha,
		Unstable:     z.WasUnstable,
	}
}

func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
