package controller

import (
	"github.com/chess10kp/veil/internal/policy"
	"github.com/chess10kp/veil/internal/zone"
)

// Pointer is the pointer position in bar coordinates
type Pointer struct {
	X, Y  float64
	OnBar bool
}

// Measurement is the on-screen geometry of one separator slot
type Measurement struct {
	OriginX float64
	Width   float64
	// Shown is false while the slot is not mapped
	Shown bool
	// Valid is false when the slot has not been laid out yet
	Valid bool
}

// Contains reports whether x falls on the slot
func (m Measurement) Contains(x float64) bool {
	return m.Valid && x >= m.OriginX && x <= m.OriginX+m.Width
}

// Snapshot is one tick's read-only view of the environment
type Snapshot struct {
	Pointer      Pointer
	Modifiers    policy.Modifiers
	Dragging     bool
	PopoverShown bool

	// Slots is indexed by physical slot
	Slots [3]Measurement

	// LeftEdge is the leftmost usable x of the bar
	LeftEdge float64
	// MaxLength is the width that pushes everything off screen
	MaxLength float64
}

// Sampler reads the environment. Sample must not mutate anything.
type Sampler interface {
	Sample() Snapshot
}

// Frame is what a slot should display
type Frame struct {
	Role     zone.Role
	Length   float64
	Alpha    float64
	Glyph    policy.Glyph
	Disabled bool
}

// Renderer writes frames to the physical slots
type Renderer interface {
	Render(slot zone.Slot, f Frame)
}

// StateStore persists the user-visible state
type StateStore interface {
	SaveOrdering(o zone.Ordering) error
	SaveCollapsed(collapsed bool) error
}

type discardStore struct{}

func (discardStore) SaveOrdering(zone.Ordering) error { return nil }
func (discardStore) SaveCollapsed(bool) error         { return nil }
