// Package preview runs the controller against a simulated menu bar in the
// terminal, driven by a virtual clock.
package preview

import (
	"github.com/chess10kp/veil/internal/controller"
	"github.com/chess10kp/veil/internal/policy"
	"github.com/chess10kp/veil/internal/zone"
)

// SimLayout is a right-anchored bar. From the right edge it holds the
// visible items, then slot 2, a group of items, slot 1, another group and
// slot 0. Rendered lengths feed back into the next sample.
type SimLayout struct {
	Width float64
	// Groups are the item widths right of slot 2, 1 and 0 in that order
	Groups [3]float64

	Pointer   controller.Pointer
	Modifiers policy.Modifiers
	Dragging  bool
	Popover   bool

	lengths [3]float64
	frames  [3]controller.Frame
}

// NewSimLayout creates a layout width pixels wide
func NewSimLayout(width float64) *SimLayout {
	return &SimLayout{
		Width:  width,
		Groups: [3]float64{96, 96, 96},
	}
}

func (l *SimLayout) Sample() controller.Snapshot {
	s := controller.Snapshot{
		Pointer:      l.Pointer,
		Modifiers:    l.Modifiers,
		Dragging:     l.Dragging,
		PopoverShown: l.Popover,
		MaxLength:    l.Width,
	}

	cursor := l.Width
	for slot := 2; slot >= 0; slot-- {
		cursor -= l.Groups[2-slot]
		x := cursor - l.lengths[slot]
		s.Slots[slot] = controller.Measurement{
			OriginX: x,
			Width:   l.lengths[slot],
			Shown:   true,
			Valid:   true,
		}
		cursor = x
	}
	return s
}

func (l *SimLayout) Render(slot zone.Slot, f controller.Frame) {
	l.lengths[slot] = f.Length
	l.frames[slot] = f
}

// Frame returns the last frame rendered to slot
func (l *SimLayout) Frame(slot zone.Slot) controller.Frame {
	return l.frames[slot]
}
