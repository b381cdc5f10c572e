package bar

import (
	"time"

	"github.com/gotk3/gotk3/glib"

	"github.com/chess10kp/veil/internal/feedback"
	"github.com/chess10kp/veil/internal/zone"
)

// PulseLength is how long a pulse class stays on the head glyph
const PulseLength = 40 * time.Millisecond

// Pulse performs feedback steps by flashing a CSS class on the head glyph
type Pulse struct {
	bar     *Bar
	current string
	clear   glib.SourceHandle
	pending bool
}

// NewPulse creates a performer drawing on b
func NewPulse(b *Bar) *Pulse {
	return &Pulse{bar: b}
}

func pulseClass(step feedback.Step) string {
	return "pulse-" + step.String()
}

func (p *Pulse) Perform(step feedback.Step) {
	if step == feedback.Gap {
		return
	}

	p.reset()

	ctx := p.bar.styleOf(zone.Head)
	if ctx == nil {
		return
	}

	p.current = pulseClass(step)
	ctx.AddClass(p.current)

	p.pending = true
	p.clear = glib.TimeoutAdd(uint(PulseLength.Milliseconds()), func() bool {
		p.pending = false
		p.reset()
		return false
	})
}

func (p *Pulse) reset() {
	if p.pending {
		glib.SourceRemove(p.clear)
		p.pending = false
	}
	if p.current == "" {
		return
	}
	// the head may have moved to another slot since the class was added
	for _, image := range p.bar.slots {
		if ctx, err := image.GetStyleContext(); err == nil {
			ctx.RemoveClass(p.current)
		}
	}
	p.current = ""
}
