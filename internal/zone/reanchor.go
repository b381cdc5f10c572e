package zone

import "math"

// SettleTolerance is how far past the left edge an origin must sit before
// a collapsing zone is considered still moving under external layout.
const SettleTolerance = 5.0

// Frame is everything Reanchor needs to know about one zone for one tick
type Frame struct {
	OriginX        float64 // measured left edge of the separator
	Collapses      bool
	LeftEdge       float64 // leftmost usable coordinate of the bar
	MaxLength      float64 // width that hides everything behind the separator
	RevealedLength float64 // glyph width when not collapsing
	Reduced        bool
	Ratio          float64
}

// Reanchor resynchronizes a zone whose width may have been dictated by the
// surrounding layout, then interpolates it toward its target. It reports
// whether the length has arrived.
func (z *Zone) Reanchor(f Frame) bool {
	x := f.OriginX

	switch {
	case !f.Collapses && !z.WasUnstable:
		if z.TargetLength <= 0 {
			z.SetTargetLength(x + z.Length - f.LeftEdge)
		}
		z.Length = z.TargetLength
		z.WasUnstable = true

		if !f.Reduced {
			return false
		}

	case f.Collapses && !z.WasUnstable:
		z.Length = math.Max(0, f.MaxLength)
		return true

	default:
		z.WasUnstable = !f.Collapses || x > f.LeftEdge+SettleTolerance
	}

	// no memo yet counts as a change
	if z.last == nil || z.last.collapses != f.Collapses || z.last.originX != x {
		if f.Collapses {
			z.SetTargetLength(x + z.Length - f.LeftEdge)
		} else {
			z.SetTargetLength(f.RevealedLength)
		}
	}

	z.last = &memo{originX: x, collapses: f.Collapses}

	return z.StepLength(f.Reduced, f.Ratio)
}
