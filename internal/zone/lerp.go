package zone

import "math"

const (
	// BaseRatio is the fraction of the remaining distance covered per tick
	BaseRatio = 0.42
	// PrecisionFactor scales BaseRatio while the precision modifier is held
	PrecisionFactor = 0.25

	// LengthEpsilon is the pixel distance treated as arrived
	LengthEpsilon = 0.5
	// AlphaEpsilon is the opacity distance treated as arrived
	AlphaEpsilon = 0.01
)

// Ratio returns the interpolation ratio for this tick
func Ratio(precision bool) float64 {
	if precision {
		return BaseRatio * PrecisionFactor
	}
	return BaseRatio
}

// Lerp moves a toward b by ratio of the distance
func Lerp(a, b, ratio float64) float64 {
	return a + (b-a)*ratio
}

// Approaching reports whether a and b are closer than eps
func Approaching(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

// StepAlpha advances Alpha toward TargetAlpha and reports arrival.
// An arrived value is snapped onto the target so it stops drifting.
func (z *Zone) StepAlpha(reduced bool, ratio float64) bool {
	target := clamp(z.TargetAlpha, 0, 1)
	if reduced {
		z.Alpha = target
		return true
	}

	z.Alpha = clamp(Lerp(z.Alpha, target, ratio), 0, 1)
	if Approaching(z.Alpha, target, AlphaEpsilon) {
		z.Alpha = target
		return true
	}
	return false
}

// StepLength advances Length toward TargetLength and reports arrival
func (z *Zone) StepLength(reduced bool, ratio float64) bool {
	target := math.Max(0, z.TargetLength)
	if reduced {
		z.Length = target
		return true
	}

	z.Length = math.Max(0, Lerp(z.Length, target, ratio))
	if Approaching(z.Length, target, LengthEpsilon) {
		z.Length = target
		return true
	}
	return false
}
