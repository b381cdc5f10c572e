// Package feedback plays short pulse patterns when hidden items are revealed.
package feedback

import (
	"fmt"
	"strings"
)

// Intensity selects the pulse pattern
type Intensity int

const (
	None Intensity = iota
	Light
	Medium
	Heavy
)

// Intensities lists every intensity, weakest first
var Intensities = []Intensity{None, Light, Medium, Heavy}

// ParseIntensity parses a config value
func ParseIntensity(s string) (Intensity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "off", "":
		return None, nil
	case "light":
		return Light, nil
	case "medium":
		return Medium, nil
	case "heavy":
		return Heavy, nil
	default:
		return None, fmt.Errorf("invalid feedback intensity: %q (must be none, light, medium or heavy)", s)
	}
}

// String returns the string representation of Intensity
func (i Intensity) String() string {
	switch i {
	case Light:
		return "light"
	case Medium:
		return "medium"
	case Heavy:
		return "heavy"
	default:
		return "none"
	}
}

// Step is one beat of a pattern
type Step int

const (
	// Gap is a pause that performs nothing
	Gap Step = iota
	Generic
	Alignment
	LevelChange
)

// String returns the string representation of Step
func (s Step) String() string {
	switch s {
	case Generic:
		return "generic"
	case Alignment:
		return "alignment"
	case LevelChange:
		return "level-change"
	default:
		return "gap"
	}
}

// Pattern returns the beats played for this intensity
func (i Intensity) Pattern() []Step {
	switch i {
	case Light:
		return []Step{LevelChange}
	case Medium:
		return []Step{Generic, Gap, Alignment}
	case Heavy:
		return []Step{LevelChange, Alignment, Alignment, Gap, Gap, Gap, LevelChange}
	default:
		return nil
	}
}

// Performer is the device that renders a single beat
type Performer interface {
	Perform(step Step)
}

// PerformerFunc adapts a function to Performer
type PerformerFunc func(step Step)

// Perform calls f
func (f PerformerFunc) Perform(step Step) {
	f(step)
}

// Discard performs nothing
var Discard Performer = PerformerFunc(func(Step) {})
