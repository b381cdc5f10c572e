package policy

import (
	"fmt"
	"sort"
	"strings"
)

// Modifiers is a set of held or configured modifier keys
type Modifiers uint8

const (
	Control Modifiers = 1 << iota
	Option
	Command
	Shift

	None Modifiers = 0
	// TriggerKeys are the modifiers that may be configured as triggers
	TriggerKeys = Control | Option | Command
)

var modifierNames = map[string]Modifiers{
	"control": Control,
	"ctrl":    Control,
	"option":  Option,
	"alt":     Option,
	"mod1":    Option,
	"command": Command,
	"super":   Command,
	"mod4":    Command,
	"shift":   Shift,
}

// ParseModifiers converts config names into a modifier set
func ParseModifiers(names []string) (Modifiers, error) {
	var m Modifiers
	for _, name := range names {
		key, ok := modifierNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return None, fmt.Errorf("unknown modifier: %q", name)
		}
		m |= key
	}
	return m, nil
}

// Has reports whether every key in other is in m
func (m Modifiers) Has(other Modifiers) bool {
	return m&other == other
}

// Intersects reports whether m and other share any key
func (m Modifiers) Intersects(other Modifiers) bool {
	return m&other != 0
}

// String returns the string representation of Modifiers
func (m Modifiers) String() string {
	if m == None {
		return "none"
	}

	var names []string
	for name, key := range map[string]Modifiers{"control": Control, "option": Option, "command": Command, "shift": Shift} {
		if m.Has(key) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return strings.Join(names, "+")
}

// TriggerMode decides how held keys are matched against the configured set
type TriggerMode int

const (
	// Any triggers when the held and configured sets share a key
	Any TriggerMode = iota
	// All triggers when the held keys are a superset of the configured ones
	All
)

// ParseTriggerMode parses "any" or "all"
func ParseTriggerMode(s string) (TriggerMode, error) {
	switch strings.ToLower(s) {
	case "", "any":
		return Any, nil
	case "all":
		return All, nil
	default:
		return Any, fmt.Errorf("invalid trigger mode: %q (must be any or all)", s)
	}
}

// String returns the string representation of TriggerMode
func (t TriggerMode) String() string {
	if t == All {
		return "all"
	}
	return "any"
}

// Triggers matches held keys against the configured trigger set.
// An empty configured set never triggers.
func (t TriggerMode) Triggers(configured, held Modifiers) bool {
	configured &= TriggerKeys
	held &= TriggerKeys

	if configured == None {
		return false
	}

	switch t {
	case All:
		return held.Has(configured)
	default:
		return held.Intersects(configured)
	}
}
