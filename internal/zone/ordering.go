package zone

import (
	"fmt"
	"sort"
)

// Ordering maps each role to the physical slot currently playing it
type Ordering [3]Slot

// Identity returns the ordering where role i is played by slot i
func Identity() Ordering {
	return Ordering{0, 1, 2}
}

// Slot returns the slot playing role
func (o Ordering) Slot(role Role) Slot {
	return o[role]
}

// Role returns the role a slot plays
func (o Ordering) Role(slot Slot) Role {
	for i, s := range o {
		if s == slot {
			return Role(i)
		}
	}
	return Role(-1)
}

// Ints converts the ordering into its persisted form
func (o Ordering) Ints() []int {
	return []int{int(o[0]), int(o[1]), int(o[2])}
}

// Valid reports whether the ordering is a permutation of 0..2
func (o Ordering) Valid() bool {
	var seen [3]bool
	for _, s := range o {
		if s < 0 || s > 2 || seen[s] {
			return false
		}
		seen[s] = true
	}
	return true
}

// ParseOrdering validates a persisted role -> slot mapping
func ParseOrdering(values []int) (Ordering, error) {
	if len(values) != 3 {
		return Identity(), fmt.Errorf("invalid ordering length: %d (must be 3)", len(values))
	}

	o := Ordering{Slot(values[0]), Slot(values[1]), Slot(values[2])}
	if !o.Valid() {
		return Identity(), fmt.Errorf("invalid ordering %v (must be a permutation of 0, 1, 2)", values)
	}
	return o, nil
}

// Placement is where a slot currently sits on screen
type Placement struct {
	Shown   bool
	OriginX float64
	HasX    bool
}

// SortOrdering assigns roles to slots by their on-screen position.
// Slots that are not shown count as leftmost.
func SortOrdering(placements [3]Placement) Ordering {
	slots := []Slot{0, 1, 2}

	sort.SliceStable(slots, func(i, j int) bool {
		a, b := placements[slots[i]], placements[slots[j]]
		switch {
		case !a.Shown && b.Shown:
			return true
		case a.Shown && !b.Shown:
			return false
		case !a.Shown && !b.Shown:
			return false
		case a.HasX && b.HasX:
			return a.OriginX < b.OriginX
		default:
			return false
		}
	})

	return Ordering{slots[0], slots[1], slots[2]}
}
