package zone

import "testing"

const (
	testLeftEdge = 160.0
	testMax      = 10000.0
)

func frame(x float64, collapses, reduced bool) Frame {
	return Frame{
		OriginX:        x,
		Collapses:      collapses,
		LeftEdge:       testLeftEdge,
		MaxLength:      testMax,
		RevealedLength: 24,
		Reduced:        reduced,
		Ratio:          Ratio(false),
	}
}

func TestReanchorCollapseFromStableJumpsToMax(t *testing.T) {
	z := New(Body)
	z.Length = 24
	z.SetTargetLength(24)

	if !z.Reanchor(frame(800, true, false)) {
		t.Error("Expected a stable collapse to report arrival")
	}
	if z.Length != testMax {
		t.Errorf("Expected length %v, got %v", testMax, z.Length)
	}
	if z.WasUnstable {
		t.Error("Expected zone to stay stable")
	}
	if _, ok := z.LastOrigin(); ok {
		t.Error("Expected no memo to be recorded on the max-length jump")
	}
}

func TestReanchorRevealFromStableSnapsAndSkips(t *testing.T) {
	z := New(Body)
	z.Length = 500

	if z.Reanchor(frame(700, false, false)) {
		t.Error("Expected the snap tick to not report arrival")
	}

	want := 700 + 500 - testLeftEdge
	if z.TargetLength != want {
		t.Errorf("Expected derived target %v, got %v", want, z.TargetLength)
	}
	if z.Length != want {
		t.Errorf("Expected length snapped to %v, got %v", want, z.Length)
	}
	if !z.WasUnstable {
		t.Error("Expected zone to be marked unstable")
	}
	if _, ok := z.LastOrigin(); ok {
		t.Error("Expected animated mode to skip recording the memo")
	}
}

func TestReanchorRevealKeepsExistingTarget(t *testing.T) {
	z := New(Tail)
	z.Length = 9000
	z.SetTargetLength(320)

	z.Reanchor(frame(-8000, false, false))

	if z.Length != 320 {
		t.Errorf("Expected length snapped to prior target 320, got %v", z.Length)
	}
}

func TestReanchorReducedContinuesToTarget(t *testing.T) {
	z := New(Body)
	z.Length = 500

	z.Reanchor(frame(700, false, true))
	if _, ok := z.LastOrigin(); !ok {
		t.Fatal("Expected reduced mode to record the memo on the snap tick")
	}

	// Layout moved the origin, so the target is recomputed and reached at once.
	if !z.Reanchor(frame(testLeftEdge, false, true)) {
		t.Error("Expected reduced tick to arrive")
	}
	if z.Length != 24 {
		t.Errorf("Expected revealed width 24, got %v", z.Length)
	}
}

func TestReanchorUnstableCollapseAnimatesUntilSettled(t *testing.T) {
	z := New(Body)
	z.Length = 24
	z.WasUnstable = true
	z.last = &memo{originX: 900, collapses: false}

	// Collapse decision flipped: target becomes the width that reaches the left edge.
	z.Reanchor(frame(900, true, false))
	want := 900 + 24 - testLeftEdge
	if z.TargetLength != want {
		t.Errorf("Expected target %v, got %v", want, z.TargetLength)
	}
	if !z.WasUnstable {
		t.Error("Expected zone to remain unstable while origin is right of the edge")
	}
	if z.Length <= 24 || z.Length >= want {
		t.Errorf("Expected length to move partway toward %v, got %v", want, z.Length)
	}

	// Origin reaches the edge: instability clears, next tick jumps to max.
	z.Reanchor(frame(testLeftEdge+2, true, false))
	if z.WasUnstable {
		t.Error("Expected instability to clear once origin is within tolerance")
	}
	z.Reanchor(frame(testLeftEdge+2, true, false))
	if z.Length != testMax {
		t.Errorf("Expected max length after settling, got %v", z.Length)
	}
}

func TestReanchorUnchangedMemoKeepsTarget(t *testing.T) {
	z := New(Body)
	z.WasUnstable = true
	z.Length = 40
	z.SetTargetLength(24)
	z.last = &memo{originX: 600, collapses: false}

	z.Reanchor(frame(600, false, false))
	if z.TargetLength != 24 {
		t.Errorf("Expected target untouched, got %v", z.TargetLength)
	}
	if collapses, ok := z.LastCollapses(); !ok || collapses {
		t.Errorf("Expected memo collapses=false, got %v (ok=%v)", collapses, ok)
	}
}

func TestReanchorLengthNeverNegative(t *testing.T) {
	z := New(Tail)
	z.WasUnstable = true
	z.Length = 10
	z.last = &memo{originX: 400, collapses: false}

	z.Reanchor(frame(100, true, true))
	if z.Length < 0 || z.TargetLength < 0 {
		t.Errorf("Expected non-negative length, got %v (target %v)", z.Length, z.TargetLength)
	}
}

func TestReanchorFirstRevealShrinksTowardGlyph(t *testing.T) {
	z := New(Body)
	z.Reanchor(frame(900, true, false))
	if z.Length != testMax {
		t.Fatalf("Expected collapsed length %v, got %v", testMax, z.Length)
	}

	// Pushed off screen: the fill-to-edge width is derived and snapped.
	z.Reanchor(frame(1060-testMax, false, false))
	if z.Length != 900 {
		t.Fatalf("Expected snapped length 900, got %v", z.Length)
	}

	// The layout settled at the left edge. Without a memo the target is
	// recomputed, so the zone starts shrinking to its glyph width.
	z.Reanchor(frame(testLeftEdge, false, false))
	if z.TargetLength != 24 {
		t.Errorf("Expected revealed target 24, got %v", z.TargetLength)
	}
	if z.Length >= 900 || z.Length <= 24 {
		t.Errorf("Expected length partway toward 24, got %v", z.Length)
	}
}
