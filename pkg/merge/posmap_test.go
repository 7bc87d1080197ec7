package merge

import "testing"

// region is a shorthand for building diffRegion fixtures; line content is
// irrelevant to position mapping.
func region(baseStart, baseEnd, otherStart, otherEnd int) diffRegion {
	return diffRegion{
		baseStart:  baseStart,
		baseEnd:    baseEnd,
		otherStart: otherStart,
		otherEnd:   otherEnd,
	}
}

func TestMapPos_NoRegions(t *testing.T) {
	for _, pos := range []int{0, 3, 7} {
		if got := mapPos(pos, nil, biasStart); got != pos {
			t.Errorf("mapPos(%d) = %d, want %d", pos, got, pos)
		}
	}
}

func TestMapPos_AfterReplacement(t *testing.T) {
	// base[1,3) replaced by other[1,2): one line shorter.
	regs := []diffRegion{region(1, 3, 1, 2)}

	if got := mapPos(5, regs, biasStart); got != 4 {
		t.Errorf("mapPos(5, start) = %d, want 4", got)
	}
	if got := mapPos(5, regs, biasEnd); got != 4 {
		t.Errorf("mapPos(5, end) = %d, want 4", got)
	}
}

func TestMapPos_BeforeReplacement(t *testing.T) {
	regs := []diffRegion{region(3, 5, 3, 8)}

	if got := mapPos(2, regs, biasEnd); got != 2 {
		t.Errorf("mapPos(2, end) = %d, want 2", got)
	}
}

// A query at a region's start maps differently under the two biases: start
// bias treats the edit as part of the following span, end bias consumes it.
func TestMapPos_AtRegionStart(t *testing.T) {
	regs := []diffRegion{region(2, 4, 2, 5)} // delta +1

	if got := mapPos(2, regs, biasStart); got != 2 {
		t.Errorf("mapPos(2, start) = %d, want 2", got)
	}
	if got := mapPos(2, regs, biasEnd); got != 3 {
		t.Errorf("mapPos(2, end) = %d, want 3", got)
	}
}

// A query at a region's end always consumes the region's offset, under
// either bias.
func TestMapPos_AtRegionEnd(t *testing.T) {
	regs := []diffRegion{region(2, 4, 2, 5)} // delta +1

	if got := mapPos(4, regs, biasStart); got != 5 {
		t.Errorf("mapPos(4, start) = %d, want 5", got)
	}
	if got := mapPos(4, regs, biasEnd); got != 5 {
		t.Errorf("mapPos(4, end) = %d, want 5", got)
	}
}

// Zero-width insertions are the reason bias exists: "position 3" can mean
// before or after the inserted lines.
func TestMapPos_ZeroWidthInsertion(t *testing.T) {
	regs := []diffRegion{region(3, 3, 3, 6)} // three lines inserted at 3

	if got := mapPos(3, regs, biasStart); got != 3 {
		t.Errorf("mapPos(3, start) = %d, want 3", got)
	}
	if got := mapPos(3, regs, biasEnd); got != 6 {
		t.Errorf("mapPos(3, end) = %d, want 6", got)
	}
}

// A query strictly inside a replacement snaps to the region boundary
// matching the bias.
func TestMapPos_StraddleSnapsToBoundary(t *testing.T) {
	regs := []diffRegion{region(2, 6, 2, 4)}

	if got := mapPos(4, regs, biasStart); got != 2 {
		t.Errorf("mapPos(4, start) = %d, want 2 (snap to region start)", got)
	}
	if got := mapPos(4, regs, biasEnd); got != 4 {
		t.Errorf("mapPos(4, end) = %d, want 4 (snap to region end)", got)
	}
}

func TestMapPos_AccumulatesEarlierRegions(t *testing.T) {
	regs := []diffRegion{
		region(0, 1, 0, 3), // +2
		region(4, 6, 6, 7), // -1
	}

	if got := mapPos(8, regs, biasStart); got != 9 {
		t.Errorf("mapPos(8, start) = %d, want 9", got)
	}

	// At the second region's start only the first region's offset applies
	// under start bias.
	if got := mapPos(4, regs, biasStart); got != 6 {
		t.Errorf("mapPos(4, start) = %d, want 6", got)
	}
	if got := mapPos(4, regs, biasEnd); got != 5 {
		t.Errorf("mapPos(4, end) = %d, want 5", got)
	}
}
