package merge

import "github.com/odvcencio/weave/pkg/textdiff"

// diffRegion is a maximal contiguous span where base and one derived
// sequence disagree. Regions from a single extractRegions call are
// non-overlapping and ordered by base position.
//
// Zero base lines is a pure insertion, zero other lines a pure deletion,
// both non-zero a replacement.
type diffRegion struct {
	baseStart, baseEnd   int // half-open range in base
	otherStart, otherEnd int // half-open range in the derived sequence

	baseLines  []string
	otherLines []string
}

// delta is the length difference the region introduces: positions after it
// shift by this much when mapped from base into the derived sequence.
func (r *diffRegion) delta() int {
	return (r.otherEnd - r.otherStart) - (r.baseEnd - r.baseStart)
}

// extractRegions diffs base against other and condenses maximal runs of
// non-equal edit operations into ordered diffRegions. Equal runs produce no
// region; reconciling the two sides' region lists is the sweep's job.
func extractRegions(base, other []string) []diffRegion {
	ops := textdiff.Lines(base, other)

	var regions []diffRegion
	bi, oi := 0, 0

	i := 0
	for i < len(ops) {
		if ops[i].Kind == textdiff.Equal {
			bi++
			oi++
			i++
			continue
		}

		r := diffRegion{baseStart: bi, otherStart: oi}
		for i < len(ops) && ops[i].Kind != textdiff.Equal {
			if ops[i].Kind == textdiff.Delete {
				bi++
			} else {
				oi++
			}
			i++
		}
		r.baseEnd = bi
		r.otherEnd = oi
		r.baseLines = copyRange(base, r.baseStart, r.baseEnd)
		r.otherLines = copyRange(other, r.otherStart, r.otherEnd)

		regions = append(regions, r)
	}

	return regions
}
