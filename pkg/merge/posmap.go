package merge

// bias resolves the ambiguity when a base position sits on an edit
// boundary: "position p" can mean "before the edit at p" or "after it", and
// the two map to different derived positions whenever the edit changes the
// line count.
type bias int

const (
	biasStart bias = iota // The edit belongs to the span after the position.
	biasEnd               // The edit belongs to the span before the position.
)

// mapPos maps a base-coordinate position into the derived sequence
// described by regions.
//
// Rules, applied against the sorted region list:
//   - a region ending strictly before pos always contributes its delta;
//   - a region whose start equals pos contributes its delta only under
//     biasEnd;
//   - a region whose end equals pos (and starts before it) always
//     contributes its delta;
//   - a position strictly inside a region snaps to the region boundary
//     matching the bias.
func mapPos(pos int, regions []diffRegion, b bias) int {
	acc := 0
	for i := range regions {
		r := &regions[i]
		switch {
		case r.baseEnd < pos:
			acc += r.delta()
		case r.baseStart == pos:
			// Covers zero-width insertions at pos as well: the start rule
			// takes precedence over the end rule.
			if b == biasEnd {
				acc += r.delta()
			}
			return pos + acc
		case r.baseEnd == pos:
			acc += r.delta()
		case r.baseStart < pos:
			// Strictly inside a replacement: snap to the boundary.
			if b == biasStart {
				return r.otherStart
			}
			return r.otherEnd
		default:
			// Region starts after pos; later ones do too.
			return pos + acc
		}
	}
	return pos + acc
}
