package merge

import "sort"

// The sweep turns the two independent diffRegion lists into a single
// ordered, gap-free partition of [0, len(base)).
//
// Each region contributes a start and an end event in base coordinates.
// Sweeping left to right, a hunk opens the instant any region opens and
// stays open until the active sets of both sides drain simultaneously, so
// overlapping and touching edits — on one side or across sides — fold into
// a single region instead of fragmenting. Start events sort before end
// events at equal positions, which is what makes touching regions merge.

type eventKind int

const (
	eventStart eventKind = iota
	eventEnd
)

type regionSide int

const (
	sideLeft regionSide = iota
	sideRight
)

type sweepEvent struct {
	pos  int
	kind eventKind
	side regionSide
}

func buildEvents(left, right []diffRegion) []sweepEvent {
	events := make([]sweepEvent, 0, 2*(len(left)+len(right)))
	for i := range left {
		events = append(events,
			sweepEvent{pos: left[i].baseStart, kind: eventStart, side: sideLeft},
			sweepEvent{pos: left[i].baseEnd, kind: eventEnd, side: sideLeft},
		)
	}
	for i := range right {
		events = append(events,
			sweepEvent{pos: right[i].baseStart, kind: eventStart, side: sideRight},
			sweepEvent{pos: right[i].baseEnd, kind: eventEnd, side: sideRight},
		)
	}
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].pos != events[j].pos {
			return events[i].pos < events[j].pos
		}
		return events[i].kind < events[j].kind
	})
	return events
}

func sweepRegions(base, left, right []string, leftRegions, rightRegions []diffRegion) []Region {
	events := buildEvents(leftRegions, rightRegions)

	var out []Region
	basePos := 0

	openLeft, openRight := 0, 0
	touchedLeft, touchedRight := false, false
	hunkStart := 0

	// An unchanged span maps its start end-biased so it lands after any
	// zero-width insertion ending at that position (the preceding hunk owns
	// those lines), and its end start-biased so an insertion starting at the
	// boundary stays with the following hunk.
	flushUnchanged := func(from, to int) {
		if from >= to {
			return
		}
		out = append(out, Region{
			Type:       Unchanged,
			BaseStart:  from,
			BaseEnd:    to,
			LeftStart:  mapPos(from, leftRegions, biasEnd),
			LeftEnd:    mapPos(to, leftRegions, biasStart),
			RightStart: mapPos(from, rightRegions, biasEnd),
			RightEnd:   mapPos(to, rightRegions, biasStart),
			Lines:      copyRange(base, from, to),
		})
	}

	for _, ev := range events {
		if ev.kind == eventStart {
			if openLeft+openRight == 0 {
				flushUnchanged(basePos, ev.pos)
				hunkStart = ev.pos
				touchedLeft, touchedRight = false, false
			}
			if ev.side == sideLeft {
				openLeft++
				touchedLeft = true
			} else {
				openRight++
				touchedRight = true
			}
			continue
		}

		if ev.side == sideLeft {
			openLeft--
		} else {
			openRight--
		}
		if openLeft+openRight == 0 {
			out = append(out, closeHunk(
				base, left, right,
				leftRegions, rightRegions,
				hunkStart, ev.pos,
				touchedLeft, touchedRight,
			))
			basePos = ev.pos
		}
	}

	// Base suffix with no further events.
	flushUnchanged(basePos, len(base))

	return consolidateUnchanged(out)
}

// closeHunk maps the hunk's base range into both sides — start-biased on
// entry, end-biased on exit — and classifies the result.
func closeHunk(base, left, right []string, leftRegions, rightRegions []diffRegion, start, end int, touchedLeft, touchedRight bool) Region {
	ls := mapPos(start, leftRegions, biasStart)
	le := mapPos(end, leftRegions, biasEnd)
	rs := mapPos(start, rightRegions, biasStart)
	re := mapPos(end, rightRegions, biasEnd)

	leftLines := copyRange(left, ls, le)
	rightLines := copyRange(right, rs, re)

	reg := Region{
		BaseStart:  start,
		BaseEnd:    end,
		LeftStart:  ls,
		LeftEnd:    le,
		RightStart: rs,
		RightEnd:   re,
	}

	switch {
	case touchedLeft && !touchedRight:
		reg.Type = LeftChanged
		reg.Lines = leftLines
	case touchedRight && !touchedLeft:
		reg.Type = RightChanged
		reg.Lines = rightLines
	case equalLines(leftLines, rightLines):
		reg.Type = BothSame
		reg.Lines = leftLines
	default:
		reg.Type = Conflicted
		reg.Base = copyRange(base, start, end)
		reg.Left = leftLines
		reg.Right = rightLines
	}

	return reg
}

// consolidateUnchanged folds runs of adjacent Unchanged regions into single
// regions so the partition carries no spurious fragmentation.
func consolidateUnchanged(regions []Region) []Region {
	if len(regions) < 2 {
		return regions
	}

	out := regions[:0]
	for _, reg := range regions {
		if len(out) > 0 {
			last := &out[len(out)-1]
			if last.Type == Unchanged && reg.Type == Unchanged {
				last.BaseEnd = reg.BaseEnd
				last.LeftEnd = reg.LeftEnd
				last.RightEnd = reg.RightEnd
				last.Lines = append(last.Lines, reg.Lines...)
				continue
			}
		}
		out = append(out, reg)
	}
	return out
}
