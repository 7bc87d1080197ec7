package merge

// render derives the merged output from the region partition and the
// conflict set. It is the single source of truth for Result.Lines: every
// path that changes a conflict re-runs it in full, so the output can never
// drift from the authoritative state.
func render(regions []Region, conflicts []Conflict, opts Options) ([]string, []RegionType) {
	var lines []string
	var origins []RegionType

	emit := func(ls []string, t RegionType) {
		for _, l := range ls {
			lines = append(lines, l)
			origins = append(origins, t)
		}
	}

	ci := 0
	for _, reg := range regions {
		if reg.Type != Conflicted {
			emit(reg.Lines, reg.Type)
			continue
		}

		c := conflicts[ci]
		ci++

		if c.Resolution != Unresolved {
			emit(c.Resolved, Conflicted)
			continue
		}
		emit(markerBlock(c, opts), Conflicted)
	}

	return lines, origins
}

// markerBlock renders an unresolved conflict as marked text:
//
//	<<<<<<< <left-label>
//	<left lines>
//	||||||| <base-label>
//	<base lines>
//	=======
//	<right lines>
//	>>>>>>> <right-label>
func markerBlock(c Conflict, opts Options) []string {
	block := make([]string, 0, len(c.Left)+len(c.Base)+len(c.Right)+4)
	block = append(block, opts.Markers.Left+" "+opts.LeftLabel+"\n")
	block = append(block, c.Left...)
	block = append(block, opts.Markers.Base+" "+opts.BaseLabel+"\n")
	block = append(block, c.Base...)
	block = append(block, opts.Markers.Sep+"\n")
	block = append(block, c.Right...)
	block = append(block, opts.Markers.Right+" "+opts.RightLabel+"\n")
	return block
}
