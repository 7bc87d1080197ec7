package merge

import "fmt"

// Resolve applies one resolution to the conflict with the given id and
// returns a new snapshot; the receiver is left untouched. custom supplies
// the content for UseCustom and must be non-nil for it (an empty non-nil
// slice deletes the conflicting span); it is ignored for every other kind.
//
// The merged lines of the returned snapshot are fully re-derived from the
// region partition and the updated conflict set.
func (r Result) Resolve(id int, resolution Resolution, custom []string) (Result, error) {
	if id < 0 || id >= len(r.Conflicts) {
		return Result{}, fmt.Errorf("resolve conflict %d: %w", id, ErrConflictID)
	}

	c := r.Conflicts[id]

	lines, err := resolvedLines(c, resolution, custom)
	if err != nil {
		return Result{}, fmt.Errorf("resolve conflict %d: %w", id, err)
	}

	if nthConflictRegion(r.Regions, id) < 0 {
		return Result{}, fmt.Errorf("resolve conflict %d: %w", id, ErrInternal)
	}

	c.Resolution = resolution
	c.Resolved = lines

	out := r.clone()
	// A caller's choice supersedes an automatic one, so the auto count
	// tracks the Auto flags exactly.
	if c.Auto {
		out.AutoResolved--
		c.Auto = false
	}
	out.Conflicts[id] = c
	out.Lines, out.Origins = render(out.Regions, out.Conflicts, out.Options)
	return out, nil
}

// resolvedLines computes the content a resolution kind selects for a
// conflict.
func resolvedLines(c Conflict, resolution Resolution, custom []string) ([]string, error) {
	switch resolution {
	case UseLeft:
		return c.Left, nil
	case UseRight:
		return c.Right, nil
	case UseBase:
		return c.Base, nil
	case UseBothLeftFirst:
		return concatLines(c.Left, c.Right), nil
	case UseBothRightFirst:
		return concatLines(c.Right, c.Left), nil
	case UseCustom:
		if custom == nil {
			return nil, ErrCustomContent
		}
		return custom, nil
	default:
		return nil, ErrUnknownResolution
	}
}

// nthConflictRegion returns the index of the n-th Conflicted region, or -1.
// Conflict IDs are ordinals over the Conflicted regions, so this is the
// lookup backing a conflict; a miss means the snapshot is corrupt.
func nthConflictRegion(regions []Region, n int) int {
	seen := 0
	for i := range regions {
		if regions[i].Type != Conflicted {
			continue
		}
		if seen == n {
			return i
		}
		seen++
	}
	return -1
}

func concatLines(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out
}
