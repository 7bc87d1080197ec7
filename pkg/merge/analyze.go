package merge

import (
	"sort"
	"strings"
)

// Suggestion is a heuristic recommendation for resolving a conflict,
// ranked by confidence. It never applies itself; callers pass the chosen
// Resolution to Result.Resolve.
type Suggestion struct {
	Resolution Resolution
	Confidence float64
	Reason     string
}

// Suggest runs the read-only heuristics over a conflict's left and right
// content and returns suggestions ordered by descending confidence.
func Suggest(c Conflict) []Suggestion {
	var out []Suggestion

	if len(c.Left) > 0 && len(c.Right) > 0 && equalIgnoringSpace(c.Left, c.Right) {
		out = append(out, Suggestion{
			Resolution: UseLeft,
			Confidence: 0.9,
			Reason:     "sides differ only in whitespace",
		})
	}

	if len(c.Left) == 0 && len(c.Right) > 0 {
		out = append(out, Suggestion{
			Resolution: UseRight,
			Confidence: 0.8,
			Reason:     "left side is empty",
		})
	}
	if len(c.Right) == 0 && len(c.Left) > 0 {
		out = append(out, Suggestion{
			Resolution: UseLeft,
			Confidence: 0.8,
			Reason:     "right side is empty",
		})
	}

	if len(c.Left) > 0 && len(c.Right) > 0 {
		leftSet := lineSet(c.Left)
		rightSet := lineSet(c.Right)
		switch {
		case isSubset(leftSet, rightSet) && !isSubset(rightSet, leftSet):
			out = append(out, Suggestion{
				Resolution: UseRight,
				Confidence: 0.6,
				Reason:     "left lines are a subset of right",
			})
		case isSubset(rightSet, leftSet) && !isSubset(leftSet, rightSet):
			out = append(out, Suggestion{
				Resolution: UseLeft,
				Confidence: 0.6,
				Reason:     "right lines are a subset of left",
			})
		}

		if !equalLines(c.Left, c.Right) && sortedEqual(c.Left, c.Right) {
			out = append(out, Suggestion{
				Resolution: UseLeft,
				Confidence: 0.5,
				Reason:     "same lines in a different order",
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Confidence > out[j].Confidence
	})
	return out
}

// Resolver is a pluggable auto-resolution callback. Returning non-nil
// content resolves the conflict to that content; returning nil declines.
type Resolver func(c Conflict) []string

// AutoResolve applies best-effort automatic resolutions to every
// unresolved conflict and returns a new snapshot; the receiver is left
// untouched. Built-in rules run first — exact equality, then
// trailing-whitespace-insensitive equality, both resolving to the left
// lines — followed by the supplied resolvers in order; the first resolver
// returning non-nil content wins. Conflicts no rule matches stay
// unresolved.
func (r Result) AutoResolve(resolvers ...Resolver) Result {
	out := r.clone()

	for i := range out.Conflicts {
		c := &out.Conflicts[i]
		if c.Resolution != Unresolved {
			continue
		}

		switch {
		case equalLines(c.Left, c.Right):
			c.Resolution, c.Resolved = UseLeft, c.Left
		case equalTrimTrailing(c.Left, c.Right):
			c.Resolution, c.Resolved = UseLeft, c.Left
		default:
			for _, resolve := range resolvers {
				if content := resolve(*c); content != nil {
					c.Resolution, c.Resolved = UseCustom, content
					break
				}
			}
		}

		if c.Resolution != Unresolved {
			c.Auto = true
			out.AutoResolved++
		}
	}

	out.Lines, out.Origins = render(out.Regions, out.Conflicts, out.Options)
	return out
}

// equalIgnoringSpace compares two line lists with all whitespace removed.
func equalIgnoringSpace(a, b []string) bool {
	return stripSpace(a) == stripSpace(b)
}

func stripSpace(lines []string) string {
	var b strings.Builder
	for _, l := range lines {
		for _, r := range l {
			if r != ' ' && r != '\t' && r != '\r' && r != '\n' {
				b.WriteRune(r)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// equalTrimTrailing compares two line lists ignoring trailing whitespace on
// each line.
func equalTrimTrailing(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if strings.TrimRight(a[i], " \t\r\n") != strings.TrimRight(b[i], " \t\r\n") {
			return false
		}
	}
	return true
}

func lineSet(lines []string) map[string]bool {
	set := make(map[string]bool, len(lines))
	for _, l := range lines {
		set[l] = true
	}
	return set
}

func isSubset(a, b map[string]bool) bool {
	for l := range a {
		if !b[l] {
			return false
		}
	}
	return true
}

// sortedEqual reports whether two line lists hold the same lines in a
// different order, counting duplicates.
func sortedEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := make([]string, len(a))
	bs := make([]string, len(b))
	copy(as, a)
	copy(bs, b)
	sort.Strings(as)
	sort.Strings(bs)
	return equalLines(as, bs)
}
