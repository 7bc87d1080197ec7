// Package textdiff computes line-level diffs between two sequences of
// text lines. Lines are opaque strings; callers that care about byte-exact
// reconstruction keep the line terminator as part of each line.
package textdiff

// OpKind classifies a single operation in an edit script.
type OpKind int

const (
	Equal  OpKind = iota // Line is present in both sequences.
	Insert               // Line is present in b only.
	Delete               // Line is present in a only.
)

// Op is a single operation in an edit script produced by Lines.
type Op struct {
	Kind OpKind
	Text string
}

// Lines computes the shortest edit script transforming a into b using the
// Myers diff algorithm over whole lines.
//
// Runs in O((N+M)*D) time where N and M are the sequence lengths and D is
// the size of the minimum edit script.
func Lines(a, b []string) []Op {
	n := len(a)
	m := len(b)

	if n == 0 && m == 0 {
		return nil
	}
	if n == 0 {
		ops := make([]Op, m)
		for i, line := range b {
			ops[i] = Op{Kind: Insert, Text: line}
		}
		return ops
	}
	if m == 0 {
		ops := make([]Op, n)
		for i, line := range a {
			ops[i] = Op{Kind: Delete, Text: line}
		}
		return ops
	}

	limit := n + m
	size := 2*limit + 1

	v := make([]int, size)

	// trace[d] holds a snapshot of v after processing edit distance d.
	var trace [][]int

	for d := 0; d <= limit; d++ {
		for k := -d; k <= d; k += 2 {
			idx := k + limit
			var x int
			if k == -d || (k != d && v[idx-1] < v[idx+1]) {
				x = v[idx+1] // move down (insert)
			} else {
				x = v[idx-1] + 1 // move right (delete)
			}
			y := x - k

			// Follow the diagonal while lines match.
			for x < n && y < m && a[x] == b[y] {
				x++
				y++
			}

			v[idx] = x

			if x >= n && y >= m {
				snap := make([]int, size)
				copy(snap, v)
				trace = append(trace, snap)
				return backtrack(trace, a, b, d)
			}
		}

		snap := make([]int, size)
		copy(snap, v)
		trace = append(trace, snap)
	}

	// Unreachable for valid inputs.
	return nil
}

// backtrack reconstructs the edit script from the trace of v snapshots.
func backtrack(trace [][]int, a, b []string, dFinal int) []Op {
	n := len(a)
	m := len(b)
	limit := n + m

	x := n
	y := m

	// Built in reverse, flipped at the end.
	var ops []Op

	for d := dFinal; d > 0; d-- {
		k := x - y
		idx := k + limit

		vPrev := trace[d-1]

		var prevK int
		if k == -d || (k != d && vPrev[idx-1] < vPrev[idx+1]) {
			prevK = k + 1 // came from an insert (down move)
		} else {
			prevK = k - 1 // came from a delete (right move)
		}

		prevX := vPrev[prevK+limit]
		prevY := prevX - prevK

		// Trace back along the diagonal.
		for x > prevX && y > prevY {
			x--
			y--
			ops = append(ops, Op{Kind: Equal, Text: a[x]})
		}

		if k == prevK+1 {
			x--
			ops = append(ops, Op{Kind: Delete, Text: a[x]})
		} else {
			y--
			ops = append(ops, Op{Kind: Insert, Text: b[y]})
		}
	}

	// Remaining diagonal at d=0.
	for x > 0 && y > 0 {
		x--
		y--
		ops = append(ops, Op{Kind: Equal, Text: a[x]})
	}

	for i, j := 0, len(ops)-1; i < j; i, j = i+1, j-1 {
		ops[i], ops[j] = ops[j], ops[i]
	}

	return ops
}
