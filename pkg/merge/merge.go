// Package merge implements a three-way merge of line-oriented text.
//
// Given a common ancestor ("base") and two independently edited derivatives
// ("left" and "right"), Merge folds non-conflicting changes automatically
// and surfaces the regions both sides touched incompatibly as addressable
// conflicts. Lines are opaque strings that keep their original terminator
// bytes, so concatenating Result.Lines reproduces byte-exact content.
//
// Merge and Result.Resolve are pure: they never mutate their inputs and
// never hold state between calls. Resolving a conflict returns a new
// snapshot with the merged lines fully re-derived from the region list and
// the updated conflict set.
package merge

import (
	"errors"
	"fmt"
	"strings"
)

// RegionType classifies a segment of the merge output.
type RegionType int

const (
	Unchanged    RegionType = iota // Neither side touched this base span.
	LeftChanged                    // Only left touched it.
	RightChanged                   // Only right touched it.
	BothSame                       // Both touched it with identical content.
	Conflicted                     // Both touched it with different content.
)

func (t RegionType) String() string {
	switch t {
	case Unchanged:
		return "unchanged"
	case LeftChanged:
		return "left"
	case RightChanged:
		return "right"
	case BothSame:
		return "both"
	case Conflicted:
		return "conflict"
	default:
		return fmt.Sprintf("RegionType(%d)", int(t))
	}
}

// Resolution selects the content a conflict resolves to.
type Resolution int

const (
	Unresolved        Resolution = iota // No resolution chosen yet.
	UseLeft                             // Take the left side's lines.
	UseRight                            // Take the right side's lines.
	UseBase                             // Take the base lines.
	UseBothLeftFirst                    // Left lines followed by right lines.
	UseBothRightFirst                   // Right lines followed by left lines.
	UseCustom                           // Caller-supplied lines.
)

func (r Resolution) String() string {
	switch r {
	case Unresolved:
		return "unresolved"
	case UseLeft:
		return "left"
	case UseRight:
		return "right"
	case UseBase:
		return "base"
	case UseBothLeftFirst:
		return "both-left"
	case UseBothRightFirst:
		return "both-right"
	case UseCustom:
		return "custom"
	default:
		return fmt.Sprintf("Resolution(%d)", int(r))
	}
}

// ParseResolution maps the textual form used by the CLI and session files
// back to a Resolution. Unresolved is not accepted.
func ParseResolution(s string) (Resolution, error) {
	switch s {
	case "left":
		return UseLeft, nil
	case "right":
		return UseRight, nil
	case "base":
		return UseBase, nil
	case "both-left":
		return UseBothLeftFirst, nil
	case "both-right":
		return UseBothRightFirst, nil
	case "custom":
		return UseCustom, nil
	}
	return Unresolved, fmt.Errorf("parse resolution %q: %w", s, ErrUnknownResolution)
}

// Strategy picks the initial resolution applied to each conflict at merge
// time.
type Strategy int

const (
	Manual      Strategy = iota // Leave conflicts unresolved, render markers.
	FavorLeft                   // Resolve every conflict to the left lines.
	FavorRight                  // Resolve every conflict to the right lines.
	FavorShorter                // Resolve to the side with fewer lines; ties favor left.
	FavorLonger                 // Resolve to the side with more lines; ties favor left.
)

func (s Strategy) String() string {
	switch s {
	case Manual:
		return "manual"
	case FavorLeft:
		return "left"
	case FavorRight:
		return "right"
	case FavorShorter:
		return "shorter"
	case FavorLonger:
		return "longer"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy maps the textual form used by the CLI and config files back
// to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "", "manual":
		return Manual, nil
	case "left":
		return FavorLeft, nil
	case "right":
		return FavorRight, nil
	case "shorter":
		return FavorShorter, nil
	case "longer":
		return FavorLonger, nil
	}
	return Manual, fmt.Errorf("unknown merge strategy %q", s)
}

// Markers holds the four marker strings used when rendering and parsing
// conflict blocks. The zero value is replaced by DefaultMarkers.
type Markers struct {
	Left  string // Opens the left section, followed by the left label.
	Base  string // Opens the base section, followed by the base label.
	Sep   string // Separates base from right.
	Right string // Closes the block, followed by the right label.
}

// DefaultMarkers returns the git-style diff3 marker strings.
func DefaultMarkers() Markers {
	return Markers{
		Left:  "<<<<<<<",
		Base:  "|||||||",
		Sep:   "=======",
		Right: ">>>>>>>",
	}
}

// Options configures one merge. It is an explicit value handed to Merge;
// the package keeps no process-wide configuration.
type Options struct {
	Strategy   Strategy
	Markers    Markers
	LeftLabel  string // Shown after the left marker; defaults to "left".
	BaseLabel  string // Shown after the base marker; defaults to "base".
	RightLabel string // Shown after the right marker; defaults to "right".
}

func (o Options) withDefaults() Options {
	if o.Markers == (Markers{}) {
		o.Markers = DefaultMarkers()
	}
	if o.LeftLabel == "" {
		o.LeftLabel = "left"
	}
	if o.BaseLabel == "" {
		o.BaseLabel = "base"
	}
	if o.RightLabel == "" {
		o.RightLabel = "right"
	}
	return o
}

// Region is one segment of the ordered, gap-free partition of the base
// range [0, len(base)). Side ranges are half-open indexes into the left and
// right sequences. Lines holds the merge output for every type except
// Conflicted, whose output is determined by the corresponding Conflict.
type Region struct {
	Type RegionType

	BaseStart, BaseEnd   int
	LeftStart, LeftEnd   int
	RightStart, RightEnd int

	Lines []string // Output lines; nil for Conflicted regions.

	// Retained content for Conflicted regions.
	Base  []string
	Left  []string
	Right []string
}

// Conflict is an addressable conflicting region. ID is assigned once at
// merge time, by ascending base position, and equals the ordinal index of
// the backing Conflicted region among all Conflicted regions.
type Conflict struct {
	ID int

	BaseStart, BaseEnd   int
	LeftStart, LeftEnd   int
	RightStart, RightEnd int

	Base  []string
	Left  []string
	Right []string

	Resolution Resolution
	Resolved   []string // Content chosen by Resolution; nil while Unresolved.
	Auto       bool     // True if resolved by AutoResolve rather than a caller.
}

// Result is an immutable snapshot of one merge. Resolving a conflict
// produces a new Result; the one passed in is never modified.
type Result struct {
	Lines   []string     // Merged output; unresolved conflicts render as marker blocks.
	Origins []RegionType // Per-output-line provenance, aligned with Lines.

	Regions   []Region   // Ordered, gap-free partition of the base range.
	Conflicts []Conflict // Ordered by ID.

	AutoResolved int // Conflicts resolved by AutoResolve.

	Options Options
}

// Sentinel errors for caller-distinguishable failure modes of Resolve and
// the marker stripper.
var (
	ErrConflictID        = errors.New("conflict id out of range")
	ErrCustomContent     = errors.New("custom resolution requires content")
	ErrUnknownResolution = errors.New("unknown resolution kind")

	// ErrInternal reports an internal-consistency failure: a conflict whose
	// backing region cannot be found. It signals a library bug, not caller
	// misuse.
	ErrInternal = errors.New("internal: conflict has no backing region")
)

// Merge performs a three-way merge of base, left, and right. Each element
// is one line including its terminator bytes. The zero Options value gives
// a manual-strategy merge with git-style markers.
func Merge(base, left, right []string, opts Options) Result {
	opts = opts.withDefaults()

	leftRegions := extractRegions(base, left)
	rightRegions := extractRegions(base, right)

	regions := sweepRegions(base, left, right, leftRegions, rightRegions)

	var conflicts []Conflict
	for _, reg := range regions {
		if reg.Type != Conflicted {
			continue
		}
		conflicts = append(conflicts, Conflict{
			ID:         len(conflicts),
			BaseStart:  reg.BaseStart,
			BaseEnd:    reg.BaseEnd,
			LeftStart:  reg.LeftStart,
			LeftEnd:    reg.LeftEnd,
			RightStart: reg.RightStart,
			RightEnd:   reg.RightEnd,
			Base:       reg.Base,
			Left:       reg.Left,
			Right:      reg.Right,
		})
	}

	applyStrategy(conflicts, opts.Strategy)

	r := Result{
		Regions:   regions,
		Conflicts: conflicts,
		Options:   opts,
	}
	r.Lines, r.Origins = render(regions, conflicts, opts)
	return r
}

// applyStrategy sets the initial resolution on each conflict. Manual leaves
// everything unresolved.
func applyStrategy(conflicts []Conflict, s Strategy) {
	for i := range conflicts {
		c := &conflicts[i]
		switch s {
		case FavorLeft:
			c.Resolution, c.Resolved = UseLeft, c.Left
		case FavorRight:
			c.Resolution, c.Resolved = UseRight, c.Right
		case FavorShorter:
			if len(c.Left) <= len(c.Right) {
				c.Resolution, c.Resolved = UseLeft, c.Left
			} else {
				c.Resolution, c.Resolved = UseRight, c.Right
			}
		case FavorLonger:
			if len(c.Left) >= len(c.Right) {
				c.Resolution, c.Resolved = UseLeft, c.Left
			} else {
				c.Resolution, c.Resolved = UseRight, c.Right
			}
		}
	}
}

// HasConflicts reports whether any conflict is still unresolved.
func (r Result) HasConflicts() bool {
	for _, c := range r.Conflicts {
		if c.Resolution == Unresolved {
			return true
		}
	}
	return false
}

// Unresolved returns the conflicts that still need a resolution, in ID
// order.
func (r Result) Unresolved() []Conflict {
	var out []Conflict
	for _, c := range r.Conflicts {
		if c.Resolution == Unresolved {
			out = append(out, c)
		}
	}
	return out
}

// Text returns the merged output as a single string. Unresolved conflicts
// appear as marker blocks.
func (r Result) Text() string {
	var b strings.Builder
	for _, line := range r.Lines {
		b.WriteString(line)
	}
	return b.String()
}

// clone copies the slices a Resolve call will replace, so the receiver
// snapshot stays untouched.
func (r Result) clone() Result {
	out := r
	out.Conflicts = make([]Conflict, len(r.Conflicts))
	copy(out.Conflicts, r.Conflicts)
	return out
}

func equalLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func copyRange(lines []string, from, to int) []string {
	if from >= to {
		return nil
	}
	out := make([]string, to-from)
	copy(out, lines[from:to])
	return out
}
