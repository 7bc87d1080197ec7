// Package markers parses and strips textual conflict markers from a
// merged-with-markers document, recovering the left/base/right line groups
// so manually edited conflict files can be round-tripped.
//
// Parsing is deliberately lenient: a marker sequence that never completes —
// missing separator, missing closer, a second opener before the first block
// closes — is left as ordinary text rather than reported as an error.
// Callers that need strict validation check HasMarkers after stripping.
package markers

import (
	"fmt"
	"strings"

	"github.com/odvcencio/weave/pkg/merge"
)

// Block is one complete conflict-marker block found in a document. Line
// groups keep their terminator bytes; marker lines themselves are not
// included.
type Block struct {
	Start int // Index of the opening marker line.
	End   int // Index just past the closing marker line.

	LeftLabel  string
	BaseLabel  string
	RightLabel string

	Left  []string
	Base  []string
	Right []string

	HasBase bool // True when a ||||||| section was present (diff3 style).
}

// Scan finds every complete marker block in lines. Incomplete or nested
// marker sequences produce no block.
func Scan(lines []string, m merge.Markers) []Block {
	m = normalize(m)

	var blocks []Block
	i := 0
	for i < len(lines) {
		if _, ok := matchMarker(lines[i], m.Left); !ok {
			i++
			continue
		}
		block, ok := parseBlock(lines, i, m)
		if !ok {
			// Malformed opener: keep it as plain text.
			i++
			continue
		}
		blocks = append(blocks, block)
		i = block.End
	}
	return blocks
}

// HasMarkers reports whether lines contain at least one complete marker
// block.
func HasMarkers(lines []string, m merge.Markers) bool {
	return len(Scan(lines, m)) > 0
}

// Strip removes every complete marker block from lines, substituting the
// content the policy selects. Malformed marker text passes through
// untouched. UseCustom is not a valid policy here — there is no custom
// content to substitute.
func Strip(lines []string, m merge.Markers, policy merge.Resolution) ([]string, error) {
	switch policy {
	case merge.UseLeft, merge.UseRight, merge.UseBase,
		merge.UseBothLeftFirst, merge.UseBothRightFirst:
	case merge.UseCustom:
		return nil, fmt.Errorf("strip markers: %w", merge.ErrCustomContent)
	default:
		return nil, fmt.Errorf("strip markers: %w", merge.ErrUnknownResolution)
	}

	blocks := Scan(lines, m)

	var out []string
	pos := 0
	for _, b := range blocks {
		out = append(out, lines[pos:b.Start]...)
		switch policy {
		case merge.UseLeft:
			out = append(out, b.Left...)
		case merge.UseRight:
			out = append(out, b.Right...)
		case merge.UseBase:
			out = append(out, b.Base...)
		case merge.UseBothLeftFirst:
			out = append(out, b.Left...)
			out = append(out, b.Right...)
		case merge.UseBothRightFirst:
			out = append(out, b.Right...)
			out = append(out, b.Left...)
		}
		pos = b.End
	}
	out = append(out, lines[pos:]...)
	return out, nil
}

// parseBlock attempts to parse one complete block opening at index start.
// The base section is optional; encountering a second opener before the
// block closes aborts the parse.
func parseBlock(lines []string, start int, m merge.Markers) (Block, bool) {
	block := Block{Start: start}

	label, _ := matchMarker(lines[start], m.Left)
	block.LeftLabel = label

	const (
		inLeft = iota
		inBase
		inRight
	)
	section := inLeft

	for i := start + 1; i < len(lines); i++ {
		line := lines[i]

		if _, ok := matchMarker(line, m.Left); ok {
			return Block{}, false // nested opener
		}

		if label, ok := matchMarker(line, m.Base); ok && section == inLeft {
			block.BaseLabel = label
			block.HasBase = true
			section = inBase
			continue
		}
		if _, ok := matchMarker(line, m.Sep); ok && section != inRight {
			section = inRight
			continue
		}
		if label, ok := matchMarker(line, m.Right); ok {
			if section != inRight {
				return Block{}, false // closer before separator
			}
			block.RightLabel = label
			block.End = i + 1
			return block, true
		}

		switch section {
		case inLeft:
			block.Left = append(block.Left, line)
		case inBase:
			block.Base = append(block.Base, line)
		case inRight:
			block.Right = append(block.Right, line)
		}
	}

	return Block{}, false // unterminated
}

// matchMarker reports whether line is the given marker, optionally followed
// by a label. The line terminator is ignored.
func matchMarker(line, marker string) (label string, ok bool) {
	trimmed := strings.TrimRight(line, "\r\n")
	if trimmed == marker {
		return "", true
	}
	if strings.HasPrefix(trimmed, marker+" ") {
		return strings.TrimPrefix(trimmed, marker+" "), true
	}
	return "", false
}

func normalize(m merge.Markers) merge.Markers {
	if m == (merge.Markers{}) {
		return merge.DefaultMarkers()
	}
	return m
}
