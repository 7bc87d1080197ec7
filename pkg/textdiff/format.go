package textdiff

import (
	"fmt"
	"strings"
)

// Format renders an edit script in the classic two-file diff style:
//
//	--- a/<aName>
//	+++ b/<bName>
//	 unchanged line
//	-deleted line
//	+inserted line
//
// Line terminators are stripped before printing so CRLF input does not
// produce stray carriage returns.
func Format(aName, bName string, ops []Op) string {
	if len(ops) == 0 {
		return ""
	}

	changed := false
	for _, op := range ops {
		if op.Kind != Equal {
			changed = true
			break
		}
	}
	if !changed {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- a/%s\n", aName)
	fmt.Fprintf(&b, "+++ b/%s\n", bName)

	for _, op := range ops {
		text := strings.TrimRight(op.Text, "\r\n")
		switch op.Kind {
		case Delete:
			fmt.Fprintf(&b, "-%s\n", text)
		case Insert:
			fmt.Fprintf(&b, "+%s\n", text)
		case Equal:
			fmt.Fprintf(&b, " %s\n", text)
		}
	}

	return b.String()
}
