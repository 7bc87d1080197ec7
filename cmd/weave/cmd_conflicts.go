package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/odvcencio/weave/pkg/fileio"
	"github.com/odvcencio/weave/pkg/markers"
	"github.com/odvcencio/weave/pkg/merge"
)

func newConflictsCmd() *cobra.Command {
	var sessionPath string

	cmd := &cobra.Command{
		Use:   "conflicts [marked-file]",
		Short: "List unresolved conflicts with suggested resolutions",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if sessionPath != "" {
				result, _, err := reopenSession(sessionPath)
				if err != nil {
					return err
				}
				printConflicts(out, result)
				return nil
			}

			if len(args) != 1 {
				return fmt.Errorf("either --session or a marked file is required")
			}

			lines, err := fileio.ReadLines(args[0])
			if err != nil {
				return err
			}
			printBlocks(out, markers.Scan(lines, merge.DefaultMarkers()))
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionPath, "session", "", "merge session file")

	return cmd
}

func printConflicts(out io.Writer, result merge.Result) {
	unresolved := result.Unresolved()
	if len(unresolved) == 0 {
		fmt.Fprintln(out, "no unresolved conflicts")
		return
	}

	for _, c := range unresolved {
		fmt.Fprintf(out, "conflict %d: base %d-%d, left %d-%d, right %d-%d\n",
			c.ID,
			c.BaseStart+1, c.BaseEnd,
			c.LeftStart+1, c.LeftEnd,
			c.RightStart+1, c.RightEnd,
		)
		for _, s := range merge.Suggest(c) {
			fmt.Fprintf(out, "  suggest %-10s %.1f  %s\n", s.Resolution, s.Confidence, s.Reason)
		}
	}
}

func printBlocks(out io.Writer, blocks []markers.Block) {
	if len(blocks) == 0 {
		fmt.Fprintln(out, "no conflict markers found")
		return
	}

	for i, b := range blocks {
		fmt.Fprintf(out, "conflict %d: lines %d-%d", i, b.Start+1, b.End)
		var labels []string
		if b.LeftLabel != "" {
			labels = append(labels, b.LeftLabel)
		}
		if b.RightLabel != "" {
			labels = append(labels, b.RightLabel)
		}
		if len(labels) > 0 {
			fmt.Fprintf(out, " (%s)", strings.Join(labels, " vs "))
		}
		fmt.Fprintln(out)
	}
}
