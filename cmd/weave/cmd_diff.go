package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/odvcencio/weave/pkg/fileio"
	"github.com/odvcencio/weave/pkg/textdiff"
)

func newDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <a> <b>",
		Short: "Show the line diff between two files",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := fileio.ReadLines(args[0])
			if err != nil {
				return err
			}
			b, err := fileio.ReadLines(args[1])
			if err != nil {
				return err
			}

			ops := textdiff.Lines(a, b)
			fmt.Fprint(cmd.OutOrStdout(), textdiff.Format(args[0], args[1], ops))
			return nil
		},
	}
}
