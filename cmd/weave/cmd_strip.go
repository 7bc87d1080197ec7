package main

import (
	"github.com/spf13/cobra"

	"github.com/odvcencio/weave/pkg/fileio"
	"github.com/odvcencio/weave/pkg/markers"
	"github.com/odvcencio/weave/pkg/merge"
)

func newStripCmd() *cobra.Command {
	var (
		keep   string
		output string
		backup bool
	)

	cmd := &cobra.Command{
		Use:   "strip <marked-file>",
		Short: "Remove conflict markers, keeping a chosen side",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			policy, err := merge.ParseResolution(keep)
			if err != nil {
				return err
			}

			lines, err := fileio.ReadLines(args[0])
			if err != nil {
				return err
			}

			stripped, err := markers.Strip(lines, merge.DefaultMarkers(), policy)
			if err != nil {
				return err
			}

			data := fileio.Join(stripped)
			if output == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			return fileio.WriteAtomic(output, data, backup)
		},
	}

	cmd.Flags().StringVar(&keep, "keep", "left", "side to keep: left, right, base, both-left, both-right")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write stripped output to file instead of stdout")
	cmd.Flags().BoolVar(&backup, "backup", false, "keep a .orig copy when overwriting the output file")

	return cmd
}
