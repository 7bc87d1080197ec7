package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/odvcencio/weave/pkg/fileio"
	"github.com/odvcencio/weave/pkg/merge"
	"github.com/odvcencio/weave/pkg/session"
)

func newMergeCmd() *cobra.Command {
	var (
		output      string
		strategy    string
		leftLabel   string
		baseLabel   string
		rightLabel  string
		auto        bool
		sessionPath string
		backup      bool
		configPath  string
	)

	cmd := &cobra.Command{
		Use:   "merge <base> <left> <right>",
		Short: "Three-way merge two edits of a file against their ancestor",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			basePath, leftPath, rightPath := args[0], args[1], args[2]

			opts, err := loadOptions(configPath)
			if err != nil {
				return err
			}
			if strategy != "" {
				opts.Strategy, err = merge.ParseStrategy(strategy)
				if err != nil {
					return err
				}
			}
			if leftLabel != "" {
				opts.LeftLabel = leftLabel
			} else if opts.LeftLabel == "" {
				opts.LeftLabel = leftPath
			}
			if baseLabel != "" {
				opts.BaseLabel = baseLabel
			} else if opts.BaseLabel == "" {
				opts.BaseLabel = basePath
			}
			if rightLabel != "" {
				opts.RightLabel = rightLabel
			} else if opts.RightLabel == "" {
				opts.RightLabel = rightPath
			}

			base, err := fileio.ReadLines(basePath)
			if err != nil {
				return err
			}
			left, err := fileio.ReadLines(leftPath)
			if err != nil {
				return err
			}
			right, err := fileio.ReadLines(rightPath)
			if err != nil {
				return err
			}

			result := merge.Merge(base, left, right, opts)
			if auto {
				result = result.AutoResolve()
			}

			if sessionPath != "" {
				s := session.New(
					basePath, leftPath, rightPath,
					fileio.Join(base), fileio.Join(left), fileio.Join(right),
					result.Options,
				)
				s.Auto = auto
				if err := session.Save(sessionPath, s); err != nil {
					return err
				}
			}

			if err := writeMerged(cmd.OutOrStdout(), output, result, backup); err != nil {
				return err
			}

			printMergeSummary(cmd.ErrOrStderr(), result)

			if n := len(result.Unresolved()); n > 0 {
				return fmt.Errorf("%d unresolved conflict%s", n, plural(n))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write merged output to file instead of stdout")
	cmd.Flags().StringVar(&strategy, "strategy", "", "initial strategy: manual, left, right, shorter, longer")
	cmd.Flags().StringVar(&leftLabel, "left-label", "", "label for the left side in conflict markers")
	cmd.Flags().StringVar(&baseLabel, "base-label", "", "label for the base in conflict markers")
	cmd.Flags().StringVar(&rightLabel, "right-label", "", "label for the right side in conflict markers")
	cmd.Flags().BoolVar(&auto, "auto", false, "apply best-effort automatic conflict resolution")
	cmd.Flags().StringVar(&sessionPath, "session", "", "persist a resumable merge session to file")
	cmd.Flags().BoolVar(&backup, "backup", false, "keep a .orig copy when overwriting the output file")
	cmd.Flags().StringVar(&configPath, "config", "", "path to weave.toml")

	return cmd
}

func writeMerged(stdout io.Writer, output string, result merge.Result, backup bool) error {
	data := []byte(result.Text())
	if output == "" {
		_, err := stdout.Write(data)
		return err
	}
	return fileio.WriteAtomic(output, data, backup)
}

func printMergeSummary(out io.Writer, result merge.Result) {
	total := len(result.Conflicts)
	unresolved := len(result.Unresolved())

	switch {
	case total == 0:
		fmt.Fprintln(out, "merge completed cleanly")
	case unresolved == 0:
		fmt.Fprintf(out, "merge completed: %d conflict%s resolved", total, plural(total))
		if result.AutoResolved > 0 {
			fmt.Fprintf(out, " (%d automatically)", result.AutoResolved)
		}
		fmt.Fprintln(out)
	default:
		fmt.Fprintf(out, "merge completed with %d conflict%s", unresolved, plural(unresolved))
		if result.AutoResolved > 0 {
			fmt.Fprintf(out, " (%d resolved automatically)", result.AutoResolved)
		}
		fmt.Fprintln(out)
	}
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
