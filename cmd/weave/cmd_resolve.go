package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/odvcencio/weave/pkg/fileio"
	"github.com/odvcencio/weave/pkg/merge"
	"github.com/odvcencio/weave/pkg/session"
)

func newResolveCmd() *cobra.Command {
	var (
		sessionPath string
		contentPath string
		output      string
		backup      bool
	)

	cmd := &cobra.Command{
		Use:   "resolve <conflict-id> <left|right|base|both-left|both-right|custom>",
		Short: "Apply one resolution to a conflict in a merge session",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("conflict id %q is not a number", args[0])
			}
			resolution, err := merge.ParseResolution(args[1])
			if err != nil {
				return err
			}

			var custom []string
			if resolution == merge.UseCustom {
				if contentPath == "" {
					return fmt.Errorf("resolve: %w (use --content)", merge.ErrCustomContent)
				}
				custom, err = fileio.ReadLines(contentPath)
				if err != nil {
					return err
				}
				if custom == nil {
					custom = []string{}
				}
			}

			result, s, err := reopenSession(sessionPath)
			if err != nil {
				return err
			}

			result, err = result.Resolve(id, resolution, custom)
			if err != nil {
				return err
			}

			s.Record(id, resolution, custom)
			if err := session.Save(sessionPath, s); err != nil {
				return err
			}

			if err := writeMerged(cmd.OutOrStdout(), output, result, backup); err != nil {
				return err
			}

			remaining := len(result.Unresolved())
			if remaining == 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), "all conflicts resolved")
			} else {
				fmt.Fprintf(cmd.ErrOrStderr(), "%d conflict%s remaining\n", remaining, plural(remaining))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionPath, "session", "", "merge session file (required)")
	cmd.Flags().StringVar(&contentPath, "content", "", "file holding the lines for a custom resolution")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write merged output to file instead of stdout")
	cmd.Flags().BoolVar(&backup, "backup", false, "keep a .orig copy when overwriting the output file")
	cmd.MarkFlagRequired("session")

	return cmd
}

// reopenSession loads a session, re-reads and verifies its inputs, re-runs
// the merge, and replays the recorded resolutions.
func reopenSession(path string) (merge.Result, *session.Session, error) {
	s, err := session.Load(path)
	if err != nil {
		return merge.Result{}, nil, err
	}

	base, err := fileio.ReadLines(s.BasePath)
	if err != nil {
		return merge.Result{}, nil, err
	}
	left, err := fileio.ReadLines(s.LeftPath)
	if err != nil {
		return merge.Result{}, nil, err
	}
	right, err := fileio.ReadLines(s.RightPath)
	if err != nil {
		return merge.Result{}, nil, err
	}

	if err := s.Verify(fileio.Join(base), fileio.Join(left), fileio.Join(right)); err != nil {
		return merge.Result{}, nil, err
	}

	opts, err := s.Options()
	if err != nil {
		return merge.Result{}, nil, err
	}

	result := merge.Merge(base, left, right, opts)
	if s.Auto {
		result = result.AutoResolve()
	}
	result, err = s.Replay(result)
	if err != nil {
		return merge.Result{}, nil, err
	}
	return result, s, nil
}
