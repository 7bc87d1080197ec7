// Package session persists an in-progress merge between CLI invocations.
//
// A session records only inputs and decisions — the file paths, their
// fingerprints, the merge options, and the sequence of resolutions applied
// so far — never derived state. Reloading re-runs the (deterministic) merge
// and replays the decisions, so the merged output stays a pure function of
// the inputs and the recorded steps across process boundaries.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/klauspost/compress/zstd"
	"golang.org/x/crypto/blake2b"

	"github.com/odvcencio/weave/pkg/fileio"
	"github.com/odvcencio/weave/pkg/merge"
)

// ErrStale reports that a session's inputs changed on disk after the
// session was created.
var ErrStale = errors.New("input changed since session was created")

// Step is one recorded resolution.
type Step struct {
	Conflict   int      `json:"conflict"`
	Resolution string   `json:"resolution"`
	Custom     []string `json:"custom,omitempty"`
}

// Session is the on-disk record of an in-progress merge.
type Session struct {
	BasePath  string `json:"base_path"`
	LeftPath  string `json:"left_path"`
	RightPath string `json:"right_path"`

	// blake2b-256 fingerprints of the three inputs at session creation.
	BaseSum  string `json:"base_sum"`
	LeftSum  string `json:"left_sum"`
	RightSum string `json:"right_sum"`

	Strategy string `json:"strategy"`
	Auto     bool   `json:"auto,omitempty"` // re-apply AutoResolve on reopen

	Markers    merge.Markers `json:"markers"`
	LeftLabel  string        `json:"left_label"`
	BaseLabel  string        `json:"base_label"`
	RightLabel string        `json:"right_label"`

	Steps []Step `json:"steps,omitempty"`
}

// New creates a session over three input files already read into memory.
func New(basePath, leftPath, rightPath string, base, left, right []byte, opts merge.Options) *Session {
	return &Session{
		BasePath:   basePath,
		LeftPath:   leftPath,
		RightPath:  rightPath,
		BaseSum:    fingerprint(base),
		LeftSum:    fingerprint(left),
		RightSum:   fingerprint(right),
		Strategy:   opts.Strategy.String(),
		Markers:    opts.Markers,
		LeftLabel:  opts.LeftLabel,
		BaseLabel:  opts.BaseLabel,
		RightLabel: opts.RightLabel,
	}
}

// Options reconstructs the merge options the session was created with.
func (s *Session) Options() (merge.Options, error) {
	strategy, err := merge.ParseStrategy(s.Strategy)
	if err != nil {
		return merge.Options{}, fmt.Errorf("session options: %w", err)
	}
	return merge.Options{
		Strategy:   strategy,
		Markers:    s.Markers,
		LeftLabel:  s.LeftLabel,
		BaseLabel:  s.BaseLabel,
		RightLabel: s.RightLabel,
	}, nil
}

// Record appends one resolution step.
func (s *Session) Record(conflict int, resolution merge.Resolution, custom []string) {
	s.Steps = append(s.Steps, Step{
		Conflict:   conflict,
		Resolution: resolution.String(),
		Custom:     custom,
	})
}

// Verify checks the three inputs against the fingerprints taken at session
// creation.
func (s *Session) Verify(base, left, right []byte) error {
	switch {
	case fingerprint(base) != s.BaseSum:
		return fmt.Errorf("verify session: base %s: %w", s.BasePath, ErrStale)
	case fingerprint(left) != s.LeftSum:
		return fmt.Errorf("verify session: left %s: %w", s.LeftPath, ErrStale)
	case fingerprint(right) != s.RightSum:
		return fmt.Errorf("verify session: right %s: %w", s.RightPath, ErrStale)
	}
	return nil
}

// Replay applies the recorded steps to a fresh merge result, threading each
// returned snapshot into the next step.
func (s *Session) Replay(r merge.Result) (merge.Result, error) {
	for i, step := range s.Steps {
		resolution, err := merge.ParseResolution(step.Resolution)
		if err != nil {
			return merge.Result{}, fmt.Errorf("replay step %d: %w", i, err)
		}
		custom := step.Custom
		if resolution == merge.UseCustom && custom == nil {
			custom = []string{}
		}
		r, err = r.Resolve(step.Conflict, resolution, custom)
		if err != nil {
			return merge.Result{}, fmt.Errorf("replay step %d: %w", i, err)
		}
	}
	return r, nil
}

// Save writes the session to path as zstd-compressed JSON, atomically.
func Save(path string, s *Session) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("save session: marshal: %w", err)
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	defer enc.Close()
	compressed := enc.EncodeAll(data, nil)

	if err := fileio.WriteAtomic(path, compressed, false); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Load reads a session written by Save.
func Load(path string) (*Session, error) {
	compressed, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	defer dec.Close()

	data, err := dec.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("load session: decompress: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("load session: unmarshal: %w", err)
	}
	return &s, nil
}

func fingerprint(data []byte) string {
	sum := blake2b.Sum256(data)
	return fmt.Sprintf("%x", sum)
}
