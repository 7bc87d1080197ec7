package session

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/odvcencio/weave/pkg/fileio"
	"github.com/odvcencio/weave/pkg/merge"
)

func split(s string) []string {
	return fileio.SplitLines([]byte(s))
}

func fixtureSession() (*Session, []string, []string, []string) {
	base := split("a\nb\nc\n")
	left := split("a\nX\nc\n")
	right := split("a\nY\nc\n")

	s := New(
		"base.txt", "left.txt", "right.txt",
		fileio.Join(base), fileio.Join(left), fileio.Join(right),
		merge.Options{
			Markers:    merge.DefaultMarkers(),
			LeftLabel:  "left.txt",
			BaseLabel:  "base.txt",
			RightLabel: "right.txt",
		},
	)
	return s, base, left, right
}

func TestSession_SaveLoadRoundTrip(t *testing.T) {
	s, _, _, _ := fixtureSession()
	s.Record(0, merge.UseRight, nil)

	path := filepath.Join(t.TempDir(), "merge.session")
	if err := Save(path, s); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if loaded.BasePath != s.BasePath || loaded.LeftSum != s.LeftSum {
		t.Errorf("loaded = %+v, want %+v", loaded, s)
	}
	if len(loaded.Steps) != 1 || loaded.Steps[0].Resolution != "right" {
		t.Errorf("steps = %+v", loaded.Steps)
	}
}

func TestSession_VerifyDetectsChangedInput(t *testing.T) {
	s, base, left, right := fixtureSession()

	if err := s.Verify(fileio.Join(base), fileio.Join(left), fileio.Join(right)); err != nil {
		t.Fatalf("verify of unchanged inputs failed: %v", err)
	}

	tampered := fileio.Join(split("a\nTAMPERED\nc\n"))
	if err := s.Verify(fileio.Join(base), tampered, fileio.Join(right)); !errors.Is(err, ErrStale) {
		t.Errorf("err = %v, want ErrStale", err)
	}
}

func TestSession_Replay(t *testing.T) {
	s, base, left, right := fixtureSession()
	s.Record(0, merge.UseRight, nil)

	opts, err := s.Options()
	if err != nil {
		t.Fatal(err)
	}

	result, err := s.Replay(merge.Merge(base, left, right, opts))
	if err != nil {
		t.Fatal(err)
	}

	if result.HasConflicts() {
		t.Fatal("replayed session should have no unresolved conflicts")
	}
	if result.Text() != "a\nY\nc\n" {
		t.Errorf("merged = %q, want %q", result.Text(), "a\nY\nc\n")
	}
}

func TestSession_ReplayCustomDeletion(t *testing.T) {
	s, base, left, right := fixtureSession()
	// An empty custom resolution deletes the span; omitempty drops the
	// slice on disk, so replay must restore it as non-nil.
	s.Record(0, merge.UseCustom, []string{})

	path := filepath.Join(t.TempDir(), "merge.session")
	if err := Save(path, s); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	opts, err := loaded.Options()
	if err != nil {
		t.Fatal(err)
	}
	result, err := loaded.Replay(merge.Merge(base, left, right, opts))
	if err != nil {
		t.Fatal(err)
	}
	if result.Text() != "a\nc\n" {
		t.Errorf("merged = %q, want %q", result.Text(), "a\nc\n")
	}
}

func TestSession_ReplayBadStep(t *testing.T) {
	s, base, left, right := fixtureSession()
	s.Steps = append(s.Steps, Step{Conflict: 99, Resolution: "left"})

	opts, err := s.Options()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Replay(merge.Merge(base, left, right, opts)); !errors.Is(err, merge.ErrConflictID) {
		t.Errorf("err = %v, want ErrConflictID", err)
	}
}

func TestSession_LoadRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage")
	if err := fileio.WriteAtomic(path, []byte("not a session"), false); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected an error loading garbage")
	}
}

func TestSession_OptionsRoundTrip(t *testing.T) {
	s, _, _, _ := fixtureSession()
	s.Strategy = "shorter"

	opts, err := s.Options()
	if err != nil {
		t.Fatal(err)
	}
	if opts.Strategy != merge.FavorShorter {
		t.Errorf("strategy = %v, want FavorShorter", opts.Strategy)
	}
	if !strings.HasPrefix(opts.Markers.Left, "<<<<<<<") {
		t.Errorf("markers = %+v", opts.Markers)
	}
}
