package merge

import "testing"

func topSuggestion(t *testing.T, c Conflict) Suggestion {
	t.Helper()
	s := Suggest(c)
	if len(s) == 0 {
		t.Fatal("expected at least one suggestion")
	}
	return s[0]
}

func TestSuggest_EmptyLeft(t *testing.T) {
	c := Conflict{Right: []string{"x\n"}}

	top := topSuggestion(t, c)
	if top.Resolution != UseRight || top.Confidence != 0.8 {
		t.Errorf("top = %+v, want UseRight at 0.8", top)
	}
}

func TestSuggest_EmptyRight(t *testing.T) {
	c := Conflict{Left: []string{"x\n"}}

	top := topSuggestion(t, c)
	if top.Resolution != UseLeft || top.Confidence != 0.8 {
		t.Errorf("top = %+v, want UseLeft at 0.8", top)
	}
}

func TestSuggest_WhitespaceOnlyDivergence(t *testing.T) {
	c := Conflict{
		Left:  []string{"if x {\n"},
		Right: []string{"if  x  {\n"},
	}

	top := topSuggestion(t, c)
	if top.Resolution != UseLeft || top.Confidence != 0.9 {
		t.Errorf("top = %+v, want UseLeft at 0.9", top)
	}
}

func TestSuggest_Subset(t *testing.T) {
	c := Conflict{
		Left:  []string{"a\n"},
		Right: []string{"a\n", "b\n"},
	}

	top := topSuggestion(t, c)
	if top.Resolution != UseRight || top.Confidence != 0.6 {
		t.Errorf("top = %+v, want UseRight at 0.6", top)
	}
}

func TestSuggest_Reordering(t *testing.T) {
	c := Conflict{
		Left:  []string{"a\n", "b\n"},
		Right: []string{"b\n", "a\n"},
	}

	found := false
	for _, s := range Suggest(c) {
		if s.Confidence == 0.5 {
			found = true
		}
	}
	if !found {
		t.Error("expected a reordering suggestion at 0.5")
	}
}

func TestSuggest_RankedByConfidence(t *testing.T) {
	fixtures := []Conflict{
		{Left: []string{"a\n"}, Right: []string{"a\n", "b\n"}},
		{Right: []string{"x\n"}},
		{Left: []string{"a\n", "b\n"}, Right: []string{"b\n", "a\n"}},
	}

	for _, c := range fixtures {
		s := Suggest(c)
		for i := 1; i < len(s); i++ {
			if s[i].Confidence > s[i-1].Confidence {
				t.Errorf("suggestions out of order: %+v", s)
			}
		}
	}
}

func TestSuggest_NoMatch(t *testing.T) {
	c := Conflict{
		Left:  []string{"completely\n"},
		Right: []string{"different\n"},
	}

	if s := Suggest(c); len(s) != 0 {
		t.Errorf("expected no suggestions, got %+v", s)
	}
}

// ---------------------------------------------------------------------------
// AutoResolve
// ---------------------------------------------------------------------------

func TestAutoResolve_TrailingWhitespace(t *testing.T) {
	base := lines("a\nb\nc\n")
	left := lines("a\nX\nc\n")
	right := []string{"a\n", "X \n", "c\n"}

	r := Merge(base, left, right, Options{}).AutoResolve()

	if r.HasConflicts() {
		t.Fatalf("expected auto-resolution, still conflicted:\n%s", r.Text())
	}
	if r.AutoResolved != 1 {
		t.Errorf("AutoResolved = %d, want 1", r.AutoResolved)
	}
	if !r.Conflicts[0].Auto {
		t.Error("conflict not flagged as auto-resolved")
	}
	if r.Text() != "a\nX\nc\n" {
		t.Errorf("merged = %q, want left content", r.Text())
	}
}

// Re-resolving an auto-resolved conflict by hand must drop it from the
// auto count, keeping AutoResolved equal to the number of Auto flags.
func TestAutoResolve_OverriddenByCaller(t *testing.T) {
	base := lines("a\nb\nc\n")
	left := lines("a\nX\nc\n")
	right := []string{"a\n", "X \n", "c\n"}

	r := Merge(base, left, right, Options{}).AutoResolve()
	if r.AutoResolved != 1 {
		t.Fatalf("AutoResolved = %d, want 1", r.AutoResolved)
	}

	r2, err := r.Resolve(0, UseRight, nil)
	if err != nil {
		t.Fatal(err)
	}
	if r2.AutoResolved != 0 {
		t.Errorf("AutoResolved after manual override = %d, want 0", r2.AutoResolved)
	}
	if r2.Conflicts[0].Auto {
		t.Error("overridden conflict still flagged as auto-resolved")
	}
	if r.AutoResolved != 1 || !r.Conflicts[0].Auto {
		t.Error("original snapshot modified by Resolve")
	}
}

func TestAutoResolve_LeavesRealConflictsAlone(t *testing.T) {
	base := lines("a\nb\nc\n")
	left := lines("a\nX\nc\n")
	right := lines("a\nY\nc\n")

	r := Merge(base, left, right, Options{}).AutoResolve()

	if !r.HasConflicts() {
		t.Fatal("a real conflict must stay unresolved")
	}
	if r.AutoResolved != 0 {
		t.Errorf("AutoResolved = %d, want 0", r.AutoResolved)
	}
}

func TestAutoResolve_CustomResolver(t *testing.T) {
	base := lines("a\nb\nc\n")
	left := lines("a\nX\nc\n")
	right := lines("a\nY\nc\n")

	declined := false
	r := Merge(base, left, right, Options{}).AutoResolve(
		func(c Conflict) []string {
			declined = true
			return nil // decline; next resolver should run
		},
		func(c Conflict) []string {
			return []string{"RESOLVED\n"}
		},
	)

	if !declined {
		t.Error("first resolver was not consulted")
	}
	if r.HasConflicts() {
		t.Fatal("expected resolver to settle the conflict")
	}
	if r.Conflicts[0].Resolution != UseCustom || !r.Conflicts[0].Auto {
		t.Errorf("conflict = %+v, want auto UseCustom", r.Conflicts[0])
	}
	if r.Text() != "a\nRESOLVED\nc\n" {
		t.Errorf("merged = %q", r.Text())
	}
}

func TestAutoResolve_IsPure(t *testing.T) {
	base := lines("a\nb\nc\n")
	left := lines("a\nX\nc\n")
	right := []string{"a\n", "X \n", "c\n"}

	r := Merge(base, left, right, Options{})
	before := r.Text()

	r.AutoResolve()

	if r.Text() != before || r.AutoResolved != 0 {
		t.Error("AutoResolve mutated the receiver snapshot")
	}
}
