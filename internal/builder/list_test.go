package builder

import "testing"

// makeList builds a list of n text sections with IDs "s0".."sN".
func makeList(t *testing.T, n int) SectionList {
	t.Helper()
	var l SectionList
	for i := 0; i < n; i++ {
		s, err := NewSection(SectionTextBlock)
		if err != nil {
			t.Fatal(err)
		}
		s.ID = "s" + string(rune('0'+i))
		l = l.Append(s)
	}
	return l
}

// ids returns the list's section IDs in slice order.
func ids(l SectionList) []string {
	out := make([]string, len(l))
	for i := range l {
		out[i] = l[i].ID
	}
	return out
}

// assertInvariant fails when order values are not contiguous from zero.
func assertInvariant(t *testing.T, l SectionList) {
	t.Helper()
	if err := l.CheckOrder(); err != nil {
		t.Fatalf("order invariant broken: %v", err)
	}
}

func TestAppendAssignsContiguousOrder(t *testing.T) {
	l := makeList(t, 4)
	assertInvariant(t, l)
}

func TestMoveUpPreservesMultiset(t *testing.T) {
	l := makeList(t, 3)

	if err := l.MoveUp("s2"); err != nil {
		t.Fatal(err)
	}
	got := ids(l)
	want := []string{"s0", "s2", "s1"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("after MoveUp ids = %v, want %v", got, want)
		}
	}
	assertInvariant(t, l)

	// Moving the first section up is a no-op, not an error.
	if err := l.MoveUp("s0"); err != nil {
		t.Fatal(err)
	}
	if ids(l)[0] != "s0" {
		t.Error("MoveUp on first section moved it")
	}
	assertInvariant(t, l)
}

func TestMoveDown(t *testing.T) {
	l := makeList(t, 3)

	if err := l.MoveDown("s0"); err != nil {
		t.Fatal(err)
	}
	if got := ids(l); got[0] != "s1" || got[1] != "s0" {
		t.Fatalf("after MoveDown ids = %v", got)
	}
	assertInvariant(t, l)

	// Last section down is a no-op.
	if err := l.MoveDown("s2"); err != nil {
		t.Fatal(err)
	}
	if ids(l)[2] != "s2" {
		t.Error("MoveDown on last section moved it")
	}
}

func TestMoveUnknownSection(t *testing.T) {
	l := makeList(t, 2)
	if err := l.MoveUp("nope"); err == nil {
		t.Error("MoveUp on unknown id should fail")
	}
	if err := l.MoveDown("nope"); err == nil {
		t.Error("MoveDown on unknown id should fail")
	}
}

func TestRemoveResequences(t *testing.T) {
	l := makeList(t, 4)

	l, err := l.Remove("s1")
	if err != nil {
		t.Fatal(err)
	}
	if len(l) != 3 {
		t.Fatalf("len after remove = %d, want 3", len(l))
	}
	got := ids(l)
	want := []string{"s0", "s2", "s3"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("after Remove ids = %v, want %v", got, want)
		}
	}
	// No gaps: orders must be 0,1,2 again.
	assertInvariant(t, l)

	if _, err := l.Remove("s1"); err == nil {
		t.Error("removing an absent section should fail")
	}
}

func TestReplaceKeepsOrder(t *testing.T) {
	l := makeList(t, 2)

	repl, err := NewSection(SectionTextBlock)
	if err != nil {
		t.Fatal(err)
	}
	repl.ID = "s1"
	repl.Settings.(*TextBlockSettings).Content = "updated copy"
	repl.Order = 99 // editor bugs must not disturb ordering

	if err := l.Replace(repl); err != nil {
		t.Fatal(err)
	}
	if l[1].Settings.(*TextBlockSettings).Content != "updated copy" {
		t.Error("Replace did not swap settings")
	}
	assertInvariant(t, l)
}

func TestReplaceTypeMismatch(t *testing.T) {
	l := makeList(t, 1)

	repl, err := NewSection(SectionSpacer)
	if err != nil {
		t.Fatal(err)
	}
	repl.ID = "s0"
	if err := l.Replace(repl); err == nil {
		t.Error("Replace with different type should fail")
	}
}

func TestNormalizeRepairsStoredOrders(t *testing.T) {
	l := makeList(t, 3)
	l[0].Order = 5
	l[1].Order = 5
	l[2].Order = 0

	l.Normalize()
	assertInvariant(t, l)
}
