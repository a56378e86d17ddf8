package dirpanel

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_SortsDirsFirstThenCaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"Banana", "apple.txt", "zeta"} {
		if err := os.Mkdir(filepath.Join(dir, name), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", name, err)
		}
	}
	for _, name := range []string{"Zebra.txt", "alpha.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	dp, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(dp.Entries) != 5 {
		t.Fatalf("got %d entries, want 5", len(dp.Entries))
	}

	var names []string
	for _, e := range dp.Entries {
		names = append(names, e.Name)
	}
	want := []string{"apple.txt", "Banana", "zeta", "alpha.txt", "Zebra.txt"}
	for i, n := range want {
		if names[i] != n {
			t.Errorf("position %d: got %q, want %q (full order %v)", i, names[i], n, names)
		}
	}
	for i, e := range dp.Entries {
		if i < 3 && !e.IsDir {
			t.Errorf("entry %q should be a dir", e.Name)
		}
		if i >= 3 && e.IsDir {
			t.Errorf("entry %q should not be a dir", e.Name)
		}
	}
}

func TestLoad_MissingDir(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Fatal("expected error loading missing directory")
	}
}

func TestVisibleIndices_HidesDotfilesByDefault(t *testing.T) {
	dp := DirPanel{Entries: []DirElem{
		{Name: ".git"},
		{Name: "main.go"},
		{Name: ".env"},
	}}
	vis := dp.VisibleIndices()
	if len(vis) != 1 || vis[0] != 1 {
		t.Errorf("got %v, want [1]", vis)
	}

	dp.ShowHidden = true
	vis = dp.VisibleIndices()
	if len(vis) != 3 {
		t.Errorf("with ShowHidden, got %v, want all 3 indices", vis)
	}
}

func TestMatches_EmptyQueryMatchesEverything(t *testing.T) {
	dp := DirPanel{Entries: []DirElem{{Name: "foo"}}}
	if !dp.Matches(0) {
		t.Error("empty query should match everything")
	}
	dp.SearchQuery = "ba"
	if dp.Matches(0) {
		t.Error("should not match 'foo' against query 'ba'")
	}
}

func TestMoveDownUp_BoundaryNoOp(t *testing.T) {
	dp := DirPanel{Entries: []DirElem{{Name: "a"}, {Name: "b"}, {Name: "c"}}}
	dp.Selected = 2
	dp.MoveDown()
	if dp.Selected != 2 {
		t.Errorf("MoveDown at bottom should be a no-op, got %d", dp.Selected)
	}

	dp.Selected = 0
	dp.MoveUp()
	if dp.Selected != 0 {
		t.Errorf("MoveUp at top should be a no-op, got %d", dp.Selected)
	}
}

func TestMoveTopBottom(t *testing.T) {
	dp := DirPanel{Entries: []DirElem{{Name: "a"}, {Name: "b"}, {Name: "c"}}}
	dp.Selected = 1
	dp.MoveBottom()
	if dp.Selected != 2 {
		t.Errorf("MoveBottom: got %d, want 2", dp.Selected)
	}
	dp.MoveTop()
	if dp.Selected != 0 {
		t.Errorf("MoveTop: got %d, want 0", dp.Selected)
	}
}

func TestMoveBy_ClampsAtEnds(t *testing.T) {
	dp := DirPanel{Entries: []DirElem{{Name: "a"}, {Name: "b"}, {Name: "c"}}}
	dp.MoveBy(100)
	if dp.Selected != 2 {
		t.Errorf("MoveBy overshoot should clamp to last, got %d", dp.Selected)
	}
	dp.MoveBy(-100)
	if dp.Selected != 0 {
		t.Errorf("MoveBy undershoot should clamp to first, got %d", dp.Selected)
	}
}

func TestToggleMarkAndClear(t *testing.T) {
	dp := DirPanel{Entries: []DirElem{{Name: "a", Path: "/a"}, {Name: "b", Path: "/b"}}}
	dp.Selected = 0
	dp.ToggleMark()
	if !dp.Entries[0].Marked {
		t.Fatal("expected entry 0 to be marked")
	}
	if got := dp.MarkedPaths(); len(got) != 1 || got[0] != "/a" {
		t.Errorf("MarkedPaths = %v, want [/a]", got)
	}
	dp.ClearMarks()
	if dp.Entries[0].Marked {
		t.Error("ClearMarks should have unmarked entry 0")
	}
}

func TestNextPreviousMarked(t *testing.T) {
	dp := DirPanel{Entries: []DirElem{
		{Name: "a"}, {Name: "b", Marked: true}, {Name: "c"}, {Name: "d", Marked: true},
	}}
	dp.Selected = 0
	dp.NextMarked()
	if dp.Selected != 1 {
		t.Fatalf("NextMarked: got %d, want 1", dp.Selected)
	}
	dp.Selected = 3
	dp.PreviousMarked()
	if dp.Selected != 1 {
		t.Errorf("PreviousMarked: got %d, want 1", dp.Selected)
	}
}

func TestSelectPath(t *testing.T) {
	dp := DirPanel{Entries: []DirElem{{Name: "a", Path: "/a"}, {Name: "b", Path: "/b"}}}
	if !dp.SelectPath("/b") {
		t.Fatal("expected SelectPath to find /b")
	}
	if dp.Selected != 1 {
		t.Errorf("got Selected=%d, want 1", dp.Selected)
	}
	if dp.SelectPath("/missing") {
		t.Error("SelectPath should report false for a path not present")
	}
}
