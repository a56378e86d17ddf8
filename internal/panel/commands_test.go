package panel

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wilbur182/rfm/internal/clipboard"
	"github.com/wilbur182/rfm/internal/dirpanel"
	"github.com/wilbur182/rfm/internal/trash"
)

func newTestManager(t *testing.T, startPath string) *Manager {
	t.Helper()
	tr, err := trash.New()
	if err != nil {
		t.Fatalf("trash.New: %v", err)
	}
	t.Cleanup(func() { tr.Close() })
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(startPath, logger, nil, nil, tr)
}

func loadAndSelect(t *testing.T, dir, selectPath string) dirpanel.DirPanel {
	t.Helper()
	dp, err := dirpanel.Load(dir)
	if err != nil {
		t.Fatalf("Load(%s): %v", dir, err)
	}
	if selectPath != "" && !dp.SelectPath(selectPath) {
		t.Fatalf("could not select %s within %s", selectPath, dir)
	}
	return dp
}

// TestMoveRightClearsLeftMarksOnCacheHit exercises jumpTo (via moveRight):
// mark an entry while its directory is the center panel, then move right
// into that entry so the same directory resurfaces as left through a
// dirCache hit. The resurfaced panel must carry no marks.
func TestMoveRightClearsLeftMarksOnCacheHit(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "A")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	m := newTestManager(t, root)

	rootDp := loadAndSelect(t, root, sub)
	m.center.NewPanelInstant(root, dirLoader(sideCenter))
	rootDp.ToggleMark() // marks "A"
	m.center.UpdatePanel(rootDp)

	if marks := m.center.Current().MarkedPaths(); len(marks) != 1 {
		t.Fatalf("setup: expected 1 marked entry in center, got %v", marks)
	}

	m.moveRight() // jumps into A; left becomes root via a dirCache hit

	if marks := m.left.Current().MarkedPaths(); len(marks) != 0 {
		t.Errorf("left panel still marked after moving right into a marked directory's child: %v", marks)
	}
}

// TestMoveLeftClearsLeftMarksOnCacheHit exercises moveLeft directly: root
// is marked while it is the center panel, then center is driven down to a
// grandchild (bypassing jumpTo's own clearing) so moveLeft's own cache-hit
// reinstallation of root as left is what must clear the marks.
func TestMoveLeftClearsLeftMarksOnCacheHit(t *testing.T) {
	root := t.TempDir()
	a := filepath.Join(root, "A")
	b := filepath.Join(a, "B")
	if err := os.MkdirAll(b, 0o755); err != nil {
		t.Fatal(err)
	}

	m := newTestManager(t, root)

	rootDp := loadAndSelect(t, root, a)
	m.center.NewPanelInstant(root, dirLoader(sideCenter))
	rootDp.ToggleMark() // marks "A"
	m.center.UpdatePanel(rootDp) // caches root, marked, in dirCache

	aDp := loadAndSelect(t, a, b)
	m.center.NewPanelInstant(a, dirLoader(sideCenter))
	m.center.UpdatePanel(aDp) // center now at A, cache[A] unmarked

	bDp, err := dirpanel.Load(b)
	if err != nil {
		t.Fatal(err)
	}
	m.center.NewPanelInstant(b, dirLoader(sideCenter))
	m.center.UpdatePanel(bDp) // center now at B

	m.left.NewPanelInstant(a, dirLoader(sideLeft))
	m.left.UpdatePanel(aDp) // left now at A, unmarked

	m.moveLeft() // center -> A, left -> root via a dirCache hit on the marked value

	if marks := m.left.Current().MarkedPaths(); len(marks) != 0 {
		t.Errorf("left panel still marked after moveLeft resurfaced a previously marked directory: %v", marks)
	}
}

// TestToggleHiddenSelectsLeftByCenterPath checks that toggling hidden files
// re-selects, within the left panel, the entry corresponding to the
// directory the center panel is showing.
func TestToggleHiddenSelectsLeftByCenterPath(t *testing.T) {
	root := t.TempDir()
	a := filepath.Join(root, "A")
	if err := os.Mkdir(a, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(root, "Z"), 0o755); err != nil {
		t.Fatal(err)
	}

	m := newTestManager(t, a)

	leftDp := loadAndSelect(t, root, filepath.Join(root, "Z")) // deliberately wrong selection
	m.left.NewPanelInstant(root, dirLoader(sideLeft))
	m.left.UpdatePanel(leftDp)

	aDp, err := dirpanel.Load(a)
	if err != nil {
		t.Fatal(err)
	}
	m.center.NewPanelInstant(a, dirLoader(sideCenter))
	m.center.UpdatePanel(aDp)

	m.toggleHidden()

	sel, ok := m.left.Current().Selection()
	if !ok {
		t.Fatal("left panel has no selection after toggleHidden")
	}
	if sel.Path != a {
		t.Errorf("left selection = %q, want %q (the center path)", sel.Path, a)
	}
}

// TestSearchCommitMarksMatchesForCycling checks that committing a search
// marks every matching entry so n/N can cycle through them afterward, and
// that the filter itself is lifted (SearchQuery cleared).
func TestSearchCommitMarksMatchesForCycling(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"alpha", "zzz", "gamma"} {
		if err := os.Mkdir(filepath.Join(root, name), 0o755); err != nil {
			t.Fatal(err)
		}
	}

	m := newTestManager(t, root)
	dp, err := dirpanel.Load(root)
	if err != nil {
		t.Fatal(err)
	}
	m.center.NewPanelInstant(root, dirLoader(sideCenter))
	m.center.UpdatePanel(dp)

	m.mode = newInputMode(ModeSearch, "")
	m.handleSearchKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	m.handleSearchKey(tea.KeyMsg{Type: tea.KeyEnter})

	cur := m.center.Current()
	if cur.SearchQuery != "" {
		t.Errorf("SearchQuery = %q, want empty after commit", cur.SearchQuery)
	}
	marked := cur.MarkedPaths()
	if len(marked) != 2 {
		t.Fatalf("marked = %v, want alpha and gamma (2 entries matching %q)", marked, "a")
	}
	for _, p := range marked {
		name := filepath.Base(p)
		if name != "alpha" && name != "gamma" {
			t.Errorf("unexpected marked entry %q", name)
		}
	}
}

// TestSearchEscUnmarksMatches checks that cancelling a search clears
// whatever got marked live during typing.
func TestSearchEscUnmarksMatches(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"alpha", "beta"} {
		if err := os.Mkdir(filepath.Join(root, name), 0o755); err != nil {
			t.Fatal(err)
		}
	}

	m := newTestManager(t, root)
	dp, err := dirpanel.Load(root)
	if err != nil {
		t.Fatal(err)
	}
	m.center.NewPanelInstant(root, dirLoader(sideCenter))
	m.center.UpdatePanel(dp)

	m.mode = newInputMode(ModeSearch, "")
	m.handleSearchKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("be")})
	if marked := m.center.Current().MarkedPaths(); len(marked) != 1 {
		t.Fatalf("setup: expected beta marked live, got %v", marked)
	}

	m.handleSearchKey(tea.KeyMsg{Type: tea.KeyEsc})

	if marked := m.center.Current().MarkedPaths(); len(marked) != 0 {
		t.Errorf("marks survived Esc: %v", marked)
	}
}

// TestPasteRunsFilesystemWorkAsynchronously checks that paste's returned
// tea.Cmd does not itself perform the filesystem mutation: only invoking
// the inner work command it schedules does.
func TestPasteRunsFilesystemWorkAsynchronously(t *testing.T) {
	srcDir := t.TempDir()
	destDir := t.TempDir()
	src := filepath.Join(srcDir, "a.txt")
	if err := os.WriteFile(src, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	m := newTestManager(t, destDir)
	destDp, err := dirpanel.Load(destDir)
	if err != nil {
		t.Fatal(err)
	}
	m.center.NewPanelInstant(destDir, dirLoader(sideCenter))
	m.center.UpdatePanel(destDp)

	m.clip.Set(clipboard.Cut, []string{src})

	cmd := m.paste(false)
	if cmd == nil {
		t.Fatal("paste returned a nil cmd")
	}

	dest := filepath.Join(destDir, "a.txt")
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Fatalf("paste mutated the filesystem before its cmd ran (err=%v)", err)
	}

	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		t.Fatalf("expected a tea.BatchMsg, got %T", msg)
	}

	var sawDone bool
	for _, sub := range batch {
		switch msg := sub().(type) {
		case pasteDoneMsg:
			sawDone = true
		case dirLoadedMsg:
			_ = msg
		}
	}
	if !sawDone {
		t.Fatal("expected one of the batched cmds to deliver pasteDoneMsg")
	}
	if _, err := os.Stat(dest); err != nil {
		t.Errorf("destination file missing after running paste's work cmd: %v", err)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Errorf("source file still exists after a cut-paste (err=%v)", err)
	}
}
