package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNew_EmitsDebouncedEventOnFileCreate(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(filepath.Join(dir, "new.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case ev := <-w.Events():
		if ev.Root != dir {
			t.Errorf("Root = %q, want %q", ev.Root, dir)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a watcher event after file creation")
	}
}

func TestNew_SkipsIgnoredDirectories(t *testing.T) {
	dir := t.TempDir()
	skipped := filepath.Join(dir, "node_modules")
	if err := os.Mkdir(skipped, 0o755); err != nil {
		t.Fatal(err)
	}

	w, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(filepath.Join(skipped, "ignored.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case ev := <-w.Events():
		t.Errorf("did not expect an event from inside a skipped directory, got %+v", ev)
	case <-time.After(300 * time.Millisecond):
		// no event is the expected outcome
	}
}

func TestStop_ClosesWithoutPanic(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	w.Stop()
}
