package clipboard

import "testing"

func TestSetAndDrain_RoundTrip(t *testing.T) {
	var c Clipboard
	c.Set(Cut, []string{"/a", "/b"})

	if c.Empty() {
		t.Fatal("expected non-empty clipboard after Set")
	}

	mode, paths := c.Drain()
	if mode != Cut {
		t.Errorf("mode = %v, want Cut", mode)
	}
	if len(paths) != 2 || paths[0] != "/a" || paths[1] != "/b" {
		t.Errorf("paths = %v, want [/a /b]", paths)
	}
	if !c.Empty() {
		t.Error("clipboard should be empty after Drain")
	}
}

func TestSet_CopiesSliceRatherThanAliasing(t *testing.T) {
	var c Clipboard
	src := []string{"/a"}
	c.Set(Copy, src)
	src[0] = "/mutated"

	_, paths := c.Drain()
	if paths[0] != "/a" {
		t.Errorf("clipboard should hold its own copy, got %q", paths[0])
	}
}

func TestDrain_EmptyClipboard(t *testing.T) {
	var c Clipboard
	mode, paths := c.Drain()
	if mode != None {
		t.Errorf("mode = %v, want None", mode)
	}
	if paths != nil {
		t.Errorf("paths = %v, want nil", paths)
	}
}
