package keyparser

import "testing"

func TestCommand_ZeroValueIsNone(t *testing.T) {
	var c Command
	if c != None {
		t.Errorf("zero value of Command should be None, got %v", c)
	}
}

func TestCommand_ValuesAreDistinct(t *testing.T) {
	seen := make(map[Command]bool)
	for _, c := range []Command{
		None, MoveUp, MoveDown, MoveLeft, MoveRight, MoveTop, MoveBottom,
		HalfPageDown, HalfPageUp, PageDown, PageUp, ToggleHidden, ToggleLog,
		Cd, Search, Rename, NextMarked, PreviousMarked, Mkdir, Touch, Mark,
		Cut, Copy, Delete, Paste, PasteOverwrite, ViewTrash, Quit,
	} {
		if seen[c] {
			t.Fatalf("duplicate Command value %v", c)
		}
		seen[c] = true
	}
}
