package panel

import "github.com/charmbracelet/bubbles/textinput"

// ModeKind tags which of the five input modes is active.
type ModeKind int

const (
	ModeNormal ModeKind = iota
	ModeConsole
	ModeCreateItem
	ModeSearch
	ModeRename
)

// Mode holds the active input mode plus whatever scratch state that mode
// needs: an editable input line (bubbles/textinput, the same widget the
// teacher uses for every modal text entry), and for CreateItem, which
// kind of item is being created.
type Mode struct {
	Kind  ModeKind
	Input textinput.Model
	IsDir bool // CreateItem only: mkdir vs touch
}

// newInputMode builds a Mode with a focused, prefilled text input.
func newInputMode(kind ModeKind, prefill string) Mode {
	ti := textinput.New()
	ti.SetValue(prefill)
	ti.CursorEnd()
	ti.Focus()
	return Mode{Kind: kind, Input: ti}
}
