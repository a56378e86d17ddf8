package panel

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wilbur182/rfm/internal/keymap"
	"github.com/wilbur182/rfm/internal/keyparser"
)

// bindings pairs a key (or "first second" two-key sequence, in
// keymap.Registry's own notation) with the keyparser.Command it resolves
// to, and drives keymap.Registry's general sequence-buffering engine.
var bindings = []struct {
	key string
	cmd keyparser.Command
}{
	{"h", keyparser.MoveLeft}, {"left", keyparser.MoveLeft},
	{"l", keyparser.MoveRight}, {"right", keyparser.MoveRight},
	{"j", keyparser.MoveDown}, {"down", keyparser.MoveDown},
	{"k", keyparser.MoveUp}, {"up", keyparser.MoveUp},
	{"G", keyparser.MoveBottom},
	{"g g", keyparser.MoveTop},
	{"ctrl+d", keyparser.HalfPageDown},
	{"ctrl+u", keyparser.HalfPageUp},
	{"ctrl+f", keyparser.PageDown},
	{"ctrl+b", keyparser.PageUp},
	{".", keyparser.ToggleHidden},
	{"L", keyparser.ToggleLog},
	{"c d", keyparser.Cd},
	{"/", keyparser.Search},
	{"r", keyparser.Rename},
	{"n", keyparser.NextMarked},
	{"N", keyparser.PreviousMarked},
	{"m k", keyparser.Mkdir},
	{"t t", keyparser.Touch},
	{"space", keyparser.Mark},
	{"x", keyparser.Cut},
	{"y", keyparser.Copy},
	{"d", keyparser.Delete}, {"delete", keyparser.Delete},
	{"p", keyparser.Paste},
	{"P", keyparser.PasteOverwrite},
	{"T", keyparser.ViewTrash},
	{"q", keyparser.Quit},
}

// newKeyRegistry builds the Normal-mode keymap.Registry for m: one
// registered command per table row, bound under the "global" context, so
// the pending-sequence buffering ("g" waiting for a second "g") is the
// registry's own, rather than reimplemented in this package.
func newKeyRegistry(m *Manager) *keymap.Registry {
	r := keymap.NewRegistry()
	for _, b := range bindings {
		id := b.key
		cmd := b.cmd
		r.RegisterCommand(keymap.Command{ID: id, Handler: func() tea.Cmd { return m.applyCommand(cmd) }})
		r.RegisterBinding(keymap.Binding{Key: b.key, Command: id, Context: "global"})
	}
	return r
}

func (m *Manager) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode.Kind {
	case ModeNormal:
		return m.handleNormalKey(msg)
	case ModeConsole:
		return m.handleConsoleKey(msg)
	case ModeCreateItem:
		return m.handleCreateItemKey(msg)
	case ModeSearch:
		return m.handleSearchKey(msg)
	case ModeRename:
		return m.handleRenameKey(msg)
	}
	return m, nil
}

func (m *Manager) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.redraw.Footer = true
	cmd := m.keys.Handle(msg, "global")
	return m, cmd
}
