package panel

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wilbur182/rfm/internal/clipboard"
	"github.com/wilbur182/rfm/internal/dirpanel"
	"github.com/wilbur182/rfm/internal/fsops"
	"github.com/wilbur182/rfm/internal/keyparser"
	"github.com/wilbur182/rfm/internal/opener"
	"github.com/wilbur182/rfm/internal/preview"
	"github.com/wilbur182/rfm/internal/watcher"
)

// applyCommand dispatches one resolved Normal-mode command.
func (m *Manager) applyCommand(c keyparser.Command) tea.Cmd {
	switch c {
	case keyparser.MoveUp:
		return m.move(func(dp *dirpanel.DirPanel) { dp.MoveUp() })
	case keyparser.MoveDown:
		return m.move(func(dp *dirpanel.DirPanel) { dp.MoveDown() })
	case keyparser.MoveTop:
		return m.move(func(dp *dirpanel.DirPanel) { dp.MoveTop() })
	case keyparser.MoveBottom:
		return m.move(func(dp *dirpanel.DirPanel) { dp.MoveBottom() })
	case keyparser.HalfPageDown:
		return m.move(func(dp *dirpanel.DirPanel) { dp.MoveBy(halfPage(m.lay.ContentH)) })
	case keyparser.HalfPageUp:
		return m.move(func(dp *dirpanel.DirPanel) { dp.MoveBy(-halfPage(m.lay.ContentH)) })
	case keyparser.PageDown:
		return m.move(func(dp *dirpanel.DirPanel) { dp.MoveBy(m.lay.ContentH) })
	case keyparser.PageUp:
		return m.move(func(dp *dirpanel.DirPanel) { dp.MoveBy(-m.lay.ContentH) })

	case keyparser.MoveRight:
		return m.moveRight()
	case keyparser.MoveLeft:
		return m.moveLeft()

	case keyparser.ToggleHidden:
		return m.toggleHidden()
	case keyparser.ToggleLog:
		m.showLog = !m.showLog
		m.recomputeLayout()
		m.redraw.LogToggle(m.showLog)
		return nil

	case keyparser.Cd:
		m.preConsolePath = m.center.Current().Path
		m.mode = newInputMode(ModeConsole, m.center.Current().Path)
		m.redraw.ModeChange()
		return nil

	case keyparser.Search:
		m.mode = newInputMode(ModeSearch, "")
		m.redraw.ModeChange()
		return nil

	case keyparser.Rename:
		return m.startRename()

	case keyparser.NextMarked:
		return m.move(func(dp *dirpanel.DirPanel) { dp.NextMarked() })
	case keyparser.PreviousMarked:
		return m.move(func(dp *dirpanel.DirPanel) { dp.PreviousMarked() })

	case keyparser.Mkdir:
		m.mode = newInputMode(ModeCreateItem, "")
		m.mode.IsDir = true
		m.redraw.ModeChange()
		return nil
	case keyparser.Touch:
		m.mode = newInputMode(ModeCreateItem, "")
		m.redraw.ModeChange()
		return nil

	case keyparser.Mark:
		dp := m.center.Current()
		dp.ToggleMark()
		dp.MoveDown()
		m.center.UpdatePanel(dp)
		m.redraw.Marks("center")
		return nil

	case keyparser.Cut:
		m.clip.Set(clipboard.Cut, m.markedOrSelected())
		m.redraw.Footer = true
		return nil
	case keyparser.Copy:
		m.clip.Set(clipboard.Copy, m.markedOrSelected())
		m.redraw.Footer = true
		return nil

	case keyparser.Delete:
		return m.deleteSelection()

	case keyparser.Paste:
		return m.paste(false)
	case keyparser.PasteOverwrite:
		return m.paste(true)

	case keyparser.ViewTrash:
		return m.jumpTo(m.trash.Dir)

	case keyparser.Quit:
		m.quitting = true
		m.finalPath = m.center.Current().Path
		return tea.Quit
	}
	return nil
}

// move applies a pure selection mutator to the center panel and redraws
// accordingly.
func (m *Manager) move(f func(*dirpanel.DirPanel)) tea.Cmd {
	dp := m.center.Current()
	before := dp.Selected
	f(&dp)
	if dp.Selected == before {
		return nil
	}
	m.center.UpdatePanel(dp)
	m.redraw.Selection()
	return m.loadPreviewForSelection()
}

func halfPage(h int) int {
	n := h / 2
	if n < 1 {
		n = 1
	}
	return n
}

// moveRight either shifts the Miller columns one level into the selected
// directory, or (for a non-directory selection) freezes the center panel
// and hands the file to the opener.
func (m *Manager) moveRight() tea.Cmd {
	dp := m.center.Current()
	sel, ok := dp.Selection()
	if !ok {
		return nil
	}
	if !sel.IsDir {
		m.center.Freeze()
		m.redraw.Footer = true
		return opener.Open(sel.Path)
	}
	return m.jumpTo(sel.Path)
}

// jumpTo shifts the columns so path becomes the center.
func (m *Manager) jumpTo(path string) tea.Cmd {
	cmds := []tea.Cmd{
		m.center.NewPanelInstant(path, dirLoader(sideCenter)),
		m.left.NewPanelInstant(parentOf(path), dirLoader(sideLeft)),
	}
	// NewPanelInstant may have just installed a cached value for the new
	// left path, marks and all; clear it on the value actually in place,
	// not on whatever was about to be discarded.
	m.left.MutateCurrent(func(dp *dirpanel.DirPanel) { dp.ClearMarks() })
	m.redraw.PathChange()

	if m.watch != nil {
		m.watch.Stop()
	}
	if w, err := watcher.New(path); err == nil {
		m.watch = w
		cmds = append(cmds, listenWatcher(w))
	} else {
		m.logger.Warn("could not start directory watcher", "path", path, "err", err)
	}
	return tea.Batch(cmds...)
}

// moveLeft shifts the Miller columns one level toward the parent,
// re-selecting the child we came from so focus is preserved.
func (m *Manager) moveLeft() tea.Cmd {
	cur := m.center.Current()
	parent := parentOf(cur.Path)
	if parent == cur.Path {
		return nil
	}
	m.pendingCenterFocus = cur.Path

	cmds := []tea.Cmd{
		m.center.NewPanelInstant(parent, dirLoader(sideCenter)),
		m.left.NewPanelInstant(parentOf(parent), dirLoader(sideLeft)),
	}
	// Mirror jumpTo: clear marks on whichever value NewPanelInstant just
	// installed in left, post-fetch, so a stale cached mark can't resurface.
	m.left.MutateCurrent(func(dp *dirpanel.DirPanel) { dp.ClearMarks() })
	m.redraw.PathChange()

	if m.watch != nil {
		m.watch.Stop()
	}
	if w, err := watcher.New(parent); err == nil {
		m.watch = w
		cmds = append(cmds, listenWatcher(w))
	} else {
		m.logger.Warn("could not start directory watcher", "path", parent, "err", err)
	}

	return tea.Batch(cmds...)
}

func (m *Manager) toggleHidden() tea.Cmd {
	m.showHidden = !m.showHidden

	left := m.left.Current()
	left.ShowHidden = m.showHidden
	left.SelectPath(m.center.Current().Path)
	m.left.UpdatePanel(left)

	center := m.center.Current()
	center.ShowHidden = m.showHidden
	m.center.UpdatePanel(center)

	m.redraw.All()
	return m.loadPreviewForSelection()
}

// allMarkedPaths returns the marked set across all three panels without
// the "mark the selection if nothing is marked" side effect.
func (m *Manager) allMarkedPaths() []string {
	var out []string
	out = append(out, m.left.Current().MarkedPaths()...)
	out = append(out, m.center.Current().MarkedPaths()...)
	if rp := m.right.Current(); rp.Kind == preview.KindDir {
		out = append(out, rp.Dir.MarkedPaths()...)
	}
	return out
}

func (m *Manager) startRename() tea.Cmd {
	marked := m.allMarkedPaths()
	if len(marked) > 1 {
		return m.startBulkRename(marked)
	}
	var target string
	if len(marked) == 1 {
		target = marked[0]
	} else {
		sel, ok := m.center.Current().Selection()
		if !ok {
			return nil
		}
		target = sel.Path
	}
	m.mode = newInputMode(ModeRename, filepath.Base(target))
	m.redraw.ModeChange()
	return nil
}

// markedOrSelected returns the marked set across left, center, and the
// visible preview directory if non-empty; otherwise it marks and returns
// the single current center selection.
func (m *Manager) markedOrSelected() []string {
	if out := m.allMarkedPaths(); len(out) > 0 {
		return out
	}
	dp := m.center.Current()
	sel, ok := dp.Selection()
	if !ok {
		return nil
	}
	dp.ToggleMark()
	m.center.UpdatePanel(dp)
	m.redraw.Marks("center")
	return []string{sel.Path}
}

func (m *Manager) deleteSelection() tea.Cmd {
	paths := m.markedOrSelected()
	for _, p := range paths {
		if err := m.trash.Delete(p); err != nil {
			m.logger.Error("delete failed", "path", p, "err", err)
		}
	}
	m.logger.Info(fmt.Sprintf("Deleted %d items", len(paths)))
	m.redraw.All()
	// The right preview is reloaded once the center completion arrives
	// (applyDirLoaded -> loadPreviewForSelection).
	return tea.Batch(m.center.Reload(dirLoader(sideCenter)), m.left.Reload(dirLoader(sideLeft)))
}

// paste drains the clipboard and moves or copies its contents into the
// current directory on a background goroutine, so a large copy never
// blocks key handling or rendering. The foreground schedules a reload
// immediately; pasteDoneMsg schedules a second one once the work actually
// lands, since the content the user sees refreshes as completions arrive,
// not when the loop that launched them returns.
func (m *Manager) paste(overwrite bool) tea.Cmd {
	mode, paths := m.clip.Drain()
	if mode == clipboard.None || len(paths) == 0 {
		return nil
	}
	dest := m.center.Current().Path
	logger := m.logger
	work := func() tea.Msg {
		for _, p := range paths {
			var err error
			if mode == clipboard.Cut {
				err = fsops.MoveItem(p, dest, overwrite)
			} else {
				err = fsops.CopyItem(p, dest, overwrite)
			}
			if err != nil {
				logger.Error("paste failed", "path", p, "err", err)
			}
		}
		return pasteDoneMsg{}
	}
	m.redraw.All()
	return tea.Batch(m.center.Reload(dirLoader(sideCenter)), work)
}
