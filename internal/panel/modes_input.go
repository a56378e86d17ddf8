package panel

import (
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wilbur182/rfm/internal/dirpanel"
	"github.com/wilbur182/rfm/internal/fsops"
)

// handleConsoleKey drives the directory-completion overlay built on top
// of the center panel's own listing.
func (m *Manager) handleConsoleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = Mode{Kind: ModeNormal}
		m.redraw.ModeChange()
		return m, m.jumpTo(m.preConsolePath)

	case tea.KeyEnter:
		target := m.mode.Input.Value()
		m.mode = Mode{Kind: ModeNormal}
		m.redraw.ModeChange()
		return m, m.jumpTo(target)

	case tea.KeyTab, tea.KeyShiftTab:
		m.mode.Input.SetValue(m.consoleComplete(m.mode.Input.Value(), msg.Type == tea.KeyShiftTab))
		m.mode.Input.CursorEnd()
		m.redraw.Console = true
		return m, nil
	}

	var cmd tea.Cmd
	m.mode.Input, cmd = m.mode.Input.Update(msg)
	m.redraw.Console = true
	return m, cmd
}

// consoleComplete completes query to a subdirectory of filepath.Dir(query)
// whose name starts with filepath.Base(query): the first such match in
// listing order, or the last one when backward is set. Repeated calls do
// not advance through the other matches.
func (m *Manager) consoleComplete(query string, backward bool) string {
	dir := filepath.Dir(query)
	prefix := filepath.Base(query)
	dp, err := dirpanel.Load(dir)
	if err != nil {
		return query
	}
	var matches []string
	for _, e := range dp.Entries {
		if e.IsDir && strings.HasPrefix(e.Name, prefix) {
			matches = append(matches, filepath.Join(dir, e.Name))
		}
	}
	if len(matches) == 0 {
		return query
	}
	if backward {
		return matches[len(matches)-1]
	}
	return matches[0]
}

func (m *Manager) handleCreateItemKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = Mode{Kind: ModeNormal}
		m.redraw.ModeChange()
		return m, nil

	case tea.KeyEnter:
		name := strings.TrimSpace(m.mode.Input.Value())
		isDir := m.mode.IsDir
		m.mode = Mode{Kind: ModeNormal}
		m.redraw.ModeChange()
		if name == "" {
			return m, nil
		}
		target := filepath.Join(m.center.Current().Path, name)
		var err error
		if isDir {
			err = fsops.Mkdir(target)
		} else {
			err = fsops.Touch(target)
		}
		if err != nil {
			m.logger.Error("create item failed", "path", target, "err", err)
		}
		return m, m.center.Reload(dirLoader(sideCenter))
	}

	var cmd tea.Cmd
	m.mode.Input, cmd = m.mode.Input.Update(msg)
	m.redraw.Console = true
	return m, cmd
}

func (m *Manager) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		dp := m.center.Current()
		dp.SearchQuery = ""
		dp.ClearMarks()
		m.center.UpdatePanel(dp)
		m.mode = Mode{Kind: ModeNormal}
		m.redraw.All()
		return m, nil

	case tea.KeyEnter:
		// Commit: drop the filter so the full listing returns, but keep
		// whatever got marked live so n/N can still cycle through matches.
		dp := m.center.Current()
		dp.SearchQuery = ""
		m.center.UpdatePanel(dp)
		m.mode = Mode{Kind: ModeNormal}
		m.redraw.All()
		return m, nil
	}

	var cmd tea.Cmd
	m.mode.Input, cmd = m.mode.Input.Update(msg)

	dp := m.center.Current()
	dp.SearchQuery = strings.ToLower(m.mode.Input.Value())
	m.markSearchMatches(&dp)
	m.jumpToFirstMatch(&dp)
	m.center.UpdatePanel(dp)
	m.redraw.All()
	return m, cmd
}

// markSearchMatches marks every entry matching the active search query live,
// so committing the search leaves NextMarked/PreviousMarked able to cycle
// through exactly the matched set (Esc clears the marks instead). An empty
// query unmarks everything.
func (m *Manager) markSearchMatches(dp *dirpanel.DirPanel) {
	if dp.SearchQuery == "" {
		dp.ClearMarks()
		return
	}
	for i := range dp.Entries {
		dp.Entries[i].Marked = dp.Matches(i)
	}
}

func (m *Manager) jumpToFirstMatch(dp *dirpanel.DirPanel) {
	if dp.SearchQuery == "" {
		return
	}
	for _, i := range dp.VisibleIndices() {
		if dp.Matches(i) {
			dp.Selected = i
			return
		}
	}
}

func (m *Manager) handleRenameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = Mode{Kind: ModeNormal}
		m.redraw.ModeChange()
		return m, nil

	case tea.KeyEnter:
		newName := strings.TrimSpace(m.mode.Input.Value())
		m.mode = Mode{Kind: ModeNormal}
		m.redraw.ModeChange()
		if newName == "" {
			return m, nil
		}
		dp := m.center.Current()
		sel, ok := dp.Selection()
		if !ok {
			return m, nil
		}
		newPath := filepath.Join(filepath.Dir(sel.Path), newName)
		if err := fsops.RenameTo(sel.Path, newPath); err != nil {
			m.logger.Error("rename failed", "from", sel.Path, "to", newPath, "err", err)
		}
		m.pendingCenterFocus = newPath
		return m, m.center.Reload(dirLoader(sideCenter))
	}

	var cmd tea.Cmd
	m.mode.Input, cmd = m.mode.Input.Update(msg)
	m.redraw.Console = true
	return m, cmd
}
