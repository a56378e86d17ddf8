package panel

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wilbur182/rfm/internal/fsops"
	"github.com/wilbur182/rfm/internal/opener"
)

// startBulkRename writes the selection's base names to a scratch file,
// freezes the center panel, and hands the file to the external editor.
// Completion continues in finishBulkRename, invoked from
// handleOpenerClosed once opener.ClosedMsg arrives.
func (m *Manager) startBulkRename(paths []string) tea.Cmd {
	f, err := os.CreateTemp("", "rfm-rename-*.txt")
	if err != nil {
		m.logger.Error("bulk rename: could not create scratch file", "err", err)
		return nil
	}
	tmpFile := f.Name()
	f.Close()

	if err := fsops.WriteNameList(paths, tmpFile); err != nil {
		m.logger.Error("bulk rename: could not write name list", "err", err)
		os.Remove(tmpFile)
		return nil
	}

	m.bulk = &bulkRenameState{paths: paths, tmpFile: tmpFile}
	m.center.Freeze()
	m.redraw.Footer = true
	return opener.OpenWith(opener.Editor(), tmpFile)
}

// finishBulkRename re-reads the scratch file, validates and performs the
// rename, and always deletes the scratch file.
func (m *Manager) finishBulkRename() tea.Cmd {
	b := m.bulk
	m.bulk = nil
	defer os.Remove(b.tmpFile)

	if err := fsops.ApplyNameList(b.paths, b.tmpFile); err != nil {
		m.logger.Error("bulk rename aborted", "err", err)
		return m.center.Reload(dirLoader(sideCenter))
	}
	m.logger.Info("bulk renamed items", "count", len(b.paths))
	return m.center.Reload(dirLoader(sideCenter))
}
