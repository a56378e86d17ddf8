package panel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/wilbur182/rfm/internal/dirpanel"
	"github.com/wilbur182/rfm/internal/preview"
	"github.com/wilbur182/rfm/internal/styles"
	"github.com/wilbur182/rfm/internal/ui"
)

// frameCache holds the last rendered string for each independently dirtied
// region, so a redraw pass only pays for the regions the redraw.Tracker
// actually flagged. The Console flag shares the footer cache slot, since
// the modal input line is drawn as part of renderFooter.
type frameCache struct {
	header, footer, left, center, right, log string
}

func (m *Manager) render() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if m.redraw.Header {
		m.frame.header = m.renderHeader()
	}
	if m.redraw.Footer || m.redraw.Console {
		m.frame.footer = m.renderFooter()
	}

	colsHeight := m.lay.ContentH
	if m.redraw.Left {
		m.frame.left = m.renderDirColumn(m.left.Current(), m.lay.LeftW, colsHeight, false)
	}
	if m.redraw.Center {
		m.frame.center = m.renderDirColumn(m.center.Current(), m.lay.CenterW, colsHeight, true)
	}
	if m.redraw.Right {
		m.frame.right = m.renderRightColumn(colsHeight)
	}
	if m.showLog && m.redraw.Log {
		m.frame.log = m.renderLog()
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, m.frame.left, m.frame.center, m.frame.right)

	parts := []string{m.frame.header, row}
	if m.showLog {
		parts = append(parts, m.frame.log)
	}
	parts = append(parts, m.frame.footer)

	m.redraw.Clear()
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Manager) renderHeader() string {
	path := m.center.Current().Path
	return styles.Header.Width(m.width).Render(truncatePath(path, m.width))
}

func (m *Manager) renderDirColumn(dp dirpanel.DirPanel, width, height int, active bool) string {
	style := styles.PanelInactive
	if active {
		style = styles.PanelActive
	}
	innerW := width - 3 // leave one column for the scrollbar
	innerH := height - 2
	if innerW < 1 {
		innerW = 1
	}
	if innerH < 1 {
		innerH = 1
	}

	vis := dp.VisibleIndices()
	var lines []string
	for _, i := range vis {
		if !dp.Matches(i) {
			continue
		}
		lines = append(lines, renderEntry(dp.Entries[i], i == dp.Selected, innerW))
	}
	if len(lines) == 0 {
		lines = []string{styles.Muted.Render("------------")}
	}

	offset := 0
	for idx, i := range vis {
		if i == dp.Selected {
			if idx >= innerH {
				offset = idx - innerH + 1
			}
			break
		}
	}
	if offset+innerH > len(lines) {
		offset = len(lines) - innerH
	}
	if offset < 0 {
		offset = 0
	}
	end := offset + innerH
	if end > len(lines) {
		end = len(lines)
	}
	visible := lines[offset:end]
	for len(visible) < innerH {
		visible = append(visible, "")
	}

	body := strings.Join(visible, "\n")
	scrollbar := ui.RenderScrollbar(ui.ScrollbarParams{
		TotalItems:   len(lines),
		ScrollOffset: offset,
		VisibleItems: innerH,
		TrackHeight:  innerH,
	})
	content := lipgloss.JoinHorizontal(lipgloss.Top, body, " ", scrollbar)
	return style.Width(width).Height(height).Render(content)
}

func renderEntry(e dirpanel.DirElem, selected bool, width int) string {
	name := e.Name
	style := styles.FileEntry
	switch {
	case e.IsSymlink:
		style = styles.SymlinkEntry
	case e.IsDir:
		style = styles.DirEntry
		name += "/"
	}
	if e.Marked {
		style = styles.MarkedEntry
	}
	line := runewidth.Truncate(name, width, "…")
	rendered := style.Render(line)
	if selected {
		return styles.Selected.Width(width).Render(line)
	}
	return rendered
}

func (m *Manager) renderRightColumn(height int) string {
	width := m.lay.RightW
	innerW := width - 2
	if innerW < 1 {
		innerW = 1
	}
	p := m.right.Current()

	var body string
	switch p.Kind {
	case preview.KindDir:
		return m.renderDirColumn(p.Dir, width, height, false)
	case preview.KindBinary:
		body = styles.Muted.Render("(binary file)")
	case preview.KindText, preview.KindMarkdown:
		lines := p.Lines
		if len(lines) > height-2 {
			lines = lines[:height-2]
		}
		body = strings.Join(lines, "\n")
	default:
		if m.spinner.IsActive() {
			body = m.spinner.ViewFill(innerW, "")
		}
	}
	return styles.PanelInactive.Width(width).Height(height).Render(body)
}

func (m *Manager) renderFooter() string {
	switch m.mode.Kind {
	case ModeConsole:
		return styles.Footer.Width(m.width).Render(styles.ConsolePrompt.Render("cd: ") + m.mode.Input.View())
	case ModeCreateItem:
		label := "touch"
		if m.mode.IsDir {
			label = "mkdir"
		}
		return styles.Footer.Width(m.width).Render(styles.FooterInputPrompt.Render(label+": ") + m.mode.Input.View())
	case ModeSearch:
		return styles.Footer.Width(m.width).Render(styles.FooterInputPrompt.Render("/") + m.mode.Input.View())
	case ModeRename:
		return styles.Footer.Width(m.width).Render(styles.FooterInputPrompt.Render("Rename: ") + m.mode.Input.View())
	}

	dp := m.center.Current()
	sel, ok := dp.Selection()
	left := "------------"
	if ok {
		left = fmt.Sprintf("%s %8s %s", sel.Mode.String(), humanize.Bytes(uint64(sel.Size)), sel.Name)
	}

	buf := m.keys.PendingKey()
	marked := len(dp.MarkedPaths())
	right := ""
	if marked > 0 {
		right = fmt.Sprintf("%d marked", marked)
	}

	mid := buf
	line := lipgloss.JoinHorizontal(lipgloss.Top, left, strings.Repeat(" ", maxInt(1, m.width-len(left)-len(right)-len(mid)-2)), mid, " ", right)
	return styles.Footer.Width(m.width).Render(line)
}

func (m *Manager) renderLog() string {
	if m.logBuf == nil {
		return ""
	}
	entries := m.logBuf.Entries()
	h := m.lay.LogH
	if h <= 0 {
		return ""
	}
	start := 0
	if len(entries) > h {
		start = len(entries) - h
	}
	var b strings.Builder
	for _, e := range entries[start:] {
		b.WriteString(logStyle(int(e.Level)).Render(e.Text))
		b.WriteString("\n")
	}
	return styles.PanelInactive.Width(m.width).Height(h).Render(strings.TrimRight(b.String(), "\n"))
}

func logStyle(level int) lipgloss.Style {
	switch {
	case level >= 8: // slog.LevelError
		return styles.LogError
	case level >= 4: // slog.LevelWarn
		return styles.LogWarn
	case level >= 0: // slog.LevelInfo
		return styles.LogInfo
	default:
		return styles.LogDebug
	}
}

func truncatePath(path string, width int) string {
	return runewidth.Truncate(path, width, "…")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
