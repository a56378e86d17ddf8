// Package preview implements the right-column preview panel: a directory
// listing, a syntax-highlighted or markdown-rendered text file, a binary
// placeholder, or nothing. Rendering is grounded on the teacher's preview
// worker (chroma for syntax highlighting, the same 512-byte null-check for
// binary detection) plus this project's glamour-based markdown renderer.
package preview

import (
	"bytes"
	"os"

	"github.com/alecthomas/chroma/v2/quick"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wilbur182/rfm/internal/dirpanel"
	"github.com/wilbur182/rfm/internal/genstate"
	"github.com/wilbur182/rfm/internal/managedpanel"
	"github.com/wilbur182/rfm/internal/markdown"
	"github.com/wilbur182/rfm/internal/styles"
)

// Kind tags which variant of Panel is populated.
type Kind int

const (
	KindNone Kind = iota
	KindDir
	KindText
	KindMarkdown
	KindBinary
)

// maxPreviewBytes bounds how much of a file is read for preview.
const maxPreviewBytes = 256 * 1024

// Panel is the sum-type preview value held by the right managed panel slot.
type Panel struct {
	Kind Kind
	Path string

	Dir dirpanel.DirPanel // KindDir

	Lines []string // KindText: syntax-highlighted lines; KindMarkdown: rendered lines

	Err error
}

// LoadedMsg is the completion message delivered by LoadCmd.
type LoadedMsg struct {
	State genstate.State
	Value Panel
}

// LoadCmd returns a managedpanel.Loader suitable for Panel.NewPanelInstant/
// NewPanelDelayed on the right slot. md may be nil, in which case markdown
// files fall back to plain highlighting.
func LoadCmd(md *markdown.Renderer, width int) managedpanel.Loader[Panel] {
	return func(path string, state genstate.State) tea.Cmd {
		return func() tea.Msg {
			return LoadedMsg{State: state, Value: load(path, md, width)}
		}
	}
}

func load(path string, md *markdown.Renderer, width int) Panel {
	info, err := os.Stat(path)
	if err != nil {
		return Panel{Kind: KindNone, Path: path, Err: err}
	}

	if info.IsDir() {
		dp, err := dirpanel.Load(path)
		if err != nil {
			return Panel{Kind: KindNone, Path: path, Err: err}
		}
		return Panel{Kind: KindDir, Path: path, Dir: dp}
	}

	f, err := os.Open(path)
	if err != nil {
		return Panel{Kind: KindNone, Path: path, Err: err}
	}
	defer f.Close()

	buf := make([]byte, maxPreviewBytes)
	n, _ := f.Read(buf)
	data := buf[:n]

	if isBinary(data) {
		return Panel{Kind: KindBinary, Path: path}
	}

	content := string(data)

	if ext(path) == ".md" && md != nil {
		lines := md.RenderContent(content, width)
		return Panel{Kind: KindMarkdown, Path: path, Lines: lines}
	}

	highlighted, err := highlight(content, path)
	if err != nil {
		highlighted = splitLines(content)
	}
	return Panel{Kind: KindText, Path: path, Lines: highlighted}
}

// isBinary applies the teacher's heuristic: a null byte in the first 512
// bytes means binary.
func isBinary(data []byte) bool {
	n := len(data)
	if n > 512 {
		n = 512
	}
	return bytes.IndexByte(data[:n], 0) >= 0
}

func highlight(content, path string) ([]string, error) {
	var buf bytes.Buffer
	lexerName := ""
	if e := ext(path); e != "" {
		lexerName = e[1:]
	}
	if err := quick.Highlight(&buf, content, lexerName, "terminal256", styles.GetSyntaxTheme()); err != nil {
		return nil, err
	}
	return splitLines(buf.String()), nil
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i, c := range s {
		if c == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

func ext(path string) string {
	i := len(path) - 1
	for i >= 0 && path[i] != '.' && path[i] != '/' {
		i--
	}
	if i < 0 || path[i] != '.' {
		return ""
	}
	return path[i:]
}
