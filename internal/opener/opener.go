// Package opener launches an external program against a file, suspending
// bubbletea's renderer for the duration via tea.ExecProcess. This mirrors
// the blocking "invoke external process, resume on return" contract used
// throughout the pack's editor-launching code (e.g. the teacher's
// EditorReturnedMsg handling).
package opener

import (
	"os"
	"os/exec"

	tea "github.com/charmbracelet/bubbletea"
)

// ClosedMsg is delivered when the launched process exits.
type ClosedMsg struct {
	Err error
}

// Editor resolves which program to launch: $EDITOR, then $VISUAL, then a
// conservative fallback.
func Editor() string {
	if e := os.Getenv("EDITOR"); e != "" {
		return e
	}
	if e := os.Getenv("VISUAL"); e != "" {
		return e
	}
	return "vi"
}

// Open returns a tea.Cmd that blocks the renderer while path is opened in
// Editor(). The caller must freeze the center panel before returning this
// command and unfreeze it upon receiving ClosedMsg.
func Open(path string) tea.Cmd {
	cmd := exec.Command(Editor(), path)
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return ClosedMsg{Err: err}
	})
}

// OpenWith is like Open but with an explicit program, used by the
// bulk-rename flow to edit a name-list file with the same editor
// resolution the user expects for regular file opens.
func OpenWith(program, path string) tea.Cmd {
	cmd := exec.Command(program, path)
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return ClosedMsg{Err: err}
	})
}
