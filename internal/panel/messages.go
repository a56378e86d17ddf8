package panel

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wilbur182/rfm/internal/dirpanel"
	"github.com/wilbur182/rfm/internal/genstate"
	"github.com/wilbur182/rfm/internal/managedpanel"
)

// side identifies which directory slot a completion belongs to.
type side int

const (
	sideLeft side = iota
	sideCenter
)

// dirLoadedMsg is the completion message for left/center directory loads.
type dirLoadedMsg struct {
	side side
	c    managedpanel.Completion[dirpanel.DirPanel]
}

// dirLoader returns a managedpanel.Loader that tags its completion with
// which slot issued the request, since left and center share one Loader
// signature but must be routed independently in Update.
func dirLoader(s side) managedpanel.Loader[dirpanel.DirPanel] {
	return func(path string, state genstate.State) tea.Cmd {
		return func() tea.Msg {
			dp, _ := dirpanel.Load(path) // load errors surface as an empty placeholder, per spec
			return dirLoadedMsg{side: s, c: managedpanel.Completion[dirpanel.DirPanel]{State: state, Value: dp}}
		}
	}
}

// pasteDoneMsg signals that a background paste (move or copy of the
// clipboard's contents into a destination directory) has finished. The
// work that produces it runs on its own goroutine via tea.Cmd, the same
// "launch and let the event loop pick up the completion" idiom dirLoader
// and preview.LoadCmd use, so paste never blocks Update.
type pasteDoneMsg struct{}
