// Package panel implements the PanelManager: the central bubbletea model
// that owns the three Miller-column slots, the mode state machine, the
// clipboard, the trash, and the background watcher/logger streams, and
// multiplexes them into a single serialized event loop the way a
// hand-rolled select! would, but riding bubbletea's own Update dispatch.
package panel

import (
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wilbur182/rfm/internal/clipboard"
	"github.com/wilbur182/rfm/internal/dirpanel"
	"github.com/wilbur182/rfm/internal/keymap"
	"github.com/wilbur182/rfm/internal/layout"
	"github.com/wilbur182/rfm/internal/logbuf"
	"github.com/wilbur182/rfm/internal/managedpanel"
	"github.com/wilbur182/rfm/internal/markdown"
	"github.com/wilbur182/rfm/internal/opener"
	"github.com/wilbur182/rfm/internal/preview"
	"github.com/wilbur182/rfm/internal/redraw"
	"github.com/wilbur182/rfm/internal/trash"
	"github.com/wilbur182/rfm/internal/ui"
	"github.com/wilbur182/rfm/internal/watcher"
)

const previewDebounce = 100 * time.Millisecond
const spinnerTickInterval = 120 * time.Millisecond

// spinnerTickMsg drives the braille spinner shown while the right panel
// awaits its first preview completion for a freshly selected path.
type spinnerTickMsg struct{}

func spinnerTick() tea.Cmd {
	return tea.Tick(spinnerTickInterval, func(time.Time) tea.Msg { return spinnerTickMsg{} })
}

// bulkRenameState tracks an in-flight bulk-rename: the paths being
// renamed and the scratch file handed to the external editor.
type bulkRenameState struct {
	paths   []string
	tmpFile string
}

// Manager is the PanelManager: the bubbletea model for the whole program.
type Manager struct {
	left   *managedpanel.Panel[dirpanel.DirPanel]
	center *managedpanel.Panel[dirpanel.DirPanel]
	right  *managedpanel.Panel[preview.Panel]

	dirCache     *managedpanel.Cache[dirpanel.DirPanel]
	previewCache *managedpanel.Cache[preview.Panel]

	mode   Mode
	redraw redraw.Tracker
	clip   clipboard.Clipboard
	trash  *trash.Trash
	keys   *keymap.Registry

	logger *slog.Logger
	logBuf *logbuf.Buffer
	md     *markdown.Renderer

	watch              *watcher.Watcher
	preConsolePath     string
	pendingCenterFocus string

	width, height int
	lay           layout.Layout
	showHidden    bool
	showLog       bool

	bulk *bulkRenameState

	spinner      ui.BrailleSpinner
	pendingRight string

	// frame caches the last rendered string for each region, so render()
	// only recomputes the regions m.redraw actually flagged.
	frame frameCache

	quitting  bool
	finalPath string
}

// New constructs a Manager rooted at startPath.
func New(startPath string, logger *slog.Logger, logBuf *logbuf.Buffer, md *markdown.Renderer, tr *trash.Trash) *Manager {
	dirCache := managedpanel.NewCache[dirpanel.DirPanel]()
	previewCache := managedpanel.NewCache[preview.Panel]()

	m := &Manager{
		left:         managedpanel.New(dirpanel.DirPanel{}, dirCache, 0),
		center:       managedpanel.New(dirpanel.DirPanel{}, dirCache, 0),
		right:        managedpanel.New(preview.Panel{}, previewCache, previewDebounce),
		dirCache:     dirCache,
		previewCache: previewCache,
		logger:       logger,
		logBuf:       logBuf,
		md:           md,
		trash:        tr,
	}
	m.center.UpdatePanel(dirpanel.DirPanel{Path: startPath})
	m.keys = newKeyRegistry(m)
	return m
}

// Init satisfies tea.Model: kick off the initial loads and background
// listeners.
func (m *Manager) Init() tea.Cmd {
	startPath := m.center.Current().Path
	cmds := []tea.Cmd{
		m.center.NewPanelInstant(startPath, dirLoader(sideCenter)),
		m.left.NewPanelInstant(parentOf(startPath), dirLoader(sideLeft)),
	}
	if w, err := watcher.New(startPath); err == nil {
		m.watch = w
		cmds = append(cmds, listenWatcher(w))
	} else {
		m.logger.Warn("could not start directory watcher", "path", startPath, "err", err)
	}
	if m.logBuf != nil {
		cmds = append(cmds, m.logBuf.Listen())
	}
	m.redraw.All()
	return tea.Batch(cmds...)
}

func listenWatcher(w *watcher.Watcher) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-w.Events()
		if !ok {
			return nil
		}
		return ev
	}
}

// Update satisfies tea.Model.
func (m *Manager) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.recomputeLayout()
		m.redraw.All()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case dirLoadedMsg:
		return m, m.applyDirLoaded(msg)

	case preview.LoadedMsg:
		if msg.Value.Kind == preview.KindDir {
			msg.Value.Dir.ClearMarks()
		}
		if m.right.Apply(managedpanel.Completion[preview.Panel]{State: msg.State, Value: msg.Value}) {
			m.redraw.Right = true
		}
		if msg.State.Path == m.pendingRight {
			m.pendingRight = ""
			m.spinner.Stop()
			m.redraw.Right = true
		}
		return m, nil

	case spinnerTickMsg:
		if !m.spinner.IsActive() {
			return m, nil
		}
		m.spinner.Tick()
		m.redraw.Right = true
		return m, spinnerTick()

	case watcher.Event:
		var cmd tea.Cmd
		if !m.center.Frozen() {
			cmd = m.center.Reload(dirLoader(sideCenter))
		}
		if m.watch != nil {
			cmd = tea.Batch(cmd, listenWatcher(m.watch))
		}
		return m, cmd

	case logbuf.UpdatedMsg:
		m.redraw.Log = true
		if m.logBuf != nil {
			return m, m.logBuf.Listen()
		}
		return m, nil

	case opener.ClosedMsg:
		return m, m.handleOpenerClosed(msg)

	case pasteDoneMsg:
		m.redraw.All()
		return m, m.center.Reload(dirLoader(sideCenter))
	}

	if managedpanel.IsDelayedFire[preview.Panel](msg) {
		return m, m.right.FireDelayed(msg)
	}

	return m, nil
}

func (m *Manager) recomputeLayout() {
	logLines := 0
	if m.showLog && m.logBuf != nil {
		logLines = m.logBuf.Capacity()
	}
	m.lay = layout.Compute(m.width, m.height, m.showLog, logLines)
}

// applyDirLoaded routes a directory completion to the slot it belongs to,
// and when the center slot accepts a fresh listing, kicks off the right
// panel's delayed preview load for the newly selected entry.
func (m *Manager) applyDirLoaded(msg dirLoadedMsg) tea.Cmd {
	switch msg.side {
	case sideLeft:
		if m.left.Apply(msg.c) {
			dp := m.left.Current()
			dp.ShowHidden = m.showHidden
			dp.SelectPath(m.center.State().Path)
			m.left.UpdatePanel(dp)
			m.redraw.Left = true
		}
		return nil
	case sideCenter:
		if !m.center.Apply(msg.c) {
			return nil
		}
		dp := m.center.Current()
		dp.ShowHidden = m.showHidden
		if m.pendingCenterFocus != "" {
			dp.SelectPath(m.pendingCenterFocus)
			m.pendingCenterFocus = ""
		}
		m.center.UpdatePanel(dp)
		m.redraw.Center = true
		return m.loadPreviewForSelection()
	}
	return nil
}

// loadPreviewForSelection issues a delayed preview load for whatever is
// currently selected in the center panel.
func (m *Manager) loadPreviewForSelection() tea.Cmd {
	dp := m.center.Current()
	sel, ok := dp.Selection()
	if !ok {
		m.right.UpdatePanel(preview.Panel{Kind: preview.KindNone})
		m.redraw.Right = true
		return nil
	}
	width := m.lay.RightW - 2
	if width < 10 {
		width = 10
	}
	load := m.right.NewPanelDelayed(sel.Path, preview.LoadCmd(m.md, width))
	if _, cached := m.previewCache.Get(sel.Path); !cached {
		m.pendingRight = sel.Path
		m.spinner.Start()
		return tea.Batch(load, spinnerTick())
	}
	return load
}

func (m *Manager) handleOpenerClosed(msg opener.ClosedMsg) tea.Cmd {
	m.center.Unfreeze()
	m.redraw.All()
	if msg.Err != nil {
		m.logger.Error("external process exited with error", "err", msg.Err)
	}
	if m.bulk != nil {
		return m.finishBulkRename()
	}
	return m.center.Reload(dirLoader(sideCenter))
}

func parentOf(path string) string {
	if path == "/" || path == "" {
		return path
	}
	i := len(path) - 1
	for i > 0 && path[i] == '/' {
		i--
	}
	for i > 0 && path[i] != '/' {
		i--
	}
	if i == 0 {
		return "/"
	}
	return path[:i]
}

// View satisfies tea.Model.
func (m *Manager) View() string {
	return m.render()
}

// FinalPath returns the directory the user was in when they quit, for the
// caller (cmd/rfm) to print or write to a -cd-to-file target.
func (m *Manager) FinalPath() string { return m.finalPath }

// SetShowHidden configures the initial hidden-file visibility before the
// program starts; must be called before Init/Run.
func (m *Manager) SetShowHidden(v bool) {
	m.showHidden = v
	dp := m.center.Current()
	dp.ShowHidden = v
	m.center.UpdatePanel(dp)
}
