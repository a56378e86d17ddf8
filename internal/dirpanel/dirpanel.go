// Package dirpanel implements the directory-listing panel: an ordered,
// sorted, searchable, markable view of one directory's entries. It backs
// both the left (parent) and center (current) Miller columns.
package dirpanel

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DirElem is one entry in a directory listing.
type DirElem struct {
	Path      string
	Name      string
	IsDir     bool
	IsSymlink bool
	Marked    bool
	Size      int64
	Mode      os.FileMode
	ModTime   int64 // unix seconds, avoids importing time into comparisons
}

// DirPanel is an ordered sequence of DirElem plus cursor/filter state.
type DirPanel struct {
	Path        string
	Entries     []DirElem
	Selected    int
	ShowHidden  bool
	SearchQuery string // lowercased; empty means no active filter
}

// Load reads dir and returns a freshly sorted DirPanel with nothing
// selected past index 0. Directories sort before files; ties break by
// case-insensitive name.
func Load(dir string) (DirPanel, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return DirPanel{Path: dir}, err
	}
	elems := make([]DirElem, 0, len(entries))
	for _, e := range entries {
		info, err := e.Info()
		if err != nil {
			continue
		}
		full := filepath.Join(dir, e.Name())
		elems = append(elems, DirElem{
			Path:      full,
			Name:      e.Name(),
			IsDir:     e.IsDir(),
			IsSymlink: info.Mode()&os.ModeSymlink != 0,
			Size:      info.Size(),
			Mode:      info.Mode(),
			ModTime:   info.ModTime().Unix(),
		})
	}
	sort.SliceStable(elems, func(i, j int) bool {
		if elems[i].IsDir != elems[j].IsDir {
			return elems[i].IsDir
		}
		return strings.ToLower(elems[i].Name) < strings.ToLower(elems[j].Name)
	})
	return DirPanel{Path: dir, Entries: elems}, nil
}

// Empty reports whether the panel has no entries.
func (p *DirPanel) Empty() bool { return len(p.VisibleIndices()) == 0 }

// VisibleIndices returns the indices into Entries that pass the hidden
// filter, in listing order.
func (p *DirPanel) VisibleIndices() []int {
	out := make([]int, 0, len(p.Entries))
	for i, e := range p.Entries {
		if !p.ShowHidden && strings.HasPrefix(e.Name, ".") {
			continue
		}
		out = append(out, i)
	}
	return out
}

// Matches reports whether entry i matches the active search query. With no
// query, every visible entry matches.
func (p *DirPanel) Matches(i int) bool {
	if p.SearchQuery == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Entries[i].Name), p.SearchQuery)
}

// Selection returns the currently selected entry, if any.
func (p *DirPanel) Selection() (DirElem, bool) {
	if p.Selected < 0 || p.Selected >= len(p.Entries) {
		return DirElem{}, false
	}
	return p.Entries[p.Selected], true
}

// MoveDown advances the selection to the next visible entry, no-op at the
// bottom.
func (p *DirPanel) MoveDown() {
	vis := p.VisibleIndices()
	for idx, v := range vis {
		if v == p.Selected && idx+1 < len(vis) {
			p.Selected = vis[idx+1]
			return
		}
	}
	if p.Selected == 0 && len(vis) > 0 {
		p.Selected = vis[0]
	}
}

// MoveUp retreats the selection to the previous visible entry, no-op at
// the top.
func (p *DirPanel) MoveUp() {
	vis := p.VisibleIndices()
	for idx, v := range vis {
		if v == p.Selected && idx > 0 {
			p.Selected = vis[idx-1]
			return
		}
	}
}

// MoveTop selects the first visible entry.
func (p *DirPanel) MoveTop() {
	if vis := p.VisibleIndices(); len(vis) > 0 {
		p.Selected = vis[0]
	}
}

// MoveBottom selects the last visible entry.
func (p *DirPanel) MoveBottom() {
	if vis := p.VisibleIndices(); len(vis) > 0 {
		p.Selected = vis[len(vis)-1]
	}
}

// MoveBy shifts the selection n visible positions (negative moves up),
// clamping at either end. Used for half-page/page movement.
func (p *DirPanel) MoveBy(n int) {
	vis := p.VisibleIndices()
	if len(vis) == 0 {
		return
	}
	cur := 0
	for idx, v := range vis {
		if v == p.Selected {
			cur = idx
			break
		}
	}
	cur += n
	if cur < 0 {
		cur = 0
	}
	if cur >= len(vis) {
		cur = len(vis) - 1
	}
	p.Selected = vis[cur]
}

// SelectPath moves the selection to the entry with this path, returning
// whether one was found. Used to preserve focus across a directory shift
// (e.g. selecting the child we came from after moving Left to its parent).
func (p *DirPanel) SelectPath(path string) bool {
	for i, e := range p.Entries {
		if e.Path == path {
			p.Selected = i
			return true
		}
	}
	return false
}

// ToggleMark flips the marked flag on the current selection.
func (p *DirPanel) ToggleMark() {
	if p.Selected >= 0 && p.Selected < len(p.Entries) {
		p.Entries[p.Selected].Marked = !p.Entries[p.Selected].Marked
	}
}

// ClearMarks unmarks every entry.
func (p *DirPanel) ClearMarks() {
	for i := range p.Entries {
		p.Entries[i].Marked = false
	}
}

// MarkedPaths returns the paths of every marked entry.
func (p *DirPanel) MarkedPaths() []string {
	var out []string
	for _, e := range p.Entries {
		if e.Marked {
			out = append(out, e.Path)
		}
	}
	return out
}

// NextMarked moves the selection to the next marked entry after the
// current one, wrapping is not performed (no-op if none follows).
func (p *DirPanel) NextMarked() {
	for i := p.Selected + 1; i < len(p.Entries); i++ {
		if p.Entries[i].Marked {
			p.Selected = i
			return
		}
	}
}

// PreviousMarked moves the selection to the nearest marked entry before
// the current one.
func (p *DirPanel) PreviousMarked() {
	for i := p.Selected - 1; i >= 0; i-- {
		if p.Entries[i].Marked {
			p.Selected = i
			return
		}
	}
}
