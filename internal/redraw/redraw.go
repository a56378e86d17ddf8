// Package redraw tracks which screen regions are dirty between frames so
// the view layer only re-renders what actually changed.
package redraw

// Tracker holds the seven independent dirty flags. Mutators call the
// named setters for the minimal set of regions their change affects;
// Draw-side code clears only the flags it actually satisfied.
type Tracker struct {
	Left    bool
	Center  bool
	Right   bool
	Header  bool
	Footer  bool
	Console bool
	Log     bool
}

// Any reports whether at least one region is dirty.
func (t *Tracker) Any() bool {
	return t.Left || t.Center || t.Right || t.Header || t.Footer || t.Console || t.Log
}

// All marks every region dirty, used on resize and log-panel toggle off.
func (t *Tracker) All() {
	*t = Tracker{Left: true, Center: true, Right: true, Header: true, Footer: true, Console: true, Log: true}
}

// Clear marks every region clean.
func (t *Tracker) Clear() {
	*t = Tracker{}
}

// Selection marks the regions touched by a selection change within the
// center panel: center itself, the right preview it drives, the footer
// info line, the header path, and the log (whose capacity may shift the
// layout).
func (t *Tracker) Selection() {
	t.Center, t.Right, t.Footer, t.Header, t.Log = true, true, true, true, true
}

// PathChange marks the regions touched by switching which directory the
// center panel shows.
func (t *Tracker) PathChange() {
	t.All()
}

// Marks marks the panel(s) whose mark set changed. side is one of
// "left", "center", "right".
func (t *Tracker) Marks(side string) {
	switch side {
	case "left":
		t.Left = true
	case "center":
		t.Center = true
	case "right":
		t.Right = true
	}
	t.Footer = true
}

// ModeChange marks the footer and console regions, used whenever Mode
// switches.
func (t *Tracker) ModeChange() {
	t.Footer, t.Console = true, true
}

// LogToggle marks the log region if turning on, or everything if turning
// off (since hiding the log region requires overdrawing where it was).
func (t *Tracker) LogToggle(nowVisible bool) {
	if nowVisible {
		t.Log = true
	} else {
		t.All()
	}
}
