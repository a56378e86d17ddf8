// Package logbuf implements the in-TUI log panel: a bounded ring buffer of
// level-tagged lines fed by a slog.Handler, so the rest of the codebase
// just calls slog as usual and the on-screen log is a side effect of the
// same handler rather than a separate logging path.
package logbuf

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Entry is one rendered log line.
type Entry struct {
	Level slog.Level
	Text  string
	Time  time.Time
}

// Buffer is a bounded ring of Entries, safe for concurrent use between the
// slog.Handler (any goroutine) and the event loop (foreground).
type Buffer struct {
	mu       sync.Mutex
	cap      int
	entries  []Entry
	notifyCh chan struct{}
}

// NewBuffer returns an empty buffer holding at most capacity entries.
func NewBuffer(capacity int) *Buffer {
	return &Buffer{cap: capacity, notifyCh: make(chan struct{}, 1)}
}

func (b *Buffer) push(e Entry) {
	b.mu.Lock()
	b.entries = append(b.entries, e)
	if len(b.entries) > b.cap {
		b.entries = b.entries[len(b.entries)-b.cap:]
	}
	b.mu.Unlock()
	select {
	case b.notifyCh <- struct{}{}:
	default:
	}
}

// Entries returns a snapshot of the buffered lines, oldest first.
func (b *Buffer) Entries() []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Entry, len(b.entries))
	copy(out, b.entries)
	return out
}

// Capacity returns the number of rows the log panel should reserve.
func (b *Buffer) Capacity() int { return b.cap }

// UpdatedMsg signals that new log entries have arrived.
type UpdatedMsg struct{}

// Listen returns a tea.Cmd that resolves to UpdatedMsg the next time a log
// line is pushed. The caller re-issues Listen() upon receiving UpdatedMsg
// to keep listening, the same "listen and reissue" idiom used by the
// watcher's Events channel.
func (b *Buffer) Listen() tea.Cmd {
	return func() tea.Msg {
		<-b.notifyCh
		return UpdatedMsg{}
	}
}

// Handler is a slog.Handler that both forwards to an underlying handler
// (normally stderr) and appends a rendered line to a Buffer.
type Handler struct {
	next slog.Handler
	buf  *Buffer
}

// NewHandler wraps next, also feeding buf.
func NewHandler(next slog.Handler, buf *Buffer) *Handler {
	return &Handler{next: next, buf: buf}
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	var attrs string
	r.Attrs(func(a slog.Attr) bool {
		attrs += " " + a.Key + "=" + a.Value.String()
		return true
	})
	h.buf.push(Entry{Level: r.Level, Text: fmt.Sprintf("%s%s", r.Message, attrs), Time: r.Time})
	return h.next.Handle(ctx, r)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{next: h.next.WithAttrs(attrs), buf: h.buf}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{next: h.next.WithGroup(name), buf: h.buf}
}
