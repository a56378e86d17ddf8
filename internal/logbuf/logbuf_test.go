package logbuf

import (
	"io"
	"log/slog"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestBuffer_CapacityEvictsOldest(t *testing.T) {
	b := NewBuffer(3)
	for i := 0; i < 5; i++ {
		b.push(Entry{Text: string(rune('a' + i))})
	}
	entries := b.Entries()
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	want := []string{"c", "d", "e"}
	for i, e := range entries {
		if e.Text != want[i] {
			t.Errorf("entry %d = %q, want %q", i, e.Text, want[i])
		}
	}
}

func TestBuffer_EntriesReturnsASnapshot(t *testing.T) {
	b := NewBuffer(10)
	b.push(Entry{Text: "first"})
	snap := b.Entries()
	b.push(Entry{Text: "second"})
	if len(snap) != 1 {
		t.Errorf("earlier snapshot should not see later pushes, got %d entries", len(snap))
	}
}

func TestListen_ResolvesAfterPush(t *testing.T) {
	b := NewBuffer(10)
	cmd := b.Listen()

	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	b.push(Entry{Text: "hello"})

	msg := <-done
	if _, ok := msg.(UpdatedMsg); !ok {
		t.Errorf("expected UpdatedMsg, got %T", msg)
	}
}

func TestHandler_ForwardsAndBuffers(t *testing.T) {
	buf := NewBuffer(10)
	h := NewHandler(slog.NewTextHandler(io.Discard, nil), buf)
	logger := slog.New(h)

	logger.Info("starting up", "path", "/tmp")

	entries := buf.Entries()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].Level != slog.LevelInfo {
		t.Errorf("level = %v, want Info", entries[0].Level)
	}
	if entries[0].Text != "starting up path=/tmp" {
		t.Errorf("text = %q, want %q", entries[0].Text, "starting up path=/tmp")
	}
}

func TestHandler_WithAttrsPreservesBuffer(t *testing.T) {
	buf := NewBuffer(10)
	h := NewHandler(slog.NewTextHandler(io.Discard, nil), buf)
	child := h.WithAttrs([]slog.Attr{slog.String("component", "watcher")})

	logger := slog.New(child)
	logger.Warn("debounced")

	entries := buf.Entries()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].Level != slog.LevelWarn {
		t.Errorf("level = %v, want Warn", entries[0].Level)
	}
}
