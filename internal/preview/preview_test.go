package preview

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIsBinary_NullByteWithinFirst512(t *testing.T) {
	if !isBinary([]byte("hello\x00world")) {
		t.Error("a null byte should be detected as binary")
	}
	if isBinary([]byte("hello world, no nulls here")) {
		t.Error("plain text should not be flagged as binary")
	}
}

func TestIsBinary_NullByteBeyond512IsIgnored(t *testing.T) {
	data := make([]byte, 600)
	for i := range data {
		data[i] = 'a'
	}
	data[550] = 0
	if isBinary(data) {
		t.Error("a null byte past the first 512 bytes should not count")
	}
}

func TestExt(t *testing.T) {
	cases := map[string]string{
		"/a/b/c.go":   ".go",
		"/a/b/c":      "",
		"/a.b/c":      "",
		"file.tar.gz": ".gz",
	}
	for path, want := range cases {
		if got := ext(path); got != want {
			t.Errorf("ext(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestSplitLines(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"a\nb\nc", []string{"a", "b", "c"}},
		{"a\nb\n", []string{"a", "b"}},
		{"", nil},
		{"single", []string{"single"}},
	}
	for _, tt := range cases {
		got := splitLines(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("splitLines(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("splitLines(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}

func TestLoad_Directory(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "child.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	p := load(dir, nil, 80)
	if p.Kind != KindDir {
		t.Fatalf("Kind = %v, want KindDir", p.Kind)
	}
	if len(p.Dir.Entries) != 1 {
		t.Errorf("expected 1 entry in the directory preview, got %d", len(p.Dir.Entries))
	}
}

func TestLoad_BinaryFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blob.bin")
	if err := os.WriteFile(path, []byte("abc\x00def"), 0o644); err != nil {
		t.Fatal(err)
	}
	p := load(path, nil, 80)
	if p.Kind != KindBinary {
		t.Errorf("Kind = %v, want KindBinary", p.Kind)
	}
}

func TestLoad_MissingPath(t *testing.T) {
	p := load(filepath.Join(t.TempDir(), "nope"), nil, 80)
	if p.Kind != KindNone {
		t.Errorf("Kind = %v, want KindNone", p.Kind)
	}
	if p.Err == nil {
		t.Error("expected an error for a missing path")
	}
}
