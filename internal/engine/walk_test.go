package engine

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTree(t *testing.T, files map[string][]byte) string {
	t.Helper()
	dir := t.TempDir()
	for name, data := range files {
		full := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(full, data, 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func TestWalk_SupportedExtensionsOnly(t *testing.T) {
	dir := writeTree(t, map[string][]byte{
		"a.docx":          []byte("x"),
		"b.pdf":           []byte("x"),
		"c.txt":           []byte("x"),
		"sub/d.docx":      []byte("x"),
		".hidden/e.docx":  []byte("x"),
		"sub/.notes.yaml": []byte("x"),
	})
	targets, err := Walk(Config{Root: dir})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	want := []string{"a.docx", "b.pdf", filepath.Join("sub", "d.docx")}
	if len(targets) != len(want) {
		t.Fatalf("targets = %v, want %v", targets, want)
	}
	for i := range want {
		if targets[i] != want[i] {
			t.Fatalf("targets = %v, want %v", targets, want)
		}
	}
}

func TestWalk_IncludeExcludeGlobs(t *testing.T) {
	dir := writeTree(t, map[string][]byte{
		"keep.docx":        []byte("x"),
		"drop.docx":        []byte("x"),
		"sub/nested.docx":  []byte("x"),
		"sub/skipped.docx": []byte("x"),
	})

	targets, err := Walk(Config{Root: dir, IncludeGlobs: "**/*.docx", ExcludeGlobs: "drop.docx,**/skipped.docx"})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	got := map[string]bool{}
	for _, p := range targets {
		got[filepath.ToSlash(p)] = true
	}
	if !got["keep.docx"] || !got["sub/nested.docx"] {
		t.Fatalf("include glob dropped wanted files: %v", targets)
	}
	if got["drop.docx"] || got["sub/skipped.docx"] {
		t.Fatalf("exclude glob failed: %v", targets)
	}
}

func TestWalk_MaxBytes(t *testing.T) {
	dir := writeTree(t, map[string][]byte{
		"small.docx": []byte("x"),
		"big.docx":   make([]byte, 4096),
	})
	targets, err := Walk(Config{Root: dir, MaxBytes: 1024})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	if len(targets) != 1 || targets[0] != "small.docx" {
		t.Fatalf("oversized file not skipped: %v", targets)
	}
}

func TestCountTargets(t *testing.T) {
	dir := writeTree(t, map[string][]byte{
		"a.docx": []byte("x"),
		"b.pdf":  []byte("x"),
		"c.md":   []byte("x"),
	})
	n, err := CountTargets(Config{Root: dir})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 targets, got %d", n)
	}
}
