package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/catenary/site/internal/checksum"
)

func tempRoot(t *testing.T) *FS {
	t.Helper()
	fs, err := NewFS(t.TempDir())
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return fs
}

func TestWriteAndRead(t *testing.T) {
	s := tempRoot(t)
	content := []byte("<!DOCTYPE html><html></html>")
	if err := s.Write("index.html", content); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := s.Read("index.html")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("content mismatch: got %q", got)
	}
	info, err := os.Stat(filepath.Join(s.Root(), "index.html"))
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o644 {
		t.Errorf("mode = %v", info.Mode().Perm())
	}
}

func TestWriteCreatesSubdirs(t *testing.T) {
	s := tempRoot(t)
	if err := s.Write("whitepaper/index.html", []byte("deep")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := s.Read("whitepaper/index.html")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != "deep" {
		t.Errorf("content = %q", got)
	}
}

func TestDelete(t *testing.T) {
	s := tempRoot(t)
	_ = s.Write("old.html", []byte("bye"))
	if err := s.Delete("old.html"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Read("old.html"); err == nil {
		t.Error("expected error reading deleted file")
	}
}

func TestDeleteRemovesEmptyParents(t *testing.T) {
	s := tempRoot(t)
	_ = s.Write("a/b/index.html", []byte("x"))
	_ = s.Write("a/keep.html", []byte("y"))
	if err := s.Delete("a/b/index.html"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(s.Root(), "a", "b")); !os.IsNotExist(err) {
		t.Errorf("empty dir a/b survived: %v", err)
	}
	if _, err := os.Stat(filepath.Join(s.Root(), "a", "keep.html")); err != nil {
		t.Errorf("sibling removed: %v", err)
	}
	if err := s.Delete(""); err == nil {
		t.Error("deleting the root should fail")
	}
}

func TestListSorted(t *testing.T) {
	s := tempRoot(t)
	_ = s.Write("whitepaper/index.html", []byte("b"))
	_ = s.Write("index.html", []byte("a"))
	_ = s.Write("whitepaper.md", []byte("c"))

	items, err := s.List("")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"index.html", "whitepaper.md", "whitepaper/index.html"}
	if len(items) != len(want) {
		t.Fatalf("len = %d, want %d", len(items), len(want))
	}
	for i, it := range items {
		if it.Path != want[i] {
			t.Errorf("items[%d] = %s, want %s", i, it.Path, want[i])
		}
	}
	if items[0].Checksum != checksum.Sum([]byte("a")) || items[0].Size != 1 {
		t.Errorf("metadata = %+v", items[0])
	}
}

func TestTraversalBlocked(t *testing.T) {
	s := tempRoot(t)

	cases := []string{
		"../../etc/passwd",
		"../outside.html",
		"/etc/shadow",
	}
	for _, p := range cases {
		if _, err := s.Read(p); err == nil {
			t.Errorf("expected error for path %q", p)
		}
		if err := s.Write(p, []byte("x")); err == nil {
			t.Errorf("expected error for write to %q", p)
		}
	}
	if err := s.Write("", []byte("x")); err == nil {
		t.Error("expected error writing to root")
	}
}

func TestAtomicWriteLeavesNoTempFiles(t *testing.T) {
	s := tempRoot(t)
	_ = s.Write("atomic.html", []byte("original content"))

	updated := []byte("updated content")
	if err := s.Write("atomic.html", updated); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, _ := s.Read("atomic.html")
	if string(got) != string(updated) {
		t.Errorf("expected updated content, got %q", got)
	}

	matches, _ := filepath.Glob(filepath.Join(s.root, tempPattern))
	if len(matches) != 0 {
		t.Errorf("leftover temp files: %v", matches)
	}
}

func TestNewFS_NonExistentDir(t *testing.T) {
	_, err := NewFS(filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Error("expected error for non-existent dir")
	}
}

func TestNewFS_FileNotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(f, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFS(f); err == nil {
		t.Error("expected error when root is a file")
	}
}
