package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func tempStore(t *testing.T) (string, *FS) {
	t.Helper()
	dir := t.TempDir()
	fs, err := NewFS(dir)
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return dir, fs
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	abs := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(abs, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRead(t *testing.T) {
	root, s := tempStore(t)
	writeFile(t, root, "posts/hello.md", "# Hello\n")
	got, err := s.Read("posts/hello.md")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != "# Hello\n" {
		t.Errorf("content = %q", got)
	}
}

func TestListSkipsNonMarkdown(t *testing.T) {
	root, s := tempStore(t)
	writeFile(t, root, "posts/a.md", "a")
	writeFile(t, root, "posts/b.txt", "b")
	writeFile(t, root, "posts/deep/c.md", "c")
	infos, err := s.List("posts")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("len = %d, want 2", len(infos))
	}
	for _, fi := range infos {
		if fi.Checksum == "" {
			t.Errorf("missing checksum for %s", fi.Path)
		}
	}
}

func TestListMissingDirIsEmpty(t *testing.T) {
	_, s := tempStore(t)
	infos, err := s.List("ventures")
	if err != nil {
		t.Fatalf("List on missing dir: %v", err)
	}
	if len(infos) != 0 {
		t.Errorf("expected empty result, got %v", infos)
	}
}

func TestTraversalRejected(t *testing.T) {
	root, s := tempStore(t)
	writeFile(t, root, "posts/a.md", "a")
	if _, err := s.Read("../outside.md"); err == nil {
		t.Error("expected traversal to be rejected")
	}
	if _, err := s.Read("/etc/passwd"); err == nil {
		t.Error("expected absolute path to be rejected")
	}
}
