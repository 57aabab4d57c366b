package workspace

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/utkarsh5026/SourceControl/pkg/repository/scpath"
)

func setupWorkspace(t *testing.T) (*Workspace, scpath.RepositoryPath, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "workspace-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	root, err := scpath.NewRepositoryPath(tmpDir)
	if err != nil {
		os.RemoveAll(tmpDir)
		t.Fatalf("failed to create repository path: %v", err)
	}

	return New(root), root, func() { os.RemoveAll(tmpDir) }
}

func writeFile(t *testing.T, root scpath.RepositoryPath, rel string, content string) {
	t.Helper()
	full := filepath.Join(root.String(), rel)
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(full, []byte(content), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}
}

func relPaths(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Relative.String()
	}
	sort.Strings(out)
	return out
}

func TestListFilesSkipsIgnoredNames(t *testing.T) {
	ws, root, cleanup := setupWorkspace(t)
	defer cleanup()

	writeFile(t, root, "hello.txt", "hello")
	writeFile(t, root, "nested/inner.txt", "inner")
	writeFile(t, root, ".git/HEAD", "ref: refs/heads/master")
	writeFile(t, root, ".gitignore", "*.log")
	writeFile(t, root, "target/build.o", "binary")

	entries, err := ws.ListFiles(nil)
	if err != nil {
		t.Fatalf("ListFiles failed: %v", err)
	}

	got := relPaths(entries)
	want := []string{"hello.txt", "nested/inner.txt"}
	sort.Strings(want)

	if len(got) != len(want) {
		t.Fatalf("ListFiles() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ListFiles()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestListDirNonRecursive(t *testing.T) {
	ws, root, cleanup := setupWorkspace(t)
	defer cleanup()

	writeFile(t, root, "a.txt", "a")
	writeFile(t, root, "nested/b.txt", "b")

	children, err := ws.ListDir(nil)
	if err != nil {
		t.Fatalf("ListDir failed: %v", err)
	}

	if len(children) != 2 {
		t.Fatalf("expected 2 immediate children, got %d", len(children))
	}

	var sawDir, sawFile bool
	for _, c := range children {
		if c.Entry.IsDir {
			sawDir = true
		} else {
			sawFile = true
			if c.Stat.Size != 1 {
				t.Errorf("a.txt size = %d, want 1", c.Stat.Size)
			}
		}
	}
	if !sawDir || !sawFile {
		t.Errorf("expected both a directory and a file entry, dir=%v file=%v", sawDir, sawFile)
	}
}

func TestReadFile(t *testing.T) {
	ws, root, cleanup := setupWorkspace(t)
	defer cleanup()

	writeFile(t, root, "hello.txt", "hello world")

	entries, err := ws.ListFiles(nil)
	if err != nil {
		t.Fatalf("ListFiles failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	data, err := ws.ReadFile(entries[0])
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "hello world" {
		t.Errorf("ReadFile() = %q, want %q", data, "hello world")
	}
}

func TestExpandPathMissing(t *testing.T) {
	ws, _, cleanup := setupWorkspace(t)
	defer cleanup()

	_, err := ws.ExpandPath("does-not-exist.txt")
	if err == nil {
		t.Fatal("expected MissingFileError, got nil")
	}

	var missing *MissingFileError
	if !isMissingFileError(err, &missing) {
		t.Errorf("expected *MissingFileError, got %T: %v", err, err)
	}
}

func isMissingFileError(err error, target **MissingFileError) bool {
	if e, ok := err.(*MissingFileError); ok {
		*target = e
		return true
	}
	return false
}

func TestStatFileIsExecutable(t *testing.T) {
	ws, root, cleanup := setupWorkspace(t)
	defer cleanup()

	writeFile(t, root, "script.sh", "#!/bin/sh\necho hi\n")
	full := filepath.Join(root.String(), "script.sh")
	if err := os.Chmod(full, 0755); err != nil {
		t.Fatalf("chmod: %v", err)
	}

	stat, err := ws.StatFile(scpath.AbsolutePath(full))
	if err != nil {
		t.Fatalf("StatFile failed: %v", err)
	}
	if !stat.IsExecutable() {
		t.Error("expected script.sh to report as executable")
	}
}

func TestListFilesHonorsSourceIgnore(t *testing.T) {
	ws, root, cleanup := setupWorkspace(t)
	defer cleanup()

	writeFile(t, root, ".sourceignore", "*.log\nbuild/\n")
	writeFile(t, root, "keep.txt", "keep")
	writeFile(t, root, "debug.log", "noisy")
	writeFile(t, root, "build/output.bin", "binary")

	// New() must be re-invoked after .sourceignore is written so it's loaded.
	ws = New(root)

	entries, err := ws.ListFiles(nil)
	if err != nil {
		t.Fatalf("ListFiles failed: %v", err)
	}

	got := relPaths(entries)
	want := []string{".sourceignore", "keep.txt"}
	sort.Strings(want)
	if len(got) != len(want) {
		t.Fatalf("ListFiles() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ListFiles()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
