// Package workspace walks the files actually sitting on disk below a
// repository root: enumerating tracked/untracked candidates, reading file
// content, and extracting the stat metadata the index caches to avoid
// re-hashing unchanged files on every status check.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/utkarsh5026/SourceControl/pkg/repository/ignore"
	"github.com/utkarsh5026/SourceControl/pkg/repository/scpath"
)

// ignoredNames is the fixed set of entries the workspace never surfaces,
// regardless of .sourceignore content - metadata directories and names a
// .sourceignore pattern could accidentally un-ignore. Everything else goes
// through the pattern-set loaded by New (see loadIgnorePatterns).
var ignoredNames = map[string]struct{}{
	".git":       {},
	".gitignore": {},
	"target":     {},
}

func isIgnoredName(name string) bool {
	_, ok := ignoredNames[name]
	return ok
}

// Entry identifies one path below the workspace root, in both its
// absolute and repository-relative forms.
type Entry struct {
	Absolute scpath.AbsolutePath
	Relative scpath.RelativePath
	IsDir    bool
}

// DirEntry pairs a single immediate child of a directory with its stat,
// as returned by ListDir.
type DirEntry struct {
	Entry Entry
	Stat  Stat
}

// Workspace scopes all filesystem access to paths under root.
type Workspace struct {
	root    scpath.RepositoryPath
	ignores *ignore.PatternSet
}

// New creates a Workspace rooted at root, loading any .sourceignore file
// at the root on top of the built-in default ignore patterns. A missing
// .sourceignore is not an error; it just means only the defaults apply.
func New(root scpath.RepositoryPath) *Workspace {
	return &Workspace{root: root, ignores: loadIgnorePatterns(root)}
}

func loadIgnorePatterns(root scpath.RepositoryPath) *ignore.PatternSet {
	ps := ignore.NewPatternSet()
	ps.AddPatternsFromText(ignore.DefaultIgnore, "")

	data, err := os.ReadFile(root.Join(ignore.DefaultSource).String())
	if err == nil {
		ps.AddPatternsFromText(string(data), ignore.DefaultSource)
	}
	return ps
}

// Root returns the workspace's repository root.
func (w *Workspace) Root() scpath.RepositoryPath {
	return w.root
}

func (w *Workspace) rootAbs() scpath.AbsolutePath {
	return scpath.AbsolutePath(w.root.String())
}

// ListFiles recursively enumerates every file (never a directory) below
// start, skipping the fixed ignore set. start defaults to the workspace
// root. Iteration order is filesystem-dependent; callers that need a
// deterministic order must sort the result themselves.
func (w *Workspace) ListFiles(start *scpath.AbsolutePath) ([]Entry, error) {
	dir := w.rootAbs()
	if start != nil {
		dir = *start
	}
	return w.listFiles(dir)
}

func (w *Workspace) listFiles(dir scpath.AbsolutePath) ([]Entry, error) {
	children, err := w.readDirNames(dir)
	if err != nil {
		return nil, err
	}

	var out []Entry
	for _, name := range children {
		childAbs := dir.Join(name)
		info, err := os.Lstat(childAbs.String())
		if err != nil {
			return nil, fmt.Errorf("workspace: stat %s: %w", childAbs, err)
		}

		if info.IsDir() {
			sub, err := w.listFiles(childAbs)
			if err != nil {
				return nil, err
			}
			out = append(out, sub...)
			continue
		}

		rel, err := childAbs.RelativeTo(w.root)
		if err != nil {
			return nil, fmt.Errorf("workspace: relativize %s: %w", childAbs, err)
		}
		out = append(out, Entry{Absolute: childAbs, Relative: rel, IsDir: false})
	}
	return out, nil
}

// ListDir lists the immediate, non-recursive children of start (the
// workspace root by default), each paired with its stat. Used by the
// status engine to walk the tree top-down, pruning whole subtrees that
// are already fully tracked or fully ignored.
func (w *Workspace) ListDir(start *scpath.AbsolutePath) ([]DirEntry, error) {
	dir := w.rootAbs()
	if start != nil {
		dir = *start
	}

	children, err := w.readDirNames(dir)
	if err != nil {
		return nil, err
	}

	out := make([]DirEntry, 0, len(children))
	for _, name := range children {
		childAbs := dir.Join(name)
		info, err := os.Lstat(childAbs.String())
		if err != nil {
			return nil, fmt.Errorf("workspace: stat %s: %w", childAbs, err)
		}

		rel, err := childAbs.RelativeTo(w.root)
		if err != nil {
			return nil, fmt.Errorf("workspace: relativize %s: %w", childAbs, err)
		}

		out = append(out, DirEntry{
			Entry: Entry{Absolute: childAbs, Relative: rel, IsDir: info.IsDir()},
			Stat:  statFromFileInfo(info),
		})
	}
	return out, nil
}

func (w *Workspace) readDirNames(dir scpath.AbsolutePath) ([]string, error) {
	entries, err := os.ReadDir(dir.String())
	if err != nil {
		return nil, fmt.Errorf("workspace: read dir %s: %w", dir, err)
	}

	dirRel, _ := dir.RelativeTo(w.root)

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if isIgnoredName(e.Name()) {
			continue
		}
		childRel := dirRel.Join(e.Name())
		if w.ignores.IsIgnored(childRel.String(), e.IsDir(), "") {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// StatFile extracts the Stat metadata for an arbitrary absolute path.
func (w *Workspace) StatFile(path scpath.AbsolutePath) (Stat, error) {
	info, err := os.Lstat(path.String())
	if err != nil {
		return Stat{}, fmt.Errorf("workspace: stat %s: %w", path, err)
	}
	return statFromFileInfo(info), nil
}

// ReadFile reads the full content of entry, distinguishing a permission
// error from a generic I/O failure.
func (w *Workspace) ReadFile(entry Entry) ([]byte, error) {
	data, err := os.ReadFile(entry.Absolute.String())
	if err != nil {
		if os.IsPermission(err) {
			return nil, &PermissionDeniedError{Name: entry.Relative.String()}
		}
		if os.IsNotExist(err) {
			return nil, &MissingFileError{Name: entry.Relative.String()}
		}
		return nil, fmt.Errorf("workspace: read %s: %w", entry.Relative, err)
	}
	return data, nil
}

// ExpandPath canonicalizes root/name, resolving symlinks. It fails with
// MissingFileError if the resulting path does not exist.
func (w *Workspace) ExpandPath(name string) (scpath.AbsolutePath, error) {
	joined := w.root.Join(name)

	resolved, err := filepath.EvalSymlinks(joined.String())
	if err != nil {
		return "", &MissingFileError{Name: name}
	}
	return scpath.AbsolutePath(resolved), nil
}

func statFromFileInfo(info os.FileInfo) Stat {
	ctimeSec, ctimeNsec := extractCtime(info)
	dev, ino, uid, gid := extractSystemMetadata(info)

	mtime := info.ModTime()
	mode := uint32(info.Mode().Perm())
	if info.IsDir() {
		mode |= 0o40000
	} else {
		mode |= 0o100000
	}

	return Stat{
		CTimeSec:  ctimeSec,
		CTimeNsec: ctimeNsec,
		MTimeSec:  mtime.Unix(),
		MTimeNsec: int64(mtime.Nanosecond()),
		Dev:       dev,
		Ino:       ino,
		Mode:      mode,
		Uid:       uid,
		Gid:       gid,
		Size:      info.Size(),
	}
}
