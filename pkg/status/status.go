// Package status computes the difference between the index, the working
// tree and nothing else (no HEAD comparison) - the same three disjoint
// lists `git status` shows as "Untracked files", "Changes not staged for
// commit" and deleted entries.
package status

import (
	"fmt"
	"sort"

	"github.com/utkarsh5026/SourceControl/pkg/index"
	"github.com/utkarsh5026/SourceControl/pkg/objects/blob"
	"github.com/utkarsh5026/SourceControl/pkg/repository/scpath"
	"github.com/utkarsh5026/SourceControl/pkg/workspace"
)

// Result holds the three disjoint, pathname-sorted lists the engine
// produces. Untracked directories are reported as a single entry with a
// trailing slash rather than every file underneath them.
type Result struct {
	Untracked []string
	Modified  []string
	Deleted   []string
}

// Clean reports whether the working tree and index have nothing to show.
func (r *Result) Clean() bool {
	return len(r.Untracked) == 0 && len(r.Modified) == 0 && len(r.Deleted) == 0
}

// Engine scans a workspace against an index to compute a Result. It never
// touches the object database except to re-hash candidate blobs during
// classification; it never reads HEAD.
type Engine struct {
	ws  *workspace.Workspace
	idx *index.Index
}

// NewEngine creates a status engine over ws and idx. idx is mutated in
// place when Scan refreshes stat caches - callers that want those
// refreshes persisted must write idx back out afterward.
func NewEngine(ws *workspace.Workspace, idx *index.Index) *Engine {
	return &Engine{ws: ws, idx: idx}
}

// Scan runs both passes and returns the resulting Result. If any index
// entry's cached stat fields were refreshed during classification,
// idx.Dirty() reports true afterward so the caller knows to persist it.
func (e *Engine) Scan() (*Result, error) {
	stats := make(map[string]workspace.Stat)
	var untracked []string

	root := e.ws.Root().Join()
	if err := e.scanWorkspace(root, stats, &untracked); err != nil {
		return nil, err
	}
	sort.Strings(untracked)

	result := &Result{Untracked: untracked}
	if err := e.classifyEntries(stats, result); err != nil {
		return nil, err
	}

	return result, nil
}

// scanWorkspace walks dir top-down, pruning whole subtrees that are
// already known to be fully tracked or fully untrackable.
func (e *Engine) scanWorkspace(dir scpath.AbsolutePath, stats map[string]workspace.Stat, untracked *[]string) error {
	children, err := e.ws.ListDir(&dir)
	if err != nil {
		return err
	}

	for _, child := range children {
		rel := child.Entry.Relative

		if child.Entry.IsDir {
			if e.idx.IsTracked(rel) {
				if err := e.scanWorkspace(child.Entry.Absolute, stats, untracked); err != nil {
					return err
				}
				continue
			}

			trackable, err := e.dirHasTrackableFile(child.Entry.Absolute)
			if err != nil {
				return err
			}
			if trackable {
				*untracked = append(*untracked, rel.String()+"/")
			}
			continue
		}

		if e.idx.IsTracked(rel) {
			stats[rel.String()] = child.Stat
			continue
		}
		*untracked = append(*untracked, rel.String())
	}

	return nil
}

// dirHasTrackableFile reports whether dir contains, at any depth, a file
// not already filtered out by the workspace's fixed ignore set. Every
// entry the workspace surfaces under an untracked directory is by
// definition untracked (a tracked file below here would make this
// directory itself tracked, via the index's parents map), so "contains a
// file" and "contains a trackable file" coincide.
func (e *Engine) dirHasTrackableFile(dir scpath.AbsolutePath) (bool, error) {
	children, err := e.ws.ListDir(&dir)
	if err != nil {
		return false, err
	}

	for _, child := range children {
		if !child.Entry.IsDir {
			return true, nil
		}
		has, err := e.dirHasTrackableFile(child.Entry.Absolute)
		if err != nil {
			return false, err
		}
		if has {
			return true, nil
		}
	}
	return false, nil
}

// classifyEntries runs pass 2: every index entry is either deleted (no
// workspace stat), modified (mode/size mismatch, or content rehash
// differs), or unchanged (possibly after a stat-cache refresh).
func (e *Engine) classifyEntries(stats map[string]workspace.Stat, result *Result) error {
	for _, entry := range e.idx.Entries {
		pathname := entry.Path.String()

		stat, ok := stats[pathname]
		if !ok {
			result.Deleted = append(result.Deleted, pathname)
			continue
		}

		if !entry.MatchesStat(stat) {
			result.Modified = append(result.Modified, pathname)
			continue
		}

		if entry.MatchesTimes(stat) {
			continue
		}

		unchanged, err := e.rehash(entry, stat)
		if err != nil {
			return err
		}
		if !unchanged {
			result.Modified = append(result.Modified, pathname)
		}
	}

	return nil
}

// rehash re-reads an entry's content, recomputes its blob id, and - if it
// still matches the stored id - refreshes the entry's cached stat times so
// future scans can trust the fast path instead of re-reading the file.
func (e *Engine) rehash(entry *index.Entry, stat workspace.Stat) (bool, error) {
	abs, err := e.ws.Root().JoinRelative(entry.Path)
	if err != nil {
		return false, fmt.Errorf("status: resolve %s: %w", entry.Path, err)
	}

	content, err := e.ws.ReadFile(workspace.Entry{Absolute: abs, Relative: entry.Path})
	if err != nil {
		return false, fmt.Errorf("status: read %s: %w", entry.Path, err)
	}

	hash, err := blob.NewBlob(content).Hash()
	if err != nil {
		return false, fmt.Errorf("status: hash %s: %w", entry.Path, err)
	}

	if hash != entry.BlobHash {
		return false, nil
	}

	e.idx.UpdateEntryStat(entry.Path, stat)
	return true, nil
}
