package index

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/utkarsh5026/SourceControl/pkg/common/fileops"
	"github.com/utkarsh5026/SourceControl/pkg/objects/blob"
	"github.com/utkarsh5026/SourceControl/pkg/repository/scpath"
	"github.com/utkarsh5026/SourceControl/pkg/store"
)

// Manager orchestrates all operations between the working directory,
// the index (staging area), and the repository's object database.
type Manager struct {
	repoRoot  scpath.RepositoryPath
	indexPath scpath.SourcePath
	index     *Index
	mu        sync.RWMutex
}

// NewManager creates a new index manager.
func NewManager(repoRoot scpath.RepositoryPath) *Manager {
	indexPath := repoRoot.SourcePath().IndexPath()
	return &Manager{
		repoRoot:  repoRoot,
		indexPath: indexPath,
		index:     NewIndex(),
	}
}

// Initialize loads the index from disk.
func (m *Manager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	index, err := Read(m.indexPath.ToAbsolutePath())
	if err != nil {
		return fmt.Errorf("failed to load index: %w", err)
	}

	m.index = index
	return nil
}

// AddResult represents the result of adding files to the index.
type AddResult struct {
	Added    []string           // New files added to index
	Modified []string           // Existing files updated in index
	Ignored  []string           // Files skipped due to ignore patterns
	Failed   []AddFailureResult // Files that failed to add
}

// AddFailureResult represents a failed add operation.
type AddFailureResult struct {
	Path   string
	Reason string
}

// Add adds files to the index (like git add).
//
// This operation:
// 1. Reads the file content from the working directory
// 2. Creates a blob object and stores it in the repository
// 3. Updates the index entry with the file's metadata and blob SHA
func (m *Manager) Add(paths []string, objectStore store.ObjectStore) (*AddResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := &AddResult{
		Added:    make([]string, 0),
		Modified: make([]string, 0),
		Ignored:  make([]string, 0),
		Failed:   make([]AddFailureResult, 0),
	}

	for _, path := range paths {
		if err := m.addFile(path, objectStore, result); err != nil {
			result.Failed = append(result.Failed, AddFailureResult{
				Path:   path,
				Reason: err.Error(),
			})
		}
	}

	if err := m.saveIndex(); err != nil {
		return result, fmt.Errorf("failed to save index: %w", err)
	}

	return result, nil
}

// addFile adds a single file to the index.
func (m *Manager) addFile(path string, objectStore store.ObjectStore, result *AddResult) error {
	absPath, relPath, err := m.resolvePaths(path)
	if err != nil {
		return err
	}

	info, err := os.Stat(absPath.String())
	if err != nil {
		return fmt.Errorf("failed to stat file: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("cannot add directory (use files within it)")
	}

	// Read file content
	content, err := fileops.ReadBytesStrict(absPath)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	// Create blob and store it
	b := blob.NewBlob(content)
	hash, err := objectStore.WriteObject(b)
	if err != nil {
		return fmt.Errorf("failed to store blob: %w", err)
	}

	// Create or update index entry
	isNew := !m.index.Has(relPath)

	entry, err := NewEntryFromFileInfo(relPath, info, hash)
	if err != nil {
		return fmt.Errorf("failed to create entry: %w", err)
	}

	m.index.Add(entry)

	if isNew {
		result.Added = append(result.Added, relPath.String())
	} else {
		result.Modified = append(result.Modified, relPath.String())
	}

	return nil
}

// RemoveResult represents the result of removing files from the index.
type RemoveResult struct {
	Removed []string              // Successfully removed files
	Failed  []RemoveFailureResult // Files that failed to remove
}

// RemoveFailureResult represents a failed remove operation.
type RemoveFailureResult struct {
	Path   string
	Reason string
}

// Remove removes files from the index and optionally from the working directory.
func (m *Manager) Remove(paths []string, deleteFromDisk bool) (*RemoveResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := &RemoveResult{
		Removed: make([]string, 0),
		Failed:  make([]RemoveFailureResult, 0),
	}

	for _, path := range paths {
		absPath, relPath, err := m.resolvePaths(path)
		if err != nil {
			result.Failed = append(result.Failed, RemoveFailureResult{
				Path:   path,
				Reason: err.Error(),
			})
			continue
		}

		if !m.index.Has(relPath) {
			result.Failed = append(result.Failed, RemoveFailureResult{
				Path:   relPath.String(),
				Reason: "file not in index",
			})
			continue
		}

		m.index.Remove(relPath)
		result.Removed = append(result.Removed, relPath.String())

		// Optionally delete from disk
		if deleteFromDisk {
			if err := fileops.SafeRemove(absPath); err != nil {
				// File was removed from index but failed to delete from disk
				// We don't add this to Failed since index operation succeeded
			}
		}
	}

	// Save index after all removals
	if err := m.saveIndex(); err != nil {
		return result, fmt.Errorf("failed to save index: %w", err)
	}

	return result, nil
}

// Clear removes all entries from the index.
func (m *Manager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.index.Clear()
	return m.saveIndex()
}

// GetIndex returns the manager's underlying index. Callers that mutate it
// directly (the status engine refreshing stat caches, for instance) must
// go through Save afterward to persist those changes.
func (m *Manager) GetIndex() *Index {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.index
}

// Save writes the index to disk if it has unsaved changes. Exposed so
// callers that mutated the index returned by GetIndex (outside of Add,
// Remove or Clear) can flush those changes explicitly.
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.saveIndex()
}

// saveIndex writes the index to disk (caller must hold lock).
func (m *Manager) saveIndex() error {
	return m.index.Write(m.indexPath.ToAbsolutePath())
}

// resolvePaths converts a path to absolute and relative forms.
func (m *Manager) resolvePaths(path string) (scpath.AbsolutePath, scpath.RelativePath, error) {
	var absPath scpath.AbsolutePath

	if filepath.IsAbs(path) {
		absPath = scpath.AbsolutePath(filepath.Clean(path))
	} else {
		absPath = m.repoRoot.Join(path)
	}

	relPath, err := absPath.RelativeTo(m.repoRoot)
	if err != nil {
		return "", "", fmt.Errorf("failed to compute relative path: %w", err)
	}

	return absPath, relPath, nil
}

// Read reads an index file from disk.
func Read(path scpath.AbsolutePath) (*Index, error) {
	data, err := fileops.ReadBytes(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read index file: %w", err)
	}

	// If file doesn't exist, return empty index
	if data == nil {
		return NewIndex(), nil
	}

	index := NewIndex()
	if err := index.Deserialize(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to deserialize index: %w", err)
	}

	return index, nil
}
