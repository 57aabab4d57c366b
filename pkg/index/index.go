package index

import (
	"bytes"
	"crypto/sha1"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/utkarsh5026/SourceControl/pkg/lockfile"
	"github.com/utkarsh5026/SourceControl/pkg/repository/scpath"
	"github.com/utkarsh5026/SourceControl/pkg/workspace"
)

// Index represents the Git Index (Staging Area) - the bridge between working directory and commits.
//
// The index is Git's "staging area" - a snapshot of your working directory that
// you're building up for your next commit. It's stored as a binary file at .git/index.
//
// Index File Format:
//
//	┌────────────────────────────────────────┐
//	│ Header (12 bytes)                      │
//	│   Signature: "DIRC" (4 bytes)          │
//	│   Version: 2 (4 bytes)                 │
//	│   Entry Count: N (4 bytes)             │
//	├────────────────────────────────────────┤
//	│ Entries (variable length)              │
//	│   Entry 1                              │
//	│   Entry 2                              │
//	│   ...                                  │
//	│   Entry N                              │
//	├────────────────────────────────────────┤
//	│ Extensions (optional)                  │
//	├────────────────────────────────────────┤
//	│ SHA-1 Checksum (20 bytes)              │
//	└────────────────────────────────────────┘
type Index struct {
	// Version is the index file format version (typically 2)
	Version uint32

	// Entries contains all staged files, sorted by path
	Entries []*Entry

	// parents maps a directory pathname to the set of entry pathnames
	// currently staged somewhere underneath it. It exists purely to make
	// "is this path (or something under it) tracked" and conflict
	// detection O(1)/O(depth) instead of a linear scan of every entry.
	parents map[string]map[string]struct{}

	// dirty reports whether in-memory state differs from what was last
	// loaded from (or written to) disk. Write is a no-op when this is
	// false, matching a real index's "nothing staged, nothing to flush"
	// behavior.
	dirty bool
}

// NewIndex creates a new empty index with the default version.
//
// Example:
//
//	idx := NewIndex()
//	fmt.Println(idx.Count()) // Output: 0
func NewIndex() *Index {
	return &Index{
		Version: IndexVersion,
		Entries: make([]*Entry, 0),
		parents: make(map[string]map[string]struct{}),
	}
}

// parentPaths returns every proper ancestor directory of pathname, from
// shallowest to deepest ("a/b/c.txt" -> ["a", "a/b"]).
func parentPaths(pathname string) []string {
	parts := strings.Split(pathname, "/")
	if len(parts) <= 1 {
		return nil
	}

	ancestors := make([]string, 0, len(parts)-1)
	for i := 1; i < len(parts); i++ {
		ancestors = append(ancestors, strings.Join(parts[:i], "/"))
	}
	return ancestors
}

// Write persists the index to disk at the specified path.
// The index is serialized in Git's binary format and includes a SHA-1 checksum.
//
// Parameters:
//   - path: Absolute path where the index file should be written (typically .git/index)
//
// Returns an error if:
//   - Serialization fails
//   - File cannot be written (permissions, disk full, etc.)
func (idx *Index) Write(path scpath.AbsolutePath) error {
	if !idx.dirty {
		return nil
	}

	buf := new(bytes.Buffer)

	if err := idx.Serialize(buf); err != nil {
		return fmt.Errorf("failed to serialize index: %w", err)
	}

	if err := os.MkdirAll(path.Dir().String(), 0755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	lf := lockfile.New(path.String())
	if err := lf.HoldForUpdate(); err != nil {
		return fmt.Errorf("failed to acquire index lock: %w", err)
	}

	if err := lf.Write(buf.Bytes()); err != nil {
		_ = lf.Rollback()
		return fmt.Errorf("failed to write index file: %w", err)
	}

	if err := lf.Commit(); err != nil {
		return fmt.Errorf("failed to commit index file: %w", err)
	}

	idx.dirty = false
	return nil
}

// Dirty reports whether the in-memory index differs from what was last
// persisted.
func (idx *Index) Dirty() bool {
	return idx.dirty
}

// Add stages a new file or updates an existing entry in the index.
//
// Before inserting, it discards any entry that now conflicts with this
// path: an existing file entry at one of path's ancestor directories (that
// ancestor is about to become a directory, not a file), and any existing
// entries nested under path itself (path is about to become a file, not a
// directory). This mirrors how a real index keeps only leaf blobs and
// never lets a path be both a file and a directory at once.
func (idx *Index) Add(entry *Entry) {
	if idx.parents == nil {
		idx.parents = make(map[string]map[string]struct{})
	}

	pathname := entry.Path.String()
	idx.discardConflicts(pathname)
	idx.removeEntryAt(pathname)

	idx.Entries = append(idx.Entries, entry)
	idx.addParents(pathname)
	idx.sort()
	idx.dirty = true
}

// discardConflicts evicts every entry that would conflict with staging a
// new entry at pathname: a file entry sitting at one of pathname's
// ancestor directories, and (if pathname itself is currently used as a
// directory) every entry nested underneath it.
func (idx *Index) discardConflicts(pathname string) {
	for _, ancestor := range parentPaths(pathname) {
		idx.removeEntryAt(ancestor)
	}

	if children, ok := idx.parents[pathname]; ok {
		for child := range children {
			idx.removeEntryAt(child)
		}
	}
}

// addParents records pathname as a descendant of each of its ancestor
// directories in the parents map.
func (idx *Index) addParents(pathname string) {
	for _, ancestor := range parentPaths(pathname) {
		set, ok := idx.parents[ancestor]
		if !ok {
			set = make(map[string]struct{})
			idx.parents[ancestor] = set
		}
		set[pathname] = struct{}{}
	}
}

// removeEntryAt removes the entry at pathname (if any) from Entries and
// unlinks it from every ancestor's descendant set in parents, deleting an
// ancestor's map entry entirely once its set becomes empty.
func (idx *Index) removeEntryAt(pathname string) {
	removed := false
	for i, e := range idx.Entries {
		if e.Path.String() == pathname {
			idx.Entries = append(idx.Entries[:i], idx.Entries[i+1:]...)
			removed = true
			break
		}
	}
	if !removed {
		return
	}

	for _, ancestor := range parentPaths(pathname) {
		set, ok := idx.parents[ancestor]
		if !ok {
			continue
		}
		delete(set, pathname)
		if len(set) == 0 {
			delete(idx.parents, ancestor)
		}
	}
}

// Remove unstages a file by removing its entry from the index.
//
// Parameters:
//   - path: Relative path of the file to remove
//
// Returns:
//   - true if the entry was found and removed
//   - false if no entry with that path exists
func (idx *Index) Remove(path scpath.RelativePath) bool {
	normalizedPath := path.Normalize().String()
	for _, e := range idx.Entries {
		if e.Path.String() == normalizedPath {
			idx.removeEntryAt(normalizedPath)
			idx.dirty = true
			return true
		}
	}
	return false
}

// UpdateEntryStat refreshes the cached stat fields of the entry at path
// from a freshly observed workspace stat, leaving its stored object id
// untouched, and marks the index dirty so the refreshed cache gets
// persisted on the next Write. Reports false if no entry exists at path.
func (idx *Index) UpdateEntryStat(path scpath.RelativePath, stat workspace.Stat) bool {
	entry, ok := idx.Get(path)
	if !ok {
		return false
	}
	entry.UpdateStat(stat)
	idx.dirty = true
	return true
}

// IsTracked reports whether pathname is staged directly, or is an
// ancestor directory of something that is staged.
func (idx *Index) IsTracked(path scpath.RelativePath) bool {
	pathname := path.Normalize().String()
	if idx.Has(path) {
		return true
	}
	_, ok := idx.parents[pathname]
	return ok
}

// Get retrieves an entry by its path.
//
// Parameters:
//   - path: Relative path of the file to find
//
// Returns:
//   - The entry if found, along with true
//   - nil and false if not found
func (idx *Index) Get(path scpath.RelativePath) (*Entry, bool) {
	normalizedPath := path.Normalize()
	for _, e := range idx.Entries {
		if e.Path == normalizedPath {
			return e, true
		}
	}
	return nil, false
}

// Has checks if a file is currently staged in the index.
//
// Parameters:
//   - path: Relative path of the file to check
//
// Returns true if the file is staged, false otherwise.
func (idx *Index) Has(path scpath.RelativePath) bool {
	_, ok := idx.Get(path)
	return ok
}

// Clear removes all entries from the index, effectively unstaging all files.
func (idx *Index) Clear() {
	if len(idx.Entries) > 0 {
		idx.dirty = true
	}
	idx.Entries = make([]*Entry, 0)
	idx.parents = make(map[string]map[string]struct{})
}

// Paths returns a slice of all staged file paths.
// The returned slice is a copy and can be safely modified.
//
// Returns:
//   - Slice of relative paths for all staged files
func (idx *Index) Paths() []scpath.RelativePath {
	paths := make([]scpath.RelativePath, len(idx.Entries))
	for i, e := range idx.Entries {
		paths[i] = e.Path
	}
	return paths
}

// Count returns the total number of staged files in the index.
//
// Returns the number of entries.
func (idx *Index) Count() int {
	return len(idx.Entries)
}

// Serialize writes the index in Git's binary format to the provided writer.
// The output includes a SHA-1 checksum of all content for integrity verification.
//
// Format:
//  1. Header (12 bytes)
//  2. All entries (variable length)
//  3. SHA-1 checksum (20 bytes)
//
// Parameters:
//   - w: Writer to output the serialized index
//
// Returns an error if writing fails at any stage.
func (idx *Index) Serialize(w io.Writer) error {
	buf := new(bytes.Buffer)

	if err := idx.writeHeader(buf); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, entry := range idx.Entries {
		if err := entry.Serialize(buf); err != nil {
			return fmt.Errorf("failed to serialize entry %s: %w", entry.Path, err)
		}
	}

	content := buf.Bytes()
	checksum := sha1.Sum(content)

	if _, err := w.Write(content); err != nil {
		return fmt.Errorf("failed to write content: %w", err)
	}
	if _, err := w.Write(checksum[:]); err != nil {
		return fmt.Errorf("failed to write checksum: %w", err)
	}

	return nil
}

// writeHeader writes the 12-byte index header in Git's format.
//
// Header structure:
//   - Signature: "DIRC" (4 bytes)
//   - Version: uint32 big-endian (4 bytes)
//   - Entry count: uint32 big-endian (4 bytes)
//
// Parameters:
//   - w: Writer to output the header
//
// Returns an error if any write operation fails.
func (idx *Index) writeHeader(w io.Writer) error {
	if _, err := w.Write([]byte(IndexSignature)); err != nil {
		return fmt.Errorf("failed to write signature: %w", err)
	}

	if err := binary.Write(w, binary.BigEndian, idx.Version); err != nil {
		return fmt.Errorf("failed to write version: %w", err)
	}

	entryCount := uint32(len(idx.Entries))
	if err := binary.Write(w, binary.BigEndian, entryCount); err != nil {
		return fmt.Errorf("failed to write entry count: %w", err)
	}

	return nil
}

// Deserialize reads an index from binary data in Git's format.
// The data must include a valid header, entries, and matching SHA-1 checksum.
//
// Parameters:
//   - r: Reader containing the serialized index data
//
// Returns an error if:
//   - Data is too small or corrupted
//   - Checksum doesn't match (data integrity failure)
//   - Header is invalid (wrong signature or unsupported version)
//   - Any entry cannot be deserialized
func (idx *Index) Deserialize(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read data: %w", err)
	}

	if len(data) < IndexHeaderSize+IndexChecksumSize {
		return fmt.Errorf("invalid index file: too small")
	}

	if err := validateChecksum(data); err != nil {
		return err
	}

	content := data[:len(data)-IndexChecksumSize]
	buf := bytes.NewReader(content)
	if err := idx.readHeader(buf); err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}

	for i := range idx.Entries {
		entry := &Entry{}
		if _, err := entry.Deserialize(buf); err != nil {
			return fmt.Errorf("failed to deserialize entry %d: %w", i, err)
		}
		idx.Entries[i] = entry
	}

	if idx.parents == nil {
		idx.parents = make(map[string]map[string]struct{})
	}
	for _, entry := range idx.Entries {
		idx.addParents(entry.Path.String())
	}

	return nil
}

// validateChecksum verifies the SHA-1 checksum of the index data.
// This ensures the index file hasn't been corrupted or tampered with.
//
// Parameters:
//   - data: Complete index file data including checksum
//
// Returns an error if:
//   - Data is too small to contain a checksum
//   - Calculated checksum doesn't match stored checksum
func validateChecksum(data []byte) error {
	if len(data) < IndexHeaderSize+IndexChecksumSize {
		return fmt.Errorf("invalid index file: too small")
	}

	contentSize := len(data) - IndexChecksumSize
	content := data[:contentSize]
	expectedChecksum := data[contentSize:]
	actualChecksum := sha1.Sum(content)

	if !bytes.Equal(expectedChecksum, actualChecksum[:]) {
		return fmt.Errorf("index checksum mismatch")
	}
	return nil
}

// readHeader reads and validates the 12-byte index header.
// Initializes the Entries slice based on the entry count from the header.
//
// Parameters:
//   - r: Reader positioned at the start of the index data
//
// Returns an error if:
//   - Signature is not "DIRC"
//   - Version is not supported (currently only version 2)
//   - Any read operation fails
func (idx *Index) readHeader(r io.Reader) error {
	sig := make([]byte, 4)
	if _, err := io.ReadFull(r, sig); err != nil {
		return fmt.Errorf("failed to read signature: %w", err)
	}
	if string(sig) != IndexSignature {
		return fmt.Errorf("invalid index signature: %s", string(sig))
	}

	if err := binary.Read(r, binary.BigEndian, &idx.Version); err != nil {
		return fmt.Errorf("failed to read version: %w", err)
	}
	if idx.Version != IndexVersion {
		return fmt.Errorf("unsupported index version: %d", idx.Version)
	}

	var entryCount uint32
	if err := binary.Read(r, binary.BigEndian, &entryCount); err != nil {
		return fmt.Errorf("failed to read entry count: %w", err)
	}

	idx.Entries = make([]*Entry, entryCount)
	return nil
}

// sort sorts entries according to Git's path ordering rules.
// Git sorts entries lexicographically by path, treating directories
// as if they have a trailing '/' character.
//
// This is called automatically after Add operations to maintain
// the correct Git index ordering.
func (idx *Index) sort() {
	sort.Slice(idx.Entries, func(i, j int) bool {
		return idx.Entries[i].CompareTo(idx.Entries[j]) < 0
	})
}
