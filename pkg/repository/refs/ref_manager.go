package refs

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/utkarsh5026/SourceControl/pkg/lockfile"
	"github.com/utkarsh5026/SourceControl/pkg/repository/scpath"
)

const (
	// SymbolicRefPrefix is the prefix for symbolic references
	SymbolicRefPrefix = "ref: "

	// MaxRefDepth is the maximum depth for resolving symbolic references
	MaxRefDepth = 10
)

// RefManager handles Git references (refs) - human-readable names for commits.
// Every write goes through the same exclusive-create-then-rename lockfile
// protocol the index uses, matching original_source's refs.rs which reuses
// its Lockfile type for ref updates rather than writing files directly.
type RefManager struct {
	refsPath scpath.SourcePath
	headPath scpath.SourcePath
}

// NewRefManager creates a new reference manager rooted at the given .git
// directory.
func NewRefManager(sourceDir scpath.SourcePath) *RefManager {
	return &RefManager{
		refsPath: sourceDir.RefsPath(),
		headPath: sourceDir.HeadPath(),
	}
}

// Init initializes the ref manager by creating the refs directory and HEAD file
func (rm *RefManager) Init(defaultBranch string) error {
	if err := os.MkdirAll(rm.refsPath.Join("heads").String(), 0755); err != nil {
		return fmt.Errorf("failed to create refs directory: %w", err)
	}
	if err := os.MkdirAll(rm.refsPath.Join("tags").String(), 0755); err != nil {
		return fmt.Errorf("failed to create refs directory: %w", err)
	}

	defaultRef := fmt.Sprintf("ref: refs/heads/%s\n", defaultBranch)
	return rm.writeLocked(rm.headPath, []byte(defaultRef))
}

// ReadRef reads a reference and returns its content
func (rm *RefManager) ReadRef(ref RefPath) (string, error) {
	fullPath := rm.resolveReferencePath(ref)

	data, err := os.ReadFile(fullPath.String())
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("ref %s not found", ref)
		}
		return "", fmt.Errorf("error reading ref %s: %w", ref, err)
	}

	return strings.TrimSpace(string(data)), nil
}

// UpdateRef updates a reference with a new SHA-1 hash, through the lockfile
// protocol (hold -> write -> commit).
func (rm *RefManager) UpdateRef(ref RefPath, sha string) error {
	fullPath := rm.resolveReferencePath(ref)
	content := sha + "\n"
	return rm.writeLocked(fullPath, []byte(content))
}

// UpdateHead repoints HEAD itself (detached HEAD) at a commit SHA.
func (rm *RefManager) UpdateHead(sha string) error {
	return rm.writeLocked(rm.headPath, []byte(sha+"\n"))
}

// UpdateHeadSymbolic rewrites HEAD's raw content, used to point it at a
// different branch ("ref: refs/heads/<name>\n").
func (rm *RefManager) UpdateHeadSymbolic(content string) error {
	return rm.writeLocked(rm.headPath, []byte(content))
}

// writeLocked performs a full hold/write/commit lockfile cycle for a single
// reference file, creating its parent directory first.
func (rm *RefManager) writeLocked(path scpath.SourcePath, content []byte) error {
	if err := os.MkdirAll(path.Dir().String(), 0755); err != nil {
		return fmt.Errorf("failed to create ref directory: %w", err)
	}

	lf := lockfile.New(path.String())
	if err := lf.HoldForUpdate(); err != nil {
		return fmt.Errorf("failed to acquire ref lock: %w", err)
	}

	if err := lf.Write(content); err != nil {
		_ = lf.Rollback()
		return fmt.Errorf("failed to write ref: %w", err)
	}

	if err := lf.Commit(); err != nil {
		return fmt.Errorf("failed to commit ref: %w", err)
	}

	return nil
}

// ResolveToSHA resolves a reference to its final SHA-1 hash, following symbolic refs
func (rm *RefManager) ResolveToSHA(ref RefPath) (string, error) {
	currentRef := ref

	for depth := 0; depth < MaxRefDepth; depth++ {
		content, err := rm.ReadRef(currentRef)
		if err != nil {
			return "", fmt.Errorf("error reading ref %s: %w", currentRef, err)
		}

		// Check if it's a symbolic reference
		if strings.HasPrefix(content, SymbolicRefPrefix) {
			target := strings.TrimPrefix(content, SymbolicRefPrefix)
			currentRef = RefPath(target)
			continue
		}

		// Check if it's a valid SHA-1
		if isSHA1(content) {
			return content, nil
		}

		return "", fmt.Errorf("invalid ref content: %s", content)
	}

	return "", fmt.Errorf("reference depth exceeded for %s", ref)
}

// DeleteRef deletes a reference
func (rm *RefManager) DeleteRef(ref RefPath) (bool, error) {
	fullPath := rm.resolveReferencePath(ref)

	if err := os.Remove(fullPath.String()); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

// Exists checks if a reference exists
func (rm *RefManager) Exists(ref RefPath) (bool, error) {
	fullPath := rm.resolveReferencePath(ref)
	_, err := os.Stat(fullPath.String())
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// GetHeadPath returns the full path to the HEAD file
func (rm *RefManager) GetHeadPath() scpath.SourcePath {
	return rm.headPath
}

// GetRefsPath returns the full path to the refs directory
func (rm *RefManager) GetRefsPath() scpath.SourcePath {
	return rm.refsPath
}

// resolveReferencePath resolves a RefPath to its full filesystem path
func (rm *RefManager) resolveReferencePath(ref RefPath) scpath.SourcePath {
	refStr := strings.TrimSpace(ref.String())

	// Handle HEAD reference
	if refStr == scpath.HeadFile {
		return rm.headPath
	}

	// If ref starts with "refs/", don't duplicate the refs root
	if strings.HasPrefix(refStr, scpath.RefsDir+"/") {
		// Remove the "refs/" prefix and join with refsPath
		relPath := strings.TrimPrefix(refStr, scpath.RefsDir+"/")
		return rm.refsPath.Join(relPath)
	}

	// Otherwise, join directly with refsPath
	return rm.refsPath.Join(refStr)
}

// isSHA1 checks if a string is a valid SHA-1 hash
func isSHA1(str string) bool {
	sha1Regex := regexp.MustCompile(`^[0-9a-f]{40}$`)
	return sha1Regex.MatchString(strings.ToLower(str))
}
