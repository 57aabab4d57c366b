package branch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/utkarsh5026/SourceControl/pkg/common/fileops"
	"github.com/utkarsh5026/SourceControl/pkg/objects"
	"github.com/utkarsh5026/SourceControl/pkg/repository/refs"
)

const (
	// BranchDirName is the directory name for branch refs
	BranchDirName = "heads"

	// HeadFile is the name of the HEAD file
	HeadFile = "HEAD"

	// BranchRefPrefix is the prefix for branch references
	BranchRefPrefix = "refs/heads/"

	// DefaultBranch is the branch new repositories start on.
	DefaultBranch = "main"
)

// BranchRefManager wraps a RefManager to provide the single piece of
// branch-aware behavior a commit needs: knowing which branch HEAD currently
// points to, and moving that branch (and HEAD, for the first commit) to a
// new SHA. Creating, deleting, renaming, or checking out other branches is
// out of scope.
type BranchRefManager struct {
	refManager *refs.RefManager
}

// NewBranchRefManager creates a new branch reference service
func NewBranchRefManager(refMgr *refs.RefManager) *BranchRefManager {
	return &BranchRefManager{
		refManager: refMgr,
	}
}

// Init initializes the branch ref layout (refs/heads) on top of the refs
// directory the underlying RefManager already creates.
func (rs *BranchRefManager) Init(defaultBranch string) error {
	if err := rs.refManager.Init(defaultBranch); err != nil {
		return fmt.Errorf("init ref manager: %w", err)
	}

	branchDir := filepath.Join(rs.refManager.GetRefsPath().String(), BranchDirName)
	if err := os.MkdirAll(branchDir, 0755); err != nil {
		return fmt.Errorf("create branch directory: %w", err)
	}

	return nil
}

// Current returns the name of the current branch, or empty string if detached
func (rs *BranchRefManager) Current() (string, error) {
	headPath := rs.refManager.GetHeadPath().ToAbsolutePath()
	content, err := fileops.ReadStringStrict(headPath)
	if err != nil {
		return "", fmt.Errorf("read HEAD: %w", err)
	}

	if after, ok := strings.CutPrefix(content, refs.SymbolicRefPrefix); ok {
		refPath := strings.TrimSpace(after)
		if branchName, ok := strings.CutPrefix(refPath, BranchRefPrefix); ok {
			return branchName, nil
		}
		return "", fmt.Errorf("HEAD points to non-branch ref: %s", refPath)
	}

	return "", nil
}

// IsDetached checks if HEAD is in detached state
func (rs *BranchRefManager) IsDetached() (bool, error) {
	current, err := rs.Current()
	if err != nil {
		return false, err
	}
	return current == "", nil
}

// Update moves a branch to point to a new SHA, creating the branch ref if
// force is true and it doesn't exist yet. The initial commit on a fresh
// repository relies on force=true since refs/heads/<branch> doesn't exist
// until the first commit creates it.
func (rs *BranchRefManager) Update(name string, sha objects.ObjectHash, force bool) error {
	if err := rs.validateBranchName(name); err != nil {
		return err
	}

	refPath := rs.branchRefPath(name)
	exists, err := rs.refManager.Exists(refPath)
	if err != nil {
		return fmt.Errorf("check branch exists: %w", err)
	}

	if !exists && !force {
		return NewNotFoundError(name)
	}

	if err := rs.refManager.UpdateRef(refPath, sha.String()); err != nil {
		return fmt.Errorf("update branch ref: %w", err)
	}

	return nil
}

// Exists checks if a branch exists
func (rs *BranchRefManager) Exists(name string) (bool, error) {
	if err := rs.validateBranchName(name); err != nil {
		return false, err
	}

	refPath := rs.branchRefPath(name)
	return rs.refManager.Exists(refPath)
}

// SetHead updates HEAD to point to the given branch
func (rs *BranchRefManager) SetHead(branchName string) error {
	if err := rs.validateBranchName(branchName); err != nil {
		return err
	}

	content := fmt.Sprintf("ref: refs/heads/%s\n", branchName)
	return rs.refManager.UpdateHeadSymbolic(content)
}

// GetHeadSHA returns the SHA that HEAD points to
func (rs *BranchRefManager) GetHeadSHA() (objects.ObjectHash, error) {
	sha, err := rs.refManager.ResolveToSHA(refs.RefHEAD)
	if err != nil {
		return "", fmt.Errorf("resolve HEAD: %w", err)
	}
	return objects.ObjectHash(sha), nil
}

// branchRefPath converts a branch name to its full ref path
func (rs *BranchRefManager) branchRefPath(name string) refs.RefPath {
	refPath, _ := refs.NewBranchRef(name)
	return refPath
}

// validateBranchName validates a branch name according to Git rules
func (rs *BranchRefManager) validateBranchName(name string) error {
	if name == "" {
		return NewInvalidNameError(name, "branch name cannot be empty")
	}

	var reasons []string

	invalidChars := []string{" ", "~", "^", ":", "?", "*", "[", "\\", "..", "@{"}
	for _, char := range invalidChars {
		if strings.Contains(name, char) {
			reasons = append(reasons, fmt.Sprintf("contains invalid character '%s'", char))
		}
	}

	if strings.HasPrefix(name, "/") || strings.HasSuffix(name, "/") {
		reasons = append(reasons, "cannot start or end with '/'")
	}

	if strings.HasPrefix(name, ".") {
		reasons = append(reasons, "cannot start with '.'")
	}

	if strings.HasSuffix(name, ".lock") {
		reasons = append(reasons, "cannot end with '.lock'")
	}

	if strings.Contains(name, "//") {
		reasons = append(reasons, "cannot contain consecutive slashes")
	}

	if len(reasons) > 0 {
		return NewInvalidNameError(name, reasons...)
	}

	return nil
}
