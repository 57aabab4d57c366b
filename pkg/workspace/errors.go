package workspace

import "fmt"

// MissingFileError is returned by ExpandPath when the requested name does
// not resolve to anything on disk.
type MissingFileError struct {
	Name string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("workspace: %q does not exist", e.Name)
}

// PermissionDeniedError is returned by ReadFile when the workspace file
// cannot be opened because of its permission bits.
type PermissionDeniedError struct {
	Name string
}

func (e *PermissionDeniedError) Error() string {
	return fmt.Sprintf("workspace: permission denied: %q", e.Name)
}
