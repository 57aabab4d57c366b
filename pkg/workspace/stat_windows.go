//go:build windows

package workspace

import (
	"os"
	"syscall"
)

// extractSystemMetadata extracts platform-specific file system metadata.
// Windows doesn't expose Unix-style device/inode numbers through
// os.FileInfo, so these come back zeroed - the same thing real git does
// on Windows.
func extractSystemMetadata(info os.FileInfo) (dev, ino, uid, gid uint32) {
	if _, ok := info.Sys().(*syscall.Win32FileAttributeData); ok {
		return 0, 0, 0, 0
	}
	return 0, 0, 0, 0
}
