//go:build linux

package workspace

import (
	"os"
	"syscall"
)

// extractCtime extracts the inode change time (ctime) from file stat
// metadata, distinct from ModTime (mtime): ctime changes whenever the
// inode's metadata changes (chmod, rename, content write), while mtime
// only tracks content writes.
func extractCtime(info os.FileInfo) (seconds int64, nanoseconds int64) {
	if stat, ok := info.Sys().(*syscall.Stat_t); ok {
		return stat.Ctim.Sec, stat.Ctim.Nsec
	}
	return info.ModTime().Unix(), int64(info.ModTime().Nanosecond())
}
