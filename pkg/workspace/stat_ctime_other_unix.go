//go:build unix && !linux && !darwin

package workspace

import (
	"os"
	"syscall"
)

// extractCtime extracts the inode change time (ctime) from file stat
// metadata on other Unix-like platforms (BSD variants).
func extractCtime(info os.FileInfo) (seconds int64, nanoseconds int64) {
	if stat, ok := info.Sys().(*syscall.Stat_t); ok {
		return stat.Ctimespec.Sec, stat.Ctimespec.Nsec
	}
	return info.ModTime().Unix(), int64(info.ModTime().Nanosecond())
}
