//go:build windows

package index

import "os"

// extractCtime returns mtime as a stand-in for ctime. Windows has no
// direct ctime equivalent (NTFS's "change time" is not exposed through
// os.FileInfo), so the fast-path ctime comparison degenerates to
// comparing mtime twice - harmless, just slightly less precise.
func extractCtime(info os.FileInfo) (seconds int64, nanoseconds int64) {
	return info.ModTime().Unix(), int64(info.ModTime().Nanosecond())
}
