package workspace

// Stat is the subset of platform file metadata the index needs to decide,
// without re-reading content, whether a tracked file might have changed.
// It mirrors struct stat fields rather than os.FileInfo because os.FileInfo
// alone is missing ctime, device and inode.
type Stat struct {
	CTimeSec, CTimeNsec int64
	MTimeSec, MTimeNsec int64
	Dev, Ino            uint32
	Mode                uint32
	Uid, Gid            uint32
	Size                int64
}

// IsExecutable reports whether any of the owner/group/other execute bits
// are set.
func (s Stat) IsExecutable() bool {
	return s.Mode&0o111 != 0
}
