// Package lockfile implements the exclusive-create-then-atomic-rename
// protocol used for every mutable file under .git (the index, HEAD, branch
// refs). Only one writer can ever hold the lock for a given path at a time;
// a reader never observes a half-written file because the real content only
// appears at its final name once the writer commits.
package lockfile

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/renameio/v2"
)

// ErrStaleLock is returned by Write/Commit/Rollback when called without a
// held lock (HoldForUpdate was never called, or it already completed).
var ErrStaleLock = errors.New("lockfile: not holding lock")

// ErrLockDenied is returned by HoldForUpdate when another writer already
// holds the lock for this path.
var ErrLockDenied = errors.New("lockfile: could not acquire lock")

// Lockfile guards writes to FilePath. HoldForUpdate claims the mutex by
// exclusively creating a ".lock" marker next to FilePath; Write stages the
// new content in a separate temp file via renameio so a crash mid-write
// never corrupts FilePath; Commit renames the staged content into place and
// releases the mutex; Rollback discards the staged content and releases the
// mutex without touching FilePath.
type Lockfile struct {
	FilePath string
	lockPath string

	marker  *os.File
	pending *renameio.PendingFile
}

// New creates a Lockfile for path. path is never modified until Commit.
func New(path string) *Lockfile {
	return &Lockfile{
		FilePath: path,
		lockPath: path + ".lock",
	}
}

// HoldForUpdate claims the lock. It fails with ErrLockDenied if another
// writer already holds it (a ".lock" marker already exists for this path).
func (lf *Lockfile) HoldForUpdate() error {
	marker, err := os.OpenFile(lf.lockPath, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if os.IsExist(err) {
			return ErrLockDenied
		}
		return fmt.Errorf("lockfile: %w", err)
	}

	pending, err := renameio.NewPendingFile(lf.FilePath)
	if err != nil {
		marker.Close()
		os.Remove(lf.lockPath)
		return fmt.Errorf("lockfile: failed to stage write: %w", err)
	}

	lf.marker = marker
	lf.pending = pending
	return nil
}

// Write appends content to the staged file. The staged file only replaces
// FilePath once Commit is called.
func (lf *Lockfile) Write(content []byte) error {
	if err := lf.guardStaleLock(); err != nil {
		return err
	}

	if _, err := lf.pending.Write(content); err != nil {
		return fmt.Errorf("lockfile: write failed: %w", err)
	}
	return nil
}

// Commit atomically replaces FilePath with the staged content and releases
// the lock.
func (lf *Lockfile) Commit() error {
	if err := lf.guardStaleLock(); err != nil {
		return err
	}

	if err := lf.pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("lockfile: commit failed: %w", err)
	}

	err := lf.marker.Close()
	if rmErr := os.Remove(lf.lockPath); err == nil {
		err = rmErr
	}

	lf.marker = nil
	lf.pending = nil

	if err != nil {
		return fmt.Errorf("lockfile: failed to release lock: %w", err)
	}
	return nil
}

// Rollback discards the staged content, leaving FilePath untouched, and
// releases the lock.
func (lf *Lockfile) Rollback() error {
	if err := lf.guardStaleLock(); err != nil {
		return err
	}

	cleanupErr := lf.pending.Cleanup()
	closeErr := lf.marker.Close()
	removeErr := os.Remove(lf.lockPath)

	lf.marker = nil
	lf.pending = nil

	if cleanupErr != nil {
		return fmt.Errorf("lockfile: rollback failed: %w", cleanupErr)
	}
	if closeErr != nil {
		return fmt.Errorf("lockfile: rollback failed: %w", closeErr)
	}
	if removeErr != nil {
		return fmt.Errorf("lockfile: rollback failed: %w", removeErr)
	}
	return nil
}

func (lf *Lockfile) guardStaleLock() error {
	if lf.marker == nil || lf.pending == nil {
		return ErrStaleLock
	}
	return nil
}
