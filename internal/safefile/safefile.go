// Package safefile provides hardened file operations for configuration
// documents: regular-file-only reads and atomic writes.
package safefile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotRegularFile is returned when attempting to open a file that is not a
// regular file. This includes symlinks, FIFOs, devices, sockets, and
// directories.
var ErrNotRegularFile = errors.New("not a regular file")

// OpenRegular opens a file and verifies it is a regular file.
// This mitigates TOCTOU (time-of-check-time-of-use) races where a file could
// be replaced with a symlink or special file between stat and open:
//
//  1. Lstat the path to reject symlinks without following them
//  2. Open the file
//  3. Stat the file descriptor to verify it is still regular
//
// There is a small remaining window between Lstat and Open; Go's standard
// library does not expose O_NOFOLLOW in a cross-platform way.
//
// The caller must close the returned file when done.
func OpenRegular(path string) (*os.File, os.FileInfo, error) {
	linkInfo, err := os.Lstat(path)
	if err != nil {
		return nil, nil, err
	}
	if !linkInfo.Mode().IsRegular() {
		return nil, nil, ErrNotRegularFile
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	if !info.Mode().IsRegular() {
		f.Close()
		return nil, nil, ErrNotRegularFile
	}

	return f, info, nil
}

// WriteAtomic writes data to path through a temporary file in the same
// directory followed by a rename, so a crash or partial write can never
// corrupt an existing valid file.
func WriteAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	cleanup := func(err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		return cleanup(fmt.Errorf("write temp file: %w", err))
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(fmt.Errorf("sync temp file: %w", err))
	}
	if err := tmp.Chmod(perm); err != nil {
		return cleanup(fmt.Errorf("chmod temp file: %w", err))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}
