// Package fs provides the filesystem seam used by report loading and config.
package fs

import (
	iofs "io/fs"
	"os"
)

// FS is the subset of filesystem operations verify-report needs.
// Tests substitute a stub; production uses RealFS.
type FS interface {
	ReadFile(path string) ([]byte, error)
	Stat(path string) (iofs.FileInfo, error)
}

// RealFS implements FS on the host filesystem.
type RealFS struct{}

// NewRealFS returns an FS backed by the os package.
func NewRealFS() *RealFS {
	return &RealFS{}
}

// ReadFile reads the whole file. The handle is closed on every path.
func (RealFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Stat follows symlinks.
func (RealFS) Stat(path string) (iofs.FileInfo, error) {
	return os.Stat(path)
}

// Exists reports whether path names an existing regular file.
// Directories and stat failures other than not-exist report false with the error.
func Exists(fsys FS, path string) (bool, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}
