// Package fileutil provides file system utilities including atomic write operations.
package fileutil

import (
	"os"
)

// DefaultFilePerm is the mode for config files written without an explicit mode.
const DefaultFilePerm os.FileMode = 0o600

// AtomicWriteFile writes data to path so that readers observe either the old
// contents or the complete new contents, never a partial write.
//
// The caller is responsible for ensuring the parent directory exists.
// If perm is 0, DefaultFilePerm is used.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultFilePerm
	}
	return atomicWriteFile(path, data, perm)
}
