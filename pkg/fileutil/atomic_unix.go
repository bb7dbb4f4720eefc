//go:build !windows

package fileutil

import (
	"os"

	"github.com/google/renameio/v2"

	"github.com/thoreinstein/confit/internal/errors"
)

// atomicWriteFile uses renameio: temp file in the target directory, fsync,
// rename over the target, cleanup on failure.
func atomicWriteFile(path string, data []byte, perm os.FileMode) error {
	if err := renameio.WriteFile(path, data, perm); err != nil {
		return errors.Wrapf(err, "atomically replacing %s", path)
	}
	return nil
}
