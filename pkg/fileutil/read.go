package fileutil

import (
	"io"
	"os"

	"github.com/thoreinstein/confit/internal/errors"
)

// MaxFileSize caps how much of a config document is read into memory.
const MaxFileSize = 1 << 20

// ErrFileTooLarge is returned when input exceeds MaxFileSize.
var ErrFileTooLarge = errors.Newf("input exceeds %d bytes", MaxFileSize)

// ReadFile reads the config file at path, refusing directories and anything
// larger than MaxFileSize. Open errors are wrapped, so errors.Is against
// fs.ErrNotExist still works.
func ReadFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil {
		switch {
		case info.IsDir():
			return nil, errors.Newf("%s is a directory", path)
		case info.Size() > MaxFileSize:
			return nil, errors.Wrapf(ErrFileTooLarge, "%s", path)
		}
	}
	return ReadAll(f)
}

// ReadAll reads r to EOF, failing with ErrFileTooLarge once more than
// MaxFileSize bytes arrive. It is meant for streams whose size is unknown.
func ReadAll(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxFileSize+1))
	if err != nil {
		return nil, errors.Wrap(err, "reading")
	}
	if len(data) > MaxFileSize {
		return nil, ErrFileTooLarge
	}
	return data, nil
}
