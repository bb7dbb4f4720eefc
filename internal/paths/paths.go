package paths

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"
)

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// userConfigDir is swapped in tests.
var userConfigDir = os.UserConfigDir

// RoamingConfigDir returns the per-user roaming configuration root.
//
// Platform paths:
//   - windows: %APPDATA% (the roaming AppData known folder)
//   - darwin:  ~/Library/Application Support
//   - others:  $XDG_CONFIG_HOME, defaulting to ~/.config
//
// The second result is false when the platform cannot report an absolute
// directory.
func RoamingConfigDir() (string, bool) {
	var dir string
	if runtime.GOOS == "windows" {
		d, err := userConfigDir()
		if err != nil {
			return "", false
		}
		dir = d
	} else {
		dir = xdg.ConfigHome
	}
	return absDir(dir)
}

func absDir(dir string) (string, bool) {
	if dir == "" || !filepath.IsAbs(dir) {
		return "", false
	}
	return filepath.Clean(dir), true
}

// Reload re-reads the XDG environment variables. Call it after changing
// XDG_CONFIG_HOME at runtime.
func Reload() {
	xdg.Reload()
}

// ConfigFile returns <root>/<app>/<file>.<ext>.
func ConfigFile(root, app, file, ext string) string {
	return filepath.Join(root, app, file+"."+ext)
}

// AppDir returns <root>/<app>.
func AppDir(root, app string) string {
	return filepath.Join(root, app)
}

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm (0700) is used.
// This function is idempotent; it returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// Exists reports whether path names an existing file system entry.
// Errors other than "not exist" are returned as-is.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
