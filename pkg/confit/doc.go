// Package confit loads and persists typed application configuration in the
// user's roaming config directory.
//
// A configuration lives at <root>/<app>/<file>.<ext>, where root is the
// platform's roaming config directory (%APPDATA% on Windows,
// ~/Library/Application Support on macOS, $XDG_CONFIG_HOME elsewhere) and
// ext is the name of the format (json, ron, toml or yaml).
//
// LoadOrInit is the main entry point. On first use it writes the default
// value of T to disk; afterwards it reads the file back:
//
//	type Settings struct {
//		Theme string `json:"theme" yaml:"theme" toml:"theme"`
//	}
//
//	func (s *Settings) SetDefaults() { s.Theme = "dark" }
//
//	s, err := confit.LoadOrInit[Settings]("myapp", "settings", format.TOML)
//
// Store replaces the file with a new value. Every failure is reported as
// one of the package's sentinel errors, matched with errors.Is.
//
// Calls are synchronous and hold no state between them. Concurrent writers
// to the same file are not coordinated; the last writer wins, and writes
// are atomic so a reader never observes a partial file.
package confit
