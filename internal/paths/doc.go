// Package paths resolves the per-user roaming configuration root and the
// file layout confit uses beneath it.
//
// # XDG Base Directory Compliance
//
// On Linux and macOS the root comes from github.com/adrg/xdg, so
// XDG_CONFIG_HOME is honored. On Windows the roaming AppData folder is used,
// which follows the user across machines in a domain.
//
// # Layout
//
//	<root>/<app>/<file>.<ext>
//
// where ext is one of json, ron, toml or yaml.
package paths
