// Package wmconfig resolves the config file search path and the IPC
// socket path of spec §6, leaving the config grammar itself out of
// scope (a non-goal): ParseFunc is supplied by the caller, so this
// package only finds the file and hands its raw bytes over.
//
// Both resolution rules are pure functions of the environment and the
// filesystem's existence, with no third-party equivalent anywhere in
// the retrieved pack — see DESIGN.md for why this package stays on
// os/path.filepath rather than reaching for a library.
package wmconfig

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/wmcore/corewm/internal/wmerrors"
)

// ParseFunc parses a config file's raw bytes. Supplied by the caller so
// this package never depends on the command grammar.
type ParseFunc func(path string, data []byte) error

// searchPaths returns the config search order of spec §6, preferring
// progName's own directories first and falling back to the legacy name
// second — the same "new name first, i3-compat name second" precedence
// sway itself uses when progName is "sway" and legacyName is "i3".
func searchPaths(progName, legacyName string) []string {
	home := os.Getenv("HOME")
	xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfigHome == "" && home != "" {
		xdgConfigHome = filepath.Join(home, ".config")
	}
	xdgConfigDirs := os.Getenv("XDG_CONFIG_DIRS")
	if xdgConfigDirs == "" {
		xdgConfigDirs = "/etc/xdg"
	}

	var paths []string
	addFor := func(name string) {
		if home != "" {
			paths = append(paths, filepath.Join(home, "."+name, "config"))
		}
		if xdgConfigHome != "" {
			paths = append(paths, filepath.Join(xdgConfigHome, name, "config"))
		}
		paths = append(paths, filepath.Join("/etc", name, "config"))
	}
	addFor(progName)
	addFor(legacyName)
	for _, dir := range strings.Split(xdgConfigDirs, ":") {
		if dir == "" {
			continue
		}
		paths = append(paths, filepath.Join(dir, progName, "config"))
	}
	return paths
}

// Find walks the search order of spec §6 (`$HOME/.<progName>/config`,
// `$XDG_CONFIG_HOME/<progName>/config`, `/etc/<progName>/config`, then
// the same three with legacyName, then each `$XDG_CONFIG_DIRS` entry
// plus `/<progName>/config`) and returns the first path that exists.
// An explicit override (the --config flag) bypasses the search
// entirely when non-empty.
func Find(progName, legacyName, override string) (string, error) {
	if override != "" {
		if _, err := os.Stat(override); err != nil {
			return "", wmerrors.Wrap(wmerrors.ConfigParse, "config override not found", err)
		}
		return override, nil
	}
	for _, p := range searchPaths(progName, legacyName) {
		if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
			return p, nil
		}
	}
	return "", wmerrors.New(wmerrors.ConfigParse, "no config file found in search path")
}

// Load resolves the config path (per Find) and hands its bytes to fn.
func Load(progName, legacyName, override string, fn ParseFunc) (string, error) {
	path, err := Find(progName, legacyName, override)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", wmerrors.Wrap(wmerrors.ConfigParse, "reading config", err)
	}
	if err := fn(path, data); err != nil {
		return "", wmerrors.Wrap(wmerrors.ConfigParse, "parsing config", err)
	}
	return path, nil
}

// SocketPath resolves the IPC socket path rule of spec §6: `$SWAYSOCK`
// if set (and not already in use by a live server), else
// `$XDG_RUNTIME_DIR/<progName>-ipc.<uid>.<pid>.sock`, falling back to
// `/tmp` when `$XDG_RUNTIME_DIR` is unset.
func SocketPath(progName string) string {
	if s := os.Getenv("SWAYSOCK"); s != "" && !socketInUse(s) {
		return s
	}
	dir := os.Getenv("XDG_RUNTIME_DIR")
	if dir == "" {
		dir = "/tmp"
	}
	return filepath.Join(dir, fmt.Sprintf("%s-ipc.%d.%d.sock", progName, os.Getuid(), os.Getpid()))
}

// socketInUse reports whether path already names a live UNIX socket
// (rather than a stale file left by a crashed previous instance), the
// same check sway's own server_init performs before reusing $SWAYSOCK.
func socketInUse(path string) bool {
	conn, err := net.Dial("unix", path)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// PublishEnv sets $SWAYSOCK and $I3SOCK to path for the current process
// so exec'd children inherit it (spec §6: "Exported to children as
// SWAYSOCK and I3SOCK").
func PublishEnv(path string) error {
	if err := os.Setenv("SWAYSOCK", path); err != nil {
		return err
	}
	return os.Setenv("I3SOCK", path)
}
