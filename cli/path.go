package cli

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/organix/crlf/pkg"
	"github.com/organix/crlf/profile"
)

// Files kept by crlf. Configuration lives in the user configuration
// directory; the REPL history and profiles live in the user cache
// directory.
const (
	// baseConfig names both the configuration file and the mapping within
	// it that holds flag values.
	baseConfig = "config"

	configYAML  = baseConfig + ".yaml"
	configJSON  = baseConfig + ".json"
	baseHistory = "history.utf8"
)

// defaultDirMode is the permission mode for created directories.
var defaultDirMode os.FileMode = 0o700

// userDir returns the crlf subdirectory of the directory reported by
// lookup. If lookup fails, fallback is used relative to the home directory,
// and failing that, relative to the working directory.
func userDir(lookup func() (string, error), fallback string) string {
	dir, err := lookup()
	if err != nil {
		dir, err = os.UserHomeDir()
		if err != nil {
			dir = "."
		}

		dir = filepath.Join(dir, fallback)
	}

	return filepath.Join(dir, pkg.Name)
}

// configDir returns the configuration directory path.
var configDir = sync.OnceValue(func() string {
	return userDir(os.UserConfigDir, ".config")
})

// cacheDir returns the cache directory path used for transient files.
var cacheDir = sync.OnceValue(func() string {
	return userDir(os.UserCacheDir, ".cache")
})

// configFile returns the path of the YAML configuration file, which
// "crlf init" writes.
func configFile() string { return filepath.Join(configDir(), configYAML) }

// configFileJSON returns the path of the optional JSON configuration file.
func configFileJSON() string { return filepath.Join(configDir(), configJSON) }

// historyFile returns the path of the REPL history file.
func historyFile() string { return filepath.Join(cacheDir(), baseHistory) }

// profileDir returns the default directory for pprof output.
func profileDir() string { return filepath.Join(cacheDir(), profile.Tag) }

// mkdirAllRequired creates the configuration and cache directories.
func mkdirAllRequired() error {
	for _, dir := range []string{configDir(), cacheDir()} {
		if err := os.MkdirAll(dir, defaultDirMode); err != nil {
			return err
		}
	}

	return nil
}
