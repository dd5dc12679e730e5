package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (

	// Name used for directory and file naming.
	appName = "doco"

	// Default permission mode for files doco writes.
	DefaultFileMode os.FileMode = 0644
)

// Directory for logs.
//
//	Linux:   $XDG_CACHE_HOME/doco or ~/.cache/doco
//	macOS:   ~/Library/Caches/doco
func Cache() string {
	return filepath.Join(xdg.CacheHome, appName)
}

// Default path to the log file.
//
//	Linux:   ~/.cache/doco/doco.log
//	macOS:   ~/Library/Caches/doco/doco.log
func LogFile() string {
	return filepath.Join(Cache(), appName+".log")
}

// Path to the optional file holding defaults for command line flags.
//
//	Linux:   $XDG_CONFIG_HOME/doco/config.yaml or ~/.config/doco/config.yaml
//	macOS:   ~/Library/Application Support/doco/config.yaml
func UserConfig() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.yaml")
}
