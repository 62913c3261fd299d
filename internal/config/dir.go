// Package config locates and loads cardview's user configuration and builds
// its logger.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppName names the configuration directory and the logger.
const AppName = "cardview"

// Dir returns the cardview configuration directory.
//
// Resolution:
//   - $CARDVIEW_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/cardview if set (respects XDG on any platform)
//   - %AppData%/cardview on Windows
//   - ~/.config/cardview on macOS and Linux
func Dir() string {
	if dir := os.Getenv("CARDVIEW_CONFIG_HOME"); dir != "" {
		return dir
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, AppName)
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", AppName)
}

// TemplatesDir returns the directory holding the user's global templates,
// or "" when no configuration directory can be determined.
func TemplatesDir() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "templates")
}
