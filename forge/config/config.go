// Package config holds the user preferences that survive between runs,
// stored as a TOML file next to the user's other tool configs.
package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

const DefaultFileName = "shellforge.toml"

// Preferences mirror the add-on preferences panel.
type Preferences struct {
	// Default value for the offset distance.
	DefaultOffset float32 `toml:"default_offset"`
	// Default value for the shell thickness.
	DefaultThickness float32 `toml:"default_thickness"`
	// Display additional debug information during operation.
	ShowDebugInfo bool `toml:"show_debug_info"`
	// Don't apply modifiers automatically, keep them visible for debugging.
	KeepModifiers bool `toml:"keep_modifiers"`
}

// DefaultPreferences returns the factory defaults.
func DefaultPreferences() Preferences {
	return Preferences{
		DefaultOffset:    10.0,
		DefaultThickness: 5.0,
	}
}

// DefaultPath resolves the preferences file location under the user config
// directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "shellforge", DefaultFileName), nil
}

// Load reads preferences from path. A missing file yields the defaults
// without an error so first runs need no setup.
func Load(path string) (Preferences, error) {
	prefs := DefaultPreferences()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return prefs, nil
		}
		return prefs, err
	}
	if err := toml.Unmarshal(data, &prefs); err != nil {
		return DefaultPreferences(), err
	}
	return prefs, nil
}

// Save writes preferences to path, creating parent directories as needed.
func Save(path string, prefs Preferences) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(prefs)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
