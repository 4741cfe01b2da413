// Package config loads the root application configuration: default
// palette/appearance/language selections and the event loop's poll
// rates. The search path is XDG-style: try $XDG_CONFIG_HOME/tuikit, then
// ~/.config/tuikit, then the current directory, for a file named
// "tuikit.toml".
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Duration wraps time.Duration so it can be expressed in TOML as a
// plain string ("100ms", "1s") instead of an integer nanosecond count.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler, which
// BurntSushi/toml uses for any field type that satisfies it.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return errors.Wrap(err, "config: parse duration")
	}
	d.Duration = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler for round-tripping.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Config is the root application configuration. Program applies
// DefaultPalette and DefaultAppearance; DefaultLanguage and the three
// intervals are loaded but not read by Program, and the event loop runs
// on its own fixed timer constants.
type Config struct {
	DefaultPalette    string   `toml:"default_palette"`
	DefaultAppearance string   `toml:"default_appearance"`
	DefaultLanguage   string   `toml:"default_language"`
	TickInterval      Duration `toml:"tick_interval"`
	PulseInterval     Duration `toml:"pulse_interval"`
	CursorInterval    Duration `toml:"cursor_interval"`
}

// Default returns the configuration used when no config file is found
// anywhere on the search path.
func Default() Config {
	return Config{
		DefaultPalette:    "green",
		DefaultAppearance: "line",
		DefaultLanguage:   "en",
		TickInterval:      Duration{28 * time.Millisecond},
		PulseInterval:     Duration{100 * time.Millisecond},
		CursorInterval:    Duration{50 * time.Millisecond},
	}
}

const fileName = "tuikit.toml"

// searchPaths returns the ordered list of directories to check for
// fileName: $XDG_CONFIG_HOME/tuikit, ~/.config/tuikit, then the
// current working directory.
func searchPaths() []string {
	var paths []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "tuikit"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "tuikit"))
	}
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, cwd)
	}
	return paths
}

// Load searches the XDG-style path for tuikit.toml, merging any found
// file's fields over Default(). It returns Default() unmodified, with
// no error, if no config file exists anywhere on the path.
func Load() (Config, error) {
	cfg := Default()
	for _, dir := range searchPaths() {
		path := filepath.Join(dir, fileName)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, errors.Wrapf(err, "config: decode %s", path)
		}
		return cfg, nil
	}
	return cfg, nil
}

// LoadFrom decodes a specific file path, bypassing the search path.
// Used by tests and by callers that already know the exact location.
func LoadFrom(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "config: decode %s", path)
	}
	return cfg, nil
}
