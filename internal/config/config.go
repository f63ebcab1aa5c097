// Package config loads the optional timetrace.toml settings file.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// DefaultFile is the config file name looked up in the working directory.
const DefaultFile = "timetrace.toml"

// Profile holds recording defaults.
type Profile struct {
	GranularityUs uint64 `toml:"granularity_us"`
	ProcessName   string `toml:"process_name"`
}

// Output holds trace destination defaults.
type Output struct {
	Path string `toml:"path"`
}

// Summary holds reporting defaults.
type Summary struct {
	Top int `toml:"top"`
}

// Config is the full settings file.
type Config struct {
	Profile Profile `toml:"profile"`
	Output  Output  `toml:"output"`
	Summary Summary `toml:"summary"`
}

// Load parses the config at path. A missing file is not an error: recording
// works with zero configuration.
func Load(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	for _, key := range meta.Undecoded() {
		return Config{}, fmt.Errorf("%s: unknown key %q", path, key)
	}
	return cfg, nil
}
