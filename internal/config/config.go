// Package config loads the optional TOML configuration of the vff command.
package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"
)

// Config holds the defaults for command line flags which were not set explicitly.
type Config struct {
	ShowDeleted bool   `toml:"show-deleted"`
	Verbosity   string `toml:"verbosity"`

	LoadPath string `toml:"-"`
}

// Default is used if no configuration file is given.
func Default() Config {
	return Config{Verbosity: "info"}
}

// Load reads the configuration at path from fsys.
// Keys unknown to Config are an error.
func Load(fsys afero.Fs, path string) (Config, error) {
	raw, err := afero.ReadFile(fsys, path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	config := Default()
	md, err := toml.Decode(string(raw), &config)
	if err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return Config{}, fmt.Errorf("config %s contains unknown keys: %s", path, strings.Join(keys, ", "))
	}

	config.LoadPath = path
	return config, nil
}
