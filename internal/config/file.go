package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
)

// DefaultConfigFile is the path searched for under the XDG config directories.
const DefaultConfigFile = "single-commit/config.toml"

// LoadFile reads and parses a TOML config file.
// If optional is set, a missing file yields an empty Config instead of an error.
func LoadFile(path string, optional bool) (*Config, error) {
	c := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if optional && os.IsNotExist(err) {
			return c, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	md, err := toml.Decode(string(data), c)
	if err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("parsing config file %s: unknown key %q", path, undecoded[0].String())
	}

	return c, nil
}

// FindDefaultFile returns the user's config file, or "" if there is none.
func FindDefaultFile() string {
	path, err := xdg.SearchConfigFile(DefaultConfigFile)
	if err != nil {
		return ""
	}
	return path
}
