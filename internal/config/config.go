// Package config assembles the inputs of a single run from defaults, an
// optional TOML file, the process environment and command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultAPIURL is the public GitHub REST endpoint.
const DefaultAPIURL = "https://api.github.com"

// ErrMissingInput is returned when a required input has no value.
var ErrMissingInput = errors.New("input required and not supplied")

// Config holds everything a run needs. Field names double as TOML keys.
type Config struct {
	Path           string `toml:"path"`
	Message        string `toml:"message"`
	Committer      string `toml:"committer"`
	CommitterEmail string `toml:"committer_email"`

	// Branch to read from and commit to. Empty means the repository default.
	Branch string `toml:"branch,omitempty"`
	// Conventional requires Message to be a Conventional Commit. Nil means
	// unset, so a later source can turn it off as well as on.
	Conventional *bool `toml:"conventional,omitempty"`

	// Repository is "owner/name". Empty means discover it from the workspace.
	Repository string `toml:"repository,omitempty"`
	Workspace  string `toml:"workspace,omitempty"`
	APIURL     string `toml:"api_url,omitempty"`
}

// Default returns a Config with the optional fields filled in.
func Default() *Config {
	return &Config{
		Workspace: ".",
		APIURL:    DefaultAPIURL,
	}
}

// Merge copies every non-zero field of other over c.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	set := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	set(&c.Path, other.Path)
	set(&c.Message, other.Message)
	set(&c.Committer, other.Committer)
	set(&c.CommitterEmail, other.CommitterEmail)
	set(&c.Branch, other.Branch)
	set(&c.Repository, other.Repository)
	set(&c.Workspace, other.Workspace)
	set(&c.APIURL, other.APIURL)
	if other.Conventional != nil {
		v := *other.Conventional
		c.Conventional = &v
	}
}

// RequireConventional reports whether the message must be a Conventional Commit.
func (c *Config) RequireConventional() bool {
	return c.Conventional != nil && *c.Conventional
}

// Validate checks required inputs in declaration order and, when enabled,
// the commit message format. It never touches the network.
func (c *Config) Validate() error {
	if err := c.ValidateTarget(); err != nil {
		return err
	}

	required := []struct {
		name  string
		value string
	}{
		{"message", c.Message},
		{"committer", c.Committer},
		{"committer_email", c.CommitterEmail},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%w: %s", ErrMissingInput, r.name)
		}
	}

	if c.RequireConventional() {
		if err := ValidateMessage(c.Message); err != nil {
			return err
		}
	}

	return nil
}

// ValidateTarget checks only what is needed to locate the file: the path
// and, if given, the repository.
func (c *Config) ValidateTarget() error {
	if strings.TrimSpace(c.Path) == "" {
		return fmt.Errorf("%w: path", ErrMissingInput)
	}
	if strings.HasPrefix(c.Path, "/") {
		return fmt.Errorf("path %q must be relative to the workspace", c.Path)
	}
	if c.Repository != "" {
		if _, err := ParseRepository(c.Repository); err != nil {
			return err
		}
	}
	return nil
}
