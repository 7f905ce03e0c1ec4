package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRepository is returned for repository coordinates that are not "owner/name".
var ErrInvalidRepository = errors.New("invalid repository")

// Repository identifies a GitHub repository.
type Repository struct {
	Owner string // GitHub organisation or user
	Name  string // Repository name
}

// ParseRepository parses an "owner/name" string, the format of GITHUB_REPOSITORY.
func ParseRepository(raw string) (Repository, error) {
	parts := strings.Split(strings.TrimSpace(raw), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Repository{}, fmt.Errorf("%w %q: must be owner/name", ErrInvalidRepository, raw)
	}
	return Repository{
		Owner: parts[0],
		Name:  strings.TrimSuffix(parts[1], ".git"),
	}, nil
}

// FullName returns "owner/name".
func (r Repository) FullName() string {
	return fmt.Sprintf("%s/%s", r.Owner, r.Name)
}
