package config

import (
	"errors"
	"fmt"

	"github.com/leodido/go-conventionalcommits"
	"github.com/leodido/go-conventionalcommits/parser"
)

// ErrInvalidMessage is returned when a commit message is not a Conventional Commit.
var ErrInvalidMessage = errors.New("commit message is not a conventional commit")

// ValidateMessage parses msg with the Conventional Commits grammar.
func ValidateMessage(msg string) error {
	m := parser.NewMachine(conventionalcommits.WithTypes(conventionalcommits.TypesConventional))
	if _, err := m.Parse([]byte(msg)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	return nil
}
