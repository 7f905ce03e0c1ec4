package actions

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
)

// OutputEnv names the file the runner reads step outputs from.
const OutputEnv = "GITHUB_OUTPUT"

// Outputs appends step outputs to the runner's output file.
type Outputs struct {
	path string
}

// NewOutputs returns Outputs writing to the file named by GITHUB_OUTPUT.
// It returns nil outside a runner; a nil *Outputs discards everything.
func NewOutputs(getenv func(string) string) *Outputs {
	path := getenv(OutputEnv)
	if path == "" {
		return nil
	}
	return &Outputs{path: path}
}

// Set records name=value. Multi-line values use the heredoc form with a
// random delimiter.
func (o *Outputs) Set(name, value string) error {
	if o == nil {
		return nil
	}

	entry, err := formatOutput(name, value)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(o.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening output file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(entry); err != nil {
		return fmt.Errorf("writing output %s: %w", name, err)
	}
	return nil
}

func formatOutput(name, value string) (string, error) {
	if !strings.ContainsAny(value, "\r\n") {
		return fmt.Sprintf("%s=%s\n", name, value), nil
	}

	delimiter := "ghadelimiter_" + uuid.NewString()
	if strings.Contains(name, delimiter) || strings.Contains(value, delimiter) {
		return "", fmt.Errorf("output %s: value contains the delimiter %q", name, delimiter)
	}
	return fmt.Sprintf("%s<<%s\n%s\n%s\n", name, delimiter, value, delimiter), nil
}
