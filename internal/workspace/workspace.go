// Package workspace gives rooted access to the checked-out repository the
// action runs in.
package workspace

import (
	"encoding/base64"
	"fmt"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
)

// FileReader abstracts reading files relative to the workspace root.
type FileReader interface {
	// ReadBase64 returns the whole file at path, base64-encoded.
	ReadBase64(path string) (string, error)
}

// Workspace reads files below a root directory. Paths cannot escape the root.
type Workspace struct {
	fs   billy.Filesystem
	root string
}

var _ FileReader = (*Workspace)(nil)

// New returns a Workspace rooted at dir on the real filesystem.
func New(dir string) *Workspace {
	return &Workspace{
		fs:   osfs.New(dir, osfs.WithBoundOS()),
		root: dir,
	}
}

// NewFromFS wraps an existing billy filesystem, such as memfs in tests.
func NewFromFS(fs billy.Filesystem) *Workspace {
	return &Workspace{fs: fs, root: fs.Root()}
}

// Root returns the workspace directory.
func (w *Workspace) Root() string {
	return w.root
}

// ReadFile reads the whole file at path.
func (w *Workspace) ReadFile(path string) ([]byte, error) {
	info, err := w.fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("reading %s: is a directory", path)
	}

	data, err := util.ReadFile(w.fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// ReadBase64 implements FileReader.
func (w *Workspace) ReadBase64(path string) (string, error) {
	data, err := w.ReadFile(path)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}
