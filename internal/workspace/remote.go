package workspace

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/transport"

	"github.com/cbout22/single-commit/internal/config"
)

// DefaultRemoteName is the remote consulted when discovering the repository.
const DefaultRemoteName = "origin"

// ErrNoRemote is returned when the workspace has no usable remote.
var ErrNoRemote = errors.New("no remote repository found")

// DiscoverRepository finds the GitHub repository the workspace was cloned
// from by reading the URL of remoteName. dir may be any directory inside
// the working tree.
func DiscoverRepository(dir, remoteName string) (config.Repository, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return config.Repository{}, fmt.Errorf("opening git repository at %s: %w", dir, err)
	}

	remote, err := repo.Remote(remoteName)
	if err != nil {
		if errors.Is(err, git.ErrRemoteNotFound) {
			return config.Repository{}, fmt.Errorf("%w: remote %q is not configured", ErrNoRemote, remoteName)
		}
		return config.Repository{}, fmt.Errorf("reading remote %q: %w", remoteName, err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return config.Repository{}, fmt.Errorf("%w: remote %q has no URL", ErrNoRemote, remoteName)
	}
	return ParseRemoteURL(urls[0])
}

// ParseRemoteURL extracts owner/name from a clone URL. HTTPS, ssh:// and
// scp-style (git@host:owner/name.git) URLs are accepted; local paths are not.
func ParseRemoteURL(raw string) (config.Repository, error) {
	ep, err := transport.NewEndpoint(raw)
	if err != nil {
		return config.Repository{}, fmt.Errorf("parsing remote URL %q: %w", raw, err)
	}
	if ep.Protocol == "file" {
		return config.Repository{}, fmt.Errorf("%w: %q is a local path", ErrNoRemote, raw)
	}

	path := strings.TrimSuffix(strings.Trim(ep.Path, "/"), ".git")
	return config.ParseRepository(path)
}
