package auth

import (
	"fmt"
	"log/slog"

	"github.com/google/go-github/v72/github"
)

// githubTokenEnvVars lists the environment variables checked for a GitHub token,
// in priority order.
var githubTokenEnvVars = []string{
	"GITHUB_TOKEN",
	"GH_TOKEN",
}

// Token returns the GitHub token from the environment.
// It checks GITHUB_TOKEN first, then GH_TOKEN.
func Token(getenv func(string) string) (string, error) {
	for _, env := range githubTokenEnvVars {
		if v := getenv(env); v != "" {
			return v, nil
		}
	}
	return "", fmt.Errorf(
		"no GitHub token found: set %s or %s in your environment",
		githubTokenEnvVars[0], githubTokenEnvVars[1],
	)
}

// NewClient returns a go-github client for API calls.
// If a token is available every request carries Bearer auth. Otherwise the
// client is unauthenticated: it can read public repositories but its
// writes will be rejected upstream.
func NewClient(getenv func(string) string, logger *slog.Logger) *github.Client {
	client := github.NewClient(nil)

	token, err := Token(getenv)
	if err != nil {
		logger.Warn("no GitHub token found, using unauthenticated requests",
			"hint", "set GITHUB_TOKEN or GH_TOKEN")
		return client
	}
	return client.WithAuthToken(token)
}
