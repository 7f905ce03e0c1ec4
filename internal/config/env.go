package config

import "strings"

// Getenv looks up an environment variable. os.Getenv satisfies it.
type Getenv func(key string) string

// InputEnvName returns the variable the Actions runner uses for an input:
// "committer_email" becomes "INPUT_COMMITTER_EMAIL".
func InputEnvName(name string) string {
	return "INPUT_" + strings.ToUpper(strings.ReplaceAll(name, " ", "_"))
}

// FromEnv reads step inputs and the runner's GITHUB_* context variables.
func FromEnv(getenv Getenv) *Config {
	input := func(name string) string {
		return strings.TrimSpace(getenv(InputEnvName(name)))
	}

	return &Config{
		Path:           input("path"),
		Message:        input("message"),
		Committer:      input("committer"),
		CommitterEmail: input("committer_email"),
		Branch:         input("branch"),
		Conventional:   parseBool(input("conventional")),
		Repository:     getenv("GITHUB_REPOSITORY"),
		Workspace:      getenv("GITHUB_WORKSPACE"),
		APIURL:         getenv("GITHUB_API_URL"),
	}
}

// parseBool follows the YAML 1.2 core schema the runner uses for booleans.
// Anything else, including the empty string, leaves the input unset.
func parseBool(v string) *bool {
	var b bool
	switch v {
	case "true", "True", "TRUE":
		b = true
	case "false", "False", "FALSE":
		b = false
	default:
		return nil
	}
	return &b
}
