package committer

import "errors"

var (
	// ErrPathNotFound is returned when the write call answers 404. Unlike a
	// 404 from the probe, this means the repository, branch or parent path
	// is not what the caller expects.
	ErrPathNotFound = errors.New("does not exist")

	// ErrValidationOrRateLimit is returned when the write call answers 422.
	// The API uses that status for both cases, so they cannot be told apart.
	ErrValidationOrRateLimit = errors.New("validation failed or rate limit exceeded")
)
