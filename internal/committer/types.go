package committer

import "github.com/cbout22/single-commit/internal/contents"

// FileProbeResult is the upstream state of a file. Both fields are empty when
// the file does not exist.
type FileProbeResult struct {
	RemoteRevisionID string // blob SHA, the optimistic-concurrency token for updates
	ContentDigest    string // digest.FromBase64 of the upstream content
}

// Exists reports whether the probe found the file upstream.
func (r FileProbeResult) Exists() bool {
	return r.RemoteRevisionID != ""
}

// Input is what the caller wants committed.
type Input struct {
	Path           string
	Message        string
	CommitterName  string
	CommitterEmail string
}

// CommitRequest is a single create-or-update call. RemoteRevisionID is set
// only when the file already exists upstream.
type CommitRequest struct {
	Path             string
	Message          string
	CommitterName    string
	CommitterEmail   string
	Base64Content    string
	RemoteRevisionID string
	Branch           string
}

func (r *CommitRequest) body() *contents.PutFileRequest {
	return &contents.PutFileRequest{
		Message: r.Message,
		Committer: contents.Identity{
			Name:  r.CommitterName,
			Email: r.CommitterEmail,
		},
		Content: r.Base64Content,
		SHA:     r.RemoteRevisionID,
		Branch:  r.Branch,
	}
}

// Action is what a Plan will do.
type Action string

const (
	ActionNone   Action = "none"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
)

// Plan is the decision made after comparing digests. Request is nil for ActionNone.
type Plan struct {
	Action      Action
	Path        string
	LocalDigest string
	Request     *CommitRequest
}

// Status is the terminal state of a run.
type Status string

const (
	StatusUnchanged Status = "unchanged"
	StatusUpdated   Status = "updated"
	StatusCreated   Status = "created"
)

// Result is the outcome of Commit. The SHAs are empty when nothing was written.
type Result struct {
	Status     Status
	Path       string
	ContentSHA string
	CommitSHA  string
	CommitURL  string
}
