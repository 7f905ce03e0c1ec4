// Package committer commits a workspace file to GitHub only when its content
// differs from the copy stored upstream.
package committer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/cbout22/single-commit/internal/config"
	"github.com/cbout22/single-commit/internal/contents"
	"github.com/cbout22/single-commit/internal/digest"
	"github.com/cbout22/single-commit/internal/workspace"
)

// Committer probes, compares and writes a single file.
type Committer struct {
	api    contents.Requester
	repo   config.Repository
	files  workspace.FileReader
	branch string
	logger *slog.Logger
}

// Option configures a Committer.
type Option func(*Committer)

// WithBranch reads from and commits to branch instead of the default branch.
func WithBranch(branch string) Option {
	return func(c *Committer) {
		c.branch = branch
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Committer) {
		c.logger = logger
	}
}

// New creates a Committer for repo. Local paths are resolved through files.
func New(api contents.Requester, repo config.Repository, files workspace.FileReader, opts ...Option) *Committer {
	c := &Committer{
		api:    api,
		repo:   repo,
		files:  files,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Probe fetches the upstream revision and digest of path. A missing file is
// not an error: it yields an empty FileProbeResult. Every other failure is
// returned unchanged.
func (c *Committer) Probe(ctx context.Context, path string) (FileProbeResult, error) {
	c.logger.Debug("GET: File "+path, "repository", c.repo.FullName(), "branch", c.branch)

	f, err := contents.GetFile(ctx, c.api, c.repo, path, c.branch)
	if err != nil {
		if contents.StatusOf(err) == http.StatusNotFound {
			c.logger.Debug("GET: File "+path+" not found upstream")
			return FileProbeResult{}, nil
		}
		return FileProbeResult{}, err
	}

	c.logger.Debug("GET: File "+path+" found", "sha", f.SHA, "size", f.Size)

	if f.Encoding == "none" {
		// Files above 1 MB come back without content; the digest stays empty
		// so the comparison always falls through to an update at f.SHA.
		c.logger.Warn("upstream content too large to compare, committing unconditionally", "path", path, "size", f.Size)
		return FileProbeResult{RemoteRevisionID: f.SHA}, nil
	}

	sum, err := digest.FromBase64(f.Content)
	if err != nil {
		return FileProbeResult{}, fmt.Errorf("hashing upstream %s: %w", path, err)
	}

	return FileProbeResult{RemoteRevisionID: f.SHA, ContentDigest: sum}, nil
}

// Plan reads the local file and decides whether a write is needed.
func (c *Committer) Plan(probe FileProbeResult, in Input) (*Plan, error) {
	content, err := c.files.ReadBase64(in.Path)
	if err != nil {
		return nil, err
	}

	local, err := digest.FromBase64(content)
	if err != nil {
		return nil, fmt.Errorf("hashing local %s: %w", in.Path, err)
	}

	plan := &Plan{Path: in.Path, LocalDigest: local}
	if local == probe.ContentDigest {
		plan.Action = ActionNone
		return plan, nil
	}

	plan.Action = ActionCreate
	req := &CommitRequest{
		Path:           in.Path,
		Message:        in.Message,
		CommitterName:  in.CommitterName,
		CommitterEmail: in.CommitterEmail,
		Base64Content:  content,
		Branch:         c.branch,
	}
	if probe.Exists() {
		plan.Action = ActionUpdate
		req.RemoteRevisionID = probe.RemoteRevisionID
	}
	plan.Request = req
	return plan, nil
}

// Commit carries out plan. ActionNone makes no API call.
func (c *Committer) Commit(ctx context.Context, plan *Plan) (*Result, error) {
	if plan.Action == ActionNone || plan.Request == nil {
		c.logger.Info(fmt.Sprintf("File %s has not changed", plan.Path))
		return &Result{Status: StatusUnchanged, Path: plan.Path}, nil
	}

	req := plan.Request
	c.logger.Debug("COMMIT: File "+req.Path, "action", string(plan.Action))

	res, err := contents.PutFile(ctx, c.api, c.repo, req.Path, req.body())
	if err != nil {
		switch contents.StatusOf(err) {
		case http.StatusNotFound:
			c.logger.Debug("COMMIT: File "+req.Path+" does not exist", "error", err)
			return nil, fmt.Errorf("%s %w", req.Path, ErrPathNotFound)
		case http.StatusUnprocessableEntity:
			c.logger.Debug("COMMIT: File "+req.Path+" rejected", "error", err)
			return nil, ErrValidationOrRateLimit
		default:
			return nil, err
		}
	}

	c.logger.Debug("COMMIT: File "+req.Path, "status", res.Status)

	result := &Result{
		Path:       req.Path,
		ContentSHA: res.Content.SHA,
		CommitSHA:  res.Commit.SHA,
		CommitURL:  res.Commit.HTMLURL,
	}
	if res.Status == http.StatusOK {
		result.Status = StatusUpdated
		c.logger.Info(fmt.Sprintf("File %s updated successfully", req.Path), "commit", result.CommitSHA)
	} else {
		result.Status = StatusCreated
		c.logger.Info(fmt.Sprintf("File %s created successfully", req.Path), "commit", result.CommitSHA)
	}
	return result, nil
}

// Run probes, plans and commits in one pass.
func (c *Committer) Run(ctx context.Context, in Input) (*Result, error) {
	probe, err := c.Probe(ctx, in.Path)
	if err != nil {
		return nil, err
	}

	plan, err := c.Plan(probe, in)
	if err != nil {
		return nil, err
	}

	return c.Commit(ctx, plan)
}
