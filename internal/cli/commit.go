package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cbout22/single-commit/internal/actions"
	"github.com/cbout22/single-commit/internal/auth"
	"github.com/cbout22/single-commit/internal/committer"
	"github.com/cbout22/single-commit/internal/config"
	"github.com/cbout22/single-commit/internal/contents"
	"github.com/cbout22/single-commit/internal/workspace"
)

func (a *app) runCommit(ctx context.Context) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	repo, err := resolveRepository(cfg)
	if err != nil {
		return err
	}

	api, err := a.newAPI(cfg)
	if err != nil {
		return err
	}
	files := workspace.New(cfg.Workspace)

	result, err := runCommitWith(ctx, cfg, repo, api, files, a.logger)
	if err != nil {
		return err
	}

	return publishResult(actions.NewOutputs(a.getenv), result)
}

func (a *app) newAPI(cfg *config.Config) (*contents.Client, error) {
	gh := auth.NewClient(a.getenv, a.logger)
	return contents.New(gh, cfg.APIURL, contents.WithLogger(a.logger))
}

// runCommitWith is the testable core of the root command.
func runCommitWith(ctx context.Context, cfg *config.Config, repo config.Repository, api contents.Requester, files workspace.FileReader, logger *slog.Logger) (*committer.Result, error) {
	c := committer.New(api, repo, files,
		committer.WithBranch(cfg.Branch),
		committer.WithLogger(logger),
	)

	logger.Debug("committing", "repository", repo.FullName(), "path", cfg.Path, "branch", cfg.Branch)

	return c.Run(ctx, committer.Input{
		Path:           cfg.Path,
		Message:        cfg.Message,
		CommitterName:  cfg.Committer,
		CommitterEmail: cfg.CommitterEmail,
	})
}

// resolveRepository prefers the configured repository and falls back to the
// workspace's origin remote.
func resolveRepository(cfg *config.Config) (config.Repository, error) {
	if cfg.Repository != "" {
		return config.ParseRepository(cfg.Repository)
	}
	repo, err := workspace.DiscoverRepository(cfg.Workspace, workspace.DefaultRemoteName)
	if err != nil {
		return config.Repository{}, fmt.Errorf("no repository configured (set GITHUB_REPOSITORY or --repository): %w", err)
	}
	return repo, nil
}

func publishResult(out *actions.Outputs, res *committer.Result) error {
	if err := out.Set("status", string(res.Status)); err != nil {
		return err
	}
	if res.Status == committer.StatusUnchanged {
		return nil
	}
	if err := out.Set("content_sha", res.ContentSHA); err != nil {
		return err
	}
	if err := out.Set("commit_sha", res.CommitSHA); err != nil {
		return err
	}
	return out.Set("commit_url", res.CommitURL)
}
