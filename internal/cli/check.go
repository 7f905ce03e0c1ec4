package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cbout22/single-commit/internal/actions"
	"github.com/cbout22/single-commit/internal/committer"
	"github.com/cbout22/single-commit/internal/config"
	"github.com/cbout22/single-commit/internal/contents"
	"github.com/cbout22/single-commit/internal/workspace"
)

// checkCmd creates the `check` command.
// Usage: single-commit check [--strict]
func (a *app) checkCmd() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report whether the file differs from the upstream copy",
		Long: `Probes the upstream copy of the file and compares it with the workspace
without committing anything. Useful to preview a run or to gate a pipeline.

With --strict, the command exits with a non-zero code if a commit would
be made.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCheck(cmd.Context(), strict)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Exit with error code if the file would be committed")

	return cmd
}

func (a *app) runCheck(ctx context.Context, strict bool) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.ValidateTarget(); err != nil {
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

	plan, err := checkWith(ctx, cfg, repo, api, workspace.New(cfg.Workspace))
	if err != nil {
		return err
	}

	if err := actions.NewOutputs(a.getenv).Set("action", string(plan.Action)); err != nil {
		return err
	}

	return a.reportPlan(repo, plan, strict)
}

// checkWith is the testable core of the check command.
func checkWith(ctx context.Context, cfg *config.Config, repo config.Repository, api contents.Requester, files workspace.FileReader) (*committer.Plan, error) {
	c := committer.New(api, repo, files, committer.WithBranch(cfg.Branch))

	probe, err := c.Probe(ctx, cfg.Path)
	if err != nil {
		return nil, err
	}
	return c.Plan(probe, committer.Input{Path: cfg.Path})
}

func (a *app) reportPlan(repo config.Repository, plan *committer.Plan, strict bool) error {
	a.printf("🔍 Checking %s in %s...\n\n", plan.Path, repo.FullName())

	switch plan.Action {
	case committer.ActionNone:
		a.printf("  ✅ %s — unchanged\n", plan.Path)
		return nil
	case committer.ActionCreate:
		a.printf("  📦 %s — would create\n", plan.Path)
	case committer.ActionUpdate:
		a.printf("  ⚠️  %s — would update (upstream %s)\n", plan.Path, plan.Request.RemoteRevisionID)
	}

	msg := fmt.Sprintf("%s differs from %s. Run 'single-commit' to commit it.", plan.Path, repo.FullName())
	if strict {
		return fmt.Errorf("%s", msg)
	}
	a.printf("\n%s\n", msg)
	return nil
}
