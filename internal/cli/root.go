package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cbout22/single-commit/internal/actions"
	"github.com/cbout22/single-commit/internal/config"
)

// version is set at build time via -ldflags.
var version = "dev"

// app carries the process environment into the commands so nothing below
// the entry point reads globals.
type app struct {
	getenv     func(string) string
	stdout     io.Writer
	stderr     io.Writer
	findConfig func() string

	flags  flagValues
	logger *slog.Logger
}

func newApp(getenv func(string) string, stdout, stderr io.Writer) *app {
	return &app{
		getenv:     getenv,
		stdout:     stdout,
		stderr:     stderr,
		findConfig: config.FindDefaultFile,
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "single-commit",
		Short: "Commit one file to GitHub, only if it changed",
		Long: `single-commit compares a workspace file with the copy stored in a GitHub
repository and commits it through the contents API when the two differ.
Nothing is written when the content is identical.

Inputs come from flags, INPUT_* variables set by the Actions runner, or a
TOML config file, in that order of precedence.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.logger = a.newLogger()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCommit(cmd.Context())
		},
	}

	a.flags.register(root)
	root.AddCommand(a.checkCmd())

	return root
}

// newLogger picks workflow-command output inside Actions and text elsewhere.
func (a *app) newLogger() *slog.Logger {
	level := slog.LevelInfo
	if a.flags.debug || a.getenv("RUNNER_DEBUG") == "1" {
		level = slog.LevelDebug
	}

	if a.getenv("GITHUB_ACTIONS") == "true" {
		return slog.New(actions.NewHandler(a.stdout, level))
	}
	return slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))
}

// fail reports err the way the runner expects and returns the exit code.
func (a *app) fail(err error) int {
	if a.logger == nil {
		a.logger = a.newLogger()
	}
	a.logger.Error(err.Error())
	return 1
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := newApp(os.Getenv, os.Stdout, os.Stderr)
	if err := a.rootCmd().ExecuteContext(ctx); err != nil {
		code := a.fail(err)
		stop()
		os.Exit(code)
	}
}

// printf writes user-facing progress lines.
func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.stdout, format, args...)
}
