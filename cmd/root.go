package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/compozy/tagmyrebase/internal/config"
	"github.com/compozy/tagmyrebase/internal/domain"
	"github.com/compozy/tagmyrebase/internal/orchestrator"
	"github.com/compozy/tagmyrebase/internal/report"
	"github.com/compozy/tagmyrebase/internal/repository"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const usageHint = "at least one of --tag-upstream, --tag-head or --branch-head is required"

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tagmyrebase",
		Short: "Tag the upstream commit and HEAD after a rebase",
		Long: `tagmyrebase marks the state of a branch after a rebase.

It can tag the upstream commit the branch was rebased onto, tag HEAD and
force a branch to HEAD. Templates may contain {YMDHMS} (timestamp) or
{YMDN} (date plus the lowest unused same-day counter). An action whose
template already matches a marker at the target commit is skipped.`,
		Example: `  tagmyrebase -u 'upstream-{YMDN}' -t 'good-{YMDN}' -b good`,
		Args:    cobra.NoArgs,
		RunE:    runMark,
		// main reports errors and picks the exit code.
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	flags := rootCmd.Flags()
	flags.StringP("tag-upstream", "u", "", "tag the upstream commit with this template")
	flags.StringP("tag-head", "t", "", "tag HEAD with this template")
	flags.StringP("branch-head", "b", "", "force a branch named by this template to HEAD")
	flags.BoolP("dry-run", "n", false, "print what would be done without touching refs")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging on stderr")
	rootCmd.PersistentFlags().String("backend", config.BackendCLI, "git backend: cli or native")
	rootCmd.PersistentFlags().StringP("repo-dir", "C", ".", "path to the repository")

	rootCmd.AddCommand(newLastOntoCmd(), newVersionCmd())
	return rootCmd
}

func Execute() error {
	return NewRootCmd().Execute()
}

func runMark(cmd *cobra.Command, _ []string) error {
	now := time.Now()
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}
	if !cfg.HasActions() {
		stderr := cmd.ErrOrStderr()
		fmt.Fprintf(stderr, "Error: %s\n\n", usageHint)
		fmt.Fprint(stderr, cmd.UsageString())
		return &ExitError{Code: ExitFailure}
	}
	c, err := newContainer(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() { _ = c.logger.Sync() }()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.LockEnabled() {
		release, err := acquireRunLock(ctx, c)
		if err != nil {
			return err
		}
		defer release()
	}
	return mark(ctx, c, orchestrator.MarkConfig{
		TagUpstream: domain.Template(cfg.TagUpstream),
		TagHead:     domain.Template(cfg.TagHead),
		BranchHead:  domain.Template(cfg.BranchHead),
		Now:         now,
		DryRun:      cfg.DryRun,
	}, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// mark runs the orchestrator and prints whatever rows were produced, even
// when a later action failed.
func mark(ctx context.Context, c *container, cfg orchestrator.MarkConfig, stdout, stderr io.Writer) (err error) {
	table := &report.Table{}
	defer func() {
		if renderErr := table.Render(stdout); renderErr != nil && err == nil {
			err = fmt.Errorf("failed to print results: %w", renderErr)
		}
	}()
	err = c.markOrchestrator().Execute(ctx, cfg, table.Add)
	if errors.Is(err, domain.ErrUnknownUpstream) {
		writeUpstreamHelp(stderr, err)
		return &ExitError{Code: ExitUnknownUpstream}
	}
	return err
}

func acquireRunLock(ctx context.Context, c *container) (func(), error) {
	gitDir, err := c.gitRepo.GitDir(ctx)
	if err != nil {
		return nil, err
	}
	lock := repository.NewRunLock(gitDir, c.cfg.LockTimeout)
	if err := lock.Acquire(ctx); err != nil {
		return nil, err
	}
	c.logger.Debug("acquired run lock", zap.String("path", lock.Path()))
	return func() {
		if err := lock.Release(); err != nil {
			c.logger.Warn("failed to release run lock", zap.String("path", lock.Path()), zap.Error(err))
		}
	}, nil
}

func writeUpstreamHelp(w io.Writer, err error) {
	branch := "<branch>"
	var upstreamErr *domain.UnknownUpstreamError
	if errors.As(err, &upstreamErr) && upstreamErr.Branch != "" {
		branch = upstreamErr.Branch
	}
	fmt.Fprintf(w, "Error: %v\n\n", err)
	fmt.Fprintf(w, "The current branch has no usable upstream. Configure one with:\n\n")
	fmt.Fprintf(w, "    git branch --set-upstream-to=<remote>/<upstream-branch> %s\n", branch)
	fmt.Fprintf(w, "    git config branch.%s.rebase true\n", branch)
}
