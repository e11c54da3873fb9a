package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/compozy/tagmyrebase/internal/domain"
	"go.uber.org/zap"
)

// DefaultCommandTimeout is the timeout for a single git invocation.
const DefaultCommandTimeout = 30 * time.Second

// CommandError describes a git invocation that exited unsuccessfully.
type CommandError struct {
	Args     []string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("git %s failed", strings.Join(e.Args, " "))
	if e.Stderr != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Stderr)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// cliGitRepository implements GitRepository by running the git binary.
type cliGitRepository struct {
	dir     string
	binary  string
	timeout time.Duration
	logger  *zap.Logger
}

// CLIOptions configures the git CLI backend.
type CLIOptions struct {
	Dir     string
	Binary  string
	Timeout time.Duration
	Logger  *zap.Logger
}

// NewCLIGitRepository creates a GitRepository backed by the git command line.
func NewCLIGitRepository(opts CLIOptions) (GitRepository, error) {
	if opts.Binary == "" {
		opts.Binary = "git"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultCommandTimeout
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Dir == "" {
		opts.Dir = "."
	}
	dir, err := filepath.Abs(opts.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve repository path: %w", err)
	}
	if _, err := exec.LookPath(opts.Binary); err != nil {
		return nil, fmt.Errorf("git binary %q not found: %w", opts.Binary, err)
	}
	return &cliGitRepository{
		dir:     dir,
		binary:  opts.Binary,
		timeout: opts.Timeout,
		logger:  opts.Logger,
	}, nil
}

// run executes git with a timeout. With allowExit1, exit status 1 with an
// empty stderr is returned as success (git's "nothing found" convention).
func (r *cliGitRepository) run(ctx context.Context, allowExit1 bool, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmdArgs := append([]string{"-C", r.dir}, args...)
	cmd := exec.CommandContext(ctx, r.binary, cmdArgs...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	r.logger.Debug("git command",
		zap.Strings("args", args),
		zap.Duration("took", time.Since(start)),
		zap.Error(err),
	)
	if err == nil {
		return stdout.String(), nil
	}
	if ctx.Err() == context.DeadlineExceeded {
		return "", &CommandError{Args: args, ExitCode: -1, Err: fmt.Errorf("timed out after %v", r.timeout)}
	}
	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}
	errMsg := strings.TrimSpace(stderr.String())
	if allowExit1 && exitCode == 1 && errMsg == "" {
		return stdout.String(), nil
	}
	return "", &CommandError{Args: args, ExitCode: exitCode, Stderr: errMsg, Err: err}
}

// ListRefs lists HEAD, branches and tags with `git show-ref --head --dereference`.
func (r *cliGitRepository) ListRefs(ctx context.Context) (*domain.RefSnapshot, error) {
	// show-ref exits 1 when there are no refs at all.
	out, err := r.run(ctx, true, "show-ref", "--head", "--dereference")
	if err != nil {
		return nil, fmt.Errorf("failed to list refs: %w", err)
	}
	return ParseShowRef(out)
}

// ParseShowRef builds a snapshot from `git show-ref --head --dereference`
// output. A `refs/tags/<name>^{}` line overrides the tag object id of
// `refs/tags/<name>` with the commit it points to.
func ParseShowRef(out string) (*domain.RefSnapshot, error) {
	tags := map[string]string{}
	peeled := map[string]string{}
	branches := map[string]string{}
	head := ""
	for _, rawLine := range strings.Split(out, "\n") {
		line := strings.TrimRight(rawLine, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) != 2 {
			return nil, fmt.Errorf("unexpected show-ref output line: %q", rawLine)
		}
		hash, refName := parts[0], parts[1]
		switch {
		case refName == "HEAD":
			head = hash
		case strings.HasPrefix(refName, "refs/tags/") && strings.HasSuffix(refName, "^{}"):
			peeled[strings.TrimSuffix(strings.TrimPrefix(refName, "refs/tags/"), "^{}")] = hash
		case strings.HasPrefix(refName, "refs/tags/"):
			tags[strings.TrimPrefix(refName, "refs/tags/")] = hash
		case strings.HasPrefix(refName, "refs/heads/"):
			branches[strings.TrimPrefix(refName, "refs/heads/")] = hash
		}
	}
	for name, commit := range peeled {
		tags[name] = commit
	}
	return domain.NewRefSnapshot(tags, branches, head), nil
}

// CurrentBranch returns the short name of the checked-out branch.
func (r *cliGitRepository) CurrentBranch(ctx context.Context) (string, error) {
	out, err := r.run(ctx, true, "symbolic-ref", "--quiet", "--short", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to read current branch: %w", err)
	}
	branch := strings.TrimSpace(out)
	if branch == "" {
		return "", domain.ErrDetachedHead
	}
	return branch, nil
}

// UpstreamCommit resolves branch@{upstream}. An unset upstream yields empty
// output from for-each-ref, which is reported as an UnknownUpstreamError.
func (r *cliGitRepository) UpstreamCommit(ctx context.Context, branch string) (string, error) {
	out, err := r.run(ctx, false, "for-each-ref", "--format=%(upstream)", "refs/heads/"+branch)
	if err != nil {
		return "", &domain.UnknownUpstreamError{Branch: branch, Err: err}
	}
	upstreamRef := strings.TrimSpace(out)
	if upstreamRef == "" {
		return "", &domain.UnknownUpstreamError{Branch: branch}
	}
	out, err = r.run(ctx, false, "rev-parse", "--verify", upstreamRef+"^{commit}")
	if err != nil {
		return "", &domain.UnknownUpstreamError{Branch: branch, Err: err}
	}
	commit := strings.TrimSpace(out)
	if commit == "" {
		return "", &domain.UnknownUpstreamError{Branch: branch}
	}
	return commit, nil
}

// CreateTag creates a lightweight tag at commit.
func (r *cliGitRepository) CreateTag(ctx context.Context, name, commit string) error {
	if _, err := r.run(ctx, false, "tag", name, commit); err != nil {
		return fmt.Errorf("failed to create tag %s: %w", name, err)
	}
	return nil
}

// CreateTagAtHead creates a lightweight tag at HEAD.
func (r *cliGitRepository) CreateTagAtHead(ctx context.Context, name string) error {
	if _, err := r.run(ctx, false, "tag", name); err != nil {
		return fmt.Errorf("failed to create tag %s: %w", name, err)
	}
	return nil
}

// ForceBranch runs `git branch -f name`.
func (r *cliGitRepository) ForceBranch(ctx context.Context, name string) error {
	if _, err := r.run(ctx, false, "branch", "-f", name); err != nil {
		return fmt.Errorf("failed to create branch %s: %w", name, err)
	}
	return nil
}

// CommitSummary returns `git log -n 1 --oneline` for commit.
func (r *cliGitRepository) CommitSummary(ctx context.Context, commit string) (string, error) {
	out, err := r.run(ctx, false, "log", "-n", "1", "--oneline", "--no-decorate", commit)
	if err != nil {
		return "", fmt.Errorf("failed to describe commit %s: %w", commit, err)
	}
	return strings.TrimSpace(out), nil
}

// GitDir returns the absolute common git directory.
func (r *cliGitRepository) GitDir(ctx context.Context) (string, error) {
	out, err := r.run(ctx, false, "rev-parse", "--git-common-dir")
	if err != nil {
		return "", fmt.Errorf("failed to locate git directory: %w", err)
	}
	gitDir := strings.TrimSpace(out)
	if gitDir == "" {
		return "", fmt.Errorf("git rev-parse returned an empty git directory")
	}
	if !filepath.IsAbs(gitDir) {
		gitDir = filepath.Join(r.dir, gitDir)
	}
	return gitDir, nil
}
