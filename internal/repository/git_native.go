package repository

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/compozy/tagmyrebase/internal/domain"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/storage/filesystem"
)

const abbrevLength = 7

// nativeGitRepository implements GitRepository with go-git, without a git binary.
type nativeGitRepository struct {
	repo *git.Repository
}

// NewNativeGitRepository opens the repository containing dir with go-git.
func NewNativeGitRepository(dir string) (GitRepository, error) {
	if dir == "" {
		dir = "."
	}
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository: %w", err)
	}
	return &nativeGitRepository{repo: repo}, nil
}

// ListRefs walks all references, peeling annotated tags to the object they point to.
func (r *nativeGitRepository) ListRefs(_ context.Context) (*domain.RefSnapshot, error) {
	tags := map[string]string{}
	branches := map[string]string{}
	iter, err := r.repo.References()
	if err != nil {
		return nil, fmt.Errorf("failed to list refs: %w", err)
	}
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		if ref.Type() != plumbing.HashReference {
			return nil
		}
		switch {
		case ref.Name().IsTag():
			tags[ref.Name().Short()] = r.peel(ref.Hash()).String()
		case ref.Name().IsBranch():
			branches[ref.Name().Short()] = ref.Hash().String()
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate refs: %w", err)
	}
	head := ""
	headRef, err := r.repo.Head()
	switch {
	case err == nil:
		head = headRef.Hash().String()
	case !errors.Is(err, plumbing.ErrReferenceNotFound):
		return nil, fmt.Errorf("failed to get HEAD: %w", err)
	}
	return domain.NewRefSnapshot(tags, branches, head), nil
}

// peel follows annotated tag objects until it reaches a non-tag object.
func (r *nativeGitRepository) peel(hash plumbing.Hash) plumbing.Hash {
	for {
		tagObj, err := r.repo.TagObject(hash)
		if err != nil {
			return hash
		}
		hash = tagObj.Target
	}
}

// CurrentBranch returns the branch HEAD symbolically points to.
func (r *nativeGitRepository) CurrentBranch(_ context.Context) (string, error) {
	ref, err := r.repo.Storer.Reference(plumbing.HEAD)
	if err != nil {
		return "", fmt.Errorf("failed to read HEAD: %w", err)
	}
	if ref.Type() != plumbing.SymbolicReference || !ref.Target().IsBranch() {
		return "", domain.ErrDetachedHead
	}
	return ref.Target().Short(), nil
}

// UpstreamCommit resolves the branch.<name>.remote/merge configuration.
func (r *nativeGitRepository) UpstreamCommit(_ context.Context, branch string) (string, error) {
	cfg, err := r.repo.Branch(branch)
	if errors.Is(err, git.ErrBranchNotFound) {
		return "", &domain.UnknownUpstreamError{Branch: branch}
	}
	if err != nil {
		return "", &domain.UnknownUpstreamError{Branch: branch, Err: err}
	}
	if cfg.Remote == "" || cfg.Merge == "" {
		return "", &domain.UnknownUpstreamError{Branch: branch}
	}
	upstreamRef := cfg.Merge
	if cfg.Remote != "." {
		upstreamRef = plumbing.NewRemoteReferenceName(cfg.Remote, cfg.Merge.Short())
	}
	ref, err := r.repo.Reference(upstreamRef, true)
	if err != nil {
		return "", &domain.UnknownUpstreamError{
			Branch: branch,
			Err:    fmt.Errorf("failed to resolve %s: %w", upstreamRef, err),
		}
	}
	return r.peel(ref.Hash()).String(), nil
}

// CreateTag creates a lightweight tag at commit.
func (r *nativeGitRepository) CreateTag(_ context.Context, name, commit string) error {
	hash, err := r.repo.ResolveRevision(plumbing.Revision(commit))
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", commit, err)
	}
	if _, err := r.repo.CreateTag(name, *hash, nil); err != nil {
		return fmt.Errorf("failed to create tag %s: %w", name, err)
	}
	return nil
}

// CreateTagAtHead creates a lightweight tag at HEAD.
func (r *nativeGitRepository) CreateTagAtHead(ctx context.Context, name string) error {
	head, err := r.repo.Head()
	if err != nil {
		return fmt.Errorf("failed to get HEAD: %w", err)
	}
	return r.CreateTag(ctx, name, head.Hash().String())
}

// ForceBranch points refs/heads/<name> at HEAD, creating or overwriting it.
func (r *nativeGitRepository) ForceBranch(_ context.Context, name string) error {
	head, err := r.repo.Head()
	if err != nil {
		return fmt.Errorf("failed to get HEAD: %w", err)
	}
	ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName(name), head.Hash())
	if err := r.repo.Storer.SetReference(ref); err != nil {
		return fmt.Errorf("failed to create branch %s: %w", name, err)
	}
	return nil
}

// CommitSummary returns "<abbrev> <subject>" like `git log --oneline`.
func (r *nativeGitRepository) CommitSummary(_ context.Context, commit string) (string, error) {
	c, err := r.repo.CommitObject(plumbing.NewHash(commit))
	if err != nil {
		return "", fmt.Errorf("failed to describe commit %s: %w", commit, err)
	}
	subject, _, _ := strings.Cut(strings.TrimSpace(c.Message), "\n")
	return c.Hash.String()[:abbrevLength] + " " + strings.TrimSpace(subject), nil
}

// GitDir returns the directory backing the repository's storage.
func (r *nativeGitRepository) GitDir(_ context.Context) (string, error) {
	storage, ok := r.repo.Storer.(*filesystem.Storage)
	if !ok {
		return "", fmt.Errorf("repository is not stored on a filesystem")
	}
	root := storage.Filesystem().Root()
	if !filepath.IsAbs(root) {
		abs, err := filepath.Abs(root)
		if err != nil {
			return "", fmt.Errorf("failed to resolve git directory: %w", err)
		}
		root = abs
	}
	return root, nil
}
