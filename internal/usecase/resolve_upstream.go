package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/compozy/tagmyrebase/internal/domain"
	"github.com/compozy/tagmyrebase/internal/repository"
)

// ResolveUpstreamUseCase finds the commit the current branch tracks as upstream.

type ResolveUpstreamUseCase struct {
	GitRepo repository.GitRepository
}

// Execute returns the current branch and its upstream commit. Every failure
// is reported as a *domain.UnknownUpstreamError.
func (uc *ResolveUpstreamUseCase) Execute(ctx context.Context) (string, string, error) {
	branch, err := uc.GitRepo.CurrentBranch(ctx)
	if err != nil {
		return "", "", &domain.UnknownUpstreamError{Err: err}
	}
	commit, err := uc.GitRepo.UpstreamCommit(ctx, branch)
	if err != nil {
		var upstreamErr *domain.UnknownUpstreamError
		if errors.As(err, &upstreamErr) {
			return branch, "", err
		}
		return branch, "", &domain.UnknownUpstreamError{Branch: branch, Err: err}
	}
	if commit == "" {
		return branch, "", &domain.UnknownUpstreamError{Branch: branch}
	}
	return branch, commit, nil
}

// LastRebaseOntoUseCase recovers the commit the last finished rebase of a
// branch landed on, from the branch reflog. The mark flow never calls it.

type LastRebaseOntoUseCase struct {
	GitRepo    repository.GitRepository
	ReflogRepo repository.ReflogRepository
}

// Execute runs the use case. An empty branch means the current branch.
func (uc *LastRebaseOntoUseCase) Execute(ctx context.Context, branch string) (string, error) {
	if branch == "" {
		current, err := uc.GitRepo.CurrentBranch(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to determine current branch: %w", err)
		}
		branch = current
	}
	gitDir, err := uc.GitRepo.GitDir(ctx)
	if err != nil {
		return "", err
	}
	entries, err := uc.ReflogRepo.BranchReflog(ctx, gitDir, branch)
	if err != nil {
		return "", err
	}
	onto, ok := domain.LastRebaseOnto(entries, branch)
	if !ok {
		return "", fmt.Errorf("%w for branch %s", domain.ErrNoRebaseFound, branch)
	}
	return onto, nil
}
