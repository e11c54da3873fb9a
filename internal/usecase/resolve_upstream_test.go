package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/compozy/tagmyrebase/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveUpstreamUseCase_Execute(t *testing.T) {
	t.Run("Should resolve the upstream of the current branch", func(t *testing.T) {
		gitRepo := new(mockGitRepository)
		uc := &ResolveUpstreamUseCase{GitRepo: gitRepo}
		ctx := context.Background()
		gitRepo.On("CurrentBranch", ctx).Return("main", nil)
		gitRepo.On("UpstreamCommit", ctx, "main").Return("abc123", nil)
		branch, commit, err := uc.Execute(ctx)
		require.NoError(t, err)
		assert.Equal(t, "main", branch)
		assert.Equal(t, "abc123", commit)
		gitRepo.AssertExpectations(t)
	})
	t.Run("Should treat an empty result as unknown upstream", func(t *testing.T) {
		gitRepo := new(mockGitRepository)
		uc := &ResolveUpstreamUseCase{GitRepo: gitRepo}
		ctx := context.Background()
		gitRepo.On("CurrentBranch", ctx).Return("main", nil)
		gitRepo.On("UpstreamCommit", ctx, "main").Return("", nil)
		_, commit, err := uc.Execute(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrUnknownUpstream)
		assert.Equal(t, "", commit)
	})
	t.Run("Should normalise command failures to unknown upstream", func(t *testing.T) {
		gitRepo := new(mockGitRepository)
		uc := &ResolveUpstreamUseCase{GitRepo: gitRepo}
		ctx := context.Background()
		cause := errors.New("fatal: ambiguous argument")
		gitRepo.On("CurrentBranch", ctx).Return("main", nil)
		gitRepo.On("UpstreamCommit", ctx, "main").Return("", cause)
		_, _, err := uc.Execute(ctx)
		assert.ErrorIs(t, err, domain.ErrUnknownUpstream)
		assert.ErrorIs(t, err, cause)
		var upstreamErr *domain.UnknownUpstreamError
		require.ErrorAs(t, err, &upstreamErr)
		assert.Equal(t, "main", upstreamErr.Branch)
	})
	t.Run("Should report a detached HEAD as unknown upstream", func(t *testing.T) {
		gitRepo := new(mockGitRepository)
		uc := &ResolveUpstreamUseCase{GitRepo: gitRepo}
		ctx := context.Background()
		gitRepo.On("CurrentBranch", ctx).Return("", domain.ErrDetachedHead)
		_, _, err := uc.Execute(ctx)
		assert.ErrorIs(t, err, domain.ErrUnknownUpstream)
		assert.ErrorIs(t, err, domain.ErrDetachedHead)
		gitRepo.AssertNotCalled(t, "UpstreamCommit")
	})
}

func TestLastRebaseOntoUseCase_Execute(t *testing.T) {
	entries, err := domain.ParseReflog(
		"abc123 def456 Name <a@b.com> 1700000000 +0000\trebase finished: refs/heads/main onto def456\n",
	)
	require.NoError(t, err)

	t.Run("Should read the reflog of the named branch", func(t *testing.T) {
		gitRepo := new(mockGitRepository)
		reflogRepo := new(mockReflogRepository)
		uc := &LastRebaseOntoUseCase{GitRepo: gitRepo, ReflogRepo: reflogRepo}
		ctx := context.Background()
		gitRepo.On("GitDir", ctx).Return("/repo/.git", nil)
		reflogRepo.On("BranchReflog", ctx, "/repo/.git", "main").Return(entries, nil)
		onto, err := uc.Execute(ctx, "main")
		require.NoError(t, err)
		assert.Equal(t, "def456", onto)
		gitRepo.AssertNotCalled(t, "CurrentBranch")
	})
	t.Run("Should default to the current branch", func(t *testing.T) {
		gitRepo := new(mockGitRepository)
		reflogRepo := new(mockReflogRepository)
		uc := &LastRebaseOntoUseCase{GitRepo: gitRepo, ReflogRepo: reflogRepo}
		ctx := context.Background()
		gitRepo.On("CurrentBranch", ctx).Return("main", nil)
		gitRepo.On("GitDir", ctx).Return("/repo/.git", nil)
		reflogRepo.On("BranchReflog", ctx, "/repo/.git", "main").Return(entries, nil)
		onto, err := uc.Execute(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, "def456", onto)
		gitRepo.AssertExpectations(t)
	})
	t.Run("Should fail when no rebase is recorded", func(t *testing.T) {
		gitRepo := new(mockGitRepository)
		reflogRepo := new(mockReflogRepository)
		uc := &LastRebaseOntoUseCase{GitRepo: gitRepo, ReflogRepo: reflogRepo}
		ctx := context.Background()
		gitRepo.On("GitDir", ctx).Return("/repo/.git", nil)
		reflogRepo.On("BranchReflog", ctx, "/repo/.git", "other").Return(entries, nil)
		_, err := uc.Execute(ctx, "other")
		assert.ErrorIs(t, err, domain.ErrNoRebaseFound)
	})
}
