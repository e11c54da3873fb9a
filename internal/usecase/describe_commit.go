package usecase

import (
	"context"

	"github.com/compozy/tagmyrebase/internal/repository"
)

// DescribeCommitUseCase returns one-line commit summaries, memoised for the
// lifetime of the use case. Entries are never invalidated.

type DescribeCommitUseCase struct {
	GitRepo repository.GitRepository
	cache   map[string]string
}

// NewDescribeCommitUseCase creates a describer with an empty cache.
func NewDescribeCommitUseCase(gitRepo repository.GitRepository) *DescribeCommitUseCase {
	return &DescribeCommitUseCase{GitRepo: gitRepo, cache: map[string]string{}}
}

// Execute runs the use case.
func (uc *DescribeCommitUseCase) Execute(ctx context.Context, commit string) (string, error) {
	if uc.cache == nil {
		uc.cache = map[string]string{}
	}
	if summary, ok := uc.cache[commit]; ok {
		return summary, nil
	}
	summary, err := uc.GitRepo.CommitSummary(ctx, commit)
	if err != nil {
		return "", err
	}
	uc.cache[commit] = summary
	return summary, nil
}
