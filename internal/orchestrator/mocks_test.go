package orchestrator

import (
	"context"

	"github.com/compozy/tagmyrebase/internal/domain"
	"github.com/stretchr/testify/mock"
)

// Mock for GitRepository
type mockGitRepository struct {
	mock.Mock
}

func (m *mockGitRepository) ListRefs(ctx context.Context) (*domain.RefSnapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RefSnapshot), args.Error(1)
}

func (m *mockGitRepository) CurrentBranch(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *mockGitRepository) UpstreamCommit(ctx context.Context, branch string) (string, error) {
	args := m.Called(ctx, branch)
	return args.String(0), args.Error(1)
}

func (m *mockGitRepository) CreateTag(ctx context.Context, name, commit string) error {
	args := m.Called(ctx, name, commit)
	return args.Error(0)
}

func (m *mockGitRepository) CreateTagAtHead(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *mockGitRepository) ForceBranch(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *mockGitRepository) CommitSummary(ctx context.Context, commit string) (string, error) {
	args := m.Called(ctx, commit)
	return args.String(0), args.Error(1)
}

func (m *mockGitRepository) GitDir(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
