package repository

import (
	"context"

	"github.com/compozy/tagmyrebase/internal/domain"
)

// GitRepository defines the version-control operations the marker needs.

type GitRepository interface {
	// ListRefs reads tags (peeled to commits), branch heads and HEAD.
	ListRefs(ctx context.Context) (*domain.RefSnapshot, error)
	CurrentBranch(ctx context.Context) (string, error)
	// UpstreamCommit resolves the configured upstream of branch to a commit id.
	UpstreamCommit(ctx context.Context, branch string) (string, error)
	CreateTag(ctx context.Context, name, commit string) error
	CreateTagAtHead(ctx context.Context, name string) error
	// ForceBranch creates or moves branch name to HEAD.
	ForceBranch(ctx context.Context, name string) error
	// CommitSummary returns the one-line log message of commit.
	CommitSummary(ctx context.Context, commit string) (string, error)
	// GitDir returns the common git directory (where refs and logs live).
	GitDir(ctx context.Context) (string, error)
}
