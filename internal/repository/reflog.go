package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/compozy/tagmyrebase/internal/domain"
	"github.com/spf13/afero"
)

// ReflogRepository reads branch reflogs straight from the git directory.
type ReflogRepository interface {
	BranchReflog(ctx context.Context, gitDir, branch string) ([]domain.ReflogEntry, error)
}

type fsReflogRepository struct {
	fs FileSystemRepository
}

// NewReflogRepository creates a ReflogRepository over fs.
func NewReflogRepository(fs FileSystemRepository) ReflogRepository {
	return &fsReflogRepository{fs: fs}
}

// BranchReflog parses <gitDir>/logs/refs/heads/<branch>, oldest entry first.
// A missing file yields no entries.
func (r *fsReflogRepository) BranchReflog(_ context.Context, gitDir, branch string) ([]domain.ReflogEntry, error) {
	path := filepath.Join(gitDir, "logs", "refs", "heads", filepath.FromSlash(branch))
	data, err := afero.ReadFile(r.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read reflog %s: %w", path, err)
	}
	entries, err := domain.ParseReflog(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse reflog %s: %w", path, err)
	}
	return entries, nil
}
