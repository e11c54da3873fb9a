package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/compozy/tagmyrebase/internal/domain"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReflogRepository_BranchReflog(t *testing.T) {
	gitDir := filepath.Join("/repo", ".git")
	t.Run("Should parse the branch reflog file", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		content := "abc123 def456 Name <a@b.com> 1700000000 +0000\trebase finished: refs/heads/main onto def456\n"
		require.NoError(t, afero.WriteFile(fs, filepath.Join(gitDir, "logs", "refs", "heads", "main"), []byte(content), 0644))
		entries, err := NewReflogRepository(fs).BranchReflog(context.Background(), gitDir, "main")
		require.NoError(t, err)
		require.Len(t, entries, 1)
		onto, ok := domain.LastRebaseOnto(entries, "main")
		require.True(t, ok)
		assert.Equal(t, "def456", onto)
	})
	t.Run("Should read nested branch names", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		content := "abc123 def456 Name <a@b.com> 1700000000 +0000\tbranch: Created from HEAD\n"
		require.NoError(t, afero.WriteFile(fs, filepath.Join(gitDir, "logs", "refs", "heads", "feature", "x"), []byte(content), 0644))
		entries, err := NewReflogRepository(fs).BranchReflog(context.Background(), gitDir, "feature/x")
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})
	t.Run("Should return no entries when the reflog does not exist", func(t *testing.T) {
		entries, err := NewReflogRepository(afero.NewMemMapFs()).BranchReflog(context.Background(), gitDir, "main")
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
	t.Run("Should fail on a corrupt reflog", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, filepath.Join(gitDir, "logs", "refs", "heads", "main"), []byte("not a reflog\n"), 0644))
		_, err := NewReflogRepository(fs).BranchReflog(context.Background(), gitDir, "main")
		assert.ErrorIs(t, err, domain.ErrCorruptReflog)
	})
}
