package repository

import "github.com/spf13/afero"

// FileSystemRepository is the filesystem reflogs are read from.
// Production uses afero.NewOsFs(), tests an in-memory afero.NewMemMapFs().
type FileSystemRepository interface {
	afero.Fs
}
