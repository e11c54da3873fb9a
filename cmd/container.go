package cmd

import (
	"fmt"
	"io"

	"github.com/compozy/tagmyrebase/internal/config"
	"github.com/compozy/tagmyrebase/internal/logger"
	"github.com/compozy/tagmyrebase/internal/orchestrator"
	"github.com/compozy/tagmyrebase/internal/repository"
	"github.com/compozy/tagmyrebase/internal/usecase"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// container holds all the dependencies for one invocation.
type container struct {
	cfg    *config.Config
	logger *zap.Logger

	fsRepo     repository.FileSystemRepository
	gitRepo    repository.GitRepository
	reflogRepo repository.ReflogRepository
}

// newContainer creates a new container with all the dependencies.
func newContainer(cfg *config.Config, stderr io.Writer) (*container, error) {
	log, err := logger.New(logger.Options{Verbose: cfg.Verbose, Output: stderr})
	if err != nil {
		return nil, err
	}
	gitRepo, err := newGitRepository(cfg, log)
	if err != nil {
		return nil, err
	}
	fsRepo := repository.FileSystemRepository(afero.NewOsFs())
	log.Debug("container ready", zap.String("backend", cfg.Backend), zap.String("repo_dir", cfg.RepoDir))
	return &container{
		cfg:        cfg,
		logger:     log,
		fsRepo:     fsRepo,
		gitRepo:    gitRepo,
		reflogRepo: repository.NewReflogRepository(fsRepo),
	}, nil
}

func newGitRepository(cfg *config.Config, log *zap.Logger) (repository.GitRepository, error) {
	switch cfg.Backend {
	case config.BackendNative:
		return repository.NewNativeGitRepository(cfg.RepoDir)
	case config.BackendCLI:
		return repository.NewCLIGitRepository(repository.CLIOptions{
			Dir:     cfg.RepoDir,
			Binary:  cfg.GitBinary,
			Timeout: cfg.CommandTimeout,
			Logger:  log,
		})
	default:
		return nil, fmt.Errorf("unsupported backend %q", cfg.Backend)
	}
}

func (c *container) markOrchestrator() *orchestrator.MarkOrchestrator {
	return orchestrator.NewMarkOrchestrator(c.gitRepo, c.logger)
}

func (c *container) lastRebaseOnto() *usecase.LastRebaseOntoUseCase {
	return &usecase.LastRebaseOntoUseCase{GitRepo: c.gitRepo, ReflogRepo: c.reflogRepo}
}
