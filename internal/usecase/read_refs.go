package usecase

import (
	"context"
	"fmt"

	"github.com/compozy/tagmyrebase/internal/domain"
	"github.com/compozy/tagmyrebase/internal/repository"
)

// ReadRefsUseCase takes the ref snapshot a run works from.

type ReadRefsUseCase struct {
	GitRepo repository.GitRepository
}

// Execute runs the use case.
func (uc *ReadRefsUseCase) Execute(ctx context.Context) (*domain.RefSnapshot, error) {
	snapshot, err := uc.GitRepo.ListRefs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read refs: %w", err)
	}
	return snapshot, nil
}
