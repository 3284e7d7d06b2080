package unitofwork

import (
	"context"

	"university-assistant-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ChunkRepository() contract.ChunkRepository
	IndexGenerationRepository() contract.IndexGenerationRepository
}
