package unitofwork

import "context"

// RepositoryFactory hands out short-lived units of work, one per index build or query
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}
