package repositories

import "context"

// TxRepositories are repository views bound to a single unit of work.
// Everything done through them commits or rolls back together.
type TxRepositories struct {
	Registers RegisterRepositoryFacade
	Products  ProductRepositoryFacade
	Sales     SaleRepositoryFacade
}

// UnitOfWork runs fn atomically. If fn returns an error, nothing it wrote is observable.
// Implementations bound the whole unit by the store timeout and translate driver failures
// into apperrors (ConflictError, TimeoutError).
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx TxRepositories) error) error
}
