package pgsql

import (
	"context"

	portsrepo "github.com/SscSPs/cash_register_app/internal/core/ports/repositories"
)

// PgxUnitOfWork runs a function inside one READ COMMITTED transaction bounded by the store timeout.
// Register rows are serialized with SELECT ... FOR UPDATE and stock with conditional updates,
// so the default isolation level is enough.
type PgxUnitOfWork struct {
	BaseRepository
}

func newPgxUnitOfWork(base BaseRepository) *PgxUnitOfWork {
	return &PgxUnitOfWork{BaseRepository: base}
}

var _ portsrepo.UnitOfWork = (*PgxUnitOfWork)(nil)

func (u *PgxUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.TxRepositories) error) error {
	ctx, cancel := u.withTimeout(ctx)
	defer cancel()

	tx, err := u.Begin(ctx)
	if err != nil {
		return err
	}
	// Ignored once committed
	defer u.Rollback(context.Background(), tx)

	bound := u.bindTx(tx)
	repos := portsrepo.TxRepositories{
		Registers: newPgxRegisterRepository(bound),
		Products:  newPgxProductRepository(bound),
		Sales:     newPgxSaleRepository(bound),
	}
	if err := fn(ctx, repos); err != nil {
		return translateError(err, "run unit of work")
	}
	return u.Commit(ctx, tx)
}
