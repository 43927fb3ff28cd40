package pgsql

import (
	"time"

	portsrepo "github.com/SscSPs/cash_register_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every repository onto the pool. timeout bounds each statement
// outside a unit of work and each unit of work as a whole.
func NewRepositoryProvider(dbPool *pgxpool.Pool, timeout time.Duration) portsrepo.RepositoryProvider {
	base := BaseRepository{Pool: dbPool, Timeout: timeout}
	directory := newPgxDirectoryRepository(base)

	return portsrepo.RepositoryProvider{
		RegisterRepo: newPgxRegisterRepository(base),
		ProductRepo:  newPgxProductRepository(base),
		SaleRepo:     newPgxSaleRepository(base),
		OperatorRepo: directory,
		CustomerRepo: directory,
		UnitOfWork:   newPgxUnitOfWork(base),
	}
}
