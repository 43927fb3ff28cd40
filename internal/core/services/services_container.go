package services

import (
	portsrepo "github.com/SscSPs/cash_register_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cash_register_app/internal/core/ports/services"
	"github.com/SscSPs/cash_register_app/internal/platform/config"
	"github.com/SscSPs/cash_register_app/internal/platform/metrics"
)

// SideChannels are the best-effort collaborators invoked after a unit of work commits.
type SideChannels struct {
	Cache   portssvc.CacheInvalidator
	Events  portssvc.EventPublisher
	Metrics *metrics.Metrics
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, side SideChannels) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Register = NewRegisterService(
		repos.RegisterRepo,
		repos.SaleRepo,
		repos.UnitOfWork,
		WithRegisterEventPublisher(side.Events),
		WithRegisterMetrics(side.Metrics),
	)

	container.Sale = NewSaleService(
		repos.RegisterRepo,
		repos.SaleRepo,
		repos.UnitOfWork,
		NewOperatorResolver(repos.OperatorRepo),
		NewCustomerResolver(repos.CustomerRepo),
		WithCacheInvalidator(side.Cache),
		WithSaleEventPublisher(side.Events),
		WithSaleMetrics(side.Metrics),
		WithStockRetryAttempts(cfg.StockRetryAttempts),
	)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.RegisterSvcFacade = (*registerService)(nil)
	_ portssvc.SaleSvcFacade     = (*saleService)(nil)
	_ portssvc.OperatorResolver  = (*directoryOperatorResolver)(nil)
	_ portssvc.CustomerResolver  = (*directoryCustomerResolver)(nil)
)
