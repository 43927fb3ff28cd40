package domain

// Event kinds emitted after a unit of work commits.
const (
	EventRegisterOpened = "register.opened"
	EventRegisterClosed = "register.closed"
	EventSalePosted     = "sale.posted"
)

// Read-side aggregates that go stale when a sale is posted.
const (
	AggregateDashboardOverview   = "dashboard-overview"
	AggregateChartPaymentMethods = "chart-payment-methods"
	AggregateChartProductSales   = "chart-product-sales"
	AggregateChartDailySales     = "chart-daily-sales"
)

// SaleAffectedAggregates lists the aggregates invalidated by every posted sale.
func SaleAffectedAggregates() []string {
	return []string{
		AggregateDashboardOverview,
		AggregateChartPaymentMethods,
		AggregateChartProductSales,
		AggregateChartDailySales,
	}
}
