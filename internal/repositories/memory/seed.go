package memory

import (
	"github.com/SscSPs/cash_register_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SeedDemo loads a small catalogue, one operator and one customer so the memory driver is usable out of the box.
func SeedDemo(s *Store, tenantID string) {
	for _, p := range []struct {
		name  string
		price string
		stock int64
	}{
		{"Espresso", "3.50", 100},
		{"Croissant", "2.75", 40},
		{"Orange Juice", "4.20", 25},
		{"Sparkling Water", "1.90", 60},
	} {
		s.SeedProduct(domain.Product{
			TenantID:        tenantID,
			Name:            p.name,
			Price:           decimal.RequireFromString(p.price),
			QuantityInStock: p.stock,
			Version:         1,
		})
	}
	s.SeedOperator(domain.OperatorRef{OperatorID: 1, Email: "operator@example.com", Name: "Demo Operator"})
	s.SeedCustomer(tenantID, domain.CustomerRef{CustomerID: 1, Name: "Walk-in Customer"})
}
