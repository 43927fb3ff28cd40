package mapping

import (
	"strings"

	"github.com/SscSPs/cash_register_app/internal/core/domain"
	"github.com/SscSPs/cash_register_app/internal/models"
)

// ToDomainProduct converts a model Product to a domain Product
func ToDomainProduct(m models.Product) domain.Product {
	return domain.Product{
		ProductID:       m.ProductID,
		TenantID:        m.TenantKey,
		Name:            m.Name,
		Price:           domain.RoundAmount(m.Price),
		QuantityInStock: m.QuantityInStock,
		Version:         m.Version,
	}
}

// ToDomainOperator converts a model User to the operator reference stamped on sales
func ToDomainOperator(m models.User) domain.OperatorRef {
	return domain.OperatorRef{
		OperatorID: m.UserID,
		Email:      strings.ToLower(m.Email),
		Name:       m.Name,
	}
}

// ToDomainCustomer converts a model Customer to a domain CustomerRef
func ToDomainCustomer(m models.Customer) domain.CustomerRef {
	return domain.CustomerRef{
		CustomerID: m.CustomerID,
		Name:       m.Name,
	}
}
