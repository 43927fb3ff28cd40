package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/cash_register_app/internal/apperrors"
	"github.com/SscSPs/cash_register_app/internal/core/domain"
	portsrepo "github.com/SscSPs/cash_register_app/internal/core/ports/repositories"
	"github.com/SscSPs/cash_register_app/internal/models"
	"github.com/SscSPs/cash_register_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type PgxSaleRepository struct {
	BaseRepository
}

// newPgxSaleRepository creates a new repository for sales and their line items.
func newPgxSaleRepository(base BaseRepository) *PgxSaleRepository {
	return &PgxSaleRepository{BaseRepository: base}
}

var _ portsrepo.SaleRepositoryFacade = (*PgxSaleRepository)(nil)

const saleSelectQuery = `
SELECT
	s.sale_id, s.tenant_key, s.register_id, s.operator_id, s.operator_email, s.customer_id,
	s.gross_total, s.discount, s.final_amount, s.payment_method, s.note, s.sold_at
FROM sales s
`

const saleItemSelectQuery = `
SELECT
	i.sale_item_id, i.sale_id, i.product_id, i.product_name, i.quantity, i.unit_price, i.subtotal
FROM sale_items i
WHERE i.sale_id = ANY($1)
ORDER BY i.sale_id, i.sale_item_id;
`

// InsertSale writes the sale header and its line items in one transaction.
func (r *PgxSaleRepository) InsertSale(ctx context.Context, sale *domain.Sale) error {
	return r.inTx(ctx, func(ctx context.Context, db dbtx) error {
		m := mapping.ToModelSale(*sale)
		saleQuery := `
			INSERT INTO sales (
				tenant_key, register_id, operator_id, operator_email, customer_id,
				gross_total, discount, final_amount, payment_method, note, sold_at
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			RETURNING sale_id;
		`
		var saleID int64
		err := db.QueryRow(ctx, saleQuery,
			m.TenantKey,
			m.RegisterID,
			m.OperatorID,
			m.OperatorEmail,
			m.CustomerID,
			m.GrossTotal,
			m.Discount,
			m.FinalAmount,
			m.PaymentMethod,
			m.Note,
			m.SoldAt,
		).Scan(&saleID)
		if err != nil {
			return translateError(err, "insert sale")
		}

		itemQuery := `
			INSERT INTO sale_items (sale_id, product_id, product_name, quantity, unit_price, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING sale_item_id;
		`
		batch := &pgx.Batch{}
		for _, item := range sale.Items {
			mi := mapping.ToModelSaleItem(item)
			batch.Queue(itemQuery, saleID, mi.ProductID, mi.ProductName, mi.Quantity, mi.UnitPrice, mi.Subtotal)
		}

		// Close the batch results to check for errors in each command
		br := db.SendBatch(ctx, batch)
		itemIDs := make([]int64, len(sale.Items))
		for i := range sale.Items {
			if err := br.QueryRow().Scan(&itemIDs[i]); err != nil {
				br.Close()
				return translateError(err, "insert sale item")
			}
		}
		if err := br.Close(); err != nil {
			return translateError(err, "insert sale items")
		}

		sale.SaleID = saleID
		for i := range sale.Items {
			sale.Items[i].SaleID = saleID
			sale.Items[i].SaleItemID = itemIDs[i]
		}
		return nil
	})
}

// FindSaleByID retrieves a sale with its line items.
func (r *PgxSaleRepository) FindSaleByID(ctx context.Context, tenantID string, saleID int64) (*domain.Sale, error) {
	sales, err := r.getSales(ctx, "WHERE s.sale_id = $1 AND s.tenant_key = $2", saleID, tenantID)
	if err != nil {
		return nil, err
	}
	if len(sales) == 0 {
		return nil, apperrors.NewNotFoundError("sale", saleID)
	}
	return &sales[0], nil
}

// ListSalesByRegister retrieves a page of a register's sales in sale id order.
func (r *PgxSaleRepository) ListSalesByRegister(ctx context.Context, tenantID string, registerID int64, afterSaleID int64, limit int) ([]domain.Sale, error) {
	filter := "WHERE s.register_id = $1 AND s.tenant_key = $2 AND s.sale_id > $3 ORDER BY s.sale_id"
	if limit > 0 {
		return r.getSales(ctx, filter+" LIMIT $4", registerID, tenantID, afterSaleID, limit)
	}
	return r.getSales(ctx, filter, registerID, tenantID, afterSaleID)
}

// SumFinalAmountByRegister recomputes a register's running total from its sales.
func (r *PgxSaleRepository) SumFinalAmountByRegister(ctx context.Context, tenantID string, registerID int64) (decimal.Decimal, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
		SELECT COALESCE(SUM(final_amount), 0)
		FROM sales
		WHERE register_id = $1 AND tenant_key = $2;
	`
	var total decimal.Decimal
	if err := r.db().QueryRow(ctx, query, registerID, tenantID).Scan(&total); err != nil {
		return decimal.Zero, translateError(err, "sum sales")
	}
	return domain.RoundAmount(total), nil
}

// getSales loads the sale headers matching filterQuery and attaches their items with a second query.
func (r *PgxSaleRepository) getSales(ctx context.Context, filterQuery string, args ...any) ([]domain.Sale, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db().Query(ctx, saleSelectQuery+filterQuery, args...)
	if err != nil {
		return nil, translateError(err, "query sales")
	}
	modelSales, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Sale])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Sale{}, nil
		}
		return nil, translateError(err, "scan sales")
	}
	if len(modelSales) == 0 {
		return []domain.Sale{}, nil
	}

	saleIDs := make([]int64, len(modelSales))
	for i, s := range modelSales {
		saleIDs[i] = s.SaleID
	}
	itemRows, err := r.db().Query(ctx, saleItemSelectQuery, saleIDs)
	if err != nil {
		return nil, translateError(err, "query sale items")
	}
	modelItems, err := pgx.CollectRows(itemRows, pgx.RowToStructByName[models.SaleItem])
	if err != nil {
		return nil, translateError(err, "scan sale items")
	}

	itemsBySale := make(map[int64][]models.SaleItem, len(modelSales))
	for _, item := range modelItems {
		itemsBySale[item.SaleID] = append(itemsBySale[item.SaleID], item)
	}

	sales := make([]domain.Sale, len(modelSales))
	for i, s := range modelSales {
		sales[i] = mapping.ToDomainSale(s, itemsBySale[s.SaleID])
	}
	return sales, nil
}
