package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Register is a row of the registers table.
type Register struct {
	RegisterID        int64               `json:"registerID" db:"register_id"`                 // Primary Key (BIGSERIAL)
	TenantKey         string              `json:"tenantKey" db:"tenant_key"`                   // Not Null
	OpenedAt          time.Time           `json:"openedAt" db:"opened_at"`                     // Not Null
	ClosedAt          *time.Time          `json:"closedAt" db:"closed_at"`                     // Nullable; set together with closing_balance
	OpeningBalance    decimal.Decimal     `json:"openingBalance" db:"opening_balance"`         // NUMERIC(19,4)
	ClosingBalance    decimal.NullDecimal `json:"closingBalance" db:"closing_balance"`         // Nullable NUMERIC(19,4)
	RunningSalesTotal decimal.Decimal     `json:"runningSalesTotal" db:"running_sales_total"` // NUMERIC(19,4)
	Status            string              `json:"status" db:"status"`                          // OPEN or CLOSED
	OpenedBy          string              `json:"openedBy" db:"opened_by"`
	ClosedBy          *string             `json:"closedBy" db:"closed_by"`
	Version           int64               `json:"version" db:"version"`
}
