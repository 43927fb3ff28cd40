package domain

import (
	"github.com/SscSPs/cash_register_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// AmountScale is the number of fractional digits kept for every monetary amount (NUMERIC(19,4)).
const AmountScale int32 = 4

// MaxAmount is the exclusive upper bound of a stored amount: NUMERIC(19,4) leaves 15 integer digits.
var MaxAmount = decimal.New(1, 15)

// RoundAmount normalizes a monetary amount to AmountScale.
func RoundAmount(d decimal.Decimal) decimal.Decimal {
	return d.Round(AmountScale)
}

// CheckAmount rejects negative amounts and amounts the store cannot hold.
func CheckAmount(field string, d decimal.Decimal) error {
	if d.IsNegative() {
		return apperrors.NewValidationFailedError("%s must not be negative", field)
	}
	if RoundAmount(d).GreaterThanOrEqual(MaxAmount) {
		return apperrors.NewValidationFailedError("%s must be less than %s", field, MaxAmount.String())
	}
	return nil
}
