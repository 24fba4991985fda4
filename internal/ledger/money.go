package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	apperrors "khata/internal/errors"
)

// MoneyScale is the number of decimal places every stored amount carries.
const MoneyScale = 2

// CheckScale rejects amounts with more decimal places than the money columns
// hold. Rounding them in storage would break paid + remaining == total.
func CheckScale(field string, d decimal.Decimal) error {
	if d.Exponent() >= -MoneyScale {
		return nil
	}
	if d.Equal(d.Truncate(MoneyScale)) {
		return nil
	}
	return apperrors.WithMessage(apperrors.ErrInvalidInput,
		fmt.Sprintf("%s must have at most %d decimal places, got %s", field, MoneyScale, d.String()))
}
