package ledger

import (
	"fmt"

	"debt_ledger/internal/domain"

	"github.com/shopspring/decimal"
)

// maxAmount is the first value a decimal(15,2) column cannot hold.
var maxAmount = decimal.New(1, 13)

// checkAmount rejects values the amount columns cannot store exactly.
func checkAmount(d decimal.Decimal) error {
	if !d.Equal(d.Round(2)) {
		return fmt.Errorf("%w: amount must have at most 2 decimal places", domain.ErrValidation)
	}
	if d.Abs().GreaterThanOrEqual(maxAmount) {
		return fmt.Errorf("%w: amount must be below %s", domain.ErrValidation, maxAmount.String())
	}
	return nil
}
