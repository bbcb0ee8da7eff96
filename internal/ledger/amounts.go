package ledger

import (
	"github.com/shopspring/decimal"

	apperrors "github.com/Yns1000/haybank/internal/errors"
	"github.com/Yns1000/haybank/internal/models"
)

// Amounts are stored as numeric(14,2).
var maxAmount = decimal.New(1, 12)

func checkScale(amount decimal.Decimal) error {
	if !amount.Equal(amount.Round(2)) {
		return apperrors.WithMessage(apperrors.ErrInvalidAmount, "amount cannot have more than 2 decimal places")
	}
	if amount.Abs().GreaterThanOrEqual(maxAmount) {
		return apperrors.WithMessage(apperrors.ErrInvalidAmount, "amount is too large")
	}
	return nil
}

// NormalizeSign makes the sign of amount agree with the movement type:
// debits are negative, credits positive. It reports whether it had to flip
// the sign.
func NormalizeSign(t models.MovementType, amount decimal.Decimal) (decimal.Decimal, bool) {
	switch {
	case t == models.MovementTypeDebit && amount.IsPositive():
		return amount.Neg(), true
	case t == models.MovementTypeCredit && amount.IsNegative():
		return amount.Neg(), true
	}
	return amount, false
}
