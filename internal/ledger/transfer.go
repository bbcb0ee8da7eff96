package ledger

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"

	apperrors "github.com/Yns1000/haybank/internal/errors"
	"github.com/Yns1000/haybank/internal/models"
)

// TransferInput is a transfer payload before validation.
type TransferInput struct {
	DebitAccountID  *uint
	CreditAccountID *uint
	Amount          *decimal.Decimal
	Date            *string
	CounterpartyID  null.Int64
	CategoryID      null.Int64
}

// NormalizedTransfer is a transfer that passed payload validation.
type NormalizedTransfer struct {
	DebitAccountID  uint
	CreditAccountID uint
	Amount          decimal.Decimal
	Date            time.Time
	CounterpartyID  null.Int64
	CategoryID      null.Int64
}

// Apply copies the normalized values onto t.
func (n *NormalizedTransfer) Apply(t *models.Transfer) {
	t.DebitAccountID = n.DebitAccountID
	t.CreditAccountID = n.CreditAccountID
	t.Amount = n.Amount
	t.Date = n.Date
	t.CounterpartyID = n.CounterpartyID
	t.CategoryID = n.CategoryID
}

// Fields returns the persisted columns as an update map.
func (n *NormalizedTransfer) Fields() map[string]interface{} {
	return map[string]interface{}{
		"debit_account_id":  n.DebitAccountID,
		"credit_account_id": n.CreditAccountID,
		"amount":            n.Amount,
		"date":              n.Date,
		"counterparty_id":   n.CounterpartyID,
		"category_id":       n.CategoryID,
	}
}

// TransferFields returns the persisted columns of t in the same shape as
// NormalizedTransfer.Fields.
func TransferFields(t *models.Transfer) map[string]interface{} {
	return map[string]interface{}{
		"debit_account_id":  t.DebitAccountID,
		"credit_account_id": t.CreditAccountID,
		"amount":            t.Amount,
		"date":              t.Date,
		"counterparty_id":   t.CounterpartyID,
		"category_id":       t.CategoryID,
	}
}

// ValidateTransfer checks a transfer payload in a fixed order: presence,
// distinct accounts, positive amount, ISO date. Account ownership is
// checked separately against the store. Absent optional references are
// stored as null.
func ValidateTransfer(in TransferInput) (*NormalizedTransfer, error) {
	out := &NormalizedTransfer{
		CounterpartyID: positiveOrNull(in.CounterpartyID),
		CategoryID:     positiveOrNull(in.CategoryID),
	}

	err := Run(context.Background(),
		Check(func() error { return checkTransferPresence(in) }),
		Check(func() error {
			if *in.DebitAccountID == *in.CreditAccountID {
				return apperrors.ErrSameAccountConflict
			}
			return nil
		}),
		Check(func() error {
			if !in.Amount.IsPositive() {
				return apperrors.WithMessage(apperrors.ErrInvalidAmount, "amount must be greater than zero")
			}
			return checkScale(*in.Amount)
		}),
		Check(func() error {
			d, err := ParseDate(*in.Date)
			if err != nil {
				return err
			}
			out.Date = d
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}

	out.DebitAccountID = *in.DebitAccountID
	out.CreditAccountID = *in.CreditAccountID
	out.Amount = *in.Amount
	return out, nil
}

func checkTransferPresence(in TransferInput) error {
	var missing []string
	if in.DebitAccountID == nil || *in.DebitAccountID == 0 {
		missing = append(missing, "debitAccountId")
	}
	if in.CreditAccountID == nil || *in.CreditAccountID == 0 {
		missing = append(missing, "creditAccountId")
	}
	if in.Amount == nil {
		missing = append(missing, "amount")
	}
	if in.Date == nil || strings.TrimSpace(*in.Date) == "" {
		missing = append(missing, "date")
	}
	return missingFields(missing)
}

// TransferPatch is a partial transfer update. Nil fields keep their stored
// value; a non-positive optional id clears the link.
type TransferPatch struct {
	DebitAccountID  *uint
	CreditAccountID *uint
	Amount          *decimal.Decimal
	Date            *string
	CounterpartyID  *int64
	CategoryID      *int64
}

// Empty reports whether the patch carries no field at all.
func (p TransferPatch) Empty() bool {
	return p.DebitAccountID == nil && p.CreditAccountID == nil && p.Amount == nil &&
		p.Date == nil && p.CounterpartyID == nil && p.CategoryID == nil
}

// Merge overlays the patch on the stored transfer.
func (p TransferPatch) Merge(current *models.Transfer) TransferInput {
	debit := current.DebitAccountID
	credit := current.CreditAccountID
	amount := current.Amount
	date := FormatDate(current.Date)

	in := TransferInput{
		DebitAccountID:  &debit,
		CreditAccountID: &credit,
		Amount:          &amount,
		Date:            &date,
		CounterpartyID:  current.CounterpartyID,
		CategoryID:      current.CategoryID,
	}
	if p.DebitAccountID != nil {
		in.DebitAccountID = p.DebitAccountID
	}
	if p.CreditAccountID != nil {
		in.CreditAccountID = p.CreditAccountID
	}
	if p.Amount != nil {
		in.Amount = p.Amount
	}
	if p.Date != nil {
		in.Date = p.Date
	}
	if p.CounterpartyID != nil {
		in.CounterpartyID = null.NewInt64(*p.CounterpartyID, *p.CounterpartyID > 0)
	}
	if p.CategoryID != nil {
		in.CategoryID = null.NewInt64(*p.CategoryID, *p.CategoryID > 0)
	}
	return in
}
