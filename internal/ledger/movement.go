package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"

	apperrors "github.com/Yns1000/haybank/internal/errors"
	"github.com/Yns1000/haybank/internal/models"
)

// MovementInput is a movement payload before validation. Required fields
// are pointers so that an absent field can be told apart from a zero value.
type MovementInput struct {
	Date           *string
	AccountID      *uint
	CounterpartyID *uint
	CategoryID     *uint
	SubCategoryID  null.Int64
	TransferID     null.Int64
	Amount         *decimal.Decimal
	Type           *string
}

// NormalizedMovement is a movement that passed payload validation, with its
// amount sign aligned on its type.
type NormalizedMovement struct {
	Date           time.Time
	AccountID      uint
	CounterpartyID uint
	CategoryID     uint
	SubCategoryID  null.Int64
	TransferID     null.Int64
	Amount         decimal.Decimal
	Type           models.MovementType

	// SignCorrected is set when the submitted amount had the wrong sign.
	SignCorrected bool
	Advisory      string
}

// Apply copies the normalized values onto m.
func (n *NormalizedMovement) Apply(m *models.Movement) {
	m.Date = n.Date
	m.AccountID = n.AccountID
	m.CounterpartyID = n.CounterpartyID
	m.CategoryID = n.CategoryID
	m.SubCategoryID = n.SubCategoryID
	m.TransferID = n.TransferID
	m.Amount = n.Amount
	m.Type = n.Type
}

// Fields returns the persisted columns as an update map.
func (n *NormalizedMovement) Fields() map[string]interface{} {
	return map[string]interface{}{
		"date":            n.Date,
		"account_id":      n.AccountID,
		"counterparty_id": n.CounterpartyID,
		"category_id":     n.CategoryID,
		"sub_category_id": n.SubCategoryID,
		"transfer_id":     n.TransferID,
		"amount":          n.Amount,
		"type":            n.Type,
	}
}

// MovementFields returns the persisted columns of m in the same shape as
// NormalizedMovement.Fields.
func MovementFields(m *models.Movement) map[string]interface{} {
	return map[string]interface{}{
		"date":            m.Date,
		"account_id":      m.AccountID,
		"counterparty_id": m.CounterpartyID,
		"category_id":     m.CategoryID,
		"sub_category_id": m.SubCategoryID,
		"transfer_id":     m.TransferID,
		"amount":          m.Amount,
		"type":            m.Type,
	}
}

// ValidateMovement checks a movement payload. Checks run in a fixed order
// and the first failure wins: presence, type, amount, date.
func ValidateMovement(in MovementInput) (*NormalizedMovement, error) {
	out := &NormalizedMovement{
		SubCategoryID: positiveOrNull(in.SubCategoryID),
		TransferID:    positiveOrNull(in.TransferID),
	}

	err := Run(context.Background(),
		Check(func() error { return checkMovementPresence(in) }),
		Check(func() error {
			t := models.MovementType(*in.Type)
			if !t.Valid() {
				return apperrors.ErrInvalidType
			}
			out.Type = t
			return nil
		}),
		Check(func() error {
			if in.Amount.IsZero() {
				return apperrors.WithMessage(apperrors.ErrInvalidAmount, "amount must be non-zero")
			}
			return checkScale(*in.Amount)
		}),
		Check(func() error {
			d, err := ParseFlexibleDate(*in.Date)
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

	out.AccountID = *in.AccountID
	out.CounterpartyID = *in.CounterpartyID
	out.CategoryID = *in.CategoryID
	out.Amount, out.SignCorrected = NormalizeSign(out.Type, *in.Amount)
	if out.SignCorrected {
		out.Advisory = fmt.Sprintf("Amount sign corrected to %s to match the %s type",
			out.Amount.StringFixed(2), typeLabel(out.Type))
	}
	return out, nil
}

func checkMovementPresence(in MovementInput) error {
	var missing []string
	if in.Date == nil || strings.TrimSpace(*in.Date) == "" {
		missing = append(missing, "date")
	}
	if in.AccountID == nil || *in.AccountID == 0 {
		missing = append(missing, "accountId")
	}
	if in.CounterpartyID == nil || *in.CounterpartyID == 0 {
		missing = append(missing, "counterpartyId")
	}
	if in.CategoryID == nil || *in.CategoryID == 0 {
		missing = append(missing, "categoryId")
	}
	if in.Amount == nil {
		missing = append(missing, "amount")
	}
	if in.Type == nil || strings.TrimSpace(*in.Type) == "" {
		missing = append(missing, "type")
	}
	return missingFields(missing)
}

func missingFields(missing []string) error {
	if len(missing) == 0 {
		return nil
	}
	return apperrors.WithMessage(apperrors.ErrMissingFields,
		"Missing required fields: "+strings.Join(missing, ", "))
}

func typeLabel(t models.MovementType) string {
	if t == models.MovementTypeDebit {
		return "debit"
	}
	return "credit"
}

func positiveOrNull(v null.Int64) null.Int64 {
	if !v.Valid || v.Int64 <= 0 {
		return null.Int64{}
	}
	return v
}

// MovementPatch is a partial movement update. Nil fields keep their stored
// value. For the optional references a non-positive id clears the link.
type MovementPatch struct {
	Date           *string
	AccountID      *uint
	CounterpartyID *uint
	CategoryID     *uint
	SubCategoryID  *int64
	TransferID     *int64
	Amount         *decimal.Decimal
	Type           *string
}

// Empty reports whether the patch carries no field at all.
func (p MovementPatch) Empty() bool {
	return p.Date == nil && p.AccountID == nil && p.CounterpartyID == nil &&
		p.CategoryID == nil && p.SubCategoryID == nil && p.TransferID == nil &&
		p.Amount == nil && p.Type == nil
}

// Merge overlays the patch on the stored movement and returns a full input
// ready for ValidateMovement.
func (p MovementPatch) Merge(current *models.Movement) MovementInput {
	date := FormatDate(current.Date)
	accountID := current.AccountID
	counterpartyID := current.CounterpartyID
	categoryID := current.CategoryID
	amount := current.Amount
	typ := string(current.Type)

	in := MovementInput{
		Date:           &date,
		AccountID:      &accountID,
		CounterpartyID: &counterpartyID,
		CategoryID:     &categoryID,
		SubCategoryID:  current.SubCategoryID,
		TransferID:     current.TransferID,
		Amount:         &amount,
		Type:           &typ,
	}

	if p.Date != nil {
		in.Date = p.Date
	}
	if p.AccountID != nil {
		in.AccountID = p.AccountID
	}
	if p.CounterpartyID != nil {
		in.CounterpartyID = p.CounterpartyID
	}
	if p.CategoryID != nil {
		in.CategoryID = p.CategoryID
		// A new category invalidates the old sub-category unless one is given.
		if *p.CategoryID != current.CategoryID && p.SubCategoryID == nil {
			in.SubCategoryID = null.Int64{}
		}
	}
	if p.SubCategoryID != nil {
		in.SubCategoryID = null.NewInt64(*p.SubCategoryID, *p.SubCategoryID > 0)
	}
	if p.TransferID != nil {
		in.TransferID = null.NewInt64(*p.TransferID, *p.TransferID > 0)
	}
	if p.Amount != nil {
		in.Amount = p.Amount
	}
	if p.Type != nil {
		in.Type = p.Type
	}
	return in
}
