package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"
)

// Transfer moves a positive amount between two distinct accounts of the
// same user. It is stored as a single record; no movement rows are derived
// from it.
type Transfer struct {
	Base
	DebitAccountID  uint            `gorm:"not null;index" json:"debitAccountId"`
	CreditAccountID uint            `gorm:"not null;index" json:"creditAccountId"`
	Amount          decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	Date            time.Time       `gorm:"not null" json:"date"`
	CounterpartyID  null.Int64      `gorm:"index" json:"counterpartyId"`
	CategoryID      null.Int64      `gorm:"index" json:"categoryId"`
}
