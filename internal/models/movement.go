package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"
)

// MovementType tags a movement as a debit or a credit.
type MovementType string

const (
	MovementTypeDebit  MovementType = "D"
	MovementTypeCredit MovementType = "C"
)

// Valid reports whether t is one of the known movement types.
func (t MovementType) Valid() bool {
	return t == MovementTypeDebit || t == MovementTypeCredit
}

// Movement is a single signed ledger entry against one account.
// Debits carry a non-positive amount and credits a non-negative one.
type Movement struct {
	Base
	Date           time.Time       `gorm:"not null;index" json:"date"`
	AccountID      uint            `gorm:"not null;index" json:"accountId"`
	CounterpartyID uint            `gorm:"not null;index" json:"counterpartyId"`
	CategoryID     uint            `gorm:"not null;index" json:"categoryId"`
	SubCategoryID  null.Int64      `gorm:"index" json:"subCategoryId"`
	TransferID     null.Int64      `gorm:"index" json:"transferId"`
	Amount         decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	Type           MovementType    `gorm:"size:1;not null" json:"type"`
}
