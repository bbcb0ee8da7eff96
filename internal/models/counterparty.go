package models

// Counterparty ("tiers") is the payee or payer of a movement.
type Counterparty struct {
	Base
	UserID uint   `gorm:"not null;index" json:"userId"`
	Name   string `gorm:"not null" json:"name"`
}
