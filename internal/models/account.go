package models

// Account represents a bank account owned by exactly one user.
type Account struct {
	Base
	UserID      uint   `gorm:"not null;index" json:"userId"`
	Description string `gorm:"not null" json:"description"`
	BankName    string `gorm:"not null" json:"bankName"`
}
