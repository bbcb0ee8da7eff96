package models

import "time"

// User represents the user model in the database
type User struct {
	Base
	Login               string     `gorm:"uniqueIndex;not null" json:"login"`
	Email               string     `json:"email,omitempty"`
	Password            string     `gorm:"not null" json:"-"`
	TokenHash           string     `gorm:"size:64" json:"-"`
	TokenExpiresAt      *time.Time `json:"-"`
	FailedLoginAttempts int        `gorm:"default:0" json:"-"`
	LockedUntil         *time.Time `json:"-"`
	LastLoginAt         *time.Time `json:"lastLoginAt,omitempty"`
	Accounts            []Account  `gorm:"foreignKey:UserID" json:"accounts,omitempty"`
}
