// Package models declares the GORM models backing the relational store.
package models

// All lists every model, in dependency order, for auto-migration.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Account{},
		&Category{},
		&SubCategory{},
		&Counterparty{},
		&Transfer{},
		&Movement{},
		&AuditLog{},
	}
}
