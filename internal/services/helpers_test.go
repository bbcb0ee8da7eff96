package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Yns1000/haybank/internal/ledger"
	"github.com/Yns1000/haybank/internal/store"
	"github.com/Yns1000/haybank/internal/testutil"
)

type testDeps struct {
	db       *gorm.DB
	store    *store.Gateway
	resolver *ledger.Resolver
	checker  *ledger.Checker
}

func setup(t *testing.T) testDeps {
	t.Helper()
	db := testutil.SetupTestDB(t)
	gw := store.New(db)
	return testDeps{
		db:       db,
		store:    gw,
		resolver: ledger.NewResolver(gw),
		checker:  ledger.NewChecker(gw, ledger.AccountByDescriptionAndBank, ledger.SubCategoryGlobal),
	}
}

func strPtr(s string) *string { return &s }
func uintPtr(v uint) *uint    { return &v }
func int64Ptr(v int64) *int64 { return &v }
func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}
