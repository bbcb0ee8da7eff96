package testutil_test

import (
	"testing"

	"github.com/Yns1000/haybank/internal/errors"
	"github.com/Yns1000/haybank/internal/models"
	"github.com/Yns1000/haybank/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)

	// Verify all tables exist by doing a simple count query on each model.
	var count int64
	for _, table := range []string{"users", "accounts", "categories", "subcategories", "counterparties", "movements", "transfers", "audit_logs"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)

	user := testutil.CreateTestUser(t, db)
	if user.ID == 0 {
		t.Fatal("user should have a non-zero ID")
	}

	account := testutil.CreateTestAccount(t, db, user.ID)
	other := testutil.CreateTestAccount(t, db, user.ID)
	if account.UserID != user.ID {
		t.Errorf("expected account of user %d, got %d", user.ID, account.UserID)
	}

	category := testutil.CreateTestCategory(t, db)
	sub := testutil.CreateTestSubCategory(t, db, category.ID)
	if sub.CategoryID != category.ID {
		t.Errorf("expected sub-category of %d, got %d", category.ID, sub.CategoryID)
	}

	cp := testutil.CreateTestCounterparty(t, db, user.ID)
	movement := testutil.CreateTestMovement(t, db, account.ID, cp.ID, category.ID, models.MovementTypeDebit, "-12.50")
	if movement.Amount.String() != "-12.5" {
		t.Errorf("expected amount -12.5, got %s", movement.Amount)
	}

	transfer := testutil.CreateTestTransfer(t, db, account.ID, other.ID, "40")
	if !transfer.Amount.IsPositive() {
		t.Errorf("expected positive transfer amount, got %s", transfer.Amount)
	}
}

func TestCountStatements(t *testing.T) {
	db := testutil.SetupTestDB(t)
	counter := testutil.CountStatements(t, db)

	user := testutil.CreateTestUser(t, db)
	db.Model(&models.User{}).Where("id = ?", user.ID).Update("email", "changed@example.com")
	db.Delete(&models.User{}, user.ID)

	if counter.Creates() != 1 || counter.Updates() != 1 || counter.Deletes() != 1 {
		t.Errorf("expected 1/1/1 writes, got %d/%d/%d", counter.Creates(), counter.Updates(), counter.Deletes())
	}
	if counter.Writes() != 3 {
		t.Errorf("expected 3 writes, got %d", counter.Writes())
	}
}

func TestAssertAppError(t *testing.T) {
	err := errors.WithMessage(errors.ErrAccountNotFound, "custom message")
	testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}
