package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Yns1000/haybank/internal/models"
)

// TestPassword is the clear-text password of every fixture user.
const TestPassword = "password123"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique login.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateTestUserWithLogin(t, db, fmt.Sprintf("user%d", nextID()))
}

// CreateTestUserWithLogin creates a user with the given login.
func CreateTestUserWithLogin(t *testing.T, db *gorm.DB, login string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Login:    login,
		Email:    login + "@test.com",
		Password: string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestAccount creates an account with a unique description.
func CreateTestAccount(t *testing.T, db *gorm.DB, userID uint) *models.Account {
	t.Helper()

	account := &models.Account{
		UserID:      userID,
		Description: fmt.Sprintf("Test Account %d", nextID()),
		BankName:    "Test Bank",
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

// CreateTestCategory creates a category with a unique name.
func CreateTestCategory(t *testing.T, db *gorm.DB) *models.Category {
	t.Helper()

	category := &models.Category{Name: fmt.Sprintf("Test Category %d", nextID())}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestSubCategory creates a sub-category under categoryID.
func CreateTestSubCategory(t *testing.T, db *gorm.DB, categoryID uint) *models.SubCategory {
	t.Helper()

	sub := &models.SubCategory{Name: fmt.Sprintf("Test SubCategory %d", nextID()), CategoryID: categoryID}
	if err := db.Create(sub).Error; err != nil {
		t.Fatalf("failed to create test sub-category: %v", err)
	}
	return sub
}

// CreateTestCounterparty creates a counterparty owned by userID.
func CreateTestCounterparty(t *testing.T, db *gorm.DB, userID uint) *models.Counterparty {
	t.Helper()

	cp := &models.Counterparty{UserID: userID, Name: fmt.Sprintf("Test Counterparty %d", nextID())}
	if err := db.Create(cp).Error; err != nil {
		t.Fatalf("failed to create test counterparty: %v", err)
	}
	return cp
}

// CreateTestMovement creates a movement; amount must already carry the
// sign matching movementType.
func CreateTestMovement(t *testing.T, db *gorm.DB, accountID, counterpartyID, categoryID uint, movementType models.MovementType, amount string) *models.Movement {
	t.Helper()

	movement := &models.Movement{
		Date:           time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		AccountID:      accountID,
		CounterpartyID: counterpartyID,
		CategoryID:     categoryID,
		Amount:         decimal.RequireFromString(amount),
		Type:           movementType,
	}
	if err := db.Create(movement).Error; err != nil {
		t.Fatalf("failed to create test movement: %v", err)
	}
	return movement
}

// CreateTestTransfer creates a transfer between two accounts.
func CreateTestTransfer(t *testing.T, db *gorm.DB, debitAccountID, creditAccountID uint, amount string) *models.Transfer {
	t.Helper()

	transfer := &models.Transfer{
		DebitAccountID:  debitAccountID,
		CreditAccountID: creditAccountID,
		Amount:          decimal.RequireFromString(amount),
		Date:            time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := db.Create(transfer).Error; err != nil {
		t.Fatalf("failed to create test transfer: %v", err)
	}
	return transfer
}
