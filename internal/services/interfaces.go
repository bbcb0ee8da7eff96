package services

import (
	"context"
	"time"

	"github.com/Yns1000/haybank/internal/ledger"
	"github.com/Yns1000/haybank/internal/models"
	"github.com/Yns1000/haybank/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(ctx context.Context, login, email, password string) (*models.User, error)
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
	AttemptLogin(ctx context.Context, login, password string) (*models.User, error)
	ListUsers(ctx context.Context, page pagination.PageRequest) (*pagination.Page[models.User], error)
	DeleteUser(ctx context.Context, id uint) error
}

// Credential is an issued bearer token.
type Credential struct {
	Token     string     `json:"token"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// CredentialServicer issues, validates and revokes bearer tokens.
type CredentialServicer interface {
	Issue(ctx context.Context, user *models.User) (*Credential, error)
	Validate(ctx context.Context, token string) (uint, error)
	Revoke(ctx context.Context, userID uint) error
}

// AccountUpdate holds the optional fields of an account update.
type AccountUpdate struct {
	Description *string
	BankName    *string
}

// AccountServicer defines the contract for account-related business logic.
type AccountServicer interface {
	CreateAccount(ctx context.Context, userID uint, description, bankName string) (*models.Account, error)
	ListAccounts(ctx context.Context, userID uint, page pagination.PageRequest) (*pagination.Page[models.Account], error)
	GetAccount(ctx context.Context, userID, accountID uint) (*models.Account, error)
	UpdateAccount(ctx context.Context, userID, accountID uint, fields AccountUpdate) (*models.Account, error)
	DeleteAccount(ctx context.Context, userID, accountID uint) error
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(ctx context.Context, name string) (*models.Category, error)
	ListCategories(ctx context.Context, page pagination.PageRequest) (*pagination.Page[models.Category], error)
	GetCategory(ctx context.Context, id uint) (*models.Category, error)
	UpdateCategory(ctx context.Context, id uint, name string) (*models.Category, error)
	DeleteCategory(ctx context.Context, id uint) error
}

// SubCategoryUpdate holds the optional fields of a sub-category update.
type SubCategoryUpdate struct {
	Name       *string
	CategoryID *uint
}

// SubCategoryServicer defines the contract for sub-category business logic.
type SubCategoryServicer interface {
	CreateSubCategory(ctx context.Context, name string, categoryID uint) (*models.SubCategory, error)
	ListSubCategories(ctx context.Context, categoryID *uint, page pagination.PageRequest) (*pagination.Page[models.SubCategory], error)
	GetSubCategory(ctx context.Context, id uint) (*models.SubCategory, error)
	UpdateSubCategory(ctx context.Context, id uint, fields SubCategoryUpdate) (*models.SubCategory, error)
	DeleteSubCategory(ctx context.Context, id uint) error
}

// CounterpartyServicer defines the contract for counterparty business logic.
type CounterpartyServicer interface {
	CreateCounterparty(ctx context.Context, userID uint, name string) (*models.Counterparty, error)
	ListCounterparties(ctx context.Context, userID uint, page pagination.PageRequest) (*pagination.Page[models.Counterparty], error)
	GetCounterparty(ctx context.Context, userID, id uint) (*models.Counterparty, error)
	UpdateCounterparty(ctx context.Context, userID, id uint, name string) (*models.Counterparty, error)
	DeleteCounterparty(ctx context.Context, userID, id uint) error
}

// MovementFilter holds optional filter parameters for listing movements.
type MovementFilter struct {
	AccountID *uint
	Type      *models.MovementType
	From      *time.Time
	To        *time.Time
}

// MovementResult is a stored movement plus the advisory produced when its
// amount sign had to be corrected.
type MovementResult struct {
	Movement *models.Movement
	Advisory string
}

// MovementServicer defines the contract for movement posting and queries.
type MovementServicer interface {
	CreateMovement(ctx context.Context, userID uint, in ledger.MovementInput) (*MovementResult, error)
	ListMovements(ctx context.Context, userID uint, filter MovementFilter, page pagination.PageRequest) (*pagination.Page[models.Movement], error)
	ListAccountMovements(ctx context.Context, userID, accountID uint, filter MovementFilter, page pagination.PageRequest) (*pagination.Page[models.Movement], error)
	GetMovement(ctx context.Context, userID, id uint) (*models.Movement, error)
	UpdateMovement(ctx context.Context, userID, id uint, patch ledger.MovementPatch) (*MovementResult, error)
	DeleteMovement(ctx context.Context, userID, id uint) error
}

// TransferServicer defines the contract for transfer posting and queries.
type TransferServicer interface {
	CreateTransfer(ctx context.Context, userID uint, in ledger.TransferInput) (*models.Transfer, error)
	ListTransfers(ctx context.Context, userID uint, page pagination.PageRequest) (*pagination.Page[models.Transfer], error)
	GetTransfer(ctx context.Context, userID, id uint) (*models.Transfer, error)
	UpdateTransfer(ctx context.Context, userID, id uint, patch ledger.TransferPatch) (*models.Transfer, error)
	DeleteTransfer(ctx context.Context, userID, id uint) error
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(ctx context.Context, userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{})
}
