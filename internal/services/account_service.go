package services

import (
	"context"
	"strings"

	apperrors "github.com/Yns1000/haybank/internal/errors"
	"github.com/Yns1000/haybank/internal/ledger"
	"github.com/Yns1000/haybank/internal/models"
	"github.com/Yns1000/haybank/internal/pagination"
	"github.com/Yns1000/haybank/internal/store"
)

// accountService handles account-related business logic.
type accountService struct {
	store    *store.Gateway
	resolver *ledger.Resolver
	checker  *ledger.Checker
}

// NewAccountService creates a new AccountServicer.
func NewAccountService(gw *store.Gateway, resolver *ledger.Resolver, checker *ledger.Checker) AccountServicer {
	return &accountService{store: gw, resolver: resolver, checker: checker}
}

// CreateAccount creates a new account for a user
func (s *accountService) CreateAccount(ctx context.Context, userID uint, description, bankName string) (*models.Account, error) {
	account := &models.Account{
		UserID:      userID,
		Description: strings.TrimSpace(description),
		BankName:    strings.TrimSpace(bankName),
	}

	err := ledger.Run(ctx,
		ledger.Check(func() error { return requireAccountFields(account) }),
		func(ctx context.Context) error {
			return s.checker.Account(ctx, userID, 0, account.Description, account.BankName)
		},
		func(ctx context.Context) error {
			_, err := s.store.Insert(ctx, account)
			return err
		},
	)
	if err != nil {
		return nil, err
	}
	return account, nil
}

func requireAccountFields(a *models.Account) error {
	var missing []string
	if a.Description == "" {
		missing = append(missing, "description")
	}
	if a.BankName == "" {
		missing = append(missing, "bankName")
	}
	if len(missing) > 0 {
		return apperrors.WithMessage(apperrors.ErrMissingFields, "Missing required fields: "+strings.Join(missing, ", "))
	}
	return nil
}

// ListAccounts retrieves the accounts of a user.
func (s *accountService) ListAccounts(ctx context.Context, userID uint, page pagination.PageRequest) (*pagination.Page[models.Account], error) {
	query := s.store.DB(ctx).Model(&models.Account{}).Where("user_id = ?", userID)
	result, err := pagination.Find[models.Account](query, page, "id")
	if err != nil {
		return nil, store.Translate(err)
	}
	return result, nil
}

// GetAccount retrieves an account owned by a specific user
func (s *accountService) GetAccount(ctx context.Context, userID, accountID uint) (*models.Account, error) {
	var account models.Account
	err := ledger.Run(ctx,
		s.resolver.Step(userID, ledger.KindAccount, accountID, ledger.Read),
		func(ctx context.Context) error {
			return s.store.First(ctx, &account, accountID, apperrors.ErrAccountNotFound)
		},
	)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// UpdateAccount applies the provided fields. Unchanged values yield
// ErrNotModified without touching the row.
func (s *accountService) UpdateAccount(ctx context.Context, userID, accountID uint, fields AccountUpdate) (*models.Account, error) {
	account, err := s.GetAccount(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}

	proposed := *account
	if fields.Description != nil {
		proposed.Description = strings.TrimSpace(*fields.Description)
	}
	if fields.BankName != nil {
		proposed.BankName = strings.TrimSpace(*fields.BankName)
	}

	var changes map[string]interface{}
	err = ledger.Run(ctx,
		ledger.Check(func() error { return requireAccountFields(&proposed) }),
		ledger.Check(func() (err error) {
			changes, err = ledger.Changes(
				map[string]interface{}{"description": account.Description, "bank_name": account.BankName},
				map[string]interface{}{"description": proposed.Description, "bank_name": proposed.BankName},
			)
			return err
		}),
		func(ctx context.Context) error {
			return s.checker.Account(ctx, userID, accountID, proposed.Description, proposed.BankName)
		},
		func(ctx context.Context) error {
			_, err := s.store.Update(ctx, &models.Account{}, accountID, changes)
			return err
		},
	)
	if err != nil {
		return nil, err
	}

	var updated models.Account
	if err := s.store.First(ctx, &updated, accountID, apperrors.ErrAccountNotFound); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteAccount removes an account that no movement or transfer references.
func (s *accountService) DeleteAccount(ctx context.Context, userID, accountID uint) error {
	return ledger.Run(ctx,
		s.resolver.Step(userID, ledger.KindAccount, accountID, ledger.Write),
		func(ctx context.Context) error {
			return refuseIfUsed(ctx, s.store, apperrors.ErrAccountInUse,
				usage{&models.Movement{}, "account_id = ?", []interface{}{accountID}},
				usage{&models.Transfer{}, "debit_account_id = ? OR credit_account_id = ?", []interface{}{accountID, accountID}},
			)
		},
		func(ctx context.Context) error {
			_, err := s.store.Delete(ctx, &models.Account{}, accountID)
			return err
		},
	)
}
