package handlers

import (
	"context"

	"github.com/Yns1000/haybank/internal/ledger"
	"github.com/Yns1000/haybank/internal/models"
	"github.com/Yns1000/haybank/internal/pagination"
	"github.com/Yns1000/haybank/internal/services"
)

// --- mock services ---

type mockUserService struct {
	createUserFn   func(login, email, password string) (*models.User, error)
	getUserByIDFn  func(id uint) (*models.User, error)
	attemptLoginFn func(login, password string) (*models.User, error)
	listUsersFn    func(page pagination.PageRequest) (*pagination.Page[models.User], error)
	deleteUserFn   func(id uint) error
}

func (m *mockUserService) CreateUser(_ context.Context, login, email, password string) (*models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(login, email, password)
	}
	return &models.User{}, nil
}

func (m *mockUserService) GetUserByID(_ context.Context, id uint) (*models.User, error) {
	if m.getUserByIDFn != nil {
		return m.getUserByIDFn(id)
	}
	return &models.User{}, nil
}

func (m *mockUserService) GetUserByLogin(_ context.Context, _ string) (*models.User, error) {
	return &models.User{}, nil
}

func (m *mockUserService) AttemptLogin(_ context.Context, login, password string) (*models.User, error) {
	if m.attemptLoginFn != nil {
		return m.attemptLoginFn(login, password)
	}
	return &models.User{}, nil
}

func (m *mockUserService) ListUsers(_ context.Context, page pagination.PageRequest) (*pagination.Page[models.User], error) {
	if m.listUsersFn != nil {
		return m.listUsersFn(page)
	}
	return &pagination.Page[models.User]{}, nil
}

func (m *mockUserService) DeleteUser(_ context.Context, id uint) error {
	if m.deleteUserFn != nil {
		return m.deleteUserFn(id)
	}
	return nil
}

type mockCredentialService struct {
	issueFn  func(user *models.User) (*services.Credential, error)
	revokeFn func(userID uint) error
}

func (m *mockCredentialService) Issue(_ context.Context, user *models.User) (*services.Credential, error) {
	if m.issueFn != nil {
		return m.issueFn(user)
	}
	return &services.Credential{Token: "token-for-test"}, nil
}

func (m *mockCredentialService) Validate(_ context.Context, _ string) (uint, error) {
	return 1, nil
}

func (m *mockCredentialService) Revoke(_ context.Context, userID uint) error {
	if m.revokeFn != nil {
		return m.revokeFn(userID)
	}
	return nil
}

type mockAuditService struct {
	actions []string
}

func (m *mockAuditService) Log(_ context.Context, _ uint, action, _ string, _ uint, _ string, _ map[string]interface{}) {
	m.actions = append(m.actions, action)
}

type mockAccountService struct {
	createFn func(userID uint, description, bankName string) (*models.Account, error)
	listFn   func(userID uint, page pagination.PageRequest) (*pagination.Page[models.Account], error)
	getFn    func(userID, id uint) (*models.Account, error)
	updateFn func(userID, id uint, fields services.AccountUpdate) (*models.Account, error)
	deleteFn func(userID, id uint) error
}

func (m *mockAccountService) CreateAccount(_ context.Context, userID uint, description, bankName string) (*models.Account, error) {
	if m.createFn != nil {
		return m.createFn(userID, description, bankName)
	}
	return &models.Account{}, nil
}

func (m *mockAccountService) ListAccounts(_ context.Context, userID uint, page pagination.PageRequest) (*pagination.Page[models.Account], error) {
	if m.listFn != nil {
		return m.listFn(userID, page)
	}
	return &pagination.Page[models.Account]{}, nil
}

func (m *mockAccountService) GetAccount(_ context.Context, userID, id uint) (*models.Account, error) {
	if m.getFn != nil {
		return m.getFn(userID, id)
	}
	return &models.Account{}, nil
}

func (m *mockAccountService) UpdateAccount(_ context.Context, userID, id uint, fields services.AccountUpdate) (*models.Account, error) {
	if m.updateFn != nil {
		return m.updateFn(userID, id, fields)
	}
	return &models.Account{}, nil
}

func (m *mockAccountService) DeleteAccount(_ context.Context, userID, id uint) error {
	if m.deleteFn != nil {
		return m.deleteFn(userID, id)
	}
	return nil
}

type mockCategoryService struct {
	createFn func(name string) (*models.Category, error)
	listFn   func(page pagination.PageRequest) (*pagination.Page[models.Category], error)
	updateFn func(id uint, name string) (*models.Category, error)
	deleteFn func(id uint) error
}

func (m *mockCategoryService) CreateCategory(_ context.Context, name string) (*models.Category, error) {
	if m.createFn != nil {
		return m.createFn(name)
	}
	return &models.Category{}, nil
}

func (m *mockCategoryService) ListCategories(_ context.Context, page pagination.PageRequest) (*pagination.Page[models.Category], error) {
	if m.listFn != nil {
		return m.listFn(page)
	}
	return &pagination.Page[models.Category]{}, nil
}

func (m *mockCategoryService) GetCategory(_ context.Context, id uint) (*models.Category, error) {
	return &models.Category{Base: models.Base{ID: id}}, nil
}

func (m *mockCategoryService) UpdateCategory(_ context.Context, id uint, name string) (*models.Category, error) {
	if m.updateFn != nil {
		return m.updateFn(id, name)
	}
	return &models.Category{}, nil
}

func (m *mockCategoryService) DeleteCategory(_ context.Context, id uint) error {
	if m.deleteFn != nil {
		return m.deleteFn(id)
	}
	return nil
}

type mockMovementService struct {
	createFn      func(userID uint, in ledger.MovementInput) (*services.MovementResult, error)
	listFn        func(userID uint, filter services.MovementFilter) (*pagination.Page[models.Movement], error)
	listAccountFn func(userID, accountID uint, filter services.MovementFilter) (*pagination.Page[models.Movement], error)
	getFn         func(userID, id uint) (*models.Movement, error)
	updateFn      func(userID, id uint, patch ledger.MovementPatch) (*services.MovementResult, error)
	deleteFn      func(userID, id uint) error
}

func (m *mockMovementService) CreateMovement(_ context.Context, userID uint, in ledger.MovementInput) (*services.MovementResult, error) {
	if m.createFn != nil {
		return m.createFn(userID, in)
	}
	return &services.MovementResult{Movement: &models.Movement{}}, nil
}

func (m *mockMovementService) ListMovements(_ context.Context, userID uint, filter services.MovementFilter, _ pagination.PageRequest) (*pagination.Page[models.Movement], error) {
	if m.listFn != nil {
		return m.listFn(userID, filter)
	}
	return &pagination.Page[models.Movement]{}, nil
}

func (m *mockMovementService) ListAccountMovements(_ context.Context, userID, accountID uint, filter services.MovementFilter, _ pagination.PageRequest) (*pagination.Page[models.Movement], error) {
	if m.listAccountFn != nil {
		return m.listAccountFn(userID, accountID, filter)
	}
	return &pagination.Page[models.Movement]{}, nil
}

func (m *mockMovementService) GetMovement(_ context.Context, userID, id uint) (*models.Movement, error) {
	if m.getFn != nil {
		return m.getFn(userID, id)
	}
	return &models.Movement{}, nil
}

func (m *mockMovementService) UpdateMovement(_ context.Context, userID, id uint, patch ledger.MovementPatch) (*services.MovementResult, error) {
	if m.updateFn != nil {
		return m.updateFn(userID, id, patch)
	}
	return &services.MovementResult{Movement: &models.Movement{}}, nil
}

func (m *mockMovementService) DeleteMovement(_ context.Context, userID, id uint) error {
	if m.deleteFn != nil {
		return m.deleteFn(userID, id)
	}
	return nil
}

type mockTransferService struct {
	createFn func(userID uint, in ledger.TransferInput) (*models.Transfer, error)
	listFn   func(userID uint) (*pagination.Page[models.Transfer], error)
	getFn    func(userID, id uint) (*models.Transfer, error)
	updateFn func(userID, id uint, patch ledger.TransferPatch) (*models.Transfer, error)
	deleteFn func(userID, id uint) error
}

func (m *mockTransferService) CreateTransfer(_ context.Context, userID uint, in ledger.TransferInput) (*models.Transfer, error) {
	if m.createFn != nil {
		return m.createFn(userID, in)
	}
	return &models.Transfer{}, nil
}

func (m *mockTransferService) ListTransfers(_ context.Context, userID uint, _ pagination.PageRequest) (*pagination.Page[models.Transfer], error) {
	if m.listFn != nil {
		return m.listFn(userID)
	}
	return &pagination.Page[models.Transfer]{}, nil
}

func (m *mockTransferService) GetTransfer(_ context.Context, userID, id uint) (*models.Transfer, error) {
	if m.getFn != nil {
		return m.getFn(userID, id)
	}
	return &models.Transfer{}, nil
}

func (m *mockTransferService) UpdateTransfer(_ context.Context, userID, id uint, patch ledger.TransferPatch) (*models.Transfer, error) {
	if m.updateFn != nil {
		return m.updateFn(userID, id, patch)
	}
	return &models.Transfer{}, nil
}

func (m *mockTransferService) DeleteTransfer(_ context.Context, userID, id uint) error {
	if m.deleteFn != nil {
		return m.deleteFn(userID, id)
	}
	return nil
}

type mockSubCategoryService struct {
	createFn func(name string, categoryID uint) (*models.SubCategory, error)
	listFn   func(categoryID *uint) (*pagination.Page[models.SubCategory], error)
	getFn    func(id uint) (*models.SubCategory, error)
	updateFn func(id uint, fields services.SubCategoryUpdate) (*models.SubCategory, error)
	deleteFn func(id uint) error
}

func (m *mockSubCategoryService) CreateSubCategory(_ context.Context, name string, categoryID uint) (*models.SubCategory, error) {
	if m.createFn != nil {
		return m.createFn(name, categoryID)
	}
	return &models.SubCategory{}, nil
}

func (m *mockSubCategoryService) ListSubCategories(_ context.Context, categoryID *uint, _ pagination.PageRequest) (*pagination.Page[models.SubCategory], error) {
	if m.listFn != nil {
		return m.listFn(categoryID)
	}
	return &pagination.Page[models.SubCategory]{}, nil
}

func (m *mockSubCategoryService) GetSubCategory(_ context.Context, id uint) (*models.SubCategory, error) {
	if m.getFn != nil {
		return m.getFn(id)
	}
	return &models.SubCategory{Base: models.Base{ID: id}}, nil
}

func (m *mockSubCategoryService) UpdateSubCategory(_ context.Context, id uint, fields services.SubCategoryUpdate) (*models.SubCategory, error) {
	if m.updateFn != nil {
		return m.updateFn(id, fields)
	}
	return &models.SubCategory{}, nil
}

func (m *mockSubCategoryService) DeleteSubCategory(_ context.Context, id uint) error {
	if m.deleteFn != nil {
		return m.deleteFn(id)
	}
	return nil
}

type mockCounterpartyService struct {
	createFn func(userID uint, name string) (*models.Counterparty, error)
	listFn   func(userID uint) (*pagination.Page[models.Counterparty], error)
	getFn    func(userID, id uint) (*models.Counterparty, error)
	updateFn func(userID, id uint, name string) (*models.Counterparty, error)
	deleteFn func(userID, id uint) error
}

func (m *mockCounterpartyService) CreateCounterparty(_ context.Context, userID uint, name string) (*models.Counterparty, error) {
	if m.createFn != nil {
		return m.createFn(userID, name)
	}
	return &models.Counterparty{}, nil
}

func (m *mockCounterpartyService) ListCounterparties(_ context.Context, userID uint, _ pagination.PageRequest) (*pagination.Page[models.Counterparty], error) {
	if m.listFn != nil {
		return m.listFn(userID)
	}
	return &pagination.Page[models.Counterparty]{}, nil
}

func (m *mockCounterpartyService) GetCounterparty(_ context.Context, userID, id uint) (*models.Counterparty, error) {
	if m.getFn != nil {
		return m.getFn(userID, id)
	}
	return &models.Counterparty{Base: models.Base{ID: id}}, nil
}

func (m *mockCounterpartyService) UpdateCounterparty(_ context.Context, userID, id uint, name string) (*models.Counterparty, error) {
	if m.updateFn != nil {
		return m.updateFn(userID, id, name)
	}
	return &models.Counterparty{}, nil
}

func (m *mockCounterpartyService) DeleteCounterparty(_ context.Context, userID, id uint) error {
	if m.deleteFn != nil {
		return m.deleteFn(userID, id)
	}
	return nil
}
