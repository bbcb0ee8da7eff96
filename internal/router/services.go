package router

import (
	"fmt"

	"github.com/Yns1000/haybank/internal/config"
	"github.com/Yns1000/haybank/internal/ledger"
	"github.com/Yns1000/haybank/internal/services"
	"github.com/Yns1000/haybank/internal/store"
)

// Services bundles every service the HTTP layer depends on.
type Services struct {
	Users          services.UserServicer
	Credentials    services.CredentialServicer
	Accounts       services.AccountServicer
	Categories     services.CategoryServicer
	SubCategories  services.SubCategoryServicer
	Counterparties services.CounterpartyServicer
	Movements      services.MovementServicer
	Transfers      services.TransferServicer
	Audit          services.AuditServicer
}

// NewServices builds the services on top of one store gateway, with the
// uniqueness and lockout policies taken from cfg.
func NewServices(gw *store.Gateway, cfg *config.Config) (Services, error) {
	accountPolicy, err := ledger.ParseAccountPolicy(cfg.AccountUniqueness)
	if err != nil {
		return Services{}, fmt.Errorf("ACCOUNT_UNIQUENESS: %w", err)
	}
	subCategoryPolicy, err := ledger.ParseSubCategoryPolicy(cfg.SubCategoryUniqueness)
	if err != nil {
		return Services{}, fmt.Errorf("SUBCATEGORY_UNIQUENESS: %w", err)
	}

	resolver := ledger.NewResolver(gw)
	checker := ledger.NewChecker(gw, accountPolicy, subCategoryPolicy)
	lockout := services.LockoutPolicy{MaxAttempts: cfg.MaxFailedLogins, Period: cfg.LoginLockoutPeriod}

	return Services{
		Users:          services.NewUserService(gw, lockout),
		Credentials:    services.NewCredentialService(gw, cfg.JWTSecret, cfg.TokenTTL),
		Accounts:       services.NewAccountService(gw, resolver, checker),
		Categories:     services.NewCategoryService(gw, checker),
		SubCategories:  services.NewSubCategoryService(gw, checker),
		Counterparties: services.NewCounterpartyService(gw, resolver, checker),
		Movements:      services.NewMovementService(gw, resolver),
		Transfers:      services.NewTransferService(gw, resolver),
		Audit:          services.NewAuditService(gw),
	}, nil
}
