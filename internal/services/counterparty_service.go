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

// counterpartyService handles the per-user counterparty ("tiers") list.
type counterpartyService struct {
	store    *store.Gateway
	resolver *ledger.Resolver
	checker  *ledger.Checker
}

// NewCounterpartyService creates a new CounterpartyServicer.
func NewCounterpartyService(gw *store.Gateway, resolver *ledger.Resolver, checker *ledger.Checker) CounterpartyServicer {
	return &counterpartyService{store: gw, resolver: resolver, checker: checker}
}

// CreateCounterparty creates a counterparty for a user.
func (s *counterpartyService) CreateCounterparty(ctx context.Context, userID uint, name string) (*models.Counterparty, error) {
	cp := &models.Counterparty{UserID: userID, Name: strings.TrimSpace(name)}

	err := ledger.Run(ctx,
		ledger.Check(func() error { return requireName(cp.Name) }),
		func(ctx context.Context) error { return s.checker.Counterparty(ctx, userID, 0, cp.Name) },
		func(ctx context.Context) error {
			_, err := s.store.Insert(ctx, cp)
			return err
		},
	)
	if err != nil {
		return nil, err
	}
	return cp, nil
}

// ListCounterparties lists the counterparties of a user by name.
func (s *counterpartyService) ListCounterparties(ctx context.Context, userID uint, page pagination.PageRequest) (*pagination.Page[models.Counterparty], error) {
	query := s.store.DB(ctx).Model(&models.Counterparty{}).Where("user_id = ?", userID)
	result, err := pagination.Find[models.Counterparty](query, page, "name")
	if err != nil {
		return nil, store.Translate(err)
	}
	return result, nil
}

// GetCounterparty retrieves a counterparty owned by a user.
func (s *counterpartyService) GetCounterparty(ctx context.Context, userID, id uint) (*models.Counterparty, error) {
	var cp models.Counterparty
	err := ledger.Run(ctx,
		s.resolver.Step(userID, ledger.KindCounterparty, id, ledger.Read),
		func(ctx context.Context) error {
			return s.store.First(ctx, &cp, id, apperrors.ErrCounterpartyNotFound)
		},
	)
	if err != nil {
		return nil, err
	}
	return &cp, nil
}

// UpdateCounterparty renames a counterparty.
func (s *counterpartyService) UpdateCounterparty(ctx context.Context, userID, id uint, name string) (*models.Counterparty, error) {
	name = strings.TrimSpace(name)
	current, err := s.GetCounterparty(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	var changes map[string]interface{}
	err = ledger.Run(ctx,
		ledger.Check(func() error { return requireName(name) }),
		ledger.Check(func() (err error) {
			changes, err = ledger.Changes(
				map[string]interface{}{"name": current.Name},
				map[string]interface{}{"name": name},
			)
			return err
		}),
		func(ctx context.Context) error { return s.checker.Counterparty(ctx, userID, id, name) },
		func(ctx context.Context) error {
			_, err := s.store.Update(ctx, &models.Counterparty{}, id, changes)
			return err
		},
	)
	if err != nil {
		return nil, err
	}
	return s.GetCounterparty(ctx, userID, id)
}

// DeleteCounterparty removes a counterparty nothing references. A
// referenced counterparty is kept and ErrCounterpartyInUse returned.
func (s *counterpartyService) DeleteCounterparty(ctx context.Context, userID, id uint) error {
	return ledger.Run(ctx,
		s.resolver.Step(userID, ledger.KindCounterparty, id, ledger.Write),
		func(ctx context.Context) error {
			return refuseIfUsed(ctx, s.store, apperrors.ErrCounterpartyInUse,
				usage{&models.Movement{}, "counterparty_id = ?", []interface{}{id}},
				usage{&models.Transfer{}, "counterparty_id = ?", []interface{}{id}},
			)
		},
		func(ctx context.Context) error {
			_, err := s.store.Delete(ctx, &models.Counterparty{}, id)
			return err
		},
	)
}
