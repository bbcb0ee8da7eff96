package services

import (
	"context"

	"gorm.io/gorm"

	apperrors "github.com/Yns1000/haybank/internal/errors"
	"github.com/Yns1000/haybank/internal/ledger"
	"github.com/Yns1000/haybank/internal/models"
	"github.com/Yns1000/haybank/internal/pagination"
	"github.com/Yns1000/haybank/internal/store"
)

// movementService posts movements through the ledger validation chain.
type movementService struct {
	store    *store.Gateway
	resolver *ledger.Resolver
	refs     references
}

// NewMovementService creates a new MovementServicer.
func NewMovementService(gw *store.Gateway, resolver *ledger.Resolver) MovementServicer {
	return &movementService{
		store:    gw,
		resolver: resolver,
		refs:     references{store: gw, resolver: resolver},
	}
}

// referenceSteps checks every foreign key of n against userID.
func (s *movementService) referenceSteps(userID uint, n *ledger.NormalizedMovement) []ledger.Step {
	return []ledger.Step{
		s.refs.counterparty(userID, n.CounterpartyID),
		s.refs.category(n.CategoryID),
		s.refs.subCategory(n.SubCategoryID, n.CategoryID),
		s.refs.transfer(userID, n.TransferID),
	}
}

// CreateMovement validates in, normalizes its sign and stores it. Nothing is
// written when any step fails.
func (s *movementService) CreateMovement(ctx context.Context, userID uint, in ledger.MovementInput) (*MovementResult, error) {
	normalized, err := ledger.ValidateMovement(in)
	if err != nil {
		return nil, err
	}

	movement := &models.Movement{}
	steps := []ledger.Step{s.resolver.Step(userID, ledger.KindAccount, normalized.AccountID, ledger.Write)}
	steps = append(steps, s.referenceSteps(userID, normalized)...)
	steps = append(steps, func(ctx context.Context) error {
		normalized.Apply(movement)
		_, err := s.store.Insert(ctx, movement)
		return err
	})

	if err := ledger.Run(ctx, steps...); err != nil {
		return nil, err
	}
	return &MovementResult{Movement: movement, Advisory: normalized.Advisory}, nil
}

func (s *movementService) ownedMovements(ctx context.Context, userID uint, filter MovementFilter) *gorm.DB {
	owned := s.store.DB(ctx).Model(&models.Account{}).Select("id").Where("user_id = ?", userID)
	query := s.store.DB(ctx).Model(&models.Movement{}).Where("account_id IN (?)", owned)

	if filter.AccountID != nil {
		query = query.Where("account_id = ?", *filter.AccountID)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.From != nil {
		query = query.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("date <= ?", *filter.To)
	}
	return query
}

// ListMovements lists the movements of every account of a user, newest first.
func (s *movementService) ListMovements(ctx context.Context, userID uint, filter MovementFilter, page pagination.PageRequest) (*pagination.Page[models.Movement], error) {
	result, err := pagination.Find[models.Movement](s.ownedMovements(ctx, userID, filter), page, "date DESC, id DESC")
	if err != nil {
		return nil, store.Translate(err)
	}
	return result, nil
}

// ListAccountMovements lists the movements of one account owned by a user.
func (s *movementService) ListAccountMovements(ctx context.Context, userID, accountID uint, filter MovementFilter, page pagination.PageRequest) (*pagination.Page[models.Movement], error) {
	if err := s.resolver.Require(ctx, userID, ledger.KindAccount, accountID, ledger.Read); err != nil {
		return nil, err
	}
	filter.AccountID = &accountID
	return s.ListMovements(ctx, userID, filter, page)
}

// GetMovement retrieves a movement whose account belongs to a user.
func (s *movementService) GetMovement(ctx context.Context, userID, id uint) (*models.Movement, error) {
	var movement models.Movement
	err := ledger.Run(ctx,
		s.resolver.Step(userID, ledger.KindMovement, id, ledger.Read),
		func(ctx context.Context) error {
			return s.store.First(ctx, &movement, id, apperrors.ErrMovementNotFound)
		},
	)
	if err != nil {
		return nil, err
	}
	return &movement, nil
}

// UpdateMovement merges patch into the stored movement and re-runs the
// whole validation chain on the result. When nothing changes the result is
// ErrNotModified and nothing is written.
func (s *movementService) UpdateMovement(ctx context.Context, userID, id uint, patch ledger.MovementPatch) (*MovementResult, error) {
	if patch.Empty() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "no fields to update")
	}

	var (
		current    models.Movement
		normalized *ledger.NormalizedMovement
		changes    map[string]interface{}
	)
	err := ledger.Run(ctx,
		s.resolver.Step(userID, ledger.KindMovement, id, ledger.Write),
		func(ctx context.Context) error {
			return s.store.First(ctx, &current, id, apperrors.ErrMovementNotFound)
		},
		ledger.Check(func() (err error) {
			normalized, err = ledger.ValidateMovement(patch.Merge(&current))
			return err
		}),
		ledger.Check(func() (err error) {
			changes, err = ledger.Changes(ledger.MovementFields(&current), normalized.Fields())
			return err
		}),
		func(ctx context.Context) error {
			if normalized.AccountID == current.AccountID {
				return nil
			}
			return s.resolver.Require(ctx, userID, ledger.KindAccount, normalized.AccountID, ledger.Write)
		},
		func(ctx context.Context) error {
			return ledger.Run(ctx, s.referenceSteps(userID, normalized)...)
		},
		func(ctx context.Context) error {
			_, err := s.store.Update(ctx, &models.Movement{}, id, changes)
			return err
		},
	)
	if err != nil {
		return nil, err
	}

	var updated models.Movement
	if err := s.store.First(ctx, &updated, id, apperrors.ErrMovementNotFound); err != nil {
		return nil, err
	}
	return &MovementResult{Movement: &updated, Advisory: normalized.Advisory}, nil
}

// DeleteMovement removes a movement owned by a user.
func (s *movementService) DeleteMovement(ctx context.Context, userID, id uint) error {
	return ledger.Run(ctx,
		s.resolver.Step(userID, ledger.KindMovement, id, ledger.Write),
		func(ctx context.Context) error {
			_, err := s.store.Delete(ctx, &models.Movement{}, id)
			return err
		},
	)
}
