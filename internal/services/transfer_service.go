package services

import (
	"context"

	apperrors "github.com/Yns1000/haybank/internal/errors"
	"github.com/Yns1000/haybank/internal/ledger"
	"github.com/Yns1000/haybank/internal/models"
	"github.com/Yns1000/haybank/internal/pagination"
	"github.com/Yns1000/haybank/internal/store"
)

// transferService posts transfers between two accounts of the same user.
type transferService struct {
	store    *store.Gateway
	resolver *ledger.Resolver
	refs     references
}

// NewTransferService creates a new TransferServicer.
func NewTransferService(gw *store.Gateway, resolver *ledger.Resolver) TransferServicer {
	return &transferService{
		store:    gw,
		resolver: resolver,
		refs:     references{store: gw, resolver: resolver},
	}
}

func (s *transferService) postingSteps(userID uint, n *ledger.NormalizedTransfer) []ledger.Step {
	return []ledger.Step{
		func(ctx context.Context) error {
			return s.resolver.RequireAccounts(ctx, userID, n.DebitAccountID, n.CreditAccountID)
		},
		optional(n.CounterpartyID, func(id uint) ledger.Step { return s.refs.counterparty(userID, id) }),
		optional(n.CategoryID, s.refs.category),
	}
}

// CreateTransfer validates in and stores the transfer as a single record.
func (s *transferService) CreateTransfer(ctx context.Context, userID uint, in ledger.TransferInput) (*models.Transfer, error) {
	normalized, err := ledger.ValidateTransfer(in)
	if err != nil {
		return nil, err
	}

	transfer := &models.Transfer{}
	steps := append(s.postingSteps(userID, normalized), func(ctx context.Context) error {
		normalized.Apply(transfer)
		_, err := s.store.Insert(ctx, transfer)
		return err
	})
	if err := ledger.Run(ctx, steps...); err != nil {
		return nil, err
	}
	return transfer, nil
}

// ListTransfers lists the transfers touching any account of a user.
func (s *transferService) ListTransfers(ctx context.Context, userID uint, page pagination.PageRequest) (*pagination.Page[models.Transfer], error) {
	owned := s.store.DB(ctx).Model(&models.Account{}).Select("id").Where("user_id = ?", userID)
	query := s.store.DB(ctx).Model(&models.Transfer{}).
		Where("debit_account_id IN (?) OR credit_account_id IN (?)", owned, owned)

	result, err := pagination.Find[models.Transfer](query, page, "date DESC, id DESC")
	if err != nil {
		return nil, store.Translate(err)
	}
	return result, nil
}

// GetTransfer retrieves a transfer with at least one leg owned by a user.
func (s *transferService) GetTransfer(ctx context.Context, userID, id uint) (*models.Transfer, error) {
	var transfer models.Transfer
	err := ledger.Run(ctx,
		s.resolver.Step(userID, ledger.KindTransfer, id, ledger.Read),
		func(ctx context.Context) error {
			return s.store.First(ctx, &transfer, id, apperrors.ErrTransferNotFound)
		},
	)
	if err != nil {
		return nil, err
	}
	return &transfer, nil
}

// UpdateTransfer merges patch into a transfer whose both legs belong to the
// user, then re-validates it.
func (s *transferService) UpdateTransfer(ctx context.Context, userID, id uint, patch ledger.TransferPatch) (*models.Transfer, error) {
	if patch.Empty() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "no fields to update")
	}

	var (
		current    models.Transfer
		normalized *ledger.NormalizedTransfer
		changes    map[string]interface{}
	)
	err := ledger.Run(ctx,
		s.resolver.Step(userID, ledger.KindTransfer, id, ledger.Write),
		func(ctx context.Context) error {
			return s.store.First(ctx, &current, id, apperrors.ErrTransferNotFound)
		},
		ledger.Check(func() (err error) {
			normalized, err = ledger.ValidateTransfer(patch.Merge(&current))
			return err
		}),
		ledger.Check(func() (err error) {
			changes, err = ledger.Changes(ledger.TransferFields(&current), normalized.Fields())
			return err
		}),
		func(ctx context.Context) error {
			return ledger.Run(ctx, s.postingSteps(userID, normalized)...)
		},
		func(ctx context.Context) error {
			_, err := s.store.Update(ctx, &models.Transfer{}, id, changes)
			return err
		},
	)
	if err != nil {
		return nil, err
	}

	var updated models.Transfer
	if err := s.store.First(ctx, &updated, id, apperrors.ErrTransferNotFound); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteTransfer removes a transfer no movement points at.
func (s *transferService) DeleteTransfer(ctx context.Context, userID, id uint) error {
	return ledger.Run(ctx,
		s.resolver.Step(userID, ledger.KindTransfer, id, ledger.Write),
		func(ctx context.Context) error {
			return refuseIfUsed(ctx, s.store, apperrors.ErrTransferInUse,
				usage{&models.Movement{}, "transfer_id = ?", []interface{}{id}})
		},
		func(ctx context.Context) error {
			_, err := s.store.Delete(ctx, &models.Transfer{}, id)
			return err
		},
	)
}
