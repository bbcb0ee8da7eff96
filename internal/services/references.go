package services

import (
	"context"

	"github.com/volatiletech/null"

	apperrors "github.com/Yns1000/haybank/internal/errors"
	"github.com/Yns1000/haybank/internal/ledger"
	"github.com/Yns1000/haybank/internal/models"
	"github.com/Yns1000/haybank/internal/store"
)

// usage is a query that finds rows referencing a record.
type usage struct {
	model interface{}
	query string
	args  []interface{}
}

// refuseIfUsed returns inUse when any usage query matches a row.
func refuseIfUsed(ctx context.Context, gw *store.Gateway, inUse *apperrors.AppError, usages ...usage) error {
	for _, u := range usages {
		n, err := gw.Count(ctx, u.model, u.query, u.args...)
		if err != nil {
			return err
		}
		if n > 0 {
			return inUse
		}
	}
	return nil
}

// references checks the foreign keys carried by movements and transfers.
type references struct {
	store    *store.Gateway
	resolver *ledger.Resolver
}

func (r references) counterparty(userID, id uint) ledger.Step {
	return r.resolver.Step(userID, ledger.KindCounterparty, id, ledger.Read)
}

func (r references) category(id uint) ledger.Step {
	return func(ctx context.Context) error {
		exists, err := r.store.Exists(ctx, &models.Category{}, map[string]interface{}{"id": id}, 0)
		if err != nil {
			return err
		}
		if !exists {
			return apperrors.ErrCategoryNotFound
		}
		return nil
	}
}

func (r references) subCategory(id null.Int64, categoryID uint) ledger.Step {
	return func(ctx context.Context) error {
		if !id.Valid {
			return nil
		}
		var sub models.SubCategory
		if err := r.store.First(ctx, &sub, uint(id.Int64), apperrors.ErrSubCategoryNotFound); err != nil {
			return err
		}
		if sub.CategoryID != categoryID {
			return apperrors.ErrSubCategoryMismatch
		}
		return nil
	}
}

func (r references) transfer(userID uint, id null.Int64) ledger.Step {
	return func(ctx context.Context) error {
		if !id.Valid {
			return nil
		}
		return r.resolver.Require(ctx, userID, ledger.KindTransfer, uint(id.Int64), ledger.Read)
	}
}

// optional runs step only when id is set, passing it the plain id.
func optional(id null.Int64, step func(uint) ledger.Step) ledger.Step {
	return func(ctx context.Context) error {
		if !id.Valid {
			return nil
		}
		return step(uint(id.Int64))(ctx)
	}
}
