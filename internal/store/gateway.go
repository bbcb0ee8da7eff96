// Package store is the persistence gateway: thin GORM helpers that report
// an Outcome and translate driver errors into AppErrors.
package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/Yns1000/haybank/internal/errors"
	"github.com/Yns1000/haybank/internal/ledger"
	"github.com/Yns1000/haybank/internal/models"
)

// Outcome reports the effect of a write.
type Outcome struct {
	InsertedID   uint
	RowsAffected int64
}

// Record is any model with an auto-increment primary key.
type Record interface {
	PrimaryKey() uint
}

// Gateway wraps a GORM handle.
type Gateway struct {
	db *gorm.DB
}

var (
	_ ledger.Directory = (*Gateway)(nil)
	_ ledger.Finder    = (*Gateway)(nil)
)

// New creates a Gateway over db.
func New(db *gorm.DB) *Gateway {
	return &Gateway{db: db}
}

// DB returns the handle bound to ctx, for queries that need the full
// GORM builder.
func (g *Gateway) DB(ctx context.Context) *gorm.DB {
	return g.db.WithContext(ctx)
}

// Insert creates record and returns its new id.
func (g *Gateway) Insert(ctx context.Context, record Record) (Outcome, error) {
	result := g.db.WithContext(ctx).Create(record)
	if result.Error != nil {
		return Outcome{}, Translate(result.Error)
	}
	return Outcome{InsertedID: record.PrimaryKey(), RowsAffected: result.RowsAffected}, nil
}

// Update applies fields to the row of model with the given id.
func (g *Gateway) Update(ctx context.Context, model interface{}, id uint, fields map[string]interface{}) (Outcome, error) {
	result := g.db.WithContext(ctx).Model(model).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return Outcome{}, Translate(result.Error)
	}
	return Outcome{RowsAffected: result.RowsAffected}, nil
}

// Delete removes the row of model with the given id.
func (g *Gateway) Delete(ctx context.Context, model interface{}, id uint) (Outcome, error) {
	result := g.db.WithContext(ctx).Delete(model, id)
	if result.Error != nil {
		return Outcome{}, Translate(result.Error)
	}
	return Outcome{RowsAffected: result.RowsAffected}, nil
}

// First loads the row with the given id into dest, returning notFound when
// it does not exist.
func (g *Gateway) First(ctx context.Context, dest interface{}, id uint, notFound *apperrors.AppError) error {
	err := g.db.WithContext(ctx).First(dest, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return Translate(err)
}

// Exists implements ledger.Finder.
func (g *Gateway) Exists(ctx context.Context, model interface{}, where map[string]interface{}, excludeID uint) (bool, error) {
	query := g.db.WithContext(ctx).Model(model).Where(where)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var n int64
	if err := query.Count(&n).Error; err != nil {
		return false, Translate(err)
	}
	return n > 0, nil
}

// Count counts the rows of model matching the query and args.
func (g *Gateway) Count(ctx context.Context, model interface{}, query string, args ...interface{}) (int64, error) {
	var n int64
	if err := g.db.WithContext(ctx).Model(model).Where(query, args...).Count(&n).Error; err != nil {
		return 0, Translate(err)
	}
	return n, nil
}

// Owners implements ledger.Directory.
func (g *Gateway) Owners(ctx context.Context, kind ledger.Kind, id uint) ([]uint, bool, error) {
	db := g.db.WithContext(ctx)
	var owners []uint

	switch kind {
	case ledger.KindAccount:
		err := db.Model(&models.Account{}).Where("id = ?", id).Pluck("user_id", &owners).Error
		if err != nil {
			return nil, false, Translate(err)
		}
	case ledger.KindCounterparty:
		err := db.Model(&models.Counterparty{}).Where("id = ?", id).Pluck("user_id", &owners).Error
		if err != nil {
			return nil, false, Translate(err)
		}
	case ledger.KindMovement:
		err := db.Table("movements").
			Joins("JOIN accounts ON accounts.id = movements.account_id").
			Where("movements.id = ?", id).
			Pluck("accounts.user_id", &owners).Error
		if err != nil {
			return nil, false, Translate(err)
		}
	case ledger.KindTransfer:
		var legs []struct {
			DebitOwner  uint
			CreditOwner uint
		}
		err := db.Table("transfers").
			Select("debit.user_id AS debit_owner, credit.user_id AS credit_owner").
			Joins("JOIN accounts debit ON debit.id = transfers.debit_account_id").
			Joins("JOIN accounts credit ON credit.id = transfers.credit_account_id").
			Where("transfers.id = ?", id).
			Scan(&legs).Error
		if err != nil {
			return nil, false, Translate(err)
		}
		for _, leg := range legs {
			owners = append(owners, leg.DebitOwner, leg.CreditOwner)
		}
	default:
		return nil, false, apperrors.WithMessage(apperrors.ErrInternalServer, "unknown resource kind "+string(kind))
	}

	return owners, len(owners) > 0, nil
}

// CountOwnedAccounts implements ledger.Directory.
func (g *Gateway) CountOwnedAccounts(ctx context.Context, userID uint, accountIDs []uint) (int64, error) {
	if len(accountIDs) == 0 {
		return 0, nil
	}
	return g.Count(ctx, &models.Account{}, "user_id = ? AND id IN ?", userID, accountIDs)
}

// Translate maps a GORM error to an AppError. Constraint violations become
// CONFLICT; anything else is a storage error with the cause kept internal.
func Translate(err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return apperrors.Wrap(apperrors.ErrConflict, err)
	}
	return apperrors.Wrap(apperrors.ErrStorage, err)
}
